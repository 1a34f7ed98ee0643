package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/agiangrant/paper/style"
)

func newPropsCmd() *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "props",
		Short: "List every style property with its kind and default",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "PROPERTY\tKIND\tDEFAULT")
			n := 0
			for _, p := range style.Properties() {
				if kind != "" && p.Kind().String() != kind {
					continue
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", p, p.Kind(), p.Default())
				n++
			}
			if n == 0 {
				return fmt.Errorf("no properties of kind %q", kind)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "Only list properties of this kind (color, float, unit, ...)")
	return cmd
}
