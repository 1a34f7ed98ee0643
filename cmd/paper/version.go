package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agiangrant/paper"
)

var (
	commit = "none"
	date   = "unknown"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "paper %s\ncommit: %s\nbuilt: %s\n", paper.Version, commit, date)
			return nil
		},
	}
}
