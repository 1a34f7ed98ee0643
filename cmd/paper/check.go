package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agiangrant/paper/internal/logger"
	"github.com/agiangrant/paper/style"
	"github.com/agiangrant/paper/theme"
)

func newCheckCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "check <theme>",
		Short: "Validate a theme file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}
			log, err := logger.New(logger.Options{
				Level:         cfg.Log.Level,
				HumanReadable: true,
				Writer:        cmd.ErrOrStderr(),
			})
			if err != nil {
				return err
			}

			th, err := theme.LoadFile(args[0], style.NewTemplateSet(), log)
			if err != nil {
				return err
			}
			names := th.Names()
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d styles (%s)\n", len(names), strings.Join(names, ", "))
			return nil
		},
	}
}
