package main

import (
	"github.com/spf13/cobra"

	"github.com/agiangrant/paper"
)

type rootFlags struct {
	config  string
	verbose bool
}

// load reads the config file and applies the global flags.
func (f *rootFlags) load() (paper.Config, error) {
	cfg, err := paper.LoadConfig(f.config)
	if err != nil {
		return cfg, err
	}
	if f.verbose {
		cfg.Log.Level = "debug"
	}
	cfg.Log.Human = true
	return cfg, nil
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "paper",
		Short:         "paper resolves and animates retained UI styles",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&flags.config, "config", "c", "", "Config file (default paper.toml)")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(newCheckCmd(flags))
	cmd.AddCommand(newPropsCmd())
	cmd.AddCommand(newSimulateCmd(flags))
	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}
