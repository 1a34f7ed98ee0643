package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/agiangrant/paper"
)

const defaultTheme = `# Styles are keyed by name. "name:hovered", "name:focused" and
# "name:active" are applied on top of "name" in that state.

[styles.button]
background-color = "#2b6cb0"
text-color = "#ffffff"
rounded = 4
width = "120px"
height = "32px"

[styles.button.transitions]
background-color = { duration = 0.15, easing = "ease-out" }
scale-x = { duration = 0.1 }
scale-y = { duration = 0.1 }

[styles."button:hovered"]
background-color = "#2c5282"

[styles."button:active"]
scale-x = 0.96
scale-y = 0.96
`

func newInitCmd() *cobra.Command {
	var (
		dir   string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default paper.toml and theme.toml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath := filepath.Join(dir, paper.DefaultConfigFile)
			if _, err := os.Stat(configPath); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", configPath)
			}

			cfg := paper.DefaultConfig()
			cfg.Theme.File = "theme.toml"
			if err := paper.SaveConfig(configPath, cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "  ✓ Created %s\n", configPath)

			themePath := filepath.Join(dir, cfg.Theme.File)
			if _, err := os.Stat(themePath); errors.Is(err, fs.ErrNotExist) {
				if err := os.WriteFile(themePath, []byte(defaultTheme), 0o644); err != nil {
					return fmt.Errorf("failed to create %s: %w", themePath, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "  ✓ Created %s\n", themePath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "Directory to initialize")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing paper.toml")
	return cmd
}
