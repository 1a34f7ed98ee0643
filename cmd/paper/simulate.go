package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/agiangrant/paper"
	"github.com/agiangrant/paper/retained"
	"github.com/agiangrant/paper/style"
)

type simulateFlags struct {
	theme     string
	styleName string
	frames    int
	dt        float64
	hoverFrom int
	hoverTo   int
	width     float64
	height    float64
	props     []string
}

func newSimulateCmd(root *rootFlags) *cobra.Command {
	flags := &simulateFlags{}

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a frame loop over one styled element and print its values",
		Long: `simulate declares a single element styled with --style for --frames
frames of --dt seconds each. The element is hovered from frame --hover-from
up to, but not including, frame --hover-to. Each frame prints the element's
resolved properties and its composed transform.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.load()
			if err != nil {
				return err
			}
			if flags.theme != "" {
				cfg.Theme.File = flags.theme
			}
			cfg.Metrics.Enabled = false

			props := make([]style.Property, 0, len(flags.props))
			for _, name := range flags.props {
				p, err := style.ParseProperty(name)
				if err != nil {
					return err
				}
				props = append(props, p)
			}

			e, err := paper.NewEngine(cfg, paper.WithLogWriter(cmd.ErrOrStderr()))
			if err != nil {
				return err
			}
			if _, err := e.Templates().Find(flags.styleName); err != nil {
				return err
			}
			return simulate(cmd.OutOrStdout(), e, flags, props)
		},
	}

	cmd.Flags().StringVar(&flags.theme, "theme", "", "Theme file (overrides the config)")
	cmd.Flags().StringVar(&flags.styleName, "style", "", "Template applied to the element")
	cmd.Flags().IntVar(&flags.frames, "frames", 10, "Number of frames")
	cmd.Flags().Float64Var(&flags.dt, "dt", 1.0/60, "Seconds per frame")
	cmd.Flags().IntVar(&flags.hoverFrom, "hover-from", -1, "First hovered frame (-1 never)")
	cmd.Flags().IntVar(&flags.hoverTo, "hover-to", -1, "First frame no longer hovered (-1 never)")
	cmd.Flags().Float64Var(&flags.width, "width", 100, "Element width for the transform")
	cmd.Flags().Float64Var(&flags.height, "height", 40, "Element height for the transform")
	cmd.Flags().StringSliceVar(&flags.props, "prop", []string{style.BackgroundColor.String()}, "Properties to print")
	_ = cmd.MarkFlagRequired("style")

	return cmd
}

const simulatedID = 1

func simulate(out io.Writer, e *paper.Engine, flags *simulateFlags, props []style.Property) error {
	ctx := e.Context()
	rect := style.Rect{Width: flags.width, Height: flags.height}

	for frame := range flags.frames {
		hovered := frame >= flags.hoverFrom && flags.hoverFrom >= 0 &&
			(flags.hoverTo < 0 || frame < flags.hoverTo)
		if hovered {
			ctx.States().SetHoverChain(simulatedID)
		} else {
			ctx.States().SetHoverChain()
		}

		_, err := e.Frame(flags.dt, func(c *retained.Context) {
			c.Open(simulatedID).Style(flags.styleName)
			c.Close()
		})
		if err != nil {
			return fmt.Errorf("frame %d: %w", frame, err)
		}

		fmt.Fprintf(out, "frame %3d", frame)
		if hovered {
			fmt.Fprint(out, " hovered")
		}
		for _, p := range props {
			v, _ := ctx.Value(simulatedID, p)
			fmt.Fprintf(out, "  %s=%s", p, v)
		}
		m, _ := ctx.Transform(simulatedID, rect)
		fmt.Fprintf(out, "  transform=%s\n", style.FromTransform(m))
	}
	return nil
}
