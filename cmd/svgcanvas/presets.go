package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/khankhulgun/svgcanvas/presets"
	"github.com/spf13/cobra"
)

func getPresetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the built-in format presets",
		RunE: func(c *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(c.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSIZE\tDESCRIPTION")
			for _, p := range presets.Defaults {
				fmt.Fprintf(w, "%s\t%dx%d\t%s\n", p.Name, p.Width, p.Height, p.Description)
			}
			return w.Flush()
		},
	}
}
