package main

import (
	"context"

	"github.com/alimzhanovlr/rsbackend/app"
	"github.com/alimzhanovlr/rsbackend/templates"
	"github.com/spf13/cobra"
)

func newListCmd(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available frameworks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), *opts, func(ctx context.Context, c *app.Container) error {
				c.Printer.Say("available_frameworks", nil)
				for _, f := range templates.Known() {
					c.Printer.Line("  - " + f.String())
				}
				return nil
			})
		},
	}
}
