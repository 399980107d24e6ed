package main

import (
	"context"

	"github.com/alimzhanovlr/rsbackend/app"
	"github.com/alimzhanovlr/rsbackend/crate"
	"github.com/spf13/cobra"
)

func newAddCmd(opts *app.Options) *cobra.Command {
	var ver string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a dependency to the project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dep := crate.Dependency{Name: args[0], Version: ver}
			return app.Run(cmd.Context(), *opts, func(ctx context.Context, c *app.Container) error {
				return c.Scaffolder.Add(ctx, dep)
			})
		},
	}

	cmd.Flags().StringVarP(&ver, "version", "v", crate.LatestVersion, "Version to use")

	return cmd
}
