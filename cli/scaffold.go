package main

import (
	"context"

	"github.com/alimzhanovlr/rsbackend/app"
	"github.com/alimzhanovlr/rsbackend/scaffold"
	"github.com/spf13/cobra"
)

func newScaffoldCmd(opts *app.Options) *cobra.Command {
	var req scaffold.Request

	cmd := &cobra.Command{
		Use:   "scaffold",
		Short: "Scaffold a new framework project",
		Example: `  rsbackend scaffold --name api --framework axum
  rsbackend scaffold -n api -f actix-web -d dotenvy -d sqlx`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), *opts, func(ctx context.Context, c *app.Container) error {
				_, err := c.Scaffolder.Scaffold(ctx, req)
				return err
			})
		},
	}

	cmd.Flags().StringVarP(&req.Name, "name", "n", "", "Name of the project")
	cmd.Flags().StringVarP(&req.Framework, "framework", "f", "", "Name of the framework (e.g. axum, actix-web)")
	cmd.Flags().StringSliceVarP(&req.Deps, "deps", "d", nil, "Additional dependencies to add (e.g. dotenvy)")

	return cmd
}
