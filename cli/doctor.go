package main

import (
	"context"

	"github.com/alimzhanovlr/rsbackend/app"
	"github.com/alimzhanovlr/rsbackend/toolchain"
	"github.com/spf13/cobra"
)

func newDoctorCmd(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that cargo is installed and supports `cargo add`",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), *opts, func(ctx context.Context, c *app.Container) error {
				v, err := c.Cargo.Version(ctx)
				if err != nil {
					return err
				}
				c.Printer.Say("cargo_version", map[string]interface{}{
					"Version": v.String(),
					"Binary":  c.Cargo.Binary(),
				})
				if err := toolchain.CheckVersion(v); err != nil {
					return err
				}
				c.Printer.Say("cargo_ok", map[string]interface{}{
					"Minimum": toolchain.MinimumCargoVersion.String(),
				})
				return nil
			})
		},
	}
}
