package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alimzhanovlr/rsbackend/app"
	"github.com/alimzhanovlr/rsbackend/errors"
	"github.com/spf13/cobra"
)

var version = "1.0.0"

func main() {
	os.Exit(execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// execute runs the CLI and returns the process exit code.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts := &app.Options{Stdout: stdout, Stderr: stderr}

	rootCmd := newRootCmd(opts)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		msg := strings.Join(strings.Fields(err.Error()), " ")
		fmt.Fprintf(stderr, "Error: %s\n", msg)
		return errors.ExitCode(err)
	}
	return 0
}

func newRootCmd(opts *app.Options) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "rsbackend",
		Short:         "Scaffold Rust backend projects",
		Long:          `A CLI tool that creates Rust web service projects with cargo, a starter main.rs, module folders and an initial git commit.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.ConfigPath, "config", "", "Path to a config file (yaml)")
	flags.StringVar(&opts.WorkDir, "dir", ".", "Directory to run in")
	flags.StringVar(&opts.Lang, "lang", "", "Output language (en, ru)")
	flags.BoolVar(&opts.Verbose, "verbose", false, "Enable debug logging")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return errors.ErrValidation.WithErr(err)
	})

	rootCmd.AddCommand(
		newScaffoldCmd(opts),
		newListCmd(opts),
		newAddCmd(opts),
		newDoctorCmd(opts),
	)

	return rootCmd
}
