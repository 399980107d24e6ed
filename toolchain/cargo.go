package toolchain

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/alimzhanovlr/rsbackend/crate"
	"github.com/alimzhanovlr/rsbackend/errors"
	"github.com/alimzhanovlr/rsbackend/logger"
)

// MinimumCargoVersion is the first cargo release shipping `cargo add`.
var MinimumCargoVersion = semver.MustParse("1.62.0")

// Cargo drives the cargo package manager.
type Cargo struct {
	binary string
	runner Runner
	logger *logger.Logger
	stdout io.Writer
	stderr io.Writer
}

// CargoOptions configures a Cargo adapter.
type CargoOptions struct {
	Binary string // defaults to "cargo"
	Runner Runner // defaults to ExecRunner
	Logger *logger.Logger
	Stdout io.Writer // cargo's own output; nil discards
	Stderr io.Writer
}

// NewCargo creates a Cargo adapter.
func NewCargo(opts CargoOptions) *Cargo {
	if opts.Binary == "" {
		opts.Binary = "cargo"
	}
	if opts.Runner == nil {
		opts.Runner = NewExecRunner()
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	return &Cargo{
		binary: opts.Binary,
		runner: opts.Runner,
		logger: opts.Logger,
		stdout: opts.Stdout,
		stderr: opts.Stderr,
	}
}

// Binary returns the cargo executable in use.
func (c *Cargo) Binary() string {
	return c.binary
}

// CreateProject runs `cargo new <name>` inside workDir.
func (c *Cargo) CreateProject(ctx context.Context, workDir, name string) error {
	return c.run(ctx, workDir, []string{"new", name})
}

// AddDependency runs `cargo add` for dep inside projectDir.
func (c *Cargo) AddDependency(ctx context.Context, projectDir string, dep crate.Dependency) error {
	return c.run(ctx, projectDir, dep.AddArgs())
}

// Version reports the version printed by `cargo --version`.
func (c *Cargo) Version(ctx context.Context) (*semver.Version, error) {
	var out bytes.Buffer
	args := []string{"--version"}

	res, err := c.runner.Run(ctx, c.binary, args, RunOpts{Stdout: &out, Stderr: c.stderr})
	if err != nil {
		return nil, c.failure(args, -1).WithErr(err)
	}
	if res.ExitCode != 0 {
		return nil, c.failure(args, res.ExitCode)
	}
	return ParseCargoVersion(out.String())
}

// CheckVersion fails when v predates `cargo add`.
func CheckVersion(v *semver.Version) error {
	if v.LessThan(MinimumCargoVersion) {
		return errors.ErrToolchain.WithDetails(map[string]interface{}{
			"found":    v.String(),
			"required": ">= " + MinimumCargoVersion.String(),
		})
	}
	return nil
}

// ParseCargoVersion extracts the version from output such as
// "cargo 1.75.0 (1d8b05cdd 2023-11-20)".
func ParseCargoVersion(output string) (*semver.Version, error) {
	fields := strings.Fields(output)
	if len(fields) < 2 || fields[0] != "cargo" {
		return nil, fmt.Errorf("unexpected cargo version output %q", strings.TrimSpace(output))
	}
	v, err := semver.NewVersion(fields[1])
	if err != nil {
		return nil, fmt.Errorf("parse cargo version %q: %w", fields[1], err)
	}
	return v, nil
}

func (c *Cargo) run(ctx context.Context, dir string, args []string) error {
	log := c.logger.WithFields(logger.Strings("args", args))
	log.Debug("running cargo", logger.String("dir", dir))

	res, err := c.runner.Run(ctx, c.binary, args, RunOpts{
		Dir:    dir,
		Stdout: c.stdout,
		Stderr: c.stderr,
	})
	if err != nil {
		return c.failure(args, -1).WithErr(err)
	}
	if res.ExitCode != 0 {
		log.Debug("cargo exited non-zero", logger.Int("exit_code", res.ExitCode))
		return c.failure(args, res.ExitCode)
	}
	return nil
}

func (c *Cargo) failure(args []string, exitCode int) *errors.AppError {
	details := map[string]interface{}{
		"command": commandLine(c.binary, args),
	}
	if exitCode >= 0 {
		details["exit_code"] = exitCode
	}
	return errors.ErrExternalTool.WithDetails(details)
}
