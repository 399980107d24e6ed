// Package app wires the CLI's dependencies with fx.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/alimzhanovlr/rsbackend/config"
	"github.com/alimzhanovlr/rsbackend/errors"
	"github.com/alimzhanovlr/rsbackend/i18n"
	"github.com/alimzhanovlr/rsbackend/logger"
	"github.com/alimzhanovlr/rsbackend/scaffold"
	"github.com/alimzhanovlr/rsbackend/toolchain"
	"github.com/alimzhanovlr/rsbackend/tracing"
	"github.com/alimzhanovlr/rsbackend/validator"
	"github.com/go-git/go-billy/v5/osfs"
	playground "github.com/go-playground/validator/v10"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap/zapcore"
)

// Options are the process-level inputs, usually taken from global flags.
type Options struct {
	ConfigPath string
	WorkDir    string
	Lang       string // overrides i18n.language when set
	Verbose    bool
	Stdout     io.Writer
	Stderr     io.Writer

	// Runner replaces the process runner used for cargo. Tests only.
	Runner toolchain.Runner
}

// Container exposes the constructed services to a command.
type Container struct {
	Config     *config.Config
	Logger     *logger.Logger
	Printer    *i18n.Printer
	Cargo      *toolchain.Cargo
	Scaffolder *scaffold.Scaffolder
}

// Run builds the dependency graph, runs fn, then stops the graph.
func Run(ctx context.Context, opts Options, fn func(context.Context, *Container) error) error {
	var c Container

	fxApp := fx.New(
		Module(opts),
		fx.WithLogger(func(log *logger.Logger) fxevent.Logger {
			zl := &fxevent.ZapLogger{Logger: log.Logger}
			zl.UseLogLevel(zapcore.DebugLevel)
			return zl
		}),
		fx.Populate(&c.Config, &c.Logger, &c.Printer, &c.Cargo, &c.Scaffolder),
	)
	if err := fxApp.Err(); err != nil {
		return unwrapFx(err)
	}

	if err := fxApp.Start(ctx); err != nil {
		return err
	}
	defer func() {
		_ = fxApp.Stop(context.Background())
	}()

	return fn(ctx, &c)
}

// Module provides every service the commands use.
func Module(opts Options) fx.Option {
	return fx.Options(
		fx.Supply(opts),
		fx.Provide(
			provideConfig,
			provideLogger,
			provideTracer,
			provideValidator,
			provideI18n,
			providePrinter,
			provideCargo,
			provideGit,
			provideScaffolder,
		),
	)
}

func provideValidator(tr *i18n.I18n) (*validator.Validator, error) {
	v := validator.New()
	err := v.RegisterCustomValidation("language", func(fl playground.FieldLevel) bool {
		return tr.IsSupported(fl.Field().String())
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

func provideConfig(opts Options, v *validator.Validator) (*config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, errors.ErrConfig.WithErr(err)
	}
	if opts.Lang != "" {
		cfg.I18n.Language = opts.Lang
	}
	if opts.Verbose {
		cfg.Logger.Level = "debug"
	}
	if err := v.Validate(cfg); err != nil {
		return nil, errors.ErrConfig.WithErr(err)
	}
	return cfg, nil
}

func provideLogger(lc fx.Lifecycle, cfg *config.Config) (*logger.Logger, error) {
	log, err := logger.New(logger.Config{
		Level:      cfg.Logger.Level,
		Format:     cfg.Logger.Format,
		OutputPath: cfg.Logger.OutputPath,
	})
	if err != nil {
		return nil, errors.ErrConfig.WithErr(err)
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			_ = log.Sync()
			return nil
		},
	})
	return log, nil
}

func provideTracer(lc fx.Lifecycle, cfg *config.Config, log *logger.Logger) (*tracing.Tracer, error) {
	tracer, err := tracing.New(tracing.Config{
		Enabled:     cfg.Tracing.Enabled,
		ServiceName: cfg.Tracing.ServiceName,
		Endpoint:    cfg.Tracing.Endpoint,
		SampleRate:  cfg.Tracing.SampleRate,
	}, log)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return tracer.Shutdown(ctx)
		},
	})
	return tracer, nil
}

func provideI18n() (*i18n.I18n, error) {
	return i18n.New(i18n.DefaultConfig())
}

func providePrinter(opts Options, cfg *config.Config, tr *i18n.I18n) *i18n.Printer {
	return tr.Printer(cfg.I18n.Language, stdout(opts))
}

func provideCargo(opts Options, cfg *config.Config, log *logger.Logger) *toolchain.Cargo {
	return toolchain.NewCargo(toolchain.CargoOptions{
		Binary: cfg.Cargo.Binary,
		Runner: opts.Runner,
		Logger: log,
		Stdout: stdout(opts),
		Stderr: stderr(opts),
	})
}

func provideGit(cfg *config.Config, log *logger.Logger) *toolchain.Git {
	return toolchain.NewGit(toolchain.Identity{
		Name:  cfg.Git.AuthorName,
		Email: cfg.Git.AuthorEmail,
	}, cfg.Git.CommitMessage, log)
}

type scaffolderParams struct {
	fx.In

	Options   Options
	Cargo     *toolchain.Cargo
	Git       *toolchain.Git
	Validator *validator.Validator
	Logger    *logger.Logger
	Tracer    *tracing.Tracer
	Printer   *i18n.Printer
}

func provideScaffolder(p scaffolderParams) (*scaffold.Scaffolder, error) {
	workDir, err := resolveWorkDir(p.Options.WorkDir)
	if err != nil {
		return nil, err
	}
	return scaffold.New(scaffold.Options{
		WorkDir:        workDir,
		FS:             osfs.New(workDir),
		PackageManager: p.Cargo,
		VCS:            p.Git,
		Validator:      p.Validator,
		Logger:         p.Logger,
		Tracer:         p.Tracer,
		Printer:        p.Printer,
	}), nil
}

func resolveWorkDir(dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.ErrFilesystem.WithErr(err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", errors.ErrFilesystem.WithDetails(map[string]interface{}{"path": abs}).WithErr(err)
	}
	if !info.IsDir() {
		return "", errors.ErrFilesystem.WithDetails(map[string]interface{}{"path": abs}).
			WithErr(fmt.Errorf("not a directory"))
	}
	return abs, nil
}

func stdout(opts Options) io.Writer {
	if opts.Stdout != nil {
		return opts.Stdout
	}
	return os.Stdout
}

func stderr(opts Options) io.Writer {
	if opts.Stderr != nil {
		return opts.Stderr
	}
	return os.Stderr
}

// unwrapFx recovers our own error from fx's graph-construction wrapper so the
// exit code survives.
func unwrapFx(err error) error {
	if errors.IsAppError(err) {
		return errors.GetAppError(err)
	}
	return err
}
