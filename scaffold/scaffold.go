// Package scaffold creates a new Rust backend project: a cargo package with a
// web framework, a starter main.rs, empty module directories, a .gitignore and
// a git repository holding one commit.
//
// Steps run in a fixed order and stop at the first failure. Nothing is rolled
// back: a failed run leaves whatever the completed steps produced on disk.
package scaffold

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/alimzhanovlr/rsbackend/crate"
	"github.com/alimzhanovlr/rsbackend/errors"
	"github.com/alimzhanovlr/rsbackend/i18n"
	"github.com/alimzhanovlr/rsbackend/logger"
	"github.com/alimzhanovlr/rsbackend/templates"
	"github.com/alimzhanovlr/rsbackend/tracing"
	"github.com/alimzhanovlr/rsbackend/validator"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/go-git/go-git/v5/plumbing"
	"go.opentelemetry.io/otel/attribute"
)

// PackageManager creates projects and adds dependencies to them.
type PackageManager interface {
	CreateProject(ctx context.Context, workDir, name string) error
	AddDependency(ctx context.Context, projectDir string, dep crate.Dependency) error
}

// VersionControl initializes a repository over a project tree.
type VersionControl interface {
	Init(ctx context.Context, fs billy.Filesystem) (plumbing.Hash, error)
}

// Request describes one project to scaffold.
type Request struct {
	Name      string   `mapstructure:"name" validate:"required"`
	Framework string   `mapstructure:"framework" validate:"required"`
	Deps      []string `mapstructure:"deps"`
}

// Result describes a scaffolded project.
type Result struct {
	ProjectDir string
	Framework  templates.Framework
	Commit     plumbing.Hash
}

// Options configures a Scaffolder.
type Options struct {
	// WorkDir is where projects are created. FS must be rooted at WorkDir.
	WorkDir        string
	FS             billy.Filesystem
	PackageManager PackageManager
	VCS            VersionControl
	Validator      *validator.Validator
	Logger         *logger.Logger
	Tracer         *tracing.Tracer
	Printer        *i18n.Printer
}

// Scaffolder runs the scaffolding workflow.
type Scaffolder struct {
	workDir   string
	fs        billy.Filesystem
	pm        PackageManager
	vcs       VersionControl
	validator *validator.Validator
	logger    *logger.Logger
	tracer    *tracing.Tracer
	out       *i18n.Printer
}

// New creates a Scaffolder.
func New(opts Options) *Scaffolder {
	if opts.Validator == nil {
		opts.Validator = validator.New()
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	if opts.Tracer == nil {
		opts.Tracer = tracing.Disabled()
	}
	return &Scaffolder{
		workDir:   opts.WorkDir,
		fs:        opts.FS,
		pm:        opts.PackageManager,
		vcs:       opts.VCS,
		validator: opts.Validator,
		logger:    opts.Logger,
		tracer:    opts.Tracer,
		out:       opts.Printer,
	}
}

// Scaffold creates the project described by req.
//
// An unknown framework is not an error: cargo is still asked to add it, and
// main.rs gets the plain hello-world body.
func (s *Scaffolder) Scaffold(ctx context.Context, req Request) (*Result, error) {
	ctx, span := s.tracer.Start(ctx, "scaffold")
	defer span.End()

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	s.tracer.SetAttributes(ctx,
		attribute.String("project.name", req.Name),
		attribute.String("project.framework", req.Framework),
	)
	log := s.logger.WithProject(req.Name).WithTraceID(tracing.GetTraceID(ctx))

	projectDir := filepath.Join(s.workDir, req.Name)
	spec := templates.Lookup(req.Framework)
	log.Debug("resolved template",
		logger.String("framework", req.Framework),
		logger.String("template", templateName(spec.Framework)),
	)

	err := s.step(ctx, log, "create_project", func(ctx context.Context) error {
		s.say("creating_project", map[string]interface{}{"Name": req.Name})
		if err := s.ensureAbsent(req.Name); err != nil {
			return err
		}
		return s.pm.CreateProject(ctx, s.workDir, req.Name)
	})
	if err != nil {
		return nil, err
	}

	deps := make([]crate.Dependency, 0, len(req.Deps)+1)
	deps = append(deps, crate.New(req.Framework))
	for _, d := range req.Deps {
		deps = append(deps, crate.New(d))
	}
	if err := s.addDependencies(ctx, log, req.Name, projectDir, deps); err != nil {
		return nil, err
	}

	mainPath := filepath.Join(req.Name, templates.SourceDir, templates.MainFile)
	err = s.step(ctx, log, "write_main", func(context.Context) error {
		s.say("writing_main", map[string]interface{}{
			"Path":     mainPath,
			"Template": templateName(spec.Framework),
		})
		return s.writeFile(mainPath, spec.MainSource)
	})
	if err != nil {
		return nil, err
	}

	if err := s.addDependencies(ctx, log, req.Name, projectDir, spec.Extra); err != nil {
		return nil, err
	}

	err = s.step(ctx, log, "create_modules", func(context.Context) error {
		s.say("creating_modules", map[string]interface{}{"Modules": strings.Join(templates.ModuleDirs, ", ")})
		return s.createModules(req.Name)
	})
	if err != nil {
		return nil, err
	}

	err = s.step(ctx, log, "write_gitignore", func(context.Context) error {
		s.say("creating_gitignore", nil)
		return s.writeFile(filepath.Join(req.Name, templates.GitIgnoreFile), templates.GitIgnore)
	})
	if err != nil {
		return nil, err
	}

	var commit plumbing.Hash
	err = s.step(ctx, log, "init_git", func(ctx context.Context) error {
		s.say("initializing_git", nil)
		projectFS, err := s.fs.Chroot(req.Name)
		if err != nil {
			return errors.ErrVCS.WithErr(err)
		}
		commit, err = s.vcs.Init(ctx, projectFS)
		return err
	})
	if err != nil {
		s.say("git_failed", map[string]interface{}{"Error": cause(err)})
		return nil, err
	}
	s.say("git_initialized", nil)

	log.Info("project scaffolded",
		logger.String("dir", projectDir),
		logger.String("commit", commit.String()),
	)
	s.blank()
	s.say("scaffold_success", map[string]interface{}{"Name": req.Name})
	s.say("scaffold_next", map[string]interface{}{"Name": req.Name})

	return &Result{
		ProjectDir: projectDir,
		Framework:  spec.Framework,
		Commit:     commit,
	}, nil
}

// Add adds dep to the project in the working directory.
func (s *Scaffolder) Add(ctx context.Context, dep crate.Dependency) error {
	ctx, span := s.tracer.Start(ctx, "add")
	defer span.End()

	if err := s.pm.AddDependency(ctx, s.workDir, dep); err != nil {
		s.tracer.RecordError(ctx, err)
		s.say("dependency_failed", map[string]interface{}{"Name": dep.Name})
		return err
	}
	s.say("dependency_added", map[string]interface{}{"Name": dep.Name})
	return nil
}

func (s *Scaffolder) addDependencies(ctx context.Context, log *logger.Logger, name, projectDir string, deps []crate.Dependency) error {
	for _, dep := range deps {
		err := s.step(ctx, log, "add_dependency", func(ctx context.Context) error {
			s.tracer.SetAttributes(ctx, attribute.String("dependency", dep.String()))
			s.say("adding_dependency", map[string]interface{}{"Dependency": dep.String(), "Name": name})
			if err := s.pm.AddDependency(ctx, projectDir, dep); err != nil {
				return err
			}
			s.tracer.AddEvent(ctx, "dependency_added", attribute.String("dependency", dep.String()))
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Scaffolder) createModules(name string) error {
	for _, module := range templates.ModuleDirs {
		dir := filepath.Join(name, templates.SourceDir, module)
		if err := s.fs.MkdirAll(dir, 0755); err != nil {
			return errors.ErrFilesystem.WithDetails(map[string]interface{}{"path": dir}).WithErr(err)
		}
		if err := s.writeFile(filepath.Join(dir, templates.ModuleFile), ""); err != nil {
			return err
		}
	}
	return nil
}

func (s *Scaffolder) ensureAbsent(name string) error {
	_, err := s.fs.Lstat(name)
	switch {
	case err == nil:
		return errors.ErrProjectExists.WithDetails(map[string]interface{}{
			"path": filepath.Join(s.workDir, name),
		})
	case os.IsNotExist(err):
		return nil
	default:
		return errors.ErrFilesystem.WithDetails(map[string]interface{}{"path": name}).WithErr(err)
	}
}

func (s *Scaffolder) writeFile(path, content string) error {
	if err := util.WriteFile(s.fs, path, []byte(content), 0644); err != nil {
		return errors.ErrFilesystem.WithDetails(map[string]interface{}{"path": path}).WithErr(err)
	}
	return nil
}

// step runs fn inside its own span.
func (s *Scaffolder) step(ctx context.Context, log *logger.Logger, name string, fn func(context.Context) error) error {
	ctx, span := s.tracer.Start(ctx, "scaffold."+name)
	defer span.End()

	log.Debug("step started", logger.String("step", name))
	if err := fn(ctx); err != nil {
		s.tracer.RecordError(ctx, err)
		log.WithError(err).Debug("step failed", logger.String("step", name))
		return err
	}
	return nil
}

func (s *Scaffolder) say(id string, data map[string]interface{}) {
	if s.out != nil {
		s.out.Say(id, data)
	}
}

func (s *Scaffolder) blank() {
	if s.out != nil {
		s.out.Line("")
	}
}

// cause returns the underlying failure text of an AppError so the localized
// message does not repeat the error's own summary.
func cause(err error) string {
	if appErr := errors.GetAppError(err); appErr.Err != nil {
		return appErr.Err.Error()
	}
	return err.Error()
}

func templateName(f templates.Framework) string {
	if f == templates.Default {
		return "default"
	}
	return f.String()
}
