package toolchain

import (
	"context"
	stderrors "errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/Masterminds/semver/v3"
	"github.com/alimzhanovlr/rsbackend/crate"
	"github.com/alimzhanovlr/rsbackend/errors"
)

type runCall struct {
	Name string
	Args []string
	Dir  string
}

// fakeRunner records invocations and replays canned results.
type fakeRunner struct {
	calls    []runCall
	exitCode int
	err      error
	stdout   string
}

func (f *fakeRunner) Run(ctx context.Context, name string, args []string, opts RunOpts) (CmdResult, error) {
	f.calls = append(f.calls, runCall{Name: name, Args: args, Dir: opts.Dir})
	if opts.Stdout != nil && f.stdout != "" {
		fmt.Fprint(opts.Stdout, f.stdout)
	}
	return CmdResult{ExitCode: f.exitCode}, f.err
}

func TestCargo_CreateProject(t *testing.T) {
	runner := &fakeRunner{}
	cargo := NewCargo(CargoOptions{Runner: runner})

	if err := cargo.CreateProject(context.Background(), "/work", "demo"); err != nil {
		t.Fatalf("CreateProject() error: %v", err)
	}

	want := []runCall{{Name: "cargo", Args: []string{"new", "demo"}, Dir: "/work"}}
	if !reflect.DeepEqual(runner.calls, want) {
		t.Errorf("calls = %+v, want %+v", runner.calls, want)
	}
}

func TestCargo_AddDependency(t *testing.T) {
	tests := []struct {
		name string
		dep  crate.Dependency
		want []string
	}{
		{"latest has no qualifier", crate.Dependency{Name: "foo", Version: "latest"}, []string{"add", "foo"}},
		{"pinned version", crate.Dependency{Name: "foo", Version: "1.2.3"}, []string{"add", "foo@1.2.3"}},
		{"feature passed verbatim", crate.WithFeature("tokio", "full"), []string{"add", "tokio", "--features", "full"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &fakeRunner{}
			cargo := NewCargo(CargoOptions{Binary: "/usr/bin/cargo", Runner: runner})

			if err := cargo.AddDependency(context.Background(), "demo", tt.dep); err != nil {
				t.Fatalf("AddDependency() error: %v", err)
			}
			if len(runner.calls) != 1 {
				t.Fatalf("got %d calls, want 1", len(runner.calls))
			}
			call := runner.calls[0]
			if call.Name != "/usr/bin/cargo" || call.Dir != "demo" {
				t.Errorf("call = %+v, want /usr/bin/cargo in demo", call)
			}
			if !reflect.DeepEqual(call.Args, tt.want) {
				t.Errorf("args = %v, want %v", call.Args, tt.want)
			}
		})
	}
}

func TestCargo_NonZeroExit(t *testing.T) {
	cargo := NewCargo(CargoOptions{Runner: &fakeRunner{exitCode: 101}})

	err := cargo.AddDependency(context.Background(), "demo", crate.New("nope"))
	if !stderrors.Is(err, errors.ErrExternalTool) {
		t.Fatalf("error = %v, want ErrExternalTool", err)
	}
	details := errors.GetAppError(err).Details
	if details["command"] != "cargo add nope" {
		t.Errorf("command detail = %v", details["command"])
	}
	if details["exit_code"] != 101 {
		t.Errorf("exit_code detail = %v, want 101", details["exit_code"])
	}
}

func TestCargo_SpawnFailure(t *testing.T) {
	cause := stderrors.New("executable file not found")
	cargo := NewCargo(CargoOptions{Runner: &fakeRunner{err: cause}})

	err := cargo.CreateProject(context.Background(), ".", "demo")
	if !stderrors.Is(err, errors.ErrExternalTool) {
		t.Fatalf("error = %v, want ErrExternalTool", err)
	}
	if !stderrors.Is(err, cause) {
		t.Errorf("error = %v, want to wrap cause", err)
	}
}

func TestCargo_Version(t *testing.T) {
	runner := &fakeRunner{stdout: "cargo 1.75.0 (1d8b05cdd 2023-11-20)\n"}
	cargo := NewCargo(CargoOptions{Runner: runner})

	v, err := cargo.Version(context.Background())
	if err != nil {
		t.Fatalf("Version() error: %v", err)
	}
	if v.String() != "1.75.0" {
		t.Errorf("Version() = %s, want 1.75.0", v)
	}
	if !reflect.DeepEqual(runner.calls[0].Args, []string{"--version"}) {
		t.Errorf("args = %v", runner.calls[0].Args)
	}
}

func TestParseCargoVersion(t *testing.T) {
	tests := []struct {
		output  string
		want    string
		wantErr bool
	}{
		{"cargo 1.62.0 (a748cf5a3 2022-06-08)", "1.62.0", false},
		{"cargo 1.77.0-nightly (ac6bbb332 2023-12-26)\n", "1.77.0-nightly", false},
		{"rustc 1.75.0", "", true},
		{"", "", true},
		{"cargo banana", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.output, func(t *testing.T) {
			v, err := ParseCargoVersion(tt.output)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseCargoVersion() = %v, want error", v)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCargoVersion() error: %v", err)
			}
			if v.String() != tt.want {
				t.Errorf("ParseCargoVersion() = %s, want %s", v, tt.want)
			}
		})
	}
}

func TestCheckVersion(t *testing.T) {
	tests := []struct {
		version string
		ok      bool
	}{
		{"1.61.0", false},
		{"1.62.0", true},
		{"1.77.0-nightly", true},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			err := CheckVersion(semver.MustParse(tt.version))
			if tt.ok && err != nil {
				t.Errorf("CheckVersion() error: %v", err)
			}
			if !tt.ok && !stderrors.Is(err, errors.ErrToolchain) {
				t.Errorf("CheckVersion() = %v, want ErrToolchain", err)
			}
		})
	}
}
