// Package crate describes the dependencies added to a scaffolded project.
package crate

import "strings"

// LatestVersion asks cargo to resolve the newest compatible release.
const LatestVersion = "latest"

// Dependency is one `cargo add` request.
type Dependency struct {
	Name    string
	Feature string // optional, passed to --features verbatim
	Version string // optional; "" or "latest" adds no qualifier
}

// New returns a dependency on the latest release of name.
func New(name string) Dependency {
	return Dependency{Name: name}
}

// WithFeature returns a dependency on name with one feature enabled.
func WithFeature(name, feature string) Dependency {
	return Dependency{Name: name, Feature: feature}
}

// Spec renders the package argument: name or name@version.
func (d Dependency) Spec() string {
	v := strings.TrimSpace(d.Version)
	if v == "" || v == LatestVersion {
		return d.Name
	}
	return d.Name + "@" + v
}

// AddArgs returns the argument vector for `cargo add`.
func (d Dependency) AddArgs() []string {
	args := []string{"add", d.Spec()}
	if d.Feature != "" {
		args = append(args, "--features", d.Feature)
	}
	return args
}

func (d Dependency) String() string {
	if d.Feature == "" {
		return d.Spec()
	}
	return d.Spec() + " (" + d.Feature + ")"
}
