// Package templates holds the starter files written into a scaffolded project.
//
// The framework table is closed: every supported framework is a Framework
// constant, and anything else resolves to Default. Source bodies are
// compiled into the binary from the rust/ directory.
package templates

import (
	_ "embed"

	"github.com/alimzhanovlr/rsbackend/crate"
)

//go:embed rust/axum.rs
var axumMain string

//go:embed rust/actix-web.rs
var actixWebMain string

//go:embed rust/default.rs
var defaultMain string

// GitIgnore is the ignore file written at the project root.
//
//go:embed rust/gitignore
var GitIgnore string

// Project layout written by the scaffolder, relative to the project root.
const (
	SourceDir     = "src"
	MainFile      = "main.rs"
	ModuleFile    = "mod.rs"
	GitIgnoreFile = ".gitignore"
)

// ModuleDirs are created empty under SourceDir, in this order.
var ModuleDirs = []string{"services", "models", "handlers", "routes"}

// Framework selects a starter template.
type Framework int

const (
	Default Framework = iota
	Axum
	ActixWeb
)

// Parse maps an identifier to its Framework. Unknown identifiers yield Default.
func Parse(id string) Framework {
	switch id {
	case "axum":
		return Axum
	case "actix-web":
		return ActixWeb
	default:
		return Default
	}
}

// String returns the identifier accepted by Parse. Default has none.
func (f Framework) String() string {
	switch f {
	case Axum:
		return "axum"
	case ActixWeb:
		return "actix-web"
	default:
		return ""
	}
}

// Known lists the frameworks with bespoke templates.
func Known() []Framework {
	return []Framework{Axum, ActixWeb}
}

// Spec is the template set for one framework.
type Spec struct {
	Framework  Framework
	MainSource string
	Extra      []crate.Dependency
}

// asyncRuntime is required by every async web framework template.
func asyncRuntime() []crate.Dependency {
	return []crate.Dependency{
		crate.WithFeature("serde", "derive"),
		crate.WithFeature("tokio", "full"),
	}
}

// Lookup returns the template set for id. It never fails.
func Lookup(id string) Spec {
	return For(Parse(id))
}

// For returns the template set for f.
func For(f Framework) Spec {
	switch f {
	case Axum:
		return Spec{Framework: Axum, MainSource: axumMain, Extra: asyncRuntime()}
	case ActixWeb:
		return Spec{Framework: ActixWeb, MainSource: actixWebMain, Extra: asyncRuntime()}
	default:
		return Spec{Framework: Default, MainSource: defaultMain}
	}
}
