package templates

import (
	"reflect"
	"strings"
	"testing"

	"github.com/alimzhanovlr/rsbackend/crate"
)

func TestLookup_KnownFrameworks(t *testing.T) {
	tests := []struct {
		id       string
		want     Framework
		contains []string
	}{
		{"axum", Axum, []string{"Router::new()", `route("/"`, "TcpListener::bind", "Listening on http://127.0.0.1:3000"}},
		{"actix-web", ActixWeb, []string{`#[get("/")]`, "HttpServer::new", ".bind(\"127.0.0.1:3000\")", ".run()"}},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			spec := Lookup(tt.id)
			if spec.Framework != tt.want {
				t.Fatalf("Framework = %v, want %v", spec.Framework, tt.want)
			}
			if strings.TrimSpace(spec.MainSource) == "" {
				t.Fatal("MainSource is empty")
			}
			for _, want := range tt.contains {
				if !strings.Contains(spec.MainSource, want) {
					t.Errorf("MainSource missing %q", want)
				}
			}

			wantExtra := []crate.Dependency{
				{Name: "serde", Feature: "derive"},
				{Name: "tokio", Feature: "full"},
			}
			if !reflect.DeepEqual(spec.Extra, wantExtra) {
				t.Errorf("Extra = %v, want %v", spec.Extra, wantExtra)
			}
		})
	}
}

func TestLookup_UnknownFallsBackToDefault(t *testing.T) {
	for _, id := range []string{"", "rocket", "AXUM", "actix"} {
		first := Lookup(id)
		second := Lookup(id)

		if first.Framework != Default {
			t.Errorf("Lookup(%q).Framework = %v, want Default", id, first.Framework)
		}
		if len(first.Extra) != 0 {
			t.Errorf("Lookup(%q).Extra = %v, want none", id, first.Extra)
		}
		if !strings.Contains(first.MainSource, `println!("Hello, world!")`) {
			t.Errorf("Lookup(%q).MainSource = %q, want hello world", id, first.MainSource)
		}
		if !reflect.DeepEqual(first, second) {
			t.Errorf("Lookup(%q) not deterministic", id)
		}
	}
}

func TestLookup_ExtraNotShared(t *testing.T) {
	a := Lookup("axum")
	a.Extra[0].Name = "mutated"

	if got := Lookup("axum").Extra[0].Name; got != "serde" {
		t.Errorf("Extra[0].Name = %q after mutating a previous lookup, want serde", got)
	}
}

func TestKnownRoundTrip(t *testing.T) {
	got := []string{}
	for _, f := range Known() {
		got = append(got, f.String())
		if Parse(f.String()) != f {
			t.Errorf("Parse(%q) = %v, want %v", f.String(), Parse(f.String()), f)
		}
	}
	if want := []string{"axum", "actix-web"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Known() = %v, want %v", got, want)
	}
}

func TestGitIgnore(t *testing.T) {
	lines := strings.Split(GitIgnore, "\n")
	for _, want := range []string{"/target/", ".env"} {
		found := false
		for _, l := range lines {
			if l == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("GitIgnore missing line %q", want)
		}
	}
}

func TestModuleDirs(t *testing.T) {
	want := []string{"services", "models", "handlers", "routes"}
	if !reflect.DeepEqual(ModuleDirs, want) {
		t.Errorf("ModuleDirs = %v, want %v", ModuleDirs, want)
	}
}
