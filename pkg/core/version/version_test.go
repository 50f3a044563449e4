package version

import (
	"regexp"
	"runtime"
	"strings"
	"testing"
)

// semverRegex validates semantic versioning format
var semverRegex = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

func TestVersionConstants(t *testing.T) {
	tests := []struct {
		name    string
		version string
	}{
		{"Application", Application},
		{"Interpreter", Interpreter},
		{"REPL", REPL},
		{"Server", Server},
		{"TUI", TUI},
		{"History", History},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.version == "" {
				t.Errorf("%s version is empty", tt.name)
			}
			if !semverRegex.MatchString(tt.version) {
				t.Errorf("%s version %q does not match semver format (x.y.z)", tt.name, tt.version)
			}
		})
	}
}

func TestComponentVersion(t *testing.T) {
	tests := []struct {
		name      string
		component string
		expected  string
	}{
		{"interpreter", "interpreter", Interpreter},
		{"repl", "repl", REPL},
		{"server", "server", Server},
		{"tui", "tui", TUI},
		{"history", "history", History},
		{"unknown component", "unknown", Application},
		{"empty component", "", Application},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ComponentVersion(tt.component)
			if result != tt.expected {
				t.Errorf("ComponentVersion(%q) = %q, want %q", tt.component, result, tt.expected)
			}
		})
	}
}

func TestString(t *testing.T) {
	s := String()

	if !strings.HasPrefix(s, "pascal "+Application) {
		t.Errorf("String() = %q, want prefix %q", s, "pascal "+Application)
	}
	if !strings.Contains(s, runtime.GOOS+"/"+runtime.GOARCH) {
		t.Errorf("String() = %q, missing platform", s)
	}
	if !strings.Contains(s, "commit "+Commit) {
		t.Errorf("String() = %q, missing commit", s)
	}
}
