//nolint:testpackage // using package name 'argbind' to access unexported fields for testing
package argbind

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	bindio "github.com/dzonerzy/go-argbind/io"
	"github.com/dzonerzy/go-argbind/parse"
)

func TestFileContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "help.txt")
	if err := os.WriteFile(path, []byte("Usage: demo\r\n\r\n  -v  verbose\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	lines, err := FileContent(path).Content()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"Usage: demo", "", "  -v  verbose"}, lines); diff != "" {
		t.Errorf("Lines mismatch (-want +got):\n%s", diff)
	}

	if _, err := FileContent(filepath.Join(t.TempDir(), "missing")).Content(); err == nil {
		t.Error("Expected error for a missing file")
	}
}

func TestYAMLContent(t *testing.T) {
	doc := `usage: backup [options] SOURCE
description: |
  Copies SOURCE somewhere safe.
sections:
  - title: Options
    entries:
      - name: -o|--output
        text: Target directory.
      - name: -v
        text: Verbose output.
  - title: Notes
    lines:
      - Existing files are kept.
`
	path := filepath.Join(t.TempDir(), "help.yaml")
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}

	lines, err := YAMLContent(path).Content()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	want := []string{
		"Usage: backup [options] SOURCE",
		"",
		"Copies SOURCE somewhere safe.",
		"",
		"Options:",
		"  -o|--output  Target directory.",
		"  -v           Verbose output.",
		"",
		"Notes:",
		"  Existing files are kept.",
	}
	if diff := cmp.Diff(want, lines); diff != "" {
		t.Errorf("Lines mismatch (-want +got):\n%s", diff)
	}
}

func TestYAMLContent_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "help.yaml")
	if err := os.WriteFile(path, []byte("sections: [unterminated"), 0o600); err != nil {
		t.Fatal(err)
	}

	app := New[rootOptions]("demo", "")
	app.Root().HelpOption("--help").Help(YAMLContent(path))
	err := app.Run([]string{"--help"})
	if !parse.IsConfiguration(err) {
		t.Fatalf("Expected configuration error, got %v", err)
	}
	var cfgErr *parse.ConfigurationError
	if !errors.As(err, &cfgErr) || cfgErr.Cause == nil || !strings.Contains(cfgErr.Cause.Error(), "help document") {
		t.Errorf("Expected the YAML error as cause, got %v", err)
	}
}

func TestConsoleHelpWriter(t *testing.T) {
	t.Setenv("COLUMNS", "30")
	var out bytes.Buffer
	io := bindio.New().WithOut(&out).ForceColor()

	lines := []string{
		"Options:",
		"  --name VALUE  The name to greet when running",
	}
	if err := NewConsoleHelpWriter(io).WriteContent(lines); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	got := out.String()
	if !strings.HasPrefix(got, "\x1b[1mOptions:") {
		t.Errorf("Expected bold title, got %q", got)
	}
	for _, line := range strings.Split(strings.TrimRight(got, "\n"), "\n")[1:] {
		if len(line) > 30 {
			t.Errorf("Expected wrapped line within 30 columns, got %q", line)
		}
		if !strings.HasPrefix(line, "  ") {
			t.Errorf("Expected continuation to keep indentation, got %q", line)
		}
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		line     string
		width    int
		expected []string
	}{
		{"short", 10, []string{"short"}},
		{"one two three", 0, []string{"one two three"}},
		{"one two three four", 9, []string{"one two", "three", "four"}},
		{"  ab cd ef", 7, []string{"  ab cd", "  ef"}},
		{"unbreakablewordhere", 5, []string{"unbreakablewordhere"}},
	}

	for _, tt := range tests {
		if diff := cmp.Diff(tt.expected, wrap(tt.line, tt.width)); diff != "" {
			t.Errorf("wrap(%q, %d) mismatch (-want +got):\n%s", tt.line, tt.width, diff)
		}
	}
}

func TestGeneratedHelp(t *testing.T) {
	var out bytes.Buffer
	app := newRootApp(nil)
	app.Root().HelpOption("-h|--help").GeneratedHelp()
	Choices(Option[rootOptions, string](app.Root(), "--mode").
		MapTo(func(o *rootOptions) *string { return &o.Search }).
		Description("Run mode."), "fast", "slow")
	addBuild(app, nil).Describe("Build the project.")
	app.HelpWriter(NewWriterHelpWriter(&out))

	if err := app.ShowHelp(""); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	got := out.String()
	for _, fragment := range []string{
		"Demo application",
		"Usage:\n  demo [OPTIONS] [COMMAND] ARG...",
		"Options:",
		"  -n, --name VALUE",
		"  -v, --verbose",
		"  --mode VALUE        Run mode. (one of: fast, slow)",
		"  -h, --help          Show this help.",
		"Arguments:",
		"Commands:",
		"  build|b  Build the project.",
	} {
		if !strings.Contains(got, fragment) {
			t.Errorf("Expected %q in generated help:\n%s", fragment, got)
		}
	}
}

func TestGeneratedHelp_Command(t *testing.T) {
	var out bytes.Buffer
	app := newRootApp(nil)
	app.Root().HelpOption("--help").Help(Content("root"))
	build := addBuild(app, nil)
	build.GeneratedHelp()
	app.HelpWriter(NewWriterHelpWriter(&out))

	if err := app.ShowHelp("build"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "Usage:\n  demo build [OPTIONS]") {
		t.Errorf("Expected command usage line, got:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "-r, --release") {
		t.Errorf("Expected command switch listed, got:\n%s", out.String())
	}
}
