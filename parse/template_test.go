//nolint:testpackage // using package name 'parse' to access unexported fields for testing
package parse

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewOptionTemplate(t *testing.T) {
	tests := []struct {
		name     string
		spec     string
		expected []Token
		str      string
	}{
		{"short", "-h", []Token{{ShortOption, "h"}}, "-h"},
		{"long", "--help", []Token{{LongOption, "help"}}, "--help"},
		{"both", "-h|--help", []Token{{ShortOption, "h"}, {LongOption, "help"}}, "-h|--help"},
		{"whitespace", " -h | --help ", []Token{{ShortOption, "h"}, {LongOption, "help"}}, "-h|--help"},
		{"trailing equals", "--mode=", []Token{{LongOption, "mode"}}, "--mode"},
		{"trailing colon", "-m:|--mode", []Token{{ShortOption, "m"}, {LongOption, "mode"}}, "-m|--mode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := NewOptionTemplate(tt.spec)
			if err != nil {
				t.Fatalf("NewOptionTemplate(%q) failed: %v", tt.spec, err)
			}
			if diff := cmp.Diff(tt.expected, tmpl.Tokens()); diff != "" {
				t.Errorf("Tokens mismatch (-want +got):\n%s", diff)
			}
			if tmpl.String() != tt.str {
				t.Errorf("Expected String() %q, got %q", tt.str, tmpl.String())
			}
		})
	}
}

func TestNewOptionTemplate_Invalid(t *testing.T) {
	specs := []string{"", "   ", "h", "-abc", "--", "-h|help", "-h|-h", "-h=x"}

	for _, spec := range specs {
		t.Run(spec, func(t *testing.T) {
			_, err := NewOptionTemplate(spec)
			if err == nil {
				t.Fatalf("Expected error for %q", spec)
			}
			if !IsConfiguration(err) {
				t.Errorf("Expected ConfigurationError, got %T", err)
			}
		})
	}
}

func TestNewCommandTemplate(t *testing.T) {
	tmpl, err := NewCommandTemplate("build|b")
	if err != nil {
		t.Fatalf("NewCommandTemplate failed: %v", err)
	}
	expected := []Token{{Value, "build"}, {Value, "b"}}
	if diff := cmp.Diff(expected, tmpl.Tokens()); diff != "" {
		t.Errorf("Tokens mismatch (-want +got):\n%s", diff)
	}

	for _, spec := range []string{"-b", "--build", "$x", "", "build|build"} {
		if _, err := NewCommandTemplate(spec); err == nil {
			t.Errorf("Expected error for command template %q", spec)
		}
	}
}

func TestTemplate_ContainsCrossKind(t *testing.T) {
	tmpl := MustOptionTemplate("-S|--surround")

	tokens := []Token{
		{ShortOption, "S"},
		{LongOption, "surround"},
		{CompositeOption, "S"},
		{CompositeOption, "surround"},
	}
	for _, tok := range tokens {
		if !tmpl.Contains(tok) {
			t.Errorf("Expected template to contain %v", tok)
		}
	}

	for _, tok := range []Token{{Value, "S"}, {ShortOption, "s"}, {LongOption, "sur"}} {
		if tmpl.Contains(tok) {
			t.Errorf("Did not expect template to contain %v", tok)
		}
	}
}

func TestTemplateSet_Add(t *testing.T) {
	var set TemplateSet

	if err := set.Add(MustOptionTemplate("-h|--help")); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := set.Add(MustOptionTemplate("-v|--verbose")); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if set.Len() != 4 {
		t.Errorf("Expected 4 aliases, got %d", set.Len())
	}

	err := set.Add(MustOptionTemplate("-x|--verbose"))
	if err == nil {
		t.Fatal("Expected alias collision error")
	}
	if !strings.Contains(err.Error(), `"--verbose" is already in use by another option or switch.`) {
		t.Errorf("Unexpected message: %v", err)
	}
	if set.Len() != 4 {
		t.Errorf("Expected failed Add to register nothing, got %d aliases", set.Len())
	}
}
