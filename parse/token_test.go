//nolint:testpackage // using package name 'parse' to access unexported fields for testing
package parse

import "testing"

func TestToken_Equal(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Token
		expected bool
	}{
		{"short equals short", Token{ShortOption, "a"}, Token{ShortOption, "a"}, true},
		{"short equals long same value", Token{ShortOption, "a"}, Token{LongOption, "a"}, true},
		{"long equals composite", Token{LongOption, "name"}, Token{CompositeOption, "name"}, true},
		{"composite equals short", Token{CompositeOption, "S"}, Token{ShortOption, "S"}, true},
		{"case sensitive", Token{ShortOption, "a"}, Token{ShortOption, "A"}, false},
		{"option differs from value", Token{ShortOption, "a"}, Token{Value, "a"}, false},
		{"values equal", Token{Value, "x"}, Token{Value, "x"}, true},
		{"values differ", Token{Value, "x"}, Token{Value, "y"}, false},
		{"options end", OptionsEndToken, Token{Kind: OptionsEnd}, true},
		{"options end vs value", OptionsEndToken, Token{Value, ""}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.expected {
				t.Errorf("Expected %v.Equal(%v) = %v, got %v", tt.a, tt.b, tt.expected, got)
			}
			if got := tt.b.Equal(tt.a); got != tt.expected {
				t.Errorf("Expected symmetric equality for %v and %v", tt.a, tt.b)
			}
		})
	}
}

func TestToken_DistinguishedForm(t *testing.T) {
	tests := []struct {
		token    Token
		expected string
	}{
		{Token{ShortOption, "v"}, "-v"},
		{Token{LongOption, "verbose"}, "--verbose"},
		{Token{CompositeOption, "S"}, "-S"},
		{Token{CompositeOption, "surround"}, "--surround"},
		{OptionsEndToken, "--"},
		{Token{Value, "file.txt"}, "file.txt"},
	}

	for _, tt := range tests {
		if got := tt.token.DistinguishedForm(); got != tt.expected {
			t.Errorf("Expected %q, got %q", tt.expected, got)
		}
	}
}

func TestNewToken_EmptyValuePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic for empty short option value")
		}
	}()
	NewToken(ShortOption, "")
}

func TestNewToken_OptionsEndAllowsEmpty(t *testing.T) {
	if tok := NewToken(OptionsEnd, ""); tok != OptionsEndToken {
		t.Errorf("Expected OptionsEndToken, got %v", tok)
	}
}

func TestResult_Flags(t *testing.T) {
	r := ResultNoMatch | ResultArgument | ResultCommand
	if !r.Has(ResultArgument) || !r.Has(ResultCommand) {
		t.Errorf("Expected Argument and Command flags in %v", r)
	}
	if r.Has(ResultHelp) {
		t.Errorf("Did not expect Help flag in %v", r)
	}
	if r.String() != "Argument|Command" {
		t.Errorf("Expected 'Argument|Command', got %q", r.String())
	}
	if ResultNoMatch.String() != "NoMatch" {
		t.Errorf("Expected 'NoMatch', got %q", ResultNoMatch.String())
	}
}
