//nolint:testpackage // using package name 'parse' to access unexported fields for testing
package parse

import (
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

type tokenFixture struct {
	Kind  string `yaml:"kind"`
	Value string `yaml:"value"`
}

type matcherFixture struct {
	Matcher string         `yaml:"matcher"`
	Input   string         `yaml:"input"`
	Tokens  []tokenFixture `yaml:"tokens"`
}

type matcherFixtures struct {
	Positive []matcherFixture `yaml:"positive"`
	Negative []matcherFixture `yaml:"negative"`
}

var matchersByName = map[string]*Matcher{
	MatchShortOption.Name():        MatchShortOption,
	MatchCompactShortOption.Name(): MatchCompactShortOption,
	MatchLongOption.Name():         MatchLongOption,
	MatchCompositeOption.Name():    MatchCompositeOption,
	MatchOptionsEnd.Name():         MatchOptionsEnd,
	MatchWord.Name():               MatchWord,
	MatchAny.Name():                MatchAny,
}

var kindsByName = map[string]Kind{
	"Value":           Value,
	"ShortOption":     ShortOption,
	"LongOption":      LongOption,
	"CompositeOption": CompositeOption,
	"OptionsEnd":      OptionsEnd,
}

func loadMatcherFixtures(t *testing.T) matcherFixtures {
	t.Helper()
	data, err := os.ReadFile("testdata/matchers.yaml")
	if err != nil {
		t.Fatalf("Failed to read fixtures: %v", err)
	}
	var fixtures matcherFixtures
	if err := yaml.Unmarshal(data, &fixtures); err != nil {
		t.Fatalf("Failed to decode fixtures: %v", err)
	}
	return fixtures
}

func fixtureMatcher(t *testing.T, name string) *Matcher {
	t.Helper()
	m, ok := matchersByName[name]
	if !ok {
		t.Fatalf("Unknown matcher %q in fixture", name)
	}
	return m
}

func TestMatchers_Positive(t *testing.T) {
	fixtures := loadMatcherFixtures(t)
	if len(fixtures.Positive) == 0 {
		t.Fatal("Expected positive fixtures")
	}

	for _, fx := range fixtures.Positive {
		t.Run(fx.Matcher+" "+fx.Input, func(t *testing.T) {
			expected := make([]Token, len(fx.Tokens))
			for i, tok := range fx.Tokens {
				kind, ok := kindsByName[tok.Kind]
				if !ok {
					t.Fatalf("Unknown kind %q in fixture", tok.Kind)
				}
				expected[i] = Token{Kind: kind, Value: tok.Value}
			}

			got := fixtureMatcher(t, fx.Matcher).Match(fx.Input)
			if diff := cmp.Diff(expected, got); diff != "" {
				t.Errorf("Match(%q) mismatch (-want +got):\n%s", fx.Input, diff)
			}
		})
	}
}

func TestMatchers_Negative(t *testing.T) {
	fixtures := loadMatcherFixtures(t)

	for _, fx := range fixtures.Negative {
		t.Run(fx.Matcher+" "+fx.Input, func(t *testing.T) {
			if got := fixtureMatcher(t, fx.Matcher).Match(fx.Input); len(got) != 0 {
				t.Errorf("Expected no match for %q, got %v", fx.Input, got)
			}
		})
	}
}

// Every well-formed argument is claimed by exactly one matcher of the raw
// argument order when matchers are tried in order.
func TestArgumentTokenizer_FirstMatchWins(t *testing.T) {
	tests := []struct {
		input   string
		claimer *Matcher
	}{
		{"--", MatchOptionsEnd},
		{"-a", MatchShortOption},
		{"-abc", MatchCompactShortOption},
		{"--long", MatchLongOption},
		{"--long=v", MatchCompositeOption},
		{"-a:v", MatchCompositeOption},
		{"value", MatchAny},
		{"-", MatchAny},
		{"-$", MatchAny},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var winner *Matcher
			for _, m := range ArgumentTokenizer.matchers {
				if len(m.Match(tt.input)) > 0 {
					winner = m
					break
				}
			}
			if winner != tt.claimer {
				t.Errorf("Expected %s to claim %q, got %v", tt.claimer.Name(), tt.input, winner)
			}
		})
	}
}

func TestTokenizer_Tokenize(t *testing.T) {
	tokens, err := ArgumentTokenizer.Tokenize("-abc")
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	expected := []Token{{ShortOption, "a"}, {ShortOption, "b"}, {ShortOption, "c"}}
	if diff := cmp.Diff(expected, tokens); diff != "" {
		t.Errorf("Compact expansion mismatch (-want +got):\n%s", diff)
	}

	tokens, err = ArgumentTokenizer.Tokenize("--opt=")
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	if diff := cmp.Diff([]Token{{CompositeOption, "opt"}}, tokens); diff != "" {
		t.Errorf("Empty composite operand mismatch (-want +got):\n%s", diff)
	}

	tokens, err = ArgumentTokenizer.Tokenize("   ")
	if err != nil || len(tokens) != 0 {
		t.Errorf("Expected blank input to produce no tokens, got %v (err=%v)", tokens, err)
	}

	if _, err := CommandTemplateTokenizer.Tokenize("-x"); err == nil {
		t.Error("Expected error for option-shaped command alias")
	}
	if _, err := OptionTemplateTokenizer.Tokenize("-abc"); err == nil {
		t.Error("Expected error for compact alias in option template")
	}
}
