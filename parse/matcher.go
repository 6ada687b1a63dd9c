package parse

import (
	"regexp"

	"github.com/dzonerzy/go-argbind/internal/intern"
)

// Matcher recognizes a single lexical shape. Match returns an empty slice
// when the input does not have that shape.
type Matcher struct {
	name    string
	pattern *regexp.Regexp
	build   func(groups []string) []Token
}

// Name returns the matcher name used in diagnostics.
func (m *Matcher) Name() string { return m.name }

// Match tokenizes s, returning nil when s does not match.
func (m *Matcher) Match(s string) []Token {
	groups := m.pattern.FindStringSubmatch(s)
	if groups == nil {
		return nil
	}
	return m.build(groups)
}

var (
	// MatchShortOption recognizes -x.
	MatchShortOption = &Matcher{
		name:    "short-option",
		pattern: regexp.MustCompile(`^-([0-9a-zA-Z])$`),
		build: func(g []string) []Token {
			return []Token{NewToken(ShortOption, intern.Char(rune(g[1][0])))}
		},
	}

	// MatchCompactShortOption recognizes -xyz and expands it to one short
	// option token per character.
	MatchCompactShortOption = &Matcher{
		name:    "compact-short-option",
		pattern: regexp.MustCompile(`^-([0-9a-zA-Z]+)$`),
		build: func(g []string) []Token {
			tokens := make([]Token, 0, len(g[1]))
			for _, ch := range g[1] {
				tokens = append(tokens, NewToken(ShortOption, intern.Char(ch)))
			}
			return tokens
		},
	}

	// MatchLongOption recognizes --word-with-dashes.
	MatchLongOption = &Matcher{
		name:    "long-option",
		pattern: regexp.MustCompile(`^--([\w-]+)$`),
		build: func(g []string) []Token {
			return []Token{NewToken(LongOption, intern.Name(g[1]))}
		},
	}

	// MatchCompositeOption recognizes -x=v, -x:v, --word=v and --word:v. The
	// identifier cannot contain a separator, so the split always happens at
	// the first one and the operand keeps any later separators and newlines.
	MatchCompositeOption = &Matcher{
		name:    "composite-option",
		pattern: regexp.MustCompile(`(?s)^--?([\w-]+)[=:](.+)?$`),
		build: func(g []string) []Token {
			if g[2] == "" {
				return []Token{NewToken(CompositeOption, intern.Name(g[1]))}
			}
			return []Token{NewToken(CompositeOption, intern.Name(g[1])), NewToken(Value, g[2])}
		},
	}

	// MatchOptionsEnd recognizes --.
	MatchOptionsEnd = &Matcher{
		name:    "options-end",
		pattern: regexp.MustCompile(`^--$`),
		build: func([]string) []Token {
			return []Token{OptionsEndToken}
		},
	}

	// MatchWord recognizes bare command names: letters, digits and dashes,
	// starting with a letter or digit.
	MatchWord = &Matcher{
		name:    "word",
		pattern: regexp.MustCompile(`^([0-9a-zA-Z][0-9a-zA-Z-]*)$`),
		build: func(g []string) []Token {
			return []Token{NewToken(Value, g[1])}
		},
	}

	// MatchAny accepts any non-empty string as a plain value.
	MatchAny = &Matcher{
		name:    "any",
		pattern: regexp.MustCompile(`(?s)^.+$`),
		build: func(g []string) []Token {
			return []Token{NewToken(Value, g[0])}
		},
	}
)
