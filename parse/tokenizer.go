package parse

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidToken is returned when no matcher recognizes an input string.
var ErrInvalidToken = errors.New("one or more invalid tokens")

// Tokenizer applies an ordered list of matchers. The first matcher that
// produces tokens wins.
type Tokenizer struct {
	matchers []*Matcher
}

// NewTokenizer creates a tokenizer that tries matchers in the given order.
func NewTokenizer(matchers ...*Matcher) *Tokenizer {
	return &Tokenizer{matchers: matchers}
}

var (
	// ArgumentTokenizer tokenizes raw command line arguments.
	ArgumentTokenizer = NewTokenizer(
		MatchOptionsEnd,
		MatchShortOption,
		MatchCompactShortOption,
		MatchLongOption,
		MatchCompositeOption,
		MatchAny,
	)

	// OptionTemplateTokenizer tokenizes option, switch and help aliases.
	OptionTemplateTokenizer = NewTokenizer(MatchShortOption, MatchLongOption)

	// CommandTemplateTokenizer tokenizes command aliases.
	CommandTemplateTokenizer = NewTokenizer(MatchWord)
)

// Tokenize returns the tokens of the first matching matcher. Blank input
// yields no tokens and no error.
func (t *Tokenizer) Tokenize(s string) ([]Token, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	for _, m := range t.matchers {
		if tokens := m.Match(s); len(tokens) > 0 {
			return tokens, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidToken, s)
}
