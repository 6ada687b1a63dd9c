package parse

import (
	"strings"
)

const templateSeparator = "|"

// Template is the immutable set of accepted spellings of one command,
// option, switch or help flag.
type Template struct {
	tokens []Token
}

// NewOptionTemplate parses an option, switch or help template such as
// "-o|--output". Each alias must be a short (-x) or long (--word) form. A
// trailing '=' or ':' on an alias is accepted and ignored, so "--mode="
// declares the same alias as "--mode".
func NewOptionTemplate(spec string) (*Template, error) {
	tokens, err := buildTokens(spec, OptionTemplateTokenizer, func(alias string) string {
		return strings.TrimRight(alias, "=:")
	})
	if err != nil {
		return nil, NewConfigurationError("Invalid template %q - option/switch must contain one or more "+
			"short (single dash) or long form (double-dash) identifiers separated by a pipe. "+
			"E.g. (-h, --help, -h|--help, etc.)", spec).WithCause(err)
	}
	return &Template{tokens: tokens}, nil
}

// NewCommandTemplate parses a command template such as "build|b".
func NewCommandTemplate(spec string) (*Template, error) {
	tokens, err := buildTokens(spec, CommandTemplateTokenizer, nil)
	if err != nil {
		return nil, NewConfigurationError("Invalid template %q - command can only contain plain word "+
			"values that are not prefixed with a dash.", spec).WithCause(err)
	}
	return &Template{tokens: tokens}, nil
}

// MustOptionTemplate is like NewOptionTemplate but panics on error.
func MustOptionTemplate(spec string) *Template {
	t, err := NewOptionTemplate(spec)
	if err != nil {
		panic(err)
	}
	return t
}

// MustCommandTemplate is like NewCommandTemplate but panics on error.
func MustCommandTemplate(spec string) *Template {
	t, err := NewCommandTemplate(spec)
	if err != nil {
		panic(err)
	}
	return t
}

func buildTokens(spec string, tokenizer *Tokenizer, normalize func(string) string) ([]Token, error) {
	if strings.TrimSpace(spec) == "" {
		return nil, ErrInvalidToken
	}

	var tokens []Token
	for _, alias := range strings.Split(spec, templateSeparator) {
		alias = strings.TrimSpace(alias)
		if normalize != nil {
			alias = normalize(alias)
		}
		parsed, err := tokenizer.Tokenize(alias)
		if err != nil {
			return nil, err
		}
		for _, tok := range parsed {
			for _, existing := range tokens {
				if existing == tok {
					return nil, errDuplicateAlias(tok)
				}
			}
			tokens = append(tokens, tok)
		}
	}
	if len(tokens) == 0 {
		return nil, ErrInvalidToken
	}
	return tokens, nil
}

func errDuplicateAlias(tok Token) error {
	return NewConfigurationError("duplicate alias %q", tok.DistinguishedForm())
}

// Tokens returns a copy of the template's tokens in declaration order.
func (t *Template) Tokens() []Token {
	out := make([]Token, len(t.tokens))
	copy(out, t.tokens)
	return out
}

// First returns the first declared alias.
func (t *Template) First() Token { return t.tokens[0] }

// Contains reports whether any alias equals token, using option cross-kind
// equality.
func (t *Template) Contains(token Token) bool {
	for _, tok := range t.tokens {
		if tok.Equal(token) {
			return true
		}
	}
	return false
}

// String joins the distinguished forms of the aliases with '|'.
func (t *Template) String() string {
	if t == nil {
		return ""
	}
	forms := make([]string, len(t.tokens))
	for i, tok := range t.tokens {
		forms[i] = tok.DistinguishedForm()
	}
	return strings.Join(forms, templateSeparator)
}

// TemplateSet tracks every alias in use by the options, switches and help
// flag of one configuration.
type TemplateSet struct {
	used []Token
}

// Add registers the aliases of t. It fails when any alias is already taken;
// nothing is registered in that case.
func (s *TemplateSet) Add(t *Template) error {
	for _, tok := range t.tokens {
		for _, existing := range s.used {
			if existing.Equal(tok) {
				return NewConfigurationError("%q is already in use by another option or switch.", tok.DistinguishedForm())
			}
		}
	}
	s.used = append(s.used, t.tokens...)
	return nil
}

// Len returns the number of registered aliases.
func (s *TemplateSet) Len() int { return len(s.used) }

// Forms returns the distinguished form of every registered alias.
func (s *TemplateSet) Forms() []string {
	forms := make([]string, len(s.used))
	for i, tok := range s.used {
		forms[i] = tok.DistinguishedForm()
	}
	return forms
}
