// Package parse implements the argument tokenizer, templates, the parse
// context consumption protocol and the per-kind argument parsers used by
// the argbind runtime.
package parse

import "fmt"

// Kind classifies a token produced from a template or a raw argument.
type Kind int

const (
	// Value is a plain, non-template value (operands, positional arguments
	// and command names).
	Value Kind = iota
	// ShortOption is a single character option such as -v.
	ShortOption
	// LongOption is a word option such as --verbose.
	LongOption
	// CompositeOption is the identifier half of -x=value or --name:value.
	CompositeOption
	// OptionsEnd is the -- marker.
	OptionsEnd
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case Value:
		return "Value"
	case ShortOption:
		return "ShortOption"
	case LongOption:
		return "LongOption"
	case CompositeOption:
		return "CompositeOption"
	case OptionsEnd:
		return "OptionsEnd"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// isOption reports whether the kind takes part in cross-kind equality.
func (k Kind) isOption() bool {
	return k == ShortOption || k == LongOption || k == CompositeOption
}

// Token is an immutable lexical unit. The zero Token is the empty token.
type Token struct {
	Kind  Kind
	Value string
}

var (
	// OptionsEndToken is the sentinel produced for "--".
	OptionsEndToken = Token{Kind: OptionsEnd}

	// TrueToken is accepted by switch parsers in place of an operand.
	TrueToken = Token{Kind: Value, Value: "true"}
)

// NewToken creates a token, panicking when the value is empty for a kind
// that requires one. Tokens are only built from matcher output and
// literals, so an empty value is a programming error.
func NewToken(kind Kind, value string) Token {
	if value == "" && kind != OptionsEnd {
		panic(fmt.Sprintf("parse: empty value for %s token", kind))
	}
	return Token{Kind: kind, Value: value}
}

// Equal compares two tokens. Short, long and composite option tokens are
// interchangeable when their values match.
func (t Token) Equal(other Token) bool {
	if t.Kind.isOption() && other.Kind.isOption() {
		return t.Value == other.Value
	}
	return t.Kind == other.Kind && t.Value == other.Value
}

// IsZero reports whether t is the empty token.
func (t Token) IsZero() bool { return t == Token{} }

// DistinguishedForm renders the token the way a user would type it.
func (t Token) DistinguishedForm() string {
	switch t.Kind {
	case ShortOption:
		return "-" + t.Value
	case LongOption:
		return "--" + t.Value
	case CompositeOption:
		if len(t.Value) == 1 {
			return "-" + t.Value
		}
		return "--" + t.Value
	case OptionsEnd:
		return "--"
	default:
		return t.Value
	}
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%s)", t.Kind, t.DistinguishedForm())
}
