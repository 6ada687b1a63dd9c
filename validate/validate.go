// Package validate provides value validators for option and argument
// builders.
//
// A validator pairs a predicate with a message. The message is rendered
// only for values the predicate rejected and becomes the text of the
// resulting validation error:
//
//	argbind.Option[Opts, int](cfg, "--port").
//		Validate(validate.Between(1024, 65535))
package validate

import (
	"cmp"
	"fmt"
	"regexp"
	"strings"

	"github.com/dzonerzy/go-argbind/parse"
)

const defaultMessage = "value is invalid"

// Rule is a predicate with a message. All constructors in this package
// return a *Rule so the message can be overridden.
type Rule[T any] struct {
	check   func(T) bool
	message func(T) string
}

// Validate reports whether value is accepted.
func (r *Rule[T]) Validate(value T) bool { return r.check(value) }

// Message describes why value was rejected.
func (r *Rule[T]) Message(value T) string {
	if r.message == nil {
		return defaultMessage
	}
	return r.message(value)
}

// WithMessage replaces the rejection message with a fixed string.
func (r *Rule[T]) WithMessage(message string) *Rule[T] {
	r.message = func(T) string { return message }
	return r
}

// WithMessageFunc renders the rejection message from the rejected value.
func (r *Rule[T]) WithMessageFunc(fn func(T) string) *Rule[T] {
	r.message = fn
	return r
}

// Predicate accepts values for which fn returns true. An empty message
// falls back to "value is invalid".
func Predicate[T any](fn func(T) bool, message string) *Rule[T] {
	r := &Rule[T]{check: fn}
	if message != "" {
		r.WithMessage(message)
	}
	return r
}

// Using is Predicate with a state value passed to every call, so a single
// function can serve several bounds.
func Using[T, S any](state S, fn func(value T, state S) bool, message string) *Rule[T] {
	return Predicate(func(value T) bool { return fn(value, state) }, message)
}

func bound[T cmp.Ordered](limit T, accept func(int) bool, text string) *Rule[T] {
	return &Rule[T]{
		check:   func(value T) bool { return accept(cmp.Compare(value, limit)) },
		message: func(T) string { return fmt.Sprintf("value must be %s %v", text, limit) },
	}
}

// Less accepts values strictly below limit.
func Less[T cmp.Ordered](limit T) *Rule[T] {
	return bound(limit, func(c int) bool { return c < 0 }, "less than")
}

// LessOrEqual accepts values up to and including limit.
func LessOrEqual[T cmp.Ordered](limit T) *Rule[T] {
	return bound(limit, func(c int) bool { return c <= 0 }, "less or equal to")
}

// Greater accepts values strictly above limit.
func Greater[T cmp.Ordered](limit T) *Rule[T] {
	return bound(limit, func(c int) bool { return c > 0 }, "greater than")
}

// GreaterOrEqual accepts values from limit upwards.
func GreaterOrEqual[T cmp.Ordered](limit T) *Rule[T] {
	return bound(limit, func(c int) bool { return c >= 0 }, "greater or equal to")
}

// Between accepts values in the closed range [minimum, maximum]. The
// message names whichever bound was violated.
func Between[T cmp.Ordered](minimum, maximum T) *Rule[T] {
	return Combine[T](GreaterOrEqual(minimum), LessOrEqual(maximum))
}

// In accepts values equal to one of values.
func In[T comparable](values ...T) *Rule[T] {
	allowed := make([]T, len(values))
	copy(allowed, values)

	return &Rule[T]{
		check: func(value T) bool {
			for _, v := range allowed {
				if v == value {
					return true
				}
			}
			return false
		},
		message: func(T) string {
			parts := make([]string, len(allowed))
			for i, v := range allowed {
				parts[i] = fmt.Sprint(v)
			}
			return "value must be one of the following: " + strings.Join(parts, ", ")
		},
	}
}

// Matches accepts values whose fmt.Sprint form matches re.
func Matches[T any](re *regexp.Regexp) *Rule[T] {
	return &Rule[T]{
		check:   func(value T) bool { return re.MatchString(fmt.Sprint(value)) },
		message: func(T) string { return "value must match the following pattern: " + re.String() },
	}
}

// Combine accepts values every validator accepts. The message comes from
// the first validator that rejects the value.
func Combine[T any](validators ...parse.Validator[T]) *Rule[T] {
	first := func(value T) parse.Validator[T] {
		for _, v := range validators {
			if v != nil && !v.Validate(value) {
				return v
			}
		}
		return nil
	}

	return &Rule[T]{
		check: func(value T) bool { return first(value) == nil },
		message: func(value T) string {
			if v := first(value); v != nil {
				return v.Message(value)
			}
			return defaultMessage
		},
	}
}
