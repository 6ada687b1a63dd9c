// Package mapping writes converted argument values onto options objects.
//
// Single-valued mappers (Field, Func) make their parser stop after the
// first match. Multi-valued mappers (Many, Slice, Set, Queue, Stack) keep
// their parser scanning so every occurrence is collected.
package mapping

import (
	"errors"

	"github.com/dzonerzy/go-argbind/parse"
)

// ErrNilTarget is returned when a projection yields no target to write to.
var ErrNilTarget = errors.New("target projection returned nil")

// mapper adapts a function to parse.Mapper.
type mapper[O, T any] struct {
	fn    func(O, T) error
	multi bool
}

func (m *mapper[O, T]) Map(options O, value T) error { return m.fn(options, value) }
func (m *mapper[O, T]) MultiValued() bool           { return m.multi }

// Func maps a single value through fn.
func Func[O, T any](fn func(options O, value T) error) parse.Mapper[O, T] {
	return &mapper[O, T]{fn: fn}
}

// Many maps every occurrence through fn.
func Many[O, T any](fn func(options O, value T) error) parse.Mapper[O, T] {
	return &mapper[O, T]{fn: fn, multi: true}
}

// Field assigns the value to the field returned by target.
func Field[O, T any](target func(O) *T) parse.Mapper[O, T] {
	return Func(func(options O, value T) error {
		p := target(options)
		if p == nil {
			return ErrNilTarget
		}
		*p = value
		return nil
	})
}

// Slice appends every occurrence to the slice returned by target.
func Slice[O, T any](target func(O) *[]T) parse.Mapper[O, T] {
	return Many(func(options O, value T) error {
		p := target(options)
		if p == nil {
			return ErrNilTarget
		}
		*p = append(*p, value)
		return nil
	})
}

// Set adds every occurrence to the set returned by target, allocating the
// map on first use. Duplicates collapse.
func Set[O any, T comparable](target func(O) *map[T]struct{}) parse.Mapper[O, T] {
	return Many(func(options O, value T) error {
		p := target(options)
		if p == nil {
			return ErrNilTarget
		}
		if *p == nil {
			*p = make(map[T]struct{})
		}
		(*p)[value] = struct{}{}
		return nil
	})
}

// Queue enqueues every occurrence. The head of the queue is the first
// occurrence on the command line.
func Queue[O, T any](target func(O) *[]T) parse.Mapper[O, T] {
	return Slice(target)
}

// Stack pushes every occurrence. The top of the stack, index 0, is the
// last occurrence on the command line.
func Stack[O, T any](target func(O) *[]T) parse.Mapper[O, T] {
	return Many(func(options O, value T) error {
		p := target(options)
		if p == nil {
			return ErrNilTarget
		}
		*p = append([]T{value}, *p...)
		return nil
	})
}
