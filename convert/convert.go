// Package convert turns raw argument strings into typed values.
//
// Default resolves a converter for a type by trying strategies in a fixed
// order: string identity, encoding.TextUnmarshaler, builtin scalar parsing
// (bool, integers, floats, time.Duration), registered enumeration names,
// pointers (nullable values), registered string constructors and finally a
// cast through the underlying kind of a named type.
package convert

import (
	"encoding"
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/dzonerzy/go-argbind/parse"
)

// Func adapts a function to parse.Converter.
type Func[T any] func(value string) (T, error)

// Convert calls f(value).
func (f Func[T]) Convert(value string) (T, error) { return f(value) }

// reflectConverter is a resolved strategy for a runtime type.
type reflectConverter func(value string) (reflect.Value, error)

var (
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
	durationType        = reflect.TypeOf(time.Duration(0))
)

// Default returns the default converter for T, or a ConfigurationError when
// no strategy applies.
func Default[T any]() (parse.Converter[T], error) {
	target := parse.TypeOf[T]()
	rc, ok := resolve(target)
	if !ok {
		return nil, errNoDefault(target)
	}
	return Func[T](func(value string) (T, error) {
		var zero T
		v, err := rc(value)
		if err != nil {
			return zero, err
		}
		if !v.IsValid() {
			return zero, nil
		}
		return v.Interface().(T), nil
	}), nil
}

// MustDefault is like Default but panics when no converter exists.
func MustDefault[T any]() parse.Converter[T] {
	c, err := Default[T]()
	if err != nil {
		panic(err)
	}
	return c
}

// Supported reports whether Default can build a converter for T.
func Supported[T any]() bool {
	_, ok := resolve(parse.TypeOf[T]())
	return ok
}

func errNoDefault(t reflect.Type) error {
	return parse.NewConfigurationError("No default converter available for type %s.", parse.TypeName(t))
}

// resolve tries each strategy in resolution order.
func resolve(t reflect.Type) (reflectConverter, bool) {
	strategies := [...]func(reflect.Type) (reflectConverter, bool){
		stringIdentity,
		textUnmarshaler,
		builtinScalar,
		registeredEnum,
		nullable,
		registeredConstructor,
		kindCast,
	}
	for _, strategy := range strategies {
		if rc, ok := strategy(t); ok {
			return rc, true
		}
	}
	return nil, false
}

func stringIdentity(t reflect.Type) (reflectConverter, bool) {
	if t != reflect.TypeOf("") {
		return nil, false
	}
	return func(value string) (reflect.Value, error) {
		return reflect.ValueOf(value), nil
	}, true
}

func textUnmarshaler(t reflect.Type) (reflectConverter, bool) {
	switch {
	case t.Kind() == reflect.Pointer && t.Implements(textUnmarshalerType):
		return func(value string) (reflect.Value, error) {
			v := reflect.New(t.Elem())
			if err := v.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(value)); err != nil {
				return reflect.Value{}, err
			}
			return v, nil
		}, true
	case t.Kind() != reflect.Pointer && t.Kind() != reflect.Interface && reflect.PointerTo(t).Implements(textUnmarshalerType):
		return func(value string) (reflect.Value, error) {
			v := reflect.New(t)
			if err := v.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(value)); err != nil {
				return reflect.Value{}, err
			}
			return v.Elem(), nil
		}, true
	default:
		return nil, false
	}
}

// builtinScalar handles unnamed scalar types and time.Duration.
func builtinScalar(t reflect.Type) (reflectConverter, bool) {
	if t == durationType {
		return func(value string) (reflect.Value, error) {
			d, err := time.ParseDuration(value)
			if err != nil {
				return reflect.Value{}, err
			}
			return reflect.ValueOf(d), nil
		}, true
	}
	if t.PkgPath() != "" || t.Name() == "" {
		return nil, false
	}
	return scalarParser(t)
}

// kindCast handles named types over a scalar kind, e.g. type Level int.
func kindCast(t reflect.Type) (reflectConverter, bool) {
	if t.PkgPath() == "" {
		return nil, false
	}
	if t.Kind() == reflect.String {
		return func(value string) (reflect.Value, error) {
			return reflect.ValueOf(value).Convert(t), nil
		}, true
	}
	return scalarParser(t)
}

// scalarParser parses by kind and converts the result to t.
func scalarParser(t reflect.Type) (reflectConverter, bool) {
	var parseFn func(string) (any, error)

	switch t.Kind() {
	case reflect.Bool:
		parseFn = func(s string) (any, error) { return strconv.ParseBool(s) }
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		bits := t.Bits()
		parseFn = func(s string) (any, error) { return strconv.ParseInt(s, 0, bits) }
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		bits := t.Bits()
		parseFn = func(s string) (any, error) { return strconv.ParseUint(s, 0, bits) }
	case reflect.Float32, reflect.Float64:
		bits := t.Bits()
		parseFn = func(s string) (any, error) { return strconv.ParseFloat(s, bits) }
	default:
		return nil, false
	}

	return func(value string) (reflect.Value, error) {
		parsed, err := parseFn(value)
		if err != nil {
			return reflect.Value{}, unwrapNumError(err)
		}
		return reflect.ValueOf(parsed).Convert(t), nil
	}, true
}

// nullable handles *T for any convertible T. An empty value yields nil.
func nullable(t reflect.Type) (reflectConverter, bool) {
	if t.Kind() != reflect.Pointer {
		return nil, false
	}
	elem, ok := resolve(t.Elem())
	if !ok {
		return nil, false
	}
	return func(value string) (reflect.Value, error) {
		if value == "" {
			return reflect.Zero(t), nil
		}
		v, err := elem(value)
		if err != nil {
			return reflect.Value{}, err
		}
		ptr := reflect.New(t.Elem())
		ptr.Elem().Set(v)
		return ptr, nil
	}, true
}

func unwrapNumError(err error) error {
	if ne, ok := err.(*strconv.NumError); ok {
		return fmt.Errorf("%s: %w", ne.Func, ne.Err)
	}
	return err
}
