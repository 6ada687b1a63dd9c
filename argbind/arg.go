package argbind

import (
	"fmt"

	"github.com/dzonerzy/go-argbind/convert"
	"github.com/dzonerzy/go-argbind/mapping"
	"github.com/dzonerzy/go-argbind/parse"
	"github.com/dzonerzy/go-argbind/validate"
)

// ArgKind tells options, switches and positional arguments apart.
type ArgKind int

const (
	KindOption ArgKind = iota
	KindSwitch
	KindPositional
)

func (k ArgKind) String() string {
	switch k {
	case KindOption:
		return "option"
	case KindSwitch:
		return "switch"
	case KindPositional:
		return "argument"
	default:
		return "unknown"
	}
}

// ArgInfo describes a declared argument for help generation.
type ArgInfo struct {
	Kind        ArgKind
	Template    string // empty for positional arguments
	Placeholder string
	Description string
	Choices     []string
	MultiValued bool
}

// binder is a declared argument waiting to become a parser.
type binder[O any] interface {
	build() (parse.ArgumentParser[*O], error)
	info() ArgInfo
}

// ArgBuilder configures one option, switch or positional argument bound to
// options of type *O with values of type T. Converter and mapper are
// resolved when the application is validated, so calls may come in any
// order.
type ArgBuilder[O, T any] struct {
	kind        ArgKind
	template    *parse.Template
	index       int
	converter   parse.Converter[T]
	validators  []parse.Validator[T]
	mapper      parse.Mapper[*O, T]
	placeholder string
	description string
	choices     []string
}

// Option declares an option taking an operand, e.g. "-n|--name".
func Option[O, T any](cfg *Config[O], template string) *ArgBuilder[O, T] {
	b := &ArgBuilder[O, T]{kind: KindOption, placeholder: "VALUE"}
	if cfg.frozen("Option " + template) {
		return b
	}
	b.template = cfg.register(template)
	cfg.binders = append(cfg.binders, b)
	return b
}

// Switch declares a boolean flag that takes no operand, e.g. "-v|--verbose".
func Switch[O any](cfg *Config[O], template string) *ArgBuilder[O, bool] {
	b := &ArgBuilder[O, bool]{kind: KindSwitch}
	if cfg.frozen("Switch " + template) {
		return b
	}
	b.template = cfg.register(template)
	cfg.binders = append(cfg.binders, b)
	return b
}

// Positional declares the next positional argument of cfg.
func Positional[O, T any](cfg *Config[O]) *ArgBuilder[O, T] {
	b := &ArgBuilder[O, T]{kind: KindPositional, index: cfg.positions, placeholder: "ARG"}
	if cfg.frozen("Positional argument") {
		return b
	}
	cfg.positions++
	cfg.binders = append(cfg.binders, b)
	return b
}

// Convert sets the converter. The default comes from convert.Default.
func (b *ArgBuilder[O, T]) Convert(c parse.Converter[T]) *ArgBuilder[O, T] {
	b.converter = c
	if keyed, ok := c.(interface{ Keys() []string }); ok && len(b.choices) == 0 {
		b.choices = keyed.Keys()
	}
	return b
}

// ConvertFunc sets a converter function.
func (b *ArgBuilder[O, T]) ConvertFunc(fn func(string) (T, error)) *ArgBuilder[O, T] {
	return b.Convert(convert.Func[T](fn))
}

// Validate adds validators. All must accept the value; the first rejecting
// one supplies the message.
func (b *ArgBuilder[O, T]) Validate(validators ...parse.Validator[T]) *ArgBuilder[O, T] {
	b.validators = append(b.validators, validators...)
	return b
}

// Map sets the mapper.
func (b *ArgBuilder[O, T]) Map(m parse.Mapper[*O, T]) *ArgBuilder[O, T] {
	b.mapper = m
	return b
}

// MapTo maps the value to the field target points at.
func (b *ArgBuilder[O, T]) MapTo(target func(*O) *T) *ArgBuilder[O, T] {
	return b.Map(mapping.Field(target))
}

// MapFunc maps the value with fn. The argument is single-valued.
func (b *ArgBuilder[O, T]) MapFunc(fn func(*O, T) error) *ArgBuilder[O, T] {
	return b.Map(mapping.Func(fn))
}

// MapMany maps every occurrence with fn.
func (b *ArgBuilder[O, T]) MapMany(fn func(*O, T) error) *ArgBuilder[O, T] {
	return b.Map(mapping.Many(fn))
}

// AppendTo appends every occurrence to a slice.
func (b *ArgBuilder[O, T]) AppendTo(target func(*O) *[]T) *ArgBuilder[O, T] {
	return b.Map(mapping.Slice(target))
}

// EnqueueTo appends every occurrence to a slice read front to back.
func (b *ArgBuilder[O, T]) EnqueueTo(target func(*O) *[]T) *ArgBuilder[O, T] {
	return b.Map(mapping.Queue(target))
}

// PushTo prepends every occurrence, so the last one comes first.
func (b *ArgBuilder[O, T]) PushTo(target func(*O) *[]T) *ArgBuilder[O, T] {
	return b.Map(mapping.Stack(target))
}

// Placeholder names the operand in generated help, e.g. "FILE".
func (b *ArgBuilder[O, T]) Placeholder(name string) *ArgBuilder[O, T] {
	b.placeholder = name
	return b
}

// Description sets the help description.
func (b *ArgBuilder[O, T]) Description(description string) *ArgBuilder[O, T] {
	b.description = description
	return b
}

// AddTo adds every occurrence to a set.
func AddTo[O any, T comparable](b *ArgBuilder[O, T], target func(*O) *map[T]struct{}) *ArgBuilder[O, T] {
	return b.Map(mapping.Set(target))
}

// Choices restricts the value to values.
func Choices[O any, T comparable](b *ArgBuilder[O, T], values ...T) *ArgBuilder[O, T] {
	b.choices = b.choices[:0]
	for _, v := range values {
		b.choices = append(b.choices, fmt.Sprint(v))
	}
	return b.Validate(validate.In(values...))
}

func (b *ArgBuilder[O, T]) context() string {
	switch b.kind {
	case KindPositional:
		return fmt.Sprintf("argument @%d", b.index)
	case KindSwitch:
		return "switch " + b.template.String()
	default:
		return "option " + b.template.String()
	}
}

func (b *ArgBuilder[O, T]) info() ArgInfo {
	info := ArgInfo{
		Kind:        b.kind,
		Placeholder: b.placeholder,
		Description: b.description,
		Choices:     b.choices,
		MultiValued: b.mapper != nil && b.mapper.MultiValued(),
	}
	if b.template != nil {
		info.Template = b.template.String()
	}
	return info
}

func (b *ArgBuilder[O, T]) build() (parse.ArgumentParser[*O], error) {
	if b.kind != KindPositional && b.template == nil {
		// The template error was recorded when it was declared.
		return nil, nil
	}

	converter := b.converter
	if converter == nil {
		c, err := convert.Default[T]()
		if err != nil {
			return nil, parse.NewConfigurationError("%s: %v", b.context(), err).WithCause(err)
		}
		converter = c
	}

	var validator parse.Validator[T]
	switch len(b.validators) {
	case 0:
	case 1:
		validator = b.validators[0]
	default:
		validator = validate.Combine(b.validators...)
	}

	if b.mapper == nil {
		return nil, parse.NewConfigurationError("%s: no mapper defined for type %s",
			b.context(), parse.TypeName(parse.TypeOf[T]()))
	}

	switch b.kind {
	case KindSwitch:
		p, err := parse.NewSwitchParser(b.template, converter, validator, b.mapper)
		if err != nil {
			return nil, err
		}
		return p, nil
	case KindPositional:
		p, err := parse.NewPositionParser(b.index, converter, validator, b.mapper)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		p, err := parse.NewOptionParser(b.template, converter, validator, b.mapper)
		if err != nil {
			return nil, err
		}
		return p, nil
	}
}
