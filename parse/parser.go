package parse

import (
	"fmt"
)

// Converter turns a raw argument value into T.
type Converter[T any] interface {
	Convert(value string) (T, error)
}

// Validator checks a converted value. Message is only called for values
// Validate rejected.
type Validator[T any] interface {
	Validate(value T) bool
	Message(value T) string
}

// Mapper writes a converted value onto the options object. Multi-valued
// mappers are retried against the context until they stop matching.
type Mapper[O, T any] interface {
	Map(options O, value T) error
	MultiValued() bool
}

// ArgumentParser inspects the context and, on a match, consumes tokens and
// maps their values onto options.
type ArgumentParser[O any] interface {
	Type() ParserType
	MultiValued() bool
	Process(options O, ctx *Context) (Result, error)
}

// acceptor implements the convert, validate, map sequence shared by all
// value-carrying parsers.
type acceptor[O, T any] struct {
	converter Converter[T]
	validator Validator[T]
	mapper    Mapper[O, T]
}

func newAcceptor[O, T any](c Converter[T], v Validator[T], m Mapper[O, T]) (acceptor[O, T], error) {
	if c == nil {
		return acceptor[O, T]{}, NewConfigurationError("no converter defined for type %s", TypeName(TypeOf[T]()))
	}
	if m == nil {
		return acceptor[O, T]{}, NewConfigurationError("no mapper defined for type %s", TypeName(TypeOf[T]()))
	}
	return acceptor[O, T]{converter: c, validator: v, mapper: m}, nil
}

func (a *acceptor[O, T]) MultiValued() bool { return a.mapper.MultiValued() }

func (a *acceptor[O, T]) accept(context string, options O, token Token) error {
	value, err := a.convert(context, token.Value)
	if err != nil {
		return err
	}
	if err := a.validate(context, value); err != nil {
		return err
	}
	return a.mapValue(context, options, value)
}

func (a *acceptor[O, T]) convert(context, raw string) (value T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errConversion(context, raw, TypeOf[T](), fmt.Errorf("%v", r))
		}
	}()

	value, err = a.converter.Convert(raw)
	if err != nil {
		if IsConfiguration(err) {
			return value, err
		}
		return value, errConversion(context, raw, TypeOf[T](), err)
	}
	return value, nil
}

func (a *acceptor[O, T]) validate(context string, value T) (err error) {
	if a.validator == nil {
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			err = NewConfigurationError("%s: validation failed - %v", context, r).WithCause(panicError(r))
		}
	}()

	if a.validator.Validate(value) {
		return nil
	}
	return errValidation(context, a.validator.Message(value), value)
}

func (a *acceptor[O, T]) mapValue(context string, options O, value T) (err error) {
	defer func() {
		if r := recover(); r != nil {
			cause := panicError(r)
			err = NewConfigurationError("%s: mapping failed - %v", context, cause).WithCause(cause)
		}
	}()

	if err := a.mapper.Map(options, value); err != nil {
		if IsUsage(err) {
			return err
		}
		return NewConfigurationError("%s: mapping failed - %v", context, err).WithCause(err)
	}
	return nil
}

func panicError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("%v", r)
}

// OptionParser matches a template and requires the next plain value as its
// operand.
type OptionParser[O, T any] struct {
	acceptor[O, T]
	template *Template
}

// NewOptionParser creates an option parser. The validator may be nil.
func NewOptionParser[O, T any](template *Template, c Converter[T], v Validator[T], m Mapper[O, T]) (*OptionParser[O, T], error) {
	a, err := newAcceptor(c, v, m)
	if err != nil {
		return nil, err
	}
	return &OptionParser[O, T]{acceptor: a, template: template}, nil
}

func (p *OptionParser[O, T]) Type() ParserType    { return ParserOption }
func (p *OptionParser[O, T]) Template() *Template { return p.template }
func (p *OptionParser[O, T]) String() string      { return "option " + p.template.String() }

// Process takes the template and then the operand. A matched template with
// no following plain value is a usage error.
func (p *OptionParser[O, T]) Process(options O, ctx *Context) (Result, error) {
	if !ctx.TryTakeTemplate(p.template) {
		return ResultNoMatch, nil
	}
	operand, ok := ctx.TryTakeStringValue()
	if !ok {
		return ResultNoMatch, errOperandMissing(p.template)
	}
	if err := p.accept(p.String(), options, operand); err != nil {
		return ResultNoMatch, err
	}
	return ResultArgument, nil
}

// SwitchParser matches a template and accepts TrueToken without consuming
// an operand.
type SwitchParser[O, T any] struct {
	acceptor[O, T]
	template *Template
}

// NewSwitchParser creates a switch parser. The validator may be nil.
func NewSwitchParser[O, T any](template *Template, c Converter[T], v Validator[T], m Mapper[O, T]) (*SwitchParser[O, T], error) {
	a, err := newAcceptor(c, v, m)
	if err != nil {
		return nil, err
	}
	return &SwitchParser[O, T]{acceptor: a, template: template}, nil
}

// Switches share the option dispatch pass.
func (p *SwitchParser[O, T]) Type() ParserType    { return ParserOption }
func (p *SwitchParser[O, T]) Template() *Template { return p.template }
func (p *SwitchParser[O, T]) String() string      { return "switch " + p.template.String() }

func (p *SwitchParser[O, T]) Process(options O, ctx *Context) (Result, error) {
	if !ctx.TryTakeTemplate(p.template) {
		return ResultNoMatch, nil
	}
	if err := p.accept(p.String(), options, TrueToken); err != nil {
		return ResultNoMatch, err
	}
	return ResultArgument, nil
}

// PositionParser claims the next unclaimed plain value.
type PositionParser[O, T any] struct {
	acceptor[O, T]
	index int
}

// NewPositionParser creates a positional argument parser. index is the
// declaration order of the argument and only appears in messages.
func NewPositionParser[O, T any](index int, c Converter[T], v Validator[T], m Mapper[O, T]) (*PositionParser[O, T], error) {
	a, err := newAcceptor(c, v, m)
	if err != nil {
		return nil, err
	}
	return &PositionParser[O, T]{acceptor: a, index: index}, nil
}

func (p *PositionParser[O, T]) Type() ParserType { return ParserPositionArgument }
func (p *PositionParser[O, T]) String() string   { return fmt.Sprintf("argument @%d", p.index) }

func (p *PositionParser[O, T]) Process(options O, ctx *Context) (Result, error) {
	token, ok := ctx.TryTakeStringValue()
	if !ok {
		return ResultNoMatch, nil
	}
	if err := p.accept(p.String(), options, token); err != nil {
		return ResultNoMatch, err
	}
	return ResultArgument, nil
}

// HelpParser matches the help template anywhere in the context.
type HelpParser[O any] struct {
	template *Template
}

// NewHelpParser creates a help flag parser.
func NewHelpParser[O any](template *Template) *HelpParser[O] {
	return &HelpParser[O]{template: template}
}

func (p *HelpParser[O]) Type() ParserType    { return ParserHelp }
func (p *HelpParser[O]) MultiValued() bool   { return false }
func (p *HelpParser[O]) Template() *Template { return p.template }

func (p *HelpParser[O]) Process(_ O, ctx *Context) (Result, error) {
	if ctx.TryTakeTemplate(p.template) {
		return ResultHelp, nil
	}
	return ResultNoMatch, nil
}

// Map applies every parser of the given type to ctx. Each parser scans the
// context from the start; a single-valued parser stops after it consumed
// once, a multi-valued one keeps scanning until the context is exhausted.
func Map[O any](options O, parsers []ArgumentParser[O], ctx *Context, typ ParserType) (Result, error) {
	result := ResultNoMatch

	for _, parser := range parsers {
		if parser.Type() != typ {
			continue
		}
		if !ctx.Reset() {
			break
		}
		for ctx.Ready() {
			count := ctx.Count()
			r, err := parser.Process(options, ctx)
			if err != nil {
				return result, err
			}
			result |= r
			if count != ctx.Count() && !parser.MultiValued() {
				break
			}
		}
	}

	return result, nil
}
