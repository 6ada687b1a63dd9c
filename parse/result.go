package parse

import "strings"

// Result is the bit-flag outcome of processing a context. Results of
// several parsers and passes are combined with bitwise OR.
type Result uint8

const (
	ResultNoMatch  Result = 0
	ResultHelp     Result = 1
	ResultArgument Result = 2
	ResultCommand  Result = 4
)

// Has reports whether all bits of flag are set.
func (r Result) Has(flag Result) bool { return r&flag == flag }

func (r Result) String() string {
	if r == ResultNoMatch {
		return "NoMatch"
	}
	var parts []string
	if r.Has(ResultHelp) {
		parts = append(parts, "Help")
	}
	if r.Has(ResultArgument) {
		parts = append(parts, "Argument")
	}
	if r.Has(ResultCommand) {
		parts = append(parts, "Command")
	}
	return strings.Join(parts, "|")
}

// ParserType orders parser dispatch.
type ParserType int

const (
	ParserCommand ParserType = iota
	ParserHelp
	ParserOption
	ParserPositionArgument
)

// DispatchOrder is the fixed order in which parser types are applied to a
// context after command selection.
var DispatchOrder = []ParserType{ParserHelp, ParserOption, ParserPositionArgument}

func (p ParserType) String() string {
	switch p {
	case ParserCommand:
		return "command"
	case ParserHelp:
		return "help"
	case ParserOption:
		return "option"
	case ParserPositionArgument:
		return "position-argument"
	default:
		return "unknown"
	}
}
