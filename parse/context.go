package parse

import "fmt"

// entry pairs a token with its index in the flattened token stream, so
// positional parsers can tell which slot a value came from.
type entry struct {
	index int
	token Token
}

func (e entry) String() string { return fmt.Sprintf("@%d: %s", e.index, e.token) }

// Context is the mutable, order-preserving set of tokens not yet consumed
// by any parser. A Context belongs to exactly one parse invocation.
//
// TryTake operations remove the current entry on success and advance the
// cursor on failure. Independent scans must call Reset first.
type Context struct {
	entries []entry
	cursor  int
}

// NewContext tokenizes args. Tokenization stops at the first "--"; every
// later argument is kept verbatim as a plain value.
func NewContext(args []string) (*Context, error) {
	entries := make([]entry, 0, len(args)*2)

	i := 0
	ended := false
	for ; i < len(args) && !ended; i++ {
		tokens, err := ArgumentTokenizer.Tokenize(args[i])
		if err != nil {
			return nil, &UsageError{Type: ErrorTypeUsage, Message: err.Error(), Token: args[i], Cause: err}
		}
		for _, tok := range tokens {
			if tok.Kind == OptionsEnd {
				ended = true
				break
			}
			entries = append(entries, entry{index: len(entries), token: tok})
		}
	}
	for ; i < len(args); i++ {
		if args[i] == "" {
			continue
		}
		entries = append(entries, entry{index: len(entries), token: NewToken(Value, args[i])})
	}

	return &Context{entries: entries}, nil
}

// Ready reports whether the cursor points at an entry.
func (c *Context) Ready() bool { return c.cursor < len(c.entries) }

// Current returns the token at the cursor. It is only valid when Ready.
func (c *Context) Current() Token { return c.entries[c.cursor].token }

// CurrentIndex returns the stream index of the token at the cursor.
func (c *Context) CurrentIndex() int { return c.entries[c.cursor].index }

// Count returns the number of unconsumed entries.
func (c *Context) Count() int { return len(c.entries) }

// Reset rewinds the cursor and reports whether any entries remain.
func (c *Context) Reset() bool {
	c.cursor = 0
	return c.Ready()
}

// Tokens returns the unconsumed tokens in order.
func (c *Context) Tokens() []Token {
	out := make([]Token, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.token
	}
	return out
}

// TryTakeStringValue consumes the current token if it is a plain value.
func (c *Context) TryTakeStringValue() (Token, bool) {
	return c.takeOrSkip(func(t Token) bool { return t.Kind == Value }, -1)
}

// TryTakeTemplate consumes the current token if template contains it.
func (c *Context) TryTakeTemplate(template *Template) bool {
	_, ok := c.takeOrSkip(template.Contains, -1)
	return ok
}

// TryTakeTemplateAt is like TryTakeTemplate but also requires the current
// token to sit at the given stream index.
func (c *Context) TryTakeTemplateAt(template *Template, index int) bool {
	_, ok := c.takeOrSkip(template.Contains, index)
	return ok
}

func (c *Context) takeOrSkip(match func(Token) bool, index int) (Token, bool) {
	if !c.Ready() {
		return Token{}, false
	}

	current := c.entries[c.cursor]
	if !match(current.token) || (index >= 0 && current.index != index) {
		c.cursor++
		return Token{}, false
	}

	c.entries = append(c.entries[:c.cursor], c.entries[c.cursor+1:]...)
	return current.token, true
}

func (c *Context) String() string {
	if !c.Ready() {
		return "(end/empty)"
	}
	return c.entries[c.cursor].String()
}
