// Package intern keeps one canonical copy of option identifiers so repeated
// parses of the same command line share their token strings.
package intern

import "sync"

// DefaultLimit bounds the global table. Identifiers come from user input,
// so the table stops growing once full and returns inputs unchanged.
const DefaultLimit = 1024

// Table is a bounded, concurrency-safe set of canonical strings.
type Table struct {
	mu    sync.RWMutex
	names map[string]string
	limit int
}

// NewTable creates a table holding at most limit strings. A limit <= 0
// selects DefaultLimit.
func NewTable(limit int) *Table {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Table{names: make(map[string]string, 64), limit: limit}
}

// Intern returns the canonical copy of s.
func (t *Table) Intern(s string) string {
	t.mu.RLock()
	if canonical, ok := t.names[s]; ok {
		t.mu.RUnlock()
		return canonical
	}
	t.mu.RUnlock()

	t.mu.Lock()
	defer t.mu.Unlock()
	if canonical, ok := t.names[s]; ok {
		return canonical
	}
	if len(t.names) >= t.limit {
		return s
	}
	t.names[s] = s
	return s
}

// Preload adds names without counting them against the caller's inputs.
func (t *Table) Preload(names ...string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, s := range names {
		if len(t.names) >= t.limit {
			return
		}
		t.names[s] = s
	}
}

// Len returns the number of canonical strings.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.names)
}

// ASCII letters and digits, the characters of short options.
var chars = func() (table [128]string) {
	for c := '0'; c <= '9'; c++ {
		table[c] = string(c)
	}
	for c := 'a'; c <= 'z'; c++ {
		table[c] = string(c)
		table[c-'a'+'A'] = string(c - 'a' + 'A')
	}
	return table
}()

// Char returns c as a string without allocating for ASCII letters and digits.
func Char(c rune) string {
	if c >= 0 && c < 128 && chars[c] != "" {
		return chars[c]
	}
	return string(c)
}

// CommonNames are preloaded into the global table.
var CommonNames = []string{
	"help", "version", "verbose", "quiet", "debug", "force",
	"config", "output", "input", "name", "file", "port", "host",
}

var global = NewTable(DefaultLimit)

func init() { //nolint:gochecknoinits // preload the global table
	global.Preload(CommonNames...)
}

// Name interns s in the global table.
func Name(s string) string { return global.Intern(s) }
