package argbind

import (
	"fmt"
	stdio "io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	bindio "github.com/dzonerzy/go-argbind/io"
	"github.com/dzonerzy/go-argbind/parse"
)

// HelpContentProvider supplies the lines shown when help is requested.
type HelpContentProvider interface {
	Content() ([]string, error)
}

// ProviderFunc adapts a function to HelpContentProvider.
type ProviderFunc func() ([]string, error)

// Content calls f.
func (f ProviderFunc) Content() ([]string, error) { return f() }

// Content provides fixed lines.
func Content(lines ...string) HelpContentProvider {
	return ProviderFunc(func() ([]string, error) { return lines, nil })
}

// FileContent reads the lines of a text file every time help is shown.
func FileContent(path string) HelpContentProvider {
	return ProviderFunc(func() ([]string, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return splitLines(string(data)), nil
	})
}

// HelpDocument is the structure read by YAMLContent.
//
//	usage: backup [options] SOURCE
//	description: |
//	  Copies SOURCE somewhere safe.
//	sections:
//	  - title: Options
//	    entries:
//	      - name: -o|--output
//	        text: Target directory.
type HelpDocument struct {
	Usage       string        `yaml:"usage"`
	Description string        `yaml:"description"`
	Sections    []HelpSection `yaml:"sections"`
}

// HelpSection is a titled block of a HelpDocument.
type HelpSection struct {
	Title   string      `yaml:"title"`
	Lines   []string    `yaml:"lines"`
	Entries []HelpEntry `yaml:"entries"`
}

// HelpEntry is a name and its description, rendered as two columns.
type HelpEntry struct {
	Name string `yaml:"name"`
	Text string `yaml:"text"`
}

// YAMLContent reads a HelpDocument from a YAML file.
func YAMLContent(path string) HelpContentProvider {
	return ProviderFunc(func() ([]string, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		var doc HelpDocument
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("help document %s: %w", path, err)
		}
		return doc.Lines(), nil
	})
}

// Lines renders the document.
func (d *HelpDocument) Lines() []string {
	var lines []string
	if d.Usage != "" {
		lines = append(lines, "Usage: "+d.Usage)
	}
	if d.Description != "" {
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, splitLines(strings.TrimRight(d.Description, "\n"))...)
	}

	for _, section := range d.Sections {
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		if section.Title != "" {
			lines = append(lines, section.Title+":")
		}
		for _, line := range section.Lines {
			lines = append(lines, "  "+line)
		}

		width := 0
		for _, e := range section.Entries {
			width = max(width, len(e.Name))
		}
		for _, e := range section.Entries {
			lines = append(lines, columns(e.Name, e.Text, width))
		}
	}
	return lines
}

func columns(name, text string, width int) string {
	if text == "" {
		return "  " + name
	}
	return fmt.Sprintf("  %-*s  %s", width, name, text)
}

func splitLines(s string) []string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, "\r")
	}
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines
}

// helpContent calls provider and reports its failures as configuration
// errors.
func helpContent(provider HelpContentProvider) ([]string, error) {
	lines, err := provider.Content()
	if err != nil {
		return nil, parse.NewConfigurationError("Content provider %T returned an error.", provider).WithCause(err)
	}
	if lines == nil {
		return nil, parse.NewConfigurationError("Content provider %T returned nil content.", provider)
	}
	return lines, nil
}

// HelpWriter renders help content.
type HelpWriter interface {
	WriteContent(lines []string) error
}

// ConsoleHelpWriter writes help to the standard output of an IOManager.
// Section titles (unindented lines ending in ':') are bold when color is
// supported, and lines wider than the terminal are wrapped.
type ConsoleHelpWriter struct {
	io *bindio.IOManager
}

// NewConsoleHelpWriter creates a console help writer.
func NewConsoleHelpWriter(io *bindio.IOManager) *ConsoleHelpWriter {
	return &ConsoleHelpWriter{io: io}
}

func (w *ConsoleHelpWriter) WriteContent(lines []string) error {
	width := w.io.Width()
	var b strings.Builder
	for _, line := range lines {
		if isTitle(line) {
			b.WriteString(w.io.Bold(line))
			b.WriteByte('\n')
			continue
		}
		for _, part := range wrap(line, width) {
			b.WriteString(part)
			b.WriteByte('\n')
		}
	}
	_, err := stdio.WriteString(w.io.Out(), b.String())
	return err
}

func isTitle(line string) bool {
	return line != "" && line[0] != ' ' && line[0] != '\t' && strings.HasSuffix(line, ":")
}

// wrap splits line at spaces so no part exceeds width. Continuation parts
// keep the line's indentation.
func wrap(line string, width int) []string {
	if width <= 0 || len(line) <= width {
		return []string{line}
	}

	indent := line[:len(line)-len(strings.TrimLeft(line, " "))]
	words := strings.Fields(line)

	var parts []string
	current := indent
	for _, word := range words {
		if strings.TrimSpace(current) != "" && len(current)+1+len(word) > width {
			parts = append(parts, current)
			current = indent
		}
		if strings.TrimSpace(current) != "" {
			current += " "
		}
		current += word
	}
	return append(parts, current)
}

// WriterHelpWriter writes help lines unchanged to an io.Writer.
type WriterHelpWriter struct {
	w stdio.Writer
}

// NewWriterHelpWriter creates a plain help writer.
func NewWriterHelpWriter(w stdio.Writer) *WriterHelpWriter {
	return &WriterHelpWriter{w: w}
}

func (w *WriterHelpWriter) WriteContent(lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w.w, line); err != nil {
			return err
		}
	}
	return nil
}

// usage generates help lines from the declared arguments.
func (c *Config[O]) usage() []string {
	var lines []string
	if c.description != "" {
		lines = append(lines, c.description, "")
	}

	args := c.Args()
	var options, positionals []ArgInfo
	for _, a := range args {
		if a.Kind == KindPositional {
			positionals = append(positionals, a)
		} else {
			options = append(options, a)
		}
	}

	var usage strings.Builder
	usage.WriteString("Usage:\n  ")
	usage.WriteString(c.program)
	if c.template != nil {
		usage.WriteString(" " + c.template.First().DistinguishedForm())
	}
	if len(options) > 0 || c.help != nil {
		usage.WriteString(" [OPTIONS]")
	}
	commands := c.listCommands()
	if len(commands) > 0 {
		usage.WriteString(" [COMMAND]")
	}
	for _, p := range positionals {
		usage.WriteString(" " + p.Placeholder)
		if p.MultiValued {
			usage.WriteString("...")
		}
	}
	lines = append(lines, splitLines(usage.String())...)

	if len(options) > 0 || c.help != nil {
		entries := make([]HelpEntry, 0, len(options)+1)
		for _, o := range options {
			entries = append(entries, HelpEntry{Name: optionDisplay(o), Text: describeArg(o)})
		}
		if c.help != nil {
			entries = append(entries, HelpEntry{Name: strings.ReplaceAll(c.help.String(), "|", ", "), Text: "Show this help."})
		}
		lines = append(lines, "", "Options:")
		lines = append(lines, renderEntries(entries)...)
	}

	if len(positionals) > 0 {
		entries := make([]HelpEntry, 0, len(positionals))
		for _, p := range positionals {
			entries = append(entries, HelpEntry{Name: p.Placeholder, Text: describeArg(p)})
		}
		lines = append(lines, "", "Arguments:")
		lines = append(lines, renderEntries(entries)...)
	}

	if len(commands) > 0 {
		lines = append(lines, "", "Commands:")
		lines = append(lines, renderEntries(commands)...)
	}
	return lines
}

func (c *Config[O]) listCommands() []HelpEntry {
	if c.commands == nil {
		return nil
	}
	return c.commands()
}

func optionDisplay(a ArgInfo) string {
	name := strings.ReplaceAll(a.Template, "|", ", ")
	if a.Kind == KindOption {
		name += " " + a.Placeholder
	}
	return name
}

func describeArg(a ArgInfo) string {
	text := a.Description
	if len(a.Choices) > 0 {
		text = strings.TrimSpace(text + " (one of: " + strings.Join(a.Choices, ", ") + ")")
	}
	if a.MultiValued && a.Kind != KindSwitch {
		text = strings.TrimSpace(text + " [repeatable]")
	}
	return text
}

func renderEntries(entries []HelpEntry) []string {
	width := 0
	for _, e := range entries {
		width = max(width, len(e.Name))
	}
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, columns(e.Name, e.Text, width))
	}
	return lines
}
