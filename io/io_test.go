package bindio

import (
	"bytes"
	"strings"
	"testing"
)

func newBuffered() (*IOManager, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return New().WithOut(&out).WithErr(&errOut), &out, &errOut
}

func TestEnvFallbackSize(t *testing.T) {
	t.Setenv("COLUMNS", "101")
	t.Setenv("LINES", "55")
	m, _, _ := newBuffered()
	if m.Width() != 101 || m.Height() != 55 {
		t.Fatalf("want 101x55, got %dx%d", m.Width(), m.Height())
	}
}

func TestDefaultSize(t *testing.T) {
	t.Setenv("COLUMNS", "")
	t.Setenv("LINES", "abc")
	m, _, _ := newBuffered()
	if m.Width() != 80 || m.Height() != 24 {
		t.Fatalf("want 80x24, got %dx%d", m.Width(), m.Height())
	}
}

func TestBufferIsNotTerminal(t *testing.T) {
	m, _, _ := newBuffered()
	m.WithIn(strings.NewReader("input"))
	if m.IsTTY() {
		t.Error("Expected buffer output not to be a TTY")
	}
	if !m.IsRedirected() || !m.IsPiped() {
		t.Error("Expected buffers to count as redirected and piped")
	}
	if m.IsInteractive() {
		t.Error("Expected reader input not to be interactive")
	}
}

func TestColorOverrides(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	t.Setenv("FORCE_COLOR", "")
	m, _, _ := newBuffered()

	if m.SupportsColor() {
		t.Error("Expected no color on a non-terminal writer")
	}

	t.Setenv("FORCE_COLOR", "1")
	if !m.SupportsColor() {
		t.Error("Expected FORCE_COLOR to enable color")
	}

	t.Setenv("FORCE_COLOR", "")
	t.Setenv("NO_COLOR", "1")
	if m.SupportsColor() {
		t.Error("Expected NO_COLOR to disable color")
	}
	if !m.ForceColor().SupportsColor() {
		t.Error("Expected ForceColor to win over NO_COLOR")
	}
	if m.NoColor().SupportsColor() {
		t.Error("Expected NoColor to disable color")
	}
}

func TestStyles(t *testing.T) {
	m, _, _ := newBuffered()

	m.ForceColor()
	if out := m.Bold("x"); !strings.HasPrefix(out, "\x1b[1m") {
		t.Errorf("Expected bold ANSI sequence, got %q", out)
	}
	if out := m.Underline("x"); !strings.Contains(out, "\x1b[4m") {
		t.Errorf("Expected underline ANSI sequence, got %q", out)
	}

	m.NoColor()
	if out := m.Faint("x"); out != "x" {
		t.Errorf("Expected plain text without color, got %q", out)
	}
}

func TestLoggerFormats(t *testing.T) {
	tests := []struct {
		format   LogFormat
		expected string
	}{
		{LogFormatSymbols, "◆ hello 42\n"},
		{LogFormatTagged, "[INFO] hello 42\n"},
		{LogFormatPlain, "hello 42\n"},
	}

	for _, tt := range tests {
		m, out, _ := newBuffered()
		m.NoColor()
		NewLogger(m).WithFormat(tt.format).Info("hello %d", 42)
		if out.String() != tt.expected {
			t.Errorf("Format %d: expected %q, got %q", tt.format, tt.expected, out.String())
		}
	}
}

func TestLoggerRouting(t *testing.T) {
	m, out, errOut := newBuffered()
	m.NoColor()
	l := NewLogger(m).WithFormat(LogFormatTagged)

	l.Debug("hidden")
	l.Success("done")
	l.Warning("careful")
	l.Error("failed")

	if strings.Contains(out.String(), "hidden") {
		t.Error("Expected debug to be dropped at the default level")
	}
	if out.String() != "[SUCCESS] done\n" {
		t.Errorf("Unexpected stdout %q", out.String())
	}
	if errOut.String() != "[WARN] careful\n[ERROR] failed\n" {
		t.Errorf("Unexpected stderr %q", errOut.String())
	}

	out.Reset()
	errOut.Reset()
	l.WithLevel(LevelDebug).ErrorsToStderr(false)
	l.Debug("visible")
	l.Error("inline")
	if out.String() != "[DEBUG] visible\n[ERROR] inline\n" {
		t.Errorf("Unexpected stdout %q", out.String())
	}
	if errOut.Len() != 0 {
		t.Errorf("Expected nothing on stderr, got %q", errOut.String())
	}
}

func TestLoggerColorAndBlank(t *testing.T) {
	m, out, _ := newBuffered()
	m.ForceColor()
	l := NewLogger(m).WithFormat(LogFormatPlain)

	l.Info("blue")
	if !strings.Contains(out.String(), "\x1b[34m") {
		t.Errorf("Expected blue ANSI sequence, got %q", out.String())
	}

	out.Reset()
	l.Info("   ")
	if out.String() != "   \n" {
		t.Errorf("Expected blank message unchanged, got %q", out.String())
	}
}

func TestLoggerTimestamp(t *testing.T) {
	m, out, _ := newBuffered()
	m.NoColor()
	NewLogger(m).WithFormat(LogFormatTagged).WithTimestamp(true).WithTimeFormat("2006").Info("x")
	line := out.String()
	if !strings.HasPrefix(line, "[INFO] [") || !strings.HasSuffix(line, "] x\n") {
		t.Errorf("Unexpected timestamped line %q", line)
	}
}
