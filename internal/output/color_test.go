package output

import (
	"bytes"
	"strings"
	"testing"
)

func TestShouldColorize(t *testing.T) {
	var buf bytes.Buffer

	tests := []struct {
		name string
		mode ColorMode
		want bool
	}{
		{"always", ColorAlways, true},
		{"never", ColorNever, false},
		{"auto on non-tty writer", ColorAuto, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := shouldColorize(tt.mode, &buf); got != tt.want {
				t.Errorf("shouldColorize(%v) = %v, want %v", tt.mode, got, tt.want)
			}
		})
	}
}

func TestConsolePlainWhenNotColorized(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf, ColorNever)

	c.Warnf("skipping %s", "round.html")
	c.Errorf("boom")
	c.Verbosef("read %d bytes", 42)

	out := buf.String()
	if strings.Contains(out, "\033[") {
		t.Errorf("output contains ANSI escapes: %q", out)
	}
	for _, want := range []string{"skipping round.html", "boom", "read 42 bytes"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestConsoleColorized(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf, ColorAlways)

	c.Warnf("careful")

	out := buf.String()
	if !strings.Contains(out, colorYellow) || !strings.Contains(out, colorReset) {
		t.Errorf("warning line is not colorized: %q", out)
	}
}
