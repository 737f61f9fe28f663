package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestTruncateString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		maxLen   int
		expected string
	}{
		{name: "short", input: "hola", maxLen: 10, expected: "hola"},
		{name: "exact", input: "hola", maxLen: 4, expected: "hola"},
		{name: "cut", input: "buenos días", maxLen: 8, expected: "bueno..."},
		{name: "multibyte kept whole", input: "ñññññññ", maxLen: 5, expected: "ññ..."},
		{name: "tiny limit", input: "abcdef", maxLen: 2, expected: "..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := truncateString(tt.input, tt.maxLen); got != tt.expected {
				t.Errorf("truncateString(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.expected)
			}
		})
	}
}

func TestNewLoggerLevels(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := newLogger(&buf, "warn", true)
	log.Info("hidden")
	log.Warn("shown", "key", "value")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info record written at warn level: %s", out)
	}
	if !strings.Contains(out, `"msg":"shown"`) || !strings.Contains(out, `"key":"value"`) {
		t.Errorf("warn record missing or not JSON: %s", out)
	}
}
