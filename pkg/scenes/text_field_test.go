package scenes

import (
	"strings"
	"testing"
)

func TestTextFieldAppend(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		input string
		want  string
	}{
		{"plain", 10, "Radha", "Radha"},
		{"limit", 3, "Krishna", "Kri"},
		{"control characters", 10, "a\tb\nc", "abc"},
		{"runes not bytes", 2, "नमस्ते", "नम"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &textField{limit: tt.limit}
			f.Append([]rune(tt.input))
			if f.Value() != tt.want {
				t.Errorf("Append(%q) = %q, want %q", tt.input, f.Value(), tt.want)
			}
		})
	}
}

func TestTextFieldBackspace(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"ascii", "abc", "ab"},
		{"empty", "", ""},
		{"combining accent", "café", "caf"},
		{"emoji with modifier", "hi👍🏽", "hi"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &textField{value: tt.value, limit: 100}
			f.Backspace()
			if f.Value() != tt.want {
				t.Errorf("Backspace(%q) = %q, want %q", tt.value, f.Value(), tt.want)
			}
		})
	}
}

func TestTextFieldReset(t *testing.T) {
	f := &textField{limit: 5}
	f.Append([]rune(strings.Repeat("x", 5)))
	f.Reset()
	if f.Value() != "" {
		t.Errorf("expected empty field, got %q", f.Value())
	}
}
