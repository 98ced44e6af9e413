package pipeline

import (
	"testing"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "Hello World", "hello-world"},
		{"punctuation dropped", "Hello, World!", "hello-world"},
		{"whitespace runs collapse", "a  \t b", "a-b"},
		{"trimmed", "  padded  ", "padded"},
		{"hyphen and underscore kept", "snake_case and kebab-case", "snake_case-and-kebab-case"},
		{"digits kept", "Step 2: Profit", "step-2-profit"},
		{"symbols dropped", "C++ & Go ⇒ fun", "c-go-fun"},
		{"unicode letters kept", "Über Straße", "über-straße"},
		{"nfc composes", "Cafe\u0301", "caf\u00e9"},
		{"combining marks kept", "नमस्ते दुनिया", "नमस्ते-दुनिया"},
		{"cyrillic", "Привет Мир", "привет-мир"},
		{"only punctuation", "?!...", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestAssigner_Assign(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		candidates []string
		want       []string
	}{
		{"distinct", []string{"a", "b", "c"}, []string{"a", "b", "c"}},
		{"duplicate gets -1", []string{"foo", "foo"}, []string{"foo", "foo-1"}},
		{"triplicate", []string{"foo", "foo", "foo"}, []string{"foo", "foo-1", "foo-2"}},
		{"suffix already taken", []string{"foo-1", "foo", "foo"}, []string{"foo-1", "foo", "foo-2"}},
		{"empty uses counter", []string{"", ""}, []string{"1", "2"}},
		{"empty skips taken number", []string{"1", ""}, []string{"1", "2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			a := NewAssigner()
			for i, c := range tt.candidates {
				if got := a.Assign(c); got != tt.want[i] {
					t.Errorf("Assign(%q) #%d = %q, want %q", c, i, got, tt.want[i])
				}
			}
		})
	}
}

func TestAssigner_IndependentPerDocument(t *testing.T) {
	t.Parallel()

	first := NewAssigner()
	second := NewAssigner()
	first.Assign("intro")

	if got := second.Assign("intro"); got != "intro" {
		t.Errorf("fresh assigner returned %q, want %q", got, "intro")
	}
}
