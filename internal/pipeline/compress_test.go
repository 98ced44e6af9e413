package pipeline

import (
	"strings"
	"testing"
)

func TestCompress(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "drops whitespace between blocks",
			input: "<h1>A</h1>\n\n<p>b</p>\n",
			want:  "<h1>A</h1><p>b</p>",
		},
		{
			name:  "collapses runs inside text",
			input: "<p>one\n   two\tthree</p>",
			want:  "<p>one two three</p>",
		},
		{
			name:  "keeps single space between inline elements",
			input: "<p><em>a</em>\n<strong>b</strong></p>",
			want:  "<p><em>a</em> <strong>b</strong></p>",
		},
		{
			name:  "preserves pre",
			input: "<pre><code>  x\n    y\n</code></pre>",
			want:  "<pre><code>  x\n    y\n</code></pre>",
		},
		{
			name:  "preserves inline code",
			input: "<p><code>a   b</code></p>",
			want:  "<p><code>a   b</code></p>",
		},
		{
			name:  "lists",
			input: "<ul>\n<li>a</li>\n<li>b</li>\n</ul>",
			want:  "<ul><li>a</li><li>b</li></ul>",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Compress(tt.input)
			if err != nil {
				t.Fatalf("Compress() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Compress(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCompress_FullDocument(t *testing.T) {
	t.Parallel()

	input := "<!DOCTYPE html>\n<html>\n<head>\n<title>T</title>\n</head>\n<body>\n<p>x</p>\n</body>\n</html>"
	got, err := Compress(input)
	if err != nil {
		t.Fatalf("Compress() error = %v", err)
	}
	if !strings.HasPrefix(got, "<!DOCTYPE html>") {
		t.Errorf("doctype lost: %q", got)
	}
	if !strings.Contains(got, "<title>T</title></head><body><p>x</p></body></html>") {
		t.Errorf("document not compressed: %q", got)
	}
}

func TestCompress_PreservesMath(t *testing.T) {
	t.Parallel()

	input := `<p><span class="katex"><math><semantics><mrow><mtext>a  b</mtext></mrow></semantics></math></span></p>`
	got, err := Compress(input)
	if err != nil {
		t.Fatalf("Compress() error = %v", err)
	}
	if !strings.Contains(got, "<mtext>a  b</mtext>") {
		t.Errorf("math whitespace altered: %q", got)
	}
}

func TestPreprocess(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"unix unchanged", "a\nb\n", "a\nb\n"},
		{"windows", "a\r\nb\r\n", "a\nb\n"},
		{"old mac", "a\rb", "a\nb"},
		{"byte order mark", "\uFEFF# T", "# T"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Preprocess(tt.input); got != tt.want {
				t.Errorf("Preprocess(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
