package yamlutil_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/ic-it/blogkit/internal/yamlutil"
)

type frontMatter struct {
	Title string `yaml:"title"`
	Draft bool   `yaml:"draft"`
}

// ---------------------------------------------------------------------------
// TestUnmarshal - Lenient decoding for front matter
// ---------------------------------------------------------------------------

func TestUnmarshal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		dest    any
		wantErr error
		check   func(t *testing.T, v any)
	}{
		{
			name: "known fields",
			data: []byte("title: Hello\ndraft: true"),
			dest: &frontMatter{},
			check: func(t *testing.T, v any) {
				fm := v.(*frontMatter)
				if fm.Title != "Hello" {
					t.Errorf("Title = %q, want %q", fm.Title, "Hello")
				}
				if !fm.Draft {
					t.Error("Draft = false, want true")
				}
			},
		},
		{
			name: "unknown fields are ignored",
			data: []byte("title: Hello\nheroImage: ./cover.png\ntags: [go]"),
			dest: &frontMatter{},
			check: func(t *testing.T, v any) {
				if got := v.(*frontMatter).Title; got != "Hello" {
					t.Errorf("Title = %q, want %q", got, "Hello")
				}
			},
		},
		{
			name:    "empty data",
			data:    []byte{},
			dest:    &frontMatter{},
			wantErr: yamlutil.ErrNilData,
		},
		{
			name:    "nil destination",
			data:    []byte("title: x"),
			dest:    nil,
			wantErr: yamlutil.ErrNilDestination,
		},
		{
			name:    "invalid YAML syntax",
			data:    []byte("title: [unclosed"),
			dest:    &frontMatter{},
			wantErr: errors.New("yamlutil:"),
		},
		{
			name: "unicode content",
			data: []byte("title: Привіт, світ"),
			dest: &frontMatter{},
			check: func(t *testing.T, v any) {
				if got := v.(*frontMatter).Title; got != "Привіт, світ" {
					t.Errorf("Title = %q", got)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := yamlutil.Unmarshal(tt.data, tt.dest)
			checkErr(t, err, tt.wantErr)
			if err == nil && tt.check != nil {
				tt.check(t, tt.dest)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestUnmarshalStrict - Configuration decoding rejects unknown fields
// ---------------------------------------------------------------------------

func TestUnmarshalStrict(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		wantErr error
	}{
		{
			name: "known fields only",
			data: []byte("title: strict"),
		},
		{
			name:    "unknown field causes error",
			data:    []byte("title: x\nunknown_field: value"),
			wantErr: errors.New("yamlutil:"),
		},
		{
			name:    "nil data",
			data:    nil,
			wantErr: yamlutil.ErrNilData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var fm frontMatter
			checkErr(t, yamlutil.UnmarshalStrict(tt.data, &fm), tt.wantErr)
		})
	}
}

// ---------------------------------------------------------------------------
// TestInputSizeLimit - Verifies MaxInputSize enforcement
// ---------------------------------------------------------------------------

// Note: This test modifies the global MaxInputSize variable, so it cannot
// run in parallel with other tests.

func TestInputSizeLimit(t *testing.T) {
	originalMax := yamlutil.MaxInputSize
	t.Cleanup(func() { yamlutil.MaxInputSize = originalMax })

	yamlutil.MaxInputSize = 50
	data := make([]byte, 100)
	copy(data, []byte("title: x"))

	for name, fn := range map[string]func([]byte, any) error{
		"Unmarshal":       yamlutil.Unmarshal,
		"UnmarshalStrict": yamlutil.UnmarshalStrict,
	} {
		err := fn(data, &frontMatter{})
		if !errors.Is(err, yamlutil.ErrInputTooLarge) {
			t.Errorf("%s: errors.Is(err, ErrInputTooLarge) = false, got: %v", name, err)
			continue
		}
		if !strings.Contains(err.Error(), "100 bytes") || !strings.Contains(err.Error(), "max 50") {
			t.Errorf("%s: error should contain sizes, got: %s", name, err)
		}
	}
}

func checkErr(t *testing.T, err, want error) {
	t.Helper()
	if want == nil {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return
	}
	if err == nil {
		t.Fatalf("expected error containing %q, got nil", want)
	}
	if errors.Is(err, want) {
		return
	}
	if !strings.Contains(err.Error(), want.Error()) {
		t.Fatalf("error = %q, want containing %q", err, want)
	}
}
