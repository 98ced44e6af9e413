package hints

import (
	"strings"
	"testing"
)

func TestForSiteRoot(t *testing.T) {
	t.Parallel()

	hint := ForSiteRoot()
	if !strings.HasPrefix(hint, "\n  hint: ") {
		t.Errorf("hint %q missing prefix", hint)
	}
	for _, want := range []string{"site.root", "BLOGKIT_SITE_ROOT", "--site"} {
		if !strings.Contains(hint, want) {
			t.Errorf("hint %q missing %q", hint, want)
		}
	}
}

func TestForContentDir(t *testing.T) {
	t.Parallel()

	if got := ForContentDir(""); !strings.Contains(got, "content.dir") {
		t.Errorf("empty dir hint = %q", got)
	}
	if got := ForContentDir("posts"); !strings.Contains(got, "posts") {
		t.Errorf("named dir hint = %q", got)
	}
}

func TestForConfigNotFound(t *testing.T) {
	t.Parallel()

	got := ForConfigNotFound([]string{"blogkit.yaml", "/home/u/.config/blogkit/blogkit.yaml"})
	if !strings.Contains(got, "or create /home/u/.config/blogkit/blogkit.yaml") {
		t.Errorf("hint = %q, want user config suggestion", got)
	}

	got = ForConfigNotFound([]string{"blogkit.yaml"})
	if strings.Contains(got, "or create") {
		t.Errorf("hint = %q, should not suggest a path", got)
	}
}

func TestForExcludedDocuments(t *testing.T) {
	t.Parallel()

	if got := ForExcludedDocuments(0); got != "" {
		t.Errorf("ForExcludedDocuments(0) = %q, want empty", got)
	}
	if got := ForExcludedDocuments(2); !strings.Contains(got, "publicationDate") {
		t.Errorf("ForExcludedDocuments(2) = %q", got)
	}
}

func TestFormat(t *testing.T) {
	t.Parallel()

	if got := format(""); got != "" {
		t.Errorf("format(\"\") = %q", got)
	}
	if got := format("x"); got != "\n  hint: x" {
		t.Errorf("format(\"x\") = %q", got)
	}
}
