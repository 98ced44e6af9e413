package main

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// fixedNow is the clock used by test environments.
var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// newTestEnv returns an Environment backed by vars and in-memory output.
func newTestEnv(vars map[string]string) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	environ := make([]string, 0, len(vars))
	for k, v := range vars {
		environ = append(environ, k+"="+v)
	}
	env := &Environment{
		Now:      func() time.Time { return fixedNow },
		Stdout:   &stdout,
		Stderr:   &stderr,
		Lookuper: envconfig.MapLookuper(vars),
		Environ:  func() []string { return environ },
	}
	return env, &stdout, &stderr
}

// testSite writes files under a temporary content directory and a config
// file pointing at it. It returns the config path and the root directory.
func testSite(t *testing.T, siteRoot string, files map[string]string) (string, string) {
	t.Helper()
	root := t.TempDir()
	contentDir := filepath.Join(root, "content")
	if err := os.MkdirAll(contentDir, 0o750); err != nil {
		t.Fatal(err)
	}
	for name, data := range files {
		path := filepath.Join(contentDir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	cfg := "site:\n  root: \"" + siteRoot + "\"\ncontent:\n  dir: \"" + filepath.ToSlash(contentDir) + "\"\noutput:\n  dir: \"" + filepath.ToSlash(filepath.Join(root, "dist")) + "\"\n"
	cfgPath := filepath.Join(root, "blogkit.yaml")
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o600); err != nil {
		t.Fatal(err)
	}
	return cfgPath, root
}

// twoPosts is a content directory with two dated posts and one draft.
var twoPosts = map[string]string{
	"first.md": "---\ntitle: First\npublicationDate: \"2024-01-01\"\n---\n# Hello\n\nWorld\n",
	"second/index.md": "---\ntitle: Second\ndescription: The second one\npublicationDate: \"2024-02-01\"\n---\n## Math\n\n$x^2$\n",
	"draft.md":        "---\ntitle: Draft\ndraft: true\n---\nwip\n",
}

// syncBuffer is a bytes.Buffer safe for a writer and a reader goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
