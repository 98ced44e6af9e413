package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ic-it/blogkit/internal/content"
	"github.com/ic-it/blogkit/internal/feed"
	"github.com/ic-it/blogkit/internal/pipeline"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() error = %v", err)
	}
	if cfg.Site.Root != "" {
		t.Errorf("Site.Root = %q, want empty", cfg.Site.Root)
	}
	if cfg.Content.Dir != DefaultContentDir {
		t.Errorf("Content.Dir = %q, want %q", cfg.Content.Dir, DefaultContentDir)
	}
	if cfg.Content.Order != string(content.OrderNewest) {
		t.Errorf("Content.Order = %q, want newest", cfg.Content.Order)
	}
	if cfg.Server.Addr != DefaultAddr {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, DefaultAddr)
	}
	if cfg.PipelineConfig() != pipeline.DefaultConfig() {
		t.Errorf("PipelineConfig() = %+v, want pipeline defaults", cfg.PipelineConfig())
	}
}

func TestValidateFieldLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		value     string
		maxLength int
		wantErr   bool
	}{
		{"empty value is valid", "", 10, false},
		{"value at limit is valid", "1234567890", 10, false},
		{"value over limit returns error", "12345678901", 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validateFieldLength("test.field", tt.value, tt.maxLength)
			if tt.wantErr {
				if !errors.Is(err, ErrFieldTooLong) {
					t.Errorf("error = %v, want ErrFieldTooLong", err)
				}
				if err != nil && !strings.Contains(err.Error(), "test.field") {
					t.Errorf("error %q should name the field", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"defaults", func(*Config) {}, nil},
		{"site root set", func(c *Config) { c.Site.Root = "https://example.com/" }, nil},
		{"title too long", func(c *Config) { c.Site.Title = strings.Repeat("x", MaxTitleLength+1) }, ErrFieldTooLong},
		{"unparsable root", func(c *Config) { c.Site.Root = "http://[::1" }, nil},
		{"unknown order", func(c *Config) { c.Content.Order = "random" }, ErrInvalidValue},
		{"negative workers", func(c *Config) { c.Build.Workers = -1 }, ErrInvalidValue},
		{"too many workers", func(c *Config) { c.Build.Workers = MaxWorkers + 1 }, ErrInvalidValue},
		{"bad autolink behavior", func(c *Config) { c.Markdown.Autolink.Behavior = "around" }, pipeline.ErrInvalidAutolinkBehavior},
		{"empty autolink class", func(c *Config) { c.Markdown.Autolink.Class = "" }, pipeline.ErrEmptyAutolinkClass},
		{"unknown highlight style", func(c *Config) { c.Markdown.Highlight.Style = "no-such-style" }, pipeline.ErrUnknownHighlightStyle},
		{"preset date format", func(c *Config) { c.Site.DateFormat = "ISO" }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	t.Run("unclosed date format bracket", func(t *testing.T) {
		t.Parallel()

		cfg := DefaultConfig()
		cfg.Site.DateFormat = "[YYYY"
		if err := cfg.Validate(); err == nil {
			t.Error("Validate() expected error for unclosed bracket")
		}
	})
}

func writeConfig(t *testing.T, dir, name, data string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("full file", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, t.TempDir(), "blogkit.yaml", `
site:
  root: https://example.com/
  title: Notes
  dateFormat: iso
content:
  dir: posts
  order: path
  includeDrafts: true
output:
  dir: public
markdown:
  autolink:
    behavior: append
    class: anchor
  math:
    enabled: false
  highlight:
    style: monokai
    classes: false
  unsafeHTML: true
  compress: false
assets:
  basePath: theme
server:
  addr: 127.0.0.1:8080
build:
  workers: 4
`)
		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}

		if cfg.Site.Root != "https://example.com/" || cfg.Site.Title != "Notes" {
			t.Errorf("Site = %+v", cfg.Site)
		}
		if cfg.Content.Dir != "posts" || cfg.Content.Order != "path" || !cfg.Content.IncludeDrafts {
			t.Errorf("Content = %+v", cfg.Content)
		}
		if cfg.Output.Dir != "public" || cfg.Assets.BasePath != "theme" {
			t.Errorf("Output = %+v, Assets = %+v", cfg.Output, cfg.Assets)
		}
		if cfg.Server.Addr != "127.0.0.1:8080" || cfg.Build.Workers != 4 {
			t.Errorf("Server = %+v, Build = %+v", cfg.Server, cfg.Build)
		}

		want := pipeline.Config{
			Autolink:   pipeline.AutolinkConfig{Behavior: pipeline.AutolinkAppend, Class: "anchor"},
			Math:       false,
			Highlight:  pipeline.HighlightConfig{Style: "monokai", Classes: false},
			UnsafeHTML: true,
			Compress:   false,
		}
		if got := cfg.PipelineConfig(); got != want {
			t.Errorf("PipelineConfig() = %+v, want %+v", got, want)
		}

		fc := cfg.FeedConfig()
		if fc.SiteRoot != "https://example.com/" || fc.Title != "Notes" || fc.Description != "" {
			t.Errorf("FeedConfig() = %+v", fc)
		}
	})

	t.Run("partial file keeps defaults", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, t.TempDir(), "partial.yaml", "site:\n  root: https://example.com\n")
		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.PipelineConfig() != pipeline.DefaultConfig() {
			t.Errorf("PipelineConfig() = %+v, want defaults", cfg.PipelineConfig())
		}
		if cfg.Content.Dir != DefaultContentDir {
			t.Errorf("Content.Dir = %q, want default", cfg.Content.Dir)
		}
	})

	t.Run("unknown key is rejected", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, t.TempDir(), "bad.yaml", "site:\n  rooot: https://example.com\n")
		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("LoadConfig() error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("invalid value", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, t.TempDir(), "bad.yaml", "content:\n  order: random\n")
		_, err := LoadConfig(path)
		if !errors.Is(err, ErrInvalidValue) {
			t.Errorf("LoadConfig() error = %v, want ErrInvalidValue", err)
		}
	})

	t.Run("missing file path", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("LoadConfig() error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("empty name", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig("")
		if !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("LoadConfig() error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("unknown name lists searched paths", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig("no-such-config-name-abc123")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("LoadConfig() error = %v, want ErrConfigNotFound", err)
		}
		if !strings.Contains(err.Error(), "no-such-config-name-abc123.yaml") {
			t.Errorf("error %q should list the searched paths", err)
		}
	})
}

func TestSearchPaths(t *testing.T) {
	t.Parallel()

	paths := SearchPaths("blogkit")
	if len(paths) < 2 {
		t.Fatalf("SearchPaths() = %v, want at least the local paths", paths)
	}
	if paths[0] != "blogkit.yaml" || paths[1] != "blogkit.yml" {
		t.Errorf("SearchPaths() local entries = %v", paths[:2])
	}
	for _, p := range paths[2:] {
		if !strings.Contains(p, filepath.Join("blogkit", "blogkit")) {
			t.Errorf("SearchPaths() user entry %q not under the blogkit config dir", p)
		}
	}
}

func TestLoadConfig_UnusableSiteRoot(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, t.TempDir(), "root.yaml", "site:\n  root: \"http://[::1\"\n")
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v, want nil", err)
	}

	got, err := feed.ResolveSiteRoot(cfg.FeedConfig().SiteRoot)
	if !errors.Is(err, feed.ErrInvalidSiteRoot) {
		t.Errorf("ResolveSiteRoot() error = %v, want ErrInvalidSiteRoot", err)
	}
	if got != feed.SiteRootNotSet {
		t.Errorf("ResolveSiteRoot() = %q, want %q", got, feed.SiteRootNotSet)
	}
}
