// Package config loads the blogkit YAML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ic-it/blogkit/internal/content"
	"github.com/ic-it/blogkit/internal/dateutil"
	"github.com/ic-it/blogkit/internal/feed"
	"github.com/ic-it/blogkit/internal/fileutil"
	"github.com/ic-it/blogkit/internal/pipeline"
	"github.com/ic-it/blogkit/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// DefaultName is the config name searched when none is given.
const DefaultName = "blogkit"

// Field length limits.
const (
	MaxURLLength         = 2048 // Browser limit
	MaxTitleLength       = 200
	MaxDescriptionLength = 500
	MaxPathLength        = 4096
	MaxClassLength       = 100
	MaxStyleLength       = 50
	MaxAddrLength        = 255
	MaxWorkers           = 256
)

// Defaults.
const (
	DefaultContentDir = "content"
	DefaultOutputDir  = "dist"
	DefaultAddr       = ":4321"
)

// Config holds the whole site configuration.
type Config struct {
	Site     SiteConfig     `yaml:"site"`
	Content  ContentConfig  `yaml:"content"`
	Output   OutputConfig   `yaml:"output"`
	Markdown MarkdownConfig `yaml:"markdown"`
	Assets   AssetsConfig   `yaml:"assets"`
	Server   ServerConfig   `yaml:"server"`
	Build    BuildConfig    `yaml:"build"`
}

// SiteConfig describes the published site and its feed.
type SiteConfig struct {
	Root        string `yaml:"root"`        // Absolute URL; empty yields the feed sentinel
	Title       string `yaml:"title"`       // Feed and page title (default: feed.DefaultTitle)
	Description string `yaml:"description"` // Feed description (default: feed.DefaultDescription)
	DateFormat  string `yaml:"dateFormat"`  // Page date format: tokens or preset
}

// ContentConfig locates the documents.
type ContentConfig struct {
	Dir           string `yaml:"dir"`
	Order         string `yaml:"order"` // "newest" or "path"
	IncludeDrafts bool   `yaml:"includeDrafts"`
}

// OutputConfig defines where build writes.
type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// MarkdownConfig is the rendering configuration.
type MarkdownConfig struct {
	Autolink   AutolinkConfig  `yaml:"autolink"`
	Math       MathConfig      `yaml:"math"`
	Highlight  HighlightConfig `yaml:"highlight"`
	UnsafeHTML bool            `yaml:"unsafeHTML"`
	Compress   bool            `yaml:"compress"`
}

// AutolinkConfig configures heading self-links.
type AutolinkConfig struct {
	Behavior string `yaml:"behavior"` // "wrap", "prepend" or "append"
	Class    string `yaml:"class"`
}

// MathConfig toggles math support.
type MathConfig struct {
	Enabled bool `yaml:"enabled"`
}

// HighlightConfig configures fenced code highlighting.
type HighlightConfig struct {
	Style   string `yaml:"style"` // chroma style name
	Classes bool   `yaml:"classes"`
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// ServerConfig configures blogkit serve.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// BuildConfig configures blogkit build.
type BuildConfig struct {
	Workers int `yaml:"workers"` // 0 = GOMAXPROCS
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	md := pipeline.DefaultConfig()
	return &Config{
		Site:    SiteConfig{DateFormat: dateutil.DefaultDateFormat},
		Content: ContentConfig{Dir: DefaultContentDir, Order: string(content.OrderNewest)},
		Output:  OutputConfig{Dir: DefaultOutputDir},
		Markdown: MarkdownConfig{
			Autolink:  AutolinkConfig{Behavior: string(md.Autolink.Behavior), Class: md.Autolink.Class},
			Math:      MathConfig{Enabled: md.Math},
			Highlight: HighlightConfig{Style: md.Highlight.Style, Classes: md.Highlight.Classes},
			Compress:  md.Compress,
		},
		Server: ServerConfig{Addr: DefaultAddr},
	}
}

// Validate checks field lengths and enumerated values. Called by
// LoadConfig, and available to callers that build a Config by hand.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"site.root", c.Site.Root, MaxURLLength},
		{"site.title", c.Site.Title, MaxTitleLength},
		{"site.description", c.Site.Description, MaxDescriptionLength},
		{"site.dateFormat", c.Site.DateFormat, dateutil.MaxDateFormatLength},
		{"content.dir", c.Content.Dir, MaxPathLength},
		{"output.dir", c.Output.Dir, MaxPathLength},
		{"markdown.autolink.class", c.Markdown.Autolink.Class, MaxClassLength},
		{"markdown.highlight.style", c.Markdown.Highlight.Style, MaxStyleLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"server.addr", c.Server.Addr, MaxAddrLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	// site.root is not checked here: feed.ResolveSiteRoot substitutes the
	// placeholder for a missing or unusable root.
	if c.Site.DateFormat != "" {
		if _, ok := dateutil.DatePresets[strings.ToLower(c.Site.DateFormat)]; !ok {
			if _, err := dateutil.ParseDateFormat(c.Site.DateFormat); err != nil {
				return fmt.Errorf("site.dateFormat: %w", err)
			}
		}
	}
	if c.Content.Order != "" {
		if err := content.Order(c.Content.Order).Validate(); err != nil {
			return fmt.Errorf("%w: content.order: %q (must be newest or path)", ErrInvalidValue, c.Content.Order)
		}
	}
	if c.Build.Workers < 0 || c.Build.Workers > MaxWorkers {
		return fmt.Errorf("%w: build.workers: must be between 0 and %d, got %d", ErrInvalidValue, MaxWorkers, c.Build.Workers)
	}

	md := c.PipelineConfig()
	if err := md.Validate(); err != nil {
		return fmt.Errorf("markdown: %w", err)
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// PipelineConfig converts the markdown section to a pipeline.Config.
func (c *Config) PipelineConfig() pipeline.Config {
	return pipeline.Config{
		Autolink: pipeline.AutolinkConfig{
			Behavior: pipeline.AutolinkBehavior(c.Markdown.Autolink.Behavior),
			Class:    c.Markdown.Autolink.Class,
		},
		Math: c.Markdown.Math.Enabled,
		Highlight: pipeline.HighlightConfig{
			Style:   c.Markdown.Highlight.Style,
			Classes: c.Markdown.Highlight.Classes,
		},
		UnsafeHTML: c.Markdown.UnsafeHTML,
		Compress:   c.Markdown.Compress,
	}
}

// FeedConfig converts the site section to a feed.Config.
func (c *Config) FeedConfig() *feed.Config {
	return &feed.Config{
		SiteRoot:    c.Site.Root,
		Title:       c.Site.Title,
		Description: c.Site.Description,
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Keys absent from the file keep their DefaultConfig values.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SearchPaths lists where a config name is looked up, in order: the
// current directory, then the user config directory, each with .yaml
// before .yml.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, "blogkit", name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing SearchPaths entry.
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
