package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/ic-it/blogkit"
	"github.com/ic-it/blogkit/internal/config"
	"github.com/ic-it/blogkit/internal/content"
	"github.com/ic-it/blogkit/internal/fileutil"
	"github.com/ic-it/blogkit/internal/hints"
	"github.com/ic-it/blogkit/internal/log"
)

// ErrContentDir reports a missing content directory.
var ErrContentDir = errors.New("content directory not found")

// loadConfig resolves the effective configuration.
// Precedence: CLI flags > env vars > config file > defaults.
// An explicit config name (flag or BLOGKIT_CONFIG) must exist; the default
// name is optional.
func loadConfig(ctx context.Context, flags *commonFlags, env *Environment) (*config.Config, error) {
	envCfg, err := loadEnvConfig(ctx, env.Lookuper)
	if err != nil {
		return nil, err
	}
	if !flags.quiet && env.Environ != nil {
		warnUnknownEnvVars(env.Stderr, env.Environ())
	}

	name := flags.config
	if name == "" {
		name = envCfg.ConfigPath
	}

	var cfg *config.Config
	if name != "" {
		cfg, err = config.LoadConfig(name)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) {
				return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
			}
			return nil, fmt.Errorf("loading config: %w", err)
		}
	} else {
		cfg, err = config.LoadConfig(config.DefaultName)
		switch {
		case errors.Is(err, config.ErrConfigNotFound):
			cfg = config.DefaultConfig()
		case err != nil:
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	applyEnvConfig(envCfg, cfg)
	mergeCommonFlags(flags, cfg)
	return cfg, nil
}

// mergeCommonFlags applies explicitly set common flags (CLI wins).
func mergeCommonFlags(flags *commonFlags, cfg *config.Config) {
	if flags.site != "" {
		cfg.Site.Root = flags.site
	}
	if flags.content != "" {
		cfg.Content.Dir = flags.content
	}
}

// validateConfig re-checks cfg once env vars and flags are merged.
func validateConfig(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// newLogger returns the CLI logger for the requested verbosity.
// Warnings are shown by default; --quiet keeps errors only.
func newLogger(flags *commonFlags, env *Environment) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case flags.quiet:
		level = slog.LevelError
	case flags.verbose:
		level = slog.LevelDebug
	}
	return log.New(env.Stderr, "blogkit", level)
}

// newPublisher builds a Publisher from cfg.
func newPublisher(cfg *config.Config, logger *slog.Logger) (*blogkit.Publisher, error) {
	opts := []blogkit.Option{
		blogkit.WithLogger(logger),
		blogkit.WithSiteRoot(cfg.Site.Root),
		blogkit.WithFeedTitle(cfg.Site.Title),
		blogkit.WithFeedDescription(cfg.Site.Description),
		blogkit.WithDateFormat(cfg.Site.DateFormat),
		blogkit.WithRenderConfig(cfg.PipelineConfig()),
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, blogkit.WithAssetPath(cfg.Assets.BasePath))
	}
	return blogkit.NewPublisher(opts...)
}

// newCollection returns the content directory as a collection.
func newCollection(cfg *config.Config) (*content.Dir, error) {
	dir := cfg.Content.Dir
	if dir == "" || !fileutil.DirExists(dir) {
		return nil, fmt.Errorf("%w: %q%s", ErrContentDir, dir, hints.ForContentDir(dir))
	}
	return &content.Dir{
		FS:            os.DirFS(dir),
		Order:         content.Order(cfg.Content.Order),
		IncludeDrafts: cfg.Content.IncludeDrafts,
	}, nil
}

// site bundles what every command needs once configuration is resolved.
type site struct {
	cfg    *config.Config
	logger *slog.Logger
	pub    *blogkit.Publisher
}

// openSite resolves configuration, applies override (command flags) and
// builds the logger and publisher.
func openSite(ctx context.Context, flags *commonFlags, env *Environment, override func(*config.Config)) (*site, error) {
	cfg, err := loadConfig(ctx, flags, env)
	if err != nil {
		return nil, err
	}
	if override != nil {
		override(cfg)
	}
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	logger := newLogger(flags, env)
	pub, err := newPublisher(cfg, logger)
	if err != nil {
		return nil, err
	}
	return &site{cfg: cfg, logger: logger, pub: pub}, nil
}
