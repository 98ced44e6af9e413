package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/sethvargo/go-envconfig"

	"github.com/ic-it/blogkit/internal/config"
)

// envPrefix is shared by every recognized variable.
const envPrefix = "BLOGKIT_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string `env:"CONFIG"`
	SiteRoot   string `env:"SITE_ROOT"`
	ContentDir string `env:"CONTENT_DIR"`
	OutputDir  string `env:"OUTPUT_DIR"`
	Addr       string `env:"ADDR"`
	Workers    int    `env:"WORKERS"`
}

// knownEnvVars lists valid BLOGKIT_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"BLOGKIT_CONFIG":      true,
	"BLOGKIT_SITE_ROOT":   true,
	"BLOGKIT_CONTENT_DIR": true,
	"BLOGKIT_OUTPUT_DIR":  true,
	"BLOGKIT_ADDR":        true,
	"BLOGKIT_WORKERS":     true,
}

// loadEnvConfig reads BLOGKIT_* variables through l.
func loadEnvConfig(ctx context.Context, l envconfig.Lookuper) (*envConfig, error) {
	var cfg envConfig
	err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: envconfig.PrefixLookuper(envPrefix, l),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: environment: %v", config.ErrInvalidValue, err)
	}
	return &cfg, nil
}

// warnUnknownEnvVars writes a warning for each unrecognized BLOGKIT_*
// variable, which is usually a typo.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, kv := range environ {
		if !strings.HasPrefix(kv, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(kv, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig overrides config file values with set variables.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied afterwards by mergeCommonFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.SiteRoot != "" {
		cfg.Site.Root = env.SiteRoot
	}
	if env.ContentDir != "" {
		cfg.Content.Dir = env.ContentDir
	}
	if env.OutputDir != "" {
		cfg.Output.Dir = env.OutputDir
	}
	if env.Addr != "" {
		cfg.Server.Addr = env.Addr
	}
	if env.Workers != 0 {
		cfg.Build.Workers = env.Workers
	}
}
