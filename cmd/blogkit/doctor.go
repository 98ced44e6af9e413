package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	flag "github.com/spf13/pflag"

	"github.com/ic-it/blogkit/internal/config"
	"github.com/ic-it/blogkit/internal/feed"
	"github.com/ic-it/blogkit/internal/fileutil"
	"github.com/ic-it/blogkit/internal/log"
)

// Doctor statuses.
const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string      `json:"status"` // "ready", "warnings", "errors"
	Site     siteInfo    `json:"site"`
	Content  contentInfo `json:"content"`
	Output   outputInfo  `json:"output"`
	Env      envInfo     `json:"environment"`
	Warnings []string    `json:"warnings,omitempty"`
	Errors   []string    `json:"errors,omitempty"`
}

// siteInfo holds the resolved site root.
type siteInfo struct {
	Root  string `json:"root"`
	Feed  string `json:"feed_base"` // what feed links start with
	Valid bool   `json:"valid"`
}

// contentInfo holds content directory scan results.
type contentInfo struct {
	Dir       string   `json:"dir"`
	Documents int      `json:"documents"`
	Excluded  []string `json:"excluded_from_feed,omitempty"`
}

// outputInfo holds output directory checks.
type outputInfo struct {
	Dir      string `json:"dir"`
	Exists   bool   `json:"exists"`
	Writable bool   `json:"writable"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS         string `json:"os"`
	Arch       string `json:"arch"`
	GOMAXPROCS int    `json:"gomaxprocs"`
	CI         bool   `json:"ci"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(ctx context.Context, args []string, env *Environment) int {
	var common commonFlags
	var jsonOutput bool
	fs := newFlagSet("doctor", printDoctorUsage, env.Stderr)
	addCommonFlags(fs, &common)
	fs.BoolVar(&jsonOutput, "json", false, "machine-readable output")
	if err := parseFlags(fs, args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return ExitUsage
	}

	result := runDoctor(ctx, &common, env)

	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == statusErrors {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(ctx context.Context, flags *commonFlags, env *Environment) *doctorResult {
	result := &doctorResult{
		Status: statusReady,
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			GOMAXPROCS: runtime.GOMAXPROCS(0),
		},
	}
	checkEnvironment(result, env)

	cfg, err := loadConfig(ctx, flags, env)
	if err == nil {
		err = validateConfig(cfg)
	}
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		finishDoctor(result)
		return result
	}

	checkSite(result, cfg)
	checkContent(ctx, result, cfg)
	checkOutput(result, cfg)

	if _, err := newPublisher(cfg, log.Discard()); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Templates: %v", err))
	}

	finishDoctor(result)
	return result
}

// finishDoctor determines the final status.
func finishDoctor(result *doctorResult) {
	switch {
	case len(result.Errors) > 0:
		result.Status = statusErrors
	case len(result.Warnings) > 0:
		result.Status = statusWarnings
	}
}

// checkEnvironment detects CI environments.
func checkEnvironment(result *doctorResult, env *Environment) {
	for _, v := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"} {
		if val, ok := env.Lookuper.Lookup(v); ok && val != "" {
			result.Env.CI = true
			return
		}
	}
}

// checkSite resolves the site root the way the feed will.
func checkSite(result *doctorResult, cfg *config.Config) {
	site, err := feed.ResolveSiteRoot(cfg.Site.Root)
	result.Site = siteInfo{Root: cfg.Site.Root, Feed: site, Valid: err == nil}
	if err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Site root: %v. Feed links will start with %s", err, feed.SiteRootNotSet))
	}
}

// checkContent lists the content directory and reports documents the feed
// would exclude.
func checkContent(ctx context.Context, result *doctorResult, cfg *config.Config) {
	result.Content.Dir = cfg.Content.Dir
	coll, err := newCollection(cfg)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return
	}
	docs, err := coll.List(ctx)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Content: %v", err))
		return
	}
	result.Content.Documents = len(docs)
	for _, d := range docs {
		if err := d.Validate(); err != nil {
			result.Content.Excluded = append(result.Content.Excluded, err.Error())
		}
	}
	if n := len(result.Content.Excluded); n > 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("%d document(s) will be excluded from the feed", n))
	}
	if len(docs) == 0 {
		result.Warnings = append(result.Warnings, "Content directory has no documents")
	}
}

// checkOutput verifies the output directory is writable, or creatable.
func checkOutput(result *doctorResult, cfg *config.Config) {
	dir := cfg.Output.Dir
	result.Output.Dir = dir
	if !fileutil.DirExists(dir) {
		// build creates it
		result.Output.Writable = true
		return
	}
	result.Output.Exists = true

	f, err := os.CreateTemp(dir, ".blogkit-doctor-*")
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Output directory not writable: %s", dir))
		return
	}
	_ = f.Close()
	_ = os.Remove(f.Name())
	result.Output.Writable = true
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "blogkit doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Site")
	switch {
	case r.Site.Valid:
		fmt.Fprintf(w, "  [OK] Root: %s\n", r.Site.Root)
	case r.Site.Feed != "":
		fmt.Fprintf(w, "  [WARN] Root: not usable, feed links start with %s\n", r.Site.Feed)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Content")
	if r.Content.Dir != "" {
		fmt.Fprintf(w, "  [OK] Directory: %s (%d document(s))\n", r.Content.Dir, r.Content.Documents)
	}
	for _, e := range r.Content.Excluded {
		fmt.Fprintf(w, "  [WARN] %s\n", e)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Output")
	if r.Output.Dir != "" {
		switch {
		case !r.Output.Writable:
			fmt.Fprintf(w, "  [ERROR] %s: not writable\n", r.Output.Dir)
		case r.Output.Exists:
			fmt.Fprintf(w, "  [OK] %s: writable\n", r.Output.Dir)
		default:
			fmt.Fprintf(w, "  [OK] %s: will be created\n", r.Output.Dir)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s (GOMAXPROCS=%d)\n", r.Env.OS, r.Env.Arch, r.Env.GOMAXPROCS)
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case statusReady:
		fmt.Fprintln(w, "Status: Ready to build")
	case statusWarnings:
		fmt.Fprintln(w, "Status: Ready with warnings")
	case statusErrors:
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
