package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"github.com/ic-it/blogkit"
	"github.com/ic-it/blogkit/internal/config"
	"github.com/ic-it/blogkit/internal/fileutil"
	"github.com/ic-it/blogkit/internal/hints"
)

// Output file names written by build.
const (
	indexFile = "index.html"
	feedFile  = "rss.xml"
)

// buildStats summarizes a build.
type buildStats struct {
	pages      int
	bytes      atomic.Uint64
	mathErrors atomic.Int64
}

// runBuildCmd parses build flags and writes the whole site.
func runBuildCmd(ctx context.Context, args []string, env *Environment) error {
	var flags buildFlags
	fs := newFlagSet("build", printBuildUsage, env.Stderr)
	addCommonFlags(fs, &flags.common)
	fs.StringVarP(&flags.output, "output", "o", "", "output directory")
	fs.IntVarP(&flags.workers, "workers", "w", 0, "parallel renders (0 = auto)")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 0 {
		printBuildUsage(env.Stderr)
		return fmt.Errorf("%w: build takes no arguments", ErrUsage)
	}
	workersSet := fs.Changed("workers")
	return runBuild(ctx, &flags, workersSet, env)
}

// runBuild renders every document concurrently, then writes the index and
// the feed from the same listing.
func runBuild(ctx context.Context, flags *buildFlags, workersSet bool, env *Environment) error {
	start := env.Now()

	s, err := openSite(ctx, &flags.common, env, func(cfg *config.Config) {
		if flags.output != "" {
			cfg.Output.Dir = flags.output
		}
		if workersSet {
			cfg.Build.Workers = flags.workers
		}
	})
	if err != nil {
		return err
	}
	coll, err := newCollection(s.cfg)
	if err != nil {
		return err
	}

	docs, err := coll.List(ctx)
	if err != nil {
		return fmt.Errorf("listing documents: %w", err)
	}

	outDir := s.cfg.Output.Dir
	stats := &buildStats{pages: len(docs)}
	if err := renderPages(ctx, s.pub, docs, outDir, resolveWorkers(s.cfg.Build.Workers), stats); err != nil {
		return err
	}

	var index bytes.Buffer
	if err := s.pub.WriteIndex(&index, docs); err != nil {
		return err
	}
	if err := writeSiteFile(outDir, indexFile, index.Bytes(), stats); err != nil {
		return err
	}

	result := s.pub.SynthesizeFeed(docs)
	if !flags.common.quiet {
		reportFeed(env.Stderr, result)
	}
	var rss bytes.Buffer
	if err := result.Feed.WriteRSS(&rss); err != nil {
		return fmt.Errorf("%w: encoding feed: %w", ErrWriteOutput, err)
	}
	if err := writeSiteFile(outDir, feedFile, rss.Bytes(), stats); err != nil {
		return err
	}

	if !flags.common.quiet {
		printBuildSummary(env.Stdout, stats, outDir, env.Now().Sub(start))
	}
	return nil
}

// resolveWorkers maps 0 to GOMAXPROCS.
func resolveWorkers(n int) int {
	if n > 0 {
		return n
	}
	return runtime.GOMAXPROCS(0)
}

// renderPages writes <outDir>/<slug>/index.html for each document using at
// most workers goroutines. The first failure cancels the rest.
func renderPages(ctx context.Context, pub *blogkit.Publisher, docs []blogkit.Document, outDir string, workers int, stats *buildStats) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, doc := range docs {
		g.Go(func() error {
			page, err := pub.Render(gctx, doc)
			if err != nil {
				return err
			}
			stats.mathErrors.Add(int64(len(page.MathErrors)))

			var buf bytes.Buffer
			if err := pub.WritePage(&buf, page); err != nil {
				return fmt.Errorf("writing page %q: %w", doc.Slug, err)
			}
			return writeSiteFile(outDir, filepath.Join(filepath.FromSlash(doc.Slug), indexFile), buf.Bytes(), stats)
		})
	}
	return g.Wait()
}

// writeSiteFile atomically writes data to outDir/name.
func writeSiteFile(outDir, name string, data []byte, stats *buildStats) error {
	path := filepath.Join(outDir, name)
	if err := fileutil.WriteFileAtomic(path, data); err != nil {
		return fmt.Errorf("%w: %s: %w%s", ErrWriteOutput, path, err, hints.ForOutputDirectory())
	}
	stats.bytes.Add(uint64(len(data)))
	return nil
}

// printBuildSummary prints a one-line summary of the build.
func printBuildSummary(w io.Writer, stats *buildStats, outDir string, elapsed time.Duration) {
	fmt.Fprintf(w, "built %d page(s), %s in %s to %s\n",
		stats.pages, humanize.Bytes(stats.bytes.Load()), elapsed.Round(time.Millisecond), outDir)
	if n := stats.mathErrors.Load(); n > 0 {
		fmt.Fprintf(w, "%d math expression(s) left as literal text\n", n)
	}
}
