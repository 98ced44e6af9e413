package main

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/ic-it/blogkit"
	"github.com/ic-it/blogkit/internal/hints"
)

// runFeedCmd parses feed flags and writes the RSS feed.
func runFeedCmd(ctx context.Context, args []string, env *Environment) error {
	var flags feedFlags
	fs := newFlagSet("feed", printFeedUsage, env.Stderr)
	addCommonFlags(fs, &flags.common)
	fs.StringVarP(&flags.output, "output", "o", "", "output file")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 0 {
		printFeedUsage(env.Stderr)
		return fmt.Errorf("%w: feed takes no arguments", ErrUsage)
	}
	return runFeed(ctx, &flags, env)
}

// runFeed synthesizes the feed for the content directory.
func runFeed(ctx context.Context, flags *feedFlags, env *Environment) error {
	s, err := openSite(ctx, &flags.common, env, nil)
	if err != nil {
		return err
	}
	coll, err := newCollection(s.cfg)
	if err != nil {
		return err
	}

	result, err := s.pub.Feed(ctx, coll)
	if err != nil {
		return err
	}
	if !flags.common.quiet {
		reportFeed(env.Stderr, result)
	}

	var buf bytes.Buffer
	if err := result.Feed.WriteRSS(&buf); err != nil {
		return fmt.Errorf("%w: encoding feed: %w", ErrWriteOutput, err)
	}
	return writeOutput(flags.output, buf.Bytes(), env.Stdout)
}

// reportFeed prints warnings about the site root and excluded documents.
func reportFeed(w io.Writer, result *blogkit.FeedResult) {
	if result.SiteErr != nil {
		fmt.Fprintf(w, "warning: feed links use %s: %v%s\n", blogkit.SiteRootNotSet, result.SiteErr, hints.ForSiteRoot())
	}
	if n := len(result.Excluded); n > 0 {
		fmt.Fprintf(w, "warning: %d document(s) excluded from feed%s\n", n, hints.ForExcludedDocuments(n))
	}
}
