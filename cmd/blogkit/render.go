package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ic-it/blogkit/internal/content"
	"github.com/ic-it/blogkit/internal/fileutil"
	"github.com/ic-it/blogkit/internal/hints"
)

// Sentinel errors for CLI I/O.
var (
	ErrReadMarkdown     = errors.New("failed to read markdown file")
	ErrWriteOutput      = errors.New("failed to write output")
	ErrInvalidExtension = errors.New("file must have .md or .markdown extension")
)

// runRenderCmd parses render flags and renders one document.
func runRenderCmd(ctx context.Context, args []string, env *Environment) error {
	var flags renderFlags
	fs := newFlagSet("render", printRenderUsage, env.Stderr)
	addCommonFlags(fs, &flags.common)
	fs.StringVarP(&flags.output, "output", "o", "", "output file")
	fs.BoolVar(&flags.page, "page", false, "write a complete page")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		printRenderUsage(env.Stderr)
		return fmt.Errorf("%w: render takes exactly one markdown file", ErrUsage)
	}
	return runRender(ctx, fs.Arg(0), &flags, env)
}

// runRender renders path and writes the body, or the full page with --page.
func runRender(ctx context.Context, path string, flags *renderFlags, env *Environment) error {
	if !fileutil.IsMarkdown(path) {
		return fmt.Errorf("%w: %s", ErrInvalidExtension, path)
	}

	s, err := openSite(ctx, &flags.common, env, nil)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return fmt.Errorf("%w: %w", ErrReadMarkdown, err)
	}
	doc, err := content.Parse(documentSource(path, s.cfg.Content.Dir), data)
	if err != nil {
		return err
	}

	page, err := s.pub.Render(ctx, doc)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if flags.page {
		if err := s.pub.WritePage(&buf, page); err != nil {
			return err
		}
	} else {
		buf.WriteString(page.HTML)
	}
	return writeOutput(flags.output, buf.Bytes(), env.Stdout)
}

// documentSource returns the slash-separated path Parse derives the slug
// from: relative to the content directory when path is inside it,
// otherwise the file name.
func documentSource(path, contentDir string) string {
	if contentDir != "" {
		if rel, err := filepath.Rel(contentDir, path); err == nil && !strings.HasPrefix(rel, "..") {
			return filepath.ToSlash(rel)
		}
	}
	return filepath.Base(path)
}

// writeOutput writes data to path, or to stdout when path is empty.
func writeOutput(path string, data []byte, stdout io.Writer) error {
	if path == "" {
		if _, err := stdout.Write(data); err != nil {
			return fmt.Errorf("%w: %w", ErrWriteOutput, err)
		}
		return nil
	}
	if err := fileutil.WriteFileAtomic(path, data); err != nil {
		return fmt.Errorf("%w: %s: %w%s", ErrWriteOutput, path, err, hints.ForOutputDirectory())
	}
	return nil
}
