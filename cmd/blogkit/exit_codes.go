package main

import (
	"errors"
	"os"

	"github.com/ic-it/blogkit"
	"github.com/ic-it/blogkit/internal/assets"
	"github.com/ic-it/blogkit/internal/config"
	"github.com/ic-it/blogkit/internal/fileutil"
)

// Exit codes for the blogkit CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Command completed
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitContent = 4 // Unusable documents (front matter, slugs)
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Content errors (exit 4)
	if errors.Is(err, blogkit.ErrFrontMatter) ||
		errors.Is(err, blogkit.ErrDuplicateSlug) ||
		errors.Is(err, blogkit.ErrInvalidSlug) ||
		errors.Is(err, blogkit.ErrMissingMetadata) {
		return ExitContent
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, blogkit.ErrInvalidAutolinkBehavior) ||
		errors.Is(err, blogkit.ErrEmptyAutolinkClass) ||
		errors.Is(err, blogkit.ErrUnknownHighlightStyle) ||
		errors.Is(err, blogkit.ErrInvalidAssetPath) ||
		errors.Is(err, assets.ErrTemplateParse) ||
		errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrInvalidExtension) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, fileutil.ErrEmptyPath) ||
		errors.Is(err, ErrReadMarkdown) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrContentDir) {
		return ExitIO
	}

	return ExitGeneral
}
