package blogkit

import (
	"errors"

	"github.com/ic-it/blogkit/internal/content"
	"github.com/ic-it/blogkit/internal/feed"
	"github.com/ic-it/blogkit/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrNilCollection    = errors.New("collection cannot be nil")
	ErrInvalidAssetPath = errors.New("invalid asset path")
	ErrPageRender       = errors.New("page template rendering failed")

	// Rendering errors.
	ErrHTMLConversion          = pipeline.ErrHTMLConversion
	ErrInvalidAutolinkBehavior = pipeline.ErrInvalidAutolinkBehavior
	ErrEmptyAutolinkClass      = pipeline.ErrEmptyAutolinkClass
	ErrUnknownHighlightStyle   = pipeline.ErrUnknownHighlightStyle

	// Content errors.
	ErrMissingMetadata = content.ErrMissingMetadata
	ErrDuplicateSlug   = content.ErrDuplicateSlug
	ErrInvalidSlug     = content.ErrInvalidSlug
	ErrFrontMatter     = content.ErrFrontMatter

	// Site configuration errors.
	ErrSiteRootNotSet  = feed.ErrSiteRootNotSet
	ErrInvalidSiteRoot = feed.ErrInvalidSiteRoot
)
