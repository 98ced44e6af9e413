package blogkit

import (
	"log/slog"

	"github.com/ic-it/blogkit/internal/content"
	"github.com/ic-it/blogkit/internal/feed"
	"github.com/ic-it/blogkit/internal/pipeline"
)

// Document is one authored post.
type Document = content.Document

// Collection enumerates documents; its order is the feed order.
type Collection = content.Collection

// Static is an in-memory Collection listed in the order given.
type Static = content.Static

// ContentError describes a document that could not be used.
type ContentError = content.Error

// Heading is one heading of a rendered document.
type Heading = pipeline.Heading

// ExpressionError is a math expression rendered as literal text.
type ExpressionError = pipeline.ExpressionError

// RenderConfig is the rendering configuration.
type RenderConfig = pipeline.Config

// AutolinkBehavior controls where a heading self-link is placed.
type AutolinkBehavior = pipeline.AutolinkBehavior

// Autolink behaviors.
const (
	AutolinkWrap    = pipeline.AutolinkWrap
	AutolinkPrepend = pipeline.AutolinkPrepend
	AutolinkAppend  = pipeline.AutolinkAppend
)

// Feed is a synthesized feed.
type Feed = feed.Feed

// FeedEntry is one feed item.
type FeedEntry = feed.Entry

// FeedResult is the outcome of feed synthesis.
type FeedResult = feed.Result

// Feed constants.
const (
	SiteRootNotSet         = feed.SiteRootNotSet
	FeedRoute              = feed.Route
	DefaultFeedTitle       = feed.DefaultTitle
	DefaultFeedDescription = feed.DefaultDescription
)

// Page is a rendered document.
type Page struct {
	Document   Document
	Link       string // absolute URL, empty without a usable site root
	HTML       string // rendered body
	Headings   []Heading
	MathErrors []*ExpressionError
}

// Option configures a Publisher.
type Option func(*publisherConfig)

// publisherConfig holds the settings collected from options.
type publisherConfig struct {
	render          RenderConfig
	siteRoot        string
	feedTitle       string
	feedDescription string
	dateFormat      string
	assetPath       string
	logger          *slog.Logger
}

// WithSiteRoot sets the absolute URL the site is published under.
func WithSiteRoot(root string) Option {
	return func(c *publisherConfig) {
		c.siteRoot = root
	}
}

// WithLogger sets the logger for rendering and feed warnings.
func WithLogger(l *slog.Logger) Option {
	return func(c *publisherConfig) {
		c.logger = l
	}
}

// WithFeedTitle overrides DefaultFeedTitle.
func WithFeedTitle(title string) Option {
	return func(c *publisherConfig) {
		c.feedTitle = title
	}
}

// WithFeedDescription overrides DefaultFeedDescription.
func WithFeedDescription(description string) Option {
	return func(c *publisherConfig) {
		c.feedDescription = description
	}
}

// WithAutolink sets the heading autolink behavior and anchor class.
func WithAutolink(behavior AutolinkBehavior, class string) Option {
	return func(c *publisherConfig) {
		c.render.Autolink.Behavior = behavior
		c.render.Autolink.Class = class
	}
}

// WithMath enables or disables math support.
func WithMath(enabled bool) Option {
	return func(c *publisherConfig) {
		c.render.Math = enabled
	}
}

// WithHighlightStyle sets the chroma style for fenced code. An empty
// style leaves colors to CSS classes.
func WithHighlightStyle(style string) Option {
	return func(c *publisherConfig) {
		c.render.Highlight.Style = style
	}
}

// WithCompressHTML toggles inter-element whitespace removal.
func WithCompressHTML(enabled bool) Option {
	return func(c *publisherConfig) {
		c.render.Compress = enabled
	}
}

// WithUnsafeHTML passes raw HTML from documents through a sanitizer
// instead of dropping it.
func WithUnsafeHTML(enabled bool) Option {
	return func(c *publisherConfig) {
		c.render.UnsafeHTML = enabled
	}
}

// WithRenderConfig replaces the whole rendering configuration.
func WithRenderConfig(cfg RenderConfig) Option {
	return func(c *publisherConfig) {
		c.render = cfg
	}
}

// WithDateFormat sets the date format used by page templates.
func WithDateFormat(format string) Option {
	return func(c *publisherConfig) {
		c.dateFormat = format
	}
}

// WithAssetPath sets a directory whose templates/ override the embedded
// page templates.
func WithAssetPath(path string) Option {
	return func(c *publisherConfig) {
		c.assetPath = path
	}
}
