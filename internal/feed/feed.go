package feed

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/ic-it/blogkit/internal/content"
	"github.com/ic-it/blogkit/internal/log"
)

// Feed-level defaults.
const (
	DefaultTitle       = "IC-IT’s Blog"
	DefaultDescription = "Blog about software engineering and other things."

	// SiteRootNotSet replaces the site root when none usable is configured.
	SiteRootNotSet = "[NOT SET?]"

	// Route is where the feed is published.
	Route = "/rss.xml"
)

// Sentinel errors for site root configuration.
var (
	ErrSiteRootNotSet  = errors.New("site root not set")
	ErrInvalidSiteRoot = errors.New("invalid site root")
)

// Config holds the static feed settings.
type Config struct {
	SiteRoot    string
	Title       string // DefaultTitle when empty
	Description string // DefaultDescription when empty
}

// Feed is a synthesized feed. It holds no references to the documents it
// was built from.
type Feed struct {
	Title       string
	Description string
	Site        string
	Entries     []Entry
}

// Entry is one published document.
type Entry struct {
	Title       string
	PubDate     time.Time
	Description string
	Link        string
	Content     string // an anchor pointing back at Link
}

// Result is the outcome of one synthesis.
type Result struct {
	Feed *Feed

	// Excluded lists documents left out of the feed, in collection order.
	Excluded []*content.Error

	// SiteErr is non-nil when the site root was replaced by SiteRootNotSet.
	SiteErr error
}

// Synthesizer builds feeds from documents. It is safe for concurrent use.
type Synthesizer struct {
	title       string
	description string
	site        string
	siteErr     error
	logger      *slog.Logger
}

// NewSynthesizer validates cfg once and returns a Synthesizer. A nil logger
// discards output.
func NewSynthesizer(cfg *Config, logger *slog.Logger) *Synthesizer {
	if cfg == nil {
		cfg = &Config{}
	}
	if logger == nil {
		logger = log.Discard()
	}
	s := &Synthesizer{
		title:       cfg.Title,
		description: cfg.Description,
		logger:      logger,
	}
	if s.title == "" {
		s.title = DefaultTitle
	}
	if s.description == "" {
		s.description = DefaultDescription
	}
	s.site, s.siteErr = ResolveSiteRoot(cfg.SiteRoot)
	return s
}

// ResolveSiteRoot checks that root is an absolute URL with a host. On
// failure it returns SiteRootNotSet along with the reason.
func ResolveSiteRoot(root string) (string, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return SiteRootNotSet, ErrSiteRootNotSet
	}
	u, err := url.Parse(root)
	if err != nil {
		return SiteRootNotSet, fmt.Errorf("%w: %q: %v", ErrInvalidSiteRoot, root, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return SiteRootNotSet, fmt.Errorf("%w: %q is not an absolute URL", ErrInvalidSiteRoot, root)
	}
	return root, nil
}

// Link joins a site root and a slug with exactly one slash between them
// and a trailing slash after the slug.
func Link(site, slug string) string {
	return strings.TrimRight(site, "/") + "/" + strings.Trim(slug, "/") + "/"
}

// anchor renders the entry content: a link whose href and text are both
// the entry link.
func anchor(link string) string {
	escaped := html.EscapeString(link)
	return `<a href="` + escaped + `">` + escaped + `</a>`
}

// Synthesize builds a feed from docs in the given order.
func (s *Synthesizer) Synthesize(docs []content.Document) *Result {
	res := &Result{
		Feed: &Feed{
			Title:       s.title,
			Description: s.description,
			Site:        s.site,
			Entries:     make([]Entry, 0, len(docs)),
		},
		SiteErr: s.siteErr,
	}
	if s.siteErr != nil {
		s.logger.Warn("feed links use a placeholder site root", "site", SiteRootNotSet, "error", s.siteErr)
	}

	for _, doc := range docs {
		if err := doc.Validate(); err != nil {
			var cerr *content.Error
			if !errors.As(err, &cerr) {
				cerr = &content.Error{Slug: doc.Slug, Source: doc.Source, Err: err}
			}
			s.logger.Warn("document excluded from feed", "slug", doc.Slug, "field", cerr.Field, "error", cerr.Err)
			res.Excluded = append(res.Excluded, cerr)
			continue
		}
		link := Link(s.site, doc.Slug)
		res.Feed.Entries = append(res.Feed.Entries, Entry{
			Title:       doc.Title,
			PubDate:     doc.PublicationDate,
			Description: doc.Description,
			Link:        link,
			Content:     anchor(link),
		})
	}

	s.logger.Debug("feed synthesized", "entries", len(res.Feed.Entries), "excluded", len(res.Excluded))
	return res
}

// FromCollection lists c and synthesizes its documents. Listing errors are
// returned as is.
func (s *Synthesizer) FromCollection(ctx context.Context, c content.Collection) (*Result, error) {
	docs, err := c.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	return s.Synthesize(docs), nil
}
