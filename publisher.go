package blogkit

import (
	"context"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"strings"

	"github.com/ic-it/blogkit/internal/assets"
	"github.com/ic-it/blogkit/internal/dateutil"
	"github.com/ic-it/blogkit/internal/feed"
	"github.com/ic-it/blogkit/internal/log"
	"github.com/ic-it/blogkit/internal/pipeline"
)

// Publisher renders documents and synthesizes the feed.
// Create with NewPublisher; it is safe for concurrent use.
type Publisher struct {
	cfg      publisherConfig
	site     string // resolved site root or SiteRootNotSet
	siteErr  error
	pipeline *pipeline.Pipeline
	synth    *feed.Synthesizer
	pages    *assets.Pages
	logger   *slog.Logger
}

// NewPublisher creates a Publisher with the default rendering
// configuration adjusted by opts. Returns an error for an invalid
// rendering configuration or asset path. A missing site root is not an
// error; see SiteErr.
func NewPublisher(opts ...Option) (*Publisher, error) {
	cfg := publisherConfig{
		render:     pipeline.DefaultConfig(),
		dateFormat: dateutil.DefaultDateFormat,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = log.Discard()
	}

	pl, err := pipeline.New(cfg.render)
	if err != nil {
		return nil, fmt.Errorf("configuring renderer: %w", err)
	}

	var loader assets.AssetLoader = assets.NewEmbeddedLoader()
	if cfg.assetPath != "" {
		resolver, err := assets.NewAssetResolver(cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		loader = resolver
	}
	pages, err := assets.LoadPages(loader)
	if err != nil {
		return nil, fmt.Errorf("loading page templates: %w", err)
	}

	p := &Publisher{
		cfg:      cfg,
		pipeline: pl,
		pages:    pages,
		logger:   cfg.logger,
		synth: feed.NewSynthesizer(&feed.Config{
			SiteRoot:    cfg.siteRoot,
			Title:       cfg.feedTitle,
			Description: cfg.feedDescription,
		}, cfg.logger),
	}
	p.site, p.siteErr = feed.ResolveSiteRoot(cfg.siteRoot)
	return p, nil
}

// SiteErr reports why the site root was replaced by SiteRootNotSet, or
// nil when it is usable.
func (p *Publisher) SiteErr() error {
	return p.siteErr
}

// RenderConfig returns the rendering configuration in use.
func (p *Publisher) RenderConfig() RenderConfig {
	return p.pipeline.Config()
}

// Link returns the absolute URL of slug, or "" without a usable site root.
func (p *Publisher) Link(slug string) string {
	if p.siteErr != nil {
		return ""
	}
	return feed.Link(p.site, slug)
}

// Render runs the rendering pipeline over doc.Body. Log records carry the
// document slug.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (p *Publisher) Render(ctx context.Context, doc Document) (page *Page, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error rendering %q: %v", doc.Slug, r)
		}
	}()

	logger := p.logger.With(slog.String("slug", doc.Slug))
	res, err := p.pipeline.Render(log.IntoContext(ctx, logger), doc.Body)
	if err != nil {
		return nil, fmt.Errorf("rendering %q: %w", doc.Slug, err)
	}
	logger.Debug("document rendered",
		slog.Int("headings", len(res.Headings)),
		slog.Int("mathErrors", len(res.MathErrors)))

	return &Page{
		Document:   doc,
		Link:       p.Link(doc.Slug),
		HTML:       res.HTML,
		Headings:   res.Headings,
		MathErrors: res.MathErrors,
	}, nil
}

// Feed lists c and synthesizes the feed in the collection's order.
// Listing errors are returned; documents missing metadata are not errors
// but FeedResult.Excluded entries.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (p *Publisher) Feed(ctx context.Context, c Collection) (result *FeedResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error synthesizing feed: %v", r)
		}
	}()

	if c == nil {
		return nil, ErrNilCollection
	}
	return p.synth.FromCollection(ctx, c)
}

// SynthesizeFeed builds the feed from docs in the given order.
func (p *Publisher) SynthesizeFeed(docs []Document) *FeedResult {
	return p.synth.Synthesize(docs)
}

// siteData returns the template data shared by every page.
func (p *Publisher) siteData(title, description string) assets.Site {
	var root string
	if p.siteErr == nil {
		root = strings.TrimRight(p.site, "/") + "/"
	}
	return assets.Site{
		Title:       title,
		Description: description,
		Root:        root,
		FeedURL:     FeedRoute,
		DateFormat:  p.cfg.dateFormat,
	}
}

func (p *Publisher) feedMeta() (string, string) {
	title, description := p.cfg.feedTitle, p.cfg.feedDescription
	if title == "" {
		title = DefaultFeedTitle
	}
	if description == "" {
		description = DefaultFeedDescription
	}
	return title, description
}

// WritePage writes page as a complete HTML document using the page template.
func (p *Publisher) WritePage(w io.Writer, page *Page) error {
	headings := make([]assets.Heading, len(page.Headings))
	for i, h := range page.Headings {
		headings[i] = assets.Heading{Level: h.Level, Text: h.Text, ID: h.ID}
	}

	title, description := p.feedMeta()
	data := &assets.PageData{
		Site:        p.siteData(title, description),
		Slug:        page.Document.Slug,
		Title:       page.Document.Title,
		Description: page.Document.Description,
		URL:         page.Link,
		Date:        page.Document.PublicationDate,
		Headings:    headings,
		Body:        template.HTML(page.HTML), // #nosec G203 -- pipeline output, raw HTML dropped or sanitized
	}
	if err := p.pages.RenderPage(w, data); err != nil {
		return fmt.Errorf("%w: %v", ErrPageRender, err)
	}
	return nil
}

// WriteIndex writes the listing page for docs, in the given order.
func (p *Publisher) WriteIndex(w io.Writer, docs []Document) error {
	posts := make([]assets.Summary, len(docs))
	for i, d := range docs {
		posts[i] = assets.Summary{
			Title:       d.Title,
			Description: d.Description,
			Path:        "/" + d.Slug + "/",
			Date:        d.PublicationDate,
		}
	}

	title, description := p.feedMeta()
	data := &assets.IndexData{Site: p.siteData(title, description), Posts: posts}
	if err := p.pages.RenderIndex(w, data); err != nil {
		return fmt.Errorf("%w: %v", ErrPageRender, err)
	}
	return nil
}
