package assets

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/ic-it/blogkit/internal/dateutil"
)

// Site is the site-wide data every page sees.
type Site struct {
	Title       string
	Description string
	Root        string
	FeedURL     string
	DateFormat  string // dateutil tokens or preset; dateutil.DefaultDateFormat when empty
}

// Heading is one entry of a page outline.
type Heading struct {
	Level int
	Text  string
	ID    string
}

// PageData is the input of the page template.
type PageData struct {
	Site        Site
	Slug        string
	Title       string
	Description string
	URL         string
	Date        time.Time
	Headings    []Heading
	Body        template.HTML // trusted pipeline output
}

// Summary is one document in the index listing.
type Summary struct {
	Title       string
	Description string
	Path        string
	Date        time.Time
}

// IndexData is the input of the index template.
type IndexData struct {
	Site  Site
	Posts []Summary
}

// Pages holds the parsed page and index templates. It is safe for
// concurrent use.
type Pages struct {
	page  *template.Template
	index *template.Template
}

// LoadPages loads and parses the page and index templates from loader.
func LoadPages(loader AssetLoader) (*Pages, error) {
	page, err := parseTemplate(loader, PageTemplate)
	if err != nil {
		return nil, err
	}
	index, err := parseTemplate(loader, IndexTemplate)
	if err != nil {
		return nil, err
	}
	return &Pages{page: page, index: index}, nil
}

func parseTemplate(loader AssetLoader, name string) (*template.Template, error) {
	src, err := loader.LoadTemplate(name)
	if err != nil {
		return nil, err
	}
	tmpl, err := template.New(name).Funcs(funcs).Parse(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTemplateParse, name, err)
	}
	return tmpl, nil
}

var funcs = template.FuncMap{
	"date": formatDate,
}

// formatDate renders t for display; a zero time renders as "".
func formatDate(t time.Time, format string) string {
	if t.IsZero() {
		return ""
	}
	if format == "" {
		format = dateutil.DefaultDateFormat
	}
	s, err := dateutil.Format(t, format)
	if err != nil {
		return t.Format(time.DateOnly)
	}
	return s
}

// RenderPage executes the page template.
func (p *Pages) RenderPage(w io.Writer, data *PageData) error {
	return p.page.Execute(w, data)
}

// RenderIndex executes the index template.
func (p *Pages) RenderIndex(w io.Writer, data *IndexData) error {
	return p.index.Execute(w, data)
}
