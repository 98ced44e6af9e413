package content

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"

	"github.com/ic-it/blogkit/internal/dateutil"
	"github.com/ic-it/blogkit/internal/yamlutil"
)

// frontMatter is the YAML header of a document. Unknown keys are ignored.
type frontMatter struct {
	Title           string `yaml:"title"`
	Description     string `yaml:"description"`
	PublicationDate string `yaml:"publicationDate"`
	PubDate         string `yaml:"pubDate"`
	Slug            string `yaml:"slug"`
	Draft           bool   `yaml:"draft"`
}

// yamlFormat recognises "---" fenced YAML. An empty header is allowed.
var yamlFormat = frontmatter.NewFormat("---", "---", func(data []byte, v any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	return yamlutil.Unmarshal(data, v)
})

// Parse builds a Document from a Markdown source with optional front
// matter. source is the slash-separated path relative to the content root
// and supplies the slug unless the front matter sets one.
func Parse(source string, data []byte) (Document, error) {
	var fm frontMatter
	body, err := frontmatter.Parse(bytes.NewReader(data), &fm, yamlFormat)
	if err != nil {
		return Document{}, &Error{Source: source, Err: fmt.Errorf("%w: %v", ErrFrontMatter, err)}
	}

	doc := Document{
		Title:       strings.TrimSpace(fm.Title),
		Description: strings.TrimSpace(fm.Description),
		Body:        string(body),
		Source:      source,
		Draft:       fm.Draft,
	}

	date := fm.PublicationDate
	if date == "" {
		date = fm.PubDate
	}
	if strings.TrimSpace(date) != "" {
		t, err := dateutil.ParsePublicationDate(date)
		if err != nil {
			return Document{}, &Error{Source: source, Field: "publicationDate", Err: fmt.Errorf("%w: %v", ErrFrontMatter, err)}
		}
		doc.PublicationDate = t
	}

	if fm.Slug != "" {
		slug := strings.Trim(strings.TrimSpace(fm.Slug), "/")
		if !ValidSlug(slug) {
			return Document{}, &Error{Source: source, Field: "slug", Err: fmt.Errorf("%w: %q", ErrInvalidSlug, fm.Slug)}
		}
		doc.Slug = slug
		return doc, nil
	}

	slug, err := SlugFromPath(source)
	if err != nil {
		return Document{}, err
	}
	doc.Slug = slug
	return doc, nil
}
