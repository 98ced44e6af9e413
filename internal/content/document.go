package content

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Sentinel errors.
var (
	ErrMissingMetadata = errors.New("missing required metadata")
	ErrDuplicateSlug   = errors.New("duplicate slug")
	ErrInvalidSlug     = errors.New("invalid slug")
	ErrFrontMatter     = errors.New("invalid front matter")
)

// Document is one authored post.
type Document struct {
	Slug            string
	Title           string
	Description     string
	PublicationDate time.Time // zero when the source has none
	Body            string    // Markdown, front matter removed

	Source string // path the document was loaded from, if any
	Draft  bool
}

// Validate reports the metadata a feed entry needs but d lacks.
func (d Document) Validate() error {
	switch {
	case d.Title == "":
		return &Error{Slug: d.Slug, Source: d.Source, Field: "title", Err: ErrMissingMetadata}
	case d.PublicationDate.IsZero():
		return &Error{Slug: d.Slug, Source: d.Source, Field: "publicationDate", Err: ErrMissingMetadata}
	}
	return nil
}

// Error is a problem with one document.
type Error struct {
	Slug   string
	Source string
	Field  string
	Err    error
}

func (e *Error) Error() string {
	who := e.Slug
	if who == "" {
		who = e.Source
	}
	if e.Field != "" {
		return fmt.Sprintf("content: %s: %s: %v", who, e.Field, e.Err)
	}
	return fmt.Sprintf("content: %s: %v", who, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Collection enumerates documents. The returned order is the order
// consumers use.
type Collection interface {
	List(ctx context.Context) ([]Document, error)
}

// Compile-time interface implementation checks.
var (
	_ Collection = Static(nil)
	_ Collection = (*Dir)(nil)
)

// Static is an in-memory collection listed in the order given.
type Static []Document

// List returns a copy of the documents after checking slugs.
func (s Static) List(ctx context.Context) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	docs := make([]Document, len(s))
	copy(docs, s)
	if err := checkSlugs(docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// checkSlugs enforces that every slug is valid and unique.
func checkSlugs(docs []Document) error {
	seen := make(map[string]string, len(docs))
	for _, d := range docs {
		if !ValidSlug(d.Slug) {
			return &Error{Slug: d.Slug, Source: d.Source, Field: "slug", Err: fmt.Errorf("%w: %q", ErrInvalidSlug, d.Slug)}
		}
		if prev, ok := seen[d.Slug]; ok {
			return &Error{Slug: d.Slug, Source: d.Source, Field: "slug",
				Err: fmt.Errorf("%w: also used by %s", ErrDuplicateSlug, describeSource(prev))}
		}
		seen[d.Slug] = d.Source
	}
	return nil
}

func describeSource(source string) string {
	if source == "" {
		return "another document"
	}
	return source
}
