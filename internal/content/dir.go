package content

import (
	"cmp"
	"context"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"

	"github.com/ic-it/blogkit/internal/fileutil"
)

// Order selects how Dir enumerates documents.
type Order string

const (
	// OrderNewest lists by publication date, newest first. Ties and
	// undated documents (last) fall back to slug order.
	OrderNewest Order = "newest"
	// OrderPath lists by source path.
	OrderPath Order = "path"
)

// Validate reports an unknown order.
func (o Order) Validate() error {
	switch o {
	case OrderNewest, OrderPath:
		return nil
	}
	return fmt.Errorf("content: unknown order %q (expected newest or path)", string(o))
}

// Dir is a collection of Markdown files under an fs.FS. Files and
// directories whose name starts with '.' or '_' are skipped, as are drafts
// unless IncludeDrafts is set.
type Dir struct {
	FS            fs.FS
	Order         Order
	IncludeDrafts bool
}

// NewDir returns a Dir over fsys listing newest first.
func NewDir(fsys fs.FS) *Dir {
	return &Dir{FS: fsys, Order: OrderNewest}
}

// List reads and parses every document. Any unreadable file, malformed
// front matter, or slug conflict fails the whole listing.
func (d *Dir) List(ctx context.Context) ([]Document, error) {
	order := d.Order
	if order == "" {
		order = OrderNewest
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}

	var docs []Document
	err := fs.WalkDir(d.FS, ".", func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if p != "." && isHidden(entry.Name()) {
			if entry.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if entry.IsDir() || !fileutil.IsMarkdown(p) {
			return nil
		}

		data, err := fs.ReadFile(d.FS, p)
		if err != nil {
			return fmt.Errorf("reading %s: %w", p, err)
		}
		doc, err := Parse(p, data)
		if err != nil {
			return err
		}
		if doc.Draft && !d.IncludeDrafts {
			return nil
		}
		docs = append(docs, doc)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := checkSlugs(docs); err != nil {
		return nil, err
	}
	sortDocuments(docs, order)
	return docs, nil
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")
}

func sortDocuments(docs []Document, order Order) {
	if order == OrderPath {
		slices.SortStableFunc(docs, func(a, b Document) int {
			return cmp.Compare(path.Clean(a.Source), path.Clean(b.Source))
		})
		return
	}
	slices.SortStableFunc(docs, func(a, b Document) int {
		switch az, bz := a.PublicationDate.IsZero(), b.PublicationDate.IsZero(); {
		case az && !bz:
			return 1
		case !az && bz:
			return -1
		}
		if c := b.PublicationDate.Compare(a.PublicationDate); c != 0 {
			return c
		}
		return cmp.Compare(a.Slug, b.Slug)
	})
}
