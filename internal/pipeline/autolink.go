package pipeline

import (
	"fmt"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
)

// AutolinkBehavior controls where the heading self-link goes.
type AutolinkBehavior string

const (
	// AutolinkWrap makes the anchor the only child of the heading,
	// holding the original content.
	AutolinkWrap AutolinkBehavior = "wrap"
	// AutolinkPrepend inserts an icon anchor before the content.
	AutolinkPrepend AutolinkBehavior = "prepend"
	// AutolinkAppend inserts an icon anchor after the content.
	AutolinkAppend AutolinkBehavior = "append"
)

// DefaultAutolinkClass is the class token set on heading anchors.
const DefaultAutolinkClass = "heading-linker"

const autolinkIcon = `<span class="icon icon-link"></span>`

// Validate reports an unknown behavior.
func (b AutolinkBehavior) Validate() error {
	switch b {
	case AutolinkWrap, AutolinkPrepend, AutolinkAppend:
		return nil
	}
	return fmt.Errorf("%w: %q (expected wrap, prepend or append)", ErrInvalidAutolinkBehavior, string(b))
}

// autolinkHeadings adds a link to #id to every heading that has an id.
// Heading levels and ids are left untouched.
func autolinkHeadings(doc ast.Node, source []byte, behavior AutolinkBehavior, class string) {
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		id, ok := attributeString(h, "id")
		if !ok || id == "" {
			return ast.WalkSkipChildren, nil
		}

		link := ast.NewLink()
		link.Destination = []byte("#" + id)
		if class != "" {
			link.SetAttributeString("class", []byte(class))
		}

		switch behavior {
		case AutolinkPrepend, AutolinkAppend:
			link.SetAttributeString("tabindex", []byte("-1"))
			icon := ast.NewString([]byte(autolinkIcon))
			icon.SetCode(true)
			link.AppendChild(link, icon)
			if behavior == AutolinkPrepend && h.FirstChild() != nil {
				h.InsertBefore(h, h.FirstChild(), link)
			} else {
				h.AppendChild(h, link)
			}
		default:
			footnotes := flattenLinks(h, source)
			for c := h.FirstChild(); c != nil; {
				next := c.NextSibling()
				h.RemoveChild(h, c)
				link.AppendChild(link, c)
				c = next
			}
			h.AppendChild(h, link)
			for _, fn := range footnotes {
				h.AppendChild(h, fn)
			}
		}
		return ast.WalkSkipChildren, nil
	})
}

// flattenLinks replaces every link below h with its content and every
// autolink with its label, so a wrapping anchor never contains another
// anchor. Footnote references are detached and returned in order; the
// caller places them after the wrapper.
func flattenLinks(h ast.Node, source []byte) []ast.Node {
	var links, footnotes []ast.Node
	_ = ast.Walk(h, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || n == h {
			return ast.WalkContinue, nil
		}
		switch n.(type) {
		case *ast.Link, *ast.AutoLink:
			links = append(links, n)
		case *east.FootnoteLink:
			footnotes = append(footnotes, n)
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	for _, fn := range footnotes {
		fn.Parent().RemoveChild(fn.Parent(), fn)
	}
	// Innermost first, so a moved child is never a link still pending.
	for i := len(links) - 1; i >= 0; i-- {
		l := links[i]
		parent := l.Parent()
		if parent == nil {
			continue
		}
		if al, ok := l.(*ast.AutoLink); ok {
			parent.ReplaceChild(parent, l, ast.NewString(al.Label(source)))
			continue
		}
		for c := l.FirstChild(); c != nil; {
			next := c.NextSibling()
			l.RemoveChild(l, c)
			parent.InsertBefore(parent, l, c)
			c = next
		}
		parent.RemoveChild(parent, l)
	}
	return footnotes
}
