package pipeline

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// preserved elements keep their whitespace verbatim.
var preserved = map[atom.Atom]bool{
	atom.Pre:      true,
	atom.Code:     true,
	atom.Textarea: true,
	atom.Script:   true,
	atom.Style:    true,
	atom.Math:     true,
}

// blocks are elements around which whitespace-only text is dropped.
var blocks = map[atom.Atom]bool{
	atom.P: true, atom.Div: true, atom.Blockquote: true, atom.Pre: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Ul: true, atom.Ol: true, atom.Li: true, atom.Dl: true, atom.Dt: true, atom.Dd: true,
	atom.Table: true, atom.Thead: true, atom.Tbody: true, atom.Tfoot: true,
	atom.Tr: true, atom.Td: true, atom.Th: true, atom.Hr: true,
	atom.Section: true, atom.Figure: true, atom.Details: true, atom.Summary: true,
	atom.Html: true, atom.Head: true, atom.Body: true, atom.Meta: true, atom.Title: true, atom.Link: true,
}

// Compress collapses whitespace in htmlContent: runs of whitespace become a
// single space and whitespace-only text between block elements is removed.
// Content of pre, code, textarea, script, style and math is untouched.
// Full documents and fragments are both accepted.
func Compress(htmlContent string) (string, error) {
	doc, isFragment, err := parseHTML(htmlContent)
	if err != nil {
		return "", err
	}
	compressNode(doc)
	return renderHTML(doc, isFragment)
}

func compressNode(n *html.Node) {
	if n.Type == html.ElementNode && preserved[n.DataAtom] {
		return
	}
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type == html.TextNode {
			if strings.TrimSpace(c.Data) == "" && isBlockBoundary(c.PrevSibling) && isBlockBoundary(c.NextSibling) {
				n.RemoveChild(c)
			} else {
				c.Data = collapseSpace(c.Data)
			}
		} else {
			compressNode(c)
		}
		c = next
	}
}

// isBlockBoundary reports whether a sibling position needs no separating
// whitespace: the edge of the parent, a block element, or a comment.
func isBlockBoundary(n *html.Node) bool {
	if n == nil {
		return true
	}
	switch n.Type {
	case html.ElementNode:
		return blocks[n.DataAtom]
	case html.CommentNode, html.DoctypeNode:
		return true
	}
	return false
}

func collapseSpace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inSpace := false
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\f' {
			if !inSpace {
				b.WriteByte(' ')
				inSpace = true
			}
			continue
		}
		inSpace = false
		b.WriteRune(r)
	}
	return b.String()
}

// parseHTML parses HTML content, handling both full documents and fragments.
// Returns the parsed node, whether it was a fragment, and any error.
func parseHTML(content string) (*html.Node, bool, error) {
	trimmed := strings.ToLower(strings.TrimSpace(content))

	// Full document: starts with <!DOCTYPE or <html
	if strings.HasPrefix(trimmed, "<!doctype") || strings.HasPrefix(trimmed, "<html") {
		doc, err := html.Parse(strings.NewReader(content))
		return doc, false, err
	}

	// Fragment: parse with body context to avoid wrapping
	context := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(strings.NewReader(content), context)
	if err != nil {
		return nil, true, err
	}

	// Wrap nodes in a container for uniform traversal
	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container, true, nil
}

// renderHTML renders the document back to string.
// For fragments, only renders the children (avoids adding <html><body> wrapper).
func renderHTML(doc *html.Node, isFragment bool) (string, error) {
	var buf strings.Builder
	if isFragment {
		for c := doc.FirstChild; c != nil; c = c.NextSibling {
			if err := html.Render(&buf, c); err != nil {
				return "", err
			}
		}
		return buf.String(), nil
	}
	if err := html.Render(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}
