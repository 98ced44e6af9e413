package pipeline

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/yuin/goldmark/ast"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Heading describes one heading of a rendered document.
type Heading struct {
	Level int
	Text  string
	ID    string
}

// Normalize derives a candidate heading id from heading text.
// The text is NFC-normalized and lowercased; letters, marks, digits, '-'
// and '_' are kept, other punctuation and symbols are dropped, and runs of
// whitespace become a single '-'. Leading and trailing whitespace is ignored.
func Normalize(text string) string {
	// A Caser is stateful, so one is created per call.
	s := cases.Lower(language.Und).String(norm.NFC.String(text))

	var b strings.Builder
	b.Grow(len(s))
	pendingSep := false
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			pendingSep = b.Len() > 0
		case unicode.In(r, unicode.L, unicode.M, unicode.Nd) || r == '-' || r == '_':
			if pendingSep {
				b.WriteByte('-')
				pendingSep = false
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Assigner hands out heading ids unique within one document.
// It is not safe for concurrent use; each render creates its own.
type Assigner struct {
	used map[string]bool
}

// NewAssigner returns an Assigner with no ids taken.
func NewAssigner() *Assigner {
	return &Assigner{used: make(map[string]bool)}
}

// Assign returns candidate if it is unused, otherwise candidate with the
// smallest suffix "-1", "-2", ... that is unused. An empty candidate takes
// the smallest unused positive integer.
func (a *Assigner) Assign(candidate string) string {
	if candidate == "" {
		for n := 1; ; n++ {
			id := strconv.Itoa(n)
			if !a.used[id] {
				a.used[id] = true
				return id
			}
		}
	}
	if !a.used[candidate] {
		a.used[candidate] = true
		return candidate
	}
	for n := 1; ; n++ {
		id := candidate + "-" + strconv.Itoa(n)
		if !a.used[id] {
			a.used[id] = true
			return id
		}
	}
}

// assignHeadingIDs walks doc in document order and sets the id attribute
// of every heading. An explicit {#id} attribute is used as the candidate
// instead of the normalized text.
func assignHeadingIDs(doc ast.Node, source []byte, a *Assigner) []Heading {
	var headings []Heading
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}

		text := plainText(h, source)
		candidate := Normalize(text)
		if explicit, ok := attributeString(h, "id"); ok {
			candidate = explicit
		}
		id := a.Assign(candidate)
		h.SetAttributeString("id", []byte(id))
		headings = append(headings, Heading{Level: h.Level, Text: text, ID: id})
		return ast.WalkSkipChildren, nil
	})
	return headings
}

// plainText concatenates the visible text below n. Math contributes its
// source expression.
func plainText(n ast.Node, source []byte) string {
	var b strings.Builder
	var walk func(ast.Node)
	walk = func(n ast.Node) {
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			switch t := c.(type) {
			case *ast.Text:
				b.Write(t.Value(source))
				if t.SoftLineBreak() {
					b.WriteByte(' ')
				}
			case *ast.String:
				if !t.IsCode() {
					b.Write(t.Value)
				}
			case *ast.AutoLink:
				b.Write(t.Label(source))
			case *Math:
				b.WriteString(t.Expr)
			case *ast.RawHTML:
			default:
				walk(c)
			}
		}
	}
	walk(n)
	return strings.TrimSpace(b.String())
}

func attributeString(n ast.Node, name string) (string, bool) {
	v, ok := n.AttributeString(name)
	if !ok {
		return "", false
	}
	switch typed := v.(type) {
	case []byte:
		return string(typed), true
	case string:
		return typed, true
	}
	return "", false
}
