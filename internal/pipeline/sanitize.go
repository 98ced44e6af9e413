package pipeline

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

// mathMLElements are the elements the math typesetter produces.
var mathMLElements = []string{
	"math", "semantics", "annotation", "mrow", "mi", "mn", "mo", "mtext",
	"mspace", "msup", "msub", "msubsup", "mfrac", "msqrt", "mroot",
	"mover", "munder", "munderover", "mtable", "mtr", "mtd", "mstyle",
}

var mathMLAttributes = []string{
	"xmlns", "display", "encoding", "mathvariant", "fence", "stretchy",
	"minsize", "maxsize", "linethickness", "columnalign", "displaystyle",
	"accent", "accentunder", "width",
}

var classNames = regexp.MustCompile(`^[\w\- ]+$`)

// newPolicy returns the sanitizer applied when raw HTML is allowed in
// Markdown. It starts from bluemonday's UGC policy and admits what the
// pipeline itself emits: heading ids, anchor classes, highlight classes
// and MathML.
func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.RequireNoFollowOnLinks(false)
	p.AllowAttrs("class").Matching(classNames).Globally()
	p.AllowAttrs("id").Globally()
	p.AllowAttrs("tabindex").Matching(regexp.MustCompile(`^-?\d+$`)).OnElements("a")
	p.AllowAttrs("title").OnElements("span")
	p.AllowElements(mathMLElements...)
	p.AllowAttrs(mathMLAttributes...).OnElements(mathMLElements...)
	return p
}
