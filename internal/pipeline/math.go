package pipeline

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/ic-it/blogkit/internal/texmath"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// ExpressionError records a math expression that could not be typeset.
// The expression is rendered as literal text instead.
type ExpressionError struct {
	Expr    string
	Display bool
	Err     error
}

func (e *ExpressionError) Error() string {
	return fmt.Sprintf("math expression %q: %v", e.Expr, e.Err)
}

func (e *ExpressionError) Unwrap() error { return e.Err }

// --- Nodes

// KindMath is the NodeKind of inline math.
var KindMath = ast.NewNodeKind("Math")

// Math is an inline $...$ or $$...$$ expression.
type Math struct {
	ast.BaseInline
	Expr    string
	Display bool

	typeset string
	err     error
}

// NewMath returns a Math node for expr.
func NewMath(expr string, display bool) *Math {
	return &Math{Expr: expr, Display: display}
}

func (n *Math) Kind() ast.NodeKind { return KindMath }

func (n *Math) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Expr":    n.Expr,
		"Display": fmt.Sprintf("%t", n.Display),
	}, nil)
}

// KindMathBlock is the NodeKind of display math fenced by $$ lines.
var KindMathBlock = ast.NewNodeKind("MathBlock")

// MathBlock is a display math block:
//
//	$$
//	E = mc^2
//	$$
type MathBlock struct {
	ast.BaseBlock
	indent int

	typeset string
	err     error
}

// NewMathBlock returns an empty MathBlock.
func NewMathBlock() *MathBlock {
	return &MathBlock{}
}

func (n *MathBlock) Kind() ast.NodeKind { return KindMathBlock }

func (n *MathBlock) IsRaw() bool { return true }

func (n *MathBlock) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, nil, nil)
}

// Expr returns the expression held in the block's lines.
func (n *MathBlock) Expr(source []byte) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(source))
	}
	return strings.TrimSpace(b.String())
}

// --- Block parser

type mathBlockParser struct{}

var mathFence = []byte("$$")

func (b *mathBlockParser) Trigger() []byte {
	return []byte{'$'}
}

func (b *mathBlockParser) Open(parent ast.Node, reader text.Reader, pc parser.Context) (ast.Node, parser.State) {
	line, _ := reader.PeekLine()
	pos := pc.BlockOffset()
	if pos < 0 || !bytes.HasPrefix(line[pos:], mathFence) {
		return nil, parser.NoChildren
	}
	// "$$ x $$" on one line is inline display math inside a paragraph.
	if !util.IsBlank(line[pos+len(mathFence):]) {
		return nil, parser.NoChildren
	}
	node := NewMathBlock()
	node.indent = pos
	return node, parser.NoChildren
}

func (b *mathBlockParser) Continue(node ast.Node, reader text.Reader, pc parser.Context) parser.State {
	line, segment := reader.PeekLine()
	block := node.(*MathBlock)

	w, pos := util.IndentWidth(line, reader.LineOffset())
	if w < 4 && bytes.HasPrefix(line[pos:], mathFence) && util.IsBlank(line[pos+len(mathFence):]) {
		reader.Advance(segment.Stop - segment.Start - segment.Padding)
		return parser.Close
	}

	pos, padding := util.IndentPosition(line, reader.LineOffset(), block.indent)
	if pos < 0 {
		pos, padding = 0, 0
	}
	seg := text.NewSegmentPadding(segment.Start+pos, segment.Stop, padding)
	node.Lines().Append(seg)
	reader.AdvanceAndSetPadding(segment.Stop-segment.Start-pos-1, padding)
	return parser.Continue | parser.NoChildren
}

func (b *mathBlockParser) Close(node ast.Node, reader text.Reader, pc parser.Context) {}

func (b *mathBlockParser) CanInterruptParagraph() bool { return true }

func (b *mathBlockParser) CanAcceptIndentedLine() bool { return false }

// --- Inline parser

type mathInlineParser struct{}

func (s *mathInlineParser) Trigger() []byte {
	return []byte{'$'}
}

// Parse reads $expr$ or $$expr$$ on the current line. Inline $ math
// follows the pandoc rules: no space after the opening $, no space before
// the closing $, and no digit right after it, so "$5 and $10" stays text.
func (s *mathInlineParser) Parse(parent ast.Node, block text.Reader, pc parser.Context) ast.Node {
	line, _ := block.PeekLine()
	opener := 0
	for opener < len(line) && line[opener] == '$' {
		opener++
	}
	if opener > 2 || opener >= len(line) {
		return nil
	}
	display := opener == 2
	if !display && isSpace(line[opener]) {
		return nil
	}

	for i := opener; i < len(line); i++ {
		switch line[i] {
		case '\\':
			i++
			continue
		case '$':
		default:
			continue
		}

		j := i
		for j < len(line) && line[j] == '$' {
			j++
		}
		if j-i != opener {
			i = j - 1
			continue
		}
		if !display && (isSpace(line[i-1]) || (j < len(line) && isDigit(line[j]))) {
			i = j - 1
			continue
		}

		expr := string(line[opener:i])
		if strings.TrimSpace(expr) == "" {
			return nil
		}
		block.Advance(j)
		return NewMath(strings.TrimSpace(expr), display)
	}
	return nil
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// --- Renderer

type mathRenderer struct{}

func (r *mathRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindMath, r.renderMath)
	reg.Register(KindMathBlock, r.renderMathBlock)
}

func (r *mathRenderer) renderMath(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkSkipChildren, nil
	}
	n := node.(*Math)
	delim := "$"
	if n.Display {
		delim = "$$"
	}
	writeMath(w, n.typeset, n.err, delim+n.Expr+delim, n.Display)
	return ast.WalkSkipChildren, nil
}

func (r *mathRenderer) renderMathBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkSkipChildren, nil
	}
	n := node.(*MathBlock)
	_, _ = w.WriteString(`<div class="math math-display">`)
	writeMath(w, n.typeset, n.err, "$$\n"+n.Expr(source)+"\n$$", true)
	_, _ = w.WriteString("</div>\n")
	return ast.WalkSkipChildren, nil
}

// writeMath writes typeset MathML in KaTeX's wrapper classes, or the
// literal source in a katex-error span when typesetting failed or never ran.
func writeMath(w util.BufWriter, typeset string, err error, literal string, display bool) {
	if typeset == "" {
		title := "math was not typeset"
		if err != nil {
			title = err.Error()
		}
		_, _ = w.WriteString(`<span class="katex-error" title="` + html.EscapeString(title) + `">`)
		_, _ = w.WriteString(html.EscapeString(literal))
		_, _ = w.WriteString("</span>")
		return
	}
	if display {
		_, _ = w.WriteString(`<span class="katex-display">`)
	}
	_, _ = w.WriteString(`<span class="katex">`)
	_, _ = w.WriteString(typeset)
	_, _ = w.WriteString("</span>")
	if display {
		_, _ = w.WriteString("</span>")
	}
}

// --- Extension

type mathExtension struct{}

// MathExtension registers the $ and $$ math syntax and its renderer.
var MathExtension goldmark.Extender = &mathExtension{}

func (e *mathExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithBlockParsers(util.Prioritized(&mathBlockParser{}, 701)),
		parser.WithInlineParsers(util.Prioritized(&mathInlineParser{}, 501)),
	)
	m.Renderer().AddOptions(
		renderer.WithNodeRenderers(util.Prioritized(&mathRenderer{}, 500)),
	)
}

// --- Typesetting

// typesetMath typesets every math node in doc. Failures are returned and
// leave the node to render as literal text.
func typesetMath(doc ast.Node, source []byte) []*ExpressionError {
	var failures []*ExpressionError
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch m := n.(type) {
		case *Math:
			m.typeset, m.err = typeset(m.Expr, m.Display)
			if m.err != nil {
				failures = append(failures, &ExpressionError{Expr: m.Expr, Display: m.Display, Err: m.err})
			}
			return ast.WalkSkipChildren, nil
		case *MathBlock:
			expr := m.Expr(source)
			m.typeset, m.err = typeset(expr, true)
			if m.err != nil {
				failures = append(failures, &ExpressionError{Expr: expr, Display: true, Err: m.err})
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return failures
}

func typeset(expr string, display bool) (string, error) {
	mode := texmath.Inline
	if display {
		mode = texmath.Display
	}
	return texmath.Typeset(expr, mode)
}
