// Package texmath typesets a subset of TeX math notation as MathML.
//
// The output is a complete <math> element carrying the source expression as
// an application/x-tex annotation, so it renders natively in browsers and
// keeps the original notation for copy and paste. Anything outside the
// supported subset is reported as a *ParseError rather than guessed at.
package texmath

import (
	"fmt"
	"html"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Mode selects inline or display typesetting.
type Mode int

const (
	Inline Mode = iota
	Display
)

func (m Mode) String() string {
	if m == Display {
		return "display"
	}
	return "inline"
}

// Input limits.
const (
	MaxExpressionLength = 10000
	MaxDepth            = 64
)

const mathMLNamespace = "http://www.w3.org/1998/Math/MathML"

// ParseError describes why an expression could not be typeset.
// Pos is the byte offset in Expr where parsing stopped.
type ParseError struct {
	Expr string
	Pos  int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("texmath: %s at position %d", e.Msg, e.Pos)
}

// Typeset converts expr to a MathML <math> element.
func Typeset(expr string, mode Mode) (string, error) {
	if len(expr) > MaxExpressionLength {
		return "", &ParseError{Expr: expr, Pos: MaxExpressionLength, Msg: "expression too long"}
	}

	p := &parser{src: expr, mode: mode}
	items, err := p.parseRow()
	if err != nil {
		return "", err
	}
	if t := p.peek(); t.kind != tokEOF {
		return "", p.errorf(t.pos, "unexpected %s", t.describe())
	}

	var b strings.Builder
	b.WriteString(`<math xmlns="` + mathMLNamespace + `"`)
	if mode == Display {
		b.WriteString(` display="block"`)
	}
	b.WriteString(`><semantics><mrow>`)
	for _, item := range items {
		b.WriteString(item)
	}
	b.WriteString(`</mrow><annotation encoding="application/x-tex">`)
	b.WriteString(html.EscapeString(expr))
	b.WriteString(`</annotation></semantics></math>`)
	return b.String(), nil
}

// --- Lexer

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokChar
	tokCommand
	tokOpen
	tokClose
	tokSup
	tokSub
	tokAlign
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

func (t token) describe() string {
	switch t.kind {
	case tokEOF:
		return "end of input"
	case tokCommand:
		return t.text
	default:
		return "'" + t.text + "'"
	}
}

// isStop reports whether t ends the current row.
func (t token) isStop() bool {
	switch t.kind {
	case tokEOF, tokClose, tokAlign:
		return true
	case tokCommand:
		return t.text == `\\` || t.text == `\end` || t.text == `\right`
	}
	return false
}

type parser struct {
	src      string
	pos      int
	mode     Mode
	depth    int
	font     string // mathvariant applied to letters and digits
	optional int    // inside [...] of \sqrt
}

func (p *parser) errorf(pos int, format string, args ...any) *ParseError {
	return &ParseError{Expr: p.src, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// scan reads the token starting at or after offset at, skipping whitespace.
func (p *parser) scan(at int) (token, int) {
	for at < len(p.src) {
		r, w := utf8.DecodeRuneInString(p.src[at:])
		if !unicode.IsSpace(r) {
			break
		}
		at += w
	}
	if at >= len(p.src) {
		return token{kind: tokEOF, pos: at}, at
	}

	r, w := utf8.DecodeRuneInString(p.src[at:])
	switch r {
	case '{':
		return token{kind: tokOpen, text: "{", pos: at}, at + 1
	case '}':
		return token{kind: tokClose, text: "}", pos: at}, at + 1
	case '^':
		return token{kind: tokSup, text: "^", pos: at}, at + 1
	case '_':
		return token{kind: tokSub, text: "_", pos: at}, at + 1
	case '&':
		return token{kind: tokAlign, text: "&", pos: at}, at + 1
	case '\\':
		j := at + 1
		for j < len(p.src) && isASCIILetter(p.src[j]) {
			j++
		}
		if j == at+1 && j < len(p.src) {
			_, w2 := utf8.DecodeRuneInString(p.src[j:])
			j += w2
		}
		return token{kind: tokCommand, text: p.src[at:j], pos: at}, j
	}
	return token{kind: tokChar, text: string(r), pos: at}, at + w
}

func (p *parser) peek() token {
	t, _ := p.scan(p.pos)
	return t
}

func (p *parser) next() token {
	t, n := p.scan(p.pos)
	p.pos = n
	return t
}

func (p *parser) enter(pos int) error {
	p.depth++
	if p.depth > MaxDepth {
		return p.errorf(pos, "expression too deeply nested")
	}
	return nil
}

func (p *parser) leave() { p.depth-- }

// --- Rows and atoms

// parseRow parses atoms until a token that ends the row. The stopping
// token is left for the caller.
func (p *parser) parseRow() ([]string, error) {
	var items []string
	for {
		t := p.peek()
		if t.isStop() || (p.optional > 0 && t.kind == tokChar && t.text == "]") {
			return items, nil
		}
		if t.kind == tokCommand && (t.text == `\displaystyle` || t.text == `\textstyle`) {
			p.next()
			rest, err := p.parseRow()
			if err != nil {
				return nil, err
			}
			items = append(items, fmt.Sprintf(`<mstyle displaystyle="%t">%s</mstyle>`,
				t.text == `\displaystyle`, row(rest)))
			return items, nil
		}

		atom, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		items = append(items, atom)
	}
}

// parseAtom parses a base followed by optional sub- and superscripts.
func (p *parser) parseAtom() (string, error) {
	base, limits, err := p.parseBase()
	if err != nil {
		return "", err
	}

	var sub, sup string
	var hasSub, hasSup bool
	for {
		t := p.peek()
		if t.kind == tokCommand && (t.text == `\limits` || t.text == `\nolimits`) {
			p.next()
			limits = t.text == `\limits`
			continue
		}
		if t.kind != tokSup && t.kind != tokSub {
			break
		}
		p.next()
		if t.kind == tokSup && hasSup {
			return "", p.errorf(t.pos, "double superscript")
		}
		if t.kind == tokSub && hasSub {
			return "", p.errorf(t.pos, "double subscript")
		}
		arg, err := p.parseArg(t.text)
		if err != nil {
			return "", err
		}
		if t.kind == tokSup {
			sup, hasSup = arg, true
		} else {
			sub, hasSub = arg, true
		}
	}

	switch {
	case hasSub && hasSup && limits:
		return "<munderover>" + base + sub + sup + "</munderover>", nil
	case hasSub && hasSup:
		return "<msubsup>" + base + sub + sup + "</msubsup>", nil
	case hasSub && limits:
		return "<munder>" + base + sub + "</munder>", nil
	case hasSub:
		return "<msub>" + base + sub + "</msub>", nil
	case hasSup && limits:
		return "<mover>" + base + sup + "</mover>", nil
	case hasSup:
		return "<msup>" + base + sup + "</msup>", nil
	}
	return base, nil
}

// parseBase parses one nucleus. limits reports whether scripts attached to
// it belong above and below.
func (p *parser) parseBase() (el string, limits bool, err error) {
	t := p.peek()
	switch t.kind {
	case tokSup, tokSub:
		return "<mrow></mrow>", false, nil
	case tokOpen:
		p.next()
		el, err = p.parseGroupBody(t)
		return el, false, err
	case tokChar:
		p.next()
		if isDigit(t.text[0]) {
			start := t.pos
			for p.pos < len(p.src) && (isDigit(p.src[p.pos]) ||
				(p.src[p.pos] == '.' && p.pos+1 < len(p.src) && isDigit(p.src[p.pos+1]))) {
				p.pos++
			}
			return "<mn" + p.fontAttr() + ">" + p.src[start:p.pos] + "</mn>", false, nil
		}
		el, err = p.charElement(t)
		return el, false, err
	case tokCommand:
		p.next()
		return p.parseCommand(t)
	case tokEOF:
		return "", false, p.errorf(t.pos, "unexpected end of input")
	}
	return "", false, p.errorf(t.pos, "unexpected %s", t.describe())
}

// parseArg parses a command or script argument: a braced group or a
// single token.
func (p *parser) parseArg(owner string) (string, error) {
	t := p.peek()
	switch {
	case t.kind == tokOpen:
		p.next()
		return p.parseGroupBody(t)
	case t.kind == tokChar:
		p.next()
		return p.charElement(t)
	case t.kind == tokCommand && !t.isStop():
		p.next()
		el, _, err := p.parseCommand(t)
		return el, err
	}
	return "", p.errorf(t.pos, "expected argument for %s, got %s", owner, t.describe())
}

// parseGroupBody parses the contents of a group whose '{' was consumed.
func (p *parser) parseGroupBody(open token) (string, error) {
	if err := p.enter(open.pos); err != nil {
		return "", err
	}
	defer p.leave()

	savedOptional := p.optional
	p.optional = 0
	items, err := p.parseRow()
	p.optional = savedOptional
	if err != nil {
		return "", err
	}
	if t := p.next(); t.kind != tokClose {
		return "", p.errorf(t.pos, "expected '}', got %s", t.describe())
	}
	return row(items), nil
}

func (p *parser) charElement(t token) (string, error) {
	r, _ := utf8.DecodeRuneInString(t.text)
	switch {
	case r == '~':
		return "<mtext>&#160;</mtext>", nil
	case r == '%' || r == '#' || r == '$':
		return "", p.errorf(t.pos, "unexpected %s", t.describe())
	case unicode.IsLetter(r):
		return "<mi" + p.fontAttr() + ">" + html.EscapeString(t.text) + "</mi>", nil
	case unicode.IsDigit(r):
		return "<mn" + p.fontAttr() + ">" + t.text + "</mn>", nil
	}
	if op, ok := operatorChars[r]; ok {
		return "<mo>" + html.EscapeString(op) + "</mo>", nil
	}
	return "<mo>" + html.EscapeString(t.text) + "</mo>", nil
}

func (p *parser) fontAttr() string {
	if p.font == "" {
		return ""
	}
	return ` mathvariant="` + p.font + `"`
}

// --- Commands

func (p *parser) parseCommand(t token) (string, bool, error) {
	name := t.text
	display := p.mode == Display

	if s, ok := symbols[name]; ok {
		return symbolElement(s), s.limits && display, nil
	}
	if f, ok := functions[name]; ok {
		return "<mi>" + f.text + "</mi>", f.limits && display, nil
	}
	if width, ok := spaces[name]; ok {
		return `<mspace width="` + width + `"></mspace>`, false, nil
	}
	if a, ok := accents[name]; ok {
		arg, err := p.parseArg(name)
		if err != nil {
			return "", false, err
		}
		mark := "<mo>" + html.EscapeString(a.mark) + "</mo>"
		if a.under {
			return `<munder accentunder="true">` + arg + mark + "</munder>", false, nil
		}
		return `<mover accent="true">` + arg + mark + "</mover>", false, nil
	}
	if variant, ok := fonts[name]; ok {
		saved := p.font
		p.font = variant
		arg, err := p.parseArg(name)
		p.font = saved
		return arg, false, err
	}
	if variant, ok := texts[name]; ok {
		text, err := p.readRawArg(name)
		if err != nil {
			return "", false, err
		}
		attr := ""
		if variant != "" {
			attr = ` mathvariant="` + variant + `"`
		}
		return "<mtext" + attr + ">" + html.EscapeString(text) + "</mtext>", false, nil
	}
	if size, ok := bigSizes[name]; ok {
		delim, err := p.parseDelimiter(name)
		if err != nil {
			return "", false, err
		}
		return `<mo fence="false" stretchy="true" minsize="` + size + `" maxsize="` + size + `">` +
			html.EscapeString(delim) + "</mo>", false, nil
	}

	switch name {
	case `\frac`, `\dfrac`, `\tfrac`, `\cfrac`:
		num, den, err := p.parseTwoArgs(name)
		if err != nil {
			return "", false, err
		}
		frac := "<mfrac>" + num + den + "</mfrac>"
		switch name {
		case `\dfrac`, `\cfrac`:
			frac = `<mstyle displaystyle="true">` + frac + "</mstyle>"
		case `\tfrac`:
			frac = `<mstyle displaystyle="false">` + frac + "</mstyle>"
		}
		return frac, false, nil

	case `\binom`, `\dbinom`, `\tbinom`:
		top, bottom, err := p.parseTwoArgs(name)
		if err != nil {
			return "", false, err
		}
		return `<mrow><mo fence="true">(</mo><mfrac linethickness="0">` + top + bottom +
			`</mfrac><mo fence="true">)</mo></mrow>`, false, nil

	case `\sqrt`:
		return p.parseSqrt(t)

	case `\left`:
		return p.parseLeftRight(t)

	case `\overset`, `\stackrel`, `\underset`:
		script, base, err := p.parseTwoArgs(name)
		if err != nil {
			return "", false, err
		}
		if name == `\underset` {
			return "<munder>" + base + script + "</munder>", false, nil
		}
		return "<mover>" + base + script + "</mover>", false, nil

	case `\overbrace`, `\underbrace`:
		arg, err := p.parseArg(name)
		if err != nil {
			return "", false, err
		}
		if name == `\underbrace` {
			return "<munder>" + arg + `<mo stretchy="true">⏟</mo></munder>`, true, nil
		}
		return "<mover>" + arg + `<mo stretchy="true">⏞</mo></mover>`, true, nil

	case `\operatorname`:
		limits := false
		if p.pos < len(p.src) && p.src[p.pos] == '*' {
			p.pos++
			limits = display
		}
		text, err := p.readRawArg(name)
		if err != nil {
			return "", false, err
		}
		attr := ""
		if utf8.RuneCountInString(text) == 1 {
			attr = ` mathvariant="normal"`
		}
		return "<mi" + attr + ">" + html.EscapeString(text) + "</mi>", limits, nil

	case `\ `:
		return "<mtext>&#160;</mtext>", false, nil

	case `\begin`:
		return p.parseEnvironment(t)

	case `\`:
		return "", false, p.errorf(t.pos, "unexpected end of input after '\\'")
	}

	return "", false, p.errorf(t.pos, "undefined control sequence %s", name)
}

func symbolElement(s symbol) string {
	text := html.EscapeString(s.text)
	switch s.kind {
	case kindUpright:
		return `<mi mathvariant="normal">` + text + "</mi>"
	case kindOp:
		return "<mo>" + text + "</mo>"
	}
	return "<mi>" + text + "</mi>"
}

func (p *parser) parseTwoArgs(name string) (string, string, error) {
	first, err := p.parseArg(name)
	if err != nil {
		return "", "", err
	}
	second, err := p.parseArg(name)
	if err != nil {
		return "", "", err
	}
	return first, second, nil
}

func (p *parser) parseSqrt(t token) (string, bool, error) {
	var index string
	hasIndex := false
	if open := p.peek(); open.kind == tokChar && open.text == "[" {
		p.next()
		if err := p.enter(open.pos); err != nil {
			return "", false, err
		}
		p.optional++
		items, err := p.parseRow()
		p.optional--
		p.leave()
		if err != nil {
			return "", false, err
		}
		if c := p.next(); c.kind != tokChar || c.text != "]" {
			return "", false, p.errorf(c.pos, "expected ']', got %s", c.describe())
		}
		index, hasIndex = row(items), true
	}

	body, err := p.parseArg(t.text)
	if err != nil {
		return "", false, err
	}
	if hasIndex {
		return "<mroot>" + body + index + "</mroot>", false, nil
	}
	return "<msqrt>" + body + "</msqrt>", false, nil
}

func (p *parser) parseLeftRight(t token) (string, bool, error) {
	if err := p.enter(t.pos); err != nil {
		return "", false, err
	}
	defer p.leave()

	open, err := p.parseDelimiter(t.text)
	if err != nil {
		return "", false, err
	}
	items, err := p.parseRow()
	if err != nil {
		return "", false, err
	}
	if r := p.next(); r.kind != tokCommand || r.text != `\right` {
		return "", false, p.errorf(r.pos, `expected \right, got %s`, r.describe())
	}
	closing, err := p.parseDelimiter(`\right`)
	if err != nil {
		return "", false, err
	}

	var b strings.Builder
	b.WriteString("<mrow>")
	b.WriteString(fence(open))
	for _, item := range items {
		b.WriteString(item)
	}
	b.WriteString(fence(closing))
	b.WriteString("</mrow>")
	return b.String(), false, nil
}

func (p *parser) parseDelimiter(owner string) (string, error) {
	t := p.next()
	if t.kind == tokChar || t.kind == tokCommand {
		if d, ok := delimiters[t.text]; ok {
			return d, nil
		}
	}
	return "", p.errorf(t.pos, "missing or unrecognized delimiter after %s", owner)
}

func (p *parser) parseEnvironment(begin token) (string, bool, error) {
	name, err := p.readRawArg(begin.text)
	if err != nil {
		return "", false, err
	}
	env, ok := environments[name]
	if !ok {
		return "", false, p.errorf(begin.pos, "unknown environment %q", name)
	}
	if err := p.enter(begin.pos); err != nil {
		return "", false, err
	}
	defer p.leave()

	var rows [][]string
	var cells []string
	for {
		items, err := p.parseRow()
		if err != nil {
			return "", false, err
		}
		cells = append(cells, row(items))

		t := p.next()
		switch {
		case t.kind == tokAlign:
			continue
		case t.kind == tokCommand && t.text == `\\`:
			rows = append(rows, cells)
			cells = nil
			continue
		case t.kind == tokCommand && t.text == `\end`:
			endName, err := p.readRawArg(t.text)
			if err != nil {
				return "", false, err
			}
			if endName != name {
				return "", false, p.errorf(t.pos, `mismatched \end{%s} for \begin{%s}`, endName, name)
			}
			if !(len(cells) == 1 && cells[0] == emptyRow) {
				rows = append(rows, cells)
			}
			return renderTable(env, rows), false, nil
		}
		return "", false, p.errorf(t.pos, `expected \end{%s}, got %s`, name, t.describe())
	}
}

func renderTable(env environment, rows [][]string) string {
	var b strings.Builder
	if env.open != "" || env.close != "" {
		b.WriteString("<mrow>")
		b.WriteString(fence(env.open))
	}
	b.WriteString("<mtable")
	if env.columnAlign != "" {
		b.WriteString(` columnalign="` + env.columnAlign + `"`)
	}
	if env.display {
		b.WriteString(` displaystyle="true"`)
	}
	b.WriteString(">")
	for _, cells := range rows {
		b.WriteString("<mtr>")
		for _, cell := range cells {
			b.WriteString("<mtd>" + cell + "</mtd>")
		}
		b.WriteString("</mtr>")
	}
	b.WriteString("</mtable>")
	if env.open != "" || env.close != "" {
		b.WriteString(fence(env.close))
		b.WriteString("</mrow>")
	}
	return b.String()
}

// readRawArg reads a braced argument verbatim, for text and names.
func (p *parser) readRawArg(owner string) (string, error) {
	t := p.next()
	if t.kind != tokOpen {
		return "", p.errorf(t.pos, "expected '{' after %s, got %s", owner, t.describe())
	}

	var b strings.Builder
	depth := 0
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch {
		case c == '\\' && p.pos+1 < len(p.src) && strings.IndexByte(`{}$%&_# \`, p.src[p.pos+1]) >= 0:
			b.WriteByte(p.src[p.pos+1])
			p.pos += 2
			continue
		case c == '\\':
			return "", p.errorf(p.pos, "unsupported command inside %s", owner)
		case c == '{':
			depth++
		case c == '}':
			if depth == 0 {
				p.pos++
				return b.String(), nil
			}
			depth--
		}
		b.WriteByte(c)
		p.pos++
	}
	return "", p.errorf(p.pos, "expected '}', got end of input")
}

// --- Helpers

const emptyRow = "<mrow></mrow>"

// row joins items into a single MathML element.
func row(items []string) string {
	switch len(items) {
	case 0:
		return emptyRow
	case 1:
		return items[0]
	}
	return "<mrow>" + strings.Join(items, "") + "</mrow>"
}

func fence(delim string) string {
	if delim == "" {
		return ""
	}
	return `<mo fence="true">` + html.EscapeString(delim) + "</mo>"
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
