package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"

	"github.com/ic-it/blogkit/internal/log"
)

// Sentinel errors.
var (
	ErrHTMLConversion          = errors.New("HTML conversion failed")
	ErrInvalidAutolinkBehavior = errors.New("invalid autolink behavior")
	ErrEmptyAutolinkClass      = errors.New("autolink class cannot be empty")
	ErrUnknownHighlightStyle   = errors.New("unknown highlight style")
)

// Stage names, in execution order.
const (
	StageMathSyntax       = "math-syntax"
	StageHeadingIDs       = "heading-ids"
	StageAutolinkHeadings = "autolink-headings"
	StageMathTypeset      = "math-typeset"
)

// DefaultHighlightStyle is the chroma style used for fenced code.
const DefaultHighlightStyle = "github"

// AutolinkConfig configures the heading autolinker.
type AutolinkConfig struct {
	Behavior AutolinkBehavior
	Class    string
}

// HighlightConfig configures fenced code highlighting.
type HighlightConfig struct {
	Style   string
	Classes bool // emit CSS classes instead of inline styles
}

// Config is the immutable rendering configuration, read once at startup.
type Config struct {
	Autolink   AutolinkConfig
	Math       bool
	Highlight  HighlightConfig
	UnsafeHTML bool // pass raw HTML through, sanitized
	Compress   bool // collapse inter-element whitespace
}

// DefaultConfig returns the configuration the blog is published with.
func DefaultConfig() Config {
	return Config{
		Autolink:  AutolinkConfig{Behavior: AutolinkWrap, Class: DefaultAutolinkClass},
		Math:      true,
		Highlight: HighlightConfig{Style: DefaultHighlightStyle, Classes: true},
		Compress:  true,
	}
}

// Validate checks the configuration for unusable values.
func (c *Config) Validate() error {
	if err := c.Autolink.Behavior.Validate(); err != nil {
		return err
	}
	if c.Autolink.Class == "" {
		return ErrEmptyAutolinkClass
	}
	if c.Highlight.Style != "" {
		if _, ok := styles.Registry[c.Highlight.Style]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownHighlightStyle, c.Highlight.Style)
		}
	}
	return nil
}

// Result is the output of rendering one document.
type Result struct {
	HTML       string
	Headings   []Heading
	MathErrors []*ExpressionError
}

// Renderer abstracts document rendering.
type Renderer interface {
	Render(ctx context.Context, markdown string) (*Result, error)
}

// Compile-time interface implementation check.
var _ Renderer = (*Pipeline)(nil)

// Pipeline renders Markdown documents through the ordered stages.
type Pipeline struct {
	cfg    Config
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// New builds a Pipeline from cfg.
func New(cfg Config) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	highlightOpts := []highlighting.Option{
		highlighting.WithFormatOptions(
			chromahtml.WithClasses(cfg.Highlight.Classes),
		),
	}
	if cfg.Highlight.Style != "" {
		highlightOpts = append(highlightOpts, highlighting.WithStyle(cfg.Highlight.Style))
	}
	extensions := []goldmark.Extender{
		extension.GFM,      // Tables, strikethrough, autolinks, task lists
		extension.Footnote, // [^1] footnotes
		highlighting.NewHighlighting(highlightOpts...),
	}
	if cfg.Math {
		extensions = append(extensions, MathExtension)
	}

	rendererOpts := []goldmark.Option{}
	if cfg.UnsafeHTML {
		rendererOpts = append(rendererOpts, goldmark.WithRendererOptions(html.WithUnsafe()))
	}

	md := goldmark.New(append(rendererOpts,
		goldmark.WithExtensions(extensions...),
		goldmark.WithParserOptions(
			parser.WithHeadingAttribute(), // explicit {#id}
		),
	)...)

	p := &Pipeline{cfg: cfg, md: md}
	if cfg.UnsafeHTML {
		p.policy = newPolicy()
	}
	return p, nil
}

// Config returns the pipeline configuration.
func (p *Pipeline) Config() Config {
	return p.cfg
}

// run holds the state of rendering one document.
type run struct {
	source     []byte
	doc        ast.Node
	headings   []Heading
	mathErrors []*ExpressionError
}

type stage struct {
	name  string
	apply func(p *Pipeline, r *run)
}

// stages is the fixed execution order. Math syntax is extracted while
// parsing so no later stage sees $ delimiters as text; ids exist before
// autolinking needs them; typesetting runs on the settled tree.
var stages = []stage{
	{StageMathSyntax, func(p *Pipeline, r *run) {
		r.doc = p.md.Parser().Parse(text.NewReader(r.source))
	}},
	{StageHeadingIDs, func(p *Pipeline, r *run) {
		r.headings = assignHeadingIDs(r.doc, r.source, NewAssigner())
	}},
	{StageAutolinkHeadings, func(p *Pipeline, r *run) {
		autolinkHeadings(r.doc, r.source, p.cfg.Autolink.Behavior, p.cfg.Autolink.Class)
	}},
	{StageMathTypeset, func(p *Pipeline, r *run) {
		if p.cfg.Math {
			r.mathErrors = typesetMath(r.doc, r.source)
		}
	}},
}

// Stages returns the stage names in execution order.
func Stages() []string {
	names := make([]string, len(stages))
	for i, s := range stages {
		names[i] = s.name
	}
	return names
}

// Render runs every stage over markdown and serializes the result.
// Malformed math never fails the document; it is reported in
// Result.MathErrors and logged through the logger carried by ctx.
func (p *Pipeline) Render(ctx context.Context, markdown string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger := log.FromContext(ctx)
	r := &run{source: []byte(Preprocess(markdown))}
	for _, s := range stages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s.apply(p, r)
		logger.Debug("stage done", slog.String("stage", s.name))
	}

	for _, e := range r.mathErrors {
		logger.Warn("math expression rendered as literal text",
			slog.String("expr", e.Expr), slog.Any("error", e.Err))
	}

	var buf bytes.Buffer
	if err := p.md.Renderer().Render(&buf, r.source, r.doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}

	out := buf.Bytes()
	if p.policy != nil {
		out = p.policy.SanitizeBytes(out)
	}
	htmlOut := string(out)
	if p.cfg.Compress {
		compressed, err := Compress(htmlOut)
		if err != nil {
			return nil, fmt.Errorf("%w: compressing: %v", ErrHTMLConversion, err)
		}
		htmlOut = compressed
	}

	return &Result{HTML: htmlOut, Headings: r.headings, MathErrors: r.mathErrors}, nil
}
