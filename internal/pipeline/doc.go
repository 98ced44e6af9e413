// Package pipeline implements the Markdown-to-HTML transform pipeline.
//
// A document goes through a fixed, ordered list of stages (see Stages):
//   - math-syntax: parse with $...$ and $$...$$ extracted into math nodes
//   - heading-ids: give every heading a unique, stable id
//   - autolink-headings: link every heading to its own id
//   - math-typeset: typeset math nodes to MathML
//
// The tree is then serialized to HTML, optionally sanitized and compressed.
// Every stage is a pure function of the tree it receives, so the same input
// always renders the same bytes. A Pipeline holds only immutable
// configuration and is safe for concurrent use.
package pipeline
