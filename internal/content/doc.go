// Package content loads the document collection a blog is published from.
//
// A Collection enumerates Documents in the order consumers must use
// verbatim; the feed does not re-sort. Static serves documents held in
// memory and Dir reads Markdown files with YAML front matter from an fs.FS.
package content
