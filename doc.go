// Package blogkit publishes Markdown blog posts as HTML pages and an RSS
// feed.
//
// # Quick Start
//
//	pub, err := blogkit.NewPublisher(blogkit.WithSiteRoot("https://example.com/"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	page, err := pub.Render(ctx, blogkit.Document{Slug: "hello", Body: "# Hello"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(page.HTML)
//
// # Rendering Pipeline
//
// Every document goes through the same fixed stages:
//
//  1. Math syntax extraction ($…$ and $$…$$) while parsing
//  2. Heading id assignment (foo, foo-1, foo-2, …)
//  3. Heading autolinking (the heading content is wrapped in <a href="#id">)
//  4. Math typesetting to MathML
//
// A math expression that fails to parse is emitted as literal text and
// reported in Page.MathErrors; it never fails the document.
//
// # Feed
//
// Feed projects a Collection into an RSS 2.0 feed in the collection's
// order. Entry links are the site root, the slug and a trailing slash.
// Without a usable site root the feed carries SiteRootNotSet instead, so
// the misconfiguration is visible in the output. Documents without a
// title or publication date are excluded and listed in FeedResult.Excluded.
//
// # Configuration
//
//	pub, err := blogkit.NewPublisher(
//	    blogkit.WithSiteRoot("https://example.com/"),
//	    blogkit.WithAutolink(blogkit.AutolinkPrepend, "anchor"),
//	    blogkit.WithHighlightStyle("monokai"),
//	    blogkit.WithLogger(logger),
//	)
//
// A Publisher is immutable after construction and safe for concurrent use.
package blogkit
