package blogkit_test

import (
	"context"
	"fmt"
	"time"

	"github.com/ic-it/blogkit"
)

// Example renders one document with the default configuration.
func Example() {
	pub, err := blogkit.NewPublisher()
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	page, err := pub.Render(context.Background(), blogkit.Document{
		Slug: "hello",
		Body: "# Hello\n\nWorld",
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(page.HTML)
	// Output: <h1 id="hello"><a href="#hello" class="heading-linker">Hello</a></h1><p>World</p>
}

// ExamplePublisher_Feed synthesizes a feed from an in-memory collection.
func ExamplePublisher_Feed() {
	pub, err := blogkit.NewPublisher(blogkit.WithSiteRoot("https://example.com"))
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	res, err := pub.Feed(context.Background(), blogkit.Static{
		{Slug: "a", Title: "A", Description: "d1", PublicationDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{Slug: "b", Title: "B", Description: "d2", PublicationDate: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
		{Slug: "draft-without-date", Title: "C"},
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, e := range res.Feed.Entries {
		fmt.Println(e.Link)
	}
	fmt.Println("excluded:", len(res.Excluded))
	// Output:
	// https://example.com/a/
	// https://example.com/b/
	// excluded: 1
}

// ExamplePublisher_Feed_siteRootNotSet shows the sentinel used when no site
// root is configured.
func ExamplePublisher_Feed_siteRootNotSet() {
	pub, err := blogkit.NewPublisher()
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	res := pub.SynthesizeFeed([]blogkit.Document{
		{Slug: "a", Title: "A", PublicationDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	})
	fmt.Println(res.Feed.Site)
	fmt.Println(res.Feed.Entries[0].Link)
	// Output:
	// [NOT SET?]
	// [NOT SET?]/a/
}
