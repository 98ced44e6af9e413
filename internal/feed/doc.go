// Package feed projects a document collection into an RSS 2.0 feed.
//
// The synthesizer never reorders documents: entries appear in the order
// the collection enumerates them. Every entry link is the site root, the
// document slug and a trailing slash, joined so that exactly one slash
// separates each part. A missing or unusable site root is not fatal; the
// feed carries the SiteRootNotSet sentinel in its site and link fields so
// the misconfiguration shows up in the output.
//
// Documents without a title or publication date are left out and reported
// in Result.Excluded.
package feed
