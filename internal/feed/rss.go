package feed

import (
	"encoding/xml"
	"fmt"
	"io"
	"time"
)

const contentNamespace = "http://purl.org/rss/1.0/modules/content/"

// rss is the RSS 2.0 document.
type rss struct {
	XMLName      xml.Name   `xml:"rss"`
	Version      string     `xml:"version,attr"`
	XmlnsContent string     `xml:"xmlns:content,attr"`
	Channel      rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Description string    `xml:"description"`
	Link        string    `xml:"link"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string     `xml:"title"`
	Link        string     `xml:"link"`
	GUID        rssGUID    `xml:"guid"`
	Description string     `xml:"description,omitempty"`
	PubDate     string     `xml:"pubDate"`
	Content     rssContent `xml:"content:encoded"`
}

type rssGUID struct {
	IsPermaLink bool   `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

type rssContent struct {
	Value string `xml:",cdata"`
}

// WriteRSS encodes f as an RSS 2.0 document.
func (f *Feed) WriteRSS(w io.Writer) error {
	doc := rss{
		Version:      "2.0",
		XmlnsContent: contentNamespace,
		Channel: rssChannel{
			Title:       f.Title,
			Description: f.Description,
			Link:        f.Site,
			Items:       make([]rssItem, len(f.Entries)),
		},
	}
	for i, e := range f.Entries {
		doc.Channel.Items[i] = rssItem{
			Title:       e.Title,
			Link:        e.Link,
			GUID:        rssGUID{IsPermaLink: true, Value: e.Link},
			Description: e.Description,
			PubDate:     e.PubDate.UTC().Format(time.RFC1123Z),
			Content:     rssContent{Value: e.Content},
		}
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("writing feed: %w", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(&doc); err != nil {
		return fmt.Errorf("encoding feed: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encoding feed: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}
