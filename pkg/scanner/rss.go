package scanner

import (
	"context"
	"encoding/xml"
	"strings"
)

// Feed locations tried in order; the first payload that parses to at
// least one item wins.
var rssPaths = []string{"/feed/", "/feed", "/rss/", "/rss"}

// RSSItem is one feed entry.
type RSSItem struct {
	Title      string
	Link       string
	Categories []string
}

type rssDoc struct {
	XMLName xml.Name `xml:"rss"`
	Channel struct {
		Items []rssItemXML `xml:"item"`
	} `xml:"channel"`
}

// rssItemXML absorbs the category shapes WordPress feeds produce (one
// element, many elements, CDATA bodies); the slice decoding normalizes
// them all to a plain string list right here at the parser boundary.
type rssItemXML struct {
	Title      string   `xml:"title"`
	Link       string   `xml:"link"`
	Categories []string `xml:"category"`
}

// ParseRSSXML extracts items from an RSS 2.0 payload. Non-RSS XML and
// channels without items yield an empty list, never an error.
func ParseRSSXML(data []byte) []RSSItem {
	var doc rssDoc
	if err := decodeXML(data, &doc); err != nil {
		return nil
	}

	items := make([]RSSItem, 0, len(doc.Channel.Items))
	for _, raw := range doc.Channel.Items {
		cats := make([]string, 0, len(raw.Categories))
		for _, c := range raw.Categories {
			if c = strings.TrimSpace(c); c != "" {
				cats = append(cats, c)
			}
		}
		items = append(items, RSSItem{
			Title:      strings.TrimSpace(raw.Title),
			Link:       strings.TrimSpace(raw.Link),
			Categories: cats,
		})
	}
	return items
}

// fetchRSS probes the well-known feed paths and returns the first
// non-empty item list. Everything is best-effort: a miss on every path
// simply returns nil.
func (s *Scanner) fetchRSS(ctx context.Context, baseURL string) []RSSItem {
	for _, path := range rssPaths {
		data, ok := s.fetch.fetchXML(ctx, baseURL+path, s.opts.FetchTimeout)
		if !ok {
			continue
		}
		if items := ParseRSSXML(data); len(items) > 0 {
			return items
		}
	}
	return nil
}
