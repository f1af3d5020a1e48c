package scanner

import (
	"bytes"
	"context"
	"encoding/xml"
	"net/url"
	"sort"
	"sync"

	"golang.org/x/net/html/charset"
)

// Well-known sitemap locations, tried in order; the first path that
// yields XML wins and the rest are never requested.
var sitemapPaths = []string{
	"/wp-sitemap.xml",
	"/sitemap.xml",
	"/sitemap_index.xml",
}

// SitemapGroup collects sitemap URLs sharing a first path segment.
type SitemapGroup struct {
	Pattern string
	URLs    []string
}

// SitemapResult is the flattened outcome of sitemap discovery.
type SitemapResult struct {
	Groups  []SitemapGroup
	AllURLs []string
}

// ParsedSitemap is the normalized shape of one sitemap document: either
// a list of page URLs (urlset) or a list of child sitemaps (index).
// Single-element and multi-element documents normalize identically at
// this boundary; nothing downstream branches on document shape.
type ParsedSitemap struct {
	IsIndex     bool
	PageURLs    []string
	SitemapURLs []string
}

type sitemapLoc struct {
	Loc string `xml:"loc"`
}

type urlsetDoc struct {
	XMLName xml.Name     `xml:"urlset"`
	URLs    []sitemapLoc `xml:"url"`
}

type sitemapIndexDoc struct {
	XMLName  xml.Name     `xml:"sitemapindex"`
	Sitemaps []sitemapLoc `xml:"sitemap"`
}

func decodeXML(data []byte, v any) error {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.CharsetReader = charset.NewReaderLabel
	dec.Strict = false
	return dec.Decode(v)
}

// ParseSitemapXML classifies a sitemap payload as index or urlset and
// extracts its <loc> entries. Unrecognized XML parses as an empty
// urlset rather than an error, so probing can continue.
func ParseSitemapXML(data []byte) ParsedSitemap {
	var index sitemapIndexDoc
	if err := decodeXML(data, &index); err == nil && len(index.Sitemaps) > 0 {
		urls := make([]string, 0, len(index.Sitemaps))
		for _, s := range index.Sitemaps {
			if s.Loc != "" {
				urls = append(urls, s.Loc)
			}
		}
		return ParsedSitemap{IsIndex: true, SitemapURLs: urls}
	}

	var set urlsetDoc
	if err := decodeXML(data, &set); err == nil {
		urls := make([]string, 0, len(set.URLs))
		for _, u := range set.URLs {
			if u.Loc != "" {
				urls = append(urls, u.Loc)
			}
		}
		return ParsedSitemap{PageURLs: urls}
	}

	return ParsedSitemap{}
}

// GroupSitemapURLs buckets same-origin URLs by first path segment.
// Homepage URLs (no segments) are dropped; single-segment paths
// collapse into the synthetic "(pages)" group. Groups come back sorted
// by URL count descending.
func GroupSitemapURLs(baseURL string, urls []string) []SitemapGroup {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil
	}
	baseOrigin := origin(base)

	order := []string{}
	buckets := map[string][]string{}
	for _, raw := range urls {
		parsed, err := url.Parse(raw)
		if err != nil {
			continue
		}
		if origin(parsed) != baseOrigin {
			continue
		}
		segs := pathSegments(parsed.Path)
		if len(segs) == 0 {
			continue
		}
		pattern := "(pages)"
		if len(segs) > 1 {
			pattern = segs[0]
		}
		if _, seen := buckets[pattern]; !seen {
			order = append(order, pattern)
		}
		buckets[pattern] = append(buckets[pattern], raw)
	}

	groups := make([]SitemapGroup, 0, len(order))
	for _, pattern := range order {
		groups = append(groups, SitemapGroup{Pattern: pattern, URLs: buckets[pattern]})
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return len(groups[i].URLs) > len(groups[j].URLs)
	})
	return groups
}

// fetchSitemap probes the well-known sitemap paths, resolves one level
// of index indirection with the child sitemaps fetched in parallel, and
// flattens everything into grouped same-origin URLs. A child sitemap
// that fails to fetch silently contributes nothing; only a total miss
// yields an empty result.
func (s *Scanner) fetchSitemap(ctx context.Context, baseURL string) SitemapResult {
	var allURLs []string

	for _, path := range sitemapPaths {
		data, ok := s.fetch.fetchXML(ctx, baseURL+path, s.opts.FetchTimeout)
		if !ok {
			continue
		}

		parsed := ParseSitemapXML(data)
		if parsed.IsIndex {
			allURLs = s.fetchChildSitemaps(ctx, parsed.SitemapURLs)
			break
		}
		if len(parsed.PageURLs) > 0 {
			allURLs = parsed.PageURLs
			break
		}
	}

	if len(allURLs) == 0 {
		return SitemapResult{}
	}
	return SitemapResult{
		Groups:  GroupSitemapURLs(baseURL, allURLs),
		AllURLs: allURLs,
	}
}

func (s *Scanner) fetchChildSitemaps(ctx context.Context, sitemapURLs []string) []string {
	results := make([][]string, len(sitemapURLs))

	var wg sync.WaitGroup
	for i, u := range sitemapURLs {
		wg.Add(1)
		go func(i int, u string) {
			defer wg.Done()
			data, ok := s.fetch.fetchXML(ctx, u, s.opts.FetchTimeout)
			if !ok {
				return
			}
			results[i] = ParseSitemapXML(data).PageURLs
		}(i, u)
	}
	wg.Wait()

	var urls []string
	for _, r := range results {
		urls = append(urls, r...)
	}
	return urls
}
