package scanner

import (
	"net/url"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Language codes recognized as subdirectory or subdomain prefixes.
var languageCodes = map[string]struct{}{
	"en": {}, "de": {}, "fr": {}, "es": {}, "it": {}, "pt": {}, "nl": {},
	"pl": {}, "sv": {}, "da": {}, "no": {}, "fi": {}, "cs": {}, "sk": {},
	"hu": {}, "ro": {}, "bg": {}, "hr": {}, "sl": {}, "sr": {}, "uk": {},
	"ru": {}, "ja": {}, "zh": {}, "ko": {}, "ar": {}, "he": {}, "th": {},
	"vi": {}, "id": {}, "ms": {}, "tr": {}, "el": {}, "ca": {}, "eu": {},
	"gl": {}, "pt-br": {}, "zh-hans": {}, "zh-hant": {}, "en-us": {},
	"en-gb": {}, "fr-ca": {}, "es-mx": {},
}

// AnalyzeURLs summarizes the sitemap URL inventory: generalized path
// patterns plus any multilingual scheme visible in URL shape alone.
func AnalyzeURLs(baseURL string, urls []string) *URLStructure {
	base, err := url.Parse(baseURL)
	if err != nil {
		return &URLStructure{TotalIndexedURLs: len(urls), Patterns: []URLPattern{}}
	}
	baseOrigin := origin(base)

	return &URLStructure{
		TotalIndexedURLs: len(urls),
		Patterns:         derivePatterns(baseOrigin, urls),
		Multilingual:     detectMultilingual(baseOrigin, base.Hostname(), urls),
	}
}

// derivePatterns buckets same-origin paths into three template shapes:
// one segment is a top-level page, two segments generalize the leaf,
// anything deeper collapses under the first segment. Each pattern keeps
// its first-seen example path.
func derivePatterns(baseOrigin string, urls []string) []URLPattern {
	order := []string{}
	counts := map[string]int{}
	examples := map[string]string{}

	for _, raw := range urls {
		parsed, err := url.Parse(raw)
		if err != nil || origin(parsed) != baseOrigin {
			continue
		}
		segs := pathSegments(parsed.Path)
		if len(segs) == 0 {
			continue
		}

		var pattern string
		switch len(segs) {
		case 1:
			pattern = "/{page}/"
		case 2:
			pattern = "/" + segs[0] + "/{slug}/"
		default:
			pattern = "/" + segs[0] + "/{...}/"
		}

		if _, seen := counts[pattern]; !seen {
			order = append(order, pattern)
			examples[pattern] = parsed.Path
		}
		counts[pattern]++
	}

	patterns := make([]URLPattern, 0, len(order))
	for _, p := range order {
		patterns = append(patterns, URLPattern{Pattern: p, Example: examples[p], Count: counts[p]})
	}
	sort.SliceStable(patterns, func(i, j int) bool {
		return patterns[i].Count > patterns[j].Count
	})
	return patterns
}

// detectMultilingual tries language subdirectories first (/en/, /de/),
// then language subdomains (en.example.com). Either needs at least two
// distinct codes; a lone /en/ prefix is just a path.
func detectMultilingual(baseOrigin, baseHost string, urls []string) *MultilingualInfo {
	subdirs := map[string]struct{}{}
	subdomains := map[string]struct{}{}

	for _, raw := range urls {
		parsed, err := url.Parse(raw)
		if err != nil {
			continue
		}

		if origin(parsed) == baseOrigin {
			if segs := pathSegments(parsed.Path); len(segs) > 0 {
				code := strings.ToLower(segs[0])
				if _, ok := languageCodes[code]; ok {
					subdirs[code] = struct{}{}
				}
			}
			continue
		}

		host := parsed.Hostname()
		if host != baseHost && strings.HasSuffix(host, "."+baseHost) {
			code := strings.ToLower(strings.TrimSuffix(host, "."+baseHost))
			if _, ok := languageCodes[code]; ok {
				subdomains[code] = struct{}{}
			}
		}
	}

	if len(subdirs) >= 2 {
		return &MultilingualInfo{Type: MultilingualSubdirectory, Languages: sortedKeys(subdirs)}
	}
	if len(subdomains) >= 2 {
		return &MultilingualInfo{Type: MultilingualSubdomain, Languages: sortedKeys(subdomains)}
	}
	return nil
}

// DetectHreflang reads <link rel="alternate" hreflang="..."> tags from
// homepage markup. It backstops URL-shape detection for sites that keep
// translations on unrelated hosts. x-default is a pointer, not a
// language, and is ignored.
func DetectHreflang(html string) *MultilingualInfo {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	langs := map[string]struct{}{}
	doc.Find(`link[rel="alternate"][hreflang]`).Each(func(_ int, sel *goquery.Selection) {
		code := strings.ToLower(strings.TrimSpace(sel.AttrOr("hreflang", "")))
		if code != "" && code != "x-default" {
			langs[code] = struct{}{}
		}
	})

	if len(langs) < 2 {
		return nil
	}
	return &MultilingualInfo{Type: MultilingualHreflang, Languages: sortedKeys(langs)}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
