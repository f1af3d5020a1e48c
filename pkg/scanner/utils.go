package scanner

import (
	"html"
	"net/url"
	"regexp"
	"strings"
	"unicode"
)

// TitleCase turns a slug like "case-studies" into "Case Studies".
// Every letter that follows a non-word character is upper-cased, so
// "(pages)" becomes "(Pages)".
func TitleCase(slug string) string {
	s := strings.NewReplacer("-", " ", "_", " ").Replace(slug)
	var b strings.Builder
	b.Grow(len(s))
	prevWord := false
	for _, r := range s {
		if !prevWord && unicode.IsLetter(r) {
			b.WriteRune(unicode.ToUpper(r))
		} else {
			b.WriteRune(r)
		}
		prevWord = unicode.IsLetter(r) || unicode.IsDigit(r)
	}
	return b.String()
}

// decodeEntities resolves HTML entities WordPress embeds in rendered
// titles (&amp;, &#8217;, and friends).
func decodeEntities(s string) string {
	return html.UnescapeString(s)
}

var privateHostRE = regexp.MustCompile(`^(10\.|172\.(1[6-9]|2\d|3[01])\.|192\.168\.|127\.|0\.|169\.254\.)`)

// IsURLAllowed rejects targets that point at private networks or
// hostnames that cannot be public sites. Callers validate input with
// this before handing a URL to Scan.
func IsURLAllowed(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	h := strings.ToLower(parsed.Hostname())
	if h == "" || privateHostRE.MatchString(h) {
		return false
	}
	if h == "localhost" || h == "::1" || strings.HasSuffix(h, ".internal") || strings.HasSuffix(h, ".local") {
		return false
	}
	return strings.Contains(h, ".")
}

// origin reduces a URL to scheme://host, dropping path and query.
func origin(u *url.URL) string {
	return u.Scheme + "://" + u.Host
}

// pathSegments splits a URL path into its non-empty segments.
func pathSegments(p string) []string {
	parts := strings.Split(p, "/")
	out := parts[:0]
	for _, part := range parts {
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
