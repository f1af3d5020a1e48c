package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const urlsetXML = `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>https://example.com/blog/first-post/</loc></url>
  <url><loc>https://example.com/blog/second-post/</loc></url>
  <url><loc>https://example.com/about/</loc></url>
</urlset>`

const indexXML = `<?xml version="1.0" encoding="UTF-8"?>
<sitemapindex xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <sitemap><loc>https://example.com/wp-sitemap-posts-post-1.xml</loc></sitemap>
  <sitemap><loc>https://example.com/wp-sitemap-pages-1.xml</loc></sitemap>
</sitemapindex>`

func TestParseSitemapXML_Urlset(t *testing.T) {
	parsed := ParseSitemapXML([]byte(urlsetXML))

	assert.False(t, parsed.IsIndex)
	assert.Equal(t, []string{
		"https://example.com/blog/first-post/",
		"https://example.com/blog/second-post/",
		"https://example.com/about/",
	}, parsed.PageURLs)
}

func TestParseSitemapXML_SingleURL(t *testing.T) {
	xml := `<urlset><url><loc>https://example.com/only/</loc></url></urlset>`
	parsed := ParseSitemapXML([]byte(xml))

	require.Len(t, parsed.PageURLs, 1)
	assert.Equal(t, "https://example.com/only/", parsed.PageURLs[0])
}

func TestParseSitemapXML_Index(t *testing.T) {
	parsed := ParseSitemapXML([]byte(indexXML))

	assert.True(t, parsed.IsIndex)
	assert.Equal(t, []string{
		"https://example.com/wp-sitemap-posts-post-1.xml",
		"https://example.com/wp-sitemap-pages-1.xml",
	}, parsed.SitemapURLs)
}

func TestParseSitemapXML_UnknownXML(t *testing.T) {
	parsed := ParseSitemapXML([]byte(`<rss version="2.0"><channel></channel></rss>`))

	assert.False(t, parsed.IsIndex)
	assert.Empty(t, parsed.PageURLs)
	assert.Empty(t, parsed.SitemapURLs)
}

func TestParseSitemapXML_Garbage(t *testing.T) {
	parsed := ParseSitemapXML([]byte("not xml at all"))
	assert.Empty(t, parsed.PageURLs)
	assert.Empty(t, parsed.SitemapURLs)
}

func TestGroupSitemapURLs(t *testing.T) {
	urls := []string{
		"https://example.com/blog/post-one/",
		"https://example.com/blog/post-two/",
		"https://example.com/blog/post-three/",
		"https://example.com/case-studies/acme/",
		"https://example.com/about/",
		"https://example.com/contact/",
		"https://example.com/",                // homepage dropped
		"https://other.example.org/blog/x/",   // foreign origin dropped
	}

	groups := GroupSitemapURLs("https://example.com", urls)

	require.Len(t, groups, 3)
	assert.Equal(t, "blog", groups[0].Pattern)
	assert.Len(t, groups[0].URLs, 3)
	assert.Equal(t, "(pages)", groups[1].Pattern)
	assert.Len(t, groups[1].URLs, 2)
	assert.Equal(t, "case-studies", groups[2].Pattern)
	assert.Len(t, groups[2].URLs, 1)
}

func TestGroupSitemapURLs_CountDescending(t *testing.T) {
	urls := []string{
		"https://example.com/services/a/",
		"https://example.com/blog/1/",
		"https://example.com/blog/2/",
	}

	groups := GroupSitemapURLs("https://example.com", urls)

	require.Len(t, groups, 2)
	assert.Equal(t, "blog", groups[0].Pattern)
	assert.Equal(t, "services", groups[1].Pattern)
}
