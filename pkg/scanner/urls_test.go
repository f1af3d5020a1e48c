package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeURLs_Patterns(t *testing.T) {
	urls := []string{
		"https://example.com/blog/post-one/",
		"https://example.com/blog/post-two/",
		"https://example.com/blog/post-three/",
		"https://example.com/about/",
		"https://example.com/blog/2024/01/deep-post/",
		"https://other.com/blog/foreign/",
	}

	us := AnalyzeURLs("https://example.com", urls)

	assert.Equal(t, 6, us.TotalIndexedURLs)
	require.Len(t, us.Patterns, 3)

	assert.Equal(t, "/blog/{slug}/", us.Patterns[0].Pattern)
	assert.Equal(t, 3, us.Patterns[0].Count)
	assert.Equal(t, "/blog/post-one/", us.Patterns[0].Example)

	assert.Equal(t, "/{page}/", us.Patterns[1].Pattern)
	assert.Equal(t, "/blog/{...}/", us.Patterns[2].Pattern)
}

func TestAnalyzeURLs_NoMultilingualForSingleLanguage(t *testing.T) {
	urls := []string{
		"https://example.com/en/about/",
		"https://example.com/blog/post/",
	}
	us := AnalyzeURLs("https://example.com", urls)
	assert.Nil(t, us.Multilingual)
}

func TestAnalyzeURLs_SubdirectoryMultilingual(t *testing.T) {
	urls := []string{
		"https://example.com/en/about/",
		"https://example.com/de/ueber-uns/",
		"https://example.com/fr/a-propos/",
		"https://example.com/blog/post/",
	}

	us := AnalyzeURLs("https://example.com", urls)

	require.NotNil(t, us.Multilingual)
	assert.Equal(t, MultilingualSubdirectory, us.Multilingual.Type)
	assert.Equal(t, []string{"de", "en", "fr"}, us.Multilingual.Languages)
}

func TestAnalyzeURLs_SubdomainMultilingual(t *testing.T) {
	urls := []string{
		"https://en.example.com/about/",
		"https://de.example.com/ueber-uns/",
		"https://example.com/blog/post/",
	}

	us := AnalyzeURLs("https://example.com", urls)

	require.NotNil(t, us.Multilingual)
	assert.Equal(t, MultilingualSubdomain, us.Multilingual.Type)
	assert.Equal(t, []string{"de", "en"}, us.Multilingual.Languages)
}

func TestAnalyzeURLs_SubdirectoryWinsOverSubdomain(t *testing.T) {
	urls := []string{
		"https://example.com/en/a/",
		"https://example.com/de/b/",
		"https://en.example.com/c/",
		"https://fr.example.com/d/",
	}

	us := AnalyzeURLs("https://example.com", urls)

	require.NotNil(t, us.Multilingual)
	assert.Equal(t, MultilingualSubdirectory, us.Multilingual.Type)
}

func TestAnalyzeURLs_RegionalCodes(t *testing.T) {
	urls := []string{
		"https://example.com/pt-br/sobre/",
		"https://example.com/zh-hans/about/",
	}

	us := AnalyzeURLs("https://example.com", urls)

	require.NotNil(t, us.Multilingual)
	assert.Equal(t, []string{"pt-br", "zh-hans"}, us.Multilingual.Languages)
}

func TestDetectHreflang(t *testing.T) {
	html := `<html><head>
		<link rel="alternate" hreflang="en" href="https://example.com/">
		<link rel="alternate" hreflang="de" href="https://example.de/">
		<link rel="alternate" hreflang="x-default" href="https://example.com/">
	</head><body></body></html>`

	ml := DetectHreflang(html)

	require.NotNil(t, ml)
	assert.Equal(t, MultilingualHreflang, ml.Type)
	assert.Equal(t, []string{"de", "en"}, ml.Languages)
}

func TestDetectHreflang_SingleLanguageIsNotMultilingual(t *testing.T) {
	html := `<html><head><link rel="alternate" hreflang="en" href="https://example.com/"></head></html>`
	assert.Nil(t, DetectHreflang(html))
}

func TestDetectHreflang_NoTags(t *testing.T) {
	assert.Nil(t, DetectHreflang("<html><head></head><body></body></html>"))
}
