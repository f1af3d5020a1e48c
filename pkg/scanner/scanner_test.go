package scanner

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodeMonkeyCybersecurity/wpcompass/internal/logger"
)

func testScanner(t *testing.T) *Scanner {
	t.Helper()
	opts := Defaults()
	opts.AllowPrivateHosts = true
	opts.RequestsPerSecond = 0 // no throttling in tests
	return New(logger.Nop(), &http.Client{}, opts)
}

func sitemapFor(urls ...string) string {
	body := `<?xml version="1.0" encoding="UTF-8"?><urlset>`
	for _, u := range urls {
		body += "<url><loc>" + u + "</loc></url>"
	}
	return body + "</urlset>"
}

func TestScan_RESTAPIPath(t *testing.T) {
	var ts *httptest.Server
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, `<html><head>
			<script src="/wp-content/plugins/elementor/app.js"></script>
			<script src="https://www.googletagmanager.com/gtm.js?id=GTM-X"></script>
		</head><body></body></html>`)
	})
	mux.HandleFunc("/wp-json/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/wp-json/wp/v2/types", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"post": {"name": "Posts", "slug": "post", "rest_base": "posts", "taxonomies": ["category"]},
			"attachment": {"name": "Media", "slug": "attachment", "rest_base": "media", "taxonomies": []}
		}`)
	})
	mux.HandleFunc("/wp-json/wp/v2/taxonomies", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"category": {"name": "Categories", "slug": "category", "rest_base": "categories", "types": ["post"]},
			"nav_menu": {"name": "Menus", "slug": "nav_menu", "rest_base": "menus", "types": []}
		}`)
	})
	mux.HandleFunc("/wp-json/wp/v2/categories", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-WP-Total", "7")
		fmt.Fprint(w, `[{"id": 1}]`)
	})
	mux.HandleFunc("/wp-json/wp/v2/posts", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-WP-Total", "42")
		fmt.Fprint(w, `[
			{"title": {"rendered": "Hello"}, "link": "LINK/hello/", "content": {"rendered": "<p>plain</p>"}}
		]`)
	})
	mux.HandleFunc("/wp-sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, sitemapFor(ts.URL+"/blog/hello/", ts.URL+"/blog/more/", ts.URL+"/about/"))
	})
	ts = httptest.NewServer(mux)
	defer ts.Close()

	result, err := testScanner(t).Scan(context.Background(), ts.URL)
	require.NoError(t, err)

	assert.True(t, result.APIAvailable)
	assert.Equal(t, ts.URL, result.URL)
	assert.Empty(t, result.Errors)

	require.Len(t, result.ContentTypes, 1)
	post := result.ContentTypes[0]
	assert.Equal(t, "Posts", post.Name)
	assert.Equal(t, 42, post.Count)
	assert.False(t, post.IsEstimate)
	require.Len(t, post.Taxonomies, 1)
	assert.Equal(t, "Categories", post.Taxonomies[0].Name)
	assert.Equal(t, 7, post.Taxonomies[0].Count)
	require.NotNil(t, post.Complexity)
	assert.Equal(t, ComplexitySimple, post.Complexity.Level)

	require.NotNil(t, result.URLStructure)
	assert.Equal(t, 3, result.URLStructure.TotalIndexedURLs)

	require.NotNil(t, result.DetectedPlugins)
	assert.Equal(t, 1, result.DetectedPlugins.TotalDetected)
	assert.Equal(t, "elementor", result.DetectedPlugins.Plugins[0].Slug)

	require.NotNil(t, result.DetectedIntegrations)
	assert.Equal(t, 1, result.DetectedIntegrations.TotalDetected)
	assert.Equal(t, "google-tag-manager", result.DetectedIntegrations.Integrations[0].Slug)
}

func TestScan_FallbackPath(t *testing.T) {
	var ts *httptest.Server
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, `<html><body>plain</body></html>`)
	})
	mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, sitemapFor(
			ts.URL+"/blog/first/",
			ts.URL+"/blog/second/",
			ts.URL+"/about/",
		))
	})
	mux.HandleFunc("/feed/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<rss version="2.0"><channel>
			<item><title>First</title><link>`+ts.URL+`/blog/first/</link><category>News</category></item>
			<item><title>Second</title><link>`+ts.URL+`/blog/second/</link><category>Tips</category></item>
		</channel></rss>`)
	})
	ts = httptest.NewServer(mux)
	defer ts.Close()

	result, err := testScanner(t).Scan(context.Background(), ts.URL)
	require.NoError(t, err)

	assert.False(t, result.APIAvailable)
	require.Len(t, result.ContentTypes, 2)

	blog := result.ContentTypes[0]
	assert.Equal(t, "Blog", blog.Name)
	assert.Equal(t, "blog", blog.Slug)
	assert.Equal(t, 2, blog.Count)
	assert.True(t, blog.IsEstimate)
	assert.Nil(t, blog.Complexity)
	require.Len(t, blog.Samples, 2)
	assert.Equal(t, "First", blog.Samples[0].Title)
	require.Len(t, blog.Taxonomies, 1)
	assert.Equal(t, "category", blog.Taxonomies[0].Slug)
	assert.Equal(t, 2, blog.Taxonomies[0].Count)

	pages := result.ContentTypes[1]
	assert.Equal(t, "(pages)", pages.Slug)
	assert.Equal(t, 1, pages.Count)
}

func TestScan_APIFailureFallsBack(t *testing.T) {
	var ts *httptest.Server
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, `<html><body></body></html>`)
	})
	// Probe succeeds but the actual API endpoints are broken.
	mux.HandleFunc("/wp-json/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/wp-json/wp/v2/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, sitemapFor(ts.URL+"/services/one/"))
	})
	ts = httptest.NewServer(mux)
	defer ts.Close()

	result, err := testScanner(t).Scan(context.Background(), ts.URL)
	require.NoError(t, err)

	assert.False(t, result.APIAvailable)
	require.Len(t, result.ContentTypes, 1)
	assert.Equal(t, "Services", result.ContentTypes[0].Name)

	found := false
	for _, e := range result.Errors {
		if strings.HasPrefix(e, "REST API probe succeeded but scan failed:") {
			found = true
		}
	}
	assert.True(t, found, "expected REST API failure error, got %v", result.Errors)
}

func TestScan_RejectsPrivateTargetByDefault(t *testing.T) {
	opts := Defaults()
	opts.RequestsPerSecond = 0
	s := New(logger.Nop(), &http.Client{}, opts)

	_, err := s.Scan(context.Background(), "http://127.0.0.1:8080")
	assert.Error(t, err)
}

func TestBuildFallbackContentTypes_RSSForBlog(t *testing.T) {
	groups := []SitemapGroup{
		{Pattern: "blog", URLs: []string{"https://example.com/blog/a/", "https://example.com/blog/b/"}},
		{Pattern: "case-studies", URLs: []string{"https://example.com/case-studies/acme-corp/"}},
	}
	rss := []RSSItem{
		{Title: "Post A", Link: "https://example.com/blog/a/", Categories: []string{"News", "Tips"}},
		{Title: "Post B", Link: "https://example.com/blog/b/", Categories: []string{"News"}},
	}

	types := BuildFallbackContentTypes(groups, rss)
	require.Len(t, types, 2)

	blog := types[0]
	assert.Equal(t, "Blog", blog.Name)
	require.Len(t, blog.Samples, 2)
	assert.Equal(t, "Post A", blog.Samples[0].Title)
	assert.Equal(t, "https://example.com/blog/a/", blog.Samples[0].URL)
	require.Len(t, blog.Taxonomies, 1)
	assert.Equal(t, "Categories", blog.Taxonomies[0].Name)
	assert.Equal(t, 2, blog.Taxonomies[0].Count) // News, Tips deduplicated

	cs := types[1]
	assert.Equal(t, "Case Studies", cs.Name)
	require.Len(t, cs.Samples, 1)
	assert.Equal(t, "Acme Corp", cs.Samples[0].Title)
	assert.Empty(t, cs.Taxonomies)
}

func TestBuildFallbackContentTypes_NoRSS(t *testing.T) {
	groups := []SitemapGroup{
		{Pattern: "(pages)", URLs: []string{"https://example.com/about-us/", "https://example.com/contact/"}},
	}

	types := BuildFallbackContentTypes(groups, nil)
	require.Len(t, types, 1)

	pages := types[0]
	assert.Equal(t, "(Pages)", pages.Name)
	require.Len(t, pages.Samples, 2)
	assert.Equal(t, "About Us", pages.Samples[0].Title)
	assert.Empty(t, pages.Taxonomies)
}
