package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTypesResponse_SkipsInternalTypes(t *testing.T) {
	types := map[string]WPType{
		"post":              {Name: "Posts", Slug: "post", RestBase: "posts"},
		"page":              {Name: "Pages", Slug: "page", RestBase: "pages"},
		"attachment":        {Name: "Media", Slug: "attachment", RestBase: "media"},
		"wp_block":          {Name: "Patterns", Slug: "wp_block", RestBase: "blocks"},
		"elementor_library": {Name: "Templates", Slug: "elementor_library", RestBase: "elementor_library"},
		"case-study":        {Name: "Case Studies", Slug: "case-study", RestBase: "case-studies"},
	}

	out := ParseTypesResponse(types)

	require.Len(t, out, 3)
	// Sorted by slug.
	assert.Equal(t, "case-study", out[0].Slug)
	assert.Equal(t, "page", out[1].Slug)
	assert.Equal(t, "post", out[2].Slug)
}

func TestParseTaxonomiesResponse_SkipsInternalTaxonomies(t *testing.T) {
	taxonomies := map[string]WPTaxonomy{
		"category":    {Name: "Categories", Slug: "category", RestBase: "categories"},
		"post_tag":    {Name: "Tags", Slug: "post_tag", RestBase: "tags"},
		"nav_menu":    {Name: "Navigation Menus", Slug: "nav_menu", RestBase: "menus"},
		"post_format": {Name: "Formats", Slug: "post_format", RestBase: "formats"},
	}

	out := ParseTaxonomiesResponse(taxonomies)

	require.Len(t, out, 2)
	assert.Equal(t, "category", out[0].Slug)
	assert.Equal(t, "post_tag", out[1].Slug)
}

func TestParseContentItems(t *testing.T) {
	body := []byte(`[
		{"title": {"rendered": "Hello &amp; Goodbye"}, "link": "https://example.com/hello/", "content": {"rendered": "<p>hi</p>"}},
		{"title": {"rendered": "It&#8217;s Fine"}, "link": "https://example.com/fine/", "content": {"rendered": "<p>ok</p>"}},
		{"title": {"rendered": ""}, "link": "https://example.com/untitled/", "content": {"rendered": ""}}
	]`)

	count, samples, items, err := ParseContentItems(body, "123")
	require.NoError(t, err)

	assert.Equal(t, 123, count)
	require.Len(t, samples, 2)
	assert.Equal(t, "Hello & Goodbye", samples[0].Title)
	assert.Equal(t, "https://example.com/hello/", samples[0].URL)
	assert.Equal(t, "It’s Fine", samples[1].Title)
	assert.Len(t, items, 3)
}

func TestParseContentItems_MissingTotalHeader(t *testing.T) {
	count, samples, _, err := ParseContentItems([]byte(`[]`), "")
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Empty(t, samples)
}

func TestParseContentItems_CustomFields(t *testing.T) {
	body := []byte(`[
		{"title": {"rendered": "A"}, "content": {"rendered": "<p>x</p>"}, "acf": {"hero": "yes"}},
		{"title": {"rendered": "B"}, "content": {"rendered": "<p>y</p>"}, "meta": {"color": "red"}},
		{"title": {"rendered": "C"}, "content": {"rendered": "<p>z</p>"}}
	]`)

	_, _, items, err := ParseContentItems(body, "3")
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.True(t, items[0].HasCustomFields)
	assert.True(t, items[1].HasCustomFields)
	assert.False(t, items[2].HasCustomFields)
}

func TestParseContentItems_SampleCap(t *testing.T) {
	body := []byte(`[
		{"title": {"rendered": "1"}}, {"title": {"rendered": "2"}},
		{"title": {"rendered": "3"}}, {"title": {"rendered": "4"}},
		{"title": {"rendered": "5"}}, {"title": {"rendered": "6"}}
	]`)

	_, samples, items, err := ParseContentItems(body, "6")
	require.NoError(t, err)
	assert.Len(t, samples, 5)
	assert.Len(t, items, 6)
}

func TestParseContentItems_InvalidJSON(t *testing.T) {
	_, _, _, err := ParseContentItems([]byte(`{"not": "an array"}`), "1")
	assert.Error(t, err)
}
