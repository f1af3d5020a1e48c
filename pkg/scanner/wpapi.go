package scanner

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Internal WordPress entities that say nothing about migratable
// content: core plumbing plus the library types page builders register.
var skipTypes = map[string]struct{}{
	"attachment":        {},
	"nav_menu_item":     {},
	"wp_block":          {},
	"wp_template":       {},
	"wp_template_part":  {},
	"wp_navigation":     {},
	"wp_font_family":    {},
	"wp_font_face":      {},
	"wp_global_styles":  {},
	"elementor_library": {},
	"e-landing-page":    {},
}

var skipTaxonomies = map[string]struct{}{
	"nav_menu":                   {},
	"wp_pattern_category":        {},
	"link_category":              {},
	"post_format":                {},
	"wp_theme":                   {},
	"elementor_library_type":     {},
	"elementor_library_category": {},
}

// WPType is one entry of the /wp-json/wp/v2/types response.
type WPType struct {
	Name       string   `json:"name"`
	Slug       string   `json:"slug"`
	RestBase   string   `json:"rest_base"`
	Taxonomies []string `json:"taxonomies"`
}

// WPTaxonomy is one entry of the /wp-json/wp/v2/taxonomies response.
type WPTaxonomy struct {
	Name     string   `json:"name"`
	Slug     string   `json:"slug"`
	RestBase string   `json:"rest_base"`
	Types    []string `json:"types"`
}

// ParseTypesResponse drops internal WordPress types and returns the
// rest ordered by slug (the API returns an object, so there is no
// meaningful source order to preserve).
func ParseTypesResponse(types map[string]WPType) []WPType {
	out := make([]WPType, 0, len(types))
	for _, t := range types {
		if _, skip := skipTypes[t.Slug]; skip {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out
}

// ParseTaxonomiesResponse drops internal WordPress taxonomies.
func ParseTaxonomiesResponse(taxonomies map[string]WPTaxonomy) []WPTaxonomy {
	out := make([]WPTaxonomy, 0, len(taxonomies))
	for _, t := range taxonomies {
		if _, skip := skipTaxonomies[t.Slug]; skip {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out
}

type wpPost struct {
	Title struct {
		Rendered string `json:"rendered"`
	} `json:"title"`
	Content struct {
		Rendered string `json:"rendered"`
	} `json:"content"`
	Link string                     `json:"link"`
	Meta map[string]json.RawMessage `json:"meta"`
	ACF  map[string]json.RawMessage `json:"acf"`
}

// ParseContentItems extracts the exact item count from the X-WP-Total
// header value, up to five entity-decoded sample titles (empty titles
// dropped), and the rendered-content items the complexity classifier
// consumes.
func ParseContentItems(body []byte, totalHeader string) (count int, samples []Sample, items []ContentItem, err error) {
	var posts []wpPost
	if err := json.Unmarshal(body, &posts); err != nil {
		return 0, nil, nil, fmt.Errorf("unexpected content payload: %w", err)
	}

	count, _ = strconv.Atoi(totalHeader)
	for _, p := range posts {
		if title := decodeEntities(p.Title.Rendered); title != "" && len(samples) < 5 {
			samples = append(samples, Sample{Title: title, URL: p.Link})
		}
		items = append(items, ContentItem{
			ContentHTML:     p.Content.Rendered,
			HasCustomFields: len(p.ACF) > 0 || len(p.Meta) > 0,
		})
	}
	return count, samples, items, nil
}

// probeAPI answers whether /wp-json/ responds at all. It never fails:
// any error reads as "no REST API here".
func (s *Scanner) probeAPI(ctx context.Context, baseURL string) bool {
	resp, err := s.fetch.head(ctx, baseURL+"/wp-json/", s.opts.ProbeTimeout)
	if err != nil {
		return false
	}
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

type apiScanResult struct {
	ContentTypes []ContentType
	Errors       []string
}

type taxInfo struct {
	Name  string
	Slug  string
	Count int
}

// scanViaAPI enumerates content types and taxonomies through the REST
// API. Only the two foundational endpoints may fail the call — the
// orchestrator falls back to sitemap/RSS when they do. Every per-type
// and per-taxonomy fetch settles independently: one broken endpoint
// costs exactly that entry, never the scan.
func (s *Scanner) scanViaAPI(ctx context.Context, baseURL string) (*apiScanResult, error) {
	api := baseURL + "/wp-json/wp/v2"

	var typesBody, taxBody []byte
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		body, err := s.fetch.getBody(gctx, api+"/types", s.opts.FetchTimeout)
		typesBody = body
		return err
	})
	g.Go(func() error {
		body, err := s.fetch.getBody(gctx, api+"/taxonomies", s.opts.FetchTimeout)
		taxBody = body
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to fetch types or taxonomies from REST API: %w", err)
	}

	var typesRaw map[string]WPType
	if err := json.Unmarshal(typesBody, &typesRaw); err != nil {
		return nil, fmt.Errorf("failed to decode types response: %w", err)
	}
	var taxRaw map[string]WPTaxonomy
	if err := json.Unmarshal(taxBody, &taxRaw); err != nil {
		return nil, fmt.Errorf("failed to decode taxonomies response: %w", err)
	}

	typeEntries := ParseTypesResponse(typesRaw)
	taxEntries := ParseTaxonomiesResponse(taxRaw)

	taxLookup := s.resolveTaxonomyCounts(ctx, api, taxEntries)

	// Settle all per-type fetches, then filter. Index-addressed slices
	// keep the output in typeEntries order without any locking.
	fetched := make([]*ContentType, len(typeEntries))
	typeErrs := make([]string, len(typeEntries))

	var wg sync.WaitGroup
	for i, t := range typeEntries {
		wg.Add(1)
		go func(i int, t WPType) {
			defer wg.Done()
			ct, errMsg := s.fetchContentType(ctx, api, t, taxLookup)
			fetched[i] = ct
			typeErrs[i] = errMsg
		}(i, t)
	}
	wg.Wait()

	res := &apiScanResult{}
	for i, ct := range fetched {
		if typeErrs[i] != "" {
			res.Errors = append(res.Errors, typeErrs[i])
		}
		// Zero-count types are dead weight (often deactivated plugins)
		// and are dropped even when fetched successfully.
		if ct != nil && ct.Count > 0 {
			res.ContentTypes = append(res.ContentTypes, *ct)
		}
	}
	return res, nil
}

// resolveTaxonomyCounts reads each taxonomy's term total from the
// X-WP-Total header of a per_page=1 probe. A failed probe records the
// taxonomy with count zero so it is simply never attached.
func (s *Scanner) resolveTaxonomyCounts(ctx context.Context, api string, taxonomies []WPTaxonomy) map[string]taxInfo {
	counts := make([]int, len(taxonomies))

	var wg sync.WaitGroup
	for i, tax := range taxonomies {
		wg.Add(1)
		go func(i int, tax WPTaxonomy) {
			defer wg.Done()
			status, header, _, err := s.fetch.get(ctx, api+"/"+tax.RestBase+"?per_page=1", s.opts.FetchTimeout)
			if err != nil || status < 200 || status >= 300 {
				return
			}
			counts[i], _ = strconv.Atoi(header.Get(wpTotalHeader))
		}(i, tax)
	}
	wg.Wait()

	lookup := make(map[string]taxInfo, len(taxonomies))
	for i, tax := range taxonomies {
		lookup[tax.Slug] = taxInfo{Name: tax.Name, Slug: tax.Slug, Count: counts[i]}
	}
	return lookup
}

// fetchContentType samples one content type. A non-2xx response or
// fetch error excludes the type entirely and surfaces as a scan error
// string; it is never zero-filled.
func (s *Scanner) fetchContentType(ctx context.Context, api string, t WPType, taxLookup map[string]taxInfo) (*ContentType, string) {
	status, header, body, err := s.fetch.get(ctx, api+"/"+t.RestBase+"?per_page=5", s.opts.FetchTimeout)
	if err != nil {
		return nil, fmt.Sprintf("Error fetching %s: %v", t.Name, err)
	}
	if status < 200 || status >= 300 {
		return nil, fmt.Sprintf("Could not fetch %s: HTTP %d", t.Name, status)
	}

	count, samples, items, err := ParseContentItems(body, header.Get(wpTotalHeader))
	if err != nil {
		return nil, fmt.Sprintf("Error fetching %s: %v", t.Name, err)
	}

	taxonomies := []TaxonomyRef{}
	for _, slug := range t.Taxonomies {
		info, ok := taxLookup[slug]
		if !ok || info.Count <= 0 {
			continue
		}
		taxonomies = append(taxonomies, TaxonomyRef{Name: info.Name, Slug: info.Slug, Count: info.Count})
	}

	complexity := AnalyzeContentComplexity(items)
	if samples == nil {
		samples = []Sample{}
	}
	return &ContentType{
		Name:       t.Name,
		Slug:       t.Slug,
		Count:      count,
		IsEstimate: false,
		Samples:    samples,
		Taxonomies: taxonomies,
		Complexity: &complexity,
	}, ""
}

const wpTotalHeader = "X-WP-Total"
