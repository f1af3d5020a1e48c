package scanner

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/CodeMonkeyCybersecurity/wpcompass/internal/httpclient"
	"github.com/CodeMonkeyCybersecurity/wpcompass/internal/logger"
	"github.com/CodeMonkeyCybersecurity/wpcompass/internal/ratelimit"
)

// DefaultUserAgent identifies scan traffic in target access logs.
const DefaultUserAgent = "WP-Migration-Scanner/0.1"

// Options tunes a Scanner. The zero value is unusable; take Defaults()
// and override.
type Options struct {
	UserAgent string

	// ProbeTimeout bounds the cheap wp-json availability check, which
	// should answer fast or not at all. FetchTimeout covers ordinary
	// API/sitemap/feed requests; PageTimeout covers the full homepage
	// document; RedirectTimeout covers initial redirect resolution.
	ProbeTimeout    time.Duration
	FetchTimeout    time.Duration
	PageTimeout     time.Duration
	RedirectTimeout time.Duration

	// RequestsPerSecond throttles outbound traffic per scanner. Zero
	// disables throttling.
	RequestsPerSecond float64
	Burst             int

	// AllowPrivateHosts permits scanning RFC1918 / loopback targets.
	// Off everywhere except tests against local fixtures.
	AllowPrivateHosts bool
}

// Defaults returns production scan settings.
func Defaults() Options {
	return Options{
		UserAgent:         DefaultUserAgent,
		ProbeTimeout:      5 * time.Second,
		FetchTimeout:      10 * time.Second,
		PageTimeout:       15 * time.Second,
		RedirectTimeout:   10 * time.Second,
		RequestsPerSecond: 10,
		Burst:             5,
	}
}

// Scanner probes public WordPress sites. It is stateless and safe for
// concurrent use; each Scan call is independent.
type Scanner struct {
	log   *logger.Logger
	fetch fetcher
	opts  Options
}

// New builds a Scanner. A nil client gets the hardened default, which
// refuses to connect to private address space.
func New(log *logger.Logger, client *http.Client, opts Options) *Scanner {
	if client == nil {
		client = httpclient.NewSecureClient(httpclient.SecureClientConfig{
			Timeout:            opts.PageTimeout,
			AllowPrivateHosts:  opts.AllowPrivateHosts,
			FollowRedirects:    true,
			MaxRedirects:       10,
			InsecureSkipVerify: false,
		})
	}

	var limiter *ratelimit.Limiter
	if opts.RequestsPerSecond > 0 {
		limiter = ratelimit.NewLimiter(opts.RequestsPerSecond, opts.Burst)
	}

	return &Scanner{
		log: log.WithComponent("scanner"),
		fetch: fetcher{
			client:    client,
			userAgent: opts.UserAgent,
			limiter:   limiter,
		},
		opts: opts,
	}
}

// NormalizeURL trims whitespace and trailing slashes and defaults bare
// hostnames to https.
func NormalizeURL(input string) string {
	u := strings.TrimRight(strings.TrimSpace(input), "/")
	if !strings.HasPrefix(u, "http") {
		u = "https://" + u
	}
	return u
}

// resolveRedirects follows the target's redirect chain with a HEAD
// request and reduces the landing URL to its origin, so that a scan of
// example.com lands on https://www.example.com when that is where the
// site actually lives. Resolution failure falls back to the input URL.
func (s *Scanner) resolveRedirects(ctx context.Context, baseURL string) string {
	resp, err := s.fetch.head(ctx, baseURL, s.opts.RedirectTimeout)
	if err != nil || resp.Request == nil || resp.Request.URL == nil {
		return baseURL
	}
	return origin(resp.Request.URL)
}

// Scan audits one site end to end. It always returns a result: partial
// failures land in ScanResult.Errors, and only a completely unusable
// input produces an error.
func (s *Scanner) Scan(ctx context.Context, inputURL string) (*ScanResult, error) {
	baseURL := NormalizeURL(inputURL)
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid target URL %q: %w", inputURL, err)
	}
	if !s.opts.AllowPrivateHosts && !IsURLAllowed(baseURL) {
		return nil, fmt.Errorf("target %q is not a scannable public host", inputURL)
	}

	scanID := uuid.New().String()
	log := s.log.WithScanID(scanID).WithTarget(baseURL)
	start := time.Now()
	log.Infow("Starting migration scan", "input_url", inputURL)

	baseURL = s.resolveRedirects(ctx, baseURL)

	var (
		errs         []string
		apiAvailable bool
		sitemap      SitemapResult
		homepage     string
		homepageErr  error
	)

	// The probe, sitemap walk, and homepage fetch are independent; run
	// them together and collect errors once all three settle.
	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		apiAvailable = s.probeAPI(ctx, baseURL)
	}()
	go func() {
		defer wg.Done()
		sitemap = s.fetchSitemap(ctx, baseURL)
	}()
	go func() {
		defer wg.Done()
		homepage, homepageErr = s.fetchHomepage(ctx, baseURL)
	}()
	wg.Wait()

	result := &ScanResult{
		URL:          baseURL,
		ScannedAt:    time.Now().UTC(),
		APIAvailable: apiAvailable,
		ContentTypes: []ContentType{},
	}

	// One homepage document feeds plugin, integration, and hreflang
	// detection; a failed fetch costs all three.
	if homepageErr != nil {
		errs = append(errs, fmt.Sprintf("Plugin detection error: %v", homepageErr))
		errs = append(errs, fmt.Sprintf("Integration detection error: %v", homepageErr))
	} else {
		result.DetectedPlugins = ParsePluginSignatures(homepage)
		result.DetectedIntegrations = ParseIntegrations(homepage)
	}

	if len(sitemap.AllURLs) > 0 {
		result.URLStructure = AnalyzeURLs(baseURL, sitemap.AllURLs)
		if result.URLStructure.Multilingual == nil && homepageErr == nil {
			result.URLStructure.Multilingual = DetectHreflang(homepage)
		}
	}

	if apiAvailable {
		apiResult, err := s.scanViaAPI(ctx, baseURL)
		if err == nil {
			result.ContentTypes = apiResult.ContentTypes
			result.Errors = append(errs, apiResult.Errors...)
			log.Infow("Scan completed via REST API",
				"content_types", len(result.ContentTypes),
				"errors", len(result.Errors),
				"duration_ms", time.Since(start).Milliseconds(),
			)
			return result, nil
		}
		errs = append(errs, fmt.Sprintf("REST API probe succeeded but scan failed: %v", err))
		result.APIAvailable = false
		log.Warnw("REST API scan failed, using sitemap fallback", "error", err)
	}

	rssItems := s.fetchRSS(ctx, baseURL)
	result.ContentTypes = BuildFallbackContentTypes(sitemap.Groups, rssItems)
	result.Errors = errs
	log.Infow("Scan completed via sitemap fallback",
		"content_types", len(result.ContentTypes),
		"indexed_urls", len(sitemap.AllURLs),
		"errors", len(result.Errors),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return result, nil
}

func (s *Scanner) fetchHomepage(ctx context.Context, baseURL string) (string, error) {
	status, _, body, err := s.fetch.get(ctx, baseURL, s.opts.PageTimeout)
	if err != nil {
		return "", err
	}
	if status < 200 || status >= 300 {
		return "", fmt.Errorf("HTTP %d fetching homepage", status)
	}
	return string(body), nil
}

// BuildFallbackContentTypes turns sitemap URL groups into estimated
// content types when the REST API is unreachable. Blog-shaped groups
// borrow their samples and a synthetic Categories taxonomy from the RSS
// feed; every other group samples the title-cased tail of its first few
// URLs. Counts are URL counts, so everything is flagged as an estimate
// and no complexity is claimed.
func BuildFallbackContentTypes(groups []SitemapGroup, rssItems []RSSItem) []ContentType {
	seen := map[string]struct{}{}
	for _, item := range rssItems {
		for _, cat := range item.Categories {
			seen[cat] = struct{}{}
		}
	}
	categoryCount := len(seen)

	types := make([]ContentType, 0, len(groups))
	for _, group := range groups {
		var samples []Sample
		taxonomies := []TaxonomyRef{}

		if group.Pattern == "blog" || group.Pattern == "(pages)" {
			for _, item := range rssItems {
				if len(samples) == 5 {
					break
				}
				if item.Title != "" {
					samples = append(samples, Sample{Title: item.Title, URL: item.Link})
				}
			}
			if categoryCount > 0 {
				taxonomies = append(taxonomies, TaxonomyRef{
					Name:  "Categories",
					Slug:  "category",
					Count: categoryCount,
				})
			}
		}

		if len(samples) == 0 {
			for _, raw := range group.URLs {
				if len(samples) == 5 {
					break
				}
				parsed, err := url.Parse(raw)
				if err != nil {
					continue
				}
				segs := pathSegments(parsed.Path)
				if len(segs) == 0 {
					continue
				}
				samples = append(samples, Sample{Title: TitleCase(segs[len(segs)-1]), URL: raw})
			}
		}
		if samples == nil {
			samples = []Sample{}
		}

		types = append(types, ContentType{
			Name:       TitleCase(group.Pattern),
			Slug:       group.Pattern,
			Count:      len(group.URLs),
			IsEstimate: true,
			Samples:    samples,
			Taxonomies: taxonomies,
		})
	}
	return types
}
