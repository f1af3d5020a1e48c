// Package scanner audits a public WordPress site and produces a
// migration-readiness snapshot: discovered content types, taxonomies,
// URL structure, detected plugins, and third-party integrations.
//
// A scan is stateless. Every entity below is built once per Scan call
// and never mutated afterwards; downstream consumers (annotation rules,
// scope summarizer, renderers) treat the result as read-only.
package scanner

import "time"

// TaxonomyRef is a taxonomy attached to a content type.
type TaxonomyRef struct {
	Name  string   `json:"name"`
	Slug  string   `json:"slug"`
	Count int      `json:"count"`
	Terms []string `json:"terms,omitempty"`
}

// ComplexityLevel classifies how hard a content type is to migrate.
type ComplexityLevel string

const (
	ComplexitySimple   ComplexityLevel = "simple"
	ComplexityModerate ComplexityLevel = "moderate"
	ComplexityComplex  ComplexityLevel = "complex"
)

// ContentComplexity is the outcome of sampling rendered content HTML.
// Level is "complex" exactly when Builder is non-empty.
type ContentComplexity struct {
	Level   ComplexityLevel `json:"level"`
	Signals []string        `json:"signals"`
	Builder string          `json:"builder,omitempty"`
}

// Sample is one representative item title, optionally with its URL.
type Sample struct {
	Title string `json:"title"`
	URL   string `json:"url,omitempty"`
}

// ContentType is one WordPress post type, or a sitemap-derived
// pseudo-type on the fallback path. Counts are exact when IsEstimate
// is false and approximated from sitemap URL counts otherwise.
type ContentType struct {
	Name       string             `json:"name"`
	Slug       string             `json:"slug"`
	Count      int                `json:"count"`
	IsEstimate bool               `json:"isEstimate"`
	Samples    []Sample           `json:"samples"`
	Taxonomies []TaxonomyRef      `json:"taxonomies"`
	Complexity *ContentComplexity `json:"complexity"`
}

// URLPattern is a generalized path template with one concrete example.
type URLPattern struct {
	Pattern string `json:"pattern"`
	Example string `json:"example"`
	Count   int    `json:"count"`
}

// MultilingualType identifies how a site separates languages.
type MultilingualType string

const (
	MultilingualSubdirectory MultilingualType = "subdirectory"
	MultilingualSubdomain    MultilingualType = "subdomain"
	MultilingualHreflang     MultilingualType = "hreflang"
)

// MultilingualInfo reports a detected multi-language scheme.
type MultilingualInfo struct {
	Type      MultilingualType `json:"type"`
	Languages []string         `json:"languages"`
}

// URLStructure summarizes the same-origin URLs found across sitemaps.
type URLStructure struct {
	TotalIndexedURLs int               `json:"totalIndexedUrls"`
	Patterns         []URLPattern      `json:"patterns"`
	Multilingual     *MultilingualInfo `json:"multilingual"`
}

// PluginCategory is the closed set of plugin classifications.
type PluginCategory string

const (
	PluginPageBuilder  PluginCategory = "page-builder"
	PluginSEO          PluginCategory = "seo"
	PluginForms        PluginCategory = "forms"
	PluginEcommerce    PluginCategory = "ecommerce"
	PluginMultilingual PluginCategory = "multilingual"
	PluginCache        PluginCategory = "cache"
	PluginAnalytics    PluginCategory = "analytics"
	PluginSecurity     PluginCategory = "security"
	PluginOther        PluginCategory = "other"
)

// DetectedPlugin is one WordPress plugin identified from homepage HTML.
type DetectedPlugin struct {
	Slug     string         `json:"slug"`
	Name     string         `json:"name"`
	Category PluginCategory `json:"category"`
}

// PluginScanResult is the deduplicated, ordered plugin list.
type PluginScanResult struct {
	Plugins       []DetectedPlugin `json:"plugins"`
	TotalDetected int              `json:"totalDetected"`
}

// IntegrationCategory is the closed set of integration classifications.
type IntegrationCategory string

const (
	IntegrationAnalytics     IntegrationCategory = "analytics"
	IntegrationTagManager    IntegrationCategory = "tag-manager"
	IntegrationChat          IntegrationCategory = "chat"
	IntegrationHeatmap       IntegrationCategory = "heatmap"
	IntegrationMarketing     IntegrationCategory = "marketing"
	IntegrationFormEmbed     IntegrationCategory = "form-embed"
	IntegrationScheduling    IntegrationCategory = "scheduling"
	IntegrationCookieConsent IntegrationCategory = "cookie-consent"
	IntegrationOther         IntegrationCategory = "other"
)

// DetectedIntegration is one third-party script/iframe service.
type DetectedIntegration struct {
	Slug     string              `json:"slug"`
	Name     string              `json:"name"`
	Category IntegrationCategory `json:"category"`
}

// IntegrationScanResult is the deduplicated, ordered integration list.
type IntegrationScanResult struct {
	Integrations  []DetectedIntegration `json:"integrations"`
	TotalDetected int                   `json:"totalDetected"`
}

// ScanResult is the root aggregate produced by one Scan call.
//
// Invariant: when APIAvailable is true every ContentType has
// IsEstimate=false and may carry a Complexity; when false, every type
// is an estimate and Complexity is always nil (classification needs
// live content sampling, which only the REST API provides).
type ScanResult struct {
	URL                  string                 `json:"url"`
	ScannedAt            time.Time              `json:"scannedAt"`
	APIAvailable         bool                   `json:"apiAvailable"`
	ContentTypes         []ContentType          `json:"contentTypes"`
	URLStructure         *URLStructure          `json:"urlStructure"`
	DetectedPlugins      *PluginScanResult      `json:"detectedPlugins"`
	DetectedIntegrations *IntegrationScanResult `json:"detectedIntegrations"`
	Errors               []string               `json:"errors"`
}
