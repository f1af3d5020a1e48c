package scanner

import (
	"regexp"
	"sort"
	"strings"
)

type knownPlugin struct {
	Name     string
	Category PluginCategory
}

// Plugins recognizable from their wp-content asset directory slug.
var knownPlugins = map[string]knownPlugin{
	// Page builders
	"elementor":                   {"Elementor", PluginPageBuilder},
	"elementor-pro":               {"Elementor Pro", PluginPageBuilder},
	"js_composer":                 {"WPBakery Page Builder", PluginPageBuilder},
	"beaver-builder-lite-version": {"Beaver Builder", PluginPageBuilder},
	"bb-plugin":                   {"Beaver Builder Pro", PluginPageBuilder},
	"divi-builder":                {"Divi Builder", PluginPageBuilder},
	"oxygen":                      {"Oxygen Builder", PluginPageBuilder},
	"brizy":                       {"Brizy", PluginPageBuilder},
	"generateblocks":              {"GenerateBlocks", PluginPageBuilder},
	"spectra":                     {"Spectra", PluginPageBuilder},

	// SEO
	"wordpress-seo":         {"Yoast SEO", PluginSEO},
	"wordpress-seo-premium": {"Yoast SEO Premium", PluginSEO},
	"all-in-one-seo-pack":   {"All in One SEO", PluginSEO},
	"seo-by-rank-math":      {"Rank Math", PluginSEO},
	"the-seo-framework":     {"The SEO Framework", PluginSEO},

	// Forms
	"contact-form-7": {"Contact Form 7", PluginForms},
	"wpforms-lite":   {"WPForms", PluginForms},
	"wpforms":        {"WPForms Pro", PluginForms},
	"gravityforms":   {"Gravity Forms", PluginForms},
	"formidable":     {"Formidable Forms", PluginForms},
	"ninja-forms":    {"Ninja Forms", PluginForms},
	"fluentform":     {"Fluent Forms", PluginForms},

	// E-commerce
	"woocommerce":            {"WooCommerce", PluginEcommerce},
	"easy-digital-downloads": {"Easy Digital Downloads", PluginEcommerce},
	"surecart":               {"SureCart", PluginEcommerce},

	// Multilingual
	"sitepress-multilingual-cms":  {"WPML", PluginMultilingual},
	"polylang":                    {"Polylang", PluginMultilingual},
	"translatepress-multilingual": {"TranslatePress", PluginMultilingual},

	// Cache / performance
	"wp-super-cache":   {"WP Super Cache", PluginCache},
	"w3-total-cache":   {"W3 Total Cache", PluginCache},
	"litespeed-cache":  {"LiteSpeed Cache", PluginCache},
	"wp-fastest-cache": {"WP Fastest Cache", PluginCache},
	"autoptimize":      {"Autoptimize", PluginCache},
	"wp-rocket":        {"WP Rocket", PluginCache},

	// Analytics
	"google-site-kit":                {"Google Site Kit", PluginAnalytics},
	"google-analytics-for-wordpress": {"MonsterInsights", PluginAnalytics},

	// Security
	"wordfence":                           {"Wordfence", PluginSecurity},
	"better-wp-security":                  {"iThemes Security", PluginSecurity},
	"sucuri-scanner":                      {"Sucuri Security", PluginSecurity},
	"all-in-one-wp-security-and-firewall": {"All-In-One Security", PluginSecurity},
}

type pluginSignature struct {
	Slug     string
	Name     string
	Category PluginCategory
	res      []*regexp.Regexp
	literals []string
}

func (sig pluginSignature) matches(html string) bool {
	for _, lit := range sig.literals {
		if strings.Contains(html, lit) {
			return true
		}
	}
	for _, re := range sig.res {
		if re.MatchString(html) {
			return true
		}
	}
	return false
}

func pluginSig(slug, name string, cat PluginCategory, patterns []string, literals []string) pluginSignature {
	res := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		res[i] = regexp.MustCompile(p)
	}
	return pluginSignature{Slug: slug, Name: name, Category: cat, res: res, literals: literals}
}

// HTML fingerprints for plugins that leave no asset path behind, e.g.
// when assets are concatenated or served from a CDN. Ordered so test
// expectations stay stable.
var pluginSignatures = []pluginSignature{
	pluginSig("elementor", "Elementor", PluginPageBuilder,
		[]string{`class="[^"]*elementor[-\s]`}, []string{"elementor-kit-"}),
	pluginSig("divi-builder", "Divi Builder", PluginPageBuilder,
		[]string{`class="[^"]*et_pb_`, `id="et-boc"`}, nil),
	pluginSig("js_composer", "WPBakery Page Builder", PluginPageBuilder,
		[]string{`class="[^"]*vc_row`, `class="[^"]*wpb_`}, nil),

	pluginSig("wordpress-seo", "Yoast SEO", PluginSEO,
		nil, []string{"<!-- This site is optimized with the Yoast"}),
	pluginSig("seo-by-rank-math", "Rank Math", PluginSEO,
		[]string{`name="rank-math"`}, []string{"<!-- Rank Math"}),
	pluginSig("all-in-one-seo-pack", "All in One SEO", PluginSEO,
		nil, []string{"<!-- All in One SEO"}),

	pluginSig("contact-form-7", "Contact Form 7", PluginForms,
		[]string{`class="[^"]*wpcf7[-\s"]`}, nil),

	pluginSig("woocommerce", "WooCommerce", PluginEcommerce,
		[]string{`class="[^"]*woocommerce[-\s"]`}, nil),

	pluginSig("wp-rocket", "WP Rocket", PluginCache,
		nil, []string{"<!-- This website is like a Rocket"}),
	pluginSig("litespeed-cache", "LiteSpeed Cache", PluginCache,
		nil, []string{"<!-- Page generated by LiteSpeed"}),
	pluginSig("wp-super-cache", "WP Super Cache", PluginCache,
		nil, []string{"<!-- super cache"}),
	pluginSig("w3-total-cache", "W3 Total Cache", PluginCache,
		nil, []string{"<!-- Performance optimized by W3 Total Cache"}),
	pluginSig("wp-fastest-cache", "WP Fastest Cache", PluginCache,
		nil, []string{"<!-- WP Fastest Cache"}),

	pluginSig("sitepress-multilingual-cms", "WPML", PluginMultilingual,
		nil, []string{"wpml-ls-statics-css", "sitepress-multilingual"}),
	pluginSig("translatepress-multilingual", "TranslatePress", PluginMultilingual,
		nil, []string{"trp-language-switcher"}),
}

var assetPathRE = regexp.MustCompile(`(?i)/wp-content/plugins/([a-z0-9_-]+)/`)

var pluginCategoryOrder = map[PluginCategory]int{
	PluginPageBuilder:  0,
	PluginSEO:          1,
	PluginForms:        2,
	PluginEcommerce:    3,
	PluginMultilingual: 4,
	PluginCache:        5,
	PluginAnalytics:    6,
	PluginSecurity:     7,
	PluginOther:        8,
}

func resolvePlugin(slug string) DetectedPlugin {
	if known, ok := knownPlugins[slug]; ok {
		return DetectedPlugin{Slug: slug, Name: known.Name, Category: known.Category}
	}
	return DetectedPlugin{Slug: slug, Name: TitleCase(slug), Category: PluginOther}
}

// ParsePluginSignatures detects plugins from homepage markup in two
// layers: asset paths under /wp-content/plugins/ first, then HTML
// fingerprints for anything the asset scan missed. Results are sorted
// by category significance, then name.
func ParsePluginSignatures(html string) *PluginScanResult {
	found := map[string]struct{}{}
	var plugins []DetectedPlugin

	for _, m := range assetPathRE.FindAllStringSubmatch(html, -1) {
		slug := strings.ToLower(m[1])
		if _, dup := found[slug]; dup {
			continue
		}
		found[slug] = struct{}{}
		plugins = append(plugins, resolvePlugin(slug))
	}

	for _, sig := range pluginSignatures {
		if _, dup := found[sig.Slug]; dup {
			continue
		}
		if sig.matches(html) {
			found[sig.Slug] = struct{}{}
			plugins = append(plugins, DetectedPlugin{Slug: sig.Slug, Name: sig.Name, Category: sig.Category})
		}
	}

	sort.SliceStable(plugins, func(i, j int) bool {
		ci, cj := pluginCategoryOrder[plugins[i].Category], pluginCategoryOrder[plugins[j].Category]
		if ci != cj {
			return ci < cj
		}
		return plugins[i].Name < plugins[j].Name
	})

	if plugins == nil {
		plugins = []DetectedPlugin{}
	}
	return &PluginScanResult{Plugins: plugins, TotalDetected: len(plugins)}
}
