package scanner

import (
	"sort"
	"strings"
)

// integrationSignature fingerprints one third-party service from the
// script and iframe URLs it injects. A signature fires when any anyOf
// marker is present, or when every allOf marker is (used for services
// whose CDN host alone is ambiguous).
type integrationSignature struct {
	Slug     string
	Name     string
	Category IntegrationCategory
	anyOf    []string
	allOf    []string
}

func (sig integrationSignature) matches(html string) bool {
	for _, m := range sig.anyOf {
		if strings.Contains(html, m) {
			return true
		}
	}
	if len(sig.allOf) == 0 {
		return false
	}
	for _, m := range sig.allOf {
		if !strings.Contains(html, m) {
			return false
		}
	}
	return true
}

var knownIntegrations = []integrationSignature{
	// Analytics
	{Slug: "google-analytics", Name: "Google Analytics", Category: IntegrationAnalytics,
		anyOf: []string{"google-analytics.com/analytics.js", "googletagmanager.com/gtag/js"}},
	{Slug: "facebook-pixel", Name: "Facebook Pixel", Category: IntegrationAnalytics,
		allOf: []string{"connect.facebook.net", "fbevents.js"}},
	{Slug: "segment", Name: "Segment", Category: IntegrationAnalytics,
		anyOf: []string{"cdn.segment.com/analytics.js"}},
	{Slug: "mixpanel", Name: "Mixpanel", Category: IntegrationAnalytics,
		anyOf: []string{"cdn.mxpnl.com", "mixpanel.com/track"}},

	// Tag manager
	{Slug: "google-tag-manager", Name: "Google Tag Manager", Category: IntegrationTagManager,
		anyOf: []string{"googletagmanager.com/gtm.js"}},

	// Heatmaps
	{Slug: "hotjar", Name: "Hotjar", Category: IntegrationHeatmap,
		anyOf: []string{"static.hotjar.com"}},
	{Slug: "microsoft-clarity", Name: "Microsoft Clarity", Category: IntegrationHeatmap,
		anyOf: []string{"clarity.ms/tag"}},
	{Slug: "vwo", Name: "VWO", Category: IntegrationHeatmap,
		anyOf: []string{"dev.visualwebsiteoptimizer.com"}},

	// Chat
	{Slug: "intercom", Name: "Intercom", Category: IntegrationChat,
		anyOf: []string{"widget.intercom.io", "js.intercomcdn.com"}},
	{Slug: "drift", Name: "Drift", Category: IntegrationChat,
		anyOf: []string{"js.driftt.com"}},
	{Slug: "crisp", Name: "Crisp", Category: IntegrationChat,
		anyOf: []string{"client.crisp.chat"}},
	{Slug: "zendesk", Name: "Zendesk", Category: IntegrationChat,
		anyOf: []string{"static.zdassets.com", "zopim.com"}},
	{Slug: "livechat", Name: "LiveChat", Category: IntegrationChat,
		anyOf: []string{"cdn.livechatinc.com"}},
	{Slug: "tidio", Name: "Tidio", Category: IntegrationChat,
		anyOf: []string{"code.tidio.co"}},
	{Slug: "freshdesk", Name: "Freshdesk", Category: IntegrationChat,
		anyOf: []string{"wchat.freshchat.com"}},

	// Marketing
	{Slug: "hubspot", Name: "HubSpot", Category: IntegrationMarketing,
		anyOf: []string{"js.hs-scripts.com", "js.hsforms.net"}},
	{Slug: "mailchimp", Name: "Mailchimp", Category: IntegrationMarketing,
		anyOf: []string{"chimpstatic.com", "list-manage.com"}},
	{Slug: "convertkit", Name: "ConvertKit", Category: IntegrationMarketing,
		anyOf: []string{"convertkit.com"}},

	// Form embeds
	{Slug: "typeform", Name: "Typeform", Category: IntegrationFormEmbed,
		anyOf: []string{"embed.typeform.com"}},

	// Scheduling
	{Slug: "calendly", Name: "Calendly", Category: IntegrationScheduling,
		anyOf: []string{"assets.calendly.com", "calendly.com/"}},

	// Cookie consent
	{Slug: "cookiebot", Name: "CookieBot", Category: IntegrationCookieConsent,
		anyOf: []string{"consent.cookiebot.com"}},
	{Slug: "cookieyes", Name: "CookieYes", Category: IntegrationCookieConsent,
		anyOf: []string{"cdn-cookieyes.com"}},
	{Slug: "onetrust", Name: "OneTrust", Category: IntegrationCookieConsent,
		anyOf: []string{"cdn.cookielaw.org", "optanon.blob.core.windows.net"}},
	{Slug: "complianz", Name: "Complianz", Category: IntegrationCookieConsent,
		anyOf: []string{"complianz-gdpr", "cmplz-"}},
	{Slug: "termly", Name: "Termly", Category: IntegrationCookieConsent,
		anyOf: []string{"app.termly.io"}},
}

var integrationCategoryOrder = map[IntegrationCategory]int{
	IntegrationAnalytics:     0,
	IntegrationTagManager:    1,
	IntegrationHeatmap:       2,
	IntegrationChat:          3,
	IntegrationMarketing:     4,
	IntegrationFormEmbed:     5,
	IntegrationScheduling:    6,
	IntegrationCookieConsent: 7,
	IntegrationOther:         8,
}

// ParseIntegrations detects third-party services from homepage markup.
// Purely string matching; no network access.
func ParseIntegrations(html string) *IntegrationScanResult {
	integrations := []DetectedIntegration{}
	for _, sig := range knownIntegrations {
		if sig.matches(html) {
			integrations = append(integrations, DetectedIntegration{
				Slug: sig.Slug, Name: sig.Name, Category: sig.Category,
			})
		}
	}

	sort.SliceStable(integrations, func(i, j int) bool {
		ci, cj := integrationCategoryOrder[integrations[i].Category], integrationCategoryOrder[integrations[j].Category]
		if ci != cj {
			return ci < cj
		}
		return integrations[i].Name < integrations[j].Name
	})

	return &IntegrationScanResult{Integrations: integrations, TotalDetected: len(integrations)}
}
