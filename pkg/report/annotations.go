package report

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/CodeMonkeyCybersecurity/wpcompass/pkg/scanner"
)

// rule examines a scan result and either produces one annotation or
// declines. Rules run in a fixed order so report output is stable.
type rule func(*scanner.ScanResult) *Annotation

var annotationRules = []rule{
	builderContentExtraction,
	complexTaxonomySchema,
	testContentWarning,
	multilingualGaps,
	wpmlWorkflow,
	crocoblockRebuild,
	highPluginCount,
	deadContent,
	redirectMapping,
	flatStructureReview,
	gtmDynamicLoading,
	highIntegrationCount,
	multipleAnalytics,
	cookieConsentCompliance,
}

// Annotations runs every rule against the scan result and collects the
// notes that fired.
func Annotations(data *scanner.ScanResult) []Annotation {
	out := []Annotation{}
	for _, r := range annotationRules {
		if a := r(data); a != nil {
			out = append(out, *a)
		}
	}
	return out
}

// Page builder plus complex pages means layout is stored inside the
// content and cannot be copied 1:1.
func builderContentExtraction(data *scanner.ScanResult) *Annotation {
	var builderName string
	for _, ct := range data.ContentTypes {
		if ct.Complexity != nil && ct.Complexity.Builder != "" {
			builderName = ct.Complexity.Builder
			break
		}
	}
	if builderName == "" {
		return nil
	}

	var names []string
	for _, ct := range data.ContentTypes {
		if ct.Complexity != nil && ct.Complexity.Level == scanner.ComplexityComplex {
			names = append(names, fmt.Sprintf("%s (%d)", ct.Name, ct.Count))
		}
	}
	if len(names) == 0 {
		return nil
	}

	return &Annotation{
		Title:    fmt.Sprintf("%s flagged as Complex", strings.Join(names, ", ")),
		Body:     fmt.Sprintf("%s detected. These pages store layout structure mixed with content. Migration requires content extraction and rebuild as modular sections, not 1:1 copy.", builderName),
		Severity: SeverityWarning,
		Section:  SectionContentTypes,
	}
}

// pluralVerb conjugates for a subject that may already be plural:
// "Posts use", "Case Study uses".
func pluralVerb(subject string) string {
	if strings.HasSuffix(subject, "s") {
		return "use"
	}
	return "uses"
}

func mostTaxonomyHeavy(types []scanner.ContentType, min int) *scanner.ContentType {
	var most *scanner.ContentType
	for i := range types {
		ct := &types[i]
		if len(ct.Taxonomies) < min {
			continue
		}
		if most == nil || len(ct.Taxonomies) > len(most.Taxonomies) {
			most = ct
		}
	}
	return most
}

func complexTaxonomySchema(data *scanner.ScanResult) *Annotation {
	most := mostTaxonomyHeavy(data.ContentTypes, 5)
	if most == nil {
		return nil
	}

	return &Annotation{
		Title:    fmt.Sprintf("%s %s %d taxonomy dimensions", most.Name, pluralVerb(most.Name), len(most.Taxonomies)),
		Body:     "This is the most relationship-heavy content type. The target schema needs careful reference modeling to preserve all filtering capabilities.",
		Severity: SeverityWarning,
		Section:  SectionContentTypes,
	}
}

var testTitleRE = regexp.MustCompile(`(?i)\btest\b`)

func testContentWarning(data *scanner.ScanResult) *Annotation {
	var names []string
	for _, ct := range data.ContentTypes {
		for _, s := range ct.Samples {
			if testTitleRE.MatchString(s.Title) {
				names = append(names, fmt.Sprintf("%q", ct.Name))
				break
			}
		}
	}
	if len(names) == 0 {
		return nil
	}

	return &Annotation{
		Title:    fmt.Sprintf("%s with test posts detected", strings.Join(names, ", ")),
		Body:     "Appears to be a work-in-progress replacement. Clarify with team which version to migrate.",
		Severity: SeverityInfo,
		Section:  SectionContentTypes,
	}
}

// nonEnglish strips "en" from a language list.
func nonEnglish(langs []string) []string {
	out := make([]string, 0, len(langs))
	for _, l := range langs {
		if l != "en" {
			out = append(out, l)
		}
	}
	return out
}

// Patterns with real volume but no language-prefixed variants point at
// content that exists in one language only.
func multilingualGaps(data *scanner.ScanResult) *Annotation {
	if data.URLStructure == nil || data.URLStructure.Multilingual == nil {
		return nil
	}
	ml := data.URLStructure.Multilingual
	if len(ml.Languages) < 2 {
		return nil
	}

	langPrefixes := nonEnglish(ml.Languages)
	englishOnly := 0
	for _, p := range data.URLStructure.Patterns {
		if p.Count <= 20 {
			continue
		}
		isLangVariant := false
		for _, lang := range langPrefixes {
			if strings.HasPrefix(p.Pattern, "/"+lang+"/") {
				isLangVariant = true
				break
			}
		}
		if !isLangVariant {
			englishOnly++
		}
	}
	if englishOnly < 2 {
		return nil
	}

	return &Annotation{
		Title:    "Significant translation gaps",
		Body:     "Several content areas exist only in English. Decide during planning: migrate English-only and add translations later, or scope translation as part of the project?",
		Severity: SeverityWarning,
		Section:  SectionMultilingual,
	}
}

func wpmlWorkflow(data *scanner.ScanResult) *Annotation {
	if data.DetectedPlugins == nil {
		return nil
	}
	hasWPML := false
	for _, p := range data.DetectedPlugins.Plugins {
		if p.Slug == "wpml" || strings.Contains(strings.ToLower(p.Name), "wpml") {
			hasWPML = true
			break
		}
	}
	if !hasWPML {
		return nil
	}

	return &Annotation{
		Title:    "WPML → localization redesign",
		Body:     "The target CMS uses document-level or field-level localization instead of WPML's URL-based approach. Your translation workflows and editorial process will need to be redesigned. This is typically an improvement but requires planning.",
		Severity: SeverityWarning,
		Section:  SectionMultilingual,
	}
}

var jetPluginRE = regexp.MustCompile(`(?i)^jet(engine|menu|search)`)

func crocoblockRebuild(data *scanner.ScanResult) *Annotation {
	if data.DetectedPlugins == nil {
		return nil
	}
	var names []string
	for _, p := range data.DetectedPlugins.Plugins {
		if jetPluginRE.MatchString(p.Slug) || jetPluginRE.MatchString(strings.ReplaceAll(p.Name, " ", "")) {
			names = append(names, p.Name)
		}
	}
	if len(names) == 0 {
		return nil
	}

	return &Annotation{
		Title:    fmt.Sprintf("%s detected", strings.Join(names, " + ")),
		Body:     "These Crocoblock plugins handle custom post type queries, mega menus, and search. Their functionality will need to be rebuilt as custom frontend components and CMS queries.",
		Severity: SeverityWarning,
		Section:  SectionPlugins,
	}
}

func highPluginCount(data *scanner.ScanResult) *Annotation {
	if data.DetectedPlugins == nil || data.DetectedPlugins.TotalDetected < 20 {
		return nil
	}
	count := data.DetectedPlugins.TotalDetected

	return &Annotation{
		Title:    fmt.Sprintf("%d detected, likely %d+ actual", count, count+10),
		Body:     "Backend-only plugins (caching, security, backups, ACF) aren't visible from public scan. Request wp-admin access or plugin export for complete picture.",
		Severity: SeverityWarning,
		Section:  SectionPlugins,
	}
}

func count404s(errs []string) int {
	n := 0
	for _, e := range errs {
		if strings.Contains(e, "404") {
			n++
		}
	}
	return n
}

func deadContent(data *scanner.ScanResult) *Annotation {
	if count404s(data.Errors) == 0 {
		return nil
	}

	return &Annotation{
		Title:    "Dead content types detected",
		Body:     "These content types are registered in WordPress but return 404 — likely from deactivated or partially removed plugins. Safe to exclude from migration scope.",
		Severity: SeverityInfo,
		Section:  SectionWarnings,
	}
}

func redirectMapping(data *scanner.ScanResult) *Annotation {
	if data.URLStructure == nil || data.URLStructure.TotalIndexedURLs <= 100 {
		return nil
	}

	multilingualNote := ""
	if data.URLStructure.Multilingual != nil {
		multilingualNote = "Language subdirectories add complexity: decide if new URL structure keeps language prefixes or switches to a different pattern. "
	}

	return &Annotation{
		Title: fmt.Sprintf("%s URLs need redirect mapping", formatInt(data.URLStructure.TotalIndexedURLs)),
		Body: fmt.Sprintf("All %d URL patterns require 301 redirect rules. %sThis decision must be made before migration starts.",
			len(data.URLStructure.Patterns), multilingualNote),
		Severity: SeverityWarning,
		Section:  SectionURLStructure,
	}
}

var rootPatternRE = regexp.MustCompile(`^/\{[^/]+\}/$`)

func flatStructureReview(data *scanner.ScanResult) *Annotation {
	if data.URLStructure == nil || len(data.URLStructure.Patterns) == 0 {
		return nil
	}

	sorted := append([]scanner.URLPattern(nil), data.URLStructure.Patterns...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Count > sorted[j].Count })
	largest := sorted[0]

	if !rootPatternRE.MatchString(largest.Pattern) {
		return nil
	}
	if len(sorted) > 1 && largest.Count <= sorted[1].Count {
		return nil
	}

	return &Annotation{
		Title:    fmt.Sprintf("%d root-level pages", largest.Count),
		Body:     fmt.Sprintf("The %s pattern is the largest group but likely includes both real pages and flattened custom post type slugs. Review this list for proper content type assignment during modeling.", largest.Pattern),
		Severity: SeverityInfo,
		Section:  SectionURLStructure,
	}
}

func gtmDynamicLoading(data *scanner.ScanResult) *Annotation {
	if data.DetectedIntegrations == nil {
		return nil
	}
	hasGTM := false
	for _, i := range data.DetectedIntegrations.Integrations {
		if i.Slug == "google-tag-manager" {
			hasGTM = true
			break
		}
	}
	if !hasGTM {
		return nil
	}

	return &Annotation{
		Title:    "Google Tag Manager detected",
		Body:     "Additional analytics and tracking services may be loaded dynamically via GTM and are not visible in static HTML analysis. Request GTM container export for complete integration inventory.",
		Severity: SeverityInfo,
		Section:  SectionIntegrations,
	}
}

func highIntegrationCount(data *scanner.ScanResult) *Annotation {
	if data.DetectedIntegrations == nil || data.DetectedIntegrations.TotalDetected < 5 {
		return nil
	}

	return &Annotation{
		Title:    fmt.Sprintf("%d third-party integrations detected", data.DetectedIntegrations.TotalDetected),
		Body:     "Each integration requires equivalent implementation or replacement in the target platform. Plan integration setup as a distinct migration workstream.",
		Severity: SeverityWarning,
		Section:  SectionIntegrations,
	}
}

func multipleAnalytics(data *scanner.ScanResult) *Annotation {
	if data.DetectedIntegrations == nil {
		return nil
	}
	var names []string
	for _, i := range data.DetectedIntegrations.Integrations {
		if i.Category == scanner.IntegrationAnalytics {
			names = append(names, i.Name)
		}
	}
	if len(names) < 2 {
		return nil
	}

	return &Annotation{
		Title:    "Multiple analytics tools detected",
		Body:     fmt.Sprintf("%s — consider consolidation during migration to reduce page weight and simplify tracking.", strings.Join(names, ", ")),
		Severity: SeverityInfo,
		Section:  SectionIntegrations,
	}
}

func cookieConsentCompliance(data *scanner.ScanResult) *Annotation {
	if data.DetectedIntegrations == nil {
		return nil
	}
	for _, i := range data.DetectedIntegrations.Integrations {
		if i.Category == scanner.IntegrationCookieConsent {
			return &Annotation{
				Title:    fmt.Sprintf("%s cookie consent detected", i.Name),
				Body:     "GDPR/CCPA compliance configuration will need reimplementation. Export current consent categories and banner settings before migration.",
				Severity: SeverityWarning,
				Section:  SectionIntegrations,
			}
		}
	}
	return nil
}
