package report

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/CodeMonkeyCybersecurity/wpcompass/pkg/scanner"
)

var pluginCategoryLabels = map[scanner.PluginCategory]string{
	scanner.PluginPageBuilder:  "Page Builders ★",
	scanner.PluginSEO:          "SEO",
	scanner.PluginForms:        "Forms",
	scanner.PluginEcommerce:    "E-Commerce",
	scanner.PluginMultilingual: "Multilingual",
	scanner.PluginCache:        "Cache / Performance",
	scanner.PluginAnalytics:    "Analytics",
	scanner.PluginSecurity:     "Security",
	scanner.PluginOther:        "Other",
}

var integrationCategoryLabels = map[scanner.IntegrationCategory]string{
	scanner.IntegrationAnalytics:     "Analytics",
	scanner.IntegrationTagManager:    "Tag Managers",
	scanner.IntegrationHeatmap:       "Heatmaps",
	scanner.IntegrationChat:          "Chat",
	scanner.IntegrationMarketing:     "Marketing",
	scanner.IntegrationFormEmbed:     "Form Embeds",
	scanner.IntegrationScheduling:    "Scheduling",
	scanner.IntegrationCookieConsent: "Cookie Consent",
	scanner.IntegrationOther:         "Other",
}

// padDots joins a label and a count with a dotted leader, ledger style.
func padDots(label, count string) string {
	dots := 40 - len([]rune(label)) - len([]rune(count))
	if dots < 2 {
		dots = 2
	}
	return label + " " + strings.Repeat(".", dots) + " " + count
}

// Render produces the full terminal report: structure map, URL
// patterns, plugins, integrations, migration scope, and annotations.
func Render(result *scanner.ScanResult) string {
	var b strings.Builder

	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()

	if result.APIAvailable {
		fmt.Fprintf(&b, "%s WordPress REST API available\n\n", green("✓"))
	} else {
		fmt.Fprintf(&b, "%s REST API not available — using sitemap/RSS fallback\n\n", red("✗"))
	}

	section(&b, bold("Content Structure Map"))

	totalItems := 0
	taxonomySlugs := map[string]struct{}{}
	for _, ct := range result.ContentTypes {
		countStr := fmt.Sprintf("%d items", ct.Count)
		if ct.IsEstimate {
			countStr = fmt.Sprintf("~%d items (estimated)", ct.Count)
		}
		b.WriteString(padDots(ct.Name, countStr) + "\n")

		if len(ct.Taxonomies) > 0 {
			parts := make([]string, len(ct.Taxonomies))
			for i, t := range ct.Taxonomies {
				taxonomySlugs[t.Slug] = struct{}{}
				parts[i] = fmt.Sprintf("%s (%d)", t.Name, t.Count)
			}
			fmt.Fprintf(&b, "  → %s\n", strings.Join(parts, " | "))
		}
		if ct.Complexity != nil && ct.Complexity.Level != scanner.ComplexitySimple {
			fmt.Fprintf(&b, "  Complexity: %s", ct.Complexity.Level)
			if ct.Complexity.Builder != "" {
				fmt.Fprintf(&b, " (%s)", ct.Complexity.Builder)
			}
			b.WriteString("\n")
		}
		if len(ct.Samples) > 0 {
			titles := make([]string, len(ct.Samples))
			for i, s := range ct.Samples {
				titles[i] = fmt.Sprintf("%q", s.Title)
			}
			fmt.Fprintf(&b, "  Samples: %s\n", strings.Join(titles, ", "))
		}
		b.WriteString("\n")
		totalItems += ct.Count
	}

	b.WriteString(strings.Repeat("─", 45) + "\n")
	fmt.Fprintf(&b, "%d content %s | %d %s | %d total items\n",
		len(result.ContentTypes), pluralize(len(result.ContentTypes), "type", "types"),
		len(taxonomySlugs), pluralize(len(taxonomySlugs), "taxonomy", "taxonomies"),
		totalItems)

	if us := result.URLStructure; us != nil {
		b.WriteString("\n")
		section(&b, bold("URL Structure"))
		fmt.Fprintf(&b, "Total indexed URLs: %d\n\n", us.TotalIndexedURLs)

		if len(us.Patterns) > 0 {
			b.WriteString("Patterns:\n")
			for _, p := range us.Patterns {
				fmt.Fprintf(&b, "  %s\n", padDots(p.Pattern, fmt.Sprintf("%d URLs", p.Count)))
				fmt.Fprintf(&b, "    e.g. %s\n", p.Example)
			}
		}
		if us.Multilingual != nil {
			fmt.Fprintf(&b, "\nMultilingual: %s (%s)\n", us.Multilingual.Type, strings.Join(us.Multilingual.Languages, ", "))
		}
		b.WriteString("\n" + strings.Repeat("─", 45) + "\n")
	}

	if dp := result.DetectedPlugins; dp != nil && len(dp.Plugins) > 0 {
		b.WriteString("\n")
		section(&b, bold("Detected Plugins"))
		renderGrouped(&b, groupPlugins(dp.Plugins))
		b.WriteString("\n" + strings.Repeat("─", 45) + "\n")
		fmt.Fprintf(&b, "%d plugins detected\n", dp.TotalDetected)
	}

	if di := result.DetectedIntegrations; di != nil && len(di.Integrations) > 0 {
		b.WriteString("\n")
		section(&b, bold("Third-Party Integrations"))
		renderGrouped(&b, groupIntegrations(di.Integrations))
		b.WriteString("\n" + strings.Repeat("─", 45) + "\n")
		fmt.Fprintf(&b, "%d integrations detected\n", di.TotalDetected)
	}

	scope := MigrationScope(result)
	b.WriteString("\n")
	section(&b, bold("Migration Scope"))
	b.WriteString(scope.Headline + "\n")
	for _, c := range scope.Considerations {
		fmt.Fprintf(&b, "\n  %s %s\n    %s\n", c.Icon, bold(c.Title), c.Body)
	}

	if annotations := Annotations(result); len(annotations) > 0 {
		b.WriteString("\n")
		section(&b, bold("Planning Notes"))
		for _, a := range annotations {
			marker := "•"
			if a.Severity == SeverityWarning {
				marker = yellow("⚠")
			}
			fmt.Fprintf(&b, "  %s %s\n    %s\n", marker, bold(a.Title), a.Body)
		}
	}

	if len(result.Errors) > 0 {
		b.WriteString("\nWarnings:\n")
		for _, e := range result.Errors {
			fmt.Fprintf(&b, "  %s %s\n", yellow("⚠"), e)
		}
	}

	return b.String()
}

func section(b *strings.Builder, title string) {
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("═", 45) + "\n\n")
}

func pluralize(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}

type labeledGroup struct {
	label string
	names []string
}

func groupPlugins(plugins []scanner.DetectedPlugin) []labeledGroup {
	order := []string{}
	byLabel := map[string][]string{}
	for _, p := range plugins {
		label := pluginCategoryLabels[p.Category]
		if _, seen := byLabel[label]; !seen {
			order = append(order, label)
		}
		byLabel[label] = append(byLabel[label], p.Name)
	}
	groups := make([]labeledGroup, len(order))
	for i, label := range order {
		groups[i] = labeledGroup{label: label, names: byLabel[label]}
	}
	return groups
}

func groupIntegrations(integrations []scanner.DetectedIntegration) []labeledGroup {
	order := []string{}
	byLabel := map[string][]string{}
	for _, it := range integrations {
		label := integrationCategoryLabels[it.Category]
		if _, seen := byLabel[label]; !seen {
			order = append(order, label)
		}
		byLabel[label] = append(byLabel[label], it.Name)
	}
	groups := make([]labeledGroup, len(order))
	for i, label := range order {
		groups[i] = labeledGroup{label: label, names: byLabel[label]}
	}
	return groups
}

func renderGrouped(b *strings.Builder, groups []labeledGroup) {
	for _, g := range groups {
		fmt.Fprintf(b, "  %s: %s\n", g.label, strings.Join(g.names, ", "))
	}
}
