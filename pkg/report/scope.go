package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/CodeMonkeyCybersecurity/wpcompass/pkg/scanner"
)

// formatInt renders n with comma thousands separators.
func formatInt(n int) string {
	s := strconv.Itoa(n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, d := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

func sizeLabel(totalItems int) string {
	switch {
	case totalItems < 100:
		return "Small"
	case totalItems < 500:
		return "Medium"
	default:
		return "Large"
	}
}

// MigrationScope condenses a scan result into a one-paragraph headline
// plus the planning considerations the numbers support.
func MigrationScope(data *scanner.ScanResult) Scope {
	totalItems := 0
	taxonomyCount := 0
	for _, ct := range data.ContentTypes {
		totalItems += ct.Count
		taxonomyCount += len(ct.Taxonomies)
	}
	typeCount := len(data.ContentTypes)

	var langs []string
	if data.URLStructure != nil && data.URLStructure.Multilingual != nil {
		langs = data.URLStructure.Multilingual.Languages
	}
	isMultilingual := data.URLStructure != nil && data.URLStructure.Multilingual != nil

	var h strings.Builder
	h.WriteString(sizeLabel(totalItems))
	if isMultilingual {
		h.WriteString(", multilingual")
	}
	h.WriteString(" content platform")
	if taxonomyCount > 10 {
		h.WriteString(" with significant structural complexity")
	}
	fmt.Fprintf(&h, ". %d content types spanning %s items", typeCount, formatInt(totalItems))
	if isMultilingual {
		fmt.Fprintf(&h, " across %d languages", len(langs))
	}
	fmt.Fprintf(&h, ", organized through %d+ taxonomy systems", taxonomyCount)
	if taxonomyCount > 5 {
		h.WriteString(" with cross-type relationships")
	}
	h.WriteString(".")

	scope := Scope{Headline: h.String(), Considerations: []Consideration{}}

	if c := builderConsideration(data); c != nil {
		scope.Considerations = append(scope.Considerations, *c)
	}
	if isMultilingual && len(langs) > 1 {
		prefixes := nonEnglish(langs)
		scope.Considerations = append(scope.Considerations, Consideration{
			Icon:  "⟠",
			Color: "purple",
			Title: "Multilingual with uneven coverage",
			Body: fmt.Sprintf("%d language subdirectories (%s) but content depth varies significantly. Some content areas appear English-only. Translation workflow will require redesign.",
				len(prefixes), strings.Join(prefixes, ", ")),
		})
	}
	if c := mediaConsideration(data); c != nil {
		scope.Considerations = append(scope.Considerations, *c)
	}
	if c := taxonomyConsideration(data); c != nil {
		scope.Considerations = append(scope.Considerations, *c)
	}
	if n := count404s(data.Errors); n > 0 {
		plural := ""
		if n != 1 {
			plural = "s"
		}
		scope.Considerations = append(scope.Considerations, Consideration{
			Icon:  "✓",
			Color: "green",
			Title: "Dead weight identified",
			Body:  fmt.Sprintf("%d plugin content type%s returned 404. Likely safe to exclude from migration scope.", n, plural),
		})
	}
	if totalItems > 1000 {
		scope.Considerations = append(scope.Considerations, Consideration{
			Icon:  "◉",
			Color: "blue",
			Title: "Scale considerations",
			Body: fmt.Sprintf("%s total items across %d content types. Batch migration scripts and progress tracking will be important for a project of this scale.",
				formatInt(totalItems), typeCount),
		})
	}

	return scope
}

func builderConsideration(data *scanner.ScanResult) *Consideration {
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

	pageCount := 0
	for _, ct := range data.ContentTypes {
		if ct.Complexity != nil && ct.Complexity.Level == scanner.ComplexityComplex {
			pageCount += ct.Count
		}
	}

	return &Consideration{
		Icon:  "⚠",
		Color: "red",
		Title: "Page builder dependency",
		Body: fmt.Sprintf("%s detected. Pages likely mix layout with content and will need content extraction, not 1:1 copy. Expect higher effort on the %d pages vs standard post types.",
			builderName, pageCount),
	}
}

func mediaConsideration(data *scanner.ScanResult) *Consideration {
	mediaCount := 0
	for _, ct := range data.ContentTypes {
		if strings.Contains(strings.ToLower(ct.Name), "video") ||
			strings.Contains(strings.ToLower(ct.Slug), "video") {
			mediaCount += ct.Count
		}
	}
	if mediaCount <= 50 {
		return nil
	}

	return &Consideration{
		Icon:  "▶",
		Color: "orange",
		Title: "Media-heavy content",
		Body:  fmt.Sprintf("%d video entries detected. Clarify whether these are embedded (YouTube/Vimeo) or self-hosted before scoping media migration.", mediaCount),
	}
}

func taxonomyConsideration(data *scanner.ScanResult) *Consideration {
	most := mostTaxonomyHeavy(data.ContentTypes, 5)
	if most == nil {
		return nil
	}

	names := make([]string, len(most.Taxonomies))
	for i, t := range most.Taxonomies {
		names[i] = t.Name
	}

	return &Consideration{
		Icon:  "◈",
		Color: "yellow",
		Title: "Complex taxonomy relationships",
		Body: fmt.Sprintf("%s reference%s %d taxonomy dimensions (%s). This cross-referencing needs careful schema modeling.",
			most.Name, singularS(most.Name), len(most.Taxonomies), strings.Join(names, ", ")),
	}
}

// singularS adds the verb "s" only for singular subjects.
func singularS(subject string) string {
	if strings.HasSuffix(subject, "s") {
		return ""
	}
	return "s"
}
