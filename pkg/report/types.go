// Package report turns a raw scan result into migration-planning
// output: rule-based annotations, a scope summary, and renderers for
// terminal and JSON consumers.
package report

// Severity grades how urgently an annotation needs attention.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
)

// Section names the report area an annotation belongs to.
type Section string

const (
	SectionContentTypes Section = "content-types"
	SectionMultilingual Section = "multilingual"
	SectionPlugins      Section = "plugins"
	SectionURLStructure Section = "url-structure"
	SectionIntegrations Section = "integrations"
	SectionWarnings     Section = "warnings"
)

// Annotation is one human-readable migration-planning note.
type Annotation struct {
	Title    string   `json:"title"`
	Body     string   `json:"body"`
	Severity Severity `json:"severity"`
	Section  Section  `json:"section"`
}

// Consideration is one item in the migration scope summary, with
// presentation hints for UI consumers.
type Consideration struct {
	Icon  string `json:"icon"`
	Color string `json:"color"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Scope is the top-of-report migration summary.
type Scope struct {
	Headline       string          `json:"headline"`
	Considerations []Consideration `json:"considerations"`
}
