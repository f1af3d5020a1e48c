package scanner

import "regexp"

// ContentItem is the slice of a REST API post the complexity classifier
// needs: the rendered body plus whether the post carries custom fields.
type ContentItem struct {
	ContentHTML     string
	HasCustomFields bool
}

type contentSignature struct {
	name string
	res  []*regexp.Regexp
}

func (sig contentSignature) matches(html string) bool {
	for _, re := range sig.res {
		if re.MatchString(html) {
			return true
		}
	}
	return false
}

func sigs(name string, patterns ...string) contentSignature {
	res := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		res[i] = regexp.MustCompile(p)
	}
	return contentSignature{name: name, res: res}
}

// Page builder markers in rendered content. Checked in order; the first
// builder that matches any sample classifies the whole type as complex.
var builderSignatures = []contentSignature{
	sigs("Elementor", `class="[^"]*elementor[-\s]`, `elementor-kit-`),
	sigs("WPBakery", `class="[^"]*vc_row`, `class="[^"]*wpb_`),
	sigs("Divi Builder", `class="[^"]*et_pb_`, `id="et-boc"`),
	sigs("Beaver Builder", `class="[^"]*fl-row`, `class="[^"]*fl-builder`),
	sigs("Oxygen", `class="[^"]*ct-section`, `class="[^"]*oxy-`),
	sigs("Brizy", `class="[^"]*brz-`),
}

// Markers that complicate migration without implying a full builder.
// Unlike builders these accumulate; every matching signature is reported.
var moderateSignatures = []contentSignature{
	sigs("ACF Blocks", `<!-- wp:acf/`),
	sigs("Advanced Gutenberg layout", `<!-- wp:(columns|group|cover|media-text|table)[ />]`),
	sigs("Shortcodes", `\[[a-z_-]+[^\]]*\]`),
}

func anyItemMatches(items []ContentItem, sig contentSignature) bool {
	for _, item := range items {
		if sig.matches(item.ContentHTML) {
			return true
		}
	}
	return false
}

// AnalyzeContentComplexity classifies sample posts of one content type.
// A builder signature anywhere makes the type complex; moderate markers
// or custom fields alone make it moderate; clean markup is simple with
// the single "Standard content" signal. No samples at all yields simple
// with no signals, which renders differently from a confirmed-simple
// classification.
func AnalyzeContentComplexity(items []ContentItem) ContentComplexity {
	if len(items) == 0 {
		return ContentComplexity{Level: ComplexitySimple, Signals: []string{}}
	}

	var signals []string
	var builder string
	for _, sig := range builderSignatures {
		if anyItemMatches(items, sig) {
			builder = sig.name
			signals = append(signals, sig.name)
			break
		}
	}

	for _, sig := range moderateSignatures {
		if anyItemMatches(items, sig) {
			signals = append(signals, sig.name)
		}
	}

	for _, item := range items {
		if item.HasCustomFields {
			signals = append(signals, "Custom fields")
			break
		}
	}

	switch {
	case builder != "":
		return ContentComplexity{Level: ComplexityComplex, Signals: signals, Builder: builder}
	case len(signals) > 0:
		return ContentComplexity{Level: ComplexityModerate, Signals: signals}
	default:
		return ContentComplexity{Level: ComplexitySimple, Signals: []string{"Standard content"}}
	}
}
