// Package rules extracts candidate planning-rule snippets from raw document
// text.  This is deliberately approximate text mining, not a parser: the
// output is best-effort relevant excerpts, and callers must present it as
// indicative rather than authoritative.
package rules

import (
	"regexp"
	"strings"

	"github.com/planwise-nz/planwise/internal/infrastructure/monitoring/logging"
)

// Category is one target rule category.
type Category string

const (
	CategoryHeightLimits Category = "heightLimits"
	CategorySetbacks     Category = "setbacks"
	CategoryCoverage     Category = "coverage"
	CategoryConsent      Category = "consentRequirements"
)

// Bundle is the extraction result: per-category snippet lists plus the
// project-type-specific matches.
type Bundle struct {
	HeightLimits        []string `json:"heightLimits"`
	Setbacks            []string `json:"setbacks"`
	Coverage            []string `json:"coverage"`
	ConsentRequirements []string `json:"consentRequirements"`
	ProjectSpecific     []string `json:"projectSpecific"`
}

// IsEmpty reports whether no category yielded any snippet.
func (b Bundle) IsEmpty() bool {
	return len(b.HeightLimits) == 0 && len(b.Setbacks) == 0 &&
		len(b.Coverage) == 0 && len(b.ConsentRequirements) == 0 &&
		len(b.ProjectSpecific) == 0
}

// ByCategory returns the snippet list for a category.
func (b Bundle) ByCategory(c Category) []string {
	switch c {
	case CategoryHeightLimits:
		return b.HeightLimits
	case CategorySetbacks:
		return b.Setbacks
	case CategoryCoverage:
		return b.Coverage
	case CategoryConsent:
		return b.ConsentRequirements
	}
	return nil
}

// Extractor scans document text for rule snippets.
type Extractor struct {
	maxPerCategory    int
	minSentenceLength int
	logger            logging.Logger
}

// NewExtractor constructs an Extractor.  Non-positive limits fall back to
// the production defaults of 10 snippets and 20 characters.
func NewExtractor(maxPerCategory, minSentenceLength int, logger logging.Logger) *Extractor {
	if maxPerCategory <= 0 {
		maxPerCategory = 10
	}
	if minSentenceLength <= 0 {
		minSentenceLength = 20
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Extractor{
		maxPerCategory:    maxPerCategory,
		minSentenceLength: minSentenceLength,
		logger:            logger.Named("rules"),
	}
}

// sectionNumberRe matches plan section numbering such as "H3.4.1" or
// "D17.6.2" at the start of a line.
var sectionNumberRe = regexp.MustCompile(`(?m)^[A-Z]\d+[A-Z]?\.\d+(\.\d+)*\.?\s`)

// sentenceSplitRe splits section text into sentences on terminal punctuation
// followed by whitespace.
var sentenceSplitRe = regexp.MustCompile(`[.;]\s+|\n{2,}`)

// Extract mines documentText for rule snippets relevant to projectType.
// contextType identifies the zone or overlay the document belongs to and is
// used only for diagnostics.  Extract never fails: unusable input yields an
// empty Bundle.
func (e *Extractor) Extract(documentText, projectType, contextType string) Bundle {
	text := strings.TrimSpace(documentText)
	if text == "" {
		return Bundle{}
	}

	sections := splitSections(text)

	bundle := Bundle{
		HeightLimits:        e.scan(sections, categoryTerms[CategoryHeightLimits]),
		Setbacks:            e.scan(sections, categoryTerms[CategorySetbacks]),
		Coverage:            e.scan(sections, categoryTerms[CategoryCoverage]),
		ConsentRequirements: e.scan(sections, categoryTerms[CategoryConsent]),
		ProjectSpecific:     e.scan(sections, termsForProject(projectType)),
	}

	e.logger.Debug("rule extraction complete",
		logging.String("context", contextType),
		logging.String("project_type", projectType),
		logging.Int("sections", len(sections)),
		logging.Int("height", len(bundle.HeightLimits)),
		logging.Int("setbacks", len(bundle.Setbacks)),
		logging.Int("coverage", len(bundle.Coverage)),
		logging.Int("consent", len(bundle.ConsentRequirements)),
		logging.Int("project", len(bundle.ProjectSpecific)),
	)
	return bundle
}

// splitSections divides the text at structural markers and section-number
// headings.  The whole text is a single section when no marker is found.
func splitSections(text string) []string {
	boundaries := sectionNumberRe.FindAllStringIndex(text, -1)
	for _, marker := range structuralMarkers {
		re := regexp.MustCompile(`(?m)^` + regexp.QuoteMeta(marker) + `\b`)
		boundaries = append(boundaries, re.FindAllStringIndex(text, -1)...)
	}
	if len(boundaries) == 0 {
		return []string{text}
	}

	starts := make([]int, 0, len(boundaries)+1)
	starts = append(starts, 0)
	for _, b := range boundaries {
		starts = append(starts, b[0])
	}
	dedupeInts(&starts)

	sections := make([]string, 0, len(starts))
	for i, start := range starts {
		end := len(text)
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		if section := strings.TrimSpace(text[start:end]); section != "" {
			sections = append(sections, section)
		}
	}
	return sections
}

// scan collects sentences that contain any of the terms and exceed the
// minimum length, deduplicated, capped at maxPerCategory.  The length floor
// filters table-of-contents noise.
func (e *Extractor) scan(sections []string, terms []string) []string {
	var out []string
	seen := make(map[string]bool)

	for _, section := range sections {
		lower := strings.ToLower(section)
		if !containsAnyTerm(lower, terms) {
			continue
		}
		for _, sentence := range sentenceSplitRe.Split(section, -1) {
			sentence = strings.TrimSpace(sentence)
			if len(sentence) <= e.minSentenceLength {
				continue
			}
			if !containsAnyTerm(strings.ToLower(sentence), terms) {
				continue
			}
			if seen[sentence] {
				continue
			}
			seen[sentence] = true
			out = append(out, sentence)
			if len(out) >= e.maxPerCategory {
				return out
			}
		}
	}
	return out
}

func containsAnyTerm(lower string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

func dedupeInts(vals *[]int) {
	s := *vals
	if len(s) < 2 {
		return
	}
	// Boundary offsets arrive grouped per pattern; sort then compact.
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j] < s[j-1]; j-- {
			s[j], s[j-1] = s[j-1], s[j]
		}
	}
	out := s[:1]
	for _, v := range s[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	*vals = out
}
