package zone

import (
	"regexp"
	"sort"
	"strings"

	"github.com/planwise-nz/planwise/internal/infrastructure/monitoring/logging"
)

// Resolver normalises free-text or coded zone identifiers from different
// geodata providers onto canonical catalog entries.  Resolution is
// best-effort and total: an unresolvable input yields ok=false, and the
// caller must treat that as "zoning unknown" rather than assuming a default
// with building rules attached.
type Resolver struct {
	logger logging.Logger
}

// NewResolver constructs a Resolver.  A nil logger falls back to the process
// default.
func NewResolver(logger logging.Logger) *Resolver {
	if logger == nil {
		logger = logging.Default()
	}
	return &Resolver{logger: logger.Named("zone")}
}

// zoneSuffixRe matches the trailing "(Zone <number>)" decoration that one
// provider appends to zone names.
var zoneSuffixRe = regexp.MustCompile(`(?i)\s*\(zone\s+\d+\)\s*$`)

// stopwords are tokens with no discriminating power between zone names.
var stopwords = map[string]bool{
	"zone": true, "zones": true, "the": true, "and": true, "of": true,
}

// Resolve maps a raw zone identifier to a catalog entry.
//
// Resolution order:
//  1. strip any trailing "(Zone N)" suffix
//  2. direct code lookup ("H3", "3")
//  3. exact canonical-name match
//  4. category-scoped token match: every discriminating token of the input
//     must appear in the candidate's name
//  5. coarse category fallback from "rural"/"residential"/"business"
//     substrings, returning the category's configured default zone
//
// Empty or whitespace-only input always resolves to ok=false.
func (r *Resolver) Resolve(raw string) (Info, bool) {
	cleaned := strings.TrimSpace(zoneSuffixRe.ReplaceAllString(raw, ""))
	if cleaned == "" {
		return Info{}, false
	}

	if info, ok := Lookup(cleaned); ok {
		return info, true
	}

	norm := normalize(cleaned)
	for _, info := range All() {
		if normalize(info.Name) == norm {
			return info, true
		}
	}

	if info, ok := r.tokenMatch(cleaned, norm); ok {
		return info, true
	}

	return r.categoryFallback(norm)
}

// tokenMatch accepts a catalog entry only when all of the input's
// discriminating tokens are present in the candidate's name.  This prevents
// "Residential - Single House" from collapsing into "Residential - Mixed
// Housing Urban".  When several candidates qualify, the one with the fewest
// surplus tokens wins and the ambiguity is logged.
func (r *Resolver) tokenMatch(raw, norm string) (Info, bool) {
	want := discriminatingTokens(norm)

	pool := All()
	if cat, ok := categoryHint(norm); ok {
		scoped := pool[:0:0]
		for _, info := range pool {
			if info.Category == cat {
				scoped = append(scoped, info)
			}
		}
		pool = scoped
		// The category keyword itself discriminates nothing once the pool is
		// scoped to that category.
		for _, kw := range categoryKeywords[cat] {
			delete(want, kw)
		}
	}
	if len(want) == 0 {
		return Info{}, false
	}

	var matches []Info
	for _, info := range pool {
		have := tokenSet(normalize(info.Name))
		if containsAll(have, want) {
			matches = append(matches, info)
		}
	}

	switch len(matches) {
	case 0:
		return Info{}, false
	case 1:
		return matches[0], true
	}

	// Most specific candidate first: fewest surplus tokens, then code order
	// for determinism.
	sort.Slice(matches, func(i, j int) bool {
		ti := len(tokenSet(normalize(matches[i].Name)))
		tj := len(tokenSet(normalize(matches[j].Name)))
		if ti != tj {
			return ti < tj
		}
		return matches[i].Code < matches[j].Code
	})
	r.logger.Warn("ambiguous zone name match",
		logging.String("input", raw),
		logging.String("chosen", matches[0].Code),
		logging.Int("candidates", len(matches)),
	)
	return matches[0], true
}

// categoryFallback guesses a coarse category from well-known substrings and
// returns that category's configured default zone.  The rural branch is
// checked on its own first; this mirrors the long-standing behaviour of the
// production matcher and is deliberately not folded into the generic pass.
func (r *Resolver) categoryFallback(norm string) (Info, bool) {
	if strings.Contains(norm, "rural") {
		return DefaultForCategory(CategoryRural)
	}
	if strings.Contains(norm, "residential") {
		return DefaultForCategory(CategoryResidential)
	}
	if strings.Contains(norm, "business") {
		return DefaultForCategory(CategoryBusiness)
	}
	return Info{}, false
}

// categoryKeywords lists the tokens that identify each category in provider
// zone names.
var categoryKeywords = map[Category][]string{
	CategoryRural:       {"rural"},
	CategoryResidential: {"residential"},
	CategoryBusiness:    {"business"},
	CategoryOpenSpace:   {"open", "space"},
}

// categoryHint extracts a category keyword from the normalised input, scoping
// the fuzzy match so that e.g. "residential mixed" never considers business
// zones.
func categoryHint(norm string) (Category, bool) {
	switch {
	case strings.Contains(norm, "rural"):
		return CategoryRural, true
	case strings.Contains(norm, "residential"):
		return CategoryResidential, true
	case strings.Contains(norm, "business"):
		return CategoryBusiness, true
	case strings.Contains(norm, "open space"):
		return CategoryOpenSpace, true
	}
	return "", false
}

// normalize lowercases the input and strips punctuation so provider spelling
// variants tokenize identically.
func normalize(s string) string {
	s = strings.ToLower(s)
	s = strings.NewReplacer("-", " ", "/", " ", ",", " ", "(", " ", ")", " ").Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

func tokenSet(norm string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range strings.Fields(norm) {
		if !stopwords[tok] {
			set[tok] = true
		}
	}
	return set
}

func discriminatingTokens(norm string) map[string]bool {
	return tokenSet(norm)
}

func containsAll(have, want map[string]bool) bool {
	for tok := range want {
		if !have[tok] {
			return false
		}
	}
	return true
}
