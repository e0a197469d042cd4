package rules

// CategoryTerms maps each extraction category to the search terms that mark a
// sentence as relevant.  Terms are matched case-insensitively against
// section text.
var categoryTerms = map[Category][]string{
	CategoryHeightLimits: {
		"height", "metres", "m above",
	},
	CategorySetbacks: {
		"setback", "yard", "boundary", "metres from",
	},
	CategoryCoverage: {
		"coverage", "impervious", "site area", "per cent", "percent",
	},
	CategoryConsent: {
		"consent", "permitted activity", "restricted discretionary",
		"discretionary activity", "notification",
	},
}

// projectTerms maps a project type to its additional search terms.  Unknown
// project types fall back to genericProjectTerms.
var projectTerms = map[string][]string{
	"garage":         {"garage", "accessory building", "vehicle access"},
	"shed":           {"shed", "accessory building"},
	"extension":      {"extension", "alteration", "addition"},
	"new house":      {"dwelling", "new building", "residential unit"},
	"subdivision":    {"subdivision", "lot", "site size", "minimum site"},
	"commercial":     {"commercial", "retail", "office", "gross floor area"},
	"deck":           {"deck", "platform", "terrace"},
	"carport":        {"carport", "garage", "vehicle"},
	"fence":          {"fence", "wall", "front yard"},
	"retaining wall": {"retaining wall", "retaining", "excavation"},
}

var genericProjectTerms = []string{"building", "structure", "development"}

// structuralMarkers are headings that delimit document sections in the
// operative plan chapters.  Matched at the start of a line.
var structuralMarkers = []string{
	"Activities",
	"Development standards",
	"Notification",
	"Assessment",
	"Objectives",
	"Policies",
	"Standards",
	"Special information requirements",
}

// termsForProject returns the search-term list for a project type, defaulting
// to the generic list when the type is unrecognised.
func termsForProject(projectType string) []string {
	if terms, ok := projectTerms[projectType]; ok {
		return terms
	}
	return genericProjectTerms
}

// KnownProjectTypes returns the project types with dedicated term lists, for
// interface validation and CLI help output.
func KnownProjectTypes() []string {
	out := make([]string, 0, len(projectTerms))
	for pt := range projectTerms {
		out = append(out, pt)
	}
	return out
}
