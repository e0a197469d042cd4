package overlay

import (
	"fmt"
	"strings"
)

// Record is the raw attribute bag a geodata provider returns for one spatial
// feature intersecting the queried point.  Attribute names vary per provider
// and dataset; classification is therefore heuristic, by field presence.
type Record map[string]interface{}

// Classified is one successfully classified overlay.
type Classified struct {
	Info Info

	// SourceRecord is the raw record the classification came from.
	SourceRecord Record
}

// Info pairs a resolved overlay type with the label extracted from the
// source record (e.g. the heritage place name).
type Info struct {
	TypeInfo
	ExtractedLabel string
}

// rule is one (field-presence predicate, overlay type) pair.  Rules are
// evaluated in declaration order and the first match wins.
type rule struct {
	// fields are attribute names whose presence triggers the rule.  The
	// first present field supplies the extracted label.
	fields []string

	// classify maps the matched value to a type.  Most rules ignore the
	// value; the viewshaft rule dispatches on it.
	classify func(value string) (Type, bool)
}

func fixedType(t Type) func(string) (Type, bool) {
	return func(string) (Type, bool) { return t, true }
}

// rules is the priority-ordered classification table.  Field names cover the
// spelling variants observed across the regional datasets ("HERITAGE_NAME"
// vs "HISTORIC_NAME" and so on); a new provider variant is handled by adding
// its field name to the relevant rule, not by adding a rule.
var rules = []rule{
	{
		fields:   []string{"HERITAGE_NAME", "HISTORIC_NAME", "HERITAGE_DESC"},
		classify: fixedType(TypeHeritage),
	},
	{
		fields:   []string{"SCA_NAME", "SPECIAL_CHARACTER", "CHARACTER_AREA"},
		classify: fixedType(TypeSpecialCharacter),
	},
	{
		fields: []string{"VIEWSHAFT", "VIEWSHAFT_NAME"},
		classify: func(value string) (Type, bool) {
			lower := strings.ToLower(value)
			switch {
			case strings.Contains(lower, "museum"):
				return TypeMuseumViewshaft, true
			case strings.Contains(lower, "stockade"):
				return TypeStockadeViewshaft, true
			}
			return "", false
		},
	},
	{
		fields:   []string{"LIQUEFACTION", "LIQ_SUSCEPT", "LIQ_CATEGORY"},
		classify: fixedType(TypeLiquefaction),
	},
	{
		fields:   []string{"FLOOD_ZONE", "FLOODPLAIN", "FLOOD_PRONE"},
		classify: fixedType(TypeFlood),
	},
	{
		fields:   []string{"GEOTECH", "GEO_HAZARD", "GEOTECH_CLASS"},
		classify: fixedType(TypeGeotechnical),
	},
	{
		fields:   []string{"TREE_NAME", "NOTABLE_TREE", "TREE_SPECIES"},
		classify: fixedType(TypeNotableTrees),
	},
	{
		fields:   []string{"ANEF", "AIRCRAFT_NOISE", "NOISE_CONTOUR"},
		classify: fixedType(TypeAircraftNoise),
	},
}

// Classify inspects a raw record and resolves it to a known overlay type.
// It is a pure function over the record: identical records always classify
// identically.  Records matching no rule return ok=false; callers keep such
// records as "unclassified overlay detected" rather than dropping them
// silently.
func Classify(record Record) (Info, bool) {
	for _, r := range rules {
		for _, field := range r.fields {
			value, present := record[field]
			if !present {
				continue
			}
			label := stringify(value)
			t, ok := r.classify(label)
			if !ok {
				// Field present but value unrecognised (e.g. an unknown
				// viewshaft); keep scanning later rules.
				break
			}
			info, ok := TypeLookup(t)
			if !ok {
				break
			}
			return Info{TypeInfo: info, ExtractedLabel: label}, true
		}
	}
	return Info{}, false
}

// stringify renders an attribute value for label extraction.  Providers emit
// strings, numbers, and the occasional bool.
func stringify(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", val)
	}
}
