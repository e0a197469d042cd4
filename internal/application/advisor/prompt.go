package advisor

import (
	"fmt"
	"strings"
)

// BuildPromptContext serializes a PropertyRuleSet into the prose context a
// downstream natural-language generator consumes.  Degraded fields become
// explicit caveats so the generator never presents missing data as fact.
func BuildPromptContext(rs *PropertyRuleSet) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Property assessment for %s (project: %s).\n", orUnknown(rs.Address), rs.ProjectType)

	if rs.Zone != nil {
		fmt.Fprintf(&b, "Zone: %s (%s), category %s.\n", rs.Zone.Name, rs.Zone.Code, rs.Zone.Category)
		if len(rs.Zone.BuildingRules) > 0 {
			fmt.Fprintf(&b, "Zone headline rules: %s.\n", strings.Join(rs.Zone.BuildingRules, "; "))
		}
	} else {
		b.WriteString("Zone: could not be determined.\n")
	}

	if len(rs.Overlays) > 0 {
		b.WriteString("Overlays in effect, most stringent first:\n")
		for _, o := range rs.Overlays {
			fmt.Fprintf(&b, "- %s", o.Overlay.Label)
			if o.Overlay.ExtractedLabel != "" {
				fmt.Fprintf(&b, " (%s)", o.Overlay.ExtractedLabel)
			}
			b.WriteString("\n")
		}
	}
	if len(rs.Unclassified) > 0 {
		fmt.Fprintf(&b, "Note: %d additional planning feature(s) apply that could not be identified; advise the owner to check with council.\n", len(rs.Unclassified))
	}

	writeSection(&b, "Height limits", rs.Merged.HeightLimits)
	writeSection(&b, "Setbacks", rs.Merged.Setbacks)
	writeSection(&b, "Site coverage", rs.Merged.Coverage)
	writeSection(&b, "Consent requirements", rs.Merged.ConsentRequirements)
	writeSection(&b, "Project-specific rules", rs.Merged.ProjectSpecific)

	if len(rs.DegradedFields) > 0 {
		b.WriteString("Caveats: the following information could not be retrieved and must not be guessed: ")
		b.WriteString(strings.Join(rs.DegradedFields, ", "))
		b.WriteString(".\n")
	}
	return b.String()
}

func writeSection(b *strings.Builder, title string, snippets []string) {
	if len(snippets) == 0 {
		return
	}
	fmt.Fprintf(b, "%s:\n", title)
	for _, s := range snippets {
		fmt.Fprintf(b, "- %s\n", s)
	}
}

func orUnknown(s string) string {
	if s == "" {
		return "an unspecified address"
	}
	return s
}
