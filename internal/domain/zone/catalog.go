// Package zone holds the static catalog of Auckland Unitary Plan zones and
// the resolver that maps free-text zone names from uncoordinated geodata
// providers onto canonical catalog entries.
package zone

import (
	"strconv"
	"strings"
)

// Category is the broad land-use grouping of a zone.
type Category string

const (
	CategoryResidential Category = "residential"
	CategoryBusiness    Category = "business"
	CategoryRural       Category = "rural"
	CategoryCoastal     Category = "coastal"
	CategorySpecial     Category = "special"
	CategoryOpenSpace   Category = "open-space"
)

// Info describes one canonical zone.  Entries are created once at catalog
// build time and are read-only thereafter; every code maps to at most one
// Info.
type Info struct {
	// Code is the Unitary Plan chapter section, e.g. "H3".
	Code string

	// Name is the canonical zone name as printed in the plan.
	Name string

	// Description is a one-line summary for user-facing output.
	Description string

	// Category is the broad land-use grouping.
	Category Category

	// BuildingRules are human-readable headline rules, used as fallback
	// content when the reference document cannot be fetched.
	BuildingRules []string

	// DocumentURL points at the operative plan chapter PDF for this zone.
	DocumentURL string
}

const planBaseURL = "https://unitaryplan.aucklandcouncil.govt.nz/images/Auckland%20Unitary%20Plan%20Operative/Chapter%20H%20Zones/"

// catalog is the fixed zone table, keyed by plan section code.  URLs follow
// the operative plan's chapter H layout.
var catalog = map[string]Info{
	"H1": {
		Code: "H1", Name: "Residential - Large Lot Zone",
		Description: "Large sites on the urban periphery with limited servicing.",
		Category:    CategoryResidential,
		BuildingRules: []string{
			"One dwelling per site",
			"Maximum height 8 metres",
			"Maximum building coverage 20 percent of net site area",
		},
		DocumentURL: planBaseURL + "H1%20Residential%20-%20Large%20Lot%20Zone.pdf",
	},
	"H2": {
		Code: "H2", Name: "Residential - Rural and Coastal Settlement Zone",
		Description: "Low-intensity residential within rural and coastal villages.",
		Category:    CategoryResidential,
		BuildingRules: []string{
			"One dwelling per site",
			"Maximum height 8 metres",
			"Maximum building coverage 35 percent of net site area",
		},
		DocumentURL: planBaseURL + "H2%20Residential%20-%20Rural%20and%20Coastal%20Settlement%20Zone.pdf",
	},
	"H3": {
		Code: "H3", Name: "Residential - Single House Zone",
		Description: "One- to two-storey suburban housing on discrete sites.",
		Category:    CategoryResidential,
		BuildingRules: []string{
			"Maximum height 8 metres plus a 1 metre roof allowance",
			"Maximum building coverage 35 percent of net site area",
			"Yards: front 3 metres, side and rear 1 metre",
		},
		DocumentURL: planBaseURL + "H3%20Residential%20-%20Single%20House%20Zone.pdf",
	},
	"H4": {
		Code: "H4", Name: "Residential - Mixed Housing Suburban Zone",
		Description: "Two-storey detached and attached housing across Auckland's suburbs.",
		Category:    CategoryResidential,
		BuildingRules: []string{
			"Maximum height 8 metres plus a 1 metre roof allowance",
			"Maximum building coverage 40 percent of net site area",
			"Up to three dwellings per site as a permitted activity",
		},
		DocumentURL: planBaseURL + "H4%20Residential%20-%20Mixed%20Housing%20Suburban%20Zone.pdf",
	},
	"H5": {
		Code: "H5", Name: "Residential - Mixed Housing Urban Zone",
		Description: "Three-storey housing in walkable proximity to centres.",
		Category:    CategoryResidential,
		BuildingRules: []string{
			"Maximum height 11 metres plus a 1 metre roof allowance",
			"Maximum building coverage 45 percent of net site area",
			"Up to three dwellings per site as a permitted activity",
		},
		DocumentURL: planBaseURL + "H5%20Residential%20-%20Mixed%20Housing%20Urban%20Zone.pdf",
	},
	"H6": {
		Code: "H6", Name: "Residential - Terrace Housing and Apartment Buildings Zone",
		Description: "Five- to seven-storey urban residential close to centres and transit.",
		Category:    CategoryResidential,
		BuildingRules: []string{
			"Maximum height 16 metres, greater in identified height variation areas",
			"Maximum building coverage 50 percent of net site area",
		},
		DocumentURL: planBaseURL + "H6%20Residential%20-%20Terrace%20Housing%20and%20Apartment%20Buildings%20Zone.pdf",
	},
	"H7": {
		Code: "H7", Name: "Open Space Zones",
		Description: "Parks, reserves, and civic open space.",
		Category:    CategoryOpenSpace,
		BuildingRules: []string{
			"Buildings accessory to open space use only",
			"Maximum building coverage 5 percent of site area",
		},
		DocumentURL: planBaseURL + "H7%20Open%20Space%20zones.pdf",
	},
	"H8": {
		Code: "H8", Name: "Business - City Centre Zone",
		Description: "The regional centre with the greatest height and intensity.",
		Category:    CategoryBusiness,
		BuildingRules: []string{
			"Unlimited height outside identified height control areas",
			"Active frontage controls on identified streets",
		},
		DocumentURL: planBaseURL + "H8%20Business%20-%20City%20Centre%20Zone.pdf",
	},
	"H9": {
		Code: "H9", Name: "Business - Metropolitan Centre Zone",
		Description: "Sub-regional centres for high-intensity commercial activity.",
		Category:    CategoryBusiness,
		BuildingRules: []string{
			"Maximum height 72.5 metres unless varied by precinct",
		},
		DocumentURL: planBaseURL + "H9%20Business%20-%20Metropolitan%20Centre%20Zone.pdf",
	},
	"H10": {
		Code: "H10", Name: "Business - Town Centre Zone",
		Description: "Commercial centres serving surrounding suburbs.",
		Category:    CategoryBusiness,
		BuildingRules: []string{
			"Maximum height generally 16 to 32.5 metres per centre",
		},
		DocumentURL: planBaseURL + "H10%20Business%20-%20Town%20Centre%20Zone.pdf",
	},
	"H11": {
		Code: "H11", Name: "Business - Local Centre Zone",
		Description: "Small centres serving local convenience needs.",
		Category:    CategoryBusiness,
		BuildingRules: []string{
			"Maximum height 13 metres",
		},
		DocumentURL: planBaseURL + "H11%20Business%20-%20Local%20Centre%20Zone.pdf",
	},
	"H12": {
		Code: "H12", Name: "Business - Neighbourhood Centre Zone",
		Description: "Single corner-store scale commercial sites.",
		Category:    CategoryBusiness,
		BuildingRules: []string{
			"Maximum height 9 metres",
		},
		DocumentURL: planBaseURL + "H12%20Business%20-%20Neighbourhood%20Centre%20Zone.pdf",
	},
	"H13": {
		Code: "H13", Name: "Business - Mixed Use Zone",
		Description: "Residential and compatible business activity around centres.",
		Category:    CategoryBusiness,
		BuildingRules: []string{
			"Maximum height 13 to 18 metres depending on location",
		},
		DocumentURL: planBaseURL + "H13%20Business%20-%20Mixed%20Use%20Zone.pdf",
	},
	"H14": {
		Code: "H14", Name: "Business - General Business Zone",
		Description: "Large-format retail and trade suppliers.",
		Category:    CategoryBusiness,
		BuildingRules: []string{
			"Maximum height 16.5 metres",
		},
		DocumentURL: planBaseURL + "H14%20Business%20-%20General%20Business%20Zone.pdf",
	},
	"H15": {
		Code: "H15", Name: "Business - Business Park Zone",
		Description: "Campus-style office parks.",
		Category:    CategoryBusiness,
		BuildingRules: []string{
			"Maximum height 16.5 metres",
		},
		DocumentURL: planBaseURL + "H15%20Business%20-%20Business%20Park%20Zone.pdf",
	},
	"H16": {
		Code: "H16", Name: "Business - Heavy Industry Zone",
		Description: "Industrial activity with potential off-site effects.",
		Category:    CategoryBusiness,
		BuildingRules: []string{
			"Maximum height 20 metres",
			"No residential or office activity except accessory",
		},
		DocumentURL: planBaseURL + "H16%20Business%20-%20Heavy%20Industry%20Zone.pdf",
	},
	"H17": {
		Code: "H17", Name: "Business - Light Industry Zone",
		Description: "Industrial activity compatible with adjacent sensitive zones.",
		Category:    CategoryBusiness,
		BuildingRules: []string{
			"Maximum height 20 metres",
		},
		DocumentURL: planBaseURL + "H17%20Business%20-%20Light%20Industry%20Zone.pdf",
	},
	"H18": {
		Code: "H18", Name: "Future Urban Zone",
		Description: "Greenfield land identified for future urbanisation.",
		Category:    CategorySpecial,
		BuildingRules: []string{
			"Interim rural activity standards apply pending structure planning",
		},
		DocumentURL: planBaseURL + "H18%20Future%20Urban%20Zone.pdf",
	},
	"H19": {
		Code: "H19", Name: "Rural Zones",
		Description: "Rural production, rural coastal, and countryside living zones.",
		Category:    CategoryRural,
		BuildingRules: []string{
			"Maximum height 10 metres",
			"Minimum dwelling setback 30 metres from rural road boundaries",
		},
		DocumentURL: planBaseURL + "H19%20Rural%20zones.pdf",
	},
}

// categoryDefaults maps a category to the catalog entry returned by the
// coarse name-resolution fallback.  Assignments reflect the most common zone
// of each category in the region and are configuration, not derivation.
var categoryDefaults = map[Category]string{
	CategoryResidential: "H4",
	CategoryBusiness:    "H13",
	CategoryRural:       "H19",
	CategoryOpenSpace:   "H7",
	CategorySpecial:     "H18",
}

// Lookup returns the Info for a zone code.  It is total: unknown codes return
// ok=false, never an error.  Both plan section forms ("H3", "h3") and the
// bare numeric form ("3") that some providers emit are accepted.
func Lookup(code string) (Info, bool) {
	code = strings.TrimSpace(code)
	if code == "" {
		return Info{}, false
	}
	if info, ok := catalog[strings.ToUpper(code)]; ok {
		return info, true
	}
	if n, err := strconv.Atoi(code); err == nil {
		if info, ok := catalog["H"+strconv.Itoa(n)]; ok {
			return info, true
		}
	}
	return Info{}, false
}

// All returns every catalog entry in code order (H1..H19).
func All() []Info {
	out := make([]Info, 0, len(catalog))
	for i := 1; i <= len(catalog); i++ {
		if info, ok := catalog["H"+strconv.Itoa(i)]; ok {
			out = append(out, info)
		}
	}
	return out
}

// DefaultForCategory returns the fallback zone for a category, if one is
// configured.
func DefaultForCategory(c Category) (Info, bool) {
	code, ok := categoryDefaults[c]
	if !ok {
		return Info{}, false
	}
	return Lookup(code)
}
