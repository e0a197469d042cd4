// Package overlay classifies raw geodata feature records into known planning
// overlay types and ranks stacked overlays by stringency.
package overlay

// Type identifies one known overlay kind.
type Type string

const (
	TypeHeritage          Type = "heritage"
	TypeSpecialCharacter  Type = "special-character"
	TypeMuseumViewshaft   Type = "museum-viewshaft"
	TypeStockadeViewshaft Type = "stockade-hill-viewshaft"
	TypeLiquefaction      Type = "liquefaction"
	TypeFlood             Type = "flood"
	TypeGeotechnical      Type = "geotechnical"
	TypeNotableTrees      Type = "notable-trees"
	TypeAircraftNoise     Type = "aircraft-noise"
)

// PriorityTier expresses relative stringency when overlays stack on one
// property.  Higher tiers govern conflicting numeric limits.
type PriorityTier int

const (
	PriorityLow    PriorityTier = 1
	PriorityMedium PriorityTier = 2
	PriorityHigh   PriorityTier = 3
)

// TypeInfo describes one overlay type: its human label, the operative plan
// document covering it, and its stringency tier.  Tier assignments are
// regional planning policy carried as configuration; they are not derived.
type TypeInfo struct {
	Type        Type
	Label       string
	DocumentURL string
	Priority    PriorityTier
}

const (
	overlayBaseURL = "https://unitaryplan.aucklandcouncil.govt.nz/images/Auckland%20Unitary%20Plan%20Operative/Chapter%20D%20Overlays/3.%20Built%20Heritage%20and%20Character/"
	hazardsURL     = "https://unitaryplan.aucklandcouncil.govt.nz/images/Auckland%20Unitary%20Plan%20Operative/Chapter%20E%20Auckland-wide/E36%20Natural%20hazards%20and%20flooding.pdf"
	treesURL       = "https://unitaryplan.aucklandcouncil.govt.nz/images/Auckland%20Unitary%20Plan%20Operative/Chapter%20D%20Overlays/2.%20Natural%20Heritage/D13%20Notable%20Trees%20Overlay.pdf"
	noiseURL       = "https://unitaryplan.aucklandcouncil.govt.nz/images/Auckland%20Unitary%20Plan%20Operative/Chapter%20D%20Overlays/5.%20Infrastructure/D24%20Aircraft%20Noise%20Overlay.pdf"
)

// typeCatalog is the fixed overlay-type table.
var typeCatalog = map[Type]TypeInfo{
	TypeHeritage: {
		Type:        TypeHeritage,
		Label:       "Historic Heritage Overlay",
		DocumentURL: overlayBaseURL + "D17%20Historic%20Heritage%20Overlay.pdf",
		Priority:    PriorityHigh,
	},
	TypeSpecialCharacter: {
		Type:        TypeSpecialCharacter,
		Label:       "Special Character Areas Overlay - Residential and Business",
		DocumentURL: overlayBaseURL + "D18%20Special%20Character%20Areas%20Overlay%20-%20Residential%20and%20Business.pdf",
		Priority:    PriorityMedium,
	},
	TypeMuseumViewshaft: {
		Type:        TypeMuseumViewshaft,
		Label:       "Auckland War Memorial Museum Viewshaft Overlay",
		DocumentURL: overlayBaseURL + "D19%20Auckland%20War%20Memorial%20Museum%20Viewshaft%20Overlay.pdf",
		Priority:    PriorityHigh,
	},
	TypeStockadeViewshaft: {
		Type:        TypeStockadeViewshaft,
		Label:       "Stockade Hill Viewshaft Overlay",
		DocumentURL: overlayBaseURL + "D20A%20Stockade%20Hill%20Viewshaft%20Overlay.pdf",
		Priority:    PriorityHigh,
	},
	TypeLiquefaction: {
		Type:        TypeLiquefaction,
		Label:       "Liquefaction Susceptibility",
		DocumentURL: hazardsURL,
		Priority:    PriorityMedium,
	},
	TypeFlood: {
		Type:        TypeFlood,
		Label:       "Flood Prone Area",
		DocumentURL: hazardsURL,
		Priority:    PriorityMedium,
	},
	TypeGeotechnical: {
		Type:        TypeGeotechnical,
		Label:       "Geotechnical Hazard",
		DocumentURL: hazardsURL,
		Priority:    PriorityLow,
	},
	TypeNotableTrees: {
		Type:        TypeNotableTrees,
		Label:       "Notable Trees Overlay",
		DocumentURL: treesURL,
		Priority:    PriorityLow,
	},
	TypeAircraftNoise: {
		Type:        TypeAircraftNoise,
		Label:       "Aircraft Noise Overlay",
		DocumentURL: noiseURL,
		Priority:    PriorityLow,
	},
}

// TypeLookup returns the TypeInfo for an overlay type.  Unknown types return
// ok=false, never an error.
func TypeLookup(t Type) (TypeInfo, bool) {
	info, ok := typeCatalog[t]
	return info, ok
}

// AllTypes returns every overlay TypeInfo in stable (label) order-independent
// form; callers needing ordering sort themselves.
func AllTypes() []TypeInfo {
	out := make([]TypeInfo, 0, len(typeCatalog))
	for _, info := range typeCatalog {
		out = append(out, info)
	}
	return out
}
