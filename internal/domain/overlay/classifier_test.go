package overlay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_KnownFields(t *testing.T) {
	tests := []struct {
		name   string
		record Record
		want   Type
		label  string
	}{
		{"heritage name", Record{"HERITAGE_NAME": "Ponsonby House"}, TypeHeritage, "Ponsonby House"},
		{"historic name variant", Record{"HISTORIC_NAME": "Old Customhouse"}, TypeHeritage, "Old Customhouse"},
		{"special character", Record{"SCA_NAME": "Isthmus A"}, TypeSpecialCharacter, "Isthmus A"},
		{"museum viewshaft", Record{"VIEWSHAFT": "Museum viewshaft area"}, TypeMuseumViewshaft, "Museum viewshaft area"},
		{"stockade viewshaft", Record{"VIEWSHAFT": "Stockade Hill E10"}, TypeStockadeViewshaft, "Stockade Hill E10"},
		{"liquefaction", Record{"LIQ_SUSCEPT": "High"}, TypeLiquefaction, "High"},
		{"flood", Record{"FLOODPLAIN": "1 percent AEP"}, TypeFlood, "1 percent AEP"},
		{"geotech", Record{"GEO_HAZARD": "Class 3"}, TypeGeotechnical, "Class 3"},
		{"notable tree", Record{"TREE_NAME": "Pohutukawa"}, TypeNotableTrees, "Pohutukawa"},
		{"aircraft noise", Record{"ANEF": "ANEF 30"}, TypeAircraftNoise, "ANEF 30"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Classify(tt.record)
			require.True(t, ok)
			assert.Equal(t, tt.want, got.Type)
			assert.Equal(t, tt.label, got.ExtractedLabel)
		})
	}
}

func TestClassify_NoMatch(t *testing.T) {
	for _, record := range []Record{
		{},
		{"SHAPE_AREA": 120.5},
		{"VIEWSHAFT": "Mount Victoria"}, // viewshaft field, unknown landmark
	} {
		_, ok := Classify(record)
		assert.False(t, ok, "%v", record)
	}
}

func TestClassify_IsPure(t *testing.T) {
	record := Record{"HERITAGE_NAME": "Ponsonby House", "SHAPE_AREA": 12.0}
	first, ok1 := Classify(record)
	second, ok2 := Classify(record)
	assert.Equal(t, ok1, ok2)
	assert.Equal(t, first, second)
}

func TestClassify_PriorityOrderFirstMatchWins(t *testing.T) {
	// A record carrying both heritage and flood attributes classifies as
	// heritage: the rule table is priority ordered.
	record := Record{"FLOOD_ZONE": "yes", "HERITAGE_NAME": "Villa"}
	got, ok := Classify(record)
	require.True(t, ok)
	assert.Equal(t, TypeHeritage, got.Type)
}

func TestClassify_NonStringValues(t *testing.T) {
	got, ok := Classify(Record{"NOTABLE_TREE": 42})
	require.True(t, ok)
	assert.Equal(t, TypeNotableTrees, got.Type)
	assert.Equal(t, "42", got.ExtractedLabel)
}

func TestTypeCatalog_AllTypesHaveDocumentsAndTiers(t *testing.T) {
	all := AllTypes()
	require.Len(t, all, 9)
	for _, info := range all {
		assert.NotEmpty(t, info.Label, string(info.Type))
		assert.NotEmpty(t, info.DocumentURL, string(info.Type))
		assert.GreaterOrEqual(t, int(info.Priority), int(PriorityLow), string(info.Type))
		assert.LessOrEqual(t, int(info.Priority), int(PriorityHigh), string(info.Type))
	}
}

func TestTypeLookup(t *testing.T) {
	info, ok := TypeLookup(TypeHeritage)
	require.True(t, ok)
	assert.Equal(t, PriorityHigh, info.Priority)

	_, ok = TypeLookup(Type("volcanic"))
	assert.False(t, ok)
}
