package rules

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleChapter = `H3. Residential - Single House Zone

H3.4.1. Activity table
Activities in this zone are subject to the standards below.

Development standards
H3.6.4. Building height
Buildings must not exceed 8 metres in height, except for chimneys.
Height in relation to boundary applies a 2.5 metres plus 45 degrees envelope.

H3.6.7. Yards
A front yard of 3 metres and side yards of 1 metre must be provided.
Garages facing the street must be set back 5 metres from the road boundary.

H3.6.9. Building coverage
The maximum building coverage must not exceed 35 per cent of net site area.
Maximum impervious area is 60 per cent of the site area for drainage purposes.

Notification
An application for resource consent will be subject to normal notification tests.
Construction of a new dwelling that meets all standards is a permitted activity.`

func TestExtract_CategoriesPopulated(t *testing.T) {
	e := NewExtractor(10, 20, nil)

	got := e.Extract(sampleChapter, "garage", "H3")

	require.NotEmpty(t, got.HeightLimits)
	assert.Contains(t, got.HeightLimits[0], "8 metres")

	require.NotEmpty(t, got.Setbacks)
	joined := strings.Join(got.Setbacks, " ")
	assert.Contains(t, joined, "yard")

	require.NotEmpty(t, got.Coverage)
	assert.Contains(t, strings.Join(got.Coverage, " "), "per cent")

	require.NotEmpty(t, got.ConsentRequirements)
	assert.Contains(t, strings.Join(got.ConsentRequirements, " "), "consent")

	require.NotEmpty(t, got.ProjectSpecific)
	assert.Contains(t, strings.ToLower(strings.Join(got.ProjectSpecific, " ")), "garage")
}

func TestExtract_EmptyText(t *testing.T) {
	e := NewExtractor(10, 20, nil)
	assert.True(t, e.Extract("", "garage", "H3").IsEmpty())
	assert.True(t, e.Extract("   \n\t  ", "garage", "H3").IsEmpty())
}

func TestExtract_ShortSentencesFiltered(t *testing.T) {
	// Table-of-contents style lines under the length floor must not appear.
	e := NewExtractor(10, 20, nil)
	got := e.Extract("Height limit.\nYards.\nCoverage.", "garage", "H3")
	assert.True(t, got.IsEmpty())
}

func TestExtract_CapPerCategory(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 30; i++ {
		b.WriteString("Buildings must not exceed ")
		b.WriteString(strings.Repeat("x", i+1))
		b.WriteString(" metres in height above ground level. ")
	}
	e := NewExtractor(10, 20, nil)
	got := e.Extract(b.String(), "garage", "H3")
	assert.Len(t, got.HeightLimits, 10)
}

func TestExtract_DeduplicatesSentences(t *testing.T) {
	text := "Buildings must not exceed 8 metres in height. " +
		"Buildings must not exceed 8 metres in height. " +
		"Buildings must not exceed 8 metres in height."
	e := NewExtractor(10, 20, nil)
	got := e.Extract(text, "garage", "H3")
	assert.Len(t, got.HeightLimits, 1)
}

func TestExtract_UnknownProjectTypeUsesGenericTerms(t *testing.T) {
	text := "Any new structure on the site requires assessment against the development standards."
	e := NewExtractor(10, 20, nil)
	got := e.Extract(text, "helipad", "H3")
	assert.NotEmpty(t, got.ProjectSpecific)
}

func TestExtract_SameInputSameOutput(t *testing.T) {
	e := NewExtractor(10, 20, nil)
	first := e.Extract(sampleChapter, "deck", "H3")
	second := e.Extract(sampleChapter, "deck", "H3")
	assert.Equal(t, first, second)
}

func TestSplitSections(t *testing.T) {
	sections := splitSections(sampleChapter)
	require.Greater(t, len(sections), 3)
	// Section-number headings start their own section.
	var found bool
	for _, s := range sections {
		if strings.HasPrefix(s, "H3.6.4.") {
			found = true
		}
	}
	assert.True(t, found)
}

func TestTermsForProject(t *testing.T) {
	assert.Contains(t, termsForProject("garage"), "garage")
	assert.Equal(t, genericProjectTerms, termsForProject("something-else"))
}

func TestKnownProjectTypes(t *testing.T) {
	types := KnownProjectTypes()
	assert.Contains(t, types, "garage")
	assert.Contains(t, types, "subdivision")
	assert.Len(t, types, 10)
}
