package overlay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func classified(t Type, label string) Classified {
	info, ok := TypeLookup(t)
	if !ok {
		panic("unknown overlay type in test: " + string(t))
	}
	return Classified{Info: Info{TypeInfo: info, ExtractedLabel: label}}
}

func TestOrderByPrecedence_StableSort(t *testing.T) {
	// [A(low), B(high), C(low)] must become [B, A, C]: B moves to the
	// front while A and C retain their relative order.
	a := classified(TypeNotableTrees, "A")
	b := classified(TypeHeritage, "B")
	c := classified(TypeGeotechnical, "C")

	got := OrderByPrecedence([]Classified{a, b, c})

	require.Len(t, got, 3)
	assert.Equal(t, "B", got[0].Info.ExtractedLabel)
	assert.Equal(t, "A", got[1].Info.ExtractedLabel)
	assert.Equal(t, "C", got[2].Info.ExtractedLabel)
}

func TestOrderByPrecedence_DoesNotMutateInput(t *testing.T) {
	in := []Classified{
		classified(TypeFlood, "flood"),
		classified(TypeMuseumViewshaft, "viewshaft"),
	}
	_ = OrderByPrecedence(in)
	assert.Equal(t, "flood", in[0].Info.ExtractedLabel)
}

func TestOrderByPrecedence_TierOrdering(t *testing.T) {
	in := []Classified{
		classified(TypeAircraftNoise, "low"),
		classified(TypeSpecialCharacter, "medium"),
		classified(TypeStockadeViewshaft, "high"),
	}
	got := OrderByPrecedence(in)
	assert.Equal(t, PriorityHigh, got[0].Info.Priority)
	assert.Equal(t, PriorityMedium, got[1].Info.Priority)
	assert.Equal(t, PriorityLow, got[2].Info.Priority)
}

func TestOrderByPrecedence_Empty(t *testing.T) {
	assert.Empty(t, OrderByPrecedence(nil))
}
