package matcher

import (
	"testing"

	"github.com/BearBump/ScanBox/internal/models"
	"github.com/BearBump/ScanBox/internal/payload"
	"github.com/stretchr/testify/require"
)

func TestMatch_itemSKUBeatsName(t *testing.T) {
	candidates := []Candidate{
		{ID: 1, Name: "Hammer", SKU: "TL-9"},
		{ID: 2, Name: "Wrench", SKU: "TL-1"},
	}
	// payload именем попадает в №1, а SKU — в №2; побеждает SKU
	p := payload.TagPayload{Kind: models.KindItem, Name: "Hammer", SKU: "tl-1"}

	got, ok := Match(p, candidates)
	require.True(t, ok)
	require.EqualValues(t, 2, got.ID)
}

func TestMatch_itemNameFallback(t *testing.T) {
	candidates := []Candidate{{ID: 5, Name: "Drill", SKU: "TL-3"}}

	p := payload.TagPayload{Kind: models.KindItem, SKU: "NOPE", Name: "  drill "}
	got, ok := Match(p, candidates)
	require.True(t, ok)
	require.EqualValues(t, 5, got.ID)

	// ни SKU, ни имени — нет совпадения
	_, ok = Match(payload.TagPayload{Kind: models.KindItem}, candidates)
	require.False(t, ok)
}

func TestMatch_locationExactNameOnly(t *testing.T) {
	candidates := []Candidate{
		{ID: 10, Name: "Garage Shelf"},
		{ID: 11, Name: "Garage"},
	}

	got, ok := Match(payload.TagPayload{Kind: models.KindLocation, Name: "GARAGE "}, candidates)
	require.True(t, ok)
	require.EqualValues(t, 11, got.ID)

	// частичное совпадение не считается
	_, ok = Match(payload.TagPayload{Kind: models.KindLocation, Name: "Gara"}, candidates)
	require.False(t, ok)
}

func TestMatch_firstInOrderWins(t *testing.T) {
	candidates := []Candidate{
		{ID: 1, Name: "Bin"},
		{ID: 2, Name: "bin"},
	}
	got, ok := Match(payload.TagPayload{Kind: models.KindLocation, Name: "BIN"}, candidates)
	require.True(t, ok)
	require.EqualValues(t, 1, got.ID)
}

func TestMatch_deterministic(t *testing.T) {
	candidates := []Candidate{
		{ID: 1, Name: "A", SKU: "S1"},
		{ID: 2, Name: "B", SKU: "S2"},
	}
	p := payload.TagPayload{Kind: models.KindItem, SKU: "S2", Name: "A"}

	a, okA := Match(p, candidates)
	b, okB := Match(p, candidates)
	require.Equal(t, okA, okB)
	require.Equal(t, a, b)
}

func TestFindByName(t *testing.T) {
	candidates := []Candidate{{ID: 7, Name: "Back Shelf"}}

	id, ok := FindByName(candidates, " back shelf ")
	require.True(t, ok)
	require.EqualValues(t, 7, id)

	_, ok = FindByName(candidates, "Front Shelf")
	require.False(t, ok)

	_, ok = FindByName(candidates, "")
	require.False(t, ok)
}
