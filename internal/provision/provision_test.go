package provision

import (
	"testing"

	"github.com/BearBump/ScanBox/internal/matcher"
	"github.com/BearBump/ScanBox/internal/models"
	"github.com/BearBump/ScanBox/internal/navigation"
	"github.com/BearBump/ScanBox/internal/payload"
	"github.com/stretchr/testify/require"
)

func int64p(v int64) *int64 { return &v }

func TestRoute_matchedGoesToDetail(t *testing.T) {
	p := payload.TagPayload{Kind: models.KindItem, SKU: "ABC-1"}
	got := Route(p, &matcher.Candidate{ID: 42, Name: "Hammer", SKU: "ABC-1"})

	require.Equal(t, navigation.TargetDetail, got.Type)
	require.Equal(t, models.KindItem, got.Kind)
	require.EqualValues(t, 42, got.EntityID)
	require.Nil(t, got.Prefill)
}

func TestRoute_unmatchedItemPrefill(t *testing.T) {
	p := payload.TagPayload{Kind: models.KindItem, SKU: "ABC-1", Quantity: int64p(5)}
	got := Route(p, nil)

	require.Equal(t, navigation.TargetCreate, got.Type)
	require.Equal(t, models.KindItem, got.Kind)
	require.Equal(t, map[string]any{"sku": "ABC-1", "quantity": int64(5)}, got.Prefill)
}

func TestPrefill_locationFoldsCategoryAndNotes(t *testing.T) {
	p := payload.TagPayload{
		Kind:        models.KindLocation,
		Description: "Back shelf",
		Category:    "Tools",
		Notes:       "fragile",
	}
	got := Prefill(p)
	require.Equal(t, "Back shelf\nType: Tools\nNotes: fragile", got["description"])
	require.NotContains(t, got, "category")
	require.NotContains(t, got, "notes")
}

func TestPrefill_locationFoldsWithoutDescription(t *testing.T) {
	got := Prefill(payload.TagPayload{Kind: models.KindLocation, Notes: "keep dry"})
	require.Equal(t, "Notes: keep dry", got["description"])

	got = Prefill(payload.TagPayload{Kind: models.KindLocation, Category: "Bins"})
	require.Equal(t, "Type: Bins", got["description"])

	// без category/notes description не появляется вовсе
	got = Prefill(payload.TagPayload{Kind: models.KindLocation, Name: "Bin 1"})
	require.NotContains(t, got, "description")
}

func TestPrefill_itemKeepsCategoryAndNotesDiscrete(t *testing.T) {
	p := payload.TagPayload{
		Kind:        models.KindItem,
		Description: "old stock",
		Category:    "Tools",
		Notes:       "check battery",
	}
	got := Prefill(p)
	require.Equal(t, "old stock", got["description"])
	require.Equal(t, "Tools", got["category"])
	require.Equal(t, "check battery", got["notes"])
}

func TestPrefill_numericIDWinsOverName(t *testing.T) {
	p := payload.TagPayload{Kind: models.KindLocation, ParentID: int64p(3), ParentName: "Garage"}
	got := Prefill(p)
	require.Equal(t, int64(3), got["parentId"])
	require.NotContains(t, got, "parentName")

	p = payload.TagPayload{Kind: models.KindItem, LocationID: int64p(9), LocationName: "Garage"}
	got = Prefill(p)
	require.Equal(t, int64(9), got["locationId"])
	require.NotContains(t, got, "locationName")
}

func TestPrefill_nameForwardedWhenIDAbsent(t *testing.T) {
	p := payload.TagPayload{Kind: models.KindItem, LocationName: "Garage"}
	got := Prefill(p)
	require.Equal(t, "Garage", got["locationName"])
}

func TestPrefill_boolForwarded(t *testing.T) {
	v := true
	got := Prefill(payload.TagPayload{Kind: models.KindItem, ManageInventory: &v})
	require.Equal(t, true, got["manageInventory"])

	got = Prefill(payload.TagPayload{Kind: models.KindItem})
	require.NotContains(t, got, "manageInventory")
}
