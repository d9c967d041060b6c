package provision

import (
	"strings"

	"github.com/BearBump/ScanBox/internal/matcher"
	"github.com/BearBump/ScanBox/internal/models"
	"github.com/BearBump/ScanBox/internal/navigation"
	"github.com/BearBump/ScanBox/internal/payload"
)

// Route решает, куда вести несвязанный с тегом payload: на карточку найденной
// записи или на форму создания с предзаполнением. Чистая функция, без I/O.
func Route(p payload.TagPayload, matched *matcher.Candidate) navigation.Target {
	if matched != nil {
		return navigation.DetailView(p.Kind, matched.ID)
	}
	return navigation.CreationForm(p.Kind, Prefill(p))
}

// Prefill maps populated payload fields 1:1 onto the creation form, with two
// exceptions: a numeric parent/location id wins over the name, and for
// locations category/notes are folded into description as labelled lines.
func Prefill(p payload.TagPayload) map[string]any {
	out := map[string]any{}

	putString(out, "name", p.Name)
	putString(out, "code", p.Code)
	putString(out, "unit", p.Unit)
	putString(out, "tags", p.Tags)

	switch p.Kind {
	case models.KindLocation:
		putString(out, "description", foldDescription(p.Description, p.Category, p.Notes))
		if p.ParentID != nil {
			out["parentId"] = *p.ParentID
		} else {
			putString(out, "parentName", p.ParentName)
		}
		putInt(out, "maxItems", p.MaxItems)
		putInt(out, "maxWeight", p.MaxWeight)
		putString(out, "weightUnit", p.WeightUnit)
		putString(out, "allowedCategories", p.AllowedCategories)
	case models.KindItem:
		putString(out, "description", p.Description)
		putString(out, "category", p.Category)
		putString(out, "notes", p.Notes)
		putString(out, "sku", p.SKU)
		putInt(out, "quantity", p.Quantity)
		putInt(out, "minQuantity", p.MinQuantity)
		if p.LocationID != nil {
			out["locationId"] = *p.LocationID
		} else {
			putString(out, "locationName", p.LocationName)
		}
		if p.ManageInventory != nil {
			out["manageInventory"] = *p.ManageInventory
		}
	}

	return out
}

// foldDescription: у локаций нет отдельных полей category/notes на форме,
// поэтому добавляем их строками после исходного описания.
func foldDescription(description, category, notes string) string {
	lines := make([]string, 0, 3)
	if description != "" {
		lines = append(lines, description)
	}
	if category != "" {
		lines = append(lines, "Type: "+category)
	}
	if notes != "" {
		lines = append(lines, "Notes: "+notes)
	}
	return strings.Join(lines, "\n")
}

func putString(m map[string]any, key, v string) {
	if v != "" {
		m[key] = v
	}
}

func putInt(m map[string]any, key string, v *int64) {
	if v != nil {
		m[key] = *v
	}
}
