package payload

import (
	"strconv"
	"strings"

	"github.com/BearBump/ScanBox/internal/models"
	"github.com/pkg/errors"
)

// ErrUnknownKind возвращается, когда в сырых параметрах нет валидного type.
var ErrUnknownKind = errors.New("missing or unrecognized kind")

// TagPayload — каноничная форма query-строки отсканированного QR/тега.
// Живёт один запрос и никуда не сохраняется.
type TagPayload struct {
	Kind models.Kind

	Name        string
	Code        string
	Description string
	Category    string
	Unit        string
	Tags        string
	Notes       string

	// location-only
	ParentID          *int64
	ParentName        string
	MaxItems          *int64
	MaxWeight         *int64
	WeightUnit        string
	AllowedCategories string

	// item-only
	SKU             string
	Quantity        *int64
	MinQuantity     *int64
	LocationID      *int64
	LocationName    string
	ManageInventory *bool
}

// Normalize parses a raw URL-decoded query map into a TagPayload.
//
// Keys are matched case-insensitively against the alias table; for each field
// the first present key wins (primary name first). Integer fields use base-10
// coercion and a present-but-non-numeric value drops the single field instead
// of failing the scan. Fields belonging to the other kind are ignored.
func Normalize(raw map[string]string) (TagPayload, error) {
	folded := make(map[string]string, len(raw))
	for k, v := range raw {
		folded[strings.ToLower(k)] = v
	}

	var p TagPayload
	switch strings.ToLower(folded["type"]) {
	case "location":
		p.Kind = models.KindLocation
	case "item":
		p.Kind = models.KindItem
	default:
		return TagPayload{}, ErrUnknownKind
	}

	for _, f := range fields {
		if f.only != "" && f.only != p.Kind {
			continue
		}
		v, ok := lookup(folded, f.keys)
		if !ok {
			continue
		}
		switch f.typ {
		case fieldString:
			f.setString(&p, v)
		case fieldInt:
			n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
			if err != nil {
				continue // graceful degradation of a single field
			}
			f.setInt(&p, n)
		case fieldBool:
			f.setBool(&p, v == "true" || v == "1")
		}
	}

	return p, nil
}

func lookup(m map[string]string, keys []string) (string, bool) {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			return v, true
		}
	}
	return "", false
}
