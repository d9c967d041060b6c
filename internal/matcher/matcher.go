package matcher

import (
	"strings"

	"github.com/BearBump/ScanBox/internal/models"
	"github.com/BearBump/ScanBox/internal/payload"
)

// Candidate — существующая запись из хранилища, проверяемая на совпадение.
// SKU заполнен только для item-кандидатов.
type Candidate struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
	SKU  string `json:"sku,omitempty"`
}

// Match finds an existing record for the payload.
//
// Items: SKU first (folded exact match); if the SKU is absent or unmatched,
// fall back to the name. Locations: exact folded name only — deliberately no
// fuzzy matching, a wrong physical location is worse than no match. Within a
// key the first candidate in original order wins; callers must not assume the
// input is de-duplicated.
func Match(p payload.TagPayload, candidates []Candidate) (Candidate, bool) {
	switch p.Kind {
	case models.KindItem:
		if sku := fold(p.SKU); sku != "" {
			for _, c := range candidates {
				if fold(c.SKU) == sku {
					return c, true
				}
			}
		}
		return byName(p.Name, candidates)
	case models.KindLocation:
		return byName(p.Name, candidates)
	}
	return Candidate{}, false
}

// FindByName resolves a human-readable parent/location reference to an id,
// using the same equality as Match.
func FindByName(candidates []Candidate, name string) (uint64, bool) {
	if c, ok := byName(name, candidates); ok {
		return c.ID, true
	}
	return 0, false
}

func byName(name string, candidates []Candidate) (Candidate, bool) {
	folded := fold(name)
	if folded == "" {
		return Candidate{}, false
	}
	for _, c := range candidates {
		if fold(c.Name) == folded {
			return c, true
		}
	}
	return Candidate{}, false
}

func fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
