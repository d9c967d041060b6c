package pgscan

import (
	"context"

	"github.com/BearBump/ScanBox/internal/models"
	"github.com/pkg/errors"
)

func (s *Storage) ListLocations(ctx context.Context) ([]*models.Location, error) {
	rows, err := s.db.Query(ctx, `
SELECT
  id, name, code, description, category,
  parent_id, max_items, max_weight, weight_unit, allowed_categories,
  created_at, updated_at
FROM locations
ORDER BY id
`)
	if err != nil {
		return nil, errors.Wrap(err, "select locations")
	}
	defer rows.Close()

	var out []*models.Location
	for rows.Next() {
		var l models.Location
		if err := rows.Scan(
			&l.ID, &l.Name, &l.Code, &l.Description, &l.Category,
			&l.ParentID, &l.MaxItems, &l.MaxWeight, &l.WeightUnit, &l.AllowedCategories,
			&l.CreatedAt, &l.UpdatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "scan location")
		}
		out = append(out, &l)
	}
	if rows.Err() != nil {
		return nil, errors.Wrap(rows.Err(), "rows")
	}
	return out, nil
}

func (s *Storage) ListItems(ctx context.Context) ([]*models.Item, error) {
	rows, err := s.db.Query(ctx, `
SELECT
  id, name, sku, description, category, unit,
  quantity, min_quantity, location_id, manage_inventory,
  created_at, updated_at
FROM items
ORDER BY id
`)
	if err != nil {
		return nil, errors.Wrap(err, "select items")
	}
	defer rows.Close()

	var out []*models.Item
	for rows.Next() {
		var it models.Item
		if err := rows.Scan(
			&it.ID, &it.Name, &it.SKU, &it.Description, &it.Category, &it.Unit,
			&it.Quantity, &it.MinQuantity, &it.LocationID, &it.ManageInventory,
			&it.CreatedAt, &it.UpdatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "scan item")
		}
		out = append(out, &it)
	}
	if rows.Err() != nil {
		return nil, errors.Wrap(rows.Err(), "rows")
	}
	return out, nil
}
