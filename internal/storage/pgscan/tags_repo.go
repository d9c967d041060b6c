package pgscan

import (
	"context"
	"time"

	"github.com/BearBump/ScanBox/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

func (s *Storage) GetTagByUID(ctx context.Context, uid string) (*models.Tag, error) {
	var t models.Tag
	var linked *uint64
	err := s.db.QueryRow(ctx, `
SELECT id, uid, kind, linked_entity_id, status, created_at, updated_at
FROM tags
WHERE uid = $1
`, uid).Scan(&t.ID, &t.UID, &t.Kind, &linked, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	if err == pgx.ErrNoRows {
		// "не найдено" — валидный исход, не ошибка
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "select tag")
	}
	t.LinkedEntityID = linked
	return &t, nil
}

// RegisterTag регистрирует UID; повторная регистрация того же UID
// возвращает существующий тег, не меняя его.
func (s *Storage) RegisterTag(ctx context.Context, in models.TagRegisterInput) (*models.Tag, error) {
	now := time.Now().UTC()

	var id uint64
	err := s.db.QueryRow(ctx, `
INSERT INTO tags (uid, kind, linked_entity_id, status, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$5)
ON CONFLICT (uid)
DO UPDATE SET updated_at = tags.updated_at
RETURNING id
`, in.UID, in.Kind, in.LinkedEntityID, models.TagStatusActive, now).Scan(&id)
	if err != nil {
		return nil, errors.Wrap(err, "insert tag")
	}

	return s.GetTagByUID(ctx, in.UID)
}
