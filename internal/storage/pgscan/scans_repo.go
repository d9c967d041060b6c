package pgscan

import (
	"context"
	"encoding/json"

	"github.com/BearBump/ScanBox/internal/models"
	"github.com/pkg/errors"
)

func (s *Storage) InsertScanRecord(ctx context.Context, in models.ScanRecordInput) error {
	var metadata any
	if len(in.Metadata) > 0 {
		metadata = in.Metadata
	}

	_, err := s.db.Exec(ctx, `
INSERT INTO scan_records (tag_id, user_id, scanned_at, device_class, action, metadata, created_at)
VALUES ($1,$2,$3,$4,$5,$6, now())
`, in.TagID, in.UserID, in.ScannedAt.UTC(), in.DeviceClass, in.Action, metadata)
	return errors.Wrap(err, "insert scan record")
}

func (s *Storage) ListScanRecords(ctx context.Context, tagID uint64, limit, offset int) ([]*models.ScanRecord, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := s.db.Query(ctx, `
SELECT id, tag_id, user_id, scanned_at, device_class, action, metadata, created_at
FROM scan_records
WHERE tag_id = $1
ORDER BY scanned_at DESC
LIMIT $2 OFFSET $3
`, tagID, limit, offset)
	if err != nil {
		return nil, errors.Wrap(err, "select scan records")
	}
	defer rows.Close()

	var out []*models.ScanRecord
	for rows.Next() {
		var r models.ScanRecord
		var metadata any
		if err := rows.Scan(
			&r.ID, &r.TagID, &r.UserID, &r.ScannedAt, &r.DeviceClass, &r.Action, &metadata, &r.CreatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "scan record")
		}

		if metadata != nil {
			b, _ := json.Marshal(metadata)
			m := map[string]string{}
			if json.Unmarshal(b, &m) == nil {
				r.Metadata = m
			}
		}

		out = append(out, &r)
	}
	if rows.Err() != nil {
		return nil, errors.Wrap(rows.Err(), "rows")
	}
	return out, nil
}
