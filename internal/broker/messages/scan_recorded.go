package messages

import "time"

// ScanRecorded — аудит-событие одной резолюции зарегистрированного тега.
// scan-api публикует его fire-and-forget, scan-worker пишет в Postgres.
type ScanRecorded struct {
	TagID uint64 `json:"tag_id"`

	UserID *uint64 `json:"user_id,omitempty"`

	ScannedAt   time.Time `json:"scanned_at"`
	DeviceClass string    `json:"device_class"`

	Action   *string           `json:"action,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}
