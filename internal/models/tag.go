package models

import "time"

// Вид сущности, на которую указывает тег или payload.
type Kind string

const (
	KindLocation Kind = "location"
	KindItem     Kind = "item"
	KindAction   Kind = "action"
)

type TagStatus string

const (
	TagStatusActive   TagStatus = "active"
	TagStatusDisabled TagStatus = "disabled"
	TagStatusLost     TagStatus = "lost"
)

// Tag is a registered physical NFC/QR identifier. Owned by admin tooling;
// the resolution engine only reads it.
type Tag struct {
	ID             uint64
	UID            string
	Kind           Kind
	LinkedEntityID *uint64
	Status         TagStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ScanRecord is one append-only audit entry per resolution of a registered tag.
type ScanRecord struct {
	ID          uint64
	TagID       uint64
	UserID      *uint64
	ScannedAt   time.Time
	DeviceClass string
	Action      *string
	Metadata    map[string]string
	CreatedAt   time.Time
}

type ScanRecordInput struct {
	TagID       uint64
	UserID      *uint64
	ScannedAt   time.Time
	DeviceClass string
	Action      *string
	Metadata    map[string]string
}

type TagRegisterInput struct {
	UID            string
	Kind           Kind
	LinkedEntityID *uint64
}
