package auditwriter

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/BearBump/ScanBox/internal/broker/messages"
	"github.com/BearBump/ScanBox/internal/models"
	"github.com/pkg/errors"
)

type Repository interface {
	InsertScanRecord(ctx context.Context, in models.ScanRecordInput) error
}

// Writer превращает события scan.recorded в строки scan_records.
// Ошибка обработчика не коммитит сообщение — аудит не теряем.
type Writer struct {
	repo Repository

	startedAtUnixNano int64
	totalConsumed     atomic.Int64
	totalWritten      atomic.Int64
	totalErrors       atomic.Int64
	lastErrorMu       sync.Mutex
	lastError         string
}

func New(repo Repository) *Writer {
	return &Writer{
		repo:              repo,
		startedAtUnixNano: time.Now().UTC().UnixNano(),
	}
}

func (w *Writer) Handle(ctx context.Context, key, value []byte) error {
	w.totalConsumed.Add(1)

	var msg messages.ScanRecorded
	if err := json.Unmarshal(value, &msg); err != nil {
		// Битое сообщение ретраить бессмысленно: логируем и пропускаем.
		w.noteError(err)
		slog.Error("decode scan.recorded", "key", string(key), "error", err.Error())
		return nil
	}
	if msg.TagID == 0 {
		w.noteError(errors.New("tag_id is required"))
		slog.Error("scan.recorded without tag_id", "key", string(key))
		return nil
	}
	if msg.ScannedAt.IsZero() {
		msg.ScannedAt = time.Now().UTC()
	}

	err := w.repo.InsertScanRecord(ctx, models.ScanRecordInput{
		TagID:       msg.TagID,
		UserID:      msg.UserID,
		ScannedAt:   msg.ScannedAt,
		DeviceClass: msg.DeviceClass,
		Action:      msg.Action,
		Metadata:    msg.Metadata,
	})
	if err != nil {
		w.noteError(err)
		return errors.Wrap(err, "insert scan record")
	}

	w.totalWritten.Add(1)
	return nil
}

type Stats struct {
	StartedAt     time.Time `json:"startedAt"`
	TotalConsumed int64     `json:"totalConsumed"`
	TotalWritten  int64     `json:"totalWritten"`
	TotalErrors   int64     `json:"totalErrors"`
	LastError     string    `json:"lastError,omitempty"`
}

func (w *Writer) Stats() Stats {
	st := Stats{
		StartedAt:     time.Unix(0, w.startedAtUnixNano).UTC(),
		TotalConsumed: w.totalConsumed.Load(),
		TotalWritten:  w.totalWritten.Load(),
		TotalErrors:   w.totalErrors.Load(),
	}
	w.lastErrorMu.Lock()
	st.LastError = w.lastError
	w.lastErrorMu.Unlock()
	return st
}

func (w *Writer) noteError(err error) {
	w.totalErrors.Add(1)
	w.lastErrorMu.Lock()
	w.lastError = err.Error()
	w.lastErrorMu.Unlock()
}
