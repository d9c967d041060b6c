package scan_api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/BearBump/ScanBox/internal/models"
	"github.com/BearBump/ScanBox/internal/services/scans"
	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
)

type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int64, window time.Duration) (bool, int64, error)
}

type ScanAPI struct {
	svc *scans.Service

	rl                RateLimiter
	scanRatePerMinute int64
}

func New(svc *scans.Service, rl RateLimiter, scanRatePerMinute int64) *ScanAPI {
	return &ScanAPI{svc: svc, rl: rl, scanRatePerMinute: scanRatePerMinute}
}

func (a *ScanAPI) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/scan/{uid}", a.handleScan)
	r.Get("/resolve", a.handleResolve)
	r.Post("/tags", a.handleRegisterTag)
	r.Get("/tags/{uid}/scans", a.handleListScans)
	return r
}

func (a *ScanAPI) handleScan(w http.ResponseWriter, r *http.Request) {
	if !a.allowScan(r) {
		writeError(w, http.StatusTooManyRequests, "too many scans, slow down")
		return
	}

	out := a.svc.Resolve(r.Context(), scans.ScanRequest{
		UID:       chi.URLParam(r, "uid"),
		UserAgent: r.UserAgent(),
		UserID:    userIDFrom(r),
	})
	writeJSON(w, http.StatusOK, out)
}

func (a *ScanAPI) handleResolve(w http.ResponseWriter, r *http.Request) {
	// плоская query-map: при повторе ключа берём первое значение
	raw := map[string]string{}
	for k, vs := range r.URL.Query() {
		if len(vs) > 0 {
			raw[k] = vs[0]
		}
	}

	target := a.svc.Provision(r.Context(), raw)
	writeJSON(w, http.StatusOK, target)
}

type registerTagRequest struct {
	UID            string  `json:"uid"`
	Kind           string  `json:"kind"`
	LinkedEntityID *uint64 `json:"linkedEntityId,omitempty"`
}

type tagResponse struct {
	ID             uint64  `json:"id"`
	UID            string  `json:"uid"`
	Kind           string  `json:"kind"`
	LinkedEntityID *uint64 `json:"linkedEntityId,omitempty"`
	Status         string  `json:"status"`
}

func (a *ScanAPI) handleRegisterTag(w http.ResponseWriter, r *http.Request) {
	var req registerTagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tag, err := a.svc.RegisterTag(r.Context(), models.TagRegisterInput{
		UID:            req.UID,
		Kind:           models.Kind(req.Kind),
		LinkedEntityID: req.LinkedEntityID,
	})
	if errors.Is(err, scans.ErrPermissionDenied) {
		writeError(w, http.StatusForbidden, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, tagResponse{
		ID:             tag.ID,
		UID:            tag.UID,
		Kind:           string(tag.Kind),
		LinkedEntityID: tag.LinkedEntityID,
		Status:         string(tag.Status),
	})
}

type scanRecordResponse struct {
	ID          uint64            `json:"id"`
	TagID       uint64            `json:"tagId"`
	UserID      *uint64           `json:"userId,omitempty"`
	ScannedAt   time.Time         `json:"scannedAt"`
	DeviceClass string            `json:"deviceClass"`
	Action      *string           `json:"action,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

func (a *ScanAPI) handleListScans(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	recs, err := a.svc.ListScanRecords(r.Context(), chi.URLParam(r, "uid"), limit, offset)
	if err != nil {
		slog.Error("list scan records", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "scan history lookup failed")
		return
	}

	out := make([]scanRecordResponse, 0, len(recs))
	for _, rec := range recs {
		out = append(out, scanRecordResponse{
			ID:          rec.ID,
			TagID:       rec.TagID,
			UserID:      rec.UserID,
			ScannedAt:   rec.ScannedAt,
			DeviceClass: rec.DeviceClass,
			Action:      rec.Action,
			Metadata:    rec.Metadata,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"scans": out})
}

// allowScan ограничивает частоту сканов на клиента.
// Redis недоступен — пропускаем: навигация важнее лимитов.
func (a *ScanAPI) allowScan(r *http.Request) bool {
	if a.rl == nil || a.scanRatePerMinute <= 0 {
		return true
	}
	key := fmt.Sprintf("rl:scan:%s:%s", clientIP(r), time.Now().UTC().Format("200601021504"))
	allowed, n, err := a.rl.Allow(r.Context(), key, a.scanRatePerMinute, 70*time.Second)
	if err != nil {
		slog.Warn("scan rate limit", "error", err.Error())
		return true
	}
	if !allowed {
		slog.Warn("scan rate limit exceeded", "client", clientIP(r), "count", n)
	}
	return allowed
}

func clientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func userIDFrom(r *http.Request) *uint64 {
	v := r.Header.Get("X-User-Id")
	if v == "" {
		return nil
	}
	id, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return nil
	}
	return &id
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
