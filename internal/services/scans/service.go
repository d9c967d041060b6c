package scans

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/BearBump/ScanBox/internal/broker/messages"
	"github.com/BearBump/ScanBox/internal/cache"
	"github.com/BearBump/ScanBox/internal/matcher"
	"github.com/BearBump/ScanBox/internal/models"
	"github.com/BearBump/ScanBox/internal/navigation"
	"github.com/BearBump/ScanBox/internal/payload"
	"github.com/BearBump/ScanBox/internal/provision"
	"github.com/pkg/errors"
)

const CapabilityRegisterTags = "tags:register"

var ErrPermissionDenied = errors.New("permission denied")

type Repository interface {
	GetTagByUID(ctx context.Context, uid string) (*models.Tag, error)
	RegisterTag(ctx context.Context, in models.TagRegisterInput) (*models.Tag, error)
	ListLocations(ctx context.Context) ([]*models.Location, error)
	ListItems(ctx context.Context) ([]*models.Item, error)
	ListScanRecords(ctx context.Context, tagID uint64, limit, offset int) ([]*models.ScanRecord, error)
}

type Producer interface {
	Publish(ctx context.Context, topic string, key, value []byte) error
}

type PermissionCheck interface {
	Has(capability string) bool
}

// Терминальное состояние одной резолюции. Loading не представляем —
// резолюция либо в полёте, либо в одном из этих состояний.
type State string

const (
	StateResolved State = "resolved"
	StateUnknown  State = "unknown"
	StateDisabled State = "disabled"
	StateError    State = "error"
)

type ScanRequest struct {
	UID       string
	UserAgent string
	UserID    *uint64
}

type Outcome struct {
	State  State             `json:"state"`
	Target navigation.Target `json:"target"`
}

type Service struct {
	repo     Repository
	cache    cache.BytesCache
	producer Producer
	perms    PermissionCheck

	topic         string
	candidatesTTL time.Duration
}

func New(repo Repository, c cache.BytesCache, producer Producer, perms PermissionCheck, topic string, candidatesTTL time.Duration) *Service {
	return &Service{
		repo:          repo,
		cache:         c,
		producer:      producer,
		perms:         perms,
		topic:         topic,
		candidatesTTL: candidatesTTL,
	}
}

// Resolve classifies a scanned tag UID into a terminal outcome. Every
// resolution that reaches a registered tag emits exactly one audit event,
// including disabled/lost tags; an unregistered UID emits none. The audit
// publish is fire-and-forget and never blocks or changes the outcome.
func (s *Service) Resolve(ctx context.Context, req ScanRequest) Outcome {
	if strings.TrimSpace(req.UID) == "" {
		return errorOutcome("no tag uid supplied")
	}

	tag, err := s.repo.GetTagByUID(ctx, req.UID)
	if err != nil {
		slog.Error("tag lookup", "uid", req.UID, "error", err.Error())
		return errorOutcome("tag lookup failed")
	}
	if tag == nil {
		t := navigation.Advisory(navigation.AdvisoryUnknown, "tag is not registered")
		t.UID = req.UID
		t.CanRegister = s.perms != nil && s.perms.Has(CapabilityRegisterTags)
		return Outcome{State: StateUnknown, Target: t}
	}

	s.emitAudit(tag, ClassifyDevice(req.UserAgent), req.UserID)

	if tag.Status != models.TagStatusActive {
		return Outcome{
			State:  StateDisabled,
			Target: navigation.Advisory(navigation.AdvisoryDisabled, fmt.Sprintf("tag %s is %s", tag.UID, tag.Status)),
		}
	}

	switch tag.Kind {
	case models.KindLocation, models.KindItem:
		if tag.LinkedEntityID == nil {
			// Активный тег без привязки — ошибка конфигурации, не прячем её.
			return errorOutcome(fmt.Sprintf("tag %s is active but not linked to a %s", tag.UID, tag.Kind))
		}
		return Outcome{State: StateResolved, Target: navigation.DetailView(tag.Kind, *tag.LinkedEntityID)}
	case models.KindAction:
		return Outcome{State: StateResolved, Target: navigation.WorkflowView(workflowFor(tag))}
	default:
		return errorOutcome("unknown tag kind")
	}
}

// Provision turns a raw QR query map into a navigation target: detail view of
// a matched record, or a creation form with a normalized prefill.
func (s *Service) Provision(ctx context.Context, raw map[string]string) navigation.Target {
	p, err := payload.Normalize(raw)
	if err != nil {
		return navigation.Advisory(navigation.AdvisoryError, err.Error())
	}

	candidates, err := s.candidates(ctx, p.Kind)
	if err != nil {
		slog.Error("list candidates", "kind", p.Kind, "error", err.Error())
		return navigation.Advisory(navigation.AdvisoryError, "record lookup failed")
	}

	if m, ok := matcher.Match(p, candidates); ok {
		return navigation.DetailView(p.Kind, m.ID)
	}

	s.resolveRefs(ctx, &p, candidates)
	return provision.Route(p, nil)
}

// resolveRefs переводит parentName/locationName в числовой id, если получится.
// Неразрешимое имя молча отбрасывается: лучше форма без родителя, чем тупик.
func (s *Service) resolveRefs(ctx context.Context, p *payload.TagPayload, candidates []matcher.Candidate) {
	switch p.Kind {
	case models.KindLocation:
		if p.ParentID != nil || p.ParentName == "" {
			return
		}
		if id, ok := matcher.FindByName(candidates, p.ParentName); ok {
			n := int64(id)
			p.ParentID = &n
		}
		p.ParentName = ""
	case models.KindItem:
		if p.LocationID != nil || p.LocationName == "" {
			return
		}
		locations, err := s.candidates(ctx, models.KindLocation)
		if err != nil {
			slog.Warn("resolve location name", "name", p.LocationName, "error", err.Error())
			p.LocationName = ""
			return
		}
		if id, ok := matcher.FindByName(locations, p.LocationName); ok {
			n := int64(id)
			p.LocationID = &n
		}
		p.LocationName = ""
	}
}

func (s *Service) RegisterTag(ctx context.Context, in models.TagRegisterInput) (*models.Tag, error) {
	if s.perms == nil || !s.perms.Has(CapabilityRegisterTags) {
		return nil, ErrPermissionDenied
	}
	if strings.TrimSpace(in.UID) == "" {
		return nil, errors.New("uid is required")
	}
	switch in.Kind {
	case models.KindLocation, models.KindItem, models.KindAction:
	default:
		return nil, errors.New("unknown tag kind")
	}
	return s.repo.RegisterTag(ctx, in)
}

func (s *Service) ListScanRecords(ctx context.Context, uid string, limit, offset int) ([]*models.ScanRecord, error) {
	tag, err := s.repo.GetTagByUID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if tag == nil {
		return []*models.ScanRecord{}, nil
	}
	return s.repo.ListScanRecords(ctx, tag.ID, limit, offset)
}

// candidates отдаёт кандидатов вида из кэша, при промахе — из БД.
// Кэш best-effort: его отсутствие не ломает резолюцию.
func (s *Service) candidates(ctx context.Context, kind models.Kind) ([]matcher.Candidate, error) {
	key := candidatesKey(kind)

	if s.cache != nil && s.candidatesTTL > 0 {
		if b, ok, err := s.cache.Get(ctx, key); err == nil && ok {
			var out []matcher.Candidate
			if json.Unmarshal(b, &out) == nil {
				return out, nil
			}
		}
	}

	var out []matcher.Candidate
	switch kind {
	case models.KindLocation:
		locations, err := s.repo.ListLocations(ctx)
		if err != nil {
			return nil, err
		}
		out = make([]matcher.Candidate, 0, len(locations))
		for _, l := range locations {
			out = append(out, matcher.Candidate{ID: l.ID, Name: l.Name})
		}
	case models.KindItem:
		items, err := s.repo.ListItems(ctx)
		if err != nil {
			return nil, err
		}
		out = make([]matcher.Candidate, 0, len(items))
		for _, it := range items {
			out = append(out, matcher.Candidate{ID: it.ID, Name: it.Name, SKU: it.SKU})
		}
	default:
		return nil, errors.Errorf("no candidates for kind %q", kind)
	}

	if s.cache != nil && s.candidatesTTL > 0 {
		b, _ := json.Marshal(out)
		_ = s.cache.Set(ctx, key, b, s.candidatesTTL)
	}
	return out, nil
}

func (s *Service) emitAudit(tag *models.Tag, deviceClass string, userID *uint64) {
	if s.producer == nil {
		return
	}

	msg := messages.ScanRecorded{
		TagID:       tag.ID,
		UserID:      userID,
		ScannedAt:   time.Now().UTC(),
		DeviceClass: deviceClass,
		Metadata: map[string]string{
			"uid":  tag.UID,
			"kind": string(tag.Kind),
		},
	}
	if tag.Kind == models.KindAction {
		w := workflowFor(tag)
		msg.Action = &w
	}

	b, err := json.Marshal(msg)
	if err != nil {
		slog.Error("marshal scan audit", "tag_id", tag.ID, "error", err.Error())
		return
	}
	key := []byte(strconv.FormatUint(tag.ID, 10))

	// Отвязываем от контекста запроса: навигация не ждёт Kafka.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.producer.Publish(ctx, s.topic, key, b); err != nil {
			slog.Error("scan audit publish", "tag_id", tag.ID, "error", err.Error())
		}
	}()
}

func workflowFor(tag *models.Tag) string {
	if tag.LinkedEntityID == nil {
		return "default"
	}
	return strconv.FormatUint(*tag.LinkedEntityID, 10)
}

func errorOutcome(message string) Outcome {
	return Outcome{State: StateError, Target: navigation.Advisory(navigation.AdvisoryError, message)}
}

func candidatesKey(kind models.Kind) string {
	return fmt.Sprintf("scan:candidates:%s", kind)
}
