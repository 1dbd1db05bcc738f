package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/spacesync-api/internal/models"
	appErrors "github.com/noah-isme/spacesync-api/pkg/errors"
)

type roomRepository interface {
	ListRooms(ctx context.Context) ([]models.Room, error)
	FindRoom(ctx context.Context, id string) (*models.Room, error)
	SetOverride(ctx context.Context, roomID string, status *models.RoomStatus, actingUser string) (*models.Room, *models.AuditLog, error)
	ListAuditLogs(ctx context.Context, page, size int) ([]models.AuditLog, int, error)
}

type scheduleLister interface {
	ListByRoom(ctx context.Context, roomID string) ([]models.ClassSchedule, error)
}

// SetOverrideRequest carries an administrator's override change. A nil
// status clears the override.
type SetOverrideRequest struct {
	Status *string `json:"status" validate:"omitempty,oneof=free occupied reserved"`
}

// RoomService coordinates the room registry, the audit trail and status
// resolution for the dashboard views.
type RoomService struct {
	repo      roomRepository
	schedules scheduleLister
	cache     *CacheService
	auditTTL  time.Duration
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewRoomService instantiates RoomService. A nil now falls back to time.Now;
// tests inject a fixed clock so resolution is deterministic.
func NewRoomService(repo roomRepository, schedules scheduleLister, cache *CacheService, auditTTL time.Duration, validate *validator.Validate, logger *zap.Logger, now func() time.Time) *RoomService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if now == nil {
		now = time.Now
	}
	return &RoomService{repo: repo, schedules: schedules, cache: cache, auditTTL: auditTTL, validator: validate, logger: logger, now: now}
}

// ListFloors returns every floor with its rooms, each resolved to the
// effective status at this instant. Resolution happens per call and is never
// cached because it depends on wall-clock time.
func (s *RoomService) ListFloors(ctx context.Context) ([]models.FloorData, error) {
	rooms, err := s.repo.ListRooms(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list rooms")
	}

	now := s.now()
	var floors []models.FloorData
	for _, room := range rooms {
		schedules, err := s.schedules.ListByRoom(ctx, room.ID)
		if err != nil {
			return nil, err
		}
		snapshot := Snapshot(room, schedules, now)
		if len(floors) == 0 || floors[len(floors)-1].FloorNumber != room.Floor {
			floors = append(floors, models.FloorData{FloorNumber: room.Floor})
		}
		last := &floors[len(floors)-1]
		last.Rooms = append(last.Rooms, snapshot)
	}
	return floors, nil
}

// GetRoom returns one resolved room snapshot.
func (s *RoomService) GetRoom(ctx context.Context, roomID string) (*models.RoomSnapshot, error) {
	room, err := s.repo.FindRoom(ctx, roomID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "room not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load room")
	}

	schedules, err := s.schedules.ListByRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	snapshot := Snapshot(*room, schedules, s.now())
	return &snapshot, nil
}

// SetOverride applies or clears a room's manual override. The paired audit
// entry is appended atomically by the store; cached audit pages are dropped
// afterwards so the new entry is visible on the next read.
func (s *RoomService) SetOverride(ctx context.Context, roomID string, req SetOverrideRequest, actingUser string) (*models.RoomSnapshot, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid override payload")
	}

	var status *models.RoomStatus
	if req.Status != nil {
		value := models.RoomStatus(*req.Status)
		if !value.Valid() {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown room status %q", *req.Status))
		}
		status = &value
	}

	room, entry, err := s.repo.SetOverride(ctx, roomID, status, actingUser)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "room not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to set override")
	}

	s.logger.Info("manual override changed",
		zap.String("room_id", room.ID),
		zap.String("action", entry.Action),
		zap.String("user", actingUser),
	)
	_ = s.cache.Invalidate(ctx, "audit:*")

	schedules, err := s.schedules.ListByRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	snapshot := Snapshot(*room, schedules, s.now())
	return &snapshot, nil
}

// auditPage is the cached shape of one audit listing page.
type auditPage struct {
	Logs  []models.AuditLog `json:"logs"`
	Total int               `json:"total"`
}

// ListAuditLogs returns override audit entries, newest first.
func (s *RoomService) ListAuditLogs(ctx context.Context, page, size int) ([]models.AuditLog, *models.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if size <= 0 || size > 100 {
		size = 20
	}

	key := fmt.Sprintf("audit:%d:%d", page, size)
	var cached auditPage
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return cached.Logs, &models.Pagination{Page: page, PageSize: size, TotalCount: cached.Total}, nil
	}

	logs, total, err := s.repo.ListAuditLogs(ctx, page, size)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list audit logs")
	}
	_ = s.cache.Set(ctx, key, auditPage{Logs: logs, Total: total}, s.auditTTL)

	return logs, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}
