package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/spacesync-api/internal/models"
	appErrors "github.com/noah-isme/spacesync-api/pkg/errors"
)

type scheduleRepository interface {
	ListSchedulesByRoom(ctx context.Context, roomID string) ([]models.ClassSchedule, error)
}

// ScheduleService serves the weekly recurring schedules. Schedules are
// immutable after seeding, which makes their per-room lists safe to cache
// for long TTLs without invalidation.
type ScheduleService struct {
	repo   scheduleRepository
	cache  *CacheService
	ttl    time.Duration
	logger *zap.Logger
}

// NewScheduleService instantiates ScheduleService.
func NewScheduleService(repo scheduleRepository, cache *CacheService, ttl time.Duration, logger *zap.Logger) *ScheduleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleService{repo: repo, cache: cache, ttl: ttl, logger: logger}
}

// ListByRoom returns the weekly schedule entries for a room. Unknown rooms
// yield an empty list; schedule listing is a plain query, not an existence
// check.
func (s *ScheduleService) ListByRoom(ctx context.Context, roomID string) ([]models.ClassSchedule, error) {
	key := "schedules:" + roomID
	var cached []models.ClassSchedule
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return cached, nil
	}

	schedules, err := s.repo.ListSchedulesByRoom(ctx, roomID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list room schedules")
	}
	_ = s.cache.Set(ctx, key, schedules, s.ttl)

	return schedules, nil
}
