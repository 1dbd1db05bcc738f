package repository

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/noah-isme/spacesync-api/internal/models"
)

// MemoryStore is the default process-lifetime backend for every facility
// store. Writes are serialized per entity family; reads copy out snapshots so
// callers can never mutate internal state. Missing entities are reported as
// sql.ErrNoRows so services handle both this store and the Postgres
// repositories identically.
//
// The optional delay reproduces the prototype's simulated network latency as
// a test seam only; it defaults to zero and has no correctness meaning.
type MemoryStore struct {
	now   func() time.Time
	delay time.Duration

	roomMu sync.RWMutex
	rooms  map[string]*models.Room
	order  []string // room ids sorted by floor, then id
	audits []models.AuditLog

	schedMu   sync.RWMutex
	schedules map[string][]models.ClassSchedule

	maintMu sync.RWMutex
	maints  []models.MaintenanceRequest

	itemMu sync.RWMutex
	items  []models.LostItem
}

// NewMemoryStore constructs an empty store. A nil now falls back to
// time.Now; tests inject a fixed clock to make timestamps deterministic.
func NewMemoryStore(delay time.Duration, now func() time.Time) *MemoryStore {
	if now == nil {
		now = time.Now
	}
	return &MemoryStore{
		now:       now,
		delay:     delay,
		rooms:     make(map[string]*models.Room),
		schedules: make(map[string][]models.ClassSchedule),
	}
}

func (s *MemoryStore) simulateLatency() {
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
}

// Seed loads the generated building layout. Rooms and schedules replace any
// existing state; lost items are appended newest-first.
func (s *MemoryStore) Seed(ctx context.Context, rooms []models.Room, schedules []models.ClassSchedule, items []models.LostItem) error {
	s.roomMu.Lock()
	s.rooms = make(map[string]*models.Room, len(rooms))
	s.order = s.order[:0]
	for i := range rooms {
		room := rooms[i]
		s.rooms[room.ID] = &room
		s.order = append(s.order, room.ID)
	}
	sort.Slice(s.order, func(i, j int) bool {
		a, b := s.rooms[s.order[i]], s.rooms[s.order[j]]
		if a.Floor != b.Floor {
			return a.Floor < b.Floor
		}
		return a.ID < b.ID
	})
	s.roomMu.Unlock()

	s.schedMu.Lock()
	s.schedules = make(map[string][]models.ClassSchedule, len(rooms))
	for _, sched := range schedules {
		if err := sched.Validate(); err != nil {
			s.schedMu.Unlock()
			return err
		}
		s.schedules[sched.RoomID] = append(s.schedules[sched.RoomID], sched)
	}
	s.schedMu.Unlock()

	s.itemMu.Lock()
	// seed input arrives newest-first, matching list order
	s.items = append(append([]models.LostItem{}, items...), s.items...)
	s.itemMu.Unlock()

	return nil
}

// ListRooms returns every room ordered by floor then id.
func (s *MemoryStore) ListRooms(ctx context.Context) ([]models.Room, error) {
	s.simulateLatency()
	s.roomMu.RLock()
	defer s.roomMu.RUnlock()

	out := make([]models.Room, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, cloneRoom(s.rooms[id]))
	}
	return out, nil
}

// FindRoom returns a copy of one room.
func (s *MemoryStore) FindRoom(ctx context.Context, id string) (*models.Room, error) {
	s.simulateLatency()
	s.roomMu.RLock()
	defer s.roomMu.RUnlock()

	room, ok := s.rooms[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	clone := cloneRoom(room)
	return &clone, nil
}

// SetOverride updates a room's manual override and appends the paired audit
// entry under one lock, so readers never observe one without the other.
func (s *MemoryStore) SetOverride(ctx context.Context, roomID string, status *models.RoomStatus, actingUser string) (*models.Room, *models.AuditLog, error) {
	s.simulateLatency()
	s.roomMu.Lock()
	defer s.roomMu.Unlock()

	room, ok := s.rooms[roomID]
	if !ok {
		return nil, nil, sql.ErrNoRows
	}

	action := "Manual override cleared"
	if status != nil {
		value := *status
		room.ManualOverride = &value
		action = "Manual override set to " + string(value)
	} else {
		room.ManualOverride = nil
	}

	entry := models.AuditLog{
		ID:        uuid.NewString(),
		RoomID:    room.ID,
		RoomName:  room.Name,
		Action:    action,
		User:      actingUser,
		CreatedAt: s.now(),
	}
	s.audits = append([]models.AuditLog{entry}, s.audits...)

	clone := cloneRoom(room)
	return &clone, &entry, nil
}

// ListAuditLogs returns audit entries newest first. A non-positive size
// returns the full trail (used by exports).
func (s *MemoryStore) ListAuditLogs(ctx context.Context, page, size int) ([]models.AuditLog, int, error) {
	s.simulateLatency()
	s.roomMu.RLock()
	defer s.roomMu.RUnlock()

	total := len(s.audits)
	if size <= 0 {
		out := make([]models.AuditLog, total)
		copy(out, s.audits)
		return out, total, nil
	}

	if page < 1 {
		page = 1
	}
	start := (page - 1) * size
	if start >= total {
		return []models.AuditLog{}, total, nil
	}
	end := start + size
	if end > total {
		end = total
	}
	out := make([]models.AuditLog, end-start)
	copy(out, s.audits[start:end])
	return out, total, nil
}

// ListSchedulesByRoom returns the weekly schedule entries for a room. An
// unknown room yields an empty list, matching the read-only query contract.
func (s *MemoryStore) ListSchedulesByRoom(ctx context.Context, roomID string) ([]models.ClassSchedule, error) {
	s.simulateLatency()
	s.schedMu.RLock()
	defer s.schedMu.RUnlock()

	src := s.schedules[roomID]
	out := make([]models.ClassSchedule, len(src))
	copy(out, src)
	return out, nil
}

// ListMaintenanceByRoom returns maintenance requests for a room, newest
// first.
func (s *MemoryStore) ListMaintenanceByRoom(ctx context.Context, roomID string) ([]models.MaintenanceRequest, error) {
	s.simulateLatency()
	s.maintMu.RLock()
	defer s.maintMu.RUnlock()

	out := make([]models.MaintenanceRequest, 0)
	for _, req := range s.maints {
		if req.RoomID == roomID {
			out = append(out, req)
		}
	}
	return out, nil
}

// CreateMaintenance stores a new request, assigning id, pending status and
// the creation timestamp.
func (s *MemoryStore) CreateMaintenance(ctx context.Context, req *models.MaintenanceRequest) error {
	s.simulateLatency()
	s.maintMu.Lock()
	defer s.maintMu.Unlock()

	req.ID = uuid.NewString()
	req.Status = models.RequestPending
	req.ReportedAt = s.now()
	s.maints = append([]models.MaintenanceRequest{*req}, s.maints...)
	return nil
}

// UpdateMaintenanceStatus applies the given status to a request. Transition
// permissiveness is decided by the service layer; the store applies what it
// is told.
func (s *MemoryStore) UpdateMaintenanceStatus(ctx context.Context, id string, status models.RequestStatus) (*models.MaintenanceRequest, error) {
	s.simulateLatency()
	s.maintMu.Lock()
	defer s.maintMu.Unlock()

	for i := range s.maints {
		if s.maints[i].ID == id {
			s.maints[i].Status = status
			clone := s.maints[i]
			return &clone, nil
		}
	}
	return nil, sql.ErrNoRows
}

// ListLostItems returns every lost-and-found entry, newest first.
func (s *MemoryStore) ListLostItems(ctx context.Context) ([]models.LostItem, error) {
	s.simulateLatency()
	s.itemMu.RLock()
	defer s.itemMu.RUnlock()

	out := make([]models.LostItem, len(s.items))
	copy(out, s.items)
	return out, nil
}

// CreateLostItem stores a new entry with open status and the creation
// timestamp.
func (s *MemoryStore) CreateLostItem(ctx context.Context, item *models.LostItem) error {
	s.simulateLatency()
	s.itemMu.Lock()
	defer s.itemMu.Unlock()

	item.ID = uuid.NewString()
	item.Status = models.ItemOpen
	item.ReportedAt = s.now()
	s.items = append([]models.LostItem{*item}, s.items...)
	return nil
}

// ResolveLostItem moves an item to resolved. Resolving an already-resolved
// item is a no-op success.
func (s *MemoryStore) ResolveLostItem(ctx context.Context, id string) (*models.LostItem, error) {
	s.simulateLatency()
	s.itemMu.Lock()
	defer s.itemMu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Status = models.ItemResolved
			clone := s.items[i]
			return &clone, nil
		}
	}
	return nil, sql.ErrNoRows
}

func cloneRoom(room *models.Room) models.Room {
	clone := *room
	if room.ManualOverride != nil {
		value := *room.ManualOverride
		clone.ManualOverride = &value
	}
	return clone
}
