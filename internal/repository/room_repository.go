package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/spacesync-api/internal/models"
)

// RoomRepository provides Postgres persistence for rooms and their audit
// trail. The two are kept in one repository because every override mutation
// pairs with exactly one audit insert inside the same transaction.
type RoomRepository struct {
	db *sqlx.DB
}

// NewRoomRepository creates a new room repository.
func NewRoomRepository(db *sqlx.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

// ListRooms returns every room ordered by floor then id.
func (r *RoomRepository) ListRooms(ctx context.Context) ([]models.Room, error) {
	const query = `SELECT id, name, floor, capacity, manual_override FROM rooms ORDER BY floor ASC, id ASC`
	var rooms []models.Room
	if err := r.db.SelectContext(ctx, &rooms, query); err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	return rooms, nil
}

// FindRoom loads a room by id.
func (r *RoomRepository) FindRoom(ctx context.Context, id string) (*models.Room, error) {
	const query = `SELECT id, name, floor, capacity, manual_override FROM rooms WHERE id = $1`
	var room models.Room
	if err := r.db.GetContext(ctx, &room, query, id); err != nil {
		return nil, err
	}
	return &room, nil
}

// SetOverride updates the manual override and inserts the paired audit entry
// in one transaction. The row lock on the room serializes concurrent
// override writes for the same room.
func (r *RoomRepository) SetOverride(ctx context.Context, roomID string, status *models.RoomStatus, actingUser string) (*models.Room, *models.AuditLog, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("begin set override: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var room models.Room
	if err = tx.GetContext(ctx, &room, `SELECT id, name, floor, capacity, manual_override FROM rooms WHERE id = $1 FOR UPDATE`, roomID); err != nil {
		return nil, nil, err
	}

	action := "Manual override cleared"
	if status != nil {
		value := *status
		room.ManualOverride = &value
		action = "Manual override set to " + string(value)
	} else {
		room.ManualOverride = nil
	}

	if _, err = tx.ExecContext(ctx, `UPDATE rooms SET manual_override = $1 WHERE id = $2`, room.ManualOverride, room.ID); err != nil {
		return nil, nil, fmt.Errorf("update room override: %w", err)
	}

	entry := models.AuditLog{
		ID:        uuid.NewString(),
		RoomID:    room.ID,
		RoomName:  room.Name,
		Action:    action,
		User:      actingUser,
		CreatedAt: time.Now().UTC(),
	}
	if _, err = tx.NamedExecContext(ctx, `INSERT INTO audit_logs (id, room_id, room_name, action, acting_user, created_at) VALUES (:id, :room_id, :room_name, :action, :acting_user, :created_at)`, &entry); err != nil {
		return nil, nil, fmt.Errorf("insert audit entry: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("commit set override: %w", err)
	}
	return &room, &entry, nil
}

// ListAuditLogs returns audit entries newest first. A non-positive size
// returns the full trail.
func (r *RoomRepository) ListAuditLogs(ctx context.Context, page, size int) ([]models.AuditLog, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM audit_logs`); err != nil {
		return nil, 0, fmt.Errorf("count audit logs: %w", err)
	}

	query := `SELECT id, room_id, room_name, action, acting_user, created_at FROM audit_logs ORDER BY created_at DESC, id DESC`
	args := []interface{}{}
	if size > 0 {
		if page < 1 {
			page = 1
		}
		query += ` LIMIT $1 OFFSET $2`
		args = append(args, size, (page-1)*size)
	}

	var logs []models.AuditLog
	if err := r.db.SelectContext(ctx, &logs, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list audit logs: %w", err)
	}
	return logs, total, nil
}

// CountRooms reports how many rooms exist, used to decide startup seeding.
func (r *RoomRepository) CountRooms(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM rooms`); err != nil {
		return 0, fmt.Errorf("count rooms: %w", err)
	}
	return total, nil
}

// BulkCreateRooms inserts the seeded building layout within a transaction.
func (r *RoomRepository) BulkCreateRooms(ctx context.Context, rooms []models.Room) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin bulk create rooms: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for i := range rooms {
		if _, err = tx.NamedExecContext(ctx, `INSERT INTO rooms (id, name, floor, capacity, manual_override) VALUES (:id, :name, :floor, :capacity, :manual_override)`, &rooms[i]); err != nil {
			return fmt.Errorf("bulk insert room: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit bulk create rooms: %w", err)
	}
	return nil
}
