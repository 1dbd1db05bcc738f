package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/spacesync-api/internal/models"
)

// ScheduleRepository provides Postgres persistence for the weekly class
// schedules. The table is written once at seeding time and read-only after.
type ScheduleRepository struct {
	db *sqlx.DB
}

// NewScheduleRepository creates a new schedule repository.
func NewScheduleRepository(db *sqlx.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// ListSchedulesByRoom returns the weekly schedule entries for a room.
func (r *ScheduleRepository) ListSchedulesByRoom(ctx context.Context, roomID string) ([]models.ClassSchedule, error) {
	const query = `SELECT id, room_id, course_name, instructor, day_of_week, start_time, end_time FROM class_schedules WHERE room_id = $1 ORDER BY day_of_week ASC, start_time ASC`
	var schedules []models.ClassSchedule
	if err := r.db.SelectContext(ctx, &schedules, query, roomID); err != nil {
		return nil, fmt.Errorf("list schedules by room: %w", err)
	}
	return schedules, nil
}

// CountSchedules reports how many schedule entries exist, used to decide
// startup seeding.
func (r *ScheduleRepository) CountSchedules(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM class_schedules`); err != nil {
		return 0, fmt.Errorf("count schedules: %w", err)
	}
	return total, nil
}

// BulkCreateSchedules inserts seeded schedules within a transaction. Each
// entry is validated before insert since the table accepts no edits later.
func (r *ScheduleRepository) BulkCreateSchedules(ctx context.Context, schedules []models.ClassSchedule) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin bulk create schedules: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for i := range schedules {
		payload := schedules[i]
		if payload.ID == "" {
			payload.ID = uuid.NewString()
		}
		if err = payload.Validate(); err != nil {
			return fmt.Errorf("validate seeded schedule: %w", err)
		}
		if _, err = tx.NamedExecContext(ctx, `INSERT INTO class_schedules (id, room_id, course_name, instructor, day_of_week, start_time, end_time) VALUES (:id, :room_id, :course_name, :instructor, :day_of_week, :start_time, :end_time)`, &payload); err != nil {
			return fmt.Errorf("bulk insert schedule: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit bulk create schedules: %w", err)
	}
	return nil
}
