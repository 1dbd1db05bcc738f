package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/spacesync-api/internal/models"
)

// MaintenanceRepository provides Postgres persistence for maintenance
// requests. Requests are never deleted.
type MaintenanceRepository struct {
	db *sqlx.DB
}

// NewMaintenanceRepository creates a new maintenance repository.
func NewMaintenanceRepository(db *sqlx.DB) *MaintenanceRepository {
	return &MaintenanceRepository{db: db}
}

// ListMaintenanceByRoom returns requests for a room, newest first.
func (r *MaintenanceRepository) ListMaintenanceByRoom(ctx context.Context, roomID string) ([]models.MaintenanceRequest, error) {
	const query = `SELECT id, room_id, issue_type, description, status, reported_by, reported_at FROM maintenance_requests WHERE room_id = $1 ORDER BY reported_at DESC, id DESC`
	var requests []models.MaintenanceRequest
	if err := r.db.SelectContext(ctx, &requests, query, roomID); err != nil {
		return nil, fmt.Errorf("list maintenance by room: %w", err)
	}
	return requests, nil
}

// CreateMaintenance stores a new request, assigning id, pending status and
// the creation timestamp.
func (r *MaintenanceRepository) CreateMaintenance(ctx context.Context, req *models.MaintenanceRequest) error {
	req.ID = uuid.NewString()
	req.Status = models.RequestPending
	req.ReportedAt = time.Now().UTC()

	const query = `INSERT INTO maintenance_requests (id, room_id, issue_type, description, status, reported_by, reported_at) VALUES (:id, :room_id, :issue_type, :description, :status, :reported_by, :reported_at)`
	if _, err := r.db.NamedExecContext(ctx, query, req); err != nil {
		return fmt.Errorf("create maintenance request: %w", err)
	}
	return nil
}

// UpdateMaintenanceStatus applies the given status and returns the updated
// request. sql.ErrNoRows signals an unknown id.
func (r *MaintenanceRepository) UpdateMaintenanceStatus(ctx context.Context, id string, status models.RequestStatus) (*models.MaintenanceRequest, error) {
	const query = `UPDATE maintenance_requests SET status = $1 WHERE id = $2 RETURNING id, room_id, issue_type, description, status, reported_by, reported_at`
	var req models.MaintenanceRequest
	if err := r.db.GetContext(ctx, &req, query, status, id); err != nil {
		return nil, err
	}
	return &req, nil
}
