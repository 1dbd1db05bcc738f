package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/spacesync-api/internal/models"
)

// LostFoundRepository provides Postgres persistence for the lost-and-found
// registry.
type LostFoundRepository struct {
	db *sqlx.DB
}

// NewLostFoundRepository creates a new lost-and-found repository.
func NewLostFoundRepository(db *sqlx.DB) *LostFoundRepository {
	return &LostFoundRepository{db: db}
}

// ListLostItems returns every entry, newest first.
func (r *LostFoundRepository) ListLostItems(ctx context.Context) ([]models.LostItem, error) {
	const query = `SELECT id, kind, item_name, description, location, contact_info, status, reported_at FROM lost_items ORDER BY reported_at DESC, id DESC`
	var items []models.LostItem
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("list lost items: %w", err)
	}
	return items, nil
}

// CreateLostItem stores a new entry with open status and the creation
// timestamp.
func (r *LostFoundRepository) CreateLostItem(ctx context.Context, item *models.LostItem) error {
	item.ID = uuid.NewString()
	item.Status = models.ItemOpen
	item.ReportedAt = time.Now().UTC()

	const query = `INSERT INTO lost_items (id, kind, item_name, description, location, contact_info, status, reported_at) VALUES (:id, :kind, :item_name, :description, :location, :contact_info, :status, :reported_at)`
	if _, err := r.db.NamedExecContext(ctx, query, item); err != nil {
		return fmt.Errorf("create lost item: %w", err)
	}
	return nil
}

// ResolveLostItem moves an item to resolved and returns it. Resolving an
// already-resolved item leaves it resolved. sql.ErrNoRows signals an unknown
// id.
func (r *LostFoundRepository) ResolveLostItem(ctx context.Context, id string) (*models.LostItem, error) {
	const query = `UPDATE lost_items SET status = $1 WHERE id = $2 RETURNING id, kind, item_name, description, location, contact_info, status, reported_at`
	var item models.LostItem
	if err := r.db.GetContext(ctx, &item, query, models.ItemResolved, id); err != nil {
		return nil, err
	}
	return &item, nil
}
