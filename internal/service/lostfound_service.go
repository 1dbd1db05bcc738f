package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/spacesync-api/internal/models"
	appErrors "github.com/noah-isme/spacesync-api/pkg/errors"
)

type lostFoundRepository interface {
	ListLostItems(ctx context.Context) ([]models.LostItem, error)
	CreateLostItem(ctx context.Context, item *models.LostItem) error
	ResolveLostItem(ctx context.Context, id string) (*models.LostItem, error)
}

// ReportLostItemRequest is the payload for registering a lost or found item.
type ReportLostItemRequest struct {
	Kind        string `json:"type" validate:"required,oneof=lost found"`
	ItemName    string `json:"item_name" validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"max=500"`
	Location    string `json:"location" validate:"required,min=2,max=100"`
	ContactInfo string `json:"contact_info" validate:"max=100"`
}

// LostFoundService manages the campus lost-and-found board.
type LostFoundService struct {
	repo      lostFoundRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewLostFoundService instantiates LostFoundService.
func NewLostFoundService(repo lostFoundRepository, validate *validator.Validate, logger *zap.Logger) *LostFoundService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LostFoundService{repo: repo, validator: validate, logger: logger}
}

// List returns every lost-and-found entry, newest first.
func (s *LostFoundService) List(ctx context.Context) ([]models.LostItem, error) {
	items, err := s.repo.ListLostItems(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list lost items")
	}
	return items, nil
}

// Report registers a new lost or found item. New entries always start open;
// the store assigns id and timestamp.
func (s *LostFoundService) Report(ctx context.Context, req ReportLostItemRequest) (*models.LostItem, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid lost item payload")
	}

	item := &models.LostItem{
		Kind:        models.ItemKind(req.Kind),
		ItemName:    req.ItemName,
		Description: req.Description,
		Location:    req.Location,
		ContactInfo: req.ContactInfo,
	}
	if err := s.repo.CreateLostItem(ctx, item); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create lost item")
	}

	s.logger.Info("lost item reported",
		zap.String("item_id", item.ID),
		zap.String("kind", req.Kind),
		zap.String("item_name", req.ItemName),
	)
	return item, nil
}

// Resolve marks an item as returned to its owner. Resolving twice is a
// harmless repeat of the same outcome.
func (s *LostFoundService) Resolve(ctx context.Context, id string) (*models.LostItem, error) {
	item, err := s.repo.ResolveLostItem(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "lost item not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve lost item")
	}

	s.logger.Info("lost item resolved", zap.String("item_id", id))
	return item, nil
}
