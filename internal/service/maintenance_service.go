package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/spacesync-api/internal/models"
	appErrors "github.com/noah-isme/spacesync-api/pkg/errors"
)

type maintenanceRepository interface {
	ListMaintenanceByRoom(ctx context.Context, roomID string) ([]models.MaintenanceRequest, error)
	CreateMaintenance(ctx context.Context, req *models.MaintenanceRequest) error
	UpdateMaintenanceStatus(ctx context.Context, id string, status models.RequestStatus) (*models.MaintenanceRequest, error)
}

// ReportMaintenanceRequest is the payload for filing a maintenance issue.
type ReportMaintenanceRequest struct {
	IssueType   string `json:"issue_type" validate:"required,oneof=AC Electrical Plumbing Furniture Cleanliness Other"`
	Description string `json:"description" validate:"required,min=3,max=500"`
}

// UpdateMaintenanceStatusRequest moves a request to a new workflow status.
type UpdateMaintenanceStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending in-progress resolved"`
}

// MaintenanceService manages the per-room maintenance request workflow.
type MaintenanceService struct {
	repo      maintenanceRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewMaintenanceService instantiates MaintenanceService.
func NewMaintenanceService(repo maintenanceRepository, validate *validator.Validate, logger *zap.Logger) *MaintenanceService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MaintenanceService{repo: repo, validator: validate, logger: logger}
}

// ListByRoom returns maintenance requests for a room, newest first. Unknown
// room ids simply have no requests; the result is an empty list.
func (s *MaintenanceService) ListByRoom(ctx context.Context, roomID string) ([]models.MaintenanceRequest, error) {
	requests, err := s.repo.ListMaintenanceByRoom(ctx, roomID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list maintenance requests")
	}
	return requests, nil
}

// Report files a new maintenance request against a room. The room id is not
// checked against the registry; reports for decommissioned or planned rooms
// are accepted so the record is never lost. New requests always start
// pending; the store assigns id and timestamp.
func (s *MaintenanceService) Report(ctx context.Context, roomID string, req ReportMaintenanceRequest, reporter string) (*models.MaintenanceRequest, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid maintenance payload")
	}

	request := &models.MaintenanceRequest{
		RoomID:      roomID,
		IssueType:   models.IssueType(req.IssueType),
		Description: req.Description,
		ReportedBy:  reporter,
	}
	if err := s.repo.CreateMaintenance(ctx, request); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create maintenance request")
	}

	s.logger.Info("maintenance request filed",
		zap.String("request_id", request.ID),
		zap.String("room_id", roomID),
		zap.String("issue_type", req.IssueType),
	)
	return request, nil
}

// UpdateStatus moves a maintenance request to the given status. Any valid
// status is accepted, including moving back to pending; the workflow trusts
// facilities staff to correct mistakes.
func (s *MaintenanceService) UpdateStatus(ctx context.Context, id string, req UpdateMaintenanceStatusRequest) (*models.MaintenanceRequest, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid status payload")
	}

	status := models.RequestStatus(req.Status)
	if !status.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown request status %q", req.Status))
	}

	request, err := s.repo.UpdateMaintenanceStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "maintenance request not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update maintenance request")
	}

	s.logger.Info("maintenance request updated",
		zap.String("request_id", id),
		zap.String("status", req.Status),
	)
	return request, nil
}
