package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/spacesync-api/internal/models"
	appErrors "github.com/noah-isme/spacesync-api/pkg/errors"
)

type fakeMaintenanceRepo struct {
	requests []models.MaintenanceRequest
}

func (f *fakeMaintenanceRepo) ListMaintenanceByRoom(_ context.Context, roomID string) ([]models.MaintenanceRequest, error) {
	out := make([]models.MaintenanceRequest, 0)
	for _, req := range f.requests {
		if req.RoomID == roomID {
			out = append(out, req)
		}
	}
	return out, nil
}

func (f *fakeMaintenanceRepo) CreateMaintenance(_ context.Context, req *models.MaintenanceRequest) error {
	req.ID = "m1"
	req.Status = models.RequestPending
	f.requests = append([]models.MaintenanceRequest{*req}, f.requests...)
	return nil
}

func (f *fakeMaintenanceRepo) UpdateMaintenanceStatus(_ context.Context, id string, status models.RequestStatus) (*models.MaintenanceRequest, error) {
	for i := range f.requests {
		if f.requests[i].ID == id {
			f.requests[i].Status = status
			req := f.requests[i]
			return &req, nil
		}
	}
	return nil, sql.ErrNoRows
}

func newTestMaintenanceService(repo *fakeMaintenanceRepo) *MaintenanceService {
	return NewMaintenanceService(repo, nil, nil)
}

func TestMaintenanceServiceReport(t *testing.T) {
	repo := &fakeMaintenanceRepo{}
	svc := newTestMaintenanceService(repo)

	req, err := svc.Report(context.Background(), "f1-r1", ReportMaintenanceRequest{
		IssueType:   "AC",
		Description: "Unit leaking near the window",
	}, "Guest")
	require.NoError(t, err)
	assert.Equal(t, "m1", req.ID)
	assert.Equal(t, models.RequestPending, req.Status)
	assert.Equal(t, models.IssueType("AC"), req.IssueType)
	assert.Equal(t, "Guest", req.ReportedBy)
}

func TestMaintenanceServiceReportValidatesPayload(t *testing.T) {
	svc := newTestMaintenanceService(&fakeMaintenanceRepo{})

	cases := []ReportMaintenanceRequest{
		{IssueType: "Roof", Description: "Unknown issue type"},
		{IssueType: "AC", Description: ""},
	}
	for _, payload := range cases {
		_, err := svc.Report(context.Background(), "f1-r1", payload, "Guest")
		require.Error(t, err)
		assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	}
}

func TestMaintenanceServiceReportAcceptsAnyRoomID(t *testing.T) {
	svc := newTestMaintenanceService(&fakeMaintenanceRepo{})

	// filing never checks the registry, a report against an unknown or
	// decommissioned room id still succeeds
	req, err := svc.Report(context.Background(), "f9-r9", ReportMaintenanceRequest{
		IssueType:   "Electrical",
		Description: "Socket sparks",
	}, "Guest")
	require.NoError(t, err)
	assert.Equal(t, "f9-r9", req.RoomID)
	assert.Equal(t, models.RequestPending, req.Status)
}

func TestMaintenanceServiceListUnknownRoomIsEmpty(t *testing.T) {
	svc := newTestMaintenanceService(&fakeMaintenanceRepo{})

	requests, err := svc.ListByRoom(context.Background(), "missing")
	require.NoError(t, err)
	assert.Empty(t, requests)
}

func TestMaintenanceServiceListByRoom(t *testing.T) {
	repo := &fakeMaintenanceRepo{requests: []models.MaintenanceRequest{
		{ID: "m2", RoomID: "f1-r1"},
		{ID: "m1", RoomID: "f1-r2"},
	}}
	svc := newTestMaintenanceService(repo)

	requests, err := svc.ListByRoom(context.Background(), "f1-r1")
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, "m2", requests[0].ID)
}

func TestMaintenanceServiceUpdateStatus(t *testing.T) {
	repo := &fakeMaintenanceRepo{requests: []models.MaintenanceRequest{
		{ID: "m1", RoomID: "f1-r1", Status: models.RequestResolved},
	}}
	svc := newTestMaintenanceService(repo)

	// any valid status is accepted, including moving backwards
	req, err := svc.UpdateStatus(context.Background(), "m1", UpdateMaintenanceStatusRequest{Status: "pending"})
	require.NoError(t, err)
	assert.Equal(t, models.RequestPending, req.Status)

	_, err = svc.UpdateStatus(context.Background(), "m1", UpdateMaintenanceStatusRequest{Status: "cancelled"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.UpdateStatus(context.Background(), "missing", UpdateMaintenanceStatusRequest{Status: "resolved"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
