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

type fakeLostFoundRepo struct {
	items []models.LostItem
}

func (f *fakeLostFoundRepo) ListLostItems(context.Context) ([]models.LostItem, error) {
	return f.items, nil
}

func (f *fakeLostFoundRepo) CreateLostItem(_ context.Context, item *models.LostItem) error {
	item.ID = "li-new"
	item.Status = models.ItemOpen
	f.items = append([]models.LostItem{*item}, f.items...)
	return nil
}

func (f *fakeLostFoundRepo) ResolveLostItem(_ context.Context, id string) (*models.LostItem, error) {
	for i := range f.items {
		if f.items[i].ID == id {
			f.items[i].Status = models.ItemResolved
			item := f.items[i]
			return &item, nil
		}
	}
	return nil, sql.ErrNoRows
}

func TestLostFoundServiceReport(t *testing.T) {
	repo := &fakeLostFoundRepo{}
	svc := NewLostFoundService(repo, nil, nil)

	item, err := svc.Report(context.Background(), ReportLostItemRequest{
		Kind:     "found",
		ItemName: "Blue Umbrella",
		Location: "MB-101",
	})
	require.NoError(t, err)
	assert.Equal(t, "li-new", item.ID)
	assert.Equal(t, models.ItemOpen, item.Status)
	assert.Equal(t, models.KindFound, item.Kind)
}

func TestLostFoundServiceReportValidatesPayload(t *testing.T) {
	svc := NewLostFoundService(&fakeLostFoundRepo{}, nil, nil)

	cases := []ReportLostItemRequest{
		{Kind: "stolen", ItemName: "Blue Umbrella", Location: "MB-101"},
		{Kind: "lost", ItemName: "", Location: "MB-101"},
		{Kind: "lost", ItemName: "Blue Umbrella", Location: ""},
	}
	for _, payload := range cases {
		_, err := svc.Report(context.Background(), payload)
		require.Error(t, err)
		assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	}
}

func TestLostFoundServiceResolveIsIdempotent(t *testing.T) {
	repo := &fakeLostFoundRepo{items: []models.LostItem{
		{ID: "li-1", ItemName: "Blue Umbrella", Status: models.ItemOpen},
	}}
	svc := NewLostFoundService(repo, nil, nil)

	item, err := svc.Resolve(context.Background(), "li-1")
	require.NoError(t, err)
	assert.Equal(t, models.ItemResolved, item.Status)

	item, err = svc.Resolve(context.Background(), "li-1")
	require.NoError(t, err)
	assert.Equal(t, models.ItemResolved, item.Status)
}

func TestLostFoundServiceResolveUnknownItem(t *testing.T) {
	svc := NewLostFoundService(&fakeLostFoundRepo{}, nil, nil)

	_, err := svc.Resolve(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestLostFoundServiceListNewestFirst(t *testing.T) {
	repo := &fakeLostFoundRepo{}
	svc := NewLostFoundService(repo, nil, nil)

	_, err := svc.Report(context.Background(), ReportLostItemRequest{Kind: "lost", ItemName: "Calculus Textbook", Location: "Library"})
	require.NoError(t, err)

	items, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Calculus Textbook", items[0].ItemName)
}
