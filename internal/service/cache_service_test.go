package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/spacesync-api/pkg/errors"
)

type fakeCacheRepo struct {
	entries map[string][]byte
	getErr  error

	lastTTL     time.Duration
	invalidated []string
}

func newFakeCacheRepo() *fakeCacheRepo {
	return &fakeCacheRepo{entries: map[string][]byte{}}
}

func (f *fakeCacheRepo) Get(_ context.Context, key string, dest interface{}) error {
	if f.getErr != nil {
		return f.getErr
	}
	payload, ok := f.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(payload, dest)
}

func (f *fakeCacheRepo) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.entries[key] = payload
	f.lastTTL = ttl
	return nil
}

func (f *fakeCacheRepo) DeleteByPattern(_ context.Context, pattern string) error {
	f.invalidated = append(f.invalidated, pattern)
	return nil
}

func TestCacheServiceRoundTrip(t *testing.T) {
	repo := newFakeCacheRepo()
	svc := NewCacheService(repo, nil, time.Minute, nil, true)

	hit, err := svc.Get(context.Background(), "k", new(string))
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, svc.Set(context.Background(), "k", "v", 0))
	assert.Equal(t, time.Minute, repo.lastTTL, "zero ttl falls back to the default")

	var out string
	hit, err = svc.Get(context.Background(), "k", &out)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, "v", out)

	require.NoError(t, svc.Invalidate(context.Background(), "audit:*"))
	assert.Equal(t, []string{"audit:*"}, repo.invalidated)
}

func TestCacheServiceErrorsDegradeToMiss(t *testing.T) {
	repo := newFakeCacheRepo()
	repo.getErr = errors.New("redis down")
	svc := NewCacheService(repo, nil, time.Minute, nil, true)

	hit, err := svc.Get(context.Background(), "k", new(string))
	assert.False(t, hit)
	assert.Error(t, err)
}

func TestCacheServiceDisabledIsNoop(t *testing.T) {
	svc := NewCacheService(nil, nil, 0, nil, false)

	hit, err := svc.Get(context.Background(), "k", new(string))
	require.NoError(t, err)
	assert.False(t, hit)
	require.NoError(t, svc.Set(context.Background(), "k", "v", time.Minute))
	require.NoError(t, svc.Invalidate(context.Background(), "*"))

	var nilSvc *CacheService
	assert.False(t, nilSvc.Enabled())
}
