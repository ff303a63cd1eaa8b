package coverage

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendorlink/vendorlink-backend/pkg/db/models"
	"github.com/vendorlink/vendorlink-backend/pkg/logger"
	"github.com/vendorlink/vendorlink-backend/pkg/redis"
)

type stubRepo struct {
	areas []models.CoverageArea
	calls int
}

func (s *stubRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.CoverageArea, error) {
	s.calls++
	var out []models.CoverageArea
	for _, area := range s.areas {
		for _, id := range ids {
			if area.ID == id {
				out = append(out, area)
			}
		}
	}
	return out, nil
}

func (s *stubRepo) List(ctx context.Context) ([]models.CoverageArea, error) {
	return s.areas, nil
}

type fakeCache struct {
	store map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: map[string]string{}}
}

func (c *fakeCache) Get(ctx context.Context, key string) (string, error) {
	value, ok := c.store[key]
	if !ok {
		return "", redis.Nil
	}
	return value, nil
}

func (c *fakeCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	c.store[key] = value.(string)
	return nil
}

func (c *fakeCache) CoverageKey(areaID string) string {
	return "test:coverage:" + areaID
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func TestResolve_NormalizesStates(t *testing.T) {
	areaID := uuid.New()
	repo := &stubRepo{areas: []models.CoverageArea{
		{ID: areaID, Name: "South Plains", States: []string{" tx ", "nm"}},
	}}
	resolver, err := NewResolver(repo, nil, 0, testLogger())
	require.NoError(t, err)

	states, err := resolver.Resolve(context.Background(), []uuid.UUID{areaID})

	require.NoError(t, err)
	assert.True(t, states.Contains("TX"))
	assert.True(t, states.Contains("nm"))
	assert.False(t, states.Contains("OK"))
}

func TestResolve_EmptyInput(t *testing.T) {
	resolver, err := NewResolver(&stubRepo{}, nil, 0, testLogger())
	require.NoError(t, err)

	states, err := resolver.Resolve(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, states)
}

func TestResolve_CacheSkipsRepeatLookups(t *testing.T) {
	areaID := uuid.New()
	repo := &stubRepo{areas: []models.CoverageArea{
		{ID: areaID, Name: "Metroplex", States: []string{"TX"}},
	}}
	cache := newFakeCache()
	resolver, err := NewResolver(repo, cache, time.Minute, testLogger())
	require.NoError(t, err)

	_, err = resolver.Resolve(context.Background(), []uuid.UUID{areaID})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.calls)

	states, err := resolver.Resolve(context.Background(), []uuid.UUID{areaID})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.calls)
	assert.True(t, states.Contains("TX"))
}
