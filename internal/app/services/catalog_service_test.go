package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-sportsmeet/internal/app/models"
	"github.com/FACorreiaa/go-sportsmeet/internal/pkg/backend"
)

type countingBackend struct {
	sportsCalls int
	err         error
	matches     []models.Match
}

func (b *countingBackend) Sports(context.Context) ([]models.Sport, error) {
	b.sportsCalls++
	if b.err != nil {
		return nil, b.err
	}
	return []models.Sport{{ID: "2", Name: "Volleyball"}, {ID: "1", Name: "Athletics"}}, nil
}

func (b *countingBackend) Colleges(context.Context) ([]models.College, error) {
	return []models.College{{ID: "1", Name: "Zenith"}, {ID: "2", Name: "Alpha"}}, nil
}

func (b *countingBackend) Matches(context.Context, backend.MatchFilter) ([]models.Match, error) {
	return b.matches, nil
}

func TestCatalogCachesSports(t *testing.T) {
	api := &countingBackend{}
	svc := NewCatalogService(api, nil, nil)

	for i := 0; i < 3; i++ {
		sports, err := svc.Sports(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "Athletics", sports[0].Name)
	}
	assert.Equal(t, 1, api.sportsCalls)

	names, err := svc.SportNames(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Volleyball", names["2"])
}

func TestCatalogDoesNotCacheFailures(t *testing.T) {
	api := &countingBackend{err: errors.New("down")}
	svc := NewCatalogService(api, nil, nil)

	_, err := svc.Sports(context.Background())
	require.Error(t, err)

	api.err = nil
	_, err = svc.Sports(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, api.sportsCalls)
}

func TestCatalogColleges(t *testing.T) {
	colleges, err := NewCatalogService(&countingBackend{}, nil, nil).Colleges(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Alpha", colleges[0].Name)
}

func TestScheduleAndMatch(t *testing.T) {
	now := time.Date(2026, 11, 2, 9, 0, 0, 0, time.UTC)
	api := &countingBackend{matches: []models.Match{
		{ID: "3", Status: models.MatchScheduled, StartsAt: now.Add(3 * time.Hour)},
		{ID: "1", Status: models.MatchCompleted, StartsAt: now.Add(-time.Hour)},
		{ID: "2", Status: models.MatchScheduled, StartsAt: now.Add(time.Hour)},
	}}
	svc := NewCatalogService(api, nil, nil)

	schedule, err := svc.Schedule(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.ID{"1", "2", "3"}, []models.ID{schedule[0].ID, schedule[1].ID, schedule[2].ID})

	next := Upcoming(schedule, now, 1)
	require.Len(t, next, 1)
	assert.Equal(t, models.ID("2"), next[0].ID)

	m, err := svc.Match(context.Background(), "3")
	require.NoError(t, err)
	assert.Equal(t, models.ID("3"), m.ID)

	_, err = svc.Match(context.Background(), "99")
	assert.ErrorIs(t, err, models.ErrNotFound)
}
