package services

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/FACorreiaa/go-sportsmeet/internal/app/models"
	"github.com/FACorreiaa/go-sportsmeet/internal/pkg/backend"
	"github.com/FACorreiaa/go-sportsmeet/internal/pkg/cache"
)

// CatalogBackend is the public, unauthenticated part of the REST client.
type CatalogBackend interface {
	Sports(ctx context.Context) ([]models.Sport, error)
	Colleges(ctx context.Context) ([]models.College, error)
	Matches(ctx context.Context, f backend.MatchFilter) ([]models.Match, error)
}

// CatalogService serves the slow-changing public data every visitor sees.
type CatalogService struct {
	api    CatalogBackend
	caches *cache.CacheManager
	logger *zap.Logger
}

func NewCatalogService(api CatalogBackend, caches *cache.CacheManager, logger *zap.Logger) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if caches == nil {
		caches = cache.NewCacheManager(logger)
	}
	return &CatalogService{api: api, caches: caches, logger: logger}
}

// Sports returns all sports sorted by name.
func (s *CatalogService) Sports(ctx context.Context) ([]models.Sport, error) {
	return s.caches.Sports.GetOrLoad(ctx, "all", func(ctx context.Context) ([]models.Sport, error) {
		sports, err := s.api.Sports(ctx)
		if err != nil {
			return nil, err
		}
		sort.SliceStable(sports, func(i, j int) bool { return sports[i].Name < sports[j].Name })
		s.logger.Debug("Loaded sports catalog", zap.Int("count", len(sports)))
		return sports, nil
	})
}

// Colleges returns all colleges sorted by name.
func (s *CatalogService) Colleges(ctx context.Context) ([]models.College, error) {
	return s.caches.Colleges.GetOrLoad(ctx, "all", func(ctx context.Context) ([]models.College, error) {
		colleges, err := s.api.Colleges(ctx)
		if err != nil {
			return nil, err
		}
		sort.SliceStable(colleges, func(i, j int) bool { return colleges[i].Name < colleges[j].Name })
		return colleges, nil
	})
}

// Schedule returns every match ordered by start time.
func (s *CatalogService) Schedule(ctx context.Context) ([]models.Match, error) {
	return s.caches.Schedule.GetOrLoad(ctx, "all", func(ctx context.Context) ([]models.Match, error) {
		matches, err := s.api.Matches(ctx, backend.MatchFilter{})
		if err != nil {
			return nil, err
		}
		sort.SliceStable(matches, func(i, j int) bool { return matches[i].StartsAt.Before(matches[j].StartsAt) })
		return matches, nil
	})
}

// Match finds one match in the schedule.
func (s *CatalogService) Match(ctx context.Context, id string) (*models.Match, error) {
	matches, err := s.Schedule(ctx)
	if err != nil {
		return nil, err
	}
	for i := range matches {
		if matches[i].ID.String() == id {
			return &matches[i], nil
		}
	}
	return nil, models.ErrNotFound
}

// SportNames maps sport ids to names for display.
func (s *CatalogService) SportNames(ctx context.Context) (map[models.ID]string, error) {
	sports, err := s.Sports(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[models.ID]string, len(sports))
	for _, sp := range sports {
		names[sp.ID] = sp.Name
	}
	return names, nil
}

// Upcoming returns scheduled matches starting at or after now, at most limit.
func Upcoming(matches []models.Match, now time.Time, limit int) []models.Match {
	var out []models.Match
	for _, m := range matches {
		if m.Status == models.MatchScheduled && !m.StartsAt.Before(now) {
			out = append(out, m)
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out
}
