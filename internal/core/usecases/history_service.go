package usecases

import (
	"context"
	"encoding/json"

	"github.com/samirrijal/meetpoint/internal/core/domain"
	"github.com/samirrijal/meetpoint/internal/core/ports"
	"github.com/samirrijal/meetpoint/internal/core/ranking"
)

// HistoryService serves past results in arrival or ranked order.
type HistoryService struct {
	results ports.ResultRepository
	cache   ports.CacheService
}

// NewHistoryService creates a new HistoryService. cache may be nil.
func NewHistoryService(results ports.ResultRepository, cache ports.CacheService) *HistoryService {
	return &HistoryService{results: results, cache: cache}
}

// List returns past results in arrival order (oldest first), the shape the
// API exposes on /api/results.
func (s *HistoryService) List(ctx context.Context, limit int) ([]domain.ResultRecord, error) {
	if limit <= 0 {
		limit = 200
	} else if limit > 500 {
		limit = 500
	}

	if s.cache != nil {
		if data, err := s.cache.Get(ctx, historyCacheKey); err == nil {
			var records []domain.ResultRecord
			if err := json.Unmarshal(data, &records); err == nil {
				return clamp(records, limit), nil
			}
		}
	}

	records, err := s.results.List(ctx, limit)
	if err != nil {
		return nil, err
	}

	// Short TTL: the list changes with every successful query and is also
	// invalidated explicitly on insert.
	if s.cache != nil {
		if data, err := json.Marshal(records); err == nil {
			_ = s.cache.Set(ctx, historyCacheKey, data, 30)
		}
	}

	return records, nil
}

// Ranked returns past results ordered by the given ranking mode.
func (s *HistoryService) Ranked(ctx context.Context, limit int, mode ranking.Mode) ([]domain.ResultRecord, error) {
	records, err := s.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	return ranking.Rank(records, mode), nil
}

func clamp(records []domain.ResultRecord, limit int) []domain.ResultRecord {
	if len(records) > limit {
		return records[:limit]
	}
	return records
}
