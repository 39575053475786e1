package usecases

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/samirrijal/meetpoint/internal/core/domain"
	"github.com/samirrijal/meetpoint/internal/core/ports"
	"github.com/samirrijal/meetpoint/internal/pkg/geospatial"
	"github.com/samirrijal/meetpoint/internal/pkg/routegraph"
)

// historyCacheKey caches the raw history list; invalidated on every new result.
const historyCacheKey = "results:recent"

// geocodeCacheTTL is deliberately long: place-name coordinates don't move.
const geocodeCacheTTL = 24 * 60 * 60

// MidpointService runs the full midpoint query: geocode the three inputs,
// compute the spherical midpoint, reverse-geocode it, derive distances and
// via-midpoint routes, and persist the result.
type MidpointService struct {
	geocoder ports.Geocoder
	results  ports.ResultRepository
	cache    ports.CacheService
	events   ports.EventPublisher
}

// NewMidpointService creates a new MidpointService. cache and events may be
// nil; persistence and geocoding are required.
func NewMidpointService(geocoder ports.Geocoder, results ports.ResultRepository, cache ports.CacheService, events ports.EventPublisher) *MidpointService {
	return &MidpointService{geocoder: geocoder, results: results, cache: cache, events: events}
}

// Compute resolves the three place names and builds the complete result
// record. The reverse geocode of the midpoint is best-effort: mid-ocean
// midpoints resolve to nothing and that is not an error.
func (s *MidpointService) Compute(ctx context.Context, cityA, cityB, cityC string) (*domain.ResultRecord, error) {
	names := []string{strings.TrimSpace(cityA), strings.TrimSpace(cityB), strings.TrimSpace(cityC)}
	for _, n := range names {
		if n == "" {
			return nil, fmt.Errorf("cityA, cityB and cityC are all required")
		}
	}

	points := make([]domain.GeoPoint, 3)
	for i, name := range names {
		p, err := s.geocode(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("geocode %q: %w", name, err)
		}
		if !p.Valid() {
			return nil, fmt.Errorf("geocode %q: coordinate out of range: %+v", name, p)
		}
		points[i] = p
	}

	mid := geospatial.Centroid(points...)

	reverse, err := s.geocoder.Reverse(ctx, mid)
	if err != nil {
		slog.Warn("reverse geocode failed, using empty reverse info",
			"lat", mid.Lat, "lon", mid.Lon, "error", err)
		reverse = domain.ReverseInfo{}
	}

	distAM := geospatial.HaversineKm(points[0], mid)
	distBM := geospatial.HaversineKm(points[1], mid)
	distCM := geospatial.HaversineKm(points[2], mid)

	record := &domain.ResultRecord{
		CityA:    domain.ResolvedPlace{Input: names[0], Lat: points[0].Lat, Lon: points[0].Lon},
		CityB:    domain.ResolvedPlace{Input: names[1], Lat: points[1].Lat, Lon: points[1].Lon},
		CityC:    domain.ResolvedPlace{Input: names[2], Lat: points[2].Lat, Lon: points[2].Lon},
		Midpoint: domain.Midpoint{Lat: mid.Lat, Lon: mid.Lon, Reverse: reverse},
		DistancesKm: domain.Distances{
			AToM: distAM,
			BToM: distBM,
			CToM: distCM,
		},
		Graph:     domain.Graph{Paths: viaMidpointPaths(distAM, distBM, distCM)},
		CreatedAt: time.Now().UTC(),
	}

	if !record.Valid() {
		return nil, fmt.Errorf("computed record has invalid coordinates")
	}

	// The query itself has succeeded at this point; persistence and event
	// publication failures are logged, not returned.
	if err := s.results.Insert(ctx, record); err != nil {
		slog.Error("persist result failed", "error", err)
	} else if s.cache != nil {
		_ = s.cache.Delete(ctx, historyCacheKey)
	}

	if s.events != nil {
		if err := s.events.PublishResult(ctx, record); err != nil {
			slog.Warn("publish result failed", "error", err)
		}
	}

	return record, nil
}

// geocode resolves one place name, read-through cached.
func (s *MidpointService) geocode(ctx context.Context, address string) (domain.GeoPoint, error) {
	cacheKey := "geocode:" + strings.ToLower(address)
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var p domain.GeoPoint
			if err := json.Unmarshal(data, &p); err == nil {
				return p, nil
			}
		}
	}

	p, err := s.geocoder.Geocode(ctx, address)
	if err != nil {
		return domain.GeoPoint{}, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(p); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, geocodeCacheTTL)
		}
	}
	return p, nil
}

// viaMidpointPaths builds the three routes on the star graph that connects
// each input point to the midpoint. With only M-edges present, every
// shortest path runs through M.
func viaMidpointPaths(distAM, distBM, distCM float64) domain.RoutePaths {
	g := routegraph.New()
	g.AddEdge("A", "M", distAM)
	g.AddEdge("B", "M", distBM)
	g.AddEdge("C", "M", distCM)

	var paths domain.RoutePaths
	paths.AToBViaM, _, _ = g.ShortestPath("A", "B")
	paths.AToCViaM, _, _ = g.ShortestPath("A", "C")
	paths.BToCViaM, _, _ = g.ShortestPath("B", "C")
	return paths
}
