package ports

import (
	"context"
	"errors"

	"github.com/samirrijal/meetpoint/internal/core/domain"
)

// ErrGeocoderUnavailable marks transport-level failures reaching the
// geocoding collaborator: the lookup never got an answer, as opposed to
// being rejected. Callers map it to an upstream-failure response.
var ErrGeocoderUnavailable = errors.New("geocoding service unavailable")

// Geocoder resolves place names to coordinates and coordinates back to
// address parts via the external geocoding collaborator.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (domain.GeoPoint, error)
	Reverse(ctx context.Context, point domain.GeoPoint) (domain.ReverseInfo, error)
}

// CacheService provides read-through caching.
type CacheService interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttlSeconds int) error
	Delete(ctx context.Context, key string) error
}

// EventPublisher publishes domain events to a message broker.
type EventPublisher interface {
	PublishResult(ctx context.Context, record *domain.ResultRecord) error
}
