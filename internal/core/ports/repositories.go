package ports

import (
	"context"

	"github.com/samirrijal/meetpoint/internal/core/domain"
)

// ResultRepository persists completed midpoint queries. History is
// append-only; List returns records in arrival order (oldest first).
type ResultRepository interface {
	Insert(ctx context.Context, record *domain.ResultRecord) error
	List(ctx context.Context, limit int) ([]domain.ResultRecord, error)
}
