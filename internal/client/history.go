package client

import (
	"context"
	"fmt"
	"sync"

	"github.com/samirrijal/meetpoint/internal/core/domain"
	"github.com/samirrijal/meetpoint/internal/core/ranking"
	"github.com/samirrijal/meetpoint/internal/mapview"
)

// HistoryPanel holds the fetched history in ranked order and re-feeds a
// selected record onto the map surface. Selection goes through the exact
// same annotation conversion the controller uses, so a historical midpoint
// gets the identical caption it had when first rendered.
type HistoryPanel struct {
	service Service
	surface *mapview.Surface

	mu      sync.Mutex
	mode    ranking.Mode
	arrival []domain.ResultRecord // as fetched, arrival order
	view    []domain.ResultRecord // ranked
}

// NewHistoryPanel creates a panel in Default (most recent first) mode.
func NewHistoryPanel(service Service, surface *mapview.Surface) *HistoryPanel {
	return &HistoryPanel{service: service, surface: surface}
}

// Refresh re-fetches the whole history from the service and re-ranks it.
func (h *HistoryPanel) Refresh(ctx context.Context) error {
	records, err := h.service.Results(ctx)
	if err != nil {
		return fmt.Errorf("fetch history: %w", err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.arrival = records
	h.view = ranking.Rank(h.arrival, h.mode)
	return nil
}

// SetMode re-ranks the already-fetched history under the new mode.
func (h *HistoryPanel) SetMode(mode ranking.Mode) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.mode = mode
	h.view = ranking.Rank(h.arrival, h.mode)
}

// Entries returns the ranked records. The returned slice is a copy; the
// panel's internal state cannot be mutated through it.
func (h *HistoryPanel) Entries() []domain.ResultRecord {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]domain.ResultRecord, len(h.view))
	copy(out, h.view)
	return out
}

// Select pushes the i-th ranked record back onto the map surface.
func (h *HistoryPanel) Select(i int) error {
	h.mu.Lock()
	if i < 0 || i >= len(h.view) {
		h.mu.Unlock()
		return fmt.Errorf("history index %d out of range", i)
	}
	record := h.view[i]
	h.mu.Unlock()

	if !record.Valid() {
		return fmt.Errorf("history record %d has invalid coordinates", i)
	}
	return h.surface.SetAnnotations(record.Annotations())
}
