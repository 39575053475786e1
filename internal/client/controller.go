package client

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/samirrijal/meetpoint/internal/core/domain"
	"github.com/samirrijal/meetpoint/internal/mapview"
)

// Controller orchestrates a midpoint query end to end: it validates the
// input, invokes the remote service, converts the record into annotations,
// pushes them onto the map surface, and refreshes the history panel.
type Controller struct {
	service Service
	surface *mapview.Surface
	history *HistoryPanel

	inflight atomic.Bool
}

// NewController wires the controller to its collaborators. history may be
// nil when no history panel is shown.
func NewController(service Service, surface *mapview.Surface, history *HistoryPanel) *Controller {
	return &Controller{service: service, surface: surface, history: history}
}

// Pending reports whether a submit is currently in flight; the UI keeps
// the submit control disabled while it is.
func (c *Controller) Pending() bool {
	return c.inflight.Load()
}

// Submit runs one query. Only one submit may be in flight; overlapping
// calls fail with ErrSubmitPending. Errors from the remote call are
// terminal for this attempt only, and the pending flag is released on
// every path.
//
// A history refresh failure after a successful query is logged and does
// not fail the submit: the two outcomes are independent.
func (c *Controller) Submit(ctx context.Context, cityA, cityB, cityC string) (*domain.ResultRecord, error) {
	if strings.TrimSpace(cityA) == "" || strings.TrimSpace(cityB) == "" || strings.TrimSpace(cityC) == "" {
		return nil, errors.New("all three place names are required")
	}

	if !c.inflight.CompareAndSwap(false, true) {
		return nil, ErrSubmitPending
	}
	defer c.inflight.Store(false)

	record, err := c.service.Submit(ctx, cityA, cityB, cityC)
	if err != nil {
		if qe, ok := AsQueryError(err); ok && qe.Kind == KindNetworkFailure {
			slog.Error("midpoint query failed", "error", qe.Err)
		}
		return nil, err
	}

	// The API client has already validated the record, so this only trips
	// on a Service implementation that skipped validation. The invariant
	// stands either way: an invalid record never reaches the surface.
	if !record.Valid() {
		return nil, &QueryError{Kind: KindInvalidCoordinates, Err: errors.New("record has invalid coordinates")}
	}

	if err := c.surface.SetAnnotations(record.Annotations()); err != nil {
		if errors.Is(err, mapview.ErrDisposed) {
			// The surface went away while the request was in flight; the
			// update is dropped, the query itself still succeeded.
			slog.Debug("annotation update ignored, surface disposed")
		} else {
			return record, err
		}
	}

	if c.history != nil {
		if err := c.history.Refresh(ctx); err != nil {
			slog.Warn("history refresh failed", "error", err)
		}
	}

	return record, nil
}
