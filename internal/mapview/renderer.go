package mapview

import "github.com/samirrijal/meetpoint/internal/core/domain"

// CircleStyle describes the distinguished marker used for the midpoint.
type CircleStyle struct {
	Radius    int
	Color     string
	FillColor string
	Fill      bool
}

// Renderer is the contract the underlying map engine has to satisfy. The
// engine itself (tiles, panning, zooming) is a black box; the surface only
// pushes annotation content through this interface.
type Renderer interface {
	// AddMarker places a standard marker with bound popup HTML.
	AddMarker(point domain.GeoPoint, popup string) error
	// AddCircleMarker places a filled circle marker with bound popup HTML.
	AddCircleMarker(point domain.GeoPoint, popup string, style CircleStyle) error
	// DrawPolyline draws a line visiting the points in order.
	DrawPolyline(points []domain.GeoPoint) error
	// Clear removes all annotation layer content. The base tile layer and
	// the current viewport stay untouched.
	Clear() error
	// FitBounds recomputes the viewport to show the bounds with padding
	// in display units on every side.
	FitBounds(bounds domain.Bounds, padding int) error
	// Release frees the map instance and detaches all listeners.
	Release() error
}

// RendererFactory creates a renderer bound to a named container. Called
// exactly once per surface, when the container first becomes available.
type RendererFactory func(container string) (Renderer, error)
