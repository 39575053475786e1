// Package mapview owns the lifecycle of one interactive map and keeps its
// annotation layer in sync with the selected result. The surface is the only
// component that touches the rendering engine; everything else hands it a
// complete annotation set and lets it replace the layer wholesale.
package mapview

import (
	"errors"
	"fmt"
	"sync"

	"github.com/samirrijal/meetpoint/internal/core/domain"
)

// Surface lifecycle states.
const (
	stateUninitialized = iota
	stateReady
	stateDisposed
)

var (
	// ErrNotReady is returned for operations before Init.
	ErrNotReady = errors.New("mapview: surface not initialized")
	// ErrDisposed is returned for any operation after Dispose.
	ErrDisposed = errors.New("mapview: surface disposed")
)

// Midpoint marker styling and viewport padding are fixed display
// conventions, not configuration.
const (
	midpointRadius  = 10
	midpointColor   = "#d33"
	viewportPadding = 40
)

// Surface manages a single map instance bound to a container.
type Surface struct {
	factory RendererFactory

	mu        sync.Mutex
	state     int
	container string
	renderer  Renderer
}

// NewSurface creates an uninitialized surface. The renderer is not created
// until Init is called with a container.
func NewSurface(factory RendererFactory) *Surface {
	return &Surface{factory: factory}
}

// Init binds the surface to a rendering container and creates the map
// instance with its empty, persistent annotation layer. Calling Init again
// on the same container is a no-op; a different container is an error, as a
// surface owns exactly one map for its whole life.
func (s *Surface) Init(container string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case stateDisposed:
		return ErrDisposed
	case stateReady:
		if container == s.container {
			return nil
		}
		return fmt.Errorf("mapview: already bound to container %q", s.container)
	}

	if container == "" {
		return errors.New("mapview: container is required")
	}

	r, err := s.factory(container)
	if err != nil {
		return fmt.Errorf("create map instance: %w", err)
	}

	s.renderer = r
	s.container = container
	s.state = stateReady
	return nil
}

// SetAnnotations replaces the entire annotation layer with the given set.
// An empty set is a no-op: the existing layer and viewport stay untouched.
// When the set is exactly the canonical [A, B, C, Midpoint] four, a
// connecting polyline A → Midpoint → B → C is drawn; this is a fixed display
// convention, not a computed route. Finally the viewport is refit to the
// annotation bounds.
func (s *Surface) SetAnnotations(annotations []domain.Annotation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case stateDisposed:
		return ErrDisposed
	case stateUninitialized:
		return ErrNotReady
	}

	if len(annotations) == 0 {
		return nil
	}

	points := make([]domain.GeoPoint, len(annotations))
	for i, a := range annotations {
		if !a.Point().Valid() {
			return fmt.Errorf("mapview: annotation %s has out-of-range coordinate", a.Label)
		}
		points[i] = a.Point()
	}

	if err := s.renderer.Clear(); err != nil {
		return fmt.Errorf("clear annotation layer: %w", err)
	}

	for _, a := range annotations {
		popup := popupHTML(a)
		var err error
		if a.Label == domain.LabelMidpoint {
			err = s.renderer.AddCircleMarker(a.Point(), popup, CircleStyle{
				Radius:    midpointRadius,
				Color:     midpointColor,
				FillColor: midpointColor,
				Fill:      true,
			})
		} else {
			err = s.renderer.AddMarker(a.Point(), popup)
		}
		if err != nil {
			return fmt.Errorf("add %s marker: %w", a.Label, err)
		}
	}

	if domain.CanonicalOrder(annotations) {
		line := []domain.GeoPoint{
			annotations[0].Point(), // A
			annotations[3].Point(), // Midpoint
			annotations[1].Point(), // B
			annotations[2].Point(), // C
		}
		if err := s.renderer.DrawPolyline(line); err != nil {
			return fmt.Errorf("draw polyline: %w", err)
		}
	}

	if err := s.renderer.FitBounds(domain.BoundsOf(points), viewportPadding); err != nil {
		return fmt.Errorf("fit bounds: %w", err)
	}
	return nil
}

// Dispose releases the map instance. Safe to call more than once; every
// other operation fails with ErrDisposed afterwards.
func (s *Surface) Dispose() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == stateDisposed {
		return nil
	}

	var err error
	if s.state == stateReady {
		err = s.renderer.Release()
	}
	s.state = stateDisposed
	s.renderer = nil
	return err
}

// Ready reports whether the surface currently accepts annotation updates.
func (s *Surface) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == stateReady
}

func popupHTML(a domain.Annotation) string {
	return fmt.Sprintf("<b>%s</b><br>%s", a.Label, a.Description)
}
