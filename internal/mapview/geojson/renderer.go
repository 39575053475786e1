// Package geojson renders a map surface into a GeoJSON document instead of
// a live tile engine. Useful for the CLI viewer and for golden-file style
// inspection of what would be drawn.
package geojson

import (
	"encoding/json"

	"github.com/samirrijal/meetpoint/internal/core/domain"
	"github.com/samirrijal/meetpoint/internal/mapview"
)

// FeatureCollection is a standard GeoJSON FeatureCollection.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
	BBox     []float64 `json:"bbox,omitempty"`
}

// Feature is a single GeoJSON feature.
type Feature struct {
	Type       string         `json:"type"`
	Geometry   Geometry       `json:"geometry"`
	Properties map[string]any `json:"properties,omitempty"`
}

// Geometry holds a Point or LineString. Coordinates are [lon, lat] pairs
// per the GeoJSON spec; LineString nests one pair per vertex.
type Geometry struct {
	Type        string `json:"type"`
	Coordinates any    `json:"coordinates"`
}

// Renderer implements mapview.Renderer by accumulating features.
type Renderer struct {
	container string
	released  bool
	features  []Feature
	bbox      []float64
	padding   int
}

// New returns a factory producing GeoJSON renderers.
func New() mapview.RendererFactory {
	return func(container string) (mapview.Renderer, error) {
		return NewRenderer(container), nil
	}
}

// NewRenderer creates a renderer for direct use, when the caller needs to
// read the document back after rendering.
func NewRenderer(container string) *Renderer {
	return &Renderer{container: container}
}

func (r *Renderer) AddMarker(p domain.GeoPoint, popup string) error {
	r.features = append(r.features, Feature{
		Type:     "Feature",
		Geometry: Geometry{Type: "Point", Coordinates: []float64{p.Lon, p.Lat}},
		Properties: map[string]any{
			"marker": "standard",
			"popup":  popup,
		},
	})
	return nil
}

func (r *Renderer) AddCircleMarker(p domain.GeoPoint, popup string, style mapview.CircleStyle) error {
	r.features = append(r.features, Feature{
		Type:     "Feature",
		Geometry: Geometry{Type: "Point", Coordinates: []float64{p.Lon, p.Lat}},
		Properties: map[string]any{
			"marker": "circle",
			"popup":  popup,
			"radius": style.Radius,
			"color":  style.Color,
			"fill":   style.Fill,
		},
	})
	return nil
}

func (r *Renderer) DrawPolyline(points []domain.GeoPoint) error {
	coords := make([][]float64, len(points))
	for i, p := range points {
		coords[i] = []float64{p.Lon, p.Lat}
	}
	r.features = append(r.features, Feature{
		Type:     "Feature",
		Geometry: Geometry{Type: "LineString", Coordinates: coords},
	})
	return nil
}

func (r *Renderer) Clear() error {
	r.features = nil
	return nil
}

func (r *Renderer) FitBounds(b domain.Bounds, padding int) error {
	r.bbox = []float64{b.MinLon, b.MinLat, b.MaxLon, b.MaxLat}
	r.padding = padding
	return nil
}

func (r *Renderer) Release() error {
	r.released = true
	r.features = nil
	r.bbox = nil
	return nil
}

// Document marshals the currently drawn state as a GeoJSON
// FeatureCollection.
func (r *Renderer) Document() ([]byte, error) {
	fc := FeatureCollection{
		Type:     "FeatureCollection",
		Features: r.features,
		BBox:     r.bbox,
	}
	if fc.Features == nil {
		fc.Features = []Feature{}
	}
	return json.MarshalIndent(fc, "", "  ")
}
