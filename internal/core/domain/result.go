package domain

import (
	"math"
	"strings"
	"time"
)

// ResolvedPlace is one user-supplied place name with its geocoded coordinate.
type ResolvedPlace struct {
	Input string  `json:"input"`
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
}

// Point returns the coordinate of the resolved place.
func (p ResolvedPlace) Point() GeoPoint {
	return GeoPoint{Lat: p.Lat, Lon: p.Lon}
}

// ReverseInfo holds the reverse-geocoded address parts of the midpoint.
// All fields are optional; an empty struct means the midpoint resolved to
// nothing nameable (open water, usually).
type ReverseInfo struct {
	Locality   string `json:"locality,omitempty"`
	Country    string `json:"country,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
}

// Midpoint is the computed spherical midpoint plus its reverse geocode.
type Midpoint struct {
	Lat     float64     `json:"lat"`
	Lon     float64     `json:"lon"`
	Reverse ReverseInfo `json:"reverse"`
}

// Point returns the midpoint coordinate.
func (m Midpoint) Point() GeoPoint {
	return GeoPoint{Lat: m.Lat, Lon: m.Lon}
}

// Distances holds the great-circle distances in kilometers between each
// input point and the midpoint.
type Distances struct {
	AToM float64 `json:"A_to_M"`
	BToM float64 `json:"B_to_M"`
	CToM float64 `json:"C_to_M"`
}

// RoutePaths holds the three via-midpoint graph routes as ordered node
// label sequences. Display-only: the map layer never interprets them.
type RoutePaths struct {
	AToBViaM []string `json:"A_to_B_via_M"`
	AToCViaM []string `json:"A_to_C_via_M"`
	BToCViaM []string `json:"B_to_C_via_M"`
}

// Graph wraps the route paths in the wire shape the API exposes.
type Graph struct {
	Paths RoutePaths `json:"paths"`
}

// ResultRecord is one complete midpoint query result. Immutable once built.
type ResultRecord struct {
	ID          string        `json:"id,omitempty"`
	CityA       ResolvedPlace `json:"cityA"`
	CityB       ResolvedPlace `json:"cityB"`
	CityC       ResolvedPlace `json:"cityC"`
	Midpoint    Midpoint      `json:"midpoint"`
	DistancesKm Distances     `json:"distances_km"`
	Graph       Graph         `json:"graph"`
	CreatedAt   time.Time     `json:"created_at,omitempty"`
}

// Points returns the four coordinates in canonical order A, B, C, midpoint.
func (r *ResultRecord) Points() []GeoPoint {
	return []GeoPoint{
		r.CityA.Point(),
		r.CityB.Point(),
		r.CityC.Point(),
		r.Midpoint.Point(),
	}
}

// Valid reports whether every coordinate in the record is a finite number
// inside the WGS 84 range. A record failing this check must never be handed
// to the map layer.
func (r *ResultRecord) Valid() bool {
	for _, p := range r.Points() {
		if math.IsNaN(p.Lat) || math.IsInf(p.Lat, 0) ||
			math.IsNaN(p.Lon) || math.IsInf(p.Lon, 0) {
			return false
		}
		if !p.Valid() {
			return false
		}
	}
	return true
}

// SortKey is the ranking key: the lowercased resolved midpoint locality,
// or "" when the midpoint resolved to nothing.
func (r *ResultRecord) SortKey() string {
	return strings.ToLower(r.Midpoint.Reverse.Locality)
}
