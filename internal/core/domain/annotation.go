package domain

import "strings"

// AnnotationLabel identifies which role an annotation plays on the map.
type AnnotationLabel string

const (
	LabelPointA   AnnotationLabel = "PointA"
	LabelPointB   AnnotationLabel = "PointB"
	LabelPointC   AnnotationLabel = "PointC"
	LabelMidpoint AnnotationLabel = "Midpoint"
)

// CentroidCaption is the midpoint description used when the reverse
// geocode came back empty.
const CentroidCaption = "Geographic centroid"

// Annotation is a renderable point derived from a ResultRecord.
// Ephemeral: rebuilt from the record on every selection.
type Annotation struct {
	Lat         float64         `json:"lat"`
	Lon         float64         `json:"lon"`
	Label       AnnotationLabel `json:"label"`
	Description string          `json:"description"`
}

// Point returns the annotation coordinate.
func (a Annotation) Point() GeoPoint {
	return GeoPoint{Lat: a.Lat, Lon: a.Lon}
}

// Annotations converts a record into its four map annotations in the
// canonical order [A, B, C, Midpoint]. Every consumer that puts a record on
// the map goes through this one function so the midpoint caption is always
// composed the same way.
func (r *ResultRecord) Annotations() []Annotation {
	return []Annotation{
		{Lat: r.CityA.Lat, Lon: r.CityA.Lon, Label: LabelPointA, Description: r.CityA.Input},
		{Lat: r.CityB.Lat, Lon: r.CityB.Lon, Label: LabelPointB, Description: r.CityB.Input},
		{Lat: r.CityC.Lat, Lon: r.CityC.Lon, Label: LabelPointC, Description: r.CityC.Input},
		{Lat: r.Midpoint.Lat, Lon: r.Midpoint.Lon, Label: LabelMidpoint, Description: r.Midpoint.Reverse.Caption()},
	}
}

// Caption composes the human-readable midpoint description: locality,
// postal code and country joined with ", ", skipping empty parts. Falls
// back to CentroidCaption when everything is empty.
func (ri ReverseInfo) Caption() string {
	var parts []string
	for _, p := range []string{ri.Locality, ri.PostalCode, ri.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return CentroidCaption
	}
	return strings.Join(parts, ", ")
}

// CanonicalOrder reports whether the annotation set is exactly the four
// canonical annotations [A, B, C, Midpoint]. Only such a set gets the
// connecting polyline drawn.
func CanonicalOrder(annotations []Annotation) bool {
	if len(annotations) != 4 {
		return false
	}
	want := []AnnotationLabel{LabelPointA, LabelPointB, LabelPointC, LabelMidpoint}
	for i, a := range annotations {
		if a.Label != want[i] {
			return false
		}
	}
	return true
}
