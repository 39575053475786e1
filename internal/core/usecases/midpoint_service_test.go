package usecases_test

import (
	"context"
	"errors"
	"testing"

	"github.com/samirrijal/meetpoint/internal/core/domain"
	"github.com/samirrijal/meetpoint/internal/core/usecases"
)

// --- Mock Geocoder ---

type mockGeocoder struct {
	geocodeFn func(ctx context.Context, address string) (domain.GeoPoint, error)
	reverseFn func(ctx context.Context, point domain.GeoPoint) (domain.ReverseInfo, error)
}

func (m *mockGeocoder) Geocode(ctx context.Context, address string) (domain.GeoPoint, error) {
	if m.geocodeFn != nil {
		return m.geocodeFn(ctx, address)
	}
	return domain.GeoPoint{}, nil
}

func (m *mockGeocoder) Reverse(ctx context.Context, point domain.GeoPoint) (domain.ReverseInfo, error) {
	if m.reverseFn != nil {
		return m.reverseFn(ctx, point)
	}
	return domain.ReverseInfo{}, nil
}

// --- Mock ResultRepository ---

type mockResultRepo struct {
	insertFn func(ctx context.Context, record *domain.ResultRecord) error
	listFn   func(ctx context.Context, limit int) ([]domain.ResultRecord, error)
}

func (m *mockResultRepo) Insert(ctx context.Context, record *domain.ResultRecord) error {
	if m.insertFn != nil {
		return m.insertFn(ctx, record)
	}
	return nil
}

func (m *mockResultRepo) List(ctx context.Context, limit int) ([]domain.ResultRecord, error) {
	if m.listFn != nil {
		return m.listFn(ctx, limit)
	}
	return nil, nil
}

// --- Mock EventPublisher ---

type mockPublisher struct {
	publishFn func(ctx context.Context, record *domain.ResultRecord) error
}

func (m *mockPublisher) PublishResult(ctx context.Context, record *domain.ResultRecord) error {
	if m.publishFn != nil {
		return m.publishFn(ctx, record)
	}
	return nil
}

func testGeocoder() *mockGeocoder {
	coords := map[string]domain.GeoPoint{
		"Bilbao":   {Lat: 43.263, Lon: -2.935},
		"Madrid":   {Lat: 40.4168, Lon: -3.7038},
		"Valencia": {Lat: 39.4699, Lon: -0.3763},
	}
	return &mockGeocoder{
		geocodeFn: func(ctx context.Context, address string) (domain.GeoPoint, error) {
			p, ok := coords[address]
			if !ok {
				return domain.GeoPoint{}, errors.New("not found")
			}
			return p, nil
		},
		reverseFn: func(ctx context.Context, point domain.GeoPoint) (domain.ReverseInfo, error) {
			return domain.ReverseInfo{Locality: "Medinaceli", Country: "Spain"}, nil
		},
	}
}

func TestMidpointService_Compute(t *testing.T) {
	var stored *domain.ResultRecord
	repo := &mockResultRepo{
		insertFn: func(ctx context.Context, record *domain.ResultRecord) error {
			stored = record
			return nil
		},
	}

	svc := usecases.NewMidpointService(testGeocoder(), repo, nil, nil)
	rec, err := svc.Compute(context.Background(), "Bilbao", "Madrid", "Valencia")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !rec.Valid() {
		t.Fatal("computed record should have valid coordinates")
	}
	if rec.CityA.Input != "Bilbao" || rec.CityA.Lat != 43.263 {
		t.Errorf("unexpected cityA: %+v", rec.CityA)
	}
	if rec.Midpoint.Reverse.Locality != "Medinaceli" {
		t.Errorf("expected reverse locality, got %+v", rec.Midpoint.Reverse)
	}
	if rec.DistancesKm.AToM <= 0 || rec.DistancesKm.BToM <= 0 || rec.DistancesKm.CToM <= 0 {
		t.Errorf("distances should be positive: %+v", rec.DistancesKm)
	}
	if stored == nil {
		t.Error("record was not persisted")
	}
}

func TestMidpointService_ViaMidpointPaths(t *testing.T) {
	svc := usecases.NewMidpointService(testGeocoder(), &mockResultRepo{}, nil, nil)
	rec, err := svc.Compute(context.Background(), "Bilbao", "Madrid", "Valencia")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := []struct {
		name string
		path []string
		want []string
	}{
		{"A to B", rec.Graph.Paths.AToBViaM, []string{"A", "M", "B"}},
		{"A to C", rec.Graph.Paths.AToCViaM, []string{"A", "M", "C"}},
		{"B to C", rec.Graph.Paths.BToCViaM, []string{"B", "M", "C"}},
	}
	for _, tc := range cases {
		if len(tc.path) != len(tc.want) {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, tc.path)
			continue
		}
		for i := range tc.want {
			if tc.path[i] != tc.want[i] {
				t.Errorf("%s: expected %v, got %v", tc.name, tc.want, tc.path)
				break
			}
		}
	}
}

func TestMidpointService_EmptyInput(t *testing.T) {
	svc := usecases.NewMidpointService(testGeocoder(), &mockResultRepo{}, nil, nil)

	for _, in := range [][3]string{
		{"", "Madrid", "Valencia"},
		{"Bilbao", "  ", "Valencia"},
		{"Bilbao", "Madrid", ""},
	} {
		if _, err := svc.Compute(context.Background(), in[0], in[1], in[2]); err == nil {
			t.Errorf("expected error for inputs %v", in)
		}
	}
}

func TestMidpointService_GeocodeFailure(t *testing.T) {
	inserted := false
	repo := &mockResultRepo{
		insertFn: func(ctx context.Context, record *domain.ResultRecord) error {
			inserted = true
			return nil
		},
	}

	svc := usecases.NewMidpointService(testGeocoder(), repo, nil, nil)
	if _, err := svc.Compute(context.Background(), "Bilbao", "Atlantis", "Valencia"); err == nil {
		t.Fatal("expected error for unresolvable place")
	}
	if inserted {
		t.Error("failed query must not be persisted")
	}
}

func TestMidpointService_ReverseFailureDegrades(t *testing.T) {
	geocoder := testGeocoder()
	geocoder.reverseFn = func(ctx context.Context, point domain.GeoPoint) (domain.ReverseInfo, error) {
		return domain.ReverseInfo{}, errors.New("reverse service down")
	}

	svc := usecases.NewMidpointService(geocoder, &mockResultRepo{}, nil, nil)
	rec, err := svc.Compute(context.Background(), "Bilbao", "Madrid", "Valencia")
	if err != nil {
		t.Fatalf("reverse failure must not fail the query: %v", err)
	}
	if rec.Midpoint.Reverse != (domain.ReverseInfo{}) {
		t.Errorf("expected empty reverse info, got %+v", rec.Midpoint.Reverse)
	}
}

func TestMidpointService_InsertFailureNonFatal(t *testing.T) {
	repo := &mockResultRepo{
		insertFn: func(ctx context.Context, record *domain.ResultRecord) error {
			return errors.New("db down")
		},
	}

	svc := usecases.NewMidpointService(testGeocoder(), repo, nil, nil)
	if _, err := svc.Compute(context.Background(), "Bilbao", "Madrid", "Valencia"); err != nil {
		t.Fatalf("persistence failure must not fail the query: %v", err)
	}
}

func TestMidpointService_PublishesResult(t *testing.T) {
	published := false
	pub := &mockPublisher{
		publishFn: func(ctx context.Context, record *domain.ResultRecord) error {
			published = true
			return nil
		},
	}

	svc := usecases.NewMidpointService(testGeocoder(), &mockResultRepo{}, nil, pub)
	if _, err := svc.Compute(context.Background(), "Bilbao", "Madrid", "Valencia"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !published {
		t.Error("result event was not published")
	}
}
