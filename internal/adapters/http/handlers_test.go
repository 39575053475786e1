package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	handler "github.com/samirrijal/meetpoint/internal/adapters/http"
	"github.com/samirrijal/meetpoint/internal/core/domain"
	"github.com/samirrijal/meetpoint/internal/core/ports"
	"github.com/samirrijal/meetpoint/internal/core/usecases"
)

// ---- Mocks ----

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

type mockResultRepo struct {
	insertFn func(ctx context.Context, rec *domain.ResultRecord) error
	listFn   func(ctx context.Context, limit int) ([]domain.ResultRecord, error)
}

func (m *mockResultRepo) Insert(ctx context.Context, rec *domain.ResultRecord) error {
	if m.insertFn != nil {
		return m.insertFn(ctx, rec)
	}
	return nil
}

func (m *mockResultRepo) List(ctx context.Context, limit int) ([]domain.ResultRecord, error) {
	if m.listFn != nil {
		return m.listFn(ctx, limit)
	}
	return nil, nil
}

// ---- Test helpers ----

var testCoords = map[string]domain.GeoPoint{
	"Bilbao":   {Lat: 43.263, Lon: -2.935},
	"Madrid":   {Lat: 40.4168, Lon: -3.7038},
	"Valencia": {Lat: 39.4699, Lon: -0.3763},
}

func workingGeocoder() *mockGeocoder {
	return &mockGeocoder{
		geocodeFn: func(ctx context.Context, address string) (domain.GeoPoint, error) {
			p, ok := testCoords[address]
			if !ok {
				return domain.GeoPoint{}, fmt.Errorf("could not geocode %q", address)
			}
			return p, nil
		},
		reverseFn: func(ctx context.Context, point domain.GeoPoint) (domain.ReverseInfo, error) {
			return domain.ReverseInfo{Locality: "Medinaceli", Country: "Spain"}, nil
		},
	}
}

func setupApp(deps *handler.Dependencies) *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	handler.SetupRoutes(app, deps)
	return app
}

func makeDeps(opts ...func(*handler.Dependencies)) *handler.Dependencies {
	d := &handler.Dependencies{
		Midpoint: usecases.NewMidpointService(workingGeocoder(), &mockResultRepo{}, nil, nil),
		History:  usecases.NewHistoryService(&mockResultRepo{}, nil),
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

func readBody(t *testing.T, body io.Reader) []byte {
	t.Helper()
	b, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return b
}

func historyRecord(locality string) domain.ResultRecord {
	return domain.ResultRecord{
		CityA:    domain.ResolvedPlace{Input: "Bilbao", Lat: 43.263, Lon: -2.935},
		CityB:    domain.ResolvedPlace{Input: "Madrid", Lat: 40.4168, Lon: -3.7038},
		CityC:    domain.ResolvedPlace{Input: "Valencia", Lat: 39.4699, Lon: -0.3763},
		Midpoint: domain.Midpoint{Lat: 41.0, Lon: -2.3, Reverse: domain.ReverseInfo{Locality: locality}},
	}
}

// ---- Midpoint handler tests ----

func TestMidpoint_Success(t *testing.T) {
	var stored *domain.ResultRecord
	deps := makeDeps(func(d *handler.Dependencies) {
		d.Midpoint = usecases.NewMidpointService(workingGeocoder(), &mockResultRepo{
			insertFn: func(ctx context.Context, rec *domain.ResultRecord) error {
				stored = rec
				return nil
			},
		}, nil, nil)
	})
	app := setupApp(deps)

	body := strings.NewReader(`{"cityA":"Bilbao","cityB":"Madrid","cityC":"Valencia"}`)
	req := httptest.NewRequest("POST", "/api/midpoint", body)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, readBody(t, resp.Body))
	}

	var result domain.ResultRecord
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatal(err)
	}
	if result.CityA.Input != "Bilbao" || result.CityC.Input != "Valencia" {
		t.Errorf("unexpected inputs: %+v", result)
	}
	if result.Midpoint.Reverse.Locality != "Medinaceli" {
		t.Errorf("unexpected reverse locality: %q", result.Midpoint.Reverse.Locality)
	}
	if result.DistancesKm.AToM <= 0 || result.DistancesKm.BToM <= 0 || result.DistancesKm.CToM <= 0 {
		t.Errorf("distances must be positive: %+v", result.DistancesKm)
	}
	if stored == nil {
		t.Error("result was not persisted")
	}
}

func TestMidpoint_MissingCity(t *testing.T) {
	app := setupApp(makeDeps())

	body := strings.NewReader(`{"cityA":"Bilbao","cityB":"Madrid"}`)
	req := httptest.NewRequest("POST", "/api/midpoint", body)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 400 {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}

	var apiErr struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiErr); err != nil {
		t.Fatal(err)
	}
	if apiErr.Error == "" {
		t.Error("error response must carry a message in the error field")
	}
}

func TestMidpoint_GeocodeFailureSurfacesMessage(t *testing.T) {
	app := setupApp(makeDeps())

	body := strings.NewReader(`{"cityA":"Atlantis","cityB":"Madrid","cityC":"Valencia"}`)
	req := httptest.NewRequest("POST", "/api/midpoint", body)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 400 {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}

	b := readBody(t, resp.Body)
	if !strings.Contains(string(b), "Atlantis") {
		t.Errorf("error message should name the failing place, got %s", b)
	}
}

func TestMidpoint_GeocoderUnreachableReturns502(t *testing.T) {
	deps := makeDeps(func(d *handler.Dependencies) {
		down := &mockGeocoder{
			geocodeFn: func(ctx context.Context, address string) (domain.GeoPoint, error) {
				return domain.GeoPoint{}, fmt.Errorf("%w: connection refused", ports.ErrGeocoderUnavailable)
			},
		}
		d.Midpoint = usecases.NewMidpointService(down, &mockResultRepo{}, nil, nil)
	})
	app := setupApp(deps)

	body := strings.NewReader(`{"cityA":"Bilbao","cityB":"Madrid","cityC":"Valencia"}`)
	req := httptest.NewRequest("POST", "/api/midpoint", body)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 502 {
		t.Fatalf("expected 502 when the geocoder is unreachable, got %d", resp.StatusCode)
	}
}

func TestMidpoint_InvalidBody(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("POST", "/api/midpoint", strings.NewReader("not json"))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 400 {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

// ---- Results handler tests ----

func TestResults_ArrivalOrder(t *testing.T) {
	records := []domain.ResultRecord{
		historyRecord("Beta"),
		historyRecord("alpha"),
		historyRecord("Gamma"),
	}
	deps := makeDeps(func(d *handler.Dependencies) {
		d.History = usecases.NewHistoryService(&mockResultRepo{
			listFn: func(ctx context.Context, limit int) ([]domain.ResultRecord, error) {
				return records, nil
			},
		}, nil)
	})
	app := setupApp(deps)

	req := httptest.NewRequest("GET", "/api/results", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var out []domain.ResultRecord
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	// Without an explicit sort the wire carries the arrival sequence
	// untouched, oldest first. Clients rank it themselves.
	want := []string{"Beta", "alpha", "Gamma"}
	if len(out) != len(want) {
		t.Fatalf("expected %d records, got %d", len(want), len(out))
	}
	for i := range want {
		if got := out[i].Midpoint.Reverse.Locality; got != want[i] {
			t.Errorf("position %d: expected %q, got %q", i, want[i], got)
		}
	}
}

func TestResults_SortAscending(t *testing.T) {
	records := []domain.ResultRecord{
		historyRecord("Beta"),
		historyRecord("alpha"),
		historyRecord("Gamma"),
	}
	deps := makeDeps(func(d *handler.Dependencies) {
		d.History = usecases.NewHistoryService(&mockResultRepo{
			listFn: func(ctx context.Context, limit int) ([]domain.ResultRecord, error) {
				return records, nil
			},
		}, nil)
	})
	app := setupApp(deps)

	req := httptest.NewRequest("GET", "/api/results?sort=asc", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}

	var out []domain.ResultRecord
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	want := []string{"alpha", "Beta", "Gamma"}
	for i := range want {
		if got := out[i].Midpoint.Reverse.Locality; got != want[i] {
			t.Errorf("position %d: expected %q, got %q", i, want[i], got)
		}
	}
}

func TestResults_EmptyIsArray(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("GET", "/api/results", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}

	b := readBody(t, resp.Body)
	if !strings.HasPrefix(strings.TrimSpace(string(b)), "[") {
		t.Errorf("empty history must still be a JSON array, got %s", b)
	}
}

// ---- GraphQL tests ----

func TestGraphQL_Results(t *testing.T) {
	deps := makeDeps(func(d *handler.Dependencies) {
		d.History = usecases.NewHistoryService(&mockResultRepo{
			listFn: func(ctx context.Context, limit int) ([]domain.ResultRecord, error) {
				return []domain.ResultRecord{historyRecord("Medinaceli")}, nil
			},
		}, nil)
	})
	app := setupApp(deps)

	query := `{"query":"{ results { cityA { input } midpoint { reverse { locality } } } }"}`
	req := httptest.NewRequest("POST", "/graphql", strings.NewReader(query))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	b := readBody(t, resp.Body)
	if !strings.Contains(string(b), "Medinaceli") {
		t.Errorf("expected locality in response, got %s", b)
	}
	if strings.Contains(string(b), `"errors"`) {
		t.Errorf("unexpected graphql errors: %s", b)
	}
}

func TestGraphQL_ComputeMidpointMutation(t *testing.T) {
	app := setupApp(makeDeps())

	query := `{"query":"mutation { computeMidpoint(cityA: \"Bilbao\", cityB: \"Madrid\", cityC: \"Valencia\") { midpoint { lat lon } distancesKm { aToM } } }"}`
	req := httptest.NewRequest("POST", "/graphql", strings.NewReader(query))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	b := readBody(t, resp.Body)
	if strings.Contains(string(b), `"errors"`) {
		t.Errorf("unexpected graphql errors: %s", b)
	}
	if !strings.Contains(string(b), "aToM") {
		t.Errorf("expected distances in response, got %s", b)
	}
}

// ---- Health ----

func TestHealth(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("GET", "/health", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	b := readBody(t, resp.Body)
	if !strings.Contains(string(b), "healthy") {
		t.Errorf("unexpected health body: %s", b)
	}
}

// TestAccessLogMiddleware verifies structured access logging is emitted.
func TestAccessLogMiddleware(t *testing.T) {
	app := fiber.New()

	app.Use(handler.AccessLogMiddleware())
	app.Get("/test", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true})
	})

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("X-Request-ID", "test-req-123")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "ok") {
		t.Errorf("expected response body to contain 'ok', got %s", string(body))
	}
}
