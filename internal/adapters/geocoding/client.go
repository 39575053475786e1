// Package geocoding implements ports.Geocoder against a hosted geocoding
// API with bearer-token auth and POST endpoints for forward and reverse
// lookups.
package geocoding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/samirrijal/meetpoint/internal/core/domain"
	"github.com/samirrijal/meetpoint/internal/core/ports"
	"github.com/samirrijal/meetpoint/internal/pkg/metrics"
)

const defaultTimeout = 10 * time.Second

// Client talks to the remote geocoding service.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// New creates a geocoding client. timeout <= 0 falls back to the default.
func New(baseURL, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: timeout},
	}
}

// envelope is the shared response wrapper. Depending on the endpoint the
// payload arrives either as a top-level "element" or nested under
// "elements.element"; both forms are accepted.
type envelope struct {
	Success  bool            `json:"success"`
	Element  json.RawMessage `json:"element"`
	Elements struct {
		Element json.RawMessage `json:"element"`
	} `json:"elements"`
	Message string `json:"message"`
}

func (e *envelope) element() (json.RawMessage, error) {
	if len(e.Element) > 0 {
		return e.Element, nil
	}
	if len(e.Elements.Element) > 0 {
		return e.Elements.Element, nil
	}
	return nil, fmt.Errorf("response has no element payload")
}

type geocodeElement struct {
	Latitude  json.Number `json:"latitude"`
	Longitude json.Number `json:"longitude"`
}

type reverseElement struct {
	City       string `json:"city"`
	Village    string `json:"village"`
	Town       string `json:"town"`
	Country    string `json:"country"`
	PostalCode string `json:"postal_code"`
}

// Geocode resolves a free-form address to coordinates.
func (c *Client) Geocode(ctx context.Context, address string) (domain.GeoPoint, error) {
	env, err := c.post(ctx, "/geocode", map[string]any{"address": address})
	if err != nil {
		return domain.GeoPoint{}, fmt.Errorf("geocode %q: %w", address, err)
	}

	raw, err := env.element()
	if err != nil {
		return domain.GeoPoint{}, fmt.Errorf("geocode %q: %w", address, err)
	}
	var el geocodeElement
	if err := json.Unmarshal(raw, &el); err != nil {
		return domain.GeoPoint{}, fmt.Errorf("geocode %q: decode element: %w", address, err)
	}

	lat, err := numberToFloat(el.Latitude)
	if err != nil {
		return domain.GeoPoint{}, fmt.Errorf("geocode %q: latitude: %w", address, err)
	}
	lon, err := numberToFloat(el.Longitude)
	if err != nil {
		return domain.GeoPoint{}, fmt.Errorf("geocode %q: longitude: %w", address, err)
	}

	p := domain.GeoPoint{Lat: lat, Lon: lon}
	if !p.Valid() {
		return domain.GeoPoint{}, fmt.Errorf("geocode %q: coordinates out of range (%f, %f)", address, lat, lon)
	}
	return p, nil
}

// Reverse resolves coordinates to address parts. Fields the remote service
// does not return stay empty.
func (c *Client) Reverse(ctx context.Context, point domain.GeoPoint) (domain.ReverseInfo, error) {
	env, err := c.post(ctx, "/reverse", map[string]any{
		"type": "coordinates",
		"lat":  point.Lat,
		"long": point.Lon,
	})
	if err != nil {
		return domain.ReverseInfo{}, fmt.Errorf("reverse (%f, %f): %w", point.Lat, point.Lon, err)
	}

	raw, err := env.element()
	if err != nil {
		return domain.ReverseInfo{}, fmt.Errorf("reverse (%f, %f): %w", point.Lat, point.Lon, err)
	}
	var el reverseElement
	if err := json.Unmarshal(raw, &el); err != nil {
		return domain.ReverseInfo{}, fmt.Errorf("reverse (%f, %f): decode element: %w", point.Lat, point.Lon, err)
	}

	return domain.ReverseInfo{
		Locality:   locality(el),
		Country:    el.Country,
		PostalCode: el.PostalCode,
	}, nil
}

// locality picks the most specific settlement name present.
func locality(el reverseElement) string {
	switch {
	case el.City != "":
		return el.City
	case el.Town != "":
		return el.Town
	case el.Village != "":
		return el.Village
	}
	return ""
}

func (c *Client) post(ctx context.Context, path string, payload map[string]any) (*envelope, error) {
	op := strings.TrimPrefix(path, "/")
	start := time.Now()
	env, err := c.doPost(ctx, path, payload)
	metrics.GeocodeDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.GeocodeErrors.WithLabelValues(op).Inc()
	}
	return env, err
}

func (c *Client) doPost(ctx context.Context, path string, payload map[string]any) (*envelope, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ports.ErrGeocoderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ports.ErrGeocoderUnavailable, resp.StatusCode)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if !env.Success {
		if env.Message != "" {
			return nil, fmt.Errorf("geocoding service rejected request: %s", env.Message)
		}
		return nil, fmt.Errorf("geocoding service rejected request")
	}
	return &env, nil
}

func numberToFloat(n json.Number) (float64, error) {
	if n == "" {
		return 0, fmt.Errorf("missing value")
	}
	return strconv.ParseFloat(n.String(), 64)
}
