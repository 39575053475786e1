// Package client implements the consumer side of the midpoint service: the
// HTTP API client, the query controller that keeps the map surface in sync,
// and the history panel.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/samirrijal/meetpoint/internal/core/domain"
)

// Service is the remote geocoding-and-midpoint collaborator.
type Service interface {
	Submit(ctx context.Context, cityA, cityB, cityC string) (*domain.ResultRecord, error)
	Results(ctx context.Context) ([]domain.ResultRecord, error)
}

// APIClient talks to the midpoint service over HTTP.
type APIClient struct {
	baseURL string
	http    *http.Client
}

// NewAPIClient creates a client for the service at baseURL.
func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// wire shapes: coordinates come in as `any` so a malformed value (string,
// null) is caught by our own validation instead of a decode error.
type wirePlace struct {
	Input string `json:"input"`
	Lat   any    `json:"lat"`
	Lon   any    `json:"lon"`
}

type wireRecord struct {
	CityA    wirePlace `json:"cityA"`
	CityB    wirePlace `json:"cityB"`
	CityC    wirePlace `json:"cityC"`
	Midpoint struct {
		Lat     any                `json:"lat"`
		Lon     any                `json:"lon"`
		Reverse domain.ReverseInfo `json:"reverse"`
	} `json:"midpoint"`
	DistancesKm domain.Distances `json:"distances_km"`
	Graph       domain.Graph     `json:"graph"`
}

// Submit posts the three place names and returns the computed record.
// Failures are always a *QueryError:
//   - transport problems are KindNetworkFailure
//   - non-2xx responses are KindRemoteError with the service message verbatim
//   - a response with any non-finite coordinate is KindInvalidCoordinates
func (c *APIClient) Submit(ctx context.Context, cityA, cityB, cityC string) (*domain.ResultRecord, error) {
	body, err := json.Marshal(map[string]string{
		"cityA": cityA, "cityB": cityB, "cityC": cityC,
	})
	if err != nil {
		return nil, &QueryError{Kind: KindNetworkFailure, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/midpoint", bytes.NewReader(body))
	if err != nil {
		return nil, &QueryError{Kind: KindNetworkFailure, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &QueryError{Kind: KindNetworkFailure, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var remote struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&remote)
		if remote.Error == "" {
			remote.Error = fmt.Sprintf("midpoint service returned status %d", resp.StatusCode)
		}
		return nil, &QueryError{Kind: KindRemoteError, Message: remote.Error}
	}

	var wire wireRecord
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, &QueryError{Kind: KindNetworkFailure, Err: fmt.Errorf("decode response: %w", err)}
	}

	return recordFromWire(&wire)
}

// recordFromWire validates all eight coordinate fields and assembles the
// domain record. Any non-finite value discards the whole response.
func recordFromWire(w *wireRecord) (*domain.ResultRecord, error) {
	coords := []struct {
		name string
		v    any
	}{
		{"cityA.lat", w.CityA.Lat}, {"cityA.lon", w.CityA.Lon},
		{"cityB.lat", w.CityB.Lat}, {"cityB.lon", w.CityB.Lon},
		{"cityC.lat", w.CityC.Lat}, {"cityC.lon", w.CityC.Lon},
		{"midpoint.lat", w.Midpoint.Lat}, {"midpoint.lon", w.Midpoint.Lon},
	}

	vals := make([]float64, len(coords))
	for i, c := range coords {
		f, ok := finiteFloat(c.v)
		if !ok {
			return nil, &QueryError{
				Kind: KindInvalidCoordinates,
				Err:  fmt.Errorf("field %s is not a finite number: %v", c.name, c.v),
			}
		}
		vals[i] = f
	}

	rec := &domain.ResultRecord{
		CityA:       domain.ResolvedPlace{Input: w.CityA.Input, Lat: vals[0], Lon: vals[1]},
		CityB:       domain.ResolvedPlace{Input: w.CityB.Input, Lat: vals[2], Lon: vals[3]},
		CityC:       domain.ResolvedPlace{Input: w.CityC.Input, Lat: vals[4], Lon: vals[5]},
		Midpoint:    domain.Midpoint{Lat: vals[6], Lon: vals[7], Reverse: w.Midpoint.Reverse},
		DistancesKm: w.DistancesKm,
		Graph:       w.Graph,
	}

	if !rec.Valid() {
		return nil, &QueryError{
			Kind: KindInvalidCoordinates,
			Err:  fmt.Errorf("coordinates out of range"),
		}
	}
	return rec, nil
}

// finiteFloat coerces a decoded JSON value into a finite float64. Numbers
// must be finite; numeric strings are tolerated, anything else is rejected.
func finiteFloat(v any) (float64, bool) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case string:
		parsed, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Results fetches the full history. Per the service contract a non-array
// body is treated as an empty history, not an error.
func (c *APIClient) Results(ctx context.Context) ([]domain.ResultRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/results", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("results fetch returned status %d", resp.StatusCode)
	}

	var records []domain.ResultRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return []domain.ResultRecord{}, nil
	}
	return records, nil
}
