package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/meetpoint/internal/core/domain"
	"github.com/samirrijal/meetpoint/internal/core/ports"
	"github.com/samirrijal/meetpoint/internal/core/ranking"
	"github.com/samirrijal/meetpoint/internal/pkg/metrics"
)

// midpointRequest is the POST /api/midpoint body.
type midpointRequest struct {
	CityA string `json:"cityA"`
	CityB string `json:"cityB"`
	CityC string `json:"cityC"`
}

// MidpointHandler runs one midpoint query: geocode the three place names,
// compute the midpoint, persist the result, and return the full record.
func MidpointHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req midpointRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}

		if strings.TrimSpace(req.CityA) == "" ||
			strings.TrimSpace(req.CityB) == "" ||
			strings.TrimSpace(req.CityC) == "" {
			return errBadRequest(c, "cityA, cityB and cityC are all required")
		}

		record, err := deps.Midpoint.Compute(c.UserContext(), req.CityA, req.CityB, req.CityC)
		if err != nil {
			metrics.QueriesTotal.WithLabelValues("error").Inc()
			if errors.Is(err, ports.ErrGeocoderUnavailable) {
				return errBadGateway(c, err.Error())
			}
			// Geocoding rejections carry the place name in the message;
			// the client shows it verbatim.
			return errBadRequest(c, err.Error())
		}

		metrics.QueriesTotal.WithLabelValues("ok").Inc()
		return c.JSON(record)
	}
}

// ResultsHandler returns the query history as a plain JSON array in
// arrival order, oldest first. The optional sort parameter reorders by
// midpoint locality; clients that want the newest query on top rank the
// arrival sequence themselves.
func ResultsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := c.QueryInt("limit", 200)

		var (
			records []domain.ResultRecord
			err     error
		)
		if sort := c.Query("sort"); sort != "" {
			records, err = deps.History.Ranked(c.UserContext(), limit, ranking.ParseMode(sort))
		} else {
			records, err = deps.History.List(c.UserContext(), limit)
		}
		if err != nil {
			return errInternal(c, err.Error())
		}

		// Always an array on the wire, never null.
		if records == nil {
			records = []domain.ResultRecord{}
		}
		return c.JSON(records)
	}
}

// StatsHandler returns row counts from the results table.
func StatsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if deps.DB == nil {
			return errInternal(c, "database not available")
		}

		var stats struct {
			Results    int    `json:"results"`
			LastResult string `json:"last_result,omitempty"`
		}
		row := deps.DB.Pool.QueryRow(c.Context(), `
			SELECT
				(SELECT count(*) FROM results),
				COALESCE((SELECT max(created_at)::text FROM results), '')
		`)
		if err := row.Scan(&stats.Results, &stats.LastResult); err != nil {
			return errInternal(c, err.Error())
		}

		c.Set("Cache-Control", "public, max-age=60")
		return c.JSON(stats)
	}
}
