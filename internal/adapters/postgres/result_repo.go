package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/samirrijal/meetpoint/internal/core/domain"
)

// ResultRepo implements ports.ResultRepository with pgx. Resolved places
// and coordinates land in dedicated columns for querying; the reverse
// geocode and route graph are stored as JSONB.
type ResultRepo struct {
	db *DB
}

// NewResultRepo creates a new ResultRepo.
func NewResultRepo(db *DB) *ResultRepo {
	return &ResultRepo{db: db}
}

// Insert appends one completed query. The database assigns id and
// created_at; both are written back into the record.
func (r *ResultRepo) Insert(ctx context.Context, rec *domain.ResultRecord) error {
	reverse, err := json.Marshal(rec.Midpoint.Reverse)
	if err != nil {
		return fmt.Errorf("encode reverse: %w", err)
	}
	graph, err := json.Marshal(rec.Graph)
	if err != nil {
		return fmt.Errorf("encode graph: %w", err)
	}

	err = r.db.Pool.QueryRow(ctx, `
		INSERT INTO results (
			city_a, lat_a, lon_a,
			city_b, lat_b, lon_b,
			city_c, lat_c, lon_c,
			mid_lat, mid_lon, reverse,
			dist_a_m, dist_b_m, dist_c_m, graph
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id, created_at
	`,
		rec.CityA.Input, rec.CityA.Lat, rec.CityA.Lon,
		rec.CityB.Input, rec.CityB.Lat, rec.CityB.Lon,
		rec.CityC.Input, rec.CityC.Lat, rec.CityC.Lon,
		rec.Midpoint.Lat, rec.Midpoint.Lon, reverse,
		rec.DistancesKm.AToM, rec.DistancesKm.BToM, rec.DistancesKm.CToM, graph,
	).Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert result: %w", err)
	}
	return nil
}

// List returns up to limit records in arrival order, oldest first.
func (r *ResultRepo) List(ctx context.Context, limit int) ([]domain.ResultRecord, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id,
		       city_a, lat_a, lon_a,
		       city_b, lat_b, lon_b,
		       city_c, lat_c, lon_c,
		       mid_lat, mid_lon, reverse,
		       dist_a_m, dist_b_m, dist_c_m, graph,
		       created_at
		FROM (
			SELECT * FROM results ORDER BY created_at DESC, id DESC LIMIT $1
		) recent
		ORDER BY created_at ASC, id ASC
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	var out []domain.ResultRecord
	for rows.Next() {
		var rec domain.ResultRecord
		var reverse, graph []byte
		err := rows.Scan(
			&rec.ID,
			&rec.CityA.Input, &rec.CityA.Lat, &rec.CityA.Lon,
			&rec.CityB.Input, &rec.CityB.Lat, &rec.CityB.Lon,
			&rec.CityC.Input, &rec.CityC.Lat, &rec.CityC.Lon,
			&rec.Midpoint.Lat, &rec.Midpoint.Lon, &reverse,
			&rec.DistancesKm.AToM, &rec.DistancesKm.BToM, &rec.DistancesKm.CToM, &graph,
			&rec.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		if len(reverse) > 0 {
			if err := json.Unmarshal(reverse, &rec.Midpoint.Reverse); err != nil {
				return nil, fmt.Errorf("decode reverse: %w", err)
			}
		}
		if len(graph) > 0 {
			if err := json.Unmarshal(graph, &rec.Graph); err != nil {
				return nil, fmt.Errorf("decode graph: %w", err)
			}
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
