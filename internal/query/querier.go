package query

import (
	"context"
	"fmt"

	"SessionSpectra/internal/config"
	"SessionSpectra/internal/report"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

// CountPoint is one second of the concurrency report.
type CountPoint struct {
	Time  uint64 `json:"time"`
	Count uint64 `json:"count"`
}

// Querier defines the interface for querying the session count store.
type Querier interface {
	// CountsInRange returns the per-second counts for every second in
	// [from, to], ascending. Seconds covered by multiple snapshots resolve
	// to the most recent snapshot's value.
	CountsInRange(ctx context.Context, from, to uint64) ([]CountPoint, error)

	// Peak returns the second with the highest count in [from, to].
	Peak(ctx context.Context, from, to uint64) (CountPoint, error)
}

// clickhouseQuerier implements the Querier interface for ClickHouse.
type clickhouseQuerier struct {
	conn driver.Conn
}

// NewClickHouseQuerier creates a new querier for ClickHouse.
func NewClickHouseQuerier(cfg config.ClickHouseConfig) (Querier, error) {
	conn, err := report.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to clickhouse: %w", err)
	}
	return &clickhouseQuerier{conn: conn}, nil
}

const countsInRangeQuery = `
	SELECT
		Time,
		argMax(Count, SnapshotTime) AS Count
	FROM session_counts
	WHERE Time >= ? AND Time <= ?
	GROUP BY Time
	ORDER BY Time
`

// CountsInRange builds and executes the range query.
func (q *clickhouseQuerier) CountsInRange(ctx context.Context, from, to uint64) ([]CountPoint, error) {
	rows, err := q.conn.Query(ctx, countsInRangeQuery, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to execute range query: %w", err)
	}
	defer rows.Close()

	var points []CountPoint
	for rows.Next() {
		var point CountPoint
		if err := rows.Scan(&point.Time, &point.Count); err != nil {
			return nil, fmt.Errorf("failed to scan count row: %w", err)
		}
		points = append(points, point)
	}

	return points, nil
}

const peakQuery = `
	SELECT Time, Count
	FROM (
		SELECT
			Time,
			argMax(Count, SnapshotTime) AS Count
		FROM session_counts
		WHERE Time >= ? AND Time <= ?
		GROUP BY Time
	)
	ORDER BY Count DESC, Time ASC
	LIMIT 1
`

// Peak executes the peak-concurrency query.
func (q *clickhouseQuerier) Peak(ctx context.Context, from, to uint64) (CountPoint, error) {
	var point CountPoint
	row := q.conn.QueryRow(ctx, peakQuery, from, to)
	if err := row.Scan(&point.Time, &point.Count); err != nil {
		return CountPoint{}, fmt.Errorf("failed to scan peak result: %w", err)
	}
	return point, nil
}
