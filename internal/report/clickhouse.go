package report

import (
	"context"
	"fmt"
	"log"

	"SessionSpectra/internal/config"
	"SessionSpectra/internal/model"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

const createTableStatement = `
CREATE TABLE IF NOT EXISTS session_counts (
    SnapshotID   UUID,
    SnapshotTime DateTime,
    Time         UInt64,
    Count        UInt64
) ENGINE = MergeTree()
PARTITION BY intDiv(Time, 2592000)
ORDER BY (Time, SnapshotTime);
`

// ClickHouseWriter inserts per-second session counts into ClickHouse.
// It implements the model.Writer interface.
type ClickHouseWriter struct {
	conn driver.Conn
}

// NewClickHouseWriter creates a new ClickHouse writer and ensures the
// session_counts table exists.
func NewClickHouseWriter(cfg config.ClickHouseConfig) (model.Writer, error) {
	conn, err := Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to clickhouse: %w", err)
	}

	if err := conn.Exec(context.Background(), createTableStatement); err != nil {
		return nil, fmt.Errorf("failed to create table: %w", err)
	}
	log.Println("Successfully connected to ClickHouse and ensured table exists.")

	return &ClickHouseWriter{conn: conn}, nil
}

// Name identifies the writer in logs.
func (w *ClickHouseWriter) Name() string {
	return "clickhouse"
}

// Connect opens a ClickHouse connection and verifies it with a ping.
func Connect(cfg config.ClickHouseConfig) (driver.Conn, error) {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{addr},
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: cfg.Username,
			Password: cfg.Password,
		},
		Debug: false,
		Compression: &clickhouse.Compression{
			Method: clickhouse.CompressionLZ4,
		},
	})
	if err != nil {
		return nil, err
	}

	if err := conn.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to ping clickhouse: %w", err)
	}

	return conn, nil
}

// Write batch-inserts one row per second of the snapshot into the
// session_counts table.
func (w *ClickHouseWriter) Write(snap *model.Snapshot) error {
	if len(snap.Counts) == 0 {
		return nil // Nothing to write
	}

	batch, err := w.conn.PrepareBatch(context.Background(), "INSERT INTO session_counts")
	if err != nil {
		return fmt.Errorf("failed to prepare batch: %w", err)
	}

	for i, count := range snap.Counts {
		err = batch.Append(
			snap.ID,
			snap.TakenAt,
			snap.Span.Begin+uint64(i),
			count,
		)
		if err != nil {
			return fmt.Errorf("failed to append count row to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("failed to send batch: %w", err)
	}

	log.Printf("Wrote %d count rows to ClickHouse for snapshot %s", len(snap.Counts), snap.ID)
	return nil
}
