package clickhouse

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rostrace/rostrace/internal/pkg/database"
	"github.com/rostrace/rostrace/internal/pkg/metrics"
	"github.com/rostrace/rostrace/internal/record"
)

// RecordRepository loads trace record tables from ClickHouse. Tables are
// keyed by trace session and entity unique name; rows come back sorted
// by their leading timestamp column, which the plot layer relies on.
type RecordRepository struct {
	db *database.ClickHouseDB
}

// NewRecordRepository creates a new record repository
func NewRecordRepository(db *database.ClickHouseDB) *RecordRepository {
	return &RecordRepository{db: db}
}

// ExecutionSpans returns the callback execution span table for one
// callback: columns callback_start, callback_end in trace time (ns).
func (r *RecordRepository) ExecutionSpans(ctx context.Context, sessionID, uniqueName string) (*record.RecordTable, error) {
	query := `
		SELECT callback_start, callback_end
		FROM callback_events
		WHERE session_id = ? AND callback = ?
		ORDER BY callback_start
	`

	start := time.Now()
	rows, err := r.db.Query(ctx, query, sessionID, uniqueName)
	if err != nil {
		return nil, fmt.Errorf("failed to query callback events: %w", err)
	}
	defer rows.Close()
	metrics.RecordDBQuery("clickhouse", "execution_spans", time.Since(start))

	table := record.NewRecordTable("callback_start", "callback_end")
	for rows.Next() {
		var callbackStart, callbackEnd int64
		if err := rows.Scan(&callbackStart, &callbackEnd); err != nil {
			return nil, fmt.Errorf("failed to scan callback event: %w", err)
		}
		table.Append(record.Row{
			"callback_start": callbackStart,
			"callback_end":   callbackEnd,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read callback events: %w", err)
	}

	return table, nil
}

// Timeseries returns the metric sample table for one entity: columns
// timestamp and the metric name, both in trace units (ns for latency
// and period, Hz for frequency).
func (r *RecordRepository) Timeseries(ctx context.Context, sessionID, uniqueName string, metric record.Metric) (*record.RecordTable, error) {
	query := `
		SELECT timestamp, value
		FROM metric_samples
		WHERE session_id = ? AND entity = ? AND metric = ?
		ORDER BY timestamp
	`

	start := time.Now()
	rows, err := r.db.Query(ctx, query, sessionID, uniqueName, string(metric))
	if err != nil {
		return nil, fmt.Errorf("failed to query metric samples: %w", err)
	}
	defer rows.Close()
	metrics.RecordDBQuery("clickhouse", "timeseries", time.Since(start))

	table := record.NewRecordTable("timestamp", string(metric))
	for rows.Next() {
		var timestamp, value int64
		if err := rows.Scan(&timestamp, &value); err != nil {
			return nil, fmt.Errorf("failed to scan metric sample: %w", err)
		}
		table.Append(record.Row{
			"timestamp":    timestamp,
			string(metric): value,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read metric samples: %w", err)
	}

	return table, nil
}

// ClockConverter returns the simulation clock conversion recorded for
// the session, nil when the trace carries none.
func (r *RecordRepository) ClockConverter(ctx context.Context, sessionID string) (record.ClockConverter, error) {
	query := `
		SELECT slope, offset
		FROM clock_conversions
		WHERE session_id = ?
		ORDER BY recorded_at DESC
		LIMIT 1
	`

	var slope, offset float64
	err := r.db.QueryRow(ctx, query, sessionID).Scan(&slope, &offset)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query clock conversion: %w", err)
	}

	return record.NewLinearConverter(slope, offset), nil
}

// SessionExists reports whether any events were ingested for the session
func (r *RecordRepository) SessionExists(ctx context.Context, sessionID string) (bool, error) {
	query := `SELECT count() FROM callback_events WHERE session_id = ?`

	var count uint64
	if err := r.db.QueryRow(ctx, query, sessionID).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to count callback events: %w", err)
	}

	return count > 0, nil
}
