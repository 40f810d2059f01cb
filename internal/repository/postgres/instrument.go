package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"tradejournal/internal/metrics"
)

// instrumentedDB wraps a DBTX and feeds every query into the Prometheus
// database metrics, labeled by repository and SQL verb.
type instrumentedDB struct {
	inner      DBTX
	repository string
}

func instrument(repository string, db DBTX) DBTX {
	return &instrumentedDB{inner: db, repository: repository}
}

// queryOperation extracts the leading SQL verb for the operation label
func queryOperation(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return "unknown"
	}
	return strings.ToLower(fields[0])
}

func (d *instrumentedDB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	result, err := d.inner.ExecContext(ctx, query, args...)
	metrics.RecordDBQuery(d.repository, queryOperation(query), time.Since(start), err)
	return result, err
}

func (d *instrumentedDB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := d.inner.QueryContext(ctx, query, args...)
	metrics.RecordDBQuery(d.repository, queryOperation(query), time.Since(start), err)
	return rows, err
}

func (d *instrumentedDB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := d.inner.QueryRowContext(ctx, query, args...)
	metrics.RecordDBQuery(d.repository, queryOperation(query), time.Since(start), nil)
	return row
}

func (d *instrumentedDB) GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	start := time.Now()
	err := d.inner.GetContext(ctx, dest, query, args...)
	metrics.RecordDBQuery(d.repository, queryOperation(query), time.Since(start), err)
	return err
}

func (d *instrumentedDB) SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	start := time.Now()
	err := d.inner.SelectContext(ctx, dest, query, args...)
	metrics.RecordDBQuery(d.repository, queryOperation(query), time.Since(start), err)
	return err
}

func (d *instrumentedDB) NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error) {
	start := time.Now()
	result, err := d.inner.NamedExecContext(ctx, query, arg)
	metrics.RecordDBQuery(d.repository, queryOperation(query), time.Since(start), err)
	return result, err
}
