// Package ch provides a clickhouse client over the native protocol
package ch

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

// Config configures clickhouse client
type Config struct {
	URL  string
	Role string
}

// Rows is the minimal result set iteration for ch
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
	Columns() []string
}

// CH is a clickhouse client
type CH struct {
	conn driver.Conn
}

// Open connects to clickhouse using a DSN like clickhouse://host:9000/db
func Open(ctx context.Context, cfg Config) (*CH, error) {
	opts, err := clickhouse.ParseDSN(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("ch: parse dsn: %w", err)
	}
	opts.ClientInfo = BuildClientInfo(cfg.Role, "")

	conn, err := clickhouse.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("ch: open: %w", err)
	}
	if err := conn.Ping(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ch: ping: %w", err)
	}
	return &CH{conn: conn}, nil
}

// Ping verifies connectivity
func (c *CH) Ping(ctx context.Context) error {
	if c == nil || c.conn == nil {
		return errors.New("ch: nil client")
	}
	return c.conn.Ping(ctx)
}

// Insert appends rows to table via a prepared batch
func (c *CH) Insert(ctx context.Context, table string, cols []string, rows [][]any) error {
	if c == nil || c.conn == nil {
		return errors.New("ch: nil client")
	}
	if len(rows) == 0 {
		return nil
	}
	stmt := "INSERT INTO " + table
	if len(cols) > 0 {
		stmt += " (" + strings.Join(cols, ", ") + ")"
	}
	batch, err := c.conn.PrepareBatch(ctx, stmt)
	if err != nil {
		return fmt.Errorf("ch: prepare batch: %w", err)
	}
	for _, r := range rows {
		if err := batch.Append(r...); err != nil {
			_ = batch.Abort()
			return fmt.Errorf("ch: append: %w", err)
		}
	}
	return batch.Send()
}

// Query runs a query and returns ch.Rows
func (c *CH) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	if c == nil || c.conn == nil {
		return nil, errors.New("ch: nil client")
	}
	rs, err := c.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return driverRows{r: rs}, nil
}

// Close closes the connection
func (c *CH) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// driverRows wraps driver.Rows as ch.Rows
type driverRows struct{ r driver.Rows }

func (x driverRows) Next() bool             { return x.r.Next() }
func (x driverRows) Scan(dest ...any) error { return x.r.Scan(dest...) }
func (x driverRows) Err() error             { return x.r.Err() }
func (x driverRows) Close() error           { return x.r.Close() }
func (x driverRows) Columns() []string      { return x.r.Columns() }
