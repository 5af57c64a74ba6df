// Package graph wraps the Neo4j driver session/transaction lifecycle
// (component A of the annotation engine) and hosts the named query
// catalog (component B). It is the only package that imports the driver
// directly; every repository depends on Client and neo4j.ManagedTransaction,
// never on *neo4j.DriverWithContext.
package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"
)

// Config carries the connection options from spec §6's config table.
type Config struct {
	URI      string
	Username string
	Password string
	Database string // "" uses the driver default database
}

// Client is the process-wide singleton wrapping the Neo4j driver. It is
// constructed once at process start (internal/config wiring in cmd/api)
// and closed once at shutdown; workers borrow sessions per request and
// release them on every code path via defer.
type Client struct {
	driver   neo4j.DriverWithContext
	database string
	log      *zap.Logger
}

// NewClient opens a driver and verifies connectivity before returning.
func NewClient(ctx context.Context, cfg Config, log *zap.Logger) (*Client, error) {
	driver, err := neo4j.NewDriverWithContext(cfg.URI, neo4j.BasicAuth(cfg.Username, cfg.Password, ""))
	if err != nil {
		return nil, fmt.Errorf("graph: open driver: %w", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		return nil, fmt.Errorf("graph: verify connectivity: %w", err)
	}
	log.Info("connection to graph store established", zap.String("uri", cfg.URI))
	return &Client{driver: driver, database: cfg.Database, log: log}, nil
}

// Close releases the driver's connection pool. Call once at process shutdown.
func (c *Client) Close(ctx context.Context) error {
	return c.driver.Close(ctx)
}

// WriteWork is the function signature passed to ExecuteWrite: it receives a
// transaction handle and returns a value. The client commits on normal
// return and rolls back on any returned error.
type WriteWork[T any] func(tx neo4j.ManagedTransaction) (T, error)

// ExecuteWrite runs fn inside a single server-side write transaction with
// the driver's deterministic-error retry behaviour. This is the only
// primitive every mutation in the system funnels through.
func ExecuteWrite[T any](ctx context.Context, c *Client, fn WriteWork[T]) (T, error) {
	session := c.driver.NewSession(ctx, neo4j.SessionConfig{DatabaseName: c.database, AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	result, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		return fn(tx)
	})
	var zero T
	if err != nil {
		return zero, err
	}
	if result == nil {
		return zero, nil
	}
	v, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("graph: unexpected write result type %T", result)
	}
	return v, nil
}

// ReadWork is the read-side counterpart of WriteWork.
type ReadWork[T any] func(tx neo4j.ManagedTransaction) (T, error)

// ExecuteRead runs fn inside an auto-committing read transaction. Reads
// that assemble a structured DTO across several queries (traversal,
// related-instances) may issue multiple Run calls inside one fn; nothing
// is ever committed by a read.
func ExecuteRead[T any](ctx context.Context, c *Client, fn ReadWork[T]) (T, error) {
	session := c.driver.NewSession(ctx, neo4j.SessionConfig{DatabaseName: c.database, AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		return fn(tx)
	})
	var zero T
	if err != nil {
		return zero, err
	}
	if result == nil {
		return zero, nil
	}
	v, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("graph: unexpected read result type %T", result)
	}
	return v, nil
}

// Single runs a query expecting at most one record, returning (nil, nil)
// when the match fails so callers can distinguish "not found" from a
// driver error without relying on exceptions.
func Single(ctx context.Context, tx neo4j.ManagedTransaction, cypher string, params map[string]any) (*neo4j.Record, error) {
	result, err := tx.Run(ctx, cypher, params)
	if err != nil {
		return nil, err
	}
	records, err := result.Collect(ctx)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[0], nil
}

// Collect runs a query and returns every matching record.
func Collect(ctx context.Context, tx neo4j.ManagedTransaction, cypher string, params map[string]any) ([]*neo4j.Record, error) {
	result, err := tx.Run(ctx, cypher, params)
	if err != nil {
		return nil, err
	}
	return result.Collect(ctx)
}

// Exec runs a query for its side effects only, consuming the result so the
// transaction can proceed.
func Exec(ctx context.Context, tx neo4j.ManagedTransaction, cypher string, params map[string]any) error {
	result, err := tx.Run(ctx, cypher, params)
	if err != nil {
		return err
	}
	_, err = result.Consume(ctx)
	return err
}
