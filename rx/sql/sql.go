// Package sql provides observables backed by database/sql queries.
// Queries are cold: each subscription runs its own query on its own
// goroutine, and unsubscribing cancels it.
package sql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lguimbarda/min-rx/rx/core"
)

// Scanner is a function that scans a row into a value.
type Scanner[T any] func(*sql.Rows) (T, error)

// QueryConfig tunes queries run by this package. Attach it with
// core.WithConfig(ctx, QueryConfig{...}) on the subscription context.
type QueryConfig struct {
	// Timeout bounds each query or statement. Zero means no timeout.
	Timeout time.Duration
}

func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if cfg, ok := core.GetConfig[QueryConfig](ctx); ok && cfg.Timeout > 0 {
		return context.WithTimeout(ctx, cfg.Timeout)
	}
	return context.WithCancel(ctx)
}

// Query creates a Shared observable that executes query on subscribe and
// emits one value per row. A query or scan error terminates the stream.
func Query[T any](db *sql.DB, query string, scanner Scanner[T], args ...any) core.Observable[T] {
	return core.CreateShared(func(subCtx context.Context, o core.Observer[T]) {
		go func() {
			ctx, cancel := withTimeout(subCtx)
			defer cancel()

			rows, err := db.QueryContext(ctx, query, args...)
			if err != nil {
				o.Error(fmt.Errorf("query: %w", err))
				return
			}
			defer rows.Close()

			for rows.Next() {
				value, err := scanner(rows)
				if err != nil {
					o.Error(fmt.Errorf("scan: %w", err))
					return
				}
				if o.Next(value) == core.Stop {
					return
				}
			}
			if err := rows.Err(); err != nil {
				// An unsubscribed stream ends quietly; a timeout is an error.
				if subCtx.Err() == nil {
					o.Error(fmt.Errorf("rows: %w", err))
				}
				return
			}
			o.Complete()
		}()
	})
}

// QueryRow creates a Shared observable that executes a query expecting a
// single row and emits it.
func QueryRow[T any](db *sql.DB, query string, scanner func(*sql.Row) (T, error), args ...any) core.Observable[T] {
	return core.CreateShared(func(ctx context.Context, o core.Observer[T]) {
		go func() {
			ctx, cancel := withTimeout(ctx)
			defer cancel()

			value, err := scanner(db.QueryRowContext(ctx, query, args...))
			if err != nil {
				o.Error(err)
				return
			}
			if o.Next(value) == core.Continue {
				o.Complete()
			}
		}()
	})
}

// ExecResult contains the result of an exec operation.
type ExecResult struct {
	LastInsertId int64
	RowsAffected int64
}

func execResult(result sql.Result) ExecResult {
	lastID, _ := result.LastInsertId()
	rowsAffected, _ := result.RowsAffected()
	return ExecResult{
		LastInsertId: lastID,
		RowsAffected: rowsAffected,
	}
}

// Exec creates a Shared observable that executes a statement and emits the result.
func Exec(db *sql.DB, query string, args ...any) core.Observable[ExecResult] {
	return core.CreateShared(func(ctx context.Context, o core.Observer[ExecResult]) {
		go func() {
			ctx, cancel := withTimeout(ctx)
			defer cancel()

			result, err := db.ExecContext(ctx, query, args...)
			if err != nil {
				o.Error(err)
				return
			}
			if o.Next(execResult(result)) == core.Continue {
				o.Complete()
			}
		}()
	})
}

// ExecMany creates an Operator that executes a statement for each value.
// The binder function converts the value to statement arguments. A failed
// statement terminates the stream.
func ExecMany[T any](db *sql.DB, query string, binder func(T) []any) core.Operator[T, ExecResult] {
	return core.LiftContext(func(ctx context.Context, down core.Observer[ExecResult]) core.Observer[T] {
		return &execObserver[T]{ctx: ctx, db: db, query: query, binder: binder, down: down}
	})
}

type execObserver[T any] struct {
	ctx    context.Context
	db     *sql.DB
	query  string
	binder func(T) []any
	down   core.Observer[ExecResult]
	failed bool
}

func (o *execObserver[T]) Next(v T) core.State {
	if o.failed {
		return core.Stop
	}
	ctx, cancel := withTimeout(o.ctx)
	defer cancel()

	result, err := o.db.ExecContext(ctx, o.query, o.binder(v)...)
	if err != nil {
		o.failed = true
		o.down.Error(err)
		return core.Stop
	}
	return o.down.Next(execResult(result))
}

func (o *execObserver[T]) Error(err error) { o.down.Error(err) }

func (o *execObserver[T]) Complete() { o.down.Complete() }
