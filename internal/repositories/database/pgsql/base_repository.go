package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// dbConn is the subset of pgx operations the repositories need. Both
// *pgxpool.Pool and pgx.Tx satisfy it, which lets a repository run
// against the pool directly or inside a scoped transaction.
type dbConn interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var (
	_ dbConn = (*pgxpool.Pool)(nil)
	_ dbConn = (pgx.Tx)(nil)
)
