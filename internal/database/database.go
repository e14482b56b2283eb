package database

import (
	"context"

	"github.com/go-faster/errors"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"github.com/iota-uz/usecase-catalog/pkg/configuration"
)

// DriverName is the database/sql driver registered by pgx's stdlib package.
const DriverName = "pgx"

// Open connects to Postgres, applies the pool limits and verifies the
// connection with a ping.
func Open(ctx context.Context, opts configuration.DatabaseOptions) (*sqlx.DB, error) {
	db, err := sqlx.Open(DriverName, opts.ConnectionString())
	if err != nil {
		return nil, errors.Wrap(err, "open database")
	}
	db.SetMaxOpenConns(opts.MaxOpenConns)
	db.SetMaxIdleConns(opts.MaxIdleConns)
	db.SetConnMaxLifetime(opts.ConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrapf(err, "ping database %s:%s", opts.Host, opts.Port)
	}
	return db, nil
}
