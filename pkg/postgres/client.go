package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pkg/errors"
	"github.com/pseudomuto/adapterkit/pkg/catalog"
)

type (
	// Options configures a Client.
	Options struct {
		// SessionSettings are executed, in order, on every new pooled connection
		// before it is handed out (e.g. "SET RW_IMPLICIT_FLUSH TO true").
		SessionSettings []string

		// DatetimePrecision reads the precision of temporal columns from
		// information_schema.columns.datetime_precision.
		DatetimePrecision bool

		// Logger receives debug output. Defaults to slog.Default().
		Logger *slog.Logger
	}

	// Client is a connection pool to a Postgres-wire engine such as PostgreSQL
	// or RisingWave.
	//
	// Example:
	//
	//	client, err := postgres.NewClient(ctx, "postgres://root@localhost:4566/dev?sslmode=disable",
	//		postgres.Options{SessionSettings: dialect.RisingWave().SessionSettings},
	//	)
	//	if err != nil {
	//		log.Fatal(err)
	//	}
	//	defer client.Close()
	//
	//	in := catalog.New(client, client.Providers())
	//	objects, err := in.ListObjects(ctx, catalog.SchemaName{Schema: "public"}, nil)
	Client struct {
		db                *sql.DB
		datetimePrecision bool
		logger            *slog.Logger
	}
)

// NewClient opens a pool through the pgx database/sql driver and pings the
// server. Session settings are applied to every connection the pool opens, so
// they survive reconnects.
func NewClient(ctx context.Context, dsn string, opts Options) (*Client, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	cfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse connection string")
	}

	settings := append([]string(nil), opts.SessionSettings...)
	db := stdlib.OpenDB(*cfg, stdlib.OptionAfterConnect(func(ctx context.Context, conn *pgx.Conn) error {
		for _, stmt := range settings {
			if _, err := conn.Exec(ctx, stmt); err != nil {
				return errors.Wrapf(err, "failed to apply session setting %q", stmt)
			}
			logger.Debug("Applied session setting", "statement", stmt)
		}
		return nil
	}))

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "failed to connect")
	}

	return &Client{db: db, datetimePrecision: opts.DatetimePrecision, logger: logger}, nil
}

// Close closes the pool.
func (c *Client) Close() error {
	return c.db.Close()
}

// Query runs a read-only query. It satisfies catalog.Querier.
func (c *Client) Query(ctx context.Context, query string, args ...any) (catalog.Rows, error) {
	c.logger.Debug("Executing query", "query", query)

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Exec runs a statement that returns no rows.
func (c *Client) Exec(ctx context.Context, query string, args ...any) error {
	c.logger.Debug("Executing statement", "query", query)

	if _, err := c.db.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(err, "failed to execute statement")
	}
	return nil
}

// CurrentCatalog returns the database the pool is connected to.
func (c *Client) CurrentCatalog(ctx context.Context) (string, error) {
	var name string
	if err := c.db.QueryRowContext(ctx, "SELECT current_database()").Scan(&name); err != nil {
		return "", errors.Wrap(err, "failed to query current catalog")
	}
	return name, nil
}
