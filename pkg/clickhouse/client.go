package clickhouse

import (
	"context"
	"log/slog"
	"strings"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/pkg/errors"
	"github.com/pseudomuto/adapterkit/pkg/catalog"
)

type (
	// ClientOptions configures a Client.
	ClientOptions struct {
		TLSSettings

		// Logger receives debug output. Defaults to slog.Default().
		Logger *slog.Logger
	}

	// Client represents a ClickHouse database connection
	Client struct {
		conn   driver.Conn
		logger *slog.Logger
	}
)

// NewClient creates a new ClickHouse client connection.
// The DSN is either "host:port" (e.g., "localhost:9000") or a clickhouse:// URL.
//
// Example:
//
//	client, err := clickhouse.NewClient(ctx, "localhost:9000", clickhouse.ClientOptions{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	in := catalog.New(client, client.Providers())
//	objects, err := in.ListObjects(ctx, catalog.SchemaName{Schema: "analytics"}, nil)
func NewClient(ctx context.Context, dsn string, opts ClientOptions) (*Client, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	chOpts, err := parseDSN(dsn)
	if err != nil {
		return nil, err
	}

	if opts.TLSSettings.Enabled() {
		tlsConfig, err := GetTLSConfig(opts.TLSSettings)
		if err != nil {
			return nil, err
		}
		chOpts.TLS = tlsConfig
	}

	conn, err := clickhouse.Open(chOpts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open connection")
	}

	if err := conn.Ping(ctx); err != nil {
		_ = conn.Close()
		return nil, errors.Wrap(err, "failed to connect")
	}

	return &Client{conn: conn, logger: logger}, nil
}

func parseDSN(dsn string) (*clickhouse.Options, error) {
	if !strings.Contains(dsn, "://") {
		return &clickhouse.Options{Addr: []string{dsn}}, nil
	}

	opts, err := clickhouse.ParseDSN(dsn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse connection string")
	}
	return opts, nil
}

// Close closes the ClickHouse connection
func (c *Client) Close() error {
	return c.conn.Close()
}

// Query runs a read-only query. It satisfies catalog.Querier.
func (c *Client) Query(ctx context.Context, query string, args ...any) (catalog.Rows, error) {
	c.logger.Debug("Executing query", "query", query)

	rows, err := c.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Exec executes a statement that returns no rows.
func (c *Client) Exec(ctx context.Context, query string, args ...any) error {
	c.logger.Debug("Executing statement", "query", query)

	if err := c.conn.Exec(ctx, query, args...); err != nil {
		return errors.Wrap(err, "failed to execute statement")
	}
	return nil
}

// CurrentCatalog always returns an empty string. ClickHouse databases play the
// role of schemas and there is no catalog level above them.
func (c *Client) CurrentCatalog(context.Context) (string, error) {
	return "", nil
}

// CurrentDatabase returns the session's default database.
func (c *Client) CurrentDatabase(ctx context.Context) (string, error) {
	var name string
	if err := c.conn.QueryRow(ctx, "SELECT currentDatabase()").Scan(&name); err != nil {
		return "", errors.Wrap(err, "failed to query current database")
	}
	return name, nil
}
