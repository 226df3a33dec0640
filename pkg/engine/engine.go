package engine

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"
	"github.com/pseudomuto/adapterkit/pkg/catalog"
	"github.com/pseudomuto/adapterkit/pkg/clickhouse"
	"github.com/pseudomuto/adapterkit/pkg/dialect"
	"github.com/pseudomuto/adapterkit/pkg/postgres"
	"github.com/pseudomuto/adapterkit/pkg/schema"
)

type (
	// Client is the connection an Adapter drives. *postgres.Client and
	// *clickhouse.Client both satisfy it.
	Client interface {
		catalog.Querier

		Providers() []catalog.Provider
		Exec(ctx context.Context, query string, args ...any) error
		CurrentCatalog(ctx context.Context) (string, error)
		Columns(ctx context.Context, table catalog.TableName) ([]schema.Column, error)
		CreateTableLike(ctx context.Context, target, source catalog.TableName) error
		Close() error
	}

	// Config describes which engine to reach and how.
	Config struct {
		// Dialect selects the client family and the type rules
		Dialect dialect.Dialect

		// URL is the engine connection string
		URL string

		// ParallelDiscovery issues the catalog queries concurrently
		ParallelDiscovery bool

		// AllowUnknownTypes enables the matrix's unknown-type fallback
		AllowUnknownTypes bool

		// TLS is only used for ClickHouse
		TLS clickhouse.TLSSettings

		// Logger defaults to slog.Default()
		Logger *slog.Logger
	}

	// Adapter pairs a live connection with the dialect's type rules. It is the
	// single entry point hosts use to discover objects and classify column
	// changes.
	//
	// Example:
	//
	//	adapter, err := engine.Open(ctx, engine.Config{
	//		Dialect: dialect.RisingWave(),
	//		URL:     "postgres://root@localhost:4566/dev?sslmode=disable",
	//	})
	//	if err != nil {
	//		log.Fatal(err)
	//	}
	//	defer adapter.Close()
	//
	//	objects, err := adapter.ListObjects(ctx, catalog.SchemaName{Schema: "public"}, nil)
	//	if err != nil {
	//		log.Fatal(err)
	//	}
	//
	//	decision, err := adapter.Differ().DecideString("VARCHAR(10)", "TEXT")
	Adapter struct {
		dialect      dialect.Dialect
		client       Client
		matrix       *schema.Matrix
		differ       *schema.Differ
		introspector *catalog.Introspector
		logger       *slog.Logger
	}

	// TableDiff is the column level comparison of a live table with a desired
	// column list.
	TableDiff struct {
		Table   catalog.TableName
		Columns []schema.ColumnDiff
	}
)

// Open connects to the engine named by cfg.Dialect and returns an Adapter for
// it. Postgres-family dialects connect through pgx with the dialect's session
// settings; ClickHouse connects through clickhouse-go.
func Open(ctx context.Context, cfg Config) (*Adapter, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var (
		client Client
		err    error
	)

	switch cfg.Dialect.Family {
	case dialect.FamilyPostgres:
		client, err = postgres.NewClient(ctx, cfg.URL, postgres.Options{
			SessionSettings:   cfg.Dialect.SessionSettings,
			DatetimePrecision: cfg.Dialect.DatetimePrecision,
			Logger:            logger,
		})
	case dialect.FamilyClickHouse:
		client, err = clickhouse.NewClient(ctx, cfg.URL, clickhouse.ClientOptions{
			TLSSettings: cfg.TLS,
			Logger:      logger,
		})
	default:
		return nil, errors.Errorf("unsupported dialect family %q", cfg.Dialect.Family)
	}

	if err != nil {
		return nil, errors.Wrapf(err, "failed to connect to %s", cfg.Dialect.Name)
	}

	adapter, err := NewAdapter(cfg, client)
	if err != nil {
		_ = client.Close()
		return nil, err
	}

	logger.Info("Connected", "dialect", cfg.Dialect.Name)
	return adapter, nil
}

// NewAdapter builds an Adapter around an already open client. The adapter
// takes ownership of client; Close closes it.
func NewAdapter(cfg Config, client Client) (*Adapter, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var opts []schema.MatrixOption
	if cfg.AllowUnknownTypes {
		opts = append(opts, schema.WithUnknownTypeFallback())
	}

	m, err := cfg.Dialect.Matrix(opts...)
	if err != nil {
		return nil, err
	}

	inOpts := []catalog.Option{catalog.WithLogger(logger)}
	if cfg.ParallelDiscovery {
		inOpts = append(inOpts, catalog.WithParallelDiscovery())
	}

	return &Adapter{
		dialect:      cfg.Dialect,
		client:       client,
		matrix:       m,
		differ:       schema.NewDiffer(m),
		introspector: catalog.New(client, client.Providers(), inOpts...),
		logger:       logger,
	}, nil
}

func (a *Adapter) Dialect() dialect.Dialect            { return a.dialect }
func (a *Adapter) Client() Client                      { return a.client }
func (a *Adapter) Matrix() *schema.Matrix              { return a.matrix }
func (a *Adapter) Differ() *schema.Differ              { return a.differ }
func (a *Adapter) Introspector() *catalog.Introspector { return a.introspector }

// ListObjects lists the data objects of schemaName. When no catalog is given
// the connection's current catalog is used to label the results.
func (a *Adapter) ListObjects(ctx context.Context, schemaName catalog.SchemaName, names catalog.ObjectNameSet) ([]catalog.DataObject, error) {
	if schemaName.Catalog == "" {
		current, err := a.client.CurrentCatalog(ctx)
		if err != nil {
			return nil, err
		}
		schemaName.Catalog = current
	}

	return a.introspector.ListObjects(ctx, schemaName, names)
}

// DiffTable compares the live columns of table with desired and classifies
// each change. A table with no columns is reported as missing.
func (a *Adapter) DiffTable(ctx context.Context, table catalog.TableName, desired []schema.Column) (*TableDiff, error) {
	current, err := a.client.Columns(ctx, table)
	if err != nil {
		return nil, err
	}

	if len(current) == 0 {
		return nil, errors.Errorf("table %s does not exist or has no columns", table)
	}

	diffs, err := a.differ.DiffColumns(current, desired)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to diff %s", table)
	}

	a.logger.Debug("Diffed table", "table", table.String(), "changes", len(diffs))
	return &TableDiff{Table: table, Columns: diffs}, nil
}

// RequiresRebuild reports whether any column change forces a rebuild.
func (d *TableDiff) RequiresRebuild() bool {
	return schema.RequiresRebuild(d.Columns)
}

// Close closes the underlying client.
func (a *Adapter) Close() error {
	return a.client.Close()
}
