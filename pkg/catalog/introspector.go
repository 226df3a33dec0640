package catalog

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

type (
	// Rows is the cursor returned by a Querier. *sql.Rows and the ClickHouse
	// driver rows both satisfy it.
	Rows interface {
		Next() bool
		Scan(dest ...any) error
		Err() error
		Close() error
	}

	// Querier executes read-only catalog queries.
	Querier interface {
		Query(ctx context.Context, query string, args ...any) (Rows, error)
	}

	// Provider produces the catalog query for one object kind. Every query must
	// return rows of (schema_name, name, type) where type is a literal kind
	// label such as 'TABLE'.
	Provider interface {
		Kind() ObjectKind
		Query(schema string, names []string) (string, []any)
	}

	// Introspector lists the data objects of a schema by querying every
	// provider and unioning the results.
	//
	// Example:
	//
	//	client, err := postgres.NewClient(ctx, dsn, postgres.Options{})
	//	if err != nil {
	//		log.Fatal(err)
	//	}
	//
	//	in := catalog.New(client, client.Providers(), catalog.WithParallelDiscovery())
	//	objects, err := in.ListObjects(ctx, catalog.SchemaName{Schema: "public"}, nil)
	Introspector struct {
		querier   Querier
		providers []Provider
		parallel  bool
		logger    *slog.Logger
	}

	// Option configures an Introspector.
	Option func(*Introspector)

	row struct {
		schema string
		name   string
		label  string
	}
)

// WithLogger sets the logger used for discovery debug output.
func WithLogger(l *slog.Logger) Option {
	return func(i *Introspector) {
		if l != nil {
			i.logger = l
		}
	}
}

// WithParallelDiscovery runs the provider queries concurrently. Output order is
// unchanged.
func WithParallelDiscovery() Option {
	return func(i *Introspector) {
		i.parallel = true
	}
}

// New returns an Introspector issuing the providers' queries through q.
func New(q Querier, providers []Provider, opts ...Option) *Introspector {
	i := &Introspector{
		querier:   q,
		providers: providers,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		opt(i)
	}

	return i
}

// ListObjects returns every table, view and materialized view in schema,
// restricted to names when the set is non-empty.
//
// Results are grouped by provider in registration order, and within a provider
// keep the order the engine returned them in. Duplicate rows are not removed.
// Nothing is cached: every call re-queries the catalog.
func (i *Introspector) ListObjects(ctx context.Context, schema SchemaName, names ObjectNameSet) ([]DataObject, error) {
	results := make([][]row, len(i.providers))
	filter := names.Names()

	if i.parallel {
		g, gctx := errgroup.WithContext(ctx)
		for idx, p := range i.providers {
			g.Go(func() error {
				rows, err := i.query(gctx, p, schema.Schema, filter)
				if err != nil {
					return err
				}
				results[idx] = rows
				return nil
			})
		}

		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for idx, p := range i.providers {
			rows, err := i.query(ctx, p, schema.Schema, filter)
			if err != nil {
				return nil, err
			}
			results[idx] = rows
		}
	}

	var objects []DataObject
	for _, rows := range results {
		for _, r := range rows {
			if r.schema != schema.Schema || !names.Contains(r.name) {
				continue
			}

			kind, err := ParseObjectKind(r.label)
			if err != nil {
				return nil, errors.Wrapf(err, "failed to classify %s.%s", r.schema, r.name)
			}

			objects = append(objects, DataObject{
				Catalog: schema.Catalog,
				Schema:  r.schema,
				Name:    r.name,
				Kind:    kind,
			})
		}
	}

	i.logger.Debug("Listed catalog objects",
		"schema", schema.String(),
		"filter", len(filter),
		"count", len(objects),
	)

	return objects, nil
}

func (i *Introspector) query(ctx context.Context, p Provider, schema string, names []string) ([]row, error) {
	query, args := p.Query(schema, names)

	rows, err := i.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to query %s objects", p.Kind())
	}
	defer func() { _ = rows.Close() }()

	var out []row
	for rows.Next() {
		var r row
		if err := rows.Scan(&r.schema, &r.name, &r.label); err != nil {
			return nil, errors.Wrapf(err, "failed to scan %s row", p.Kind())
		}
		out = append(out, r)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to read %s rows", p.Kind())
	}

	i.logger.Debug("Queried catalog", "kind", p.Kind().String(), "rows", len(out))
	return out, nil
}
