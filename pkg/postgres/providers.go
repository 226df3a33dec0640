package postgres

import (
	"fmt"

	"github.com/lib/pq"
	"github.com/pseudomuto/adapterkit/pkg/catalog"
)

// pgCatalogProvider reads one of the pg_tables, pg_views or pg_matviews system
// views, which Postgres and RisingWave both expose.
type pgCatalogProvider struct {
	kind     catalog.ObjectKind
	relation string
	column   string
}

// Providers returns the catalog providers for tables, views and materialized
// views, in that order.
func (c *Client) Providers() []catalog.Provider {
	return Providers()
}

// Providers returns the catalog providers for tables, views and materialized
// views, in that order.
func Providers() []catalog.Provider {
	return []catalog.Provider{
		pgCatalogProvider{kind: catalog.KindTable, relation: "pg_tables", column: "tablename"},
		pgCatalogProvider{kind: catalog.KindView, relation: "pg_views", column: "viewname"},
		pgCatalogProvider{kind: catalog.KindMaterializedView, relation: "pg_matviews", column: "matviewname"},
	}
}

func (p pgCatalogProvider) Kind() catalog.ObjectKind {
	return p.kind
}

// Query pushes the schema and, when present, the name filter down as bind
// parameters.
func (p pgCatalogProvider) Query(schema string, names []string) (string, []any) {
	query := fmt.Sprintf(
		"SELECT schemaname AS schema_name, %[1]s AS name, '%[2]s' AS type FROM pg_catalog.%[3]s WHERE schemaname = $1",
		p.column, p.kind, p.relation,
	)
	args := []any{schema}

	if len(names) > 0 {
		query += fmt.Sprintf(" AND %s = ANY($2::varchar[])", p.column)
		args = append(args, pq.Array(names))
	}

	return query + " ORDER BY name", args
}
