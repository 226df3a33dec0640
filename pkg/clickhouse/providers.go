package clickhouse

import (
	"github.com/pseudomuto/adapterkit/pkg/catalog"
)

// systemTablesProvider selects one object kind from system.tables by engine.
type systemTablesProvider struct {
	kind      catalog.ObjectKind
	predicate string
}

// Providers returns the catalog providers for tables, views and materialized
// views, in that order.
func (c *Client) Providers() []catalog.Provider {
	return Providers()
}

// Providers returns the catalog providers for tables, views and materialized
// views, in that order.
//
// Tables exclude views, dictionaries, temporary tables and the hidden
// .inner tables that back materialized views.
func Providers() []catalog.Provider {
	return []catalog.Provider{
		systemTablesProvider{
			kind: catalog.KindTable,
			predicate: "engine NOT IN ('View', 'MaterializedView', 'LiveView', 'WindowView', 'Dictionary')" +
				" AND is_temporary = 0 AND name NOT LIKE '.inner%'",
		},
		systemTablesProvider{kind: catalog.KindView, predicate: "engine = 'View'"},
		systemTablesProvider{kind: catalog.KindMaterializedView, predicate: "engine = 'MaterializedView'"},
	}
}

func (p systemTablesProvider) Kind() catalog.ObjectKind {
	return p.kind
}

// Query binds the database and name filter positionally; clickhouse-go expands
// a slice bound to "IN ?" into a tuple.
func (p systemTablesProvider) Query(schema string, names []string) (string, []any) {
	query := "SELECT database AS schema_name, name, '" + p.kind.String() + "' AS type" +
		" FROM system.tables WHERE database = ? AND " + p.predicate
	args := []any{schema}

	if len(names) > 0 {
		query += " AND name IN ?"
		args = append(args, names)
	}

	return query + " ORDER BY name", args
}
