// Package engine composes a dialect, a live connection and the catalog
// introspector into an Adapter.
//
// Open inspects the dialect's family to pick a transport: RisingWave and
// PostgreSQL go through pgx, ClickHouse through clickhouse-go. Hosts that
// already hold a connection (or tests) can use NewAdapter directly.
//
// Example:
//
//	d, err := dialect.Lookup("risingwave")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	adapter, err := engine.Open(ctx, engine.Config{Dialect: d, URL: dsn})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer adapter.Close()
//
//	desired, _ := schema.ColumnsFromDefinitions("id BIGINT, name TEXT")
//	diff, err := adapter.DiffTable(ctx, catalog.TableName{Name: "users"}, desired)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	if diff.RequiresRebuild() {
//		// recreate the table
//	}
package engine
