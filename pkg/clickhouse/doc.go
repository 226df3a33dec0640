// Package clickhouse connects to ClickHouse and implements catalog discovery
// and column introspection on top of system.tables and system.columns.
//
// ClickHouse databases take the place of schemas: a catalog.SchemaName{Schema:
// "analytics"} lists the objects of the analytics database. Engines decide the
// object kind: View and MaterializedView map to views, everything else except
// dictionaries and internal tables maps to TABLE.
//
//	client, err := clickhouse.NewClient(ctx, "clickhouse://default:@localhost:9000", clickhouse.ClientOptions{})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	in := catalog.New(client, client.Providers())
//	objects, err := in.ListObjects(ctx, catalog.SchemaName{Schema: "analytics"}, nil)
//
// mTLS is enabled by setting ClientOptions.TLSSettings.
package clickhouse
