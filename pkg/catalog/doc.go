// Package catalog discovers the data objects of a schema through an engine's
// system catalog.
//
// Each engine contributes one Provider per object kind (tables, views,
// materialized views). The Introspector issues every provider's query through a
// Querier, unions the rows and maps their type labels to ObjectKind values:
//
//	in := catalog.New(querier, providers)
//	objects, err := in.ListObjects(ctx,
//		catalog.SchemaName{Catalog: "dev", Schema: "public"},
//		catalog.NewObjectNameSet("orders", "orders_mv"),
//	)
//
// The schema and name filters are re-applied to the returned rows, so providers
// may push them down into SQL or not. A row whose label is not a known kind
// fails the whole call with *UnknownObjectKindError.
package catalog
