// Package postgres connects to engines that speak the Postgres wire protocol,
// PostgreSQL and RisingWave among them, and implements catalog discovery and
// column introspection on top of their system views.
//
// Connections go through the pgx database/sql driver. Dialect session settings
// are applied whenever the pool opens a connection:
//
//	client, err := postgres.NewClient(ctx, dsn, postgres.Options{
//		SessionSettings: []string{"SET RW_IMPLICIT_FLUSH TO true"},
//	})
//
// Catalog queries read pg_tables, pg_views and pg_matviews. Column types are
// read from information_schema.columns and returned as schema.Column values
// ready for schema.Differ.DiffColumns.
package postgres
