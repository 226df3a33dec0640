// Package cmd provides CLI commands for the adapterkit tool.
//
// Commands are plain functions returning a *cli.Command (urfave/cli/v3) and are
// collected into the root application through an fx value group, so adding a
// command only requires registering it in Module.
//
// # Available Commands
//
//   - objects: List the tables, views and materialized views of a schema
//   - decide: Classify a single column type change
//   - matrix: Print the dialect's type-compatibility matrix
//   - columns: Diff the live columns of a table against desired definitions
//
// # Global Options
//
//   - --config, -c: Load a configuration file other than ./adapterkit.yaml
//   - --dialect: Override the configured dialect
//   - --url, -u: Override the configured connection string
//   - --schema, -s: Override the configured schema
//   - --verbose, -v: Enable debug logging
//
// # Example Usage
//
//	adapterkit matrix
//	adapterkit decide "NUMERIC" "NUMERIC(10, 2)"
//	adapterkit --url postgres://root@localhost:4566/dev objects --parallel
//	adapterkit columns --table users --desired "id BIGINT, name TEXT"
package cmd
