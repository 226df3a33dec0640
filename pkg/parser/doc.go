// Package parser provides a participle-based parser for SQL column type
// declarations and column definition lists.
//
// Type text comes from two places: the system catalog of a live engine (for
// example format_type() output such as "character varying(255)") and the
// desired schema supplied by the caller. Both are parsed into the same
// DataType AST so that the schema package can compare them.
//
// Key features:
//   - Multi-word type names ("double precision", "timestamp with time zone")
//   - Numeric parameter lists ("NUMERIC(10, 2)", "TIMESTAMP(3) WITH TIME ZONE")
//   - Array suffixes ("INTEGER[]")
//   - Quoted identifiers for column names and user-defined types
//
// Basic usage:
//
//	dt, err := parser.ParseType("numeric(10, 2)")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(dt.Name(), dt.Params()) // NUMERIC [10 2]
//
//	cols, err := parser.ParseColumns("id BIGINT, name VARCHAR(64)")
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, col := range cols {
//		fmt.Println(col.Name, col.Type)
//	}
package parser
