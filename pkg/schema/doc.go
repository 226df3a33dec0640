// Package schema decides whether a column type change can be applied in place.
//
// The package has two parts:
//
//   - Matrix: a per-dialect, immutable table that records the default
//     parameters assumed for unparameterized types (e.g. DECIMAL without
//     precision) and, for every type, which other types can be ALTERed into it
//     without truncation.
//   - Differ: compares a current and a desired TypeDescriptor and returns a
//     Decision of NO_CHANGE, SAFE_ALTER or REQUIRES_REBUILD.
//
// Widening rules are hand-curated per dialect because ALTER compatibility is an
// empirical property of each engine rather than something derivable from a
// general type hierarchy. See package dialect for the built-in matrices.
//
// Usage:
//
//	m, err := dialect.RisingWave().Matrix()
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	d := schema.NewDiffer(m)
//	decision, err := d.DecideString("VARCHAR(10)", "TEXT")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(decision) // SAFE_ALTER
//
//	// Compare complete column sets
//	current, _ := schema.ColumnsFromDefinitions("id INT, name VARCHAR(10)")
//	desired, _ := schema.ColumnsFromDefinitions("id INT, name TEXT, age INT")
//	diffs, err := d.DiffColumns(current, desired)
//
// Unknown base types are reported as *UnknownTypeError and never mapped to a
// default decision.
package schema
