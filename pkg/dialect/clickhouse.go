package dialect

import "github.com/pseudomuto/adapterkit/pkg/schema"

// ClickHouse returns the ClickHouse dialect.
//
// Integer and float columns can be widened to a larger type of the same
// signedness with ALTER TABLE ... MODIFY COLUMN. FixedString(n) can become a
// String but not a longer FixedString since the values are padded.
func ClickHouse() Dialect {
	entries := []schema.Entry{
		{Name: "String", WidensFrom: []string{"FixedString"}},
		{Name: "FixedString"},
		{Name: "Decimal", Defaults: [][]int{{10, 0}}},
		{Name: "DateTime", WidensFrom: []string{"Date"}},
		{Name: "DateTime64", Defaults: [][]int{{3}}, WidensFrom: []string{"DateTime64"}},
		{Name: "Int16", WidensFrom: []string{"Int8", "UInt8"}},
		{Name: "Int32", WidensFrom: []string{"Int8", "Int16", "UInt8", "UInt16"}},
		{Name: "Int64", WidensFrom: []string{"Int8", "Int16", "Int32", "UInt8", "UInt16", "UInt32"}},
		{Name: "UInt16", WidensFrom: []string{"UInt8"}},
		{Name: "UInt32", WidensFrom: []string{"UInt8", "UInt16"}},
		{Name: "UInt64", WidensFrom: []string{"UInt8", "UInt16", "UInt32"}},
		{Name: "Float64", WidensFrom: []string{"Float32"}},
	}
	entries = append(entries, scalars(
		"Int8", "UInt8", "Float32", "Bool", "Date", "Date32", "UUID", "IPv4", "IPv6", "JSON",
	)...)

	return Dialect{
		Name:    "clickhouse",
		Family:  FamilyClickHouse,
		entries: entries,
		aliases: map[string]string{
			"TEXT":     "String",
			"VARCHAR":  "String",
			"BOOLEAN":  "Bool",
			"TINYINT":  "Int8",
			"SMALLINT": "Int16",
			"INT":      "Int32",
			"INTEGER":  "Int32",
			"BIGINT":   "Int64",
			"FLOAT":    "Float32",
			"DOUBLE":   "Float64",
			"NUMERIC":  "Decimal",
		},
	}
}
