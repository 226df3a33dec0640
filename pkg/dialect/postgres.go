package dialect

import "github.com/pseudomuto/adapterkit/pkg/schema"

// RisingWave returns the RisingWave dialect.
//
// DECIMAL without precision holds up to 131072 digits before the decimal point
// and 16383 after it. Some catalogs report it as scale 0, so that tuple is the
// second candidate. Every character type can be altered to TEXT or to
// unparameterized VARCHAR, and BPCHAR(n) can be altered to plain BPCHAR.
//
// Every session enables RW_IMPLICIT_FLUSH so that reads observe preceding
// writes.
func RisingWave() Dialect {
	entries := append(pgCharacterTypes(),
		schema.Entry{Name: "DECIMAL", Defaults: [][]int{{131072 + 16383, 16383}, {0}}},
		schema.Entry{Name: "TIME", Defaults: [][]int{{6}}},
		schema.Entry{Name: "TIMESTAMP", Defaults: [][]int{{6}}},
	)
	entries = append(entries, scalars(
		"BOOLEAN", "SMALLINT", "INT", "BIGINT", "INT256", "REAL", "DOUBLE PRECISION",
		"DATE", "TIMESTAMPTZ", "INTERVAL", "BYTEA", "JSONB", "SERIAL", "MAP", "STRUCT",
	)...)

	return Dialect{
		Name:            "risingwave",
		Family:          FamilyPostgres,
		SessionSettings: []string{"SET RW_IMPLICIT_FLUSH TO true"},
		entries:         entries,
		aliases:         pgAliases(),
	}
}

// Postgres returns the PostgreSQL dialect. It shares the character rules with
// RisingWave, leaves NUMERIC unbounded and defaults every temporal type to
// microsecond precision.
func Postgres() Dialect {
	entries := append(pgCharacterTypes(),
		schema.Entry{Name: "DECIMAL"},
		schema.Entry{Name: "TIME", Defaults: [][]int{{6}}},
		schema.Entry{Name: "TIMETZ", Defaults: [][]int{{6}}},
		schema.Entry{Name: "TIMESTAMP", Defaults: [][]int{{6}}},
		schema.Entry{Name: "TIMESTAMPTZ", Defaults: [][]int{{6}}},
		schema.Entry{Name: "INTERVAL", Defaults: [][]int{{6}}},
	)
	entries = append(entries, scalars(
		"BOOLEAN", "SMALLINT", "INT", "BIGINT", "REAL", "DOUBLE PRECISION", "DATE",
		"BYTEA", "JSON", "JSONB", "UUID", "SERIAL", "BIGSERIAL", "INET", "CIDR", "XML",
	)...)

	aliases := pgAliases()
	aliases["TIME WITH TIME ZONE"] = "TIMETZ"
	aliases["SERIAL8"] = "BIGSERIAL"
	aliases["SERIAL4"] = "SERIAL"

	return Dialect{
		Name:              "postgres",
		Family:            FamilyPostgres,
		DatetimePrecision: true,
		entries:           entries,
		aliases:           aliases,
	}
}

func pgCharacterTypes() []schema.Entry {
	return []schema.Entry{
		{Name: "TEXT", WidensFrom: []string{"VARCHAR", "CHAR", "BPCHAR"}},
		{Name: "VARCHAR", WidensFrom: []string{"VARCHAR", "CHAR", "BPCHAR", "TEXT"}},
		{Name: "BPCHAR", WidensFrom: []string{"BPCHAR"}},
		{Name: "CHAR", Defaults: [][]int{{1}}},
	}
}

func pgAliases() map[string]string {
	return map[string]string{
		"CHARACTER VARYING":           "VARCHAR",
		"CHARACTER":                   "CHAR",
		"STRING":                      "VARCHAR",
		"NUMERIC":                     "DECIMAL",
		"BOOL":                        "BOOLEAN",
		"INT2":                        "SMALLINT",
		"INTEGER":                     "INT",
		"INT4":                        "INT",
		"INT8":                        "BIGINT",
		"FLOAT4":                      "REAL",
		"FLOAT8":                      "DOUBLE PRECISION",
		"DOUBLE":                      "DOUBLE PRECISION",
		"TIME WITHOUT TIME ZONE":      "TIME",
		"TIMESTAMP WITHOUT TIME ZONE": "TIMESTAMP",
		"TIMESTAMP WITH TIME ZONE":    "TIMESTAMPTZ",
	}
}
