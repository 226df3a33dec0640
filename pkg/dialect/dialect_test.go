package dialect_test

import (
	"bytes"
	"testing"

	. "github.com/pseudomuto/adapterkit/pkg/dialect"
	"github.com/pseudomuto/adapterkit/pkg/schema"
	"github.com/stretchr/testify/require"
	"gotest.tools/v3/golden"
)

func TestLookup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		expected string
		family   Family
	}{
		{name: "risingwave", expected: "risingwave", family: FamilyPostgres},
		{name: "RisingWave", expected: "risingwave", family: FamilyPostgres},
		{name: "postgres", expected: "postgres", family: FamilyPostgres},
		{name: "postgresql", expected: "postgres", family: FamilyPostgres},
		{name: "clickhouse", expected: "clickhouse", family: FamilyClickHouse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d, err := Lookup(tt.name)
			require.NoError(t, err)
			require.Equal(t, tt.expected, d.Name)
			require.Equal(t, tt.family, d.Family)
		})
	}

	_, err := Lookup("oracle")
	require.Error(t, err)
	require.Contains(t, err.Error(), `unsupported dialect "oracle" (expected one of clickhouse, postgres, risingwave)`)
}

func TestDescribe(t *testing.T) {
	t.Parallel()

	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			d, err := Lookup(name)
			require.NoError(t, err)

			m, err := d.Matrix()
			require.NoError(t, err)

			var buf bytes.Buffer
			require.NoError(t, Describe(&buf, m))
			golden.Assert(t, buf.String(), name+".golden")
		})
	}
}

func TestRisingWave(t *testing.T) {
	t.Parallel()

	d := RisingWave()
	require.Equal(t, []string{"SET RW_IMPLICIT_FLUSH TO true"}, d.SessionSettings)

	m, err := d.Matrix()
	require.NoError(t, err)

	defaults, err := m.DefaultParametersFor("DECIMAL")
	require.NoError(t, err)
	require.Equal(t, [][]int{{147455, 16383}, {0}}, defaults)

	for _, typ := range []string{"CHAR", "character"} {
		defaults, err = m.DefaultParametersFor(typ)
		require.NoError(t, err)
		require.Equal(t, [][]int{{1}}, defaults)
	}

	for _, typ := range []string{"TIME", "TIMESTAMP", "timestamp without time zone"} {
		defaults, err = m.DefaultParametersFor(typ)
		require.NoError(t, err)
		require.Equal(t, [][]int{{6}}, defaults, typ)
	}

	for _, from := range []string{"VARCHAR", "CHAR", "BPCHAR"} {
		require.True(t, m.CanWidenWithoutRebuild(from, "TEXT"), from)
	}
	for _, from := range []string{"VARCHAR", "CHAR", "BPCHAR", "TEXT"} {
		require.True(t, m.CanWidenWithoutRebuild(from, "VARCHAR"), from)
	}
	require.True(t, m.CanWidenWithoutRebuild("BPCHAR", "BPCHAR"))
	require.False(t, m.CanWidenWithoutRebuild("VARCHAR", "BPCHAR"))
	require.False(t, m.CanWidenWithoutRebuild("INT", "BIGINT"))
}

func TestRisingWave_Decisions(t *testing.T) {
	t.Parallel()

	m, err := RisingWave().Matrix()
	require.NoError(t, err)
	d := schema.NewDiffer(m)

	tests := []struct {
		current, desired string
		expected         schema.Decision
	}{
		{"VARCHAR(10)", "TEXT", schema.DecisionSafeAlter},
		{"TEXT", "VARCHAR(10)", schema.DecisionRequiresRebuild},
		{"character varying(10)", "character varying", schema.DecisionSafeAlter},
		{"BPCHAR(4)", "BPCHAR", schema.DecisionSafeAlter},
		{"CHAR", "CHAR(1)", schema.DecisionNoChange},
		{"NUMERIC", "DECIMAL(0)", schema.DecisionNoChange},
		{"DECIMAL", "DECIMAL(147455, 16383)", schema.DecisionNoChange},
		{"DECIMAL(10, 2)", "DECIMAL(8, 2)", schema.DecisionRequiresRebuild},
		{"TIMESTAMP", "TIMESTAMP(6)", schema.DecisionNoChange},
		{"TIMESTAMP(3)", "TIMESTAMP(6)", schema.DecisionRequiresRebuild},
		{"INTEGER", "INT4", schema.DecisionNoChange},
		{"INT", "BIGINT", schema.DecisionRequiresRebuild},
	}

	for _, tt := range tests {
		t.Run(tt.current+"->"+tt.desired, func(t *testing.T) {
			t.Parallel()

			decision, err := d.DecideString(tt.current, tt.desired)
			require.NoError(t, err)
			require.Equal(t, tt.expected, decision)
		})
	}

	_, err = d.DecideString("GEOMETRY", "TEXT")
	require.ErrorIs(t, err, schema.ErrUnknownType)
}

func TestPostgres(t *testing.T) {
	t.Parallel()

	d := Postgres()
	require.Empty(t, d.SessionSettings)

	m, err := d.Matrix()
	require.NoError(t, err)

	defaults, err := m.DefaultParametersFor("NUMERIC")
	require.NoError(t, err)
	require.Empty(t, defaults)

	defaults, err = m.DefaultParametersFor("time with time zone")
	require.NoError(t, err)
	require.Equal(t, [][]int{{6}}, defaults)

	require.True(t, m.CanWidenWithoutRebuild("BPCHAR", "TEXT"))
}

func TestClickHouse(t *testing.T) {
	t.Parallel()

	m, err := ClickHouse().Matrix()
	require.NoError(t, err)
	d := schema.NewDiffer(m)

	tests := []struct {
		current, desired string
		expected         schema.Decision
	}{
		{"FixedString(16)", "String", schema.DecisionSafeAlter},
		{"FixedString(16)", "FixedString(32)", schema.DecisionRequiresRebuild},
		{"Int32", "Int64", schema.DecisionSafeAlter},
		{"Int64", "Int32", schema.DecisionRequiresRebuild},
		{"Decimal", "Decimal(10, 0)", schema.DecisionNoChange},
		{"DateTime64", "DateTime64(6)", schema.DecisionSafeAlter},
		{"DateTime64(6)", "DateTime64", schema.DecisionRequiresRebuild},
		{"TEXT", "String", schema.DecisionNoChange},
	}

	for _, tt := range tests {
		t.Run(tt.current+"->"+tt.desired, func(t *testing.T) {
			t.Parallel()

			decision, err := d.DecideString(tt.current, tt.desired)
			require.NoError(t, err)
			require.Equal(t, tt.expected, decision)
		})
	}
}

func TestDialect_Extend(t *testing.T) {
	t.Parallel()

	base := RisingWave()
	ext := base.Extend(
		[]schema.Entry{
			{Name: "TEXT", WidensFrom: []string{"JSONB", "varchar"}},
			{Name: "CHAR", Defaults: [][]int{{8}}},
			{Name: "GEOMETRY"},
			{Name: "STRING"},
		},
		map[string]string{"GEO": "GEOMETRY"},
	)

	m, err := ext.Matrix()
	require.NoError(t, err)

	require.True(t, m.CanWidenWithoutRebuild("JSONB", "TEXT"))
	require.True(t, m.CanWidenWithoutRebuild("VARCHAR", "TEXT"))
	require.True(t, m.Known("geo"))
	require.Equal(t, "STRING", m.Canonical("STRING"))

	defaults, err := m.DefaultParametersFor("CHAR")
	require.NoError(t, err)
	require.Equal(t, [][]int{{8}}, defaults)

	// the receiver is untouched
	orig, err := base.Matrix()
	require.NoError(t, err)
	require.False(t, orig.CanWidenWithoutRebuild("JSONB", "TEXT"))
	require.False(t, orig.Known("GEOMETRY"))
	require.Equal(t, "VARCHAR", orig.Canonical("STRING"))

	defaults, err = orig.DefaultParametersFor("CHAR")
	require.NoError(t, err)
	require.Equal(t, [][]int{{1}}, defaults)
}
