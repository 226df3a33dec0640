package schema_test

import (
	"sync"
	"testing"

	"github.com/pkg/errors"
	. "github.com/pseudomuto/adapterkit/pkg/schema"
	"github.com/stretchr/testify/require"
)

func testMatrix(t *testing.T, opts ...MatrixOption) *Matrix {
	t.Helper()

	base := []MatrixOption{
		WithEntries(
			Entry{Name: "TEXT", WidensFrom: []string{"VARCHAR", "CHAR", "BPCHAR"}},
			Entry{Name: "VARCHAR", WidensFrom: []string{"VARCHAR", "CHAR", "BPCHAR", "TEXT"}},
			Entry{Name: "BPCHAR", WidensFrom: []string{"BPCHAR"}},
			Entry{Name: "CHAR", Defaults: [][]int{{1}}},
			Entry{Name: "DECIMAL", Defaults: [][]int{{131072 + 16383, 16383}, {0}}},
			Entry{Name: "TIMESTAMP", Defaults: [][]int{{6}}},
			Entry{Name: "INT"},
			Entry{Name: "BIGINT", WidensFrom: []string{"INT"}},
		),
		WithAliases(map[string]string{
			"CHARACTER VARYING": "VARCHAR",
			"NUMERIC":           "DECIMAL",
			"INTEGER":           "INT",
		}),
	}

	m, err := NewMatrix("test", append(base, opts...)...)
	require.NoError(t, err)
	return m
}

func TestNewMatrix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    []MatrixOption
		wantErr string
	}{
		{
			name:    "duplicate entry",
			opts:    []MatrixOption{WithEntries(Entry{Name: "TEXT"}, Entry{Name: "text"})},
			wantErr: "duplicate matrix entry for type TEXT",
		},
		{
			name:    "empty name",
			opts:    []MatrixOption{WithEntries(Entry{Name: "  "})},
			wantErr: "empty type name",
		},
		{
			name:    "empty default tuple",
			opts:    []MatrixOption{WithEntries(Entry{Name: "CHAR", Defaults: [][]int{{}}})},
			wantErr: "empty default parameter tuple",
		},
		{
			name: "alias shadows entry",
			opts: []MatrixOption{
				WithEntries(Entry{Name: "VARCHAR"}, Entry{Name: "STRING"}),
				WithAliases(map[string]string{"STRING": "VARCHAR"}),
			},
			wantErr: "registered both as an entry and as an alias",
		},
		{
			name:    "alias to unknown type",
			opts:    []MatrixOption{WithAliases(map[string]string{"STRING": "VARCHAR"})},
			wantErr: "alias STRING points at unregistered type VARCHAR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m, err := NewMatrix("test", tt.opts...)
			require.Error(t, err)
			require.Nil(t, m)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}

	t.Run("alias to unknown type with fallback", func(t *testing.T) {
		t.Parallel()

		m, err := NewMatrix("test",
			WithAliases(map[string]string{"STRING": "VARCHAR"}),
			WithUnknownTypeFallback(),
		)
		require.NoError(t, err)
		require.Equal(t, "VARCHAR", m.Canonical("string"))
		require.False(t, m.Known("string"))
	})
}

func TestMatrix_DefaultParametersFor(t *testing.T) {
	t.Parallel()

	m := testMatrix(t)

	t.Run("declared order", func(t *testing.T) {
		t.Parallel()

		defaults, err := m.DefaultParametersFor("decimal")
		require.NoError(t, err)
		require.Equal(t, [][]int{{147455, 16383}, {0}}, defaults)
	})

	t.Run("alias", func(t *testing.T) {
		t.Parallel()

		defaults, err := m.DefaultParametersFor("numeric")
		require.NoError(t, err)
		require.Equal(t, [][]int{{147455, 16383}, {0}}, defaults)
	})

	t.Run("no implicit parameters", func(t *testing.T) {
		t.Parallel()

		defaults, err := m.DefaultParametersFor("TEXT")
		require.NoError(t, err)
		require.Empty(t, defaults)
	})

	t.Run("returns copies", func(t *testing.T) {
		t.Parallel()

		defaults, err := m.DefaultParametersFor("CHAR")
		require.NoError(t, err)
		defaults[0][0] = 42

		again, err := m.DefaultParametersFor("CHAR")
		require.NoError(t, err)
		require.Equal(t, [][]int{{1}}, again)
	})

	t.Run("unknown type", func(t *testing.T) {
		t.Parallel()

		_, err := m.DefaultParametersFor("GEOMETRY")
		require.Error(t, err)
		require.True(t, errors.Is(err, ErrUnknownType))

		var unknown *UnknownTypeError
		require.True(t, errors.As(err, &unknown))
		require.Equal(t, "GEOMETRY", unknown.Type)
		require.Equal(t, "test", unknown.Dialect)
		require.Equal(t, `unknown type "GEOMETRY" for dialect test`, err.Error())
	})

	t.Run("unknown type with fallback", func(t *testing.T) {
		t.Parallel()

		fallback := testMatrix(t, WithUnknownTypeFallback())
		defaults, err := fallback.DefaultParametersFor("GEOMETRY")
		require.NoError(t, err)
		require.Empty(t, defaults)
	})
}

func TestMatrix_CanWidenWithoutRebuild(t *testing.T) {
	t.Parallel()

	m := testMatrix(t)

	tests := []struct {
		from, to string
		expected bool
	}{
		{"VARCHAR", "TEXT", true},
		{"varchar", "text", true},
		{"character varying", "TEXT", true},
		{"CHAR", "TEXT", true},
		{"BPCHAR", "TEXT", true},
		{"TEXT", "VARCHAR", true},
		{"TEXT", "BPCHAR", false},
		{"VARCHAR", "VARCHAR", true},
		{"TEXT", "TEXT", false},
		{"INT", "BIGINT", true},
		{"INTEGER", "BIGINT", true},
		{"BIGINT", "INT", false},
		{"GEOMETRY", "TEXT", false},
		{"TEXT", "GEOMETRY", false},
	}

	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.expected, m.CanWidenWithoutRebuild(tt.from, tt.to))
		})
	}
}

func TestMatrix_Entries(t *testing.T) {
	t.Parallel()

	m := testMatrix(t)
	entries := m.Entries()

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	require.Equal(t, []string{"BIGINT", "BPCHAR", "CHAR", "DECIMAL", "INT", "TEXT", "TIMESTAMP", "VARCHAR"}, names)

	require.Equal(t, []string{"BPCHAR", "CHAR", "TEXT", "VARCHAR"}, entries[7].WidensFrom)
	require.Equal(t, "VARCHAR", m.Aliases()["CHARACTER VARYING"])
	require.True(t, m.Known("integer"))
	require.False(t, m.Known("geometry"))
	require.Equal(t, "DECIMAL", m.Canonical(" numeric "))
}

func TestMatrix_ConcurrentReads(t *testing.T) {
	t.Parallel()

	m := testMatrix(t)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_, _ = m.DefaultParametersFor("DECIMAL")
				_ = m.CanWidenWithoutRebuild("VARCHAR", "TEXT")
			}
		}()
	}
	wg.Wait()
}
