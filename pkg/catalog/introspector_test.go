package catalog_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/pkg/errors"
	. "github.com/pseudomuto/adapterkit/pkg/catalog"
	"github.com/stretchr/testify/require"
)

type (
	mockProvider struct {
		kind  ObjectKind
		query string
	}

	mockQuerier struct {
		mu      sync.Mutex
		results map[string][][3]string
		errs    map[string]error
		calls   []mockCall
	}

	mockCall struct {
		query string
		args  []any
	}

	mockRows struct {
		data    [][3]string
		idx     int
		scanErr error
		closed  bool
	}
)

func (p mockProvider) Kind() ObjectKind { return p.kind }

func (p mockProvider) Query(schema string, names []string) (string, []any) {
	return p.query, []any{schema, names}
}

func (q *mockQuerier) Query(_ context.Context, query string, args ...any) (Rows, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.calls = append(q.calls, mockCall{query: query, args: args})
	if err := q.errs[query]; err != nil {
		return nil, err
	}
	return &mockRows{data: q.results[query], idx: -1}, nil
}

func (r *mockRows) Next() bool {
	r.idx++
	return r.idx < len(r.data)
}

func (r *mockRows) Scan(dest ...any) error {
	if r.scanErr != nil {
		return r.scanErr
	}
	for i, d := range dest {
		*(d.(*string)) = r.data[r.idx][i]
	}
	return nil
}

func (r *mockRows) Err() error   { return nil }
func (r *mockRows) Close() error { r.closed = true; return nil }

func defaultProviders() []Provider {
	return []Provider{
		mockProvider{kind: KindTable, query: "tables"},
		mockProvider{kind: KindView, query: "views"},
		mockProvider{kind: KindMaterializedView, query: "matviews"},
	}
}

func fixtureQuerier() *mockQuerier {
	return &mockQuerier{
		results: map[string][][3]string{
			"tables":   {{"public", "orders", "TABLE"}, {"other", "orders", "TABLE"}},
			"views":    {{"public", "orders_v", "VIEW"}},
			"matviews": {{"public", "orders_mv", "MATERIALIZED_VIEW"}},
		},
	}
}

func TestIntrospector_ListObjects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		opts     []Option
		schema   SchemaName
		names    ObjectNameSet
		expected []DataObject
	}{
		{
			name:   "all kinds",
			schema: SchemaName{Catalog: "dev", Schema: "public"},
			expected: []DataObject{
				{Catalog: "dev", Schema: "public", Name: "orders", Kind: KindTable},
				{Catalog: "dev", Schema: "public", Name: "orders_v", Kind: KindView},
				{Catalog: "dev", Schema: "public", Name: "orders_mv", Kind: KindMaterializedView},
			},
		},
		{
			name:   "name filter",
			schema: SchemaName{Schema: "public"},
			names:  NewObjectNameSet("orders_mv"),
			expected: []DataObject{
				{Schema: "public", Name: "orders_mv", Kind: KindMaterializedView},
			},
		},
		{
			name:   "empty name set is no filter",
			schema: SchemaName{Schema: "public"},
			names:  NewObjectNameSet(),
			expected: []DataObject{
				{Schema: "public", Name: "orders", Kind: KindTable},
				{Schema: "public", Name: "orders_v", Kind: KindView},
				{Schema: "public", Name: "orders_mv", Kind: KindMaterializedView},
			},
		},
		{
			name:     "empty schema",
			schema:   SchemaName{Schema: "empty"},
			expected: nil,
		},
		{
			name:     "schema match is case sensitive",
			schema:   SchemaName{Schema: "PUBLIC"},
			expected: nil,
		},
		{
			name:   "parallel keeps provider order",
			opts:   []Option{WithParallelDiscovery()},
			schema: SchemaName{Schema: "public"},
			expected: []DataObject{
				{Schema: "public", Name: "orders", Kind: KindTable},
				{Schema: "public", Name: "orders_v", Kind: KindView},
				{Schema: "public", Name: "orders_mv", Kind: KindMaterializedView},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			q := fixtureQuerier()
			in := New(q, defaultProviders(), tt.opts...)

			objects, err := in.ListObjects(context.Background(), tt.schema, tt.names)
			require.NoError(t, err)
			require.Equal(t, tt.expected, objects)
			require.Len(t, q.calls, 3)
		})
	}
}

func TestIntrospector_ListObjects_PassesFilters(t *testing.T) {
	t.Parallel()

	q := fixtureQuerier()
	in := New(q, defaultProviders())

	_, err := in.ListObjects(context.Background(), SchemaName{Schema: "public"}, NewObjectNameSet("b", "a"))
	require.NoError(t, err)

	require.Equal(t, "tables", q.calls[0].query)
	require.Equal(t, []any{"public", []string{"a", "b"}}, q.calls[0].args)

	_, err = in.ListObjects(context.Background(), SchemaName{Schema: "public"}, nil)
	require.NoError(t, err)
	require.Equal(t, []any{"public", []string(nil)}, q.calls[3].args)
}

func TestIntrospector_ListObjects_KeepsDuplicates(t *testing.T) {
	t.Parallel()

	q := &mockQuerier{results: map[string][][3]string{
		"tables": {{"public", "t", "TABLE"}},
		"views":  {{"public", "t", "TABLE"}},
	}}
	in := New(q, defaultProviders())

	objects, err := in.ListObjects(context.Background(), SchemaName{Schema: "public"}, nil)
	require.NoError(t, err)
	require.Len(t, objects, 2)
}

func TestIntrospector_ListObjects_UnknownKind(t *testing.T) {
	t.Parallel()

	q := &mockQuerier{results: map[string][][3]string{
		"tables": {{"public", "events", "SOURCE"}},
	}}
	in := New(q, defaultProviders())

	_, err := in.ListObjects(context.Background(), SchemaName{Schema: "public"}, nil)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrUnknownObjectKind))

	var kindErr *UnknownObjectKindError
	require.True(t, errors.As(err, &kindErr))
	require.Equal(t, "SOURCE", kindErr.Label)
}

func TestIntrospector_ListObjects_TransportError(t *testing.T) {
	t.Parallel()

	boom := errors.New("connection reset")

	for _, parallel := range []bool{false, true} {
		var opts []Option
		if parallel {
			opts = append(opts, WithParallelDiscovery())
		}

		q := fixtureQuerier()
		q.errs = map[string]error{"views": boom}
		in := New(q, defaultProviders(), opts...)

		objects, err := in.ListObjects(context.Background(), SchemaName{Schema: "public"}, nil)
		require.Nil(t, objects)
		require.Error(t, err)
		require.True(t, errors.Is(err, boom))
		require.True(t, strings.HasPrefix(err.Error(), "failed to query VIEW objects"))
	}
}

func TestIntrospector_ListObjects_NotCached(t *testing.T) {
	t.Parallel()

	q := fixtureQuerier()
	in := New(q, defaultProviders())
	ctx := context.Background()

	first, err := in.ListObjects(ctx, SchemaName{Schema: "public"}, nil)
	require.NoError(t, err)
	require.Len(t, first, 3)

	q.mu.Lock()
	q.results["tables"] = append(q.results["tables"], [3]string{"public", "orders_2", "TABLE"})
	q.mu.Unlock()

	second, err := in.ListObjects(ctx, SchemaName{Schema: "public"}, nil)
	require.NoError(t, err)
	require.Len(t, second, 4)
	require.Len(t, q.calls, 6)
}
