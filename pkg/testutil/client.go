package testutil

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/pseudomuto/adapterkit/pkg/catalog"
	"github.com/pseudomuto/adapterkit/pkg/schema"
)

type (
	// FakeClient is an in-memory engine connection. Catalog rows are served
	// per object kind and table columns per qualified table name.
	FakeClient struct {
		Catalog string
		Objects map[catalog.ObjectKind][][3]string
		Tables  map[string][]schema.Column

		// QueryErr is returned by every catalog query when set.
		QueryErr error

		mu         sync.Mutex
		statements []string
		closed     bool
	}

	fakeProvider struct {
		kind catalog.ObjectKind
	}

	fakeRows struct {
		data [][3]string
		idx  int
	}
)

// NewFakeClient returns an empty FakeClient labelled with catalogName.
func NewFakeClient(catalogName string) *FakeClient {
	return &FakeClient{
		Catalog: catalogName,
		Objects: make(map[catalog.ObjectKind][][3]string),
		Tables:  make(map[string][]schema.Column),
	}
}

// AddObject registers a catalog row.
func (f *FakeClient) AddObject(kind catalog.ObjectKind, schemaName, name string) *FakeClient {
	f.Objects[kind] = append(f.Objects[kind], [3]string{schemaName, name, kind.String()})
	return f
}

// AddTable registers the columns of table.
func (f *FakeClient) AddTable(table catalog.TableName, cols ...schema.Column) *FakeClient {
	f.Tables[table.String()] = cols
	return f
}

func (f *FakeClient) Providers() []catalog.Provider {
	return []catalog.Provider{
		fakeProvider{kind: catalog.KindTable},
		fakeProvider{kind: catalog.KindView},
		fakeProvider{kind: catalog.KindMaterializedView},
	}
}

func (f *FakeClient) Query(_ context.Context, query string, _ ...any) (catalog.Rows, error) {
	if f.QueryErr != nil {
		return nil, f.QueryErr
	}
	return &fakeRows{data: f.Objects[catalog.ObjectKind(query)], idx: -1}, nil
}

func (f *FakeClient) Exec(_ context.Context, query string, _ ...any) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.statements = append(f.statements, query)
	return nil
}

func (f *FakeClient) CurrentCatalog(context.Context) (string, error) {
	return f.Catalog, nil
}

func (f *FakeClient) Columns(_ context.Context, table catalog.TableName) ([]schema.Column, error) {
	return f.Tables[table.String()], nil
}

func (f *FakeClient) CreateTableLike(ctx context.Context, target, source catalog.TableName) error {
	cols, ok := f.Tables[source.String()]
	if !ok {
		return errors.Errorf("relation %s does not exist", source)
	}

	f.Tables[target.String()] = cols
	return f.Exec(ctx, "CREATE TABLE "+target.String()+" LIKE "+source.String())
}

func (f *FakeClient) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.closed = true
	return nil
}

// Statements returns every statement passed to Exec.
func (f *FakeClient) Statements() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]string(nil), f.statements...)
}

// Closed reports whether Close was called.
func (f *FakeClient) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.closed
}

func (p fakeProvider) Kind() catalog.ObjectKind { return p.kind }

func (p fakeProvider) Query(schema string, names []string) (string, []any) {
	return p.kind.String(), []any{schema, names}
}

func (r *fakeRows) Next() bool {
	r.idx++
	return r.idx < len(r.data)
}

func (r *fakeRows) Scan(dest ...any) error {
	for i, d := range dest {
		*(d.(*string)) = r.data[r.idx][i]
	}
	return nil
}

func (r *fakeRows) Err() error   { return nil }
func (r *fakeRows) Close() error { return nil }
