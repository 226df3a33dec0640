package clickhouse_test

import (
	"context"
	"testing"

	"github.com/pseudomuto/adapterkit/pkg/catalog"
	. "github.com/pseudomuto/adapterkit/pkg/clickhouse"
	"github.com/pseudomuto/adapterkit/pkg/dialect"
	"github.com/pseudomuto/adapterkit/pkg/docker"
	"github.com/pseudomuto/adapterkit/pkg/schema"
	"github.com/pseudomuto/adapterkit/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func TestNewClient_InvalidDSN(t *testing.T) {
	t.Parallel()

	_, err := NewClient(context.Background(), "clickhouse://%zz", ClientOptions{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to parse connection string")
}

func TestClient_Integration(t *testing.T) {
	dsn := testutil.StartDatabase(t, docker.EngineClickHouse)
	ctx := context.Background()

	client, err := NewClient(ctx, dsn, ClientOptions{})
	require.NoError(t, err)
	defer func() { _ = client.Close() }()

	for _, stmt := range []string{
		"CREATE DATABASE analytics",
		"CREATE TABLE analytics.events (id UInt32, name LowCardinality(String), amount Decimal(18, 4), at DateTime64(3, 'UTC'), tags Array(String)) ENGINE = MergeTree ORDER BY id",
		"CREATE VIEW analytics.events_v AS SELECT id FROM analytics.events",
		"CREATE MATERIALIZED VIEW analytics.events_mv ENGINE = MergeTree ORDER BY id AS SELECT id, amount FROM analytics.events",
	} {
		require.NoError(t, client.Exec(ctx, stmt))
	}

	cat, err := client.CurrentCatalog(ctx)
	require.NoError(t, err)
	require.Empty(t, cat)

	in := catalog.New(client, client.Providers())
	objects, err := in.ListObjects(ctx, catalog.SchemaName{Schema: "analytics"}, nil)
	require.NoError(t, err)
	require.Equal(t, []catalog.DataObject{
		{Schema: "analytics", Name: "events", Kind: catalog.KindTable},
		{Schema: "analytics", Name: "events_v", Kind: catalog.KindView},
		{Schema: "analytics", Name: "events_mv", Kind: catalog.KindMaterializedView},
	}, objects)

	objects, err = in.ListObjects(ctx, catalog.SchemaName{Schema: "analytics"}, catalog.NewObjectNameSet("events_v"))
	require.NoError(t, err)
	require.Len(t, objects, 1)

	cols, err := client.Columns(ctx, catalog.TableName{Schema: "analytics", Name: "events"})
	require.NoError(t, err)
	require.Equal(t, []schema.Column{
		{Name: "id", Type: schema.NewTypeDescriptor("UINT32")},
		{Name: "name", Type: schema.NewTypeDescriptor("STRING")},
		{Name: "amount", Type: schema.NewTypeDescriptor("DECIMAL", 18, 4)},
		{Name: "at", Type: schema.NewTypeDescriptor("DATETIME64", 3)},
		{Name: "tags", Type: schema.NewTypeDescriptor("ARRAY(STRING)")},
	}, cols)

	m, err := dialect.ClickHouse().Matrix()
	require.NoError(t, err)

	desired, err := schema.ColumnsFromDefinitions("id UInt64, name String, amount Decimal(18, 4), at DateTime64(3)")
	require.NoError(t, err)

	diffs, err := schema.NewDiffer(m).DiffColumns(cols, desired)
	require.NoError(t, err)
	require.Len(t, diffs, 2)
	require.Equal(t, "id", diffs[0].ColumnName)
	require.Equal(t, schema.DecisionSafeAlter, diffs[0].Decision)
	require.Equal(t, "tags", diffs[1].ColumnName)
	require.Equal(t, schema.ColumnDiffDrop, diffs[1].Type)

	target := catalog.TableName{Schema: "analytics", Name: "events_copy"}
	require.NoError(t, client.CreateTableLike(ctx, target, catalog.TableName{Schema: "analytics", Name: "events"}))

	copied, err := client.Columns(ctx, target)
	require.NoError(t, err)
	require.Equal(t, cols, copied)
}
