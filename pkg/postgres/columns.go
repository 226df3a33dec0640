package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/pseudomuto/adapterkit/pkg/catalog"
	"github.com/pseudomuto/adapterkit/pkg/consts"
	"github.com/pseudomuto/adapterkit/pkg/schema"
)

const columnsQuery = `
	SELECT
		column_name,
		data_type,
		character_maximum_length,
		numeric_precision,
		numeric_scale,
		%s
	FROM information_schema.columns
	WHERE table_schema = $1
	  AND table_name = $2
	ORDER BY ordinal_position
`

// Columns returns the columns of table in declaration order. Character lengths,
// NUMERIC precision/scale and, when the engine reports it, the fractional
// seconds precision of temporal types become descriptor parameters. Everything
// else is reported unparameterized so that the dialect defaults apply.
func (c *Client) Columns(ctx context.Context, table catalog.TableName) ([]schema.Column, error) {
	schemaName := table.Schema
	if schemaName == "" {
		schemaName = consts.DefaultSchema
	}

	rows, err := c.db.QueryContext(ctx, c.columnsQuery(), schemaName, table.Name)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to query columns of %s", table)
	}
	defer func() { _ = rows.Close() }()

	var cols []schema.Column
	for rows.Next() {
		var (
			name string
			info columnInfo
		)

		if err := rows.Scan(&name, &info.dataType, &info.length, &info.precision, &info.scale, &info.datetimePrecision); err != nil {
			return nil, errors.Wrapf(err, "failed to scan column of %s", table)
		}

		cols = append(cols, schema.Column{Name: name, Type: describeColumn(info)})
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to read columns of %s", table)
	}

	if len(cols) == 0 {
		return nil, errors.Errorf("table %s not found or has no columns", table)
	}

	return cols, nil
}

// columnInfo is one row of information_schema.columns.
type columnInfo struct {
	dataType          string
	length            sql.NullInt64
	precision, scale  sql.NullInt64
	datetimePrecision sql.NullInt64
}

func (c *Client) columnsQuery() string {
	if c.datetimePrecision {
		return fmt.Sprintf(columnsQuery, "datetime_precision")
	}
	return fmt.Sprintf(columnsQuery, "NULL::int AS datetime_precision")
}

func describeColumn(info columnInfo) schema.TypeDescriptor {
	switch strings.ToLower(info.dataType) {
	case "numeric", "decimal":
		if info.precision.Valid {
			return schema.NewTypeDescriptor(info.dataType, int(info.precision.Int64), int(info.scale.Int64))
		}
	case "time", "time without time zone", "time with time zone", "timetz",
		"timestamp", "timestamp without time zone", "timestamp with time zone", "timestamptz",
		"interval":
		if info.datetimePrecision.Valid {
			return schema.NewTypeDescriptor(info.dataType, int(info.datetimePrecision.Int64))
		}
	default:
		if info.length.Valid {
			return schema.NewTypeDescriptor(info.dataType, int(info.length.Int64))
		}
	}
	return schema.NewTypeDescriptor(info.dataType)
}

// CreateTableLike creates target with the structure of source, including
// defaults, constraints and indexes. It is a no-op when target exists.
func (c *Client) CreateTableLike(ctx context.Context, target, source catalog.TableName) error {
	stmt := CreateTableLikeStatement(target, source)
	if err := c.Exec(ctx, stmt); err != nil {
		return errors.Wrapf(err, "failed to create %s like %s", target, source)
	}
	return nil
}

// CreateTableLikeStatement renders the CREATE TABLE ... (LIKE ...) statement
// used by CreateTableLike.
func CreateTableLikeStatement(target, source catalog.TableName) string {
	return "CREATE TABLE IF NOT EXISTS " + quoteTableName(target) +
		" (LIKE " + quoteTableName(source) + " INCLUDING ALL)"
}

func quoteTableName(t catalog.TableName) string {
	if t.Schema == "" {
		return pq.QuoteIdentifier(t.Name)
	}
	return pq.QuoteIdentifier(t.Schema) + "." + pq.QuoteIdentifier(t.Name)
}
