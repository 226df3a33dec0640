package clickhouse

import (
	"context"
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/adapterkit/pkg/catalog"
	"github.com/pseudomuto/adapterkit/pkg/schema"
	"github.com/pseudomuto/adapterkit/pkg/utils"
)

var (
	wrapperPattern   = regexp.MustCompile(`^(?:Nullable|LowCardinality)\((.*)\)$`)
	compositePattern = regexp.MustCompile(`^(?i:Array|Map|Tuple|Nested|Enum8|Enum16|Enum|Variant|Object|AggregateFunction|SimpleAggregateFunction)\(`)
	quotedArgsRegex  = regexp.MustCompile(`\s*,?\s*'[^']*'`)
)

// Columns returns the columns of table in declaration order, read from
// system.columns. Nullable and LowCardinality wrappers are removed and
// time zone arguments dropped, since neither affects storage width.
func (c *Client) Columns(ctx context.Context, table catalog.TableName) ([]schema.Column, error) {
	database := table.Schema
	if database == "" {
		db, err := c.CurrentDatabase(ctx)
		if err != nil {
			return nil, err
		}
		database = db
	}

	rows, err := c.conn.Query(ctx,
		"SELECT name, type FROM system.columns WHERE database = ? AND table = ? ORDER BY position",
		database, table.Name,
	)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to query columns of %s", table)
	}
	defer func() { _ = rows.Close() }()

	var cols []schema.Column
	for rows.Next() {
		var name, typ string
		if err := rows.Scan(&name, &typ); err != nil {
			return nil, errors.Wrapf(err, "failed to scan column of %s", table)
		}

		td, err := ParseColumnType(typ)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read type of column %s", name)
		}
		cols = append(cols, schema.Column{Name: name, Type: td})
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to read columns of %s", table)
	}

	if len(cols) == 0 {
		return nil, errors.Errorf("table %s not found or has no columns", table)
	}

	return cols, nil
}

// ParseColumnType converts a ClickHouse type such as
// "LowCardinality(Nullable(String))" or "DateTime64(3, 'UTC')" into a
// descriptor.
//
// Composite types (Array, Map, Tuple, Enum8, ...) have no numeric parameters.
// Their full definition becomes the base name, so two of them are only equal
// when their element types or enum values match, and the matrix decides
// whether the type is known at all.
func ParseColumnType(typ string) (schema.TypeDescriptor, error) {
	t := strings.TrimSpace(typ)
	for {
		m := wrapperPattern.FindStringSubmatch(t)
		if m == nil {
			break
		}
		t = strings.TrimSpace(m[1])
	}

	if compositePattern.MatchString(t) {
		return schema.NewTypeDescriptor(t), nil
	}

	t = quotedArgsRegex.ReplaceAllString(t, "")
	t = strings.ReplaceAll(t, "()", "")

	return schema.ParseTypeDescriptor(t)
}

// CreateTableLike creates target with the structure and engine of source. It
// is a no-op when target exists.
func (c *Client) CreateTableLike(ctx context.Context, target, source catalog.TableName) error {
	if err := c.Exec(ctx, CreateTableLikeStatement(target, source)); err != nil {
		return errors.Wrapf(err, "failed to create %s like %s", target, source)
	}
	return nil
}

// CreateTableLikeStatement renders the CREATE TABLE ... AS statement used by
// CreateTableLike.
func CreateTableLikeStatement(target, source catalog.TableName) string {
	return "CREATE TABLE IF NOT EXISTS " + utils.BacktickQualifiedName(target.Schema, target.Name) +
		" AS " + utils.BacktickQualifiedName(source.Schema, source.Name)
}
