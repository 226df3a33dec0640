package parser

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/pkg/errors"
)

var columnsParser = participle.MustBuild[ColumnList](
	participle.Lexer(typeLexer),
	participle.Elide("Whitespace"),
	participle.Unquote("QuotedIdent"),
	participle.UseLookahead(2),
)

type (
	// ColumnList is a comma separated list of column definitions, e.g. the body
	// of a CREATE TABLE statement without constraints.
	ColumnList struct {
		Columns []*ColumnDef `parser:"@@ ( ',' @@ )*"`
	}

	// ColumnDef is a single "name type" pair.
	ColumnDef struct {
		Name string    `parser:"@(Ident | QuotedIdent)"`
		Type *DataType `parser:"@@"`
	}
)

// ParseColumns parses a column definition list such as
// "id BIGINT, name VARCHAR(64), price NUMERIC(10, 2)".
//
// Column names are kept as written (quoted identifiers are unquoted) while type
// names are normalized by DataType.Name.
func ParseColumns(defs string) ([]*ColumnDef, error) {
	trimmed := strings.TrimSpace(defs)
	if trimmed == "" {
		return nil, nil
	}

	list, err := columnsParser.ParseString("", trimmed)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse column definitions")
	}

	seen := make(map[string]bool, len(list.Columns))
	for _, col := range list.Columns {
		if seen[col.Name] {
			return nil, errors.Errorf("duplicate column %q", col.Name)
		}
		seen[col.Name] = true
	}

	return list.Columns, nil
}
