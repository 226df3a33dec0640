package parser

import (
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"
)

var (
	// typeLexer tokenizes column type declarations such as "NUMERIC(10, 2)" or
	// "timestamp(3) with time zone".
	typeLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "QuotedIdent", Pattern: `"([^"]|"")*"`},
		{Name: "Number", Pattern: `\d+`},
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
		{Name: "Punct", Pattern: `[(),\[\]]`},
		{Name: "Whitespace", Pattern: `\s+`},
	})

	typeParser = participle.MustBuild[DataType](
		participle.Lexer(typeLexer),
		participle.Elide("Whitespace"),
		participle.Unquote("QuotedIdent"),
		participle.UseLookahead(2),
	)
)

type (
	// DataType is the parsed form of a column type declaration.
	//
	// Multi-word names are supported both before and after the parameter list so
	// that dialect spellings such as "character varying(255)" and
	// "timestamp(3) with time zone" parse into a single base name.
	DataType struct {
		Words      []string `parser:"@(Ident | QuotedIdent)+"`
		Parameters []int    `parser:"( '(' @Number ( ',' @Number )* ')' )?"`
		Suffix     []string `parser:"@Ident*"`
		Array      bool     `parser:"@( '[' ']' )?"`
	}
)

// ParseType parses a single column type declaration.
//
// Example:
//
//	dt, err := parser.ParseType("character varying(255)")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	fmt.Println(dt.Name())   // CHARACTER VARYING
//	fmt.Println(dt.Params()) // [255]
func ParseType(typ string) (*DataType, error) {
	trimmed := strings.TrimSpace(typ)
	if trimmed == "" {
		return nil, errors.New("type declaration is empty")
	}

	dt, err := typeParser.ParseString("", trimmed)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse type %q", typ)
	}

	return dt, nil
}

// Name returns the upper-cased base type name with all words joined by a single
// space. Array types carry a trailing "[]".
func (d *DataType) Name() string {
	words := make([]string, 0, len(d.Words)+len(d.Suffix))
	for _, w := range d.Words {
		words = append(words, strings.ToUpper(w))
	}
	for _, w := range d.Suffix {
		words = append(words, strings.ToUpper(w))
	}

	name := strings.Join(words, " ")
	if d.Array {
		name += "[]"
	}

	return name
}

// Params returns a copy of the numeric parameters, or nil when the type was
// declared without any.
func (d *DataType) Params() []int {
	if len(d.Parameters) == 0 {
		return nil
	}

	out := make([]int, len(d.Parameters))
	copy(out, d.Parameters)
	return out
}

// String renders the type back to SQL using the normalized name.
func (d *DataType) String() string {
	var sb strings.Builder

	words := make([]string, 0, len(d.Words))
	for _, w := range d.Words {
		words = append(words, strings.ToUpper(w))
	}
	sb.WriteString(strings.Join(words, " "))

	if len(d.Parameters) > 0 {
		params := make([]string, len(d.Parameters))
		for i, p := range d.Parameters {
			params[i] = strconv.Itoa(p)
		}
		sb.WriteString("(" + strings.Join(params, ", ") + ")")
	}

	for _, w := range d.Suffix {
		sb.WriteString(" " + strings.ToUpper(w))
	}

	if d.Array {
		sb.WriteString("[]")
	}

	return sb.String()
}
