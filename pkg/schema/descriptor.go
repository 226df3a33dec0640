package schema

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/adapterkit/pkg/compare"
	"github.com/pseudomuto/adapterkit/pkg/parser"
)

// TypeDescriptor is a base type name plus its ordered numeric parameters
// (length, precision, scale, ...). A descriptor without parameters is resolved
// against the matrix defaults at comparison time; the descriptor itself is
// never modified.
type TypeDescriptor struct {
	Base   string
	Params []int
}

// NewTypeDescriptor returns a descriptor with a case-normalized base name.
func NewTypeDescriptor(base string, params ...int) TypeDescriptor {
	var p []int
	if len(params) > 0 {
		p = append(p, params...)
	}

	return TypeDescriptor{Base: normalizeName(base), Params: p}
}

// ParseTypeDescriptor parses type text such as "VARCHAR(10)" or
// "numeric(10, 2)" into a descriptor.
//
// Example:
//
//	td, err := schema.ParseTypeDescriptor("character varying(255)")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(td) // CHARACTER VARYING(255)
func ParseTypeDescriptor(typ string) (TypeDescriptor, error) {
	dt, err := parser.ParseType(typ)
	if err != nil {
		return TypeDescriptor{}, errors.Wrap(err, "failed to parse type descriptor")
	}

	return TypeDescriptor{Base: dt.Name(), Params: dt.Params()}, nil
}

// Parameterized reports whether the descriptor carries explicit parameters.
func (t TypeDescriptor) Parameterized() bool {
	return len(t.Params) > 0
}

// Equal compares base names case-insensitively and parameters exactly.
func (t TypeDescriptor) Equal(other TypeDescriptor) bool {
	return normalizeName(t.Base) == normalizeName(other.Base) &&
		compare.Ordered(t.Params, other.Params)
}

func (t TypeDescriptor) String() string {
	if !t.Parameterized() {
		return t.Base
	}

	return t.Base + formatParams(t.Params)
}

func formatParams(params []int) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = strconv.Itoa(p)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func normalizeName(name string) string {
	return strings.Join(strings.Fields(strings.ToUpper(name)), " ")
}
