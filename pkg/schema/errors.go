package schema

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrUnknownType is matched (via errors.Is) by every UnknownTypeError.
var ErrUnknownType = errors.New("unknown type")

// UnknownTypeError is returned when a base type has no entry in the matrix and
// the matrix was built without an unknown-type fallback. It signals a
// configuration gap and is never converted into a default decision.
type UnknownTypeError struct {
	Dialect string
	Type    string
}

func (e *UnknownTypeError) Error() string {
	if e.Dialect == "" {
		return fmt.Sprintf("unknown type %q", e.Type)
	}
	return fmt.Sprintf("unknown type %q for dialect %s", e.Type, e.Dialect)
}

// Is reports whether target is ErrUnknownType.
func (e *UnknownTypeError) Is(target error) bool {
	return target == ErrUnknownType
}
