package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

const (
	// KindTable is a base table.
	KindTable ObjectKind = "TABLE"
	// KindView is a non-materialized view.
	KindView ObjectKind = "VIEW"
	// KindMaterializedView is a materialized view.
	KindMaterializedView ObjectKind = "MATERIALIZED_VIEW"
)

// ErrUnknownObjectKind is matched (via errors.Is) by every UnknownObjectKindError.
var ErrUnknownObjectKind = errors.New("unknown object kind")

type (
	// ObjectKind classifies a discovered object.
	ObjectKind string

	// UnknownObjectKindError is returned when a catalog row carries a type label
	// outside the closed set of object kinds.
	UnknownObjectKindError struct {
		Label string
	}

	// DataObject is one table, view or materialized view found in a schema.
	DataObject struct {
		// Catalog is informational only. It is copied from the requested
		// SchemaName and never used to filter.
		Catalog string
		Schema  string
		Name    string
		Kind    ObjectKind
	}

	// SchemaName identifies the schema to inspect. Catalog may be empty.
	SchemaName struct {
		Catalog string
		Schema  string
	}

	// TableName is a schema-qualified object name. An empty Schema means the
	// connection's default schema.
	TableName struct {
		Schema string
		Name   string
	}

	// ObjectNameSet restricts discovery to the given names. A nil or empty set
	// means no name filter.
	ObjectNameSet map[string]struct{}
)

// ParseObjectKind maps a catalog type label to an ObjectKind.
func ParseObjectKind(label string) (ObjectKind, error) {
	switch kind := ObjectKind(strings.TrimSpace(label)); kind {
	case KindTable, KindView, KindMaterializedView:
		return kind, nil
	default:
		return "", &UnknownObjectKindError{Label: label}
	}
}

func (k ObjectKind) String() string {
	return string(k)
}

func (e *UnknownObjectKindError) Error() string {
	return fmt.Sprintf("unknown object kind %q", e.Label)
}

// Is reports whether target is ErrUnknownObjectKind.
func (e *UnknownObjectKindError) Is(target error) bool {
	return target == ErrUnknownObjectKind
}

// QualifiedName returns catalog.schema.name, omitting an empty catalog.
func (o DataObject) QualifiedName() string {
	if o.Catalog == "" {
		return o.Schema + "." + o.Name
	}
	return o.Catalog + "." + o.Schema + "." + o.Name
}

// ParseSchemaName splits "catalog.schema" or "schema".
//
// Example:
//
//	sn, err := catalog.ParseSchemaName("dev.public")
//	// sn.Catalog == "dev", sn.Schema == "public"
func ParseSchemaName(s string) (SchemaName, error) {
	first, second, err := splitQualified(s, "schema")
	if err != nil {
		return SchemaName{}, err
	}
	return SchemaName{Catalog: first, Schema: second}, nil
}

func (s SchemaName) String() string {
	if s.Catalog == "" {
		return s.Schema
	}
	return s.Catalog + "." + s.Schema
}

// ParseTableName splits "schema.name" or "name".
func ParseTableName(s string) (TableName, error) {
	first, second, err := splitQualified(s, "table")
	if err != nil {
		return TableName{}, err
	}
	return TableName{Schema: first, Name: second}, nil
}

func (t TableName) String() string {
	if t.Schema == "" {
		return t.Name
	}
	return t.Schema + "." + t.Name
}

// NewObjectNameSet builds a set from names.
func NewObjectNameSet(names ...string) ObjectNameSet {
	set := make(ObjectNameSet, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

// Empty reports whether the set applies no filter.
func (s ObjectNameSet) Empty() bool {
	return len(s) == 0
}

// Contains reports whether name is in the set. An empty set contains every name.
func (s ObjectNameSet) Contains(name string) bool {
	if s.Empty() {
		return true
	}
	_, ok := s[name]
	return ok
}

// Names returns the members sorted, or nil for an empty set.
func (s ObjectNameSet) Names() []string {
	if s.Empty() {
		return nil
	}

	names := make([]string, 0, len(s))
	for n := range s {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// splitQualified splits "a.b" into (a, b) and "b" into ("", b).
func splitQualified(s, what string) (string, string, error) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	for _, p := range parts {
		if p == "" {
			return "", "", errors.Errorf("invalid %s name %q", what, s)
		}
	}

	switch len(parts) {
	case 1:
		return "", parts[0], nil
	case 2:
		return parts[0], parts[1], nil
	default:
		return "", "", errors.Errorf("invalid %s name %q", what, s)
	}
}
