package schema

import (
	"slices"
	"sort"

	"github.com/pkg/errors"
)

type (
	// Entry declares how a single base type behaves for a dialect.
	Entry struct {
		// Name is the canonical base type name (case-insensitive).
		Name string

		// Defaults are the parameter tuples assumed when a declaration omits
		// them, in priority order. The first tuple is the common case; later
		// ones cover dialect edge cases. Empty means "no implicit parameters".
		Defaults [][]int

		// WidensFrom lists base types that may be ALTERed into this type in
		// place without truncation risk. Listing the type itself allows in-place
		// growth of its own parameters (e.g. VARCHAR(10) -> VARCHAR(20)).
		WidensFrom []string
	}

	// Matrix is the type-compatibility table of one dialect.
	//
	// A Matrix is built once through NewMatrix and is read-only afterwards,
	// so it is safe for concurrent use without locking. Every lookup goes
	// through the dialect's alias table first so that spellings like NUMERIC
	// and DECIMAL share an entry.
	//
	// Example:
	//
	//	m, err := schema.NewMatrix("risingwave",
	//		schema.WithEntries(
	//			schema.Entry{Name: "TEXT", WidensFrom: []string{"VARCHAR", "CHAR", "BPCHAR"}},
	//			schema.Entry{Name: "VARCHAR"},
	//		),
	//		schema.WithAliases(map[string]string{"CHARACTER VARYING": "VARCHAR"}),
	//	)
	//	if err != nil {
	//		log.Fatal(err)
	//	}
	//
	//	m.CanWidenWithoutRebuild("character varying", "text") // true
	Matrix struct {
		dialect  string
		entries  map[string]matrixEntry
		aliases  map[string]string
		fallback bool
	}

	// MatrixOption configures a Matrix during construction.
	MatrixOption func(*matrixBuilder)

	matrixEntry struct {
		defaults   [][]int
		widensFrom map[string]struct{}
	}

	matrixBuilder struct {
		entries  []Entry
		aliases  map[string]string
		fallback bool
	}
)

// WithEntries registers type entries. Registering the same name twice is an
// error reported by NewMatrix.
func WithEntries(entries ...Entry) MatrixOption {
	return func(b *matrixBuilder) {
		b.entries = append(b.entries, entries...)
	}
}

// WithAliases maps alternative spellings to canonical entry names.
func WithAliases(aliases map[string]string) MatrixOption {
	return func(b *matrixBuilder) {
		for k, v := range aliases {
			b.aliases[normalizeName(k)] = normalizeName(v)
		}
	}
}

// WithUnknownTypeFallback makes unregistered types behave as if they were
// registered with no defaults and an empty widening set instead of failing
// with UnknownTypeError.
func WithUnknownTypeFallback() MatrixOption {
	return func(b *matrixBuilder) {
		b.fallback = true
	}
}

// NewMatrix builds an immutable Matrix for the given dialect.
func NewMatrix(dialect string, opts ...MatrixOption) (*Matrix, error) {
	b := &matrixBuilder{aliases: make(map[string]string)}
	for _, opt := range opts {
		opt(b)
	}

	m := &Matrix{
		dialect:  dialect,
		entries:  make(map[string]matrixEntry, len(b.entries)),
		aliases:  b.aliases,
		fallback: b.fallback,
	}

	for alias, target := range m.aliases {
		if alias == target {
			delete(m.aliases, alias)
		}
	}

	for _, e := range b.entries {
		name := normalizeName(e.Name)
		if name == "" {
			return nil, errors.New("matrix entry has an empty type name")
		}
		if _, ok := m.aliases[name]; ok {
			return nil, errors.Errorf("type %s is registered both as an entry and as an alias", name)
		}
		if _, ok := m.entries[name]; ok {
			return nil, errors.Errorf("duplicate matrix entry for type %s", name)
		}

		defaults := make([][]int, 0, len(e.Defaults))
		for _, tuple := range e.Defaults {
			if len(tuple) == 0 {
				return nil, errors.Errorf("type %s declares an empty default parameter tuple", name)
			}
			defaults = append(defaults, slices.Clone(tuple))
		}

		widens := make(map[string]struct{}, len(e.WidensFrom))
		for _, from := range e.WidensFrom {
			widens[m.canonical(from)] = struct{}{}
		}

		m.entries[name] = matrixEntry{defaults: defaults, widensFrom: widens}
	}

	for alias, target := range m.aliases {
		if _, ok := m.entries[target]; !ok && !m.fallback {
			return nil, errors.Errorf("alias %s points at unregistered type %s", alias, target)
		}
	}

	return m, nil
}

// Dialect returns the dialect name the matrix was built for.
func (m *Matrix) Dialect() string {
	return m.dialect
}

// Canonical resolves a type name through the alias table and normalizes its
// case. It does not check that the type is registered.
func (m *Matrix) Canonical(base string) string {
	return m.canonical(base)
}

func (m *Matrix) canonical(base string) string {
	name := normalizeName(base)
	if target, ok := m.aliases[name]; ok {
		return target
	}
	return name
}

// Known reports whether the base type (or one of its aliases) is registered.
func (m *Matrix) Known(base string) bool {
	_, ok := m.entries[m.canonical(base)]
	return ok
}

// DefaultParametersFor returns the default parameter tuples of base in priority
// order. The returned slices are copies. An empty result means the type has no
// implicit parameters.
func (m *Matrix) DefaultParametersFor(base string) ([][]int, error) {
	name := m.canonical(base)

	entry, ok := m.entries[name]
	if !ok {
		if m.fallback {
			return nil, nil
		}
		return nil, &UnknownTypeError{Dialect: m.dialect, Type: name}
	}

	out := make([][]int, len(entry.defaults))
	for i, tuple := range entry.defaults {
		out[i] = slices.Clone(tuple)
	}
	return out, nil
}

// CanWidenWithoutRebuild reports whether a column of type from may be altered
// in place into type to. The relation is directional: it only consults the
// widening set of to.
func (m *Matrix) CanWidenWithoutRebuild(from, to string) bool {
	entry, ok := m.entries[m.canonical(to)]
	if !ok {
		return false
	}

	_, ok = entry.widensFrom[m.canonical(from)]
	return ok
}

// Entries returns every registered entry sorted by name, with widening sets
// sorted as well. It is intended for display and for deriving new matrices.
func (m *Matrix) Entries() []Entry {
	out := make([]Entry, 0, len(m.entries))
	for name, e := range m.entries {
		entry := Entry{Name: name}
		for _, tuple := range e.defaults {
			entry.Defaults = append(entry.Defaults, slices.Clone(tuple))
		}
		for from := range e.widensFrom {
			entry.WidensFrom = append(entry.WidensFrom, from)
		}
		sort.Strings(entry.WidensFrom)
		out = append(out, entry)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Aliases returns a copy of the alias table.
func (m *Matrix) Aliases() map[string]string {
	out := make(map[string]string, len(m.aliases))
	for k, v := range m.aliases {
		out[k] = v
	}
	return out
}
