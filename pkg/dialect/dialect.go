package dialect

import (
	"slices"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/adapterkit/pkg/schema"
)

const (
	// FamilyPostgres covers engines reached over the Postgres wire protocol.
	FamilyPostgres Family = "postgres"
	// FamilyClickHouse covers ClickHouse servers.
	FamilyClickHouse Family = "clickhouse"
)

type (
	// Family groups dialects that share a transport and system catalog.
	Family string

	// Dialect bundles everything engine specific the adapter needs: the type
	// compatibility rules, the type aliases and the statements every new
	// session must run.
	//
	// Dialect values are cheap to copy. Extend returns a new value and never
	// modifies the receiver.
	//
	// Example:
	//
	//	d, err := dialect.Lookup("risingwave")
	//	if err != nil {
	//		log.Fatal(err)
	//	}
	//
	//	m, err := d.Matrix()
	//	if err != nil {
	//		log.Fatal(err)
	//	}
	//
	//	fmt.Println(m.CanWidenWithoutRebuild("VARCHAR", "TEXT")) // true
	Dialect struct {
		Name            string
		Family          Family
		SessionSettings []string

		// DatetimePrecision is set when the engine's information_schema.columns
		// reports datetime_precision for temporal columns.
		DatetimePrecision bool

		entries []schema.Entry
		aliases map[string]string
	}
)

var registry = map[string]func() Dialect{
	"risingwave": RisingWave,
	"postgres":   Postgres,
	"clickhouse": ClickHouse,
}

// Lookup returns the built-in dialect registered under name (case-insensitive).
// "postgresql" is accepted for Postgres.
func Lookup(name string) (Dialect, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "postgresql" {
		key = "postgres"
	}

	ctor, ok := registry[key]
	if !ok {
		return Dialect{}, errors.Errorf("unsupported dialect %q (expected one of %s)", name, strings.Join(Names(), ", "))
	}

	return ctor(), nil
}

// Names returns the names of the built-in dialects, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Matrix builds a fresh type-compatibility matrix for the dialect.
func (d Dialect) Matrix(opts ...schema.MatrixOption) (*schema.Matrix, error) {
	base := []schema.MatrixOption{
		schema.WithEntries(d.entries...),
		schema.WithAliases(d.aliases),
	}

	m, err := schema.NewMatrix(d.Name, append(base, opts...)...)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to build %s type matrix", d.Name)
	}

	return m, nil
}

// Extend returns a copy of the dialect with additional types and aliases.
//
// A type that already exists keeps its place but has its defaults replaced when
// the extension declares any, and its widening set becomes the union of both.
// Aliases override built-in aliases of the same name.
func (d Dialect) Extend(entries []schema.Entry, aliases map[string]string) Dialect {
	out := d
	out.SessionSettings = slices.Clone(d.SessionSettings)
	out.entries = make([]schema.Entry, 0, len(d.entries)+len(entries))
	out.aliases = make(map[string]string, len(d.aliases)+len(aliases))

	index := make(map[string]int, len(d.entries))
	for _, e := range d.entries {
		index[key(e.Name)] = len(out.entries)
		out.entries = append(out.entries, cloneEntry(e))
	}

	for _, e := range entries {
		i, ok := index[key(e.Name)]
		if !ok {
			index[key(e.Name)] = len(out.entries)
			out.entries = append(out.entries, cloneEntry(e))
			continue
		}

		existing := &out.entries[i]
		if len(e.Defaults) > 0 {
			existing.Defaults = cloneEntry(e).Defaults
		}
		for _, from := range e.WidensFrom {
			if !slices.ContainsFunc(existing.WidensFrom, func(s string) bool { return key(s) == key(from) }) {
				existing.WidensFrom = append(existing.WidensFrom, from)
			}
		}
	}

	for k, v := range d.aliases {
		out.aliases[k] = v
	}
	for k, v := range aliases {
		out.aliases[key(k)] = v
	}

	// An extension type may shadow a built-in alias of the same name.
	for _, e := range entries {
		delete(out.aliases, key(e.Name))
	}

	return out
}

func (d Dialect) String() string {
	return d.Name
}

func key(name string) string {
	return strings.Join(strings.Fields(strings.ToUpper(name)), " ")
}

func cloneEntry(e schema.Entry) schema.Entry {
	out := schema.Entry{Name: e.Name, WidensFrom: slices.Clone(e.WidensFrom)}
	for _, tuple := range e.Defaults {
		out.Defaults = append(out.Defaults, slices.Clone(tuple))
	}
	return out
}

func scalars(names ...string) []schema.Entry {
	entries := make([]schema.Entry, len(names))
	for i, n := range names {
		entries[i] = schema.Entry{Name: n}
	}
	return entries
}
