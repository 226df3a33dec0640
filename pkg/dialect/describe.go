package dialect

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/adapterkit/pkg/schema"
)

// Describe writes a stable, human-readable rendering of m to w: one line per
// type with its default parameter tuples and the types it widens from, followed
// by the alias table.
//
// Example output:
//
//	risingwave
//	  CHAR defaults (1)
//	  TEXT <- BPCHAR, CHAR, VARCHAR
//	aliases
//	  NUMERIC = DECIMAL
func Describe(w io.Writer, m *schema.Matrix) error {
	var sb strings.Builder

	sb.WriteString(m.Dialect())
	sb.WriteString("\n")

	for _, e := range m.Entries() {
		sb.WriteString("  ")
		sb.WriteString(e.Name)

		if len(e.Defaults) > 0 {
			tuples := make([]string, len(e.Defaults))
			for i, tuple := range e.Defaults {
				tuples[i] = formatTuple(tuple)
			}
			sb.WriteString(" defaults ")
			sb.WriteString(strings.Join(tuples, ", "))
		}

		if len(e.WidensFrom) > 0 {
			sb.WriteString(" <- ")
			sb.WriteString(strings.Join(e.WidensFrom, ", "))
		}

		sb.WriteString("\n")
	}

	aliases := m.Aliases()
	if len(aliases) > 0 {
		names := make([]string, 0, len(aliases))
		for a := range aliases {
			names = append(names, a)
		}
		sort.Strings(names)

		sb.WriteString("aliases\n")
		for _, a := range names {
			fmt.Fprintf(&sb, "  %s = %s\n", a, aliases[a])
		}
	}

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return errors.Wrap(err, "failed to write matrix description")
	}
	return nil
}

func formatTuple(tuple []int) string {
	parts := make([]string, len(tuple))
	for i, p := range tuple {
		parts[i] = strconv.Itoa(p)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
