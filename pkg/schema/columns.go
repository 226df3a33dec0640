package schema

import (
	"github.com/pkg/errors"
	"github.com/pseudomuto/adapterkit/pkg/parser"
)

const (
	// ColumnDiffAdd indicates a column needs to be added
	ColumnDiffAdd ColumnDiffType = "ADD"
	// ColumnDiffDrop indicates a column needs to be dropped
	ColumnDiffDrop ColumnDiffType = "DROP"
	// ColumnDiffAlter indicates a column type can be altered in place
	ColumnDiffAlter ColumnDiffType = "ALTER"
	// ColumnDiffRebuild indicates a column type change requires rebuilding the object
	ColumnDiffRebuild ColumnDiffType = "REBUILD"
)

type (
	// Column is a named column with its declared type.
	Column struct {
		Name string
		Type TypeDescriptor
	}

	// ColumnDiff represents a difference in column definitions
	ColumnDiff struct {
		Type        ColumnDiffType // Type of column operation
		ColumnName  string         // Name of the column
		Current     *Column        // Current column definition (nil for ADD)
		Target      *Column        // Target column definition (nil for DROP)
		Decision    Decision       // Type decision for ALTER and REBUILD
		Description string         // Human-readable description
	}

	// ColumnDiffType represents the type of column difference
	ColumnDiffType string
)

// ColumnsFromDefinitions converts a column definition list (see
// parser.ParseColumns) into columns.
func ColumnsFromDefinitions(defs string) ([]Column, error) {
	parsed, err := parser.ParseColumns(defs)
	if err != nil {
		return nil, err
	}

	cols := make([]Column, len(parsed))
	for i, def := range parsed {
		cols[i] = Column{
			Name: def.Name,
			Type: TypeDescriptor{Base: def.Type.Name(), Params: def.Type.Params()},
		}
	}

	return cols, nil
}

// DiffColumns compares two column sets by name and classifies every change.
//
// Columns present in both sets are compared with Decide; unchanged columns are
// omitted. Results follow the order of desired, followed by drops in the order
// of current. The first unknown type aborts the comparison.
func (d *Differ) DiffColumns(current, desired []Column) ([]ColumnDiff, error) {
	var diffs []ColumnDiff

	currentCols := make(map[string]Column, len(current))
	desiredCols := make(map[string]Column, len(desired))

	for _, col := range current {
		currentCols[col.Name] = col
	}
	for _, col := range desired {
		desiredCols[col.Name] = col
	}

	for _, target := range desired {
		existing, ok := currentCols[target.Name]
		if !ok {
			targetCopy := target
			diffs = append(diffs, ColumnDiff{
				Type:        ColumnDiffAdd,
				ColumnName:  target.Name,
				Target:      &targetCopy,
				Description: "Add column " + target.Name,
			})
			continue
		}

		decision, err := d.Decide(existing.Type, target.Type)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to compare column %s", target.Name)
		}

		currentCopy := existing
		targetCopy := target

		switch decision {
		case DecisionNoChange:
			continue
		case DecisionSafeAlter:
			diffs = append(diffs, ColumnDiff{
				Type:        ColumnDiffAlter,
				ColumnName:  target.Name,
				Current:     &currentCopy,
				Target:      &targetCopy,
				Decision:    decision,
				Description: "Alter column " + target.Name + " from " + existing.Type.String() + " to " + target.Type.String(),
			})
		default:
			diffs = append(diffs, ColumnDiff{
				Type:        ColumnDiffRebuild,
				ColumnName:  target.Name,
				Current:     &currentCopy,
				Target:      &targetCopy,
				Decision:    decision,
				Description: "Rebuild required to change column " + target.Name + " from " + existing.Type.String() + " to " + target.Type.String(),
			})
		}
	}

	for _, col := range current {
		if _, ok := desiredCols[col.Name]; !ok {
			currentCopy := col
			diffs = append(diffs, ColumnDiff{
				Type:        ColumnDiffDrop,
				ColumnName:  col.Name,
				Current:     &currentCopy,
				Description: "Drop column " + col.Name,
			})
		}
	}

	return diffs, nil
}

// RequiresRebuild reports whether any diff forces the object to be recreated.
func RequiresRebuild(diffs []ColumnDiff) bool {
	for _, diff := range diffs {
		if diff.Type == ColumnDiffRebuild {
			return true
		}
	}
	return false
}
