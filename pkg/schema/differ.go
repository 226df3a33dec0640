package schema

import (
	"github.com/pkg/errors"
	"github.com/pseudomuto/adapterkit/pkg/compare"
)

const (
	// DecisionNoChange means the current and desired types are equivalent.
	DecisionNoChange Decision = "NO_CHANGE"
	// DecisionSafeAlter means the column can be altered in place without data loss.
	DecisionSafeAlter Decision = "SAFE_ALTER"
	// DecisionRequiresRebuild means the change cannot be expressed as an
	// in-place alteration (or would narrow the type) and the object must be
	// recreated.
	DecisionRequiresRebuild Decision = "REQUIRES_REBUILD"
)

type (
	// Decision is the outcome of comparing a current column type with a
	// desired one.
	Decision string

	// Differ decides how a column type change has to be applied for a single
	// dialect. It holds no mutable state: Decide is a pure function of its
	// inputs and the matrix, so a Differ may be shared between goroutines.
	//
	// Example:
	//
	//	d := schema.NewDiffer(matrix)
	//
	//	decision, err := d.Decide(
	//		schema.NewTypeDescriptor("VARCHAR", 10),
	//		schema.NewTypeDescriptor("TEXT"),
	//	)
	//	if err != nil {
	//		log.Fatal(err)
	//	}
	//
	//	fmt.Println(decision) // SAFE_ALTER
	Differ struct {
		matrix *Matrix
	}
)

// NewDiffer returns a Differ backed by the given matrix.
func NewDiffer(m *Matrix) *Differ {
	return &Differ{matrix: m}
}

// Matrix returns the matrix the differ was built with.
func (d *Differ) Matrix() *Matrix {
	return d.matrix
}

// Decide compares current with desired.
//
// Unparameterized descriptors are expanded to the matrix defaults of their base
// type. Each (current, desired) candidate pair is evaluated in priority order,
// current-major, and the first pair that does not require a rebuild wins. If
// none qualifies the result is DecisionRequiresRebuild.
//
// Unknown base types fail with *UnknownTypeError instead of falling back to a
// rebuild.
func (d *Differ) Decide(current, desired TypeDescriptor) (Decision, error) {
	currentBase := d.matrix.canonical(current.Base)
	desiredBase := d.matrix.canonical(desired.Base)

	currentCandidates, err := d.candidates(currentBase, current.Params)
	if err != nil {
		return "", err
	}

	desiredCandidates, err := d.candidates(desiredBase, desired.Params)
	if err != nil {
		return "", err
	}

	for _, cp := range currentCandidates {
		for _, dp := range desiredCandidates {
			if decision := d.decidePair(currentBase, cp, desiredBase, dp); decision != DecisionRequiresRebuild {
				return decision, nil
			}
		}
	}

	return DecisionRequiresRebuild, nil
}

// DecideString parses both type declarations and calls Decide.
func (d *Differ) DecideString(current, desired string) (Decision, error) {
	c, err := ParseTypeDescriptor(current)
	if err != nil {
		return "", errors.Wrap(err, "invalid current type")
	}

	t, err := ParseTypeDescriptor(desired)
	if err != nil {
		return "", errors.Wrap(err, "invalid desired type")
	}

	return d.Decide(c, t)
}

// candidates returns the parameter lists to try for a descriptor. A nil entry
// stands for "unbounded".
func (d *Differ) candidates(base string, params []int) ([][]int, error) {
	defaults, err := d.matrix.DefaultParametersFor(base)
	if err != nil {
		return nil, err
	}

	if len(params) > 0 {
		return [][]int{params}, nil
	}

	if len(defaults) == 0 {
		return [][]int{nil}, nil
	}

	return defaults, nil
}

func (d *Differ) decidePair(currentBase string, current []int, desiredBase string, desired []int) Decision {
	if currentBase == desiredBase && compare.Ordered(current, desired) {
		return DecisionNoChange
	}

	if d.matrix.CanWidenWithoutRebuild(currentBase, desiredBase) && !narrows(current, desired) {
		return DecisionSafeAlter
	}

	return DecisionRequiresRebuild
}

// narrows reports whether moving from current to desired could lose data on any
// dimension. An unbounded desired never narrows; a bounded desired always
// narrows an unbounded current; differing arity is treated as narrowing.
func narrows(current, desired []int) bool {
	if desired == nil {
		return false
	}
	if current == nil || len(current) != len(desired) {
		return true
	}
	for i := range desired {
		if desired[i] < current[i] {
			return true
		}
	}
	return false
}
