package compare

// Slices compares two slices for equality using an equality function for elements.
// Returns true if both slices have the same length and all corresponding elements are equal.
// A nil slice and an empty slice are equal.
//
// Example:
//
//	func (t TypeDescriptor) Equal(other TypeDescriptor) bool {
//	    return t.Base == other.Base &&
//	           compare.Slices(t.Params, other.Params, func(a, b int) bool { return a == b })
//	}
func Slices[T any](a, b []T, equalFunc func(T, T) bool) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !equalFunc(a[i], b[i]) {
			return false
		}
	}
	return true
}

// Ordered compares two slices of comparable values element by element.
func Ordered[T comparable](a, b []T) bool {
	return Slices(a, b, func(x, y T) bool { return x == y })
}
