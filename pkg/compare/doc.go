// Package compare provides small generic helpers for structural equality.
//
// The helpers keep Equal methods free of repeated length checks and element
// loops:
//
//	return compare.Ordered(t.Params, other.Params)
package compare
