package compare_test

import (
	"strings"
	"testing"

	. "github.com/pseudomuto/adapterkit/pkg/compare"
	"github.com/stretchr/testify/require"
)

func TestSlices(t *testing.T) {
	t.Parallel()

	fold := func(a, b string) bool { return strings.EqualFold(a, b) }

	tests := []struct {
		name     string
		a, b     []string
		expected bool
	}{
		{name: "both nil", expected: true},
		{name: "nil and empty", a: nil, b: []string{}, expected: true},
		{name: "equal", a: []string{"a", "B"}, b: []string{"A", "b"}, expected: true},
		{name: "different length", a: []string{"a"}, b: []string{"a", "b"}, expected: false},
		{name: "different order", a: []string{"a", "b"}, b: []string{"b", "a"}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.expected, Slices(tt.a, tt.b, fold))
		})
	}
}

func TestOrdered(t *testing.T) {
	t.Parallel()

	require.True(t, Ordered([]int{10, 2}, []int{10, 2}))
	require.True(t, Ordered[int](nil, nil))
	require.False(t, Ordered([]int{10, 2}, []int{10}))
	require.False(t, Ordered([]int{10, 2}, []int{2, 10}))
}
