package tensor

import "fmt"

// Shape represents the dimensions of a tensor.
type Shape []int

// NumElements returns the total number of elements in the tensor.
func (s Shape) NumElements() int {
	if len(s) == 0 {
		return 1 // Scalar has 1 element
	}
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Validate checks if the shape is valid (all dimensions > 0).
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim <= 0 {
			return fmt.Errorf("invalid dimension at index %d: %d (must be > 0)", i, dim)
		}
	}
	return nil
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// ComputeStrides calculates row-major strides for the shape.
// Strides define memory layout: stride[i] = product of all dimensions after i.
func (s Shape) ComputeStrides() []int {
	strides := make([]int, len(s))
	if len(s) == 0 {
		return strides
	}

	strides[len(s)-1] = 1
	for i := len(s) - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * s[i+1]
	}
	return strides
}

// BroadcastTo checks that s can be broadcast to target under NumPy rules and
// returns s left-padded with ones to the rank of target.
//
// Examples:
//
//	(3, 1) -> (3, 5)    → (3, 1), nil
//	(5,)   -> (2, 3, 5) → (1, 1, 5), nil
//	(3, 4) -> (3, 5)    → nil, Error
func (s Shape) BroadcastTo(target Shape) (Shape, error) {
	if len(s) > len(target) {
		return nil, fmt.Errorf("cannot broadcast %v to lower rank %v", s, target)
	}
	aligned := make(Shape, len(target))
	pad := len(target) - len(s)
	for i := range target {
		dim := 1
		if i >= pad {
			dim = s[i-pad]
		}
		if dim != target[i] && dim != 1 {
			return nil, fmt.Errorf("shapes not compatible for broadcasting: %v vs %v (dimension %d: %d vs %d)",
				s, target, i, dim, target[i])
		}
		aligned[i] = dim
	}
	return aligned, nil
}
