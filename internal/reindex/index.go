package reindex

import (
	"fmt"

	"github.com/pkg/errors"
)

// Rank is the fixed number of logical axes of every reindex.
const Rank = 4

// unrollAxes is the number of leading axes decomposed by division.
// The innermost axis takes the remainder directly.
const unrollAxes = Rank - 1

// Vec4 is a shape, stride vector, permutation, offset vector or multi-index.
type Vec4 [Rank]uint32

// OffsetToIndex decomposes a flat offset into a multi-index using stride.
// Re-linearizing the result with IndexToOffset and zero offsets yields offset again
// whenever stride is a row-major stride vector with an innermost stride of 1.
// stride[0..2] must be non-zero.
func OffsetToIndex(offset uint32, stride Vec4) Vec4 {
	var index Vec4
	for i := 0; i < unrollAxes; i++ {
		index[i] = offset / stride[i]
		offset %= stride[i]
	}
	index[unrollAxes] = offset
	return index
}

// IndexToOffset returns dot(index + offsets, stride).
// There is no bounds check: the caller keeps the result inside the source buffer.
func IndexToOffset(index, offsets, stride Vec4) uint32 {
	var offset uint32
	for i := 0; i < Rank; i++ {
		offset += (index[i] + offsets[i]) * stride[i]
	}
	return offset
}

// Product multiplies all components.
func (v Vec4) Product() uint32 {
	return v[0] * v[1] * v[2] * v[3]
}

// Add returns the component-wise sum.
func (v Vec4) Add(o Vec4) Vec4 {
	return Vec4{v[0] + o[0], v[1] + o[1], v[2] + o[2], v[3] + o[3]}
}

// String formats v like "[2,3,1,1]".
func (v Vec4) String() string {
	return fmt.Sprintf("[%d,%d,%d,%d]", v[0], v[1], v[2], v[3])
}

// PadVec4 copies values into the leading components of a Vec4 and fills the
// trailing axes with fill.
func PadVec4(values []int, fill uint32) (Vec4, error) {
	if len(values) > Rank {
		return Vec4{}, errors.Errorf("rank %d exceeds the maximum of %d axes", len(values), Rank)
	}
	v := Vec4{fill, fill, fill, fill}
	for i, x := range values {
		if x < 0 || uint64(x) > uint64(^uint32(0)) {
			return Vec4{}, errors.Errorf("axis %d value %d does not fit in uint32", i, x)
		}
		v[i] = uint32(x)
	}
	return v, nil
}

// RowMajorStrides returns the row-major strides of shape: the innermost stride is 1
// and stride[i] is the product of all sizes after axis i.
func RowMajorStrides(shape Vec4) Vec4 {
	var stride Vec4
	stride[Rank-1] = 1
	for i := Rank - 2; i >= 0; i-- {
		stride[i] = stride[i+1] * shape[i+1]
	}
	return stride
}

// IdentityPerm is the permutation that keeps every axis in place.
var IdentityPerm = Vec4{0, 1, 2, 3}
