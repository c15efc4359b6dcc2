package reindex

import (
	"github.com/pkg/errors"

	"github.com/born-ml/reindex/internal/tensor"
)

// Op is a reindex ready for dispatch: the variant to specialize and its metadata.
type Op struct {
	Variant Variant
	Meta    Meta
	// Shape is the logical destination shape, without padding.
	Shape tensor.Shape
}

func paddedShape(shape tensor.Shape) (Vec4, error) {
	if err := shape.Validate(); err != nil {
		return Vec4{}, errors.Wrap(err, "reindex")
	}
	if uint64(shape.NumElements()) > uint64(^uint32(0)) {
		return Vec4{}, errors.Errorf("reindex: shape %v has more than 2^32-1 elements", shape)
	}
	return PadVec4(shape, 1)
}

// NewPermute builds a transpose of shape by perm: destination axis i is source axis perm[i].
// An empty perm reverses all axes.
func NewPermute(shape tensor.Shape, perm []int) (*Op, error) {
	ndim := len(shape)
	if len(perm) == 0 {
		perm = make([]int, ndim)
		for i := range perm {
			perm[i] = ndim - 1 - i
		}
	}
	if len(perm) != ndim {
		return nil, errors.Errorf("permute: %d axes given for a %dD tensor", len(perm), ndim)
	}
	seen := make(map[int]bool, ndim)
	for _, ax := range perm {
		if ax < 0 || ax >= ndim {
			return nil, errors.Errorf("permute: axis %d out of range for %dD tensor", ax, ndim)
		}
		if seen[ax] {
			return nil, errors.Errorf("permute: duplicate axis %d", ax)
		}
		seen[ax] = true
	}
	src, err := paddedShape(shape)
	if err != nil {
		return nil, err
	}

	dstShape := make(tensor.Shape, ndim)
	for i, ax := range perm {
		dstShape[i] = shape[ax]
	}
	dst, err := paddedShape(dstShape)
	if err != nil {
		return nil, err
	}

	p := IdentityPerm
	for i, ax := range perm {
		p[i] = uint32(ax)
	}
	return &Op{
		Variant: Permute,
		Shape:   dstShape,
		Meta: Meta{
			SrcShape:   src,
			DstShape:   dst,
			SrcStride:  RowMajorStrides(src),
			DstStride:  RowMajorStrides(dst),
			SrcNumel:   src.Product(),
			DstNumel:   dst.Product(),
			Perm:       p,
			SrcOffsets: Vec4{},
		},
	}, nil
}

// NewSlice builds the copy of shape[starts[i]:ends[i]] along every axis.
func NewSlice(shape tensor.Shape, starts, ends []int) (*Op, error) {
	ndim := len(shape)
	if len(starts) != ndim || len(ends) != ndim {
		return nil, errors.Errorf("slice: %d starts and %d ends given for a %dD tensor", len(starts), len(ends), ndim)
	}
	dstShape := make(tensor.Shape, ndim)
	for i := range shape {
		if starts[i] < 0 || ends[i] > shape[i] || starts[i] >= ends[i] {
			return nil, errors.Errorf("slice: range [%d:%d] invalid for axis %d of size %d", starts[i], ends[i], i, shape[i])
		}
		dstShape[i] = ends[i] - starts[i]
	}
	src, err := paddedShape(shape)
	if err != nil {
		return nil, err
	}
	dst, err := paddedShape(dstShape)
	if err != nil {
		return nil, err
	}
	offsets, err := PadVec4(starts, 0)
	if err != nil {
		return nil, err
	}
	return &Op{
		Variant: Slice,
		Shape:   dstShape,
		Meta: Meta{
			SrcShape:   src,
			DstShape:   dst,
			SrcStride:  RowMajorStrides(src),
			DstStride:  RowMajorStrides(dst),
			SrcNumel:   src.Product(),
			DstNumel:   dst.Product(),
			Perm:       IdentityPerm,
			SrcOffsets: offsets,
		},
	}, nil
}

// NewBroadcast builds the NumPy-style expansion of shape to target.
// Source axes of size 1 that grow get a stride of 0.
func NewBroadcast(shape, target tensor.Shape) (*Op, error) {
	aligned, err := shape.BroadcastTo(target)
	if err != nil {
		return nil, errors.Wrap(err, "broadcast")
	}
	src, err := paddedShape(aligned)
	if err != nil {
		return nil, err
	}
	dst, err := paddedShape(target)
	if err != nil {
		return nil, err
	}
	stride := RowMajorStrides(src)
	for i := 0; i < Rank; i++ {
		if src[i] == 1 && dst[i] != 1 {
			stride[i] = 0
		}
	}
	return &Op{
		Variant: Broadcast,
		Shape:   target.Clone(),
		Meta: Meta{
			SrcShape:   src,
			DstShape:   dst,
			SrcStride:  stride,
			DstStride:  RowMajorStrides(dst),
			SrcNumel:   src.Product(),
			DstNumel:   dst.Product(),
			Perm:       IdentityPerm,
			SrcOffsets: Vec4{},
		},
	}, nil
}

// Vectorize rewrites a scalar op so each worker moves elem.Factor() contiguous
// elements. It requires the innermost logical axis to stay innermost and
// contiguous on both sides, with sizes and slice start divisible by the factor.
func (op *Op) Vectorize(elem KernelElement) (*Op, error) {
	if !elem.Valid() {
		return nil, errors.Errorf("vectorize: unknown kernel element %d", int(elem))
	}
	f := elem.Factor()
	if f == 1 {
		return op, nil
	}
	a := len(op.Shape) - 1
	m := op.Meta
	switch {
	case a < 0:
		return nil, errors.Errorf("vectorize: a scalar cannot be packed by %d", f)
	case op.Variant == Permute && m.Perm[a] != uint32(a):
		return nil, errors.Errorf("vectorize: permute %v moves the innermost axis", m.Perm)
	case m.DstShape[a]%f != 0 || m.SrcShape[a]%f != 0 || m.SrcOffsets[a]%f != 0:
		return nil, errors.Errorf("vectorize: innermost axis (src %d, dst %d, start %d) not divisible by %d",
			m.SrcShape[a], m.DstShape[a], m.SrcOffsets[a], f)
	case m.SrcStride[a] != 1:
		return nil, errors.Errorf("vectorize: innermost source stride is %d, not contiguous", m.SrcStride[a])
	}

	m.SrcShape[a] /= f
	m.DstShape[a] /= f
	m.SrcOffsets[a] /= f
	for i := 0; i < a; i++ {
		m.SrcStride[i] /= f
		m.DstStride[i] /= f
	}
	return &Op{Variant: op.Variant, Shape: op.Shape, Meta: m}, nil
}

// BestElement returns the widest packing Vectorize accepts for op.
func (op *Op) BestElement() KernelElement {
	for _, elem := range []KernelElement{Vec4Element, Vec2Element} {
		if _, err := op.Vectorize(elem); err == nil {
			return elem
		}
	}
	return ScalarElement
}
