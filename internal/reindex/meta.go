package reindex

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// MetaSize is the byte size of a marshaled Meta, laid out as a WGSL uniform struct.
const MetaSize = 112

// Byte offsets of the Meta fields inside the uniform buffer.
// perm starts at 80 because a vec4<u32> is 16-byte aligned.
const (
	offSrcShape   = 0
	offDstShape   = 16
	offSrcStride  = 32
	offDstStride  = 48
	offSrcNumel   = 64
	offDstNumel   = 68
	offPerm       = 80
	offSrcOffsets = 96
)

var (
	// ErrInvalidMeta reports metadata that would make a worker read or write out of range.
	ErrInvalidMeta = errors.New("reindex: invalid metadata")
	// ErrBufferSize reports a source or destination buffer too small for the metadata.
	ErrBufferSize = errors.New("reindex: buffer too small")
)

// Meta is the read-only record shared by every worker of one dispatch.
//
// Shapes, strides and offsets are counted in units (one unit is KernelElement.Factor()
// elements); SrcNumel and DstNumel count logical elements.
type Meta struct {
	SrcShape   Vec4
	DstShape   Vec4
	SrcStride  Vec4
	DstStride  Vec4
	SrcNumel   uint32
	DstNumel   uint32
	Perm       Vec4
	SrcOffsets Vec4
}

// MarshalBinary encodes m in the uniform layout expected by the WGSL kernels.
func (m *Meta) MarshalBinary() ([]byte, error) {
	return m.AppendBinary(make([]byte, 0, MetaSize))
}

// AppendBinary appends the uniform encoding of m to b.
func (m *Meta) AppendBinary(b []byte) ([]byte, error) {
	start := len(b)
	b = append(b, make([]byte, MetaSize)...)
	buf := b[start:]
	putVec4(buf[offSrcShape:], m.SrcShape)
	putVec4(buf[offDstShape:], m.DstShape)
	putVec4(buf[offSrcStride:], m.SrcStride)
	putVec4(buf[offDstStride:], m.DstStride)
	binary.LittleEndian.PutUint32(buf[offSrcNumel:], m.SrcNumel)
	binary.LittleEndian.PutUint32(buf[offDstNumel:], m.DstNumel)
	putVec4(buf[offPerm:], m.Perm)
	putVec4(buf[offSrcOffsets:], m.SrcOffsets)
	return b, nil
}

// UnmarshalBinary decodes the uniform layout written by MarshalBinary.
func (m *Meta) UnmarshalBinary(data []byte) error {
	if len(data) < MetaSize {
		return errors.Errorf("reindex: metadata needs %d bytes, got %d", MetaSize, len(data))
	}
	m.SrcShape = getVec4(data[offSrcShape:])
	m.DstShape = getVec4(data[offDstShape:])
	m.SrcStride = getVec4(data[offSrcStride:])
	m.DstStride = getVec4(data[offDstStride:])
	m.SrcNumel = binary.LittleEndian.Uint32(data[offSrcNumel:])
	m.DstNumel = binary.LittleEndian.Uint32(data[offDstNumel:])
	m.Perm = getVec4(data[offPerm:])
	m.SrcOffsets = getVec4(data[offSrcOffsets:])
	return nil
}

func putVec4(b []byte, v Vec4) {
	for i, x := range v {
		binary.LittleEndian.PutUint32(b[4*i:], x)
	}
}

func getVec4(b []byte) Vec4 {
	var v Vec4
	for i := range v {
		v[i] = binary.LittleEndian.Uint32(b[4*i:])
	}
	return v
}

// Units returns the number of destination units a dispatch must cover.
func (m *Meta) Units(elem KernelElement) uint32 {
	return m.DstNumel / elem.Factor()
}

// Validate checks the invariants workers rely on but never check themselves:
// positive shapes, numel consistent with shapes, non-zero leading destination
// strides, a real permutation, and a largest source offset inside SrcNumel.
//
// Every mapping is a coordinate relabeling and strides are unsigned, so the
// largest source offset is reached at the last destination multi-index.
func (m *Meta) Validate(v Variant, elem KernelElement) error {
	mapper := MapperFor(v)
	if mapper == nil {
		return errors.Wrapf(ErrInvalidMeta, "unknown variant %d", int(v))
	}
	if !elem.Valid() {
		return errors.Wrapf(ErrInvalidMeta, "unknown kernel element %d", int(elem))
	}
	factor := elem.Factor()
	for i := 0; i < Rank; i++ {
		if m.SrcShape[i] == 0 || m.DstShape[i] == 0 {
			return errors.Wrapf(ErrInvalidMeta, "axis %d has size zero (src %v, dst %v)", i, m.SrcShape, m.DstShape)
		}
	}
	if got := uint64(m.DstShape.Product()) * uint64(factor); got != uint64(m.DstNumel) {
		return errors.Wrapf(ErrInvalidMeta, "dst_numel %d does not match dst_shape %v (x%d = %d)", m.DstNumel, m.DstShape, factor, got)
	}
	if got := uint64(m.SrcShape.Product()) * uint64(factor); got != uint64(m.SrcNumel) {
		return errors.Wrapf(ErrInvalidMeta, "src_numel %d does not match src_shape %v (x%d = %d)", m.SrcNumel, m.SrcShape, factor, got)
	}
	for i := 0; i < unrollAxes; i++ {
		if m.DstStride[i] == 0 {
			return errors.Wrapf(ErrInvalidMeta, "dst_stride %v has a zero on axis %d", m.DstStride, i)
		}
	}
	if v == Permute {
		var seen [Rank]bool
		for i, p := range m.Perm {
			if p >= Rank || seen[p] {
				return errors.Wrapf(ErrInvalidMeta, "perm %v is not a permutation (axis %d)", m.Perm, i)
			}
			seen[p] = true
		}
	}

	var last Vec4
	for i := range last {
		last[i] = m.DstShape[i] - 1
	}
	src := mapper.Map(last, m)
	var maxOffset uint64
	for i := 0; i < Rank; i++ {
		maxOffset += (uint64(src[i]) + uint64(m.SrcOffsets[i])) * uint64(m.SrcStride[i])
	}
	if srcUnits := uint64(m.SrcNumel / factor); maxOffset >= srcUnits {
		return errors.Wrapf(ErrInvalidMeta, "largest source offset %d is outside the %d source units", maxOffset, srcUnits)
	}
	return nil
}
