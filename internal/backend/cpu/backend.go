// Package cpu implements direct nested-loop reference reindexing on CPU.
//
// The loops work on any rank and any element size and share no code with the
// reindex kernels, so they serve as an oracle for the kernel executors.
package cpu

import (
	"fmt"

	"github.com/born-ml/reindex/internal/tensor"
)

// CPUBackend implements reference reindex operations on CPU.
type CPUBackend struct {
	device tensor.Device
}

// New creates a new CPU reference backend.
func New() *CPUBackend {
	return &CPUBackend{
		device: tensor.CPU,
	}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU reference"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

// coords converts a flat row-major index into coordinates.
func coords(idx int, strides []int, out []int) {
	for dim := range strides {
		out[dim] = idx / strides[dim]
		idx %= strides[dim]
	}
}

// copyElement copies element si of src into element di of dst.
func copyElement(dst, src []byte, di, si, size int) {
	copy(dst[di*size:(di+1)*size], src[si*size:(si+1)*size])
}

// Transpose transposes the tensor by permuting its dimensions.
// Output axis i is input axis axes[i]; no axes reverses all dimensions.
func (cpu *CPUBackend) Transpose(t *tensor.RawTensor, axes ...int) *tensor.RawTensor {
	shape := t.Shape()
	ndim := len(shape)

	// Default: reverse all dimensions
	if len(axes) == 0 {
		axes = make([]int, ndim)
		for i := range axes {
			axes[i] = ndim - 1 - i
		}
	}

	if len(axes) != ndim {
		panic(fmt.Sprintf("transpose: axes length %d != ndim %d", len(axes), ndim))
	}
	seen := make([]bool, ndim)
	for _, ax := range axes {
		if ax < 0 || ax >= ndim {
			panic(fmt.Sprintf("transpose: invalid axis %d for %dD tensor", ax, ndim))
		}
		if seen[ax] {
			panic(fmt.Sprintf("transpose: duplicate axis %d", ax))
		}
		seen[ax] = true
	}

	newShape := make(tensor.Shape, ndim)
	for i, ax := range axes {
		newShape[i] = shape[ax]
	}

	result, err := tensor.NewRaw(newShape, t.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("transpose: %v", err))
	}

	srcStrides := shape.ComputeStrides()
	dstStrides := newShape.ComputeStrides()
	size := t.DType().Size()
	src, dst := t.Data(), result.Data()

	coord := make([]int, ndim)
	for i := 0; i < shape.NumElements(); i++ {
		coords(i, srcStrides, coord)

		dstIdx := 0
		for dstDim, srcDim := range axes {
			dstIdx += coord[srcDim] * dstStrides[dstDim]
		}
		copyElement(dst, src, dstIdx, i, size)
	}

	return result
}

// Expand broadcasts the tensor to a new shape.
func (cpu *CPUBackend) Expand(x *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	xShape := x.Shape()

	if len(newShape) < len(xShape) {
		panic(fmt.Sprintf("expand: new shape %v has fewer dimensions than input shape %v",
			newShape, xShape))
	}

	// Align shapes from the right (last dimension)
	offset := len(newShape) - len(xShape)
	for i := 0; i < len(xShape); i++ {
		xDim := xShape[i]
		newDim := newShape[offset+i]
		if xDim != 1 && xDim != newDim {
			panic(fmt.Sprintf("expand: cannot expand dimension %d from %d to %d",
				i, xDim, newDim))
		}
	}

	result, err := tensor.NewRaw(newShape, x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("expand: %v", err))
	}

	outStrides := newShape.ComputeStrides()
	xStrides := xShape.ComputeStrides()
	size := x.DType().Size()
	src, dst := x.Data(), result.Data()

	coord := make([]int, len(newShape))
	for outIdx := 0; outIdx < newShape.NumElements(); outIdx++ {
		coords(outIdx, outStrides, coord)

		inIdx := 0
		for i, xDim := range xShape {
			if xDim == 1 {
				continue // Broadcast dimension
			}
			inIdx += coord[offset+i] * xStrides[i]
		}
		copyElement(dst, src, outIdx, inIdx, size)
	}

	return result
}

// Slice copies the block [starts[i], ends[i]) of every axis.
func (cpu *CPUBackend) Slice(x *tensor.RawTensor, starts, ends []int) *tensor.RawTensor {
	shape := x.Shape()
	ndim := len(shape)

	if len(starts) != ndim || len(ends) != ndim {
		panic(fmt.Sprintf("slice: %d starts and %d ends for %dD tensor", len(starts), len(ends), ndim))
	}

	newShape := make(tensor.Shape, ndim)
	for i := range shape {
		if starts[i] < 0 || starts[i] >= ends[i] || ends[i] > shape[i] {
			panic(fmt.Sprintf("slice: invalid range [%d, %d) for dimension %d of size %d",
				starts[i], ends[i], i, shape[i]))
		}
		newShape[i] = ends[i] - starts[i]
	}

	result, err := tensor.NewRaw(newShape, x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("slice: %v", err))
	}

	srcStrides := shape.ComputeStrides()
	dstStrides := newShape.ComputeStrides()
	size := x.DType().Size()
	src, dst := x.Data(), result.Data()

	coord := make([]int, ndim)
	for outIdx := 0; outIdx < newShape.NumElements(); outIdx++ {
		coords(outIdx, dstStrides, coord)

		inIdx := 0
		for dim := range coord {
			inIdx += (coord[dim] + starts[dim]) * srcStrides[dim]
		}
		copyElement(dst, src, outIdx, inIdx, size)
	}

	return result
}
