package reindex

import "github.com/born-ml/reindex/internal/tensor"

// KernelElement is the number of logical elements a worker moves at once.
type KernelElement int

// Supported packing factors.
const (
	ScalarElement KernelElement = iota
	Vec2Element
	Vec4Element
)

// Factor returns the packing factor: 1, 2 or 4.
func (e KernelElement) Factor() uint32 {
	switch e {
	case ScalarElement:
		return 1
	case Vec2Element:
		return 2
	case Vec4Element:
		return 4
	default:
		panic("unknown kernel element")
	}
}

// Valid reports whether e is one of the supported packing factors.
func (e KernelElement) Valid() bool {
	return e >= ScalarElement && e <= Vec4Element
}

// String returns "scalar", "vec2" or "vec4".
func (e KernelElement) String() string {
	switch e {
	case ScalarElement:
		return "scalar"
	case Vec2Element:
		return "vec2"
	case Vec4Element:
		return "vec4"
	default:
		return "unknown"
	}
}

// WGSLType returns the WGSL type of one unit of dt, e.g. "f32" or "vec4<f32>".
func (e KernelElement) WGSLType(dt tensor.DataType) string {
	switch e {
	case Vec2Element:
		return "vec2<" + dt.WGSL() + ">"
	case Vec4Element:
		return "vec4<" + dt.WGSL() + ">"
	default:
		return dt.WGSL()
	}
}

// ElementForFactor maps a packing factor back to its KernelElement.
func ElementForFactor(factor int) (KernelElement, bool) {
	switch factor {
	case 1:
		return ScalarElement, true
	case 2:
		return Vec2Element, true
	case 4:
		return Vec4Element, true
	default:
		return 0, false
	}
}
