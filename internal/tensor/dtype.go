// Package tensor provides the element types, shapes and raw buffers the reindex kernels operate on.
package tensor

import (
	"reflect"

	"github.com/x448/float16"
)

// DType is a constraint for the element types a reindex kernel can be specialized for.
type DType interface {
	~float32 | ~int32 | ~uint32 | float16.Float16
}

// DataType represents runtime type information for tensors.
type DataType int

// Supported data types for tensors.
const (
	Float32 DataType = iota
	Float16
	Int32
	Uint32
)

// Size returns the byte size of the data type.
func (dt DataType) Size() int {
	switch dt {
	case Float32, Int32, Uint32:
		return 4
	case Float16:
		return 2
	default:
		panic("unknown data type")
	}
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Float32:
		return "float32"
	case Float16:
		return "float16"
	case Int32:
		return "int32"
	case Uint32:
		return "uint32"
	default:
		return "unknown"
	}
}

// WGSL returns the WGSL scalar type token, or "" for types WGSL cannot express.
func (dt DataType) WGSL() string {
	switch dt {
	case Float32:
		return "f32"
	case Float16:
		return "f16"
	case Int32:
		return "i32"
	case Uint32:
		return "u32"
	default:
		return ""
	}
}

// ParseDataType maps a type name ("float32", "f32", "float16", ...) to a DataType.
func ParseDataType(name string) (DataType, bool) {
	switch name {
	case "float32", "f32":
		return Float32, true
	case "float16", "f16", "half":
		return Float16, true
	case "int32", "i32":
		return Int32, true
	case "uint32", "u32":
		return Uint32, true
	default:
		return 0, false
	}
}

// DataTypeOf infers the DataType of T. Named types resolve to the DataType of
// their underlying type.
func DataTypeOf[T DType]() DataType {
	typ := reflect.TypeFor[T]()
	if typ == reflect.TypeFor[float16.Float16]() {
		return Float16
	}
	switch typ.Kind() {
	case reflect.Float32:
		return Float32
	case reflect.Int32:
		return Int32
	case reflect.Uint32:
		return Uint32
	default:
		panic("unsupported type " + typ.String())
	}
}
