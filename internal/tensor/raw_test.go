package tensor

import (
	"testing"

	"github.com/x448/float16"
)

// RawTensor Tests

func TestRawTensorAsFloat32(t *testing.T) {
	raw, _ := NewRaw(Shape{3, 2}, Float32, CPU)
	data := raw.AsFloat32()

	if len(data) != 6 {
		t.Errorf("AsFloat32 length = %d, want 6", len(data))
	}

	// Modify and verify zero-copy
	data[0] = 42
	if raw.AsFloat32()[0] != 42 {
		t.Error("AsFloat32 should return zero-copy slice")
	}
}

func TestRawTensorAsFloat16(t *testing.T) {
	raw, _ := NewRaw(Shape{4}, Float16, CPU)
	if raw.ByteSize() != 8 {
		t.Errorf("ByteSize = %d, want 8", raw.ByteSize())
	}

	raw.AsFloat16()[3] = float16.Fromfloat32(1.5)
	if got := raw.AsFloat16()[3].Float32(); got != 1.5 {
		t.Errorf("AsFloat16()[3] = %v, want 1.5", got)
	}
}

func TestRawTensorWrongDTypePanics(t *testing.T) {
	raw, _ := NewRaw(Shape{2}, Int32, CPU)
	defer func() {
		if recover() == nil {
			t.Error("AsUint32 on an int32 tensor should panic")
		}
	}()
	_ = raw.AsUint32()
}

func TestFromSlice(t *testing.T) {
	raw, err := FromSlice([]int32{1, 2, 3, 4, 5, 6}, Shape{2, 3})
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}
	if raw.DType() != Int32 {
		t.Errorf("DType = %s, want int32", raw.DType())
	}
	if got := raw.AsInt32()[5]; got != 6 {
		t.Errorf("AsInt32()[5] = %d, want 6", got)
	}

	if _, err := FromSlice([]int32{1, 2, 3}, Shape{2, 3}); err == nil {
		t.Error("FromSlice should reject a length mismatch")
	}
}

func TestNewRawInvalidShape(t *testing.T) {
	if _, err := NewRaw(Shape{2, 0}, Float32, CPU); err == nil {
		t.Error("NewRaw should reject a zero dimension")
	}
}

func TestBytesElementsRoundTrip(t *testing.T) {
	values := []uint32{7, 8, 9}
	b := Bytes(values)
	if len(b) != 12 {
		t.Fatalf("Bytes length = %d, want 12", len(b))
	}
	back := Elements[uint32](b)
	back[1] = 80
	if values[1] != 80 {
		t.Error("Elements should alias the original memory")
	}
	if Bytes([]float32{}) != nil {
		t.Error("Bytes of an empty slice should be nil")
	}
}

type meters float32

type count int32

func TestDataTypeOfNamedTypes(t *testing.T) {
	if got := DataTypeOf[meters](); got != Float32 {
		t.Errorf("DataTypeOf[meters]() = %v, want float32", got)
	}
	if got := DataTypeOf[count](); got != Int32 {
		t.Errorf("DataTypeOf[count]() = %v, want int32", got)
	}
	if got := Elements[meters](Bytes([]meters{1.5, 2})); len(got) != 2 || got[0] != 1.5 {
		t.Errorf("Elements[meters] = %v, want [1.5 2]", got)
	}
}
