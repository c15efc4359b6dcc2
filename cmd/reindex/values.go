package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/x448/float16"

	"github.com/born-ml/reindex/internal/tensor"
)

// splitList splits a comma-separated list, ignoring surrounding spaces.
func splitList(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	fields := strings.Split(s, ",")
	for i, f := range fields {
		fields[i] = strings.TrimSpace(f)
	}
	return fields
}

func parseInts(s string) ([]int, error) {
	fields := splitList(s)
	ints := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q", f)
		}
		ints[i] = n
	}
	return ints, nil
}

// parseTyped parses every field with parse into a new tensor.
func parseTyped[T tensor.DType](fields []string, shape tensor.Shape, parse func(string) (T, error)) (*tensor.RawTensor, error) {
	values := make([]T, len(fields))
	for i, f := range fields {
		v, err := parse(f)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q: %w", f, err)
		}
		values[i] = v
	}
	return tensor.FromSlice(values, shape)
}

// parseValues parses a comma-separated list of dt values of the given shape.
func parseValues(dt tensor.DataType, shape tensor.Shape, s string) (*tensor.RawTensor, error) {
	fields := splitList(s)
	switch dt {
	case tensor.Float32:
		return parseTyped(fields, shape, func(f string) (float32, error) {
			v, err := strconv.ParseFloat(f, 32)
			return float32(v), err
		})
	case tensor.Float16:
		return parseTyped(fields, shape, func(f string) (float16.Float16, error) {
			v, err := strconv.ParseFloat(f, 32)
			return float16.Fromfloat32(float32(v)), err
		})
	case tensor.Int32:
		return parseTyped(fields, shape, func(f string) (int32, error) {
			v, err := strconv.ParseInt(f, 10, 32)
			return int32(v), err
		})
	case tensor.Uint32:
		return parseTyped(fields, shape, func(f string) (uint32, error) {
			v, err := strconv.ParseUint(f, 10, 32)
			return uint32(v), err
		})
	default:
		return nil, fmt.Errorf("unsupported dtype %s", dt)
	}
}

// formatValues renders the elements of raw.
func formatValues(raw *tensor.RawTensor) []string {
	var out []string
	switch raw.DType() {
	case tensor.Float32:
		for _, v := range raw.AsFloat32() {
			out = append(out, strconv.FormatFloat(float64(v), 'g', -1, 32))
		}
	case tensor.Float16:
		for _, v := range raw.AsFloat16() {
			out = append(out, strconv.FormatFloat(float64(v.Float32()), 'g', -1, 32))
		}
	case tensor.Int32:
		for _, v := range raw.AsInt32() {
			out = append(out, strconv.FormatInt(int64(v), 10))
		}
	case tensor.Uint32:
		for _, v := range raw.AsUint32() {
			out = append(out, strconv.FormatUint(uint64(v), 10))
		}
	}
	return out
}
