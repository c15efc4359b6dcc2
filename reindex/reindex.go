// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package reindex

import (
	"context"

	"github.com/born-ml/reindex/internal/config"
	"github.com/born-ml/reindex/internal/reindex"
	"github.com/born-ml/reindex/internal/tensor"
)

// Context holds a kernel cache, an executor and a configuration.
type Context = reindex.Context

// Executor runs specialized kernels over a dispatch grid.
type Executor = reindex.Executor

// Config holds the checked-mode switch and CPU parallelism settings.
type Config = config.Config

// Op is a validated reindex: a variant, its metadata record and the output shape.
type Op = reindex.Op

// Meta is the metadata record passed to every kernel invocation.
type Meta = reindex.Meta

// Kernel is a specialized reindex kernel.
type Kernel = reindex.Kernel

// Variant selects the index mapping of a kernel.
type Variant = reindex.Variant

// KernelElement is the packing of a kernel unit.
type KernelElement = reindex.KernelElement

// Mapping variants.
const (
	PermuteVariant   = reindex.Permute
	SliceVariant     = reindex.Slice
	BroadcastVariant = reindex.Broadcast
)

// Packing factors.
const (
	ScalarElement = reindex.ScalarElement
	Vec2Element   = reindex.Vec2Element
	Vec4Element   = reindex.Vec4Element
)

// Sentinel errors, matched with errors.Is.
var (
	ErrInvalidMeta = reindex.ErrInvalidMeta
	ErrBufferSize  = reindex.ErrBufferSize
)

// NewContext creates a context dispatching to exec.
func NewContext(exec Executor, cfg Config) *Context {
	return reindex.NewContext(exec, cfg)
}

// DefaultConfig returns the configuration used when no environment is set.
func DefaultConfig() Config {
	return config.Default()
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() Config {
	return config.Load()
}

// NewPermute builds a permute op. An empty perm reverses the axes.
func NewPermute(shape, perm []int) (*Op, error) {
	return reindex.NewPermute(shape, perm)
}

// NewSlice builds an op selecting [starts[i], ends[i]) on every axis.
func NewSlice(shape, starts, ends []int) (*Op, error) {
	return reindex.NewSlice(shape, starts, ends)
}

// NewBroadcast builds an op expanding shape to target.
func NewBroadcast(shape, target []int) (*Op, error) {
	return reindex.NewBroadcast(shape, target)
}

// Run applies op to src and returns a newly allocated result.
func Run[T tensor.DType](ctx context.Context, rc *Context, op *Op, src []T) ([]T, error) {
	dst := make([]T, op.Meta.DstNumel)
	if err := rc.Run(ctx, op, tensor.DataTypeOf[T](), tensor.Bytes(src), tensor.Bytes(dst)); err != nil {
		return nil, err
	}
	return dst, nil
}

// Permute returns src, of the given shape, with its axes reordered so that
// output axis i is input axis perm[i].
func Permute[T tensor.DType](ctx context.Context, rc *Context, src []T, shape, perm []int) ([]T, error) {
	op, err := NewPermute(shape, perm)
	if err != nil {
		return nil, err
	}
	return Run(ctx, rc, op, src)
}

// Slice returns the sub-block [starts, ends) of src.
func Slice[T tensor.DType](ctx context.Context, rc *Context, src []T, shape, starts, ends []int) ([]T, error) {
	op, err := NewSlice(shape, starts, ends)
	if err != nil {
		return nil, err
	}
	return Run(ctx, rc, op, src)
}

// Broadcast returns src expanded from shape to target.
func Broadcast[T tensor.DType](ctx context.Context, rc *Context, src []T, shape, target []int) ([]T, error) {
	op, err := NewBroadcast(shape, target)
	if err != nil {
		return nil, err
	}
	return Run(ctx, rc, op, src)
}
