// Package reindex implements the reindex kernel family (permute, slice, broadcast-copy)
// for tensors of rank up to 4.
//
// A reindex copies every destination unit from one source unit. Each logical worker
//
//  1. linearizes its destination offset from the dispatch grid,
//  2. returns if the offset is past the destination (over-dispatch guard),
//  3. decomposes the offset into a multi-index with the destination strides,
//  4. maps it to a source multi-index with the variant's Mapper,
//  5. recomposes the source offset with the source strides and per-axis offsets,
//  6. copies one unit.
//
// A Specializer turns (element type, packing factor, variant) into a Kernel that carries
// both the WGSL source for a GPU executor and the Go mapping used by the CPU executor.
// Metadata is trusted: bounds are only checked by Meta.Validate, which a Context runs
// when configured as checked.
package reindex
