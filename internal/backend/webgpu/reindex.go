//go:build windows

package webgpu

import (
	"context"

	"github.com/go-webgpu/webgpu/wgpu"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/born-ml/reindex/internal/reindex"
	"github.com/born-ml/reindex/internal/tensor"
)

var _ reindex.Executor = (*Backend)(nil)

// Execute uploads src, dst and the metadata uniform, dispatches the kernel
// over grid and reads the destination back into dst.
//
// dst is uploaded too, so units skipped by the guard keep their contents.
func (b *Backend) Execute(ctx context.Context, k *reindex.Kernel, meta *reindex.Meta, grid reindex.WorkgroupCount, src, dst []byte) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrapf(err, "webgpu: %s", k.Key)
	}
	if k.DType == tensor.Float16 {
		// The device is requested without the shader-f16 feature.
		return errors.Errorf("webgpu: %s: float16 kernels are not supported on this device", k.Key)
	}
	if err := reindex.CheckBuffers(k, meta, src, dst); err != nil {
		return err
	}
	if grid.X > reindex.MaxWorkgroupsPerDim || grid.Y > reindex.MaxWorkgroupsPerDim || grid.Z > reindex.MaxWorkgroupsPerDim {
		return errors.Errorf("webgpu: %s: grid %s exceeds %d workgroups per dimension", k.Key, grid, reindex.MaxWorkgroupsPerDim)
	}
	if grid.Groups() == 0 {
		return nil
	}

	pipeline, err := b.getOrCreatePipeline(k)
	if err != nil {
		return err
	}

	b.submitMu.Lock()
	defer b.submitMu.Unlock()

	srcBuffer, srcSize := b.createBuffer(src, storageUsage)
	defer srcBuffer.Release()

	dstBuffer, dstSize := b.createBuffer(dst, storageUsage)
	defer dstBuffer.Release()

	metaBuffer, metaSize, err := b.createUniformBuffer(meta)
	if err != nil {
		return err
	}
	defer metaBuffer.Release()

	bindGroupLayout := pipeline.GetBindGroupLayout(0)
	bindGroup := b.device.CreateBindGroupSimple(bindGroupLayout, []wgpu.BindGroupEntry{
		wgpu.BufferBindingEntry(0, srcBuffer, 0, srcSize),
		wgpu.BufferBindingEntry(1, dstBuffer, 0, dstSize),
		wgpu.BufferBindingEntry(2, metaBuffer, 0, metaSize),
	})
	defer bindGroup.Release()

	klog.V(2).Infof("webgpu: dispatch %s grid=%s", k.Key, grid)

	encoder := b.device.CreateCommandEncoder(nil)
	computePass := encoder.BeginComputePass(nil)
	computePass.SetPipeline(pipeline)
	computePass.SetBindGroup(0, bindGroup, nil)
	computePass.DispatchWorkgroups(grid.X, grid.Y, grid.Z)
	computePass.End()

	cmdBuffer := encoder.Finish(nil)
	b.queue.Submit(cmdBuffer)

	if err := ctx.Err(); err != nil {
		return errors.Wrapf(err, "webgpu: %s", k.Key)
	}
	return b.readBuffer(dstBuffer, dstSize, dst)
}
