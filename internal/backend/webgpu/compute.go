//go:build windows

package webgpu

import (
	"unsafe"

	"github.com/go-webgpu/webgpu/wgpu"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/born-ml/reindex/internal/reindex"
)

// storageUsage is the usage of source and destination storage buffers.
const storageUsage = wgpu.BufferUsageStorage | wgpu.BufferUsageCopySrc | wgpu.BufferUsageCopyDst

// stagingUsage is the usage of readback buffers.
const stagingUsage = wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst

// compileShader compiles the kernel's WGSL source into a ShaderModule.
// Results are cached in the Backend's shaders map by kernel key.
func (b *Backend) compileShader(k *reindex.Kernel) (shader *wgpu.ShaderModule, err error) {
	b.mu.RLock()
	if shader, exists := b.shaders[k.Key]; exists {
		b.mu.RUnlock()
		return shader, nil
	}
	b.mu.RUnlock()

	// The native compiler panics through the bindings on invalid WGSL.
	defer func() {
		if r := recover(); r != nil {
			shader = nil
			err = errors.Errorf("webgpu: compiling %s: %v", k.Key, r)
		}
	}()

	shader = b.device.CreateShaderModuleWGSL(k.Source)
	if shader == nil {
		return nil, errors.Errorf("webgpu: compiling %s: no shader module", k.Key)
	}
	klog.V(1).Infof("webgpu: compiled %s", k.Key)

	b.mu.Lock()
	if cached, exists := b.shaders[k.Key]; exists {
		b.mu.Unlock()
		shader.Release()
		return cached, nil
	}
	b.shaders[k.Key] = shader
	b.mu.Unlock()

	return shader, nil
}

// getOrCreatePipeline returns a cached ComputePipeline or creates a new one.
func (b *Backend) getOrCreatePipeline(k *reindex.Kernel) (*wgpu.ComputePipeline, error) {
	b.mu.RLock()
	if pipeline, exists := b.pipelines[k.Key]; exists {
		b.mu.RUnlock()
		return pipeline, nil
	}
	b.mu.RUnlock()

	shader, err := b.compileShader(k)
	if err != nil {
		return nil, err
	}

	// Create compute pipeline with auto layout (nil layout)
	pipeline := b.device.CreateComputePipelineSimple(nil, shader, "main")
	if pipeline == nil {
		return nil, errors.Errorf("webgpu: creating pipeline for %s", k.Key)
	}

	b.mu.Lock()
	if cached, exists := b.pipelines[k.Key]; exists {
		b.mu.Unlock()
		pipeline.Release()
		return cached, nil
	}
	b.pipelines[k.Key] = pipeline
	b.mu.Unlock()

	return pipeline, nil
}

// alignedSize rounds n up to a multiple of align. WebGPU buffer sizes must
// be multiples of 4 and uniform blocks multiples of 16.
func alignedSize(n, align uint64) uint64 {
	if n == 0 {
		return align
	}
	return (n + align - 1) &^ (align - 1)
}

// createBuffer creates a GPU buffer of at least len(data) bytes and uploads data.
func (b *Backend) createBuffer(data []byte, usage wgpu.BufferUsage) (*wgpu.Buffer, uint64) {
	size := alignedSize(uint64(len(data)), 4)

	// Create buffer with MappedAtCreation for initial data upload
	buffer := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage:            usage,
		Size:             size,
		MappedAtCreation: wgpu.True,
	})

	mappedPtr := buffer.GetMappedRange(0, size)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	mappedSlice := unsafe.Slice((*byte)(mappedPtr), size)
	copy(mappedSlice, data)
	buffer.Unmap()

	return buffer, size
}

// createUniformBuffer creates the metadata uniform buffer.
func (b *Backend) createUniformBuffer(meta *reindex.Meta) (*wgpu.Buffer, uint64, error) {
	data, err := meta.MarshalBinary()
	if err != nil {
		return nil, 0, err
	}
	buffer, _ := b.createBuffer(data, wgpu.BufferUsageUniform|wgpu.BufferUsageCopyDst)
	return buffer, alignedSize(uint64(len(data)), 16), nil
}

// readBuffer copies size bytes of a GPU buffer into dst.
// Uses a pooled staging buffer since storage buffers can't be mapped directly.
func (b *Backend) readBuffer(srcBuffer *wgpu.Buffer, size uint64, dst []byte) error {
	staging := b.bufferPool.Acquire(size, stagingUsage)
	defer b.bufferPool.Release(staging, size, stagingUsage)

	encoder := b.device.CreateCommandEncoder(nil)
	encoder.CopyBufferToBuffer(srcBuffer, 0, staging, 0, size)
	cmdBuffer := encoder.Finish(nil)
	b.queue.Submit(cmdBuffer)

	if err := staging.MapAsync(b.device, wgpu.MapModeRead, 0, size); err != nil {
		return errors.Wrap(err, "webgpu: failed to map staging buffer")
	}

	mappedPtr := staging.GetMappedRange(0, size)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	mappedSlice := unsafe.Slice((*byte)(mappedPtr), size)
	copy(dst, mappedSlice)
	staging.Unmap()

	return nil
}
