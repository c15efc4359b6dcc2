//go:build windows

// Package webgpu implements a reindex executor on WebGPU.
// Uses go-webgpu (github.com/go-webgpu/webgpu) for zero-CGO WebGPU bindings.
package webgpu

import (
	"fmt"
	"sync"

	"github.com/go-webgpu/webgpu/wgpu"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/born-ml/reindex/internal/tensor"
)

// Backend dispatches specialized reindex kernels to a GPU.
// It implements reindex.Executor.
type Backend struct {
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	// Shader and pipeline cache, keyed by kernel key
	shaders   map[string]*wgpu.ShaderModule
	pipelines map[string]*wgpu.ComputePipeline
	mu        sync.RWMutex

	// Device info
	adapterInfo *wgpu.AdapterInfo

	// Staging buffers are reused across dispatches
	bufferPool *BufferPool

	// Serializes submissions: the queue is shared by all dispatches
	submitMu sync.Mutex
}

// New creates a new WebGPU backend.
// Returns an error if WebGPU is not available or initialization fails.
func New() (backend *Backend, err error) {
	// Recover from panic if wgpu_native library is not found.
	defer func() {
		if r := recover(); r != nil {
			backend = nil
			err = errors.Errorf("webgpu: native library not available: %v", r)
		}
	}()

	instance, instanceErr := wgpu.CreateInstance(nil)
	if instanceErr != nil {
		return nil, errors.Wrap(instanceErr, "webgpu: failed to create instance")
	}
	adapter, adapterErr := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceHighPerformance,
	})
	if adapterErr != nil {
		instance.Release()
		return nil, errors.Wrap(adapterErr, "webgpu: failed to request adapter")
	}

	adapterInfo := adapter.GetInfo()

	device, deviceErr := adapter.RequestDevice(nil)
	if deviceErr != nil {
		adapter.Release()
		instance.Release()
		return nil, errors.Wrap(deviceErr, "webgpu: failed to request device")
	}

	queue := device.GetQueue()
	if queue == nil {
		device.Release()
		adapter.Release()
		instance.Release()
		return nil, errors.New("webgpu: failed to get queue")
	}

	b := &Backend{
		instance:    instance,
		adapter:     adapter,
		device:      device,
		queue:       queue,
		shaders:     make(map[string]*wgpu.ShaderModule),
		pipelines:   make(map[string]*wgpu.ComputePipeline),
		adapterInfo: &adapterInfo,
		bufferPool:  NewBufferPool(device),
	}
	klog.V(1).Infof("webgpu: using %s", b.Name())
	return b, nil
}

// Release releases all WebGPU resources.
// Must be called when the backend is no longer needed.
func (b *Backend) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.bufferPool != nil {
		b.bufferPool.Clear()
		b.bufferPool = nil
	}

	for _, p := range b.pipelines {
		p.Release()
	}
	b.pipelines = nil

	for _, s := range b.shaders {
		s.Release()
	}
	b.shaders = nil

	if b.queue != nil {
		b.queue.Release()
		b.queue = nil
	}
	if b.device != nil {
		b.device.Release()
		b.device = nil
	}
	if b.adapter != nil {
		b.adapter.Release()
		b.adapter = nil
	}
	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}
}

// Name returns the backend name.
func (b *Backend) Name() string {
	if b.adapterInfo != nil {
		return fmt.Sprintf("webgpu (%s %s)", b.adapterInfo.Vendor, b.adapterInfo.Device)
	}
	return "webgpu"
}

// Device returns the compute device.
func (b *Backend) Device() tensor.Device {
	return tensor.WebGPU
}

// AdapterInfo returns information about the GPU adapter.
func (b *Backend) AdapterInfo() *wgpu.AdapterInfo {
	return b.adapterInfo
}

// IsAvailable checks if WebGPU is available on this system.
func IsAvailable() (available bool) {
	// Recover from panic if wgpu_native library is not found.
	defer func() {
		if r := recover(); r != nil {
			available = false
		}
	}()

	instance, err := wgpu.CreateInstance(nil)
	if err != nil {
		return false
	}
	defer instance.Release()

	adapter, err := instance.RequestAdapter(nil)
	if err != nil {
		return false
	}
	adapter.Release()

	return true
}

// PoolStats returns staging buffer pool statistics.
func (b *Backend) PoolStats() (hits, misses uint64, pooled int) {
	return b.bufferPool.Stats()
}

// ListAdapters returns information about the default GPU adapter.
func ListAdapters() (adapters []*wgpu.AdapterInfo, err error) {
	// Recover from panic if wgpu_native library is not found.
	defer func() {
		if r := recover(); r != nil {
			adapters = nil
			err = errors.Errorf("webgpu: native library not available: %v", r)
		}
	}()

	instance, instanceErr := wgpu.CreateInstance(nil)
	if instanceErr != nil {
		return nil, errors.Wrap(instanceErr, "webgpu: failed to create instance")
	}
	defer instance.Release()

	// WebGPU has no adapter enumeration; report the default one.
	adapter, adapterErr := instance.RequestAdapter(nil)
	if adapterErr != nil {
		return nil, errors.Wrap(adapterErr, "webgpu: no adapters available")
	}
	defer adapter.Release()

	info := adapter.GetInfo()

	return []*wgpu.AdapterInfo{&info}, nil
}
