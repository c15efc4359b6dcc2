//go:build windows

package webgpu

import (
	"sync"

	"github.com/go-webgpu/webgpu/wgpu"
)

// maxPooledPerUsage bounds how many idle buffers are kept per usage.
const maxPooledPerUsage = 16

// pooledBuffer wraps a GPU buffer with metadata.
type pooledBuffer struct {
	buffer *wgpu.Buffer
	size   uint64
}

// BufferPool reuses GPU buffers by usage flags. A request is served by the
// smallest idle buffer that is at least as large.
type BufferPool struct {
	device *wgpu.Device

	idle map[wgpu.BufferUsage][]*pooledBuffer
	mu   sync.Mutex

	hits   uint64
	misses uint64
}

// NewBufferPool creates a new buffer pool for the given device.
func NewBufferPool(device *wgpu.Device) *BufferPool {
	return &BufferPool{
		device: device,
		idle:   make(map[wgpu.BufferUsage][]*pooledBuffer),
	}
}

// Acquire gets a buffer from the pool or creates a new one.
func (p *BufferPool) Acquire(size uint64, usage wgpu.BufferUsage) *wgpu.Buffer {
	p.mu.Lock()
	defer p.mu.Unlock()

	pool := p.idle[usage]
	best := -1
	for i, pb := range pool {
		if pb.size >= size && (best < 0 || pb.size < pool[best].size) {
			best = i
		}
	}
	if best >= 0 {
		buffer := pool[best].buffer
		p.idle[usage] = append(pool[:best], pool[best+1:]...)
		p.hits++
		return buffer
	}

	p.misses++
	return p.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage: usage,
		Size:  size,
	})
}

// Release returns a buffer to the pool for reuse.
// If the pool is full, the buffer is immediately released.
func (p *BufferPool) Release(buffer *wgpu.Buffer, size uint64, usage wgpu.BufferUsage) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.idle[usage]) >= maxPooledPerUsage {
		buffer.Release()
		return
	}
	p.idle[usage] = append(p.idle[usage], &pooledBuffer{buffer: buffer, size: size})
}

// Clear releases all pooled buffers.
func (p *BufferPool) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for usage, pool := range p.idle {
		for _, pb := range pool {
			pb.buffer.Release()
		}
		delete(p.idle, usage)
	}
}

// Stats returns pool hits, misses and the number of idle buffers.
func (p *BufferPool) Stats() (hits, misses uint64, pooled int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, pool := range p.idle {
		pooled += len(pool)
	}
	return p.hits, p.misses, pooled
}
