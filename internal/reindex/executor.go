package reindex

import (
	"context"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/born-ml/reindex/internal/parallel"
	"github.com/born-ml/reindex/internal/tensor"
)

// Executor runs a specialized kernel over a dispatch grid.
//
// src and dst are flat buffers of the kernel's element type and must not overlap.
// An error means the whole dispatch failed; the content of dst is then unspecified.
type Executor interface {
	Name() string
	Device() tensor.Device
	Execute(ctx context.Context, k *Kernel, meta *Meta, grid WorkgroupCount, src, dst []byte) error
}

// Invoke runs one logical worker with global id. It reports whether a unit was
// written: false means the over-dispatch guard fired and nothing was touched.
func (k *Kernel) Invoke(id uint32, meta *Meta, src, dst []byte) bool {
	if id >= meta.DstNumel/k.Element.Factor() {
		return false
	}
	dstIndex := OffsetToIndex(id, meta.DstStride)
	srcIndex := k.Mapper().Map(dstIndex, meta)
	srcOffset := IndexToOffset(srcIndex, meta.SrcOffsets, meta.SrcStride)

	unit := k.UnitSize()
	d := int(id) * unit
	s := int(srcOffset) * unit
	copy(dst[d:d+unit], src[s:s+unit])
	return true
}

// CheckBuffers verifies that src and dst hold at least SrcNumel and DstNumel elements.
func CheckBuffers(k *Kernel, meta *Meta, src, dst []byte) error {
	size := k.DType.Size()
	if need := int(meta.SrcNumel/k.Element.Factor()) * k.UnitSize(); len(src) < need {
		return errors.Wrapf(ErrBufferSize, "source has %d bytes, %d %s elements need %d", len(src), meta.SrcNumel, k.DType, need)
	}
	if need := int(meta.DstNumel/k.Element.Factor()) * k.UnitSize(); len(dst) < need {
		return errors.Wrapf(ErrBufferSize, "destination has %d bytes, %d %s elements need %d", len(dst), meta.DstNumel, k.DType, need)
	}
	if len(src)%size != 0 || len(dst)%size != 0 {
		return errors.Wrapf(ErrBufferSize, "buffer lengths %d/%d are not multiples of the %s size", len(src), len(dst), k.DType)
	}
	return nil
}

// CPUExecutor emulates the GPU grid with goroutines: every workgroup is an item of
// parallel.ForContext and runs its 64 workers in sequence. Workers share nothing
// but the read-only metadata and source; each destination unit is written by one worker.
type CPUExecutor struct {
	cfg parallel.Config
}

// NewCPUExecutor creates a CPU executor with the given fan-out configuration.
func NewCPUExecutor(cfg parallel.Config) *CPUExecutor {
	return &CPUExecutor{cfg: cfg}
}

// Name returns the executor name.
func (c *CPUExecutor) Name() string {
	return "cpu"
}

// Device returns tensor.CPU.
func (c *CPUExecutor) Device() tensor.Device {
	return tensor.CPU
}

// Execute runs k over grid. Source offsets are not bounds checked beyond Go's own
// slice checks. Metadata that reads past src, or has a zero leading destination
// stride, panics inside a worker goroutine, which cannot be recovered and crashes
// the process. Use Meta.Validate (checked mode) to reject such metadata first.
func (c *CPUExecutor) Execute(ctx context.Context, k *Kernel, meta *Meta, grid WorkgroupCount, src, dst []byte) error {
	if k.Mapper() == nil {
		return errors.Errorf("reindex: %s has unknown variant %d", k.Key, int(k.Variant))
	}
	if err := CheckBuffers(k, meta, src, dst); err != nil {
		return err
	}
	groups := grid.Groups()
	if groups > uint64(^uint32(0))/TileSize {
		return errors.Errorf("reindex: grid %s launches more than 2^32 workers", grid)
	}
	klog.V(2).Infof("reindex: cpu %s grid=%s units=%d", k.Key, grid, meta.Units(k.Element))

	err := parallel.ForContext(ctx, int(groups), func(g int) {
		group := uint32(g)
		gx := group % grid.X
		gy := (group / grid.X) % grid.Y
		gz := group / (grid.X * grid.Y)
		for ly := uint32(0); ly < TileHeight; ly++ {
			for lx := uint32(0); lx < TileWidth; lx++ {
				k.Invoke(GlobalID(gx, gy, gz, LocalIndex(lx, ly), grid), meta, src, dst)
			}
		}
	}, c.cfg)
	return errors.Wrapf(err, "reindex: %s dispatch aborted", k.Key)
}
