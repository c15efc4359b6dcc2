package reindex

import (
	"context"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/born-ml/reindex/internal/config"
	"github.com/born-ml/reindex/internal/tensor"
)

// Context carries everything a reindex needs: the kernel cache, the executor and
// the configuration. It replaces any process-wide device state and is safe for
// concurrent use when its Executor is.
type Context struct {
	specializer *Specializer
	executor    Executor
	cfg         config.Config
}

// NewContext creates a context dispatching to exec.
func NewContext(exec Executor, cfg config.Config) *Context {
	klog.V(1).Infof("reindex: new context on %s executor (checked=%t)", exec.Name(), cfg.Checked)
	return &Context{
		specializer: NewSpecializer(),
		executor:    exec,
		cfg:         cfg,
	}
}

// NewCPUContext creates a context on a CPU executor configured from the environment.
func NewCPUContext() *Context {
	cfg := config.Load()
	return NewContext(NewCPUExecutor(cfg.Parallel), cfg)
}

// Executor returns the executor kernels are dispatched to.
func (c *Context) Executor() Executor {
	return c.executor
}

// Specializer returns the context's kernel cache.
func (c *Context) Specializer() *Specializer {
	return c.specializer
}

// Config returns the context configuration.
func (c *Context) Config() config.Config {
	return c.cfg
}

// Run dispatches op over src into dst, packing as widely as the op allows.
func (c *Context) Run(ctx context.Context, op *Op, dt tensor.DataType, src, dst []byte) error {
	return c.RunWith(ctx, op, dt, op.BestElement(), src, dst)
}

// RunWith dispatches op with an explicit packing factor.
func (c *Context) RunWith(ctx context.Context, op *Op, dt tensor.DataType, elem KernelElement, src, dst []byte) error {
	packed, err := op.Vectorize(elem)
	if err != nil {
		return err
	}
	k, err := c.specializer.Specialize(dt, elem, op.Variant)
	if err != nil {
		return err
	}
	meta := &packed.Meta
	if c.cfg.Checked {
		if err := meta.Validate(op.Variant, elem); err != nil {
			return errors.WithMessagef(err, "reindex: %s", k.Key)
		}
	}
	grid := CalculateDispatch(meta.DstNumel, elem)
	return c.executor.Execute(ctx, k, meta, grid, src, dst)
}

// Apply runs op on in and returns a new tensor of shape op.Shape.
func (c *Context) Apply(ctx context.Context, op *Op, in *tensor.RawTensor) (*tensor.RawTensor, error) {
	if got := uint64(in.NumElements()); got != uint64(op.Meta.SrcNumel) {
		return nil, errors.Wrapf(ErrBufferSize, "input %v has %d elements, op reads %d", in.Shape(), got, op.Meta.SrcNumel)
	}
	out, err := tensor.NewRaw(op.Shape, in.DType(), c.executor.Device())
	if err != nil {
		return nil, errors.Wrap(err, "reindex")
	}
	if err := c.Run(ctx, op, in.DType(), in.Data(), out.Data()); err != nil {
		return nil, err
	}
	return out, nil
}
