package reindex

import (
	"fmt"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/born-ml/reindex/internal/tensor"
)

// Kernel is one fully specialized reindex kernel.
type Kernel struct {
	// Key uniquely identifies the specialization, e.g. "reindex_permute_f32_scalar".
	Key     string
	DType   tensor.DataType
	Element KernelElement
	Variant Variant
	// Source is the WGSL text handed to a GPU executor.
	Source string

	mapper Mapper
}

// UnitSize returns the byte size of one unit moved by a worker.
func (k *Kernel) UnitSize() int {
	return k.DType.Size() * int(k.Element.Factor())
}

// Mapper returns the Go mapping strategy the kernel was specialized with. Kernels
// not built by a Specializer use the mapping of their Variant.
func (k *Kernel) Mapper() Mapper {
	if k.mapper == nil {
		return MapperFor(k.Variant)
	}
	return k.mapper
}

// KernelKey names a specialization.
func KernelKey(dt tensor.DataType, elem KernelElement, v Variant) string {
	return fmt.Sprintf("reindex_%s_%s_%s", v, dt.WGSL(), elem)
}

// Specializer builds kernels and caches them by key.
// It is safe for concurrent use.
type Specializer struct {
	mu      sync.RWMutex
	kernels map[string]*Kernel
}

// NewSpecializer creates an empty specializer.
func NewSpecializer() *Specializer {
	return &Specializer{kernels: make(map[string]*Kernel)}
}

// Specialize returns the kernel for (dt, elem, v), building it on first use.
// The mapping fragment is not validated here: a malformed kernel surfaces when a
// GPU executor compiles Source.
func (s *Specializer) Specialize(dt tensor.DataType, elem KernelElement, v Variant) (*Kernel, error) {
	if dt.WGSL() == "" {
		return nil, errors.Errorf("reindex: unsupported element type %s", dt)
	}
	if !elem.Valid() {
		return nil, errors.Errorf("reindex: unsupported kernel element %d", int(elem))
	}
	mapper := MapperFor(v)
	if mapper == nil {
		return nil, errors.Errorf("reindex: unknown variant %d", int(v))
	}

	key := KernelKey(dt, elem, v)
	s.mu.RLock()
	if k, exists := s.kernels[key]; exists {
		s.mu.RUnlock()
		return k, nil
	}
	s.mu.RUnlock()

	source, err := assemble(key, dt, elem, mapper)
	if err != nil {
		return nil, err
	}
	k := &Kernel{
		Key:     key,
		DType:   dt,
		Element: elem,
		Variant: v,
		Source:  source,
		mapper:  mapper,
	}
	klog.V(1).Infof("reindex: specialized kernel %s (%d bytes of WGSL)", key, len(source))

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, exists := s.kernels[key]; exists {
		return existing, nil
	}
	s.kernels[key] = k
	return k, nil
}

// Len returns the number of cached kernels.
func (s *Specializer) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.kernels)
}

func assemble(key string, dt tensor.DataType, elem KernelElement, mapper Mapper) (string, error) {
	unroll := make([]int, unrollAxes)
	for i := range unroll {
		unroll[i] = i
	}
	params := kernelParams{
		Key:        key,
		F16:        dt == tensor.Float16,
		Unit:       elem.WGSLType(dt),
		Factor:     elem.Factor(),
		Unroll:     unroll,
		Last:       unrollAxes,
		TileWidth:  TileWidth,
		TileHeight: TileHeight,
		TileSize:   TileSize,
		Mapping:    mapper.Fragment(),
	}
	var sb strings.Builder
	if err := kernelTemplate.Execute(&sb, params); err != nil {
		return "", errors.Wrapf(err, "reindex: assembling %s", key)
	}
	return sb.String(), nil
}
