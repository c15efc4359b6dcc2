package reindex

// Variant selects how a destination multi-index is mapped to a source multi-index.
type Variant int

// Reindex variants.
const (
	// Permute reorders axes: src[perm[i]] = dst[i].
	Permute Variant = iota
	// Slice keeps the multi-index; the slice start lives in Meta.SrcOffsets.
	Slice
	// Broadcast keeps the multi-index; broadcast axes have a source stride of 0.
	Broadcast
)

// Variants lists every supported variant.
var Variants = []Variant{Permute, Slice, Broadcast}

// String returns the variant name used in kernel keys.
func (v Variant) String() string {
	switch v {
	case Permute:
		return "permute"
	case Slice:
		return "slice"
	case Broadcast:
		return "broadcast"
	default:
		return "unknown"
	}
}

// ParseVariant maps a name to its Variant.
func ParseVariant(name string) (Variant, bool) {
	for _, v := range Variants {
		if v.String() == name {
			return v, true
		}
	}
	switch name {
	case "transpose":
		return Permute, true
	case "expand":
		return Broadcast, true
	}
	return 0, false
}

// Mapper computes the source multi-index of a destination multi-index.
// Implementations are total over Vec4 given well-formed metadata.
type Mapper interface {
	// Map returns the source multi-index for dst.
	Map(dst Vec4, meta *Meta) Vec4
	// Fragment returns WGSL statements that declare src_index from dst_index and metadata.
	Fragment() string
}

// MapperFor returns the mapping strategy of v, or nil for an unknown variant.
func MapperFor(v Variant) Mapper {
	switch v {
	case Permute:
		return permuteMapper{}
	case Slice, Broadcast:
		return identityMapper{}
	default:
		return nil
	}
}

type permuteMapper struct{}

func (permuteMapper) Map(dst Vec4, meta *Meta) Vec4 {
	var src Vec4
	src[meta.Perm[0]] = dst[0]
	src[meta.Perm[1]] = dst[1]
	src[meta.Perm[2]] = dst[2]
	src[meta.Perm[3]] = dst[3]
	return src
}

func (permuteMapper) Fragment() string {
	return `    var src_index = vec4<u32>(0u);
    src_index[metadata.perm[0]] = dst_index[0];
    src_index[metadata.perm[1]] = dst_index[1];
    src_index[metadata.perm[2]] = dst_index[2];
    src_index[metadata.perm[3]] = dst_index[3];`
}

// identityMapper serves both Slice (start carried by offsets) and Broadcast
// (zero source strides drop the broadcast axes from the dot product).
type identityMapper struct{}

func (identityMapper) Map(dst Vec4, _ *Meta) Vec4 {
	return dst
}

func (identityMapper) Fragment() string {
	return `    let src_index = dst_index;`
}
