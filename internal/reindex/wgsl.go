package reindex

import "text/template"

// kernelTemplate assembles a reindex kernel. The decomposition is unrolled over the
// leading axes; the innermost axis receives the remainder.
var kernelTemplate = template.Must(template.New("reindex").Parse(`{{if .F16}}enable f16;

{{end}}// {{.Key}}
struct Meta {
    src_shape: vec4<u32>,
    dst_shape: vec4<u32>,
    src_stride: vec4<u32>,
    dst_stride: vec4<u32>,
    src_numel: u32,
    dst_numel: u32,
    perm: vec4<u32>,
    src_offsets: vec4<u32>,
}

@group(0) @binding(0) var<storage, read> X: array<{{.Unit}}>;
@group(0) @binding(1) var<storage, read_write> Y: array<{{.Unit}}>;
@group(0) @binding(2) var<uniform> metadata: Meta;

fn offsetToIndex(offset: u32, stride: vec4<u32>) -> vec4<u32> {
    var index: vec4<u32>;
    var remaining = offset;
{{- range .Unroll}}
    index[{{.}}] = remaining / stride[{{.}}];
    remaining = remaining % stride[{{.}}];
{{- end}}
    index[{{.Last}}] = remaining;
    return index;
}

fn indexToOffset(index: vec4<u32>, offsets: vec4<u32>, stride: vec4<u32>) -> u32 {
    return dot(index + offsets, stride);
}

@compute @workgroup_size({{.TileWidth}}, {{.TileHeight}}, 1)
fn main(
    @builtin(workgroup_id) group_id: vec3<u32>,
    @builtin(local_invocation_index) local_index: u32,
    @builtin(num_workgroups) num_groups: vec3<u32>,
) {
    let group = (group_id.z * num_groups.y + group_id.y) * num_groups.x + group_id.x;
    let dst_offset = group * {{.TileSize}}u + local_index;
    if (dst_offset >= metadata.dst_numel / {{.Factor}}u) {
        return;
    }

    let dst_index = offsetToIndex(dst_offset, metadata.dst_stride);
{{.Mapping}}
    let src_offset = indexToOffset(src_index, metadata.src_offsets, metadata.src_stride);
    Y[dst_offset] = X[src_offset];
}
`))

// kernelParams is the data kernelTemplate is executed with.
type kernelParams struct {
	Key        string
	F16        bool
	Unit       string
	Factor     uint32
	Unroll     []int
	Last       int
	TileWidth  int
	TileHeight int
	TileSize   int
	Mapping    string
}
