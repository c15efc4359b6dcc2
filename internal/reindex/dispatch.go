package reindex

import "fmt"

// Workgroup tile geometry shared by the WGSL kernels and the CPU executor.
const (
	TileWidth  = 8
	TileHeight = 8
	TileSize   = TileWidth * TileHeight

	// MaxWorkgroupsPerDim is the WebGPU limit on workgroups along one grid axis.
	MaxWorkgroupsPerDim = 65535
)

// WorkgroupCount is the size of a dispatch grid in workgroups.
type WorkgroupCount struct {
	X, Y, Z uint32
}

// Groups returns the total number of workgroups.
func (w WorkgroupCount) Groups() uint64 {
	return uint64(w.X) * uint64(w.Y) * uint64(w.Z)
}

// Invocations returns the total number of workers the grid launches.
func (w WorkgroupCount) Invocations() uint64 {
	return w.Groups() * TileSize
}

func (w WorkgroupCount) String() string {
	return fmt.Sprintf("(%d, %d, %d)", w.X, w.Y, w.Z)
}

func divCeil(a, b uint32) uint32 {
	q := a / b
	if a%b != 0 {
		q++
	}
	return q
}

// CalculateDispatch sizes a grid covering dstNumel elements packed by elem.
// The count along X is capped at MaxWorkgroupsPerDim; the overflow goes to Y.
// The grid is rounded up to whole tiles, so it usually over-provisions.
func CalculateDispatch(dstNumel uint32, elem KernelElement) WorkgroupCount {
	units := dstNumel / elem.Factor()
	x := max(divCeil(units, TileSize), 1)
	if x > MaxWorkgroupsPerDim {
		y := divCeil(x, MaxWorkgroupsPerDim)
		return WorkgroupCount{X: MaxWorkgroupsPerDim, Y: y, Z: 1}
	}
	return WorkgroupCount{X: x, Y: 1, Z: 1}
}

// GlobalID linearizes a worker's position: the workgroup id in row-major order over
// the grid, times TileSize, plus the worker's index inside its tile.
func GlobalID(groupX, groupY, groupZ, localIndex uint32, grid WorkgroupCount) uint32 {
	group := (groupZ*grid.Y+groupY)*grid.X + groupX
	return group*TileSize + localIndex
}

// LocalIndex flattens a worker's position inside its 8x8 tile.
func LocalIndex(localX, localY uint32) uint32 {
	return localY*TileWidth + localX
}
