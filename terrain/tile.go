// Package terrain models heightmap tiles laid out on a grid and the paint
// context protocol used to mutate them.
package terrain

import (
	"image"

	"github.com/gorustyt/terrainpath/common"
)

// TileRef identifies a tile. The zero value is never a valid tile.
type TileRef int32

type Side int

const (
	Left Side = iota
	Right
	Top
	Bottom
)

func (s Side) String() string {
	switch s {
	case Left:
		return "left"
	case Right:
		return "right"
	case Top:
		return "top"
	case Bottom:
		return "bottom"
	}
	return "unknown"
}

// Adjacency answers neighbour queries without exposing how tiles are linked.
type Adjacency interface {
	Neighbor(tile TileRef, side Side) (TileRef, bool)
}

// Layout is what the stroke generator needs to know about tiles.
type Layout interface {
	Adjacency
	Frame(tile TileRef) (Frame, bool)
}

// HeightSampler returns the terrain height at a normalised tile position, in
// world units above the tile origin.
type HeightSampler interface {
	SampleHeight(tile TileRef, uv common.Vec2) (float32, bool)
}

// Frame places a tile in the world. Local coordinates are (u, v, h): u runs
// along world x, v along world z, h is height divided by Size.Y().
type Frame struct {
	Origin     common.Vec3
	Size       common.Vec3
	Resolution int // heightmap samples per side
}

func (f Frame) Valid() bool {
	return f.Size.X() > 0 && f.Size.Y() > 0 && f.Size.Z() > 0 && f.Resolution >= 2
}

func (f Frame) ToWorld(local common.Vec3) common.Vec3 {
	return common.Vec3{
		f.Origin.X() + local[0]*f.Size.X(),
		f.Origin.Y() + local[2]*f.Size.Y(),
		f.Origin.Z() + local[1]*f.Size.Z(),
	}
}

func (f Frame) ToLocal(world common.Vec3) common.Vec3 {
	return common.Vec3{
		(world.X() - f.Origin.X()) / f.Size.X(),
		(world.Z() - f.Origin.Z()) / f.Size.Z(),
		(world.Y() - f.Origin.Y()) / f.Size.Y(),
	}
}

// PixelsPerUnit is the heightmap sample density along x.
func (f Frame) PixelsPerUnit() float32 {
	return float32(f.Resolution-1) / f.Size.X()
}

func (f Frame) PixelRect() image.Rectangle {
	return image.Rect(0, 0, f.Resolution, f.Resolution)
}

// Tile is a square heightmap. Heights are normalised to [0,1] of the frame's
// height scale and stored row-major with rows along v.
type Tile struct {
	Ref     TileRef
	X, Z    int
	Frame   Frame
	Heights []float32
}

func NewTile(ref TileRef, x, z int, frame Frame) *Tile {
	return &Tile{
		Ref:     ref,
		X:       x,
		Z:       z,
		Frame:   frame,
		Heights: make([]float32, frame.Resolution*frame.Resolution),
	}
}

func (t *Tile) index(px, pz int) int {
	return pz*t.Frame.Resolution + px
}

func (t *Tile) HeightAt(px, pz int) float32 {
	res := t.Frame.Resolution
	px = common.Clamp(px, 0, res-1)
	pz = common.Clamp(pz, 0, res-1)
	return t.Heights[t.index(px, pz)]
}

func (t *Tile) SetHeight(px, pz int, h float32) {
	if !(image.Point{X: px, Y: pz}).In(t.Frame.PixelRect()) {
		return
	}
	t.Heights[t.index(px, pz)] = common.Saturate(h)
}

// Interpolate bilinearly samples the normalised height at uv. Positions
// outside the tile are clamped to its edge.
func (t *Tile) Interpolate(uv common.Vec2) float32 {
	last := float32(t.Frame.Resolution - 1)
	x := common.Clamp(uv[0], 0, 1) * last
	z := common.Clamp(uv[1], 0, 1) * last
	x0, z0 := common.FloorToInt(x), common.FloorToInt(z)
	fx, fz := x-float32(x0), z-float32(z0)
	h00 := t.HeightAt(x0, z0)
	h10 := t.HeightAt(x0+1, z0)
	h01 := t.HeightAt(x0, z0+1)
	h11 := t.HeightAt(x0+1, z0+1)
	return common.Lerp(common.Lerp(h00, h10, fx), common.Lerp(h01, h11, fx), fz)
}

// SampleHeight is Interpolate scaled to world units.
func (t *Tile) SampleHeight(uv common.Vec2) float32 {
	return t.Interpolate(uv) * t.Frame.Size.Y()
}

func (t *Tile) Fill(h float32) {
	h = common.Saturate(h)
	for i := range t.Heights {
		t.Heights[i] = h
	}
}
