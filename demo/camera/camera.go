// Package camera maps between window pixels and the terrain's x/z plane.
// Screen y grows downward while world z grows toward the top of the window.
package camera

import "github.com/gorustyt/terrainpath/common"

type Camera struct {
	Scale  float32 // window pixels per world unit
	Margin float32 // window pixels around the terrain
	Depth  float32 // terrain extent along z in world units
}

func New(scale, margin, depth float32) Camera {
	return Camera{Scale: scale, Margin: margin, Depth: depth}
}

// ToWorld returns the world (x, z) under a window pixel.
func (c Camera) ToWorld(sx, sy int) common.Vec2 {
	return common.Vec2{
		(float32(sx) - c.Margin) / c.Scale,
		c.Depth - (float32(sy)-c.Margin)/c.Scale,
	}
}

// ToScreen is the inverse of ToWorld.
func (c Camera) ToScreen(xz common.Vec2) common.Vec2 {
	return common.Vec2{
		c.Margin + xz[0]*c.Scale,
		c.Margin + (c.Depth-xz[1])*c.Scale,
	}
}

// Extent is the window size needed to show width×depth world units.
func (c Camera) Extent(width float32) (int, int) {
	return common.CeilToInt(width*c.Scale + 2*c.Margin), common.CeilToInt(c.Depth*c.Scale + 2*c.Margin)
}

// Plot maps a curve over progress [0,1] and values [Lo,Hi] onto a window
// rectangle with its top-left corner at (X, Y).
type Plot struct {
	X, Y, W, H float32
	Lo, Hi     float32
}

func (p Plot) Contains(sx, sy int) bool {
	x, y := float32(sx), float32(sy)
	return x >= p.X && x < p.X+p.W && y >= p.Y && y < p.Y+p.H
}

// ToCurve returns the progress and value under a window pixel.
func (p Plot) ToCurve(sx, sy int) (t, v float32) {
	t = (float32(sx) - p.X) / p.W
	v = p.Hi - (float32(sy)-p.Y)/p.H*(p.Hi-p.Lo)
	return t, v
}

// ToScreen places (t, v) in the plot. Values outside [Lo,Hi] are pinned to
// the plot edge.
func (p Plot) ToScreen(t, v float32) common.Vec2 {
	v = common.Clamp(v, p.Lo, p.Hi)
	return common.Vec2{
		p.X + t*p.W,
		p.Y + (p.Hi-v)/(p.Hi-p.Lo)*p.H,
	}
}
