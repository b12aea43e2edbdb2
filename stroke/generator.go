package stroke

import (
	"iter"
	"math"
	"slices"

	"github.com/gorustyt/terrainpath/common"
	"github.com/gorustyt/terrainpath/profile"
	"github.com/gorustyt/terrainpath/terrain"
)

const (
	// DefaultSpacingScale converts spacing units into stroke-frame distance
	// between stamps.
	DefaultSpacingScale = 0.1
	// DefaultMinSpacing keeps the stamp count finite for zero spacing.
	DefaultMinSpacing = 0.01
)

// Generator subdivides a stroke into stamps.
type Generator struct {
	layout terrain.Layout

	Spacing      float32
	MinSpacing   float32
	SpacingScale float32
}

func NewGenerator(layout terrain.Layout, spacing float32) *Generator {
	return &Generator{
		layout:       layout,
		Spacing:      spacing,
		MinSpacing:   DefaultMinSpacing,
		SpacingScale: DefaultSpacingScale,
	}
}

// StrokeVector returns target - anchor in the anchor tile's normalised frame.
// A target on another tile is carried through world space.
func (g *Generator) StrokeVector(a Anchor, target Hit) (common.Vec3, bool) {
	end := target.local()
	if target.Tile != a.Tile {
		af, ok := g.layout.Frame(a.Tile)
		if !ok || !af.Valid() {
			return common.Vec3{}, false
		}
		tf, ok := g.layout.Frame(target.Tile)
		if !ok || !tf.Valid() {
			return common.Vec3{}, false
		}
		end = af.ToLocal(tf.ToWorld(end))
	}
	return end.Sub(a.Pos), true
}

// StampCount is floor(length / (SpacingScale * max(Spacing, MinSpacing))),
// evaluated in float32 throughout.
func (g *Generator) StampCount(length float32) int {
	step := g.SpacingScale * max(g.Spacing, g.MinSpacing)
	if !(step > 0) || !(length > 0) || !common.IsFinite(length) {
		return 0
	}
	n := length / step
	if !common.IsFinite(n) || n >= math.MaxInt32 {
		return 0
	}
	return int(n)
}

// Stamps yields the stamps of the stroke from a to target. Stamp i sits at
// progress i/count, so progress 1 is never produced. baseSize is the brush
// size in world units before the width profile.
func (g *Generator) Stamps(a Anchor, target Hit, baseSize float32, profiles *profile.Set) iter.Seq[Stamp] {
	return func(yield func(Stamp) bool) {
		stroke, ok := g.StrokeVector(a, target)
		if !ok {
			return
		}
		count := g.StampCount(stroke.Len())
		if count == 0 {
			return
		}
		// jitter is planar; a stroke with no planar extent has no lateral direction.
		perp := common.Perp2(common.XY(stroke))

		tile := a.Tile
		var offset common.Vec2
		for i := 0; i < count; i++ {
			progress := float32(i) / float32(count)
			v := profiles.Evaluate(progress)
			along := a.Pos.Add(stroke.Mul(progress))
			uv := common.XY(along).Add(offset).Add(perp.Mul(v.Jitter))
			tile, uv, offset = g.walk(tile, uv, offset)
			s := Stamp{
				Index:    i,
				Progress: progress,
				Tile:     tile,
				UV:       uv,
				Size:     int(v.Width * baseSize),
				Height:   along.Z() + v.Height,
				Strength: v.Strength,
				Jitter:   v.Jitter,
			}
			if !yield(s) {
				return
			}
		}
	}
}

func (g *Generator) Generate(a Anchor, target Hit, baseSize float32, profiles *profile.Set) []Stamp {
	return slices.Collect(g.Stamps(a, target, baseSize, profiles))
}

// walk moves a stamp at most one tile per axis. The offset follows every
// move so later stamps are computed in the new tile's frame. Without a
// neighbour the coordinate stays outside [0,1].
func (g *Generator) walk(tile terrain.TileRef, uv, offset common.Vec2) (terrain.TileRef, common.Vec2, common.Vec2) {
	if uv[0] >= 1 {
		if n, ok := g.layout.Neighbor(tile, terrain.Right); ok {
			tile = n
			uv[0]--
			offset[0]--
		}
	} else if uv[0] <= 0 {
		if n, ok := g.layout.Neighbor(tile, terrain.Left); ok {
			tile = n
			uv[0]++
			offset[0]++
		}
	}
	if uv[1] >= 1 {
		if n, ok := g.layout.Neighbor(tile, terrain.Top); ok {
			tile = n
			uv[1]--
			offset[1]--
		}
	} else if uv[1] <= 0 {
		if n, ok := g.layout.Neighbor(tile, terrain.Bottom); ok {
			tile = n
			uv[1]++
			offset[1]++
		}
	}
	return tile, uv, offset
}
