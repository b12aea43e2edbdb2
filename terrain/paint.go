package terrain

import (
	"fmt"
	"image"

	"github.com/gorustyt/terrainpath/common"
)

// Region is the heightmap rectangle a context was acquired for, in heightmap
// pixels of Tile. Bounds are already clipped to the tile.
type Region struct {
	Tile   TileRef
	Bounds image.Rectangle
	Write  bool
}

// PaintOp is one brush application. Mask and Filter are in the same pixel
// space as the region and may extend past it. Params follows the paint
// material convention: X is strength, Z is half the normalised target height.
type PaintOp struct {
	Texture image.Image
	Params  common.Vec4
	Mask    *image.Alpha
	Filter  *image.Alpha
}

// TargetHeight decodes the normalised height carried in Params.
func (op PaintOp) TargetHeight() float32 {
	return op.Params.Z() * 2
}

type Context interface {
	Region() Region
	Paint(op PaintOp) error
}

// Painter hands out exclusive paint contexts. Every successful Acquire must be
// matched by exactly one Release.
type Painter interface {
	Acquire(tile TileRef, bounds image.Rectangle, write bool) (Context, error)
	Release(ctx Context)
}

// WithRegion acquires a context, runs fn and releases the context on every
// path out of the call, including panics.
func WithRegion(p Painter, tile TileRef, bounds image.Rectangle, write bool, fn func(Context) error) error {
	ctx, err := p.Acquire(tile, bounds, write)
	if err != nil {
		return err
	}
	defer p.Release(ctx)
	return fn(ctx)
}

// MemPainter paints directly into the heightmaps of a Grid.
type MemPainter struct {
	grid *Grid
	busy map[TileRef]bool
}

func NewMemPainter(grid *Grid) *MemPainter {
	return &MemPainter{grid: grid, busy: map[TileRef]bool{}}
}

func (p *MemPainter) Acquire(ref TileRef, bounds image.Rectangle, write bool) (Context, error) {
	t, ok := p.grid.Tile(ref)
	if !ok || len(t.Heights) == 0 {
		return nil, fmt.Errorf("%w: tile %d", ErrNoHeightmap, ref)
	}
	if p.busy[ref] {
		return nil, fmt.Errorf("%w: tile %d", ErrRegionBusy, ref)
	}
	clipped := bounds.Intersect(t.Frame.PixelRect())
	if clipped.Empty() {
		return nil, fmt.Errorf("%w: tile %d bounds %v", ErrOutOfBounds, ref, bounds)
	}
	p.busy[ref] = true
	return &memContext{tile: t, region: Region{Tile: ref, Bounds: clipped, Write: write}}, nil
}

func (p *MemPainter) Release(ctx Context) {
	c, ok := ctx.(*memContext)
	if !ok || c.released {
		return
	}
	c.released = true
	delete(p.busy, c.region.Tile)
}

// Busy reports whether a context on the tile is outstanding.
func (p *MemPainter) Busy(ref TileRef) bool {
	return p.busy[ref]
}

type memContext struct {
	tile     *Tile
	region   Region
	released bool
}

func (c *memContext) Region() Region { return c.region }

// Paint moves each covered sample toward the target height by
// strength * mask * filter.
func (c *memContext) Paint(op PaintOp) error {
	if c.released {
		return ErrReleased
	}
	if !c.region.Write {
		return ErrReadOnly
	}
	strength := op.Params.X()
	target := common.Saturate(op.TargetHeight())
	r := c.region.Bounds
	for pz := r.Min.Y; pz < r.Max.Y; pz++ {
		for px := r.Min.X; px < r.Max.X; px++ {
			w := strength * coverage(op.Mask, px, pz) * coverage(op.Filter, px, pz)
			if w <= 0 {
				continue
			}
			h := c.tile.HeightAt(px, pz)
			c.tile.SetHeight(px, pz, common.Lerp(h, target, common.Saturate(w)))
		}
	}
	return nil
}

// coverage is 1 for a nil image and 0 outside the image bounds.
func coverage(img *image.Alpha, x, y int) float32 {
	if img == nil {
		return 1
	}
	return float32(img.AlphaAt(x, y).A) / 255
}
