package terrain

import (
	"errors"
	"fmt"
	"sort"

	"github.com/gorustyt/terrainpath/common"
)

var (
	ErrTileOccupied = errors.New("terrain: a tile is already assigned to the grid cell")
	ErrNoHeightmap  = errors.New("terrain: tile has no heightmap")
	ErrRegionBusy   = errors.New("terrain: tile region already acquired")
	ErrOutOfBounds  = errors.New("terrain: region outside tile")
	ErrReadOnly     = errors.New("terrain: paint on read-only region")
	ErrReleased     = errors.New("terrain: paint on released region")
)

type cell struct{ x, z int }

// Grid is a set of equally sized tiles addressed by integer cell. Tile (x, z)
// has its origin at (x*size, 0, z*size); Right is +x and Top is +z.
type Grid struct {
	resolution  int
	tileSize    float32
	heightScale float32

	tiles  map[TileRef]*Tile
	byCell map[cell]TileRef
	next   TileRef
}

func NewGrid(resolution int, tileSize, heightScale float32) *Grid {
	return &Grid{
		resolution:  resolution,
		tileSize:    tileSize,
		heightScale: heightScale,
		tiles:       map[TileRef]*Tile{},
		byCell:      map[cell]TileRef{},
	}
}

func (g *Grid) Resolution() int      { return g.resolution }
func (g *Grid) TileSize() float32    { return g.tileSize }
func (g *Grid) HeightScale() float32 { return g.heightScale }
func (g *Grid) Len() int             { return len(g.tiles) }

func (g *Grid) frameAt(x, z int) Frame {
	return Frame{
		Origin:     common.Vec3{float32(x) * g.tileSize, 0, float32(z) * g.tileSize},
		Size:       common.Vec3{g.tileSize, g.heightScale, g.tileSize},
		Resolution: g.resolution,
	}
}

func (g *Grid) AddTile(x, z int) (*Tile, error) {
	if _, ok := g.byCell[cell{x, z}]; ok {
		return nil, fmt.Errorf("%w: (%d,%d)", ErrTileOccupied, x, z)
	}
	g.next++
	t := NewTile(g.next, x, z, g.frameAt(x, z))
	g.tiles[t.Ref] = t
	g.byCell[cell{x, z}] = t.Ref
	return t, nil
}

func (g *Grid) Tile(ref TileRef) (*Tile, bool) {
	t, ok := g.tiles[ref]
	return t, ok
}

func (g *Grid) TileAt(x, z int) (*Tile, bool) {
	ref, ok := g.byCell[cell{x, z}]
	if !ok {
		return nil, false
	}
	return g.tiles[ref], true
}

// Tiles returns every tile ordered by (z, x).
func (g *Grid) Tiles() []*Tile {
	res := make([]*Tile, 0, len(g.tiles))
	for _, t := range g.tiles {
		res = append(res, t)
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].Z != res[j].Z {
			return res[i].Z < res[j].Z
		}
		return res[i].X < res[j].X
	})
	return res
}

func (g *Grid) Neighbor(ref TileRef, side Side) (TileRef, bool) {
	t, ok := g.tiles[ref]
	if !ok {
		return 0, false
	}
	x, z := t.X, t.Z
	switch side {
	case Left:
		x--
	case Right:
		x++
	case Top:
		z++
	case Bottom:
		z--
	default:
		return 0, false
	}
	n, ok := g.byCell[cell{x, z}]
	return n, ok
}

func (g *Grid) Frame(ref TileRef) (Frame, bool) {
	t, ok := g.tiles[ref]
	if !ok {
		return Frame{}, false
	}
	return t.Frame, true
}

func (g *Grid) SampleHeight(ref TileRef, uv common.Vec2) (float32, bool) {
	t, ok := g.tiles[ref]
	if !ok {
		return 0, false
	}
	return t.SampleHeight(uv), true
}

// Locate finds the tile under a world-space (x, z) position and the
// normalised position inside it.
func (g *Grid) Locate(x, z float32) (TileRef, common.Vec2, bool) {
	cx := common.FloorToInt(x / g.tileSize)
	cz := common.FloorToInt(z / g.tileSize)
	t, ok := g.TileAt(cx, cz)
	if !ok {
		return 0, common.Vec2{}, false
	}
	local := t.Frame.ToLocal(common.Vec3{x, 0, z})
	return t.Ref, common.XY(local), true
}
