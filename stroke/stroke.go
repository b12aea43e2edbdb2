// Package stroke paints a straight path between an anchor and a target by
// stamping the brush repeatedly along it, walking across tile edges.
package stroke

import (
	"github.com/gorustyt/terrainpath/common"
	"github.com/gorustyt/terrainpath/terrain"
)

// Anchor is the fixed start of a stroke. Pos is (u, v, h) in the tile's
// normalised frame.
type Anchor struct {
	Tile terrain.TileRef
	Pos  common.Vec3
}

// Hit is a point under the cursor. Height is normalised on Tile.
type Hit struct {
	Tile   terrain.TileRef
	UV     common.Vec2
	Height float32
}

func (h Hit) local() common.Vec3 {
	return common.WithZ(h.UV, h.Height)
}

// Stamp is one brush application along a stroke. UV is local to Tile, Size is
// the brush footprint in world units, Height is the normalised target height
// in the anchor tile's frame.
type Stamp struct {
	Index    int
	Progress float32
	Tile     terrain.TileRef
	UV       common.Vec2
	Size     int
	Height   float32
	Strength float32
	Jitter   float32
}
