package terrain

import (
	"errors"
	"fmt"
	"io"

	"github.com/gorustyt/terrainpath/common"
	"github.com/gorustyt/terrainpath/common/rw"
)

const (
	GridMagic   = 'T'<<24 | 'P'<<16 | 'T'<<8 | 'H' //'TPTH'
	GridVersion = 1
)

var (
	ErrWrongMagic   = errors.New("terrain: data is not a tile grid")
	ErrWrongVersion = errors.New("terrain: unsupported tile grid version")
	ErrBadHeader    = errors.New("terrain: corrupt tile grid header")
)

type gridHeader struct {
	Magic       uint32
	Version     uint32
	NumTiles    int32
	Resolution  int32
	TileSize    float32
	HeightScale float32
}

func (h *gridHeader) encode(w *rw.ReaderWriter) {
	w.WriteUInt32(h.Magic)
	w.WriteUInt32(h.Version)
	w.WriteInt32(h.NumTiles)
	w.WriteInt32(h.Resolution)
	w.WriteFloat32(h.TileSize)
	w.WriteFloat32(h.HeightScale)
}

func (h *gridHeader) decode(r *rw.ReaderWriter) error {
	h.Magic = r.ReadUInt32()
	h.Version = r.ReadUInt32()
	h.NumTiles = r.ReadInt32()
	h.Resolution = r.ReadInt32()
	h.TileSize = r.ReadFloat32()
	h.HeightScale = r.ReadFloat32()
	return r.Err()
}

// validate checks the header against the bytes that follow it, so nothing is
// allocated for tiles the data cannot hold.
func (h *gridHeader) validate(remaining int) error {
	if h.Resolution < 2 || h.NumTiles < 0 {
		return fmt.Errorf("%w: resolution %d, %d tiles", ErrBadHeader, h.Resolution, h.NumTiles)
	}
	if !(h.TileSize > 0) || !common.IsFinite(h.TileSize) || !(h.HeightScale > 0) || !common.IsFinite(h.HeightScale) {
		return fmt.Errorf("%w: tile size %v, height scale %v", ErrBadHeader, h.TileSize, h.HeightScale)
	}
	samples := int64(h.Resolution) * int64(h.Resolution)
	if samples > int64(remaining)/4 && h.NumTiles > 0 {
		return fmt.Errorf("%w: resolution %d exceeds %d bytes of data", ErrBadHeader, h.Resolution, remaining)
	}
	stride := 8 + 4*samples // cell x, z and the heights
	if int64(h.NumTiles)*stride > int64(remaining) {
		return fmt.Errorf("%w: %d tiles need %d bytes, have %d", ErrBadHeader, h.NumTiles, int64(h.NumTiles)*stride, remaining)
	}
	return nil
}

// Save writes every tile of the grid. Tile refs are not stored; cells are.
func (g *Grid) Save(dst io.Writer) error {
	w := rw.NewBinWriter()
	tiles := g.Tiles()
	header := gridHeader{
		Magic:       GridMagic,
		Version:     GridVersion,
		NumTiles:    int32(len(tiles)),
		Resolution:  int32(g.resolution),
		TileSize:    g.tileSize,
		HeightScale: g.heightScale,
	}
	header.encode(w)
	for _, t := range tiles {
		w.WriteInt32(int32(t.X))
		w.WriteInt32(int32(t.Z))
		w.WriteFloat32s(t.Heights)
	}
	if _, err := dst.Write(w.GetWriteBytes()); err != nil {
		return fmt.Errorf("terrain: save grid: %w", err)
	}
	return nil
}

func LoadGrid(src io.Reader) (*Grid, error) {
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("terrain: load grid: %w", err)
	}
	r := rw.NewBinReader(data)
	var header gridHeader
	if err := header.decode(r); err != nil {
		return nil, fmt.Errorf("terrain: load grid header: %w", err)
	}
	if header.Magic != GridMagic {
		return nil, ErrWrongMagic
	}
	if header.Version != GridVersion {
		return nil, fmt.Errorf("%w: %d", ErrWrongVersion, header.Version)
	}
	if err := header.validate(r.Size()); err != nil {
		return nil, err
	}
	g := NewGrid(int(header.Resolution), header.TileSize, header.HeightScale)
	for i := int32(0); i < header.NumTiles; i++ {
		x, z := r.ReadInt32(), r.ReadInt32()
		if err := r.Err(); err != nil {
			return nil, fmt.Errorf("terrain: load tile %d: %w", i, err)
		}
		t, err := g.AddTile(int(x), int(z))
		if err != nil {
			return nil, err
		}
		r.ReadFloat32s(t.Heights)
		if err := r.Err(); err != nil {
			return nil, fmt.Errorf("terrain: load tile %d heights: %w", i, err)
		}
	}
	return g, nil
}
