package terrain

import (
	"bytes"
	"errors"
	"image"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gorustyt/terrainpath/common"
	"github.com/gorustyt/terrainpath/common/rw"
)

func newTestGrid(t *testing.T) (*Grid, *Tile, *Tile) {
	t.Helper()
	g := NewGrid(5, 10, 20)
	a, err := g.AddTile(0, 0)
	require.NoError(t, err)
	b, err := g.AddTile(1, 0)
	require.NoError(t, err)
	return g, a, b
}

func TestFrameRoundTrip(t *testing.T) {
	f := Frame{Origin: common.Vec3{10, 5, -20}, Size: common.Vec3{10, 40, 10}, Resolution: 5}
	require.True(t, f.Valid())
	w := f.ToWorld(common.Vec3{0.5, 0.25, 0.5})
	assert.InDelta(t, 15, w.X(), 1e-5)
	assert.InDelta(t, 25, w.Y(), 1e-5)
	assert.InDelta(t, -17.5, w.Z(), 1e-5)
	l := f.ToLocal(w)
	assert.InDelta(t, 0.5, l[0], 1e-5)
	assert.InDelta(t, 0.25, l[1], 1e-5)
	assert.InDelta(t, 0.5, l[2], 1e-5)
	assert.InDelta(t, 0.4, f.PixelsPerUnit(), 1e-6)
}

func TestGridNeighbors(t *testing.T) {
	g, a, b := newTestGrid(t)
	n, ok := g.Neighbor(a.Ref, Right)
	require.True(t, ok)
	assert.Equal(t, b.Ref, n)
	n, ok = g.Neighbor(b.Ref, Left)
	require.True(t, ok)
	assert.Equal(t, a.Ref, n)
	_, ok = g.Neighbor(a.Ref, Left)
	assert.False(t, ok)
	_, ok = g.Neighbor(a.Ref, Top)
	assert.False(t, ok)

	c, err := g.AddTile(0, 1)
	require.NoError(t, err)
	n, ok = g.Neighbor(a.Ref, Top)
	require.True(t, ok)
	assert.Equal(t, c.Ref, n)
	n, ok = g.Neighbor(c.Ref, Bottom)
	require.True(t, ok)
	assert.Equal(t, a.Ref, n)

	_, ok = g.Neighbor(999, Right)
	assert.False(t, ok)
}

func TestGridOccupied(t *testing.T) {
	g, _, _ := newTestGrid(t)
	_, err := g.AddTile(1, 0)
	assert.ErrorIs(t, err, ErrTileOccupied)
}

func TestLocate(t *testing.T) {
	g, _, b := newTestGrid(t)
	ref, uv, ok := g.Locate(12.5, 5)
	require.True(t, ok)
	assert.Equal(t, b.Ref, ref)
	assert.InDelta(t, 0.25, uv[0], 1e-6)
	assert.InDelta(t, 0.5, uv[1], 1e-6)
	_, _, ok = g.Locate(-1, 5)
	assert.False(t, ok)
}

func TestInterpolate(t *testing.T) {
	_, a, _ := newTestGrid(t)
	a.SetHeight(1, 1, 1)
	// uv (0.25, 0.25) is pixel (1, 1) on a 5-sample tile.
	assert.InDelta(t, 1, a.Interpolate(common.Vec2{0.25, 0.25}), 1e-6)
	assert.InDelta(t, 0.5, a.Interpolate(common.Vec2{0.125, 0.25}), 1e-6)
	assert.InDelta(t, 0.25, a.Interpolate(common.Vec2{0.125, 0.125}), 1e-6)
	assert.InDelta(t, 20, a.SampleHeight(common.Vec2{0.25, 0.25}), 1e-5)
	assert.Equal(t, float32(0), a.Interpolate(common.Vec2{-3, 9}))
}

func TestSetHeightClampsAndIgnoresOutside(t *testing.T) {
	_, a, _ := newTestGrid(t)
	a.SetHeight(0, 0, 3)
	assert.Equal(t, float32(1), a.HeightAt(0, 0))
	a.SetHeight(7, 0, 0.5)
	assert.Equal(t, float32(0), a.HeightAt(4, 0))
}

func TestAcquireIsExclusive(t *testing.T) {
	g, a, b := newTestGrid(t)
	p := NewMemPainter(g)
	ctx, err := p.Acquire(a.Ref, image.Rect(-2, -2, 3, 3), true)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 3, 3), ctx.Region().Bounds)
	assert.True(t, p.Busy(a.Ref))

	_, err = p.Acquire(a.Ref, image.Rect(0, 0, 1, 1), true)
	assert.ErrorIs(t, err, ErrRegionBusy)

	other, err := p.Acquire(b.Ref, image.Rect(0, 0, 1, 1), true)
	require.NoError(t, err)
	p.Release(other)

	p.Release(ctx)
	p.Release(ctx)
	assert.False(t, p.Busy(a.Ref))
	assert.ErrorIs(t, ctx.Paint(PaintOp{}), ErrReleased)
}

func TestAcquireFailures(t *testing.T) {
	g, a, _ := newTestGrid(t)
	p := NewMemPainter(g)
	_, err := p.Acquire(42, image.Rect(0, 0, 1, 1), true)
	assert.ErrorIs(t, err, ErrNoHeightmap)
	_, err = p.Acquire(a.Ref, image.Rect(6, 6, 9, 9), true)
	assert.ErrorIs(t, err, ErrOutOfBounds)
	assert.False(t, p.Busy(a.Ref))
}

func TestWithRegionReleasesOnError(t *testing.T) {
	g, a, _ := newTestGrid(t)
	p := NewMemPainter(g)
	boom := errors.New("boom")
	err := WithRegion(p, a.Ref, image.Rect(0, 0, 2, 2), true, func(Context) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.False(t, p.Busy(a.Ref))

	assert.Panics(t, func() {
		_ = WithRegion(p, a.Ref, image.Rect(0, 0, 2, 2), true, func(Context) error { panic("paint") })
	})
	assert.False(t, p.Busy(a.Ref))
}

func TestPaintMovesTowardTarget(t *testing.T) {
	g, a, _ := newTestGrid(t)
	p := NewMemPainter(g)
	mask := image.NewAlpha(image.Rect(1, 1, 3, 3))
	for i := range mask.Pix {
		mask.Pix[i] = 255
	}
	op := PaintOp{Params: common.Vec4{0.5, 0, 0.4, 0}, Mask: mask}
	assert.InDelta(t, 0.8, op.TargetHeight(), 1e-6)

	err := WithRegion(p, a.Ref, image.Rect(0, 0, 5, 5), true, func(ctx Context) error {
		return ctx.Paint(op)
	})
	require.NoError(t, err)
	assert.InDelta(t, 0.4, a.HeightAt(1, 1), 1e-6)
	assert.InDelta(t, 0.4, a.HeightAt(2, 2), 1e-6)
	assert.Equal(t, float32(0), a.HeightAt(0, 0), "outside the mask")
	assert.Equal(t, float32(0), a.HeightAt(3, 3), "outside the mask")
}

func TestPaintReadOnly(t *testing.T) {
	g, a, _ := newTestGrid(t)
	p := NewMemPainter(g)
	err := WithRegion(p, a.Ref, image.Rect(0, 0, 5, 5), false, func(ctx Context) error {
		return ctx.Paint(PaintOp{Params: common.Vec4{1, 0, 0.5, 0}})
	})
	assert.ErrorIs(t, err, ErrReadOnly)
}

func TestSaveLoadGrid(t *testing.T) {
	g, a, b := newTestGrid(t)
	a.SetHeight(2, 3, 0.75)
	b.Fill(0.125)

	var buf bytes.Buffer
	require.NoError(t, g.Save(&buf))

	loaded, err := LoadGrid(&buf)
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.Len())
	assert.Equal(t, float32(10), loaded.TileSize())
	la, ok := loaded.TileAt(0, 0)
	require.True(t, ok)
	assert.Equal(t, a.Heights, la.Heights)
	lb, ok := loaded.TileAt(1, 0)
	require.True(t, ok)
	assert.Equal(t, b.Heights, lb.Heights)
}

func TestLoadGridRejectsBadData(t *testing.T) {
	_, err := LoadGrid(bytes.NewReader([]byte{1, 2, 3}))
	assert.Error(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewGrid(3, 1, 1).Save(&buf))
	data := buf.Bytes()
	data[0] ^= 0xff
	_, err = LoadGrid(bytes.NewReader(data))
	assert.ErrorIs(t, err, ErrWrongMagic)

	g, _, _ := newTestGrid(t)
	buf.Reset()
	require.NoError(t, g.Save(&buf))
	_, err = LoadGrid(bytes.NewReader(buf.Bytes()[:buf.Len()-4]))
	assert.Error(t, err)
}

func encodeHeader(h gridHeader, tail int) []byte {
	w := rw.NewBinWriter()
	h.encode(w)
	for i := 0; i < tail; i++ {
		w.WriteUInt32(0)
	}
	return w.GetWriteBytes()
}

func TestLoadGridRejectsBadHeader(t *testing.T) {
	good := gridHeader{Magic: GridMagic, Version: GridVersion, NumTiles: 1, Resolution: 2, TileSize: 1, HeightScale: 1}
	_, err := LoadGrid(bytes.NewReader(encodeHeader(good, 6)))
	require.NoError(t, err)

	nan := float32(math.NaN())
	for _, tc := range []struct {
		name string
		edit func(h *gridHeader)
	}{
		{"huge resolution", func(h *gridHeader) { h.Resolution = 1 << 30 }},
		{"more tiles than data", func(h *gridHeader) { h.NumTiles = 5 }},
		{"tiny resolution", func(h *gridHeader) { h.Resolution = 1 }},
		{"negative tiles", func(h *gridHeader) { h.NumTiles = -1 }},
		{"zero tile size", func(h *gridHeader) { h.TileSize = 0 }},
		{"nan tile size", func(h *gridHeader) { h.TileSize = nan }},
		{"negative height scale", func(h *gridHeader) { h.HeightScale = -2 }},
		{"infinite height scale", func(h *gridHeader) { h.HeightScale = float32(math.Inf(1)) }},
	} {
		h := good
		tc.edit(&h)
		_, err := LoadGrid(bytes.NewReader(encodeHeader(h, 6)))
		assert.ErrorIs(t, err, ErrBadHeader, tc.name)
	}
}
