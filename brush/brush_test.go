package brush

import (
	"image"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gorustyt/terrainpath/common"
	"github.com/gorustyt/terrainpath/terrain"
)

func testFrame() terrain.Frame {
	return terrain.Frame{Size: common.Vec3{100, 50, 100}, Resolution: 101}
}

func TestDefaultTexture(t *testing.T) {
	tex := DefaultTexture(16)
	assert.Equal(t, uint8(255), tex.AlphaAt(8, 8).A)
	assert.Equal(t, uint8(0), tex.AlphaAt(0, 0).A)
	assert.Equal(t, uint8(0), tex.AlphaAt(15, 15).A)
}

func TestNewSessionClamps(t *testing.T) {
	s := NewSession(10, 3, 0, -1)
	assert.Equal(t, float32(1), s.Strength)
	assert.Equal(t, float32(0), s.Hardness)
	require.NotNil(t, s.Texture())
	s.SetTexture(nil)
	assert.NotNil(t, s.Texture())
}

func TestCalculateTransform(t *testing.T) {
	xf, err := CalculateTransform(testFrame(), common.Vec2{0.5, 0.5}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, common.Vec2{50, 50}, xf.Center)
	assert.InDelta(t, 10, xf.Size, 1e-5)
	assert.Equal(t, image.Rect(45, 45, 56, 56), xf.Bounds)

	xf, err = CalculateTransform(testFrame(), common.Vec2{0.5, 0.5}, 10, 45)
	require.NoError(t, err)
	assert.InDelta(t, math.Pi/4, xf.Rotation, 1e-6)
	assert.Equal(t, image.Rect(42, 42, 59, 59), xf.Bounds)
}

func TestDegenerateTransform(t *testing.T) {
	_, err := CalculateTransform(testFrame(), common.Vec2{0.5, 0.5}, 0, 0)
	assert.ErrorIs(t, err, ErrDegenerate)
	_, err = CalculateTransform(testFrame(), common.Vec2{float32(math.NaN()), 0}, 10, 0)
	assert.ErrorIs(t, err, ErrDegenerate)
	_, err = CalculateTransform(terrain.Frame{}, common.Vec2{0.5, 0.5}, 10, 0)
	assert.ErrorIs(t, err, ErrDegenerate)
}

func TestMaskCoversFootprint(t *testing.T) {
	s := NewSession(10, 1, 0, 1)
	xf, err := NewTransform(common.Vec2{50, 50}, 10, 0)
	require.NoError(t, err)
	m := s.Mask(xf, nil)
	assert.Equal(t, xf.Bounds, m.Bounds())
	assert.Greater(t, m.AlphaAt(50, 50).A, uint8(200))
	assert.Less(t, m.AlphaAt(45, 45).A, uint8(64))
}

func halfTexture() *image.Alpha {
	tex := image.NewAlpha(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 4; x++ {
			tex.Pix[y*tex.Stride+x] = 255
		}
	}
	return tex
}

func TestMaskFollowsRotation(t *testing.T) {
	s := NewSession(8, 1, 0, 1)
	xf, err := NewTransform(common.Vec2{50, 50}, 8, 0)
	require.NoError(t, err)
	m := s.Mask(xf, halfTexture())
	assert.Equal(t, uint8(255), m.AlphaAt(47, 50).A)
	assert.Equal(t, uint8(0), m.AlphaAt(53, 50).A)

	xf, err = NewTransform(common.Vec2{50, 50}, 8, 180)
	require.NoError(t, err)
	m = s.Mask(xf, halfTexture())
	assert.Equal(t, uint8(0), m.AlphaAt(47, 50).A)
	assert.Equal(t, uint8(255), m.AlphaAt(53, 50).A)
}

func TestFilterFalloff(t *testing.T) {
	s := NewSession(10, 1, 0, 0.5)
	xf, err := NewTransform(common.Vec2{50, 50}, 10, 0)
	require.NoError(t, err)
	f := s.Filter(xf)
	assert.Equal(t, uint8(255), f.AlphaAt(50, 50).A)
	assert.Equal(t, uint8(255), f.AlphaAt(51, 50).A)
	assert.InDelta(t, 90, int(f.AlphaAt(54, 50).A), 1)
	assert.Equal(t, uint8(0), f.AlphaAt(55, 50).A)
}

func TestRasterizeOutline(t *testing.T) {
	dst := image.NewAlpha(image.Rect(0, 0, 100, 100))
	xf, err := NewTransform(common.Vec2{50, 50}, 20, 0)
	require.NoError(t, err)
	Rasterize(dst, xf, 2)
	assert.Greater(t, dst.AlphaAt(50, 40).A, uint8(250))
	assert.Greater(t, dst.AlphaAt(60, 50).A, uint8(250))
	assert.Equal(t, uint8(0), dst.AlphaAt(50, 50).A, "hole")
	assert.Equal(t, uint8(0), dst.AlphaAt(50, 30).A)
}

func TestFootprintTransform(t *testing.T) {
	fp := Footprint{UV: common.Vec2{0.25, 0.75}, Size: 4}
	xf, err := fp.Transform(testFrame())
	require.NoError(t, err)
	assert.Equal(t, common.Vec2{25, 75}, xf.Center)
}

func TestFalloff(t *testing.T) {
	for _, tc := range []struct {
		dist, hardness, want float32
	}{
		{0, 0, 1},
		{1, 0, 0},
		{0.4, 0.5, 1},
		{0.5, 0, 0.5},
		{0.75, 0.5, 0.5},
		{0.9, 0, 0.028},
		{0.9, 1, 1},
	} {
		assert.InDelta(t, tc.want, falloff(tc.dist, tc.hardness), 1e-5, "dist %v hardness %v", tc.dist, tc.hardness)
	}
}
