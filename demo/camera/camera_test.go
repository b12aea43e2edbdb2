package camera

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gorustyt/terrainpath/common"
)

func TestRoundTrip(t *testing.T) {
	c := New(3, 10, 200)
	w := c.ToWorld(40, 70)
	assert.InDelta(t, 10, w[0], 1e-5)
	assert.InDelta(t, 180, w[1], 1e-5)
	s := c.ToScreen(w)
	assert.InDelta(t, 40, s[0], 1e-4)
	assert.InDelta(t, 70, s[1], 1e-4)
}

func TestTopOfWindowIsFarZ(t *testing.T) {
	c := New(2, 0, 100)
	assert.Equal(t, common.Vec2{0, 100}, c.ToWorld(0, 0))
	assert.Equal(t, common.Vec2{0, 0}, c.ToWorld(0, 200))
}

func TestExtent(t *testing.T) {
	w, h := New(3, 10, 200).Extent(100)
	assert.Equal(t, 320, w)
	assert.Equal(t, 620, h)
}

func TestPlot(t *testing.T) {
	p := Plot{X: 100, Y: 50, W: 200, H: 100, Lo: -1, Hi: 1}
	assert.True(t, p.Contains(100, 50))
	assert.False(t, p.Contains(300, 60))
	assert.False(t, p.Contains(150, 49))

	tt, v := p.ToCurve(150, 75)
	assert.InDelta(t, 0.25, tt, 1e-6)
	assert.InDelta(t, 0.5, v, 1e-6)
	s := p.ToScreen(tt, v)
	assert.InDelta(t, 150, s[0], 1e-4)
	assert.InDelta(t, 75, s[1], 1e-4)

	assert.Equal(t, common.Vec2{300, 50}, p.ToScreen(1, 4))
	assert.Equal(t, common.Vec2{100, 150}, p.ToScreen(0, -3))
}
