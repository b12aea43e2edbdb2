package view

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/gorustyt/terrainpath/demo/camera"
	"github.com/gorustyt/terrainpath/demo/scene"
	"github.com/gorustyt/terrainpath/profile"
)

const (
	panelWidth   = 240
	plotHeight   = 110
	plotGap      = 30
	curveSamples = 48
	keyMarker    = 5
)

var (
	plotBackground = color.RGBA{R: 0x24, G: 0x29, B: 0x31, A: 0xff}
	plotBorder     = color.RGBA{R: 0x50, G: 0x58, B: 0x64, A: 0xff}
	plotSelected   = color.RGBA{R: 0xff, G: 0xc8, B: 0x00, A: 0xff}
	plotAxis       = color.RGBA{R: 0x40, G: 0x46, B: 0x50, A: 0xff}
	curveColor     = color.RGBA{R: 0x40, G: 0xc0, B: 0xff, A: 0xff}
)

// panel is the curve inspector drawn to the right of the terrain: one plot per
// curve in inspector order.
type panel struct {
	x float32
}

func (p panel) plot(i int) camera.Plot {
	lo, hi := scene.ValueRange(profile.Names[i])
	return camera.Plot{
		X:  p.x + 12,
		Y:  margin + float32(i)*(plotHeight+plotGap) + 14,
		W:  panelWidth - 24,
		H:  plotHeight,
		Lo: lo,
		Hi: hi,
	}
}

func (p panel) height() int {
	return margin + len(profile.Names)*(plotHeight+plotGap)
}

// handleMouse edits the curve under the cursor: left click adds or moves a
// key, right click removes the nearest one. It reports whether the click
// landed on a plot.
func (v *View) handleMouse(mx, my int) bool {
	left := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	right := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight)
	for i, name := range profile.Names {
		pl := v.panel.plot(i)
		if !pl.Contains(mx, my) {
			continue
		}
		if !left && !right {
			return true
		}
		if err := v.scene.Select(name); err != nil {
			v.report("", err)
			return true
		}
		t, val := pl.ToCurve(mx, my)
		if left {
			v.report(fmt.Sprintf("%s key at %.2f = %.3f", name, t, val), v.scene.AddKeyAt(t, val))
		} else {
			v.report(name+" key removed", v.scene.RemoveKeyNear(t))
		}
		return true
	}
	return false
}

func (v *View) drawPanel(screen *ebiten.Image) {
	set := v.scene.Inspector.Profiles()
	for i, name := range profile.Names {
		pl := v.panel.plot(i)
		curve, _ := set.Get(name)
		border := plotBorder
		if name == v.scene.Selected() {
			border = plotSelected
		}
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%d %s", i+1, name), int(pl.X), int(pl.Y)-16)
		vector.DrawFilledRect(screen, pl.X, pl.Y, pl.W, pl.H, plotBackground, false)
		if pl.Lo < 0 && pl.Hi > 0 {
			zero := pl.ToScreen(0, 0)
			vector.StrokeLine(screen, pl.X, zero[1], pl.X+pl.W, zero[1], 1, plotAxis, false)
		}
		prev := pl.ToScreen(0, curve.Evaluate(0))
		for s := 1; s <= curveSamples; s++ {
			t := float32(s) / curveSamples
			next := pl.ToScreen(t, curve.Evaluate(t))
			vector.StrokeLine(screen, prev[0], prev[1], next[0], next[1], 1.5, curveColor, true)
			prev = next
		}
		for _, k := range curve.Keys {
			at := pl.ToScreen(k.Time, k.Value)
			vector.DrawFilledRect(screen, at[0]-keyMarker/2, at[1]-keyMarker/2, keyMarker, keyMarker, border, false)
		}
		vector.StrokeRect(screen, pl.X, pl.Y, pl.W, pl.H, 1, border, false)
	}
}
