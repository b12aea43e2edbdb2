// Package view is the ebiten window of the demo: it draws the tile grid as
// grayscale heightmaps next to the curve inspector and routes mouse and
// keyboard input into the stroke tool and the inspector.
package view

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"

	"github.com/gorustyt/terrainpath/brush"
	"github.com/gorustyt/terrainpath/common"
	"github.com/gorustyt/terrainpath/config"
	"github.com/gorustyt/terrainpath/demo/camera"
	"github.com/gorustyt/terrainpath/demo/scene"
	"github.com/gorustyt/terrainpath/profile"
	"github.com/gorustyt/terrainpath/stroke"
	"github.com/gorustyt/terrainpath/terrain"
)

const (
	margin       = 36
	outlineWidth = 1.5
	spacingStep  = 0.05
)

var (
	background   = color.RGBA{R: 0x18, G: 0x1c, B: 0x22, A: 0xff}
	previewColor = color.RGBA{R: 0xff, G: 0xc8, B: 0x00, A: 0xff}
	lineColor    = color.RGBA{R: 0x40, G: 0xc0, B: 0xff, A: 0xff}
)

type tileView struct {
	tile    *terrain.Tile
	heights *ebiten.Image
	overlay *ebiten.Image
	mask    *image.Alpha
	pix     []byte // heights
	maskPix []byte
}

// View implements ebiten.Game.
type View struct {
	scene *scene.Scene
	cfg   config.DemoConfig
	log   *zap.Logger
	cam   camera.Camera
	panel panel

	tiles  []*tileView
	dirty  bool
	cursor stroke.SceneEvent
	mx, my int
	status string
}

func New(sc *scene.Scene, cfg config.DemoConfig, log *zap.Logger) *View {
	v := &View{
		scene: sc,
		cfg:   cfg,
		log:   log,
		cam:   camera.New(float32(cfg.PixelScale), margin, sc.Depth()),
		dirty: true,
	}
	w, _ := v.cam.Extent(sc.Width())
	v.panel = panel{x: float32(w)}
	res := sc.Grid.Resolution()
	for _, t := range sc.Grid.Tiles() {
		v.tiles = append(v.tiles, &tileView{
			tile:    t,
			heights: ebiten.NewImage(res, res),
			overlay: ebiten.NewImage(res, res),
			mask:    image.NewAlpha(t.Frame.PixelRect()),
			pix:     make([]byte, 4*res*res),
			maskPix: make([]byte, 4*res*res),
		})
	}
	return v
}

// Size is the window size that fits the whole grid and the inspector.
func (v *View) Size() (int, int) {
	w, h := v.cam.Extent(v.scene.Width())
	return w + panelWidth, max(h, v.panel.height())
}

func (v *View) Update() error {
	v.handleKeys()

	mx, my := ebiten.CursorPosition()
	if v.handleMouse(mx, my) {
		v.cursor = stroke.SceneEvent{Kind: stroke.EventRepaint}
		v.mx, v.my = mx, my
		return nil
	}
	xz := v.cam.ToWorld(mx, my)
	ref, uv, ok := v.scene.Grid.Locate(xz[0], xz[1])
	v.cursor = stroke.SceneEvent{Kind: stroke.EventRepaint, Tile: ref, UV: uv, HasHit: ok}

	moved := mx != v.mx || my != v.my
	v.mx, v.my = mx, my
	if !ok {
		return nil
	}
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		v.paint(stroke.EventMouseDown)
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) && moved:
		v.paint(stroke.EventDrag)
	}
	return nil
}

func (v *View) paint(kind stroke.EventKind) {
	ev := stroke.PaintEvent{
		Tile:     v.cursor.Tile,
		UV:       v.cursor.UV,
		Modifier: ebiten.IsKeyPressed(ebiten.KeyControl),
		Kind:     kind,
	}
	if v.scene.Tool.OnPaint(ev) {
		return
	}
	v.dirty = true
	rep := v.scene.Tool.LastReport()
	v.status = fmt.Sprintf("stroke: %d stamps, %d painted, %d skipped", rep.Stamps, rep.Painted, rep.Skipped)
}

func (v *View) handleKeys() {
	sc := v.scene
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		sc.Tool.Deactivate()
		v.status = "tool deactivated"
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		sc.Tool.ClearAnchor()
		v.status = "anchor cleared"
	case inpututil.IsKeyJustPressed(ebiten.KeyUp):
		sc.Session.Size++
	case inpututil.IsKeyJustPressed(ebiten.KeyDown):
		sc.Session.Size = max(sc.Session.Size-1, 1)
	case inpututil.IsKeyJustPressed(ebiten.KeyRight):
		sc.Tool.Generator().Spacing += spacingStep
	case inpututil.IsKeyJustPressed(ebiten.KeyLeft):
		gen := sc.Tool.Generator()
		gen.Spacing = max(gen.Spacing-spacingStep, 0)
	case inpututil.IsKeyJustPressed(ebiten.Key1):
		v.report("editing "+profile.Width, sc.Select(profile.Width))
	case inpututil.IsKeyJustPressed(ebiten.Key2):
		v.report("editing "+profile.Height, sc.Select(profile.Height))
	case inpututil.IsKeyJustPressed(ebiten.Key3):
		v.report("editing "+profile.Strength, sc.Select(profile.Strength))
	case inpututil.IsKeyJustPressed(ebiten.Key4):
		v.report("editing "+profile.Jitter, sc.Select(profile.Jitter))
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		v.report(sc.Selected()+" preset applied", sc.CyclePreset())
	case inpututil.IsKeyJustPressed(ebiten.KeyBackspace):
		v.report(sc.Selected()+" reset", sc.ResetSelected())
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		v.report("curves reset", sc.ResetProfiles())
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		v.report("saved "+v.cfg.GridPath, sc.Save(v.cfg.GridPath))
	case inpututil.IsKeyJustPressed(ebiten.KeyL):
		err := sc.Load(v.cfg.GridPath)
		v.dirty = v.dirty || err == nil
		v.report("loaded "+v.cfg.GridPath, err)
	}
}

func (v *View) report(done string, err error) {
	if err != nil {
		v.log.Warn("demo action failed", zap.Error(err))
		v.status = err.Error()
		return
	}
	v.status = done
}

func (v *View) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	if v.dirty {
		for _, tv := range v.tiles {
			tv.writeHeights()
		}
		v.dirty = false
	}
	v.drawPreview()
	for _, tv := range v.tiles {
		op := v.tileOptions(tv.tile)
		screen.DrawImage(tv.heights, op)
		op = v.tileOptions(tv.tile)
		op.ColorScale.ScaleWithColor(previewColor)
		screen.DrawImage(tv.overlay, op)
	}
	v.drawStrokeLine(screen)
	v.drawPanel(screen)
	v.drawHUD(screen)
}

// tileOptions places heightmap pixel (px, pz) of a tile at its world
// position. Rows run toward +z, which is up on screen.
func (v *View) tileOptions(t *terrain.Tile) *ebiten.DrawImageOptions {
	k := float64(t.Frame.Size.X()) / float64(t.Frame.Resolution-1) * float64(v.cam.Scale)
	at := v.cam.ToScreen(common.Vec2{t.Frame.Origin.X(), t.Frame.Origin.Z()})
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(k, -k)
	op.GeoM.Translate(float64(at[0]), float64(at[1]))
	return op
}

func (tv *tileView) writeHeights() {
	for i, h := range tv.tile.Heights {
		g := uint8(common.Saturate(h)*255 + 0.5)
		tv.pix[4*i], tv.pix[4*i+1], tv.pix[4*i+2], tv.pix[4*i+3] = g, g, g, 0xff
	}
	tv.heights.WritePixels(tv.pix)
}

func (v *View) drawPreview() {
	for _, tv := range v.tiles {
		clear(tv.mask.Pix)
	}
	for _, fp := range v.scene.Tool.OnSceneGUI(v.cursor) {
		tv := v.tileView(fp.Tile)
		if tv == nil {
			continue
		}
		xf, err := fp.Transform(tv.tile.Frame)
		if err != nil {
			continue
		}
		brush.Rasterize(tv.mask, xf, outlineWidth)
	}
	for _, tv := range v.tiles {
		for i, a := range tv.mask.Pix {
			tv.maskPix[4*i], tv.maskPix[4*i+1], tv.maskPix[4*i+2], tv.maskPix[4*i+3] = a, a, a, a
		}
		tv.overlay.WritePixels(tv.maskPix)
	}
}

func (v *View) tileView(ref terrain.TileRef) *tileView {
	for _, tv := range v.tiles {
		if tv.tile.Ref == ref {
			return tv
		}
	}
	return nil
}

// drawStrokeLine shows where the next click would paint from the anchor.
func (v *View) drawStrokeLine(screen *ebiten.Image) {
	a, ok := v.scene.Tool.Anchor()
	if !ok || !v.cursor.HasHit {
		return
	}
	frame, ok := v.scene.Grid.Frame(a.Tile)
	if !ok {
		return
	}
	w := frame.ToWorld(a.Pos)
	from := v.cam.ToScreen(common.Vec2{w.X(), w.Z()})
	vector.StrokeLine(screen, from[0], from[1], float32(v.mx), float32(v.my), 1, lineColor, true)
}

func (v *View) drawHUD(screen *ebiten.Image) {
	sc := v.scene
	var b strings.Builder
	fmt.Fprintf(&b, "size %.0f  spacing %.2f  strength %.2f", sc.Session.Size, sc.Tool.Generator().Spacing, sc.Session.Strength)
	if a, ok := sc.Tool.Anchor(); ok {
		fmt.Fprintf(&b, "  anchor tile %d (%.2f, %.2f) h %.2f", a.Tile, a.Pos[0], a.Pos[1], a.Pos[2])
	}
	ebitenutil.DebugPrintAt(screen, b.String(), 4, 4)
	ebitenutil.DebugPrintAt(screen, "ctrl+click anchor  click paint  1-4 curve  P preset  click/right-click key  Bksp/R reset  S/L save/load  C/Esc clear", 4, 4+12)
	if v.status != "" {
		ebitenutil.DebugPrintAt(screen, v.status, 4, screen.Bounds().Dy()-16)
	}
}

func (v *View) Layout(outsideWidth, outsideHeight int) (int, int) {
	return v.Size()
}
