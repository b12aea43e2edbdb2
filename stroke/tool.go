package stroke

import (
	"image"
	"slices"

	"go.uber.org/zap"

	"github.com/gorustyt/terrainpath/brush"
	"github.com/gorustyt/terrainpath/common"
	"github.com/gorustyt/terrainpath/profile"
	"github.com/gorustyt/terrainpath/terrain"
)

type EventKind int

const (
	EventMouseDown EventKind = iota
	EventDrag
	EventRepaint
)

func (k EventKind) String() string {
	switch k {
	case EventMouseDown:
		return "mousedown"
	case EventDrag:
		return "drag"
	case EventRepaint:
		return "repaint"
	}
	return "unknown"
}

// PaintEvent is what the host reports for a brush event over terrain.
type PaintEvent struct {
	Tile     terrain.TileRef
	UV       common.Vec2
	Texture  image.Image
	Modifier bool
	Kind     EventKind
}

// SceneEvent drives the per-frame preview. HasHit is false when the cursor
// is not over terrain.
type SceneEvent struct {
	Kind   EventKind
	Tile   terrain.TileRef
	UV     common.Vec2
	HasHit bool
}

// Host is the terrain the tool paints on.
type Host interface {
	terrain.Layout
	terrain.HeightSampler
}

type Options struct {
	Spacing      float32
	MinSpacing   float32
	SpacingScale float32
}

// Tool paints straight strokes from an anchor set with modifier+click to
// wherever the user clicks next.
type Tool struct {
	host     Host
	gen      *Generator
	disp     *Dispatcher
	session  *brush.Session
	profiles *profile.Set
	log      *zap.Logger

	anchor        *Anchor
	awaitingClick bool
	preview       []brush.Footprint
	last          Report
}

func NewTool(host Host, painter terrain.Painter, session *brush.Session, profiles *profile.Set, opts Options, log *zap.Logger) *Tool {
	gen := NewGenerator(host, opts.Spacing)
	if opts.MinSpacing > 0 {
		gen.MinSpacing = opts.MinSpacing
	}
	if opts.SpacingScale > 0 {
		gen.SpacingScale = opts.SpacingScale
	}
	return &Tool{
		host:     host,
		gen:      gen,
		disp:     NewDispatcher(host, painter, session, log),
		session:  session,
		profiles: profiles,
		log:      log,
	}
}

// OnPaint handles a paint event. It returns true when the event was consumed
// without painting and false when a stroke was painted. Any modifier event
// other than a repaint sets the anchor, so a modifier drag carries it along.
func (t *Tool) OnPaint(ev PaintEvent) bool {
	switch {
	case ev.Kind == EventRepaint:
		return true
	case ev.Modifier:
		t.setAnchor(ev.Tile, ev.UV)
		return true
	case t.anchor == nil:
		return true
	case ev.Kind == EventDrag && t.awaitingClick:
		return true
	}
	t.awaitingClick = false

	target, ok := t.hit(ev.Tile, ev.UV)
	if !ok {
		return true
	}
	stamps := t.gen.Stamps(*t.anchor, target, t.session.Size, t.profiles)
	t.last = t.disp.Dispatch(stamps, ev.Texture)
	t.log.Debug("stroke painted",
		zap.Int("stamps", t.last.Stamps),
		zap.Int("painted", t.last.Painted),
		zap.Int("skipped", t.last.Skipped),
		zap.Int("tiles", len(t.last.Tiles)))
	return false
}

func (t *Tool) hit(tile terrain.TileRef, uv common.Vec2) (Hit, bool) {
	frame, ok := t.host.Frame(tile)
	if !ok || !frame.Valid() {
		return Hit{}, false
	}
	h, ok := t.host.SampleHeight(tile, uv)
	if !ok {
		return Hit{}, false
	}
	return Hit{Tile: tile, UV: uv, Height: h / frame.Size.Y()}, true
}

func (t *Tool) setAnchor(tile terrain.TileRef, uv common.Vec2) {
	h, ok := t.hit(tile, uv)
	if !ok {
		return
	}
	t.anchor = &Anchor{Tile: h.Tile, Pos: h.local()}
	t.awaitingClick = true
	t.preview = nil
	t.log.Info("stroke anchor set",
		zap.Int32("tile", int32(h.Tile)),
		zap.Float32("u", h.UV[0]),
		zap.Float32("v", h.UV[1]),
		zap.Float32("height", h.Height))
}

// OnSceneGUI computes the brush previews for a redraw: the cursor footprint
// at end-of-stroke width and, with a live anchor, the anchor footprint at
// start-of-stroke width. A negative width previews at its magnitude. Other
// events return nil.
func (t *Tool) OnSceneGUI(ev SceneEvent) []brush.Footprint {
	if ev.Kind != EventRepaint {
		return nil
	}
	t.preview = t.preview[:0]
	if ev.HasHit {
		t.preview = append(t.preview, brush.Footprint{
			Tile:     ev.Tile,
			UV:       ev.UV,
			Size:     common.Abs(t.profiles.Width.Evaluate(1)) * t.session.Size,
			Rotation: t.session.Rotation,
		})
	}
	if t.anchor != nil {
		t.preview = append(t.preview, brush.Footprint{
			Tile:     t.anchor.Tile,
			UV:       common.XY(t.anchor.Pos),
			Size:     common.Abs(t.profiles.Width.Evaluate(0)) * t.session.Size,
			Rotation: t.session.Rotation,
		})
	}
	return slices.Clone(t.preview)
}

func (t *Tool) Anchor() (Anchor, bool) {
	if t.anchor == nil {
		return Anchor{}, false
	}
	return *t.anchor, true
}

func (t *Tool) ClearAnchor() {
	t.anchor = nil
	t.awaitingClick = false
	t.preview = nil
}

// Deactivate drops all stroke state; the next stroke needs a new anchor.
func (t *Tool) Deactivate() {
	t.ClearAnchor()
	t.last = Report{}
}

func (t *Tool) LastReport() Report {
	return t.last
}

func (t *Tool) Generator() *Generator {
	return t.gen
}
