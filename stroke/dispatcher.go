package stroke

import (
	"fmt"
	"image"
	"iter"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/gorustyt/terrainpath/brush"
	"github.com/gorustyt/terrainpath/common"
	"github.com/gorustyt/terrainpath/terrain"
)

// Report summarises one dispatched stroke.
type Report struct {
	Stamps  int
	Painted int
	Skipped int
	Tiles   []terrain.TileRef // painted tiles in first-touch order
	Err     error             // every skipped stamp; informational
}

// Dispatcher paints stamps one at a time, each inside its own paint region.
type Dispatcher struct {
	layout  terrain.Layout
	painter terrain.Painter
	session *brush.Session
	log     *zap.Logger
}

func NewDispatcher(layout terrain.Layout, painter terrain.Painter, session *brush.Session, log *zap.Logger) *Dispatcher {
	return &Dispatcher{layout: layout, painter: painter, session: session, log: log}
}

// Dispatch paints every stamp. A stamp that cannot be painted is skipped and
// never retried; the remaining stamps still run.
func (d *Dispatcher) Dispatch(stamps iter.Seq[Stamp], texture image.Image) Report {
	var rep Report
	seen := map[terrain.TileRef]bool{}
	for s := range stamps {
		rep.Stamps++
		status, err := d.paint(s, texture)
		if status.Failed() {
			rep.Skipped++
			rep.Err = multierr.Append(rep.Err, fmt.Errorf("stamp %d on tile %d (%s): %w", s.Index, s.Tile, status, err))
			lvl := d.log.Warn
			if status.Detail(OutOfBounds) {
				lvl = d.log.Debug
			}
			lvl("stamp skipped",
				zap.Int("index", s.Index),
				zap.Int32("tile", int32(s.Tile)),
				zap.Stringer("status", status),
				zap.Error(err))
			continue
		}
		rep.Painted++
		if !seen[s.Tile] {
			seen[s.Tile] = true
			rep.Tiles = append(rep.Tiles, s.Tile)
		}
	}
	return rep
}

func (d *Dispatcher) paint(s Stamp, texture image.Image) (Status, error) {
	frame, ok := d.layout.Frame(s.Tile)
	if !ok {
		return Failure | InvalidTile, fmt.Errorf("%w: tile %d", terrain.ErrNoHeightmap, s.Tile)
	}
	xf, err := brush.CalculateTransform(frame, s.UV, float32(s.Size), d.session.Rotation)
	if err != nil {
		return statusOf(err), err
	}
	if texture == nil {
		texture = d.session.Texture()
	}
	err = terrain.WithRegion(d.painter, s.Tile, xf.Bounds, true, func(ctx terrain.Context) error {
		op := terrain.PaintOp{
			Texture: texture,
			Params:  common.Vec4{d.session.Strength * s.Strength, 0, s.Height * 0.5, 0},
			Mask:    d.session.Mask(xf, texture),
			Filter:  d.session.Filter(xf),
		}
		return ctx.Paint(op)
	})
	return statusOf(err), err
}
