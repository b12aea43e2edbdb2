// Package scene assembles the demo's terrain, brush and stroke tool from a
// config and owns the state the window edits.
package scene

import (
	"cmp"
	"errors"
	"fmt"
	"os"
	"slices"

	"go.uber.org/zap"

	"github.com/gorustyt/terrainpath/brush"
	"github.com/gorustyt/terrainpath/common"
	"github.com/gorustyt/terrainpath/config"
	"github.com/gorustyt/terrainpath/prefs"
	"github.com/gorustyt/terrainpath/profile"
	"github.com/gorustyt/terrainpath/stroke"
	"github.com/gorustyt/terrainpath/terrain"
)

var ErrGridMismatch = errors.New("scene: saved grid does not match the open one")

// baseHeight is the normalised height new tiles start at.
const baseHeight = 0.2

type Scene struct {
	Grid      *terrain.Grid
	Painter   *terrain.MemPainter
	Session   *brush.Session
	Inspector *profile.Inspector
	Tool      *stroke.Tool

	cfg      config.DemoConfig
	log      *zap.Logger
	selected string
	preset   map[string]int
}

func Build(cfg *config.Config, store prefs.Store, log *zap.Logger) (*Scene, error) {
	d := cfg.Demo
	grid := terrain.NewGrid(d.TileResolution, d.TileSize, d.HeightScale)
	for z := 0; z < d.TilesZ; z++ {
		for x := 0; x < d.TilesX; x++ {
			t, err := grid.AddTile(x, z)
			if err != nil {
				return nil, err
			}
			t.Fill(baseHeight)
		}
	}
	painter := terrain.NewMemPainter(grid)
	session := brush.NewSession(cfg.Brush.Size, cfg.Brush.Strength, cfg.Brush.Rotation, cfg.Brush.Hardness)
	inspector := profile.NewInspector(store, log)
	tool := stroke.NewTool(grid, painter, session, inspector.Profiles(), stroke.Options{
		Spacing:      cfg.Stroke.Spacing,
		MinSpacing:   cfg.Stroke.MinSpacing,
		SpacingScale: cfg.Stroke.SpacingScale,
	}, log)
	log.Info("scene ready",
		zap.Int("tiles", grid.Len()),
		zap.Int("resolution", d.TileResolution),
		zap.Float32("tile_size", d.TileSize))
	return &Scene{
		Grid:      grid,
		Painter:   painter,
		Session:   session,
		Inspector: inspector,
		Tool:      tool,
		cfg:       d,
		log:       log,
		preset:    map[string]int{},
	}, nil
}

// Width and Depth are the world extent of the tile grid.
func (s *Scene) Width() float32 { return float32(s.cfg.TilesX) * s.cfg.TileSize }
func (s *Scene) Depth() float32 { return float32(s.cfg.TilesZ) * s.cfg.TileSize }

func (s *Scene) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("scene: save: %w", err)
	}
	if err := s.Grid.Save(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("scene: save: %w", err)
	}
	s.log.Info("grid saved", zap.String("path", path), zap.Int("tiles", s.Grid.Len()))
	return nil
}

// Load copies the heightmaps of a saved grid into the open tiles. The saved
// grid must have the same resolution and a tile for every open cell.
func (s *Scene) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("scene: load: %w", err)
	}
	defer f.Close()
	saved, err := terrain.LoadGrid(f)
	if err != nil {
		return err
	}
	if saved.Resolution() != s.Grid.Resolution() {
		return fmt.Errorf("%w: resolution %d, want %d", ErrGridMismatch, saved.Resolution(), s.Grid.Resolution())
	}
	tiles := s.Grid.Tiles()
	for _, t := range tiles {
		if _, ok := saved.TileAt(t.X, t.Z); !ok {
			return fmt.Errorf("%w: no tile at (%d,%d)", ErrGridMismatch, t.X, t.Z)
		}
	}
	for _, t := range tiles {
		src, _ := saved.TileAt(t.X, t.Z)
		copy(t.Heights, src.Heights)
	}
	s.Tool.Deactivate()
	s.log.Info("grid loaded", zap.String("path", path), zap.Int("tiles", len(tiles)))
	return nil
}

var presets = map[string][]profile.Profile{
	profile.Width: {
		profile.Constant(1),
		profile.Linear(1, 0.2),
		{Keys: []profile.Key{{Time: 0, Value: 0.4}, {Time: 0.5, Value: 1.2}, {Time: 1, Value: 0.4}}},
	},
	profile.Height: {
		profile.Constant(0),
		{Keys: []profile.Key{{Time: 0, Value: 0}, {Time: 0.5, Value: 0.1}, {Time: 1, Value: 0}}},
		profile.Linear(0, -0.1),
	},
	profile.Strength: {
		profile.Constant(1),
		profile.Linear(1, 0.3),
		profile.Linear(0.3, 1),
	},
	profile.Jitter: {
		profile.Constant(0),
		{Keys: []profile.Key{{Time: 0, Value: 0}, {Time: 0.25, Value: 0.03}, {Time: 0.75, Value: -0.03}, {Time: 1, Value: 0}}},
	},
}

// ranges are the value spans the curve panel shows for each curve.
var ranges = map[string][2]float32{
	profile.Width:    {0, 2},
	profile.Height:   {-0.25, 0.25},
	profile.Strength: {0, 1.5},
	profile.Jitter:   {-0.1, 0.1},
}

func ValueRange(name string) (lo, hi float32) {
	r := ranges[name]
	return r[0], r[1]
}

// Selected is the curve the panel edits.
func (s *Scene) Selected() string {
	if s.selected == "" {
		return profile.Width
	}
	return s.selected
}

func (s *Scene) Select(name string) error {
	if _, ok := ranges[name]; !ok {
		return fmt.Errorf("scene: unknown curve %q", name)
	}
	s.selected = name
	return nil
}

// CyclePreset switches the selected curve to its next preset.
func (s *Scene) CyclePreset() error {
	name := s.Selected()
	next := (s.preset[name] + 1) % len(presets[name])
	if err := s.Inspector.SetKeys(name, presets[name][next].Keys); err != nil {
		return err
	}
	s.preset[name] = next
	return nil
}

// AddKeyAt adds a flat key to the selected curve. A key already within
// keySnap of t is replaced.
func (s *Scene) AddKeyAt(t, value float32) error {
	name := s.Selected()
	t = common.Saturate(t)
	p, err := s.Inspector.Curve(name)
	if err != nil {
		return err
	}
	keys := p.Keys
	if i, ok := s.nearestKey(name, t); ok {
		keys = slices.Delete(keys, i, i+1)
	}
	keys = append(keys, profile.Key{Time: t, Value: value})
	slices.SortFunc(keys, func(a, b profile.Key) int { return cmp.Compare(a.Time, b.Time) })
	return s.Inspector.SetKeys(name, keys)
}

// RemoveKeyNear removes the key of the selected curve closest to t, if one
// lies within keySnap. The last key is kept.
func (s *Scene) RemoveKeyNear(t float32) error {
	name := s.Selected()
	i, ok := s.nearestKey(name, t)
	if !ok {
		return nil
	}
	p, err := s.Inspector.Curve(name)
	if err != nil {
		return err
	}
	if len(p.Keys) <= 1 {
		return nil
	}
	return s.Inspector.RemoveKey(name, i)
}

// keySnap is how close in progress a click must be to touch a key.
const keySnap = 0.04

func (s *Scene) nearestKey(name string, t float32) (int, bool) {
	p, err := s.Inspector.Curve(name)
	if err != nil {
		return 0, false
	}
	best, dist := -1, float32(keySnap)
	for i, k := range p.Keys {
		if d := common.Abs(k.Time - t); d <= dist {
			best, dist = i, d
		}
	}
	return best, best >= 0
}

func (s *Scene) ResetSelected() error {
	name := s.Selected()
	if err := s.Inspector.ResetCurve(name); err != nil {
		return err
	}
	s.preset[name] = 0
	return nil
}

func (s *Scene) ResetProfiles() error {
	if err := s.Inspector.Reset(); err != nil {
		return err
	}
	clear(s.preset)
	return nil
}
