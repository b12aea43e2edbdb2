package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gorustyt/terrainpath/common"
)

type Config struct {
	Brush  BrushConfig      `yaml:"brush"`
	Stroke StrokeConfig     `yaml:"stroke"`
	Log    common.LogConfig `yaml:"log"`
	Prefs  PrefsConfig      `yaml:"prefs"`
	Demo   DemoConfig       `yaml:"demo"`
}

// BrushConfig seeds the shared brush state of a session.
type BrushConfig struct {
	Size     float32 `yaml:"size"`     // world units
	Strength float32 `yaml:"strength"` // [0,1]
	Rotation float32 `yaml:"rotation"` // degrees
	Hardness float32 `yaml:"hardness"` // [0,1]
}

type StrokeConfig struct {
	Spacing      float32 `yaml:"spacing"`
	MinSpacing   float32 `yaml:"min_spacing"`
	SpacingScale float32 `yaml:"spacing_scale"`
}

type PrefsConfig struct {
	Path string `yaml:"path"`
}

type DemoConfig struct {
	TilesX         int     `yaml:"tiles_x"`
	TilesZ         int     `yaml:"tiles_z"`
	TileResolution int     `yaml:"tile_resolution"`
	TileSize       float32 `yaml:"tile_size"`
	HeightScale    float32 `yaml:"height_scale"`
	PixelScale     int     `yaml:"pixel_scale"`
	GridPath       string  `yaml:"grid_path"` // heightmaps saved and loaded by the demo
}

func Default() *Config {
	return &Config{
		Brush: BrushConfig{
			Size:     12,
			Strength: 0.5,
			Hardness: 0.5,
		},
		Stroke: StrokeConfig{
			Spacing:      0.1,
			MinSpacing:   0.01,
			SpacingScale: 0.1,
		},
		Log: common.LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 7,
		},
		Prefs: PrefsConfig{Path: "terrainpath_prefs.yaml"},
		Demo: DemoConfig{
			TilesX:         2,
			TilesZ:         2,
			TileResolution: 129,
			TileSize:       100,
			HeightScale:    50,
			PixelScale:     3,
			GridPath:       "terrainpath.grid",
		},
	}
}

// Load reads a YAML file over the defaults. Keys absent from the file keep
// their default values.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.Brush.Size <= 0 {
		errs = append(errs, fmt.Errorf("brush.size must be positive, got %v", c.Brush.Size))
	}
	if c.Brush.Strength < 0 || c.Brush.Strength > 1 {
		errs = append(errs, fmt.Errorf("brush.strength must be in [0,1], got %v", c.Brush.Strength))
	}
	if c.Brush.Hardness < 0 || c.Brush.Hardness > 1 {
		errs = append(errs, fmt.Errorf("brush.hardness must be in [0,1], got %v", c.Brush.Hardness))
	}
	if c.Stroke.Spacing < 0 {
		errs = append(errs, fmt.Errorf("stroke.spacing must not be negative, got %v", c.Stroke.Spacing))
	}
	if c.Stroke.MinSpacing <= 0 {
		errs = append(errs, fmt.Errorf("stroke.min_spacing must be positive, got %v", c.Stroke.MinSpacing))
	}
	if c.Stroke.SpacingScale <= 0 {
		errs = append(errs, fmt.Errorf("stroke.spacing_scale must be positive, got %v", c.Stroke.SpacingScale))
	}
	if c.Demo.TilesX <= 0 || c.Demo.TilesZ <= 0 {
		errs = append(errs, errors.New("demo.tiles_x and demo.tiles_z must be positive"))
	}
	if c.Demo.TileResolution < 2 {
		errs = append(errs, fmt.Errorf("demo.tile_resolution must be at least 2, got %d", c.Demo.TileResolution))
	}
	if c.Demo.PixelScale <= 0 {
		errs = append(errs, fmt.Errorf("demo.pixel_scale must be positive, got %d", c.Demo.PixelScale))
	}
	if c.Demo.TileSize <= 0 || c.Demo.HeightScale <= 0 {
		errs = append(errs, errors.New("demo.tile_size and demo.height_scale must be positive"))
	}
	return errors.Join(errs...)
}
