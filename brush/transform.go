package brush

import (
	"errors"
	"image"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gorustyt/terrainpath/common"
	"github.com/gorustyt/terrainpath/terrain"
)

var ErrDegenerate = errors.New("brush: degenerate transform")

// Transform places a square brush footprint on a heightmap. Center and Size
// are in heightmap pixels; Bounds is the pixel-aligned box around the rotated
// footprint.
type Transform struct {
	Center   common.Vec2
	Size     float32
	Rotation float32 // radians
	Bounds   image.Rectangle
}

// NewTransform builds a transform directly in pixel space.
func NewTransform(center common.Vec2, size, rotationDeg float32) (Transform, error) {
	if !(size >= 1) || !common.IsFinite(size) || !common.IsFinite(center[0]) || !common.IsFinite(center[1]) {
		return Transform{}, ErrDegenerate
	}
	rot := mgl32.DegToRad(rotationDeg)
	sin, cos := math.Sincos(float64(rot))
	half := size / 2 * float32(math.Abs(cos)+math.Abs(sin))
	return Transform{
		Center:   center,
		Size:     size,
		Rotation: rot,
		Bounds: image.Rect(
			common.FloorToInt(center[0]-half),
			common.FloorToInt(center[1]-half),
			common.CeilToInt(center[0]+half)+1,
			common.CeilToInt(center[1]+half)+1,
		),
	}, nil
}

// CalculateTransform maps a stamp at uv with a world-unit size onto the
// heightmap of a tile. It fails when the footprint is smaller than one pixel.
func CalculateTransform(frame terrain.Frame, uv common.Vec2, size float32, rotationDeg float32) (Transform, error) {
	if !frame.Valid() {
		return Transform{}, ErrDegenerate
	}
	last := float32(frame.Resolution - 1)
	center := common.Vec2{uv[0] * last, uv[1] * last}
	return NewTransform(center, size*frame.PixelsPerUnit(), rotationDeg)
}
