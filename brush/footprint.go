package brush

import (
	"image"
	"math"

	"golang.org/x/image/vector"

	"github.com/gorustyt/terrainpath/common"
	"github.com/gorustyt/terrainpath/terrain"
)

// Footprint is a brush preview: where a stamp would land and how large it is.
type Footprint struct {
	Tile     terrain.TileRef
	UV       common.Vec2
	Size     float32 // world units
	Rotation float32 // degrees
}

func (fp Footprint) Transform(frame terrain.Frame) (Transform, error) {
	return CalculateTransform(frame, fp.UV, fp.Size, fp.Rotation)
}

// Rasterize draws the outline of the rotated square footprint xf into dst,
// lineWidth pixels wide. dst and xf share the same pixel space.
func Rasterize(dst *image.Alpha, xf Transform, lineWidth float32) {
	r := dst.Bounds()
	if r.Empty() || xf.Size <= 0 {
		return
	}
	z := vector.NewRasterizer(r.Dx(), r.Dy())
	origin := common.Vec2{float32(r.Min.X), float32(r.Min.Y)}
	outer := xf.Size/2 + lineWidth/2
	inner := xf.Size/2 - lineWidth/2
	square(z, xf, origin, outer, false)
	if inner > 0 {
		square(z, xf, origin, inner, true)
	}
	z.Draw(dst, r, image.Opaque, image.Point{})
}

// square adds a closed square contour; reversed contours cut holes.
func square(z *vector.Rasterizer, xf Transform, origin common.Vec2, half float32, reverse bool) {
	sin, cos := math.Sincos(float64(xf.Rotation))
	s, c := float32(sin), float32(cos)
	corners := [4]common.Vec2{{-half, -half}, {half, -half}, {half, half}, {-half, half}}
	if reverse {
		corners[1], corners[3] = corners[3], corners[1]
	}
	for i, p := range corners {
		q := common.Vec2{p[0]*c - p[1]*s, p[0]*s + p[1]*c}.Add(xf.Center).Sub(origin)
		// sample p sits at the centre of pixel p.
		x, y := q[0]+0.5, q[1]+0.5
		if i == 0 {
			z.MoveTo(x, y)
		} else {
			z.LineTo(x, y)
		}
	}
	z.ClosePath()
}
