package brush

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/vector"

	"github.com/gorustyt/terrainpath/common"
)

// DefaultTexture is an anti-aliased opaque disc filling an n×n image.
func DefaultTexture(n int) *image.Alpha {
	dst := image.NewAlpha(image.Rect(0, 0, n, n))
	c := float32(n) / 2
	r := c - 0.5
	const segments = 64
	z := vector.NewRasterizer(n, n)
	z.MoveTo(c+r, c)
	for i := 1; i < segments; i++ {
		a := 2 * math.Pi * float64(i) / segments
		z.LineTo(c+r*float32(math.Cos(a)), c+r*float32(math.Sin(a)))
	}
	z.ClosePath()
	z.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})
	return dst
}

// Mask resamples texture into the footprint described by xf: scaled to
// xf.Size pixels, rotated by xf.Rotation and centred on xf.Center. A nil
// texture uses the session texture.
func (s *Session) Mask(xf Transform, texture image.Image) *image.Alpha {
	if texture == nil {
		texture = s.texture
	}
	dst := image.NewAlpha(xf.Bounds)
	sr := texture.Bounds()
	if sr.Empty() {
		return dst
	}
	kx := float64(xf.Size) / float64(sr.Dx())
	ky := float64(xf.Size) / float64(sr.Dy())
	sin, cos := math.Sincos(float64(xf.Rotation))
	scx := float64(sr.Min.X) + float64(sr.Dx())/2
	scy := float64(sr.Min.Y) + float64(sr.Dy())/2
	// heightmap sample p sits at the centre of dst pixel p.
	cx := float64(xf.Center[0]) + 0.5
	cy := float64(xf.Center[1]) + 0.5

	a, b := cos*kx, -sin*ky
	d, e := sin*kx, cos*ky
	s2d := f64.Aff3{
		a, b, cx - (a*scx + b*scy),
		d, e, cy - (d*scx + e*scy),
	}
	draw.BiLinear.Transform(dst, s2d, texture, sr, draw.Src, nil)
	return dst
}

// Filter is the hardness falloff over the footprint: opaque inside
// Hardness×radius, fading smoothly to zero at the radius.
func (s *Session) Filter(xf Transform) *image.Alpha {
	dst := image.NewAlpha(xf.Bounds)
	radius := xf.Size / 2
	if radius <= 0 {
		return dst
	}
	hard := common.Saturate(s.Hardness)
	for y := xf.Bounds.Min.Y; y < xf.Bounds.Max.Y; y++ {
		for x := xf.Bounds.Min.X; x < xf.Bounds.Max.X; x++ {
			p := common.Vec2{float32(x), float32(y)}
			dist := p.Sub(xf.Center).Len() / radius
			dst.SetAlpha(x, y, alpha(falloff(dist, hard)))
		}
	}
	return dst
}

func falloff(dist, hardness float32) float32 {
	switch {
	case dist >= 1:
		return 0
	case dist <= hardness || hardness >= 1:
		return 1
	}
	t := (1 - dist) / (1 - hardness)
	return common.Sqr(t) * (3 - 2*t)
}

func alpha(v float32) color.Alpha {
	return color.Alpha{A: uint8(common.Saturate(v)*255 + 0.5)}
}
