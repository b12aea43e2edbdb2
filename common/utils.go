package common

import "github.com/go-gl/mathgl/mgl32"

type Vec2 = mgl32.Vec2
type Vec3 = mgl32.Vec3
type Vec4 = mgl32.Vec4

type IT interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

type IFloat interface {
	~float32 | ~float64
}

// XY drops the third component of v.
func XY(v Vec3) Vec2 {
	return Vec2{v[0], v[1]}
}

// WithZ extends v with z.
func WithZ(v Vec2, z float32) Vec3 {
	return Vec3{v[0], v[1], z}
}
