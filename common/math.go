package common

import (
	"cmp"
	"math"
)

// PlanarEpsilon is the shortest planar vector that still has a direction.
const PlanarEpsilon = 1e-6

// / Returns the square of the value.
// / @param[in]		a	The value.
// / @return The square of the value.
func Sqr[T IT](a T) T {
	return a * a
}

// / Returns the absolute value.
// / @param[in]		a	The value.
// / @return The absolute value of the specified value.
func Abs[T IT](a T) T {
	if a < 0 {
		return -a
	}
	return a
}

// / Clamps the value to the specified range.
// / @param[in]		value			The value to clamp.
// / @param[in]		minInclusive	The minimum permitted return value.
// / @param[in]		maxInclusive	The maximum permitted return value.
// / @return The value, clamped to the specified range.
func Clamp[T cmp.Ordered](value, minInclusive, maxInclusive T) T {
	if value < minInclusive {
		return minInclusive
	}
	if value > maxInclusive {
		return maxInclusive
	}
	return value
}

// / Clamps the value to [0, 1].
func Saturate[T IFloat](v T) T {
	return Clamp(v, 0, 1)
}

// / Linear interpolation between a and b.
// / @param[in]		t	The interpolation factor. [Limits: 0 <= value <= 1.0]
func Lerp[T IFloat](a, b, t T) T {
	return a + (b-a)*t
}

// / Returns true if the value is neither NaN nor infinite.
func IsFinite[T IFloat](v T) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// / Returns the unit vector perpendicular to v (rotated counter-clockwise).
// / Vectors shorter than PlanarEpsilon have no direction and yield the zero vector.
func Perp2(v Vec2) Vec2 {
	l := v.Len()
	if l < PlanarEpsilon || !IsFinite(l) {
		return Vec2{}
	}
	return Vec2{-v[1] / l, v[0] / l}
}

// / Returns the largest integer not above v.
func FloorToInt[T IFloat](v T) int {
	return int(math.Floor(float64(v)))
}

// / Returns the smallest integer not below v.
func CeilToInt[T IFloat](v T) int {
	return int(math.Ceil(float64(v)))
}
