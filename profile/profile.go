// Package profile holds the progress-indexed curves that shape a stroke:
// brush width, height offset, strength and lateral jitter.
package profile

import (
	"errors"
	"fmt"
	"sort"

	"honnef.co/go/curve"

	"github.com/gorustyt/terrainpath/common"
)

// Key is one control point. Tangents are slopes (dValue/dTime) on either side
// of the key.
type Key struct {
	Time       float32
	Value      float32
	InTangent  float32
	OutTangent float32
}

// Profile maps progress to a scalar. Keys are sorted by strictly increasing
// Time inside [0,1]. Outside the key range the curve is clamped to the first
// and last value.
type Profile struct {
	Keys []Key
}

var (
	ErrKeyRange = errors.New("profile: key time outside [0,1]")
	ErrKeyOrder = errors.New("profile: key times not strictly increasing")
	ErrKeyValue = errors.New("profile: key is not finite")
)

func Constant(v float32) Profile {
	return Profile{Keys: []Key{{Time: 0, Value: v}, {Time: 1, Value: v}}}
}

// Linear runs from a at progress 0 to b at progress 1.
func Linear(a, b float32) Profile {
	slope := b - a
	return Profile{Keys: []Key{
		{Time: 0, Value: a, InTangent: slope, OutTangent: slope},
		{Time: 1, Value: b, InTangent: slope, OutTangent: slope},
	}}
}

func (p Profile) Clone() Profile {
	return Profile{Keys: append([]Key(nil), p.Keys...)}
}

func (p Profile) Validate() error {
	for i, k := range p.Keys {
		if err := k.check(); err != nil {
			return fmt.Errorf("key %d: %w", i, err)
		}
		if k.Time < 0 || k.Time > 1 {
			return fmt.Errorf("%w: key %d at %v", ErrKeyRange, i, k.Time)
		}
		if i > 0 && k.Time <= p.Keys[i-1].Time {
			return fmt.Errorf("%w: key %d at %v", ErrKeyOrder, i, k.Time)
		}
	}
	return nil
}

// Evaluate returns the curve value at t. Segments are cubic Hermite splines;
// each one is evaluated as the equivalent cubic Bézier whose control points
// are evenly spaced in time, so the Bézier parameter equals the normalised
// time within the segment.
func (p Profile) Evaluate(t float32) float32 {
	n := len(p.Keys)
	switch {
	case n == 0:
		return 0
	case n == 1 || t <= p.Keys[0].Time:
		return p.Keys[0].Value
	case t >= p.Keys[n-1].Time:
		return p.Keys[n-1].Value
	}
	i := sort.Search(n, func(i int) bool { return p.Keys[i].Time > t })
	k0, k1 := p.Keys[i-1], p.Keys[i]
	dt := float64(k1.Time - k0.Time)
	t0, t1 := float64(k0.Time), float64(k1.Time)
	v0, v1 := float64(k0.Value), float64(k1.Value)
	seg := curve.CubicBez{
		P0: curve.Pt(t0, v0),
		P1: curve.Pt(t0+dt/3, v0+float64(k0.OutTangent)*dt/3),
		P2: curve.Pt(t1-dt/3, v1-float64(k1.InTangent)*dt/3),
		P3: curve.Pt(t1, v1),
	}
	s := (float64(t) - t0) / dt
	return float32(seg.Eval(s).Y)
}

func (k Key) check() error {
	if !common.IsFinite(k.Time) || !common.IsFinite(k.Value) || !common.IsFinite(k.InTangent) || !common.IsFinite(k.OutTangent) {
		return fmt.Errorf("%w: %+v", ErrKeyValue, k)
	}
	return nil
}

// insert places k in time order. A key already at k.Time is rejected.
func (p *Profile) insert(k Key) error {
	if err := k.check(); err != nil {
		return err
	}
	if k.Time < 0 || k.Time > 1 {
		return fmt.Errorf("%w: %v", ErrKeyRange, k.Time)
	}
	i := sort.Search(len(p.Keys), func(i int) bool { return p.Keys[i].Time >= k.Time })
	if i < len(p.Keys) && p.Keys[i].Time == k.Time {
		return fmt.Errorf("%w: duplicate time %v", ErrKeyOrder, k.Time)
	}
	p.Keys = append(p.Keys, Key{})
	copy(p.Keys[i+1:], p.Keys[i:])
	p.Keys[i] = k
	return nil
}
