package profile

import "fmt"

const (
	Width    = "width"
	Height   = "height"
	Strength = "strength"
	Jitter   = "jitter"
)

// Names lists the profiles in inspector order.
var Names = []string{Width, Height, Strength, Jitter}

// Set is the four curves of a stroke. Width and Strength are multipliers of
// the brush size and strength. Height and Jitter are offsets in the anchor
// tile's normalised frame, not world units: Height is a fraction of the tile
// height scale and Jitter a fraction of the tile side, so the same curves
// shape a stroke alike on tiles of any size.
type Set struct {
	Width    Profile
	Height   Profile
	Strength Profile
	Jitter   Profile
}

// Values are the four profiles sampled at one progress value.
type Values struct {
	Width    float32
	Height   float32
	Strength float32
	Jitter   float32
}

func DefaultSet() Set {
	return Set{
		Width:    Constant(1),
		Height:   Constant(0),
		Strength: Constant(1),
		Jitter:   Constant(0),
	}
}

func defaultProfile(name string) Profile {
	d := DefaultSet()
	p, _ := d.Get(name)
	return p.Clone()
}

func (s *Set) Evaluate(t float32) Values {
	return Values{
		Width:    s.Width.Evaluate(t),
		Height:   s.Height.Evaluate(t),
		Strength: s.Strength.Evaluate(t),
		Jitter:   s.Jitter.Evaluate(t),
	}
}

func (s *Set) Get(name string) (*Profile, bool) {
	switch name {
	case Width:
		return &s.Width, true
	case Height:
		return &s.Height, true
	case Strength:
		return &s.Strength, true
	case Jitter:
		return &s.Jitter, true
	}
	return nil, false
}

func (s *Set) mustGet(name string) (*Profile, error) {
	p, ok := s.Get(name)
	if !ok {
		return nil, fmt.Errorf("profile: unknown curve %q", name)
	}
	return p, nil
}

func (s Set) Clone() Set {
	return Set{
		Width:    s.Width.Clone(),
		Height:   s.Height.Clone(),
		Strength: s.Strength.Clone(),
		Jitter:   s.Jitter.Clone(),
	}
}
