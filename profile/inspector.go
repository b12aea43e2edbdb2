package profile

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/gorustyt/terrainpath/prefs"
)

// Inspector is the editing surface for the four curves. An edit is applied to
// a copy, written to the preference store, and only then made live; a failed
// write leaves the live curves untouched.
type Inspector struct {
	set   *Set
	store prefs.Store
	log   *zap.Logger
}

func NewInspector(store prefs.Store, log *zap.Logger) *Inspector {
	set := Load(store, log)
	return &Inspector{set: &set, store: store, log: log}
}

// Profiles is the live set read by the stroke tool.
func (in *Inspector) Profiles() *Set {
	return in.set
}

func (in *Inspector) Curve(name string) (Profile, error) {
	p, err := in.set.mustGet(name)
	if err != nil {
		return Profile{}, err
	}
	return p.Clone(), nil
}

func (in *Inspector) SetKeys(name string, keys []Key) error {
	return in.edit(name, func(p *Profile) error {
		next := Profile{Keys: append([]Key(nil), keys...)}
		if err := next.Validate(); err != nil {
			return err
		}
		*p = next
		return nil
	})
}

func (in *Inspector) AddKey(name string, k Key) error {
	return in.edit(name, func(p *Profile) error {
		return p.insert(k)
	})
}

func (in *Inspector) RemoveKey(name string, index int) error {
	return in.edit(name, func(p *Profile) error {
		if index < 0 || index >= len(p.Keys) {
			return fmt.Errorf("profile: %s has no key %d", name, index)
		}
		p.Keys = append(p.Keys[:index:index], p.Keys[index+1:]...)
		return nil
	})
}

// Reset restores every curve to its default.
func (in *Inspector) Reset() error {
	if err := in.commit(DefaultSet()); err != nil {
		return err
	}
	in.log.Info("profiles reset to defaults")
	return nil
}

// ResetCurve restores a single curve.
func (in *Inspector) ResetCurve(name string) error {
	return in.edit(name, func(p *Profile) error {
		*p = defaultProfile(name)
		return nil
	})
}

func (in *Inspector) edit(name string, fn func(p *Profile) error) error {
	next := in.set.Clone()
	p, err := next.mustGet(name)
	if err != nil {
		return err
	}
	if err := fn(p); err != nil {
		return err
	}
	return in.commit(next)
}

// commit persists next and then makes it live in place, so holders of
// Profiles see the change.
func (in *Inspector) commit(next Set) error {
	if err := Save(in.store, next); err != nil {
		return fmt.Errorf("profile: persist: %w", err)
	}
	*in.set = next
	return nil
}
