package profile

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gorustyt/terrainpath/prefs"
)

func TestInspectorPersistsEveryEdit(t *testing.T) {
	store := prefs.NewMemStore()
	in := NewInspector(store, zap.NewNop())

	require.NoError(t, in.AddKey(Width, Key{Time: 0.5, Value: 2}))
	assert.Equal(t, *in.Profiles(), Load(store, zap.NewNop()))
	assert.InDelta(t, 2, in.Profiles().Width.Evaluate(0.5), 1e-6)

	require.NoError(t, in.SetKeys(Jitter, []Key{{Time: 0, Value: 0.1}, {Time: 1, Value: -0.1}}))
	assert.Equal(t, *in.Profiles(), Load(store, zap.NewNop()))

	require.NoError(t, in.RemoveKey(Width, 1))
	c, err := in.Curve(Width)
	require.NoError(t, err)
	assert.Len(t, c.Keys, 2)
	assert.Equal(t, *in.Profiles(), Load(store, zap.NewNop()))
}

func TestInspectorReset(t *testing.T) {
	store := prefs.NewMemStore()
	require.NoError(t, Save(store, customSet()))
	in := NewInspector(store, zap.NewNop())
	assert.Equal(t, customSet(), *in.Profiles())

	require.NoError(t, in.ResetCurve(Strength))
	assert.Equal(t, Constant(1), in.Profiles().Strength)

	require.NoError(t, in.Reset())
	assert.Equal(t, DefaultSet(), *in.Profiles())
	assert.Equal(t, DefaultSet(), Load(store, zap.NewNop()))
}

func TestInspectorRejectsBadEdits(t *testing.T) {
	in := NewInspector(prefs.NewMemStore(), zap.NewNop())
	assert.Error(t, in.AddKey("slope", Key{}))
	assert.ErrorIs(t, in.AddKey(Width, Key{Time: 0}), ErrKeyOrder)
	assert.ErrorIs(t, in.SetKeys(Height, []Key{{Time: 2}}), ErrKeyRange)
	assert.Error(t, in.RemoveKey(Height, 9))
	_, err := in.Curve("slope")
	assert.Error(t, err)
	assert.Equal(t, DefaultSet(), *in.Profiles())
}

type brokenStore struct {
	prefs.Store
	fail bool
}

func (s *brokenStore) Set(key, value string) error {
	if s.fail {
		return errors.New("disk full")
	}
	return s.Store.Set(key, value)
}

func TestInspectorKeepsLiveCurvesOnFailedWrite(t *testing.T) {
	store := &brokenStore{Store: prefs.NewMemStore()}
	in := NewInspector(store, zap.NewNop())
	require.NoError(t, in.AddKey(Width, Key{Time: 0.5, Value: 2}))
	before := in.Profiles().Clone()

	store.fail = true
	assert.Error(t, in.SetKeys(Height, []Key{{Time: 0, Value: 0.3}}))
	assert.Error(t, in.AddKey(Width, Key{Time: 0.25, Value: 4}))
	assert.Error(t, in.RemoveKey(Width, 1))
	assert.Error(t, in.ResetCurve(Width))
	assert.Error(t, in.Reset())
	assert.Equal(t, before, *in.Profiles())
	assert.Equal(t, before, Load(store, zap.NewNop()))
}

func TestInspectorRejectsNonFiniteKeys(t *testing.T) {
	store := prefs.NewMemStore()
	in := NewInspector(store, zap.NewNop())
	nan := float32(math.NaN())

	assert.ErrorIs(t, in.SetKeys(Width, []Key{{Time: 0, Value: nan}, {Time: 1, Value: 1}}), ErrKeyValue)
	assert.ErrorIs(t, in.AddKey(Height, Key{Time: nan, Value: 1}), ErrKeyValue)
	assert.ErrorIs(t, in.AddKey(Height, Key{Time: 0.5, InTangent: float32(math.Inf(-1))}), ErrKeyValue)
	assert.Equal(t, DefaultSet(), *in.Profiles())
	_, ok := store.Get(PrefKey)
	assert.False(t, ok)
}
