package profile

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/gorustyt/terrainpath/common/message"
	"github.com/gorustyt/terrainpath/prefs"
)

// PrefKey is the preference key the four profiles are stored under.
const PrefKey = "TerrainPath.Profiles"

var errMalformed = errors.New("profile: malformed curve")

func (s Set) Marshal() ([]byte, error) {
	fields := make(map[string]any, len(Names))
	for _, name := range Names {
		p, _ := s.Get(name)
		keys := make([]any, 0, len(p.Keys))
		for _, k := range p.Keys {
			keys = append(keys, map[string]any{
				"time":       float64(k.Time),
				"value":      float64(k.Value),
				"inTangent":  float64(k.InTangent),
				"outTangent": float64(k.OutTangent),
			})
		}
		fields[name] = map[string]any{"keys": keys}
	}
	return message.EncodeStruct(fields)
}

// Unmarshal starts from DefaultSet and overwrites every curve that decodes
// cleanly. Curves that are missing keep their defaults; curves that are
// present but malformed keep their defaults and are reported in the returned
// error, which is informational only. A blob that cannot be parsed at all
// yields the defaults and an error.
func Unmarshal(data []byte) (Set, error) {
	set := DefaultSet()
	root, err := message.DecodeStruct(data)
	if err != nil {
		return set, err
	}
	var errs []error
	for _, name := range Names {
		v, ok := root.GetFields()[name]
		if !ok {
			continue
		}
		p, err := decodeProfile(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}
		dst, _ := set.Get(name)
		*dst = p
	}
	return set, errors.Join(errs...)
}

func decodeProfile(v *structpb.Value) (Profile, error) {
	obj := v.GetStructValue()
	if obj == nil {
		return Profile{}, errMalformed
	}
	list := obj.GetFields()["keys"].GetListValue()
	if list == nil {
		return Profile{}, errMalformed
	}
	var p Profile
	for i, kv := range list.GetValues() {
		kf := kv.GetStructValue().GetFields()
		t, okT := number(kf, "time")
		val, okV := number(kf, "value")
		if !okT || !okV {
			return Profile{}, fmt.Errorf("%w: key %d", errMalformed, i)
		}
		in, _ := number(kf, "inTangent")
		out, _ := number(kf, "outTangent")
		p.Keys = append(p.Keys, Key{Time: t, Value: val, InTangent: in, OutTangent: out})
	}
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

func number(fields map[string]*structpb.Value, name string) (float32, bool) {
	v, ok := fields[name]
	if !ok {
		return 0, false
	}
	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, false
	}
	return float32(n.NumberValue), true
}

// Load reads the profile set from store. It never fails: whatever cannot be
// decoded falls back to defaults and is logged.
func Load(store prefs.Store, log *zap.Logger) Set {
	blob, ok := store.Get(PrefKey)
	if !ok {
		return DefaultSet()
	}
	set, err := Unmarshal([]byte(blob))
	if err != nil {
		log.Warn("discarding unreadable profile preferences", zap.String("key", PrefKey), zap.Error(err))
	}
	return set
}

func Save(store prefs.Store, s Set) error {
	data, err := s.Marshal()
	if err != nil {
		return err
	}
	return store.Set(PrefKey, string(data))
}
