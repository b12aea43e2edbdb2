// Package brush owns the brush state shared by the tools of one editing
// session and turns it into per-stamp masks.
package brush

import (
	"image"

	"github.com/gorustyt/terrainpath/common"
)

const defaultTextureSize = 64

// Session is the brush UI state. It is built once per tool session and passed
// explicitly to whatever needs it.
type Session struct {
	Size     float32 // world units
	Strength float32
	Rotation float32 // degrees
	Hardness float32

	texture image.Image
}

func NewSession(size, strength, rotation, hardness float32) *Session {
	s := &Session{
		Size:     size,
		Strength: common.Saturate(strength),
		Rotation: rotation,
		Hardness: common.Saturate(hardness),
	}
	s.texture = DefaultTexture(defaultTextureSize)
	return s
}

// Texture is the session's brush shape, used when an event carries none.
func (s *Session) Texture() image.Image {
	return s.texture
}

func (s *Session) SetTexture(img image.Image) {
	if img == nil {
		img = DefaultTexture(defaultTextureSize)
	}
	s.texture = img
}
