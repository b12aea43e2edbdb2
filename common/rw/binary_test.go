package rw

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadBack(t *testing.T) {
	w := NewBinWriter()
	w.WriteUInt32(0x54505448)
	w.WriteInt32(-7)
	w.WriteFloat32s([]float32{0.25, -1.5, 3})

	r := NewBinReader(w.GetWriteBytes())
	assert.Equal(t, 20, r.Size())
	assert.Equal(t, uint32(0x54505448), r.ReadUInt32())
	assert.Equal(t, int32(-7), r.ReadInt32())
	assert.Equal(t, 12, r.Size())
	got := make([]float32, 3)
	r.ReadFloat32s(got)
	assert.Equal(t, []float32{0.25, -1.5, 3}, got)
	require.NoError(t, r.Err())
	assert.Equal(t, 0, r.Size())
}

func TestLittleEndian(t *testing.T) {
	w := NewBinWriter()
	w.WriteUInt32(0x01020304)
	assert.Equal(t, []byte{4, 3, 2, 1}, w.GetWriteBytes())
}

func TestShortReadIsSticky(t *testing.T) {
	r := NewBinReader([]byte{1, 2})
	assert.Equal(t, uint32(0), r.ReadUInt32())
	require.Error(t, r.Err())
	assert.Equal(t, float32(0), r.ReadFloat32())
	assert.Error(t, r.Err())
}
