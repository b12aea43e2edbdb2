package message

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStructText(t *testing.T) {
	data, err := EncodeStruct(map[string]any{
		"width": map[string]any{
			"keys": []any{
				map[string]any{"time": 0.0, "value": 1.0},
			},
		},
	})
	require.NoError(t, err)

	s, err := DecodeStruct(data)
	require.NoError(t, err)
	width := s.GetFields()["width"].GetStructValue()
	require.NotNil(t, width)
	keys := width.GetFields()["keys"].GetListValue().GetValues()
	require.Len(t, keys, 1)
	assert.Equal(t, 1.0, keys[0].GetStructValue().GetFields()["value"].GetNumberValue())
}

func TestDecodeGarbage(t *testing.T) {
	_, err := DecodeStruct([]byte("{not json"))
	assert.Error(t, err)
}

func TestEncodeUnsupportedValue(t *testing.T) {
	_, err := EncodeStruct(map[string]any{"ch": make(chan int)})
	assert.Error(t, err)
}
