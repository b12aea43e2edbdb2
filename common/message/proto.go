package message

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// Encode renders msg as indented protojson text.
func Encode(msg proto.Message) ([]byte, error) {
	return protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(msg)
}

func Decode(data []byte, msg proto.Message) error {
	return protojson.UnmarshalOptions{DiscardUnknown: true}.Unmarshal(data, msg)
}

// EncodeStruct encodes a tree of maps, slices, strings, bools and numbers.
func EncodeStruct(fields map[string]any) ([]byte, error) {
	s, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("message: build struct: %w", err)
	}
	return Encode(s)
}

func DecodeStruct(data []byte) (*structpb.Struct, error) {
	s := &structpb.Struct{}
	if err := Decode(data, s); err != nil {
		return nil, fmt.Errorf("message: decode struct: %w", err)
	}
	return s, nil
}
