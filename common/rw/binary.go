package rw

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// ReaderWriter is a little-endian binary buffer. Reads are sticky on error:
// after the first short read every further read returns zero and Err reports
// the failure.
type ReaderWriter struct {
	dataBuf []byte
	rw      bytes.Buffer
	err     error
}

func NewBinWriter() *ReaderWriter {
	return &ReaderWriter{dataBuf: make([]byte, 8)}
}

func NewBinReader(data []byte) *ReaderWriter {
	d := &ReaderWriter{dataBuf: make([]byte, 8)}
	d.rw.Write(data)
	return d
}

func (w *ReaderWriter) Err() error {
	return w.err
}

func (w *ReaderWriter) read(n int) []byte {
	if w.err != nil {
		return nil
	}
	if _, err := io.ReadFull(&w.rw, w.dataBuf[:n]); err != nil {
		w.err = fmt.Errorf("rw: read %d bytes: %w", n, err)
		return nil
	}
	return w.dataBuf[:n]
}

func (w *ReaderWriter) ReadUInt32() uint32 {
	b := w.read(4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

func (w *ReaderWriter) ReadInt32() int32 {
	return int32(w.ReadUInt32())
}

func (w *ReaderWriter) ReadFloat32() float32 {
	return math.Float32frombits(w.ReadUInt32())
}

func (w *ReaderWriter) ReadFloat32s(value []float32) {
	for i := range value {
		value[i] = w.ReadFloat32()
	}
}

func (w *ReaderWriter) WriteUInt32(v uint32) {
	binary.LittleEndian.PutUint32(w.dataBuf, v)
	w.rw.Write(w.dataBuf[:4])
}

func (w *ReaderWriter) WriteInt32(v int32) {
	w.WriteUInt32(uint32(v))
}

func (w *ReaderWriter) WriteFloat32(v float32) {
	w.WriteUInt32(math.Float32bits(v))
}

func (w *ReaderWriter) WriteFloat32s(v []float32) {
	for _, tmp := range v {
		w.WriteFloat32(tmp)
	}
}

func (w *ReaderWriter) GetWriteBytes() (res []byte) {
	return w.rw.Bytes()
}

// Size is the number of bytes not yet read.
func (w *ReaderWriter) Size() int {
	return w.rw.Len()
}
