package packets

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math/bits"
)

// Width is the byte length of a fixed-width integer field.
type Width int

const (
	// WidthMinimal encodes with as few bytes as the value needs.
	WidthMinimal Width = 0
	WidthByte    Width = 1
	WidthShort   Width = 2
	WidthInt     Width = 4
	WidthLong    Width = 8
)

func (w Width) valid() bool {
	switch w {
	case WidthMinimal, WidthByte, WidthShort, WidthInt, WidthLong:
		return true
	}
	return false
}

// EncodeUnsigned returns the big-endian encoding of v, zero-padded to w bytes.
//
// With WidthMinimal the result has no leading zero bytes, so zero encodes
// to an empty slice.
func EncodeUnsigned(v uint64, w Width) ([]byte, error) {
	if !w.valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWidth, w)
	}

	n := (bits.Len64(v) + 7) / 8
	if w == WidthMinimal {
		w = Width(n)
	} else if n > int(w) {
		return nil, fmt.Errorf("%w: %d needs %d bytes, have %d", ErrValueTooLarge, v, n, w)
	}

	return bigEndian(v, w), nil
}

// DecodeUnsigned interprets all of b as a big-endian unsigned integer.
func DecodeUnsigned(b []byte) (uint64, error) {
	if len(b) > int(WidthLong) {
		return 0, fmt.Errorf("%w: %d bytes", ErrValueTooLarge, len(b))
	}

	var v uint64
	for _, c := range b {
		v = v<<8 | uint64(c)
	}

	return v, nil
}

// EncodeSigned returns the two's-complement big-endian encoding of v in w bytes.
//
// With WidthMinimal the result is the shortest encoding whose top bit still
// carries the sign, so 127 is one byte but 128 is two. Zero encodes to an
// empty slice.
func EncodeSigned(v int64, w Width) ([]byte, error) {
	if !w.valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWidth, w)
	}

	n := signedSize(v)
	if w == WidthMinimal {
		w = Width(n)
	} else if n > int(w) {
		return nil, fmt.Errorf("%w: %d needs %d bytes, have %d", ErrValueTooLarge, v, n, w)
	}

	return bigEndian(uint64(v), w), nil
}

// DecodeSigned interprets all of b as a two's-complement big-endian integer.
// The top bit of the first byte is the sign bit.
func DecodeSigned(b []byte) (int64, error) {
	u, err := DecodeUnsigned(b)
	if err != nil || len(b) == 0 {
		return 0, err
	}

	shift := 64 - 8*len(b)
	return int64(u<<shift) >> shift, nil
}

// signedSize is the smallest byte count holding v with its sign bit.
func signedSize(v int64) int {
	if v == 0 {
		return 0
	}

	magnitude := uint64(v)
	if v < 0 {
		magnitude = ^magnitude
	}

	return (bits.Len64(magnitude) + 1 + 7) / 8
}

func bigEndian(v uint64, w Width) []byte {
	var tmp [8]byte
	binary.BigEndian.PutUint64(tmp[:], v)

	out := make([]byte, w)
	copy(out, tmp[8-w:])
	return out
}

func writeFixed(buf *bytes.Buffer, v int64, w Width) error {
	b, err := EncodeSigned(v, w)
	if err != nil {
		return err
	}

	_, err = buf.Write(b)
	return err
}

func writeFixedUnsigned(buf *bytes.Buffer, v uint64, w Width) error {
	b, err := EncodeUnsigned(v, w)
	if err != nil {
		return err
	}

	_, err = buf.Write(b)
	return err
}

func readFixed(r io.Reader, w Width) ([]byte, error) {
	b := make([]byte, w)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, truncated(err)
	}

	return b, nil
}

func readFixedSigned(r io.Reader, w Width) (int64, error) {
	b, err := readFixed(r, w)
	if err != nil {
		return 0, err
	}

	return DecodeSigned(b)
}

func readFixedUnsigned(r io.Reader, w Width) (uint64, error) {
	b, err := readFixed(r, w)
	if err != nil {
		return 0, err
	}

	return DecodeUnsigned(b)
}

// DataField Byte represents int8 field in a packet
type Byte int8

func (df Byte) Write(buf *bytes.Buffer) error {
	return writeFixed(buf, int64(df), WidthByte)
}

func (df *Byte) Read(r *bytes.Reader) error {
	v, err := readFixedSigned(r, WidthByte)
	*df = Byte(v)
	return err
}

// DataField UnsignedByte represents uint8 field in a packet
type UnsignedByte uint8

func (df UnsignedByte) Write(buf *bytes.Buffer) error {
	return writeFixedUnsigned(buf, uint64(df), WidthByte)
}

func (df *UnsignedByte) Read(r *bytes.Reader) error {
	v, err := readFixedUnsigned(r, WidthByte)
	*df = UnsignedByte(v)
	return err
}

// DataField Short represents int16 field in a packet
type Short int16

func (df Short) Write(buf *bytes.Buffer) error {
	return writeFixed(buf, int64(df), WidthShort)
}

func (df *Short) Read(r *bytes.Reader) error {
	v, err := readFixedSigned(r, WidthShort)
	*df = Short(v)
	return err
}

// DataField UnsignedShort represents uint16 field in a packet
type UnsignedShort uint16

func (df UnsignedShort) Write(buf *bytes.Buffer) error {
	return writeFixedUnsigned(buf, uint64(df), WidthShort)
}

func (df *UnsignedShort) Read(r *bytes.Reader) error {
	v, err := readFixedUnsigned(r, WidthShort)
	*df = UnsignedShort(v)
	return err
}

// DataField Int represents int32 field in a packet
type Int int32

func (df Int) Write(buf *bytes.Buffer) error {
	return writeFixed(buf, int64(df), WidthInt)
}

func (df *Int) Read(r *bytes.Reader) error {
	v, err := readFixedSigned(r, WidthInt)
	*df = Int(v)
	return err
}

// DataField Long represents int64 field in a packet
type Long int64

func (df Long) Write(buf *bytes.Buffer) error {
	return writeFixed(buf, int64(df), WidthLong)
}

func (df *Long) Read(r *bytes.Reader) error {
	v, err := readFixedSigned(r, WidthLong)
	*df = Long(v)
	return err
}
