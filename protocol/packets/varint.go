package packets

import (
	"bytes"
	"io"
)

const SEGMENT_BITS = 0x7F // 0b01111111
const CONTINUE_BIT = 0x80 // 0b10000000

// MaxVarintLen is the longest VarInt chain accepted by ReadVarint.
// Ten 7-bit groups are enough for any uint64.
const MaxVarintLen = 10

// DataField VarInt represents variable-length unsigned integer field in a packet
//
// The most significant bit of each byte indicates whether more bytes follow:
// 1 if more bytes follow, 0 if not. The low 7 bits carry the value,
// least significant group first.
type VarInt uint64

// AppendVarint appends the minimal VarInt encoding of v to dst.
func AppendVarint(dst []byte, v uint64) []byte {
	for v > SEGMENT_BITS {
		dst = append(dst, byte(v&SEGMENT_BITS)|CONTINUE_BIT)
		v >>= 7
	}

	return append(dst, byte(v))
}

// EncodeVarint returns the minimal VarInt encoding of v. EncodeVarint(0) is []byte{0}.
func EncodeVarint(v uint64) []byte {
	return AppendVarint(make([]byte, 0, VarIntSize(v)), v)
}

// VarIntSize reports how many bytes EncodeVarint(v) produces.
func VarIntSize(v uint64) int {
	n := 1
	for v > SEGMENT_BITS {
		v >>= 7
		n++
	}

	return n
}

// ReadVarint reads a single VarInt from r, one byte at a time.
//
// Non-minimal chains are accepted. A stream that ends before a byte with
// the continuation bit cleared yields ErrTruncatedInput, and chains longer
// than MaxVarintLen or overflowing 64 bits yield ErrVarIntTooBig.
func ReadVarint(r io.Reader) (uint64, error) {
	var value uint64

	for i := 0; i < MaxVarintLen; i++ {
		b, err := readByte(r)
		if err != nil {
			return value, truncated(err)
		}

		if b&CONTINUE_BIT == 0 {
			if i == MaxVarintLen-1 && b > 1 {
				return value, ErrVarIntTooBig
			}
			return value | uint64(b)<<(7*i), nil
		}

		value |= uint64(b&SEGMENT_BITS) << (7 * i)
	}

	return value, ErrVarIntTooBig
}

func readByte(r io.Reader) (byte, error) {
	if br, ok := r.(io.ByteReader); ok {
		return br.ReadByte()
	}

	var b [1]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}

	return b[0], nil
}

func (df VarInt) Write(buf *bytes.Buffer) error {
	_, err := buf.Write(EncodeVarint(uint64(df)))
	return err
}

func (df *VarInt) Read(r *bytes.Reader) error {
	value, err := ReadVarint(r)
	if err != nil {
		return err
	}

	*df = VarInt(value)
	return nil
}
