package packets

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"unicode/utf8"
)

// AppendString appends s prefixed with a VarInt of its UTF-8 byte length.
func AppendString(dst []byte, s string) []byte {
	dst = AppendVarint(dst, uint64(len(s)))
	return append(dst, s...)
}

// EncodeString returns s prefixed with a VarInt of its UTF-8 byte length.
func EncodeString(s string) []byte {
	return AppendString(make([]byte, 0, VarIntSize(uint64(len(s)))+len(s)), s)
}

// ReadString reads a length-prefixed UTF-8 string from r.
func ReadString(r io.Reader) (string, error) {
	length, err := ReadVarint(r)
	if err != nil {
		return "", err
	}

	body, err := readN(r, length)
	if err != nil {
		return "", fmt.Errorf("string of %d bytes: %w", length, err)
	}

	if !utf8.Valid(body) {
		return "", ErrInvalidEncoding
	}

	return string(body), nil
}

// readN reads exactly n bytes from r, failing with ErrTruncatedInput on a short read.
func readN(r io.Reader, n uint64) ([]byte, error) {
	if n > math.MaxInt64 {
		return nil, fmt.Errorf("%w: length %d", ErrValueTooLarge, n)
	}

	if br, ok := r.(*bytes.Reader); ok && uint64(br.Len()) < n {
		return nil, fmt.Errorf("%w: want %d bytes, have %d", ErrTruncatedInput, n, br.Len())
	}

	body, err := io.ReadAll(io.LimitReader(r, int64(n)))
	if err != nil {
		return nil, err
	}

	if uint64(len(body)) < n {
		return nil, fmt.Errorf("%w: want %d bytes, got %d", ErrTruncatedInput, n, len(body))
	}

	return body, nil
}

// DataField String represents string field in a packet
//
// Serialized String is prefixed with a VarInt of its length in bytes
type String string

func (df String) Write(buf *bytes.Buffer) error {
	_, err := buf.Write(EncodeString(string(df)))
	return err
}

func (df *String) Read(r *bytes.Reader) error {
	s, err := ReadString(r)
	if err != nil {
		return err
	}

	*df = String(s)
	return nil
}
