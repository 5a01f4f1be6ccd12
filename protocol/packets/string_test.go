package packets

import (
	"bytes"
	"testing"
	"testing/iotest"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
)

func TestStringRoundTrip(t *testing.T) {
	for _, s := range []string{"", "localhost", "héllo wörld", "日本語", "🎮 mc.example.org"} {
		encoded := EncodeString(s)

		got, err := ReadString(bytes.NewReader(encoded))
		require.NoError(t, err)
		require.Equal(t, s, got)

		got, err = ReadString(iotest.OneByteReader(bytes.NewReader(encoded)))
		require.NoError(t, err)
		require.Equal(t, s, got)
	}
}

func TestStringPrefixCountsBytes(t *testing.T) {
	s := "日本語"
	require.Equal(t, 3, utf8.RuneCountInString(s))

	encoded := EncodeString(s)
	require.Equal(t, byte(9), encoded[0])
	require.Len(t, encoded, 10)
}

func TestStringTruncated(t *testing.T) {
	_, err := ReadString(bytes.NewReader([]byte{0x05, 'a', 'b'}))
	require.ErrorIs(t, err, ErrTruncatedInput)

	_, err = ReadString(iotest.OneByteReader(bytes.NewReader([]byte{0x05, 'a', 'b'})))
	require.ErrorIs(t, err, ErrTruncatedInput)

	_, err = ReadString(bytes.NewReader([]byte{0x80}))
	require.ErrorIs(t, err, ErrTruncatedInput)
}

func TestStringInvalidEncoding(t *testing.T) {
	_, err := ReadString(bytes.NewReader([]byte{0x02, 0xff, 0xfe}))
	require.ErrorIs(t, err, ErrInvalidEncoding)
}

func TestStringField(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	require.NoError(t, String("localhost").Write(buf))
	require.Equal(t, EncodeString("localhost"), buf.Bytes())

	var got String
	require.NoError(t, got.Read(bytes.NewReader(buf.Bytes())))
	require.Equal(t, String("localhost"), got)
}
