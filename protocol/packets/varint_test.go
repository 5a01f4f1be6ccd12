package packets

import (
	"bytes"
	"math"
	"math/bits"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/require"
)

var varintValues = []uint64{0, 1, 127, 128, 255, 300, 16383, 16384, 1<<21 - 1, 1 << 21, math.MaxUint32, math.MaxInt64, math.MaxUint64}

func TestVarintRoundTrip(t *testing.T) {
	for _, v := range varintValues {
		got, err := ReadVarint(bytes.NewReader(EncodeVarint(v)))
		require.NoError(t, err)
		require.Equal(t, v, got)
	}
}

func TestVarintRoundTripWithoutByteReader(t *testing.T) {
	for _, v := range varintValues {
		got, err := ReadVarint(iotest.OneByteReader(bytes.NewReader(EncodeVarint(v))))
		require.NoError(t, err)
		require.Equal(t, v, got)
	}
}

func TestVarintIsMinimal(t *testing.T) {
	for _, v := range varintValues {
		groups := (bits.Len64(v) + 6) / 7
		if groups == 0 {
			groups = 1
		}

		require.Len(t, EncodeVarint(v), groups, "value %d", v)
		require.Equal(t, groups, VarIntSize(v))
	}
}

func TestVarintKnownEncodings(t *testing.T) {
	cases := map[uint64][]byte{
		0:     {0x00},
		1:     {0x01},
		127:   {0x7f},
		128:   {0x80, 0x01},
		255:   {0xff, 0x01},
		300:   {0xac, 0x02},
		25565: {0xdd, 0xc7, 0x01},
		16384: {0x80, 0x80, 0x01},
	}

	for v, want := range cases {
		require.Equal(t, want, EncodeVarint(v), "value %d", v)
	}

	last := EncodeVarint(math.MaxUint64)
	require.Len(t, last, MaxVarintLen)
	require.Equal(t, byte(0x01), last[MaxVarintLen-1])
}

func TestAppendVarintKeepsPrefix(t *testing.T) {
	got := AppendVarint([]byte{0xaa}, 128)
	require.Equal(t, []byte{0xaa, 0x80, 0x01}, got)
}

func TestReadVarintTruncated(t *testing.T) {
	_, err := ReadVarint(bytes.NewReader([]byte{0x80}))
	require.ErrorIs(t, err, ErrTruncatedInput)

	_, err = ReadVarint(bytes.NewReader(nil))
	require.ErrorIs(t, err, ErrTruncatedInput)

	_, err = ReadVarint(iotest.OneByteReader(bytes.NewReader([]byte{0xff, 0xff})))
	require.ErrorIs(t, err, ErrTruncatedInput)
}

func TestReadVarintAcceptsNonMinimal(t *testing.T) {
	got, err := ReadVarint(bytes.NewReader([]byte{0x80, 0x00}))
	require.NoError(t, err)
	require.Equal(t, uint64(0), got)

	got, err = ReadVarint(bytes.NewReader([]byte{0x81, 0x80, 0x00}))
	require.NoError(t, err)
	require.Equal(t, uint64(1), got)
}

func TestReadVarintStopsAtTerminator(t *testing.T) {
	r := bytes.NewReader([]byte{0xac, 0x02, 0x07})
	got, err := ReadVarint(r)
	require.NoError(t, err)
	require.Equal(t, uint64(300), got)
	require.Equal(t, 1, r.Len())
}

func TestReadVarintTooBig(t *testing.T) {
	tooLong := bytes.Repeat([]byte{0x80}, MaxVarintLen)
	tooLong = append(tooLong, 0x00)
	_, err := ReadVarint(bytes.NewReader(tooLong))
	require.ErrorIs(t, err, ErrVarIntTooBig)

	overflow := append(bytes.Repeat([]byte{0xff}, MaxVarintLen-1), 0x02)
	_, err = ReadVarint(bytes.NewReader(overflow))
	require.ErrorIs(t, err, ErrVarIntTooBig)
}

func TestVarIntField(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	require.NoError(t, VarInt(754).Write(buf))
	require.Equal(t, []byte{0xf2, 0x05}, buf.Bytes())

	var got VarInt
	require.NoError(t, got.Read(bytes.NewReader(buf.Bytes())))
	require.Equal(t, VarInt(754), got)
}
