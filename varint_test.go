package wf

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUvarintRoundTrip(t *testing.T) {
	for _, v := range []uint64{0, 1, 127, 128, 300, 1 << 20, 1<<63 - 1, ^uint64(0)} {
		buf := AppendUvarint(nil, v)
		require.Equal(t, SizeUvarint(v), len(buf))
		got, n, ok := ConsumeUvarint(buf)
		require.True(t, ok)
		require.Equal(t, len(buf), n)
		require.Equal(t, v, got)
	}
}

func TestVarintRoundTripNegative(t *testing.T) {
	// Negative signed varints always occupy 10 bytes: they sign-extend
	// through the full 64-bit representation.
	buf := AppendVarint(nil, -123)
	require.Len(t, buf, 10)
	got, n, ok := ConsumeVarint(buf)
	require.True(t, ok)
	require.Equal(t, 10, n)
	require.EqualValues(t, -123, got)
}

func TestConsumeUvarintTruncated(t *testing.T) {
	// A varint whose continuation bit is never cleared before the buffer
	// ends must fail rather than silently returning a short value.
	_, _, ok := ConsumeUvarint([]byte{0x80, 0x80, 0x80})
	require.False(t, ok)
}

func TestConsumeUvarintOversizeTruncatesLowBits(t *testing.T) {
	// A varint that's technically well-formed but carries more
	// significant bits than fit in 64 truncates rather than failing (L3).
	oversized := []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x7F}
	got, n, ok := ConsumeUvarint(oversized)
	require.True(t, ok)
	require.Equal(t, len(oversized), n)
	require.EqualValues(t, uint64(1)<<63, got)
}
