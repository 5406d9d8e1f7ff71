package inspect

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vedadiyan/wf"
)

func TestScanPermissiveExactPartition(t *testing.T) {
	// P10: permissive spans are pairwise-disjoint, ascending, and cover
	// the entire input, regardless of how garbled the bytes are.
	data := []byte{0xFF, 0x00, 0x01, 0x02, 0x30, 0x41, 0xFE, 0xFD}
	spans := ScanPermissive(data)
	require.NotEmpty(t, spans)

	pos := 0
	for _, s := range spans {
		require.Equal(t, pos, s.Begin)
		require.Less(t, s.Begin, s.End)
		pos = s.End
	}
	require.Equal(t, len(data), pos)
}

func TestScanPermissiveGapMerging(t *testing.T) {
	// Adjacent unparseable bytes must merge into a single Unknown-gap span
	// rather than one span per byte.
	data := []byte{0xFF, 0xFE, 0xFD, 0xFC}
	spans := ScanPermissive(data)
	require.Len(t, spans, 1)
	require.Equal(t, KindGap, spans[0].Kind)
	require.Equal(t, 0, spans[0].Begin)
	require.Equal(t, 4, spans[0].End)
}

func TestScanStrictEmptyInputIsValidEmptyMessage(t *testing.T) {
	spans := ScanStrict(nil)
	require.NotNil(t, spans)
	require.Empty(t, spans)
}

func TestScanStrictFailsOnGarbage(t *testing.T) {
	spans := ScanStrict([]byte{0xFF, 0xFE})
	require.Nil(t, spans)
}

func TestScanStrictSimpleRecord(t *testing.T) {
	var data []byte
	data = append(data, wf.AppendTag(nil, 1, wf.WireVarint)...)
	data = wf.AppendUvarint(data, 42)

	spans := ScanStrict(data)
	require.Len(t, spans, 1)
	require.Equal(t, KindVarint, spans[0].Kind)
	require.EqualValues(t, 1, spans[0].FieldNumber)
	require.EqualValues(t, 42, spans[0].VarintValue)
}

func TestScanNestedMessage(t *testing.T) {
	var inner []byte
	inner = append(inner, wf.AppendTag(nil, 1, wf.WireVarint)...)
	inner = wf.AppendUvarint(inner, 7)

	var outer []byte
	outer = append(outer, wf.AppendTag(nil, 2, wf.WireBytes)...)
	outer = wf.AppendBytes(outer, inner)

	spans := ScanStrict(outer)
	require.Len(t, spans, 1)
	require.Equal(t, KindMessage, spans[0].Kind)
	require.Len(t, spans[0].Children, 1)
	require.Equal(t, KindVarint, spans[0].Children[0].Kind)
	require.EqualValues(t, 7, spans[0].Children[0].VarintValue)
}

func TestScanBytesThatDoNotParseAsMessage(t *testing.T) {
	var data []byte
	data = append(data, wf.AppendTag(nil, 3, wf.WireBytes)...)
	// This payload starts with a byte whose low 3 bits select a legacy
	// group wire type, so a strict nested attempt must fail immediately
	// and the span falls back to Bytes.
	payload := []byte{0x54, 'h', 'e', 'l', 'l', 'o'}
	data = wf.AppendBytes(data, payload)

	spans := ScanStrict(data)
	require.Len(t, spans, 1)
	require.Equal(t, KindBytes, spans[0].Kind)
	require.Equal(t, payload, spans[0].Payload)
}

// TestScanPermissiveScenario reproduces the byte-level scenario from
// spec.md's S4: field 6 varint, a 4-byte gap, field 4 fixed64, a 4-byte
// gap, field 8 bytes (valid UTF-8), and a trailing 4-byte gap.
func TestScanPermissiveScenario(t *testing.T) {
	gap := []byte{0x2E, 0x2E, 0x2E, 0x2E}
	text := "The quick brown fox jumps over the lazy dog."

	var data []byte
	data = append(data, 0x30, 0x41) // field 6, varint, value 65
	data = append(data, gap...)
	data = append(data, 0x21)                     // field 4, fixed64
	data = append(data, []byte("fixed_64")...)    // 8-byte payload
	data = append(data, gap...)
	data = append(data, 0x42, byte(len(text)))
	data = append(data, []byte(text)...)
	data = append(data, gap...)

	spans := ScanPermissive(data)
	require.Len(t, spans, 6)

	require.Equal(t, KindVarint, spans[0].Kind)
	require.EqualValues(t, 6, spans[0].FieldNumber)
	require.EqualValues(t, 65, spans[0].VarintValue)

	require.Equal(t, KindGap, spans[1].Kind)
	require.Equal(t, 4, spans[1].End-spans[1].Begin)

	require.Equal(t, KindFixed64, spans[2].Kind)
	require.EqualValues(t, 4, spans[2].FieldNumber)

	require.Equal(t, KindGap, spans[3].Kind)
	require.Equal(t, 4, spans[3].End-spans[3].Begin)

	require.Equal(t, KindBytes, spans[4].Kind)
	require.EqualValues(t, 8, spans[4].FieldNumber)
	require.Equal(t, text, string(spans[4].Payload))

	require.Equal(t, KindGap, spans[5].Kind)
	require.Equal(t, 4, spans[5].End-spans[5].Begin)

	// P10 partition check.
	pos := 0
	for _, s := range spans {
		require.Equal(t, pos, s.Begin)
		pos = s.End
	}
	require.Equal(t, len(data), pos)
}

func TestScanStrictAsMessageEmptyInput(t *testing.T) {
	span, ok := ScanStrictAsMessage(nil)
	require.True(t, ok)
	require.NotNil(t, span)
	require.Equal(t, KindMessage, span.Kind)
	require.Empty(t, span.Children)
}

func TestScanStrictAsMessageRejectsGarbage(t *testing.T) {
	_, ok := ScanStrictAsMessage([]byte("garbage"))
	require.False(t, ok)
}

func TestScanStrictAsMessageWrapsFields(t *testing.T) {
	var data []byte
	data = append(data, wf.AppendTag(nil, 1, wf.WireVarint)...)
	data = wf.AppendUvarint(data, 42)
	data = append(data, wf.AppendTag(nil, 2, wf.WireVarint)...)
	data = wf.AppendUvarint(data, 7)

	span, ok := ScanStrictAsMessage(data)
	require.True(t, ok)
	require.Equal(t, KindMessage, span.Kind)
	require.EqualValues(t, 0, span.FieldNumber)
	require.Equal(t, 0, span.Begin)
	require.Equal(t, len(data), span.End)
	require.Len(t, span.Children, 2)
}

func TestScanRespectsMaxNestingDepth(t *testing.T) {
	// A chain nested one level deeper than the limit must not be
	// misclassified as a Message at the level where the limit is hit; the
	// scanner still partitions every byte, just as Bytes instead.
	build := func(depth int) []byte {
		payload := wf.AppendUvarint(nil, 1)
		var msg []byte
		msg = append(msg, wf.AppendTag(nil, 1, wf.WireVarint)...)
		msg = append(msg, payload...)
		for i := 1; i < depth; i++ {
			var wrapped []byte
			wrapped = append(wrapped, wf.AppendTag(nil, 1, wf.WireBytes)...)
			wrapped = wf.AppendBytes(wrapped, msg)
			msg = wrapped
		}
		return msg
	}

	shallow := build(wf.MaxMessageNestingDepth)
	spans := ScanStrict(shallow)
	require.NotNil(t, spans)

	deep := build(wf.MaxMessageNestingDepth + 2)
	spans = ScanPermissive(deep)

	// Every wrapper above the limit is a Message; the one scanned at the
	// limit is Bytes.
	level := spans
	for d := 0; d < wf.MaxMessageNestingDepth; d++ {
		require.Len(t, level, 1)
		require.Equal(t, KindMessage, level[0].Kind)
		level = level[0].Children
	}
	require.Len(t, level, 1)
	require.Equal(t, KindBytes, level[0].Kind)

	pos := 0
	for _, s := range spans {
		require.Equal(t, pos, s.Begin)
		pos = s.End
	}
	require.Equal(t, len(deep), pos)
}
