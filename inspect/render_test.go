package inspect

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vedadiyan/wf"
)

func TestValidateUTF8Ascii(t *testing.T) {
	n := ValidateUTF8([]byte("hello"))
	require.Equal(t, 5, n)
}

func TestValidateUTF8Multibyte(t *testing.T) {
	// "café" - 4 characters, 5 bytes (é is 2 bytes).
	n := ValidateUTF8([]byte("café"))
	require.Equal(t, 4, n)
}

func TestValidateUTF8RejectsBadLeadByte(t *testing.T) {
	n := ValidateUTF8([]byte{0x80, 'x'})
	require.Less(t, n, 0)
}

func TestValidateUTF8RejectsTruncation(t *testing.T) {
	// One valid character followed by an incomplete 3-byte sequence: the
	// result is -(charsBeforeFailure + 1).
	n := ValidateUTF8([]byte{'a', 0xE2, 0x82})
	require.Equal(t, -2, n)
}

func TestValidateUTF8RejectsOverlong(t *testing.T) {
	// 0xC0 0x80 is an overlong encoding of NUL.
	n := ValidateUTF8([]byte{0xC0, 0x80})
	require.Less(t, n, 0)
}

func TestValidateUTF8RejectsSurrogate(t *testing.T) {
	// 0xED 0xA0 0x80 encodes U+D800, a surrogate.
	n := ValidateUTF8([]byte{0xED, 0xA0, 0x80})
	require.Less(t, n, 0)
}

func TestValidateUTF8CountsPrecedingValidChars(t *testing.T) {
	n := ValidateUTF8([]byte{'a', 'b', 0xFF})
	require.Equal(t, -3, n)
}

func TestValidateUTF8RejectsBadFirstByteDistinctFromEmpty(t *testing.T) {
	// A failure on the very first byte must not collide with the valid
	// empty-string result: -(0+1) == -1, never 0.
	require.Equal(t, 0, ValidateUTF8(nil))
	require.Equal(t, -1, ValidateUTF8([]byte{0x80}))
	require.Equal(t, -1, ValidateUTF8([]byte{0xC0, 0x80}))
	require.Equal(t, -1, ValidateUTF8([]byte{0xED, 0xA0, 0x80}))
}

func TestGlyphTableIsFullyPopulated(t *testing.T) {
	// Every byte value must resolve to some glyph; the x/text decode must
	// not silently leave entries at their zero value.
	seen := map[rune]bool{}
	for b := 0; b < 256; b++ {
		require.NotZero(t, printableGlyph(byte(b)), "byte 0x%02X", b)
		seen[printableGlyph(byte(b))] = true
	}
	require.Greater(t, len(seen), 1)
}

func TestPrintableGlyphASCIIPassthrough(t *testing.T) {
	require.Equal(t, 'A', printableGlyph('A'))
	require.Equal(t, '0', printableGlyph('0'))
}

func TestRenderSimpleVarintField(t *testing.T) {
	var data []byte
	data = append(data, wf.AppendTag(nil, 1, wf.WireVarint)...)
	data = wf.AppendUvarint(data, 1)

	spans := ScanStrict(data)
	lines := Render(data, spans, DefaultContext())
	require.NotEmpty(t, lines)
	require.Contains(t, lines[0], "bool{true}")
	require.Contains(t, lines[0], "[1] =")
}

func TestRenderNestedMessageBraces(t *testing.T) {
	var inner []byte
	inner = append(inner, wf.AppendTag(nil, 1, wf.WireVarint)...)
	inner = wf.AppendUvarint(inner, 9)

	var outer []byte
	outer = append(outer, wf.AppendTag(nil, 2, wf.WireBytes)...)
	outer = wf.AppendBytes(outer, inner)

	spans := ScanStrict(outer)
	lines := Render(outer, spans, DefaultContext())
	require.True(t, strings.Contains(lines[0], "message {"))
	require.Equal(t, "}", strings.TrimSpace(lines[len(lines)-1]))
}

func TestRenderGapUsesGlyphMapNotFieldLabel(t *testing.T) {
	data := []byte{0xFF, 0xFE}
	spans := ScanPermissive(data)
	lines := Render(data, spans, DefaultContext())
	require.NotEmpty(t, lines)
	require.NotContains(t, lines[0], "[")
}

func TestRenderIncompleteMessageMarksTruncation(t *testing.T) {
	var inner []byte
	inner = append(inner, wf.AppendTag(nil, 1, wf.WireVarint)...)
	inner = wf.AppendUvarint(inner, 1)
	inner = append(inner, wf.AppendTag(nil, 2, wf.WireVarint)...)
	inner = wf.AppendUvarint(inner, 1)
	inner = append(inner, wf.AppendTag(nil, 3, wf.WireVarint)...)
	inner = wf.AppendUvarint(inner, 1)

	var outer []byte
	outer = append(outer, wf.AppendTag(nil, 2, wf.WireBytes)...)
	outer = wf.AppendBytes(outer, inner)

	spans := ScanStrict(outer)
	require.Len(t, spans, 1)
	require.Len(t, spans[0].Children, 3, "sanity: all three inner fields must be scanned")

	// A soft limit landing after field 1 but before field 2 must stop the
	// dump early and mark the message as truncated.
	ctx := Context{BytesPerLine: 16, SoftLimit: 3}
	lines := Render(outer, spans, ctx)

	require.Equal(t, "…}", lines[len(lines)-1])
	require.True(t, spans[0].truncated)
}

func TestRenderCompleteMessageHasNoTruncationMarker(t *testing.T) {
	var inner []byte
	inner = append(inner, wf.AppendTag(nil, 1, wf.WireVarint)...)
	inner = wf.AppendUvarint(inner, 1)

	var outer []byte
	outer = append(outer, wf.AppendTag(nil, 2, wf.WireBytes)...)
	outer = wf.AppendBytes(outer, inner)

	spans := ScanStrict(outer)
	lines := Render(outer, spans, DefaultContext())

	require.Equal(t, "}", lines[len(lines)-1])
	require.False(t, spans[0].truncated)
}

func TestRenderBytesFieldReportsUTF8(t *testing.T) {
	var data []byte
	data = append(data, wf.AppendTag(nil, 8, wf.WireBytes)...)
	data = wf.AppendString(data, "sunsets")

	spans := ScanStrict(data)
	lines := Render(data, spans, DefaultContext())
	require.Contains(t, strings.Join(lines, "\n"), "7-char UTF-8")
}
