package inspect

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// The printable-character table resolves §4.7's fixed 256-entry symbol
// table with the legacy IBM Code Page 437 display convention
// original_source/pb/inspection.cc hand-transcribes in
// PrintCodePage437CharForInspection: control bytes get their DOS-console
// glyphs, [0x20,0x7E] print as themselves, and the DEL byte plus the high
// half-plane share the extended IBM PC symbol repertoire. The high half is
// decoded through golang.org/x/text/encoding/charmap's CodePage437; that
// decoder maps 0x00-0x7F to ASCII unchanged, so the control glyphs and the
// DEL glyph come from cp437ControlGlyphs and cp437DelGlyph instead.
var cp437Decoder = charmap.CodePage437.NewDecoder()

const cp437ControlGlyphs = "␀☺☻♥♦♣♠•◘○◙♂♀♪♫☼►◄↕‼¶§▬↨↑↓→←∟↔▲▼"

const cp437DelGlyph = '⌂'

var glyphTable [256]rune

func init() {
	for b := 0; b < 256; b++ {
		out, err := cp437Decoder.Bytes([]byte{byte(b)})
		if err != nil || len(out) == 0 {
			glyphTable[b] = rune(b)
			continue
		}
		r, _ := utf8.DecodeRune(out)
		if r == utf8.RuneError {
			r = rune(b)
		}
		glyphTable[b] = r
	}
	for i, r := range []rune(cp437ControlGlyphs) {
		glyphTable[i] = r
	}
	glyphTable[0x7F] = cp437DelGlyph
}

// printableGlyph maps a raw byte to its display glyph under the table
// above.
func printableGlyph(b byte) rune {
	return glyphTable[b]
}

// c1Glyph maps a decoded Unicode C1 control code (U+0080-U+009F) to the
// same glyph its single-byte equivalent would use, per inspection.cc's
// PrintUtf8ForInspection_Unsafe special case for the two-byte UTF-8
// encoding of that range (0xC2 0x80 - 0xC2 0x9F). cp is 0x80-0x9F.
func c1Glyph(cp byte) rune {
	return printableGlyph(cp)
}
