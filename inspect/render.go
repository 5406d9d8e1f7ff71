package inspect

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/vedadiyan/wf"
)

// Context configures Render's output layout.
type Context struct {
	// BytesPerLine is the width of the hex column, in bytes.
	BytesPerLine int
	// SoftLimit is the cumulative byte count after which interpretations
	// are replaced with a truncation marker, though hex-dumping continues.
	// Inside a nested message, fields whose offset is at or past SoftLimit
	// are not rendered at all, hex included; the message's closing brace
	// is then prefixed with an ellipsis.
	SoftLimit int
}

// DefaultContext matches the layout original_source/pb/protobuf_dump.cc
// uses when invoked with no overrides.
func DefaultContext() Context {
	return Context{BytesPerLine: 16, SoftLimit: 4096}
}

// Render turns a span tree (as produced by ScanPermissive or ScanStrict) plus the buffer it was
// scanned from into the ordered hex-dump-plus-interpretation lines
// described by §4.7.
func Render(data []byte, spans []*Span, ctx Context) []string {
	if ctx.BytesPerLine <= 0 {
		ctx.BytesPerLine = 16
	}
	b := &renderBuilder{data: data, ctx: ctx}
	b.renderSpans(spans, 0)
	return b.lines
}

type renderBuilder struct {
	data         []byte
	ctx          Context
	lines        []string
	bytesEmitted int
}

func (b *renderBuilder) renderSpans(spans []*Span, indent int) {
	i := 0
	for i < len(spans) {
		s := spans[i]
		switch s.Kind {
		case KindMessage:
			b.emitLine(indent, fmt.Sprintf("[%d] = %d-byte message {", s.FieldNumber, s.End-s.Begin))

			visible := s.Children
			s.truncated = false
			for idx, child := range s.Children {
				if child.Begin >= b.ctx.SoftLimit {
					s.truncated = true
					visible = s.Children[:idx]
					break
				}
			}
			b.renderSpans(visible, indent+1)

			closing := "}"
			if s.truncated {
				closing = "…}"
			}
			b.emitLine(indent, closing)
			i++

		case KindBytes:
			b.emitMultiRow(indent, s.Begin, s.End, b.bytesInterpretation(s), s.Kind)
			i++

		case KindGap:
			b.emitMultiRow(indent, s.Begin, s.End, "", s.Kind)
			i++

		default: // scalar: pack consecutive scalars into shared rows
			j := i
			rowBegin := s.Begin
			rowEnd := s.Begin
			var interps []string
			for j < len(spans) {
				cur := spans[j]
				if cur.Kind == KindMessage || cur.Kind == KindBytes || cur.Kind == KindGap {
					break
				}
				if rowEnd-rowBegin+(cur.End-cur.Begin) > b.ctx.BytesPerLine && rowEnd > rowBegin {
					break
				}
				rowEnd = cur.End
				interps = append(interps, b.scalarInterpretation(cur))
				j++
			}
			b.emitRow(indent, rowBegin, b.data[rowBegin:rowEnd], strings.Join(interps, "; "))
			i = j
		}
	}
}

// emitMultiRow splits a [begin,end) range that may exceed BytesPerLine
// across as many rows as needed. The interpretation text is only shown
// beside the first row; for a Gap, each row instead shows its own
// printable-character rendering (§4.7's "no left-hand interpretation").
func (b *renderBuilder) emitMultiRow(indent, begin, end int, interp string, kind Kind) {
	first := true
	for pos := begin; pos < end; pos += b.ctx.BytesPerLine {
		rowEnd := pos + b.ctx.BytesPerLine
		if rowEnd > end {
			rowEnd = end
		}
		text := ""
		if kind == KindGap {
			text = rawGlyphString(b.data[pos:rowEnd])
		} else if first {
			text = interp
		}
		b.emitRow(indent, pos, b.data[pos:rowEnd], text)
		first = false
	}
}

func (b *renderBuilder) emitRow(indent, offset int, bytes []byte, interp string) {
	if b.bytesEmitted >= b.ctx.SoftLimit && interp != "" {
		interp = "…"
	}
	line := fmt.Sprintf("%06x  %s  %s", offset, hexColumns(bytes, b.ctx.BytesPerLine), interp)
	b.emitLine(indent, strings.TrimRight(line, " "))
	b.bytesEmitted += len(bytes)
}

func (b *renderBuilder) emitLine(indent int, text string) {
	b.lines = append(b.lines, strings.Repeat("  ", indent)+text)
}

func hexColumns(bytes []byte, bytesPerLine int) string {
	var sb strings.Builder
	for i := 0; i < bytesPerLine; i++ {
		if i > 0 {
			sb.WriteByte(' ')
		}
		if i < len(bytes) {
			fmt.Fprintf(&sb, "%02X", bytes[i])
		} else {
			sb.WriteString("  ")
		}
	}
	return sb.String()
}

func (b *renderBuilder) scalarInterpretation(s *Span) string {
	switch s.Kind {
	case KindVarint:
		return formatVarintInterpretation(s.FieldNumber, s.VarintValue)
	case KindFixed32:
		return formatFixed32Interpretation(s.FieldNumber, s.Fixed32Value)
	case KindFixed64:
		return formatFixed64Interpretation(s.FieldNumber, s.Fixed64Value)
	default:
		return ""
	}
}

func (b *renderBuilder) bytesInterpretation(s *Span) string {
	payload := s.Payload
	if s.utf8Computed {
		if s.utf8Chars >= 0 {
			return fmt.Sprintf("[%d] = %d-char UTF-8: %s", s.FieldNumber, s.utf8Chars, formatUTF8Display(payload))
		}
		return fmt.Sprintf("[%d] = %d byte(s): %s", s.FieldNumber, len(payload), rawGlyphString(payload))
	}
	count := ValidateUTF8(payload)
	s.utf8Chars = count
	s.utf8Computed = true
	if count >= 0 {
		return fmt.Sprintf("[%d] = %d-char UTF-8: %s", s.FieldNumber, count, formatUTF8Display(payload))
	}
	return fmt.Sprintf("[%d] = %d byte(s): %s", s.FieldNumber, len(payload), rawGlyphString(payload))
}

func formatVarintInterpretation(fieldNumber int32, raw uint64) string {
	parts := []string{fmt.Sprintf("uint64{%d}", raw)}
	if raw&(1<<63) != 0 {
		parts = append(parts, fmt.Sprintf("int64{%d}", int64(raw)))
	}
	parts = append(parts, fmt.Sprintf("sint64{%d}", wf.DecodeZigZag64(raw)))
	if raw == 0 || raw == 1 {
		parts = append(parts, fmt.Sprintf("bool{%t}", raw == 1))
	}
	return fmt.Sprintf("[%d] = %s", fieldNumber, strings.Join(parts, " | "))
}

func formatFixed32Interpretation(fieldNumber int32, raw uint32) string {
	parts := []string{
		fmt.Sprintf("float{%g}", math.Float32frombits(raw)),
		fmt.Sprintf("fixed32{%d}", raw),
	}
	if raw&0x80000000 != 0 {
		parts = append(parts, fmt.Sprintf("sfixed32{%d}", int32(raw)))
	}
	return fmt.Sprintf("[%d] = %s", fieldNumber, strings.Join(parts, " | "))
}

func formatFixed64Interpretation(fieldNumber int32, raw uint64) string {
	parts := []string{
		fmt.Sprintf("double{%g}", math.Float64frombits(raw)),
		fmt.Sprintf("fixed64{%d}", raw),
	}
	if raw&0x8000000000000000 != 0 {
		parts = append(parts, fmt.Sprintf("sfixed64{%d}", int64(raw)))
	}
	return fmt.Sprintf("[%d] = %s", fieldNumber, strings.Join(parts, " | "))
}

func rawGlyphString(data []byte) string {
	var sb strings.Builder
	for _, c := range data {
		sb.WriteRune(printableGlyph(c))
	}
	return sb.String()
}

func formatUTF8Display(data []byte) string {
	var sb strings.Builder
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r >= 0x80 && r <= 0x9F {
			sb.WriteRune(c1Glyph(byte(r)))
		} else {
			sb.WriteRune(r)
		}
		i += size
	}
	return sb.String()
}

// ValidateUTF8 implements §4.7's single-pass validator: on success it
// returns the decoded character count (>= 0). On the first invalid
// sequence (a bad lead byte, a truncated tail, an overlong encoding, an
// encoded surrogate, or a codepoint above U+10FFFF) it returns
// -(charsBeforeFailure + 1), which is always strictly negative even when
// the failure occurs on the very first byte — distinguishing "invalid,
// zero valid chars precede it" from the valid empty string.
func ValidateUTF8(data []byte) int {
	count := 0
	i := 0
	for i < len(data) {
		b0 := data[i]
		switch {
		case b0 < 0x80:
			i++

		case b0 >= 0xC2 && b0 <= 0xDF:
			if i+1 >= len(data) || !isContinuation(data[i+1]) {
				return -(count + 1)
			}
			i += 2

		case b0 >= 0xE0 && b0 <= 0xEF:
			if i+2 >= len(data) || !isContinuation(data[i+1]) || !isContinuation(data[i+2]) {
				return -(count + 1)
			}
			cp := int(b0&0x0F)<<12 | int(data[i+1]&0x3F)<<6 | int(data[i+2]&0x3F)
			if cp < 0x800 || (cp >= 0xD800 && cp <= 0xDFFF) {
				return -(count + 1)
			}
			i += 3

		case b0 >= 0xF0 && b0 <= 0xF4:
			if i+3 >= len(data) || !isContinuation(data[i+1]) || !isContinuation(data[i+2]) || !isContinuation(data[i+3]) {
				return -(count + 1)
			}
			cp := int(b0&0x07)<<18 | int(data[i+1]&0x3F)<<12 | int(data[i+2]&0x3F)<<6 | int(data[i+3]&0x3F)
			if cp < 0x10000 || cp > 0x10FFFF {
				return -(count + 1)
			}
			i += 4

		default: // lead byte in [0x80,0xC1] or >= 0xF5
			return -(count + 1)
		}
		count++
	}
	return count
}

func isContinuation(b byte) bool {
	return b >= 0x80 && b <= 0xBF
}
