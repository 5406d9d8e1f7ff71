package inspect

import (
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/vedadiyan/wf"
)

// kMaxPossibleTagSize is ceil(32/7): the most bytes a tag varint (29-bit
// field number plus 3-bit wire type) can legally occupy.
const kMaxPossibleTagSize = 5

// kMaxPossibleVarintSize is ceil(64/7).
const kMaxPossibleVarintSize = 10

// ScanPermissive scans data for plausible wire-format structure, sliding
// past anything that doesn't look like a valid tag+value pair and
// collecting those bytes into Unknown-gap spans. It always succeeds: the
// returned spans partition data exactly (P10).
func ScanPermissive(data []byte) []*Span {
	spans, _ := scanRecursive(data, 0, len(data), 0, true)
	return spans
}

// ScanStrict requires every byte of data to belong to a tag+value pair at
// the top level. It returns nil if data does not parse exactly as a single
// record (P9); a valid empty record returns a non-nil empty slice.
func ScanStrict(data []byte) []*Span {
	spans, ok := scanRecursive(data, 0, len(data), 0, false)
	if !ok {
		return nil
	}
	if spans == nil {
		spans = []*Span{}
	}
	return spans
}

// ScanStrictAsMessage is ScanStrict wrapped in a synthetic field-0 message
// span, matching original_source/pb/inspection.cc's ParseProbableMessage: a
// convenience for a caller that wants one root node to hand to Render
// rather than a bare field slice, used when the caller already believes the
// input is a single well-formed record (unlike cmd/dump, which never
// assumes that and always scans permissively).
func ScanStrictAsMessage(data []byte) (*Span, bool) {
	spans, ok := scanRecursive(data, 0, len(data), 0, false)
	if !ok {
		return nil, false
	}
	return &Span{Kind: KindMessage, Begin: 0, End: len(data), FieldNumber: 0, Children: spans}, true
}

// scanRecursive is the state machine from §4.6: SEEKING_TAG/GROW_GAP in
// permissive mode, or an all-or-nothing strict walk. ok is only ever false
// in strict mode, meaning "this byte range does not parse as a record".
func scanRecursive(data []byte, begin, end, nestingLevel int, permissive bool) (spans []*Span, ok bool) {
	pos := begin
	for pos < end {
		var tagBegin, tagEnd int
		var fieldNumber int32
		var wireType wf.WireType

		if permissive {
			var found bool
			tagBegin, tagEnd, fieldNumber, wireType, found = findNextValidTag(data, pos, end)
			if !found {
				spans = mergeOrAppendGap(spans, pos, end)
				return spans, true
			}
			if tagBegin != pos {
				spans = mergeOrAppendGap(spans, pos, tagBegin)
			}
		} else {
			fn, wt, n, tagOK := maybeParseTag(data[pos:end])
			if !tagOK {
				return nil, false
			}
			fieldNumber, wireType = fn, wt
			tagBegin, tagEnd = pos, pos+n
		}

		valueEnd, span, valOK := parseValueSpan(data, tagBegin, tagEnd, end, fieldNumber, wireType, nestingLevel, permissive)
		if !valOK {
			if !permissive {
				return nil, false
			}
			// Self-healing single-byte skip: treat just the byte at
			// tagBegin as unknown and resume seeking from the next one.
			spans = mergeOrAppendGap(spans, tagBegin, tagBegin+1)
			pos = tagBegin + 1
			continue
		}
		spans = append(spans, span)
		pos = valueEnd
	}
	return spans, true
}

func parseValueSpan(data []byte, tagBegin, tagEnd, end int, fieldNumber int32, wireType wf.WireType, nestingLevel int, permissive bool) (valueEnd int, span *Span, ok bool) {
	switch wireType {
	case wf.WireVarint:
		raw, n, ok2 := wf.ConsumeUvarint(data[tagEnd:end])
		if !ok2 || n > kMaxPossibleVarintSize {
			return 0, nil, false
		}
		return tagEnd + n, &Span{Kind: KindVarint, Begin: tagBegin, End: tagEnd + n, FieldNumber: fieldNumber, VarintValue: raw}, true

	case wf.WireFixed32:
		if end-tagEnd < 4 {
			return 0, nil, false
		}
		v, _ := wf.ConsumeFixed32(data[tagEnd:end])
		return tagEnd + 4, &Span{Kind: KindFixed32, Begin: tagBegin, End: tagEnd + 4, FieldNumber: fieldNumber, Fixed32Value: v}, true

	case wf.WireFixed64:
		if end-tagEnd < 8 {
			return 0, nil, false
		}
		v, _ := wf.ConsumeFixed64(data[tagEnd:end])
		return tagEnd + 8, &Span{Kind: KindFixed64, Begin: tagBegin, End: tagEnd + 8, FieldNumber: fieldNumber, Fixed64Value: v}, true

	case wf.WireBytes:
		length, n, ok2 := wf.ConsumeUvarint(data[tagEnd:end])
		if !ok2 || n > kMaxPossibleTagSize {
			return 0, nil, false
		}
		payloadBegin := tagEnd + n
		if length > uint64(end-payloadBegin) {
			return 0, nil, false
		}
		payloadEnd := payloadBegin + int(length)

		if nestingLevel < wf.MaxMessageNestingDepth {
			// The tentative nested-message attempt is always strict,
			// regardless of the outer scan's mode.
			if nested, nestedOK := scanRecursive(data, payloadBegin, payloadEnd, nestingLevel+1, false); nestedOK {
				return payloadEnd, &Span{Kind: KindMessage, Begin: tagBegin, End: payloadEnd, FieldNumber: fieldNumber, Children: nested}, true
			}
		}
		return payloadEnd, &Span{Kind: KindBytes, Begin: tagBegin, End: payloadEnd, FieldNumber: fieldNumber, Payload: data[payloadBegin:payloadEnd]}, true

	default:
		return 0, nil, false
	}
}

// findNextValidTag linearly scans forward from pos looking for the next
// byte offset at which maybeParseTag succeeds.
func findNextValidTag(data []byte, pos, end int) (tagBegin, tagEnd int, fieldNumber int32, wireType wf.WireType, ok bool) {
	for i := pos; i < end; i++ {
		fn, wt, n, tagOK := maybeParseTag(data[i:end])
		if tagOK {
			return i, i + n, fn, wt, true
		}
	}
	return 0, 0, 0, 0, false
}

// maybeParseTag implements the plausibility heuristic from §4.6: the tag
// varint must decode within kMaxPossibleTagSize bytes, the field number
// must be in the valid wire range, and the wire type must be one of the
// four skippable/parseable ones. It is cross-checked against protowire's
// independent tag decoder as a second opinion, per SPEC_FULL.md §10.
func maybeParseTag(data []byte) (fieldNumber int32, wireType wf.WireType, n int, ok bool) {
	fieldNumber, wireType, n, ok = wf.ConsumeTag(data)
	if !ok || n > kMaxPossibleTagSize {
		return 0, 0, 0, false
	}
	if !wf.IsValidFieldNumber(fieldNumber) {
		return 0, 0, 0, false
	}
	switch wireType {
	case wf.WireVarint, wf.WireFixed64, wf.WireBytes, wf.WireFixed32:
	default:
		return 0, 0, 0, false
	}

	pwNum, pwType, pwN := protowire.ConsumeTag(data)
	if pwN <= 0 || int32(pwNum) != fieldNumber || int(pwType) != int(wireType) || pwN != n {
		return 0, 0, 0, false
	}
	return fieldNumber, wireType, n, true
}

// mergeOrAppendGap extends the last span in place if it is an adjacent or
// overlapping Unknown-gap, or appends a new one, per §4.6's "adjacent
// gaps merge on emission" rule and inspection.cc's MergeOrAppendSpanAtEnd.
func mergeOrAppendGap(spans []*Span, begin, end int) []*Span {
	if begin >= end {
		return spans
	}
	if n := len(spans); n > 0 && spans[n-1].Kind == KindGap && spans[n-1].End >= begin {
		if end > spans[n-1].End {
			spans[n-1].End = end
		}
		return spans
	}
	return append(spans, &Span{Kind: KindGap, Begin: begin, End: end})
}
