// Package inspect implements the forensic inspector and renderer: given
// arbitrary bytes of unknown provenance, it recovers a tree of probable
// wire-format spans (ScanPermissive, ScanStrict) and turns that tree into a human-readable hex
// dump with best-effort value interpretations (Render).
package inspect

// Kind discriminates the variant a Span represents.
type Kind uint8

const (
	KindVarint Kind = iota
	KindFixed32
	KindFixed64
	KindBytes
	KindMessage
	// KindGap marks an Unknown-gap: a byte range that the permissive
	// scanner could not attribute to any plausible tag+value pair.
	KindGap
)

// Span is a contiguous range of the source buffer classified as one wire
// element, or as an unknown gap. Spans borrow directly from the buffer
// that was scanned; they must not outlive it (§5's resource policy).
type Span struct {
	Kind  Kind
	Begin int
	End   int

	// FieldNumber is meaningful for every Kind except KindGap.
	FieldNumber int32

	// Payload, populated according to Kind:
	VarintValue  uint64 // KindVarint
	Fixed32Value uint32 // KindFixed32
	Fixed64Value uint64 // KindFixed64
	Payload      []byte // KindBytes: the raw value bytes (aliases source)
	Children     []*Span // KindMessage: the nested field spans

	// utf8Chars caches the result of the UTF-8 validity scan for a
	// KindBytes span: >=0 is a valid character count, <0 is ValidateUTF8's
	// -(charsBeforeFailure + 1) for an invalid sequence. Computed lazily by
	// the renderer.
	utf8Chars    int
	utf8Computed bool

	// truncated marks a KindMessage span whose child list ran past the
	// rendering context's soft byte limit, so Render stopped emitting
	// fields partway through. Set lazily by the renderer, mirroring
	// original_source/pb/inspection.cc's message_dump_is_incomplete: the
	// closing brace gets an ellipsis instead of the field list running to
	// its true end.
	truncated bool
}

func (s *Span) isFieldSpan() bool {
	return s.Kind != KindGap
}
