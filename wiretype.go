// Package wf implements a codec for a protobuf-compatible tag-length-value
// wire format, driven by a static, compile-time-registered field descriptor
// list rather than a separate schema compiler.
package wf

import "fmt"

// WireType is the 3-bit classifier carried in every tag that tells a parser
// how to locate the end of a value without knowing the field's declared type.
type WireType uint8

const (
	WireVarint WireType = 0
	WireFixed64 WireType = 1
	WireBytes   WireType = 2
	// WireStartGroup and WireEndGroup are the legacy group wire types.
	// No serializer produced by this package emits them; a parser rejects
	// them wherever it would otherwise skip an unknown field.
	WireStartGroup WireType = 3
	WireEndGroup   WireType = 4
	WireFixed32    WireType = 5
	// WireReserved1 and WireReserved2 are unused wire-type codes, rejected
	// on parse the same way as the legacy group types.
	WireReserved1 WireType = 6
	WireReserved2 WireType = 7
)

func (w WireType) String() string {
	switch w {
	case WireVarint:
		return "varint"
	case WireFixed64:
		return "fixed64"
	case WireBytes:
		return "bytes"
	case WireStartGroup:
		return "start_group"
	case WireEndGroup:
		return "end_group"
	case WireFixed32:
		return "fixed32"
	default:
		return fmt.Sprintf("reserved(%d)", uint8(w))
	}
}

// Skippable reports whether a parser can skip a value of this wire type
// without knowing the field's declared type. Legacy group types and the
// reserved codes are never skippable.
func (w WireType) Skippable() bool {
	switch w {
	case WireVarint, WireFixed64, WireBytes, WireFixed32:
		return true
	default:
		return false
	}
}
