package wf

import "fmt"

// EncodeTag packs a field number and wire type into a single varint-encoded
// tag: (field_number << 3) | wire_type.
func EncodeTag(fieldNumber int32, wireType WireType) (uint64, error) {
	if !IsValidFieldNumber(fieldNumber) {
		return 0, fmt.Errorf("wf: invalid field number %d", fieldNumber)
	}
	if wireType > WireFixed32 {
		return 0, fmt.Errorf("wf: invalid wire type %d", wireType)
	}
	return uint64(fieldNumber)<<3 | uint64(wireType), nil
}

// AppendTag appends the tag for (fieldNumber, wireType) to buf.
func AppendTag(buf []byte, fieldNumber int32, wireType WireType) []byte {
	tag, err := EncodeTag(fieldNumber, wireType)
	if err != nil {
		// Field numbers and wire types are validated at registration
		// time (see registry.go); a caller reaching here with an
		// unregistered descriptor has a programming error, not a
		// runtime data error.
		panic(err)
	}
	return AppendUvarint(buf, tag)
}

// SizeTag returns the number of bytes AppendTag would produce.
func SizeTag(fieldNumber int32) int {
	return SizeUvarint(uint64(fieldNumber) << 3)
}

// DecodeTag splits a raw tag varint value into its field number and wire
// type.
func DecodeTag(tag uint64) (fieldNumber int32, wireType WireType) {
	return int32(tag >> 3), WireType(tag & 0x7)
}

// ConsumeTag reads a tag varint from data[0] and splits it.
func ConsumeTag(data []byte) (fieldNumber int32, wireType WireType, n int, ok bool) {
	tag, n, ok := ConsumeUvarint(data)
	if !ok {
		return 0, 0, 0, false
	}
	fieldNumber, wireType = DecodeTag(tag)
	if fieldNumber < 1 {
		return 0, 0, 0, false
	}
	return fieldNumber, wireType, n, true
}
