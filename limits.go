package wf

// Size and structural limits, grounded on original_source/pb/codec/limits.h.
const (
	// MaxSerializedSize is the largest number of bytes a single top-level
	// record may encode to.
	MaxSerializedSize = 64 << 20 // 64 MiB

	// MaxMessageNestingDepth bounds recursive descent into length-delimited
	// nested records during parse.
	MaxMessageNestingDepth = 100

	// maxFieldNumber is 2^29 - 1, the largest field number the tag's 29
	// upper bits can hold.
	maxFieldNumber = 1<<29 - 1

	// reservedFieldNumberLow and reservedFieldNumberHigh bound the field
	// number window carved out for implementation use, [19000, 19999].
	reservedFieldNumberLow  = 19000
	reservedFieldNumberHigh = 19999
)

// IsValidFieldNumber reports whether n is usable as a wire field number:
// in [1, 2^29-1] and outside the reserved window [19000, 19999].
func IsValidFieldNumber(n int32) bool {
	if n < 1 || n > maxFieldNumber {
		return false
	}
	if n >= reservedFieldNumberLow && n <= reservedFieldNumberHigh {
		return false
	}
	return true
}

// maxPayloadSize is the largest length-delimited payload size that could
// legally appear within a MaxSerializedSize-bounded stream: the overall
// budget minus one byte for the shortest tag and five bytes for the longest
// length varint that precede it.
const maxPayloadSize = MaxSerializedSize - 1 - 5
