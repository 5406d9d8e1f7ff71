package wf

// AppendBool appends value as a 1-byte varint (0 or 1).
func AppendBool(buf []byte, value bool) []byte {
	if value {
		return append(buf, 1)
	}
	return append(buf, 0)
}

// DecodeBool interprets a varint value: any nonzero bit pattern is true.
func DecodeBool(value uint64) bool {
	return value != 0
}
