package wf

// AppendBytes appends a length-delimited payload: a varint length followed
// by value's raw bytes.
func AppendBytes(buf []byte, value []byte) []byte {
	buf = AppendUvarint(buf, uint64(len(value)))
	return append(buf, value...)
}

// AppendString is the string counterpart of AppendBytes.
func AppendString(buf []byte, value string) []byte {
	buf = AppendUvarint(buf, uint64(len(value)))
	return append(buf, value...)
}

// ConsumeBytes reads a varint length followed by that many bytes from data,
// returning a slice that aliases data (a byte-view into the source buffer)
// and the total number of bytes consumed including the length prefix.
//
// The returned slice borrows from data; the caller must ensure data outlives
// any use of the result (see the byte-view lifetime note in SPEC_FULL.md).
func ConsumeBytes(data []byte) (value []byte, n int, ok bool) {
	length, hdr, ok := ConsumeUvarint(data)
	if !ok {
		return nil, 0, false
	}
	if length > maxPayloadSize {
		return nil, 0, false
	}
	end := hdr + int(length)
	if end < hdr || end > len(data) {
		return nil, 0, false
	}
	return data[hdr:end], end, true
}
