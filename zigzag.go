package wf

// EncodeZigZag32 maps a signed 32-bit integer to an unsigned integer such
// that small-magnitude values (positive or negative) map to small unsigned
// values, per original_source/pb/codec/zigzag.h.
func EncodeZigZag32(n int32) uint32 {
	return uint32(n<<1) ^ uint32(n>>31)
}

// DecodeZigZag32 is the inverse of EncodeZigZag32.
func DecodeZigZag32(u uint32) int32 {
	return int32(u>>1) ^ -int32(u&1)
}

// EncodeZigZag64 is the 64-bit counterpart of EncodeZigZag32.
func EncodeZigZag64(n int64) uint64 {
	return uint64(n<<1) ^ uint64(n>>63)
}

// DecodeZigZag64 is the inverse of EncodeZigZag64.
func DecodeZigZag64(u uint64) int64 {
	return int64(u>>1) ^ -int64(u&1)
}
