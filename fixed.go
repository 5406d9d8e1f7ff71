package wf

import (
	"encoding/binary"
	"math"
)

// AppendFixed32 appends the 4-byte little-endian encoding of value.
func AppendFixed32(buf []byte, value uint32) []byte {
	return binary.LittleEndian.AppendUint32(buf, value)
}

// AppendFixed64 appends the 8-byte little-endian encoding of value.
func AppendFixed64(buf []byte, value uint64) []byte {
	return binary.LittleEndian.AppendUint64(buf, value)
}

// ConsumeFixed32 reads a 4-byte little-endian integer from data[0:4].
func ConsumeFixed32(data []byte) (value uint32, ok bool) {
	if len(data) < 4 {
		return 0, false
	}
	return binary.LittleEndian.Uint32(data), true
}

// ConsumeFixed64 reads an 8-byte little-endian integer from data[0:8].
func ConsumeFixed64(data []byte) (value uint64, ok bool) {
	if len(data) < 8 {
		return 0, false
	}
	return binary.LittleEndian.Uint64(data), true
}

// AppendFloat32 appends value using the fixed32 wire type's IEEE 754 layout.
func AppendFloat32(buf []byte, value float32) []byte {
	return AppendFixed32(buf, math.Float32bits(value))
}

// AppendFloat64 appends value using the fixed64 wire type's IEEE 754 layout.
func AppendFloat64(buf []byte, value float64) []byte {
	return AppendFixed64(buf, math.Float64bits(value))
}

// ConsumeFloat32 is the inverse of AppendFloat32.
func ConsumeFloat32(data []byte) (value float32, ok bool) {
	bits, ok := ConsumeFixed32(data)
	if !ok {
		return 0, false
	}
	return math.Float32frombits(bits), true
}

// ConsumeFloat64 is the inverse of AppendFloat64.
func ConsumeFloat64(data []byte) (value float64, ok bool) {
	bits, ok := ConsumeFixed64(data)
	if !ok {
		return 0, false
	}
	return math.Float64frombits(bits), true
}
