package wf

import (
	"math"
	"reflect"
)

// sizeScalar returns the wire size of a leaf value already extracted into
// v. Message-kind scalars are sized by the caller (size.go), since that
// requires recursing into the registry.
func sizeScalar(s scalarType, v reflect.Value) int64 {
	switch s {
	case scalarUvarint:
		return int64(SizeUvarint(v.Uint()))
	case scalarVarint:
		return int64(SizeVarint(v.Int()))
	case scalarZigZag32:
		return int64(SizeUvarint(uint64(EncodeZigZag32(int32(v.Int())))))
	case scalarZigZag64:
		return int64(SizeUvarint(EncodeZigZag64(v.Int())))
	case scalarBool:
		return 1
	case scalarFixed32, scalarFloat32:
		return 4
	case scalarFixed64, scalarFloat64:
		return 8
	case scalarBytes:
		n := len(v.Bytes())
		return int64(SizeUvarint(uint64(n)) + n)
	case scalarString:
		n := len(v.String())
		return int64(SizeUvarint(uint64(n)) + n)
	default:
		panic("wf: sizeScalar called on non-leaf scalar type")
	}
}

// appendScalar writes v's wire encoding to buf. The Go kind of v (signed vs
// unsigned) is consulted for fixed32/fixed64, since the scalar type alone
// only fixes the wire type, not the sign.
func appendScalar(buf []byte, s scalarType, v reflect.Value) []byte {
	switch s {
	case scalarUvarint:
		return AppendUvarint(buf, v.Uint())
	case scalarVarint:
		return AppendVarint(buf, v.Int())
	case scalarZigZag32:
		return AppendUvarint(buf, uint64(EncodeZigZag32(int32(v.Int()))))
	case scalarZigZag64:
		return AppendUvarint(buf, EncodeZigZag64(v.Int()))
	case scalarBool:
		return AppendBool(buf, v.Bool())
	case scalarFixed32:
		if isSignedKind(v.Kind()) {
			return AppendFixed32(buf, uint32(v.Int()))
		}
		return AppendFixed32(buf, uint32(v.Uint()))
	case scalarFixed64:
		if isSignedKind(v.Kind()) {
			return AppendFixed64(buf, uint64(v.Int()))
		}
		return AppendFixed64(buf, v.Uint())
	case scalarFloat32:
		return AppendFloat32(buf, float32(v.Float()))
	case scalarFloat64:
		return AppendFloat64(buf, v.Float())
	case scalarBytes:
		return AppendBytes(buf, v.Bytes())
	case scalarString:
		return AppendString(buf, v.String())
	default:
		panic("wf: appendScalar called on non-leaf scalar type")
	}
}

func isSignedKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	default:
		return false
	}
}

// setVarintLike stores a decoded varint-family raw value into v according
// to s, choosing SetInt/SetUint/SetBool as appropriate.
func setVarintLike(v reflect.Value, s scalarType, raw uint64) {
	switch s {
	case scalarUvarint:
		v.SetUint(raw)
	case scalarVarint:
		v.SetInt(int64(raw))
	case scalarZigZag32:
		v.SetInt(int64(DecodeZigZag32(uint32(raw))))
	case scalarZigZag64:
		v.SetInt(DecodeZigZag64(raw))
	case scalarBool:
		v.SetBool(DecodeBool(raw))
	default:
		panic("wf: setVarintLike called on non-varint scalar type")
	}
}

// setFixed32Like stores a decoded fixed32 raw value into v, dispatching on
// v's own Go kind (sfixed32, fixed32, or float).
func setFixed32Like(v reflect.Value, raw uint32) {
	switch v.Kind() {
	case reflect.Float32:
		v.SetFloat(float64(math.Float32frombits(raw)))
	default:
		if isSignedKind(v.Kind()) {
			v.SetInt(int64(int32(raw)))
		} else {
			v.SetUint(uint64(raw))
		}
	}
}

// setFixed64Like is the fixed64 counterpart of setFixed32Like.
func setFixed64Like(v reflect.Value, raw uint64) {
	switch v.Kind() {
	case reflect.Float64:
		v.SetFloat(math.Float64frombits(raw))
	default:
		if isSignedKind(v.Kind()) {
			v.SetInt(int64(raw))
		} else {
			v.SetUint(raw)
		}
	}
}

func setBytesLike(v reflect.Value, s scalarType, raw []byte) {
	switch s {
	case scalarBytes:
		v.SetBytes(raw)
	case scalarString:
		v.SetString(string(raw))
	default:
		panic("wf: setBytesLike called on non-bytes scalar type")
	}
}
