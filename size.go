package wf

import (
	"fmt"
	"reflect"
)

// EncodedSize returns the exact number of bytes Encode would produce for
// msg (a pointer to a registered struct), or a negative sentinel if the
// record would exceed MaxSerializedSize. It never allocates the output
// buffer itself — that is left to the caller, per §5's resource policy.
func EncodedSize(msg any) int64 {
	total := sizeRecord(checkedElem(msg))
	if total > MaxSerializedSize {
		return -1
	}
	return total
}

// sizeRecord is the SizeEngine's recursive fold: a depth-first walk of v's
// registered field descriptor list, summed as a 64-bit running total.
// Individual steps may transiently exceed 32 bits but the accumulation
// cannot overflow 63; only the outermost call (EncodedSize) compares the
// result against MaxSerializedSize, per §4.3.
func sizeRecord(v reflect.Value) int64 {
	rec := lookup(v.Type())
	if rec == nil {
		panic(fmt.Errorf("wf: %s: %w", v.Type(), ErrNotRegistered))
	}
	var total int64
	for _, f := range rec.fields {
		total += sizeField(f, v)
	}
	return total
}

func sizeField(f *field, rec reflect.Value) int64 {
	switch f.kind {
	case kindScalar:
		return int64(len(f.tag)) + sizeScalar(f.scalar, f.value(rec, false))

	case kindOptional:
		v := f.value(rec, false)
		if v.IsNil() {
			return 0
		}
		return int64(len(f.tag)) + sizeScalar(f.scalar, v.Elem())

	case kindBox:
		v := f.value(rec, false)
		if v.IsNil() {
			return 0
		}
		payload := sizeRecord(v.Elem())
		return int64(len(f.tag)) + int64(SizeUvarint(uint64(payload))) + payload

	case kindByteView:
		v := f.value(rec, false)
		if v.IsNil() {
			return 0
		}
		return int64(len(f.tag)) + sizeScalar(f.scalar, v)

	case kindRepeated:
		v := f.value(rec, false)
		n := v.Len()
		if n == 0 {
			return 0
		}
		if f.scalar == scalarMessage {
			var total int64
			for i := 0; i < n; i++ {
				payload := sizeRecord(elemMessageValue(v.Index(i)))
				total += int64(len(f.tag)) + int64(SizeUvarint(uint64(payload))) + payload
			}
			return total
		}
		if f.isPackedRepeated() {
			var payload int64
			for i := 0; i < n; i++ {
				payload += sizeScalar(f.scalar, v.Index(i))
			}
			return int64(len(f.tag)) + int64(SizeUvarint(uint64(payload))) + payload
		}
		var total int64
		for i := 0; i < n; i++ {
			total += int64(len(f.tag)) + sizeScalar(f.scalar, v.Index(i))
		}
		return total

	case kindMap:
		v := f.value(rec, false)
		if v.Len() == 0 {
			return 0
		}
		var total int64
		iter := v.MapRange()
		for iter.Next() {
			total += int64(len(f.tag)) + sizeMapEntry(f, iter.Key(), iter.Value())
		}
		return total

	default:
		panic("wf: unhandled field kind in sizeField")
	}
}

// elemMessageValue dereferences a slice/map element that may be either a
// nested struct value or a pointer to one.
func elemMessageValue(v reflect.Value) reflect.Value {
	if v.Kind() == reflect.Pointer {
		return v.Elem()
	}
	return v
}
