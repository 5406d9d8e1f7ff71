package wf

import "reflect"

// appendRecord is the SerializeEngine: it walks v's registered field
// descriptor list and appends each present field's tag and value to buf.
// The precondition (enforced by callers in api.go) is that buf has already
// been sized by EncodedSize; under that precondition this function cannot
// fail and performs no bounds checking of its own, per §4.4.
func appendRecord(buf []byte, v reflect.Value) []byte {
	rec := lookup(v.Type())
	if rec == nil {
		panic(ErrNotRegistered)
	}
	for _, f := range rec.fields {
		buf = appendField(buf, f, v)
	}
	return buf
}

func appendField(buf []byte, f *field, rec reflect.Value) []byte {
	switch f.kind {
	case kindScalar:
		buf = append(buf, f.tag...)
		return appendScalar(buf, f.scalar, f.value(rec, false))

	case kindOptional:
		v := f.value(rec, false)
		if v.IsNil() {
			return buf
		}
		buf = append(buf, f.tag...)
		return appendScalar(buf, f.scalar, v.Elem())

	case kindBox:
		v := f.value(rec, false)
		if v.IsNil() {
			return buf
		}
		inner := v.Elem()
		payload := sizeRecord(inner)
		buf = append(buf, f.tag...)
		buf = AppendUvarint(buf, uint64(payload))
		return appendRecord(buf, inner)

	case kindByteView:
		v := f.value(rec, false)
		if v.IsNil() {
			return buf
		}
		buf = append(buf, f.tag...)
		return appendScalar(buf, f.scalar, v)

	case kindRepeated:
		return appendRepeated(buf, f, f.value(rec, false))

	case kindMap:
		v := f.value(rec, false)
		iter := v.MapRange()
		for iter.Next() {
			buf = appendMapEntry(buf, f, iter.Key(), iter.Value())
		}
		return buf

	default:
		panic("wf: unhandled field kind in appendField")
	}
}

func appendRepeated(buf []byte, f *field, v reflect.Value) []byte {
	n := v.Len()
	if n == 0 {
		return buf
	}

	if f.scalar == scalarMessage {
		for i := 0; i < n; i++ {
			inner := elemMessageValue(v.Index(i))
			payload := sizeRecord(inner)
			buf = append(buf, f.tag...)
			buf = AppendUvarint(buf, uint64(payload))
			buf = appendRecord(buf, inner)
		}
		return buf
	}

	if f.isPackedRepeated() {
		var payload int64
		for i := 0; i < n; i++ {
			payload += sizeScalar(f.scalar, v.Index(i))
		}
		buf = append(buf, f.tag...)
		buf = AppendUvarint(buf, uint64(payload))
		for i := 0; i < n; i++ {
			buf = appendScalar(buf, f.scalar, v.Index(i))
		}
		return buf
	}

	for i := 0; i < n; i++ {
		buf = append(buf, f.tag...)
		buf = appendScalar(buf, f.scalar, v.Index(i))
	}
	return buf
}
