package wf

import "reflect"

// parseFields is the ParseEngine: it walks data as a sequence of tag+value
// pairs, dispatching known field numbers to rec's registered descriptors
// via binary search (invariant I1 guarantees the descriptor list supports
// this) and skipping unknown ones. It never advances past len(data) and
// signals failure with a single boolean rather than a distinguishable
// error, per §4.5/§7.
func parseFields(data []byte, depth int, rec reflect.Value) bool {
	desc := lookup(rec.Type())
	if desc == nil {
		panic(ErrNotRegistered)
	}
	pos := 0
	for pos < len(data) {
		fieldNumber, wireType, n, ok := ConsumeTag(data[pos:])
		if !ok {
			return false
		}
		pos += n

		f := findField(desc, fieldNumber)
		if f == nil {
			n, ok := skipValue(wireType, data[pos:], depth)
			if !ok {
				return false
			}
			pos += n
			continue
		}

		n, ok = parseFieldValue(f, wireType, data[pos:], depth, rec)
		if !ok {
			return false
		}
		pos += n
	}
	return true
}

// findField performs a binary search on field number (§4.5) against the
// strictly monotonic descriptor list.
func findField(desc *record, number int32) *field {
	fields := desc.fields
	lo, hi := 0, len(fields)-1
	for lo <= hi {
		mid := (lo + hi) / 2
		switch {
		case fields[mid].number == number:
			return fields[mid]
		case fields[mid].number < number:
			lo = mid + 1
		default:
			hi = mid - 1
		}
	}
	return nil
}

func parseFieldValue(f *field, wireType WireType, data []byte, depth int, rec reflect.Value) (int, bool) {
	switch f.kind {
	case kindScalar:
		if wireType != f.scalar.wireType() {
			return skipValue(wireType, data, depth)
		}
		return parseLeafInto(f.value(rec, false), f.scalar, wireType, data, depth)

	case kindOptional:
		if wireType != f.scalar.wireType() {
			return skipValue(wireType, data, depth)
		}
		v := f.value(rec, true)
		return parseLeafInto(v.Elem(), f.scalar, wireType, data, depth)

	case kindBox:
		if wireType != WireBytes {
			return skipValue(wireType, data, depth)
		}
		v := f.value(rec, true)
		return parseNestedInto(v.Elem(), data, depth)

	case kindByteView:
		if wireType != WireBytes {
			return skipValue(wireType, data, depth)
		}
		return parseLeafInto(f.value(rec, false), f.scalar, wireType, data, depth)

	case kindRepeated:
		return parseRepeatedValue(f, wireType, data, depth, rec)

	case kindMap:
		if wireType != WireBytes {
			return skipValue(wireType, data, depth)
		}
		payload, n, ok := ConsumeBytes(data)
		if !ok {
			return 0, false
		}
		if depth+1 > MaxMessageNestingDepth {
			return 0, false
		}
		m := f.value(rec, false)
		if m.IsNil() {
			m.Set(reflect.MakeMap(m.Type()))
		}
		if !parseMapEntry(f, payload, depth+1, m) {
			return 0, false
		}
		return n, true

	default:
		panic("wf: unhandled field kind in parseFieldValue")
	}
}

// parseLeafInto decodes a single scalar value of wireType from data into v.
func parseLeafInto(v reflect.Value, scalar scalarType, wireType WireType, data []byte, depth int) (int, bool) {
	switch wireType {
	case WireVarint:
		raw, n, ok := ConsumeUvarint(data)
		if !ok {
			return 0, false
		}
		setVarintLike(v, scalar, raw)
		return n, true
	case WireFixed32:
		raw, ok := ConsumeFixed32(data)
		if !ok {
			return 0, false
		}
		setFixed32Like(v, raw)
		return 4, true
	case WireFixed64:
		raw, ok := ConsumeFixed64(data)
		if !ok {
			return 0, false
		}
		setFixed64Like(v, raw)
		return 8, true
	case WireBytes:
		raw, n, ok := ConsumeBytes(data)
		if !ok {
			return 0, false
		}
		setBytesLike(v, scalar, raw)
		return n, true
	default:
		return 0, false
	}
}

// parseNestedInto reads a length-delimited payload from data and recurses
// into it as a nested record, enforcing the L1 nesting-depth limit.
func parseNestedInto(inner reflect.Value, data []byte, depth int) (int, bool) {
	payload, n, ok := ConsumeBytes(data)
	if !ok {
		return 0, false
	}
	if depth+1 > MaxMessageNestingDepth {
		return 0, false
	}
	if !parseFields(payload, depth+1, inner) {
		return 0, false
	}
	return n, true
}

// parseRepeatedValue implements the packed/unpacked parse asymmetry
// resolved in SPEC_FULL.md §12: a packed payload is accepted for any
// packing-eligible field regardless of that field's own serialization
// preference, and an unpacked (element-wise) tag is always accepted too.
func parseRepeatedValue(f *field, wireType WireType, data []byte, depth int, rec reflect.Value) (int, bool) {
	slice := f.value(rec, false)

	if f.scalar == scalarMessage {
		if wireType != WireBytes {
			return skipValue(wireType, data, depth)
		}
		payload, n, ok := ConsumeBytes(data)
		if !ok {
			return 0, false
		}
		if depth+1 > MaxMessageNestingDepth {
			return 0, false
		}
		elemType := slice.Type().Elem()
		newElem := reflect.New(f.elemType)
		if !parseFields(payload, depth+1, newElem.Elem()) {
			return 0, false
		}
		var toAppend reflect.Value
		if elemType.Kind() == reflect.Pointer {
			toAppend = newElem
		} else {
			toAppend = newElem.Elem()
		}
		slice.Set(reflect.Append(slice, toAppend))
		return n, true
	}

	if wireType == WireBytes && f.scalar.packable() {
		payload, n, ok := ConsumeBytes(data)
		if !ok {
			return 0, false
		}
		if !parsePackedElements(f, slice, payload) {
			return 0, false
		}
		return n, true
	}

	if wireType != f.scalar.wireType() {
		return skipValue(wireType, data, depth)
	}
	elem := reflect.New(slice.Type().Elem()).Elem()
	n, ok := parseLeafInto(elem, f.scalar, wireType, data, depth)
	if !ok {
		return 0, false
	}
	slice.Set(reflect.Append(slice, elem))
	return n, true
}

func parsePackedElements(f *field, slice reflect.Value, payload []byte) bool {
	elemType := slice.Type().Elem()
	wt := f.scalar.wireType()
	pos := 0
	for pos < len(payload) {
		elem := reflect.New(elemType).Elem()
		switch wt {
		case WireVarint:
			raw, n, ok := ConsumeUvarint(payload[pos:])
			if !ok {
				return false
			}
			setVarintLike(elem, f.scalar, raw)
			pos += n
		case WireFixed32:
			raw, ok := ConsumeFixed32(payload[pos:])
			if !ok {
				return false
			}
			setFixed32Like(elem, raw)
			pos += 4
		case WireFixed64:
			raw, ok := ConsumeFixed64(payload[pos:])
			if !ok {
				return false
			}
			setFixed64Like(elem, raw)
			pos += 8
		default:
			return false
		}
		slice.Set(reflect.Append(slice, elem))
	}
	return true
}

// skipValue consumes one value of the given wire type without interpreting
// it, per the skip-unknown-fields rule in §4.5. Legacy group wire types and
// the reserved codes are not skippable and always fail.
func skipValue(wireType WireType, data []byte, depth int) (int, bool) {
	switch wireType {
	case WireVarint:
		_, n, ok := ConsumeUvarint(data)
		return n, ok
	case WireFixed32:
		if len(data) < 4 {
			return 0, false
		}
		return 4, true
	case WireFixed64:
		if len(data) < 8 {
			return 0, false
		}
		return 8, true
	case WireBytes:
		_, n, ok := ConsumeBytes(data)
		return n, ok
	default:
		return 0, false
	}
}
