package wf

import "reflect"

// A KeyedPair presents a map entry as a two-field submessage: field 1 is
// the key, field 2 is the value. Map containers are simply repeated
// KeyedPair entries on the wire — this file is the adapter that lets
// size.go, serialize.go, and parse.go treat "map[K]V" the same way they
// treat any other repeated nested message, per §4.2 and
// original_source/pb/codec/map_field_entry.h.

// sizeMapEntry returns the size of one map entry's length prefix plus its
// payload (key + value, each with its own field-1/field-2 tag), not counting
// the entry's own outer tag.
func sizeMapEntry(f *field, key, val reflect.Value) int64 {
	entry := int64(len(f.keyTag)) + sizeScalar(f.mapKeyScalar, key)
	entry += int64(len(f.valueTag)) + sizeMapValue(f, val)
	length := int64(SizeUvarint(uint64(entry))) + entry
	return length
}

func sizeMapValue(f *field, val reflect.Value) int64 {
	if f.mapValScalar == scalarMessage {
		payload := sizeRecord(elemMessageValue(val))
		return int64(SizeUvarint(uint64(payload))) + payload
	}
	return sizeScalar(f.mapValScalar, val)
}

// appendMapEntry writes one complete map entry (outer tag, entry length,
// key field, value field) to buf.
func appendMapEntry(buf []byte, f *field, key, val reflect.Value) []byte {
	entry := int64(len(f.keyTag)) + sizeScalar(f.mapKeyScalar, key)
	entry += int64(len(f.valueTag)) + sizeMapValue(f, val)

	buf = append(buf, f.tag...)
	buf = AppendUvarint(buf, uint64(entry))
	buf = append(buf, f.keyTag...)
	buf = appendScalar(buf, f.mapKeyScalar, key)
	buf = append(buf, f.valueTag...)
	buf = appendMapValue(buf, f, val)
	return buf
}

func appendMapValue(buf []byte, f *field, val reflect.Value) []byte {
	if f.mapValScalar == scalarMessage {
		payload := sizeRecord(elemMessageValue(val))
		buf = AppendUvarint(buf, uint64(payload))
		return appendRecord(buf, elemMessageValue(val))
	}
	return appendScalar(buf, f.mapValScalar, val)
}

// parseMapEntry parses one KeyedPair payload (the bytes strictly between a
// map field's length prefix, i.e. data is exactly the entry's contents) and
// stores the decoded key/value into m, a reflect.Value of the map itself.
// Consistent with merge semantics (I6), a repeated key overwrites: Go map
// assignment already gives us last-wins for free.
func parseMapEntry(f *field, data []byte, depth int, m reflect.Value) bool {
	keyType := m.Type().Key()
	valType := m.Type().Elem()

	key := reflect.New(keyType).Elem()
	valPtr := reflect.New(valType)
	val := valPtr.Elem()

	pos := 0
	for pos < len(data) {
		fieldNumber, wireType, n, ok := ConsumeTag(data[pos:])
		if !ok {
			return false
		}
		pos += n
		switch fieldNumber {
		case 1:
			consumed, ok := parseLeafInto(key, f.mapKeyScalar, wireType, data[pos:], depth)
			if !ok {
				return false
			}
			pos += consumed
		case 2:
			if f.mapValScalar == scalarMessage {
				target := val
				if valType.Kind() == reflect.Pointer {
					if val.IsNil() {
						val.Set(reflect.New(valType.Elem()))
					}
					target = val.Elem()
				}
				if wireType != WireBytes {
					return false
				}
				n, ok := parseNestedInto(target, data[pos:], depth)
				if !ok {
					return false
				}
				pos += n
				continue
			}
			consumed, ok := parseLeafInto(val, f.mapValScalar, wireType, data[pos:], depth)
			if !ok {
				return false
			}
			pos += consumed
		default:
			n, ok := skipValue(wireType, data[pos:], depth)
			if !ok {
				return false
			}
			pos += n
		}
	}
	m.SetMapIndex(key, val)
	return true
}
