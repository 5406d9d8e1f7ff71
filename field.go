package wf

import "reflect"

// fieldKind classifies how a field's storage relates to presence and to
// the wire, per SPEC_FULL.md's field-wrapper taxonomy.
type fieldKind uint8

const (
	kindScalar   fieldKind = iota // plain value, always "present"
	kindOptional                  // pointer to scalar; present iff non-nil
	kindBox                       // pointer to nested record; present iff non-nil
	kindByteView                  // []byte; present iff non-nil (distinct from empty)
	kindRepeated                  // slice of scalar or nested record
	kindMap                       // map[K]V, serialized as repeated KeyedPair entries
)

// scalarType names the wire-relevant flavor of a leaf value, independent of
// its exact Go type.
type scalarType uint8

const (
	scalarUvarint scalarType = iota
	scalarVarint             // signed, sign-extended before varint
	scalarZigZag32
	scalarZigZag64
	scalarBool
	scalarFixed32
	scalarFixed64
	scalarFloat32
	scalarFloat64
	scalarBytes
	scalarString
	scalarMessage
)

func (s scalarType) wireType() WireType {
	switch s {
	case scalarUvarint, scalarVarint, scalarZigZag32, scalarZigZag64, scalarBool:
		return WireVarint
	case scalarFixed32, scalarFloat32:
		return WireFixed32
	case scalarFixed64, scalarFloat64:
		return WireFixed64
	case scalarBytes, scalarString, scalarMessage:
		return WireBytes
	default:
		panic("wf: unhandled scalar type")
	}
}

// packable reports whether a container of this scalar type is eligible for
// packed-repeated encoding (invariant I2): varint, fixed32 or fixed64 wire
// types only — never bytes, strings, nested messages, or pairs.
func (s scalarType) packable() bool {
	switch s.wireType() {
	case WireVarint, WireFixed32, WireFixed64:
		return true
	default:
		return false
	}
}

// field is the static descriptor for one struct field: its wire field
// number, its kind and scalar flavor, and how to locate its storage inside
// a record value. Descriptors are computed once by Register and never
// change afterward.
type field struct {
	number int32
	name   string
	index  []int // reflect.Value.FieldByIndex path

	kind   fieldKind
	scalar scalarType // meaningful for scalar/optional/box/byteView/repeated

	elemType reflect.Type // message element type, for kindBox/kindRepeated of messages

	unpacked bool // explicit "unpacked" tag override

	// map-only:
	mapKeyScalar scalarType
	mapValScalar scalarType
	mapValType   reflect.Type // set when the map value is a nested message

	tag       []byte // precomputed EncodeTag(number, wireTypeForSerialization())
	keyTag    []byte // precomputed tag for map entry field 1
	valueTag  []byte // precomputed tag for map entry field 2
}

// isPackedRepeated reports whether this field emits as a single
// length-delimited payload of concatenated element encodings.
func (f *field) isPackedRepeated() bool {
	return f.kind == kindRepeated && !f.unpacked && f.scalar.packable()
}

// wireTypeForSerialization resolves FieldModel's rule: packed-repeated
// fields serialize as length-delimited; unpacked-repeated fields serialize
// per-element using the element's own wire type; everything else uses its
// own wire type.
func (f *field) wireTypeForSerialization() WireType {
	if f.kind == kindMap {
		return WireBytes
	}
	if f.isPackedRepeated() {
		return WireBytes
	}
	return f.scalar.wireType()
}

// value locates this field's reflect.Value within rec. When alloc is true it
// allocates through intermediate pointers as needed and, if the field itself
// is a nil pointer, allocates its target too (used by the parser to lazily
// construct optional/box wrappers on first write, per §4.5).
func (f *field) value(rec reflect.Value, alloc bool) reflect.Value {
	v := rec
	for _, i := range f.index {
		if v.Kind() == reflect.Pointer {
			if v.IsNil() {
				if !alloc {
					return reflect.Value{}
				}
				v.Set(reflect.New(v.Type().Elem()))
			}
			v = v.Elem()
		}
		v = v.Field(i)
	}
	if alloc && v.Kind() == reflect.Pointer && v.IsNil() {
		v.Set(reflect.New(v.Type().Elem()))
	}
	return v
}
