package wf

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
)

// record is the static field descriptor list for one registered Go struct
// type, sorted by field number. The parse engine relies on this order being
// strictly monotonic (invariant I1) to run a binary search.
type record struct {
	typ    reflect.Type
	fields []*field
}

var (
	registryMu sync.RWMutex
	registry   = map[reflect.Type]*record{}
)

// Register computes and caches the field descriptor list for T, deriving
// each field's wire type and emission rule from its Go type and its `wf`
// struct tag. It panics if two fields share a number, if numbers are not
// strictly increasing in declaration order, or if a field number or map key
// type is invalid — these are compile-time-checkable mistakes in the
// original design and are treated the same way here: a program that
// declares them is broken before it ever encodes or decodes anything.
//
// Call Register once per type, typically from an init function, mirroring
// the teacher's RegisterTypeFor[T]() convention.
func Register[T any]() {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		panic(fmt.Errorf("wf: Register requires a struct type, got %s", t))
	}

	rec := &record{typ: t}
	last := int32(0)
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		tagStr, ok := sf.Tag.Lookup("wf")
		if !ok {
			continue
		}
		f, err := buildField(sf, tagStr)
		if err != nil {
			panic(fmt.Errorf("wf: %s.%s: %w", t.Name(), sf.Name, err))
		}
		if f.number <= last {
			panic(fmt.Errorf("wf: %s.%s: field numbers must be strictly increasing (got %d after %d)", t.Name(), sf.Name, f.number, last))
		}
		last = f.number
		rec.fields = append(rec.fields, f)
	}

	registryMu.Lock()
	registry[t] = rec
	registryMu.Unlock()
}

// lookup returns the previously Register-ed descriptor list for t (a struct
// type, not a pointer), or nil if none exists.
func lookup(t reflect.Type) *record {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return registry[t]
}

func buildField(sf reflect.StructField, tagStr string) (*field, error) {
	parts := strings.Split(tagStr, ",")
	num, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return nil, fmt.Errorf("invalid field number in tag %q: %w", tagStr, err)
	}
	if !IsValidFieldNumber(int32(num)) {
		return nil, fmt.Errorf("field number %d out of range or reserved", num)
	}
	opts := map[string]bool{}
	for _, p := range parts[1:] {
		opts[strings.TrimSpace(p)] = true
	}

	f := &field{
		number: int32(num),
		name:   sf.Name,
		index:  sf.Index,
	}

	t := sf.Type
	switch t.Kind() {
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			// []byte is a byte-view scalar, not a repeated container of
			// individual bytes.
			f.kind = kindByteView
			f.scalar = scalarBytes
		} else {
			f.kind = kindRepeated
			f.unpacked = opts["unpacked"]
			elem := t.Elem()
			if elem.Kind() == reflect.Pointer {
				elem = elem.Elem()
			}
			if elem.Kind() == reflect.Struct {
				f.scalar = scalarMessage
				f.elemType = elem
			} else {
				st, err := scalarFor(elem, opts, "")
				if err != nil {
					return nil, err
				}
				f.scalar = st
			}
		}

	case reflect.Map:
		f.kind = kindMap
		keyScalar, err := scalarFor(t.Key(), opts, "key")
		if err != nil {
			return nil, err
		}
		if err := validateMapKeyScalar(keyScalar); err != nil {
			return nil, err
		}
		f.mapKeyScalar = keyScalar

		valElem := t.Elem()
		if valElem.Kind() == reflect.Pointer {
			valElem = valElem.Elem()
		}
		if valElem.Kind() == reflect.Struct {
			f.mapValScalar = scalarMessage
			f.mapValType = valElem
		} else {
			vs, err := scalarFor(t.Elem(), opts, "val")
			if err != nil {
				return nil, err
			}
			f.mapValScalar = vs
		}

	case reflect.Pointer:
		elem := t.Elem()
		if elem.Kind() == reflect.Struct {
			f.kind = kindBox
			f.scalar = scalarMessage
			f.elemType = elem
		} else {
			f.kind = kindOptional
			st, err := scalarFor(elem, opts, "")
			if err != nil {
				return nil, err
			}
			f.scalar = st
		}

	case reflect.Struct:
		return nil, fmt.Errorf("nested message fields must be pointers (*%s), not embedded values", t.Name())

	default:
		f.kind = kindScalar
		st, err := scalarFor(t, opts, "")
		if err != nil {
			return nil, err
		}
		f.scalar = st
	}

	if err := precomputeTags(f); err != nil {
		return nil, err
	}
	return f, nil
}

// scalarFor derives a scalarType from a Go leaf type plus tag hints. prefix
// selects which hint namespace applies ("", "key", or "val") so a single
// map field's tag can carry independent hints for its key and value, e.g.
// `wf:"5,map,keyzigzag,valfixed"`.
func scalarFor(t reflect.Type, opts map[string]bool, prefix string) (scalarType, error) {
	hint := func(name string) bool {
		if prefix != "" {
			return opts[prefix+name]
		}
		return opts[name]
	}
	switch t.Kind() {
	case reflect.Bool:
		return scalarBool, nil
	case reflect.String:
		return scalarString, nil
	case reflect.Float32:
		return scalarFloat32, nil
	case reflect.Float64:
		return scalarFloat64, nil
	case reflect.Int32, reflect.Int:
		switch {
		case hint("zigzag"):
			return scalarZigZag32, nil
		case hint("fixed"):
			return scalarFixed32, nil
		default:
			return scalarVarint, nil
		}
	case reflect.Int64:
		switch {
		case hint("zigzag"):
			return scalarZigZag64, nil
		case hint("fixed"):
			return scalarFixed64, nil
		default:
			return scalarVarint, nil
		}
	case reflect.Uint32, reflect.Uint:
		if hint("fixed") {
			return scalarFixed32, nil
		}
		return scalarUvarint, nil
	case reflect.Uint64:
		if hint("fixed") {
			return scalarFixed64, nil
		}
		return scalarUvarint, nil
	default:
		return 0, fmt.Errorf("unsupported field type %s", t)
	}
}

// validateMapKeyScalar enforces the KeyedPair key-type rule from
// original_source/pb/codec/map_field_entry.h: integral, zigzag, fixed, or
// string — never a float. (Go has no distinct enum kind to exclude
// separately; a named integer type used as an enum is indistinguishable at
// reflect.Kind granularity from a plain integer, so it is accepted the same
// way protolizer's own registry accepts it.)
func validateMapKeyScalar(s scalarType) error {
	switch s {
	case scalarFloat32, scalarFloat64:
		return fmt.Errorf("map keys may not be floating point")
	default:
		return nil
	}
}

func precomputeTags(f *field) error {
	tag, err := EncodeTag(f.number, f.wireTypeForSerialization())
	if err != nil {
		return err
	}
	f.tag = AppendUvarint(nil, tag)

	if f.kind == kindMap {
		kt, err := EncodeTag(1, f.mapKeyScalar.wireType())
		if err != nil {
			return err
		}
		f.keyTag = AppendUvarint(nil, kt)
		vt, err := EncodeTag(2, f.mapValScalar.wireType())
		if err != nil {
			return err
		}
		f.valueTag = AppendUvarint(nil, vt)
	}
	return nil
}
