package wf

import (
	"fmt"
	"io"
	"reflect"
)

// Encode writes msg (a pointer to a registered struct) into buf, which must
// already be sized to exactly EncodedSize(msg) bytes — the precondition
// SerializeEngine assumes per §4.4. It returns the filled prefix of buf.
// Encode panics if msg's encoded size does not fit in buf; callers that
// don't want to manage sizing themselves should use Marshal instead.
func Encode(msg any, buf []byte) []byte {
	v := checkedElem(msg)
	want := sizeRecord(v)
	if int64(len(buf)) < want {
		panic(fmt.Errorf("wf: Encode buffer too small: have %d, need %d", len(buf), want))
	}
	return appendRecord(buf[:0], v)
}

// Marshal is the ergonomic convenience wrapping EncodedSize+Encode: it
// allocates a buffer of the right size and fills it in one call.
func Marshal(msg any) ([]byte, error) {
	size := EncodedSize(msg)
	if size < 0 {
		return nil, ErrTooBig
	}
	buf := make([]byte, 0, size)
	return appendRecord(buf, checkedElem(msg)), nil
}

// MarshalTo encodes msg and writes it to w in a single Write call, using a
// pooled scratch buffer (memory.go) rather than allocating one per call —
// the pattern to reach for when the destination is a socket or file rather
// than a []byte the caller wants to keep.
func MarshalTo(w io.Writer, msg any) error {
	size := EncodedSize(msg)
	if size < 0 {
		return ErrTooBig
	}
	scratch := getBuffer(int(size))
	defer putBuffer(scratch)

	b := appendRecord(scratch.AvailableBuffer(), checkedElem(msg))
	scratch.Write(b)
	_, err := w.Write(scratch.Bytes())
	return err
}

// Merge parses data and merges it into msg (a pointer to a registered
// struct) following the merge semantics of I6: repeated fields append,
// singletons present in data overwrite, singletons absent in data are left
// untouched. It reports whether the parse succeeded; on failure msg may be
// partially mutated but data itself is never modified (I4/I5).
func Merge(data []byte, msg any) bool {
	return parseFields(data, 0, checkedElem(msg))
}

// Decode parses data into a freshly constructed *T, returning (nil, false)
// on failure.
func Decode[T any](data []byte) (*T, bool) {
	msg := new(T)
	if !Merge(data, msg) {
		return nil, false
	}
	return msg, true
}

func checkedElem(msg any) reflect.Value {
	v := reflect.ValueOf(msg)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		panic(fmt.Errorf("wf: expected a non-nil pointer to a registered struct, got %T", msg))
	}
	return v.Elem()
}
