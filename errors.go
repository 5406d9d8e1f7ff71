package wf

import "errors"

// ErrNotRegistered is the panic value (possibly wrapped) when an operation
// is attempted on a Go type that was never passed to Register.
var ErrNotRegistered = errors.New("wf: type not registered")

// ErrTooBig is returned by Marshal and MarshalTo when a record's encoded
// length would exceed MaxSerializedSize; EncodedSize reports the same
// condition with a negative result.
var ErrTooBig = errors.New("wf: record exceeds max serialized size")
