package wf

import (
	"bytes"
	"sync"
)

var bufferPool = sync.Pool{
	New: func() any {
		return new(bytes.Buffer)
	},
}

// getBuffer returns a pooled scratch buffer, grown to at least size bytes
// of capacity if size is nonzero. Used by MarshalTo (api.go) to avoid
// allocating a fresh buffer on every writer-targeted encode.
func getBuffer(size int) *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	if size != 0 && buf.Cap() < size {
		buf.Grow(size)
	}
	return buf
}

// putBuffer resets and returns a scratch buffer obtained from getBuffer.
func putBuffer(buf *bytes.Buffer) {
	buf.Reset()
	bufferPool.Put(buf)
}
