package lite3

import (
	"github.com/andersstorhaug/lite3/internal/buffer"
	"github.com/andersstorhaug/lite3/internal/node"
)

// BytesHandle is a generation-checked reference to a Bytes value. It is
// safe to copy and hold, but Resolve fails with ErrMutatedBuffer once
// any Set/Append call on the owning message has run since it was taken.
type BytesHandle struct {
	buf *buf
	gen uint32
	pos int
}

// Resolve returns the referenced bytes, zero-copy, or ErrMutatedBuffer
// if the buffer has mutated since the handle was created.
func (h BytesHandle) Resolve() ([]byte, error) {
	if buffer.Generation(h.buf.data) != h.gen {
		return nil, buffer.MutatedBuffer
	}
	return node.ReadBytes(h.buf.data, h.pos), nil
}

// StringHandle is the String counterpart of BytesHandle.
type StringHandle struct {
	buf *buf
	gen uint32
	pos int
}

func (h StringHandle) Resolve() (string, error) {
	if buffer.Generation(h.buf.data) != h.gen {
		return "", buffer.MutatedBuffer
	}
	return string(node.ReadString(h.buf.data, h.pos)), nil
}

func newBytesHandle(b *buf, pos int) BytesHandle {
	return BytesHandle{buf: b, gen: buffer.Generation(b.data), pos: pos}
}

func newStringHandle(b *buf, pos int) StringHandle {
	return StringHandle{buf: b, gen: buffer.Generation(b.data), pos: pos}
}
