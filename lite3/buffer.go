package lite3

import (
	"github.com/andersstorhaug/lite3/internal/buffer"
	"github.com/andersstorhaug/lite3/internal/node"
)

// buf is the growable arena shared by every Object/Array view over the
// same message. Views never copy it; they carry a *buf plus their own
// container offset.
type buf struct {
	data     []byte
	position int
	growable bool
	max      int
}

func newBuf(initial, max int, growable bool) *buf {
	if initial < buffer.MinBuf {
		initial = buffer.MinBuf
	}
	if max < initial {
		max = initial
	}
	return &buf{data: make([]byte, initial), growable: growable, max: max}
}

// mutator is the shape every node-package mutating call conforms to:
// given the arena and the current write frontier, perform one edit and
// report the offset of any freshly created child container.
type mutator func(data []byte, position *int) (childOff int, status buffer.Status)

// apply runs fn, growing and retrying on InsufficientBuffer when the
// underlying arena is growable. A fn that fails leaves b unmutated
// (node-package Set/Append/SetIndex guarantee this), so a retry after
// growth always starts from a clean slate.
func (b *buf) apply(fn mutator) (int, error) {
	for {
		childOff, status := fn(b.data, &b.position)
		if status == buffer.InsufficientBuffer && b.growable {
			grown, gstatus := buffer.Grow(b.data, b.position, b.max)
			if gstatus.Failed() {
				return 0, gstatus
			}
			b.data = grown
			continue
		}
		if status.Failed() {
			return 0, status
		}
		return childOff, nil
	}
}

// Bytes returns the live prefix of the message: [0, position). This is
// the byte-for-byte wire representation; it aliases the buffer's
// backing array and must not be retained across a later mutation.
func (b *buf) Bytes() []byte {
	return b.data[:b.position]
}

func rootTag(b *buf) byte {
	return node.Type(b.data, 0)
}

// iteratorOf is shared by Object/Array Iterate methods.
func iteratorOf(b *buf, off int) *Iterator {
	it := node.NewIterator(b.data, off)
	return &Iterator{buf: b, inner: it}
}
