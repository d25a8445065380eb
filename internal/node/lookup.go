package node

import "github.com/andersstorhaug/lite3/internal/buffer"

// Cursor identifies a located value: the byte offset of its tag and,
// for object members, the key's stored length.
type Cursor struct {
	ValuePos int
	KeyLen   int
}

// Lookup finds key within the container rooted at containerOff and
// returns a read cursor to its value. Returns KeyNotFound if absent.
func Lookup(buf []byte, containerOff int, key Key) (Cursor, buffer.Status) {
	result, ok, _, status := descend(buf, containerOff, key, nil)
	if status.Failed() {
		return Cursor{}, status
	}
	if !ok {
		return Cursor{}, buffer.KeyNotFound
	}
	return Cursor{ValuePos: result.ValuePos, KeyLen: result.KeyLen}, buffer.None
}

// Exists reports whether key is present in the container.
func Exists(buf []byte, containerOff int, key Key) bool {
	_, ok, _, status := descend(buf, containerOff, key, nil)
	return status == buffer.None && ok
}
