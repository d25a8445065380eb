package lite3

import "github.com/andersstorhaug/lite3/internal/node"

// Iterator walks an Object's members or an Array's elements in ascending
// hash (equivalently, index) order. It is invalidated by any subsequent
// Set/Append/SetIndex call against the same message.
//
//	for it := obj.Iterate(); it.Next(); {
//	    key, typ := it.Key(), it.Type()
//	}
//	if err := it.Error(); err != nil {
//	    // buffer was mutated mid-walk
//	}
type Iterator struct {
	buf   *buf
	inner node.Iterator
	cur   node.Item
	valid bool
	err   error
}

// Next advances to the next entry, returning false at the end of the
// container or on error; distinguish the two with Error.
func (it *Iterator) Next() bool {
	if it.err != nil {
		return false
	}
	item, ok, status := it.inner.Next()
	if status.Failed() {
		it.err = status
		it.valid = false
		return false
	}
	if !ok {
		it.valid = false
		return false
	}
	it.cur = item
	it.valid = true
	return true
}

// Valid reports whether the iterator is positioned at an entry.
func (it *Iterator) Valid() bool { return it.valid }

// Error returns the error that ended the walk, if any.
func (it *Iterator) Error() error {
	if it.err == nil {
		return nil
	}
	return it.err
}

// Key returns the current member's name. It is nil when iterating an
// Array (elements have no key).
func (it *Iterator) Key() []byte { return it.cur.Key }

// Type returns the value tag of the current entry.
func (it *Iterator) Type() byte {
	return node.ReadTag(it.buf.data, it.cur.Cursor.ValuePos)
}

func (it *Iterator) Bool() bool     { return node.ReadBool(it.buf.data, it.cur.Cursor.ValuePos) }
func (it *Iterator) I64() int64     { return node.ReadI64(it.buf.data, it.cur.Cursor.ValuePos) }
func (it *Iterator) F64() float64   { return node.ReadF64(it.buf.data, it.cur.Cursor.ValuePos) }
func (it *Iterator) Bytes() []byte  { return node.ReadBytes(it.buf.data, it.cur.Cursor.ValuePos) }
func (it *Iterator) String() string {
	return string(node.ReadString(it.buf.data, it.cur.Cursor.ValuePos))
}

// Object views the current entry as a nested Object. The caller is
// responsible for having checked Type() == TagObject first.
func (it *Iterator) Object() *Object {
	return &Object{buf: it.buf, off: it.cur.Cursor.ValuePos + 1}
}

// Array views the current entry as a nested Array.
func (it *Iterator) Array() *Array {
	return &Array{buf: it.buf, off: it.cur.Cursor.ValuePos + 1}
}
