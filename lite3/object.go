package lite3

import (
	"github.com/andersstorhaug/lite3/internal/buffer"
	"github.com/andersstorhaug/lite3/internal/node"
)

// Object is a keyed container view: either the root of a message
// (NewObject/OpenObject) or a nested member reached via GetObject/
// SetObject. Every method operates directly on the shared arena; there
// is no copy and no separate DOM.
type Object struct {
	buf *buf
	off int
}

// NewObject allocates a fixed-capacity buffer of size bytes and
// initializes it as an empty root Object.
func NewObject(size int) *Object {
	b := newBuf(size, size, false)
	b.position = node.InitRoot(b.data, buffer.TagObject)
	return &Object{buf: b, off: 0}
}

// NewGrowableObject allocates a root Object backed by a buffer that
// grows (4x, capped at max) as content is added.
func NewGrowableObject(initial, max int) *Object {
	b := newBuf(initial, max, true)
	b.position = node.InitRoot(b.data, buffer.TagObject)
	return &Object{buf: b, off: 0}
}

// Bytes returns the message's live wire bytes: [0, position). Valid
// only on a root view; it aliases the arena and must not be retained
// across a later mutation.
func (o *Object) Bytes() []byte { return o.buf.Bytes() }

// Count returns the number of members directly in this Object.
func (o *Object) Count() uint32 { return node.Size(o.buf.data, o.off) }

// objectKey builds a lookup/insert key for a named member, rejecting the
// empty string so it can never be mistaken for an array element's nil
// implicit key.
func objectKey(key string) (node.Key, error) {
	if key == "" {
		return node.Key{}, buffer.ExpectedNonEmptyKey
	}
	return node.ObjectKey([]byte(key)), nil
}

// Exists reports whether key is present.
func (o *Object) Exists(key string) bool {
	k, err := objectKey(key)
	if err != nil {
		return false
	}
	return node.Exists(o.buf.data, o.off, k)
}

// TypeOf returns the value tag stored under key.
func (o *Object) TypeOf(key string) (byte, error) {
	k, err := objectKey(key)
	if err != nil {
		return 0, err
	}
	cur, status := node.Lookup(o.buf.data, o.off, k)
	if status.Failed() {
		return 0, status
	}
	return node.ReadTag(o.buf.data, cur.ValuePos), nil
}

// ValueSize returns the total (tag + payload) byte size of key's value.
func (o *Object) ValueSize(key string) (int, error) {
	k, err := objectKey(key)
	if err != nil {
		return 0, err
	}
	cur, status := node.Lookup(o.buf.data, o.off, k)
	if status.Failed() {
		return 0, status
	}
	n, status := node.ValueSpan(o.buf.data, cur.ValuePos)
	if status.Failed() {
		return 0, status
	}
	return n, nil
}

func (o *Object) lookupTagged(key string, want byte) (node.Cursor, error) {
	k, err := objectKey(key)
	if err != nil {
		return node.Cursor{}, err
	}
	cur, status := node.Lookup(o.buf.data, o.off, k)
	if status.Failed() {
		return node.Cursor{}, status
	}
	if node.ReadTag(o.buf.data, cur.ValuePos) != want {
		return node.Cursor{}, buffer.ValueKindDoesNotMatch
	}
	return cur, nil
}

func (o *Object) GetBool(key string) (bool, error) {
	cur, err := o.lookupTagged(key, buffer.TagBool)
	if err != nil {
		return false, err
	}
	return node.ReadBool(o.buf.data, cur.ValuePos), nil
}

func (o *Object) GetI64(key string) (int64, error) {
	cur, err := o.lookupTagged(key, buffer.TagI64)
	if err != nil {
		return 0, err
	}
	return node.ReadI64(o.buf.data, cur.ValuePos), nil
}

func (o *Object) GetF64(key string) (float64, error) {
	cur, err := o.lookupTagged(key, buffer.TagF64)
	if err != nil {
		return 0, err
	}
	return node.ReadF64(o.buf.data, cur.ValuePos), nil
}

func (o *Object) GetBytes(key string) (BytesHandle, error) {
	cur, err := o.lookupTagged(key, buffer.TagBytes)
	if err != nil {
		return BytesHandle{}, err
	}
	return newBytesHandle(o.buf, cur.ValuePos), nil
}

func (o *Object) GetString(key string) (StringHandle, error) {
	cur, err := o.lookupTagged(key, buffer.TagString)
	if err != nil {
		return StringHandle{}, err
	}
	return newStringHandle(o.buf, cur.ValuePos), nil
}

func (o *Object) GetObject(key string) (*Object, error) {
	cur, err := o.lookupTagged(key, buffer.TagObject)
	if err != nil {
		return nil, err
	}
	return &Object{buf: o.buf, off: cur.ValuePos + 1}, nil
}

func (o *Object) GetArray(key string) (*Array, error) {
	cur, err := o.lookupTagged(key, buffer.TagArray)
	if err != nil {
		return nil, err
	}
	return &Array{buf: o.buf, off: cur.ValuePos + 1}, nil
}

// Iterate returns an Iterator over this Object's members in ascending
// hash order (unspecified relative to insertion order).
func (o *Object) Iterate() *Iterator {
	return iteratorOf(o.buf, o.off)
}

func (o *Object) set(key string, spec node.ValueSpec) (int, error) {
	k, err := objectKey(key)
	if err != nil {
		return 0, err
	}
	return o.buf.apply(func(data []byte, position *int) (int, buffer.Status) {
		return node.Set(data, position, len(data), o.off, k, spec)
	})
}

func (o *Object) SetNull(key string) error {
	_, err := o.set(key, node.NullSpec())
	return err
}

func (o *Object) SetBool(key string, v bool) error {
	_, err := o.set(key, node.BoolSpec(v))
	return err
}

func (o *Object) SetI64(key string, v int64) error {
	_, err := o.set(key, node.I64Spec(v))
	return err
}

func (o *Object) SetF64(key string, v float64) error {
	_, err := o.set(key, node.F64Spec(v))
	return err
}

func (o *Object) SetBytes(key string, v []byte) error {
	_, err := o.set(key, node.BytesSpec(v))
	return err
}

func (o *Object) SetString(key string, v string) error {
	_, err := o.set(key, node.StringSpec([]byte(v)))
	return err
}

// SetObject creates (or replaces) key's value with a fresh empty Object
// and returns a view onto it.
func (o *Object) SetObject(key string) (*Object, error) {
	k, err := objectKey(key)
	if err != nil {
		return nil, err
	}
	childOff, err := o.buf.apply(func(data []byte, position *int) (int, buffer.Status) {
		return node.Set(data, position, len(data), o.off, k, node.ContainerSpec(buffer.TagObject, buffer.Generation(data)))
	})
	if err != nil {
		return nil, err
	}
	return &Object{buf: o.buf, off: childOff}, nil
}

// SetArray creates (or replaces) key's value with a fresh empty Array
// and returns a view onto it.
func (o *Object) SetArray(key string) (*Array, error) {
	k, err := objectKey(key)
	if err != nil {
		return nil, err
	}
	childOff, err := o.buf.apply(func(data []byte, position *int) (int, buffer.Status) {
		return node.Set(data, position, len(data), o.off, k, node.ContainerSpec(buffer.TagArray, buffer.Generation(data)))
	})
	if err != nil {
		return nil, err
	}
	return &Array{buf: o.buf, off: childOff}, nil
}
