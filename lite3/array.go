package lite3

import (
	"github.com/andersstorhaug/lite3/internal/buffer"
	"github.com/andersstorhaug/lite3/internal/node"
)

// Array is an indexed container view, symmetric with Object but keyed
// by position instead of name.
type Array struct {
	buf *buf
	off int
}

// NewArray allocates a fixed-capacity buffer of size bytes and
// initializes it as an empty root Array.
func NewArray(size int) *Array {
	b := newBuf(size, size, false)
	b.position = node.InitRoot(b.data, buffer.TagArray)
	return &Array{buf: b, off: 0}
}

// NewGrowableArray allocates a root Array backed by a buffer that grows
// (4x, capped at max) as content is added.
func NewGrowableArray(initial, max int) *Array {
	b := newBuf(initial, max, true)
	b.position = node.InitRoot(b.data, buffer.TagArray)
	return &Array{buf: b, off: 0}
}

func (a *Array) Bytes() []byte { return a.buf.Bytes() }

// Count returns the number of elements in this Array.
func (a *Array) Count() uint32 { return node.Size(a.buf.data, a.off) }

func (a *Array) TypeOf(index uint32) (byte, error) {
	cur, status := node.GetIndex(a.buf.data, a.off, index)
	if status.Failed() {
		return 0, status
	}
	return node.ReadTag(a.buf.data, cur.ValuePos), nil
}

func (a *Array) lookupTagged(index uint32, want byte) (node.Cursor, error) {
	cur, status := node.GetIndex(a.buf.data, a.off, index)
	if status.Failed() {
		return node.Cursor{}, status
	}
	if node.ReadTag(a.buf.data, cur.ValuePos) != want {
		return node.Cursor{}, buffer.ValueKindDoesNotMatch
	}
	return cur, nil
}

func (a *Array) GetBool(index uint32) (bool, error) {
	cur, err := a.lookupTagged(index, buffer.TagBool)
	if err != nil {
		return false, err
	}
	return node.ReadBool(a.buf.data, cur.ValuePos), nil
}

func (a *Array) GetI64(index uint32) (int64, error) {
	cur, err := a.lookupTagged(index, buffer.TagI64)
	if err != nil {
		return 0, err
	}
	return node.ReadI64(a.buf.data, cur.ValuePos), nil
}

func (a *Array) GetF64(index uint32) (float64, error) {
	cur, err := a.lookupTagged(index, buffer.TagF64)
	if err != nil {
		return 0, err
	}
	return node.ReadF64(a.buf.data, cur.ValuePos), nil
}

func (a *Array) GetBytes(index uint32) (BytesHandle, error) {
	cur, err := a.lookupTagged(index, buffer.TagBytes)
	if err != nil {
		return BytesHandle{}, err
	}
	return newBytesHandle(a.buf, cur.ValuePos), nil
}

func (a *Array) GetString(index uint32) (StringHandle, error) {
	cur, err := a.lookupTagged(index, buffer.TagString)
	if err != nil {
		return StringHandle{}, err
	}
	return newStringHandle(a.buf, cur.ValuePos), nil
}

func (a *Array) GetObject(index uint32) (*Object, error) {
	cur, err := a.lookupTagged(index, buffer.TagObject)
	if err != nil {
		return nil, err
	}
	return &Object{buf: a.buf, off: cur.ValuePos + 1}, nil
}

func (a *Array) GetArray(index uint32) (*Array, error) {
	cur, err := a.lookupTagged(index, buffer.TagArray)
	if err != nil {
		return nil, err
	}
	return &Array{buf: a.buf, off: cur.ValuePos + 1}, nil
}

// Iterate returns an Iterator over this Array's elements in index order.
func (a *Array) Iterate() *Iterator {
	return iteratorOf(a.buf, a.off)
}

func (a *Array) setIndex(index uint32, spec node.ValueSpec) (int, error) {
	return a.buf.apply(func(data []byte, position *int) (int, buffer.Status) {
		return node.SetIndex(data, position, len(data), a.off, index, spec)
	})
}

func (a *Array) append(spec node.ValueSpec) (int, error) {
	return a.buf.apply(func(data []byte, position *int) (int, buffer.Status) {
		return node.Append(data, position, len(data), a.off, spec)
	})
}

func (a *Array) SetNull(index uint32) error {
	_, err := a.setIndex(index, node.NullSpec())
	return err
}
func (a *Array) SetBool(index uint32, v bool) error {
	_, err := a.setIndex(index, node.BoolSpec(v))
	return err
}
func (a *Array) SetI64(index uint32, v int64) error {
	_, err := a.setIndex(index, node.I64Spec(v))
	return err
}
func (a *Array) SetF64(index uint32, v float64) error {
	_, err := a.setIndex(index, node.F64Spec(v))
	return err
}
func (a *Array) SetBytes(index uint32, v []byte) error {
	_, err := a.setIndex(index, node.BytesSpec(v))
	return err
}
func (a *Array) SetString(index uint32, v string) error {
	_, err := a.setIndex(index, node.StringSpec([]byte(v)))
	return err
}

func (a *Array) AppendNull() error {
	_, err := a.append(node.NullSpec())
	return err
}
func (a *Array) AppendBool(v bool) error {
	_, err := a.append(node.BoolSpec(v))
	return err
}
func (a *Array) AppendI64(v int64) error {
	_, err := a.append(node.I64Spec(v))
	return err
}
func (a *Array) AppendF64(v float64) error {
	_, err := a.append(node.F64Spec(v))
	return err
}
func (a *Array) AppendBytes(v []byte) error {
	_, err := a.append(node.BytesSpec(v))
	return err
}
func (a *Array) AppendString(v string) error {
	_, err := a.append(node.StringSpec([]byte(v)))
	return err
}

// AppendObject appends a fresh empty Object element and returns a view
// onto it.
func (a *Array) AppendObject() (*Object, error) {
	childOff, err := a.buf.apply(func(data []byte, position *int) (int, buffer.Status) {
		return node.Append(data, position, len(data), a.off, node.ContainerSpec(buffer.TagObject, buffer.Generation(data)))
	})
	if err != nil {
		return nil, err
	}
	return &Object{buf: a.buf, off: childOff}, nil
}

// AppendArray appends a fresh empty Array element and returns a view
// onto it.
func (a *Array) AppendArray() (*Array, error) {
	childOff, err := a.buf.apply(func(data []byte, position *int) (int, buffer.Status) {
		return node.Append(data, position, len(data), a.off, node.ContainerSpec(buffer.TagArray, buffer.Generation(data)))
	})
	if err != nil {
		return nil, err
	}
	return &Array{buf: a.buf, off: childOff}, nil
}

// SetObject replaces the element at index with a fresh empty Object.
func (a *Array) SetObject(index uint32) (*Object, error) {
	childOff, err := a.buf.apply(func(data []byte, position *int) (int, buffer.Status) {
		return node.SetIndex(data, position, len(data), a.off, index, node.ContainerSpec(buffer.TagObject, buffer.Generation(data)))
	})
	if err != nil {
		return nil, err
	}
	return &Object{buf: a.buf, off: childOff}, nil
}

// SetArray replaces the element at index with a fresh empty Array.
func (a *Array) SetArray(index uint32) (*Array, error) {
	childOff, err := a.buf.apply(func(data []byte, position *int) (int, buffer.Status) {
		return node.SetIndex(data, position, len(data), a.off, index, node.ContainerSpec(buffer.TagArray, buffer.Generation(data)))
	})
	if err != nil {
		return nil, err
	}
	return &Array{buf: a.buf, off: childOff}, nil
}
