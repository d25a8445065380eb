package lite3

import (
	"github.com/andersstorhaug/lite3/internal/buffer"
	"github.com/andersstorhaug/lite3/internal/node"
)

// Open wraps an already-built message: data is treated as the complete
// live prefix (position == len(data)), matching the wire contract that
// a Lite³ message is transportable by copying [0, position) verbatim.
// The returned view has no scratch space and is not growable: a Set that
// needs more room fails with ErrInsufficientBuffer.
func Open(data []byte) (root any, err error) {
	if len(data) < buffer.NodeSize {
		return nil, buffer.StartOffsetOutOfBounds
	}
	b := &buf{data: data, position: len(data), growable: false, max: len(data)}
	switch node.Type(data, 0) {
	case buffer.TagObject:
		return &Object{buf: b, off: 0}, nil
	case buffer.TagArray:
		return &Array{buf: b, off: 0}, nil
	default:
		return nil, buffer.ExpectedArrayOrObject
	}
}

// OpenObject is Open for callers who already know the message is an
// Object.
func OpenObject(data []byte) (*Object, error) {
	root, err := Open(data)
	if err != nil {
		return nil, err
	}
	obj, ok := root.(*Object)
	if !ok {
		return nil, buffer.ExpectedObject
	}
	return obj, nil
}

// OpenArray is Open for callers who already know the message is an
// Array.
func OpenArray(data []byte) (*Array, error) {
	root, err := Open(data)
	if err != nil {
		return nil, err
	}
	arr, ok := root.(*Array)
	if !ok {
		return nil, buffer.ExpectedArray
	}
	return arr, nil
}
