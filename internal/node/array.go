package node

import "github.com/andersstorhaug/lite3/internal/buffer"

// SetIndex overwrites the element at index, which must already exist
// (index < the array's current size). Growing an array happens only via
// Append; SetIndex never creates a new element.
func SetIndex(buf []byte, position *int, cap int, containerOff int, index uint32, spec ValueSpec) (childOff int, status buffer.Status) {
	if index >= Size(buf, containerOff) {
		return 0, buffer.ArrayIndexOutOfBounds
	}
	return Set(buf, position, cap, containerOff, ArrayKey(index), spec)
}

// Append inserts a new element at the array's current size, extending
// it by one.
func Append(buf []byte, position *int, cap int, containerOff int, spec ValueSpec) (childOff int, status buffer.Status) {
	return Set(buf, position, cap, containerOff, ArrayKey(Size(buf, containerOff)), spec)
}

// GetIndex reads the element at index, which must be < the array's
// current size.
func GetIndex(buf []byte, containerOff int, index uint32) (Cursor, buffer.Status) {
	if index >= Size(buf, containerOff) {
		return Cursor{}, buffer.ArrayIndexOutOfBounds
	}
	return Lookup(buf, containerOff, ArrayKey(index))
}
