package node

import "github.com/andersstorhaug/lite3/internal/buffer"

// allocateNode carves a fresh, 4-byte-aligned 96-byte node out of the
// arena at *position, padding with zeros as needed, and advances
// *position past it.
func allocateNode(buf []byte, position *int, cap int) (off int, status buffer.Status) {
	pad := buffer.Align(*position) - *position
	if *position+pad+buffer.NodeSize > cap {
		return 0, buffer.InsufficientBuffer
	}
	buffer.Zero(buf, *position, *position+pad)
	off = *position + pad
	*position = off + buffer.NodeSize
	return off, buffer.None
}

// copyNodeOut copies the 96 raw bytes at src into a freshly allocated
// node, used when a container's own root splits and its old contents
// must move to make room for a brand new root at the fixed offset src.
func copyNodeOut(buf []byte, src int, position *int, cap int) (off int, status buffer.Status) {
	off, status = allocateNode(buf, position, cap)
	if status.Failed() {
		return 0, status
	}
	copy(buf[off:off+buffer.NodeSize], buf[src:src+buffer.NodeSize])
	return off, buffer.None
}

// splitNode splits a full (KeyCountMax keys) node in two, promoting the
// middle key up to the caller. Left keeps the low KeyCountMin keys;
// sibling receives the remaining KeyCountMin keys and, for an internal
// node, the corresponding half of the child pointers.
func splitNode(buf []byte, nodeOff int, position *int, cap int, gen uint32) (siblingOff int, promHash uint32, promKV int, status buffer.Status) {
	tag := Type(buf, nodeOff)
	leaf := IsLeaf(buf, nodeOff)

	siblingOff, status = allocateNode(buf, position, cap)
	if status.Failed() {
		return 0, 0, 0, status
	}
	InitNode(buf, siblingOff, tag, gen)

	mid := buffer.KeyCountMin
	promHash = hash(buf, nodeOff, mid)
	promKV = int(kvOffset(buf, nodeOff, mid))

	for j := 0; j < buffer.KeyCountMin; j++ {
		src := mid + 1 + j
		setHash(buf, siblingOff, j, hash(buf, nodeOff, src))
		setKVOffset(buf, siblingOff, j, kvOffset(buf, nodeOff, src))
		clearSlot(buf, nodeOff, src)
	}
	clearSlot(buf, nodeOff, mid)

	if !leaf {
		for j := 0; j <= buffer.KeyCountMin; j++ {
			src := mid + 1 + j
			setChildOffset(buf, siblingOff, j, childOffset(buf, nodeOff, src))
			clearChild(buf, nodeOff, src)
		}
	}

	setKeyCount(buf, siblingOff, buffer.KeyCountMin)
	setKeyCount(buf, nodeOff, buffer.KeyCountMin)
	return siblingOff, promHash, promKV, buffer.None
}
