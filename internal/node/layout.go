// Package node implements the embedded hash-B-tree that is the core of
// a Lite³ message buffer: the 96-byte node layout, hash-probed lookup,
// insert with node splitting, and depth-first iteration. Every function
// here operates directly on a caller-owned []byte plus integer offsets;
// there is no owned state and no allocation on the hot paths.
package node

import (
	"encoding/binary"

	"github.com/andersstorhaug/lite3/internal/buffer"
)

// Byte offsets within a 96-byte node, relative to the node's start.
const (
	offGenType       = 0
	offHashes        = 4
	offSizeKC        = 32
	offKVOffsets     = 36
	offChildOffsets  = 64
	sizeGenType      = 4
	sizeHashSlot     = 4
	sizeKVSlot       = 4
	sizeChildSlot    = 4
	keyCountBits     = 3
	keyCountMask     = 1<<keyCountBits - 1
	sizeShift        = 6
)

// InitNode zeroes a fresh 96-byte node at off and stamps its type tag
// and generation snapshot. genSnapshot is authoritative only when off is
// the root offset (0); on any other node it is informational only,
// recorded at creation time and never refreshed.
func InitNode(buf []byte, off int, tag byte, genSnapshot uint32) {
	buffer.Zero(buf, off, off+buffer.NodeSize)
	setGenType(buf, off, tag, genSnapshot)
}

func genTypeWord(buf []byte, off int) uint32 {
	return binary.LittleEndian.Uint32(buf[off+offGenType:])
}

func setGenType(buf []byte, off int, tag byte, gen uint32) {
	word := (gen << 8) | uint32(tag)
	binary.LittleEndian.PutUint32(buf[off+offGenType:], word)
}

// Type returns the node's type tag (TagObject or TagArray).
func Type(buf []byte, off int) byte {
	return byte(genTypeWord(buf, off))
}

func hash(buf []byte, off, i int) uint32 {
	return binary.LittleEndian.Uint32(buf[off+offHashes+i*sizeHashSlot:])
}

func setHash(buf []byte, off, i int, h uint32) {
	binary.LittleEndian.PutUint32(buf[off+offHashes+i*sizeHashSlot:], h)
}

func sizeKC(buf []byte, off int) uint32 {
	return binary.LittleEndian.Uint32(buf[off+offSizeKC:])
}

func setSizeKC(buf []byte, off int, v uint32) {
	binary.LittleEndian.PutUint32(buf[off+offSizeKC:], v)
}

// KeyCount returns the number of keys (0..7) stored in the node at off.
func KeyCount(buf []byte, off int) int {
	return int(sizeKC(buf, off) & keyCountMask)
}

func setKeyCount(buf []byte, off int, kc int) {
	v := sizeKC(buf, off)
	v = (v &^ keyCountMask) | uint32(kc)
	setSizeKC(buf, off, v)
}

// Size returns the live-entry count of the container whose top node is
// at off. The count is maintained only on a container's top node, not on
// the nodes below it.
func Size(buf []byte, off int) uint32 {
	return sizeKC(buf, off) >> sizeShift
}

func setSize(buf []byte, off int, n uint32) {
	v := sizeKC(buf, off)
	v = (v & keyCountMask) | (n << sizeShift)
	setSizeKC(buf, off, v)
}

// AddSize adjusts the root's entry count by delta (delta may be negative
// only in theory; Lite³ never deletes, so callers only ever add).
func AddSize(buf []byte, rootOff int, delta int) {
	setSize(buf, rootOff, uint32(int(Size(buf, rootOff))+delta))
}

func kvOffset(buf []byte, off, i int) uint32 {
	return binary.LittleEndian.Uint32(buf[off+offKVOffsets+i*sizeKVSlot:])
}

func setKVOffset(buf []byte, off, i int, v uint32) {
	binary.LittleEndian.PutUint32(buf[off+offKVOffsets+i*sizeKVSlot:], v)
}

func childOffset(buf []byte, off, i int) uint32 {
	return binary.LittleEndian.Uint32(buf[off+offChildOffsets+i*sizeChildSlot:])
}

func setChildOffset(buf []byte, off, i int, v uint32) {
	binary.LittleEndian.PutUint32(buf[off+offChildOffsets+i*sizeChildSlot:], v)
}

// IsLeaf reports whether the node at off has no children.
func IsLeaf(buf []byte, off int) bool {
	return childOffset(buf, off, 0) == 0
}

// clearSlot zeroes hash/kv-offset slot i (used after promotion/removal
// during a split so invariant 2 - trailing zero hashes - holds).
func clearSlot(buf []byte, off, i int) {
	setHash(buf, off, i, 0)
	setKVOffset(buf, off, i, 0)
}

func clearChild(buf []byte, off, i int) {
	setChildOffset(buf, off, i, 0)
}
