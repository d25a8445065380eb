package buffer

import "encoding/binary"

// The first 4 bytes of every message buffer are the root node's
// gen_type word: low 8 bits are the root's type tag, high 24 bits are
// the generation counter. This is the sole mechanism by which
// previously returned Bytes/String handles are invalidated.

// RootTag returns the type tag stored at offset 0. It does not validate
// the buffer; callers that need a validity guarantee should check the
// result against TagObject/TagArray themselves.
func RootTag(buf []byte) byte {
	return buf[0]
}

// Generation returns the 24-bit generation counter stored at offset 0.
func Generation(buf []byte) uint32 {
	word := binary.LittleEndian.Uint32(buf[0:4])
	return word >> 8
}

// SetGenType writes the root header word: tag in the low byte,
// generation in the high 24 bits.
func SetGenType(buf []byte, tag byte, generation uint32) {
	word := (generation << 8) | uint32(tag)
	binary.LittleEndian.PutUint32(buf[0:4], word)
}

// BumpGeneration increments the generation counter in place and returns
// the new value. Every structural mutation calls this exactly once.
func BumpGeneration(buf []byte) uint32 {
	tag := RootTag(buf)
	next := Generation(buf) + 1
	SetGenType(buf, tag, next)
	return next
}
