package node

import (
	"encoding/binary"
	"math"

	"github.com/andersstorhaug/lite3/internal/buffer"
)

// Every value is prefixed by a single tag byte. Null/Bool/I64/F64 have a
// fixed payload size; Bytes/String are length-prefixed by a little-endian
// u32 (String's length includes its trailing NUL); Object/Array are a
// full 96-byte node header.

// ScalarSize returns the total (tag + payload) byte size for a
// fixed-size scalar tag. It panics on Bytes/String/Object/Array, whose
// size depends on content length or write position.
func ScalarSize(tag byte) int {
	switch tag {
	case buffer.TagNull:
		return 1
	case buffer.TagBool:
		return 2
	case buffer.TagI64, buffer.TagF64:
		return 9
	default:
		panic("node: ScalarSize called on a variable-length tag")
	}
}

// BytesValueSize returns the total (tag + len-prefix + payload) size for
// a Bytes value of n content bytes.
func BytesValueSize(n int) int {
	return 1 + 4 + n
}

// StringValueSize returns the total (tag + len-prefix + payload) size
// for a String value whose content (excluding the trailing NUL) is n
// bytes.
func StringValueSize(n int) int {
	return 1 + 4 + n + 1
}

// PadForContainer returns the zero-padding needed after prevPos (the
// write position immediately after the key bytes) so that the value tag
// byte, followed immediately by a 96-byte node header, leaves that
// header 4-byte aligned.
func PadForContainer(prevPos int) int {
	return (4 - (prevPos+1)%4) % 4
}

// ContainerValueSpan returns the total bytes (padding + tag + node)
// consumed when writing an Object/Array value starting right after the
// key bytes at prevPos.
func ContainerValueSpan(prevPos int) int {
	return PadForContainer(prevPos) + 1 + buffer.NodeSize
}

func WriteNull(buf []byte, pos int) int {
	buf[pos] = buffer.TagNull
	return 1
}

func WriteBool(buf []byte, pos int, v bool) int {
	buf[pos] = buffer.TagBool
	if v {
		buf[pos+1] = 1
	} else {
		buf[pos+1] = 0
	}
	return 2
}

func WriteI64(buf []byte, pos int, v int64) int {
	buf[pos] = buffer.TagI64
	binary.LittleEndian.PutUint64(buf[pos+1:], uint64(v))
	return 9
}

func WriteF64(buf []byte, pos int, v float64) int {
	buf[pos] = buffer.TagF64
	binary.LittleEndian.PutUint64(buf[pos+1:], math.Float64bits(v))
	return 9
}

func WriteBytes(buf []byte, pos int, data []byte) int {
	buf[pos] = buffer.TagBytes
	binary.LittleEndian.PutUint32(buf[pos+1:], uint32(len(data)))
	copy(buf[pos+5:], data)
	return BytesValueSize(len(data))
}

// WriteString writes data (without a trailing NUL) plus an appended NUL.
func WriteString(buf []byte, pos int, data []byte) int {
	buf[pos] = buffer.TagString
	n := len(data) + 1
	binary.LittleEndian.PutUint32(buf[pos+1:], uint32(n))
	copy(buf[pos+5:], data)
	buf[pos+5+len(data)] = 0
	return StringValueSize(len(data))
}

// WriteContainer pads, writes the tag, and initializes a fresh 96-byte
// node for an Object or Array value, returning the offset of that new
// node (the "child_offset" the typed API hands back to callers) and the
// total bytes consumed starting at prevPos.
func WriteContainer(buf []byte, prevPos int, tag byte, genSnapshot uint32) (nodeOff, consumed int) {
	pad := PadForContainer(prevPos)
	buffer.Zero(buf, prevPos, prevPos+pad)
	buf[prevPos+pad] = tag
	nodeOff = prevPos + pad + 1
	InitNode(buf, nodeOff, tag, genSnapshot)
	consumed = pad + 1 + buffer.NodeSize
	return
}

func ReadTag(buf []byte, pos int) byte {
	return buf[pos]
}

func ReadBool(buf []byte, pos int) bool {
	return buf[pos+1] != 0
}

func ReadI64(buf []byte, pos int) int64 {
	return int64(binary.LittleEndian.Uint64(buf[pos+1:]))
}

func ReadF64(buf []byte, pos int) float64 {
	return math.Float64frombits(binary.LittleEndian.Uint64(buf[pos+1:]))
}

// BytesLen reads the u32 length prefix of a Bytes/String value at pos
// (pos points at the tag byte).
func BytesLen(buf []byte, pos int) int {
	return int(binary.LittleEndian.Uint32(buf[pos+1:]))
}

// ReadBytes returns the raw content slice of a Bytes value (zero-copy).
func ReadBytes(buf []byte, pos int) []byte {
	n := BytesLen(buf, pos)
	return buf[pos+5 : pos+5+n]
}

// ReadString returns the content slice of a String value, excluding the
// trailing NUL (zero-copy).
func ReadString(buf []byte, pos int) []byte {
	n := BytesLen(buf, pos)
	if n == 0 {
		return buf[pos+5 : pos+5]
	}
	return buf[pos+5 : pos+5+n-1]
}

// ValueSpan returns the total (tag + payload) length of the value
// starting at pos, so callers can zero a vacated entry or check bounds.
// For Object/Array it is 1 + NodeSize measured from the tag byte, which
// the caller is expected to have already 4-byte aligned.
func ValueSpan(buf []byte, pos int) (int, buffer.Status) {
	tag := buf[pos]
	switch tag {
	case buffer.TagNull:
		return 1, buffer.None
	case buffer.TagBool:
		return 2, buffer.None
	case buffer.TagI64, buffer.TagF64:
		return 9, buffer.None
	case buffer.TagBytes:
		return BytesValueSize(BytesLen(buf, pos)), buffer.None
	case buffer.TagString:
		return StringValueSize(BytesLen(buf, pos) - 1), buffer.None
	case buffer.TagObject, buffer.TagArray:
		return 1 + buffer.NodeSize, buffer.None
	default:
		return 0, buffer.ValueKindInvalid
	}
}
