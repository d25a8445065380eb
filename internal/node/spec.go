package node

import "github.com/andersstorhaug/lite3/internal/buffer"

// ValueSpec describes a value to be written, decoupling size calculation
// (needed for capacity checks and match-in-place/grow decisions) from
// the actual write (performed only once capacity is confirmed, so a
// failed Set never mutates the buffer).
type ValueSpec struct {
	Tag byte
	// Size returns the total bytes the value will occupy starting right
	// after the entry's key bytes (prevPos). For Object/Array this
	// includes whatever padding is needed to align the embedded node.
	Size func(prevPos int) int
	// Write performs the write at prevPos and returns the bytes consumed
	// (must equal Size(prevPos)) and, for Object/Array, the offset of
	// the freshly initialized child node (0 otherwise).
	Write func(buf []byte, prevPos int) (consumed int, childOff int)
}

func NullSpec() ValueSpec {
	return ValueSpec{
		Tag:  buffer.TagNull,
		Size: func(int) int { return 1 },
		Write: func(buf []byte, pos int) (int, int) {
			return WriteNull(buf, pos), 0
		},
	}
}

func BoolSpec(v bool) ValueSpec {
	return ValueSpec{
		Tag:  buffer.TagBool,
		Size: func(int) int { return 2 },
		Write: func(buf []byte, pos int) (int, int) {
			return WriteBool(buf, pos, v), 0
		},
	}
}

func I64Spec(v int64) ValueSpec {
	return ValueSpec{
		Tag:  buffer.TagI64,
		Size: func(int) int { return 9 },
		Write: func(buf []byte, pos int) (int, int) {
			return WriteI64(buf, pos, v), 0
		},
	}
}

func F64Spec(v float64) ValueSpec {
	return ValueSpec{
		Tag:  buffer.TagF64,
		Size: func(int) int { return 9 },
		Write: func(buf []byte, pos int) (int, int) {
			return WriteF64(buf, pos, v), 0
		},
	}
}

func BytesSpec(data []byte) ValueSpec {
	return ValueSpec{
		Tag:  buffer.TagBytes,
		Size: func(int) int { return BytesValueSize(len(data)) },
		Write: func(buf []byte, pos int) (int, int) {
			return WriteBytes(buf, pos, data), 0
		},
	}
}

func StringSpec(data []byte) ValueSpec {
	return ValueSpec{
		Tag:  buffer.TagString,
		Size: func(int) int { return StringValueSize(len(data)) },
		Write: func(buf []byte, pos int) (int, int) {
			return WriteString(buf, pos, data), 0
		},
	}
}

// ContainerSpec builds a spec for a nested Object or Array value. gen is
// the generation snapshot stamped into the new node header.
func ContainerSpec(tag byte, gen uint32) ValueSpec {
	return ValueSpec{
		Tag:  tag,
		Size: func(prevPos int) int { return ContainerValueSpan(prevPos) },
		Write: func(buf []byte, prevPos int) (int, int) {
			nodeOff, consumed := WriteContainer(buf, prevPos, tag, gen)
			return consumed, nodeOff
		},
	}
}
