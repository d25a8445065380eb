package node

import "github.com/andersstorhaug/lite3/internal/buffer"

// InitRoot stamps a fresh root node (generation 0) at offset 0 and
// returns the arena position immediately following it, ready for the
// first Set call.
func InitRoot(buf []byte, tag byte) int {
	InitNode(buf, 0, tag, 0)
	return buffer.NodeSize
}
