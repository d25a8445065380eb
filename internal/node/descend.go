package node

import "github.com/andersstorhaug/lite3/internal/buffer"

// Key describes what is being located: an object member (Bytes != nil)
// or an array element (Bytes == nil, Hash carries the literal index or,
// for append, the container's current size).
type Key struct {
	Bytes []byte
	Hash  uint32
}

// ObjectKey builds a Key for an object member lookup/insert.
func ObjectKey(key []byte) Key {
	return Key{Bytes: key, Hash: Hash(key)}
}

// ArrayKey builds a Key for an array element at the given index (used
// both for set-by-index and, with index == current size, for append).
func ArrayKey(index uint32) Key {
	return Key{Bytes: nil, Hash: index}
}

func (k Key) probeLimit() int {
	if k.Bytes == nil {
		return 1
	}
	return buffer.HashProbeMax
}

// scanNode returns the first slot i in [0, keyCount) whose hash is >= h,
// or keyCount if every stored hash is smaller.
func scanNode(buf []byte, nodeOff int, h uint32) (i, keyCount int) {
	keyCount = KeyCount(buf, nodeOff)
	for i < keyCount && hash(buf, nodeOff, i) < h {
		i++
	}
	return
}

// path records the ancestor chain walked during a descent, oldest first,
// so an insert-triggered split can walk back up without recursion.
type path struct {
	nodeOff [buffer.TreeHeightMax + 1]int
	slot    [buffer.TreeHeightMax + 1]int // slot chosen to descend through at that level
	depth   int
}

func (p *path) push(nodeOff, slot int) buffer.Status {
	if p.depth > buffer.TreeHeightMax {
		return buffer.NodeWalksExceededTreeHeightMax
	}
	p.nodeOff[p.depth] = nodeOff
	p.slot[p.depth] = slot
	p.depth++
	return buffer.None
}

// found describes a located entry.
type found struct {
	NodeOff  int // node containing the matching slot
	Slot     int // index of the matching hash/kv_offset slot
	KVOffset int // byte offset of the (key header|) value, per kvOffsets[slot]
	ValuePos int // byte offset of the value tag itself
	KeyLen   int // length of stored key content, excluding NUL (object only)
}

// descend walks containerOff looking for key, following the probe/collision
// rules of spec.md §4.2. When trackPath is non-nil it is filled with the
// ancestor chain of the terminal node (the node where the search ended,
// whether by match or by reaching a leaf with no match) so callers can
// perform an insert without re-walking from the root.
func descend(buf []byte, containerOff int, key Key, trackPath *path) (result found, ok bool, usedHash uint32, status buffer.Status) {
	limit := key.probeLimit()
	attempt := 0
	h := ProbeHash(key.Hash, 0)
	for {
		if attempt >= limit {
			return found{}, false, 0, buffer.HashProbeLimitReached
		}
		if trackPath != nil {
			*trackPath = path{}
		}
		nodeOff := containerOff
		depth := 0
		for {
			if depth > buffer.TreeHeightMax {
				return found{}, false, 0, buffer.NodeWalksExceededTreeHeightMax
			}
			i, keyCount := scanNode(buf, nodeOff, h)
			if i < keyCount && hash(buf, nodeOff, i) == h {
				kv := int(kvOffset(buf, nodeOff, i))
				matches := key.Bytes == nil || KeyMatches(buf, kv, key.Bytes)
				if matches {
					var valuePos, keyLen int
					if key.Bytes == nil {
						valuePos = kv
					} else {
						hdr, stored := ReadEntryKey(buf, kv)
						valuePos = kv + hdr
						keyLen = len(stored)
					}
					return found{NodeOff: nodeOff, Slot: i, KVOffset: kv, ValuePos: valuePos, KeyLen: keyLen}, true, h, buffer.None
				}
				// Collision: same hash slot, different key. Retry at the
				// next probe attempt from the root.
				attempt++
				h = ProbeHash(key.Hash, attempt)
				break
			}
			if trackPath != nil {
				if status = trackPath.push(nodeOff, i); status.Failed() {
					return found{}, false, 0, status
				}
			}
			if IsLeaf(buf, nodeOff) {
				return found{}, false, h, buffer.KeyNotFound
			}
			nodeOff = int(childOffset(buf, nodeOff, i))
			depth++
		}
	}
}
