package node

import "github.com/andersstorhaug/lite3/internal/buffer"

// Item is one entry yielded by an Iterator: its hash slot's value cursor
// plus, for object containers, the stored key.
type Item struct {
	Key    []byte
	Cursor Cursor
}

type iterFrame struct {
	nodeOff int
	idx     int
}

// Iterator walks a container in ascending hash order (equivalently,
// ascending array index) via a depth-first in-order traversal of the
// hash-B-tree, without recursion or heap allocation. It captures the
// buffer's generation at construction and reports InvalidIterator if
// any Set call bumps the generation before the walk finishes.
type Iterator struct {
	buf      []byte
	gen      uint32
	isObject bool
	stack    [buffer.TreeHeightMax + 1]iterFrame
	top      int // number of live frames; stack[top-1] is current
}

// NewIterator begins a traversal of the container rooted at containerOff.
func NewIterator(buf []byte, containerOff int) Iterator {
	it := Iterator{buf: buf, gen: buffer.Generation(buf), isObject: Type(buf, containerOff) == buffer.TagObject}
	it.pushLeftmost(containerOff)
	return it
}

func (it *Iterator) pushLeftmost(nodeOff int) {
	for {
		it.stack[it.top] = iterFrame{nodeOff: nodeOff, idx: 0}
		it.top++
		if IsLeaf(it.buf, nodeOff) {
			return
		}
		nodeOff = int(childOffset(it.buf, nodeOff, 0))
	}
}

// Next returns the next item in ascending order. ok is false once the
// traversal is exhausted. A generation mismatch (the buffer was mutated
// mid-walk) reports InvalidIterator.
func (it *Iterator) Next() (item Item, ok bool, status buffer.Status) {
	if buffer.Generation(it.buf) != it.gen {
		return Item{}, false, buffer.InvalidIterator
	}
	for it.top > 0 {
		frame := &it.stack[it.top-1]
		nodeOff := frame.nodeOff
		if frame.idx >= KeyCount(it.buf, nodeOff) {
			it.top--
			continue
		}
		idx := frame.idx
		frame.idx++
		kv := int(kvOffset(it.buf, nodeOff, idx))
		var cur Cursor
		var key []byte
		if it.isObject {
			hdr, k := ReadEntryKey(it.buf, kv)
			key = k
			cur = Cursor{ValuePos: kv + hdr, KeyLen: len(k)}
		} else {
			cur = Cursor{ValuePos: kv}
		}
		if !IsLeaf(it.buf, nodeOff) {
			child := int(childOffset(it.buf, nodeOff, idx+1))
			it.pushLeftmost(child)
		}
		return Item{Key: key, Cursor: cur}, true, buffer.None
	}
	return Item{}, false, buffer.IteratorDone
}
