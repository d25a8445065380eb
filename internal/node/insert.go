package node

import "github.com/andersstorhaug/lite3/internal/buffer"

// estimateWorst bounds the bytes Set might need to consume for a brand
// new entry, including every split that could cascade from leaf to a
// fresh root. depth is the number of levels actually descended for
// this key (path.depth): a split can only cascade that far, plus one
// more node for the root's copy-out when the very top splits. Bounding
// by the descended depth rather than the tree's structural maximum
// keeps the reservation proportional to the tree that actually exists,
// so a fresh root's first insert doesn't reserve space for splits nine
// levels deep. It deliberately overestimates: a Set call either fits
// comfortably inside this bound or fails with InsufficientBuffer before
// touching a single byte, so a caller never observes a half-applied
// insert.
func estimateWorst(key []byte, spec ValueSpec, depth int) int {
	entry := KeyHeaderSize(key) + spec.Size(0) + buffer.NodeAlign
	perLevel := buffer.NodeAlign + buffer.NodeSize
	// One split per descended level, plus one more for the root's
	// copy-out node when the very top of the tree splits.
	return entry + (depth+1)*perLevel
}

// Set inserts or overwrites key's value within the container rooted at
// containerOff. *position advances by whatever bytes are written; on
// InsufficientBuffer the buffer is left completely unmutated. On success
// the buffer's generation is bumped and, for a brand new key, the
// container's live entry count grows by one. childOff is the offset of
// a freshly initialized Object/Array node, 0 for scalar values.
func Set(buf []byte, position *int, cap int, containerOff int, key Key, spec ValueSpec) (childOff int, status buffer.Status) {
	var p path
	result, ok, h, status := descend(buf, containerOff, key, &p)
	if status.Failed() && status != buffer.KeyNotFound {
		return 0, status
	}

	gen := buffer.Generation(buf)

	if ok {
		return setExisting(buf, position, cap, result, key, spec)
	}

	if worst := estimateWorst(key.Bytes, spec, p.depth); *position+worst > cap {
		return 0, buffer.InsufficientBuffer
	}

	newKV := *position
	keyLen := WriteEntryKey(buf, newKV, key.Bytes)
	prevPos := newKV + keyLen
	consumed, childOff := spec.Write(buf, prevPos)
	*position = prevPos + consumed

	leafOff := p.nodeOff[p.depth-1]
	insertIndex := p.slot[p.depth-1]
	status = insertWithSplit(buf, position, cap, gen, containerOff, &p, leafOff, insertIndex, h, newKV)
	if status.Failed() {
		return 0, status
	}
	AddSize(buf, containerOff, 1)
	buffer.BumpGeneration(buf)
	return childOff, buffer.None
}

// setExisting overwrites the value at an already-located entry, either
// in place (new value fits within the old value's footprint) or by
// leaking the old entry and appending a fresh one at *position.
func setExisting(buf []byte, position *int, cap int, result found, key Key, spec ValueSpec) (childOff int, status buffer.Status) {
	oldValuePos := result.ValuePos
	oldSpan, st := ValueSpan(buf, oldValuePos)
	if st.Failed() {
		return 0, st
	}

	var hdrSize int
	if key.Bytes != nil {
		hdrSize = KeyHeaderSize(key.Bytes)
	}
	unpaddedPrevPos := result.KVOffset + hdrSize
	oldRegion := (oldValuePos - unpaddedPrevPos) + oldSpan
	newRegion := spec.Size(unpaddedPrevPos)

	if newRegion <= oldRegion {
		buffer.Zero(buf, unpaddedPrevPos, unpaddedPrevPos+oldRegion)
		consumed, childOff := spec.Write(buf, unpaddedPrevPos)
		_ = consumed
		buffer.BumpGeneration(buf)
		return childOff, buffer.None
	}

	worst := hdrSize + newRegion + buffer.NodeAlign
	if *position+worst > cap {
		return 0, buffer.InsufficientBuffer
	}

	buffer.Zero(buf, result.KVOffset, oldValuePos+oldSpan)

	newKV := *position
	keyLen := WriteEntryKey(buf, newKV, key.Bytes)
	prevPos := newKV + keyLen
	consumed, childOff := spec.Write(buf, prevPos)
	*position = prevPos + consumed

	setKVOffset(buf, result.NodeOff, result.Slot, uint32(newKV))
	buffer.BumpGeneration(buf)
	return childOff, buffer.None
}

// insertSlot inserts (h, kv) at index i of the node at off, shifting
// hashes/kv_offsets right by one. rightChild is inserted at
// child_offsets[i+1]; passing 0 is a no-op on a leaf, whose child slots
// are already all zero.
func insertSlot(buf []byte, off, i int, h uint32, kv, rightChild int) {
	kc := KeyCount(buf, off)
	for j := kc; j > i; j-- {
		setHash(buf, off, j, hash(buf, off, j-1))
		setKVOffset(buf, off, j, kvOffset(buf, off, j-1))
	}
	setHash(buf, off, i, h)
	setKVOffset(buf, off, i, uint32(kv))
	for j := kc + 1; j > i+1; j-- {
		setChildOffset(buf, off, j, childOffset(buf, off, j-1))
	}
	setChildOffset(buf, off, i+1, uint32(rightChild))
	setKeyCount(buf, off, kc+1)
}

// insertWithSplit places (h, kv) at insertIndex within leafOff, splitting
// leafOff and, cascading upward through p's ancestor chain, any full
// ancestor it must promote a key into. When the split reaches the top of
// the container's own tree (containerOff itself), a fresh root is built
// in place, since containerOff must never move.
func insertWithSplit(buf []byte, position *int, cap int, gen uint32, containerOff int, p *path, leafOff, insertIndex int, h uint32, kv int) buffer.Status {
	curOff := leafOff
	curIndex := insertIndex
	curHash := h
	curKV := kv
	curRight := 0
	level := p.depth - 1

	for {
		if KeyCount(buf, curOff) < buffer.KeyCountMax {
			insertSlot(buf, curOff, curIndex, curHash, curKV, curRight)
			return buffer.None
		}

		siblingOff, promHash, promKV, status := splitNode(buf, curOff, position, cap, gen)
		if status.Failed() {
			return status
		}

		targetOff := curOff
		if curHash > promHash {
			targetOff = siblingOff
		}
		idx, _ := scanNode(buf, targetOff, curHash)
		insertSlot(buf, targetOff, idx, curHash, curKV, curRight)

		if level == 0 {
			oldSize := Size(buf, containerOff)
			copyOff, cstatus := copyNodeOut(buf, containerOff, position, cap)
			if cstatus.Failed() {
				return cstatus
			}
			rootTag := Type(buf, containerOff)
			InitNode(buf, containerOff, rootTag, gen)
			setHash(buf, containerOff, 0, promHash)
			setKVOffset(buf, containerOff, 0, uint32(promKV))
			setChildOffset(buf, containerOff, 0, uint32(copyOff))
			setChildOffset(buf, containerOff, 1, uint32(siblingOff))
			setKeyCount(buf, containerOff, 1)
			setSize(buf, containerOff, oldSize)
			return buffer.None
		}

		level--
		curOff = p.nodeOff[level]
		curIndex = p.slot[level]
		curHash = promHash
		curKV = promKV
		curRight = siblingOff
	}
}
