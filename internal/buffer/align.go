package buffer

// Align rounds n up to the next multiple of NodeAlign.
func Align(n int) int {
	return (n + NodeAlign - 1) &^ (NodeAlign - 1)
}

// Aligned reports whether n is already a multiple of NodeAlign.
func Aligned(n int) bool {
	return n&(NodeAlign-1) == 0
}

// Zero clears buf[start:end]. Every alignment pad and every byte vacated
// by a shrinking overwrite must go through this: a stale non-zero byte
// where a tag is later read back would be interpreted as a value.
func Zero(buf []byte, start, end int) {
	if start >= end {
		return
	}
	region := buf[start:end]
	for i := range region {
		region[i] = 0
	}
}

// Grow implements the 4x growth policy: given the current length of buf
// and a required minimum length, returns a freshly allocated buffer of
// length min(4*len(buf), max) - clamped to at least need - with buf's
// content copied into the prefix. The grown region past len(buf) is
// zero (Go's make guarantees this).
//
// Grow fails with InsufficientBuffer when there is no room to align a
// node boundary at the very end of the requested capacity, mirroring the
// spec's "no headroom for alignment" rule, and also when max leaves no
// room to grow past the current length at all — otherwise a caller
// retrying against an arena already pinned at max would call Grow
// forever, since a same-size "growth" still reports GrewBuffer.
func Grow(buf []byte, need, max int) (grown []byte, status Status) {
	length := len(buf)
	newLen := length * 4
	if newLen < need {
		newLen = need
	}
	if newLen > max {
		newLen = max
	}
	if newLen < MinBuf {
		newLen = MinBuf
	}
	if newLen <= length {
		return nil, InsufficientBuffer
	}
	if need > newLen-(NodeAlign-1) {
		return nil, InsufficientBuffer
	}
	grown = make([]byte, newLen)
	copy(grown, buf)
	return grown, GrewBuffer
}
