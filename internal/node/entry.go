package node

// An entry is the (key-tag, key-bytes, value-tag, value-bytes)
// serialization pointed to by one kv_offset slot. Array elements have
// an implicit key: no key tag, no key bytes are stored, and the "hash"
// slot holds the literal index (set-by-index) or current size (append).

// KeyHeaderSize returns the bytes consumed by the key tag plus key
// bytes plus trailing NUL for an object key. It is 0 for an array
// element (key == nil signals "array").
func KeyHeaderSize(key []byte) int {
	if key == nil {
		return 0
	}
	keySize := len(key) + 1 // + NUL
	return KeyTagSize(keySize) + keySize
}

// WriteEntryKey writes the key portion of an entry at buf[pos:] and
// returns the number of bytes written. key == nil (array element) writes
// nothing.
func WriteEntryKey(buf []byte, pos int, key []byte) int {
	if key == nil {
		return 0
	}
	keySize := len(key) + 1
	tagLen := PutKeyTag(buf, pos, keySize)
	copy(buf[pos+tagLen:], key)
	buf[pos+tagLen+len(key)] = 0
	return tagLen + keySize
}

// ReadEntryKey reads the key bytes (excluding the trailing NUL) stored
// at buf[pos:], returning the bytes consumed by the key header
// (tag+bytes+NUL) and the key content itself (zero-copy). It must not be
// called on an array container's entries.
func ReadEntryKey(buf []byte, pos int) (headerSize int, key []byte) {
	tagLen, keySize := ReadKeyTag(buf, pos)
	key = buf[pos+tagLen : pos+tagLen+keySize-1]
	headerSize = tagLen + keySize
	return
}

// KeyMatches reports whether the key stored at buf[pos:] equals probe.
func KeyMatches(buf []byte, pos int, probe []byte) bool {
	_, stored := ReadEntryKey(buf, pos)
	return string(stored) == string(probe)
}

// EntrySpan returns the total length (key header + value) of the entry
// whose key header starts at pos, given the offset of its value (as
// returned when the entry was written or located).
func EntrySpan(buf []byte, keyPos, valuePos int) (int, error) {
	span, status := ValueSpan(buf, valuePos)
	if status.Failed() {
		return 0, status
	}
	return (valuePos - keyPos) + span, nil
}
