package node

import (
	"testing"

	"github.com/andersstorhaug/lite3/internal/buffer"
	"github.com/stretchr/testify/require"
)

func newObjectBuf(t *testing.T, size int) ([]byte, int) {
	t.Helper()
	buf := make([]byte, size)
	pos := InitRoot(buf, buffer.TagObject)
	return buf, pos
}

func newArrayBuf(t *testing.T, size int) ([]byte, int) {
	t.Helper()
	buf := make([]byte, size)
	pos := InitRoot(buf, buffer.TagArray)
	return buf, pos
}

func setString(t *testing.T, buf []byte, pos *int, containerOff int, key, value string) {
	t.Helper()
	_, status := Set(buf, pos, len(buf), containerOff, ObjectKey([]byte(key)), StringSpec([]byte(value)))
	require.True(t, status.OK(), "set %q: %v", key, status)
}

func getString(t *testing.T, buf []byte, containerOff int, key string) string {
	t.Helper()
	cur, status := Lookup(buf, containerOff, ObjectKey([]byte(key)))
	require.True(t, status.OK(), "lookup %q: %v", key, status)
	require.Equal(t, buffer.TagString, ReadTag(buf, cur.ValuePos))
	return string(ReadString(buf, cur.ValuePos))
}

// S1 — basic object, plus overwrite and count.
func TestObjectBasic(t *testing.T) {
	buf, pos := newObjectBuf(t, 1024)

	setString(t, buf, &pos, 0, "event", "lap_complete")
	_, status := Set(buf, &pos, len(buf), 0, ObjectKey([]byte("lap")), I64Spec(55))
	require.True(t, status.OK())
	_, status = Set(buf, &pos, len(buf), 0, ObjectKey([]byte("time_sec")), F64Spec(88.427))
	require.True(t, status.OK())
	_, status = Set(buf, &pos, len(buf), 0, ObjectKey([]byte("lap")), I64Spec(56))
	require.True(t, status.OK())

	require.EqualValues(t, 3, Size(buf, 0))
	require.Equal(t, "lap_complete", getString(t, buf, 0, "event"))

	cur, status := Lookup(buf, 0, ObjectKey([]byte("lap")))
	require.True(t, status.OK())
	require.EqualValues(t, 56, ReadI64(buf, cur.ValuePos))
}

// S2 — alignment zeroing: padding before a nested container is zero,
// and so are the first two bytes at the old write frontier when a string
// member is overwritten by a larger container value.
func TestAlignmentZeroing(t *testing.T) {
	buf := make([]byte, 1024)
	for i := range buf {
		buf[i] = 0xEE
	}
	pos := InitRoot(buf, buffer.TagObject)

	_, status := Set(buf, &pos, len(buf), 0, ObjectKey([]byte("a")), ContainerSpec(buffer.TagObject, 0))
	require.True(t, status.OK())
	require.Equal(t, byte(0), buf[buffer.NodeSize])

	buf2 := make([]byte, 1024)
	for i := range buf2 {
		buf2[i] = 0xEE
	}
	pos2 := InitRoot(buf2, buffer.TagObject)
	setString(t, buf2, &pos2, 0, "key1", "val1")
	p := pos2
	_, status = Set(buf2, &pos2, len(buf2), 0, ObjectKey([]byte("key1")), ContainerSpec(buffer.TagObject, 0))
	require.True(t, status.OK())
	require.Equal(t, byte(0), buf2[p])
	require.Equal(t, byte(0), buf2[p+1])
}

// S3 — array indexing and overwrite.
func TestArrayIndexing(t *testing.T) {
	buf, pos := newArrayBuf(t, 1024)

	for _, s := range []string{"zebra", "giraffe", "buffalo", "lion", "rhino", "elephant"} {
		_, status := Append(buf, &pos, len(buf), 0, StringSpec([]byte(s)))
		require.True(t, status.OK())
	}
	require.EqualValues(t, 6, Size(buf, 0))

	_, status := SetIndex(buf, &pos, len(buf), 0, 2, StringSpec([]byte("gnu")))
	require.True(t, status.OK())

	cur, status := GetIndex(buf, 0, 2)
	require.True(t, status.OK())
	require.Equal(t, "gnu", string(ReadString(buf, cur.ValuePos)))
	require.EqualValues(t, 6, Size(buf, 0))

	_, status = SetIndex(buf, &pos, len(buf), 0, 6, NullSpec())
	require.Equal(t, buffer.ArrayIndexOutOfBounds, status)
}

// S4 — DJB2 collision robustness. "0Q" and "10" collide under the
// spec's DJB2 recurrence.
func TestHashCollisionRobustness(t *testing.T) {
	require.Equal(t, Hash([]byte("0Q")), Hash([]byte("10")))

	buf, pos := newObjectBuf(t, 1024)
	_, status := Set(buf, &pos, len(buf), 0, ObjectKey([]byte("0Q")), NullSpec())
	require.True(t, status.OK())
	_, status = Set(buf, &pos, len(buf), 0, ObjectKey([]byte("10")), NullSpec())
	require.True(t, status.OK())

	require.True(t, Exists(buf, 0, ObjectKey([]byte("0Q"))))
	require.True(t, Exists(buf, 0, ObjectKey([]byte("10"))))
}

// S6 — node split under sustained insertion; invariants 1 and 7 hold
// after every insert.
func TestNodeSplitInvariants(t *testing.T) {
	buf, pos := newObjectBuf(t, 64*1024)

	inserted := map[string]bool{}
	for i := 0; i < 64; i++ {
		key := keyFor(i)
		_, status := Set(buf, &pos, len(buf), 0, ObjectKey([]byte(key)), I64Spec(int64(i)))
		require.True(t, status.OK(), "insert %d (%s): %v", i, key, status)
		inserted[key] = true

		require.EqualValues(t, len(inserted), Size(buf, 0))
		checkInvariant1(t, buf, 0)
	}

	for key := range inserted {
		require.True(t, Exists(buf, 0, ObjectKey([]byte(key))), "missing %s", key)
	}
}

func keyFor(i int) string {
	const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	return string([]byte{alphabet[i%len(alphabet)], alphabet[(i/len(alphabet))%len(alphabet)], byte('a' + i%7)})
}

// checkInvariant1 walks every reachable node and checks: hashes strictly
// ascending across [0, key_count), zero past key_count, and child
// offsets are either all-zero (leaf) or exactly key_count+1 populated
// followed by zeros.
func checkInvariant1(t *testing.T, buf []byte, off int) {
	t.Helper()
	kc := KeyCount(buf, off)
	var prev uint32
	for i := 0; i < kc; i++ {
		h := hash(buf, off, i)
		if i > 0 {
			require.Greater(t, h, prev, "hashes not strictly ascending at node %d slot %d", off, i)
		}
		prev = h
	}
	for i := kc; i < buffer.KeyCountMax; i++ {
		require.EqualValues(t, 0, hash(buf, off, i), "trailing hash not zero at node %d slot %d", off, i)
	}

	if IsLeaf(buf, off) {
		for i := 0; i <= buffer.KeyCountMax; i++ {
			require.EqualValues(t, 0, childOffset(buf, off, i))
		}
		return
	}
	for i := 0; i <= kc; i++ {
		require.NotZero(t, childOffset(buf, off, i))
		checkInvariant1(t, buf, int(childOffset(buf, off, i)))
	}
	for i := kc + 1; i <= buffer.KeyCountMax; i++ {
		require.EqualValues(t, 0, childOffset(buf, off, i))
	}
}

func TestInsufficientBufferLeavesNoTrace(t *testing.T) {
	buf, pos := newObjectBuf(t, buffer.NodeSize+8)
	before := append([]byte(nil), buf...)
	beforePos := pos

	_, status := Set(buf, &pos, len(buf), 0, ObjectKey([]byte("a-very-long-key-that-cannot-fit")), StringSpec([]byte("also long")))
	require.Equal(t, buffer.InsufficientBuffer, status)
	require.Equal(t, beforePos, pos)
	require.Equal(t, before, buf)
}
