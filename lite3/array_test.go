package lite3

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestArrayAppendAndOverwrite(t *testing.T) {
	a := NewGrowableArray(1024, 1<<20)

	for _, s := range []string{"zebra", "giraffe", "buffalo"} {
		require.NoError(t, a.AppendString(s))
	}
	require.EqualValues(t, 3, a.Count())

	require.NoError(t, a.SetString(1, "gnu"))
	h, err := a.GetString(1)
	require.NoError(t, err)
	v, err := h.Resolve()
	require.NoError(t, err)
	require.Equal(t, "gnu", v)
	require.EqualValues(t, 3, a.Count())
}

func TestArrayOutOfBounds(t *testing.T) {
	a := NewArray(1024)
	require.NoError(t, a.AppendI64(1))

	err := a.SetNull(5)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrArrayIndexOutOfBounds))
}

func TestArrayNestedAppend(t *testing.T) {
	a := NewGrowableArray(1024, 1<<20)

	obj, err := a.AppendObject()
	require.NoError(t, err)
	require.NoError(t, obj.SetI64("x", 1))

	sub, err := a.AppendArray()
	require.NoError(t, err)
	require.NoError(t, sub.AppendBool(true))

	require.EqualValues(t, 2, a.Count())

	gotObj, err := a.GetObject(0)
	require.NoError(t, err)
	x, err := gotObj.GetI64("x")
	require.NoError(t, err)
	require.EqualValues(t, 1, x)

	gotArr, err := a.GetArray(1)
	require.NoError(t, err)
	b, err := gotArr.GetBool(0)
	require.NoError(t, err)
	require.True(t, b)
}

func TestArrayIterate(t *testing.T) {
	a := NewGrowableArray(1024, 1<<20)
	for i := int64(0); i < 5; i++ {
		require.NoError(t, a.AppendI64(i))
	}

	var got []int64
	it := a.Iterate()
	for it.Next() {
		require.Nil(t, it.Key())
		got = append(got, it.I64())
	}
	require.NoError(t, it.Error())
	require.Equal(t, []int64{0, 1, 2, 3, 4}, got)
}

func TestArrayGrowsPastInitialCapacity(t *testing.T) {
	a := NewGrowableArray(64, 1<<20)
	for i := 0; i < 200; i++ {
		require.NoError(t, a.AppendString("some reasonably long padding string value"))
	}
	require.EqualValues(t, 200, a.Count())
}

func TestOpenArrayRejectsObject(t *testing.T) {
	o := NewObject(1024)
	_, err := OpenArray(o.Bytes())
	require.Error(t, err)
}

// A growable container pinned at max must fail once it's genuinely
// full, not loop forever re-growing to the same size.
func TestArrayReportsInsufficientBufferAtMaxCapacity(t *testing.T) {
	a := NewGrowableArray(64, 512)

	var err error
	for i := 0; i < 1000; i++ {
		if err = a.AppendString("padding string long enough to force growth"); err != nil {
			break
		}
	}
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrInsufficientBuffer))
}
