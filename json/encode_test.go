package json

import (
	"bytes"
	"testing"

	"github.com/andersstorhaug/lite3/lite3"
	"github.com/stretchr/testify/require"
)

func TestEncodeObject(t *testing.T) {
	o := lite3.NewGrowableObject(1024, 1<<20)
	require.NoError(t, o.SetString("name", "Monaco"))
	require.NoError(t, o.SetI64("laps", 78))
	require.NoError(t, o.SetBool("street_circuit", true))
	require.NoError(t, o.SetNull("cancelled"))

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, o))

	root, err := DecodeBytes(buf.Bytes(), Options{})
	require.NoError(t, err)
	back := root.(*lite3.Object)

	name, err := back.GetString("name")
	require.NoError(t, err)
	v, err := name.Resolve()
	require.NoError(t, err)
	require.Equal(t, "Monaco", v)

	laps, err := back.GetI64("laps")
	require.NoError(t, err)
	require.EqualValues(t, 78, laps)
}

func TestEncodeBytesAsBase64(t *testing.T) {
	o := lite3.NewGrowableObject(1024, 1<<20)
	require.NoError(t, o.SetBytes("blob", []byte{0x00, 0x01, 0xFF, 0x10}))

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, o))
	require.Contains(t, buf.String(), `"blob":"`)

	root, err := DecodeBytes(buf.Bytes(), Options{})
	require.NoError(t, err)
	back := root.(*lite3.Object)
	s, err := back.GetString("blob")
	require.NoError(t, err)
	v, err := s.Resolve()
	require.NoError(t, err)
	require.Equal(t, "AAH/EA==", v)
}

func TestEncodeEscapesControlCharacters(t *testing.T) {
	o := lite3.NewGrowableObject(1024, 1<<20)
	require.NoError(t, o.SetString("s", "line1\nline2\ttab\"quote\"\\slash"))

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, o))

	root, err := DecodeBytes(buf.Bytes(), Options{})
	require.NoError(t, err)
	back := root.(*lite3.Object)
	s, err := back.GetString("s")
	require.NoError(t, err)
	v, err := s.Resolve()
	require.NoError(t, err)
	require.Equal(t, "line1\nline2\ttab\"quote\"\\slash", v)
}

func TestEncodeNestedContainers(t *testing.T) {
	o := lite3.NewGrowableObject(1024, 1<<20)
	arr, err := o.SetArray("items")
	require.NoError(t, err)
	require.NoError(t, arr.AppendI64(1))
	require.NoError(t, arr.AppendI64(2))
	child, err := arr.AppendObject()
	require.NoError(t, err)
	require.NoError(t, child.SetString("k", "v"))

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, o))

	root, err := DecodeBytes(buf.Bytes(), Options{})
	require.NoError(t, err)
	back := root.(*lite3.Object)
	items, err := back.GetArray("items")
	require.NoError(t, err)
	require.EqualValues(t, 3, items.Count())
}

func TestEncodeArrayTopLevel(t *testing.T) {
	a := lite3.NewGrowableArray(1024, 1<<20)
	require.NoError(t, a.AppendString("a"))
	require.NoError(t, a.AppendF64(1.5))

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, a))
	require.Equal(t, `["a",1.5]`, buf.String())
}

// A whole-valued double must render with a fractional marker so it
// re-decodes as F64, not I64.
func TestEncodeWholeValuedFloatStaysFloat(t *testing.T) {
	o := lite3.NewGrowableObject(1024, 1<<20)
	require.NoError(t, o.SetF64("speed", 3.0))

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, o))
	require.Contains(t, buf.String(), `"speed":3.0`)

	root, err := DecodeBytes(buf.Bytes(), Options{})
	require.NoError(t, err)
	back := root.(*lite3.Object)
	typ, err := back.TypeOf("speed")
	require.NoError(t, err)
	require.EqualValues(t, lite3.TagF64, typ)
	v, err := back.GetF64("speed")
	require.NoError(t, err)
	require.Equal(t, 3.0, v)
}

func TestEncodeRejectsUnsupportedType(t *testing.T) {
	var buf bytes.Buffer
	err := Encode(&buf, 42)
	require.Error(t, err)
}
