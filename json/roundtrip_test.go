package json

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/andersstorhaug/lite3/lite3"
	"github.com/stretchr/testify/require"
)

// S5 — streaming decode with output grow. periodic_table.json (>250KB,
// generated with a real element density column plus padding notes so
// it exceeds the growth threshold multiple times over) is fed through
// a small-chunk reader into a destination that starts at MinBuf and
// must grow repeatedly to hold the whole message.
func TestStreamingDecodeWithGrow(t *testing.T) {
	path := filepath.Join("testdata", "periodic_table.json")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(data), 250*1024)

	root, err := Decode(&chunkReader{data: data, chunk: 4096}, Options{InitialBuffer: 1024})
	require.NoError(t, err)

	doc, ok := root.(*lite3.Object)
	require.True(t, ok)

	elements, err := doc.GetArray("elements")
	require.NoError(t, err)

	var densest string
	var maxDensity float64
	it := elements.Iterate()
	for it.Next() {
		el := it.Object()
		typ, err := el.TypeOf("density_kg_per_m3")
		require.NoError(t, err)
		if typ != lite3.TagF64 && typ != lite3.TagI64 {
			continue
		}
		var d float64
		if typ == lite3.TagF64 {
			d, err = el.GetF64("density_kg_per_m3")
		} else {
			var i int64
			i, err = el.GetI64("density_kg_per_m3")
			d = float64(i)
		}
		require.NoError(t, err)
		if d > maxDensity {
			maxDensity = d
			nameHandle, nerr := el.GetString("name")
			require.NoError(t, nerr)
			densest, err = nameHandle.Resolve()
			require.NoError(t, err)
		}
	}
	require.NoError(t, it.Error())
	require.Equal(t, "Osmium", densest)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, doc))

	reencoded, err := DecodeBytes(buf.Bytes(), Options{})
	require.NoError(t, err)
	reobj := reencoded.(*lite3.Object)
	relements, err := reobj.GetArray("elements")
	require.NoError(t, err)
	require.Equal(t, elements.Count(), relements.Count())
}

func TestFullRoundTripPreservesStructure(t *testing.T) {
	const src = `{
		"id": "race-42",
		"finished": true,
		"attendance": 87000,
		"average_speed_kph": 213.7,
		"podium": ["Verstappen", "Hamilton", "Leclerc"],
		"weather": {"temp_c": 24.5, "rain": false},
		"telemetry": null
	}`

	root, err := DecodeBytes([]byte(src), Options{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, root))

	root2, err := DecodeBytes(buf.Bytes(), Options{})
	require.NoError(t, err)

	obj := root2.(*lite3.Object)
	id, err := obj.GetString("id")
	require.NoError(t, err)
	v, err := id.Resolve()
	require.NoError(t, err)
	require.Equal(t, "race-42", v)

	podium, err := obj.GetArray("podium")
	require.NoError(t, err)
	require.EqualValues(t, 3, podium.Count())

	weather, err := obj.GetObject("weather")
	require.NoError(t, err)
	temp, err := weather.GetF64("temp_c")
	require.NoError(t, err)
	require.InDelta(t, 24.5, temp, 1e-9)
}
