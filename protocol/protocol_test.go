package protocol

import (
	"bytes"
	"errors"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/particle-morph/gesture"
	"github.com/lixenwraith/particle-morph/parameter"
)

func sampleHand() gesture.Frame {
	lm := make([]gesture.Landmark, parameter.LandmarkCount)
	for i := range lm {
		lm[i] = gesture.Landmark{X: float64(i) / 40, Y: 0.5, Z: -0.01}
	}
	return gesture.Frame{Hands: [][]gesture.Landmark{lm}}
}

func TestDecode_Basic(t *testing.T) {
	f, hdr, err := Decode([]byte(`{"seq":7,"ts":1712.5,"hands":[[{"x":0.4,"y":0.6,"z":0.1},{"x":0.2,"y":0.3}]]}`))
	require.NoError(t, err)

	assert.Equal(t, Header{Seq: 7, TS: 1712.5}, hdr)
	require.Len(t, f.Hands, 1)
	require.Len(t, f.Hands[0], 2)
	assert.Equal(t, gesture.Landmark{X: 0.4, Y: 0.6, Z: 0.1}, f.Hands[0][0])
	assert.Equal(t, 0.0, f.Hands[0][1].Z)
}

func TestDecode_NoHand(t *testing.T) {
	for _, msg := range []string{`{"seq":1}`, `{"hands":[]}`, `{"hands":null}`} {
		f, _, err := Decode([]byte(msg))
		require.NoError(t, err, msg)
		assert.Empty(t, f.Hands, msg)
		assert.False(t, f.Detected(), msg)
	}
}

func TestDecode_NullCoordinateIsNaN(t *testing.T) {
	frame := sampleHand()
	data, err := Encode(frame, Header{})
	require.NoError(t, err)

	// Null out the index tip
	msg := strings.Replace(string(data), `{"x":0.2,"y":0.5,"z":-0.01}`, `{"x":null,"y":0.5}`, 1)
	require.NotEqual(t, string(data), msg)

	f, _, err := Decode([]byte(msg))
	require.NoError(t, err)
	assert.True(t, math.IsNaN(f.Hands[0][parameter.LandmarkIndexTip].X))
	assert.False(t, f.Detected(), "null fingertip must read as no hand")
}

func TestDecode_Malformed(t *testing.T) {
	for _, msg := range []string{``, `not json`, `{"hands":"x"}`, `{"hands":[{"x":1}]}`, `[1,2]`} {
		_, _, err := Decode([]byte(msg))
		assert.ErrorIs(t, err, ErrMalformed, msg)
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	frame := sampleHand()
	frame.Hands[0][3].Y = math.NaN()

	data, err := Encode(frame, Header{Seq: 3, TS: 0.25})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"y":null`)

	got, hdr, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), hdr.Seq)
	assert.Equal(t, frame.Hands[0][parameter.LandmarkIndexTip], got.Hands[0][parameter.LandmarkIndexTip])
	assert.True(t, math.IsNaN(got.Hands[0][3].Y))
}

func TestJSONL_ReadWrite(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.Write(sampleHand(), Header{Seq: 1, TS: 0}))
	require.NoError(t, w.Write(gesture.NoHand, Header{Seq: 2, TS: 0.033}))
	require.NoError(t, w.Flush())

	// Blank lines in recordings are tolerated
	r := NewReader(strings.NewReader("\n" + buf.String() + "\n\n"))

	f, hdr, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), hdr.Seq)
	assert.True(t, f.Detected())

	f, hdr, err = r.Next()
	require.NoError(t, err)
	assert.Equal(t, 0.033, hdr.TS)
	assert.False(t, f.Detected())

	_, _, err = r.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestJSONL_MalformedLine(t *testing.T) {
	r := NewReader(strings.NewReader("{\"seq\":1}\n{oops\n"))
	_, _, err := r.Next()
	require.NoError(t, err)

	_, _, err = r.Next()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformed))
	assert.Contains(t, err.Error(), "line 2")
}
