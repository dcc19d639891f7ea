package dispatch

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/image-editor/internal/imaging"
)

func TestParseParams(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Params
	}{
		{"empty", "", Params{}},
		{"whitespace", "   ", Params{}},
		{"null", "null", Params{}},
		{"object", `{"x": 10, "color": "red"}`, Params{"x": float64(10), "color": "red"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseParams(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseParams_Invalid(t *testing.T) {
	for _, raw := range []string{"{", "[1,2]", `"string"`, "42", "{x: 1}"} {
		t.Run(raw, func(t *testing.T) {
			_, err := ParseParams(raw)
			require.Error(t, err)

			var perr *ParameterError
			assert.True(t, errors.As(err, &perr))
			assert.Contains(t, err.Error(), "invalid parameters")
		})
	}
}

func TestReader_Numbers(t *testing.T) {
	rd := &reader{p: Params{
		"f":      12.75,
		"i":      int(3),
		"n":      json.Number("4.5"),
		"neg":    -7.9,
		"null":   nil,
		"string": "nope",
	}}

	assert.Equal(t, 12.75, rd.float("f", 0))
	assert.Equal(t, 12, rd.int("f", 0), "ints truncate")
	assert.Equal(t, 3, rd.int("i", 0))
	assert.Equal(t, 4.5, rd.float("n", 0))
	assert.Equal(t, -7, rd.int("neg", 0))
	assert.Equal(t, 99, rd.int("missing", 99))
	assert.Equal(t, 5, rd.int("null", 5), "null takes the default")
	require.NoError(t, rd.err)

	assert.Equal(t, 1.5, rd.float("string", 1.5))
	assert.Error(t, rd.err)
}

func TestReader_IntRange(t *testing.T) {
	for _, v := range []float64{math.Inf(1), math.NaN(), 1e12} {
		rd := &reader{p: Params{"x": v}}
		assert.Equal(t, 7, rd.int("x", 7))
		assert.Error(t, rd.err)
	}
}

func TestReader_KeepsFirstError(t *testing.T) {
	rd := &reader{p: Params{"a": "x", "b": true}}

	rd.int("a", 0)
	first := rd.err
	rd.string("b", "")

	assert.Same(t, first, rd.err)
	assert.Contains(t, rd.err.Error(), `"a"`)
}

func TestReader_Color(t *testing.T) {
	rd := &reader{p: Params{"c": "#00ff00"}}
	assert.Equal(t, imaging.Color{G: 255, A: 255}, rd.color("c", "black"))
	assert.Equal(t, imaging.Black, rd.color("missing", "black"))
	require.NoError(t, rd.err)

	rd = &reader{p: Params{"c": "not-a-color"}}
	rd.color("c", "black")
	require.Error(t, rd.err)
	assert.Equal(t, `parameter "c": unknown color: "not-a-color"`, rd.err.Error())
	assert.Equal(t, `unknown color: "not-a-color"`, errors.Cause(rd.err).Error())
}

func TestReader_OptionalColor(t *testing.T) {
	rd := &reader{p: Params{
		"null":  nil,
		"empty": "",
		"blue":  "blue",
	}}

	got := rd.optionalColor("missing", "black")
	require.NotNil(t, got)
	assert.Equal(t, imaging.Black, *got)

	assert.Nil(t, rd.optionalColor("missing", ""))
	assert.Nil(t, rd.optionalColor("null", "black"), "null switches the color off")
	assert.Nil(t, rd.optionalColor("empty", "black"))

	got = rd.optionalColor("blue", "")
	require.NotNil(t, got)
	assert.Equal(t, imaging.Color{B: 255, A: 255}, *got)
	require.NoError(t, rd.err)
}
