package proptypes

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColourCast(t *testing.T) {
	k := Colour{}

	for name, tc := range map[string]struct {
		in   any
		want color.RGBA
	}{
		"rgba passthrough": {color.RGBA{R: 1, G: 2, B: 3, A: 4}, color.RGBA{R: 1, G: 2, B: 3, A: 4}},
		"generic color":    {color.Gray{Y: 0x80}, color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}},
		"svg name":         {"red", color.RGBA{R: 0xff, A: 0xff}},
		"name with spaces": {"  SlateGray ", color.RGBA{R: 0x70, G: 0x80, B: 0x90, A: 0xff}},
		"short hex":        {"#f0c", color.RGBA{R: 0xff, G: 0x00, B: 0xcc, A: 0xff}},
		"long hex":         {"#102030", color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}},
		"hex with alpha":   {"#10203040", color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 0x40}},
	} {
		t.Run(name, func(t *testing.T) {
			got, err := k.Cast(nil, tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestColourCastRejects(t *testing.T) {
	k := Colour{}
	for _, in := range []any{"notacolour", "#12", "#12345", "#zzzzzz", 42} {
		_, err := k.Cast(nil, in)
		assert.Error(t, err, "cast %v", in)
	}
}

func TestVersionCast(t *testing.T) {
	k := Version{}

	got, err := k.Cast(nil, "1.2.3")
	require.NoError(t, err)
	assert.Equal(t, "v1.2.3", got)

	got, err = k.Cast(nil, "v1.2")
	require.NoError(t, err)
	assert.Equal(t, "v1.2.0", got, "missing parts are filled in")

	_, err = k.Cast(nil, 123)
	assert.Error(t, err)
}

func TestVersionValidate(t *testing.T) {
	k := Version{}
	assert.NoError(t, k.Validate(nil, "v1.2.3"))
	assert.NoError(t, k.Validate(nil, "v2.0.0-rc.1"))
	assert.Error(t, k.Validate(nil, "vbanana"))
	assert.Error(t, k.Validate(nil, 10))
}
