// Copyright (c) 2026 Bhugol. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package compose_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bhugol/internal/compose"
	"github.com/taibuivan/bhugol/internal/platform/apperr"
)

// encodePNG renders a solid-color test capture of the given size.
func encodePNG(t *testing.T, width, height int, fill color.Color) []byte {
	t.Helper()

	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			canvas.Set(x, y, fill)
		}
	}

	var buffer bytes.Buffer
	require.NoError(t, png.Encode(&buffer, canvas))
	return buffer.Bytes()
}

/*
TestCombine_Dimensions verifies the composition geometry: height is the
taller of the two sides, width is the sum of the aspect-preserving scaled
widths.
*/
func TestCombine_Dimensions(t *testing.T) {
	front := encodePNG(t, 100, 50, color.RGBA{R: 255, A: 255}) // scales to 200x100
	back := encodePNG(t, 40, 100, color.RGBA{B: 255, A: 255})  // stays 40x100

	merged, err := compose.Combine(front, back)
	require.NoError(t, err)

	width, height, err := compose.Dimensions(merged)
	require.NoError(t, err)
	assert.Equal(t, 240, width)
	assert.Equal(t, 100, height)
}

/*
TestCombine_Deterministic verifies that identical input pairs produce
identical bytes, and that changing one side changes the output.
*/
func TestCombine_Deterministic(t *testing.T) {
	front := encodePNG(t, 60, 60, color.RGBA{R: 200, A: 255})
	back := encodePNG(t, 60, 60, color.RGBA{G: 200, A: 255})

	first, err := compose.Combine(front, back)
	require.NoError(t, err)
	second, err := compose.Combine(front, back)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(first, second))

	otherBack := encodePNG(t, 60, 60, color.RGBA{B: 200, A: 255})
	changed, err := compose.Combine(front, otherBack)
	require.NoError(t, err)
	assert.False(t, bytes.Equal(first, changed))
}

/*
TestCombine_DecodeFailure verifies that an undecodable side reports
COMPOSE_ERROR for either position.
*/
func TestCombine_DecodeFailure(t *testing.T) {
	valid := encodePNG(t, 10, 10, color.White)
	garbage := []byte("not an image")

	_, err := compose.Combine(garbage, valid)
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "COMPOSE_ERROR"))

	_, err = compose.Combine(valid, garbage)
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "COMPOSE_ERROR"))
}

/*
TestDimensions verifies the decoder helper against a known capture.
*/
func TestDimensions(t *testing.T) {
	width, height, err := compose.Dimensions(encodePNG(t, 33, 44, color.Black))
	require.NoError(t, err)
	assert.Equal(t, 33, width)
	assert.Equal(t, 44, height)
}
