// Copyright (c) 2026 Bhugol. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package compose merges the two captured sides of an identity document
(front and back) into one canonical image before submission.

Algorithm:

  - Decode both images (JPEG or PNG).
  - Scale each, preserving aspect ratio, to the taller of the two heights.
  - Draw them side by side (front left, back right) on one canvas.
  - Encode the canvas as a single JPEG at quality 90.

The output is deterministic: identical input pairs produce identical bytes.
*/
package compose

import (
	"bytes"
	"image"
	"image/jpeg"

	// Register decoders for the two capture formats.
	_ "image/png"

	xdraw "golang.org/x/image/draw"

	"github.com/taibuivan/bhugol/internal/platform/apperr"
)

// jpegQuality matches the capture pipeline's 0.9 encoder setting.
const jpegQuality = 90

/*
Combine merges the front and back captures into one side-by-side JPEG.

Parameters:
  - frontImage: Encoded front capture (JPEG/PNG)
  - backImage: Encoded back capture (JPEG/PNG)

Returns:
  - []byte: The merged JPEG
  - error: COMPOSE_ERROR if either image fails to decode or encoding fails
*/
func Combine(frontImage, backImage []byte) ([]byte, error) {
	front, _, err := image.Decode(bytes.NewReader(frontImage))
	if err != nil {
		return nil, apperr.ComposeError(err)
	}
	back, _, err := image.Decode(bytes.NewReader(backImage))
	if err != nil {
		return nil, apperr.ComposeError(err)
	}

	targetHeight := front.Bounds().Dy()
	if back.Bounds().Dy() > targetHeight {
		targetHeight = back.Bounds().Dy()
	}

	frontWidth := scaledWidth(front, targetHeight)
	backWidth := scaledWidth(back, targetHeight)

	canvas := image.NewRGBA(image.Rect(0, 0, frontWidth+backWidth, targetHeight))

	// Front at x=0, back immediately after the front's scaled width.
	xdraw.CatmullRom.Scale(canvas, image.Rect(0, 0, frontWidth, targetHeight), front, front.Bounds(), xdraw.Src, nil)
	xdraw.CatmullRom.Scale(canvas, image.Rect(frontWidth, 0, frontWidth+backWidth, targetHeight), back, back.Bounds(), xdraw.Src, nil)

	var buffer bytes.Buffer
	if err := jpeg.Encode(&buffer, canvas, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, apperr.ComposeError(err)
	}
	return buffer.Bytes(), nil
}

// scaledWidth computes the aspect-preserving width at the target height.
func scaledWidth(img image.Image, targetHeight int) int {
	bounds := img.Bounds()
	if bounds.Dy() == 0 {
		return 0
	}
	return bounds.Dx() * targetHeight / bounds.Dy()
}

// Dimensions reports the decoded width and height of an encoded image.
// It shares the composer's decoder registration.
func Dimensions(encoded []byte) (width, height int, err error) {
	config, _, err := image.DecodeConfig(bytes.NewReader(encoded))
	if err != nil {
		return 0, 0, apperr.ComposeError(err)
	}
	return config.Width, config.Height, nil
}
