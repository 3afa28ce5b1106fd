// Package raster prepares drawing pages for boundary detection: decoding,
// size normalization, grayscale conversion and edge extraction.
//
// The package produces two reusable artifacts per page: a Working image with
// its compensated scale factor, and a binary edge Mask consumed by the wall,
// room and opening detectors so edge detection runs once per page.
package raster

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder

	"github.com/disintegration/imaging"
)

// MaxDimension is the largest working-image side length. Pages larger than
// this are downscaled proportionally before detection; the scale factor is
// rescaled so downstream measurements stay in real-world units.
const MaxDimension = 3000

// ErrInvalidImage indicates the input bytes could not be decoded as an image.
var ErrInvalidImage = errors.New("invalid image")

// Working is a size-normalized page ready for detection.
type Working struct {
	// Img is the working image, at most MaxDimension on its longest side.
	Img image.Image

	// Width and Height of Img in pixels.
	Width  int
	Height int

	// ScaleFactor is feet per pixel of Img, compensated for any downscale
	// applied during preprocessing.
	ScaleFactor float64

	// Downscale is the ratio of working size to original size (1.0 when no
	// resize was needed).
	Downscale float64
}

// Decode parses raw image bytes. PNG, JPEG and GIF are supported.
func Decode(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	return img, nil
}

// Preprocess normalizes an image for detection. Images whose longest side
// exceeds MaxDimension are downscaled with box (area-averaging) filtering,
// and the scale factor is divided by the downscale ratio so a pixel of the
// working image still maps to the correct physical length.
func Preprocess(img image.Image, scaleFactor float64) *Working {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	downscale := 1.0
	longest := width
	if height > longest {
		longest = height
	}
	if longest > MaxDimension {
		downscale = float64(MaxDimension) / float64(longest)
		newW := int(float64(width) * downscale)
		newH := int(float64(height) * downscale)
		img = imaging.Resize(img, newW, newH, imaging.Box)
		width = newW
		height = newH
		scaleFactor /= downscale
	}

	return &Working{
		Img:         img,
		Width:       width,
		Height:      height,
		ScaleFactor: scaleFactor,
		Downscale:   downscale,
	}
}
