//go:build !cgo

package ocr

import (
	"image"

	"github.com/planscan/boundary/internal/detect"
)

// stubDetector is used when Tesseract bindings are unavailable. It reports
// no text, which downstream code treats as an empty label list.
type stubDetector struct{}

// NewTextDetector returns a detector that finds no text.
func NewTextDetector() TextDetector {
	return stubDetector{}
}

func (stubDetector) DetectText(image.Image) ([]detect.OCRTextElement, error) {
	return []detect.OCRTextElement{}, nil
}
