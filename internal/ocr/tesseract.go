//go:build cgo

package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/otiai10/gosseract/v2"

	"github.com/planscan/boundary/internal/detect"
)

// TesseractDetector implements TextDetector using native Tesseract
// bindings. A fresh client is created per call: gosseract clients are not
// safe for concurrent use, and detection already runs pages in parallel.
type TesseractDetector struct {
	// Language is the Tesseract language code, defaulting to "eng".
	Language string
}

// NewTextDetector returns the Tesseract-backed detector.
func NewTextDetector() TextDetector {
	return &TesseractDetector{Language: "eng"}
}

// DetectText runs word-level OCR over the image and returns classified,
// normalized text elements. Words with empty text are dropped.
func (d *TesseractDetector) DetectText(img image.Image) ([]detect.OCRTextElement, error) {
	bounds := img.Bounds()
	width := float64(bounds.Dx())
	height := float64(bounds.Dy())
	if width == 0 || height == 0 {
		return []detect.OCRTextElement{}, nil
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image for OCR: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	language := d.Language
	if language == "" {
		language = "eng"
	}
	if err := client.SetLanguage(language); err != nil {
		return nil, fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	elements := make([]detect.OCRTextElement, 0, len(boxes))
	for _, box := range boxes {
		if box.Word == "" {
			continue
		}
		text := FixRecognitionErrors(box.Word)
		elements = append(elements, detect.OCRTextElement{
			Text:       text,
			Confidence: box.Confidence / 100.0,
			Type:       Classify(text),
			BBox: detect.BBox{
				X:      float64(box.Box.Min.X-bounds.Min.X) / width,
				Y:      float64(box.Box.Min.Y-bounds.Min.Y) / height,
				Width:  float64(box.Box.Dx()) / width,
				Height: float64(box.Box.Dy()) / height,
			},
		})
	}
	return elements, nil
}
