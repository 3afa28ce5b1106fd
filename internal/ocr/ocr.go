// Package ocr models text extraction as an injected capability. The
// detection engine never probes for OCR availability itself: it takes a
// label list, and an absent OCR backend simply produces an empty list.
//
// With CGO enabled the package provides a Tesseract-backed TextDetector;
// otherwise a stub detector returns no elements.
package ocr

import (
	"image"
	"regexp"
	"strings"
	"unicode"

	"github.com/planscan/boundary/internal/detect"
)

// TextDetector extracts positioned text elements from an image. Bounding
// boxes in the returned elements are normalized to [0,1].
type TextDetector interface {
	DetectText(img image.Image) ([]detect.OCRTextElement, error)
}

// dimensionPattern matches measurement strings like 12', 3'-6", 10.5".
var dimensionPattern = regexp.MustCompile(`^\d+(\.\d+)?['"′″]($|-?\d+(\.\d+)?["″]| ?\d+/\d+["″])`)

// Classify assigns a type to recognized text: room_label, dimension, note
// or other. Room labels on drawings are short uppercase words (KITCHEN,
// BEDROOM 2); dimensions carry feet/inch marks; longer mixed-case runs are
// notes.
func Classify(text string) string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "other"
	}

	if dimensionPattern.MatchString(trimmed) {
		return "dimension"
	}

	letters := 0
	upper := 0
	for _, r := range trimmed {
		if unicode.IsLetter(r) {
			letters++
			if unicode.IsUpper(r) {
				upper++
			}
		}
	}

	if letters >= 3 && float64(upper)/float64(letters) >= 0.7 && len(strings.Fields(trimmed)) <= 3 {
		return "room_label"
	}
	if letters >= 10 {
		return "note"
	}
	return "other"
}

// FixRecognitionErrors repairs common OCR confusions in sheet-style
// alphanumeric strings: O read for 0, I and lowercase l read for 1.
// Free-form text is left alone.
func FixRecognitionErrors(text string) string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return trimmed
	}

	isSheetLike := true
	for _, r := range trimmed {
		if !unicode.IsUpper(r) && !unicode.IsDigit(r) && r != '.' && r != '-' && r != 'l' {
			isSheetLike = false
			break
		}
	}
	if !isSheetLike {
		return trimmed
	}

	hasDigit := strings.ContainsAny(trimmed, "0123456789")
	if !hasDigit {
		return trimmed
	}

	replacer := strings.NewReplacer("O", "0", "l", "1", "I", "1")
	return replacer.Replace(trimmed)
}
