package detect

import (
	"time"

	"github.com/planscan/boundary/internal/raster"
)

// Detect runs the full boundary-detection pipeline on one drawing page and
// returns a structured snapshot of its rooms, walls and openings.
//
// Parameters:
//   - data: Raw image bytes (PNG, JPEG or GIF).
//   - scaleFactor: Feet per pixel of the input image, produced by external
//     calibration. Non-positive values fall back to DefaultScaleFactor.
//   - opts: Detection thresholds; zero-valued fields take their defaults.
//     The scaleFactor argument overrides opts.ScaleFactor.
//   - labels: Externally supplied OCR text elements. Entries of type
//     "room_label" seed text-based room growth; the full list is passed
//     through in the result. May be nil.
//
// One call is pure and synchronous: no network, no disk, no state retained
// between calls. A page with no detectable structure yields empty slices
// and a nil error. The only error condition is undecodable input
// (ErrInvalidImage). Callers enforcing a wall-clock budget should wrap
// Detect externally and discard the result on expiry; the batch package
// does exactly that.
//
// Pipeline: preprocess -> edge map -> walls -> {geometry rooms, text-seeded
// rooms} -> merge -> openings.
func Detect(data []byte, scaleFactor float64, opts DetectionOptions, labels []OCRTextElement) (*BoundaryDetectionResult, error) {
	start := time.Now()

	opts.ScaleFactor = scaleFactor
	opts = opts.normalized()

	img, err := raster.Decode(data)
	if err != nil {
		return nil, err
	}

	work := raster.Preprocess(img, opts.ScaleFactor)
	opts.ScaleFactor = work.ScaleFactor

	edges := raster.EdgeMap(work.Img, opts.EdgeThresholdLow, opts.EdgeThresholdHigh)

	walls, centerlines := detectWalls(work, edges, opts)
	geomRooms := detectRooms(work, edges, centerlines, opts)
	textRooms := growRooms(work, edges, centerlines, labels, opts)
	rooms := mergeRooms(textRooms, geomRooms, opts)
	doors, windows := detectOpenings(work, edges, opts)

	if labels == nil {
		labels = []OCRTextElement{}
	}

	return &BoundaryDetectionResult{
		Rooms:            rooms,
		Walls:            walls,
		Doors:            doors,
		Windows:          windows,
		OCRText:          labels,
		ImageWidth:       work.Width,
		ImageHeight:      work.Height,
		ProcessingTimeMS: time.Since(start).Milliseconds(),
	}, nil
}
