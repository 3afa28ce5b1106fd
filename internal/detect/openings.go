package detect

import "github.com/planscan/boundary/internal/raster"

// openingConfidence is the fixed score for door/window classification.
// Size-threshold classification is coarse, so the score stays modest.
const openingConfidence = 0.6

// detectOpenings classifies small rectangular edge components into doors and
// windows by their physical size. The undilated edge map is used so frame
// strokes are not smeared into the surrounding walls.
//
// Classification is purely dimensional:
//   - door: width 2.0-4.0 ft and height >= 6 ft
//   - window: width 1.0-3.0 ft and height <= 5 ft
//
// Anything else is discarded. Rotated openings are matched by also testing
// the transposed bounding box.
func detectOpenings(work *raster.Working, edges *raster.Mask, opts DetectionOptions) (doors, windows []DoorWindow) {
	scale := opts.ScaleFactor
	doors = make([]DoorWindow, 0)
	windows = make([]DoorWindow, 0)

	for _, comp := range edgeComponents(edges, 10) {
		wPx := float64(comp.maxX - comp.minX + 1)
		hPx := float64(comp.maxY - comp.minY + 1)

		// A quadrilateral outline has roughly perimeter-many edge pixels;
		// blobs and dense glyphs have far more.
		perimeter := 2 * (wPx + hPx)
		if float64(comp.count) > perimeter*2.5 {
			continue
		}

		widthFt := wPx * scale
		heightFt := hPx * scale

		dw := DoorWindow{
			BBox: BBox{
				X:      float64(comp.minX) / float64(work.Width),
				Y:      float64(comp.minY) / float64(work.Height),
				Width:  wPx / float64(work.Width),
				Height: hPx / float64(work.Height),
			},
			Confidence: openingConfidence,
		}
		cxNorm := dw.BBox.X + dw.BBox.Width/2
		cyNorm := dw.BBox.Y + dw.BBox.Height/2

		switch {
		case isDoorSize(widthFt, heightFt) || isDoorSize(heightFt, widthFt):
			dw.Type = "door"
			dw.Opening = verticalSpan(dw.BBox, cxNorm, heightFt)
			if heightFt < widthFt {
				dw.Opening = horizontalSpan(dw.BBox, cyNorm, widthFt)
			}
			doors = append(doors, dw)
		case isWindowSize(widthFt, heightFt) || isWindowSize(heightFt, widthFt):
			dw.Type = "window"
			dw.Opening = horizontalSpan(dw.BBox, cyNorm, widthFt)
			if wPx < hPx {
				dw.Opening = verticalSpan(dw.BBox, cxNorm, heightFt)
			}
			windows = append(windows, dw)
		}
	}

	return doors, windows
}

func isDoorSize(widthFt, heightFt float64) bool {
	return widthFt >= 2.0 && widthFt <= 4.0 && heightFt >= 6.0
}

func isWindowSize(widthFt, heightFt float64) bool {
	return widthFt >= 1.0 && widthFt <= 3.0 && heightFt <= 5.0
}

// verticalSpan is the opening across the taller dimension of the bbox.
func verticalSpan(b BBox, cxNorm, spanFt float64) Opening {
	return Opening{
		Start: Point{X: cxNorm, Y: b.Y},
		End:   Point{X: cxNorm, Y: b.Y + b.Height},
		Width: spanFt,
	}
}

// horizontalSpan is the opening across the wider dimension of the bbox.
func horizontalSpan(b BBox, cyNorm, spanFt float64) Opening {
	return Opening{
		Start: Point{X: b.X, Y: cyNorm},
		End:   Point{X: b.X + b.Width, Y: cyNorm},
		Width: spanFt,
	}
}
