package detect

import (
	"github.com/planscan/boundary/internal/raster"
)

// quarterInchScale maps one pixel to a quarter inch, so a 6" wall face gap
// spans 24 pixels. Synthetic fixtures use it where per-pixel quantization
// would otherwise dominate thickness measurements.
const quarterInchScale = 0.5 / 24

// testWorking builds a working-image descriptor for mask-level tests that
// never touch the pixels themselves.
func testWorking(width, height int, scale float64) *raster.Working {
	return &raster.Working{
		Width:       width,
		Height:      height,
		ScaleFactor: scale,
		Downscale:   1.0,
	}
}

// testOptions returns defaults with the given scale factor applied.
func testOptions(scale float64) DetectionOptions {
	opts := DefaultOptions()
	opts.ScaleFactor = scale
	return opts
}

// maskHLine sets a horizontal run of pixels [x0, x1] on row y.
func maskHLine(m *raster.Mask, x0, x1, y int) {
	for x := x0; x <= x1; x++ {
		m.Set(x, y)
	}
}

// maskVLine sets a vertical run of pixels [y0, y1] on column x.
func maskVLine(m *raster.Mask, x, y0, y1 int) {
	for y := y0; y <= y1; y++ {
		m.Set(x, y)
	}
}

// maskRectOutline strokes the 1px rectangle outline with corners (x0,y0) and
// (x1,y1), both inclusive.
func maskRectOutline(m *raster.Mask, x0, y0, x1, y1 int) {
	maskHLine(m, x0, x1, y0)
	maskHLine(m, x0, x1, y1)
	maskVLine(m, x0, y0, y1)
	maskVLine(m, x1, y0, y1)
}

// maskFillRect fills the rectangle with corners (x0,y0) and (x1,y1).
func maskFillRect(m *raster.Mask, x0, y0, x1, y1 int) {
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			m.Set(x, y)
		}
	}
}
