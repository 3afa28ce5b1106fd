package raster

// Integral is a summed-area table over a Mask, giving O(1) set-pixel counts
// for arbitrary rectangles. Density scans over large pages (text masks,
// titleblock strips) would otherwise cost a full window per pixel.
type Integral struct {
	width  int
	height int
	sums   []int // (width+1) x (height+1), row-major, zero border
}

// Integral builds the summed-area table for the mask.
func (m *Mask) Integral() *Integral {
	w1 := m.Width + 1
	sums := make([]int, w1*(m.Height+1))
	for y := 0; y < m.Height; y++ {
		rowSum := 0
		for x := 0; x < m.Width; x++ {
			if m.bits[y*m.Width+x] {
				rowSum++
			}
			sums[(y+1)*w1+x+1] = sums[y*w1+x+1] + rowSum
		}
	}
	return &Integral{width: m.Width, height: m.Height, sums: sums}
}

// CountRect returns the number of set pixels in the rectangle
// [x0,x1) x [y0,y1), clipped to the mask bounds.
func (it *Integral) CountRect(x0, y0, x1, y1 int) int {
	x0 = clamp(x0, 0, it.width)
	x1 = clamp(x1, 0, it.width)
	y0 = clamp(y0, 0, it.height)
	y1 = clamp(y1, 0, it.height)
	if x0 >= x1 || y0 >= y1 {
		return 0
	}
	w1 := it.width + 1
	return it.sums[y1*w1+x1] - it.sums[y0*w1+x1] - it.sums[y1*w1+x0] + it.sums[y0*w1+x0]
}

// DensityRect returns the fraction of set pixels in the clipped rectangle
// [x0,x1) x [y0,y1). Empty rectangles have zero density.
func (it *Integral) DensityRect(x0, y0, x1, y1 int) float64 {
	x0 = clamp(x0, 0, it.width)
	x1 = clamp(x1, 0, it.width)
	y0 = clamp(y0, 0, it.height)
	y1 = clamp(y1, 0, it.height)
	area := (x1 - x0) * (y1 - y0)
	if area <= 0 {
		return 0
	}
	return float64(it.CountRect(x0, y0, x1, y1)) / float64(area)
}

// DensityWindow returns the set-pixel density in the square window of
// half-width half centered at (x, y).
func (it *Integral) DensityWindow(x, y, half int) float64 {
	return it.DensityRect(x-half, y-half, x+half+1, y+half+1)
}
