package raster

import (
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/effect"
)

// Mask is a binary pixel mask backed by a flat slice. It is the common
// currency between the edge detector and the boundary detectors: edge maps,
// wall-alignment masks and text-density masks are all Masks.
type Mask struct {
	Width  int
	Height int
	bits   []bool
}

// NewMask returns an all-false mask of the given dimensions.
func NewMask(width, height int) *Mask {
	return &Mask{
		Width:  width,
		Height: height,
		bits:   make([]bool, width*height),
	}
}

// At reports whether the pixel at (x, y) is set.
// Out-of-bounds coordinates are always false.
func (m *Mask) At(x, y int) bool {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return false
	}
	return m.bits[y*m.Width+x]
}

// Set marks the pixel at (x, y). Out-of-bounds coordinates are ignored.
func (m *Mask) Set(x, y int) {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return
	}
	m.bits[y*m.Width+x] = true
}

// Count returns the number of set pixels.
func (m *Mask) Count() int {
	n := 0
	for _, b := range m.bits {
		if b {
			n++
		}
	}
	return n
}

// Density returns the fraction of set pixels in the square window of
// half-width half centered at (x, y). Pixels outside the image are not
// counted in the denominator.
func (m *Mask) Density(x, y, half int) float64 {
	total := 0
	set := 0
	for dy := -half; dy <= half; dy++ {
		for dx := -half; dx <= half; dx++ {
			px, py := x+dx, y+dy
			if px < 0 || py < 0 || px >= m.Width || py >= m.Height {
				continue
			}
			total++
			if m.bits[py*m.Width+px] {
				set++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(set) / float64(total)
}

// Dilate grows the mask by the given radius using grayscale morphological
// dilation. Closed boundaries for contour extraction come from dilating the
// raw edge map so hairline gaps between strokes are bridged.
func (m *Mask) Dilate(radius float64) *Mask {
	dilated := effect.Dilate(m.ToGray(), radius)
	out := NewMask(m.Width, m.Height)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			r, _, _, _ := dilated.At(x, y).RGBA()
			if uint8(r>>8) >= 128 {
				out.bits[y*m.Width+x] = true
			}
		}
	}
	return out
}

// Union returns a new mask with every pixel set in either operand.
// Both masks must share dimensions.
func (m *Mask) Union(other *Mask) *Mask {
	out := NewMask(m.Width, m.Height)
	for i := range m.bits {
		out.bits[i] = m.bits[i] || other.bits[i]
	}
	return out
}

// ToGray renders the mask as a grayscale image, set pixels white.
func (m *Mask) ToGray() *image.Gray {
	g := image.NewGray(image.Rect(0, 0, m.Width, m.Height))
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if m.bits[y*m.Width+x] {
				g.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return g
}
