package detect

import "github.com/planscan/boundary/internal/raster"

// pixelZone is an exclusion rectangle in working-image pixels.
type pixelZone struct {
	x0, y0, x1, y1 int
}

func (z pixelZone) area() float64 {
	return float64((z.x1 - z.x0) * (z.y1 - z.y0))
}

// titleblockZones builds the exclusion zones for sheet metadata. The
// configured page margins are always excluded; on top of that, the right
// and bottom strips are checked for unusually high edge density, since
// titleblocks are packed with revision tables and lettering. A dense strip
// widens the corresponding margin zone.
func titleblockZones(edges *raster.Mask, work *raster.Working, opts DetectionOptions) []pixelZone {
	w := work.Width
	h := work.Height

	zones := []pixelZone{
		{0, 0, w, int(float64(h) * opts.TitleblockTopFrac)},                // top strip
		{0, h - int(float64(h)*opts.TitleblockBottomFrac), w, h},           // bottom strip
		{0, 0, int(float64(w) * opts.TitleblockSideFrac), h},               // left strip
		{w - int(float64(w)*opts.TitleblockSideFrac), 0, w, h},             // right strip
	}

	integral := edges.Integral()
	pageDensity := integral.DensityRect(0, 0, w, h)
	if pageDensity <= 0 {
		return zones
	}

	// Sheet titleblocks live along the right edge or the bottom. A strip
	// with well above average density is treated as titleblock even beyond
	// the configured margins.
	rightStrip := pixelZone{x0: w * 3 / 4, y0: 0, x1: w, y1: h}
	if integral.DensityRect(rightStrip.x0, rightStrip.y0, rightStrip.x1, rightStrip.y1) > 2*pageDensity {
		zones = append(zones, rightStrip)
	}
	bottomStrip := pixelZone{x0: 0, y0: h * 4 / 5, x1: w, y1: h}
	if integral.DensityRect(bottomStrip.x0, bottomStrip.y0, bottomStrip.x1, bottomStrip.y1) > 2*pageDensity {
		zones = append(zones, bottomStrip)
	}

	return zones
}

// zoneOverlap returns the largest fraction of the region's bounding box
// covered by any single exclusion zone.
func zoneOverlap(zones []pixelZone, reg region) float64 {
	bboxArea := float64((reg.maxX - reg.minX + 1) * (reg.maxY - reg.minY + 1))
	if bboxArea == 0 {
		return 0
	}

	best := 0.0
	for _, z := range zones {
		ix0 := maxInt(z.x0, reg.minX)
		iy0 := maxInt(z.y0, reg.minY)
		ix1 := minInt(z.x1, reg.maxX+1)
		iy1 := minInt(z.y1, reg.maxY+1)
		if ix0 >= ix1 || iy0 >= iy1 {
			continue
		}
		frac := float64((ix1-ix0)*(iy1-iy0)) / bboxArea
		if frac > best {
			best = frac
		}
	}
	return best
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
