package detect

import (
	"math"

	"github.com/planscan/boundary/internal/geometry"
	"github.com/planscan/boundary/internal/raster"
)

// detectRooms extracts room polygons from the closed edge map. Enclosed
// regions of the page become candidates, then the titleblock, building
// outline, corridor and degenerate-shape filters thin them out. Filters are
// silent: a rejected contour reduces the output set, never errors.
func detectRooms(work *raster.Working, edges *raster.Mask, wallLines []geometry.Segment, opts DetectionOptions) []RoomBoundary {
	scale := opts.ScaleFactor
	pageArea := float64(work.Width * work.Height)
	if pageArea == 0 {
		return []RoomBoundary{}
	}

	// Close hairline gaps so interiors become enclosed regions, and stamp
	// detected walls back in: a wall face the edge detector fragmented
	// still bounds its rooms.
	blocked := edges.Dilate(1.5)
	if len(wallLines) > 0 {
		wallMask := rasterizeSegments(wallLines, work.Width, work.Height)
		blocked = blocked.Union(wallMask.Dilate(2))
	}

	// A contour sits outside the wall stroke, its edge ridges and the
	// closing dilation, so the alignment tolerance must absorb half the
	// thickest wall plus those offsets.
	wallDistPx := opts.MaxWallThickness/(2*scale) + 6

	grid := labelRegions(blocked)
	zones := titleblockZones(edges, work, opts)

	rooms := make([]RoomBoundary, 0)
	for _, reg := range grid.regions {
		// The open background around the sheet is not a room.
		if reg.touchesBorder {
			continue
		}

		areaSF := float64(reg.count) * scale * scale
		if areaSF < opts.MinRoomArea {
			continue
		}
		if float64(reg.count) > opts.MaxRoomAreaFraction*pageArea {
			continue // building outline
		}

		bboxW := float64(reg.maxX - reg.minX + 1)
		bboxH := float64(reg.maxY - reg.minY + 1)
		aspect := bboxW / bboxH
		if aspect < 1 {
			aspect = 1 / aspect
		}
		if aspect > opts.MaxAspectRatio {
			continue // corridor or stray hatch band
		}

		if zoneOverlap(zones, reg) > opts.TitleblockOverlapMax {
			continue
		}

		contour := grid.boundary(reg)
		if len(contour) < 3 {
			continue
		}
		if geometry.ClosureRatio(contour) > opts.MaxClosureRatio {
			continue
		}

		perimeter := geometry.PolygonPerimeter(contour)
		simplified := geometry.Simplify(contour, opts.SimplifyEpsilon*perimeter)
		if len(simplified) < 3 {
			continue
		}

		if len(wallLines) >= 4 && !nearWalls(contour, wallLines, wallDistPx) {
			continue
		}

		fill := float64(reg.count) / (bboxW * bboxH)
		rooms = append(rooms, RoomBoundary{
			Points:     normalizePolygon(simplified, work),
			Area:       areaSF,
			Perimeter:  geometry.PolygonPerimeter(simplified) * scale,
			Confidence: roomConfidence(fill, areaSF, aspect),
		})
	}

	return rooms
}

// roomConfidence scores a room by bounding-box fill regularity, size
// plausibility and aspect ratio. Capped at 0.95: geometry alone never fully
// confirms a room.
func roomConfidence(fill, areaSF, aspect float64) float64 {
	conf := 0.5 + 0.25*fill
	if areaSF >= 50 && areaSF <= 2000 {
		conf += 0.15
	}
	if aspect <= 4 {
		conf += 0.05
	}
	if conf > 0.95 {
		conf = 0.95
	}
	return conf
}

// nearWalls reports whether at least 15% of sampled contour points lie
// within maxDistPx of some wall centerline. Applied only when enough walls
// were detected to make the alignment test meaningful.
func nearWalls(contour []geometry.Point, wallLines []geometry.Segment, maxDistPx float64) bool {
	step := len(contour) / 50
	if step < 1 {
		step = 1
	}
	sampled := 0
	near := 0
	for i := 0; i < len(contour); i += step {
		sampled++
		p := contour[i]
		for _, seg := range wallLines {
			if geometry.DistToSegment(p, seg) <= maxDistPx {
				near++
				break
			}
		}
	}
	if sampled == 0 {
		return false
	}
	return float64(near)/float64(sampled) >= 0.15
}

// rasterizeSegments draws segments into a mask with a 1px Bresenham stroke.
func rasterizeSegments(segs []geometry.Segment, width, height int) *raster.Mask {
	mask := raster.NewMask(width, height)
	for _, seg := range segs {
		drawSegment(mask, seg)
	}
	return mask
}

// drawSegment strokes one segment into the mask (integer Bresenham).
func drawSegment(mask *raster.Mask, seg geometry.Segment) {
	x0 := int(math.Round(seg.Start.X))
	y0 := int(math.Round(seg.Start.Y))
	x1 := int(math.Round(seg.End.X))
	y1 := int(math.Round(seg.End.Y))

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		mask.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// normalizePolygon converts a pixel-space polygon to normalized [0,1] space.
func normalizePolygon(pts []geometry.Point, work *raster.Working) []Point {
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[i] = normalizePoint(p, work)
	}
	return out
}
