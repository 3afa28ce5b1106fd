package detect

import (
	"math"

	"github.com/planscan/boundary/internal/geometry"
	"github.com/planscan/boundary/internal/raster"
)

// seedStrategy is one place to try growing a room from, relative to a room
// label's bounding box. A seed inside the label is the strongest signal that
// the grown region really is the labeled room, so strategies carry different
// confidence boosts.
type seedStrategy struct {
	name  string
	score float64
	// offset maps the label's pixel-space bbox to a seed point.
	offset func(cx, cy, w, h float64) (float64, float64)
}

// seedStrategies are tried in order; the first one whose flood fill yields a
// plausible region wins.
var seedStrategies = []seedStrategy{
	{"above", 0.25, func(cx, cy, w, h float64) (float64, float64) { return cx, cy - h*1.5 }},
	{"inside", 0.30, func(cx, cy, w, h float64) (float64, float64) { return cx, cy }},
	{"below", 0.20, func(cx, cy, w, h float64) (float64, float64) { return cx, cy + h*1.5 }},
	{"right", 0.15, func(cx, cy, w, h float64) (float64, float64) { return cx + w, cy }},
	{"left", 0.15, func(cx, cy, w, h float64) (float64, float64) { return cx - w, cy }},
}

// growRooms produces room boundaries from externally supplied room labels by
// flood-filling outward from seed points near each label, bounded by the
// edge and wall masks. A label whose every seed fails produces no room; that
// is silent filtering, not an error.
func growRooms(work *raster.Working, edges *raster.Mask, wallLines []geometry.Segment, labels []OCRTextElement, opts DetectionOptions) []RoomBoundary {
	if len(labels) == 0 {
		return []RoomBoundary{}
	}

	scale := opts.ScaleFactor
	pageArea := float64(work.Width * work.Height)
	blocked := edges.Dilate(1.5)
	if len(wallLines) > 0 {
		blocked = blocked.Union(rasterizeSegments(wallLines, work.Width, work.Height).Dilate(2))
	}
	maxPixels := int(opts.GrowMaxAreaFraction * pageArea)

	rooms := make([]RoomBoundary, 0)
	for _, label := range labels {
		if label.Type != "room_label" {
			continue
		}

		// Label bbox center in pixel space.
		cx := (label.BBox.X + label.BBox.Width/2) * float64(work.Width)
		cy := (label.BBox.Y + label.BBox.Height/2) * float64(work.Height)
		lw := label.BBox.Width * float64(work.Width)
		lh := label.BBox.Height * float64(work.Height)
		if lh <= 0 {
			lh = 12 // plausible glyph height when OCR reports a flat bbox
		}

		for _, strat := range seedStrategies {
			sx, sy := strat.offset(cx, cy, lw, lh)
			grown := growRegion(blocked, int(math.Round(sx)), int(math.Round(sy)), maxPixels)
			if grown == nil {
				continue
			}

			areaSF := float64(grown.count) * scale * scale
			if areaSF < opts.MinRoomArea {
				continue
			}
			bboxW := float64(grown.maxX - grown.minX + 1)
			bboxH := float64(grown.maxY - grown.minY + 1)
			aspect := bboxW / bboxH
			if aspect < 1 {
				aspect = 1 / aspect
			}
			if aspect > opts.MaxAspectRatio {
				continue
			}

			contour := grown.boundary()
			if len(contour) < 3 {
				continue
			}
			perimeter := geometry.PolygonPerimeter(contour)
			simplified := geometry.Simplify(contour, opts.SimplifyEpsilon*perimeter)
			if len(simplified) < 3 {
				continue
			}

			conf := 0.55 + strat.score + 0.1*label.Confidence
			if conf > 0.95 {
				conf = 0.95
			}
			rooms = append(rooms, RoomBoundary{
				Points:     normalizePolygon(simplified, work),
				Area:       areaSF,
				Perimeter:  geometry.PolygonPerimeter(simplified) * scale,
				Confidence: conf,
				RoomLabel:  label.Text,
			})
			break
		}
	}

	return rooms
}

// grownRegion is a flood-filled room interior seeded from a label position.
type grownRegion struct {
	mask       *raster.Mask
	count      int
	minX, minY int
	maxX, maxY int
}

// growRegion flood-fills 4-connected from the seed across pixels not set in
// blocked. Returns nil when the seed is blocked, out of bounds, or the fill
// escapes past maxPixels or the page border (a leak through an unclosed
// boundary, not a room).
func growRegion(blocked *raster.Mask, seedX, seedY, maxPixels int) *grownRegion {
	width := blocked.Width
	height := blocked.Height
	if seedX < 0 || seedY < 0 || seedX >= width || seedY >= height {
		return nil
	}
	if blocked.At(seedX, seedY) {
		return nil
	}

	grown := &grownRegion{
		mask: raster.NewMask(width, height),
		minX: seedX, minY: seedY,
		maxX: seedX, maxY: seedY,
	}
	grown.mask.Set(seedX, seedY)
	stack := [][2]int{{seedX, seedY}}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		cx, cy := p[0], p[1]

		grown.count++
		if grown.count > maxPixels {
			return nil
		}
		if cx == 0 || cy == 0 || cx == width-1 || cy == height-1 {
			return nil // leaked off the page
		}
		if cx < grown.minX {
			grown.minX = cx
		}
		if cx > grown.maxX {
			grown.maxX = cx
		}
		if cy < grown.minY {
			grown.minY = cy
		}
		if cy > grown.maxY {
			grown.maxY = cy
		}

		for _, d := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			nx, ny := cx+d[0], cy+d[1]
			if nx < 0 || ny < 0 || nx >= width || ny >= height {
				continue
			}
			if blocked.At(nx, ny) || grown.mask.At(nx, ny) {
				continue
			}
			grown.mask.Set(nx, ny)
			stack = append(stack, [2]int{nx, ny})
		}
	}

	return grown
}

// boundary traces the outer contour of the grown region.
func (g *grownRegion) boundary() []geometry.Point {
	isInside := func(x, y int) bool { return g.mask.At(x, y) }
	return traceBoundary(isInside, g.minX, g.minY, g.maxX, g.maxY, g.mask.Width, g.mask.Height)
}
