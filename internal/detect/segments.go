package detect

import (
	"math"
	"sort"

	"github.com/planscan/boundary/internal/geometry"
	"github.com/planscan/boundary/internal/raster"
)

// maxHoughPeaks bounds how many Hough peaks are traced into segments.
// Drawing pages carry hundreds of strokes; everything past the strongest
// peaks is dimension leaders and hatching.
const maxHoughPeaks = 200

// lineGapSplitPx is the point-run gap (in pixels along a traced line) above
// which a Hough line is split into separate segments. Collinear walls on
// opposite sides of a hallway stay separate; tightly dashed strokes stay
// whole and are left for the dashed-line filter to reject.
const lineGapSplitPx = 12.0

// extractSegments finds straight line segments in the edge mask using a
// Hough transform: vote edge pixels into (rho, theta) space, take local
// maxima, then trace the edge pixels near each peak line and split them into
// contiguous runs.
func extractSegments(edges *raster.Mask, minLengthPx float64) []geometry.Segment {
	width := edges.Width
	height := edges.Height
	if width == 0 || height == 0 {
		return nil
	}

	maxDist := int(math.Sqrt(float64(width*width + height*height)))
	const numAngles = 180
	accumulator := make([][]int, maxDist*2)
	for i := range accumulator {
		accumulator[i] = make([]int, numAngles)
	}

	// Vote in Hough space.
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !edges.At(x, y) {
				continue
			}
			for theta := 0; theta < numAngles; theta++ {
				angle := float64(theta) * math.Pi / 180.0
				rho := float64(x)*math.Cos(angle) + float64(y)*math.Sin(angle)
				rhoIdx := int(rho) + maxDist
				if rhoIdx >= 0 && rhoIdx < maxDist*2 {
					accumulator[rhoIdx][theta]++
				}
			}
		}
	}

	// Local maxima above threshold become candidate lines.
	type peak struct {
		rho   int
		theta int
		votes int
	}
	threshold := int(minLengthPx / 2)
	if threshold < 10 {
		threshold = 10
	}

	peaks := make([]peak, 0)
	for rhoIdx := 0; rhoIdx < maxDist*2; rhoIdx++ {
		for theta := 0; theta < numAngles; theta++ {
			votes := accumulator[rhoIdx][theta]
			if votes < threshold {
				continue
			}
			isMax := true
			for dr := -2; dr <= 2 && isMax; dr++ {
				for dt := -2; dt <= 2 && isMax; dt++ {
					if dr == 0 && dt == 0 {
						continue
					}
					nr := rhoIdx + dr
					nt := (theta + dt + numAngles) % numAngles
					if nr >= 0 && nr < maxDist*2 && accumulator[nr][nt] > votes {
						isMax = false
					}
				}
			}
			if isMax {
				peaks = append(peaks, peak{rho: rhoIdx - maxDist, theta: theta, votes: votes})
			}
		}
	}

	sort.Slice(peaks, func(i, j int) bool { return peaks[i].votes > peaks[j].votes })
	if len(peaks) > maxHoughPeaks {
		peaks = peaks[:maxHoughPeaks]
	}

	// Trace the edge pixels supporting each peak, project them along the
	// line direction, and split runs at gaps.
	claimed := raster.NewMask(width, height)
	segments := make([]geometry.Segment, 0)

	for _, pk := range peaks {
		angle := float64(pk.theta) * math.Pi / 180.0
		rho := float64(pk.rho)
		cosA := math.Cos(angle)
		sinA := math.Sin(angle)

		type linePoint struct {
			x, y int
			t    float64 // projection along the line direction
		}
		pts := make([]linePoint, 0)
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				if !edges.At(x, y) || claimed.At(x, y) {
					continue
				}
				if math.Abs(float64(x)*cosA+float64(y)*sinA-rho) < 2.0 {
					// The line direction is perpendicular to the normal.
					t := -float64(x)*sinA + float64(y)*cosA
					pts = append(pts, linePoint{x: x, y: y, t: t})
				}
			}
		}
		if len(pts) < int(minLengthPx) {
			continue
		}

		sort.Slice(pts, func(i, j int) bool { return pts[i].t < pts[j].t })

		runStart := 0
		emit := func(from, to int) {
			first := pts[from]
			last := pts[to]
			seg := geometry.Segment{
				Start: geometry.Point{X: float64(first.x), Y: float64(first.y)},
				End:   geometry.Point{X: float64(last.x), Y: float64(last.y)},
			}
			if seg.Length() < minLengthPx {
				return
			}
			for i := from; i <= to; i++ {
				claimed.Set(pts[i].x, pts[i].y)
			}
			segments = append(segments, seg)
		}
		for i := 1; i < len(pts); i++ {
			if pts[i].t-pts[i-1].t > lineGapSplitPx {
				emit(runStart, i-1)
				runStart = i
			}
		}
		emit(runStart, len(pts)-1)
	}

	return segments
}

// edgeNear reports whether any edge pixel lies within tol of (x, y).
func edgeNear(edges *raster.Mask, x, y, tol int) bool {
	for dy := -tol; dy <= tol; dy++ {
		for dx := -tol; dx <= tol; dx++ {
			if edges.At(x+dx, y+dy) {
				return true
			}
		}
	}
	return false
}
