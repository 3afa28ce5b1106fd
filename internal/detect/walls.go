package detect

import (
	"math"
	"sort"

	"github.com/planscan/boundary/internal/geometry"
	"github.com/planscan/boundary/internal/raster"
)

// wallCandidate is a wall under construction, in pixel space.
type wallCandidate struct {
	seg       geometry.Segment // centerline
	thickness float64          // feet
	paired    bool             // true when backed by two parallel faces
}

// detectWalls runs the full wall pipeline: segment extraction, text- and
// dashed-line rejection, parallel pairing, chain merging. It returns the
// normalized wall list plus the pixel-space centerlines, which the room
// detector rasterizes into its wall-alignment mask.
func detectWalls(work *raster.Working, edges *raster.Mask, opts DetectionOptions) ([]WallSegment, []geometry.Segment) {
	scale := opts.ScaleFactor
	minLenPx := opts.MinWallLength / scale

	segments := extractSegments(edges, minLenPx)
	if len(segments) == 0 {
		return []WallSegment{}, nil
	}

	// Reject dimension leaders, hatching and text strokes before pairing.
	integral := edges.Integral()
	kept := segments[:0]
	for _, seg := range segments {
		if inTextRegion(seg, integral, minLenPx, opts) {
			continue
		}
		if isDashed(seg, edges, opts) {
			continue
		}
		kept = append(kept, seg)
	}
	segments = kept

	candidates := pairSegments(segments, scale, opts)

	// Fallback: a drawing with single-stroke walls produces no face pairs.
	// Emit the surviving segments as centerlines with an assumed thickness
	// and reduced confidence.
	if len(candidates) == 0 {
		for _, seg := range segments {
			candidates = append(candidates, wallCandidate{
				seg:       seg,
				thickness: opts.DefaultWallThickness,
			})
		}
	}

	candidates = chainMerge(candidates, opts)

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].seg.Length() > candidates[j].seg.Length()
	})
	if len(candidates) > opts.MaxWalls {
		candidates = candidates[:opts.MaxWalls]
	}

	centerlines := make([]geometry.Segment, 0, len(candidates))
	walls := make([]WallSegment, 0, len(candidates))
	for _, c := range candidates {
		lengthFt := c.seg.Length() * scale
		if lengthFt < opts.MinWallLength {
			continue
		}
		centerlines = append(centerlines, c.seg)
		walls = append(walls, WallSegment{
			Start:      normalizePoint(c.seg.Start, work),
			End:        normalizePoint(c.seg.End, work),
			Length:     lengthFt,
			Thickness:  c.thickness,
			Confidence: wallConfidence(lengthFt, c.paired),
		})
	}

	return walls, centerlines
}

// wallConfidence scores a wall by its length. Paired walls start at 0.8,
// single-stroke fallbacks at 0.7; longer walls earn a bonus up to a 0.95
// ceiling.
func wallConfidence(lengthFt float64, paired bool) float64 {
	base := 0.7
	if paired {
		base = 0.8
	}
	bonus := lengthFt * 0.005
	if bonus > 0.15 {
		bonus = 0.15
	}
	conf := base + bonus
	if conf > 0.95 {
		conf = 0.95
	}
	return conf
}

// inTextRegion reports whether a short axis-aligned segment runs through
// text-dense parts of the page. Dimension strings and notes are drawn with
// short horizontal strokes that otherwise pass the wall length filter.
//
// Text density is edge density over a 15x15 window; a window above the
// threshold counts as text. A segment is rejected when more than the
// configured fraction of its samples land in text, or more than half of
// them sit within 10px of text.
func inTextRegion(seg geometry.Segment, integral *raster.Integral, minLenPx float64, opts DetectionOptions) bool {
	// Long segments are structure, not lettering.
	if seg.Length() > 3*minLenPx {
		return false
	}
	angle := seg.AngleDeg()
	axisAligned := angle < 5 || angle > 175 || math.Abs(angle-90) < 5
	if !axisAligned {
		return false
	}

	const samples = 20
	const windowHalf = 7 // 15x15 window
	const nearDist = 10

	textAt := func(x, y int) bool {
		return integral.DensityWindow(x, y, windowHalf) > opts.TextDensityThreshold
	}

	hits := 0
	nearHits := 0
	for i := 0; i < samples; i++ {
		t := float64(i) / float64(samples-1)
		p := seg.PointAt(t)
		x, y := int(math.Round(p.X)), int(math.Round(p.Y))
		if textAt(x, y) {
			hits++
			nearHits++
			continue
		}
		if textAt(x+nearDist, y) || textAt(x-nearDist, y) || textAt(x, y+nearDist) || textAt(x, y-nearDist) {
			nearHits++
		}
	}

	if float64(hits)/samples > opts.TextHitRatioMax {
		return true
	}
	return float64(nearHits)/samples > 0.5
}

// isDashed samples the segment against the edge mask and rejects it when
// edge continuity drops below the configured minimum or the longest
// consecutive gap run is too large. Solid and hatched wall faces read as
// continuous; dashed dimension leaders and hidden lines do not.
func isDashed(seg geometry.Segment, edges *raster.Mask, opts DetectionOptions) bool {
	samples := int(seg.Length() / 10)
	if samples < 20 {
		samples = 20
	}

	hits := 0
	maxGap := 0
	run := 0
	for i := 0; i < samples; i++ {
		t := float64(i) / float64(samples-1)
		p := seg.PointAt(t)
		if edgeNear(edges, int(math.Round(p.X)), int(math.Round(p.Y)), 1) {
			hits++
			run = 0
		} else {
			run++
			if run > maxGap {
				maxGap = run
			}
		}
	}

	continuity := float64(hits) / float64(samples)
	if continuity < opts.DashMinContinuity {
		return true
	}
	return float64(maxGap) > opts.DashMaxGapRatio*float64(samples)
}

// pairSegments matches parallel segment pairs separated by a plausible wall
// thickness. For each unused segment the closest qualifying partner wins;
// the pair's centerline is the midline between the two faces and the
// perpendicular gap is the wall thickness.
func pairSegments(segments []geometry.Segment, scale float64, opts DetectionOptions) []wallCandidate {
	minGapPx := opts.MinWallThickness / scale
	maxGapPx := opts.MaxWallThickness / scale

	used := make([]bool, len(segments))
	candidates := make([]wallCandidate, 0)

	for i := range segments {
		if used[i] {
			continue
		}
		best := -1
		bestGap := math.MaxFloat64
		for j := i + 1; j < len(segments); j++ {
			if used[j] {
				continue
			}
			if geometry.AngleBetween(segments[i], segments[j]) > opts.ParallelToleranceDeg {
				continue
			}
			if geometry.OverlapRatio(segments[i], segments[j]) < opts.MinOverlapRatio {
				continue
			}
			gap := geometry.PerpendicularGap(segments[i], segments[j])
			if gap < minGapPx || gap > maxGapPx {
				continue
			}
			if gap < bestGap {
				bestGap = gap
				best = j
			}
		}
		if best == -1 {
			continue
		}

		used[i] = true
		used[best] = true
		candidates = append(candidates, wallCandidate{
			seg:       centerline(segments[i], segments[best]),
			thickness: bestGap * scale,
			paired:    true,
		})
	}

	return candidates
}

// centerline returns the midline between two near-parallel faces: b is
// oriented to run the same way as a, then corresponding endpoints are
// averaged.
func centerline(a, b geometry.Segment) geometry.Segment {
	// Flip b when it runs against a's direction.
	adx := a.End.X - a.Start.X
	ady := a.End.Y - a.Start.Y
	bdx := b.End.X - b.Start.X
	bdy := b.End.Y - b.Start.Y
	if adx*bdx+ady*bdy < 0 {
		b.Start, b.End = b.End, b.Start
	}
	return geometry.Segment{
		Start: geometry.Midpoint(a.Start, b.Start),
		End:   geometry.Midpoint(a.End, b.End),
	}
}

// chainMerge joins wall candidates whose endpoints nearly touch. Straight
// continuations collapse into one span between the farthest endpoints with
// averaged thickness; corner contacts (within tolerance of 90 degrees) are
// left as separate walls so each side of a room survives as its own
// segment. Merging repeats until no pair qualifies.
func chainMerge(candidates []wallCandidate, opts DetectionOptions) []wallCandidate {
	merged := true
	for merged {
		merged = false
		for i := 0; i < len(candidates) && !merged; i++ {
			for j := i + 1; j < len(candidates); j++ {
				if geometry.EndpointGap(candidates[i].seg, candidates[j].seg) > opts.ChainEndpointGapPx {
					continue
				}
				if geometry.AngleBetween(candidates[i].seg, candidates[j].seg) > opts.CornerToleranceDeg {
					continue
				}

				p1, p2 := geometry.FarthestEndpoints(candidates[i].seg, candidates[j].seg)
				candidates[i] = wallCandidate{
					seg:       geometry.Segment{Start: p1, End: p2},
					thickness: (candidates[i].thickness + candidates[j].thickness) / 2,
					paired:    candidates[i].paired || candidates[j].paired,
				}
				candidates = append(candidates[:j], candidates[j+1:]...)
				merged = true
				break
			}
		}
	}
	return candidates
}

// normalizePoint converts a pixel-space point to normalized [0,1] space.
func normalizePoint(p geometry.Point, work *raster.Working) Point {
	return Point{
		X: clamp01(p.X / float64(work.Width)),
		Y: clamp01(p.Y / float64(work.Height)),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
