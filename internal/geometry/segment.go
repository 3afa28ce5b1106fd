package geometry

import "math"

// Segment is a directed line segment between two pixel-space points.
type Segment struct {
	Start Point `json:"start"`
	End   Point `json:"end"`
}

// Length returns the segment length in pixels.
func (s Segment) Length() float64 {
	return Dist(s.Start, s.End)
}

// AngleDeg returns the segment orientation in degrees in [0, 180).
// Orientation is undirected: a segment and its reverse share one angle.
func (s Segment) AngleDeg() float64 {
	angle := math.Atan2(s.End.Y-s.Start.Y, s.End.X-s.Start.X) * 180 / math.Pi
	if angle < 0 {
		angle += 180
	}
	if angle >= 180 {
		angle -= 180
	}
	return angle
}

// Midpoint returns the center point of the segment.
func (s Segment) Midpoint() Point {
	return Midpoint(s.Start, s.End)
}

// PointAt returns the point at parameter t in [0,1] along the segment.
func (s Segment) PointAt(t float64) Point {
	return Point{
		X: s.Start.X + t*(s.End.X-s.Start.X),
		Y: s.Start.Y + t*(s.End.Y-s.Start.Y),
	}
}

// AngleBetween returns the undirected angle difference between two segments
// in degrees, in [0, 90].
func AngleBetween(a, b Segment) float64 {
	diff := math.Abs(a.AngleDeg() - b.AngleDeg())
	if diff > 90 {
		diff = 180 - diff
	}
	return diff
}

// PerpendicularGap returns the perpendicular distance from the midpoint of b
// to the infinite line through a. For near-parallel segments this measures
// the face-to-face separation, i.e. a candidate wall thickness.
func PerpendicularGap(a, b Segment) float64 {
	return perpDistToChord(b.Midpoint(), a.Start, a.End)
}

// OverlapRatio projects b onto the direction of a and returns the length of
// the overlap between the two projected intervals divided by the shorter
// projected length. Returns 0 when the projections do not overlap.
func OverlapRatio(a, b Segment) float64 {
	dx := a.End.X - a.Start.X
	dy := a.End.Y - a.Start.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return 0
	}
	ux, uy := dx/length, dy/length

	project := func(p Point) float64 {
		return (p.X-a.Start.X)*ux + (p.Y-a.Start.Y)*uy
	}

	a0, a1 := 0.0, length
	b0, b1 := project(b.Start), project(b.End)
	if b0 > b1 {
		b0, b1 = b1, b0
	}

	overlap := math.Min(a1, b1) - math.Max(a0, b0)
	if overlap <= 0 {
		return 0
	}
	shorter := math.Min(a1-a0, b1-b0)
	if shorter == 0 {
		return 0
	}
	return overlap / shorter
}

// FarthestEndpoints returns the pair of points with the maximum separation
// among the four endpoints of two segments. Used when merging chained wall
// candidates into a single span.
func FarthestEndpoints(a, b Segment) (Point, Point) {
	pts := []Point{a.Start, a.End, b.Start, b.End}
	best := 0.0
	p1, p2 := pts[0], pts[1]
	for i := 0; i < len(pts); i++ {
		for j := i + 1; j < len(pts); j++ {
			if d := Dist(pts[i], pts[j]); d > best {
				best = d
				p1, p2 = pts[i], pts[j]
			}
		}
	}
	return p1, p2
}

// DistToSegment returns the distance from p to the closest point on s.
func DistToSegment(p Point, s Segment) float64 {
	dx := s.End.X - s.Start.X
	dy := s.End.Y - s.Start.Y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return Dist(p, s.Start)
	}
	t := ((p.X-s.Start.X)*dx + (p.Y-s.Start.Y)*dy) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return Dist(p, Point{X: s.Start.X + t*dx, Y: s.Start.Y + t*dy})
}

// EndpointGap returns the smallest distance between any endpoint of a and
// any endpoint of b.
func EndpointGap(a, b Segment) float64 {
	best := math.MaxFloat64
	for _, p := range []Point{a.Start, a.End} {
		for _, q := range []Point{b.Start, b.End} {
			if d := Dist(p, q); d < best {
				best = d
			}
		}
	}
	return best
}
