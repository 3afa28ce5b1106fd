// Package geometry provides the 2D primitives shared by the boundary
// detectors: points, line segments, and polygon measurements.
//
// All functions operate in pixel space unless noted otherwise. Conversion to
// normalized [0,1] coordinates and to real-world units happens at the
// detection layer, where the image dimensions and scale factor are known.
package geometry

import "math"

// Point is a 2D coordinate. Origin top-left, X rightward, Y downward.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Dist returns the Euclidean distance between two points.
func Dist(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b Point) Point {
	return Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

// PolygonArea returns the area of a simple polygon using the shoelace
// formula. The result is always non-negative regardless of winding order.
// Polygons with fewer than 3 vertices have zero area.
func PolygonArea(pts []Point) float64 {
	if len(pts) < 3 {
		return 0
	}
	var sum float64
	for i := range pts {
		j := (i + 1) % len(pts)
		sum += pts[i].X*pts[j].Y - pts[j].X*pts[i].Y
	}
	return math.Abs(sum) / 2
}

// PolygonPerimeter returns the closed perimeter of a polygon.
func PolygonPerimeter(pts []Point) float64 {
	if len(pts) < 2 {
		return 0
	}
	var sum float64
	for i := range pts {
		j := (i + 1) % len(pts)
		sum += Dist(pts[i], pts[j])
	}
	return sum
}

// Centroid returns the vertex average of a polygon. For the roughly convex
// room shapes produced by the detectors this is close enough to the true
// area centroid, and it is stable for the merge keying it is used for.
func Centroid(pts []Point) Point {
	if len(pts) == 0 {
		return Point{}
	}
	var sx, sy float64
	for _, p := range pts {
		sx += p.X
		sy += p.Y
	}
	n := float64(len(pts))
	return Point{X: sx / n, Y: sy / n}
}

// BoundingBox returns the min and max corners of a point set.
func BoundingBox(pts []Point) (min, max Point) {
	if len(pts) == 0 {
		return Point{}, Point{}
	}
	min, max = pts[0], pts[0]
	for _, p := range pts[1:] {
		if p.X < min.X {
			min.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
	}
	return min, max
}

// ClosureRatio measures how closed an open contour is: distance between its
// first and last point divided by its perimeter. 0 means fully closed.
func ClosureRatio(pts []Point) float64 {
	if len(pts) < 3 {
		return 1
	}
	perim := PolygonPerimeter(pts)
	if perim == 0 {
		return 1
	}
	return Dist(pts[0], pts[len(pts)-1]) / perim
}

// Simplify reduces a polyline using the Douglas-Peucker algorithm with the
// given distance tolerance. Endpoints are always kept.
func Simplify(pts []Point, epsilon float64) []Point {
	if len(pts) < 3 || epsilon <= 0 {
		return pts
	}

	// Find the point with the maximum distance from the chord.
	maxDist := 0.0
	index := 0
	first, last := pts[0], pts[len(pts)-1]
	for i := 1; i < len(pts)-1; i++ {
		d := perpDistToChord(pts[i], first, last)
		if d > maxDist {
			maxDist = d
			index = i
		}
	}

	if maxDist <= epsilon {
		return []Point{first, last}
	}

	left := Simplify(pts[:index+1], epsilon)
	right := Simplify(pts[index:], epsilon)

	// left may alias pts, so merge into a fresh slice instead of appending
	// in place and clobbering the caller's points.
	out := make([]Point, 0, len(left)+len(right)-1)
	out = append(out, left[:len(left)-1]...)
	return append(out, right...)
}

// perpDistToChord returns the perpendicular distance from p to the line
// through a and b. Degenerates to point distance when a == b.
func perpDistToChord(p, a, b Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return Dist(p, a)
	}
	return math.Abs(dy*p.X-dx*p.Y+b.X*a.Y-b.Y*a.X) / length
}
