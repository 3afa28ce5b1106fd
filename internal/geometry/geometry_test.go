package geometry

import (
	"math"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestPolygonArea_Rectangle(t *testing.T) {
	rect := []Point{{0, 0}, {10, 0}, {10, 5}, {0, 5}}

	area := PolygonArea(rect)
	if !almostEqual(area, 50, 1e-9) {
		t.Errorf("rectangle area = %f, want 50", area)
	}

	// Winding order must not matter.
	reversed := []Point{{0, 5}, {10, 5}, {10, 0}, {0, 0}}
	if !almostEqual(PolygonArea(reversed), 50, 1e-9) {
		t.Errorf("reversed winding changed area")
	}
}

func TestPolygonArea_Degenerate(t *testing.T) {
	if PolygonArea(nil) != 0 {
		t.Error("nil polygon should have zero area")
	}
	if PolygonArea([]Point{{0, 0}, {1, 1}}) != 0 {
		t.Error("two-point polygon should have zero area")
	}
}

func TestPolygonPerimeter(t *testing.T) {
	rect := []Point{{0, 0}, {10, 0}, {10, 5}, {0, 5}}
	if p := PolygonPerimeter(rect); !almostEqual(p, 30, 1e-9) {
		t.Errorf("perimeter = %f, want 30", p)
	}
}

func TestCentroid(t *testing.T) {
	rect := []Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	c := Centroid(rect)
	if !almostEqual(c.X, 5, 1e-9) || !almostEqual(c.Y, 5, 1e-9) {
		t.Errorf("centroid = %+v, want (5,5)", c)
	}
}

func TestClosureRatio(t *testing.T) {
	closed := []Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 1}}
	if r := ClosureRatio(closed); r > 0.05 {
		t.Errorf("nearly closed contour has closure ratio %f", r)
	}

	open := []Point{{0, 0}, {10, 0}, {20, 0}}
	if r := ClosureRatio(open); r < 0.4 {
		t.Errorf("open polyline has closure ratio %f, want large", r)
	}
}

func TestSimplify_CollinearPointsRemoved(t *testing.T) {
	// A rectangle with extra collinear points along each side.
	pts := []Point{
		{0, 0}, {5, 0}, {10, 0},
		{10, 5}, {10, 10},
		{5, 10}, {0, 10},
		{0, 5},
	}
	simplified := Simplify(pts, 0.5)
	if len(simplified) >= len(pts) {
		t.Errorf("simplify kept %d of %d points", len(simplified), len(pts))
	}
	// Endpoints survive.
	if simplified[0] != pts[0] || simplified[len(simplified)-1] != pts[len(pts)-1] {
		t.Error("simplify must keep endpoints")
	}
}

func TestSimplify_LeavesInputUntouched(t *testing.T) {
	// The recursive merge must not write through a subslice of the input.
	pts := []Point{{0, 0}, {5, 10}, {15, 10.05}, {25, 10.1}, {35, 10}}
	orig := append([]Point{}, pts...)

	Simplify(pts, 1)
	for i := range pts {
		if pts[i] != orig[i] {
			t.Fatalf("pts[%d] = %+v, was %+v", i, pts[i], orig[i])
		}
	}
}

func TestSimplify_KeepsCorners(t *testing.T) {
	pts := []Point{{0, 0}, {10, 0}, {10, 10}}
	simplified := Simplify(pts, 1)
	if len(simplified) != 3 {
		t.Errorf("corner point dropped: %v", simplified)
	}
}

func TestSegmentAngleDeg(t *testing.T) {
	cases := []struct {
		seg  Segment
		want float64
	}{
		{Segment{Point{0, 0}, Point{10, 0}}, 0},
		{Segment{Point{10, 0}, Point{0, 0}}, 0}, // undirected
		{Segment{Point{0, 0}, Point{0, 10}}, 90},
		{Segment{Point{0, 0}, Point{10, 10}}, 45},
	}
	for _, c := range cases {
		if got := c.seg.AngleDeg(); !almostEqual(got, c.want, 1e-9) {
			t.Errorf("angle of %+v = %f, want %f", c.seg, got, c.want)
		}
	}
}

func TestAngleBetween(t *testing.T) {
	h := Segment{Point{0, 0}, Point{10, 0}}
	v := Segment{Point{0, 0}, Point{0, 10}}
	if got := AngleBetween(h, v); !almostEqual(got, 90, 1e-9) {
		t.Errorf("perpendicular segments: %f, want 90", got)
	}

	tilted := Segment{Point{0, 0}, Point{10, 10 * math.Tan(25*math.Pi/180)}}
	if got := AngleBetween(h, tilted); !almostEqual(got, 25, 0.01) {
		t.Errorf("25 degree segments: %f", got)
	}
}

func TestPerpendicularGap(t *testing.T) {
	a := Segment{Point{0, 0}, Point{100, 0}}
	b := Segment{Point{0, 6}, Point{100, 6}}
	if got := PerpendicularGap(a, b); !almostEqual(got, 6, 1e-9) {
		t.Errorf("gap = %f, want 6", got)
	}
}

func TestOverlapRatio(t *testing.T) {
	a := Segment{Point{0, 0}, Point{100, 0}}

	full := Segment{Point{0, 5}, Point{100, 5}}
	if got := OverlapRatio(a, full); !almostEqual(got, 1, 1e-9) {
		t.Errorf("full overlap = %f, want 1", got)
	}

	half := Segment{Point{50, 5}, Point{150, 5}}
	if got := OverlapRatio(a, half); !almostEqual(got, 0.5, 1e-9) {
		t.Errorf("half overlap = %f, want 0.5", got)
	}

	none := Segment{Point{200, 5}, Point{300, 5}}
	if got := OverlapRatio(a, none); got != 0 {
		t.Errorf("disjoint overlap = %f, want 0", got)
	}
}

func TestFarthestEndpoints(t *testing.T) {
	a := Segment{Point{0, 0}, Point{50, 0}}
	b := Segment{Point{55, 0}, Point{120, 0}}
	p1, p2 := FarthestEndpoints(a, b)
	if Dist(p1, p2) != 120 {
		t.Errorf("farthest span = %f, want 120", Dist(p1, p2))
	}
}

func TestEndpointGap(t *testing.T) {
	a := Segment{Point{0, 0}, Point{50, 0}}
	b := Segment{Point{53, 4}, Point{120, 4}}
	if got := EndpointGap(a, b); !almostEqual(got, 5, 1e-9) {
		t.Errorf("endpoint gap = %f, want 5", got)
	}
}
