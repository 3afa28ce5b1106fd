package detect

import (
	"github.com/planscan/boundary/internal/geometry"
	"github.com/planscan/boundary/internal/raster"
)

// region is a connected set of non-boundary pixels: the interior of a room
// candidate. Regions are found by labeling the complement of the closed
// edge mask, so rooms nested inside the building outline are discovered
// without explicit contour hierarchy bookkeeping.
type region struct {
	label      int32
	count      int
	minX, minY int
	maxX, maxY int

	// touchesBorder marks the open background around the sheet, which can
	// never be a room.
	touchesBorder bool
}

// regionGrid holds the per-pixel region labels for one page.
type regionGrid struct {
	width   int
	height  int
	labels  []int32
	regions []region
}

// labelRegions partitions all pixels not set in blocked into 4-connected
// regions using an iterative flood fill.
func labelRegions(blocked *raster.Mask) *regionGrid {
	width := blocked.Width
	height := blocked.Height
	grid := &regionGrid{
		width:  width,
		height: height,
		labels: make([]int32, width*height),
	}

	next := int32(1)
	stack := make([]int, 0, 1024)

	for sy := 0; sy < height; sy++ {
		for sx := 0; sx < width; sx++ {
			idx := sy*width + sx
			if grid.labels[idx] != 0 || blocked.At(sx, sy) {
				continue
			}

			reg := region{
				label: next,
				minX:  sx, minY: sy,
				maxX: sx, maxY: sy,
			}
			grid.labels[idx] = next
			stack = append(stack[:0], idx)

			for len(stack) > 0 {
				cur := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				cx := cur % width
				cy := cur / width

				reg.count++
				if cx < reg.minX {
					reg.minX = cx
				}
				if cx > reg.maxX {
					reg.maxX = cx
				}
				if cy < reg.minY {
					reg.minY = cy
				}
				if cy > reg.maxY {
					reg.maxY = cy
				}
				if cx == 0 || cy == 0 || cx == width-1 || cy == height-1 {
					reg.touchesBorder = true
				}

				for _, d := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
					nx, ny := cx+d[0], cy+d[1]
					if nx < 0 || ny < 0 || nx >= width || ny >= height {
						continue
					}
					nidx := ny*width + nx
					if grid.labels[nidx] != 0 || blocked.At(nx, ny) {
						continue
					}
					grid.labels[nidx] = next
					stack = append(stack, nidx)
				}
			}

			grid.regions = append(grid.regions, reg)
			next++
		}
	}

	return grid
}

// inside reports whether (x, y) carries the given label.
func (g *regionGrid) inside(label int32, x, y int) bool {
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		return false
	}
	return g.labels[y*g.width+x] == label
}

// boundary traces the outer boundary polygon of a labeled region using
// Moore-neighbor tracing, collapsing collinear runs as it goes. Points are
// pixel-center coordinates.
func (g *regionGrid) boundary(reg region) []geometry.Point {
	isInside := func(x, y int) bool { return g.inside(reg.label, x, y) }
	return traceBoundary(isInside, reg.minX, reg.minY, reg.maxX, reg.maxY, g.width, g.height)
}

// traceBoundary walks the boundary of the shape defined by isInside,
// starting from the first boundary pixel found inside the given bounding
// box. The shape must be 4-connected.
func traceBoundary(isInside func(x, y int) bool, minX, minY, maxX, maxY, width, height int) []geometry.Point {
	isBoundary := func(x, y int) bool {
		if !isInside(x, y) {
			return false
		}
		return !isInside(x+1, y) || !isInside(x-1, y) || !isInside(x, y+1) || !isInside(x, y-1)
	}

	// Find a starting boundary pixel.
	sx, sy := -1, -1
	for y := minY; y <= maxY && sx == -1; y++ {
		for x := minX; x <= maxX; x++ {
			if isBoundary(x, y) {
				sx, sy = x, y
				break
			}
		}
	}
	if sx == -1 {
		return nil
	}

	pts := make([]geometry.Point, 0, 64)
	addPoint := func(x, y int) {
		p := geometry.Point{X: float64(x), Y: float64(y)}
		n := len(pts)
		if n >= 2 {
			a := pts[n-2]
			b := pts[n-1]
			// Collapse collinear middle points: (b-a) x (p-b) == 0.
			cross := (b.X-a.X)*(p.Y-b.Y) - (b.Y-a.Y)*(p.X-b.X)
			if cross == 0 {
				pts = pts[:n-1]
			}
		}
		pts = append(pts, p)
	}

	// 8-neighborhood in clockwise order: E, SE, S, SW, W, NW, N, NE.
	ndx := [8]int{1, 1, 0, -1, -1, -1, 0, 1}
	ndy := [8]int{0, 1, 1, 1, 0, -1, -1, -1}
	dirIndex := func(dx, dy int) int {
		for i := 0; i < 8; i++ {
			if ndx[i] == dx && ndy[i] == dy {
				return i
			}
		}
		return 0
	}

	cx, cy := sx, sy
	bx, by := sx-1, sy // backtrack starts to the left of start
	addPoint(cx, cy)

	startCx, startCy := cx, cy
	firstX, firstY := -1, -1
	maxSteps := width*height*4 + 8

	for steps := 0; steps < maxSteps; steps++ {
		// Scan the Moore neighborhood clockwise from the backtrack.
		start := (dirIndex(bx-cx, by-cy) + 1) % 8
		nx, ny := -1, -1
		found := false
		for k := 0; k < 8; k++ {
			i := (start + k) % 8
			tx, ty := cx+ndx[i], cy+ndy[i]
			if isInside(tx, ty) {
				nx, ny = tx, ty
				found = true
				break
			}
			bx, by = tx, ty
		}
		if !found {
			break // isolated pixel
		}

		// Jacob's stopping criterion: standing on the start pixel about to
		// repeat the first move means the boundary is closed. Comparing the
		// next move instead of the raw position survives spurs that pass
		// through the start pixel twice.
		if steps > 0 && cx == startCx && cy == startCy && nx == firstX && ny == firstY {
			break
		}
		if steps == 0 {
			firstX, firstY = nx, ny
		}

		bx, by = cx, cy
		cx, cy = nx, ny

		if pts[len(pts)-1].X != float64(cx) || pts[len(pts)-1].Y != float64(cy) {
			addPoint(cx, cy)
		}
	}

	// Drop a duplicated closing point.
	if len(pts) >= 2 && pts[0] == pts[len(pts)-1] {
		pts = pts[:len(pts)-1]
	}
	return pts
}

// edgeComponents groups 8-connected edge pixels into components and returns
// each component's pixel count with its bounding box. Components smaller
// than minPixels are discarded as noise. Used by the opening detector,
// where each door or window frame shows up as one small component.
func edgeComponents(edges *raster.Mask, minPixels int) []region {
	width := edges.Width
	height := edges.Height
	visited := raster.NewMask(width, height)

	components := make([]region, 0)
	stack := make([][2]int, 0, 256)

	for sy := 0; sy < height; sy++ {
		for sx := 0; sx < width; sx++ {
			if !edges.At(sx, sy) || visited.At(sx, sy) {
				continue
			}

			comp := region{minX: sx, minY: sy, maxX: sx, maxY: sy}
			visited.Set(sx, sy)
			stack = append(stack[:0], [2]int{sx, sy})

			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				cx, cy := p[0], p[1]

				comp.count++
				if cx < comp.minX {
					comp.minX = cx
				}
				if cx > comp.maxX {
					comp.maxX = cx
				}
				if cy < comp.minY {
					comp.minY = cy
				}
				if cy > comp.maxY {
					comp.maxY = cy
				}

				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						if dx == 0 && dy == 0 {
							continue
						}
						nx, ny := cx+dx, cy+dy
						if edges.At(nx, ny) && !visited.At(nx, ny) {
							visited.Set(nx, ny)
							stack = append(stack, [2]int{nx, ny})
						}
					}
				}
			}

			if comp.count >= minPixels {
				components = append(components, comp)
			}
		}
	}

	return components
}
