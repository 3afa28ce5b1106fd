package detect

import (
	"math"
	"testing"

	"github.com/planscan/boundary/internal/geometry"
	"github.com/planscan/boundary/internal/raster"
)

func TestDetectRooms_EnclosedRectangle(t *testing.T) {
	edges := raster.NewMask(600, 600)
	maskRectOutline(edges, 100, 100, 500, 400)

	work := testWorking(600, 600, DefaultScaleFactor)
	opts := testOptions(DefaultScaleFactor)

	rooms := detectRooms(work, edges, nil, opts)
	if len(rooms) != 1 {
		t.Fatalf("got %d rooms, want 1", len(rooms))
	}
	room := rooms[0]

	// Interior is roughly 399x299 px before the closing dilation eats a
	// couple of pixels per side.
	wantArea := 399 * 299 * DefaultScaleFactor * DefaultScaleFactor
	if math.Abs(room.Area-wantArea) > wantArea*0.1 {
		t.Errorf("area = %.1f SF, want %.1f +/- 10%%", room.Area, wantArea)
	}

	if len(room.Points) < 3 {
		t.Fatalf("room polygon has %d points", len(room.Points))
	}
	for _, p := range room.Points {
		if p.X < 0.15 || p.X > 0.85 || p.Y < 0.15 || p.Y > 0.7 {
			t.Errorf("vertex %+v outside the drawn rectangle", p)
		}
	}

	if room.Perimeter <= 0 {
		t.Error("perimeter not populated")
	}
	if room.Confidence <= 0 || room.Confidence > 0.95 {
		t.Errorf("confidence = %f", room.Confidence)
	}
	if room.RoomLabel != "" {
		t.Errorf("geometry-only room carries label %q", room.RoomLabel)
	}
}

func TestDetectRooms_BlankPage(t *testing.T) {
	edges := raster.NewMask(400, 400)
	work := testWorking(400, 400, DefaultScaleFactor)

	rooms := detectRooms(work, edges, nil, testOptions(DefaultScaleFactor))
	if len(rooms) != 0 {
		t.Errorf("blank page produced %d rooms", len(rooms))
	}
}

func TestDetectRooms_BuildingOutlineRejected(t *testing.T) {
	// One rectangle covering nearly the whole page: the building shell, not
	// a room.
	edges := raster.NewMask(600, 600)
	maskRectOutline(edges, 10, 10, 590, 590)

	work := testWorking(600, 600, DefaultScaleFactor)
	rooms := detectRooms(work, edges, nil, testOptions(DefaultScaleFactor))
	if len(rooms) != 0 {
		t.Errorf("building outline reported as room: %+v", rooms)
	}
}

func TestDetectRooms_CorridorAspectRejected(t *testing.T) {
	edges := raster.NewMask(600, 600)
	maskRectOutline(edges, 50, 285, 550, 315)

	work := testWorking(600, 600, DefaultScaleFactor)
	rooms := detectRooms(work, edges, nil, testOptions(DefaultScaleFactor))
	if len(rooms) != 0 {
		t.Errorf("corridor-shaped region reported as room: %+v", rooms)
	}
}

func TestDetectRooms_SmallAreaRejected(t *testing.T) {
	// ~28 SF at the default scale: closet-sized, below the 50 SF floor.
	edges := raster.NewMask(600, 600)
	maskRectOutline(edges, 200, 200, 265, 265)

	work := testWorking(600, 600, DefaultScaleFactor)
	rooms := detectRooms(work, edges, nil, testOptions(DefaultScaleFactor))
	if len(rooms) != 0 {
		t.Errorf("undersized region reported as room: %+v", rooms)
	}
}

func TestDetectRooms_TitleblockCornerRejected(t *testing.T) {
	work := testWorking(1000, 1000, DefaultScaleFactor)
	opts := testOptions(DefaultScaleFactor)

	// The same rectangle passes in the page center but not when its
	// bounding box sits fully inside the right-margin titleblock strip.
	center := raster.NewMask(1000, 1000)
	maskRectOutline(center, 450, 350, 535, 635)
	if rooms := detectRooms(work, center, nil, opts); len(rooms) != 1 {
		t.Fatalf("control rectangle in page center: got %d rooms, want 1", len(rooms))
	}

	corner := raster.NewMask(1000, 1000)
	maskRectOutline(corner, 905, 700, 990, 985)
	if rooms := detectRooms(work, corner, nil, opts); len(rooms) != 0 {
		t.Errorf("titleblock-corner contour reported as room: %+v", rooms)
	}
}

func TestDetectRooms_WallAlignment(t *testing.T) {
	edges := raster.NewMask(600, 600)
	maskRectOutline(edges, 100, 100, 500, 400)

	work := testWorking(600, 600, DefaultScaleFactor)
	opts := testOptions(DefaultScaleFactor)

	// Centerlines matching the drawn rectangle: the room survives.
	aligned := []geometry.Segment{
		{Start: geometry.Point{X: 100, Y: 100}, End: geometry.Point{X: 500, Y: 100}},
		{Start: geometry.Point{X: 100, Y: 400}, End: geometry.Point{X: 500, Y: 400}},
		{Start: geometry.Point{X: 100, Y: 100}, End: geometry.Point{X: 100, Y: 400}},
		{Start: geometry.Point{X: 500, Y: 100}, End: geometry.Point{X: 500, Y: 400}},
	}
	if rooms := detectRooms(work, edges, aligned, opts); len(rooms) != 1 {
		t.Fatalf("wall-aligned room rejected")
	}

	// Centerlines nowhere near the contour: the region is hatching or a
	// furniture outline, not a walled room.
	elsewhere := []geometry.Segment{
		{Start: geometry.Point{X: 10, Y: 550}, End: geometry.Point{X: 590, Y: 550}},
		{Start: geometry.Point{X: 10, Y: 580}, End: geometry.Point{X: 590, Y: 580}},
		{Start: geometry.Point{X: 10, Y: 560}, End: geometry.Point{X: 10, Y: 590}},
		{Start: geometry.Point{X: 590, Y: 560}, End: geometry.Point{X: 590, Y: 590}},
	}
	if rooms := detectRooms(work, edges, elsewhere, opts); len(rooms) != 0 {
		t.Errorf("room with no adjacent walls kept: %+v", rooms)
	}
}

func TestRoomConfidence(t *testing.T) {
	// A well-filled, plausibly sized, squarish room scores high.
	high := roomConfidence(0.95, 400, 1.3)
	low := roomConfidence(0.3, 10000, 12)
	if high <= low {
		t.Errorf("high = %f not above low = %f", high, low)
	}
	if high > 0.95 {
		t.Errorf("confidence above cap: %f", high)
	}
}

func TestRasterizeSegments(t *testing.T) {
	segs := []geometry.Segment{
		{Start: geometry.Point{X: 10, Y: 10}, End: geometry.Point{X: 50, Y: 10}},
		{Start: geometry.Point{X: 10, Y: 10}, End: geometry.Point{X: 10, Y: 40}},
	}
	m := rasterizeSegments(segs, 100, 100)

	if !m.At(30, 10) || !m.At(10, 25) {
		t.Error("segment pixels not stroked")
	}
	if m.Count() != 41+31-1 {
		t.Errorf("stroked %d pixels, want %d", m.Count(), 41+31-1)
	}
}
