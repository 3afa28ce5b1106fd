package detect

import (
	"math"
	"testing"

	"github.com/planscan/boundary/internal/raster"
)

func TestDetectOpenings_DoorAndWindow(t *testing.T) {
	edges := raster.NewMask(600, 600)
	// 3ft x 6.7ft frame at the default scale: a door.
	maskRectOutline(edges, 100, 100, 135, 179)
	// 2ft x 3ft frame: a window.
	maskRectOutline(edges, 300, 300, 323, 335)

	work := testWorking(600, 600, DefaultScaleFactor)
	doors, windows := detectOpenings(work, edges, testOptions(DefaultScaleFactor))

	if len(doors) != 1 {
		t.Fatalf("got %d doors, want 1: %+v", len(doors), doors)
	}
	if len(windows) != 1 {
		t.Fatalf("got %d windows, want 1: %+v", len(windows), windows)
	}

	door := doors[0]
	if door.Type != "door" {
		t.Errorf("door type = %q", door.Type)
	}
	if math.Abs(door.BBox.X-100.0/600) > 0.01 || math.Abs(door.BBox.Y-100.0/600) > 0.01 {
		t.Errorf("door bbox origin = (%f,%f)", door.BBox.X, door.BBox.Y)
	}
	if door.Confidence != openingConfidence {
		t.Errorf("door confidence = %f", door.Confidence)
	}
	// The opening spans the taller dimension.
	if door.Opening.Start.X != door.Opening.End.X {
		t.Errorf("door opening not vertical: %+v", door.Opening)
	}
	if math.Abs(door.Opening.Width-80*DefaultScaleFactor) > 0.1 {
		t.Errorf("door opening width = %f ft", door.Opening.Width)
	}

	window := windows[0]
	if window.Type != "window" {
		t.Errorf("window type = %q", window.Type)
	}
	if window.Opening.Width <= 0 {
		t.Errorf("window opening width = %f", window.Opening.Width)
	}
}

func TestDetectOpenings_WallsIgnored(t *testing.T) {
	// A 40ft wall outline is far outside either size class.
	edges := raster.NewMask(600, 600)
	maskRectOutline(edges, 50, 50, 530, 56)

	work := testWorking(600, 600, DefaultScaleFactor)
	doors, windows := detectOpenings(work, edges, testOptions(DefaultScaleFactor))
	if len(doors) != 0 || len(windows) != 0 {
		t.Errorf("wall outline classified as opening: doors=%v windows=%v", doors, windows)
	}
}

func TestDetectOpenings_SolidBlobRejected(t *testing.T) {
	// Door-sized bounding box, but filled solid: a poche or hatch blob has
	// far more pixels than a frame outline.
	edges := raster.NewMask(600, 600)
	maskFillRect(edges, 100, 100, 135, 179)

	work := testWorking(600, 600, DefaultScaleFactor)
	doors, windows := detectOpenings(work, edges, testOptions(DefaultScaleFactor))
	if len(doors) != 0 || len(windows) != 0 {
		t.Errorf("solid blob classified as opening: doors=%v windows=%v", doors, windows)
	}
}

func TestDetectOpenings_RotatedDoor(t *testing.T) {
	// Same door frame lying on its side.
	edges := raster.NewMask(600, 600)
	maskRectOutline(edges, 100, 100, 179, 135)

	work := testWorking(600, 600, DefaultScaleFactor)
	doors, _ := detectOpenings(work, edges, testOptions(DefaultScaleFactor))
	if len(doors) != 1 {
		t.Fatalf("rotated door not matched: %+v", doors)
	}
	// The opening follows the long dimension, now horizontal.
	if doors[0].Opening.Start.Y != doors[0].Opening.End.Y {
		t.Errorf("rotated door opening not horizontal: %+v", doors[0].Opening)
	}
}

func TestOpeningSizeClasses(t *testing.T) {
	cases := []struct {
		w, h   float64
		door   bool
		window bool
	}{
		{3, 6.7, true, false},
		{2, 6, true, false},
		{4, 8, true, false},
		{2, 3, false, true},
		{1, 5, false, true},
		{3, 4.5, false, true},
		{5, 7, false, false},  // too wide for a door
		{0.5, 2, false, false}, // too narrow for a window
		{2, 5.5, false, false}, // between the classes
	}
	for _, c := range cases {
		if got := isDoorSize(c.w, c.h); got != c.door {
			t.Errorf("isDoorSize(%v, %v) = %v, want %v", c.w, c.h, got, c.door)
		}
		if got := isWindowSize(c.w, c.h); got != c.window {
			t.Errorf("isWindowSize(%v, %v) = %v, want %v", c.w, c.h, got, c.window)
		}
	}
}
