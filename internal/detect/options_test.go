package detect

import "testing"

func TestNormalized_ZeroValuesFilled(t *testing.T) {
	got := DetectionOptions{}.normalized()
	want := DefaultOptions()
	if got != want {
		t.Errorf("normalized zero options = %+v, want defaults", got)
	}
}

func TestNormalized_ScaleFactorFallback(t *testing.T) {
	for _, bad := range []float64{0, -0.5} {
		opts := DetectionOptions{ScaleFactor: bad}.normalized()
		if opts.ScaleFactor != DefaultScaleFactor {
			t.Errorf("ScaleFactor %v normalized to %v, want %v", bad, opts.ScaleFactor, DefaultScaleFactor)
		}
	}
}

func TestNormalized_ExplicitValuesKept(t *testing.T) {
	opts := DetectionOptions{
		ScaleFactor:   0.05,
		MinRoomArea:   120,
		MinWallLength: 5,
		MaxWalls:      10,
	}.normalized()

	if opts.ScaleFactor != 0.05 || opts.MinRoomArea != 120 || opts.MinWallLength != 5 || opts.MaxWalls != 10 {
		t.Errorf("explicit values overwritten: %+v", opts)
	}
	// Untouched fields still get defaults.
	if opts.MaxRoomAreaFraction != DefaultOptions().MaxRoomAreaFraction {
		t.Errorf("MaxRoomAreaFraction = %v", opts.MaxRoomAreaFraction)
	}
}
