package detect

import "testing"

func squareRoom(cx, cy, half, conf float64, label string) RoomBoundary {
	return RoomBoundary{
		Points: []Point{
			{X: cx - half, Y: cy - half},
			{X: cx + half, Y: cy - half},
			{X: cx + half, Y: cy + half},
			{X: cx - half, Y: cy + half},
		},
		Area:       400,
		Perimeter:  80,
		Confidence: conf,
		RoomLabel:  label,
	}
}

func TestMergeRooms_SameRoomCollapses(t *testing.T) {
	opts := DefaultOptions()
	text := []RoomBoundary{squareRoom(0.5, 0.5, 0.1, 0.85, "KITCHEN")}
	geom := []RoomBoundary{squareRoom(0.5, 0.5, 0.1, 0.9, "")}

	merged := mergeRooms(text, geom, opts)
	if len(merged) != 1 {
		t.Fatalf("got %d rooms, want 1", len(merged))
	}
	// The geometry room is discounted below the labeled one: 0.9 * 0.9 < 0.85.
	if merged[0].RoomLabel != "KITCHEN" {
		t.Errorf("labeled room lost the merge: %+v", merged[0])
	}
}

func TestMergeRooms_GeometryWinsWhenStronger(t *testing.T) {
	opts := DefaultOptions()
	text := []RoomBoundary{squareRoom(0.5, 0.5, 0.1, 0.6, "BEDROOM")}
	geom := []RoomBoundary{squareRoom(0.5, 0.5, 0.1, 0.9, "")}

	merged := mergeRooms(text, geom, opts)
	if len(merged) != 1 {
		t.Fatalf("got %d rooms, want 1", len(merged))
	}
	if merged[0].RoomLabel != "" {
		t.Errorf("weak labeled room won the merge: %+v", merged[0])
	}
	if merged[0].Confidence != 0.9*geometryOnlyPenalty {
		t.Errorf("penalty not applied: %f", merged[0].Confidence)
	}
}

func TestMergeRooms_DistinctRoomsKept(t *testing.T) {
	opts := DefaultOptions()
	text := []RoomBoundary{squareRoom(0.2, 0.2, 0.1, 0.9, "OFFICE")}
	geom := []RoomBoundary{squareRoom(0.7, 0.7, 0.1, 0.8, "")}

	merged := mergeRooms(text, geom, opts)
	if len(merged) != 2 {
		t.Fatalf("got %d rooms, want 2", len(merged))
	}
	// Sorted by confidence, highest first.
	if merged[0].Confidence < merged[1].Confidence {
		t.Error("rooms not sorted by confidence")
	}
	if merged[0].RoomLabel != "OFFICE" {
		t.Errorf("first room = %+v", merged[0])
	}
}

func TestMergeRooms_CapsOutput(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxRooms = 2

	geom := []RoomBoundary{
		squareRoom(0.2, 0.2, 0.05, 0.9, ""),
		squareRoom(0.5, 0.5, 0.05, 0.8, ""),
		squareRoom(0.8, 0.8, 0.05, 0.7, ""),
	}
	merged := mergeRooms(nil, geom, opts)
	if len(merged) != 2 {
		t.Fatalf("got %d rooms, want cap of 2", len(merged))
	}
	if merged[0].Confidence < merged[1].Confidence {
		t.Error("cap did not keep the strongest rooms")
	}
}

func TestMergeRooms_Empty(t *testing.T) {
	merged := mergeRooms(nil, nil, DefaultOptions())
	if merged == nil {
		t.Fatal("merge must return an empty slice, not nil")
	}
	if len(merged) != 0 {
		t.Errorf("got %d rooms from empty input", len(merged))
	}
}
