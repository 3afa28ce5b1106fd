package detect

import (
	"fmt"
	"math"
	"sort"
)

// geometryOnlyPenalty discounts rooms that lack textual corroboration.
const geometryOnlyPenalty = 0.9

// mergeRooms combines text-seeded and geometry-based room lists, keyed by
// rounded polygon centroid so the same physical room detected both ways
// collapses to one entry. On a key collision the higher-confidence room
// wins; geometry-only rooms are penalized since nothing confirms them.
func mergeRooms(textRooms, geomRooms []RoomBoundary, opts DetectionOptions) []RoomBoundary {
	byKey := make(map[string]RoomBoundary)

	for _, room := range textRooms {
		key := centroidKey(room)
		if existing, ok := byKey[key]; !ok || room.Confidence > existing.Confidence {
			byKey[key] = room
		}
	}
	for _, room := range geomRooms {
		room.Confidence *= geometryOnlyPenalty
		key := centroidKey(room)
		if existing, ok := byKey[key]; !ok || room.Confidence > existing.Confidence {
			byKey[key] = room
		}
	}

	merged := make([]RoomBoundary, 0, len(byKey))
	for _, room := range byKey {
		merged = append(merged, room)
	}
	sort.Slice(merged, func(i, j int) bool {
		if merged[i].Confidence != merged[j].Confidence {
			return merged[i].Confidence > merged[j].Confidence
		}
		return merged[i].Area > merged[j].Area
	})
	if len(merged) > opts.MaxRooms {
		merged = merged[:opts.MaxRooms]
	}
	return merged
}

// centroidKey buckets a room by its centroid rounded to a 2% grid of the
// normalized page, coarse enough that both detectors land the same room in
// the same bucket.
func centroidKey(room RoomBoundary) string {
	var sx, sy float64
	for _, p := range room.Points {
		sx += p.X
		sy += p.Y
	}
	n := float64(len(room.Points))
	return fmt.Sprintf("%d:%d", int(math.Round(sx/n*50)), int(math.Round(sy/n*50)))
}
