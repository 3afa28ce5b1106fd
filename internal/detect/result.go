package detect

// Point is a coordinate in normalized image space. Both components are in
// [0,1]; origin top-left, X rightward, Y downward. Normalized coordinates
// let callers map results onto the source page at any resolution.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// BBox is an axis-aligned bounding box in normalized image space.
type BBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// RoomBoundary is a detected room polygon.
type RoomBoundary struct {
	// Points is the ordered boundary polygon, at least 3 vertices.
	Points []Point `json:"points"`

	// Area in square feet.
	Area float64 `json:"area"`

	// Perimeter in linear feet.
	Perimeter float64 `json:"perimeter"`

	// Confidence in [0,1].
	Confidence float64 `json:"confidence"`

	// RoomLabel is the OCR label text for text-seeded rooms, empty for
	// geometry-only detections.
	RoomLabel string `json:"room_label,omitempty"`
}

// WallSegment is a detected wall centerline with physical thickness.
type WallSegment struct {
	Start      Point   `json:"start"`
	End        Point   `json:"end"`
	Length     float64 `json:"length"`    // linear feet
	Thickness  float64 `json:"thickness"` // feet
	Confidence float64 `json:"confidence"`
}

// Opening is the clear span of a door or window.
type Opening struct {
	Start Point   `json:"start"`
	End   Point   `json:"end"`
	Width float64 `json:"width"` // feet
}

// DoorWindow is a detected door or window, classified purely by the physical
// size of its bounding box.
type DoorWindow struct {
	// Type is "door" or "window".
	Type string `json:"type"`

	BBox       BBox    `json:"bbox"`
	Opening    Opening `json:"opening"`
	Confidence float64 `json:"confidence"`
}

// OCRTextElement is a text item supplied by an external OCR collaborator.
// Only elements of type "room_label" seed room growth; everything else is
// passed through untouched.
type OCRTextElement struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
	BBox       BBox    `json:"bbox"`

	// Type is one of "room_label", "dimension", "note" or "other".
	// Empty is treated as "other".
	Type string `json:"type,omitempty"`
}

// BoundaryDetectionResult is the immutable snapshot returned by one Detect
// call. Slices are never nil: an empty page yields empty arrays, not an
// error.
type BoundaryDetectionResult struct {
	Rooms   []RoomBoundary `json:"rooms"`
	Walls   []WallSegment  `json:"walls"`
	Doors   []DoorWindow   `json:"doors"`
	Windows []DoorWindow   `json:"windows"`

	// OCRText is the caller-supplied label list, passed through.
	OCRText []OCRTextElement `json:"ocr_text"`

	// ImageWidth and ImageHeight are the working-image dimensions the
	// normalized coordinates refer to.
	ImageWidth  int `json:"image_width"`
	ImageHeight int `json:"image_height"`

	// ProcessingTimeMS is wall-clock detection time in milliseconds.
	ProcessingTimeMS int64 `json:"processing_time_ms"`
}
