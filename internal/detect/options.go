package detect

// DefaultScaleFactor is the fallback feet-per-pixel value substituted when a
// caller passes a non-positive scale factor (1 inch = 1 pixel at 12 px/ft).
const DefaultScaleFactor = 0.0833

// DetectionOptions consolidates every tunable threshold of the detection
// pipeline. Zero values are replaced by the documented defaults, so callers
// can set only the fields they care about.
//
// Physical quantities use feet (lengths, thicknesses) and square feet
// (areas); pixel quantities are in working-image pixels.
type DetectionOptions struct {
	// ScaleFactor is feet per pixel of the input image. Must be positive;
	// non-positive values fall back to DefaultScaleFactor.
	ScaleFactor float64 `json:"scale_factor" yaml:"scale_factor"`

	// MinRoomArea is the smallest reportable room, in square feet.
	// Default 50.
	MinRoomArea float64 `json:"min_room_area" yaml:"min_room_area"`

	// MaxRoomAreaFraction rejects contours larger than this fraction of the
	// page, which are building outlines rather than rooms. Default 0.45.
	MaxRoomAreaFraction float64 `json:"max_room_area_fraction" yaml:"max_room_area_fraction"`

	// MinWallLength is the shortest reportable wall, in feet. Default 2.
	MinWallLength float64 `json:"min_wall_length" yaml:"min_wall_length"`

	// EdgeThresholdLow and EdgeThresholdHigh are the Canny hysteresis
	// thresholds (0-255). Defaults 50 and 150.
	EdgeThresholdLow  int `json:"edge_threshold_low" yaml:"edge_threshold_low"`
	EdgeThresholdHigh int `json:"edge_threshold_high" yaml:"edge_threshold_high"`

	// SimplifyEpsilon scales the polygon simplification tolerance: the
	// Douglas-Peucker epsilon is SimplifyEpsilon times the contour
	// perimeter. Default 0.02.
	SimplifyEpsilon float64 `json:"simplify_epsilon" yaml:"simplify_epsilon"`

	// Wall pairing constraints.
	ParallelToleranceDeg float64 `json:"parallel_tolerance_deg" yaml:"parallel_tolerance_deg"` // default 10
	MinOverlapRatio      float64 `json:"min_overlap_ratio" yaml:"min_overlap_ratio"`           // default 0.3
	MinWallThickness     float64 `json:"min_wall_thickness" yaml:"min_wall_thickness"`         // feet, default 0.25
	MaxWallThickness     float64 `json:"max_wall_thickness" yaml:"max_wall_thickness"`         // feet, default 2.0
	DefaultWallThickness float64 `json:"default_wall_thickness" yaml:"default_wall_thickness"` // feet, default 0.5

	// Chain merging constraints.
	ChainEndpointGapPx float64 `json:"chain_endpoint_gap_px" yaml:"chain_endpoint_gap_px"` // default 20
	CornerToleranceDeg float64 `json:"corner_tolerance_deg" yaml:"corner_tolerance_deg"`   // default 15

	// Dashed-line rejection: minimum edge continuity along a segment and
	// maximum consecutive-gap run as a fraction of samples.
	DashMinContinuity float64 `json:"dash_min_continuity" yaml:"dash_min_continuity"` // default 0.6
	DashMaxGapRatio   float64 `json:"dash_max_gap_ratio" yaml:"dash_max_gap_ratio"`   // default 0.3

	// Text/dimension-line rejection.
	TextDensityThreshold float64 `json:"text_density_threshold" yaml:"text_density_threshold"` // default 0.4
	TextHitRatioMax      float64 `json:"text_hit_ratio_max" yaml:"text_hit_ratio_max"`         // default 0.3

	// Room contour filters.
	MaxAspectRatio  float64 `json:"max_aspect_ratio" yaml:"max_aspect_ratio"`   // default 15
	MaxClosureRatio float64 `json:"max_closure_ratio" yaml:"max_closure_ratio"` // default 0.25

	// Titleblock exclusion zone as fractions of the page, plus the overlap
	// above which a contour inside the zone is rejected.
	TitleblockTopFrac    float64 `json:"titleblock_top_frac" yaml:"titleblock_top_frac"`       // default 0.12
	TitleblockBottomFrac float64 `json:"titleblock_bottom_frac" yaml:"titleblock_bottom_frac"` // default 0.12
	TitleblockSideFrac   float64 `json:"titleblock_side_frac" yaml:"titleblock_side_frac"`     // default 0.10
	TitleblockOverlapMax float64 `json:"titleblock_overlap_max" yaml:"titleblock_overlap_max"` // default 0.85

	// Text-seeded growth ceiling as a fraction of the page. Default 0.7.
	GrowMaxAreaFraction float64 `json:"grow_max_area_fraction" yaml:"grow_max_area_fraction"`

	// Output caps. Defaults 100 each.
	MaxWalls int `json:"max_walls" yaml:"max_walls"`
	MaxRooms int `json:"max_rooms" yaml:"max_rooms"`
}

// DefaultOptions returns the calibrated default threshold set.
func DefaultOptions() DetectionOptions {
	return DetectionOptions{
		ScaleFactor:          DefaultScaleFactor,
		MinRoomArea:          50,
		MaxRoomAreaFraction:  0.45,
		MinWallLength:        2,
		EdgeThresholdLow:     50,
		EdgeThresholdHigh:    150,
		SimplifyEpsilon:      0.02,
		ParallelToleranceDeg: 10,
		MinOverlapRatio:      0.3,
		MinWallThickness:     0.25,
		MaxWallThickness:     2.0,
		DefaultWallThickness: 0.5,
		ChainEndpointGapPx:   20,
		CornerToleranceDeg:   15,
		DashMinContinuity:    0.6,
		DashMaxGapRatio:      0.3,
		TextDensityThreshold: 0.4,
		TextHitRatioMax:      0.3,
		MaxAspectRatio:       15,
		MaxClosureRatio:      0.25,
		TitleblockTopFrac:    0.12,
		TitleblockBottomFrac: 0.12,
		TitleblockSideFrac:   0.10,
		TitleblockOverlapMax: 0.85,
		GrowMaxAreaFraction:  0.7,
		MaxWalls:             100,
		MaxRooms:             100,
	}
}

// normalized fills zero-valued fields with defaults and substitutes
// DefaultScaleFactor for non-positive scale factors. An invalid scale factor
// is recovered, not reported; the caller calibrates scale externally and
// detection should still produce usable relative geometry without it.
func (o DetectionOptions) normalized() DetectionOptions {
	def := DefaultOptions()
	if o.ScaleFactor <= 0 {
		o.ScaleFactor = def.ScaleFactor
	}
	if o.MinRoomArea <= 0 {
		o.MinRoomArea = def.MinRoomArea
	}
	if o.MaxRoomAreaFraction <= 0 {
		o.MaxRoomAreaFraction = def.MaxRoomAreaFraction
	}
	if o.MinWallLength <= 0 {
		o.MinWallLength = def.MinWallLength
	}
	if o.EdgeThresholdLow <= 0 {
		o.EdgeThresholdLow = def.EdgeThresholdLow
	}
	if o.EdgeThresholdHigh <= 0 {
		o.EdgeThresholdHigh = def.EdgeThresholdHigh
	}
	if o.SimplifyEpsilon <= 0 {
		o.SimplifyEpsilon = def.SimplifyEpsilon
	}
	if o.ParallelToleranceDeg <= 0 {
		o.ParallelToleranceDeg = def.ParallelToleranceDeg
	}
	if o.MinOverlapRatio <= 0 {
		o.MinOverlapRatio = def.MinOverlapRatio
	}
	if o.MinWallThickness <= 0 {
		o.MinWallThickness = def.MinWallThickness
	}
	if o.MaxWallThickness <= 0 {
		o.MaxWallThickness = def.MaxWallThickness
	}
	if o.DefaultWallThickness <= 0 {
		o.DefaultWallThickness = def.DefaultWallThickness
	}
	if o.ChainEndpointGapPx <= 0 {
		o.ChainEndpointGapPx = def.ChainEndpointGapPx
	}
	if o.CornerToleranceDeg <= 0 {
		o.CornerToleranceDeg = def.CornerToleranceDeg
	}
	if o.DashMinContinuity <= 0 {
		o.DashMinContinuity = def.DashMinContinuity
	}
	if o.DashMaxGapRatio <= 0 {
		o.DashMaxGapRatio = def.DashMaxGapRatio
	}
	if o.TextDensityThreshold <= 0 {
		o.TextDensityThreshold = def.TextDensityThreshold
	}
	if o.TextHitRatioMax <= 0 {
		o.TextHitRatioMax = def.TextHitRatioMax
	}
	if o.MaxAspectRatio <= 0 {
		o.MaxAspectRatio = def.MaxAspectRatio
	}
	if o.MaxClosureRatio <= 0 {
		o.MaxClosureRatio = def.MaxClosureRatio
	}
	if o.TitleblockTopFrac <= 0 {
		o.TitleblockTopFrac = def.TitleblockTopFrac
	}
	if o.TitleblockBottomFrac <= 0 {
		o.TitleblockBottomFrac = def.TitleblockBottomFrac
	}
	if o.TitleblockSideFrac <= 0 {
		o.TitleblockSideFrac = def.TitleblockSideFrac
	}
	if o.TitleblockOverlapMax <= 0 {
		o.TitleblockOverlapMax = def.TitleblockOverlapMax
	}
	if o.GrowMaxAreaFraction <= 0 {
		o.GrowMaxAreaFraction = def.GrowMaxAreaFraction
	}
	if o.MaxWalls <= 0 {
		o.MaxWalls = def.MaxWalls
	}
	if o.MaxRooms <= 0 {
		o.MaxRooms = def.MaxRooms
	}
	return o
}
