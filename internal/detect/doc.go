// Package detect turns a rasterized architectural drawing page into
// structured building elements: room polygons, wall segments with physical
// thickness, and door/window openings.
//
// Detection is purely classical image-geometry analysis; there is no
// machine-learned detector. The entry point is Detect, a pure single-pass
// function per page.
//
// # Pipeline
//
//  1. Preprocessing: decode, downscale to a 3000px bound with scale-factor
//     compensation (internal/raster).
//  2. Edge map: one Canny edge mask shared by every detector.
//  3. Walls: Hough segment extraction, text/dimension and dashed-line
//     rejection, parallel pairing into two-faced walls, chain merging of
//     collinear spans.
//  4. Rooms, geometry pass: enclosed regions of the closed edge map,
//     filtered by area, aspect ratio, closure and titleblock exclusion,
//     simplified with Douglas-Peucker.
//  5. Rooms, text pass: flood fill seeded from externally supplied room
//     labels, bounded by the edge and wall masks.
//  6. Merging: both room lists deduplicated by centroid proximity.
//  7. Openings: small rectangular edge components classified as doors or
//     windows by physical size.
//
// # Units and coordinates
//
// All result coordinates are normalized to [0,1] with origin top-left, so
// callers can map them to any page resolution. Physical measurements use
// feet and square feet, derived from the feet-per-pixel scale factor; when
// preprocessing downscales the page, the scale factor is compensated so
// measurements are invariant to the resize.
//
// # Filtering vs errors
//
// Heuristic rejections (titleblock overlap, dashed lines, closure or aspect
// failures) silently reduce the output set. Errors are reserved for
// undecodable input; an empty page is a valid result with empty slices.
package detect
