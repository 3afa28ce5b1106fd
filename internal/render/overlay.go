// Package render draws detection results back onto the working image for
// visual verification. Output is a PNG with rooms, walls, doors and windows
// stroked in distinct colors.
package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/planscan/boundary/internal/detect"
)

var (
	wallColor   = color.RGBA{R: 220, G: 40, B: 40, A: 255}
	doorColor   = color.RGBA{R: 40, G: 110, B: 220, A: 255}
	windowColor = color.RGBA{R: 40, G: 180, B: 200, A: 255}
)

// Overlay renders the detection result over the base image and returns PNG
// bytes. Each room gets its own hue, evenly spaced around the color wheel,
// so adjacent rooms stay distinguishable.
func Overlay(base image.Image, result *detect.BoundaryDetectionResult) ([]byte, error) {
	bounds := base.Bounds()
	out := image.NewRGBA(bounds)
	draw.Draw(out, bounds, base, bounds.Min, draw.Src)

	width := float64(bounds.Dx())
	height := float64(bounds.Dy())

	roomColors := roomPalette(len(result.Rooms))
	for i, room := range result.Rooms {
		drawPolygon(out, room.Points, width, height, roomColors[i])
	}
	for _, wall := range result.Walls {
		drawLine(out, wall.Start, wall.End, width, height, wallColor)
	}
	for _, door := range result.Doors {
		drawBox(out, door.BBox, width, height, doorColor)
	}
	for _, window := range result.Windows {
		drawBox(out, window.BBox, width, height, windowColor)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return nil, fmt.Errorf("failed to encode overlay: %w", err)
	}
	return buf.Bytes(), nil
}

// roomPalette returns n saturated, evenly spaced hues.
func roomPalette(n int) []color.RGBA {
	palette := make([]color.RGBA, n)
	for i := range palette {
		hue := float64(i) * 360.0 / float64(n)
		r, g, b := colorful.Hsv(hue, 0.85, 0.9).RGB255()
		palette[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	return palette
}

func drawPolygon(img *image.RGBA, pts []detect.Point, width, height float64, c color.RGBA) {
	for i := range pts {
		drawLine(img, pts[i], pts[(i+1)%len(pts)], width, height, c)
	}
}

func drawBox(img *image.RGBA, b detect.BBox, width, height float64, c color.RGBA) {
	tl := detect.Point{X: b.X, Y: b.Y}
	tr := detect.Point{X: b.X + b.Width, Y: b.Y}
	br := detect.Point{X: b.X + b.Width, Y: b.Y + b.Height}
	bl := detect.Point{X: b.X, Y: b.Y + b.Height}
	drawLine(img, tl, tr, width, height, c)
	drawLine(img, tr, br, width, height, c)
	drawLine(img, br, bl, width, height, c)
	drawLine(img, bl, tl, width, height, c)
}

// drawLine strokes a line between two normalized points (integer Bresenham).
func drawLine(img *image.RGBA, a, b detect.Point, width, height float64, c color.RGBA) {
	min := img.Bounds().Min
	x0 := min.X + int(math.Round(a.X*(width-1)))
	y0 := min.Y + int(math.Round(a.Y*(height-1)))
	x1 := min.X + int(math.Round(b.X*(width-1)))
	y1 := min.Y + int(math.Round(b.Y*(height-1)))

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		img.Set(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
