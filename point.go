package segment

import "math"

// Point represents a 2D point or vector in normalized image coordinates.
// Both axes range over [0, 1] relative to the source image dimensions.
type Point struct {
	X, Y float64
}

// Pt is a convenience function to create a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points (vector addition).
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the difference of two points (vector subtraction).
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul returns the point scaled by a scalar.
func (p Point) Mul(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Length returns the length of the vector.
func (p Point) Length() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y)
}

// Distance returns the distance between two points.
func (p Point) Distance(q Point) float64 {
	return p.Sub(q).Length()
}

// Lerp performs linear interpolation between two points.
// t=0 returns p, t=1 returns q, intermediate values interpolate.
func (p Point) Lerp(q Point, t float64) Point {
	return Point{
		X: p.X + (q.X-p.X)*t,
		Y: p.Y + (q.Y-p.Y)*t,
	}
}

// Clamp returns the point with both coordinates clamped to [0, 1].
func (p Point) Clamp() Point {
	return Point{X: clamp01(p.X), Y: clamp01(p.Y)}
}

// Pixel converts the normalized point to pixel coordinates for a raster
// of the given dimensions, clamped to valid pixel indices.
func (p Point) Pixel(width, height int) (int, int) {
	x := int(clamp01(p.X) * float64(width))
	y := int(clamp01(p.Y) * float64(height))
	if x >= width {
		x = width - 1
	}
	if y >= height {
		y = height - 1
	}
	return x, y
}

// PtFromPixel converts pixel coordinates to a normalized point at the
// pixel center.
func PtFromPixel(x, y, width, height int) Point {
	return Point{
		X: (float64(x) + 0.5) / float64(width),
		Y: (float64(y) + 0.5) / float64(height),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
