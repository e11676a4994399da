package detector

import "math"

// dist returns the Euclidean distance between two points.
func dist(ax, ay, bx, by float32) float32 {
	dx := float64(ax - bx)
	dy := float64(ay - by)
	return float32(math.Sqrt(dx*dx + dy*dy))
}

// midpoint returns the point halfway between two points.
func midpoint(ax, ay, bx, by float32) (x, y float32) {
	return (ax + bx) / 2, (ay + by) / 2
}

// lineAngle returns the angle of the line from a to b in degrees.
func lineAngle(ax, ay, bx, by float32) float32 {
	return float32(math.Atan2(float64(by-ay), float64(bx-ax)) * 180 / math.Pi)
}

// normalizeDeg maps an angle difference into (-180, 180].
func normalizeDeg(a float32) float32 {
	for a > 180 {
		a -= 360
	}
	for a <= -180 {
		a += 360
	}
	return a
}
