package gesture

import "math"

// Classifier maps raw normalized stick coordinates to a Sector.
//
// Sector numbering is fixed: θ = atan2(y, x), and sector i covers the arc
// centered on i·(2π/Sectors). For the standard 4-sector layout that makes
// 0 = right, 1 = up, 2 = left, 3 = down, with boundaries on the diagonals.
type Classifier struct {
	// Threshold is the radius below which the stick counts as Center.
	Threshold float64
	// Sectors is the number of angular regions outside the threshold.
	Sectors int
}

// Classify maps one raw sample to its stick state. Out-of-range coordinates
// are clamped to [-1, 1] so classification stays total; the function is pure
// and idempotent under repeated identical input.
func (c Classifier) Classify(x, y float64) Sector {
	x = clamp(x)
	y = clamp(y)
	if math.Hypot(x, y) < c.Threshold {
		return Center
	}
	n := c.Sectors
	if n <= 0 {
		n = 4
	}
	width := 2 * math.Pi / float64(n)
	idx := int(math.Round(math.Atan2(y, x) / width))
	return Sector(((idx % n) + n) % n)
}

func clamp(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v < -1:
		return -1
	case v > 1:
		return 1
	}
	return v
}
