// Package gesture implements stick-dial gesture recognition: classifying raw
// stick samples into angular sectors, accumulating per-stick sector sequences
// into canonical gestures, and pairing both sticks into completed inputs.
package gesture

import (
	"fmt"
	"strconv"
	"strings"
)

// Sector identifies one of the angular regions a displaced stick points into.
// Center is the neutral state inside the threshold radius.
type Sector int

// Center marks a stick resting inside the threshold radius.
const Center Sector = -1

// Gesture is the canonical identity of one stick excursion: the ordered
// sectors visited between leaving and returning to Center, with consecutive
// repeats collapsed. An empty gesture means the stick never left Center.
type Gesture []Sector

// Key returns a stable string form of the gesture, usable as a map key.
// Sectors are dot-separated; the empty gesture yields "".
func (g Gesture) Key() string {
	if len(g) == 0 {
		return ""
	}
	parts := make([]string, len(g))
	for i, s := range g {
		parts[i] = strconv.Itoa(int(s))
	}
	return strings.Join(parts, ".")
}

// Equal reports structural equality of two gestures.
func (g Gesture) Equal(other Gesture) bool {
	if len(g) != len(other) {
		return false
	}
	for i := range g {
		if g[i] != other[i] {
			return false
		}
	}
	return true
}

var sectorArrows = []rune{'→', '↑', '←', '↓'}

// Glyph renders the gesture for display: arrows for the standard 4-sector
// layout, numeric sectors otherwise, and a middle dot for the empty gesture.
func (g Gesture) Glyph() string {
	if len(g) == 0 {
		return "·"
	}
	var b strings.Builder
	for _, s := range g {
		if s >= 0 && int(s) < len(sectorArrows) {
			b.WriteRune(sectorArrows[s])
		} else {
			b.WriteString(strconv.Itoa(int(s)))
		}
	}
	return b.String()
}

// ParseKey parses the Key form back into a Gesture. It rejects sectors that
// are negative or not separated by single dots.
func ParseKey(key string) (Gesture, error) {
	if key == "" {
		return nil, nil
	}
	parts := strings.Split(key, ".")
	g := make(Gesture, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid gesture key %q: %w", key, err)
		}
		if n < 0 {
			return nil, fmt.Errorf("invalid gesture key %q: negative sector", key)
		}
		g[i] = Sector(n)
	}
	return g, nil
}

// Input pairs the gestures both sticks produced during one input episode.
type Input struct {
	Left  Gesture
	Right Gesture
}

// Difficulty is the combined length of both gestures. It orders inputs for
// key assignment: shorter dials are easier to perform.
func (in Input) Difficulty() int {
	return len(in.Left) + len(in.Right)
}

// Key returns a stable string form of the input pair.
func (in Input) Key() string {
	return in.Left.Key() + "|" + in.Right.Key()
}

// Glyph renders the input pair for display.
func (in Input) Glyph() string {
	return in.Left.Glyph() + " " + in.Right.Glyph()
}

// Encode canonicalizes a raw sector sequence: Center entries are dropped,
// consecutive duplicates collapse to one, and the result is truncated to
// maxLen. It is total and idempotent; applying it to its own output is a
// no-op.
func Encode(seq []Sector, maxLen int) Gesture {
	if maxLen <= 0 || len(seq) == 0 {
		return nil
	}
	var g Gesture
	for _, s := range seq {
		if s == Center {
			continue
		}
		if len(g) > 0 && g[len(g)-1] == s {
			continue
		}
		if len(g) == maxLen {
			break
		}
		g = append(g, s)
	}
	return g
}
