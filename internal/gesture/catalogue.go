package gesture

import "sort"

// Singles enumerates every canonical one-stick gesture of exactly the given
// length, in lexicographic sector order. Canonical means no two consecutive
// equal sectors, so each tier holds sectors·(sectors-1)^(length-1) gestures.
func Singles(sectors, length int) []Gesture {
	if sectors <= 0 || length <= 0 {
		return nil
	}
	var out []Gesture
	cur := make(Gesture, 0, length)
	var walk func()
	walk = func() {
		if len(cur) == length {
			g := make(Gesture, length)
			copy(g, cur)
			out = append(out, g)
			return
		}
		for s := Sector(0); int(s) < sectors; s++ {
			if len(cur) > 0 && cur[len(cur)-1] == s {
				continue
			}
			cur = append(cur, s)
			walk()
			cur = cur[:len(cur)-1]
		}
	}
	walk()
	return out
}

// Pairs enumerates every dual-stick input (both gestures non-empty) up to the
// length cap, in ascending Difficulty, then lexicographic on (left, right).
func Pairs(sectors, maxLen int) []Input {
	var singles []Gesture
	for d := 1; d <= maxLen; d++ {
		singles = append(singles, Singles(sectors, d)...)
	}
	var out []Input
	for _, l := range singles {
		for _, r := range singles {
			out = append(out, Input{Left: l, Right: r})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Difficulty() != out[j].Difficulty() {
			return out[i].Difficulty() < out[j].Difficulty()
		}
		if li, lj := out[i].Left.Key(), out[j].Left.Key(); li != lj {
			return li < lj
		}
		return out[i].Right.Key() < out[j].Right.Key()
	})
	return out
}
