// Package feed supplies raw stick samples from the external device-polling
// collaborator: a websocket bridge for live devices and a JSONL replay file
// for offline runs.
package feed

// Frame is one tick's raw sample: both sticks' normalized coordinates and the
// shoulder-modifier bitmask.
type Frame struct {
	LX   float64 `json:"lx"`
	LY   float64 `json:"ly"`
	RX   float64 `json:"rx"`
	RY   float64 `json:"ry"`
	Mods uint8   `json:"mods"`
}

// Source yields one frame per tick. Next returns io.EOF when the feed is
// exhausted or closed.
type Source interface {
	Next() (Frame, error)
	Close() error
}
