package layout

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/padtype/internal/gesture"
)

// Table is the action mapping table: per modifier layer, a lookup from a
// completed input's gesture pair to an action symbol. It is built offline (or
// loaded from its artifact) and never mutated afterwards, so it may be shared
// by reference across any number of dispatch consumers.
type Table struct {
	sectors int
	maxLen  int
	layers  map[uint8]map[string]string
}

// Entry is one mapping row in canonical order, used for rendering and
// serialization.
type Entry struct {
	Mods   uint8
	Left   gesture.Gesture
	Right  gesture.Gesture
	Action string
}

// New returns an empty table for the given gesture space.
func New(sectors, maxLen int) *Table {
	return &Table{
		sectors: sectors,
		maxLen:  maxLen,
		layers:  map[uint8]map[string]string{},
	}
}

// Sectors reports the sector count the table was built for.
func (t *Table) Sectors() int { return t.sectors }

// MaxLen reports the gesture length cap the table was built for.
func (t *Table) MaxLen() int { return t.maxLen }

// Lookup resolves a completed input within one modifier layer.
func (t *Table) Lookup(mods uint8, in gesture.Input) (string, bool) {
	layer, ok := t.layers[mods]
	if !ok {
		return "", false
	}
	action, ok := layer[in.Key()]
	return action, ok
}

// Len counts mapping entries across all layers.
func (t *Table) Len() int {
	n := 0
	for _, layer := range t.layers {
		n += len(layer)
	}
	return n
}

// Entries lists every mapping sorted by layer, difficulty, then gesture key.
func (t *Table) Entries() []Entry {
	var out []Entry
	for mods, layer := range t.layers {
		for key, action := range layer {
			in, err := parseInputKey(key)
			if err != nil {
				continue // cannot happen: set validates keys
			}
			out = append(out, Entry{Mods: mods, Left: in.Left, Right: in.Right, Action: action})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Mods != out[j].Mods {
			return out[i].Mods < out[j].Mods
		}
		di := len(out[i].Left) + len(out[i].Right)
		dj := len(out[j].Left) + len(out[j].Right)
		if di != dj {
			return di < dj
		}
		if li, lj := out[i].Left.Key(), out[j].Left.Key(); li != lj {
			return li < lj
		}
		return out[i].Right.Key() < out[j].Right.Key()
	})
	return out
}

func (t *Table) set(mods uint8, in gesture.Input, action string) error {
	if err := t.validate(in); err != nil {
		return err
	}
	if action == "" {
		return fmt.Errorf("empty action for gesture %s", in.Key())
	}
	layer := t.layers[mods]
	if layer == nil {
		layer = map[string]string{}
		t.layers[mods] = layer
	}
	if prev, dup := layer[in.Key()]; dup {
		return fmt.Errorf("gesture %s already mapped to %q", in.Key(), prev)
	}
	layer[in.Key()] = action
	return nil
}

func (t *Table) validate(in gesture.Input) error {
	if in.Difficulty() == 0 {
		return fmt.Errorf("both gestures empty")
	}
	for _, g := range []gesture.Gesture{in.Left, in.Right} {
		if len(g) > t.maxLen {
			return fmt.Errorf("gesture %s exceeds length cap %d", g.Key(), t.maxLen)
		}
		for i, s := range g {
			if s < 0 || int(s) >= t.sectors {
				return fmt.Errorf("gesture %s: sector %d out of range", g.Key(), s)
			}
			if i > 0 && g[i-1] == s {
				return fmt.Errorf("gesture %s not canonical", g.Key())
			}
		}
	}
	return nil
}

func parseInputKey(key string) (gesture.Input, error) {
	var in gesture.Input
	for i := 0; i < len(key); i++ {
		if key[i] == '|' {
			left, err := gesture.ParseKey(key[:i])
			if err != nil {
				return in, err
			}
			right, err := gesture.ParseKey(key[i+1:])
			if err != nil {
				return in, err
			}
			return gesture.Input{Left: left, Right: right}, nil
		}
	}
	return in, fmt.Errorf("invalid input key %q", key)
}

// artifact is the persisted TOML form of a table.
type artifact struct {
	Sectors int             `toml:"sectors"`
	MaxLen  int             `toml:"max-length"`
	Entry   []artifactEntry `toml:"entry"`
}

type artifactEntry struct {
	Mods   int    `toml:"mods"`
	Left   []int  `toml:"left"`
	Right  []int  `toml:"right"`
	Action string `toml:"action"`
}

// Save writes the table artifact atomically (temp file + rename).
func (t *Table) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create table dir: %w", err)
	}
	tmpFile, err := os.CreateTemp(filepath.Dir(path), "layout-*.toml")
	if err != nil {
		return fmt.Errorf("failed to create temp table: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	art := artifact{Sectors: t.sectors, MaxLen: t.maxLen}
	for _, e := range t.Entries() {
		art.Entry = append(art.Entry, artifactEntry{
			Mods:   int(e.Mods),
			Left:   sectorInts(e.Left),
			Right:  sectorInts(e.Right),
			Action: e.Action,
		})
	}
	if err := toml.NewEncoder(tmpFile).Encode(art); err != nil {
		return fmt.Errorf("failed to encode table: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close table: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to write table: %w", err)
	}
	return nil
}

// Load reads and validates a table artifact. Any malformed entry fails the
// whole load; the runtime never starts on a partially loaded table.
func Load(path string) (*Table, error) {
	var art artifact
	if _, err := toml.DecodeFile(path, &art); err != nil {
		return nil, fmt.Errorf("failed to decode table %s: %w", path, err)
	}
	if art.Sectors <= 0 || art.MaxLen <= 0 {
		return nil, fmt.Errorf("table %s: invalid header: sectors=%d max-length=%d", path, art.Sectors, art.MaxLen)
	}
	t := New(art.Sectors, art.MaxLen)
	actions := map[uint8]map[string]string{}
	for i, e := range art.Entry {
		if e.Mods < 0 || e.Mods > 255 {
			return nil, fmt.Errorf("table %s: entry %d: mods %d out of range", path, i, e.Mods)
		}
		mods := uint8(e.Mods)
		in := gesture.Input{Left: sectorsOf(e.Left), Right: sectorsOf(e.Right)}
		if err := t.set(mods, in, e.Action); err != nil {
			return nil, fmt.Errorf("table %s: entry %d: %w", path, i, err)
		}
		if actions[mods] == nil {
			actions[mods] = map[string]string{}
		}
		if prev, dup := actions[mods][e.Action]; dup {
			return nil, fmt.Errorf("table %s: entry %d: action %q already mapped to gesture %s", path, i, e.Action, prev)
		}
		actions[mods][e.Action] = in.Key()
	}
	return t, nil
}

func sectorInts(g gesture.Gesture) []int {
	out := make([]int, len(g))
	for i, s := range g {
		out[i] = int(s)
	}
	return out
}

func sectorsOf(ints []int) gesture.Gesture {
	if len(ints) == 0 {
		return nil
	}
	g := make(gesture.Gesture, len(ints))
	for i, v := range ints {
		g[i] = gesture.Sector(v)
	}
	return g
}
