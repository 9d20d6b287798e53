package layout

import (
	"fmt"
	"sort"

	"github.com/verte-zerg/padtype/internal/gesture"
	"github.com/verte-zerg/padtype/internal/model"
)

// LayerSpec describes one modifier layer to build: the keys to place (with
// their observed frequencies) and the co-occurrence counts among them.
type LayerSpec struct {
	Mods  uint8
	Keys  []model.KeyCount
	Pairs []model.PairCount
}

// BuildOptions fixes the gesture space the builder assigns into.
type BuildOptions struct {
	Sectors int
	MaxLen  int
}

// Build produces the action mapping table. For each layer, single-stick
// gestures are filled tier by tier in ascending difficulty: tier d offers the
// length-d gestures on each stick, so 2·G(d) keys are withdrawn from the
// frequency-sorted list, split across the sticks by co-occurrence, and
// assigned most-frequent key to first-enumerated gesture. Keys left over
// after the single-stick tiers go to dual-stick pairs in ascending
// difficulty, where no left/right conflict exists.
func Build(opts BuildOptions, layers []LayerSpec) (*Table, error) {
	if opts.Sectors <= 0 || opts.MaxLen <= 0 {
		return nil, fmt.Errorf("invalid build options: sectors=%d max-length=%d", opts.Sectors, opts.MaxLen)
	}
	table := New(opts.Sectors, opts.MaxLen)
	for _, layer := range layers {
		if err := buildLayer(table, opts, layer); err != nil {
			return nil, fmt.Errorf("layer %d: %w", layer.Mods, err)
		}
	}
	return table, nil
}

func buildLayer(table *Table, opts BuildOptions, layer LayerSpec) error {
	keys := make([]model.KeyCount, len(layer.Keys))
	copy(keys, layer.Keys)
	sort.SliceStable(keys, func(i, j int) bool {
		if keys[i].Count != keys[j].Count {
			return keys[i].Count > keys[j].Count
		}
		return keys[i].Key < keys[j].Key
	})
	freq := make(map[string]float64, len(keys))
	for _, k := range keys {
		if _, dup := freq[k.Key]; dup {
			return fmt.Errorf("duplicate key %q in frequency table", k.Key)
		}
		freq[k.Key] = k.Count
	}

	remaining := keys
	for d := 1; d <= opts.MaxLen && len(remaining) > 0; d++ {
		singles := gesture.Singles(opts.Sectors, d)
		take := 2 * len(singles)
		if take > len(remaining) {
			take = len(remaining)
		}
		tier := remaining[:take]
		remaining = remaining[take:]

		names := make([]string, len(tier))
		for i, k := range tier {
			names[i] = k.Key
		}
		part, _ := Split(names, layer.Pairs, freq)
		if err := assignTier(table, layer.Mods, singles, part); err != nil {
			return err
		}
	}

	if len(remaining) > 0 {
		pairs := gesture.Pairs(opts.Sectors, opts.MaxLen)
		if len(remaining) > len(pairs) {
			return fmt.Errorf("%d keys left but only %d dual-stick gestures", len(remaining), len(pairs))
		}
		for i, k := range remaining {
			if err := table.set(layer.Mods, pairs[i], k.Key); err != nil {
				return err
			}
		}
	}
	return nil
}

// assignTier places one tier's partitioned keys onto that tier's single-stick
// gestures. A side that received more keys than it has gesture slots spills
// its overflow onto the other side's free slots; the crossing loss is
// accepted, same as a removed co-occurrence edge.
func assignTier(table *Table, mods uint8, singles []gesture.Gesture, part Partition) error {
	slots := len(singles)
	left, right := part.Left, part.Right
	var overflow []string
	if len(left) > slots {
		overflow = append(overflow, left[slots:]...)
		left = left[:slots]
	}
	if len(right) > slots {
		overflow = append(overflow, right[slots:]...)
		right = right[:slots]
	}

	for i, key := range left {
		if err := table.set(mods, gesture.Input{Left: singles[i]}, key); err != nil {
			return err
		}
	}
	for i, key := range right {
		if err := table.set(mods, gesture.Input{Right: singles[i]}, key); err != nil {
			return err
		}
	}
	for _, key := range overflow {
		switch {
		case len(left) < slots:
			if err := table.set(mods, gesture.Input{Left: singles[len(left)]}, key); err != nil {
				return err
			}
			left = append(left, key)
		case len(right) < slots:
			if err := table.set(mods, gesture.Input{Right: singles[len(right)]}, key); err != nil {
				return err
			}
			right = append(right, key)
		default:
			return fmt.Errorf("tier overflow: no free gesture for key %q", key)
		}
	}
	return nil
}
