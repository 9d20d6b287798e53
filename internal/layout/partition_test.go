package layout

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/verte-zerg/padtype/internal/model"
)

var exampleFreq = map[string]float64{
	"e": 100, "o": 90, "t": 85, "a": 80, "i": 75, "s": 70, "j": 60, "r": 55,
}

var examplePairs = []model.PairCount{
	{A: "e", B: "r", Count: 50}, // strongest co-occurrence
	{A: "e", B: "o", Count: 10},
	{A: "o", B: "t", Count: 8},
	{A: "t", B: "e", Count: 1}, // closes an odd cycle; lightest, removed
	{A: "a", B: "i", Count: 5},
	{A: "i", B: "s", Count: 4},
}

func exampleKeys() []string {
	return []string{"e", "o", "t", "a", "i", "s", "j", "r"}
}

func sideOf(p Partition, key string) int {
	for _, k := range p.Left {
		if k == key {
			return 0
		}
	}
	for _, k := range p.Right {
		if k == key {
			return 1
		}
	}
	return -1
}

func TestSplitCoversKeysDisjointly(t *testing.T) {
	part, _ := Split(exampleKeys(), examplePairs, exampleFreq)
	if len(part.Left)+len(part.Right) != len(exampleKeys()) {
		t.Fatalf("partition does not cover key set: %v | %v", part.Left, part.Right)
	}
	seen := map[string]bool{}
	for _, k := range append(append([]string{}, part.Left...), part.Right...) {
		if seen[k] {
			t.Fatalf("key %q appears twice", k)
		}
		seen[k] = true
	}
	for _, k := range exampleKeys() {
		if !seen[k] {
			t.Fatalf("key %q missing from partition", k)
		}
	}
}

func TestSplitNoCrossingEdgesSurvive(t *testing.T) {
	part, removed := Split(exampleKeys(), examplePairs, exampleFreq)
	removedSet := map[string]bool{}
	for _, p := range removed {
		removedSet[p.A+"/"+p.B] = true
		removedSet[p.B+"/"+p.A] = true
	}
	for _, p := range examplePairs {
		if removedSet[p.A+"/"+p.B] {
			continue
		}
		if sideOf(part, p.A) == sideOf(part, p.B) {
			t.Fatalf("surviving edge %s-%s crosses within one side: %v | %v",
				p.A, p.B, part.Left, part.Right)
		}
	}
}

func TestSplitSeparatesStrongestPair(t *testing.T) {
	part, _ := Split(exampleKeys(), examplePairs, exampleFreq)
	if sideOf(part, "e") == sideOf(part, "r") {
		t.Fatalf("e and r landed on the same stick: %v | %v", part.Left, part.Right)
	}
	if sideOf(part, "j") == -1 {
		t.Fatal("isolated key j was not assigned")
	}
}

func TestSplitRemovesOddCycleLightestFirst(t *testing.T) {
	_, removed := Split(exampleKeys(), examplePairs, exampleFreq)
	if len(removed) != 1 {
		t.Fatalf("expected exactly 1 removed edge, got %v", removed)
	}
	if removed[0].Count != 1 {
		t.Fatalf("expected lightest edge removed, got %v", removed[0])
	}
}

func TestSplitZeroWeightEdgesRemovedFirst(t *testing.T) {
	keys := []string{"a", "b", "c"}
	pairs := []model.PairCount{
		{A: "a", B: "b", Count: 0},
		{A: "b", B: "c", Count: 3},
		{A: "a", B: "c", Count: 2},
	}
	_, removed := Split(keys, pairs, map[string]float64{"a": 1, "b": 1, "c": 1})
	if len(removed) != 1 || removed[0].Count != 0 {
		t.Fatalf("expected zero-weight edge removed, got %v", removed)
	}
}

func TestSplitDeterministic(t *testing.T) {
	first, firstRemoved := Split(exampleKeys(), examplePairs, exampleFreq)
	for i := 0; i < 10; i++ {
		again, againRemoved := Split(exampleKeys(), examplePairs, exampleFreq)
		if diff := cmp.Diff(first, again); diff != "" {
			t.Fatalf("partition not deterministic (-first +again):\n%s", diff)
		}
		if diff := cmp.Diff(firstRemoved, againRemoved); diff != "" {
			t.Fatalf("removed edges not deterministic (-first +again):\n%s", diff)
		}
	}
}

func TestSplitBalancesComponentOrientation(t *testing.T) {
	// Two disjoint edges: each component has two keys, one per side.
	keys := []string{"a", "b", "c", "d"}
	pairs := []model.PairCount{
		{A: "a", B: "b", Count: 5},
		{A: "c", B: "d", Count: 4},
	}
	part, removed := Split(keys, pairs, map[string]float64{"a": 4, "b": 3, "c": 2, "d": 1})
	if len(removed) != 0 {
		t.Fatalf("bipartite input needed no removal, got %v", removed)
	}
	if len(part.Left) != 2 || len(part.Right) != 2 {
		t.Fatalf("expected 2+2 balance, got %v | %v", part.Left, part.Right)
	}
	if sideOf(part, "a") == sideOf(part, "b") || sideOf(part, "c") == sideOf(part, "d") {
		t.Fatalf("edge endpoints share a side: %v | %v", part.Left, part.Right)
	}
}

func TestSplitEmptyInput(t *testing.T) {
	part, removed := Split(nil, nil, nil)
	if len(part.Left) != 0 || len(part.Right) != 0 || len(removed) != 0 {
		t.Fatalf("expected empty result, got %v %v", part, removed)
	}
}
