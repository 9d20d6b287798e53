// Package layout implements the offline optimizer: it partitions keys across
// the two sticks by co-occurrence, assigns them to gestures in ascending
// difficulty, and serializes the resulting action mapping table.
package layout

import (
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/verte-zerg/padtype/internal/model"
)

// Partition is a disjoint split of one difficulty tier's keys between the two
// sticks. Both sides are ordered by descending frequency, key ascending on
// ties.
type Partition struct {
	Left  []string
	Right []string
}

// Split partitions keys so that frequently co-occurring keys land on opposite
// sticks. Edges of the co-occurrence graph are removed lowest weight first
// (zero-weight edges go before everything) until the graph is bipartite; each
// connected component is resolved independently and the per-component sides
// are merged to balance key counts. Removed edges are returned as the
// accepted loss: those key pairs will share a stick.
//
// The result is deterministic for identical inputs: components are processed
// largest first (smallest contained key breaking ties), the largest keeps its
// coloring orientation, and every traversal visits keys in sorted order.
func Split(keys []string, pairs []model.PairCount, freq map[string]float64) (Partition, []model.PairCount) {
	if len(keys) == 0 {
		return Partition{}, nil
	}

	names := make([]string, len(keys))
	copy(names, keys)
	sort.Strings(names)
	idOf := make(map[string]int64, len(names))
	for i, k := range names {
		idOf[k] = int64(i)
	}
	nameOf := func(id int64) string { return names[id] }

	g := simple.NewWeightedUndirectedGraph(0, 0)
	for i := range names {
		g.AddNode(simple.Node(i))
	}
	weights := map[[2]int64]float64{}
	for _, p := range pairs {
		ua, oka := idOf[p.A]
		ub, okb := idOf[p.B]
		if !oka || !okb || ua == ub {
			continue
		}
		if ua > ub {
			ua, ub = ub, ua
		}
		weights[[2]int64{ua, ub}] += p.Count
	}
	for k, w := range weights {
		g.SetWeightedEdge(simple.WeightedEdge{F: simple.Node(k[0]), T: simple.Node(k[1]), W: w})
	}

	var removed []model.PairCount
	for {
		conflicted := false
		for _, comp := range topo.ConnectedComponents(g) {
			if _, _, ok := twoColor(g, comp, nameOf); ok {
				continue
			}
			conflicted = true
			u, v, w := lightestEdge(g, comp, nameOf)
			g.RemoveEdge(u, v)
			removed = append(removed, model.PairCount{A: nameOf(u), B: nameOf(v), Count: w})
		}
		if !conflicted {
			break
		}
	}

	comps := topo.ConnectedComponents(g)
	sort.Slice(comps, func(i, j int) bool {
		if len(comps[i]) != len(comps[j]) {
			return len(comps[i]) > len(comps[j])
		}
		return minName(comps[i], nameOf) < minName(comps[j], nameOf)
	})

	var left, right []string
	for _, comp := range comps {
		if len(comp) == 1 {
			continue // isolated keys are placed last, by frequency
		}
		a, b, _ := twoColor(g, comp, nameOf)
		// Orient to balance key counts; the first (largest) component keeps
		// its BFS orientation since both sides start empty.
		keep := abs(len(left)+len(a)-len(right)-len(b)) <= abs(len(left)+len(b)-len(right)-len(a))
		if keep {
			left = append(left, a...)
			right = append(right, b...)
		} else {
			left = append(left, b...)
			right = append(right, a...)
		}
	}

	var isolated []string
	for _, comp := range comps {
		if len(comp) == 1 {
			isolated = append(isolated, nameOf(comp[0].ID()))
		}
	}
	sortByFrequency(isolated, freq)
	for _, k := range isolated {
		if len(right) < len(left) {
			right = append(right, k)
		} else {
			left = append(left, k)
		}
	}

	sortByFrequency(left, freq)
	sortByFrequency(right, freq)
	return Partition{Left: left, Right: right}, removed
}

// twoColor attempts a 2-coloring of one connected component, visiting nodes
// in sorted key order so the orientation is reproducible.
func twoColor(g *simple.WeightedUndirectedGraph, comp []graph.Node, nameOf func(int64) string) (a, b []string, ok bool) {
	ids := make([]int64, len(comp))
	for i, n := range comp {
		ids[i] = n.ID()
	}
	sortIDs(ids, nameOf)

	color := make(map[int64]int, len(ids))
	queue := []int64{ids[0]}
	color[ids[0]] = 0
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for _, v := range neighborIDs(g, u, nameOf) {
			if c, seen := color[v]; seen {
				if c == color[u] {
					return nil, nil, false
				}
				continue
			}
			color[v] = 1 - color[u]
			queue = append(queue, v)
		}
	}
	for _, id := range ids {
		if color[id] == 0 {
			a = append(a, nameOf(id))
		} else {
			b = append(b, nameOf(id))
		}
	}
	return a, b, true
}

// lightestEdge returns the lowest-weight edge inside a component, breaking
// weight ties by the endpoints' key order.
func lightestEdge(g *simple.WeightedUndirectedGraph, comp []graph.Node, nameOf func(int64) string) (u, v int64, w float64) {
	found := false
	for _, n := range comp {
		uid := n.ID()
		for _, vid := range neighborIDs(g, uid, nameOf) {
			if nameOf(vid) < nameOf(uid) {
				continue // each undirected edge considered once
			}
			weight := g.WeightedEdge(uid, vid).Weight()
			if !found || weight < w ||
				(weight == w && (nameOf(uid) < nameOf(u) || (nameOf(uid) == nameOf(u) && nameOf(vid) < nameOf(v)))) {
				u, v, w = uid, vid, weight
				found = true
			}
		}
	}
	return u, v, w
}

func neighborIDs(g *simple.WeightedUndirectedGraph, id int64, nameOf func(int64) string) []int64 {
	var ids []int64
	it := g.From(id)
	for it.Next() {
		ids = append(ids, it.Node().ID())
	}
	sortIDs(ids, nameOf)
	return ids
}

func sortIDs(ids []int64, nameOf func(int64) string) {
	sort.Slice(ids, func(i, j int) bool { return nameOf(ids[i]) < nameOf(ids[j]) })
}

func sortByFrequency(keys []string, freq map[string]float64) {
	sort.Slice(keys, func(i, j int) bool {
		if freq[keys[i]] != freq[keys[j]] {
			return freq[keys[i]] > freq[keys[j]]
		}
		return keys[i] < keys[j]
	})
}

func minName(comp []graph.Node, nameOf func(int64) string) string {
	m := nameOf(comp[0].ID())
	for _, n := range comp[1:] {
		if name := nameOf(n.ID()); name < m {
			m = name
		}
	}
	return m
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
