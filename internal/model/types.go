// Package model defines shared data structures.
package model

// KeyCount is one row of the externally captured key-frequency table.
type KeyCount struct {
	Key   string
	Count float64
}

// PairCount is one row of the co-occurrence dataset: how often two keys were
// typed in immediate succession. Pairs are undirected; A < B canonically.
type PairCount struct {
	A     string
	B     string
	Count float64
}

// RunOptions carries the runtime recognition settings resolved from config
// and flags.
type RunOptions struct {
	CenterThreshold  float64
	SectorCount      int
	MaxGestureLength int
	SampleRateHz     int
	FeedURL          string
	TablePath        string
}
