package store

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/verte-zerg/padtype/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "padtype.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() {
		if err := st.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	})
	return st
}

func TestKeyCountsAccumulate(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	if err := st.AddKeyCounts(ctx, []model.KeyCount{{Key: "e", Count: 10}, {Key: "t", Count: 5}}); err != nil {
		t.Fatalf("AddKeyCounts: %v", err)
	}
	if err := st.AddKeyCounts(ctx, []model.KeyCount{{Key: "e", Count: 3}}); err != nil {
		t.Fatalf("AddKeyCounts: %v", err)
	}
	counts, err := st.KeyCounts(ctx)
	if err != nil {
		t.Fatalf("KeyCounts: %v", err)
	}
	if len(counts) != 2 {
		t.Fatalf("expected 2 keys, got %d", len(counts))
	}
	if counts[0].Key != "e" || counts[0].Count != 13 {
		t.Fatalf("expected e=13 first, got %+v", counts[0])
	}
}

func TestPairCountsCanonicalOrder(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	pairs := []model.PairCount{
		{A: "r", B: "e", Count: 4}, // stored as e,r
		{A: "e", B: "r", Count: 6},
		{A: "x", B: "x", Count: 9}, // self-pair skipped
	}
	if err := st.AddPairCounts(ctx, pairs); err != nil {
		t.Fatalf("AddPairCounts: %v", err)
	}
	got, err := st.PairCounts(ctx)
	if err != nil {
		t.Fatalf("PairCounts: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 pair, got %v", got)
	}
	if got[0].A != "e" || got[0].B != "r" || got[0].Count != 10 {
		t.Fatalf("unexpected pair row: %+v", got[0])
	}
}

func TestParseKeyCounts(t *testing.T) {
	counts, err := ParseKeyCounts(strings.NewReader("e,100\nt,85\n"))
	if err != nil {
		t.Fatalf("ParseKeyCounts: %v", err)
	}
	if len(counts) != 2 || counts[0].Key != "e" || counts[0].Count != 100 {
		t.Fatalf("unexpected counts: %v", counts)
	}
	if _, err := ParseKeyCounts(strings.NewReader("e,notanumber\n")); err == nil {
		t.Fatal("expected error for invalid count")
	}
	if _, err := ParseKeyCounts(strings.NewReader("e,-1\n")); err == nil {
		t.Fatal("expected error for negative count")
	}
}

func TestParsePairCounts(t *testing.T) {
	pairs, err := ParsePairCounts(strings.NewReader("e,r,50\na,i,5\n"))
	if err != nil {
		t.Fatalf("ParsePairCounts: %v", err)
	}
	if len(pairs) != 2 || pairs[0].A != "e" || pairs[0].B != "r" || pairs[0].Count != 50 {
		t.Fatalf("unexpected pairs: %v", pairs)
	}
	if _, err := ParsePairCounts(strings.NewReader("e,r\n")); err == nil {
		t.Fatal("expected error for missing field")
	}
}
