package render

import (
	"strings"
	"testing"

	"github.com/verte-zerg/padtype/internal/layout"
	"github.com/verte-zerg/padtype/internal/model"
)

func TestLayoutRendersEntries(t *testing.T) {
	table, err := layout.Build(layout.BuildOptions{Sectors: 4, MaxLen: 2}, []layout.LayerSpec{{
		Mods: 0,
		Keys: []model.KeyCount{{Key: "e", Count: 100}, {Key: "t", Count: 85}},
	}})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	var b strings.Builder
	if err := Layout(&b, table); err != nil {
		t.Fatalf("Layout: %v", err)
	}
	out := b.String()
	if !strings.Contains(out, "Base layer") {
		t.Fatalf("missing layer header:\n%s", out)
	}
	if !strings.Contains(out, "→") || !strings.Contains(out, "·") {
		t.Fatalf("missing gesture glyphs:\n%s", out)
	}
}

func TestLayoutEmptyTable(t *testing.T) {
	var b strings.Builder
	if err := Layout(&b, layout.New(4, 2)); err != nil {
		t.Fatalf("Layout: %v", err)
	}
	if !strings.Contains(b.String(), "Empty mapping table.") {
		t.Fatalf("unexpected output: %q", b.String())
	}
}

func TestFrequencies(t *testing.T) {
	var b strings.Builder
	err := Frequencies(&b, []model.KeyCount{{Key: "e", Count: 100}, {Key: "t", Count: 85}})
	if err != nil {
		t.Fatalf("Frequencies: %v", err)
	}
	if !strings.Contains(b.String(), "100") {
		t.Fatalf("missing count column:\n%s", b.String())
	}
}

func TestFormatTableAlignment(t *testing.T) {
	lines := formatTable(
		[]string{"Key", "Count"},
		[][]string{{"e", "100"}, {"space", "7"}},
		map[int]bool{1: true},
	)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if !strings.HasSuffix(lines[1], "100") {
		t.Fatalf("count not right-aligned: %q", lines[1])
	}
}
