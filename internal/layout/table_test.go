package layout

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/verte-zerg/padtype/internal/gesture"
)

func TestTableSaveLoadRoundTrip(t *testing.T) {
	table, err := Build(BuildOptions{Sectors: 4, MaxLen: 2}, []LayerSpec{exampleLayer()})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	path := filepath.Join(t.TempDir(), "layout.toml")
	if err := table.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(table.Entries(), loaded.Entries()); diff != "" {
		t.Fatalf("round trip mismatch (-saved +loaded):\n%s", diff)
	}
	if loaded.Sectors() != 4 || loaded.MaxLen() != 2 {
		t.Fatalf("header mismatch: sectors=%d max-length=%d", loaded.Sectors(), loaded.MaxLen())
	}
}

func TestTableLookup(t *testing.T) {
	table := New(4, 2)
	in := gesture.Input{Left: gesture.Gesture{0, 3}}
	if err := table.set(0, in, "e"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if action, ok := table.Lookup(0, in); !ok || action != "e" {
		t.Fatalf("Lookup = %q, %v", action, ok)
	}
	if _, ok := table.Lookup(1, in); ok {
		t.Fatal("lookup hit in missing modifier layer")
	}
	if _, ok := table.Lookup(0, gesture.Input{Right: gesture.Gesture{2}}); ok {
		t.Fatal("lookup hit for unmapped gesture")
	}
}

func TestTableRejectsInvalidEntries(t *testing.T) {
	table := New(4, 2)
	cases := []struct {
		name string
		in   gesture.Input
	}{
		{"both empty", gesture.Input{}},
		{"sector out of range", gesture.Input{Left: gesture.Gesture{4}}},
		{"negative sector", gesture.Input{Right: gesture.Gesture{-2}}},
		{"over length cap", gesture.Input{Left: gesture.Gesture{0, 1, 2}}},
		{"not canonical", gesture.Input{Left: gesture.Gesture{1, 1}}},
	}
	for _, tc := range cases {
		if err := table.set(0, tc.in, "x"); err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}
	in := gesture.Input{Left: gesture.Gesture{0}}
	if err := table.set(0, in, "a"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := table.set(0, in, "b"); err == nil {
		t.Fatal("expected duplicate gesture error")
	}
}

func writeArtifact(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "layout.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write artifact: %v", err)
	}
	return path
}

func TestLoadRejectsMalformedArtifacts(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"not toml", "{<"},
		{"missing header", "[[entry]]\nmods = 0\nleft = [0]\nright = []\naction = \"e\"\n"},
		{"sector out of range", "sectors = 4\nmax-length = 2\n[[entry]]\nmods = 0\nleft = [7]\nright = []\naction = \"e\"\n"},
		{"duplicate gesture", "sectors = 4\nmax-length = 2\n" +
			"[[entry]]\nmods = 0\nleft = [0]\nright = []\naction = \"e\"\n" +
			"[[entry]]\nmods = 0\nleft = [0]\nright = []\naction = \"t\"\n"},
		{"duplicate action", "sectors = 4\nmax-length = 2\n" +
			"[[entry]]\nmods = 0\nleft = [0]\nright = []\naction = \"e\"\n" +
			"[[entry]]\nmods = 0\nleft = [1]\nright = []\naction = \"e\"\n"},
		{"empty action", "sectors = 4\nmax-length = 2\n[[entry]]\nmods = 0\nleft = [0]\nright = []\naction = \"\"\n"},
		{"mods out of range", "sectors = 4\nmax-length = 2\n[[entry]]\nmods = 300\nleft = [0]\nright = []\naction = \"e\"\n"},
	}
	for _, tc := range cases {
		path := writeArtifact(t, tc.content)
		if _, err := Load(path); err == nil {
			t.Fatalf("%s: expected load error", tc.name)
		}
	}
}
