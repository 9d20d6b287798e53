package render

import (
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/padtype/internal/layout"
	"github.com/verte-zerg/padtype/internal/model"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	layerStyle  = lipgloss.NewStyle().Faint(true)
	glyphLegend = "sectors: → right, ↑ up, ← left, ↓ down; · = stick stays centered"
)

// Layout prints every mapping entry grouped by modifier layer, easiest
// gestures first.
func Layout(w io.Writer, table *layout.Table) error {
	entries := table.Entries()
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "Empty mapping table.")
		return err
	}
	if _, err := fmt.Fprintln(w, titleStyle.Render("Gesture Layout")); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, layerStyle.Render(glyphLegend)); err != nil {
		return err
	}

	byLayer := map[uint8][]layout.Entry{}
	var mods []int
	for _, e := range entries {
		if _, seen := byLayer[e.Mods]; !seen {
			mods = append(mods, int(e.Mods))
		}
		byLayer[e.Mods] = append(byLayer[e.Mods], e)
	}
	sort.Ints(mods)

	for _, m := range mods {
		header := fmt.Sprintf("Layer %d", m)
		if m == 0 {
			header = "Base layer"
		}
		if _, err := fmt.Fprintf(w, "\n%s\n", layerStyle.Render(header)); err != nil {
			return err
		}
		headers := []string{"Left", "Right", "Difficulty", "Action"}
		rows := make([][]string, 0, len(byLayer[uint8(m)]))
		for _, e := range byLayer[uint8(m)] {
			rows = append(rows, []string{
				e.Left.Glyph(),
				e.Right.Glyph(),
				fmt.Sprintf("%d", len(e.Left)+len(e.Right)),
				e.Action,
			})
		}
		for _, line := range formatTable(headers, rows, map[int]bool{2: true}) {
			if _, err := fmt.Fprintln(w, clip(line, terminalWidth())); err != nil {
				return err
			}
		}
	}
	return nil
}

// Frequencies prints the stored key-frequency table, most frequent first.
func Frequencies(w io.Writer, counts []model.KeyCount) error {
	if len(counts) == 0 {
		_, err := fmt.Fprintln(w, "No frequency data recorded.")
		return err
	}
	if _, err := fmt.Fprintln(w, titleStyle.Render("Key Frequencies")); err != nil {
		return err
	}
	headers := []string{"Key", "Count"}
	rows := make([][]string, 0, len(counts))
	for _, kc := range counts {
		rows = append(rows, []string{kc.Key, fmt.Sprintf("%.0f", kc.Count)})
	}
	for _, line := range formatTable(headers, rows, map[int]bool{1: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func clip(line string, width int) string {
	if width <= 0 || displayWidth(line) <= width {
		return line
	}
	var b []rune
	used := 0
	for _, r := range line {
		rw := displayWidth(string(r))
		if used+rw > width {
			break
		}
		b = append(b, r)
		used += rw
	}
	return string(b)
}
