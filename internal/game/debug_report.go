package game

import (
	"fmt"
	"log"
	"strings"

	"github.com/atotto/clipboard"
)

// DebugReport renders a plain-text dump of the session state: field
// occupancy, launcher, score, and the latest advisor exchange. Meant for
// pasting into bug reports.
func (s *Session) DebugReport() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "=== session T=%d ===\n", s.tick)
	fmt.Fprintf(&sb, "score=%d shots=%d landed=%d clusters=%d\n",
		s.score, s.shotsFired, s.shotsLanded, s.clustersDone)
	fmt.Fprintf(&sb, "field: %d active, max row %d, game_over=%v cleared=%v\n",
		s.field.ActiveCount(), s.field.MaxOccupiedRow(), s.field.GameOver(), s.field.Cleared())

	colors := s.field.AvailableColors().Colors()
	names := make([]string, len(colors))
	for i, c := range colors {
		names[i] = c.String()
	}
	fmt.Fprintf(&sb, "colors: [%s]\n", strings.Join(names, ", "))

	px, py := s.launcher.Position()
	fmt.Fprintf(&sb, "launcher: %s %s at (%.1f,%.1f)\n",
		s.launcher.State(), s.launcher.Color(), px, py)

	if s.hint != nil {
		fmt.Fprintf(&sb, "hint: %q", s.hint.Message)
		if s.hint.Cell != nil {
			fmt.Fprintf(&sb, " -> (%d,%d)", s.hint.Cell.Row, s.hint.Cell.Col)
		}
		sb.WriteByte('\n')
	} else {
		sb.WriteString("hint: none\n")
	}

	// Row-by-row occupancy map, top down. '.' empty, letter = colour initial.
	maxRow := s.field.MaxOccupiedRow()
	for row := 0; row <= maxRow; row++ {
		cols := ColumnsInRow(row, s.field.Width())
		if row%2 != 0 {
			sb.WriteByte(' ') // visual inset for odd rows
		}
		for col := 0; col < cols; col++ {
			b := s.field.ActiveAt(Cell{Row: row, Col: col})
			if b == nil {
				sb.WriteString(". ")
				continue
			}
			sb.WriteByte(strings.ToUpper(b.Color.String())[0])
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// copyDebugReport puts the session report on the system clipboard.
func (g *Game) copyDebugReport() {
	if err := clipboard.WriteAll(g.session.DebugReport()); err != nil {
		log.Printf("clipboard copy failed: %v", err)
	}
}
