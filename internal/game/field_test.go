package game

import (
	"math/rand"
	"testing"
)

func newTestField() *BubbleField {
	return NewBubbleField(testFieldWidth, 960)
}

func TestPopulate_FullGrid(t *testing.T) {
	// 4 rows, 12 even-row columns, no gaps: two odd rows hold one column
	// fewer, so 4*12 - 2 bubbles.
	f := newTestField()
	f.Populate(4, 0, rand.New(rand.NewSource(1)))
	if got := f.ActiveCount(); got != 46 {
		t.Fatalf("gap-free 4x12 grid: got %d bubbles, want 46", got)
	}
}

func TestPopulate_GapProbabilityOne(t *testing.T) {
	f := newTestField()
	f.Populate(4, 1, rand.New(rand.NewSource(1)))
	if got := f.ActiveCount(); got != 0 {
		t.Fatalf("gap probability 1 should produce an empty grid, got %d", got)
	}
}

func TestField_CellUniqueness(t *testing.T) {
	f := newTestField()
	f.Populate(6, 0.3, rand.New(rand.NewSource(7)))
	seen := make(map[Cell]bool)
	for _, b := range f.ActiveBubbles() {
		if seen[b.Cell] {
			t.Fatalf("two active bubbles share cell (%d,%d)", b.Cell.Row, b.Cell.Col)
		}
		seen[b.Cell] = true
	}
}

func TestPlace_RejectsOccupiedCell(t *testing.T) {
	f := newTestField()
	cell := Cell{Row: 0, Col: 3}
	if _, err := f.Place(ColorRed, cell); err != nil {
		t.Fatalf("place into empty cell: %v", err)
	}
	if _, err := f.Place(ColorBlue, cell); err == nil {
		t.Fatal("placing into an occupied cell must be rejected")
	}
	// The original occupant must be untouched.
	if b := f.ActiveAt(cell); b == nil || b.Color != ColorRed {
		t.Fatal("occupant was overwritten by a rejected place")
	}
}

func TestPlace_PixelDerivedFromCell(t *testing.T) {
	f := newTestField()
	b, err := f.Place(ColorGreen, Cell{Row: 3, Col: 2})
	if err != nil {
		t.Fatal(err)
	}
	wx, wy := CellToPixel(3, 2, f.Width())
	if b.X != wx || b.Y != wy {
		t.Errorf("cached pixel (%.1f,%.1f) != derived (%.1f,%.1f)", b.X, b.Y, wx, wy)
	}
}

func TestSetWidth_RecomputesPixels(t *testing.T) {
	f := newTestField()
	b, _ := f.Place(ColorRed, Cell{Row: 0, Col: 5})
	f.SetWidth(14 * bubbleDiameter)
	wx, wy := CellToPixel(0, 5, f.Width())
	if b.X != wx || b.Y != wy {
		t.Errorf("pixel not recomputed after width change: (%.1f,%.1f) want (%.1f,%.1f)",
			b.X, b.Y, wx, wy)
	}
}

func TestPopCluster_DeactivatesWithoutCompacting(t *testing.T) {
	f := newTestField()
	cells := []Cell{{0, 0}, {0, 1}, {0, 2}}
	for _, c := range cells {
		if _, err := f.Place(ColorYellow, c); err != nil {
			t.Fatal(err)
		}
	}
	if popped := f.PopCluster(cells); popped != 3 {
		t.Fatalf("popped %d, want 3", popped)
	}
	if f.ActiveCount() != 0 {
		t.Fatal("popped bubbles still active")
	}
	// Arena entries linger until Compact so in-tick iteration stays stable.
	if len(f.bubbles) != 3 {
		t.Fatalf("arena compacted mid-tick: %d entries", len(f.bubbles))
	}
	f.Compact()
	if len(f.bubbles) != 0 {
		t.Fatalf("compact left %d entries", len(f.bubbles))
	}
}

func TestAdvanceCeiling_ShiftsAndPrepends(t *testing.T) {
	f := newTestField()
	rng := rand.New(rand.NewSource(3))
	f.Populate(2, 0, rng)

	before := make(map[int]Cell)
	for _, b := range f.ActiveBubbles() {
		before[b.ID] = b.Cell
	}

	f.AdvanceCeiling(rng)

	for _, b := range f.ActiveBubbles() {
		prev, ok := before[b.ID]
		if !ok {
			continue // new row 0 bubble
		}
		if b.Cell.Row != prev.Row+1 || b.Cell.Col != prev.Col {
			t.Errorf("bubble %d moved (%d,%d) -> (%d,%d), want row+1 only",
				b.ID, prev.Row, prev.Col, b.Cell.Row, b.Cell.Col)
		}
		wx, wy := CellToPixel(b.Cell.Row, b.Cell.Col, f.Width())
		if b.X != wx || b.Y != wy {
			t.Errorf("bubble %d pixel not recomputed after shift", b.ID)
		}
	}

	newTop := 0
	for _, b := range f.ActiveBubbles() {
		if b.Cell.Row == 0 {
			newTop++
		}
	}
	if newTop != ColumnsFor(f.Width()) {
		t.Errorf("new row 0 has %d bubbles, want the full even-row width %d",
			newTop, ColumnsFor(f.Width()))
	}
}

func TestAdvanceCeiling_GameOverAtDangerLine(t *testing.T) {
	f := newTestField()
	rng := rand.New(rand.NewSource(3))

	// One bubble two shifts above the danger line: y = 24 + row*pitch must
	// exceed anchorY - dangerMargin = 690.
	if _, err := f.Place(ColorRed, Cell{Row: 15, Col: 0}); err != nil {
		t.Fatal(err)
	}
	if f.AdvanceCeiling(rng) {
		t.Fatal("game over triggered before the danger line was crossed")
	}
	if !f.AdvanceCeiling(rng) {
		t.Fatal("game over not triggered after crossing the danger line")
	}
	if !f.GameOver() {
		t.Fatal("GameOver flag not latched")
	}
}

func TestNoteDanger_AfterDeepPlacement(t *testing.T) {
	f := newTestField()
	if _, err := f.Place(ColorRed, Cell{Row: 17, Col: 0}); err != nil {
		t.Fatal(err)
	}
	if !f.NoteDanger() {
		t.Fatal("placement below the danger line must latch game over")
	}
}

func TestAvailableColors_TracksActives(t *testing.T) {
	f := newTestField()
	f.Place(ColorRed, Cell{Row: 0, Col: 0})
	f.Place(ColorRed, Cell{Row: 0, Col: 1})
	f.Place(ColorBlue, Cell{Row: 0, Col: 2})

	set := f.AvailableColors()
	if !set.Has(ColorRed) || !set.Has(ColorBlue) || set.Count() != 2 {
		t.Fatalf("available colours wrong: %v", set.Colors())
	}

	f.PopCluster([]Cell{{0, 2}})
	if f.AvailableColors().Has(ColorBlue) {
		t.Fatal("popped colour still reported available")
	}
}

func TestCleared_RequiresAtLeastOnePlacement(t *testing.T) {
	f := newTestField()
	if f.Cleared() {
		t.Fatal("a never-populated field is not cleared")
	}
	f.Place(ColorRed, Cell{Row: 0, Col: 0})
	if f.Cleared() {
		t.Fatal("field with an active bubble is not cleared")
	}
	f.PopCluster([]Cell{{0, 0}})
	if !f.Cleared() {
		t.Fatal("field with all bubbles popped should be cleared")
	}
}
