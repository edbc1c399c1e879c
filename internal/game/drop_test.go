package game

import "testing"

func TestFindFloating_NoneWhenAnchoredToCeiling(t *testing.T) {
	f := newTestField()
	place(t, f, ColorRed, 0, 0)
	place(t, f, ColorBlue, 1, 0)
	place(t, f, ColorGreen, 2, 0)
	if floating := FindFloating(f); len(floating) != 0 {
		t.Fatalf("chain to row 0 reported floating: %v", floating)
	}
}

func TestFindFloating_DetachedGroup(t *testing.T) {
	f := newTestField()
	place(t, f, ColorRed, 0, 0)
	// Group with no path to row 0.
	place(t, f, ColorBlue, 3, 5)
	place(t, f, ColorBlue, 3, 6)
	floating := FindFloating(f)
	if len(floating) != 2 {
		t.Fatalf("got %d floating cells, want 2: %v", len(floating), floating)
	}
}

func TestDropFloating_PopsAndScoresBasePoints(t *testing.T) {
	f := newTestField()
	place(t, f, ColorRed, 0, 0)
	place(t, f, ColorBlue, 4, 2) // 130 points
	place(t, f, ColorRed, 4, 3)  // 100 points

	cells, score := DropFloating(f)
	if len(cells) != 2 {
		t.Fatalf("dropped %d, want 2", len(cells))
	}
	// Base points only; the combo step never applies to drops.
	if score != 230 {
		t.Fatalf("drop score %d, want 230", score)
	}
	if f.ActiveAt(Cell{Row: 0, Col: 0}) == nil {
		t.Fatal("supported bubble was dropped")
	}
}

func TestDropFloating_DisabledByDefaultInSession(t *testing.T) {
	// The source game leaves disconnected bubbles in place; the sweep only
	// runs when a scenario opts in.
	ts := NewTestSim(WithSeed(5))
	if ts.Session.cfg.DropFloating {
		t.Fatal("floating sweep must default to off")
	}
}
