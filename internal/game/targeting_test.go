package game

import "testing"

func TestScan_EmptyField(t *testing.T) {
	f := newTestField()
	if cands := NewTargetingAnalyzer(f).Scan(); len(cands) != 0 {
		t.Fatalf("empty field produced %d candidates", len(cands))
	}
}

func TestScan_SingleClusterCandidate(t *testing.T) {
	f := newTestField()
	place(t, f, ColorGreen, 0, 5)
	place(t, f, ColorGreen, 0, 6)
	place(t, f, ColorGreen, 1, 5)

	cands := NewTargetingAnalyzer(f).Scan()
	if len(cands) != 1 {
		t.Fatalf("got %d candidates, want 1", len(cands))
	}
	c := cands[0]
	if c.Color != ColorGreen || c.ClusterSize != 3 || c.PointsEach != 120 {
		t.Fatalf("candidate wrong: %+v", c)
	}
	// The representative is the member closest to the anchor (greatest y):
	// the row-1 bubble.
	if c.Cell != (Cell{Row: 1, Col: 5}) {
		t.Fatalf("representative (%d,%d), want (1,5)", c.Cell.Row, c.Cell.Col)
	}
}

func TestScan_FullPartitionPerColor(t *testing.T) {
	// Two disconnected red clusters and one blue: three candidates.
	f := newTestField()
	place(t, f, ColorRed, 0, 0)
	place(t, f, ColorRed, 0, 1)
	place(t, f, ColorRed, 0, 8)
	place(t, f, ColorRed, 0, 9)
	place(t, f, ColorBlue, 0, 4)

	cands := NewTargetingAnalyzer(f).Scan()
	if len(cands) != 3 {
		t.Fatalf("got %d candidates, want 3", len(cands))
	}
	reds := 0
	for _, c := range cands {
		if c.Color == ColorRed {
			reds++
			if c.ClusterSize != 2 {
				t.Errorf("red cluster size %d, want 2", c.ClusterSize)
			}
		}
	}
	if reds != 2 {
		t.Errorf("red components: %d, want 2", reds)
	}
}

func TestIsPathClear_BlockedByOtherBubble(t *testing.T) {
	f := newTestField()
	a := NewTargetingAnalyzer(f)
	ax, ay := f.Anchor()

	// Target straight above the anchor, blocker of another colour directly
	// on the line between them.
	target := place(t, f, ColorRed, 0, 5)
	blockCell := NearestCell(target.X, ay-300, f.Width())
	blocker, err := f.Place(ColorBlue, blockCell)
	if err != nil {
		t.Fatal(err)
	}

	if a.isPathClear(ax, ay, target) {
		t.Fatal("path through a blocker must not be clear")
	}

	f.PopCluster([]Cell{blocker.Cell})
	if !a.isPathClear(ax, ay, target) {
		t.Fatal("path must clear once the blocker is popped")
	}
}

func TestScan_OmitsUnreachableCluster(t *testing.T) {
	f := newTestField()
	// A yellow pair at the ceiling, walled off by a full lower row of
	// other colours.
	place(t, f, ColorYellow, 0, 5)
	place(t, f, ColorYellow, 0, 6)
	cols := ColumnsInRow(4, f.Width())
	for col := 0; col < cols; col++ {
		place(t, f, ColorBlue, 4, col)
	}

	for _, c := range NewTargetingAnalyzer(f).Scan() {
		if c.Color == ColorYellow {
			t.Fatal("walled-off cluster must be omitted from the scan")
		}
	}
}

func TestZoneFor_Thirds(t *testing.T) {
	w := testFieldWidth
	if z := zoneFor(10, w); z != ZoneLeft {
		t.Errorf("x=10: %s, want left", z)
	}
	if z := zoneFor(w/2, w); z != ZoneCenter {
		t.Errorf("mid: %s, want center", z)
	}
	if z := zoneFor(w-10, w); z != ZoneRight {
		t.Errorf("right edge: %s, want right", z)
	}
}

func TestScan_CandidateZoneLabels(t *testing.T) {
	f := newTestField()
	place(t, f, ColorRed, 0, 0)
	place(t, f, ColorOrange, 0, 11)

	for _, c := range NewTargetingAnalyzer(f).Scan() {
		switch c.Color {
		case ColorRed:
			if c.Zone != ZoneLeft {
				t.Errorf("left-edge candidate zone %s", c.Zone)
			}
		case ColorOrange:
			if c.Zone != ZoneRight {
				t.Errorf("right-edge candidate zone %s", c.Zone)
			}
		}
	}
}
