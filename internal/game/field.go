package game

import (
	"fmt"
	"math/rand"
)

const (
	// dangerMargin is how close (in world units) the lowest bubble may get
	// to the anchor before the field is lost.
	dangerMargin = 150.0

	// anchorMargin is the gap between the bottom edge and the launcher
	// anchor.
	anchorMargin = 120.0
)

// ColorSet is a closed set over the bubble palette.
type ColorSet [bubbleColorCount]bool

// Has reports whether c is in the set.
func (s ColorSet) Has(c BubbleColor) bool {
	if c >= bubbleColorCount {
		return false
	}
	return s[c]
}

// Count returns the number of colours in the set.
func (s ColorSet) Count() int {
	n := 0
	for _, present := range s {
		if present {
			n++
		}
	}
	return n
}

// Colors returns the set members in palette order.
func (s ColorSet) Colors() []BubbleColor {
	var out []BubbleColor
	for c := BubbleColor(0); c < bubbleColorCount; c++ {
		if s[c] {
			out = append(out, c)
		}
	}
	return out
}

// BubbleField owns every grid-resident bubble. All mutation happens inside a
// tick; there is no concurrent access.
type BubbleField struct {
	width  float64
	height float64

	anchorX float64
	anchorY float64

	bubbles []*Bubble        // arena; deactivated entries linger until Compact
	byCell  map[Cell]*Bubble // active bubbles only

	nextID     int
	placedEver int
	gameOver   bool
}

// NewBubbleField creates an empty field of the given world size. The anchor
// sits centred near the bottom edge.
func NewBubbleField(width, height float64) *BubbleField {
	return &BubbleField{
		width:   width,
		height:  height,
		anchorX: width / 2,
		anchorY: height - anchorMargin,
		byCell:  make(map[Cell]*Bubble),
	}
}

// Width returns the field width in world units.
func (f *BubbleField) Width() float64 { return f.width }

// Height returns the field height in world units.
func (f *BubbleField) Height() float64 { return f.height }

// Anchor returns the launcher anchor position.
func (f *BubbleField) Anchor() (x, y float64) { return f.anchorX, f.anchorY }

// SetWidth changes the field width and recomputes every cached pixel
// position, preserving the rule that a bubble's position is always derived
// from its cell.
func (f *BubbleField) SetWidth(width float64) {
	f.width = width
	f.anchorX = width / 2
	for _, b := range f.bubbles {
		b.X, b.Y = CellToPixel(b.Cell.Row, b.Cell.Col, f.width)
	}
}

// Populate fills rows 0..rows-1. Each cell is independently present with
// probability 1-gapProbability; colours are drawn uniformly. gapProbability
// is a scenario parameter, not a constant of the field.
func (f *BubbleField) Populate(rows int, gapProbability float64, rng *rand.Rand) {
	for row := 0; row < rows; row++ {
		cols := ColumnsInRow(row, f.width)
		for col := 0; col < cols; col++ {
			if rng.Float64() < gapProbability {
				continue
			}
			f.insert(randomColor(rng), Cell{Row: row, Col: col})
		}
	}
}

// insert creates an active bubble without occupancy checks. Callers ensure
// the cell is free.
func (f *BubbleField) insert(c BubbleColor, cell Cell) *Bubble {
	x, y := CellToPixel(cell.Row, cell.Col, f.width)
	b := &Bubble{
		ID:     f.nextID,
		Cell:   cell,
		X:      x,
		Y:      y,
		Color:  c,
		Active: true,
	}
	f.nextID++
	f.bubbles = append(f.bubbles, b)
	f.byCell[cell] = b
	f.placedEver++
	return b
}

// ActiveAt returns the active bubble occupying cell, or nil.
func (f *BubbleField) ActiveAt(cell Cell) *Bubble {
	return f.byCell[cell]
}

// Place inserts a newly landed bubble. Placing into an occupied cell is an
// invariant violation: the call is rejected and the field is left untouched,
// since overwriting would corrupt cell uniqueness.
func (f *BubbleField) Place(c BubbleColor, cell Cell) (*Bubble, error) {
	if cell.Row < 0 || cell.Col < 0 {
		return nil, fmt.Errorf("place %s: cell (%d,%d) out of bounds", c, cell.Row, cell.Col)
	}
	if occ := f.byCell[cell]; occ != nil {
		return nil, fmt.Errorf("place %s: cell (%d,%d) already holds %s", c, cell.Row, cell.Col, occ.Color)
	}
	return f.insert(c, cell), nil
}

// PopCluster deactivates every bubble in cells and returns how many were
// popped. Storage is not compacted until the end of the tick.
func (f *BubbleField) PopCluster(cells []Cell) int {
	popped := 0
	for _, cell := range cells {
		b := f.byCell[cell]
		if b == nil {
			continue
		}
		b.Active = false
		delete(f.byCell, cell)
		popped++
	}
	return popped
}

// Compact reclaims deactivated arena entries. Safe only between ticks.
func (f *BubbleField) Compact() {
	kept := f.bubbles[:0]
	for _, b := range f.bubbles {
		if b.Active {
			kept = append(kept, b)
		}
	}
	for i := len(kept); i < len(f.bubbles); i++ {
		f.bubbles[i] = nil
	}
	f.bubbles = kept
}

// ActiveBubbles returns all active bubbles. The slice is rebuilt per call;
// callers must not retain it across ticks.
func (f *BubbleField) ActiveBubbles() []*Bubble {
	out := make([]*Bubble, 0, len(f.byCell))
	for _, b := range f.bubbles {
		if b.Active {
			out = append(out, b)
		}
	}
	return out
}

// ActiveCount returns the number of active bubbles.
func (f *BubbleField) ActiveCount() int { return len(f.byCell) }

// AvailableColors returns the set of colours present among active bubbles.
// Callers use it to pick legal shot colours and to detect level clear.
func (f *BubbleField) AvailableColors() ColorSet {
	var set ColorSet
	for _, b := range f.byCell {
		set[b.Color] = true
	}
	return set
}

// Cleared reports level clear: every bubble ever placed has been popped.
func (f *BubbleField) Cleared() bool {
	return f.placedEver > 0 && len(f.byCell) == 0
}

// MaxOccupiedRow returns the highest row index holding an active bubble,
// or -1 for an empty field.
func (f *BubbleField) MaxOccupiedRow() int {
	maxRow := -1
	for cell := range f.byCell {
		if cell.Row > maxRow {
			maxRow = cell.Row
		}
	}
	return maxRow
}

// AdvanceCeiling shifts every active bubble down one row and prepends a
// fully populated row 0 (even-row width). This is the sole difficulty
// escalation; cadence is owned by the caller. Returns true if the shift
// pushed the field into game over.
func (f *BubbleField) AdvanceCeiling(rng *rand.Rand) bool {
	for cell := range f.byCell {
		delete(f.byCell, cell)
	}
	for _, b := range f.bubbles {
		if !b.Active {
			continue
		}
		b.Cell.Row++
		b.X, b.Y = CellToPixel(b.Cell.Row, b.Cell.Col, f.width)
		f.byCell[b.Cell] = b
	}
	cols := ColumnsFor(f.width)
	for col := 0; col < cols; col++ {
		f.insert(randomColor(rng), Cell{Row: 0, Col: col})
	}
	if f.checkDanger() {
		f.gameOver = true
	}
	return f.gameOver
}

// checkDanger reports whether any active bubble has crossed the danger line
// above the anchor.
func (f *BubbleField) checkDanger() bool {
	limit := f.anchorY - dangerMargin
	for _, b := range f.byCell {
		if b.Y > limit {
			return true
		}
	}
	return false
}

// NoteDanger re-evaluates the danger line and latches game over if any
// active bubble has crossed it. Called after placements as well as ceiling
// advances so the terminal invariant never lags an insertion.
func (f *BubbleField) NoteDanger() bool {
	if f.checkDanger() {
		f.gameOver = true
	}
	return f.gameOver
}

// GameOver reports whether the field has been lost.
func (f *BubbleField) GameOver() bool { return f.gameOver }
