package game

import "math"

const (
	// bubbleRadius is the reference bubble radius in world units. All
	// collision and spacing constants are expressed against it.
	bubbleRadius = 24.0

	// bubbleDiameter is the horizontal pitch between columns.
	bubbleDiameter = bubbleRadius * 2

	// collisionRadius is the centre distance below which a flying bubble
	// is considered to have struck a resident one.
	collisionRadius = bubbleRadius * 1.8
)

// rowPitch is the vertical spacing between rows. sqrt(3)*radius is the
// close-packing pitch for equal circles: it keeps all six potential
// neighbours of a cell at exactly one diameter.
var rowPitch = bubbleRadius * math.Sqrt(3)

// Cell is an offset-hex grid coordinate. Row parity matters: odd rows hold
// one column fewer and are inset by one radius.
type Cell struct {
	Row int
	Col int
}

// ColumnsFor returns the column count of an even row for the given field
// width in world units.
func ColumnsFor(fieldWidth float64) int {
	return int(fieldWidth / bubbleDiameter)
}

// ColumnsInRow returns the column count for a specific row: even rows get
// the full width, odd rows one fewer.
func ColumnsInRow(row int, fieldWidth float64) int {
	n := ColumnsFor(fieldWidth)
	if row%2 != 0 {
		return n - 1
	}
	return n
}

// gridLeft returns the x of the left edge of the even-row packing, centring
// the grid inside the field.
func gridLeft(fieldWidth float64) float64 {
	cols := float64(ColumnsFor(fieldWidth))
	return (fieldWidth - cols*bubbleDiameter) / 2
}

// CellToPixel converts a grid cell to the world-space centre of its bubble.
// Pixel positions are always derived from this function; the cached copy on
// a Bubble exists only for render convenience.
func CellToPixel(row, col int, fieldWidth float64) (x, y float64) {
	x = gridLeft(fieldWidth) + bubbleRadius + float64(col)*bubbleDiameter
	if row%2 != 0 {
		x += bubbleRadius // odd rows inset by half a diameter
	}
	y = bubbleRadius + float64(row)*rowPitch
	return x, y
}

// NearestCell is the closed-form reverse of CellToPixel: it returns the
// in-bounds cell whose centre is nearest the given point. Rows below 0 clamp
// to 0; columns clamp to the row's width.
func NearestCell(x, y, fieldWidth float64) Cell {
	row := int(math.Round((y - bubbleRadius) / rowPitch))
	if row < 0 {
		row = 0
	}
	left := gridLeft(fieldWidth) + bubbleRadius
	if row%2 != 0 {
		left += bubbleRadius
	}
	col := int(math.Round((x - left) / bubbleDiameter))
	if col < 0 {
		col = 0
	}
	if max := ColumnsInRow(row, fieldWidth) - 1; col > max {
		col = max
	}
	return Cell{Row: row, Col: col}
}

// IsNeighbor reports whether b is one of a's (up to) six hex neighbours.
// The rule is asymmetric in the formula because odd rows are inset right:
// from an odd row the diagonal neighbours sit at the same column or one to
// the right; from an even row at the same column or one to the left. Both
// evaluation directions agree for every valid pair, but only when each side
// is judged with its own row's parity.
func IsNeighbor(a, b Cell) bool {
	dr := b.Row - a.Row
	if dr < -1 || dr > 1 {
		return false
	}
	dc := b.Col - a.Col
	if dr == 0 {
		return dc == 1 || dc == -1
	}
	if a.Row%2 != 0 {
		return dc == 0 || dc == 1
	}
	return dc == 0 || dc == -1
}

// NeighborCells returns a's six potential neighbours. Callers filter for
// occupancy and bounds.
func NeighborCells(a Cell) [6]Cell {
	side := -1
	if a.Row%2 != 0 {
		side = 1
	}
	return [6]Cell{
		{a.Row, a.Col - 1},
		{a.Row, a.Col + 1},
		{a.Row - 1, a.Col},
		{a.Row - 1, a.Col + side},
		{a.Row + 1, a.Col},
		{a.Row + 1, a.Col + side},
	}
}
