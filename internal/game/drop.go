package game

// The source game never sweeps away bubbles left disconnected from the
// ceiling after a pop; only same-colour clusters are removed. The sweep is
// standard for the genre, so it exists here as a separate pass that sessions
// can enable, default off.

// FindFloating returns the cells of every active bubble with no neighbour
// path to row 0. BFS from all row-0 bubbles over the full adjacency
// relation, colour ignored.
func FindFloating(f *BubbleField) []Cell {
	supported := make(map[Cell]bool)
	var queue []Cell
	for _, b := range f.ActiveBubbles() {
		if b.Cell.Row == 0 {
			supported[b.Cell] = true
			queue = append(queue, b.Cell)
		}
	}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range NeighborCells(cur) {
			if supported[n] || f.ActiveAt(n) == nil {
				continue
			}
			supported[n] = true
			queue = append(queue, n)
		}
	}
	var floating []Cell
	for _, b := range f.ActiveBubbles() {
		if !supported[b.Cell] {
			floating = append(floating, b.Cell)
		}
	}
	return floating
}

// DropFloating pops every floating bubble and returns the cells dropped and
// the score awarded: base points only, no combo multiplier.
func DropFloating(f *BubbleField) ([]Cell, int) {
	floating := FindFloating(f)
	if len(floating) == 0 {
		return nil, 0
	}
	score := 0
	for _, cell := range floating {
		if b := f.ActiveAt(cell); b != nil {
			score += b.Color.BasePoints()
		}
	}
	f.PopCluster(floating)
	return floating, score
}
