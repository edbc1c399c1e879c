package game

// comboMultiplier is the score bonus step for clusters larger than the
// minimum. It is a step function, not a ramp: exactly 1.5 above size 3.
const (
	minClusterSize  = 3
	comboMultiplier = 1.5
)

// MatchResult describes the outcome of resolving a landed bubble.
type MatchResult struct {
	Matched bool
	Cells   []Cell // the full popped component; empty when Matched is false
	Score   int
}

// MatchEngine finds and pops same-colour clusters on a BubbleField.
type MatchEngine struct {
	field *BubbleField
}

// NewMatchEngine creates a match engine over field.
func NewMatchEngine(field *BubbleField) *MatchEngine {
	return &MatchEngine{field: field}
}

// Resolve flood-fills from the newly placed bubble across same-colour
// neighbours. If the connected component has at least minClusterSize
// members the whole component is popped and scored; otherwise nothing
// changes and every bubble, seed included, stays active.
func (m *MatchEngine) Resolve(seed *Bubble) MatchResult {
	if seed == nil || !seed.Active {
		return MatchResult{}
	}
	cluster := m.sameColorComponent(seed.Cell, seed.Color)
	if len(cluster) < minClusterSize {
		return MatchResult{}
	}
	m.field.PopCluster(cluster)
	return MatchResult{
		Matched: true,
		Cells:   cluster,
		Score:   clusterScore(seed.Color, len(cluster)),
	}
}

// sameColorComponent returns every active cell connected to start through
// same-colour neighbours, start included. Stack-based traversal; any number
// of hops.
func (m *MatchEngine) sameColorComponent(start Cell, c BubbleColor) []Cell {
	visited := map[Cell]bool{start: true}
	stack := []Cell{start}
	var out []Cell
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, cur)
		for _, n := range NeighborCells(cur) {
			if visited[n] {
				continue
			}
			b := m.field.ActiveAt(n)
			if b == nil || b.Color != c {
				continue
			}
			visited[n] = true
			stack = append(stack, n)
		}
	}
	return out
}

// clusterScore computes the award for popping size bubbles of colour c.
func clusterScore(c BubbleColor, size int) int {
	score := float64(size * c.BasePoints())
	if size > minClusterSize {
		score *= comboMultiplier
	}
	return int(score)
}
