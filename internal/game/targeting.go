package game

import (
	"math"
	"sort"
)

// pathSampleStep is the spacing of samples along a candidate shot line.
const pathSampleStep = bubbleRadius / 2

// pathEndpointSkip excludes this many samples nearest each endpoint, so the
// anchor itself and the target bubble never count as obstructions.
const pathEndpointSkip = 2

// LateralZone is a coarse horizontal position label for a candidate,
// computed by thirds of field width. Downstream narrative only; the core
// never branches on it.
type LateralZone uint8

const (
	ZoneLeft LateralZone = iota
	ZoneCenter
	ZoneRight
)

func (z LateralZone) String() string {
	switch z {
	case ZoneLeft:
		return "left"
	case ZoneCenter:
		return "center"
	case ZoneRight:
		return "right"
	default:
		return "unknown"
	}
}

// CandidateTarget is one reachable cluster representative. Transient:
// recomputed on every scan, never persisted.
type CandidateTarget struct {
	Cell        Cell
	Color       BubbleColor
	ClusterSize int
	PointsEach  int
	Zone        LateralZone
}

// TargetingAnalyzer enumerates which colour clusters are currently hittable
// by an unobstructed straight shot from the anchor. Its output is the full
// contract handed to an external advisor; it knows nothing about how the
// advisor uses it.
type TargetingAnalyzer struct {
	field *BubbleField
}

// NewTargetingAnalyzer creates an analyzer over field.
func NewTargetingAnalyzer(field *BubbleField) *TargetingAnalyzer {
	return &TargetingAnalyzer{field: field}
}

// Scan partitions every colour's active bubbles into connected components
// and returns one candidate per component that has a clear straight line
// from the anchor. Components with no reachable member are omitted.
func (a *TargetingAnalyzer) Scan() []CandidateTarget {
	var out []CandidateTarget
	for _, c := range a.field.AvailableColors().Colors() {
		for _, comp := range a.colorComponents(c) {
			if cand, ok := a.pickRepresentative(comp, c); ok {
				out = append(out, cand)
			}
		}
	}
	return out
}

// colorComponents partitions all active bubbles of colour c into connected
// components. Unlike MatchEngine.Resolve this is a full partition, not a
// single seeded query; the adjacency rule is the same.
func (a *TargetingAnalyzer) colorComponents(c BubbleColor) [][]*Bubble {
	visited := make(map[Cell]bool)
	var comps [][]*Bubble
	bubbles := a.field.ActiveBubbles()
	// Stable seed order keeps scan output deterministic for a given field.
	sort.Slice(bubbles, func(i, j int) bool {
		if bubbles[i].Cell.Row != bubbles[j].Cell.Row {
			return bubbles[i].Cell.Row < bubbles[j].Cell.Row
		}
		return bubbles[i].Cell.Col < bubbles[j].Cell.Col
	})
	for _, b := range bubbles {
		if b.Color != c || visited[b.Cell] {
			continue
		}
		var comp []*Bubble
		stack := []*Bubble{b}
		visited[b.Cell] = true
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			comp = append(comp, cur)
			for _, n := range NeighborCells(cur.Cell) {
				nb := a.field.ActiveAt(n)
				if nb == nil || nb.Color != c || visited[n] {
					continue
				}
				visited[n] = true
				stack = append(stack, nb)
			}
		}
		comps = append(comps, comp)
	}
	return comps
}

// pickRepresentative orders a component's members low-to-anchor first
// (descending y) and returns the first with a clear path. Reports false when
// every member is blocked.
func (a *TargetingAnalyzer) pickRepresentative(comp []*Bubble, c BubbleColor) (CandidateTarget, bool) {
	sorted := make([]*Bubble, len(comp))
	copy(sorted, comp)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Y > sorted[j].Y })
	ax, ay := a.field.Anchor()
	for _, b := range sorted {
		if !a.isPathClear(ax, ay, b) {
			continue
		}
		return CandidateTarget{
			Cell:        b.Cell,
			Color:       c,
			ClusterSize: len(comp),
			PointsEach:  c.BasePoints(),
			Zone:        zoneFor(b.X, a.field.Width()),
		}, true
	}
	return CandidateTarget{}, false
}

// isPathClear samples the straight line from the anchor to the target and
// reports whether any *other* active bubble intrudes within collisionRadius
// of a sample. Samples nearest the endpoints are excluded so neither the
// launch position nor the target itself blocks the shot.
func (a *TargetingAnalyzer) isPathClear(ax, ay float64, target *Bubble) bool {
	dx := target.X - ax
	dy := target.Y - ay
	dist := math.Hypot(dx, dy)
	samples := int(math.Ceil(dist / pathSampleStep))
	if samples < 1 {
		return true
	}
	bubbles := a.field.ActiveBubbles()
	for i := pathEndpointSkip; i <= samples-pathEndpointSkip; i++ {
		t := float64(i) / float64(samples)
		px := ax + dx*t
		py := ay + dy*t
		for _, b := range bubbles {
			if b == target {
				continue
			}
			if math.Hypot(b.X-px, b.Y-py) < collisionRadius {
				return false
			}
		}
	}
	return true
}

// zoneFor buckets an x position into thirds of the field width.
func zoneFor(x, fieldWidth float64) LateralZone {
	switch {
	case x < fieldWidth/3:
		return ZoneLeft
	case x < 2*fieldWidth/3:
		return ZoneCenter
	default:
		return ZoneRight
	}
}
