package orbit

import "github.com/squorange/focus-tools-sub000/internal/model"

// RadiusForActivePosition returns the radius for the subtask at zero-based
// position pos among active subtasks.
//
// Subtasks on or beyond the belt ring are pushed out by one extra ring plus
// a buffer on each side of the belt. Rings below 2 (celebration, unset)
// never push.
func (g Geometry) RadiusForActivePosition(pos int, beltRing *int) float64 {
	if pos < 0 {
		pos = 0
	}
	base := g.MinRadius + float64(pos)*g.RingSpacing
	if beltRing == nil || *beltRing < 2 {
		return base
	}
	ring := pos + 1
	if ring < *beltRing {
		return base
	}
	return g.MinRadius + float64(pos+1)*g.RingSpacing + 2*g.BeltBuffer
}

// RecalculateAllRadii assigns a fresh radius to every active subtask in
// stored order. Completed subtasks keep whatever radius they had.
func (g Geometry) RecalculateAllRadii(subtasks []model.Subtask, beltRing *int) []model.Subtask {
	out := make([]model.Subtask, len(subtasks))
	pos := 0
	for i, st := range subtasks {
		out[i] = st
		if st.Completed {
			continue
		}
		out[i].AssignedRadius = model.Float(g.RadiusForActivePosition(pos, beltRing))
		pos++
	}
	return out
}

// BeltRadius is where the belt marker itself sits. For a normal ring it is
// equidistant from the last subtask inside the belt and the first one
// pushed outside it.
func (g Geometry) BeltRadius(ring int) float64 {
	if ring < 2 {
		return g.CelebrationRadius
	}
	return g.MinRadius + float64(ring-1)*g.RingSpacing + g.BeltBuffer
}

// ActiveCount returns the number of subtasks that are not completed.
func ActiveCount(subtasks []model.Subtask) int {
	n := 0
	for _, st := range subtasks {
		if !st.Completed {
			n++
		}
	}
	return n
}
