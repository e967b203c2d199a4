package orbit

import "github.com/squorange/focus-tools-sub000/internal/model"

// Backfill fills in missing angles and radii for subtasks stored before
// layout tracking existed. Fields that are already set are left alone, so
// running it twice is the same as running it once.
//
// Missing angles are spread evenly by stored index. Missing radii follow
// the active-ordinal scheme; a completed subtask gets the radius of the
// slot it sits in without taking up an active position.
func (g Geometry) Backfill(subtasks []model.Subtask, beltRing *int) []model.Subtask {
	out := make([]model.Subtask, len(subtasks))
	total := len(subtasks)
	pos := 0
	for i, st := range subtasks {
		out[i] = st
		if st.AssignedAngle == nil {
			out[i].AssignedAngle = model.Float(DefaultAngleForIndex(i, total))
		}
		if st.AssignedRadius == nil {
			out[i].AssignedRadius = model.Float(g.RadiusForActivePosition(pos, beltRing))
		}
		if !st.Completed {
			pos++
		}
	}
	return out
}

// NeedsBackfill reports whether any subtask lacks an angle or radius.
func NeedsBackfill(subtasks []model.Subtask) bool {
	for _, st := range subtasks {
		if st.AssignedAngle == nil || st.AssignedRadius == nil {
			return true
		}
	}
	return false
}
