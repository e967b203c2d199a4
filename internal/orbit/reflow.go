package orbit

import "github.com/squorange/focus-tools-sub000/internal/model"

// Snapshot is the complete derived layout of one task after a mutation.
type Snapshot struct {
	Subtasks   []model.Subtask `json:"subtasks"`
	Belt       Belt            `json:"belt"`
	BeltRadius float64         `json:"beltRadius,omitempty"`
}

// Reflow locates the belt once and recalculates every active radius
// against it. Everything downstream (persistence, rendering) should read
// the belt from the returned snapshot instead of locating it again.
func (g Geometry) Reflow(subtasks []model.Subtask, beltRing *int, targetIDs []string) Snapshot {
	snap := g.Locate(subtasks, beltRing, targetIDs)

	var ring *int
	if snap.Belt.State == BeltRinged {
		ring = model.Int(snap.Belt.Ring)
	}
	snap.Subtasks = g.RecalculateAllRadii(subtasks, ring)
	return snap
}

// Locate is Reflow without the radius pass: subtasks are returned as
// given, so the snapshot describes exactly what is stored.
func (g Geometry) Locate(subtasks []model.Subtask, beltRing *int, targetIDs []string) Snapshot {
	belt := LocateBelt(subtasks, beltRing, targetIDs)
	snap := Snapshot{
		Subtasks: append([]model.Subtask(nil), subtasks...),
		Belt:     belt,
	}
	if belt.State != BeltNone {
		snap.BeltRadius = g.BeltRadius(belt.Ring)
	}
	return snap
}
