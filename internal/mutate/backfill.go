package mutate

import (
	"time"

	"github.com/squorange/focus-tools-sub000/internal/model"
	"github.com/squorange/focus-tools-sub000/internal/orbit"
)

// Backfill assigns angles and radii to subtasks stored without them.
// It reports Changed only when something was filled in. Stored radii are
// not recomputed, and the returned snapshot shows the subtasks exactly as
// they will be saved; read views (Layout) still reflow.
func Backfill(t model.Task, g orbit.Geometry, now time.Time) (Result, error) {
	if !orbit.NeedsBackfill(t.Subtasks) {
		return Result{Task: t, Snapshot: stored(t, g), Changed: false}, nil
	}

	filled := 0
	for _, st := range t.Subtasks {
		if st.AssignedAngle == nil || st.AssignedRadius == nil {
			filled++
		}
	}

	t = clone(t)
	ring := model.Int(orbit.CurrentBeltRing(t.Subtasks, t.BeltRing, t.BeltTargetIDs))
	t.Subtasks = g.Backfill(t.Subtasks, ring)
	t.UpdatedAt = now

	return Result{
		Task:      t,
		Snapshot:  stored(t, g),
		Changed:   true,
		EventType: "task.backfill",
		EventPayload: map[string]any{
			"filled": filled,
		},
	}, nil
}

func stored(t model.Task, g orbit.Geometry) orbit.Snapshot {
	return g.Locate(t.Subtasks, t.BeltRing, t.BeltTargetIDs)
}
