package mutate

import (
	"slices"
	"time"

	"github.com/squorange/focus-tools-sub000/internal/model"
	"github.com/squorange/focus-tools-sub000/internal/orbit"
)

// CreateBelt wraps the belt around every active subtask and captures them
// as its targets.
func CreateBelt(t model.Task, g orbit.Geometry, now time.Time) (Result, error) {
	if t.BeltEnabled {
		return Result{}, ErrBeltExists
	}
	ring, targets := orbit.CreateBelt(t.Subtasks)
	if ring == 0 {
		return Result{}, ErrNoActiveSubtasks
	}

	t = clone(t)
	t.BeltEnabled = true
	t.BeltRing = model.Int(ring)
	t.BeltTargetIDs = targets
	t.UpdatedAt = now

	t, snap := reflow(t, g)
	return Result{
		Task:      t,
		Snapshot:  snap,
		Changed:   true,
		EventType: "belt.create",
		EventPayload: map[string]any{
			"targetIds": targets,
			"belt":      beltPayload(snap),
		},
	}, nil
}

// MoveBelt moves the belt one ring from where it is currently drawn and
// recaptures its targets.
func MoveBelt(t model.Task, g orbit.Geometry, dir orbit.Direction, now time.Time) (Result, error) {
	if !t.BeltEnabled {
		return Result{}, ErrBeltNotEnabled
	}
	if orbit.ActiveCount(t.Subtasks) == 0 {
		return Result{}, ErrNoActiveSubtasks
	}

	current := orbit.CurrentBeltRing(t.Subtasks, t.BeltRing, t.BeltTargetIDs)
	ring, targets := orbit.MoveBelt(t.Subtasks, current, dir)
	changed := ring != current || !slices.Equal(targets, t.BeltTargetIDs)

	t = clone(t)
	t.BeltRing = model.Int(ring)
	t.BeltTargetIDs = targets
	t.UpdatedAt = now

	t, snap := reflow(t, g)
	return Result{
		Task:      t,
		Snapshot:  snap,
		Changed:   changed,
		EventType: "belt.move",
		EventPayload: map[string]any{
			"direction": dir.String(),
			"from":      current,
			"to":        ring,
			"targetIds": targets,
			"belt":      beltPayload(snap),
		},
	}, nil
}

func RemoveBelt(t model.Task, g orbit.Geometry, now time.Time) (Result, error) {
	if !t.BeltEnabled {
		return Result{}, ErrBeltNotEnabled
	}
	t = clearBelt(clone(t))
	t.UpdatedAt = now

	t, snap := reflow(t, g)
	return Result{
		Task:         t,
		Snapshot:     snap,
		Changed:      true,
		EventType:    "belt.remove",
		EventPayload: map[string]any{},
	}, nil
}
