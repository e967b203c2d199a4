package mutate

import (
	"strings"
	"time"

	"github.com/squorange/focus-tools-sub000/internal/model"
	"github.com/squorange/focus-tools-sub000/internal/orbit"
)

// Result is what every mutation returns. Callers are responsible for
// saving Task and appending an event of EventType with EventPayload.
type Result struct {
	Task         model.Task
	Snapshot     orbit.Snapshot
	Changed      bool
	EventType    string
	EventPayload map[string]any
}

func NewTask(id, title, description string, now time.Time) (model.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return model.Task{}, ErrEmptyTitle
	}
	return model.Task{
		ID:          id,
		Title:       title,
		Description: strings.TrimSpace(description),
		Subtasks:    []model.Subtask{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Layout reflows a task without changing it, for read paths (show, render).
func Layout(t model.Task, g orbit.Geometry) orbit.Snapshot {
	return g.Reflow(t.Subtasks, t.BeltRing, t.BeltTargetIDs)
}

// reflow runs the engine once and folds the located belt back into the
// task: a vanished belt is cleared, otherwise the located ring is stored.
// Target ids are never recaptured here.
func reflow(t model.Task, g orbit.Geometry) (model.Task, orbit.Snapshot) {
	snap := g.Reflow(t.Subtasks, t.BeltRing, t.BeltTargetIDs)
	t.Subtasks = snap.Subtasks

	if !t.BeltEnabled {
		return t, snap
	}
	switch snap.Belt.State {
	case orbit.BeltNone:
		t = clearBelt(t)
	case orbit.BeltCelebrating:
		t.BeltRing = model.Int(0)
	case orbit.BeltRinged:
		t.BeltRing = model.Int(snap.Belt.Ring)
	}
	return t, snap
}

func clearBelt(t model.Task) model.Task {
	t.BeltEnabled = false
	t.BeltRing = nil
	t.BeltTargetIDs = nil
	return t
}

// clone copies the slices of t so a mutation never writes through to the
// caller's value.
func clone(t model.Task) model.Task {
	t.Subtasks = append([]model.Subtask(nil), t.Subtasks...)
	t.BeltTargetIDs = append([]string(nil), t.BeltTargetIDs...)
	if len(t.BeltTargetIDs) == 0 {
		t.BeltTargetIDs = nil
	}
	return t
}

func beltPayload(snap orbit.Snapshot) map[string]any {
	return map[string]any{
		"state":  snap.Belt.State.String(),
		"ring":   snap.Belt.Ring,
		"radius": snap.BeltRadius,
	}
}
