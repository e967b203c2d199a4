package mutate

import (
	"strings"
	"time"

	"github.com/squorange/focus-tools-sub000/internal/model"
	"github.com/squorange/focus-tools-sub000/internal/orbit"
)

// AddSubtask appends a subtask with a permanent angle picked from the
// largest free gap and reflows the radii.
func AddSubtask(t model.Task, g orbit.Geometry, id, title string, now time.Time) (Result, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Result{}, ErrEmptyTitle
	}

	t = clone(t)
	st := model.Subtask{
		ID:            id,
		Title:         title,
		AssignedAngle: model.Float(orbit.NextAngle(t.Subtasks)),
		CreatedAt:     now,
	}
	t.Subtasks = append(t.Subtasks, st)
	t.UpdatedAt = now

	t, snap := reflow(t, g)
	added := t.Subtasks[len(t.Subtasks)-1]
	return Result{
		Task:      t,
		Snapshot:  snap,
		Changed:   true,
		EventType: "subtask.add",
		EventPayload: map[string]any{
			"subtask": added,
			"belt":    beltPayload(snap),
		},
	}, nil
}

// SetSubtaskCompleted toggles completion. A completed subtask keeps the
// radius it had at the moment of completion.
func SetSubtaskCompleted(t model.Task, g orbit.Geometry, subtaskID string, completed bool, now time.Time) (Result, error) {
	subtaskID = strings.TrimSpace(subtaskID)
	idx := t.FindSubtask(subtaskID)
	if idx < 0 {
		return Result{}, NotFoundError{Kind: "subtask", ID: subtaskID}
	}
	if t.Subtasks[idx].Completed == completed {
		return Result{Task: t, Snapshot: Layout(t, g), Changed: false}, nil
	}

	t = clone(t)
	st := &t.Subtasks[idx]
	st.Completed = completed
	if completed {
		ts := now
		st.CompletedAt = &ts
	} else {
		st.CompletedAt = nil
	}
	t.UpdatedAt = now

	t, snap := reflow(t, g)
	typ := "subtask.uncomplete"
	if completed {
		typ = "subtask.complete"
	}
	return Result{
		Task:      t,
		Snapshot:  snap,
		Changed:   true,
		EventType: typ,
		EventPayload: map[string]any{
			"subtaskId": subtaskID,
			"belt":      beltPayload(snap),
		},
	}, nil
}

func DeleteSubtask(t model.Task, g orbit.Geometry, subtaskID string, now time.Time) (Result, error) {
	subtaskID = strings.TrimSpace(subtaskID)
	idx := t.FindSubtask(subtaskID)
	if idx < 0 {
		return Result{}, NotFoundError{Kind: "subtask", ID: subtaskID}
	}

	t = clone(t)
	removed := t.Subtasks[idx]
	t.Subtasks = append(t.Subtasks[:idx], t.Subtasks[idx+1:]...)
	t.UpdatedAt = now

	t, snap := reflow(t, g)
	return Result{
		Task:      t,
		Snapshot:  snap,
		Changed:   true,
		EventType: "subtask.delete",
		EventPayload: map[string]any{
			"subtask": removed,
			"belt":    beltPayload(snap),
		},
	}, nil
}
