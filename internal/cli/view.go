package cli

import (
	"github.com/squorange/focus-tools-sub000/internal/model"
	"github.com/squorange/focus-tools-sub000/internal/mutate"
	"github.com/squorange/focus-tools-sub000/internal/orbit"
	"github.com/squorange/focus-tools-sub000/internal/tui"
)

type beltView struct {
	State     string   `json:"state"`
	Ring      int      `json:"ring"`
	Radius    float64  `json:"radius"`
	TargetIDs []string `json:"targetIds,omitempty"`
}

type layoutRow struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Completed bool     `json:"completed"`
	Angle     *float64 `json:"angle"`
	Radius    *float64 `json:"radius"`
	X         *float64 `json:"x"`
	Y         *float64 `json:"y"`
}

type taskView struct {
	Task   model.Task  `json:"task"`
	Belt   beltView    `json:"belt"`
	Layout []layoutRow `json:"layout"`
}

type mutationView struct {
	taskView
	Changed bool           `json:"changed"`
	Event   string         `json:"event,omitempty"`
	Subtask *model.Subtask `json:"subtask,omitempty"`
}

type taskSummary struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Subtasks int    `json:"subtasks"`
	Active   int    `json:"active"`
	Belt     string `json:"belt"`
	Version  int64  `json:"version"`
}

func newBeltView(t model.Task, snap orbit.Snapshot) beltView {
	bv := beltView{
		State:  snap.Belt.State.String(),
		Ring:   snap.Belt.Ring,
		Radius: snap.BeltRadius,
	}
	if snap.Belt.State != orbit.BeltNone {
		bv.TargetIDs = t.BeltTargetIDs
	}
	return bv
}

// newTaskView pairs the stored task with its derived layout. Subtasks are
// taken from the snapshot so radii reflect the current belt.
func newTaskView(t model.Task, snap orbit.Snapshot) taskView {
	t.Subtasks = snap.Subtasks
	rows := make([]layoutRow, 0, len(snap.Subtasks))
	for _, st := range snap.Subtasks {
		row := layoutRow{
			ID:        st.ID,
			Title:     st.Title,
			Completed: st.Completed,
			Angle:     st.AssignedAngle,
			Radius:    st.AssignedRadius,
		}
		if st.AssignedAngle != nil && st.AssignedRadius != nil {
			p := tui.Project(*st.AssignedAngle, *st.AssignedRadius)
			row.X, row.Y = model.Float(p.X), model.Float(p.Y)
		}
		rows = append(rows, row)
	}
	return taskView{Task: t, Belt: newBeltView(t, snap), Layout: rows}
}

func newMutationView(res mutate.Result) mutationView {
	return mutationView{
		taskView: newTaskView(res.Task, res.Snapshot),
		Changed:  res.Changed,
		Event:    res.EventType,
	}
}

func newTaskSummary(t model.Task, snap orbit.Snapshot) taskSummary {
	return taskSummary{
		ID:       t.ID,
		Title:    t.Title,
		Subtasks: len(t.Subtasks),
		Active:   orbit.ActiveCount(t.Subtasks),
		Belt:     snap.Belt.State.String(),
		Version:  t.Version,
	}
}
