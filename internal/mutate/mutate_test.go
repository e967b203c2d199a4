package mutate

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/squorange/focus-tools-sub000/internal/model"
	"github.com/squorange/focus-tools-sub000/internal/orbit"
)

var now = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func newTaskWith(t *testing.T, ids ...string) model.Task {
	t.Helper()
	task, err := NewTask("task-1", "Write report", "", now)
	require.NoError(t, err)
	g := orbit.DefaultGeometry()
	for _, id := range ids {
		res, err := AddSubtask(task, g, id, "Subtask "+id, now)
		require.NoError(t, err)
		task = res.Task
	}
	return task
}

func mustComplete(t *testing.T, task model.Task, id string) model.Task {
	t.Helper()
	res, err := SetSubtaskCompleted(task, orbit.DefaultGeometry(), id, true, now)
	require.NoError(t, err)
	require.True(t, res.Changed)
	return res.Task
}

func TestNewTask_RequiresTitle(t *testing.T) {
	_, err := NewTask("task-1", "   ", "", now)
	require.ErrorIs(t, err, ErrEmptyTitle)
}

func TestAddSubtask_AssignsAngleAndRadius(t *testing.T) {
	task := newTaskWith(t, "a", "b", "c")
	require.Len(t, task.Subtasks, 3)

	assert.InDelta(t, -90.0, *task.Subtasks[0].AssignedAngle, 1e-9)
	assert.InDelta(t, 90.0, *task.Subtasks[1].AssignedAngle, 1e-9)
	// Gaps are 180/180; the first one (90 -> 270) wins.
	assert.InDelta(t, 180.0, *task.Subtasks[2].AssignedAngle, 1e-9)

	assert.InDelta(t, 100.0, *task.Subtasks[0].AssignedRadius, 1e-9)
	assert.InDelta(t, 148.0, *task.Subtasks[1].AssignedRadius, 1e-9)
	assert.InDelta(t, 196.0, *task.Subtasks[2].AssignedRadius, 1e-9)
}

func TestAddSubtask_DoesNotWriteThroughToCaller(t *testing.T) {
	task := newTaskWith(t, "a")
	before := *task.Subtasks[0].AssignedRadius
	subs := task.Subtasks

	_, err := AddSubtask(task, orbit.DefaultGeometry(), "b", "B", now)
	require.NoError(t, err)
	assert.Len(t, subs, 1)
	assert.Equal(t, before, *subs[0].AssignedRadius)
}

func TestAddSubtask_EmptyTitle(t *testing.T) {
	task := newTaskWith(t)
	_, err := AddSubtask(task, orbit.DefaultGeometry(), "a", "", now)
	require.ErrorIs(t, err, ErrEmptyTitle)
}

func TestSetSubtaskCompleted(t *testing.T) {
	g := orbit.DefaultGeometry()
	task := newTaskWith(t, "a", "b", "c")
	radiusB := *task.Subtasks[1].AssignedRadius

	res, err := SetSubtaskCompleted(task, g, "b", true, now)
	require.NoError(t, err)
	require.True(t, res.Changed)
	assert.Equal(t, "subtask.complete", res.EventType)
	assert.NotNil(t, res.Task.Subtasks[1].CompletedAt)
	assert.Equal(t, radiusB, *res.Task.Subtasks[1].AssignedRadius, "radius frozen on completion")
	assert.InDelta(t, 148.0, *res.Task.Subtasks[2].AssignedRadius, 1e-9, "c moves inward")
	assert.False(t, task.Subtasks[1].Completed, "caller value untouched")

	again, err := SetSubtaskCompleted(res.Task, g, "b", true, now)
	require.NoError(t, err)
	assert.False(t, again.Changed)

	undo, err := SetSubtaskCompleted(res.Task, g, "b", false, now)
	require.NoError(t, err)
	assert.Equal(t, "subtask.uncomplete", undo.EventType)
	assert.Nil(t, undo.Task.Subtasks[1].CompletedAt)
	assert.Equal(t, radiusB, *undo.Task.Subtasks[1].AssignedRadius)

	_, err = SetSubtaskCompleted(task, g, "nope", true, now)
	var nf NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "subtask", nf.Kind)
}

func TestDeleteSubtask_KeepsAnglesOfOthers(t *testing.T) {
	task := newTaskWith(t, "a", "b", "c", "d")
	angles := map[string]float64{}
	for _, st := range task.Subtasks {
		angles[st.ID] = *st.AssignedAngle
	}

	res, err := DeleteSubtask(task, orbit.DefaultGeometry(), "b", now)
	require.NoError(t, err)
	require.Len(t, res.Task.Subtasks, 3)
	for _, st := range res.Task.Subtasks {
		assert.Equal(t, angles[st.ID], *st.AssignedAngle)
	}
	assert.InDelta(t, 148.0, *res.Task.Subtasks[1].AssignedRadius, 1e-9)
	assert.Len(t, task.Subtasks, 4)

	_, err = DeleteSubtask(task, orbit.DefaultGeometry(), "zzz", now)
	require.Error(t, err)
}

func TestBelt_EndToEnd(t *testing.T) {
	g := orbit.DefaultGeometry()
	task := newTaskWith(t, "X", "Y", "Z")

	res, err := CreateBelt(task, g, now)
	require.NoError(t, err)
	task = res.Task
	require.True(t, task.BeltEnabled)
	require.Equal(t, 4, *task.BeltRing)
	require.Equal(t, []string{"X", "Y", "Z"}, task.BeltTargetIDs)

	_, err = CreateBelt(task, g, now)
	require.ErrorIs(t, err, ErrBeltExists)

	task = mustComplete(t, task, "X")
	assert.Equal(t, 3, *task.BeltRing)
	task = mustComplete(t, task, "Y")
	assert.Equal(t, 2, *task.BeltRing)

	res, err = SetSubtaskCompleted(task, g, "Z", true, now)
	require.NoError(t, err)
	assert.Equal(t, orbit.BeltCelebrating, res.Snapshot.Belt.State)
	assert.Equal(t, 0, *res.Task.BeltRing)
	assert.True(t, res.Task.BeltEnabled)
	assert.Equal(t, []string{"X", "Y", "Z"}, res.Task.BeltTargetIDs, "targets are never recaptured by completion")

	undo, err := SetSubtaskCompleted(res.Task, g, "Z", false, now)
	require.NoError(t, err)
	assert.Equal(t, 2, *undo.Task.BeltRing, "belt comes back from celebration")
}

func TestBelt_PushesOutsideSubtasks(t *testing.T) {
	g := orbit.DefaultGeometry()
	task := newTaskWith(t, "a", "b")
	res, err := CreateBelt(task, g, now)
	require.NoError(t, err)

	res, err = AddSubtask(res.Task, g, "c", "C", now)
	require.NoError(t, err)
	assert.Equal(t, 3, *res.Task.BeltRing)
	assert.Equal(t, []string{"a", "b"}, res.Task.BeltTargetIDs)
	assert.InDelta(t, 268.0, *res.Task.Subtasks[2].AssignedRadius, 1e-9)
	assert.InDelta(t, g.BeltRadius(3), res.Snapshot.BeltRadius, 1e-9)
}

func TestBelt_VanishesWhenTargetsDeleted(t *testing.T) {
	g := orbit.DefaultGeometry()
	task := newTaskWith(t, "a")
	res, err := CreateBelt(task, g, now)
	require.NoError(t, err)
	res, err = AddSubtask(res.Task, g, "b", "B", now)
	require.NoError(t, err)

	res, err = DeleteSubtask(res.Task, g, "a", now)
	require.NoError(t, err)
	assert.Equal(t, orbit.BeltNone, res.Snapshot.Belt.State)
	assert.False(t, res.Task.BeltEnabled)
	assert.Nil(t, res.Task.BeltRing)
	assert.Nil(t, res.Task.BeltTargetIDs)
	assert.InDelta(t, 100.0, *res.Task.Subtasks[0].AssignedRadius, 1e-9)
}

func TestMoveBelt(t *testing.T) {
	g := orbit.DefaultGeometry()
	task := newTaskWith(t, "a", "b", "c")

	_, err := MoveBelt(task, g, orbit.Inward, now)
	require.ErrorIs(t, err, ErrBeltNotEnabled)

	res, err := CreateBelt(task, g, now)
	require.NoError(t, err)

	res, err = MoveBelt(res.Task, g, orbit.Inward, now)
	require.NoError(t, err)
	require.True(t, res.Changed)
	assert.Equal(t, 3, *res.Task.BeltRing)
	assert.Equal(t, []string{"a", "b"}, res.Task.BeltTargetIDs)
	assert.Equal(t, "belt.move", res.EventType)

	res, err = MoveBelt(res.Task, g, orbit.Inward, now)
	require.NoError(t, err)
	res, err = MoveBelt(res.Task, g, orbit.Inward, now)
	require.NoError(t, err)
	assert.False(t, res.Changed, "ring 2 is the innermost belt position")
	assert.Equal(t, 2, *res.Task.BeltRing)

	res, err = MoveBelt(res.Task, g, orbit.Outward, now)
	require.NoError(t, err)
	assert.Equal(t, 3, *res.Task.BeltRing)
}

func TestMoveBelt_FromCelebration(t *testing.T) {
	g := orbit.DefaultGeometry()
	task := newTaskWith(t, "a", "b")
	res, err := CreateBelt(task, g, now)
	require.NoError(t, err)
	task = mustComplete(t, res.Task, "a")
	task = mustComplete(t, task, "b")
	require.Equal(t, 0, *task.BeltRing)

	_, err = MoveBelt(task, g, orbit.Outward, now)
	require.ErrorIs(t, err, ErrNoActiveSubtasks)

	res, err = AddSubtask(task, g, "c", "C", now)
	require.NoError(t, err)
	res, err = MoveBelt(res.Task, g, orbit.Outward, now)
	require.NoError(t, err)
	assert.Equal(t, 2, *res.Task.BeltRing)
	assert.Equal(t, []string{"c"}, res.Task.BeltTargetIDs)
}

func TestCreateBelt_NothingActive(t *testing.T) {
	task := newTaskWith(t, "a")
	task = mustComplete(t, task, "a")
	_, err := CreateBelt(task, orbit.DefaultGeometry(), now)
	require.ErrorIs(t, err, ErrNoActiveSubtasks)
}

func TestRemoveBelt(t *testing.T) {
	g := orbit.DefaultGeometry()
	task := newTaskWith(t, "a", "b")
	res, err := CreateBelt(task, g, now)
	require.NoError(t, err)
	res, err = AddSubtask(res.Task, g, "c", "C", now)
	require.NoError(t, err)

	res, err = RemoveBelt(res.Task, g, now)
	require.NoError(t, err)
	assert.False(t, res.Task.BeltEnabled)
	assert.Nil(t, res.Task.BeltRing)
	assert.InDelta(t, 196.0, *res.Task.Subtasks[2].AssignedRadius, 1e-9)

	_, err = RemoveBelt(res.Task, g, now)
	require.ErrorIs(t, err, ErrBeltNotEnabled)
}

func TestBackfill(t *testing.T) {
	g := orbit.DefaultGeometry()
	task, err := NewTask("task-legacy", "Legacy", "", now)
	require.NoError(t, err)
	task.Subtasks = []model.Subtask{{ID: "a"}, {ID: "b", Completed: true}, {ID: "c"}}

	res, err := Backfill(task, g, now)
	require.NoError(t, err)
	require.True(t, res.Changed)
	assert.Equal(t, 3, res.EventPayload["filled"])
	for _, st := range res.Task.Subtasks {
		require.NotNil(t, st.AssignedAngle)
		require.NotNil(t, st.AssignedRadius)
	}

	again, err := Backfill(res.Task, g, now)
	require.NoError(t, err)
	assert.False(t, again.Changed)
	assert.Equal(t, res.Task.Subtasks, again.Task.Subtasks)
}

func TestBackfill_SnapshotMatchesSavedSubtasks(t *testing.T) {
	g := orbit.DefaultGeometry()
	task, err := NewTask("task-legacy", "Legacy", "", now)
	require.NoError(t, err)
	// "a" carries a radius that a reflow would move back to the min ring.
	task.Subtasks = []model.Subtask{
		{ID: "a", AssignedAngle: model.Float(10), AssignedRadius: model.Float(400)},
		{ID: "b"},
	}

	res, err := Backfill(task, g, now)
	require.NoError(t, err)
	require.True(t, res.Changed)
	assert.Equal(t, res.Task.Subtasks, res.Snapshot.Subtasks)
	assert.Equal(t, 400.0, *res.Snapshot.Subtasks[0].AssignedRadius)

	again, err := Backfill(res.Task, g, now)
	require.NoError(t, err)
	require.False(t, again.Changed)
	assert.Equal(t, again.Task.Subtasks, again.Snapshot.Subtasks)

	assert.Equal(t, 100.0, *Layout(res.Task, g).Subtasks[0].AssignedRadius)
}
