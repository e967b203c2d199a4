package store

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/squorange/focus-tools-sub000/internal/model"
)

// sampleTask builds a task whose subtask ids are derived from the task id
// (task-1 -> sub-1b, sub-1a, sub-1c) so several samples can share a db.
func sampleTask(id string) *model.Task {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	p := "sub-" + strings.TrimPrefix(id, "task-")
	return &model.Task{
		ID:    id,
		Title: "Plan trip",
		Subtasks: []model.Subtask{
			{ID: p + "b", Title: "Book hotel", AssignedAngle: model.Float(-90), AssignedRadius: model.Float(100), CreatedAt: now},
			{ID: p + "a", Title: "Buy tickets", Completed: true, CompletedAt: &now, AssignedAngle: model.Float(90), AssignedRadius: model.Float(148), CreatedAt: now},
			{ID: p + "c", Title: "Pack", AssignedAngle: model.Float(180), AssignedRadius: model.Float(148), CreatedAt: now},
		},
		BeltEnabled:   true,
		BeltRing:      model.Int(2),
		BeltTargetIDs: []string{p + "b"},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func TestSaveLoadTask_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := Store{Dir: t.TempDir()}

	task := sampleTask("task-1")
	require.NoError(t, s.SaveTask(ctx, task))
	assert.Equal(t, int64(1), task.Version)

	got, ok, err := s.LoadTask(ctx, "task-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, *task, *got)

	ids := []string{}
	for _, st := range got.Subtasks {
		ids = append(ids, st.ID)
	}
	assert.Equal(t, []string{"sub-1b", "sub-1a", "sub-1c"}, ids, "stored order survives")
}

func TestLoadTask_Missing(t *testing.T) {
	s := Store{Dir: t.TempDir()}
	got, ok, err := s.LoadTask(context.Background(), "task-nope")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestSaveTask_VersionConflict(t *testing.T) {
	ctx := context.Background()
	s := Store{Dir: t.TempDir()}
	require.NoError(t, s.SaveTask(ctx, sampleTask("task-1")))

	first, _, err := s.LoadTask(ctx, "task-1")
	require.NoError(t, err)
	second, _, err := s.LoadTask(ctx, "task-1")
	require.NoError(t, err)

	first.Title = "first writer"
	require.NoError(t, s.SaveTask(ctx, first))
	assert.Equal(t, int64(2), first.Version)

	second.Title = "second writer"
	err = s.SaveTask(ctx, second)
	require.ErrorIs(t, err, ErrVersionConflict)
	assert.Equal(t, int64(1), second.Version, "failed save leaves the version alone")

	got, _, err := s.LoadTask(ctx, "task-1")
	require.NoError(t, err)
	assert.Equal(t, "first writer", got.Title)

	// A brand new task must not collide with an existing id.
	err = s.SaveTask(ctx, sampleTask("task-1"))
	require.ErrorIs(t, err, ErrVersionConflict)
}

func TestSaveTask_ReplacesSubtasks(t *testing.T) {
	ctx := context.Background()
	s := Store{Dir: t.TempDir()}
	task := sampleTask("task-1")
	require.NoError(t, s.SaveTask(ctx, task))

	task.Subtasks = task.Subtasks[1:]
	require.NoError(t, s.SaveTask(ctx, task))

	got, _, err := s.LoadTask(ctx, "task-1")
	require.NoError(t, err)
	require.Len(t, got.Subtasks, 2)
	assert.Equal(t, "sub-1a", got.Subtasks[0].ID)

	has, err := s.HasID(ctx, "sub-1b")
	require.NoError(t, err)
	assert.False(t, has)
}

func TestListAndDeleteTasks(t *testing.T) {
	ctx := context.Background()
	s := Store{Dir: t.TempDir()}

	a := sampleTask("task-a")
	b := sampleTask("task-b")
	b.CreatedAt = a.CreatedAt.Add(time.Hour)
	require.NoError(t, s.SaveTask(ctx, b))
	require.NoError(t, s.SaveTask(ctx, a))

	list, err := s.ListTasks(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "task-a", list[0].ID)
	assert.Len(t, list[1].Subtasks, 3)

	ok, err := s.DeleteTask(ctx, "task-a")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.DeleteTask(ctx, "task-a")
	require.NoError(t, err)
	assert.False(t, ok)

	has, err := s.HasID(ctx, "task-a")
	require.NoError(t, err)
	assert.False(t, has)
	has, err = s.HasID(ctx, "sub-aa")
	require.NoError(t, err)
	assert.False(t, has, "subtasks go with their task")
	has, err = s.HasID(ctx, "sub-ba")
	require.NoError(t, err)
	assert.True(t, has)
}

func TestEvents_AppendAndRead(t *testing.T) {
	ctx := context.Background()
	s := Store{Dir: t.TempDir()}

	require.NoError(t, s.AppendEvent(ctx, "task.create", "task-1", map[string]any{"title": "x"}))
	require.NoError(t, s.AppendEvent(ctx, "subtask.add", "task-1", map[string]any{"n": 1}))
	require.NoError(t, s.AppendEvent(ctx, "task.create", "task-2", nil))
	require.NoError(t, s.AppendEvent(ctx, "subtask.complete", "task-1", nil))

	all, err := s.ReadEvents(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "task.create", all[0].Type)
	assert.Equal(t, "subtask.complete", all[3].Type)
	assert.NotEmpty(t, all[0].ID)

	tail, err := s.ReadEvents(ctx, "task-1", 2)
	require.NoError(t, err)
	require.Len(t, tail, 2)
	assert.Equal(t, "subtask.add", tail[0].Type)
	assert.Equal(t, "subtask.complete", tail[1].Type)

	require.Error(t, s.AppendEvent(ctx, "", "task-1", nil))
	require.Error(t, s.AppendEvent(ctx, "x", " ", nil))
}

func TestReadEvents_CorruptPayload(t *testing.T) {
	ctx := context.Background()
	s := Store{Dir: t.TempDir()}
	require.NoError(t, s.AppendEvent(ctx, "task.create", "task-1", nil))

	db, err := s.openSQLite(ctx)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO events(event_id, seq, type, entity_id, payload_json, issued_at_unixms)
		VALUES('ev-bad', 2, 'task.edit', 'task-1', '{not json', 0)`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	_, err = s.ReadEvents(ctx, "task-1", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "event ev-bad")
}

func TestWorkspaceID_Stable(t *testing.T) {
	ctx := context.Background()
	s := Store{Dir: t.TempDir()}
	a, err := s.WorkspaceID(ctx)
	require.NoError(t, err)
	b, err := s.WorkspaceID(ctx)
	require.NoError(t, err)
	assert.Len(t, a, 36)
	assert.Equal(t, a, b)
}

func TestDiscoverDir(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".focus"), 0o755))
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	got, ok := DiscoverDir(nested)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(root, ".focus"), got)
}

func TestNextID(t *testing.T) {
	s := Store{Dir: t.TempDir()}
	id, err := s.NextID(context.Background(), "task")
	require.NoError(t, err)
	assert.Regexp(t, `^task-[a-z2-7]{4}$`, id)

	id, err = s.NextID(context.Background(), "sub")
	require.NoError(t, err)
	assert.Regexp(t, `^sub-[a-z2-7]{5}$`, id)
}
