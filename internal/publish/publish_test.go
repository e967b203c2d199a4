package publish

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/squorange/focus-tools-sub000/internal/model"
	"github.com/squorange/focus-tools-sub000/internal/orbit"
)

func sampleTask() model.Task {
	now := time.Date(2025, 12, 20, 0, 0, 0, 0, time.UTC)
	sub := func(id, title string, angle float64, done bool) model.Subtask {
		return model.Subtask{ID: id, Title: title, Completed: done, AssignedAngle: model.Float(angle), CreatedAt: now}
	}
	withRadius := func(st model.Subtask, radius float64) model.Subtask {
		st.AssignedRadius = model.Float(radius)
		return st
	}
	return model.Task{
		ID:          "task-ab12",
		Title:       "Write report",
		Description: "Some **markdown**.",
		Subtasks: []model.Subtask{
			withRadius(sub("sub-x", "Outline", -90, true), 100),
			sub("sub-y", "Draft", 90, false),
			sub("sub-z", "Review", 180, false),
		},
		BeltEnabled:   true,
		BeltRing:      model.Int(2),
		BeltTargetIDs: []string{"sub-x", "sub-y"},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func TestRenderTaskMarkdown(t *testing.T) {
	t.Parallel()

	task := sampleTask()
	snap := orbit.DefaultGeometry().Reflow(task.Subtasks, task.BeltRing, task.BeltTargetIDs)
	md := RenderTaskMarkdown(task, snap, RenderOptions{IncludeLayout: true})

	for _, want := range []string{
		"# Write report",
		"- ID: task-ab12",
		"- Belt: ring 2 (radius 160)",
		"- Active: 2 of 3",
		"## Description\n\nSome **markdown**.",
		"- [x] Outline (-90°, r 100)",
		"- [ ] Draft (90°, r 100)\n\n> belt: ring 2\n\n- [ ] Review (180°, r 220)",
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("expected markdown to contain %q; got:\n%s", want, md)
		}
	}
}

func TestRenderTaskMarkdown_NoBeltNoSubtasks(t *testing.T) {
	t.Parallel()

	task := model.Task{ID: "task-zz99", Title: "Empty"}
	md := RenderTaskMarkdown(task, orbit.DefaultGeometry().Reflow(nil, nil, nil), RenderOptions{})
	if !strings.Contains(md, "- Belt: none") {
		t.Fatalf("expected no belt; got:\n%s", md)
	}
	if strings.Contains(md, "## Subtasks") {
		t.Fatalf("did not expect a subtasks section; got:\n%s", md)
	}
}

func TestWriteTask_RespectsOverwrite(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	task := sampleTask()
	snap := orbit.DefaultGeometry().Reflow(task.Subtasks, task.BeltRing, task.BeltTargetIDs)

	res, err := WriteTask(task, snap, dir, WriteOptions{})
	if err != nil {
		t.Fatalf("WriteTask: %v", err)
	}
	want := filepath.Join(dir, "tasks", "task-ab12.md")
	if len(res.Written) != 1 || res.Written[0] != want {
		t.Fatalf("unexpected written paths: %#v", res.Written)
	}
	if _, err := os.Stat(want); err != nil {
		t.Fatalf("expected file: %v", err)
	}

	if _, err := WriteTask(task, snap, dir, WriteOptions{}); err == nil {
		t.Fatalf("expected error writing over an existing file")
	}
	if _, err := WriteTask(task, snap, dir, WriteOptions{Overwrite: true}); err != nil {
		t.Fatalf("WriteTask with overwrite: %v", err)
	}
	if _, err := WriteTask(task, snap, " ", WriteOptions{}); err == nil {
		t.Fatalf("expected error for missing --to")
	}
}
