package publish

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/squorange/focus-tools-sub000/internal/model"
	"github.com/squorange/focus-tools-sub000/internal/orbit"
)

type RenderOptions struct {
	// IncludeLayout appends angle and radius to each subtask line.
	IncludeLayout bool
}

// RenderTaskMarkdown renders a task as a markdown checklist in stacking
// order. When the belt is drawn as a ring, a marker line follows the last
// subtask inside it.
func RenderTaskMarkdown(t model.Task, snap orbit.Snapshot, opt RenderOptions) string {
	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	writeLn("# " + strings.TrimSpace(t.Title))
	writeLn("")
	writeLn("## Meta")
	writeLn("")
	writeLn("- ID: " + t.ID)
	writeLn("- Belt: " + beltSummary(snap))
	writeLn(fmt.Sprintf("- Active: %d of %d", orbit.ActiveCount(snap.Subtasks), len(snap.Subtasks)))
	writeLn("- Created: " + t.CreatedAt.UTC().Format(time.RFC3339))
	writeLn("- Updated: " + t.UpdatedAt.UTC().Format(time.RFC3339))

	if desc := strings.TrimSpace(t.Description); desc != "" {
		writeLn("")
		writeLn("## Description")
		writeLn("")
		writeLn(desc)
	}

	if len(snap.Subtasks) == 0 {
		return buf.String()
	}

	writeLn("")
	writeLn("## Subtasks")
	writeLn("")
	beltAfter := beltAfterIndex(snap)
	for i, st := range snap.Subtasks {
		box := "[ ]"
		if st.Completed {
			box = "[x]"
		}
		line := "- " + box + " " + strings.TrimSpace(st.Title)
		if opt.IncludeLayout {
			line += layoutSuffix(st)
		}
		writeLn(line)
		if i == beltAfter {
			writeLn("")
			writeLn("> belt: ring " + strconv.Itoa(snap.Belt.Ring))
			writeLn("")
		}
	}
	return buf.String()
}

func beltSummary(snap orbit.Snapshot) string {
	switch snap.Belt.State {
	case orbit.BeltRinged:
		return fmt.Sprintf("ring %d (radius %s)", snap.Belt.Ring, fmtFloat(snap.BeltRadius))
	case orbit.BeltCelebrating:
		return "all targets done"
	default:
		return "none"
	}
}

// beltAfterIndex is the stored index of the last subtask inside the ring,
// or -1 when no ring is drawn. Ring n holds the first n-1 active subtasks.
func beltAfterIndex(snap orbit.Snapshot) int {
	if snap.Belt.State != orbit.BeltRinged {
		return -1
	}
	inside := snap.Belt.Ring - 1
	active := 0
	for i, st := range snap.Subtasks {
		if st.Completed {
			continue
		}
		active++
		if active == inside {
			return i
		}
	}
	return -1
}

func layoutSuffix(st model.Subtask) string {
	if st.AssignedAngle == nil || st.AssignedRadius == nil {
		return " (unplaced)"
	}
	return " (" + fmtFloat(*st.AssignedAngle) + "°, r " + fmtFloat(*st.AssignedRadius) + ")"
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
