package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"github.com/squorange/focus-tools-sub000/internal/model"
	"github.com/squorange/focus-tools-sub000/internal/mutate"
	"github.com/squorange/focus-tools-sub000/internal/orbit"
	"github.com/squorange/focus-tools-sub000/internal/store"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
)

type taskLoadedMsg struct {
	task model.Task
	err  error
}

type appliedMsg struct {
	res    mutate.Result
	status string
	err    error
}

type appModel struct {
	ctx    context.Context
	st     store.Store
	geom   orbit.Geometry
	taskID string
	now    func() time.Time

	loaded   bool
	task     model.Task
	snap     orbit.Snapshot
	selected int

	adding bool
	input  textinput.Model

	width  int
	height int
	status string
	err    error
}

func newAppModel(ctx context.Context, opts Options) appModel {
	in := textinput.New()
	in.Placeholder = "Subtask title"
	in.CharLimit = 200
	in.Width = 40

	return appModel{
		ctx:    ctx,
		st:     opts.Store,
		geom:   opts.Geometry,
		taskID: opts.TaskID,
		now:    func() time.Time { return time.Now().UTC() },
		input:  in,
	}
}

func (m appModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m appModel) loadCmd() tea.Cmd {
	st, ctx, id := m.st, m.ctx, m.taskID
	return func() tea.Msg {
		t, ok, err := st.LoadTask(ctx, id)
		if err == nil && !ok {
			err = mutate.NotFoundError{Kind: "task", ID: id}
		}
		if err != nil {
			return taskLoadedMsg{err: err}
		}
		return taskLoadedMsg{task: *t}
	}
}

func (m appModel) applyCmd(status string, fn func(model.Task) (mutate.Result, error)) tea.Cmd {
	st, ctx, id := m.st, m.ctx, m.taskID
	return func() tea.Msg {
		res, err := st.Apply(ctx, id, fn)
		return appliedMsg{res: res, status: status, err: err}
	}
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case taskLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.setTask(msg.task, mutate.Layout(msg.task, m.geom))
		m.err = nil
		return m, nil

	case appliedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		if msg.res.Changed {
			m.status = msg.status
		} else {
			m.status = "no change"
		}
		m.setTask(msg.res.Task, msg.res.Snapshot)
		return m, nil

	case tea.KeyMsg:
		if m.adding {
			return m.updateAdding(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m *appModel) setTask(t model.Task, snap orbit.Snapshot) {
	m.loaded = true
	m.task = t
	m.snap = snap
	if m.selected >= len(t.Subtasks) {
		m.selected = len(t.Subtasks) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m appModel) selectedSubtask() (model.Subtask, bool) {
	if m.selected < 0 || m.selected >= len(m.task.Subtasks) {
		return model.Subtask{}, false
	}
	return m.task.Subtasks[m.selected], true
}

func (m appModel) updateAdding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.adding = false
		m.input.Blur()
		return m, nil
	case "enter":
		title := strings.TrimSpace(m.input.Value())
		m.adding = false
		m.input.Blur()
		if title == "" {
			return m, nil
		}
		st, ctx, id, g, now := m.st, m.ctx, m.taskID, m.geom, m.now()
		return m, func() tea.Msg {
			subID, err := st.NextID(ctx, "sub")
			if err != nil {
				return appliedMsg{err: err}
			}
			res, err := st.Apply(ctx, id, func(t model.Task) (mutate.Result, error) {
				return mutate.AddSubtask(t, g, subID, title, now)
			})
			return appliedMsg{res: res, status: "added " + title, err: err}
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m appModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	g, now := m.geom, m.now()

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "r":
		m.status = "reloaded"
		return m, m.loadCmd()
	case "j", "down":
		if m.selected < len(m.task.Subtasks)-1 {
			m.selected++
		}
		return m, nil
	case "k", "up":
		if m.selected > 0 {
			m.selected--
		}
		return m, nil
	case "a":
		m.adding = true
		m.input.Reset()
		return m, m.input.Focus()
	case " ", "x":
		st, ok := m.selectedSubtask()
		if !ok {
			return m, nil
		}
		done := !st.Completed
		status := "completed " + st.Title
		if !done {
			status = "reopened " + st.Title
		}
		return m, m.applyCmd(status, func(t model.Task) (mutate.Result, error) {
			return mutate.SetSubtaskCompleted(t, g, st.ID, done, now)
		})
	case "d":
		st, ok := m.selectedSubtask()
		if !ok {
			return m, nil
		}
		return m, m.applyCmd("deleted "+st.Title, func(t model.Task) (mutate.Result, error) {
			return mutate.DeleteSubtask(t, g, st.ID, now)
		})
	case "b":
		if m.task.BeltEnabled {
			return m, m.applyCmd("belt removed", func(t model.Task) (mutate.Result, error) {
				return mutate.RemoveBelt(t, g, now)
			})
		}
		return m, m.applyCmd("belt created", func(t model.Task) (mutate.Result, error) {
			return mutate.CreateBelt(t, g, now)
		})
	case "[", "]":
		dir := orbit.Inward
		if msg.String() == "]" {
			dir = orbit.Outward
		}
		return m, m.applyCmd("belt moved "+dir.String(), func(t model.Task) (mutate.Result, error) {
			return mutate.MoveBelt(t, g, dir, now)
		})
	case "f":
		return m, m.applyCmd("backfilled", func(t model.Task) (mutate.Result, error) {
			return mutate.Backfill(t, g, now)
		})
	}
	return m, nil
}

func (m appModel) View() string {
	w, h := m.width, m.height
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}
	if !m.loaded {
		if m.err != nil {
			return styleError().Render(m.err.Error()) + "\n\n" + styleMuted().Render("q quit")
		}
		return styleMuted().Render("loading…")
	}

	header := renderHeader(m.task, m.snap, w)
	footer := m.footer(w)
	bodyH := h - lipgloss.Height(header) - lipgloss.Height(footer) - 1
	if bodyH < 4 {
		bodyH = 4
	}

	listW := w / 3
	if listW > 40 {
		listW = 40
	}
	canvasW := w - listW - 1
	selectedID := ""
	if st, ok := m.selectedSubtask(); ok {
		selectedID = st.ID
	}
	plot := RenderOrbit(m.snap, RenderOptions{Width: canvasW, Height: bodyH, Selected: selectedID})
	body := lipgloss.JoinHorizontal(lipgloss.Top, plot, " ", m.subtaskList(listW, bodyH))

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m appModel) subtaskList(w, h int) string {
	if len(m.task.Subtasks) == 0 {
		return styleMuted().Render("no subtasks (a to add)")
	}
	lines := make([]string, 0, len(m.task.Subtasks))
	for i, st := range m.task.Subtasks {
		if i >= h {
			break
		}
		glyph := string(glyphActive)
		kind := cellActive
		if st.Completed {
			glyph = string(glyphDone)
			kind = cellDone
		}
		line := xansi.Truncate(glyph+" "+st.Title, w-2, "…")
		if i == m.selected {
			lines = append(lines, cellStyle(cellSelected).Render("> "+line))
			continue
		}
		lines = append(lines, "  "+cellStyle(kind).Render(line))
	}
	return strings.Join(lines, "\n")
}

func (m appModel) footer(w int) string {
	var top string
	switch {
	case m.adding:
		top = "add: " + m.input.View()
	case m.err != nil:
		top = styleError().Render(xansi.Truncate(m.err.Error(), w, "…"))
	default:
		top = styleMuted().Render(m.status)
	}
	help := styleMuted().Render(xansi.Truncate("j/k select · space done · a add · d delete · b belt · [ ] move belt · f backfill · r reload · q quit", w, "…"))
	return top + "\n" + help
}

// renderHeader is the task title, belt state and rendered description.
func renderHeader(t model.Task, snap orbit.Snapshot, w int) string {
	lines := []string{
		styleTitle().Render(xansi.Truncate(t.Title, w, "…")),
		styleMuted().Render(beltLine(snap)),
	}
	if desc := renderMarkdown(t.Description, w); desc != "" {
		lines = append(lines, desc)
	}
	return strings.Join(lines, "\n")
}

func beltLine(snap orbit.Snapshot) string {
	active := orbit.ActiveCount(snap.Subtasks)
	total := len(snap.Subtasks)
	switch snap.Belt.State {
	case orbit.BeltRinged:
		return fmt.Sprintf("belt: ring %d (r=%g) · %d/%d active", snap.Belt.Ring, snap.BeltRadius, active, total)
	case orbit.BeltCelebrating:
		return fmt.Sprintf("belt: all targets done · %d/%d active", active, total)
	default:
		return fmt.Sprintf("belt: off · %d/%d active", active, total)
	}
}
