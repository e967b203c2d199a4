package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/squorange/focus-tools-sub000/internal/model"
	"github.com/squorange/focus-tools-sub000/internal/orbit"
	"github.com/squorange/focus-tools-sub000/internal/store"
)

type Options struct {
	Store    store.Store
	Geometry orbit.Geometry
	TaskID   string
}

// Run starts the interactive orbit view for one task.
func Run(ctx context.Context, opts Options) error {
	applyThemePreference()
	applyColorProfilePreference()

	m := newAppModel(ctx, opts)
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

// RenderStatic is the non-interactive view: header plus a labeled plot.
func RenderStatic(t model.Task, snap orbit.Snapshot, width, height int) string {
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}
	plot := RenderOrbit(snap, RenderOptions{Width: width, Height: height, Labels: true})
	return renderHeader(t, snap, width) + "\n\n" + plot
}
