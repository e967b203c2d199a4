package cli

import (
	"github.com/spf13/cobra"

	"github.com/squorange/focus-tools-sub000/internal/model"
	"github.com/squorange/focus-tools-sub000/internal/mutate"
)

// applyAndWrite runs one mutation through the store (load, mutate, save,
// log event) and writes the resulting task view.
func applyAndWrite(cmd *cobra.Command, app *App, taskID string, fn func(model.Task) (mutate.Result, error)) error {
	s, err := app.openStore()
	if err != nil {
		return writeErr(cmd, err)
	}
	res, err := s.Apply(cmd.Context(), taskID, fn)
	if err != nil {
		return writeErr(cmd, explain(err))
	}
	view := newMutationView(res)
	if res.EventType == "subtask.add" {
		last := res.Task.Subtasks[len(res.Task.Subtasks)-1]
		view.Subtask = &last
	}
	return writeOut(cmd, app, map[string]any{"data": view})
}
