package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/squorange/focus-tools-sub000/internal/model"
	"github.com/squorange/focus-tools-sub000/internal/mutate"
)

func newSubtasksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "subtasks",
		Aliases: []string{"subtask", "sub"},
		Short:   "Add, complete and remove subtasks",
	}
	cmd.AddCommand(newSubtasksAddCmd(app))
	cmd.AddCommand(newSubtasksSetCompletedCmd(app, "complete", true))
	cmd.AddCommand(newSubtasksSetCompletedCmd(app, "uncomplete", false))
	cmd.AddCommand(newSubtasksDeleteCmd(app))
	return cmd
}

func newSubtasksAddCmd(app *App) *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "add <task-id>",
		Short: "Add a subtask; its angle is fixed at the largest free gap",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.openStore()
			if err != nil {
				return writeErr(cmd, err)
			}
			id, err := s.NextID(cmd.Context(), "sub")
			if err != nil {
				return writeErr(cmd, err)
			}
			g, now := app.geom, app.now()
			return applyAndWrite(cmd, app, strings.TrimSpace(args[0]), func(t model.Task) (mutate.Result, error) {
				return mutate.AddSubtask(t, g, id, title, now)
			})
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "Subtask title (required)")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newSubtasksSetCompletedCmd(app *App, use string, completed bool) *cobra.Command {
	short := "Mark a subtask complete (its radius freezes)"
	if !completed {
		short = "Reopen a completed subtask"
	}
	return &cobra.Command{
		Use:   use + " <task-id> <subtask-id>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, now := app.geom, app.now()
			subID := strings.TrimSpace(args[1])
			return applyAndWrite(cmd, app, strings.TrimSpace(args[0]), func(t model.Task) (mutate.Result, error) {
				return mutate.SetSubtaskCompleted(t, g, subID, completed, now)
			})
		},
	}
}

func newSubtasksDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <task-id> <subtask-id>",
		Short: "Delete a subtask",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, now := app.geom, app.now()
			subID := strings.TrimSpace(args[1])
			return applyAndWrite(cmd, app, strings.TrimSpace(args[0]), func(t model.Task) (mutate.Result, error) {
				return mutate.DeleteSubtask(t, g, subID, now)
			})
		},
	}
}
