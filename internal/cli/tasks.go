package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/squorange/focus-tools-sub000/internal/mutate"
)

func newTasksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tasks",
		Aliases: []string{"task"},
		Short:   "Create and inspect tasks",
	}
	cmd.AddCommand(newTasksCreateCmd(app))
	cmd.AddCommand(newTasksListCmd(app))
	cmd.AddCommand(newTasksShowCmd(app))
	cmd.AddCommand(newTasksDeleteCmd(app))
	return cmd
}

func newTasksCreateCmd(app *App) *cobra.Command {
	var title, description string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a task",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.openStore()
			if err != nil {
				return writeErr(cmd, err)
			}
			ctx := cmd.Context()
			id, err := s.NextID(ctx, "task")
			if err != nil {
				return writeErr(cmd, err)
			}
			t, err := mutate.NewTask(id, title, description, app.now())
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.CreateTask(ctx, &t); err != nil {
				return writeErr(cmd, err)
			}
			app.log.Debug("task created", "task", t.ID)
			return writeOut(cmd, app, map[string]any{"data": newTaskView(t, mutate.Layout(t, app.geom))})
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "Task title (required)")
	cmd.Flags().StringVar(&description, "description", "", "Task description (markdown)")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newTasksListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tasks (oldest first)",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.openStore()
			if err != nil {
				return writeErr(cmd, err)
			}
			tasks, err := s.ListTasks(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			out := make([]taskSummary, 0, len(tasks))
			for _, t := range tasks {
				out = append(out, newTaskSummary(t, mutate.Layout(t, app.geom)))
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}
}

func newTasksShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <task-id>",
		Short: "Show a task with its belt and orbit layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.openStore()
			if err != nil {
				return writeErr(cmd, err)
			}
			id := strings.TrimSpace(args[0])
			t, ok, err := s.LoadTask(cmd.Context(), id)
			if err != nil {
				return writeErr(cmd, err)
			}
			if !ok {
				return writeErr(cmd, errNotFound("task", id))
			}
			return writeOut(cmd, app, map[string]any{"data": newTaskView(*t, mutate.Layout(*t, app.geom))})
		},
	}
}

func newTasksDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <task-id>",
		Short: "Delete a task and its subtasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.openStore()
			if err != nil {
				return writeErr(cmd, err)
			}
			ctx := cmd.Context()
			id := strings.TrimSpace(args[0])
			ok, err := s.DeleteTask(ctx, id)
			if err != nil {
				return writeErr(cmd, err)
			}
			if !ok {
				return writeErr(cmd, errNotFound("task", id))
			}
			if err := s.AppendEvent(ctx, "task.delete", id, map[string]any{}); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"id": id, "deleted": true}})
		},
	}
}
