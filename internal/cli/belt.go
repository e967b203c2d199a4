package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/squorange/focus-tools-sub000/internal/model"
	"github.com/squorange/focus-tools-sub000/internal/mutate"
	"github.com/squorange/focus-tools-sub000/internal/orbit"
)

func newBeltCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "belt",
		Short: "Manage the priority belt of a task",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "create <task-id>",
		Short: "Wrap the belt around every active subtask",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, now := app.geom, app.now()
			return applyAndWrite(cmd, app, strings.TrimSpace(args[0]), func(t model.Task) (mutate.Result, error) {
				return mutate.CreateBelt(t, g, now)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <task-id>",
		Short: "Remove the belt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, now := app.geom, app.now()
			return applyAndWrite(cmd, app, strings.TrimSpace(args[0]), func(t model.Task) (mutate.Result, error) {
				return mutate.RemoveBelt(t, g, now)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:       "move <task-id> <inward|outward>",
		Short:     "Move the belt one ring and recapture its targets",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"inward", "outward"},
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := orbit.ParseDirection(args[1])
			if err != nil {
				return writeErr(cmd, err)
			}
			g, now := app.geom, app.now()
			return applyAndWrite(cmd, app, strings.TrimSpace(args[0]), func(t model.Task) (mutate.Result, error) {
				return mutate.MoveBelt(t, g, dir, now)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show <task-id>",
		Short: "Show where the belt is drawn",
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
			return writeOut(cmd, app, map[string]any{"data": newBeltView(*t, mutate.Layout(*t, app.geom))})
		},
	})

	return cmd
}
