package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/squorange/focus-tools-sub000/internal/model"
	"github.com/squorange/focus-tools-sub000/internal/mutate"
)

type backfillRow struct {
	ID      string `json:"id"`
	Changed bool   `json:"changed"`
	Filled  int    `json:"filled"`
}

func newBackfillCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "backfill [task-id]",
		Short: "Assign angles and radii to subtasks stored without them",
		Long: strings.TrimSpace(`
Subtasks created before orbit layout existed have no angle or radius.
Backfill spreads them evenly around the circle from the top and sets each
radius from its active position. Already placed subtasks are left alone.

Without a task id every task in the workspace is backfilled.
`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.openStore()
			if err != nil {
				return writeErr(cmd, err)
			}
			ctx := cmd.Context()

			var ids []string
			if len(args) == 1 {
				ids = []string{strings.TrimSpace(args[0])}
			} else {
				tasks, err := s.ListTasks(ctx)
				if err != nil {
					return writeErr(cmd, err)
				}
				for _, t := range tasks {
					ids = append(ids, t.ID)
				}
			}

			g, now := app.geom, app.now()
			out := make([]backfillRow, 0, len(ids))
			for _, id := range ids {
				res, err := s.Apply(ctx, id, func(t model.Task) (mutate.Result, error) {
					return mutate.Backfill(t, g, now)
				})
				if err != nil {
					return writeErr(cmd, explain(err))
				}
				row := backfillRow{ID: id, Changed: res.Changed}
				if n, ok := res.EventPayload["filled"].(int); ok {
					row.Filled = n
				}
				out = append(out, row)
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}
}
