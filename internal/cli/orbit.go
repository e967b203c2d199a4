package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/squorange/focus-tools-sub000/internal/mutate"
	"github.com/squorange/focus-tools-sub000/internal/tui"
)

func newOrbitCmd(app *App) *cobra.Command {
	var width, height int
	var noColor bool

	cmd := &cobra.Command{
		Use:   "orbit <task-id>",
		Short: "Draw a task's orbit layout (static)",
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
			if noColor {
				tui.PlainOutput()
			}
			snap := mutate.Layout(*t, app.geom)
			_, err = fmt.Fprintln(cmd.OutOrStdout(), tui.RenderStatic(*t, snap, width, height))
			return err
		},
	}
	cmd.Flags().IntVar(&width, "width", 72, "Canvas width in columns")
	cmd.Flags().IntVar(&height, "height", 25, "Canvas height in rows")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colors")
	return cmd
}

func newTUICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tui <task-id>",
		Short: "Interactive orbit view for a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.openStore()
			if err != nil {
				return writeErr(cmd, err)
			}
			id := strings.TrimSpace(args[0])
			if _, ok, err := s.LoadTask(cmd.Context(), id); err != nil {
				return writeErr(cmd, err)
			} else if !ok {
				return writeErr(cmd, errNotFound("task", id))
			}
			return tui.Run(cmd.Context(), tui.Options{Store: s, Geometry: app.geom, TaskID: id})
		},
	}
}
