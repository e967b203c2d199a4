package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/squorange/focus-tools-sub000/internal/mutate"
	"github.com/squorange/focus-tools-sub000/internal/publish"
)

func newPublishCmd(app *App) *cobra.Command {
	var to string
	var overwrite, layout, stdout bool

	cmd := &cobra.Command{
		Use:   "publish <task-id>",
		Short: "Export a task as a markdown checklist",
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
			snap := mutate.Layout(*t, app.geom)

			if stdout {
				_, err := fmt.Fprint(cmd.OutOrStdout(), publish.RenderTaskMarkdown(*t, snap, publish.RenderOptions{IncludeLayout: layout}))
				return err
			}
			res, err := publish.WriteTask(*t, snap, to, publish.WriteOptions{IncludeLayout: layout, Overwrite: overwrite})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": res})
		},
	}
	cmd.Flags().StringVar(&to, "to", "", "Output directory (writes <to>/tasks/<task-id>.md)")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing file")
	cmd.Flags().BoolVar(&layout, "layout", false, "Include angle and radius per subtask")
	cmd.Flags().BoolVar(&stdout, "stdout", false, "Print markdown instead of writing a file")
	return cmd
}
