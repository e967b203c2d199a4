package cli

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/squorange/focus-tools-sub000/internal/config"
	"github.com/squorange/focus-tools-sub000/internal/format"
	"github.com/squorange/focus-tools-sub000/internal/logging"
	"github.com/squorange/focus-tools-sub000/internal/orbit"
	"github.com/squorange/focus-tools-sub000/internal/store"
)

type App struct {
	Dir        string
	PrettyJSON bool
	Format     string
	LogLevel   string

	geom orbit.Geometry
	log  *slog.Logger
	now  func() time.Time
}

func NewRootCmd() *cobra.Command {
	app := &App{
		geom: orbit.DefaultGeometry(),
		log:  logging.Discard(),
		now:  func() time.Time { return time.Now().UTC() },
	}

	cmd := &cobra.Command{
		Use:          "focus",
		Short:        "Orbital subtask layout with a priority belt",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Create a task and give it some subtasks
  focus tasks create --title "Write report"
  focus subtasks add task-ab12 --title "Outline"

  # Put a belt around what matters now, then tighten it
  focus belt create task-ab12
  focus belt move task-ab12 inward

  # Look at it
  focus orbit task-ab12
  focus tui task-ab12

  # Direct task lookup (shortcut for: focus tasks show <task-id>)
  focus task-ab12
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.configure(cmd)
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", "", "Path to store dir (default: nearest .focus/ from the working directory)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", "json", "Output format (json|yaml)")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", "warn", "Log level on stderr (debug|info|warn|error)")

	cmd.AddCommand(newInitCmd(app))
	cmd.AddCommand(newTasksCmd(app))
	cmd.AddCommand(newSubtasksCmd(app))
	cmd.AddCommand(newBeltCmd(app))
	cmd.AddCommand(newBackfillCmd(app))
	cmd.AddCommand(newOrbitCmd(app))
	cmd.AddCommand(newTUICmd(app))
	cmd.AddCommand(newEventsCmd(app))
	cmd.AddCommand(newPublishCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

// configure resolves settings (flags > FOCUS_* env > config files >
// defaults) and builds the logger before any subcommand runs.
func (app *App) configure(cmd *cobra.Command) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return writeErr(cmd, fmt.Errorf("config: %w", err))
	}
	switch cfg.Format {
	case "json", "yaml", "yml":
	default:
		return writeErr(cmd, fmt.Errorf("unknown format: %s (expected json|yaml)", cfg.Format))
	}
	logger, err := logging.New(cmd.ErrOrStderr(), cfg.LogLevel)
	if err != nil {
		return writeErr(cmd, err)
	}

	app.Dir = cfg.Dir
	app.Format = cfg.Format
	app.PrettyJSON = cfg.Pretty
	app.LogLevel = cfg.LogLevel
	app.geom = cfg.Geometry()
	app.log = logger
	return nil
}

func (app *App) openStore() (store.Store, error) {
	dir := strings.TrimSpace(app.Dir)
	if dir == "" {
		d, err := store.DefaultDir()
		if err != nil {
			return store.Store{}, err
		}
		dir = d
		app.Dir = dir
	}
	s := store.Store{Dir: dir, Log: app.log}
	if err := s.Ensure(); err != nil {
		return store.Store{}, err
	}
	return s, nil
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
