package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/squorange/focus-tools-sub000/internal/model"
)

const dirName = ".focus"

// ErrVersionConflict is returned by SaveTask when the stored task changed
// since it was loaded. Callers reload, reapply their mutation and retry.
var ErrVersionConflict = errors.New("task was modified concurrently")

type Store struct {
	Dir string
	// Log is optional; nil discards.
	Log *slog.Logger
}

func DiscoverDir(start string) (string, bool) {
	dir := start
	for {
		candidate := filepath.Join(dir, dirName)
		if st, err := os.Stat(candidate); err == nil && st.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func DefaultDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if found, ok := DiscoverDir(cwd); ok {
		return found, nil
	}
	return filepath.Join(cwd, dirName), nil
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

// LoadTask returns the task with id and its subtasks in stored order.
func (s Store) LoadTask(ctx context.Context, id string) (*model.Task, bool, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, false, err
	}
	defer db.Close()

	return loadTask(ctx, db, strings.TrimSpace(id))
}

func (s Store) ListTasks(ctx context.Context) ([]model.Task, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	ids, err := readStrings(ctx, db, `SELECT id FROM tasks ORDER BY created_at_unixms ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	out := make([]model.Task, 0, len(ids))
	for _, id := range ids {
		t, ok, err := loadTask(ctx, db, id)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, *t)
		}
	}
	return out, nil
}

// SaveTask writes the task and replaces its subtasks.
//
// The stored version must match t.Version (0 for a task that was never
// saved). On success both the row and t.Version are incremented.
func (s Store) SaveTask(ctx context.Context, t *model.Task) error {
	return s.saveTask(ctx, t, nil)
}

// CreateTask saves a new task and its task.create event together.
func (s Store) CreateTask(ctx context.Context, t *model.Task) error {
	if t == nil {
		return errors.New("nil task")
	}
	ev, err := newPendingEvent("task.create", t.ID, map[string]any{"title": t.Title})
	if err != nil {
		return err
	}
	return s.saveTask(ctx, t, &ev)
}

// saveTask writes t and, when ev is set, its event in one transaction.
func (s Store) saveTask(ctx context.Context, t *model.Task, ev *pendingEvent) error {
	if t == nil {
		return errors.New("nil task")
	}
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("task id is required")
	}
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var stored int64
	err = tx.QueryRowContext(ctx, `SELECT version FROM tasks WHERE id = ?`, t.ID).Scan(&stored)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		stored = 0
	case err != nil:
		return err
	}
	if stored != t.Version {
		return fmt.Errorf("%w: %s (have version %d, stored %d)", ErrVersionConflict, t.ID, t.Version, stored)
	}

	next := *t
	next.Version = stored + 1
	subtasks := next.Subtasks
	next.Subtasks = nil

	raw, err := json.Marshal(next)
	if err != nil {
		return err
	}
	nowMs := time.Now().UTC().UnixMilli()
	if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO tasks(
		id, title, version, belt_enabled, json, created_at_unixms, updated_at_unixms
	) VALUES(?, ?, ?, ?, ?, ?, ?)`,
		next.ID, next.Title, next.Version, boolToInt(next.BeltEnabled), string(raw),
		next.CreatedAt.UTC().UnixMilli(), nowMs,
	); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM subtasks WHERE task_id = ?`, next.ID); err != nil {
		return err
	}
	for i, st := range subtasks {
		raw, err := json.Marshal(st)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO subtasks(id, task_id, position, completed, json, updated_at_unixms) VALUES(?, ?, ?, ?, ?, ?)`,
			st.ID, next.ID, i, boolToInt(st.Completed), string(raw), nowMs); err != nil {
			return err
		}
	}

	if ev != nil {
		if err := insertEventTx(ctx, tx, *ev); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	t.Version = next.Version
	return nil
}

func (s Store) DeleteTask(ctx context.Context, id string) (bool, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return false, err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM subtasks WHERE task_id = ?`, id); err != nil {
		return false, err
	}
	return n > 0, tx.Commit()
}

func loadTask(ctx context.Context, db *sql.DB, id string) (*model.Task, bool, error) {
	var js string
	err := db.QueryRowContext(ctx, `SELECT json FROM tasks WHERE id = ?`, id).Scan(&js)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var t model.Task
	if err := json.Unmarshal([]byte(js), &t); err != nil {
		return nil, false, fmt.Errorf("decode task %s: %w", id, err)
	}

	subs, err := readJSONRows[model.Subtask](ctx, db, `SELECT json FROM subtasks WHERE task_id = ? ORDER BY position ASC`, id)
	if err != nil {
		return nil, false, err
	}
	if subs == nil {
		subs = []model.Subtask{}
	}
	t.Subtasks = subs
	return &t, true, nil
}

func readJSONRows[T any](ctx context.Context, db *sql.DB, query string, args ...any) ([]T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		var js string
		if err := rows.Scan(&js); err != nil {
			return nil, err
		}
		var v T
		if err := json.Unmarshal([]byte(js), &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func readStrings(ctx context.Context, db *sql.DB, query string, args ...any) ([]string, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
