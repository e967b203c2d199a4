package publish

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/squorange/focus-tools-sub000/internal/model"
	"github.com/squorange/focus-tools-sub000/internal/orbit"
)

type WriteOptions struct {
	IncludeLayout bool
	Overwrite     bool
}

type WriteResult struct {
	Written []string `json:"written"`
}

// WriteTask writes <toDir>/tasks/<task-id>.md.
func WriteTask(t model.Task, snap orbit.Snapshot, toDir string, opt WriteOptions) (WriteResult, error) {
	if strings.TrimSpace(t.ID) == "" {
		return WriteResult{}, errors.New("missing task id")
	}
	toDir = strings.TrimSpace(toDir)
	if toDir == "" {
		return WriteResult{}, errors.New("missing --to")
	}
	toDir = filepath.Clean(toDir)

	md := RenderTaskMarkdown(t, snap, RenderOptions{IncludeLayout: opt.IncludeLayout})

	outDir := filepath.Join(toDir, "tasks")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return WriteResult{}, err
	}
	outPath := filepath.Join(outDir, t.ID+".md")
	if err := writeFile(outPath, []byte(md), opt.Overwrite); err != nil {
		return WriteResult{}, err
	}
	return WriteResult{Written: []string{outPath}}, nil
}

func writeFile(path string, b []byte, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return errors.New("file exists (use --overwrite): " + path)
		}
	}
	return os.WriteFile(path, b, 0o644)
}
