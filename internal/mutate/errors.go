package mutate

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyTitle       = errors.New("title is required")
	ErrBeltExists       = errors.New("belt already enabled")
	ErrBeltNotEnabled   = errors.New("belt not enabled")
	ErrNoActiveSubtasks = errors.New("no active subtasks")
)

type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}
