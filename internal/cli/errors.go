package cli

import (
	"errors"
	"fmt"

	"github.com/squorange/focus-tools-sub000/internal/mutate"
	"github.com/squorange/focus-tools-sub000/internal/store"
)

func errNotFound(kind, id string) error {
	return mutate.NotFoundError{Kind: kind, ID: id}
}

// explain adds a hint to errors a user can act on.
func explain(err error) error {
	switch {
	case errors.Is(err, mutate.ErrBeltExists):
		return fmt.Errorf("%w (use `focus belt move` or `focus belt remove`)", err)
	case errors.Is(err, mutate.ErrBeltNotEnabled):
		return fmt.Errorf("%w (use `focus belt create` first)", err)
	case errors.Is(err, mutate.ErrNoActiveSubtasks):
		return fmt.Errorf("%w (add a subtask or reopen one)", err)
	case errors.Is(err, store.ErrVersionConflict):
		return fmt.Errorf("%w; try again", err)
	}
	return err
}
