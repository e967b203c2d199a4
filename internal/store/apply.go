package store

import (
	"context"
	"errors"
	"log/slog"

	"github.com/squorange/focus-tools-sub000/internal/logging"
	"github.com/squorange/focus-tools-sub000/internal/model"
	"github.com/squorange/focus-tools-sub000/internal/mutate"
)

// applyAttempts is one try plus one retry after a version conflict.
const applyAttempts = 2

// Apply loads a task, runs fn against it and saves the result together with
// the mutation's event in one transaction. fn must not have side effects: after a version
// conflict the task is reloaded and fn runs again on the fresh copy.
//
// An unchanged result is returned without saving or logging an event.
func (s Store) Apply(ctx context.Context, taskID string, fn func(model.Task) (mutate.Result, error)) (mutate.Result, error) {
	var err error
	for attempt := 1; attempt <= applyAttempts; attempt++ {
		var res mutate.Result
		res, err = s.applyOnce(ctx, taskID, fn)
		if !errors.Is(err, ErrVersionConflict) {
			return res, err
		}
		s.logger().Warn("version conflict", "task", taskID, "attempt", attempt)
	}
	return mutate.Result{}, err
}

func (s Store) applyOnce(ctx context.Context, taskID string, fn func(model.Task) (mutate.Result, error)) (mutate.Result, error) {
	t, ok, err := s.LoadTask(ctx, taskID)
	if err != nil {
		return mutate.Result{}, err
	}
	if !ok {
		return mutate.Result{}, mutate.NotFoundError{Kind: "task", ID: taskID}
	}

	res, err := fn(*t)
	if err != nil {
		return mutate.Result{}, err
	}
	if !res.Changed {
		return res, nil
	}
	var ev *pendingEvent
	if res.EventType != "" {
		pe, err := newPendingEvent(res.EventType, taskID, res.EventPayload)
		if err != nil {
			return mutate.Result{}, err
		}
		ev = &pe
	}
	if err := s.saveTask(ctx, &res.Task, ev); err != nil {
		return mutate.Result{}, err
	}
	s.logger().Debug("task updated", "task", taskID, "event", res.EventType, "ring", res.Snapshot.Belt.Ring, "version", res.Task.Version)
	return res, nil
}

func (s Store) logger() *slog.Logger {
	if s.Log != nil {
		return s.Log
	}
	return logging.Discard()
}
