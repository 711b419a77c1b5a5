package twocaptcha

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// RunningTask tracks one created task through its lifecycle. Each handle
// owns its own state and may be waited on concurrently with any number of
// other handles; a handle itself is meant for a single goroutine.
type RunningTask struct {
	client *Client
	task   Task
	err    error // terminal service error, latched
}

// ID returns the server-assigned task id.
func (rt *RunningTask) ID() int64 { return rt.task.ID }

// Task returns a snapshot of the last known task state.
func (rt *RunningTask) Task() Task { return rt.task }

// IsReady reports whether the task is solved.
func (rt *RunningTask) IsReady() bool { return rt.task.IsReady() }

// IsProcessing reports whether the task is still being solved.
func (rt *RunningTask) IsProcessing() bool { return rt.err == nil && rt.task.IsProcessing() }

// Refresh issues one status request and updates the local state. A
// *ServiceError ends the task's lifecycle: it is latched and returned by
// every later call without touching the network. Transport errors
// propagate without being latched, so polling can resume.
func (rt *RunningTask) Refresh(ctx context.Context) error {
	if rt.err != nil {
		return rt.err
	}
	if rt.task.IsReady() {
		return nil
	}

	task, err := rt.client.GetTaskResult(ctx, rt.task.ID)
	if err != nil {
		var se *ServiceError
		if errors.As(err, &se) {
			rt.err = err
		}
		return err
	}
	rt.task = *task
	return nil
}

// WaitUntilDone polls until the task is ready or failed. It polls first
// and sleeps only between polls, so a task that is already solved returns
// without waiting. Zero pollInterval or timeout fall back to the client
// configuration. When the deadline passes while still processing it
// returns an error wrapping ErrTimeout; the handle stays valid.
func (rt *RunningTask) WaitUntilDone(ctx context.Context, pollInterval, timeout time.Duration) (*Task, error) {
	if pollInterval <= 0 {
		pollInterval = rt.client.cfg.PollInterval
	}
	if timeout <= 0 {
		timeout = rt.client.cfg.SolveTimeout
	}
	deadline := time.Now().Add(timeout)

	for {
		if err := rt.Refresh(ctx); err != nil {
			return nil, err
		}
		if rt.task.IsReady() {
			slog.Info("captcha task solved", slog.Int64("task_id", rt.task.ID))
			task := rt.task
			return &task, nil
		}
		slog.Debug("captcha task still processing", slog.Int64("task_id", rt.task.ID))

		if time.Now().After(deadline) {
			return nil, fmt.Errorf("%w after %s", ErrTimeout, timeout)
		}
		select {
		case <-time.After(pollInterval):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}
