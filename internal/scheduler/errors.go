package scheduler

import "errors"

var (
	// ErrAlreadyRunning is returned by Start while a task is registered.
	ErrAlreadyRunning = errors.New("scheduler: already running")

	// ErrClosed is returned by Start after Close.
	ErrClosed = errors.New("scheduler: closed")
)
