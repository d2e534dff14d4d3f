package service

import "errors"

var (
	// ErrValidation marks malformed input; the caller can correct and retry.
	ErrValidation = errors.New("validation failed")

	// ErrAlreadyStarted guards the start operation: startedAt is set at most
	// once and never changes afterward.
	ErrAlreadyStarted = errors.New("project already started")

	// ErrNotStarted blocks posting to a project whose challenge clock has
	// not been started.
	ErrNotStarted = errors.New("project not started")

	// ErrGoalReached blocks posting once the current streak has reached the
	// target length. Extending the project reopens posting.
	ErrGoalReached = errors.New("challenge goal reached")

	// ErrConsistency reports that the aggregate counters disagree with the
	// progress log. The stats row is frozen until reconciled.
	ErrConsistency = errors.New("streak stats disagree with progress log")
)
