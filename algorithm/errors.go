package algorithm

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors of the search error taxonomy.
var (
	// ErrEvaluationFailed marks a local scoring failure; the run continues.
	ErrEvaluationFailed = errors.New("algorithm: evaluation failed")

	// ErrGenerationFailed marks a failed root or successor generation.
	ErrGenerationFailed = errors.New("algorithm: generation failed")

	// ErrInterrupted marks a run stopped by its caller's context.
	ErrInterrupted = errors.New("algorithm: interrupted")

	// ErrTimeout marks a run or generator deadline that passed.
	ErrTimeout = errors.New("algorithm: timeout exceeded")

	// ErrCanceled marks a run stopped by Cancel.
	ErrCanceled = errors.New("algorithm: canceled")

	// ErrInvalidPathInjection marks an externally supplied path that is not a
	// valid successor chain.
	ErrInvalidPathInjection = errors.New("algorithm: invalid path injection")

	// ErrInvariantViolation marks a broken engine invariant.
	ErrInvariantViolation = errors.New("algorithm: invariant violation")

	// ErrNoMoreEvents is returned by NextEvent after a terminated run delivered
	// all of its events.
	ErrNoMoreEvents = errors.New("algorithm: no more events")

	// ErrNoSolution is returned by Call when a run terminated without solutions.
	ErrNoSolution = errors.New("algorithm: no solution found")

	// ErrOptionViolation is returned when an invalid Option was supplied.
	ErrOptionViolation = errors.New("algorithm: invalid option supplied")

	// ErrInvalidState is returned by operations not allowed in the current state.
	ErrInvalidState = errors.New("algorithm: operation not allowed in current state")

	// ErrRunNotFound is returned by Registry lookups for unknown run IDs.
	ErrRunNotFound = errors.New("algorithm: run not registered")
)

// EvalError reports an evaluator failure for a node.
type EvalError struct {
	Node any
	Err  error
}

// Error implements error.
func (e *EvalError) Error() string {
	return fmt.Sprintf("algorithm: evaluation of %v failed: %v", e.Node, e.Err)
}

// Unwrap exposes both the taxonomy sentinel and the evaluator's error.
func (e *EvalError) Unwrap() []error { return []error{ErrEvaluationFailed, e.Err} }

// InvariantError reports a broken invariant.
type InvariantError struct {
	Msg string
}

// Error implements error.
func (e *InvariantError) Error() string { return "algorithm: invariant violation: " + e.Msg }

// Unwrap returns ErrInvariantViolation.
func (e *InvariantError) Unwrap() error { return ErrInvariantViolation }

// IsAbort reports whether err must stop a run rather than being handled
// locally: cancellation, interruption, timeouts and context errors.
func IsAbort(err error) bool {
	return errors.Is(err, ErrCanceled) ||
		errors.Is(err, ErrInterrupted) ||
		errors.Is(err, ErrTimeout) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

// GenerationError classifies err returned by a root or successor generator.
// Abort errors are normalized to the taxonomy; anything else is wrapped in
// ErrGenerationFailed with what as context.
func GenerationError(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrCanceled), errors.Is(err, ErrInterrupted), errors.Is(err, ErrTimeout):
		return err
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %s: %w", ErrTimeout, what, err)
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("%w: %s: %w", ErrInterrupted, what, err)
	default:
		return fmt.Errorf("%w: %s: %w", ErrGenerationFailed, what, err)
	}
}
