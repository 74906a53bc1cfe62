package algorithm

import (
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// DefaultPollInterval is the granularity at which CallBounded re-checks
// cancellation and deadlines while a generator call is in flight.
const DefaultPollInterval = 50 * time.Millisecond

// State is the lifecycle state of a run.
type State int32

const (
	// Created is the state of a run that has not started yet.
	Created State = iota
	// Active is the state of a run that is producing events.
	Active
	// Terminated is the state of a run that exhausted its search space or budget.
	Terminated
	// Canceled is the state of a run stopped by Cancel, its context, a timeout or an error.
	Canceled
)

// String returns the upper-case name of the state.
func (s State) String() string {
	switch s {
	case Created:
		return "CREATED"
	case Active:
		return "ACTIVE"
	case Terminated:
		return "TERMINATED"
	case Canceled:
		return "CANCELED"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// Done reports whether s is terminal.
func (s State) Done() bool { return s == Terminated || s == Canceled }

// Option configures a run via functional arguments.
// Invalid options are recorded and surfaced as ErrOptionViolation by the
// first NextEvent call.
type Option func(*Options)

// Options holds the parameters shared by every engine.
type Options struct {
	// Logger receives lifecycle and diagnostic records. Defaults to slog.Default().
	Logger *slog.Logger

	// TracerProvider creates the run and expansion spans. Defaults to the
	// global OpenTelemetry provider.
	TracerProvider trace.TracerProvider

	// Registry tracks the run while it is active. Defaults to DefaultRegistry;
	// nil disables registration.
	Registry *Registry

	// Observers are notified of every delivered event, in order.
	Observers []Observer

	// Timeout bounds the whole run, measured from activation. Zero disables it.
	Timeout time.Duration

	// GeneratorTimeout bounds a single root or successor generation call.
	// Zero disables it.
	GeneratorTimeout time.Duration

	// PollInterval is the cancellation check granularity inside generator calls.
	PollInterval time.Duration

	// MaxExpansions caps the number of node expansions. Zero means unlimited.
	MaxExpansions int

	// MaxDepth, if non-negative, stops generation below that depth: nodes at
	// depth MaxDepth are expanded as if they had no successors. A depth of 0
	// only visits the roots. Default is -1 (no limit).
	MaxDepth int

	// StrictInvariants makes invariant violations panic instead of returning
	// ErrInvariantViolation. Intended for tests and debugging.
	StrictInvariants bool

	// GraphSearch folds duplicate states instead of treating them as an
	// invariant violation: a successor whose state is already in the tree is
	// not added again.
	GraphSearch bool

	err error
}

// DefaultOptions returns Options with:
//   - slog.Default() logger and the global tracer provider
//   - DefaultRegistry
//   - no timeouts, DefaultPollInterval, unlimited expansions and depth
//   - tree search with non-strict invariants
func DefaultOptions() Options {
	return Options{
		Logger:         slog.Default(),
		TracerProvider: otel.GetTracerProvider(),
		Registry:       DefaultRegistry,
		PollInterval:   DefaultPollInterval,
		MaxDepth:       -1,
	}
}

// WithLogger sets the logger. A nil logger has no effect.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithTracerProvider sets the tracer provider. A nil provider has no effect.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *Options) {
		if tp != nil {
			o.TracerProvider = tp
		}
	}
}

// WithRegistry sets the registry; nil disables registration.
func WithRegistry(r *Registry) Option {
	return func(o *Options) { o.Registry = r }
}

// WithObserver appends an observer. A nil observer has no effect.
func WithObserver(obs Observer) Option {
	return func(o *Options) {
		if obs != nil {
			o.Observers = append(o.Observers, obs)
		}
	}
}

// WithTimeout bounds the whole run.
//
//	d > 0: run deadline
//	d == 0: no deadline
//	d < 0: invalid option → ErrOptionViolation
func WithTimeout(d time.Duration) Option {
	return func(o *Options) {
		if d < 0 {
			o.err = fmt.Errorf("%w: Timeout cannot be negative (%s)", ErrOptionViolation, d)
			return
		}
		o.Timeout = d
	}
}

// WithGeneratorTimeout bounds every generator call; negative values are invalid.
func WithGeneratorTimeout(d time.Duration) Option {
	return func(o *Options) {
		if d < 0 {
			o.err = fmt.Errorf("%w: GeneratorTimeout cannot be negative (%s)", ErrOptionViolation, d)
			return
		}
		o.GeneratorTimeout = d
	}
}

// WithPollInterval sets the cancellation check granularity; it must be positive.
func WithPollInterval(d time.Duration) Option {
	return func(o *Options) {
		if d <= 0 {
			o.err = fmt.Errorf("%w: PollInterval must be positive (%s)", ErrOptionViolation, d)
			return
		}
		o.PollInterval = d
	}
}

// WithMaxExpansions caps the number of expansions; negative values are invalid.
func WithMaxExpansions(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: MaxExpansions cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxExpansions = n
	}
}

// WithMaxDepth limits the depth of generated nodes; -1 removes the limit.
func WithMaxDepth(limit int) Option {
	return func(o *Options) {
		if limit < -1 {
			o.err = fmt.Errorf("%w: MaxDepth must be >= -1 (%d)", ErrOptionViolation, limit)
			return
		}
		o.MaxDepth = limit
	}
}

// DepthExhausted reports whether a node at depth may not generate successors.
func (o Options) DepthExhausted(depth int) bool {
	return o.MaxDepth >= 0 && depth >= o.MaxDepth
}

// WithStrictInvariants makes invariant violations panic.
func WithStrictInvariants(strict bool) Option {
	return func(o *Options) { o.StrictInvariants = strict }
}

// WithGraphSearch enables duplicate folding.
func WithGraphSearch() Option {
	return func(o *Options) { o.GraphSearch = true }
}
