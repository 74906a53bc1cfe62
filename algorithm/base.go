package algorithm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// tracerName is the instrumentation scope of every span created by a run.
const tracerName = "github.com/katalvlaran/lvsearch/algorithm"

// StepFunc performs one unit of engine work, enqueuing the events it produces
// through Base.Emit. Any returned error stops the run.
type StepFunc func(ctx context.Context) error

// EventSource is implemented by every engine.
type EventSource interface {
	NextEvent(ctx context.Context) (Event, error)
}

// Base carries the lifecycle, event queue, cancellation token and
// observability plumbing of one run. Engines embed *Base and drive it with Next.
type Base struct {
	id     uuid.UUID
	name   string
	opts   Options
	logger *slog.Logger
	tracer trace.Tracer

	state      atomic.Int32
	cancelCh   chan struct{}
	cancelOnce sync.Once

	mu    sync.Mutex
	cause error

	queue       []Event
	seq         int
	expansions  int
	solutions   int
	activatedAt time.Time
	deadline    time.Time
	runCtx      context.Context
	span        trace.Span
	finalized   bool
}

// NewBase returns a run in state Created for the engine called name.
func NewBase(name string, opts ...Option) *Base {
	o := DefaultOptions()
	var fn Option
	for _, fn = range opts {
		fn(&o)
	}

	id := uuid.New()
	b := &Base{
		id:       id,
		name:     name,
		opts:     o,
		cancelCh: make(chan struct{}),
		runCtx:   context.Background(),
	}
	b.logger = o.Logger.With(slog.String("algorithm", name), slog.String("run_id", id.String()))
	b.tracer = o.TracerProvider.Tracer(tracerName)

	return b
}

// ID returns the run identifier.
func (b *Base) ID() uuid.UUID { return b.id }

// Name returns the engine name.
func (b *Base) Name() string { return b.name }

// State returns the current lifecycle state. Safe for concurrent use.
func (b *Base) State() State { return State(b.state.Load()) }

// Logger returns the run-scoped logger.
func (b *Base) Logger() *slog.Logger { return b.logger }

// Options returns the effective options.
func (b *Base) Options() Options { return b.opts }

// Expansions returns the number of recorded expansions.
func (b *Base) Expansions() int { return b.expansions }

// Cause returns the error that stopped a canceled run, or nil.
func (b *Base) Cause() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.cause
}

// Cancel stops the run. It is idempotent and safe to call from any goroutine.
// The next NextEvent call returns ErrCanceled; a generator call in flight is
// abandoned within one poll interval. Cancel has no effect on a run that
// already terminated.
func (b *Base) Cancel() {
	b.cancelOnce.Do(func() {
		b.setCause(ErrCanceled)
		close(b.cancelCh)
		for {
			s := b.state.Load()
			if State(s).Done() {
				return
			}
			if b.state.CompareAndSwap(s, int32(Canceled)) {
				return
			}
		}
	})
}

// Next returns the next event of the run, calling step whenever the event
// queue is empty. It is the shared implementation of every engine's NextEvent.
func (b *Base) Next(ctx context.Context, step StepFunc) (Event, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	for {
		// 1. Terminal states: drain or report.
		switch b.State() {
		case Canceled:
			return nil, b.finalizeCancel()
		case Terminated:
			if ev, ok := b.dequeue(); ok {
				b.deliver(ev)
				return ev, nil
			}
			return nil, ErrNoMoreEvents
		}

		// 2. Pending cancellation or timeout wins over queued work.
		if err := b.checkInterrupt(ctx); err != nil {
			return nil, b.abort(err)
		}

		// 3. Deliver queued events one at a time.
		if ev, ok := b.dequeue(); ok {
			b.deliver(ev)
			return ev, nil
		}

		// 4. Invalid options surface on the first call.
		if b.opts.err != nil {
			return nil, b.abort(b.opts.err)
		}

		// 5. Produce more events.
		if err := step(ctx); err != nil {
			return nil, b.abort(err)
		}
	}
}

// Activate moves the run from Created to Active, registers it, opens the run
// span and emits AlgorithmInitialized.
func (b *Base) Activate(ctx context.Context) error {
	if !b.state.CompareAndSwap(int32(Created), int32(Active)) {
		if b.State() == Canceled {
			return b.Cause()
		}
		return fmt.Errorf("%w: activate from %s", ErrInvalidState, b.State())
	}
	b.activatedAt = time.Now()
	if b.opts.Timeout > 0 {
		b.deadline = b.activatedAt.Add(b.opts.Timeout)
	}
	b.runCtx, b.span = b.tracer.Start(context.WithoutCancel(ctx), b.name+".run",
		trace.WithAttributes(
			attribute.String("lvsearch.run_id", b.id.String()),
			attribute.String("lvsearch.algorithm", b.name),
			attribute.Int("lvsearch.max_expansions", b.opts.MaxExpansions),
			attribute.Bool("lvsearch.graph_search", b.opts.GraphSearch),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
	if b.opts.Registry != nil {
		b.opts.Registry.Register(b)
	}
	b.logger.Info("search run started",
		slog.Duration("timeout", b.opts.Timeout),
		slog.Int("max_expansions", b.opts.MaxExpansions),
	)
	b.Emit(AlgorithmInitialized{EventMeta: b.NewMeta()})

	return nil
}

// Finish moves the run from Active to Terminated and emits AlgorithmFinished.
// exhausted is false when the run stopped on its expansion budget.
func (b *Base) Finish(exhausted bool) {
	if !b.state.CompareAndSwap(int32(Active), int32(Terminated)) {
		return
	}
	b.Emit(AlgorithmFinished{
		EventMeta:  b.NewMeta(),
		Expansions: b.expansions,
		Solutions:  b.solutions,
		Exhausted:  exhausted,
	})
	if b.opts.Registry != nil {
		b.opts.Registry.Deregister(b.id)
	}
	if b.span != nil {
		b.span.SetAttributes(
			attribute.Int("lvsearch.result.expansions", b.expansions),
			attribute.Int("lvsearch.result.solutions", b.solutions),
			attribute.Bool("lvsearch.result.exhausted", exhausted),
		)
		b.span.SetStatus(codes.Ok, "")
		b.span.End()
	}
	b.logger.Info("search run finished",
		slog.Int("expansions", b.expansions),
		slog.Int("solutions", b.solutions),
		slog.Bool("exhausted", exhausted),
		slog.Duration("elapsed", time.Since(b.activatedAt)),
	)
}

// NewMeta stamps the next event.
func (b *Base) NewMeta() EventMeta {
	m := EventMeta{RunID: b.id, Algorithm: b.name, Seq: b.seq, Time: time.Now()}
	b.seq++

	return m
}

// Emit enqueues ev for delivery.
func (b *Base) Emit(ev Event) {
	if ev.Kind() == KindSolutionCandidateFound {
		b.solutions++
	}
	b.queue = append(b.queue, ev)
}

// RecordExpansion counts one node expansion.
func (b *Base) RecordExpansion() { b.expansions++ }

// BudgetExhausted reports whether MaxExpansions has been reached.
func (b *Base) BudgetExhausted() bool {
	return b.opts.MaxExpansions > 0 && b.expansions >= b.opts.MaxExpansions
}

// Invariant reports a broken invariant. It panics under StrictInvariants and
// otherwise returns an error wrapping ErrInvariantViolation.
func (b *Base) Invariant(format string, args ...any) error {
	err := &InvariantError{Msg: fmt.Sprintf(format, args...)}
	b.logger.Error("search invariant violated", slog.String("detail", err.Msg))
	if b.opts.StrictInvariants {
		panic(err)
	}

	return err
}

func (b *Base) checkInterrupt(ctx context.Context) error {
	select {
	case <-b.cancelCh:
		return ErrCanceled
	default:
	}
	if err := ctx.Err(); err != nil {
		return interruption(err)
	}

	return b.checkDeadline()
}

func (b *Base) checkDeadline() error {
	if !b.deadline.IsZero() && !time.Now().Before(b.deadline) {
		return fmt.Errorf("%w: run exceeded %s", ErrTimeout, b.opts.Timeout)
	}

	return nil
}

func interruption(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}

	return fmt.Errorf("%w: %w", ErrInterrupted, err)
}

func (b *Base) dequeue() (Event, bool) {
	if len(b.queue) == 0 {
		return nil, false
	}
	ev := b.queue[0]
	b.queue[0] = nil
	b.queue = b.queue[1:]

	return ev, true
}

func (b *Base) deliver(ev Event) {
	for _, obs := range b.opts.Observers {
		obs.OnEvent(ev)
	}
}

func (b *Base) setCause(err error) {
	b.mu.Lock()
	if b.cause == nil {
		b.cause = err
	}
	b.mu.Unlock()
}

// abort records err as the cause and cancels the run.
func (b *Base) abort(err error) error {
	b.setCause(err)
	for {
		s := b.state.Load()
		if State(s).Done() {
			break
		}
		if b.state.CompareAndSwap(s, int32(Canceled)) {
			break
		}
	}
	if b.State() == Terminated {
		// the run finished before the error surfaced; report it as is
		return err
	}

	return b.finalizeCancel()
}

// finalizeCancel releases the run's resources once and returns the cause.
func (b *Base) finalizeCancel() error {
	cause := b.Cause()
	if cause == nil {
		cause = ErrCanceled
	}
	if b.finalized {
		return cause
	}
	b.finalized = true
	b.queue = nil
	if b.opts.Registry != nil {
		b.opts.Registry.Deregister(b.id)
	}
	if b.span != nil {
		b.span.RecordError(cause)
		b.span.SetStatus(codes.Error, cause.Error())
		b.span.End()
	}
	if errors.Is(cause, ErrCanceled) {
		b.logger.Info("search run canceled", slog.Int("expansions", b.expansions))
	} else {
		b.logger.Warn("search run aborted", slog.Int("expansions", b.expansions), slog.Any("error", cause))
	}
	b.deliver(AlgorithmCanceled{EventMeta: b.NewMeta(), Cause: cause})

	return cause
}
