package algorithm

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// CallBounded runs fn, typically a root or successor generator, while
// watching for cancellation, the caller's context, the run deadline and the
// per-call GeneratorTimeout. Cancel and context errors are observed
// immediately; the run deadline is re-checked every PollInterval.
//
// When CallBounded stops waiting it cancels the context handed to fn and
// returns an abort error (ErrCanceled, ErrInterrupted or ErrTimeout); fn keeps
// running in its goroutine until it returns and its result is discarded. The
// run must be considered unusable afterwards.
//
// A panic inside fn is recovered and reported as ErrGenerationFailed.
func CallBounded[T any](ctx context.Context, b *Base, op string, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	if ctx == nil {
		ctx = context.Background()
	}

	// 1. Fail fast if the run is already stopping.
	if err := b.checkInterrupt(ctx); err != nil {
		return zero, err
	}

	// 2. Span for the call, parented on the run span.
	_, span := b.tracer.Start(b.runCtx, b.name+"."+op,
		trace.WithAttributes(attribute.Int("lvsearch.expansions", b.expansions)))
	defer span.End()

	callCtx, cancel := context.WithCancel(trace.ContextWithSpan(ctx, span))
	defer cancel()

	type result struct {
		val T
		err error
	}
	done := make(chan result, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- result{err: fmt.Errorf("%w: %s panicked: %v", ErrGenerationFailed, op, r)}
			}
		}()
		v, err := fn(callCtx)
		done <- result{val: v, err: err}
	}()

	// 3. Race completion against every stop signal.
	var timeout <-chan time.Time
	if b.opts.GeneratorTimeout > 0 {
		timer := time.NewTimer(b.opts.GeneratorTimeout)
		defer timer.Stop()
		timeout = timer.C
	}
	ticker := time.NewTicker(b.opts.PollInterval)
	defer ticker.Stop()

	fail := func(err error) (T, error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		return zero, err
	}
	for {
		select {
		case r := <-done:
			if r.err != nil {
				return fail(r.err)
			}
			return r.val, nil
		case <-b.cancelCh:
			return fail(ErrCanceled)
		case <-ctx.Done():
			return fail(interruption(ctx.Err()))
		case <-timeout:
			return fail(fmt.Errorf("%w: %s exceeded %s", ErrTimeout, op, b.opts.GeneratorTimeout))
		case <-ticker.C:
			if err := b.checkDeadline(); err != nil {
				return fail(err)
			}
		}
	}
}
