package algorithm_test

import (
	"context"
	"io"
	"log/slog"

	"github.com/katalvlaran/lvsearch/algorithm"
)

// counter is a minimal engine: it expands the integers 0..limit-1, one per step.
type counter struct {
	*algorithm.Base
	n, limit int
	gen      func(ctx context.Context) (int, error)
}

func newCounter(limit int, opts ...algorithm.Option) *counter {
	base := []algorithm.Option{
		algorithm.WithLogger(quietLogger()),
		algorithm.WithRegistry(algorithm.NewRegistry()),
	}

	return &counter{Base: algorithm.NewBase("counter", append(base, opts...)...), limit: limit}
}

func (c *counter) NextEvent(ctx context.Context) (algorithm.Event, error) {
	return c.Next(ctx, c.step)
}

func (c *counter) step(ctx context.Context) error {
	if c.State() == algorithm.Created {
		return c.Activate(ctx)
	}
	if c.n >= c.limit || c.BudgetExhausted() {
		c.Finish(c.n >= c.limit)
		return nil
	}
	if c.gen != nil {
		if _, err := algorithm.CallBounded(ctx, c.Base, "expand", c.gen); err != nil {
			return algorithm.GenerationError(err, "count")
		}
	}
	c.RecordExpansion()
	c.Emit(algorithm.NodeExpansionCompleted[int]{EventMeta: c.NewMeta(), Node: c.n})
	c.n++

	return nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
