package ctxlog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/lvsearch/internal/ctxlog"
)

func TestFromContext(t *testing.T) {
	assert.Same(t, slog.Default(), ctxlog.FromContext(context.Background()))

	l := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	ctx := ctxlog.WithLogger(context.Background(), l)
	assert.Same(t, l, ctxlog.FromContext(ctx))

	ctx = ctxlog.WithLogger(context.Background(), nil)
	assert.Same(t, slog.Default(), ctxlog.FromContext(ctx))
}

func TestWith(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, nil))
	ctx := ctxlog.With(ctxlog.WithLogger(context.Background(), l), "command", "solve")

	ctxlog.FromContext(ctx).Info("started")
	assert.Contains(t, buf.String(), "command=solve")
	assert.Contains(t, buf.String(), "msg=started")
}
