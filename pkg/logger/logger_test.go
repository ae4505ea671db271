package logger

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMultiHandler_FansOutByLevel(t *testing.T) {
	var debug, info bytes.Buffer
	h := NewMultiHandler(
		slog.NewTextHandler(&debug, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewTextHandler(&info, &slog.HandlerOptions{Level: slog.LevelInfo}),
	)
	log := slog.New(h).With("request_id", "r-1")

	log.Debug("resolving options")
	log.Info("product created", "product_id", "abc")

	assert.Contains(t, debug.String(), "resolving options")
	assert.Contains(t, debug.String(), "product created")
	assert.NotContains(t, info.String(), "resolving options")
	assert.Contains(t, info.String(), "request_id=r-1")
	assert.Contains(t, info.String(), "product_id=abc")
}

func TestWithCtx(t *testing.T) {
	assert.Same(t, L, WithCtx(context.Background()))

	var buf bytes.Buffer
	scoped := slog.New(slog.NewTextHandler(&buf, nil)).With("request_id", "r-2")
	ctx := InjectLogger(context.Background(), scoped)

	WithCtx(ctx).Info("hello")
	assert.Contains(t, buf.String(), "request_id=r-2")
}
