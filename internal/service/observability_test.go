package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/plancad/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogUseCaseObserver(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	obs := NewLogUseCaseObserver(logger.New(zap.New(core)))
	ctx := context.Background()

	obs.ObserveUseCase(ctx, UseCaseEvent{
		Name:     "execute-script",
		Duration: 15 * time.Millisecond,
		Success:  true,
		Fields:   map[string]any{"drawing_id": "d1"},
	})
	obs.ObserveUseCase(ctx, UseCaseEvent{
		Name: "clear-drawing",
		Err:  errors.New("drawing not found"),
	})

	entries := logs.All()
	require.Len(t, entries, 2)

	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "service_use_case", entries[0].Message)
	fields := entries[0].ContextMap()
	assert.Equal(t, "execute-script", fields["use_case"])
	assert.Equal(t, int64(15), fields["duration_ms"])
	assert.Equal(t, "d1", fields["drawing_id"])

	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.Equal(t, "drawing not found", entries[1].ContextMap()["error"])
}

func TestUseCaseObserverOrNoop(t *testing.T) {
	assert.IsType(t, NoopUseCaseObserver{}, useCaseObserverOrNoop(nil))
	assert.IsType(t, NoopUseCaseObserver{}, useCaseObserverOrNoop([]UseCaseObserver{nil}))
}
