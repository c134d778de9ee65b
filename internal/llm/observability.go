package llm

import (
	"context"

	"github.com/alexanderramin/plancad/internal/logger"
)

// LLMCallEvent records metadata about a single LLM invocation.
type LLMCallEvent struct {
	Task      TaskType
	Model     string
	LatencyMs int64
	Success   bool
	ErrorCode string
}

// Observer receives events about LLM calls for logging and metrics.
type Observer interface {
	OnCallComplete(event LLMCallEvent)
}

// LogObserver writes LLM call events to the structured logger.
type LogObserver struct {
	log *logger.Logger
}

// NewLogObserver creates an Observer that logs through l. A nil l uses the
// global logger at call time.
func NewLogObserver(l *logger.Logger) *LogObserver {
	return &LogObserver{log: l}
}

func (o *LogObserver) OnCallComplete(event LLMCallEvent) {
	l := o.log
	if l == nil {
		l = logger.L()
	}
	fields := []logger.Field{
		logger.String("task", string(event.Task)),
		logger.String("model", event.Model),
		logger.Int64("latency_ms", event.LatencyMs),
	}
	if !event.Success {
		l.Warn(context.Background(), "llm_call", append(fields, logger.String("error_code", event.ErrorCode))...)
		return
	}
	l.Info(context.Background(), "llm_call", fields...)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(LLMCallEvent) {}
