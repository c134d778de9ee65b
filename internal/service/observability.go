package service

import (
	"context"
	"sort"
	"time"

	"github.com/alexanderramin/plancad/internal/logger"
)

// UseCaseEvent captures lightweight execution telemetry for a service use case.
type UseCaseEvent struct {
	Name      string
	Duration  time.Duration
	Success   bool
	Err       error
	Fields    map[string]any
	StartedAt time.Time
}

// UseCaseObserver receives use-case execution events.
type UseCaseObserver interface {
	ObserveUseCase(ctx context.Context, event UseCaseEvent)
}

// NoopUseCaseObserver ignores all events.
type NoopUseCaseObserver struct{}

func (NoopUseCaseObserver) ObserveUseCase(context.Context, UseCaseEvent) {}

type logUseCaseObserver struct {
	log *logger.Logger
}

// NewLogUseCaseObserver writes service use-case events to l. A nil logger
// uses the process-wide logger.
func NewLogUseCaseObserver(l *logger.Logger) UseCaseObserver {
	return &logUseCaseObserver{log: l}
}

func (o *logUseCaseObserver) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	log := o.log
	if log == nil {
		log = logger.L()
	}

	fields := make([]logger.Field, 0, 4+len(event.Fields))
	fields = append(fields,
		logger.String("use_case", event.Name),
		logger.Int64("duration_ms", event.Duration.Milliseconds()),
		logger.Bool("success", event.Success),
	)
	keys := make([]string, 0, len(event.Fields))
	for k := range event.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fields = append(fields, logger.Any(k, event.Fields[k]))
	}
	if event.Err != nil {
		fields = append(fields, logger.ErrorF(event.Err))
		log.Error(ctx, "service_use_case", fields...)
		return
	}
	log.Info(ctx, "service_use_case", fields...)
}

func useCaseObserverOrNoop(observers []UseCaseObserver) UseCaseObserver {
	for _, obs := range observers {
		if obs != nil {
			return obs
		}
	}
	return NoopUseCaseObserver{}
}
