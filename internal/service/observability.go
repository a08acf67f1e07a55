package service

import (
	"context"
	"time"

	"github.com/alexanderramin/mindweave/internal/metrics"
	"go.uber.org/zap"
)

// Use case names reported to observers.
const (
	UseCaseGeneratePlan = "generate-plan"
	UseCaseSavePlan     = "save-plan"
	UseCaseDeletePlan   = "delete-plan"
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

type zapUseCaseObserver struct {
	logger *zap.Logger
}

// NewZapUseCaseObserver logs one line per use case.
func NewZapUseCaseObserver(logger *zap.Logger) UseCaseObserver {
	if logger == nil {
		return NoopUseCaseObserver{}
	}
	return &zapUseCaseObserver{logger: logger}
}

func (o *zapUseCaseObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	fields := make([]zap.Field, 0, 3+len(event.Fields))
	fields = append(fields,
		zap.String("use_case", event.Name),
		zap.Int64("duration_ms", event.Duration.Milliseconds()),
		zap.Bool("success", event.Success),
	)
	for k, v := range event.Fields {
		fields = append(fields, zap.Any(k, v))
	}
	if event.Err != nil {
		o.logger.Error("service_use_case", append(fields, zap.Error(event.Err))...)
		return
	}
	o.logger.Info("service_use_case", fields...)
}

type metricsUseCaseObserver struct {
	metrics *metrics.Metrics
}

// NewMetricsUseCaseObserver turns plan generation events into Prometheus
// samples. Other use cases are ignored.
func NewMetricsUseCaseObserver(m *metrics.Metrics) UseCaseObserver {
	if m == nil {
		return NoopUseCaseObserver{}
	}
	return &metricsUseCaseObserver{metrics: m}
}

func (o *metricsUseCaseObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	if event.Name != UseCaseGeneratePlan {
		return
	}
	policy, _ := event.Fields["policy"].(string)
	outcome, _ := event.Fields["outcome"].(string)
	hours, _ := event.Fields["scheduled_hours"].(float64)
	o.metrics.RecordPlanGeneration(policy, outcome, hours, event.Duration)
}

// MultiObserver fans one event out to several observers.
type MultiObserver []UseCaseObserver

func (m MultiObserver) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	for _, obs := range m {
		if obs != nil {
			obs.ObserveUseCase(ctx, event)
		}
	}
}

func useCaseObserverOrNoop(observers []UseCaseObserver) UseCaseObserver {
	var live MultiObserver
	for _, obs := range observers {
		if obs != nil {
			live = append(live, obs)
		}
	}
	switch len(live) {
	case 0:
		return NoopUseCaseObserver{}
	case 1:
		return live[0]
	default:
		return live
	}
}
