package planclient

import "go.uber.org/zap"

// CallEvent records metadata about a single remote planning call.
type CallEvent struct {
	Endpoint  string
	Attempts  int
	LatencyMs int64
	Success   bool
	ErrorCode string
}

// Observer receives events about remote calls for logging and metrics.
type Observer interface {
	OnCallComplete(event CallEvent)
}

// ZapObserver logs one line per remote call.
type ZapObserver struct {
	logger *zap.Logger
}

func NewZapObserver(logger *zap.Logger) *ZapObserver {
	return &ZapObserver{logger: logger}
}

func (o *ZapObserver) OnCallComplete(event CallEvent) {
	fields := []zap.Field{
		zap.String("endpoint", event.Endpoint),
		zap.Int("attempts", event.Attempts),
		zap.Int64("latency_ms", event.LatencyMs),
	}
	if !event.Success {
		o.logger.Warn("remote_plan_call", append(fields, zap.String("error_code", event.ErrorCode))...)
		return
	}
	o.logger.Info("remote_plan_call", fields...)
}

// NoopObserver discards all events.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(CallEvent) {}
