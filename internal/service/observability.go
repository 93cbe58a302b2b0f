package service

import (
	"context"
	"io"
	"log/slog"
	"time"
)

// DispatchEvent describes one action applied by the Tracker.
type DispatchEvent struct {
	Action          string
	StartedAt       time.Time
	Duration        time.Duration
	Persisted       bool
	PersistDuration time.Duration
	PersistErr      error
}

// TrackerObserver receives an event after every dispatch.
type TrackerObserver interface {
	ObserveDispatch(ctx context.Context, event DispatchEvent)
}

// UseCaseEvent captures telemetry for a multi-step operation such as a
// backup import.
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

// NoopObserver ignores all events.
type NoopObserver struct{}

func (NoopObserver) ObserveDispatch(context.Context, DispatchEvent) {}
func (NoopObserver) ObserveUseCase(context.Context, UseCaseEvent)   {}

// LogObserver writes dispatch and use-case events as structured log lines.
type LogObserver struct {
	logger *slog.Logger
}

// NewLogObserver logs through logger.
func NewLogObserver(logger *slog.Logger) *LogObserver {
	return &LogObserver{logger: logger}
}

// NewWriterLogObserver logs to w with a text handler; nil w yields a no-op.
func NewWriterLogObserver(w io.Writer) TrackerObserver {
	if w == nil {
		return NoopObserver{}
	}
	return NewLogObserver(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})))
}

func (o *LogObserver) ObserveDispatch(ctx context.Context, event DispatchEvent) {
	attrs := []any{
		"action", event.Action,
		"duration_ms", event.Duration.Milliseconds(),
		"persisted", event.Persisted,
	}
	if event.PersistErr != nil {
		attrs = append(attrs, "error", event.PersistErr.Error())
		o.logger.ErrorContext(ctx, "state_write_failed", attrs...)
		return
	}
	o.logger.DebugContext(ctx, "dispatch", attrs...)
}

func (o *LogObserver) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	attrs := make([]any, 0, 6+len(event.Fields)*2)
	attrs = append(attrs,
		"use_case", event.Name,
		"duration_ms", event.Duration.Milliseconds(),
		"success", event.Success,
	)
	for k, v := range event.Fields {
		attrs = append(attrs, k, v)
	}
	if event.Err != nil {
		attrs = append(attrs, "error", event.Err.Error())
		o.logger.ErrorContext(ctx, "service_use_case", attrs...)
		return
	}
	o.logger.InfoContext(ctx, "service_use_case", attrs...)
}

// MetricsRecorder is the subset of metrics.Metrics the service layer feeds.
type MetricsRecorder interface {
	IncrementDispatched(action string)
	ObservePersist(d time.Duration, err error)
	ObserveImport(ok bool)
}

// MetricsObserver forwards events to prometheus collectors.
type MetricsObserver struct {
	rec MetricsRecorder
}

func NewMetricsObserver(rec MetricsRecorder) *MetricsObserver {
	return &MetricsObserver{rec: rec}
}

func (o *MetricsObserver) ObserveDispatch(_ context.Context, event DispatchEvent) {
	o.rec.IncrementDispatched(event.Action)
	if event.Persisted {
		o.rec.ObservePersist(event.PersistDuration, event.PersistErr)
	}
}

func (o *MetricsObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	if event.Name == useCaseImport {
		o.rec.ObserveImport(event.Success)
	}
}

// Observers fans events out to several observers.
type Observers []TrackerObserver

func (os Observers) ObserveDispatch(ctx context.Context, event DispatchEvent) {
	for _, o := range os {
		if o != nil {
			o.ObserveDispatch(ctx, event)
		}
	}
}

func (os Observers) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	for _, o := range os {
		if uc, ok := o.(UseCaseObserver); ok {
			uc.ObserveUseCase(ctx, event)
		}
	}
}

func useCaseObserverOrNoop(observers []UseCaseObserver) UseCaseObserver {
	for _, obs := range observers {
		if obs != nil {
			return obs
		}
	}
	return NoopObserver{}
}
