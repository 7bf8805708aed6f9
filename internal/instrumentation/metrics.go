package instrumentation

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys - using constants for consistency.
const (
	attrAction  = "action"
	attrStatus  = "status"
	attrService = "service"
	attrReason  = "reason"
)

// Metrics provides methods for recording observability metrics. The zero
// value is a valid no-op recorder.
type Metrics struct {
	intentsResolvedTotal metric.Int64Counter
	resolutionFailures   metric.Int64Counter
	dispatchesTotal      metric.Int64Counter
	apiErrorsTotal       metric.Int64Counter
	confirmationsTotal   metric.Int64Counter
}

// NewMetrics creates a new Metrics instance with all instruments
// initialized on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error

	m.intentsResolvedTotal, err = meter.Int64Counter(
		"agent_intents_resolved_total",
		metric.WithDescription("Total number of intents resolved, by action kind"),
	)
	if err != nil {
		return nil, err
	}

	m.resolutionFailures, err = meter.Int64Counter(
		"agent_resolution_failures_total",
		metric.WithDescription("Total number of failed intent resolutions"),
	)
	if err != nil {
		return nil, err
	}

	m.dispatchesTotal, err = meter.Int64Counter(
		"agent_dispatches_total",
		metric.WithDescription("Total number of dispatched actions, by kind and status"),
	)
	if err != nil {
		return nil, err
	}

	m.apiErrorsTotal, err = meter.Int64Counter(
		"agent_api_errors_total",
		metric.WithDescription("Total number of Google API errors, by service"),
	)
	if err != nil {
		return nil, err
	}

	m.confirmationsTotal, err = meter.Int64Counter(
		"agent_confirmations_total",
		metric.WithDescription("Total number of confirmation prompts, by outcome"),
	)
	if err != nil {
		return nil, err
	}

	return m, nil
}

// RecordIntentResolved increments the resolved-intent counter for an action kind.
func (m *Metrics) RecordIntentResolved(ctx context.Context, action string) {
	if m.intentsResolvedTotal == nil {
		return
	}
	m.intentsResolvedTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(attrAction, action),
	))
}

// RecordResolutionFailure increments the resolution-failure counter.
func (m *Metrics) RecordResolutionFailure(ctx context.Context, reason string) {
	if m.resolutionFailures == nil {
		return
	}
	m.resolutionFailures.Add(ctx, 1, metric.WithAttributes(
		attribute.String(attrReason, reason),
	))
}

// RecordDispatch increments the dispatch counter for an action kind and outcome.
func (m *Metrics) RecordDispatch(ctx context.Context, action, status string) {
	if m.dispatchesTotal == nil {
		return
	}
	m.dispatchesTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(attrAction, action),
		attribute.String(attrStatus, status),
	))
}

// RecordAPIError increments the API error counter for a Google service.
func (m *Metrics) RecordAPIError(ctx context.Context, service string) {
	if m.apiErrorsTotal == nil {
		return
	}
	m.apiErrorsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(attrService, service),
	))
}

// RecordConfirmation increments the confirmation counter with the outcome
// ("approved" or "rejected").
func (m *Metrics) RecordConfirmation(ctx context.Context, outcome string) {
	if m.confirmationsTotal == nil {
		return
	}
	m.confirmationsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(attrStatus, outcome),
	))
}
