// Package instrumentation provides OpenTelemetry metrics for the calendar
// agent.
//
// Metrics cover intent resolution, action dispatch, confirmation outcomes
// and Google API errors. The agent is a short-lived CLI process, so metrics
// are exported periodically to stdout rather than served over HTTP.
// Instrumentation is opt-in; when disabled, a no-op recorder is used so
// call sites stay unconditional.
package instrumentation
