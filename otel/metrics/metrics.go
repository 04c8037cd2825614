package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	meter metric.Meter

	// API client metrics
	apiRequestsTotal    metric.Int64Counter
	apiRequestDuration  metric.Float64Histogram
	apiRequestsInFlight metric.Int64UpDownCounter

	// Session metrics
	sessionTransitionsTotal metric.Int64Counter
)

// Init creates the instruments on the global meter provider. Recording before Init is a no-op.
func Init(serviceName string) error {
	meter = otel.Meter(serviceName)

	var err error

	apiRequestsTotal, err = meter.Int64Counter(
		"api_requests_total",
		metric.WithDescription("Total number of requests sent to the quiz API"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create api_requests_total counter: %w", err)
	}

	apiRequestDuration, err = meter.Float64Histogram(
		"api_request_duration_seconds",
		metric.WithDescription("Quiz API request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return fmt.Errorf("failed to create api_request_duration_seconds histogram: %w", err)
	}

	apiRequestsInFlight, err = meter.Int64UpDownCounter(
		"api_requests_in_flight",
		metric.WithDescription("Number of quiz API requests currently in flight"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create api_requests_in_flight gauge: %w", err)
	}

	sessionTransitionsTotal, err = meter.Int64Counter(
		"session_transitions_total",
		metric.WithDescription("Login and logout transitions of the client session"),
		metric.WithUnit("{transition}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create session_transitions_total counter: %w", err)
	}

	return nil
}

// RecordAPIRequest records one finished request. statusCode is 0 for transport failures.
func RecordAPIRequest(ctx context.Context, method, route string, statusCode int, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("http.method", method),
		attribute.String("http.route", route),
		attribute.Int("http.status_code", statusCode),
		attribute.Bool("success", statusCode >= 200 && statusCode < 300),
	)

	if apiRequestsTotal != nil {
		apiRequestsTotal.Add(ctx, 1, attrs)
	}
	if apiRequestDuration != nil {
		apiRequestDuration.Record(ctx, duration.Seconds(), attrs)
	}
}

func IncrementInFlightRequests(ctx context.Context, method string) {
	if apiRequestsInFlight != nil {
		apiRequestsInFlight.Add(ctx, 1, metric.WithAttributes(attribute.String("http.method", method)))
	}
}

func DecrementInFlightRequests(ctx context.Context, method string) {
	if apiRequestsInFlight != nil {
		apiRequestsInFlight.Add(ctx, -1, metric.WithAttributes(attribute.String("http.method", method)))
	}
}

// RecordSessionTransition counts a login or logout of the session store.
func RecordSessionTransition(ctx context.Context, kind string) {
	if sessionTransitionsTotal != nil {
		sessionTransitionsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("session.event", kind)))
	}
}
