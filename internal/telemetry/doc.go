// Package telemetry wires structured logging, tracing and Prometheus
// metrics for the gosimp server and CLI.
//
// Logging uses log/slog. Tracing uses OpenTelemetry with either a stdout
// exporter or none. Metrics are registered with the default Prometheus
// registry through promauto and served by MetricsHandler.
package telemetry
