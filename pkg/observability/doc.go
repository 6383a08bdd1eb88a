// Package observability provides Prometheus instrumentation for the
// conversation engine.
package observability
