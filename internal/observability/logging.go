// Package observability wires the ambient logging, metrics and tracing
// stack. Carried regardless of spec §1's non-goals (analytics, etc.): those
// exclude product features, not operational visibility into this service.
package observability

import "go.uber.org/zap"

// NewLogger builds the process-wide structured logger, following the
// teacher's cmd/api/main.go construction (production config, synced on
// shutdown).
func NewLogger(development bool) (*zap.Logger, error) {
	if development {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
