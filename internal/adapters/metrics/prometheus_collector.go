package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/mercado-go/internal/domain/game"
)

const (
	// DefaultNamespace prefixes every metric unless InitRegistry overrides it
	DefaultNamespace = "mercado"
	// Subsystem for round resolution metrics
	subsystem = "game"
)

var (
	// namespace for all metrics
	namespace = DefaultNamespace

	// Registry is the global Prometheus registry for all metrics
	Registry *prometheus.Registry

	// globalRoundCollector is the singleton round metrics collector
	// Set by SetGlobalRoundCollector() when metrics are enabled
	globalRoundCollector RoundMetricsRecorder
)

// RoundMetricsRecorder defines the interface for recording game lifecycle metrics
// This interface is used by application code to record metrics
type RoundMetricsRecorder interface {
	RecordGameStarted(playerCount int)
	RecordRoundResolved(state *game.GameState, results []game.PlayerRoundResult)
	RecordEventTriggered(eventType string)
	RecordGameEnded(state *game.GameState)
}

// InitRegistry initializes the Prometheus registry under ns
// Should be called once at application startup if metrics are enabled
func InitRegistry(ns string) {
	if ns != "" {
		namespace = ns
	}
	Registry = prometheus.NewRegistry()
}

// GetRegistry returns the global Prometheus registry
// Returns nil if metrics are not initialized
func GetRegistry() *prometheus.Registry {
	return Registry
}

// IsEnabled returns true if metrics collection is enabled
func IsEnabled() bool {
	return Registry != nil
}

// Reset disables metrics and forgets the global collector
func Reset() {
	Registry = nil
	globalRoundCollector = nil
	namespace = DefaultNamespace
}

// SetGlobalRoundCollector sets the global round metrics collector
func SetGlobalRoundCollector(collector RoundMetricsRecorder) {
	globalRoundCollector = collector
}

// RecordGameStarted records a new game globally
func RecordGameStarted(playerCount int) {
	if globalRoundCollector != nil {
		globalRoundCollector.RecordGameStarted(playerCount)
	}
}

// RecordRoundResolved records a resolved round globally
func RecordRoundResolved(state *game.GameState, results []game.PlayerRoundResult) {
	if globalRoundCollector != nil {
		globalRoundCollector.RecordRoundResolved(state, results)
	}
}

// RecordEventTriggered records a newly activated market event globally
func RecordEventTriggered(eventType string) {
	if globalRoundCollector != nil {
		globalRoundCollector.RecordEventTriggered(eventType)
	}
}

// RecordGameEnded records a game reaching its terminal state globally
func RecordGameEnded(state *game.GameState) {
	if globalRoundCollector != nil {
		globalRoundCollector.RecordGameEnded(state)
	}
}
