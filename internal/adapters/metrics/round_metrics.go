package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/mercado-go/internal/domain/game"
)

// RoundMetricsCollector handles game and round resolution metrics
type RoundMetricsCollector struct {
	gamesStarted   prometheus.Counter
	gamesEnded     prometheus.Counter
	roundsResolved prometheus.Counter
	eventsTotal    *prometheus.CounterVec
	activeEvents   *prometheus.GaugeVec

	playerCash    *prometheus.GaugeVec
	playerScore   *prometheus.GaugeVec
	roundProfit   prometheus.Histogram
	unitsSold     prometheus.Counter
	unitsProduced prometheus.Counter
}

// NewRoundMetricsCollector creates a new round metrics collector
func NewRoundMetricsCollector() *RoundMetricsCollector {
	return &RoundMetricsCollector{
		gamesStarted: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "games_started_total",
				Help:      "Total number of games started",
			},
		),

		gamesEnded: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "games_ended_total",
				Help:      "Total number of games that reached their final state",
			},
		),

		roundsResolved: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "rounds_resolved_total",
				Help:      "Total number of rounds resolved",
			},
		),

		eventsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "events_triggered_total",
				Help:      "Market events activated, by event type",
			},
			[]string{"type"},
		),

		activeEvents: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "active_events",
				Help:      "Market events in effect during the last resolved round",
			},
			[]string{"game_id"},
		),

		playerCash: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "player_cash",
				Help:      "Cash held by each player after the last resolved round",
			},
			[]string{"game_id", "player_id"},
		),

		playerScore: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "player_total_score",
				Help:      "Accumulated score of each player",
			},
			[]string{"game_id", "player_id"},
		),

		roundProfit: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "round_profit",
				Help:      "Distribution of per-player round profit",
				Buckets:   []float64{-50000, -10000, -1000, 0, 1000, 5000, 10000, 25000, 50000, 100000},
			},
		),

		unitsSold: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "units_sold_total",
				Help:      "Total units sold across all markets",
			},
		),

		unitsProduced: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "units_produced_total",
				Help:      "Total units manufactured",
			},
		),
	}
}

// Register registers all round metrics with the Prometheus registry
func (c *RoundMetricsCollector) Register() error {
	if Registry == nil {
		return nil
	}

	metrics := []prometheus.Collector{
		c.gamesStarted,
		c.gamesEnded,
		c.roundsResolved,
		c.eventsTotal,
		c.activeEvents,
		c.playerCash,
		c.playerScore,
		c.roundProfit,
		c.unitsSold,
		c.unitsProduced,
	}

	for _, metric := range metrics {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}

	return nil
}

// RecordGameStarted records a new game
func (c *RoundMetricsCollector) RecordGameStarted(playerCount int) {
	c.gamesStarted.Inc()
}

// RecordRoundResolved records the outcome of a resolved round
func (c *RoundMetricsCollector) RecordRoundResolved(state *game.GameState, results []game.PlayerRoundResult) {
	c.roundsResolved.Inc()
	c.activeEvents.WithLabelValues(state.GameID).Set(float64(len(state.CurrentEvents())))

	for _, r := range results {
		playerID := strconv.Itoa(r.PlayerID)
		c.playerCash.WithLabelValues(state.GameID, playerID).Set(r.Cash)
		c.roundProfit.Observe(r.Results.Profit)
		c.unitsSold.Add(float64(r.Results.UnitsSold))
		c.unitsProduced.Add(float64(r.Results.UnitsProduced))
	}
	for _, p := range state.Players {
		c.playerScore.WithLabelValues(state.GameID, strconv.Itoa(p.ID)).Set(float64(p.TotalScore))
	}
}

// RecordEventTriggered records a newly activated market event
func (c *RoundMetricsCollector) RecordEventTriggered(eventType string) {
	c.eventsTotal.WithLabelValues(eventType).Inc()
}

// RecordGameEnded records a finished game and drops its per-game series
func (c *RoundMetricsCollector) RecordGameEnded(state *game.GameState) {
	c.gamesEnded.Inc()
	c.activeEvents.DeleteLabelValues(state.GameID)
	for _, p := range state.Players {
		playerID := strconv.Itoa(p.ID)
		c.playerCash.DeleteLabelValues(state.GameID, playerID)
		c.playerScore.DeleteLabelValues(state.GameID, playerID)
	}
}
