package game

import (
	"math"

	"github.com/andrescamacho/mercado-go/internal/domain/market"
)

// MarketForecast is the partial, noisy market outlook shown to one player
type MarketForecast struct {
	EstimatedDemand    int    `json:"estimatedDemand"`
	RecommendedPrice   int    `json:"recommendedPrice"`
	CompetitorActivity string `json:"competitorActivity"`
	MarketTrend        string `json:"marketTrend"`
}

// Forecaster produces per-player market outlooks. Every player sees slightly
// different numbers to model incomplete information.
type Forecaster struct {
	rng RandomSource
}

// NewForecaster creates a forecaster drawing from rng
func NewForecaster(rng RandomSource) *Forecaster {
	return &Forecaster{rng: rng}
}

// Forecast returns the outlook of every catalog market for playerID
func (f *Forecaster) Forecast(catalog *market.Catalog, effects market.EffectBundle, playerID int) map[market.MarketID]MarketForecast {
	noise := float64(playerID)*0.1 - 0.2

	out := make(map[market.MarketID]MarketForecast, len(catalog.Markets))
	for _, id := range catalog.MarketIDs() {
		mk := catalog.Markets[id]
		fc := MarketForecast{
			EstimatedDemand:    int(math.Floor(mk.BaseDemand * effects.DemandMultiplier(id) * (1 + noise))),
			RecommendedPrice:   int(math.Floor(75 + f.rng.Float64()*50)),
			CompetitorActivity: "medium",
			MarketTrend:        "stable",
		}
		if f.rng.Float64() > 0.5 {
			fc.CompetitorActivity = "high"
		}
		if f.rng.Float64() > 0.5 {
			fc.MarketTrend = "growth"
		}
		if fc.EstimatedDemand < 0 {
			fc.EstimatedDemand = 0
		}
		out[id] = fc
	}
	return out
}
