package game_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/mercado-go/internal/domain/economy"
	"github.com/andrescamacho/mercado-go/internal/domain/game"
	"github.com/andrescamacho/mercado-go/internal/domain/market"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func testCatalog() *market.Catalog {
	return market.NewCatalog(
		map[market.MarketID]market.Market{
			"national":      {Name: "National", BaseDemand: 500, PriceSensitivity: 1, AdvertisingSensitivity: 1, QualitySensitivity: 1, TransportCost: 2},
			"regional":      {Name: "Regional", BaseDemand: 300, PriceSensitivity: 1, AdvertisingSensitivity: 1, QualitySensitivity: 1, TransportCost: 1},
			"international": {Name: "International", BaseDemand: 800, PriceSensitivity: 1, AdvertisingSensitivity: 1, QualitySensitivity: 1, TransportCost: 5},
		},
		map[market.ProductID]market.Product{
			"basic":   {Name: "Basic", ProductionCost: 30, Quality: 5, MinPrice: 50, MaxPrice: 150},
			"premium": {Name: "Premium", ProductionCost: 60, Quality: 7, MinPrice: 100, MaxPrice: 250},
		},
		[]market.EventTemplate{
			{ID: "boom", Type: market.EventTypeMarketDemand, Effect: map[string]float64{"national": 0.5}, Duration: 1},
			{ID: "strike", Type: market.EventTypeTransportCost, Effect: map[string]float64{"national": 2}, Duration: 2},
		},
		market.ScoringWeights{CashWeight: 0.4, MarketShareWeight: 0.3, InventoryWeight: 0.1, ReputationWeight: 0.2},
	)
}

func newGame(t *testing.T, names ...string) *game.GameState {
	t.Helper()
	s, err := game.NewGameState("g-1", names, game.DefaultSettings(), testCatalog(), epoch)
	require.NoError(t, err)
	return s
}

func sellBasicNationally(qty int, price float64) economy.Decisions {
	return economy.Decisions{
		Production: map[market.ProductID]int{"basic": qty},
		Markets: map[market.MarketID]economy.MarketDecision{
			"national": {Active: true, Product: "basic", Price: price},
		},
	}
}

// fixedRand replays scripted values
type fixedRand struct {
	floats []float64
	ints   []int
}

func (r *fixedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func (r *fixedRand) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0] % n
	r.ints = r.ints[1:]
	return v
}
