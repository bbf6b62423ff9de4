package helpers

import (
	"context"
	"time"

	"github.com/andrescamacho/mercado-go/internal/domain/economy"
	"github.com/andrescamacho/mercado-go/internal/domain/market"
)

// TestCatalog returns a small catalog with neutral sensitivities:
// three markets, two products and two event templates.
func TestCatalog() *market.Catalog {
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
			{ID: "boom", Name: "Economic Boom", Type: market.EventTypeMarketDemand, Effect: map[string]float64{"national": 0.5}, Duration: 1},
			{ID: "strike", Name: "Transport Strike", Type: market.EventTypeTransportCost, Effect: map[string]float64{"national": 2}, Duration: 2},
		},
		market.ScoringWeights{CashWeight: 0.4, MarketShareWeight: 0.3, InventoryWeight: 0.1, ReputationWeight: 0.2},
	)
}

// StaticCatalogSource serves a fixed catalog
type StaticCatalogSource struct {
	Catalog *market.Catalog
	Err     error
}

func (s *StaticCatalogSource) Load(_ context.Context) (*market.Catalog, error) {
	return s.Catalog, s.Err
}

// Epoch is a fixed instant for deterministic timestamps
var Epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

// SellBasicNationally produces qty basic units and offers them on the
// national market at price
func SellBasicNationally(qty int, price float64) economy.Decisions {
	return economy.Decisions{
		Production: map[market.ProductID]int{"basic": qty},
		Markets: map[market.MarketID]economy.MarketDecision{
			"national": {Active: true, Product: "basic", Price: price},
		},
	}
}
