// Package economy implements the deterministic economic model of a round:
// demand, transport and production cost, and the per-player sales simulation.
package economy

import (
	"math"

	"github.com/andrescamacho/mercado-go/internal/domain/market"
)

const (
	// referencePrice is the price at which the price effect is neutral
	referencePrice = 100.0
	// referenceQuality is the quality at which the quality effect is neutral
	referenceQuality = 5.0
	// advertisingScale converts advertising spend into the advertising effect
	advertisingScale = 10000.0
	// experienceBonus is the demand bonus of holding 100% market share
	experienceBonus = 0.1
)

// Model evaluates the economic formulas against a catalog
type Model struct {
	catalog *market.Catalog
}

// NewModel creates a model bound to the given catalog
func NewModel(catalog *market.Catalog) *Model {
	return &Model{catalog: catalog}
}

// Catalog returns the tables the model reads
func (m *Model) Catalog() *market.Catalog {
	return m.catalog
}

// Demand returns the units a market would absorb at the given price,
// advertising spend, product quality and player market share.
//
// Unknown markets and non-positive prices yield zero demand.
func (m *Model) Demand(effects market.EffectBundle, id market.MarketID, price, advertising, quality, share float64) int {
	mk, ok := m.catalog.Market(id)
	if !ok || price <= 0 {
		return 0
	}

	base := mk.BaseDemand * effects.DemandMultiplier(id)
	priceEffect := math.Pow(price/referencePrice, -mk.PriceSensitivity*effects.PriceSensitivityMultiplier(id))
	adEffect := 1 + (advertising/advertisingScale)*mk.AdvertisingSensitivity*effects.AdvertisingSensitivityMultiplier(id)
	qualityEffect := math.Pow(quality/referenceQuality, mk.QualitySensitivity*effects.QualitySensitivityMultiplier(id))
	shareEffect := 1 + (share/100)*experienceBonus

	demand := base * priceEffect * adEffect * qualityEffect * shareEffect
	switch {
	case math.IsNaN(demand) || demand <= 0:
		return 0
	case demand >= math.MaxInt32:
		return math.MaxInt32
	}
	return int(math.Floor(demand))
}

// TransportCost returns the cost of shipping quantity units into a market
func (m *Model) TransportCost(effects market.EffectBundle, id market.MarketID, quantity int) float64 {
	mk, ok := m.catalog.Market(id)
	if !ok || quantity <= 0 {
		return 0
	}
	return mk.TransportCost * effects.TransportCostMultiplier(id) * float64(quantity)
}

// ProductionCost returns the cost of manufacturing quantity units of a product
func (m *Model) ProductionCost(effects market.EffectBundle, id market.ProductID, quantity int) float64 {
	p, ok := m.catalog.Product(id)
	if !ok || quantity <= 0 {
		return 0
	}
	return p.ProductionCost * effects.ProductionCostMultiplier() * float64(quantity)
}
