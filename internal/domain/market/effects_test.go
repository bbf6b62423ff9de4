package market_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/mercado-go/internal/domain/market"
)

var markets = []market.MarketID{"international", "national", "regional"}

func activeAt(round int, tpl market.EventTemplate) market.ActiveEvent {
	return market.Activate(tpl, round)
}

func TestAccumulate_NeutralWithoutEvents(t *testing.T) {
	b := market.Accumulate(markets, nil, 1)

	for _, m := range markets {
		assert.Equal(t, 1.0, b.DemandMultiplier(m))
		assert.Equal(t, 1.0, b.TransportCostMultiplier(m))
		assert.Equal(t, 1.0, b.QualitySensitivityMultiplier(m))
		assert.Equal(t, 1.0, b.PriceSensitivityMultiplier(m))
		assert.Equal(t, 1.0, b.AdvertisingSensitivityMultiplier(m))
	}
	assert.Equal(t, 1.0, b.ProductionCostMultiplier())
}

func TestAccumulate_TransportCostIsMultiplicative(t *testing.T) {
	events := []market.ActiveEvent{
		activeAt(1, market.EventTemplate{ID: "strike", Type: market.EventTypeTransportCost, Effect: map[string]float64{"national": 1.2}, Duration: 2}),
		activeAt(1, market.EventTemplate{ID: "fuel", Type: market.EventTypeTransportCost, Effect: map[string]float64{"national": 1.5}, Duration: 2}),
	}

	b := market.Accumulate(markets, events, 1)

	assert.InDelta(t, 1.8, b.TransportCostMultiplier("national"), 1e-9)
	assert.Equal(t, 1.0, b.TransportCostMultiplier("regional"))
}

func TestAccumulate_DemandIsAdditive(t *testing.T) {
	events := []market.ActiveEvent{
		activeAt(2, market.EventTemplate{ID: "boom", Type: market.EventTypeMarketDemand, Effect: map[string]float64{"regional": 0.1}, Duration: 1}),
		activeAt(2, market.EventTemplate{ID: "fair", Type: market.EventTypeMarketDemand, Effect: map[string]float64{"regional": 0.2}, Duration: 1}),
	}

	b := market.Accumulate(markets, events, 2)

	assert.InDelta(t, 1.3, b.DemandMultiplier("regional"), 1e-9)
	assert.Equal(t, 1.0, b.DemandMultiplier("national"))
}

func TestAccumulate_ProductionCostRequiresAllKey(t *testing.T) {
	events := []market.ActiveEvent{
		activeAt(1, market.EventTemplate{ID: "raw", Type: market.EventTypeProductionCost, Effect: map[string]float64{"all": 1.25}, Duration: 3}),
		activeAt(1, market.EventTemplate{ID: "odd", Type: market.EventTypeProductionCost, Effect: map[string]float64{"national": 3}, Duration: 3}),
	}

	b := market.Accumulate(markets, events, 1)

	assert.InDelta(t, 1.25, b.ProductionCostMultiplier(), 1e-9)
}

func TestAccumulate_SensitivityTypes(t *testing.T) {
	events := []market.ActiveEvent{
		activeAt(1, market.EventTemplate{ID: "q", Type: market.EventTypeQualitySensitivity, Effect: map[string]float64{"international": 1.5}, Duration: 1}),
		activeAt(1, market.EventTemplate{ID: "p", Type: market.EventTypePriceSensitivity, Effect: map[string]float64{"national": 0.8}, Duration: 1}),
		activeAt(1, market.EventTemplate{ID: "a", Type: market.EventTypeAdvertisingSensitivity, Effect: map[string]float64{"regional": 2}, Duration: 1}),
	}

	b := market.Accumulate(markets, events, 1)

	assert.InDelta(t, 1.5, b.QualitySensitivityMultiplier("international"), 1e-9)
	assert.InDelta(t, 0.8, b.PriceSensitivityMultiplier("national"), 1e-9)
	assert.InDelta(t, 2.0, b.AdvertisingSensitivityMultiplier("regional"), 1e-9)
	assert.Equal(t, 1.0, b.QualitySensitivityMultiplier("national"))
}

func TestAccumulate_ExpiredEventIsExcluded(t *testing.T) {
	ev := activeAt(3, market.EventTemplate{ID: "flash", Type: market.EventTypeMarketDemand, Effect: map[string]float64{"national": 0.5}, Duration: 1})

	assert.Equal(t, 3, ev.StartRound)
	assert.Equal(t, 3, ev.EndRound)

	assert.InDelta(t, 1.5, market.Accumulate(markets, []market.ActiveEvent{ev}, 3).DemandMultiplier("national"), 1e-9)
	assert.Equal(t, 1.0, market.Accumulate(markets, []market.ActiveEvent{ev}, 4).DemandMultiplier("national"))
}

func TestActivate_WindowFromDuration(t *testing.T) {
	ev := market.Activate(market.EventTemplate{ID: "long", Duration: 3}, 2)

	assert.Equal(t, 2, ev.StartRound)
	assert.Equal(t, 4, ev.EndRound)
	assert.True(t, ev.IsActiveAt(4))
	assert.False(t, ev.IsActiveAt(5))
	assert.True(t, ev.ExpiredAt(5))
	assert.False(t, ev.ExpiredAt(4))
}

func TestActivate_CopiesEffect(t *testing.T) {
	tpl := market.EventTemplate{ID: "x", Effect: map[string]float64{"national": 1.1}, Duration: 1}
	ev := market.Activate(tpl, 1)

	ev.Effect["national"] = 9

	assert.Equal(t, 1.1, tpl.Effect["national"])
}
