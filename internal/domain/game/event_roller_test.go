package game_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/mercado-go/internal/domain/game"
	"github.com/andrescamacho/mercado-go/internal/domain/market"
)

func TestEventRoller_NoEventAboveProbability(t *testing.T) {
	roller := game.NewEventRoller(&fixedRand{floats: []float64{0.3}}, 0.3)

	assert.Nil(t, roller.Roll(testCatalog(), nil))
}

func TestEventRoller_SkipsActiveEvents(t *testing.T) {
	c := testCatalog()
	active := []market.ActiveEvent{market.Activate(*c.FindEvent("boom"), 1)}
	roller := game.NewEventRoller(&fixedRand{floats: []float64{0.1}, ints: []int{0}}, 0.3)

	ev := roller.Roll(c, active)

	require.NotNil(t, ev)
	assert.Equal(t, "strike", ev.ID)
}

func TestEventRoller_NothingLeftToActivate(t *testing.T) {
	c := testCatalog()
	active := []market.ActiveEvent{
		market.Activate(*c.FindEvent("boom"), 1),
		market.Activate(*c.FindEvent("strike"), 1),
	}
	roller := game.NewEventRoller(&fixedRand{floats: []float64{0}}, 1)

	assert.Nil(t, roller.Roll(c, active))
}

func TestForecaster_NoiseByPlayer(t *testing.T) {
	c := testCatalog()
	f := game.NewForecaster(&fixedRand{floats: []float64{0.5, 0.9, 0.1}})

	fc := f.Forecast(c, market.NeutralEffects(c.MarketIDs()), 4)

	// international is served first: 800 * (1 + 0.2)
	intl := fc["international"]
	assert.Equal(t, 960, intl.EstimatedDemand)
	assert.Equal(t, 100, intl.RecommendedPrice)
	assert.Equal(t, "high", intl.CompetitorActivity)
	assert.Equal(t, "stable", intl.MarketTrend)

	for id, m := range fc {
		assert.GreaterOrEqual(t, m.RecommendedPrice, 75, "market %s", id)
		assert.Less(t, m.RecommendedPrice, 125, "market %s", id)
	}
}
