package market_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/mercado-go/internal/domain/market"
)

func TestNewCatalog_StampsIDsAndOrders(t *testing.T) {
	c := market.NewCatalog(
		map[market.MarketID]market.Market{
			"regional": {Name: "Regional"},
			"national": {Name: "National"},
		},
		map[market.ProductID]market.Product{
			"premium": {Name: "Premium"},
			"basic":   {Name: "Basic"},
		},
		[]market.EventTemplate{{ID: "crisis"}},
		market.ScoringWeights{CashWeight: 1},
	)

	assert.Equal(t, []market.MarketID{"national", "regional"}, c.MarketIDs())
	assert.Equal(t, []market.ProductID{"basic", "premium"}, c.ProductIDs())

	m, ok := c.Market("regional")
	require.True(t, ok)
	assert.Equal(t, market.MarketID("regional"), m.ID)

	_, ok = c.Product("deluxe")
	assert.False(t, ok)

	require.NotNil(t, c.FindEvent("crisis"))
	assert.Nil(t, c.FindEvent("nope"))
}

func TestProduct_PriceInRangeIsInclusive(t *testing.T) {
	p := market.Product{MinPrice: 50, MaxPrice: 150}

	assert.True(t, p.PriceInRange(50))
	assert.True(t, p.PriceInRange(150))
	assert.False(t, p.PriceInRange(49.99))
	assert.False(t, p.PriceInRange(150.01))
}

func TestConfigurationUnavailableError(t *testing.T) {
	err := market.NewConfigurationUnavailableError(market.ErrMissingTable)

	assert.True(t, market.IsConfigurationUnavailable(err))
	assert.ErrorIs(t, err, market.ErrMissingTable)
	assert.Contains(t, err.Error(), "configuration unavailable")
}
