package economy

import (
	"math"

	"github.com/andrescamacho/mercado-go/internal/domain/market"
)

const (
	cashNormalizer       = 10000.0
	inventoryNormalizer  = 100.0
	reputationNormalizer = 100.0
)

// Standing is the post-resolution snapshot a round score is computed from
type Standing struct {
	Cash        float64
	MarketShare map[market.MarketID]float64
	Inventory   map[market.ProductID]int
	Reputation  float64
}

// Score computes floor(cash + market share + inventory + reputation
// components), each normalized and weighted. Market share is averaged over
// marketCount markets.
func Score(weights market.ScoringWeights, s Standing, marketCount int) int {
	if marketCount <= 0 {
		marketCount = 1
	}

	shareSum := 0.0
	for _, v := range s.MarketShare {
		shareSum += v
	}
	inventorySum := 0.0
	for _, v := range s.Inventory {
		inventorySum += float64(v)
	}

	cashScore := (s.Cash / cashNormalizer) * weights.CashWeight
	shareScore := (shareSum / float64(marketCount)) * weights.MarketShareWeight
	inventoryScore := (inventorySum / inventoryNormalizer) * weights.InventoryWeight
	reputationScore := (s.Reputation / reputationNormalizer) * weights.ReputationWeight

	return int(math.Floor(cashScore + shareScore + inventoryScore + reputationScore))
}
