package game

import (
	"github.com/andrescamacho/mercado-go/internal/domain/economy"
	"github.com/andrescamacho/mercado-go/internal/domain/market"
)

// maxMarketShare is the ceiling of a player's share in any market
const maxMarketShare = 100.0

// Player is a company competing in the game
type Player struct {
	ID          int                         `json:"id"`
	Name        string                      `json:"name"`
	Cash        float64                     `json:"cash"`
	Inventory   map[market.ProductID]int    `json:"inventory"`
	MarketShare map[market.MarketID]float64 `json:"marketShare"`
	Reputation  float64                     `json:"reputation"`
	Decisions   economy.Decisions           `json:"decisions"`
	RoundScores []int                       `json:"roundScores"`
	TotalScore  int                         `json:"totalScore"`
}

// NewPlayer creates a player with empty stock and no market share in every
// product and market of the catalog
func NewPlayer(id int, name string, cash, reputation float64, catalog *market.Catalog) *Player {
	p := &Player{
		ID:          id,
		Name:        name,
		Cash:        cash,
		Inventory:   make(map[market.ProductID]int),
		MarketShare: make(map[market.MarketID]float64),
		Reputation:  reputation,
		RoundScores: []int{},
	}
	for _, id := range catalog.ProductIDs() {
		p.Inventory[id] = 0
	}
	for _, id := range catalog.MarketIDs() {
		p.MarketShare[id] = 0
	}
	return p
}

// Position returns the inputs the economic model reads from the player
func (p *Player) Position() economy.Position {
	return economy.Position{
		Inventory:   p.Inventory,
		MarketShare: p.MarketShare,
	}
}

// MergeDecisions shallow-merges partial into the pending decisions: a
// non-nil Production or Markets map replaces the pending one wholesale.
func (p *Player) MergeDecisions(partial economy.Decisions) {
	partial = partial.Clone()
	if partial.Production != nil {
		p.Decisions.Production = partial.Production
	}
	if partial.Markets != nil {
		p.Decisions.Markets = partial.Markets
	}
}

// ClearDecisions discards the pending decisions after they were resolved
func (p *Player) ClearDecisions() {
	p.Decisions = economy.Decisions{}
}

// ApplyResult folds a round outcome into the player's persistent attributes
func (p *Player) ApplyResult(result economy.SalesResult) {
	if p.Inventory == nil {
		p.Inventory = make(map[market.ProductID]int)
	}
	if p.MarketShare == nil {
		p.MarketShare = make(map[market.MarketID]float64)
	}

	p.Cash += result.Profit

	for id, qty := range result.Produced {
		p.Inventory[id] = economy.AddUnits(p.Inventory[id], qty)
	}

	for id, sale := range result.Markets {
		if sale.Product == "" {
			continue
		}
		p.Inventory[sale.Product] = max(0, p.Inventory[sale.Product]-sale.UnitsSold)
		p.MarketShare[id] = min(maxMarketShare, p.MarketShare[id]+float64(sale.UnitsSold)/100)
	}
}

// RecordScore appends a round score and resums the total
func (p *Player) RecordScore(score int) {
	p.RoundScores = append(p.RoundScores, score)
	total := 0
	for _, s := range p.RoundScores {
		total += s
	}
	p.TotalScore = total
}

// Standing returns the snapshot used for scoring
func (p *Player) Standing() economy.Standing {
	return economy.Standing{
		Cash:        p.Cash,
		MarketShare: p.MarketShare,
		Inventory:   p.Inventory,
		Reputation:  p.Reputation,
	}
}

func copyShares(in map[market.MarketID]float64) map[market.MarketID]float64 {
	out := make(map[market.MarketID]float64, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
