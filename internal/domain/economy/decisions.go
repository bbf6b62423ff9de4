package economy

import "github.com/andrescamacho/mercado-go/internal/domain/market"

// MarketDecision is a player's entry decision for one market in one round
type MarketDecision struct {
	Active      bool             `json:"active"`
	Product     market.ProductID `json:"product"`
	Price       float64          `json:"price"`
	Advertising float64          `json:"advertising"`
}

// Decisions is the pending, single-use input of a player for one round.
type Decisions struct {
	Production map[market.ProductID]int           `json:"production,omitempty"`
	Markets    map[market.MarketID]MarketDecision `json:"markets,omitempty"`
}

// IsEmpty reports whether no production or market decision was made
func (d Decisions) IsEmpty() bool {
	return len(d.Production) == 0 && len(d.Markets) == 0
}

// Clone returns a deep copy of the decisions
func (d Decisions) Clone() Decisions {
	out := Decisions{}
	if d.Production != nil {
		out.Production = make(map[market.ProductID]int, len(d.Production))
		for k, v := range d.Production {
			out.Production[k] = v
		}
	}
	if d.Markets != nil {
		out.Markets = make(map[market.MarketID]MarketDecision, len(d.Markets))
		for k, v := range d.Markets {
			out.Markets[k] = v
		}
	}
	return out
}

// Position is the part of a player's standing the model reads: stock on hand
// and the market share accumulated in earlier rounds.
type Position struct {
	Inventory   map[market.ProductID]int
	MarketShare map[market.MarketID]float64
}
