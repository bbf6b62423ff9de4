package game

import (
	"fmt"
	"sort"

	"github.com/andrescamacho/mercado-go/internal/domain/economy"
	"github.com/andrescamacho/mercado-go/internal/domain/market"
)

// ValidateDecisions returns human readable violations of decisions against
// the catalog, production first and then markets, each in key order. An empty
// result means the decisions are valid. Unknown products and active entries
// for unknown markets are reported; inactive entries are never checked. It
// never mutates anything.
func ValidateDecisions(catalog *market.Catalog, d economy.Decisions) []string {
	var violations []string

	products := make([]market.ProductID, 0, len(d.Production))
	for id := range d.Production {
		products = append(products, id)
	}
	sort.Slice(products, func(i, j int) bool { return products[i] < products[j] })
	for _, id := range products {
		if _, ok := catalog.Product(id); !ok {
			violations = append(violations, fmt.Sprintf("unknown product %s", id))
			continue
		}
		if d.Production[id] < 0 {
			violations = append(violations, fmt.Sprintf("invalid production quantity for %s", id))
		}
	}

	markets := make([]market.MarketID, 0, len(d.Markets))
	for id := range d.Markets {
		markets = append(markets, id)
	}
	sort.Slice(markets, func(i, j int) bool { return markets[i] < markets[j] })
	for _, id := range markets {
		dec := d.Markets[id]
		if !dec.Active {
			continue
		}
		if _, ok := catalog.Market(id); !ok {
			violations = append(violations, fmt.Sprintf("unknown market %s", id))
			continue
		}

		product, ok := catalog.Product(dec.Product)
		if dec.Product == "" || !ok {
			violations = append(violations, fmt.Sprintf("invalid product selected for market %s", id))
		}
		if ok && !product.PriceInRange(dec.Price) {
			violations = append(violations, fmt.Sprintf("price out of allowed range for %s in market %s", dec.Product, id))
		}
		if dec.Advertising < 0 {
			violations = append(violations, fmt.Sprintf("invalid advertising spend for market %s", id))
		}
	}

	return violations
}

// CheckCompleteness reports decisions that would make a round a no-op:
// nothing produced, or no market entered
func CheckCompleteness(d economy.Decisions) []string {
	var missing []string

	hasProduction := false
	for _, qty := range d.Production {
		if qty > 0 {
			hasProduction = true
			break
		}
	}
	hasMarkets := false
	for _, m := range d.Markets {
		if m.Active {
			hasMarkets = true
			break
		}
	}

	if !hasProduction {
		missing = append(missing, "no production defined")
	}
	if !hasMarkets {
		missing = append(missing, "no market selected")
	}
	return missing
}

// ValidateRound checks every player's pending decisions. When strict is set,
// incomplete decisions count as violations too.
func ValidateRound(catalog *market.Catalog, state *GameState, strict bool) []PlayerViolations {
	var out []PlayerViolations
	for _, p := range state.Players {
		msgs := ValidateDecisions(catalog, p.Decisions)
		if strict {
			msgs = append(msgs, CheckCompleteness(p.Decisions)...)
		}
		if len(msgs) > 0 {
			out = append(out, PlayerViolations{PlayerID: p.ID, PlayerName: p.Name, Messages: msgs})
		}
	}
	return out
}
