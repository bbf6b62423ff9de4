package economy

import (
	"math"

	"github.com/andrescamacho/mercado-go/internal/domain/market"
)

// MarketSale is the outcome of one market entry
type MarketSale struct {
	Product       market.ProductID `json:"product,omitempty"`
	Demand        int              `json:"demand"`
	UnitsSold     int              `json:"unitsSold"`
	Price         float64          `json:"price"`
	Revenue       float64          `json:"revenue"`
	TransportCost float64          `json:"transportCost"`
}

// Costs breaks down a player's spending in a round
type Costs struct {
	Production  float64                     `json:"production"`
	Transport   map[market.MarketID]float64 `json:"transport"`
	Advertising float64                     `json:"advertising"`
}

// TotalTransport sums transport cost over all markets
func (c Costs) TotalTransport() float64 {
	total := 0.0
	for _, v := range c.Transport {
		total += v
	}
	return total
}

// Total sums every cost component
func (c Costs) Total() float64 {
	return c.Production + c.TotalTransport() + c.Advertising
}

// SalesResult is the side-effect free outcome of simulating one player's round
type SalesResult struct {
	Markets       map[market.MarketID]MarketSale `json:"markets"`
	Produced      map[market.ProductID]int       `json:"produced"`
	Costs         Costs                          `json:"costs"`
	Profit        float64                        `json:"profit"`
	UnitsProduced int                            `json:"unitsProduced"`
	UnitsSold     int                            `json:"unitsSold"`
}

// TotalRevenue sums revenue over all markets
func (r SalesResult) TotalRevenue() float64 {
	total := 0.0
	for _, s := range r.Markets {
		total += s.Revenue
	}
	return total
}

// SoldByProduct sums units sold per product across markets
func (r SalesResult) SoldByProduct() map[market.ProductID]int {
	out := make(map[market.ProductID]int)
	for _, s := range r.Markets {
		if s.UnitsSold > 0 {
			out[s.Product] += s.UnitsSold
		}
	}
	return out
}

// AddUnits adds two non-negative unit counts, saturating at math.MaxInt
func AddUnits(a, b int) int {
	if b > 0 && a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}

func newSalesResult(markets []market.MarketID) SalesResult {
	r := SalesResult{
		Markets:  make(map[market.MarketID]MarketSale, len(markets)),
		Produced: make(map[market.ProductID]int),
		Costs: Costs{
			Transport: make(map[market.MarketID]float64, len(markets)),
		},
	}
	for _, id := range markets {
		r.Markets[id] = MarketSale{}
		r.Costs.Transport[id] = 0
	}
	return r
}

// SimulatePlayerSales computes a player's round outcome without mutating the
// position. Production always succeeds in full and is available for sale in
// the same round. Markets are served in catalog order and each sale is capped
// by the stock the earlier markets left over, so a product is never sold
// beyond what is on hand. Keys missing from the catalog contribute nothing.
func (m *Model) SimulatePlayerSales(effects market.EffectBundle, pos Position, decisions Decisions) SalesResult {
	result := newSalesResult(m.catalog.MarketIDs())

	stock := make(map[market.ProductID]int, len(pos.Inventory))
	for id, qty := range pos.Inventory {
		if qty > 0 {
			stock[id] = qty
		}
	}

	for _, id := range m.catalog.ProductIDs() {
		qty, ok := decisions.Production[id]
		if !ok || qty <= 0 {
			continue
		}
		result.Costs.Production += m.ProductionCost(effects, id, qty)
		result.UnitsProduced = AddUnits(result.UnitsProduced, qty)
		result.Produced[id] = AddUnits(result.Produced[id], qty)
		stock[id] = AddUnits(stock[id], qty)
	}

	for _, id := range m.catalog.MarketIDs() {
		dec, ok := decisions.Markets[id]
		if !ok || !dec.Active {
			continue
		}

		// Advertising is committed spend whether or not anything sells.
		if dec.Advertising > 0 {
			result.Costs.Advertising += dec.Advertising
		}

		product, ok := m.catalog.Product(dec.Product)
		if !ok {
			continue
		}

		demand := m.Demand(effects, id, dec.Price, dec.Advertising, product.Quality, pos.MarketShare[id])
		sold := max(0, min(demand, stock[product.ID]))
		stock[product.ID] -= sold

		transport := m.TransportCost(effects, id, sold)
		result.Markets[id] = MarketSale{
			Product:       product.ID,
			Demand:        demand,
			UnitsSold:     sold,
			Price:         dec.Price,
			Revenue:       float64(sold) * dec.Price,
			TransportCost: transport,
		}
		result.Costs.Transport[id] = transport
		result.UnitsSold = AddUnits(result.UnitsSold, sold)
	}

	result.Profit = result.TotalRevenue() - result.Costs.Total()
	return result
}
