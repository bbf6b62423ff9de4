package market

import "sort"

// MarketID identifies a sales channel such as "national" or "international"
type MarketID string

// ProductID identifies a manufacturable product such as "basic" or "deluxe"
type ProductID string

// Market is an immutable demand curve definition for one sales channel.
type Market struct {
	ID                     MarketID `json:"id" yaml:"id"`
	Name                   string   `json:"name" yaml:"name" validate:"required"`
	BaseDemand             float64  `json:"baseDemand" yaml:"baseDemand" validate:"gte=0"`
	PriceSensitivity       float64  `json:"priceSensitivity" yaml:"priceSensitivity" validate:"gte=0"`
	AdvertisingSensitivity float64  `json:"advertisingSensitivity" yaml:"advertisingSensitivity" validate:"gte=0"`
	QualitySensitivity     float64  `json:"qualitySensitivity" yaml:"qualitySensitivity" validate:"gte=0"`
	TransportCost          float64  `json:"transportCost" yaml:"transportCost" validate:"gte=0"`
}

// Product is an immutable product definition.
type Product struct {
	ID             ProductID `json:"id" yaml:"id"`
	Name           string    `json:"name" yaml:"name" validate:"required"`
	ProductionCost float64   `json:"productionCost" yaml:"productionCost" validate:"gte=0"`
	Quality        float64   `json:"quality" yaml:"quality" validate:"gt=0"`
	MinPrice       float64   `json:"minPrice" yaml:"minPrice" validate:"gt=0"`
	MaxPrice       float64   `json:"maxPrice" yaml:"maxPrice" validate:"gtefield=MinPrice"`
}

// PriceInRange reports whether price lies within [MinPrice, MaxPrice]
func (p Product) PriceInRange(price float64) bool {
	return price >= p.MinPrice && price <= p.MaxPrice
}

// ScoringWeights weighs the normalized components of a round score.
type ScoringWeights struct {
	CashWeight        float64 `json:"cashWeight" yaml:"cashWeight"`
	MarketShareWeight float64 `json:"marketShareWeight" yaml:"marketShareWeight"`
	InventoryWeight   float64 `json:"inventoryWeight" yaml:"inventoryWeight"`
	ReputationWeight  float64 `json:"reputationWeight" yaml:"reputationWeight"`
}

// Catalog bundles the read-only configuration tables of a game.
type Catalog struct {
	Markets  map[MarketID]Market
	Products map[ProductID]Product
	Events   []EventTemplate
	Scoring  ScoringWeights

	// Digest fingerprints the source tables; empty for catalogs built in code
	Digest string

	marketOrder  []MarketID
	productOrder []ProductID
}

// NewCatalog creates a catalog and stamps map keys into the entries' IDs.
// Iteration order over markets and products is lexical by ID.
func NewCatalog(markets map[MarketID]Market, products map[ProductID]Product, events []EventTemplate, scoring ScoringWeights) *Catalog {
	c := &Catalog{
		Markets:  make(map[MarketID]Market, len(markets)),
		Products: make(map[ProductID]Product, len(products)),
		Events:   make([]EventTemplate, len(events)),
		Scoring:  scoring,
	}

	for id, m := range markets {
		m.ID = id
		c.Markets[id] = m
		c.marketOrder = append(c.marketOrder, id)
	}
	for id, p := range products {
		p.ID = id
		c.Products[id] = p
		c.productOrder = append(c.productOrder, id)
	}
	copy(c.Events, events)

	sort.Slice(c.marketOrder, func(i, j int) bool { return c.marketOrder[i] < c.marketOrder[j] })
	sort.Slice(c.productOrder, func(i, j int) bool { return c.productOrder[i] < c.productOrder[j] })
	return c
}

// MarketIDs returns the configured market IDs in iteration order
func (c *Catalog) MarketIDs() []MarketID {
	ids := make([]MarketID, len(c.marketOrder))
	copy(ids, c.marketOrder)
	return ids
}

// ProductIDs returns the configured product IDs in iteration order
func (c *Catalog) ProductIDs() []ProductID {
	ids := make([]ProductID, len(c.productOrder))
	copy(ids, c.productOrder)
	return ids
}

// Market looks up a market by ID
func (c *Catalog) Market(id MarketID) (Market, bool) {
	m, ok := c.Markets[id]
	return m, ok
}

// Product looks up a product by ID
func (c *Catalog) Product(id ProductID) (Product, bool) {
	p, ok := c.Products[id]
	return p, ok
}

// FindEvent returns the event template with the given ID
func (c *Catalog) FindEvent(id string) *EventTemplate {
	for i := range c.Events {
		if c.Events[i].ID == id {
			ev := c.Events[i]
			return &ev
		}
	}
	return nil
}
