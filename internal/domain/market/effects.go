package market

// EffectBundle aggregates the modifiers of all events active in a round.
// It is derived data: always rebuilt from the active events, never stored.
type EffectBundle struct {
	Demand                 map[MarketID]float64
	TransportCost          map[MarketID]float64
	QualitySensitivity     map[MarketID]float64
	PriceSensitivity       map[MarketID]float64
	AdvertisingSensitivity map[MarketID]float64
	ProductionCost         float64
}

// NeutralEffects returns a bundle with every multiplier at 1
func NeutralEffects(markets []MarketID) EffectBundle {
	b := EffectBundle{
		Demand:                 make(map[MarketID]float64, len(markets)),
		TransportCost:          make(map[MarketID]float64, len(markets)),
		QualitySensitivity:     make(map[MarketID]float64, len(markets)),
		PriceSensitivity:       make(map[MarketID]float64, len(markets)),
		AdvertisingSensitivity: make(map[MarketID]float64, len(markets)),
		ProductionCost:         1,
	}
	for _, m := range markets {
		b.Demand[m] = 1
		b.TransportCost[m] = 1
		b.QualitySensitivity[m] = 1
		b.PriceSensitivity[m] = 1
		b.AdvertisingSensitivity[m] = 1
	}
	return b
}

// Accumulate folds the events active at round into a fresh bundle.
//
// Demand effects add to the multiplier, so two demand events of +0.1 and +0.2
// yield 1.3. Every other per-market type multiplies. Production cost events
// multiply the scalar only when they carry an EffectKeyAll entry.
func Accumulate(markets []MarketID, events []ActiveEvent, round int) EffectBundle {
	b := NeutralEffects(markets)

	for _, ev := range events {
		if !ev.IsActiveAt(round) {
			continue
		}

		switch ev.Type {
		case EventTypeMarketDemand:
			for m, v := range ev.Effect {
				id := MarketID(m)
				b.Demand[id] = valueOrOne(b.Demand, id) + v
			}
		case EventTypeTransportCost:
			multiplyInto(b.TransportCost, ev.Effect)
		case EventTypeQualitySensitivity:
			multiplyInto(b.QualitySensitivity, ev.Effect)
		case EventTypePriceSensitivity:
			multiplyInto(b.PriceSensitivity, ev.Effect)
		case EventTypeAdvertisingSensitivity:
			multiplyInto(b.AdvertisingSensitivity, ev.Effect)
		case EventTypeProductionCost:
			if all, ok := ev.Effect[EffectKeyAll]; ok {
				b.ProductionCost *= all
			}
		}
	}

	return b
}

func multiplyInto(target map[MarketID]float64, effect map[string]float64) {
	for m, v := range effect {
		id := MarketID(m)
		target[id] = valueOrOne(target, id) * v
	}
}

func valueOrOne(m map[MarketID]float64, id MarketID) float64 {
	if v, ok := m[id]; ok {
		return v
	}
	return 1
}

// DemandMultiplier returns the accumulated demand multiplier for a market
func (b EffectBundle) DemandMultiplier(id MarketID) float64 {
	return valueOrOne(b.Demand, id)
}

// TransportCostMultiplier returns the transport cost multiplier for a market
func (b EffectBundle) TransportCostMultiplier(id MarketID) float64 {
	return valueOrOne(b.TransportCost, id)
}

// QualitySensitivityMultiplier returns the quality sensitivity multiplier for a market
func (b EffectBundle) QualitySensitivityMultiplier(id MarketID) float64 {
	return valueOrOne(b.QualitySensitivity, id)
}

// PriceSensitivityMultiplier returns the price sensitivity multiplier for a market
func (b EffectBundle) PriceSensitivityMultiplier(id MarketID) float64 {
	return valueOrOne(b.PriceSensitivity, id)
}

// AdvertisingSensitivityMultiplier returns the advertising sensitivity multiplier for a market
func (b EffectBundle) AdvertisingSensitivityMultiplier(id MarketID) float64 {
	return valueOrOne(b.AdvertisingSensitivity, id)
}

// ProductionCostMultiplier returns the production cost scalar
func (b EffectBundle) ProductionCostMultiplier() float64 {
	return b.ProductionCost
}
