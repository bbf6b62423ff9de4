package game

import "github.com/andrescamacho/mercado-go/internal/domain/market"

// DefaultEventProbability is the chance that a round starts with a new event
const DefaultEventProbability = 0.3

// RandomSource is the subset of *rand.Rand the game needs. Injecting it keeps
// event selection and forecast noise reproducible under a fixed seed.
type RandomSource interface {
	Float64() float64
	Intn(n int) int
}

// EventRoller picks new market events at random
type EventRoller struct {
	rng         RandomSource
	probability float64
}

// NewEventRoller creates a roller that fires with the given probability
func NewEventRoller(rng RandomSource, probability float64) *EventRoller {
	return &EventRoller{rng: rng, probability: probability}
}

// Roll returns a template to activate, or nil when no event fires this round
// or every template is already active
func (r *EventRoller) Roll(catalog *market.Catalog, active []market.ActiveEvent) *market.EventTemplate {
	if len(catalog.Events) == 0 || r.rng.Float64() >= r.probability {
		return nil
	}

	activeIDs := make(map[string]struct{}, len(active))
	for _, ev := range active {
		activeIDs[ev.ID] = struct{}{}
	}

	available := make([]market.EventTemplate, 0, len(catalog.Events))
	for _, ev := range catalog.Events {
		if _, ok := activeIDs[ev.ID]; !ok {
			available = append(available, ev)
		}
	}
	if len(available) == 0 {
		return nil
	}

	picked := available[r.rng.Intn(len(available))]
	return &picked
}
