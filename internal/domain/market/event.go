package market

// EventType selects which economic parameter a market event perturbs
type EventType string

const (
	EventTypeMarketDemand           EventType = "market_demand"
	EventTypeTransportCost          EventType = "transport_cost"
	EventTypeQualitySensitivity     EventType = "quality_sensitivity"
	EventTypePriceSensitivity       EventType = "price_sensitivity"
	EventTypeAdvertisingSensitivity EventType = "advertising_sensitivity"
	EventTypeProductionCost         EventType = "production_cost"
)

// EffectKeyAll is the effect key used by production cost events
const EffectKeyAll = "all"

// IsValid reports whether t is one of the known event types
func (t EventType) IsValid() bool {
	switch t {
	case EventTypeMarketDemand, EventTypeTransportCost, EventTypeQualitySensitivity,
		EventTypePriceSensitivity, EventTypeAdvertisingSensitivity, EventTypeProductionCost:
		return true
	}
	return false
}

// EventTemplate is a catalog entry describing a possible market event.
// Effect maps market IDs to modifiers, or EffectKeyAll to a scalar for
// production cost events.
type EventTemplate struct {
	ID          string             `json:"id" yaml:"id" validate:"required"`
	Name        string             `json:"name" yaml:"name"`
	Description string             `json:"description" yaml:"description"`
	Type        EventType          `json:"type" yaml:"type" validate:"required,eventtype"`
	Effect      map[string]float64 `json:"effect" yaml:"effect"`
	Duration    int                `json:"duration" yaml:"duration" validate:"min=1"`
}

// ActiveEvent is an event template in effect for [StartRound, EndRound].
type ActiveEvent struct {
	EventTemplate
	StartRound int `json:"startRound"`
	EndRound   int `json:"endRound"`
}

// Activate stamps the template's active window starting at round.
func Activate(template EventTemplate, round int) ActiveEvent {
	duration := template.Duration
	if duration < 1 {
		duration = 1
	}

	effect := make(map[string]float64, len(template.Effect))
	for k, v := range template.Effect {
		effect[k] = v
	}
	template.Effect = effect

	return ActiveEvent{
		EventTemplate: template,
		StartRound:    round,
		EndRound:      round + duration - 1,
	}
}

// IsActiveAt reports whether round lies inside the event's window
func (e ActiveEvent) IsActiveAt(round int) bool {
	return e.StartRound <= round && e.EndRound >= round
}

// ExpiredAt reports whether the event ended before round
func (e ActiveEvent) ExpiredAt(round int) bool {
	return e.EndRound < round
}
