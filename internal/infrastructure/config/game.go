package config

// DefaultEventProbability is the chance that a round starts with a new event
const DefaultEventProbability = 0.3

// GameConfig holds the parameters of new games and the location of the
// market, product and event tables
type GameConfig struct {
	// Directory holding markets, products and events tables (.json or .yaml)
	TablesDir string `mapstructure:"tables_dir" validate:"required"`

	// Rounds per game
	TotalRounds int `mapstructure:"total_rounds" validate:"min=1,max=100"`

	// Cash every player starts with
	StartingCash float64 `mapstructure:"starting_cash" validate:"gte=0"`

	// Reputation every player starts with (static during a game)
	StartingReputation float64 `mapstructure:"starting_reputation" validate:"gte=0,lte=100"`

	// Chance that a round starts with a new market event
	EventProbability float64 `mapstructure:"event_probability" validate:"gte=0,lte=1"`

	// Seed for event selection and forecast noise; 0 picks a time-based seed
	Seed int64 `mapstructure:"seed"`
}
