// Package game holds the canonical state of a game and the round protocol
// that advances it: decision updates, event lifecycle and round resolution.
package game

import (
	"sort"
	"strings"
	"time"

	"github.com/andrescamacho/mercado-go/internal/domain/economy"
	"github.com/andrescamacho/mercado-go/internal/domain/market"
)

// Defaults applied when a game is created without explicit settings
const (
	DefaultTotalRounds        = 5
	DefaultStartingCash       = 50000.0
	DefaultStartingReputation = 50.0
)

// Settings fixes the parameters of a new game
type Settings struct {
	TotalRounds        int
	StartingCash       float64
	StartingReputation float64
}

// DefaultSettings returns the standard game parameters
func DefaultSettings() Settings {
	return Settings{
		TotalRounds:        DefaultTotalRounds,
		StartingCash:       DefaultStartingCash,
		StartingReputation: DefaultStartingReputation,
	}
}

// PlayerRoundResult is one player's line in a round report
type PlayerRoundResult struct {
	PlayerID    int                         `json:"playerId"`
	PlayerName  string                      `json:"playerName"`
	Results     economy.SalesResult         `json:"results"`
	Score       int                         `json:"score"`
	Cash        float64                     `json:"cash"`
	MarketShare map[market.MarketID]float64 `json:"marketShare"`
}

// RoundResult is the history record of a resolved round
type RoundResult struct {
	Round   int                 `json:"round"`
	Results []PlayerRoundResult `json:"results"`
}

// GameState is the sole unit of persistence: it is always loaded and saved
// as a whole.
type GameState struct {
	GameID        string               `json:"gameId"`
	Players       []*Player            `json:"players"`
	CurrentRound  int                  `json:"currentRound"`
	TotalRounds   int                  `json:"totalRounds"`
	GameStarted   bool                 `json:"gameStarted"`
	GameEnded     bool                 `json:"gameEnded"`
	ActiveEvents  []market.ActiveEvent `json:"activeEvents"`
	RoundResults  []RoundResult        `json:"roundResults"`
	CatalogDigest string               `json:"catalogDigest,omitempty"`
	OpenedRound   int                  `json:"openedRound,omitempty"`
	CreatedAt     time.Time            `json:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt"`

	resolving bool
}

// DefaultState returns the empty, not-started state used when nothing (or
// nothing readable) is stored for gameID
func DefaultState(gameID string) *GameState {
	return &GameState{
		GameID:       gameID,
		Players:      []*Player{},
		CurrentRound: 1,
		TotalRounds:  DefaultTotalRounds,
		ActiveEvents: []market.ActiveEvent{},
		RoundResults: []RoundResult{},
	}
}

// NewGameState starts a game at round 1 with one player per name.
// Player IDs are assigned 1..n in the order given.
func NewGameState(gameID string, playerNames []string, settings Settings, catalog *market.Catalog, now time.Time) (*GameState, error) {
	names := make([]string, 0, len(playerNames))
	for _, n := range playerNames {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	if len(names) == 0 {
		return nil, ErrNoPlayers
	}
	if settings.TotalRounds < 1 {
		settings.TotalRounds = DefaultTotalRounds
	}

	s := DefaultState(gameID)
	s.TotalRounds = settings.TotalRounds
	s.GameStarted = true
	s.CreatedAt = now
	s.UpdatedAt = now
	for i, name := range names {
		s.Players = append(s.Players, NewPlayer(i+1, name, settings.StartingCash, settings.StartingReputation, catalog))
	}
	return s, nil
}

// HasExistingGame reports whether the state holds a game still in play
func (s *GameState) HasExistingGame() bool {
	return s.GameStarted && !s.GameEnded
}

// FindPlayer returns the player with the given ID
func (s *GameState) FindPlayer(playerID int) (*Player, error) {
	for _, p := range s.Players {
		if p.ID == playerID {
			return p, nil
		}
	}
	return nil, NewPlayerNotFoundError(playerID)
}

// UpdatePlayerDecisions shallow-merges partial into a player's pending decisions
func (s *GameState) UpdatePlayerDecisions(playerID int, partial economy.Decisions) error {
	if err := s.ensureOpen(); err != nil {
		return err
	}
	p, err := s.FindPlayer(playerID)
	if err != nil {
		return err
	}
	p.MergeDecisions(partial)
	return nil
}

// NextRound advances the round counter. It returns false when the game is
// already at its last round.
func (s *GameState) NextRound() bool {
	if s.GameEnded || s.CurrentRound >= s.TotalRounds {
		return false
	}
	s.CurrentRound++
	return true
}

// End marks the game as terminal
func (s *GameState) End() {
	s.GameEnded = true
}

// IsLastRound reports whether the current round is the final one
func (s *GameState) IsLastRound() bool {
	return s.CurrentRound >= s.TotalRounds
}

// AddActiveEvent activates template starting at the current round
func (s *GameState) AddActiveEvent(template market.EventTemplate) market.ActiveEvent {
	ev := market.Activate(template, s.CurrentRound)
	s.ActiveEvents = append(s.ActiveEvents, ev)
	return ev
}

// CleanExpiredEvents drops events whose window ended before the current
// round and returns them. It must run before effects are accumulated.
func (s *GameState) CleanExpiredEvents() []market.ActiveEvent {
	var expired []market.ActiveEvent
	kept := make([]market.ActiveEvent, 0, len(s.ActiveEvents))
	for _, ev := range s.ActiveEvents {
		if ev.ExpiredAt(s.CurrentRound) {
			expired = append(expired, ev)
			continue
		}
		kept = append(kept, ev)
	}
	s.ActiveEvents = kept
	return expired
}

// RoundOpening reports what changed when a round was opened
type RoundOpening struct {
	Round       int
	Expired     []market.ActiveEvent
	Triggered   *market.ActiveEvent
	AlreadyOpen bool
}

// OpenRound prepares the current round: expired events are swept and, the
// first time a round is opened, the roller may trigger a new event.
func (s *GameState) OpenRound(catalog *market.Catalog, roller *EventRoller) (RoundOpening, error) {
	if err := s.ensureOpen(); err != nil {
		return RoundOpening{}, err
	}

	opening := RoundOpening{Round: s.CurrentRound, Expired: s.CleanExpiredEvents()}
	if s.OpenedRound == s.CurrentRound {
		opening.AlreadyOpen = true
		return opening, nil
	}
	s.OpenedRound = s.CurrentRound

	if roller != nil {
		if tpl := roller.Roll(catalog, s.ActiveEvents); tpl != nil {
			ev := s.AddActiveEvent(*tpl)
			opening.Triggered = &ev
		}
	}
	return opening, nil
}

// CurrentEvents returns the events whose window contains the current round
func (s *GameState) CurrentEvents() []market.ActiveEvent {
	out := make([]market.ActiveEvent, 0, len(s.ActiveEvents))
	for _, ev := range s.ActiveEvents {
		if ev.IsActiveAt(s.CurrentRound) {
			out = append(out, ev)
		}
	}
	return out
}

// Effects accumulates the events active in the current round
func (s *GameState) Effects(catalog *market.Catalog) market.EffectBundle {
	return market.Accumulate(catalog.MarketIDs(), s.ActiveEvents, s.CurrentRound)
}

// Standings returns players ordered by total score, highest first
func (s *GameState) Standings() []*Player {
	out := make([]*Player, len(s.Players))
	copy(out, s.Players)
	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalScore > out[j].TotalScore })
	return out
}
