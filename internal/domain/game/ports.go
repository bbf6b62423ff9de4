package game

import (
	"context"
	"time"
)

// GameSummary is a lightweight listing entry for a stored game
type GameSummary struct {
	GameID       string
	CurrentRound int
	TotalRounds  int
	PlayerCount  int
	GameEnded    bool
	UpdatedAt    time.Time
}

// GameStateRepository persists whole game snapshots keyed by game ID.
// Save replaces the stored snapshot; the last writer wins. Load returns
// DefaultState when nothing readable is stored.
type GameStateRepository interface {
	Load(ctx context.Context, gameID string) (*GameState, error)
	Save(ctx context.Context, state *GameState) error
	List(ctx context.Context) ([]GameSummary, error)
	Delete(ctx context.Context, gameID string) error
}
