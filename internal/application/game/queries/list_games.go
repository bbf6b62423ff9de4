package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/mercado-go/internal/application/common"
	"github.com/andrescamacho/mercado-go/internal/domain/game"
)

// ListGamesQuery lists stored games
type ListGamesQuery struct {
	IncludeEnded bool
}

// ListGamesResponse contains the matching games, most recent first
type ListGamesResponse struct {
	Games []game.GameSummary
}

// ListGamesHandler handles the ListGames query
type ListGamesHandler struct {
	repo game.GameStateRepository
}

// NewListGamesHandler creates a new ListGamesHandler
func NewListGamesHandler(repo game.GameStateRepository) *ListGamesHandler {
	return &ListGamesHandler{repo: repo}
}

// Handle executes the ListGames query
func (h *ListGamesHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*ListGamesQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListGamesQuery")
	}

	all, err := h.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}

	games := make([]game.GameSummary, 0, len(all))
	for _, g := range all {
		if g.GameEnded && !query.IncludeEnded {
			continue
		}
		games = append(games, g)
	}
	return &ListGamesResponse{Games: games}, nil
}
