package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/mercado-go/internal/application/common"
	"github.com/andrescamacho/mercado-go/internal/domain/game"
)

// GetGameQuery loads a game snapshot. Unknown games yield the default,
// not-started state.
type GetGameQuery struct {
	GameID string
}

// GetGameResponse represents a game and its derived standing
type GetGameResponse struct {
	State     *game.GameState
	Phase     game.Phase
	Standings []*game.Player
}

// GetGameHandler handles the GetGame query
type GetGameHandler struct {
	repo game.GameStateRepository
}

// NewGetGameHandler creates a new GetGameHandler
func NewGetGameHandler(repo game.GameStateRepository) *GetGameHandler {
	return &GetGameHandler{repo: repo}
}

// Handle executes the GetGame query
func (h *GetGameHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*GetGameQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetGameQuery")
	}

	state, err := loadGame(ctx, h.repo, query.GameID)
	if err != nil {
		return nil, err
	}

	return &GetGameResponse{
		State:     state,
		Phase:     state.Phase(),
		Standings: state.Standings(),
	}, nil
}

func loadGame(ctx context.Context, repo game.GameStateRepository, gameID string) (*game.GameState, error) {
	if gameID == "" {
		return nil, fmt.Errorf("game_id is required")
	}
	state, err := repo.Load(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to load game %s: %w", gameID, err)
	}
	return state, nil
}
