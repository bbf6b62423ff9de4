package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/mercado-go/internal/application/common"
	"github.com/andrescamacho/mercado-go/internal/domain/game"
	"github.com/andrescamacho/mercado-go/internal/domain/market"
	"github.com/andrescamacho/mercado-go/internal/domain/shared"
)

// NextRoundCommand advances the round counter
type NextRoundCommand struct {
	GameID string
}

// NextRoundResponse reports whether the game moved to a new round
type NextRoundResponse struct {
	Advanced     bool
	CurrentRound int
}

// NextRoundHandler handles the NextRound command
type NextRoundHandler struct {
	session gameSession
}

// NewNextRoundHandler creates a new NextRoundHandler
func NewNextRoundHandler(
	repo game.GameStateRepository,
	catalogs market.CatalogProvider,
	locker *common.GameLocker,
	clock shared.Clock,
) *NextRoundHandler {
	return &NextRoundHandler{
		session: newGameSession(repo, catalogs, locker, clock),
	}
}

// Handle executes the NextRound command
func (h *NextRoundHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*NextRoundCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *NextRoundCommand")
	}

	resp := &NextRoundResponse{}
	_, err := h.session.mutate(ctx, cmd.GameID, func(state *game.GameState, _ *market.Catalog) error {
		if !state.GameStarted {
			return game.ErrGameNotStarted
		}
		resp.Advanced = state.NextRound()
		resp.CurrentRound = state.CurrentRound
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to advance round: %w", err)
	}
	return resp, nil
}
