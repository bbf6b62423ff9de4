package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/mercado-go/internal/application/common"
	"github.com/andrescamacho/mercado-go/internal/domain/game"
	"github.com/andrescamacho/mercado-go/internal/domain/market"
	"github.com/andrescamacho/mercado-go/internal/domain/shared"
)

// FinishRoundCommand validates all pending decisions, resolves the round and
// then either advances to the next round or ends the game.
//
// With Enforce set, any violation aborts the round with a
// *game.ValidationFailure and nothing is saved. Strict additionally treats
// empty production or no active market as violations.
type FinishRoundCommand struct {
	GameID  string
	Enforce bool
	Strict  bool
}

// FinishRoundResponse represents a finished round
type FinishRoundResponse struct {
	Round      int
	Results    []game.PlayerRoundResult
	Violations []game.PlayerViolations
	NextRound  int
	GameEnded  bool
	Standings  []*game.Player
}

// FinishRoundHandler handles the FinishRound command
type FinishRoundHandler struct {
	session gameSession
}

// NewFinishRoundHandler creates a new FinishRoundHandler
func NewFinishRoundHandler(
	repo game.GameStateRepository,
	catalogs market.CatalogProvider,
	locker *common.GameLocker,
	clock shared.Clock,
) *FinishRoundHandler {
	return &FinishRoundHandler{
		session: newGameSession(repo, catalogs, locker, clock),
	}
}

// Handle executes the FinishRound command
func (h *FinishRoundHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*FinishRoundCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *FinishRoundCommand")
	}

	resp := &FinishRoundResponse{}
	state, err := h.session.mutate(ctx, cmd.GameID, func(state *game.GameState, catalog *market.Catalog) error {
		resp.Violations = game.ValidateRound(catalog, state, cmd.Strict)
		if cmd.Enforce && len(resp.Violations) > 0 {
			return &game.ValidationFailure{Violations: resp.Violations}
		}

		results, err := resolveRound(state, catalog)
		if err != nil {
			return err
		}
		resp.Round = state.CurrentRound
		resp.Results = results

		if !state.NextRound() {
			state.End()
		}
		resp.NextRound = state.CurrentRound
		resp.GameEnded = state.GameEnded
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to finish round: %w", err)
	}

	logRound(ctx, state, resp.Round, resp.Results)
	if resp.GameEnded {
		announceEnd(ctx, state)
		resp.Standings = state.Standings()
	}
	return resp, nil
}
