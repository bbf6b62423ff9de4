package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/mercado-go/internal/application/common"
	"github.com/andrescamacho/mercado-go/internal/domain/economy"
	"github.com/andrescamacho/mercado-go/internal/domain/game"
	"github.com/andrescamacho/mercado-go/internal/domain/market"
	"github.com/andrescamacho/mercado-go/internal/domain/shared"
)

// UpdatePlayerDecisionsCommand merges a partial decision set into a
// player's pending decisions. Each non-nil section replaces the stored one.
type UpdatePlayerDecisionsCommand struct {
	GameID   string
	PlayerID int
	Partial  economy.Decisions
}

// UpdatePlayerDecisionsResponse carries the merged decisions and any
// advisory violations found in them
type UpdatePlayerDecisionsResponse struct {
	Decisions  economy.Decisions
	Violations []string
}

// UpdatePlayerDecisionsHandler handles the UpdatePlayerDecisions command
type UpdatePlayerDecisionsHandler struct {
	session gameSession
}

// NewUpdatePlayerDecisionsHandler creates a new UpdatePlayerDecisionsHandler
func NewUpdatePlayerDecisionsHandler(
	repo game.GameStateRepository,
	catalogs market.CatalogProvider,
	locker *common.GameLocker,
	clock shared.Clock,
) *UpdatePlayerDecisionsHandler {
	return &UpdatePlayerDecisionsHandler{
		session: newGameSession(repo, catalogs, locker, clock),
	}
}

// Handle executes the UpdatePlayerDecisions command
func (h *UpdatePlayerDecisionsHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*UpdatePlayerDecisionsCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *UpdatePlayerDecisionsCommand")
	}

	resp := &UpdatePlayerDecisionsResponse{}
	_, err := h.session.mutate(ctx, cmd.GameID, func(state *game.GameState, catalog *market.Catalog) error {
		if err := state.UpdatePlayerDecisions(cmd.PlayerID, cmd.Partial); err != nil {
			return err
		}
		p, err := state.FindPlayer(cmd.PlayerID)
		if err != nil {
			return err
		}
		resp.Decisions = p.Decisions.Clone()
		resp.Violations = game.ValidateDecisions(catalog, p.Decisions)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update decisions: %w", err)
	}
	return resp, nil
}
