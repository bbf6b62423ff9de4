package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/mercado-go/internal/application/common"
	"github.com/andrescamacho/mercado-go/internal/domain/game"
	"github.com/andrescamacho/mercado-go/internal/domain/market"
)

// ValidateDecisionsQuery checks pending decisions without changing anything.
// PlayerID zero checks every player.
type ValidateDecisionsQuery struct {
	GameID   string
	PlayerID int
	Strict   bool
}

// ValidateDecisionsResponse lists players with violations; empty means valid
type ValidateDecisionsResponse struct {
	Violations []game.PlayerViolations
}

// Valid reports whether no violations were found
func (r *ValidateDecisionsResponse) Valid() bool {
	return len(r.Violations) == 0
}

// ValidateDecisionsHandler handles the ValidateDecisions query
type ValidateDecisionsHandler struct {
	repo     game.GameStateRepository
	catalogs market.CatalogProvider
}

// NewValidateDecisionsHandler creates a new ValidateDecisionsHandler
func NewValidateDecisionsHandler(repo game.GameStateRepository, catalogs market.CatalogProvider) *ValidateDecisionsHandler {
	return &ValidateDecisionsHandler{repo: repo, catalogs: catalogs}
}

// Handle executes the ValidateDecisions query
func (h *ValidateDecisionsHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*ValidateDecisionsQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ValidateDecisionsQuery")
	}

	catalog, err := h.catalogs.Wait(ctx)
	if err != nil {
		return nil, err
	}
	state, err := loadGame(ctx, h.repo, query.GameID)
	if err != nil {
		return nil, err
	}

	if query.PlayerID == 0 {
		return &ValidateDecisionsResponse{Violations: game.ValidateRound(catalog, state, query.Strict)}, nil
	}

	p, err := state.FindPlayer(query.PlayerID)
	if err != nil {
		return nil, err
	}
	msgs := game.ValidateDecisions(catalog, p.Decisions)
	if query.Strict {
		msgs = append(msgs, game.CheckCompleteness(p.Decisions)...)
	}
	resp := &ValidateDecisionsResponse{}
	if len(msgs) > 0 {
		resp.Violations = []game.PlayerViolations{{PlayerID: p.ID, PlayerName: p.Name, Messages: msgs}}
	}
	return resp, nil
}
