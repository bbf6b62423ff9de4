package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/mercado-go/internal/application/common"
	"github.com/andrescamacho/mercado-go/internal/domain/game"
	"github.com/andrescamacho/mercado-go/internal/domain/market"
)

// GetEffectsQuery reports the events and accumulated modifiers that apply
// to the current round
type GetEffectsQuery struct {
	GameID string
}

// GetEffectsResponse holds the current events and their combined effect
type GetEffectsResponse struct {
	Round   int
	Markets []market.MarketID
	Events  []market.ActiveEvent
	Effects market.EffectBundle
}

// GetEffectsHandler handles the GetEffects query
type GetEffectsHandler struct {
	repo     game.GameStateRepository
	catalogs market.CatalogProvider
}

// NewGetEffectsHandler creates a new GetEffectsHandler
func NewGetEffectsHandler(repo game.GameStateRepository, catalogs market.CatalogProvider) *GetEffectsHandler {
	return &GetEffectsHandler{repo: repo, catalogs: catalogs}
}

// Handle executes the GetEffects query
func (h *GetEffectsHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*GetEffectsQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetEffectsQuery")
	}

	catalog, err := h.catalogs.Wait(ctx)
	if err != nil {
		return nil, err
	}
	state, err := loadGame(ctx, h.repo, query.GameID)
	if err != nil {
		return nil, err
	}

	return &GetEffectsResponse{
		Round:   state.CurrentRound,
		Markets: catalog.MarketIDs(),
		Events:  state.CurrentEvents(),
		Effects: state.Effects(catalog),
	}, nil
}
