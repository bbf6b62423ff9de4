package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/mercado-go/internal/application/common"
	"github.com/andrescamacho/mercado-go/internal/domain/game"
	"github.com/andrescamacho/mercado-go/internal/domain/market"
)

// GetForecastQuery produces a noisy market outlook for one player
type GetForecastQuery struct {
	GameID   string
	PlayerID int
}

// GetForecastResponse holds per-market forecasts for the current round
type GetForecastResponse struct {
	Round     int
	Markets   []market.MarketID
	Forecasts map[market.MarketID]game.MarketForecast
}

// GetForecastHandler handles the GetForecast query
type GetForecastHandler struct {
	repo       game.GameStateRepository
	catalogs   market.CatalogProvider
	forecaster *game.Forecaster
}

// NewGetForecastHandler creates a new GetForecastHandler
func NewGetForecastHandler(repo game.GameStateRepository, catalogs market.CatalogProvider, forecaster *game.Forecaster) *GetForecastHandler {
	return &GetForecastHandler{repo: repo, catalogs: catalogs, forecaster: forecaster}
}

// Handle executes the GetForecast query
func (h *GetForecastHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*GetForecastQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetForecastQuery")
	}

	catalog, err := h.catalogs.Wait(ctx)
	if err != nil {
		return nil, err
	}
	state, err := loadGame(ctx, h.repo, query.GameID)
	if err != nil {
		return nil, err
	}
	if _, err := state.FindPlayer(query.PlayerID); err != nil {
		return nil, err
	}

	return &GetForecastResponse{
		Round:     state.CurrentRound,
		Markets:   catalog.MarketIDs(),
		Forecasts: h.forecaster.Forecast(catalog, state.Effects(catalog), query.PlayerID),
	}, nil
}
