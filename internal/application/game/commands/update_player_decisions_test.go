package commands_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/mercado-go/internal/application/game/commands"
	"github.com/andrescamacho/mercado-go/internal/domain/economy"
	"github.com/andrescamacho/mercado-go/internal/domain/game"
	"github.com/andrescamacho/mercado-go/internal/domain/market"
	"github.com/andrescamacho/mercado-go/internal/domain/shared"
	"github.com/andrescamacho/mercado-go/test/helpers"
)

func TestUpdatePlayerDecisions_MergesAndPersists(t *testing.T) {
	h := newHarness(t)
	state := h.startGame(t, "Ana")

	h.decide(t, state.GameID, 1, helpers.SellBasicNationally(100, 100))
	resp := h.decide(t, state.GameID, 1, economy.Decisions{
		Production: map[market.ProductID]int{"premium": 40},
	})

	assert.Empty(t, resp.Violations)
	stored := h.load(t, state.GameID).Players[0].Decisions
	assert.Equal(t, map[market.ProductID]int{"premium": 40}, stored.Production)
	assert.Equal(t, 100.0, stored.Markets["national"].Price)
}

func TestUpdatePlayerDecisions_ReportsAdvisoryViolations(t *testing.T) {
	h := newHarness(t)
	state := h.startGame(t, "Ana")

	resp := h.decide(t, state.GameID, 1, economy.Decisions{
		Production: map[market.ProductID]int{"basic": -5},
		Markets: map[market.MarketID]economy.MarketDecision{
			"national": {Active: true, Product: "basic", Price: 500, Advertising: -1},
		},
	})

	assert.Equal(t, []string{
		"invalid production quantity for basic",
		"price out of allowed range for basic in market national",
		"invalid advertising spend for market national",
	}, resp.Violations)
	assert.Equal(t, -5, h.load(t, state.GameID).Players[0].Decisions.Production["basic"], "advisory only: still stored")
}

func TestUpdatePlayerDecisions_UnknownPlayer(t *testing.T) {
	h := newHarness(t)
	state := h.startGame(t, "Ana")
	handler := commands.NewUpdatePlayerDecisionsHandler(h.repo, h.catalogs, h.locker, h.clock)

	_, err := handler.Handle(context.Background(), &commands.UpdatePlayerDecisionsCommand{
		GameID:   state.GameID,
		PlayerID: 9,
		Partial:  helpers.SellBasicNationally(1, 100),
	})

	var nf *shared.NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestUpdatePlayerDecisions_NoGame(t *testing.T) {
	h := newHarness(t)
	handler := commands.NewUpdatePlayerDecisionsHandler(h.repo, h.catalogs, h.locker, h.clock)

	_, err := handler.Handle(context.Background(), &commands.UpdatePlayerDecisionsCommand{GameID: "missing", PlayerID: 1})

	assert.ErrorIs(t, err, game.ErrGameNotStarted)
}

func TestUpdatePlayerDecisions_RequiresGameID(t *testing.T) {
	h := newHarness(t)
	handler := commands.NewUpdatePlayerDecisionsHandler(h.repo, h.catalogs, h.locker, h.clock)

	_, err := handler.Handle(context.Background(), &commands.UpdatePlayerDecisionsCommand{PlayerID: 1})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "game_id is required")
}
