package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/mercado-go/internal/adapters/catalog"
	"github.com/andrescamacho/mercado-go/internal/application/game/commands"
	"github.com/andrescamacho/mercado-go/internal/domain/game"
	"github.com/andrescamacho/mercado-go/internal/domain/market"
	"github.com/andrescamacho/mercado-go/test/helpers"
)

func TestInitNewGame_PersistsFreshGame(t *testing.T) {
	h := newHarness(t)

	state := h.startGame(t, "Ana", "Bruno", "Carla")

	assert.NotEmpty(t, state.GameID)
	stored := h.load(t, state.GameID)
	assert.True(t, stored.HasExistingGame())
	assert.Len(t, stored.Players, 3)
	assert.Equal(t, 1, stored.CurrentRound)
	assert.True(t, helpers.Epoch.Equal(stored.CreatedAt))
	assert.True(t, helpers.Epoch.Equal(stored.UpdatedAt))
}

func TestInitNewGame_ReplacesExistingGame(t *testing.T) {
	h := newHarness(t)
	first := h.startGame(t, "Ana")
	h.decide(t, first.GameID, 1, helpers.SellBasicNationally(10, 100))
	h.clock.Advance(time.Minute)

	handler := commands.NewInitNewGameHandler(h.repo, h.catalogs, h.locker, h.clock, game.DefaultSettings())
	resp, err := handler.Handle(context.Background(), &commands.InitNewGameCommand{
		GameID:      first.GameID,
		PlayerNames: []string{"Zoe", "Yuri"},
		TotalRounds: 8,
	})

	require.NoError(t, err)
	out := resp.(*commands.InitNewGameResponse)
	assert.True(t, out.Replaced)
	stored := h.load(t, first.GameID)
	require.Len(t, stored.Players, 2)
	assert.Equal(t, "Zoe", stored.Players[0].Name)
	assert.True(t, stored.Players[0].Decisions.IsEmpty())
	assert.Equal(t, 8, stored.TotalRounds)
}

func TestInitNewGame_RequiresPlayers(t *testing.T) {
	h := newHarness(t)
	handler := commands.NewInitNewGameHandler(h.repo, h.catalogs, h.locker, h.clock, game.DefaultSettings())

	_, err := handler.Handle(context.Background(), &commands.InitNewGameCommand{GameID: "g", PlayerNames: []string{" "}})

	assert.ErrorIs(t, err, game.ErrNoPlayers)
	assert.False(t, h.load(t, "g").GameStarted, "nothing saved")
}

func TestInitNewGame_ConfigurationUnavailable(t *testing.T) {
	h := newHarness(t)
	broken := catalog.NewProvider(&helpers.StaticCatalogSource{Err: errors.New("tables missing")}, nil)
	handler := commands.NewInitNewGameHandler(h.repo, broken, h.locker, h.clock, game.DefaultSettings())

	_, err := handler.Handle(context.Background(), &commands.InitNewGameCommand{PlayerNames: []string{"Ana"}})

	require.Error(t, err)
	assert.True(t, market.IsConfigurationUnavailable(err))
}

func TestInitNewGame_RejectsWrongRequestType(t *testing.T) {
	h := newHarness(t)
	handler := commands.NewInitNewGameHandler(h.repo, h.catalogs, h.locker, h.clock, game.DefaultSettings())

	_, err := handler.Handle(context.Background(), &commands.EndGameCommand{})

	assert.ErrorContains(t, err, "invalid request type")
}
