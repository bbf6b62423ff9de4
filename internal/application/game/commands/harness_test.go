package commands_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/mercado-go/internal/adapters/catalog"
	"github.com/andrescamacho/mercado-go/internal/adapters/persistence"
	"github.com/andrescamacho/mercado-go/internal/application/common"
	"github.com/andrescamacho/mercado-go/internal/application/game/commands"
	"github.com/andrescamacho/mercado-go/internal/domain/economy"
	"github.com/andrescamacho/mercado-go/internal/domain/game"
	"github.com/andrescamacho/mercado-go/internal/domain/shared"
	"github.com/andrescamacho/mercado-go/test/helpers"
)

type harness struct {
	repo     *persistence.GormGameStateRepository
	catalogs *catalog.Provider
	locker   *common.GameLocker
	clock    *shared.MockClock
	rng      *helpers.ScriptedRand
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return &harness{
		repo:     persistence.NewGormGameStateRepository(helpers.NewTestDB(t), nil),
		catalogs: catalog.NewProvider(&helpers.StaticCatalogSource{Catalog: helpers.TestCatalog()}, nil),
		locker:   common.NewGameLocker(),
		clock:    shared.NewMockClock(helpers.Epoch),
		rng:      &helpers.ScriptedRand{},
	}
}

func (h *harness) startGame(t *testing.T, names ...string) *game.GameState {
	t.Helper()
	handler := commands.NewInitNewGameHandler(h.repo, h.catalogs, h.locker, h.clock, game.DefaultSettings())
	resp, err := handler.Handle(context.Background(), &commands.InitNewGameCommand{PlayerNames: names})
	require.NoError(t, err)
	return resp.(*commands.InitNewGameResponse).State
}

func (h *harness) decide(t *testing.T, gameID string, playerID int, d economy.Decisions) *commands.UpdatePlayerDecisionsResponse {
	t.Helper()
	handler := commands.NewUpdatePlayerDecisionsHandler(h.repo, h.catalogs, h.locker, h.clock)
	resp, err := handler.Handle(context.Background(), &commands.UpdatePlayerDecisionsCommand{
		GameID:   gameID,
		PlayerID: playerID,
		Partial:  d,
	})
	require.NoError(t, err)
	return resp.(*commands.UpdatePlayerDecisionsResponse)
}

func (h *harness) load(t *testing.T, gameID string) *game.GameState {
	t.Helper()
	state, err := h.repo.Load(context.Background(), gameID)
	require.NoError(t, err)
	return state
}
