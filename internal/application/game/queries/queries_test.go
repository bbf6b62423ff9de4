package queries_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/mercado-go/internal/adapters/catalog"
	"github.com/andrescamacho/mercado-go/internal/adapters/persistence"
	"github.com/andrescamacho/mercado-go/internal/application/game/queries"
	"github.com/andrescamacho/mercado-go/internal/domain/economy"
	"github.com/andrescamacho/mercado-go/internal/domain/game"
	"github.com/andrescamacho/mercado-go/internal/domain/market"
	"github.com/andrescamacho/mercado-go/internal/domain/shared"
	"github.com/andrescamacho/mercado-go/test/helpers"
)

type fixture struct {
	repo     *persistence.GormGameStateRepository
	catalogs *catalog.Provider
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return &fixture{
		repo:     persistence.NewGormGameStateRepository(helpers.NewTestDB(t), nil),
		catalogs: catalog.NewProvider(&helpers.StaticCatalogSource{Catalog: helpers.TestCatalog()}, nil),
	}
}

func (f *fixture) seed(t *testing.T, id string, names ...string) *game.GameState {
	t.Helper()
	state, err := game.NewGameState(id, names, game.DefaultSettings(), helpers.TestCatalog(), helpers.Epoch)
	require.NoError(t, err)
	require.NoError(t, f.repo.Save(context.Background(), state))
	return state
}

func (f *fixture) save(t *testing.T, state *game.GameState) {
	t.Helper()
	require.NoError(t, f.repo.Save(context.Background(), state))
}

func TestGetGame_ReturnsStateAndPhase(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "g1", "Ana", "Bruno")

	resp, err := queries.NewGetGameHandler(f.repo).Handle(context.Background(), &queries.GetGameQuery{GameID: "g1"})

	require.NoError(t, err)
	out := resp.(*queries.GetGameResponse)
	assert.Equal(t, game.PhaseAwaitingDecisions, out.Phase)
	assert.Len(t, out.State.Players, 2)
	assert.Len(t, out.Standings, 2)
}

func TestGetGame_UnknownGameIsDefault(t *testing.T) {
	f := newFixture(t)

	resp, err := queries.NewGetGameHandler(f.repo).Handle(context.Background(), &queries.GetGameQuery{GameID: "nope"})

	require.NoError(t, err)
	assert.False(t, resp.(*queries.GetGameResponse).State.HasExistingGame())
}

func TestListGames_FiltersEnded(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "active", "Ana")
	ended := f.seed(t, "ended", "Ana")
	ended.End()
	ended.UpdatedAt = helpers.Epoch.Add(time.Hour)
	f.save(t, ended)
	handler := queries.NewListGamesHandler(f.repo)

	resp, err := handler.Handle(context.Background(), &queries.ListGamesQuery{})
	require.NoError(t, err)
	games := resp.(*queries.ListGamesResponse).Games
	require.Len(t, games, 1)
	assert.Equal(t, "active", games[0].GameID)

	resp, err = handler.Handle(context.Background(), &queries.ListGamesQuery{IncludeEnded: true})
	require.NoError(t, err)
	assert.Len(t, resp.(*queries.ListGamesResponse).Games, 2)
}

func TestValidateDecisions_AllPlayersAndSingle(t *testing.T) {
	f := newFixture(t)
	state := f.seed(t, "g1", "Ana", "Bruno")
	require.NoError(t, state.UpdatePlayerDecisions(2, economy.Decisions{
		Markets: map[market.MarketID]economy.MarketDecision{
			"regional": {Active: true, Product: "nonexistent", Price: 100},
		},
	}))
	f.save(t, state)
	handler := queries.NewValidateDecisionsHandler(f.repo, f.catalogs)

	resp, err := handler.Handle(context.Background(), &queries.ValidateDecisionsQuery{GameID: "g1"})
	require.NoError(t, err)
	out := resp.(*queries.ValidateDecisionsResponse)
	assert.False(t, out.Valid())
	require.Len(t, out.Violations, 1)
	assert.Equal(t, 2, out.Violations[0].PlayerID)
	assert.Equal(t, []string{"invalid product selected for market regional"}, out.Violations[0].Messages)

	resp, err = handler.Handle(context.Background(), &queries.ValidateDecisionsQuery{GameID: "g1", PlayerID: 1})
	require.NoError(t, err)
	assert.True(t, resp.(*queries.ValidateDecisionsResponse).Valid())

	resp, err = handler.Handle(context.Background(), &queries.ValidateDecisionsQuery{GameID: "g1", PlayerID: 1, Strict: true})
	require.NoError(t, err)
	strict := resp.(*queries.ValidateDecisionsResponse)
	require.Len(t, strict.Violations, 1)
	assert.Equal(t, []string{"no production defined", "no market selected"}, strict.Violations[0].Messages)
}

func TestGetForecast_UsesPlayerNoise(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "g1", "Ana", "Bruno")
	// per market: price draw, competitor draw, trend draw
	rng := &helpers.ScriptedRand{Floats: []float64{
		0.0, 0.9, 0.9, // international
		0.5, 0.1, 0.1, // national
		0.99, 0.6, 0.2, // regional
	}}
	handler := queries.NewGetForecastHandler(f.repo, f.catalogs, game.NewForecaster(rng))

	resp, err := handler.Handle(context.Background(), &queries.GetForecastQuery{GameID: "g1", PlayerID: 2})

	require.NoError(t, err)
	out := resp.(*queries.GetForecastResponse)
	assert.Equal(t, 1, out.Round)
	assert.Equal(t, []market.MarketID{"international", "national", "regional"}, out.Markets)

	national := out.Forecasts["national"]
	assert.Equal(t, 500, national.EstimatedDemand, "noise for player 2 is zero")
	assert.Equal(t, 100, national.RecommendedPrice)
	assert.Equal(t, "medium", national.CompetitorActivity)
	assert.Equal(t, "stable", national.MarketTrend)

	intl := out.Forecasts["international"]
	assert.Equal(t, 75, intl.RecommendedPrice)
	assert.Equal(t, "high", intl.CompetitorActivity)
	assert.Equal(t, "growth", intl.MarketTrend)
}

func TestGetForecast_UnknownPlayer(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "g1", "Ana")
	handler := queries.NewGetForecastHandler(f.repo, f.catalogs, game.NewForecaster(&helpers.ScriptedRand{}))

	_, err := handler.Handle(context.Background(), &queries.GetForecastQuery{GameID: "g1", PlayerID: 4})

	var nf *shared.NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestGetEffects_AccumulatesCurrentEvents(t *testing.T) {
	f := newFixture(t)
	state := f.seed(t, "g1", "Ana")
	c := helpers.TestCatalog()
	state.AddActiveEvent(*c.FindEvent("boom"))
	state.AddActiveEvent(*c.FindEvent("strike"))
	f.save(t, state)

	resp, err := queries.NewGetEffectsHandler(f.repo, f.catalogs).Handle(context.Background(), &queries.GetEffectsQuery{GameID: "g1"})

	require.NoError(t, err)
	out := resp.(*queries.GetEffectsResponse)
	assert.Len(t, out.Events, 2)
	assert.InDelta(t, 1.5, out.Effects.DemandMultiplier("national"), 1e-9)
	assert.InDelta(t, 2.0, out.Effects.TransportCostMultiplier("national"), 1e-9)
	assert.InDelta(t, 1.0, out.Effects.DemandMultiplier("regional"), 1e-9)
}
