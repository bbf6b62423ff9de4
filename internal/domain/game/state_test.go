package game_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/mercado-go/internal/domain/economy"
	"github.com/andrescamacho/mercado-go/internal/domain/game"
	"github.com/andrescamacho/mercado-go/internal/domain/market"
	"github.com/andrescamacho/mercado-go/internal/domain/shared"
)

func TestNewGameState_InitialPlayers(t *testing.T) {
	s := newGame(t, "Ana", " ", "Bruno")

	require.Len(t, s.Players, 2)
	assert.Equal(t, 1, s.CurrentRound)
	assert.Equal(t, game.DefaultTotalRounds, s.TotalRounds)
	assert.True(t, s.GameStarted)
	assert.False(t, s.GameEnded)
	assert.Equal(t, game.PhaseAwaitingDecisions, s.Phase())

	p := s.Players[1]
	assert.Equal(t, 2, p.ID)
	assert.Equal(t, "Bruno", p.Name)
	assert.Equal(t, game.DefaultStartingCash, p.Cash)
	assert.Equal(t, game.DefaultStartingReputation, p.Reputation)
	assert.Equal(t, map[market.ProductID]int{"basic": 0, "premium": 0}, p.Inventory)
	assert.Len(t, p.MarketShare, 3)
	assert.True(t, p.Decisions.IsEmpty())
}

func TestNewGameState_RequiresPlayers(t *testing.T) {
	_, err := game.NewGameState("g", []string{"", "  "}, game.DefaultSettings(), testCatalog(), epoch)
	assert.ErrorIs(t, err, game.ErrNoPlayers)
}

func TestUpdatePlayerDecisions_ShallowMerge(t *testing.T) {
	s := newGame(t, "Ana")

	require.NoError(t, s.UpdatePlayerDecisions(1, sellBasicNationally(10, 100)))
	require.NoError(t, s.UpdatePlayerDecisions(1, economy.Decisions{
		Production: map[market.ProductID]int{"premium": 5},
	}))

	d := s.Players[0].Decisions
	assert.Equal(t, map[market.ProductID]int{"premium": 5}, d.Production)
	assert.True(t, d.Markets["national"].Active, "markets untouched by a production-only update")
}

func TestUpdatePlayerDecisions_UnknownPlayer(t *testing.T) {
	s := newGame(t, "Ana")

	err := s.UpdatePlayerDecisions(7, economy.Decisions{})

	var nf *shared.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "7", nf.Key)
}

func TestUpdatePlayerDecisions_EndedGame(t *testing.T) {
	s := newGame(t, "Ana")
	s.End()

	assert.ErrorIs(t, s.UpdatePlayerDecisions(1, economy.Decisions{}), game.ErrGameEnded)
}

func TestNextRound_StopsAtTotalRounds(t *testing.T) {
	s := newGame(t, "Ana")
	s.TotalRounds = 2

	assert.True(t, s.NextRound())
	assert.Equal(t, 2, s.CurrentRound)
	assert.True(t, s.IsLastRound())
	assert.False(t, s.NextRound())
	assert.Equal(t, 2, s.CurrentRound)
}

func TestEventLifecycle_AddCleanAndCurrent(t *testing.T) {
	s := newGame(t, "Ana")
	c := testCatalog()

	ev := s.AddActiveEvent(*c.FindEvent("boom"))
	assert.Equal(t, 1, ev.StartRound)
	assert.Equal(t, 1, ev.EndRound)
	s.AddActiveEvent(*c.FindEvent("strike"))

	assert.Len(t, s.CurrentEvents(), 2)
	assert.InDelta(t, 1.5, s.Effects(c).DemandMultiplier("national"), 1e-9)

	s.NextRound()
	expired := s.CleanExpiredEvents()

	require.Len(t, expired, 1)
	assert.Equal(t, "boom", expired[0].ID)
	require.Len(t, s.ActiveEvents, 1)
	assert.Equal(t, "strike", s.ActiveEvents[0].ID)
	assert.Equal(t, 1.0, s.Effects(c).DemandMultiplier("national"))
	assert.Equal(t, 2.0, s.Effects(c).TransportCostMultiplier("national"))
}

func TestStandings_OrderedByTotalScore(t *testing.T) {
	s := newGame(t, "Ana", "Bruno", "Caio")
	s.Players[0].TotalScore = 3
	s.Players[1].TotalScore = 9
	s.Players[2].TotalScore = 5

	got := s.Standings()

	assert.Equal(t, []string{"Bruno", "Caio", "Ana"}, []string{got[0].Name, got[1].Name, got[2].Name})
	assert.Equal(t, "Ana", s.Players[0].Name, "standings must not reorder players")
}

func TestDefaultState_NotStarted(t *testing.T) {
	s := game.DefaultState("x")

	assert.False(t, s.HasExistingGame())
	assert.Equal(t, 1, s.CurrentRound)
	assert.Empty(t, s.Players)
}

func TestOpenRound_TriggersOncePerRound(t *testing.T) {
	s := newGame(t, "Ana")
	roller := game.NewEventRoller(&fixedRand{floats: []float64{0.1, 0.1}, ints: []int{0, 0}}, 0.3)

	first, err := s.OpenRound(testCatalog(), roller)
	require.NoError(t, err)
	require.NotNil(t, first.Triggered)
	assert.Equal(t, "boom", first.Triggered.ID)
	assert.Equal(t, 1, first.Triggered.StartRound)

	again, err := s.OpenRound(testCatalog(), roller)
	require.NoError(t, err)
	assert.True(t, again.AlreadyOpen)
	assert.Nil(t, again.Triggered)
	assert.Len(t, s.ActiveEvents, 1)
}

func TestOpenRound_SweepsExpiredEvents(t *testing.T) {
	s := newGame(t, "Ana")
	s.AddActiveEvent(*testCatalog().FindEvent("boom"))
	s.NextRound()

	opening, err := s.OpenRound(testCatalog(), game.NewEventRoller(&fixedRand{floats: []float64{0.9}}, 0.3))

	require.NoError(t, err)
	assert.Equal(t, 2, opening.Round)
	require.Len(t, opening.Expired, 1)
	assert.Equal(t, "boom", opening.Expired[0].ID)
	assert.Nil(t, opening.Triggered)
	assert.Empty(t, s.ActiveEvents)
}

func TestOpenRound_RejectsClosedGames(t *testing.T) {
	_, err := game.DefaultState("g").OpenRound(testCatalog(), nil)
	assert.ErrorIs(t, err, game.ErrGameNotStarted)

	s := newGame(t, "Ana")
	s.End()
	_, err = s.OpenRound(testCatalog(), nil)
	assert.ErrorIs(t, err, game.ErrGameEnded)
}
