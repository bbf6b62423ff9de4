package steps

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/mercado-go/internal/adapters/catalog"
	"github.com/andrescamacho/mercado-go/internal/adapters/persistence"
	"github.com/andrescamacho/mercado-go/internal/application/game/commands"
	"github.com/andrescamacho/mercado-go/internal/application/mediator"
	"github.com/andrescamacho/mercado-go/internal/application/setup"
	"github.com/andrescamacho/mercado-go/internal/domain/economy"
	"github.com/andrescamacho/mercado-go/internal/domain/game"
	"github.com/andrescamacho/mercado-go/internal/domain/market"
	"github.com/andrescamacho/mercado-go/internal/domain/shared"
	"github.com/andrescamacho/mercado-go/test/helpers"
)

type roundContext struct {
	catalog  *market.Catalog
	repo     *persistence.GormGameStateRepository
	rng      *helpers.ScriptedRand
	mediator mediator.Mediator

	gameID string
	finish *commands.FinishRoundResponse
	begin  *commands.BeginRoundResponse
	err    error
}

func (ctx *roundContext) reset() {
	ctx.gameID = ""
	ctx.finish = nil
	ctx.begin = nil
	ctx.err = nil

	// Truncate all tables for test isolation
	if err := helpers.TruncateAllTables(); err != nil {
		panic(fmt.Errorf("failed to truncate tables: %w", err))
	}

	ctx.repo = persistence.NewGormGameStateRepository(helpers.SharedTestDB, nil)
	ctx.rng = &helpers.ScriptedRand{}
}

func (ctx *roundContext) buildMediator() error {
	registry := setup.NewHandlerRegistry(
		ctx.repo,
		catalog.NewProvider(&helpers.StaticCatalogSource{Catalog: ctx.catalog}, nil),
		shared.NewMockClock(helpers.Epoch),
		game.DefaultSettings(),
		ctx.rng,
		game.DefaultEventProbability,
		nil,
	)
	m, err := registry.CreateConfiguredMediator()
	if err != nil {
		return fmt.Errorf("failed to configure mediator: %w", err)
	}
	ctx.mediator = m
	return nil
}

// Given steps

func (ctx *roundContext) theStandardTestCatalog() error {
	ctx.catalog = helpers.TestCatalog()
	return ctx.buildMediator()
}

func (ctx *roundContext) aNewGameWithPlayers(names string) error {
	return ctx.startGame(names, 0)
}

func (ctx *roundContext) aNewGameWithPlayersLastingRounds(names string, rounds int) error {
	return ctx.startGame(names, rounds)
}

func (ctx *roundContext) startGame(names string, rounds int) error {
	var players []string
	for _, n := range strings.Split(names, ",") {
		players = append(players, strings.TrimSpace(n))
	}

	resp, err := mediator.Send[*commands.InitNewGameResponse](context.Background(), ctx.mediator, &commands.InitNewGameCommand{
		PlayerNames: players,
		TotalRounds: rounds,
	})
	if err != nil {
		return err
	}
	ctx.gameID = resp.State.GameID
	return nil
}

func (ctx *roundContext) theNextEventRollPicks(eventID string) error {
	for i, ev := range ctx.catalog.Events {
		if ev.ID == eventID {
			// the first roll fires and picks the event, the one after stays quiet
			ctx.rng.Floats = []float64{0, 0.99}
			ctx.rng.Ints = []int{i}
			return nil
		}
	}
	return fmt.Errorf("event %q not in catalog", eventID)
}

// When steps

func (ctx *roundContext) playerProducesAndSells(playerID, qty int, product, marketID string, price, advertising float64) error {
	_, err := mediator.Send[*commands.UpdatePlayerDecisionsResponse](context.Background(), ctx.mediator, &commands.UpdatePlayerDecisionsCommand{
		GameID:   ctx.gameID,
		PlayerID: playerID,
		Partial: economy.Decisions{
			Production: map[market.ProductID]int{market.ProductID(product): qty},
			Markets: map[market.MarketID]economy.MarketDecision{
				market.MarketID(marketID): {
					Active:      true,
					Product:     market.ProductID(product),
					Price:       price,
					Advertising: advertising,
				},
			},
		},
	})
	return err
}

func (ctx *roundContext) theRoundBegins() error {
	resp, err := mediator.Send[*commands.BeginRoundResponse](context.Background(), ctx.mediator, &commands.BeginRoundCommand{GameID: ctx.gameID})
	if err != nil {
		return err
	}
	ctx.begin = resp
	return nil
}

func (ctx *roundContext) theRoundIsFinished() error {
	return ctx.finishRound(false)
}

func (ctx *roundContext) theRoundIsFinishedWithEnforcedValidation() error {
	ctx.err = ctx.finishRound(true)
	return nil
}

func (ctx *roundContext) finishRound(enforce bool) error {
	resp, err := mediator.Send[*commands.FinishRoundResponse](context.Background(), ctx.mediator, &commands.FinishRoundCommand{
		GameID:  ctx.gameID,
		Enforce: enforce,
	})
	if err != nil {
		return err
	}
	ctx.finish = resp
	return nil
}

// Then steps

func (ctx *roundContext) theRoundShouldSucceed() error {
	if ctx.err != nil {
		return fmt.Errorf("expected success, got %v", ctx.err)
	}
	if ctx.finish == nil {
		return fmt.Errorf("no round was finished")
	}
	return nil
}

func (ctx *roundContext) theRoundShouldBeRejectedWith(message string) error {
	var failure *game.ValidationFailure
	if !errors.As(ctx.err, &failure) {
		return fmt.Errorf("expected a validation failure, got %v", ctx.err)
	}
	if !strings.Contains(failure.Error(), message) {
		return fmt.Errorf("expected rejection containing %q, got %q", message, failure.Error())
	}
	return nil
}

func (ctx *roundContext) load() (*game.GameState, error) {
	return ctx.repo.Load(context.Background(), ctx.gameID)
}

func (ctx *roundContext) player(id int) (*game.Player, error) {
	state, err := ctx.load()
	if err != nil {
		return nil, err
	}
	for _, p := range state.Players {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, fmt.Errorf("player %d not found", id)
}

func (ctx *roundContext) playerShouldHaveCash(id int, cash float64) error {
	p, err := ctx.player(id)
	if err != nil {
		return err
	}
	if math.Abs(p.Cash-cash) > 1e-6 {
		return fmt.Errorf("expected player %d cash %.2f, got %.2f", id, cash, p.Cash)
	}
	return nil
}

func (ctx *roundContext) playerShouldHaveInInventory(id, qty int, product string) error {
	p, err := ctx.player(id)
	if err != nil {
		return err
	}
	if got := p.Inventory[market.ProductID(product)]; got != qty {
		return fmt.Errorf("expected player %d to hold %d %s, got %d", id, qty, product, got)
	}
	return nil
}

func (ctx *roundContext) playerShouldHaveMarketShareIn(id int, share float64, marketID string) error {
	p, err := ctx.player(id)
	if err != nil {
		return err
	}
	if got := p.MarketShare[market.MarketID(marketID)]; math.Abs(got-share) > 1e-9 {
		return fmt.Errorf("expected player %d share %.2f in %s, got %.2f", id, share, marketID, got)
	}
	return nil
}

func (ctx *roundContext) playerShouldHaveSoldUnitsIn(id, units int, marketID string) error {
	if ctx.finish == nil {
		return fmt.Errorf("no round was finished")
	}
	for _, r := range ctx.finish.Results {
		if r.PlayerID != id {
			continue
		}
		if got := r.Results.Markets[market.MarketID(marketID)].UnitsSold; got != units {
			return fmt.Errorf("expected player %d to sell %d in %s, got %d", id, units, marketID, got)
		}
		return nil
	}
	return fmt.Errorf("no result for player %d", id)
}

func (ctx *roundContext) theGameShouldBeInRound(round int) error {
	state, err := ctx.load()
	if err != nil {
		return err
	}
	if state.CurrentRound != round {
		return fmt.Errorf("expected round %d, got %d", round, state.CurrentRound)
	}
	return nil
}

func (ctx *roundContext) theEventShouldHaveExpired(eventID string) error {
	if ctx.begin == nil {
		return fmt.Errorf("no round was begun")
	}
	for _, ev := range ctx.begin.Expired {
		if ev.ID == eventID {
			return nil
		}
	}
	return fmt.Errorf("event %q did not expire", eventID)
}

func (ctx *roundContext) theGameShouldHaveEnded() error {
	state, err := ctx.load()
	if err != nil {
		return err
	}
	if !state.GameEnded {
		return fmt.Errorf("expected game to have ended at round %d", state.CurrentRound)
	}
	return nil
}

func (ctx *roundContext) shouldLeadTheStandings(name string) error {
	if ctx.finish == nil || len(ctx.finish.Standings) == 0 {
		return fmt.Errorf("no standings available")
	}
	if got := ctx.finish.Standings[0].Name; got != name {
		return fmt.Errorf("expected %s to lead, got %s", name, got)
	}
	return nil
}

func (ctx *roundContext) finishingAnotherRoundShouldFailBecauseTheGameEnded() error {
	err := ctx.finishRound(false)
	if !errors.Is(err, game.ErrGameEnded) {
		return fmt.Errorf("expected ErrGameEnded, got %v", err)
	}
	return nil
}

func InitializeRoundScenario(ctx *godog.ScenarioContext) {
	roundCtx := &roundContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		roundCtx.reset()
		return ctx, nil
	})

	// Register steps
	ctx.Step(`^the standard test catalog$`, roundCtx.theStandardTestCatalog)
	ctx.Step(`^a new game with players "([^"]*)"$`, roundCtx.aNewGameWithPlayers)
	ctx.Step(`^a new game with players "([^"]*)" lasting (\d+) rounds$`, roundCtx.aNewGameWithPlayersLastingRounds)
	ctx.Step(`^the next event roll picks "([^"]*)"$`, roundCtx.theNextEventRollPicks)
	ctx.Step(`^player (\d+) produces (\d+) "([^"]*)" and sells in "([^"]*)" at (\d+(?:\.\d+)?) with (\d+(?:\.\d+)?) advertising$`, roundCtx.playerProducesAndSells)
	ctx.Step(`^the round begins$`, roundCtx.theRoundBegins)
	ctx.Step(`^the round is finished$`, roundCtx.theRoundIsFinished)
	ctx.Step(`^the round is finished with enforced validation$`, roundCtx.theRoundIsFinishedWithEnforcedValidation)
	ctx.Step(`^the round should succeed$`, roundCtx.theRoundShouldSucceed)
	ctx.Step(`^the round should be rejected with "([^"]*)"$`, roundCtx.theRoundShouldBeRejectedWith)
	ctx.Step(`^player (\d+) should have cash (\d+(?:\.\d+)?)$`, roundCtx.playerShouldHaveCash)
	ctx.Step(`^player (\d+) should have (\d+) "([^"]*)" in inventory$`, roundCtx.playerShouldHaveInInventory)
	ctx.Step(`^player (\d+) should have market share (\d+(?:\.\d+)?) in "([^"]*)"$`, roundCtx.playerShouldHaveMarketShareIn)
	ctx.Step(`^player (\d+) should have sold (\d+) units in "([^"]*)"$`, roundCtx.playerShouldHaveSoldUnitsIn)
	ctx.Step(`^the game should be in round (\d+)$`, roundCtx.theGameShouldBeInRound)
	ctx.Step(`^the event "([^"]*)" should have expired$`, roundCtx.theEventShouldHaveExpired)
	ctx.Step(`^the game should have ended$`, roundCtx.theGameShouldHaveEnded)
	ctx.Step(`^"([^"]*)" should lead the standings$`, roundCtx.shouldLeadTheStandings)
	ctx.Step(`^finishing another round should fail because the game ended$`, roundCtx.finishingAnotherRoundShouldFailBecauseTheGameEnded)
}
