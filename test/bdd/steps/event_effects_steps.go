package steps

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/mercado-go/internal/domain/market"
	"github.com/andrescamacho/mercado-go/test/helpers"
)

type eventEffectsContext struct {
	markets []market.MarketID
	events  []market.ActiveEvent
}

func (ctx *eventEffectsContext) reset() {
	ctx.markets = nil
	ctx.events = nil
}

func (ctx *eventEffectsContext) theMarketsOfTheStandardTestCatalog() error {
	ctx.markets = helpers.TestCatalog().MarketIDs()
	return nil
}

// theseEventsActivatedInRound reads rows of id, type, key, value, duration.
// Each row is a single-key event.
func (ctx *eventEffectsContext) theseEventsActivatedInRound(round int, table *godog.Table) error {
	records, err := tableRecords(table)
	if err != nil {
		return err
	}

	for i, r := range records {
		value, err := strconv.ParseFloat(r["value"], 64)
		if err != nil {
			return fmt.Errorf("row %d: invalid value: %w", i+1, err)
		}
		duration, err := strconv.Atoi(r["duration"])
		if err != nil {
			return fmt.Errorf("row %d: invalid duration: %w", i+1, err)
		}

		ctx.events = append(ctx.events, market.Activate(market.EventTemplate{
			ID:       r["id"],
			Type:     market.EventType(r["type"]),
			Effect:   map[string]float64{r["key"]: value},
			Duration: duration,
		}, round))
	}
	return nil
}

func (ctx *eventEffectsContext) effectsAt(round int) market.EffectBundle {
	return market.Accumulate(ctx.markets, ctx.events, round)
}

func (ctx *eventEffectsContext) demandMultiplierShouldBe(round int, id string, want float64) error {
	return expectMultiplier("demand", ctx.effectsAt(round).DemandMultiplier(market.MarketID(id)), want)
}

func (ctx *eventEffectsContext) transportMultiplierShouldBe(round int, id string, want float64) error {
	return expectMultiplier("transport cost", ctx.effectsAt(round).TransportCostMultiplier(market.MarketID(id)), want)
}

func (ctx *eventEffectsContext) productionMultiplierShouldBe(round int, want float64) error {
	return expectMultiplier("production cost", ctx.effectsAt(round).ProductionCostMultiplier(), want)
}

func expectMultiplier(name string, got, want float64) error {
	if math.Abs(got-want) > 1e-9 {
		return fmt.Errorf("expected %s multiplier %v, got %v", name, want, got)
	}
	return nil
}

func InitializeEventEffectsScenario(ctx *godog.ScenarioContext) {
	effectsCtx := &eventEffectsContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		effectsCtx.reset()
		return ctx, nil
	})

	ctx.Step(`^the markets of the standard test catalog$`, effectsCtx.theMarketsOfTheStandardTestCatalog)
	ctx.Step(`^these events activated in round (\d+):$`, effectsCtx.theseEventsActivatedInRound)
	ctx.Step(`^in round (\d+) the demand multiplier for "([^"]*)" should be (\d+(?:\.\d+)?)$`, effectsCtx.demandMultiplierShouldBe)
	ctx.Step(`^in round (\d+) the transport cost multiplier for "([^"]*)" should be (\d+(?:\.\d+)?)$`, effectsCtx.transportMultiplierShouldBe)
	ctx.Step(`^in round (\d+) the production cost multiplier should be (\d+(?:\.\d+)?)$`, effectsCtx.productionMultiplierShouldBe)
}
