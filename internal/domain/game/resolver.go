package game

import (
	"github.com/andrescamacho/mercado-go/internal/domain/economy"
)

// Resolver applies the economic model to every player of a game for one round
type Resolver struct {
	model *economy.Model
}

// NewResolver creates a resolver around model
func NewResolver(model *economy.Model) *Resolver {
	return &Resolver{model: model}
}

// ProcessRound resolves the current round in place:
//   - expired events are swept before effects are accumulated
//   - each player's pending decisions are simulated and applied
//   - a score is appended and the total resummed
//   - decisions are cleared and the round appended to the history
//
// Unknown product or market keys in decisions contribute nothing. The round
// counter is not advanced; see NextRound.
func (r *Resolver) ProcessRound(state *GameState) ([]PlayerRoundResult, error) {
	if err := state.beginResolution(); err != nil {
		return nil, err
	}
	defer state.finishResolution()

	catalog := r.model.Catalog()
	state.CleanExpiredEvents()
	effects := state.Effects(catalog)
	marketCount := len(catalog.MarketIDs())

	results := make([]PlayerRoundResult, 0, len(state.Players))
	for _, p := range state.Players {
		sales := r.model.SimulatePlayerSales(effects, p.Position(), p.Decisions)
		p.ApplyResult(sales)

		score := economy.Score(catalog.Scoring, p.Standing(), marketCount)
		p.RecordScore(score)

		results = append(results, PlayerRoundResult{
			PlayerID:    p.ID,
			PlayerName:  p.Name,
			Results:     sales,
			Score:       score,
			Cash:        p.Cash,
			MarketShare: copyShares(p.MarketShare),
		})

		p.ClearDecisions()
	}

	state.RoundResults = append(state.RoundResults, RoundResult{
		Round:   state.CurrentRound,
		Results: results,
	})
	return results, nil
}
