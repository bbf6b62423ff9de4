package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/andrescamacho/mercado-go/internal/adapters/metrics"
	"github.com/andrescamacho/mercado-go/internal/application/common"
	"github.com/andrescamacho/mercado-go/internal/domain/game"
	"github.com/andrescamacho/mercado-go/internal/domain/market"
	"github.com/andrescamacho/mercado-go/internal/domain/shared"
)

// EndGameCommand marks a game as finished
type EndGameCommand struct {
	GameID string
}

// EndGameResponse carries the final standings, best first
type EndGameResponse struct {
	Standings []*game.Player
}

// EndGameHandler handles the EndGame command
type EndGameHandler struct {
	session gameSession
}

// NewEndGameHandler creates a new EndGameHandler
func NewEndGameHandler(
	repo game.GameStateRepository,
	catalogs market.CatalogProvider,
	locker *common.GameLocker,
	clock shared.Clock,
) *EndGameHandler {
	return &EndGameHandler{
		session: newGameSession(repo, catalogs, locker, clock),
	}
}

// Handle executes the EndGame command. Ending an ended game is a no-op.
func (h *EndGameHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*EndGameCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *EndGameCommand")
	}

	var alreadyEnded bool
	state, err := h.session.mutate(ctx, cmd.GameID, func(state *game.GameState, _ *market.Catalog) error {
		if !state.GameStarted {
			return game.ErrGameNotStarted
		}
		alreadyEnded = state.GameEnded
		state.End()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to end game: %w", err)
	}

	if !alreadyEnded {
		announceEnd(ctx, state)
	}
	return &EndGameResponse{Standings: state.Standings()}, nil
}

func announceEnd(ctx context.Context, state *game.GameState) {
	metrics.RecordGameEnded(state)

	attrs := []any{
		slog.String("game_id", state.GameID),
		slog.Int("rounds_played", len(state.RoundResults)),
	}
	if standings := state.Standings(); len(standings) > 0 {
		attrs = append(attrs,
			slog.String("winner", standings[0].Name),
			slog.Int("winning_score", standings[0].TotalScore))
	}
	common.LoggerFromContext(ctx).InfoContext(ctx, "game ended", attrs...)
}
