package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/andrescamacho/mercado-go/internal/adapters/metrics"
	"github.com/andrescamacho/mercado-go/internal/application/common"
	"github.com/andrescamacho/mercado-go/internal/domain/economy"
	"github.com/andrescamacho/mercado-go/internal/domain/game"
	"github.com/andrescamacho/mercado-go/internal/domain/market"
	"github.com/andrescamacho/mercado-go/internal/domain/shared"
)

// ProcessRoundCommand resolves the current round without advancing it
type ProcessRoundCommand struct {
	GameID string
}

// ProcessRoundResponse represents the resolved round
type ProcessRoundResponse struct {
	Round   int
	Results []game.PlayerRoundResult
}

// ProcessRoundHandler handles the ProcessRound command
type ProcessRoundHandler struct {
	session gameSession
}

// NewProcessRoundHandler creates a new ProcessRoundHandler
func NewProcessRoundHandler(
	repo game.GameStateRepository,
	catalogs market.CatalogProvider,
	locker *common.GameLocker,
	clock shared.Clock,
) *ProcessRoundHandler {
	return &ProcessRoundHandler{
		session: newGameSession(repo, catalogs, locker, clock),
	}
}

// Handle executes the ProcessRound command
func (h *ProcessRoundHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*ProcessRoundCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ProcessRoundCommand")
	}

	resp := &ProcessRoundResponse{}
	state, err := h.session.mutate(ctx, cmd.GameID, func(state *game.GameState, catalog *market.Catalog) error {
		results, err := resolveRound(state, catalog)
		if err != nil {
			return err
		}
		resp.Round = state.CurrentRound
		resp.Results = results
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to process round: %w", err)
	}

	logRound(ctx, state, resp.Round, resp.Results)
	return resp, nil
}

func resolveRound(state *game.GameState, catalog *market.Catalog) ([]game.PlayerRoundResult, error) {
	return game.NewResolver(economy.NewModel(catalog)).ProcessRound(state)
}

func logRound(ctx context.Context, state *game.GameState, round int, results []game.PlayerRoundResult) {
	metrics.RecordRoundResolved(state, results)

	logger := common.LoggerFromContext(ctx)
	for _, r := range results {
		logger.DebugContext(ctx, "player round result",
			slog.String("game_id", state.GameID),
			slog.Int("round", round),
			slog.Int("player_id", r.PlayerID),
			slog.Float64("profit", r.Results.Profit),
			slog.Int("score", r.Score))
	}
	logger.InfoContext(ctx, "round resolved",
		slog.String("game_id", state.GameID),
		slog.Int("round", round),
		slog.Int("players", len(results)))
}
