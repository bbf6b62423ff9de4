package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/andrescamacho/mercado-go/internal/adapters/metrics"
	"github.com/andrescamacho/mercado-go/internal/application/common"
	"github.com/andrescamacho/mercado-go/internal/domain/game"
	"github.com/andrescamacho/mercado-go/internal/domain/market"
	"github.com/andrescamacho/mercado-go/internal/domain/shared"
)

// InitNewGameCommand starts a fresh game. An existing game stored under
// GameID is replaced.
type InitNewGameCommand struct {
	GameID      string // optional; generated when empty
	PlayerNames []string
	TotalRounds int // optional; handler default when zero
}

// InitNewGameResponse represents the newly created game
type InitNewGameResponse struct {
	State    *game.GameState
	Replaced bool
}

// InitNewGameHandler handles the InitNewGame command
type InitNewGameHandler struct {
	session  gameSession
	settings game.Settings
}

// NewInitNewGameHandler creates a new InitNewGameHandler
func NewInitNewGameHandler(
	repo game.GameStateRepository,
	catalogs market.CatalogProvider,
	locker *common.GameLocker,
	clock shared.Clock,
	settings game.Settings,
) *InitNewGameHandler {
	return &InitNewGameHandler{
		session:  newGameSession(repo, catalogs, locker, clock),
		settings: settings,
	}
}

// Handle executes the InitNewGame command
func (h *InitNewGameHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*InitNewGameCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *InitNewGameCommand")
	}

	gameID := cmd.GameID
	if gameID == "" {
		gameID = uuid.NewString()
	}
	settings := h.settings
	if cmd.TotalRounds > 0 {
		settings.TotalRounds = cmd.TotalRounds
	}

	var replaced bool
	state, err := h.session.mutate(ctx, gameID, func(existing *game.GameState, catalog *market.Catalog) error {
		replaced = existing.GameStarted

		fresh, err := game.NewGameState(gameID, cmd.PlayerNames, settings, catalog, h.session.clock.Now())
		if err != nil {
			return err
		}
		fresh.CatalogDigest = catalog.Digest
		*existing = *fresh
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start game: %w", err)
	}

	metrics.RecordGameStarted(len(state.Players))
	common.LoggerFromContext(ctx).InfoContext(ctx, "game started",
		slog.String("game_id", state.GameID),
		slog.Int("players", len(state.Players)),
		slog.Int("total_rounds", state.TotalRounds),
		slog.Bool("replaced", replaced))

	return &InitNewGameResponse{State: state, Replaced: replaced}, nil
}
