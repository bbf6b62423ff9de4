package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/andrescamacho/mercado-go/internal/application/common"
	"github.com/andrescamacho/mercado-go/internal/domain/game"
)

// ClearGameCommand deletes a stored game
type ClearGameCommand struct {
	GameID string
}

// ClearGameResponse is empty; clearing an unknown game succeeds
type ClearGameResponse struct{}

// ClearGameHandler handles the ClearGame command
type ClearGameHandler struct {
	repo   game.GameStateRepository
	locker *common.GameLocker
}

// NewClearGameHandler creates a new ClearGameHandler
func NewClearGameHandler(repo game.GameStateRepository, locker *common.GameLocker) *ClearGameHandler {
	if locker == nil {
		locker = common.NewGameLocker()
	}
	return &ClearGameHandler{repo: repo, locker: locker}
}

// Handle executes the ClearGame command
func (h *ClearGameHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*ClearGameCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ClearGameCommand")
	}
	if cmd.GameID == "" {
		return nil, fmt.Errorf("game_id is required")
	}

	unlock := h.locker.Lock(cmd.GameID)
	defer unlock()

	if err := h.repo.Delete(ctx, cmd.GameID); err != nil {
		return nil, fmt.Errorf("failed to clear game: %w", err)
	}

	common.LoggerFromContext(ctx).InfoContext(ctx, "game cleared", slog.String("game_id", cmd.GameID))
	return &ClearGameResponse{}, nil
}
