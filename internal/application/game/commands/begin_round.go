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

// BeginRoundCommand opens the current round: expired events are dropped and
// a new market event may fire
type BeginRoundCommand struct {
	GameID string
}

// BeginRoundResponse describes the opened round
type BeginRoundResponse struct {
	Round        int
	Expired      []market.ActiveEvent
	Triggered    *market.ActiveEvent
	ActiveEvents []market.ActiveEvent
	AlreadyOpen  bool
}

// BeginRoundHandler handles the BeginRound command
type BeginRoundHandler struct {
	session gameSession
	roller  *game.EventRoller
}

// NewBeginRoundHandler creates a new BeginRoundHandler
func NewBeginRoundHandler(
	repo game.GameStateRepository,
	catalogs market.CatalogProvider,
	locker *common.GameLocker,
	clock shared.Clock,
	roller *game.EventRoller,
) *BeginRoundHandler {
	return &BeginRoundHandler{
		session: newGameSession(repo, catalogs, locker, clock),
		roller:  roller,
	}
}

// Handle executes the BeginRound command
func (h *BeginRoundHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*BeginRoundCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *BeginRoundCommand")
	}

	resp := &BeginRoundResponse{}
	state, err := h.session.mutate(ctx, cmd.GameID, func(state *game.GameState, catalog *market.Catalog) error {
		opening, err := state.OpenRound(catalog, h.roller)
		if err != nil {
			return err
		}
		resp.Round = opening.Round
		resp.Expired = opening.Expired
		resp.Triggered = opening.Triggered
		resp.AlreadyOpen = opening.AlreadyOpen
		resp.ActiveEvents = state.CurrentEvents()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to begin round: %w", err)
	}

	logger := common.LoggerFromContext(ctx)
	for _, ev := range resp.Expired {
		logger.InfoContext(ctx, "market event expired",
			slog.String("game_id", state.GameID),
			slog.String("event", ev.ID))
	}
	if ev := resp.Triggered; ev != nil {
		metrics.RecordEventTriggered(string(ev.Type))
		logger.InfoContext(ctx, "market event triggered",
			slog.String("game_id", state.GameID),
			slog.String("event", ev.ID),
			slog.String("type", string(ev.Type)),
			slog.Int("start_round", ev.StartRound),
			slog.Int("end_round", ev.EndRound))
	}
	return resp, nil
}
