package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/andrescamacho/mercado-go/internal/application/common"
	"github.com/andrescamacho/mercado-go/internal/domain/game"
	"github.com/andrescamacho/mercado-go/internal/domain/market"
	"github.com/andrescamacho/mercado-go/internal/domain/shared"
)

// gameSession runs a load-mutate-save cycle on one game under its lock
type gameSession struct {
	repo     game.GameStateRepository
	catalogs market.CatalogProvider
	locker   *common.GameLocker
	clock    shared.Clock
}

func newGameSession(repo game.GameStateRepository, catalogs market.CatalogProvider, locker *common.GameLocker, clock shared.Clock) gameSession {
	if locker == nil {
		locker = common.NewGameLocker()
	}
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return gameSession{repo: repo, catalogs: catalogs, locker: locker, clock: clock}
}

// mutate loads gameID, applies fn and saves the result. Nothing is saved
// when fn fails.
func (s gameSession) mutate(ctx context.Context, gameID string, fn func(state *game.GameState, catalog *market.Catalog) error) (*game.GameState, error) {
	if gameID == "" {
		return nil, fmt.Errorf("game_id is required")
	}

	catalog, err := s.catalogs.Wait(ctx)
	if err != nil {
		return nil, err
	}

	unlock := s.locker.Lock(gameID)
	defer unlock()

	state, err := s.repo.Load(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to load game %s: %w", gameID, err)
	}
	if state.CatalogDigest != "" && catalog.Digest != "" && state.CatalogDigest != catalog.Digest {
		common.LoggerFromContext(ctx).WarnContext(ctx, "game started under a different catalog",
			slog.String("game_id", gameID),
			slog.String("started_with", state.CatalogDigest),
			slog.String("current", catalog.Digest))
	}

	if err := fn(state, catalog); err != nil {
		return nil, err
	}

	state.UpdatedAt = s.clock.Now()
	if err := s.repo.Save(ctx, state); err != nil {
		return nil, fmt.Errorf("failed to save game %s: %w", gameID, err)
	}
	return state, nil
}
