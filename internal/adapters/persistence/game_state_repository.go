package persistence

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/andrescamacho/mercado-go/internal/domain/game"
)

// GormGameStateRepository implements game.GameStateRepository using GORM
type GormGameStateRepository struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewGormGameStateRepository creates a new GORM game state repository
func NewGormGameStateRepository(db *gorm.DB, logger *slog.Logger) *GormGameStateRepository {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &GormGameStateRepository{db: db, logger: logger}
}

// Load retrieves the snapshot for gameID. A missing or unreadable snapshot
// yields the default state rather than an error.
func (r *GormGameStateRepository) Load(ctx context.Context, gameID string) (*game.GameState, error) {
	var model GameStateModel
	result := r.db.WithContext(ctx).Where("game_id = ?", gameID).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return game.DefaultState(gameID), nil
		}
		return nil, fmt.Errorf("failed to load game state: %w", result.Error)
	}

	state, err := DecodeSnapshot(model.Snapshot)
	if err != nil {
		r.logger.WarnContext(ctx, "discarding unreadable game snapshot",
			slog.String("game_id", gameID),
			slog.Any("error", err))
		return game.DefaultState(gameID), nil
	}
	if state.GameID == "" {
		state.GameID = gameID
	}
	return state, nil
}

// Save replaces the stored snapshot for state.GameID
func (r *GormGameStateRepository) Save(ctx context.Context, state *game.GameState) error {
	if state.GameID == "" {
		return fmt.Errorf("cannot save game state without a game id")
	}
	snapshot, err := EncodeSnapshot(state)
	if err != nil {
		return err
	}

	model := &GameStateModel{
		GameID:        state.GameID,
		CurrentRound:  state.CurrentRound,
		TotalRounds:   state.TotalRounds,
		PlayerCount:   len(state.Players),
		GameEnded:     state.GameEnded,
		Snapshot:      snapshot,
		CatalogDigest: state.CatalogDigest,
		CreatedAt:     state.CreatedAt,
		UpdatedAt:     state.UpdatedAt,
	}

	// Upsert: last writer wins
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "game_id"}},
		UpdateAll: true,
	}).Create(model)
	if result.Error != nil {
		return fmt.Errorf("failed to save game state: %w", result.Error)
	}
	return nil
}

// List returns a summary of every stored game, most recently updated first
func (r *GormGameStateRepository) List(ctx context.Context) ([]game.GameSummary, error) {
	var models []GameStateModel
	result := r.db.WithContext(ctx).
		Select("game_id", "current_round", "total_rounds", "player_count", "game_ended", "updated_at").
		Order("updated_at DESC").
		Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list game states: %w", result.Error)
	}

	summaries := make([]game.GameSummary, 0, len(models))
	for _, m := range models {
		summaries = append(summaries, game.GameSummary{
			GameID:       m.GameID,
			CurrentRound: m.CurrentRound,
			TotalRounds:  m.TotalRounds,
			PlayerCount:  m.PlayerCount,
			GameEnded:    m.GameEnded,
			UpdatedAt:    m.UpdatedAt,
		})
	}
	return summaries, nil
}

// Delete removes the snapshot for gameID. Deleting an unknown game is not an error.
func (r *GormGameStateRepository) Delete(ctx context.Context, gameID string) error {
	result := r.db.WithContext(ctx).Where("game_id = ?", gameID).Delete(&GameStateModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete game state: %w", result.Error)
	}
	return nil
}
