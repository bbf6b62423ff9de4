package persistence

import (
	"time"
)

// GameStateModel represents the game_states table. The whole game lives in
// Snapshot; the remaining columns are denormalised for listing.
type GameStateModel struct {
	GameID        string    `gorm:"column:game_id;primaryKey"`
	CurrentRound  int       `gorm:"column:current_round;not null"`
	TotalRounds   int       `gorm:"column:total_rounds;not null"`
	PlayerCount   int       `gorm:"column:player_count;not null;default:0"`
	GameEnded     bool      `gorm:"column:game_ended;not null;default:false"`
	Snapshot      []byte    `gorm:"column:snapshot;not null"` // zstd-compressed JSON
	CatalogDigest string    `gorm:"column:catalog_digest"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at;index"`
}

func (GameStateModel) TableName() string {
	return "game_states"
}
