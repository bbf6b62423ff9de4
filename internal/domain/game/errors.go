package game

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/andrescamacho/mercado-go/internal/domain/shared"
)

var (
	// ErrGameNotStarted is returned when a lifecycle operation targets a game
	// that was never initialized
	ErrGameNotStarted = errors.New("game not started")

	// ErrGameEnded is returned when a lifecycle operation targets a finished game
	ErrGameEnded = errors.New("game already ended")

	// ErrRoundInProgress is returned when a round is resolved re-entrantly
	ErrRoundInProgress = errors.New("round already in progress")

	// ErrNoPlayers is returned when a game is created without players
	ErrNoPlayers = errors.New("at least one player is required")
)

// NewPlayerNotFoundError reports an unknown player ID
func NewPlayerNotFoundError(playerID int) *shared.NotFoundError {
	return shared.NewNotFoundError("player", strconv.Itoa(playerID))
}

// PlayerViolations lists the decision problems of one player
type PlayerViolations struct {
	PlayerID   int
	PlayerName string
	Messages   []string
}

// ValidationFailure is a recoverable rejection of pending decisions. It never
// reflects a state mutation: callers surface it and let players correct input.
type ValidationFailure struct {
	Violations []PlayerViolations
}

func (e *ValidationFailure) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, fmt.Sprintf("%s: %s", v.PlayerName, strings.Join(v.Messages, ", ")))
	}
	return "invalid decisions: " + strings.Join(parts, "; ")
}
