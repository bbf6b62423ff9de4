package game

// Phase is the position of a game in the round protocol
type Phase string

const (
	// PhaseAwaitingDecisions means players may still edit pending decisions
	PhaseAwaitingDecisions Phase = "AWAITING_DECISIONS"

	// PhaseRoundInProgress is the transient phase while a round is resolved
	PhaseRoundInProgress Phase = "ROUND_IN_PROGRESS"

	// PhaseEnded is terminal
	PhaseEnded Phase = "ENDED"
)

// Phase returns the current phase of the game
func (s *GameState) Phase() Phase {
	switch {
	case s.GameEnded:
		return PhaseEnded
	case s.resolving:
		return PhaseRoundInProgress
	default:
		return PhaseAwaitingDecisions
	}
}

// beginResolution transitions AWAITING_DECISIONS → ROUND_IN_PROGRESS
func (s *GameState) beginResolution() error {
	if !s.GameStarted {
		return ErrGameNotStarted
	}
	switch s.Phase() {
	case PhaseEnded:
		return ErrGameEnded
	case PhaseRoundInProgress:
		return ErrRoundInProgress
	}
	s.resolving = true
	return nil
}

// finishResolution transitions ROUND_IN_PROGRESS → AWAITING_DECISIONS
func (s *GameState) finishResolution() {
	s.resolving = false
}

// ensureOpen rejects mutations of games that are not accepting input
func (s *GameState) ensureOpen() error {
	if !s.GameStarted {
		return ErrGameNotStarted
	}
	if s.GameEnded {
		return ErrGameEnded
	}
	return nil
}
