package models

// GamePhase represents the current state of a room's round
type GamePhase string

const (
	// GamePhaseWaiting indicates the room is gathering players
	GamePhaseWaiting GamePhase = "waiting"

	// GamePhaseIngame indicates a round is being played
	GamePhaseIngame GamePhase = "ingame"

	// GamePhasePaused indicates the round clock is stopped
	GamePhasePaused GamePhase = "paused"

	// GamePhaseEnded indicates the round finished normally
	GamePhaseEnded GamePhase = "ended"

	// GamePhaseAborted indicates the round was called off
	GamePhaseAborted GamePhase = "aborted"
)

// Valid reports whether p is one of the known phases
func (p GamePhase) Valid() bool {
	switch p {
	case GamePhaseWaiting, GamePhaseIngame, GamePhasePaused, GamePhaseEnded, GamePhaseAborted:
		return true
	}
	return false
}

// IsTerminal reports whether the round is over
func (p GamePhase) IsTerminal() bool {
	return p == GamePhaseEnded || p == GamePhaseAborted
}

// FoundState tracks which sides declared the hiders found
type FoundState string

const (
	FoundStateNone   FoundState = "none"
	FoundStateSeeker FoundState = "seeker"
	FoundStateHider  FoundState = "hider"
	FoundStateBoth   FoundState = "both"
)
