package session

import (
	"fmt"

	"github.com/KirkDiggler/hideandseek/internal/catalog"
	"github.com/KirkDiggler/hideandseek/internal/models"
)

// SessionError is a rejection whose text is shown to the player as is
type SessionError string

// Error implements the error interface
func (e SessionError) Error() string {
	return string(e)
}

const (
	ErrRoomNotFound     SessionError = "Room not found"
	ErrWrongPassword    SessionError = "Wrong password"
	ErrPlayerBanned     SessionError = "You are banned from this room"
	ErrAdminMustBeAdmin SessionError = "If you are an admin please log in as admin. If you are not an admin, please choose another name."
	ErrNotAnAdmin       SessionError = "If you are an admin, please choose another name. If you are not an admin, turn off join as admin."
	ErrAlreadyJoined    SessionError = "You have already joined a room"
	ErrNotInRoom        SessionError = "You need to join a room first"
	ErrPlayerNotFound   SessionError = "Player not found"
	ErrAdminOnly        SessionError = "Only an admin can do that"
	ErrPoolExhausted    SessionError = "No rooms are available right now, please try again later"
	ErrUnknownTask      SessionError = "Unknown task"
	ErrCurseBlocksTask  SessionError = "You need to complete all your curses first before you can send tasks"
	ErrTaskInFlight     SessionError = "You can only send one task at a time"
	ErrDuplicateTask    SessionError = "You cannot request the same task more than once"
	ErrNoPendingTask    SessionError = "There is no task waiting for that update"
	ErrNoSeekerGPS      SessionError = "The system has not received your gps. Please try again later."
	ErrNoHiderGPS       SessionError = "The system has not received the gps of any hider, so the radar found nobody."
	ErrInvalidDiceCount SessionError = "Invalid number of dices"
	ErrTaskBlocksCurse  SessionError = "You need to complete all your tasks first before you can send curses"
	ErrCurseInFlight    SessionError = "You can only send one curse at a time"
	ErrNoPendingCurse   SessionError = "There is no curse waiting for that update"
	ErrNilConfig        SessionError = "config cannot be nil"
	ErrNilRoomRepo      SessionError = "room repository cannot be nil"
	ErrNilDiceRoller    SessionError = "dice roller cannot be nil"
	ErrNilClock         SessionError = "clock cannot be nil"
	ErrNilUUIDGenerator SessionError = "UUID generator cannot be nil"
)

// InsufficientCoinsError rejects a dice roll the room cannot pay for
type InsufficientCoinsError struct {
	MaxDice int
}

func (e *InsufficientCoinsError) Error() string {
	return fmt.Sprintf("You do not have enough coins to roll that many dices (1 dice cost %d coins). The maximum dices you can roll is %d",
		catalog.DiceCost, e.MaxDice)
}

// TransitionError rejects a phase change the state machine does not allow
type TransitionError struct {
	From models.GamePhase
	To   models.GamePhase
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("The game cannot go from %s to %s", e.From, e.To)
}
