package protocol

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/KirkDiggler/hideandseek/internal/catalog"
	"github.com/KirkDiggler/hideandseek/internal/models"
)

// EventName is the `ev` discriminant carried by every frame
type EventName string

const (
	EvCreate  EventName = "create"
	EvJoin    EventName = "join"
	EvPlayers EventName = "players"
	EvCoins   EventName = "coins"
	EvTask    EventName = "task"
	EvDice    EventName = "dice"
	EvCurse   EventName = "curse"
	EvGame    EventName = "game"
	EvFound   EventName = "found"
	EvGPS     EventName = "gps"
	EvBanned  EventName = "banned"
	EvStarted EventName = "started"
	EvEnded   EventName = "ended"
	EvError   EventName = "error"
)

var (
	ErrUnknownEvent = errors.New("unknown event")
	ErrInvalidFrame = errors.New("invalid frame")
)

var roomIDPattern = regexp.MustCompile(`^[0-9]{3}$`)

// ClientMessage is the decoded form of any client frame. Only the fields
// belonging to Ev are meaningful.
type ClientMessage struct {
	Ev EventName `msgpack:"ev"`

	// create, join
	PlayerName    string `msgpack:"player_name"`
	RoomPassword  string `msgpack:"room_password"`
	AdminPassword string `msgpack:"admin_password"`
	RoomID        string `msgpack:"room_id"`
	Password      string `msgpack:"password"`
	Admin         bool   `msgpack:"admin"`

	Players       []*models.Player `msgpack:"players"`
	Coins         *int             `msgpack:"coins"`
	Task          *models.Task     `msgpack:"task"`
	NumberOfDices string           `msgpack:"number_of_dices"`
	Curse         *models.Curse    `msgpack:"curse"`
	State         models.GamePhase `msgpack:"state"`
	Coords        *models.Coords   `msgpack:"coords"`
}

// Validate checks that the payload matches the shape required by its event
func (m *ClientMessage) Validate() error {
	switch m.Ev {
	case EvCreate:
		if m.PlayerName == "" {
			return invalid(m.Ev, "player_name is required")
		}
	case EvJoin:
		if !roomIDPattern.MatchString(m.RoomID) {
			return invalid(m.Ev, "room_id must be three digits")
		}
		if m.PlayerName == "" {
			return invalid(m.Ev, "player_name is required")
		}
	case EvPlayers:
		if m.Players == nil {
			return invalid(m.Ev, "players is required")
		}
		for _, p := range m.Players {
			if p == nil || p.Name == "" {
				return invalid(m.Ev, "every player needs a name")
			}
			if !p.Role.Valid() {
				return invalid(m.Ev, fmt.Sprintf("role %q is not valid", p.Role))
			}
		}
	case EvCoins:
		if m.Coins == nil {
			return invalid(m.Ev, "coins is required")
		}
	case EvTask:
		if m.Task == nil || m.Task.Task == "" {
			return invalid(m.Ev, "task is required")
		}
		if !m.Task.State.Valid() {
			return invalid(m.Ev, fmt.Sprintf("state %q is not valid", m.Task.State))
		}
	case EvDice:
	case EvCurse:
		if m.Curse == nil {
			return invalid(m.Ev, "curse is required")
		}
		if !m.Curse.State.Valid() {
			return invalid(m.Ev, fmt.Sprintf("state %q is not valid", m.Curse.State))
		}
		if m.Curse.Curse < 1 || m.Curse.Curse > catalog.MaxCurse {
			return invalid(m.Ev, "curse index out of range")
		}
	case EvGame:
		if !m.State.Valid() {
			return invalid(m.Ev, fmt.Sprintf("state %q is not valid", m.State))
		}
	case EvFound:
	case EvGPS:
		if m.Coords == nil {
			return invalid(m.Ev, "coords is required")
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEvent, m.Ev)
	}
	return nil
}

func invalid(ev EventName, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidFrame, ev, reason)
}
