package session

import (
	"github.com/KirkDiggler/hideandseek/internal/common/clock"
	"github.com/KirkDiggler/hideandseek/internal/common/uuid"
	"github.com/KirkDiggler/hideandseek/internal/dice"
	"github.com/KirkDiggler/hideandseek/internal/models"
	"github.com/KirkDiggler/hideandseek/internal/protocol"
	roomRepo "github.com/KirkDiggler/hideandseek/internal/repositories/room"
)

// Config holds configuration for the session service
type Config struct {
	// Repository dependencies
	RoomRepo roomRepo.Repository

	// Service dependencies
	DiceRoller    dice.Roller
	Clock         clock.Clock
	UUIDGenerator uuid.UUID
}

// Output is what handling one event produced
type Output struct {
	// Deliveries are fanned out in order once the event is handled
	Deliveries []*protocol.Delivery

	// Reports are handed to background sinks
	Reports []*models.RoomReport
}

func (o *Output) toSender(ev protocol.Event) {
	o.Deliveries = append(o.Deliveries, protocol.ToSender(ev))
}

func (o *Output) toRoom(roomID string, ev protocol.Event) {
	o.Deliveries = append(o.Deliveries, protocol.ToRoom(roomID, ev))
}

func (o *Output) toPlayer(roomID, name string, ev protocol.Event) {
	o.Deliveries = append(o.Deliveries, protocol.ToPlayer(roomID, name, ev))
}

// CreateRoomInput contains parameters for creating a room
type CreateRoomInput struct {
	PlayerName    string
	RoomPassword  string
	AdminPassword string
}

// CreateRoomOutput contains the created room ID
type CreateRoomOutput struct {
	Output
	RoomID string
}

// JoinRoomInput contains parameters for joining a room
type JoinRoomInput struct {
	RoomID     string
	PlayerName string
	Password   string

	// Admin selects the admin password and the admin role
	Admin bool
}

// JoinRoomOutput carries the binding the connection must keep
type JoinRoomOutput struct {
	Output
	RoomID     string
	PlayerName string
}

// DisconnectInput describes a closed connection
type DisconnectInput struct {
	RoomID     string
	PlayerName string

	// PlayerStillConnected is set when the player has another open connection
	PlayerStillConnected bool
}

// DisconnectOutput reports whether the room was torn down
type DisconnectOutput struct {
	Output
	RoomClosed bool
}

// UpdatePlayersInput carries an admin's edited roster
type UpdatePlayersInput struct {
	RoomID     string
	PlayerName string
	Players    []*models.Player
}

type SetCoinsInput struct {
	RoomID string
	Coins  int
}

type UpdateGPSInput struct {
	RoomID     string
	PlayerName string
	Coords     *models.Coords
}

type SetPhaseInput struct {
	RoomID string
	State  models.GamePhase
}

type MarkFoundInput struct {
	RoomID     string
	PlayerName string
}

type SubmitTaskInput struct {
	RoomID     string
	PlayerName string
	Task       *models.Task
}

type RollDiceInput struct {
	RoomID string

	// NumberOfDices is the raw count typed by the player
	NumberOfDices string
}

type UpdateCurseInput struct {
	RoomID string
	Curse  *models.Curse
}
