package session

import "context"

// Service applies one inbound event to the room state and reports what must
// be delivered. Implementations are not safe for concurrent use: the caller
// handles events one at a time.
type Service interface {
	// CreateRoom opens a new room with the caller as its admin
	CreateRoom(ctx context.Context, input *CreateRoomInput) (*CreateRoomOutput, error)

	// JoinRoom admits a connection into a room and syncs the room to it
	JoinRoom(ctx context.Context, input *JoinRoomInput) (*JoinRoomOutput, error)

	// Disconnect releases a connection and tears the room down after the last one
	Disconnect(ctx context.Context, input *DisconnectInput) (*DisconnectOutput, error)

	// UpdatePlayers applies an admin's role and ban changes
	UpdatePlayers(ctx context.Context, input *UpdatePlayersInput) (*Output, error)

	// SetCoins overwrites the room balance
	SetCoins(ctx context.Context, input *SetCoinsInput) (*Output, error)

	// UpdateGPS records a player's position
	UpdateGPS(ctx context.Context, input *UpdateGPSInput) (*Output, error)

	// SetPhase moves the room to another game phase
	SetPhase(ctx context.Context, input *SetPhaseInput) (*Output, error)

	// MarkFound records that a side declared the hiders found
	MarkFound(ctx context.Context, input *MarkFoundInput) (*Output, error)

	// SubmitTask requests, advances or resolves a task
	SubmitTask(ctx context.Context, input *SubmitTaskInput) (*Output, error)

	// RollDice buys dice and draws a curse from their sum
	RollDice(ctx context.Context, input *RollDiceInput) (*Output, error)

	// UpdateCurse advances the in-flight curse
	UpdateCurse(ctx context.Context, input *UpdateCurseInput) (*Output, error)
}
