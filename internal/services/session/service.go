package session

import (
	"context"
	"errors"

	"github.com/KirkDiggler/hideandseek/internal/common/clock"
	"github.com/KirkDiggler/hideandseek/internal/common/uuid"
	"github.com/KirkDiggler/hideandseek/internal/dice"
	"github.com/KirkDiggler/hideandseek/internal/models"
	"github.com/KirkDiggler/hideandseek/internal/protocol"
	roomRepo "github.com/KirkDiggler/hideandseek/internal/repositories/room"
)

// service implements the Service interface
type service struct {
	roomRepo      roomRepo.Repository
	diceRoller    dice.Roller
	clock         clock.Clock
	uuidGenerator uuid.UUID
}

// New creates a new session service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.RoomRepo == nil {
		return nil, ErrNilRoomRepo
	}
	if cfg.DiceRoller == nil {
		return nil, ErrNilDiceRoller
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}
	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	return &service{
		roomRepo:      cfg.RoomRepo,
		diceRoller:    cfg.DiceRoller,
		clock:         cfg.Clock,
		uuidGenerator: cfg.UUIDGenerator,
	}, nil
}

// CreateRoom opens a new room with the caller as its admin. The caller still
// has to join it like everybody else.
func (s *service) CreateRoom(ctx context.Context, input *CreateRoomInput) (*CreateRoomOutput, error) {
	room, err := s.roomRepo.CreateRoom(ctx, &roomRepo.CreateRoomInput{
		AdminName:     input.PlayerName,
		RoomPassword:  input.RoomPassword,
		AdminPassword: input.AdminPassword,
	})
	if err != nil {
		if errors.Is(err, roomRepo.ErrPoolExhausted) {
			return nil, ErrPoolExhausted
		}
		return nil, err
	}

	out := &CreateRoomOutput{RoomID: room.ID}
	out.toSender(protocol.Create(room.ID))
	return out, nil
}

// JoinRoom admits a connection into a room
func (s *service) JoinRoom(ctx context.Context, input *JoinRoomInput) (*JoinRoomOutput, error) {
	room, err := s.getRoom(ctx, input.RoomID)
	if err != nil {
		return nil, ErrRoomNotFound
	}

	password := room.RoomPassword
	if input.Admin {
		password = room.AdminPassword
	}
	if input.Password != password {
		return nil, ErrWrongPassword
	}

	player := room.FindPlayer(input.PlayerName)
	if player != nil {
		if player.Banned {
			return nil, ErrPlayerBanned
		}
		if player.Role == models.RoleAdmin && !input.Admin {
			return nil, ErrAdminMustBeAdmin
		}
		if player.Role != models.RoleAdmin && input.Admin {
			return nil, ErrNotAnAdmin
		}
		player.Disconnected = false
	} else {
		role := models.RoleNone
		if input.Admin {
			role = models.RoleAdmin
		}
		player = &models.Player{Name: input.PlayerName, Role: role}
		room.Players = append(room.Players, player)
	}

	room.Connections++

	out := &JoinRoomOutput{RoomID: room.ID, PlayerName: player.Name}
	out.toSender(protocol.Join(room.ID))
	out.toSender(protocol.Coins(room.Coins))
	for _, task := range room.TaskHistory() {
		out.toSender(protocol.TaskUpdate(task, true))
	}
	for _, curse := range room.CurseHistory() {
		out.toSender(protocol.CurseUpdate(curse, true))
	}
	out.toSender(protocol.Game(room.Game, room.Game))
	if room.StartedAt != nil {
		out.toSender(protocol.Started(*room.StartedAt))
	}
	if room.EndedAt != nil {
		out.toSender(protocol.Ended(*room.EndedAt))
	}
	if room.Found != models.FoundStateNone {
		out.toSender(protocol.Found(room.Found))
	}
	out.toRoom(room.ID, protocol.Players(room.SnapshotPlayers()))

	return out, nil
}

// Disconnect releases one connection. The room is destroyed with the last
// connection even if its roster could still rejoin.
func (s *service) Disconnect(ctx context.Context, input *DisconnectInput) (*DisconnectOutput, error) {
	room, err := s.getRoom(ctx, input.RoomID)
	if err != nil {
		return nil, err
	}

	out := &DisconnectOutput{}

	room.Connections--
	if room.Connections <= 0 {
		out.Reports = append(out.Reports, s.report(room, models.ReportKindRoomClosed))
		if err := s.roomRepo.DeleteRoom(ctx, &roomRepo.DeleteRoomInput{RoomID: room.ID}); err != nil {
			return nil, err
		}
		out.RoomClosed = true
		return out, nil
	}

	if player := room.FindPlayer(input.PlayerName); player != nil && !input.PlayerStillConnected {
		player.Disconnected = true
	}
	out.toRoom(room.ID, protocol.Players(room.SnapshotPlayers()))

	return out, nil
}

func (s *service) getRoom(ctx context.Context, roomID string) (*models.Room, error) {
	if roomID == "" {
		return nil, ErrNotInRoom
	}

	room, err := s.roomRepo.GetRoom(ctx, &roomRepo.GetRoomInput{RoomID: roomID})
	if err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}

	return room, nil
}

// report snapshots a room for the archive and announcers
func (s *service) report(room *models.Room, kind models.ReportKind) *models.RoomReport {
	report := &models.RoomReport{
		ID:        s.uuidGenerator.NewUUID(),
		Kind:      kind,
		RoomID:    room.ID,
		Found:     room.Found,
		Game:      room.Game,
		Players:   room.ReportRoster(),
		CreatedAt: s.clock.Now(),
	}
	if room.StartedAt != nil {
		started := *room.StartedAt
		report.StartedAt = &started
	}
	if room.EndedAt != nil {
		ended := *room.EndedAt
		report.EndedAt = &ended
	}
	for _, task := range room.TaskHistory() {
		report.Tasks = append(report.Tasks, task.Clone())
	}
	for _, curse := range room.CurseHistory() {
		report.Curses = append(report.Curses, curse.Clone())
	}
	return report
}
