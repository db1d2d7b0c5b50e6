package session

import (
	"context"

	"github.com/KirkDiggler/hideandseek/internal/models"
	"github.com/KirkDiggler/hideandseek/internal/protocol"
)

// UpdatePlayers applies an admin's edited roster. Only role and ban are taken
// from the client; the admin role can be neither granted nor revoked this way
// and names the room does not know are ignored.
func (s *service) UpdatePlayers(ctx context.Context, input *UpdatePlayersInput) (*Output, error) {
	room, err := s.getRoom(ctx, input.RoomID)
	if err != nil {
		return nil, err
	}

	sender := room.FindPlayer(input.PlayerName)
	if sender == nil || sender.Role != models.RoleAdmin {
		return nil, ErrAdminOnly
	}

	out := &Output{}
	for _, edited := range input.Players {
		player := room.FindPlayer(edited.Name)
		if player == nil || player.Role == models.RoleAdmin {
			continue
		}

		if edited.Role != models.RoleAdmin {
			player.Role = edited.Role
		}

		if edited.Banned && !player.Banned {
			out.toPlayer(room.ID, player.Name, protocol.Banned())
		}
		player.Banned = edited.Banned
	}
	out.toRoom(room.ID, protocol.Players(room.SnapshotPlayers()))

	return out, nil
}

// SetCoins overwrites the room balance
func (s *service) SetCoins(ctx context.Context, input *SetCoinsInput) (*Output, error) {
	room, err := s.getRoom(ctx, input.RoomID)
	if err != nil {
		return nil, err
	}

	room.Coins = input.Coins

	out := &Output{}
	out.toRoom(room.ID, protocol.Coins(room.Coins))
	return out, nil
}

// UpdateGPS records the sender's last known position and relays it
func (s *service) UpdateGPS(ctx context.Context, input *UpdateGPSInput) (*Output, error) {
	room, err := s.getRoom(ctx, input.RoomID)
	if err != nil {
		return nil, err
	}

	player := room.FindPlayer(input.PlayerName)
	if player == nil {
		return nil, ErrPlayerNotFound
	}

	coords := *input.Coords
	player.Coords = &coords

	out := &Output{}
	out.toRoom(room.ID, protocol.GPS(player.Name, player.Coords))
	return out, nil
}
