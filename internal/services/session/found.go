package session

import (
	"context"

	"github.com/KirkDiggler/hideandseek/internal/models"
	"github.com/KirkDiggler/hideandseek/internal/protocol"
)

// MarkFound records a side's claim that the hiders were found. Once both
// sides agree the round ends; both is terminal until the next round starts.
func (s *service) MarkFound(ctx context.Context, input *MarkFoundInput) (*Output, error) {
	room, err := s.getRoom(ctx, input.RoomID)
	if err != nil {
		return nil, err
	}

	player := room.FindPlayer(input.PlayerName)
	if player == nil {
		return nil, ErrPlayerNotFound
	}

	previous := room.Found
	room.Found = nextFound(previous, player.Role)

	out := &Output{}
	// a round the admin already closed keeps its end time and report
	if room.Found == models.FoundStateBoth && previous != models.FoundStateBoth && !room.Game.IsTerminal() {
		s.applyPhase(room, models.GamePhaseEnded, out)
	}
	out.toRoom(room.ID, protocol.Found(room.Found))

	return out, nil
}

func nextFound(current models.FoundState, role models.Role) models.FoundState {
	if current == models.FoundStateBoth {
		return current
	}

	switch role {
	case models.RoleSeeker:
		if current == models.FoundStateHider {
			return models.FoundStateBoth
		}
		return models.FoundStateSeeker
	case models.RoleHider:
		if current == models.FoundStateSeeker {
			return models.FoundStateBoth
		}
		return models.FoundStateHider
	}

	return current
}
