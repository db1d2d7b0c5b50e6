package session

import (
	"context"

	"github.com/KirkDiggler/hideandseek/internal/common/clock"
	"github.com/KirkDiggler/hideandseek/internal/models"
	"github.com/KirkDiggler/hideandseek/internal/protocol"
)

// transitions lists the phases reachable from each phase
var transitions = map[models.GamePhase][]models.GamePhase{
	models.GamePhaseWaiting: {models.GamePhaseIngame},
	models.GamePhaseIngame:  {models.GamePhasePaused, models.GamePhaseEnded, models.GamePhaseAborted, models.GamePhaseWaiting},
	models.GamePhasePaused:  {models.GamePhaseIngame, models.GamePhaseEnded, models.GamePhaseAborted, models.GamePhaseWaiting},
	models.GamePhaseEnded:   {models.GamePhaseIngame, models.GamePhaseWaiting},
	models.GamePhaseAborted: {models.GamePhaseIngame, models.GamePhaseWaiting},
}

func canTransition(from, to models.GamePhase) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// SetPhase moves the room to another game phase
func (s *service) SetPhase(ctx context.Context, input *SetPhaseInput) (*Output, error) {
	room, err := s.getRoom(ctx, input.RoomID)
	if err != nil {
		return nil, err
	}

	if !canTransition(room.Game, input.State) {
		return nil, &TransitionError{From: room.Game, To: input.State}
	}

	out := &Output{}
	s.applyPhase(room, input.State, out)
	return out, nil
}

// applyPhase performs a phase change and its side effects. The game event is
// tagged with the previous phase and always goes out first.
func (s *service) applyPhase(room *models.Room, next models.GamePhase, out *Output) {
	previous := room.Game
	out.toRoom(room.ID, protocol.Game(next, previous))

	now := clock.NowMillis(s.clock)

	switch next {
	case models.GamePhaseIngame:
		var started int64
		if previous == models.GamePhasePaused && room.StartedAt != nil && room.EndedAt != nil {
			started = *room.StartedAt + (now - *room.EndedAt)
		} else {
			started = now
			for _, task := range room.TaskHistory() {
				task.Old = true
			}
			for _, curse := range room.CurseHistory() {
				curse.Old = true
			}
			if room.Found != models.FoundStateNone {
				room.Found = models.FoundStateNone
				out.toRoom(room.ID, protocol.Found(room.Found))
			}
		}
		room.StartedAt = &started
		room.EndedAt = nil
		out.toRoom(room.ID, protocol.Started(started))

		for _, player := range room.Players {
			if player.Disconnected || player.Coords == nil {
				continue
			}
			coords := *player.Coords
			player.StartCoords = &coords
		}
	case models.GamePhaseEnded, models.GamePhasePaused:
		room.EndedAt = &now
		out.toRoom(room.ID, protocol.Ended(now))
	}

	room.Game = next

	if next == models.GamePhaseEnded {
		out.Reports = append(out.Reports, s.report(room, models.ReportKindRoundEnded))
	}
}
