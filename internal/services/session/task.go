package session

import (
	"context"
	"fmt"

	"github.com/KirkDiggler/hideandseek/internal/catalog"
	"github.com/KirkDiggler/hideandseek/internal/geo"
	"github.com/KirkDiggler/hideandseek/internal/models"
	"github.com/KirkDiggler/hideandseek/internal/protocol"
)

// SubmitTask requests, advances or resolves a task. Radar tasks resolve on the
// spot from GPS; every other task walks requested, completed and confirmed as
// reported by the clients.
func (s *service) SubmitTask(ctx context.Context, input *SubmitTaskInput) (*Output, error) {
	room, err := s.getRoom(ctx, input.RoomID)
	if err != nil {
		return nil, err
	}

	entry, ok := catalog.LookupTask(input.Task.Task)
	if !ok {
		return nil, ErrUnknownTask
	}

	if input.Task.State == models.TaskStateRequested || entry.IsRadar() {
		if err := admitTask(room, entry.Key); err != nil {
			return nil, err
		}
	}

	if entry.IsRadar() {
		return s.resolveRadar(room, input.PlayerName, entry)
	}

	task := input.Task.Clone()
	out := &Output{}

	switch task.State {
	case models.TaskStateRequested:
		room.PendingTask = task
		out.toRoom(room.ID, protocol.TaskUpdate(task, false))
	default:
		if room.PendingTask == nil || room.PendingTask.Task != task.Task {
			return nil, ErrNoPendingTask
		}
		out.toRoom(room.ID, protocol.TaskUpdate(task, false))

		if task.State != models.TaskStateConfirmed {
			room.PendingTask = task
			break
		}

		room.PendingTask = nil
		room.Tasks = append(room.Tasks, task)
		room.Coins += entry.Coins()
		out.toRoom(room.ID, protocol.Coins(room.Coins))
	}

	return out, nil
}

// admitTask enforces one unsettled task or curse at a time and one request
// per task type
func admitTask(room *models.Room, key string) error {
	if room.PendingCurse != nil {
		return ErrCurseBlocksTask
	}
	if room.PendingTask != nil {
		return ErrTaskInFlight
	}
	if room.HasTask(key) {
		return ErrDuplicateTask
	}
	return nil
}

// resolveRadar counts the connected hiders within the radar radius of the
// requester and settles the task as confirmed in one step.
func (s *service) resolveRadar(room *models.Room, seekerName string, entry catalog.Task) (*Output, error) {
	seeker := room.FindPlayer(seekerName)
	if seeker == nil || seeker.Coords == nil {
		return nil, ErrNoSeekerGPS
	}

	out := &Output{}

	var hiders []models.Coords
	for _, player := range room.Players {
		if player.Role != models.RoleHider || player.Disconnected || player.Coords == nil {
			continue
		}
		hiders = append(hiders, *player.Coords)
	}
	if len(hiders) == 0 {
		out.toSender(protocol.Error(ErrNoHiderGPS.Error()))
	}

	inside := countInside(*seeker.Coords, hiders, entry.RadiusMeters)

	task := &models.Task{
		Task:   entry.Key,
		State:  models.TaskStateConfirmed,
		Result: fmt.Sprintf("%d hiders are inside the seeker %s's %s", inside, seeker.Name, entry.Name),
	}
	room.Tasks = append(room.Tasks, task)
	room.Coins += entry.Coins()

	out.toRoom(room.ID, protocol.TaskUpdate(task, true))
	out.toRoom(room.ID, protocol.Coins(room.Coins))

	return out, nil
}

func countInside(seeker models.Coords, hiders []models.Coords, radius float64) int {
	inside := 0
	for _, hider := range hiders {
		if geo.DistanceMeters(hider, seeker) < radius {
			inside++
		}
	}
	return inside
}
