package session

import (
	"context"
	"strconv"
	"strings"

	"github.com/KirkDiggler/hideandseek/internal/catalog"
	"github.com/KirkDiggler/hideandseek/internal/dice"
	"github.com/KirkDiggler/hideandseek/internal/models"
	"github.com/KirkDiggler/hideandseek/internal/protocol"
)

// RollDice buys dice with room coins and draws the curse their sum names
func (s *service) RollDice(ctx context.Context, input *RollDiceInput) (*Output, error) {
	room, err := s.getRoom(ctx, input.RoomID)
	if err != nil {
		return nil, err
	}

	count, err := strconv.Atoi(strings.TrimSpace(input.NumberOfDices))
	if err != nil || count <= 0 {
		return nil, ErrInvalidDiceCount
	}

	// compare counts rather than costs so huge counts cannot overflow
	if maxDice := catalog.MaxAffordableDice(room.Coins); count > maxDice {
		return nil, &InsufficientCoinsError{MaxDice: maxDice}
	}

	if room.PendingTask != nil {
		return nil, ErrTaskBlocksCurse
	}
	if room.PendingCurse != nil {
		return nil, ErrCurseInFlight
	}

	faces, sum := dice.RollMany(s.diceRoller, count, dice.Sides)
	curse := &models.Curse{
		Dices: faces,
		Curse: catalog.CurseForSum(sum),
		State: models.TaskStateRequested,
	}

	room.Coins -= count * catalog.DiceCost
	room.PendingCurse = curse

	out := &Output{}
	out.toRoom(room.ID, protocol.CurseUpdate(curse, false))
	out.toRoom(room.ID, protocol.Coins(room.Coins))
	return out, nil
}

// UpdateCurse relays a client's curse record and supersedes the in-flight one
func (s *service) UpdateCurse(ctx context.Context, input *UpdateCurseInput) (*Output, error) {
	room, err := s.getRoom(ctx, input.RoomID)
	if err != nil {
		return nil, err
	}

	curse := input.Curse.Clone()

	switch curse.State {
	case models.TaskStateRequested:
		if room.PendingCurse != nil {
			return nil, ErrCurseInFlight
		}
		room.PendingCurse = curse
	case models.TaskStateConfirmed:
		if room.PendingCurse == nil {
			return nil, ErrNoPendingCurse
		}
		room.PendingCurse = nil
		room.Curses = append(room.Curses, curse)
	default:
		if room.PendingCurse == nil {
			return nil, ErrNoPendingCurse
		}
		room.PendingCurse = curse
	}

	out := &Output{}
	out.toRoom(room.ID, protocol.CurseUpdate(curse, false))
	return out, nil
}
