package messaging

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/KirkDiggler/hideandseek/internal/models"
)

// service implements the Service interface
type service struct {
	// Random number generator for selecting random messages
	mu   sync.Mutex
	rand *rand.Rand
}

// NewService creates a new messaging service
func NewService(config *ServiceConfig) (*service, error) {
	seed := time.Now().UnixNano()
	if config != nil && config.Seed != 0 {
		seed = config.Seed
	}

	return &service{
		rand: rand.New(rand.NewSource(seed)),
	}, nil
}

// GetRoundEndedMessage returns a headline for a finished round
func (s *service) GetRoundEndedMessage(ctx context.Context, input *GetRoundEndedMessageInput) (*GetRoundEndedMessageOutput, error) {
	if input == nil || input.Report == nil {
		return nil, errors.New("report cannot be nil")
	}
	report := input.Report

	var messages []string
	tone := input.PreferredTone

	if report.Found == models.FoundStateBoth {
		if tone == "" {
			tone = ToneCelebration
		}
		messages = []string{
			"Gotcha! The hiders of room %s have been found.",
			"Room %s: the seekers closed in and nobody is hiding anymore.",
			"Hide and seek in room %s is over, the hiders were found.",
			"Room %s: game over, the seekers win this one.",
		}
	} else {
		if tone == "" {
			tone = ToneFunny
		}
		messages = []string{
			"Room %s called it a round before anybody was found.",
			"Room %s: the round is over and the hiders are still out there.",
			"Time's up in room %s. The hiders live to hide another day.",
		}
	}

	message := fmt.Sprintf(s.pick(messages), report.RoomID)
	if played := report.Duration(); played > 0 {
		message += fmt.Sprintf(" Played for %s.", played.Round(time.Second))
	}

	return &GetRoundEndedMessageOutput{
		Message: message,
		Tone:    tone,
	}, nil
}

// GetRoomClosedMessage returns a headline for a room whose last player left
func (s *service) GetRoomClosedMessage(ctx context.Context, input *GetRoomClosedMessageInput) (*GetRoomClosedMessageOutput, error) {
	if input == nil || input.Report == nil {
		return nil, errors.New("report cannot be nil")
	}

	messages := []string{
		"Room %s is closed, everybody went home.",
		"The last player left room %s. Lights out.",
		"Room %s has been cleaned up. See you next game!",
	}

	return &GetRoomClosedMessageOutput{
		Message: fmt.Sprintf(s.pick(messages), input.Report.RoomID),
		Tone:    ToneNeutral,
	}, nil
}

// pick selects a random message
func (s *service) pick(messages []string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return messages[s.rand.Intn(len(messages))]
}
