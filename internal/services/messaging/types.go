package messaging

import (
	"github.com/KirkDiggler/hideandseek/internal/models"
)

// MessageTone represents the tone of a message
type MessageTone string

const (
	// ToneNeutral is a neutral tone
	ToneNeutral MessageTone = "neutral"

	// ToneFunny is a humorous tone
	ToneFunny MessageTone = "funny"

	// ToneCelebration is a celebratory tone
	ToneCelebration MessageTone = "celebration"
)

// ServiceConfig holds configuration for the messaging service
type ServiceConfig struct {
	// Optional seed for message selection, for testing
	Seed int64
}

// GetRoundEndedMessageInput contains parameters for a round summary headline
type GetRoundEndedMessageInput struct {
	Report *models.RoomReport

	// PreferredTone is the preferred tone for the message (optional)
	PreferredTone MessageTone
}

// GetRoundEndedMessageOutput contains the chosen headline
type GetRoundEndedMessageOutput struct {
	Message string
	Tone    MessageTone
}

// GetRoomClosedMessageInput contains parameters for a closed room headline
type GetRoomClosedMessageInput struct {
	Report *models.RoomReport
}

// GetRoomClosedMessageOutput contains the chosen headline
type GetRoomClosedMessageOutput struct {
	Message string
	Tone    MessageTone
}
