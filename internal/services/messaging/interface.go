package messaging

import "context"

// Service picks the flavor text posted alongside round and room summaries
type Service interface {
	// GetRoundEndedMessage returns a headline for a finished round
	GetRoundEndedMessage(ctx context.Context, input *GetRoundEndedMessageInput) (*GetRoundEndedMessageOutput, error)

	// GetRoomClosedMessage returns a headline for a room whose last player left
	GetRoomClosedMessage(ctx context.Context, input *GetRoomClosedMessageInput) (*GetRoomClosedMessageOutput, error)
}
