package reporting

//go:generate mockgen -package=mocks -destination=mocks/mock_announcer.go github.com/KirkDiggler/hideandseek/internal/services/reporting Announcer

import (
	"context"

	"github.com/KirkDiggler/hideandseek/internal/models"
)

// Announcer publishes a report somewhere people will read it
type Announcer interface {
	Announce(ctx context.Context, input *AnnounceInput) error
}

// Service hands room reports to slow sinks off the hot path
type Service interface {
	// Submit queues a report without blocking; false means it was dropped
	Submit(report *models.RoomReport) bool

	// Run processes queued reports until ctx is done
	Run(ctx context.Context)

	// Process archives and announces a single report
	Process(ctx context.Context, input *ProcessInput) error
}
