package archive

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/hideandseek/internal/repositories/archive Repository

import (
	"context"

	"github.com/KirkDiggler/hideandseek/internal/models"
)

// Repository stores finished-round and closed-room summaries for later review.
// Live room state is never read back from it.
type Repository interface {
	// SaveReport persists a report and indexes it under its room
	SaveReport(ctx context.Context, input *SaveReportInput) error

	// GetReport retrieves a report by ID
	GetReport(ctx context.Context, input *GetReportInput) (*models.RoomReport, error)

	// ListReportsByRoom returns a room's reports, newest first
	ListReportsByRoom(ctx context.Context, input *ListReportsByRoomInput) ([]*models.RoomReport, error)
}
