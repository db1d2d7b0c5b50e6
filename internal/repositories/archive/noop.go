package archive

import (
	"context"

	"github.com/KirkDiggler/hideandseek/internal/models"
)

// noopRepository discards reports; used when no Redis address is configured
type noopRepository struct{}

// NewNoop creates an archive that keeps nothing
func NewNoop() *noopRepository {
	return &noopRepository{}
}

func (n *noopRepository) SaveReport(ctx context.Context, input *SaveReportInput) error {
	return nil
}

func (n *noopRepository) GetReport(ctx context.Context, input *GetReportInput) (*models.RoomReport, error) {
	return nil, ErrReportNotFound
}

func (n *noopRepository) ListReportsByRoom(ctx context.Context, input *ListReportsByRoomInput) ([]*models.RoomReport, error) {
	return []*models.RoomReport{}, nil
}
