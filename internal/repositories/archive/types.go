package archive

import "github.com/KirkDiggler/hideandseek/internal/models"

type SaveReportInput struct {
	Report *models.RoomReport
}

type GetReportInput struct {
	ReportID string
}

type ListReportsByRoomInput struct {
	RoomID string

	// Limit caps the number of reports returned; zero means all
	Limit int64
}
