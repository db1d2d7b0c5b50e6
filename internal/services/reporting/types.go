package reporting

import (
	"log"

	"github.com/KirkDiggler/hideandseek/internal/models"
	archiveRepo "github.com/KirkDiggler/hideandseek/internal/repositories/archive"
	"github.com/KirkDiggler/hideandseek/internal/services/messaging"
)

// DefaultQueueSize is used when Config.QueueSize is not set
const DefaultQueueSize = 64

// Config holds configuration for the reporting service
type Config struct {
	// Repository dependencies
	ArchiveRepo archiveRepo.Repository

	// Service dependencies
	Messaging messaging.Service

	// Announcer is optional; reports are only archived without it
	Announcer Announcer

	Logger *log.Logger

	QueueSize int
}

type AnnounceInput struct {
	Report  *models.RoomReport
	Message string
	Tone    messaging.MessageTone
}

type ProcessInput struct {
	Report *models.RoomReport
}
