package reporting

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/KirkDiggler/hideandseek/internal/models"
	archiveRepo "github.com/KirkDiggler/hideandseek/internal/repositories/archive"
	"github.com/KirkDiggler/hideandseek/internal/services/messaging"
)

// service implements the Service interface
type service struct {
	archiveRepo archiveRepo.Repository
	messaging   messaging.Service
	announcer   Announcer
	logger      *log.Logger
	queue       chan *models.RoomReport
}

// New creates a new reporting service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.ArchiveRepo == nil {
		return nil, ErrNilArchiveRepo
	}
	if cfg.Messaging == nil {
		return nil, ErrNilMessaging
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	size := cfg.QueueSize
	if size <= 0 {
		size = DefaultQueueSize
	}

	return &service{
		archiveRepo: cfg.ArchiveRepo,
		messaging:   cfg.Messaging,
		announcer:   cfg.Announcer,
		logger:      logger,
		queue:       make(chan *models.RoomReport, size),
	}, nil
}

// Submit queues a report without blocking
func (s *service) Submit(report *models.RoomReport) bool {
	if report == nil {
		return false
	}

	select {
	case s.queue <- report:
		return true
	default:
		s.logger.Printf("report queue full, dropping %s report for room %s", report.Kind, report.RoomID)
		return false
	}
}

// Run processes queued reports until ctx is done
func (s *service) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case report := <-s.queue:
			if err := s.Process(ctx, &ProcessInput{Report: report}); err != nil {
				s.logger.Printf("failed to process report %s: %v", report.ID, err)
			}
		}
	}
}

// Process archives a report and announces it. Both sinks are attempted even
// when the first one fails.
func (s *service) Process(ctx context.Context, input *ProcessInput) error {
	if input == nil || input.Report == nil {
		return ErrNilReport
	}
	report := input.Report

	var errs []error
	if err := s.archiveRepo.SaveReport(ctx, &archiveRepo.SaveReportInput{Report: report}); err != nil {
		errs = append(errs, fmt.Errorf("failed to archive report: %w", err))
	}

	if s.announcer != nil {
		if err := s.announce(ctx, report); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (s *service) announce(ctx context.Context, report *models.RoomReport) error {
	var (
		message string
		tone    messaging.MessageTone
	)

	switch report.Kind {
	case models.ReportKindRoundEnded:
		out, err := s.messaging.GetRoundEndedMessage(ctx, &messaging.GetRoundEndedMessageInput{Report: report})
		if err != nil {
			return err
		}
		message, tone = out.Message, out.Tone
	case models.ReportKindRoomClosed:
		// rooms nobody ever played in are not worth a post
		if report.StartedAt == nil {
			return nil
		}
		out, err := s.messaging.GetRoomClosedMessage(ctx, &messaging.GetRoomClosedMessageInput{Report: report})
		if err != nil {
			return err
		}
		message, tone = out.Message, out.Tone
	default:
		return fmt.Errorf("unknown report kind %q", report.Kind)
	}

	if err := s.announcer.Announce(ctx, &AnnounceInput{Report: report, Message: message, Tone: tone}); err != nil {
		return fmt.Errorf("failed to announce report: %w", err)
	}
	return nil
}
