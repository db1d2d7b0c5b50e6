package discord

import (
	"context"
	"errors"
	"fmt"

	"github.com/KirkDiggler/hideandseek/internal/services/reporting"
	"github.com/bwmarrin/discordgo"
)

// messenger is the part of *discordgo.Session the announcer needs
type messenger interface {
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Announcer posts room reports to a Discord channel
type Announcer struct {
	session   messenger
	channelID string
}

// Config holds the configuration for the announcer
type Config struct {
	// Discord bot token
	Token string

	// Channel the reports are posted to
	ChannelID string
}

// New creates a new Discord announcer. Only the REST API is used, so no
// gateway connection is opened.
func New(cfg *Config) (*Announcer, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Token == "" {
		return nil, errors.New("token cannot be empty")
	}

	if cfg.ChannelID == "" {
		return nil, errors.New("channel ID cannot be empty")
	}

	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	return &Announcer{
		session:   session,
		channelID: cfg.ChannelID,
	}, nil
}

// Announce implements reporting.Announcer
func (a *Announcer) Announce(ctx context.Context, input *reporting.AnnounceInput) error {
	if input == nil || input.Report == nil {
		return errors.New("report cannot be nil")
	}

	msg := renderReport(input.Report, input.Message, input.Tone)
	if _, err := a.session.ChannelMessageSendComplex(a.channelID, msg, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to send report to channel %s: %w", a.channelID, err)
	}

	return nil
}
