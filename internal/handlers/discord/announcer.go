package discord

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/19506jk/briscola-server/internal/announcer"
	"github.com/19506jk/briscola-server/internal/services/messaging"
)

// MessageSender is the part of *discordgo.Session used to post embeds
type MessageSender interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// AnnouncerConfig holds the configuration for a channel announcer
type AnnouncerConfig struct {
	// Sender posts the message, usually the bot's session
	Sender MessageSender

	// ChannelID is where results are posted
	ChannelID string

	MessagingService messaging.Service

	Logger *zap.Logger
}

// ChannelAnnouncer posts finished deals to a Discord channel
type ChannelAnnouncer struct {
	sender           MessageSender
	channelID        string
	messagingService messaging.Service
	logger           *zap.Logger
}

var _ announcer.Announcer = (*ChannelAnnouncer)(nil)

// NewAnnouncer creates a channel announcer
func NewAnnouncer(cfg *AnnouncerConfig) (*ChannelAnnouncer, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.Sender == nil {
		return nil, errors.New("sender cannot be nil")
	}
	if cfg.ChannelID == "" {
		return nil, errors.New("channel ID cannot be empty")
	}
	if cfg.MessagingService == nil {
		return nil, errors.New("messaging service cannot be nil")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &ChannelAnnouncer{
		sender:           cfg.Sender,
		channelID:        cfg.ChannelID,
		messagingService: cfg.MessagingService,
		logger:           logger,
	}, nil
}

// AnnounceResult posts the deal as an embed
func (a *ChannelAnnouncer) AnnounceResult(ctx context.Context, input *announcer.AnnounceResultInput) error {
	if input == nil || input.Record == nil {
		return errors.New("input and record cannot be nil")
	}

	message, err := a.messagingService.GetResultMessage(ctx, &messaging.GetResultMessageInput{
		Record: input.Record,
	})
	if err != nil {
		return fmt.Errorf("failed to get result message: %w", err)
	}

	sent, err := a.sender.ChannelMessageSendEmbed(a.channelID, buildResultEmbed(input.Record, message), discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to send result to channel %s: %w", a.channelID, err)
	}

	a.logger.Debug("announced result",
		zap.String("result_id", input.Record.ID),
		zap.String("channel_id", a.channelID),
		zap.String("message_id", sent.ID),
	)
	return nil
}
