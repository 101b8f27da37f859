package discord

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/19506jk/briscola-server/internal/services/game"
)

// Bot represents the Discord bot instance
type Bot struct {
	session     *discordgo.Session
	commands    map[string]CommandHandler
	commandIDs  map[string]string // Maps command name to command ID
	gameService game.Service
	config      *Config
	logger      *zap.Logger
}

// Config holds the configuration for the bot
type Config struct {
	// Session is the Discord session, see NewSession
	Session *discordgo.Session

	// Application ID for the bot
	ApplicationID string

	// Optional guild ID for development (server-specific commands)
	GuildID string

	// Game service
	GameService game.Service

	Logger *zap.Logger
}

// NewSession creates a Discord session for a bot token without connecting
func NewSession(token string) (*discordgo.Session, error) {
	if token == "" {
		return nil, errors.New("token cannot be empty")
	}

	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}
	return session, nil
}

// New creates a new Discord bot
func New(cfg *Config) (*Bot, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Session == nil {
		return nil, errors.New("session cannot be nil")
	}

	if cfg.GameService == nil {
		return nil, errors.New("game service cannot be nil")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	bot := &Bot{
		session:     cfg.Session,
		commands:    make(map[string]CommandHandler),
		commandIDs:  make(map[string]string),
		gameService: cfg.GameService,
		config:      cfg,
		logger:      logger,
	}

	// Register the interaction handler
	cfg.Session.AddHandler(bot.handleInteraction)

	return bot, nil
}

// Start opens the Discord connection and registers commands
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	if err := b.RegisterCommand(NewBriscolaCommand(b.gameService)); err != nil {
		return fmt.Errorf("failed to register briscola command: %w", err)
	}

	b.logger.Info("discord bot running")
	return nil
}

// Stop removes registered commands and closes the connection
func (b *Bot) Stop() error {
	appID := b.appID()

	for cmdName, cmdID := range b.commandIDs {
		if err := b.session.ApplicationCommandDelete(appID, b.config.GuildID, cmdID); err != nil {
			b.logger.Warn("failed to delete command", zap.String("command", cmdName), zap.String("command_id", cmdID), zap.Error(err))
		}
	}

	return b.session.Close()
}

// appID falls back to the session user when no application ID is configured
func (b *Bot) appID() string {
	if b.config.ApplicationID != "" {
		return b.config.ApplicationID
	}
	return b.session.State.User.ID
}

// RegisterCommand registers a command with Discord, for the configured guild
// or globally
func (b *Bot) RegisterCommand(cmd CommandHandler) error {
	createdCmd, err := b.session.ApplicationCommandCreate(b.appID(), b.config.GuildID, cmd.GetCommand())
	if err != nil {
		return fmt.Errorf("failed to create command %s: %w", cmd.GetName(), err)
	}

	b.commands[cmd.GetName()] = cmd
	b.commandIDs[cmd.GetName()] = createdCmd.ID
	b.logger.Info("registered command",
		zap.String("command", cmd.GetName()),
		zap.String("command_id", createdCmd.ID),
		zap.String("guild_id", b.config.GuildID),
	)

	return nil
}

// handleInteraction dispatches slash commands
func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	name := i.ApplicationCommandData().Name
	h, ok := b.commands[name]
	if !ok {
		return
	}
	if err := h.Handle(s, i); err != nil {
		b.logger.Error("failed to handle command", zap.String("command", name), zap.Error(err))
	}
}
