package discord

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"

	"github.com/KirkDiggler/autoref/internal/services/match"
)

// Bot represents the Discord bot instance
type Bot struct {
	session    *discordgo.Session
	commands   map[string]CommandHandler
	commandIDs map[string]string // Maps command name to command ID
	notifier   *ChannelNotifier
	relay      *relay
	config     *Config
	log        logrus.FieldLogger
}

// Config holds the configuration for the bot
type Config struct {
	// Discord bot token
	Token string

	// Application ID for the bot
	ApplicationID string

	// Optional guild ID for development (server-specific commands)
	GuildID string

	Logger logrus.FieldLogger
}

// New creates a new Discord bot. It does not connect until Start.
func New(cfg *Config) (*Bot, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Token == "" {
		return nil, errors.New("token cannot be empty")
	}

	if cfg.Logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	// Create a new Discord session
	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentGuilds | discordgo.IntentGuildMessages | discordgo.IntentMessageContent

	notifier, err := NewChannelNotifier(session, cfg.Logger)
	if err != nil {
		return nil, err
	}

	bot := &Bot{
		session:    session,
		commands:   make(map[string]CommandHandler),
		commandIDs: make(map[string]string),
		notifier:   notifier,
		config:     cfg,
		log:        cfg.Logger.WithField("component", "discord"),
	}

	session.AddHandler(bot.handleInteraction)
	session.AddHandler(bot.handleMessage)

	return bot, nil
}

// Notifier is the sink that mirrors match lines to their channels
func (b *Bot) Notifier() *ChannelNotifier {
	return b.notifier
}

// Start connects to Discord, relays match channels to matches and registers commands
func (b *Bot) Start(matches match.Service, commands ...CommandHandler) error {
	if matches == nil {
		return errors.New("match service cannot be nil")
	}
	b.relay = &relay{matches: matches, channels: b.notifier, log: b.log}

	// Open the websocket connection to Discord
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	for _, cmd := range commands {
		if err := b.RegisterCommand(cmd); err != nil {
			return err
		}
	}

	b.log.Info("bot is running")
	return nil
}

func (b *Bot) appID() string {
	if b.config.ApplicationID != "" {
		return b.config.ApplicationID
	}
	// Fall back to session user ID if application ID is not provided
	return b.session.State.User.ID
}

// Stop removes the registered commands and closes the Discord connection
func (b *Bot) Stop() error {
	appID := b.appID()
	for cmdName, cmdID := range b.commandIDs {
		log := b.log.WithFields(logrus.Fields{"command": cmdName, "command_id": cmdID})
		if err := b.session.ApplicationCommandDelete(appID, b.config.GuildID, cmdID); err != nil {
			log.WithError(err).Warn("failed to delete command")
		} else {
			log.Debug("deleted command")
		}
	}

	return b.session.Close()
}

// RegisterCommand registers a command with Discord. An empty guild ID registers it globally.
func (b *Bot) RegisterCommand(cmd CommandHandler) error {
	log := b.log.WithFields(logrus.Fields{"command": cmd.GetName(), "guild_id": b.config.GuildID})

	createdCmd, err := b.session.ApplicationCommandCreate(b.appID(), b.config.GuildID, cmd.GetCommand())
	if err != nil {
		return fmt.Errorf("failed to create command %s: %w", cmd.GetName(), err)
	}

	b.commands[cmd.GetName()] = cmd
	b.commandIDs[cmd.GetName()] = createdCmd.ID
	log.WithField("command_id", createdCmd.ID).Info("registered command")

	return nil
}

// handleInteraction handles Discord interactions
func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	name := i.ApplicationCommandData().Name
	if h, ok := b.commands[name]; ok {
		if err := h.Handle(s, i); err != nil {
			b.log.WithError(err).WithField("command", name).Error("error handling command")
		}
	}
}

// handleMessage relays match channel messages into their lobbies
func (b *Bot) handleMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if b.relay == nil {
		return
	}
	selfID := ""
	if s.State != nil && s.State.User != nil {
		selfID = s.State.User.ID
	}
	b.relay.handle(selfID, m.Message)
}
