package discord

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"

	"github.com/KirkDiggler/autoref/internal/models"
	"github.com/KirkDiggler/autoref/internal/repositories/tournament"
	"github.com/KirkDiggler/autoref/internal/services/match"
	"github.com/KirkDiggler/autoref/internal/services/scores"
)

const (
	defaultCommandTimeout = 30 * time.Second
	defaultMaxImportBytes = 8 << 20
)

// RefCommandConfig wires the /ref command
type RefCommandConfig struct {
	MatchService match.Service
	ScoreService scores.Service
	Referees     tournament.Repository
	Channels     *ChannelNotifier
	Logger       logrus.FieldLogger

	// CategoryID is the channel category match channels are created under
	CategoryID string

	// RefereeRoleID restricts the command to members with this role when set
	RefereeRoleID string

	// HTTPClient downloads score exports; nil uses a client with a 15s timeout
	HTTPClient *http.Client

	CommandTimeout time.Duration
	MaxImportBytes int64
}

// RefCommand handles the /ref command
type RefCommand struct {
	BaseCommand
	cfg *RefCommandConfig
	log logrus.FieldLogger
}

// NewRefCommand creates the /ref command handler
func NewRefCommand(cfg *RefCommandConfig) (*RefCommand, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.MatchService == nil {
		return nil, errors.New("match service cannot be nil")
	}
	if cfg.ScoreService == nil {
		return nil, errors.New("score service cannot be nil")
	}
	if cfg.Referees == nil {
		return nil, errors.New("referee repository cannot be nil")
	}
	if cfg.Channels == nil {
		return nil, errors.New("channel notifier cannot be nil")
	}
	if cfg.Logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	c := *cfg
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: 15 * time.Second}
	}
	if c.CommandTimeout <= 0 {
		c.CommandTimeout = defaultCommandTimeout
	}
	if c.MaxImportBytes <= 0 {
		c.MaxImportBytes = defaultMaxImportBytes
	}

	return &RefCommand{
		BaseCommand: BaseCommand{
			Name:        "ref",
			Description: "Automated referee commands",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "start",
					Description: "Open the lobby of a match and start refereeing it",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "match_id",
							Description: "Match or qualifier room id",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "referee",
							Description: "Referee whose IRC account runs the lobby",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionBoolean,
							Name:        "qualifiers",
							Description: "The id is a qualifier room",
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "end",
					Description: "Stop refereeing a match and save its result",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "match_id",
							Description: "Match or qualifier room id",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionBoolean,
							Name:        "keep_lobby",
							Description: "Leave the lobby open",
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "status",
					Description: "Show running matches",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "match_id",
							Description: "Show a single match",
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "linkirc",
					Description: "Store the IRC credentials the bot uses to run your lobbies",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "name",
							Description: "osu! username, as used for /ref start",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "osu_id",
							Description: "osu! user id",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "irc_pass",
							Description: "IRC password from the osu! account settings (legacy API)",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "importscores",
					Description: "Import a score export for a room",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "room_id",
							Description: "Match or qualifier room id",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionAttachment,
							Name:        "file",
							Description: "CSV export",
							Required:    true,
						},
					},
				},
			},
		},
		cfg: &c,
		log: c.Logger.WithField("component", "ref_command"),
	}, nil
}

// Handle processes a Discord interaction for the ref command
func (c *RefCommand) Handle(s Session, i *discordgo.InteractionCreate) error {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}

	data := i.ApplicationCommandData()
	if data.Name != c.Name || len(data.Options) == 0 {
		return nil
	}

	if !c.allowed(i) {
		return RespondWithEphemeralMessage(s, i, "Only referees can use this command.")
	}

	sub := data.Options[0]
	opts := optionMap(sub.Options)

	switch sub.Name {
	case "start":
		return c.handleStart(s, i, opts)
	case "end":
		return c.handleEnd(s, i, opts)
	case "status":
		return c.handleStatus(s, i, opts)
	case "linkirc":
		return c.handleLinkIRC(s, i, opts)
	case "importscores":
		return c.handleImportScores(s, i, data, opts)
	default:
		return RespondWithError(s, i, fmt.Sprintf("Unknown subcommand: %s", sub.Name))
	}
}

func (c *RefCommand) allowed(i *discordgo.InteractionCreate) bool {
	if c.cfg.RefereeRoleID == "" {
		return true
	}
	if i.Member == nil {
		return false
	}
	for _, role := range i.Member.Roles {
		if role == c.cfg.RefereeRoleID {
			return true
		}
	}
	return false
}

func optionMap(opts []*discordgo.ApplicationCommandInteractionDataOption) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(opts))
	for _, o := range opts {
		m[o.Name] = o
	}
	return m
}

func stringOption(opts map[string]*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	if o, ok := opts[name]; ok {
		return strings.TrimSpace(o.StringValue())
	}
	return ""
}

func intOption(opts map[string]*discordgo.ApplicationCommandInteractionDataOption, name string) int {
	if o, ok := opts[name]; ok {
		return int(o.IntValue())
	}
	return 0
}

func boolOption(opts map[string]*discordgo.ApplicationCommandInteractionDataOption, name string) bool {
	if o, ok := opts[name]; ok {
		return o.BoolValue()
	}
	return false
}

// matchChannelName is the coordination channel name for a match
func matchChannelName(matchID string) string {
	return "match_" + strings.ToLower(strings.ReplaceAll(matchID, " ", "_"))
}

// ensureChannel finds the match channel under the referee category or creates it
func (c *RefCommand) ensureChannel(s Session, guildID, matchID string) (*discordgo.Channel, error) {
	name := matchChannelName(matchID)

	channels, err := s.GuildChannels(guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to list channels: %w", err)
	}
	for _, ch := range channels {
		if ch.Name == name && ch.ParentID == c.cfg.CategoryID && ch.Type == discordgo.ChannelTypeGuildText {
			return ch, nil
		}
	}

	ch, err := s.GuildChannelCreateComplex(guildID, discordgo.GuildChannelCreateData{
		Name:     name,
		Type:     discordgo.ChannelTypeGuildText,
		Topic:    fmt.Sprintf("Referee channel for match %s", matchID),
		ParentID: c.cfg.CategoryID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create channel %s: %w", name, err)
	}
	return ch, nil
}

func (c *RefCommand) handleStart(s Session, i *discordgo.InteractionCreate, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) error {
	matchID := stringOption(opts, "match_id")
	referee := stringOption(opts, "referee")
	qualifiers := boolOption(opts, "qualifiers")
	if matchID == "" || referee == "" {
		return RespondWithError(s, i, "A match id and a referee are required.")
	}

	if err := DeferResponse(s, i); err != nil {
		return err
	}

	log := c.log.WithFields(logrus.Fields{
		"match_id": matchID,
		"referee":  referee,
		"by":       memberName(i),
	})

	ch, err := c.ensureChannel(s, i.GuildID, matchID)
	if err != nil {
		log.WithError(err).Error("could not prepare match channel")
		return EditResponseWithError(s, i, fmt.Sprintf("Could not prepare the match channel: %v", err))
	}
	c.cfg.Channels.Bind(matchID, ch.ID)

	ctx, cancel := context.WithTimeout(context.Background(), c.cfg.CommandTimeout)
	defer cancel()

	out, err := c.cfg.MatchService.StartMatch(ctx, &match.StartMatchInput{
		MatchID:     matchID,
		RefereeName: referee,
		Qualifiers:  qualifiers,
		ChannelID:   ch.ID,
	})
	if err != nil {
		if !errors.Is(err, match.ErrMatchAlreadyRunning) {
			c.cfg.Channels.Unbind(matchID)
		}
		log.WithError(err).Warn("could not start match")
		return EditResponseWithError(s, i, fmt.Sprintf("Could not start match %s: %v", matchID, err))
	}

	log.WithField("session_id", out.SessionID).Info("match started from discord")

	msg := fmt.Sprintf("Match %s is running in <#%s>.", matchID, ch.ID)
	if out.Restored {
		msg += " It was restored from a saved state and is stopped: use `>start` in the match channel to resume."
	}
	return EditResponse(s, i, msg)
}

func (c *RefCommand) handleEnd(s Session, i *discordgo.InteractionCreate, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) error {
	matchID := stringOption(opts, "match_id")
	if matchID == "" {
		return RespondWithError(s, i, "A match id is required.")
	}

	if err := DeferResponse(s, i); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.cfg.CommandTimeout)
	defer cancel()

	err := c.cfg.MatchService.EndMatch(ctx, &match.EndMatchInput{
		MatchID:    matchID,
		CloseLobby: !boolOption(opts, "keep_lobby"),
	})
	switch {
	case errors.Is(err, match.ErrMatchNotFound):
		return EditResponseWithError(s, i, fmt.Sprintf("Match %s is not running.", matchID))
	case err != nil:
		c.log.WithError(err).WithField("match_id", matchID).Error("match ended with errors")
		return EditResponseWithError(s, i, fmt.Sprintf("Match %s ended but its result may not be saved: %v", matchID, err))
	}
	return EditResponse(s, i, fmt.Sprintf("Match %s ended and its result was saved.", matchID))
}

func (c *RefCommand) handleStatus(s Session, i *discordgo.InteractionCreate, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) error {
	ctx, cancel := context.WithTimeout(context.Background(), c.cfg.CommandTimeout)
	defer cancel()

	if matchID := stringOption(opts, "match_id"); matchID != "" {
		out, err := c.cfg.MatchService.GetMatchStatus(ctx, &match.GetMatchStatusInput{MatchID: matchID})
		if errors.Is(err, match.ErrMatchNotFound) {
			return RespondWithError(s, i, fmt.Sprintf("Match %s is not running.", matchID))
		}
		if err != nil {
			return RespondWithError(s, i, fmt.Sprintf("Could not read match %s: %v", matchID, err))
		}
		return RespondWithEmbed(s, i, renderStatus(out.Status))
	}

	out, err := c.cfg.MatchService.ListMatches(ctx, &match.ListMatchesInput{})
	if err != nil {
		return RespondWithError(s, i, fmt.Sprintf("Could not list matches: %v", err))
	}
	return RespondWithEmbed(s, i, renderMatchList(out.Matches))
}

// handleLinkIRC stores the caller's IRC credentials. Every answer is ephemeral since the request carries a password.
func (c *RefCommand) handleLinkIRC(s Session, i *discordgo.InteractionCreate, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) error {
	name := stringOption(opts, "name")
	osuID := intOption(opts, "osu_id")
	pass := stringOption(opts, "irc_pass")
	if name == "" || osuID <= 0 || pass == "" {
		return RespondWithEphemeralMessage(s, i, "A name, a positive osu! id and an IRC password are required.")
	}

	var discordID string
	switch {
	case i.Member != nil && i.Member.User != nil:
		discordID = i.Member.User.ID
	case i.User != nil:
		discordID = i.User.ID
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.cfg.CommandTimeout)
	defer cancel()

	log := c.log.WithFields(logrus.Fields{"referee": name, "osu_id": osuID, "discord_id": discordID})

	out, err := c.cfg.Referees.SaveReferee(ctx, &tournament.SaveRefereeInput{Referee: &models.RefereeInfo{
		DisplayName: name,
		DiscordID:   discordID,
		OsuID:       osuID,
		IRCPassword: pass,
	}})
	if err != nil {
		log.WithError(err).Error("could not save referee")
		return RespondWithEphemeralMessage(s, i, fmt.Sprintf("Could not save referee %s.", name))
	}

	verb := "updated"
	if out.Created {
		verb = "added"
	}
	log.WithField("created", out.Created).Info("referee credentials linked")
	return RespondWithEphemeralMessage(s, i, fmt.Sprintf("Referee **%s** %s.\n- osu! id: %d\n- Discord id: %s", out.Referee.DisplayName, verb, out.Referee.OsuID, discordID))
}

func (c *RefCommand) handleImportScores(s Session, i *discordgo.InteractionCreate, data discordgo.ApplicationCommandInteractionData, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) error {
	roomID := stringOption(opts, "room_id")
	file, ok := opts["file"]
	if roomID == "" || !ok {
		return RespondWithError(s, i, "A room id and a file are required.")
	}
	attachmentID, _ := file.Value.(string)
	var attachment *discordgo.MessageAttachment
	if data.Resolved != nil {
		attachment = data.Resolved.Attachments[attachmentID]
	}
	if attachment == nil {
		return RespondWithError(s, i, "The attached file could not be found.")
	}

	if err := DeferResponse(s, i); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.cfg.CommandTimeout)
	defer cancel()

	log := c.log.WithFields(logrus.Fields{"room_id": roomID, "file": attachment.Filename})

	body, err := c.download(ctx, attachment.URL)
	if err != nil {
		log.WithError(err).Warn("could not download score export")
		return EditResponseWithError(s, i, fmt.Sprintf("Could not download %s: %v", attachment.Filename, err))
	}
	defer body.Close()

	out, err := c.cfg.ScoreService.ImportScores(ctx, &scores.ImportScoresInput{
		RoomID: roomID,
		Data:   io.LimitReader(body, c.cfg.MaxImportBytes),
	})
	if err != nil {
		log.WithError(err).Warn("score import failed")
		return EditResponseWithError(s, i, fmt.Sprintf("Could not import scores for room %s: %v", roomID, err))
	}
	if out.Imported == 0 {
		return EditResponseWithError(s, i, fmt.Sprintf("No scores imported for room %s (%d skipped, %d malformed).", roomID, out.Skipped, out.Malformed))
	}
	return EditResponse(s, i, fmt.Sprintf("Imported %d scores for room %s (%d skipped, %d malformed).", out.Imported, roomID, out.Skipped, out.Malformed))
}

func (c *RefCommand) download(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.cfg.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return resp.Body, nil
}
