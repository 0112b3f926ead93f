package discord

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"enquetebot/internal/core/ports"
)

const handlerTimeout = 15 * time.Second

// Events is the inbound Discord adapter: it translates message and
// interaction events into dispatcher inputs and renders the replies.
type Events struct {
	session    *discordgo.Session
	dispatcher ports.Dispatcher
	prefix     string
	logger     *slog.Logger
}

func NewEvents(session *discordgo.Session, dispatcher ports.Dispatcher, prefix string, logger *slog.Logger) *Events {
	return &Events{
		session:    session,
		dispatcher: dispatcher,
		prefix:     prefix,
		logger:     logger,
	}
}

// Register attaches the event handlers and the gateway intents the bot needs.
// Must be called before the session is opened.
func (e *Events) Register() {
	e.session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMembers |
		discordgo.IntentMessageContent

	e.session.AddHandler(e.onMessageCreate)
	e.session.AddHandler(e.onInteractionCreate)
}

func (e *Events) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	if !strings.HasPrefix(m.Content, e.prefix) {
		return
	}
	fields := strings.Fields(strings.TrimPrefix(m.Content, e.prefix))
	if len(fields) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
	defer cancel()

	reply, ok := e.dispatcher.HandleCommand(ctx, ports.Command{
		Name:      fields[0],
		TriggerID: m.ID,
		ChannelID: m.ChannelID,
	})
	if !ok || reply.Text == "" {
		return
	}
	e.sendReply(s, m, reply)
}

func (e *Events) sendReply(s *discordgo.Session, m *discordgo.MessageCreate, reply ports.Reply) {
	channelID := m.ChannelID
	if reply.Private {
		// Text commands cannot be answered ephemerally; use a DM instead.
		dm, err := s.UserChannelCreate(m.Author.ID)
		if err != nil {
			e.logger.Warn("failed to open dm channel, replying in channel",
				"user_id", m.Author.ID, "error", err)
		} else {
			channelID = dm.ID
		}
	}
	if _, err := s.ChannelMessageSend(channelID, reply.Text); err != nil {
		e.logger.Error("failed to send reply", "channel_id", channelID, "error", err)
	}
}

func (e *Events) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionMessageComponent {
		return
	}
	data := i.MessageComponentData()
	pollID, _, ok := parseVoteCustomID(data.CustomID)
	if !ok {
		return
	}

	user := interactionUser(i)
	if user == nil {
		return
	}

	choice := ""
	if i.Message != nil {
		choice = buttonLabel(i.Message, data.CustomID)
	}

	ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
	defer cancel()

	reply := e.dispatcher.HandleVote(ctx, ports.VoteClick{
		PollID:   pollID,
		UserID:   user.Username,
		UserRole: e.topRoleName(s, i.GuildID, i.Member),
		Choice:   choice,
	})

	var flags discordgo.MessageFlags
	if reply.Private {
		flags = discordgo.MessageFlagsEphemeral
	}
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: reply.Text,
			Flags:   flags,
		},
	})
	if err != nil {
		e.logger.Error("failed to respond to interaction",
			"poll_id", pollID, "user_id", user.Username, "error", err)
	}
}

func interactionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

// topRoleName resolves the display name of the member's highest-positioned
// role, snapshotted onto the vote record.
func (e *Events) topRoleName(s *discordgo.Session, guildID string, member *discordgo.Member) string {
	if member == nil || guildID == "" {
		return "@everyone"
	}

	guild, err := s.State.Guild(guildID)
	if err != nil || guild == nil || len(guild.Roles) == 0 {
		guild, err = s.Guild(guildID)
		if err != nil || guild == nil {
			return "@everyone"
		}
	}

	top := ""
	best := -1
	for _, roleID := range member.Roles {
		for _, role := range guild.Roles {
			if role.ID == roleID && role.Position > best {
				best = role.Position
				top = role.Name
			}
		}
	}
	if top == "" {
		return "@everyone"
	}
	return top
}
