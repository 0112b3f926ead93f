package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"enquetebot/internal/core/domain"
	"enquetebot/internal/core/ports"
)

// Gateway is the outbound Discord adapter: it posts poll messages, disables
// their buttons and scans channel history.
type Gateway struct {
	session *discordgo.Session
}

func NewGateway(session *discordgo.Session) *Gateway {
	return &Gateway{
		session: session,
	}
}

var _ ports.ChatGateway = (*Gateway)(nil)

func (g *Gateway) SendPoll(ctx context.Context, channelID string, poll *domain.Poll) (string, error) {
	row := discordgo.ActionsRow{}
	for i, opt := range poll.Options {
		row.Components = append(row.Components, discordgo.Button{
			Label:    opt,
			Style:    discordgo.PrimaryButton,
			CustomID: voteCustomID(poll.ID, i),
		})
	}

	msg, err := g.session.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Content:    "**" + poll.Question + "**",
		Components: []discordgo.MessageComponent{row},
	}, discordgo.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("failed to send poll message: %w", err)
	}
	return msg.ID, nil
}

func (g *Gateway) DisablePoll(ctx context.Context, channelID, messageID string) error {
	msg, err := g.session.ChannelMessage(channelID, messageID, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to fetch poll message: %w", err)
	}

	components := disableComponents(msg.Components)
	_, err = g.session.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel:    channelID,
		ID:         messageID,
		Components: &components,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to edit poll message: %w", err)
	}
	return nil
}

func (g *Gateway) LatestPoll(ctx context.Context, channelID string, limit int, activeOnly bool) (string, string, error) {
	messages, err := g.session.ChannelMessages(channelID, limit, "", "", "", discordgo.WithContext(ctx))
	if err != nil {
		return "", "", fmt.Errorf("failed to read channel history: %w", err)
	}

	botID := ""
	if g.session.State != nil && g.session.State.User != nil {
		botID = g.session.State.User.ID
	}

	// ChannelMessages returns newest first.
	for _, msg := range messages {
		if msg.Author == nil || msg.Author.ID != botID {
			continue
		}
		pollID, enabled, ok := pollMessageInfo(msg)
		if !ok {
			continue
		}
		if activeOnly && !enabled {
			continue
		}
		return pollID, msg.ID, nil
	}
	return "", "", domain.ErrPollNotFound
}

func (g *Gateway) ChannelAccessible(channelID string) bool {
	if g.session.State != nil {
		if _, err := g.session.State.Channel(channelID); err == nil {
			return true
		}
	}
	_, err := g.session.Channel(channelID)
	return err == nil
}
