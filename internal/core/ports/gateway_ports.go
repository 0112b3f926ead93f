package ports

import (
	"context"

	"enquetebot/internal/core/domain"
)

// ChatGateway is the outbound surface of the chat platform.
type ChatGateway interface {
	// SendPoll posts the poll message with one interactive button per option
	// and returns the platform handle of the sent message.
	SendPoll(ctx context.Context, channelID string, poll *domain.Poll) (messageID string, err error)

	// DisablePoll edits the given poll message so its buttons stop accepting
	// clicks. Disabling an already disabled message is a no-op.
	DisablePoll(ctx context.Context, channelID, messageID string) error

	// LatestPoll scans up to limit recent messages in the channel, newest
	// first, and returns the poll id and message id of the newest bot-authored
	// poll message. When activeOnly is set, messages whose buttons are already
	// disabled are skipped. Returns domain.ErrPollNotFound when the scanned
	// window holds no matching message.
	LatestPoll(ctx context.Context, channelID string, limit int, activeOnly bool) (pollID, messageID string, err error)

	// ChannelAccessible reports whether the bot can resolve and post to the
	// channel. Broadcast uses it to skip stale entries in the channel list.
	ChannelAccessible(channelID string) bool
}
