package ports

import (
	"context"

	"enquetebot/internal/core/domain"
)

type RecordVoteInput struct {
	PollID   string
	UserID   string
	UserRole string
	Choice   string
}

// PollService owns the poll lifecycle: create, vote, close, tally.
type PollService interface {
	// CreatePoll posts a new poll to the channel and starts its expiry timer.
	// triggerID becomes the poll id.
	CreatePoll(ctx context.Context, triggerID, channelID string) (*domain.Poll, error)

	// RecordVote records one vote with at-most-once-per-user semantics.
	// Returns domain.ErrAlreadyVoted, domain.ErrPollClosed or
	// domain.ErrInvalidOption for the expected rejections.
	RecordVote(ctx context.Context, input RecordVoteInput) error

	// ClosePoll disables the most recent open poll in the channel. Returns
	// domain.ErrPollNotFound when the channel has none.
	ClosePoll(ctx context.Context, channelID string) error

	// Tally resolves the most recent poll in the channel and returns its votes
	// in insertion order. Returns domain.ErrPollNotFound or domain.ErrNoVotes.
	Tally(ctx context.Context, channelID string) ([]*domain.Vote, error)

	// TallyPoll returns the votes for a known poll id.
	TallyPoll(ctx context.Context, pollID string) ([]*domain.Vote, error)

	// Broadcast creates the poll in every configured target channel, skipping
	// unreachable channels, and returns the number of polls created.
	Broadcast(ctx context.Context) int
}
