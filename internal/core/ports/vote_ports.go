package ports

import (
	"context"

	"enquetebot/internal/core/domain"
)

// VoteRepository is the durable vote store. The collection carries a unique
// index on (poll, user), so SaveVote must fail with domain.ErrAlreadyVoted
// when a vote for the same pair already exists, regardless of any earlier
// HasVoted check.
type VoteRepository interface {
	SaveVote(ctx context.Context, vote *domain.Vote) error
	HasVoted(ctx context.Context, pollID, userID string) (bool, error)
	// FindByPoll returns every vote for the poll in insertion order.
	FindByPoll(ctx context.Context, pollID string) ([]*domain.Vote, error)
}
