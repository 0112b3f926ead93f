package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"enquetebot/internal/core/domain"
	"enquetebot/internal/core/ports"
)

// historyScanLimit bounds the fallback lookup over channel history when no
// in-memory entry maps the channel to an open poll.
const historyScanLimit = 50

// disableTimeout bounds the message edit issued by the expiry timer, which
// runs outside any request context.
const disableTimeout = 10 * time.Second

type PollConfig struct {
	Question          string
	Options           []string
	Expiry            time.Duration
	BroadcastChannels []string
}

type trackedPoll struct {
	poll  *domain.Poll
	timer *time.Timer
}

type pollService struct {
	repo    ports.VoteRepository
	gateway ports.ChatGateway
	cfg     PollConfig
	logger  *slog.Logger

	mu            sync.Mutex
	polls         map[string]*trackedPoll
	openByChannel map[string]string
}

func NewPollService(repo ports.VoteRepository, gateway ports.ChatGateway, cfg PollConfig, logger *slog.Logger) ports.PollService {
	return &pollService{
		repo:          repo,
		gateway:       gateway,
		cfg:           cfg,
		logger:        logger,
		polls:         make(map[string]*trackedPoll),
		openByChannel: make(map[string]string),
	}
}

func (s *pollService) CreatePoll(ctx context.Context, triggerID, channelID string) (*domain.Poll, error) {
	now := time.Now()
	poll := &domain.Poll{
		ID:        triggerID,
		ChannelID: channelID,
		Question:  s.cfg.Question,
		Options:   s.cfg.Options,
		CreatedAt: now,
		ExpiresAt: now.Add(s.cfg.Expiry),
	}

	messageID, err := s.gateway.SendPoll(ctx, channelID, poll)
	if err != nil {
		return nil, fmt.Errorf("failed to send poll message: %w", err)
	}
	poll.MessageID = messageID

	tracked := &trackedPoll{poll: poll}
	tracked.timer = time.AfterFunc(time.Until(poll.ExpiresAt), func() {
		s.expire(poll.ID)
	})

	s.mu.Lock()
	s.polls[poll.ID] = tracked
	s.openByChannel[channelID] = poll.ID
	s.mu.Unlock()

	s.logger.Info("poll created", "poll_id", poll.ID, "channel_id", channelID, "expires_at", poll.ExpiresAt)
	return poll, nil
}

func (s *pollService) RecordVote(ctx context.Context, input ports.RecordVoteInput) error {
	valid := false
	for _, opt := range s.cfg.Options {
		if opt == input.Choice {
			valid = true
			break
		}
	}
	if !valid {
		return domain.ErrInvalidOption
	}

	s.mu.Lock()
	if tracked, ok := s.polls[input.PollID]; ok {
		if tracked.poll.Closed || tracked.poll.Expired(time.Now()) {
			s.mu.Unlock()
			return domain.ErrPollClosed
		}
	}
	s.mu.Unlock()

	voted, err := s.repo.HasVoted(ctx, input.PollID, input.UserID)
	if err != nil {
		return fmt.Errorf("failed to check existing vote: %w", err)
	}
	if voted {
		return domain.ErrAlreadyVoted
	}

	vote := &domain.Vote{
		ID:        uuid.NewString(),
		PollID:    input.PollID,
		UserID:    input.UserID,
		UserRole:  input.UserRole,
		Choice:    input.Choice,
		CreatedAt: time.Now().UTC(),
	}

	// The store's unique index closes the window between the check above and
	// this insert: a concurrent duplicate surfaces as ErrAlreadyVoted here.
	return s.repo.SaveVote(ctx, vote)
}

func (s *pollService) ClosePoll(ctx context.Context, channelID string) error {
	s.mu.Lock()
	var tracked *trackedPoll
	if pollID, ok := s.openByChannel[channelID]; ok {
		tracked = s.polls[pollID]
	}
	s.mu.Unlock()

	if tracked != nil {
		return s.close(ctx, tracked)
	}

	// No live entry for this channel (process restart, or the poll was posted
	// by a previous instance): fall back to scanning recent history for the
	// newest poll message that still has enabled buttons.
	_, messageID, err := s.gateway.LatestPoll(ctx, channelID, historyScanLimit, true)
	if err != nil {
		return err
	}
	if err := s.gateway.DisablePoll(ctx, channelID, messageID); err != nil {
		return fmt.Errorf("failed to disable poll message: %w", err)
	}
	return nil
}

// close marks the poll closed and disables its message. Safe to call from the
// manual command and the expiry timer; whichever runs first wins.
func (s *pollService) close(ctx context.Context, tracked *trackedPoll) error {
	s.mu.Lock()
	if tracked.poll.Closed {
		s.mu.Unlock()
		return domain.ErrPollNotFound
	}
	tracked.poll.Closed = true
	if tracked.timer != nil {
		tracked.timer.Stop()
	}
	if s.openByChannel[tracked.poll.ChannelID] == tracked.poll.ID {
		delete(s.openByChannel, tracked.poll.ChannelID)
	}
	s.mu.Unlock()

	if err := s.gateway.DisablePoll(ctx, tracked.poll.ChannelID, tracked.poll.MessageID); err != nil {
		return fmt.Errorf("failed to disable poll message: %w", err)
	}
	return nil
}

func (s *pollService) expire(pollID string) {
	s.mu.Lock()
	tracked, ok := s.polls[pollID]
	s.mu.Unlock()
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), disableTimeout)
	defer cancel()

	err := s.close(ctx, tracked)
	switch {
	case errors.Is(err, domain.ErrPollNotFound):
		// already closed manually
	case err != nil:
		s.logger.Error("failed to expire poll", "poll_id", pollID, "error", err)
	default:
		s.logger.Info("poll expired", "poll_id", pollID, "channel_id", tracked.poll.ChannelID)
	}
}

func (s *pollService) Tally(ctx context.Context, channelID string) ([]*domain.Vote, error) {
	s.mu.Lock()
	pollID, ok := s.openByChannel[channelID]
	s.mu.Unlock()

	if !ok {
		// Closed polls stay queryable, so the scan accepts disabled messages.
		id, _, err := s.gateway.LatestPoll(ctx, channelID, historyScanLimit, false)
		if err != nil {
			return nil, err
		}
		pollID = id
	}

	return s.TallyPoll(ctx, pollID)
}

func (s *pollService) TallyPoll(ctx context.Context, pollID string) ([]*domain.Vote, error) {
	votes, err := s.repo.FindByPoll(ctx, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch votes: %w", err)
	}
	if len(votes) == 0 {
		return nil, domain.ErrNoVotes
	}
	return votes, nil
}

func (s *pollService) Broadcast(ctx context.Context) int {
	created := 0
	for _, channelID := range s.cfg.BroadcastChannels {
		if !s.gateway.ChannelAccessible(channelID) {
			s.logger.Warn("skipping unreachable broadcast channel", "channel_id", channelID)
			continue
		}
		if _, err := s.CreatePoll(ctx, channelID, channelID); err != nil {
			s.logger.Error("failed to create broadcast poll", "channel_id", channelID, "error", err)
			continue
		}
		created++
	}
	s.logger.Info("broadcast finished", "channels", len(s.cfg.BroadcastChannels), "polls_created", created)
	return created
}
