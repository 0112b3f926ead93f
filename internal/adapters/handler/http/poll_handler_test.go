package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"enquetebot/internal/core/domain"
	"enquetebot/internal/core/ports"
)

type stubPollService struct {
	votes map[string][]*domain.Vote
}

func (s *stubPollService) CreatePoll(context.Context, string, string) (*domain.Poll, error) {
	panic("not used")
}

func (s *stubPollService) RecordVote(context.Context, ports.RecordVoteInput) error {
	panic("not used")
}

func (s *stubPollService) ClosePoll(context.Context, string) error {
	panic("not used")
}

func (s *stubPollService) Tally(context.Context, string) ([]*domain.Vote, error) {
	panic("not used")
}

func (s *stubPollService) TallyPoll(_ context.Context, pollID string) ([]*domain.Vote, error) {
	votes := s.votes[pollID]
	if len(votes) == 0 {
		return nil, domain.ErrNoVotes
	}
	return votes, nil
}

func (s *stubPollService) Broadcast(context.Context) int {
	panic("not used")
}

func newTestServer(votes map[string][]*domain.Vote) *httptest.Server {
	handler := NewHandler(NewPollHandler(&stubPollService{votes: votes}))
	return httptest.NewServer(handler)
}

func TestHealthz(t *testing.T) {
	server := newTestServer(nil)
	defer server.Close()

	resp, err := http.Get(server.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGetVotes(t *testing.T) {
	server := newTestServer(map[string][]*domain.Vote{
		"100": {
			{
				ID:        "v1",
				PollID:    "100",
				UserID:    "alice",
				UserRole:  "Member",
				Choice:    "Raramente, não invisto muito tempo nisso",
				CreatedAt: time.Now().UTC(),
			},
		},
	})
	defer server.Close()

	resp, err := http.Get(server.URL + "/api/polls/100/votes")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var votes []*domain.Vote
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&votes))
	require.Len(t, votes, 1)
	assert.Equal(t, "alice", votes[0].UserID)
	assert.Equal(t, "Raramente, não invisto muito tempo nisso", votes[0].Choice)
}

func TestGetVotesEmptyPoll(t *testing.T) {
	server := newTestServer(nil)
	defer server.Close()

	resp, err := http.Get(server.URL + "/api/polls/999/votes")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var votes []*domain.Vote
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&votes))
	assert.Empty(t, votes)
}
