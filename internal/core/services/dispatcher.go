package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"enquetebot/internal/core/domain"
	"enquetebot/internal/core/ports"
)

// User-facing reply texts, kept verbatim from the deployment this bot
// replaces.
const (
	replyVoteRecorded   = "✅ Voto registrado: "
	replyAlreadyVoted   = "⚠️ Você já votou nessa enquete!"
	replyPollClosed     = "⏰ Essa enquete já foi encerrada."
	replyInvalidOption  = "❌ Opção inválida."
	replyVoteFailed     = "❌ Não foi possível registrar seu voto. Tente novamente."
	replyPollCreateFail = "❌ Não foi possível criar a enquete."
	replyClosed         = "✅ Enquete encerrada manualmente."
	replyCloseFailed    = "❌ Não foi possível encerrar a enquete."
	replyNoActivePoll   = "❌ Nenhuma enquete ativa encontrada."
	replyNoPoll         = "❌ Nenhuma enquete encontrada."
	replyNoVotes        = "📭 Ninguém votou ainda."
	replyResultsHeader  = "**📊 Resultados da Enquete:**\n\n"
)

type dispatcher struct {
	polls  ports.PollService
	logger *slog.Logger
}

func NewDispatcher(polls ports.PollService, logger *slog.Logger) ports.Dispatcher {
	return &dispatcher{
		polls:  polls,
		logger: logger,
	}
}

func (d *dispatcher) HandleCommand(ctx context.Context, cmd ports.Command) (ports.Reply, bool) {
	switch cmd.Name {
	case ports.CmdStartPoll:
		if _, err := d.polls.CreatePoll(ctx, cmd.TriggerID, cmd.ChannelID); err != nil {
			d.logger.Error("failed to create poll", "channel_id", cmd.ChannelID, "error", err)
			return ports.Reply{Text: replyPollCreateFail, Private: true}, true
		}
		// The poll message itself is the visible outcome.
		return ports.Reply{}, false

	case ports.CmdClosePoll:
		err := d.polls.ClosePoll(ctx, cmd.ChannelID)
		switch {
		case errors.Is(err, domain.ErrPollNotFound):
			return ports.Reply{Text: replyNoActivePoll, Private: true}, true
		case err != nil:
			d.logger.Error("failed to close poll", "channel_id", cmd.ChannelID, "error", err)
			return ports.Reply{Text: replyCloseFailed, Private: true}, true
		}
		return ports.Reply{Text: replyClosed}, true

	case ports.CmdResults:
		votes, err := d.polls.Tally(ctx, cmd.ChannelID)
		switch {
		case errors.Is(err, domain.ErrPollNotFound):
			return ports.Reply{Text: replyNoPoll, Private: true}, true
		case errors.Is(err, domain.ErrNoVotes):
			return ports.Reply{Text: replyNoVotes, Private: true}, true
		case err != nil:
			d.logger.Error("failed to tally poll", "channel_id", cmd.ChannelID, "error", err)
			return ports.Reply{Text: replyNoPoll, Private: true}, true
		}
		return ports.Reply{Text: formatResults(votes)}, true

	case ports.CmdBroadcast:
		d.polls.Broadcast(ctx)
		return ports.Reply{}, false
	}

	return ports.Reply{}, false
}

func (d *dispatcher) HandleVote(ctx context.Context, click ports.VoteClick) ports.Reply {
	err := d.polls.RecordVote(ctx, ports.RecordVoteInput{
		PollID:   click.PollID,
		UserID:   click.UserID,
		UserRole: click.UserRole,
		Choice:   click.Choice,
	})
	switch {
	case errors.Is(err, domain.ErrAlreadyVoted):
		return ports.Reply{Text: replyAlreadyVoted, Private: true}
	case errors.Is(err, domain.ErrPollClosed):
		return ports.Reply{Text: replyPollClosed, Private: true}
	case errors.Is(err, domain.ErrInvalidOption):
		return ports.Reply{Text: replyInvalidOption, Private: true}
	case err != nil:
		d.logger.Error("failed to record vote",
			"poll_id", click.PollID, "user_id", click.UserID, "error", err)
		return ports.Reply{Text: replyVoteFailed, Private: true}
	}
	return ports.Reply{Text: replyVoteRecorded + click.Choice, Private: true}
}

func formatResults(votes []*domain.Vote) string {
	var b strings.Builder
	b.WriteString(replyResultsHeader)
	for _, v := range votes {
		fmt.Fprintf(&b, "👤 **%s** (%s) → %s (%s)\n",
			v.UserID, v.UserRole, v.Choice, v.CreatedAt.Format("02/01 15:04"))
	}
	return b.String()
}
