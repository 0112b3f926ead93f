package ports

import "context"

// Canonical command names, without the platform prefix.
const (
	CmdStartPoll = "iniciar_enquete"
	CmdClosePoll = "encerrar_enquete"
	CmdResults   = "resultados"
	CmdBroadcast = "disparar_em_todos"
)

// Command is an inbound text command, already stripped of platform framing.
type Command struct {
	Name      string
	TriggerID string
	ChannelID string
}

// VoteClick is an inbound button interaction on a poll message.
type VoteClick struct {
	PollID   string
	UserID   string
	UserRole string
	Choice   string
}

// Reply is the dispatcher's answer, rendered by the platform adapter. Private
// replies must be visible only to the acting user.
type Reply struct {
	Text    string
	Private bool
}

// Dispatcher maps inbound platform events to poll operations and formats the
// replies.
type Dispatcher interface {
	// HandleCommand handles a text command. The second return is false when
	// the command produced no reply (unknown commands included).
	HandleCommand(ctx context.Context, cmd Command) (Reply, bool)
	HandleVote(ctx context.Context, click VoteClick) Reply
}
