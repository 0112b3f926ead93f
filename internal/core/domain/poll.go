package domain

import "time"

// Poll is one instance of the fixed deployment question posted to a single
// channel. The ID is the platform snowflake of the triggering message, or the
// target channel id when the poll was created by a broadcast.
type Poll struct {
	ID        string    `json:"id"`
	ChannelID string    `json:"channel_id"`
	Question  string    `json:"question"`
	Options   []string  `json:"options"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
	Closed    bool      `json:"closed"`

	// MessageID is the handle of the poll message the bot sent, kept only in
	// memory so the buttons can be disabled later.
	MessageID string `json:"-"`
}

func (p *Poll) Expired(now time.Time) bool {
	return now.After(p.ExpiresAt)
}
