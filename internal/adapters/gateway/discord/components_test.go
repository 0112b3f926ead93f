package discord

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVoteCustomIDRoundTrip(t *testing.T) {
	id := voteCustomID("1256039607355703358", 2)
	pollID, index, ok := parseVoteCustomID(id)
	require.True(t, ok)
	assert.Equal(t, "1256039607355703358", pollID)
	assert.Equal(t, 2, index)
}

func TestParseVoteCustomIDRejectsGarbage(t *testing.T) {
	for _, customID := range []string{
		"",
		"enquete",
		"enquete:123",
		"enquete::0",
		"enquete:123:x",
		"enquete:123:-1",
		"outro:123:0",
		"enquete:123:0:extra",
	} {
		_, _, ok := parseVoteCustomID(customID)
		assert.False(t, ok, "custom id %q should not parse", customID)
	}
}

func pollMessage(pollID string, disabled bool) *discordgo.Message {
	// Decoded API payloads hold pointer components.
	return &discordgo.Message{
		Components: []discordgo.MessageComponent{
			&discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					&discordgo.Button{
						Label:    "Opção A",
						CustomID: voteCustomID(pollID, 0),
						Disabled: disabled,
					},
					&discordgo.Button{
						Label:    "Opção B",
						CustomID: voteCustomID(pollID, 1),
						Disabled: disabled,
					},
				},
			},
		},
	}
}

func TestPollMessageInfo(t *testing.T) {
	pollID, enabled, ok := pollMessageInfo(pollMessage("77", false))
	require.True(t, ok)
	assert.Equal(t, "77", pollID)
	assert.True(t, enabled)

	pollID, enabled, ok = pollMessageInfo(pollMessage("77", true))
	require.True(t, ok)
	assert.Equal(t, "77", pollID)
	assert.False(t, enabled)

	_, _, ok = pollMessageInfo(&discordgo.Message{Content: "sem botões"})
	assert.False(t, ok)
}

func TestButtonLabel(t *testing.T) {
	msg := pollMessage("77", false)
	assert.Equal(t, "Opção B", buttonLabel(msg, voteCustomID("77", 1)))
	assert.Empty(t, buttonLabel(msg, voteCustomID("78", 0)))
}

func TestDisableComponents(t *testing.T) {
	msg := pollMessage("77", false)
	disabled := disableComponents(msg.Components)

	buttons := messageButtons(disabled)
	require.Len(t, buttons, 2)
	for _, button := range buttons {
		assert.True(t, button.Disabled)
		assert.NotEmpty(t, button.Label)
	}

	// Original components untouched.
	for _, button := range messageButtons(msg.Components) {
		assert.False(t, button.Disabled)
	}
}
