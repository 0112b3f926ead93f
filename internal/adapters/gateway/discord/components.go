package discord

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// Button custom ids carry the poll id, so a history scan can recover which
// poll a message belongs to. Format: "enquete:<pollID>:<optionIndex>".
const customIDPrefix = "enquete"

func voteCustomID(pollID string, optionIndex int) string {
	return fmt.Sprintf("%s:%s:%d", customIDPrefix, pollID, optionIndex)
}

func parseVoteCustomID(customID string) (pollID string, optionIndex int, ok bool) {
	parts := strings.Split(customID, ":")
	if len(parts) != 3 || parts[0] != customIDPrefix || parts[1] == "" {
		return "", 0, false
	}
	index, err := strconv.Atoi(parts[2])
	if err != nil || index < 0 {
		return "", 0, false
	}
	return parts[1], index, true
}

// pollMessageInfo inspects a message's components and reports the poll id it
// carries and whether any of its vote buttons is still enabled.
func pollMessageInfo(msg *discordgo.Message) (pollID string, enabled bool, ok bool) {
	for _, button := range messageButtons(msg.Components) {
		id, _, valid := parseVoteCustomID(button.CustomID)
		if !valid {
			continue
		}
		pollID = id
		ok = true
		if !button.Disabled {
			enabled = true
		}
	}
	return pollID, enabled, ok
}

// buttonLabel returns the label of the button with the given custom id, or ""
// when the message has no such button.
func buttonLabel(msg *discordgo.Message, customID string) string {
	for _, button := range messageButtons(msg.Components) {
		if button.CustomID == customID {
			return button.Label
		}
	}
	return ""
}

// disableComponents returns a copy of the component tree with every button
// disabled, for the poll-closing message edit.
func disableComponents(components []discordgo.MessageComponent) []discordgo.MessageComponent {
	out := make([]discordgo.MessageComponent, 0, len(components))
	for _, component := range components {
		row, ok := asActionsRow(component)
		if !ok {
			out = append(out, component)
			continue
		}
		newRow := discordgo.ActionsRow{}
		for _, inner := range row.Components {
			if button, ok := asButton(inner); ok {
				disabled := button
				disabled.Disabled = true
				newRow.Components = append(newRow.Components, disabled)
				continue
			}
			newRow.Components = append(newRow.Components, inner)
		}
		out = append(out, newRow)
	}
	return out
}

func messageButtons(components []discordgo.MessageComponent) []discordgo.Button {
	var buttons []discordgo.Button
	for _, component := range components {
		row, ok := asActionsRow(component)
		if !ok {
			continue
		}
		for _, inner := range row.Components {
			if button, ok := asButton(inner); ok {
				buttons = append(buttons, button)
			}
		}
	}
	return buttons
}

// Components decoded from the API arrive as pointers; components this adapter
// built itself are values. Accept both.
func asActionsRow(component discordgo.MessageComponent) (discordgo.ActionsRow, bool) {
	switch row := component.(type) {
	case discordgo.ActionsRow:
		return row, true
	case *discordgo.ActionsRow:
		return *row, true
	}
	return discordgo.ActionsRow{}, false
}

func asButton(component discordgo.MessageComponent) (discordgo.Button, bool) {
	switch button := component.(type) {
	case discordgo.Button:
		return button, true
	case *discordgo.Button:
		return *button, true
	}
	return discordgo.Button{}, false
}
