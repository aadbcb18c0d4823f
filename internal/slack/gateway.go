package slack

import (
	"fmt"

	"github.com/sirenbot/sirenbot/internal/handlers"
	"github.com/slack-go/slack"
)

// Gateway adapts the Slack Web API to the handler's gateway contract.
// Message handles are Slack message timestamps.
type Gateway struct {
	client *slack.Client
}

// NewGateway wraps an authenticated Slack client.
func NewGateway(client *slack.Client) *Gateway {
	return &Gateway{client: client}
}

// PostSummary posts the summary message and returns its timestamp.
func (g *Gateway) PostSummary(channelID, text string, blocks []slack.Block) (string, error) {
	_, ts, err := g.client.PostMessage(
		channelID,
		slack.MsgOptionText(text, false),
		slack.MsgOptionBlocks(blocks...),
	)
	if err != nil {
		return "", fmt.Errorf("failed to post summary: %w", err)
	}
	return ts, nil
}

// UpdateSummary rewrites the summary message in place.
func (g *Gateway) UpdateSummary(channelID, handle, text string, blocks []slack.Block) error {
	_, _, _, err := g.client.UpdateMessage(
		channelID,
		handle,
		slack.MsgOptionText(text, false),
		slack.MsgOptionBlocks(blocks...),
	)
	if err != nil {
		return fmt.Errorf("failed to update summary: %w", err)
	}
	return nil
}

// Pin pins the message identified by handle.
func (g *Gateway) Pin(channelID, handle string) error {
	if err := g.client.AddPin(channelID, slack.ItemRef{
		Channel:   channelID,
		Timestamp: handle,
	}); err != nil {
		return fmt.Errorf("failed to pin message: %w", err)
	}
	return nil
}

// Unpin removes the pin from the message identified by handle.
func (g *Gateway) Unpin(channelID, handle string) error {
	if err := g.client.RemovePin(channelID, slack.ItemRef{
		Channel:   channelID,
		Timestamp: handle,
	}); err != nil {
		return fmt.Errorf("failed to unpin message: %w", err)
	}
	return nil
}

// DeleteMessage removes a message the bot posted.
func (g *Gateway) DeleteMessage(channelID, handle string) error {
	if _, _, err := g.client.DeleteMessage(channelID, handle); err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}
	return nil
}

// PostConfirmationPrompt posts the interactive Track/Ignore prompt for a
// MEDIUM-confidence detection, quoting the line that tripped the classifier.
func (g *Gateway) PostConfirmationPrompt(channelID, line string) error {
	confirmButton := slack.NewButtonBlockElement(
		handlers.ActionConfirmIncident,
		channelID,
		slack.NewTextBlockObject(slack.PlainTextType, "Yes – Track Incident", false, false),
	)
	confirmButton.Style = slack.StyleDanger

	ignoreButton := slack.NewButtonBlockElement(
		handlers.ActionIgnoreIncident,
		channelID,
		slack.NewTextBlockObject(slack.PlainTextType, "Ignore", false, false),
	)

	_, _, err := g.client.PostMessage(
		channelID,
		slack.MsgOptionText("⚠️ Possible incident detected", false),
		slack.MsgOptionBlocks(
			slack.NewSectionBlock(
				slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Detected message:*\n>%s", line), false, false),
				nil, nil,
			),
			slack.NewActionBlock("incident_confirmation", confirmButton, ignoreButton),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to post confirmation prompt: %w", err)
	}
	return nil
}

// PostMessage posts a plain channel message.
func (g *Gateway) PostMessage(channelID, text string) error {
	if _, _, err := g.client.PostMessage(channelID, slack.MsgOptionText(text, false)); err != nil {
		return fmt.Errorf("failed to post message: %w", err)
	}
	return nil
}

// PostEphemeral posts a message visible only to userID.
func (g *Gateway) PostEphemeral(channelID, userID, text string) error {
	if _, err := g.client.PostEphemeral(channelID, userID, slack.MsgOptionText(text, false)); err != nil {
		return fmt.Errorf("failed to post ephemeral message: %w", err)
	}
	return nil
}
