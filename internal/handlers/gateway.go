package handlers

import "github.com/slack-go/slack"

// Gateway is the messaging surface the incident handler drives. The real
// implementation wraps the Slack Web API (internal/slack); tests substitute
// a fake. The gateway owns delivery, retries and pin mechanics; the handler
// only decides which actions to request.
type Gateway interface {
	// PostSummary posts the summary message and returns its handle (ts).
	PostSummary(channelID, text string, blocks []slack.Block) (string, error)

	// UpdateSummary rewrites an already posted summary in place.
	UpdateSummary(channelID, handle, text string, blocks []slack.Block) error

	// Pin pins the message identified by handle.
	Pin(channelID, handle string) error

	// Unpin removes the pin from the message identified by handle.
	Unpin(channelID, handle string) error

	// DeleteMessage removes a message, used to clean up the losing post
	// when two first detections race to pin the summary.
	DeleteMessage(channelID, handle string) error

	// PostConfirmationPrompt posts the Track/Ignore button prompt for a
	// MEDIUM-confidence detection, quoting the detected line.
	PostConfirmationPrompt(channelID, line string) error

	// PostMessage posts a plain channel message.
	PostMessage(channelID, text string) error

	// PostEphemeral posts a message visible only to userID.
	PostEphemeral(channelID, userID, text string) error
}
