package summary

import (
	"strings"

	"github.com/sirenbot/sirenbot/internal/incident"
	"github.com/sirenbot/sirenbot/internal/utils"
	"github.com/slack-go/slack"
)

// How many trailing timeline events the summary shows.
const timelineWindow = 6

// How many action items the summary shows before collapsing the rest.
const maxActionLines = 10

// RenderText formats an incident record as the pinned summary text. The
// output is deterministic: every field maps to a fixed labeled line in a
// fixed order, absent scalars render an explicit placeholder, and rendering
// the same record twice is byte-for-byte identical. That stability is what
// lets the handler blindly update the pinned message in place.
func RenderText(rec *incident.Record) string {
	lines := []string{
		"📌 *INCIDENT SUMMARY*",
		"*Abstract:* " + orPlaceholder(rec.Abstract, "TBD"),
		"*Severity:* " + orPlaceholder(rec.Severity, incident.DefaultSeverity),
		"*Status:* " + orPlaceholder(rec.Status, incident.StatusInvestigating),
		"*Owner:* " + orPlaceholder(rec.Owner, "TBD"),
		"*ETA:* " + orPlaceholder(rec.ETA, "TBD"),
		"*Ticket:* " + orPlaceholder(rec.TicketID, "Not linked"),
		"",
		"*Action Items:*",
	}

	if len(rec.Actions) > 0 {
		shown := rec.Actions
		if len(shown) > maxActionLines {
			shown = shown[:maxActionLines]
		}
		for _, action := range shown {
			lines = append(lines, "• "+utils.TruncateText(action, 150))
		}
		if extra := len(rec.Actions) - maxActionLines; extra > 0 {
			lines = append(lines, "_... "+utils.FormatCount(extra, "more action")+"_")
		}
	} else {
		lines = append(lines, "None yet")
	}

	lines = append(lines, "", "*Timeline:*")
	if len(rec.Timeline) > 0 {
		events := rec.Timeline
		if len(events) > timelineWindow {
			events = events[len(events)-timelineWindow:]
		}
		for _, event := range events {
			lines = append(lines, "• "+event)
		}
	} else {
		lines = append(lines, "None yet")
	}

	lines = append(lines, "", "*Links / References:*")
	if len(rec.Links) > 0 {
		for _, link := range rec.Links {
			lines = append(lines, "• "+link)
		}
	} else {
		lines = append(lines, "None yet")
	}

	return strings.Join(lines, "\n")
}

// RenderBlocks builds the Block Kit form of the summary for the pinned
// message. The text form is kept as the single section block so the two
// renderings can never drift apart.
func RenderBlocks(rec *incident.Record) []slack.Block {
	return []slack.Block{
		slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, RenderText(rec), false, false),
			nil, nil,
		),
	}
}

func orPlaceholder(value, placeholder string) string {
	if value == "" {
		return placeholder
	}
	return value
}
