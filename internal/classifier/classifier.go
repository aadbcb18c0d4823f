package classifier

import (
	"strings"

	"github.com/sirenbot/sirenbot/internal/vocabulary"
)

// Verdict is the severity classification of an inbound message.
type Verdict string

const (
	// VerdictHigh auto-starts incident tracking
	VerdictHigh Verdict = "HIGH"
	// VerdictMedium asks the channel for confirmation first
	VerdictMedium Verdict = "MEDIUM"
	// VerdictLow is ignored
	VerdictLow Verdict = "LOW"
)

// ClassifyLine maps a single line to HIGH/MEDIUM/LOW using keyword containment.
// This is intentionally rule-based only.
func ClassifyLine(line string, vocab *vocabulary.Vocabulary) Verdict {
	text := strings.ToLower(line)

	incident := false
	for _, k := range vocab.IncidentKeywords {
		if strings.Contains(text, k) {
			incident = true
			break
		}
	}
	if !incident {
		return VerdictLow
	}

	for _, u := range vocab.UrgencyKeywords {
		if strings.Contains(text, u) {
			return VerdictHigh
		}
	}
	return VerdictMedium
}

// Classify evaluates a whole message line by line and returns the strongest
// verdict found. A single HIGH line makes the whole message HIGH regardless
// of what the remaining lines say; a message is never downgraded.
func Classify(text string, vocab *vocabulary.Vocabulary) Verdict {
	verdict := VerdictLow
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		switch ClassifyLine(line, vocab) {
		case VerdictHigh:
			return VerdictHigh
		case VerdictMedium:
			verdict = VerdictMedium
		}
	}
	return verdict
}
