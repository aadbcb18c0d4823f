package extraction

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/sirenbot/sirenbot/internal/vocabulary"
)

// Fields is the structured data extracted from one message. Every field is
// optional; a message that matches nothing yields the zero value.
type Fields struct {
	Owner    string
	Status   string
	ETA      string
	TicketID string
	Abstract string

	// Actions preserves message order; de-duplication happens at merge time
	Actions []string

	// Links preserves first-seen order within the message
	Links []string

	// PendingOwner is set when someone asks a mentioned user to take
	// ownership ("<@U123> can you take this?"); the store waits for that
	// user's affirmation before assigning them as owner.
	PendingOwner string
}

var (
	mentionRegex   = regexp.MustCompile(`<@([A-Z0-9]+)>`)
	linkRegex      = regexp.MustCompile(`https?://[^\s<>]+`)
	ticketRegex    = regexp.MustCompile(`\b[A-Z]{2,10}-\d+\b`)
	ticketURLRegex = regexp.MustCompile(`https?://[^\s]+/browse/([A-Z]{2,10}-\d+)`)
	dateRegex      = regexp.MustCompile(`\d{1,2}(st|nd|rd|th)?\s+[A-Za-z]+`)

	leadingIllRegex = regexp.MustCompile(`(?i)^\s*i'll\b`)
	leadingIRegex   = regexp.MustCompile(`(?i)^\s*i\b`)

	labelRegex = regexp.MustCompile(`(?i)^\s*(owner|status|eta|ticket)\s*[:\-]\s*(.+)$`)

	wordUIRegex = regexp.MustCompile(`\bui\b`)
)

// Extractor runs the rule-based field detectors over message text.
type Extractor struct {
	vocab *vocabulary.Vocabulary
	now   func() time.Time
}

// New creates an extractor backed by the given vocabulary.
func New(vocab *vocabulary.Vocabulary) *Extractor {
	return &Extractor{vocab: vocab, now: time.Now}
}

// NewWithClock creates an extractor with a fixed clock, used in tests so
// EOD ETAs render a predictable date.
func NewWithClock(vocab *vocabulary.Vocabulary, now func() time.Time) *Extractor {
	return &Extractor{vocab: vocab, now: now}
}

// Extract scans the message line by line and collects every field it can
// find. Scalar fields keep the last match in message order; collection
// fields keep every match. Extract never fails; malformed or empty input
// simply yields empty fields.
func (e *Extractor) Extract(text, sender string) Fields {
	var fields Fields

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if e.detectOwnerQuestion(line) {
			if mentions := mentionRegex.FindStringSubmatch(line); mentions != nil {
				fields.PendingOwner = mentions[1]
			}
			continue
		}

		// Labeled lines ("Owner: alice") are applied first; the phrase
		// detectors below may refine the value on the same line.
		extractLabeled(line, &fields)

		if status := e.extractStatus(line); status != "" {
			fields.Status = status
		}
		if ticket := extractTicketID(line); ticket != "" {
			fields.TicketID = ticket
		}
		fields.Links = append(fields.Links, extractLinks(line)...)
		if owner := e.extractOwner(line, sender); owner != "" {
			fields.Owner = owner
		}
		if eta := e.extractETA(line); eta != "" {
			fields.ETA = eta
		}
		if fields.Abstract == "" {
			fields.Abstract = extractAbstract(line)
		}
		if action := e.extractAction(line, sender); action != "" {
			fields.Actions = append(fields.Actions, action)
		}
	}

	return fields
}

// extractLabeled captures explicit label-prefix lines ("Owner: alice",
// "ETA - 2pm"), taking the trimmed text after the delimiter. A mention in an
// owner value is normalized to the mention form; a ticket value keeps only
// the issue key when one is present.
func extractLabeled(line string, fields *Fields) {
	m := labelRegex.FindStringSubmatch(line)
	if m == nil {
		return
	}
	value := strings.TrimSpace(m[2])
	if value == "" {
		return
	}

	switch strings.ToLower(m[1]) {
	case "owner":
		if mentions := mentionRegex.FindStringSubmatch(value); mentions != nil {
			fields.Owner = "<@" + mentions[1] + ">"
		} else {
			fields.Owner = value
		}
	case "status":
		fields.Status = titleCase(value)
	case "eta":
		fields.ETA = value
	case "ticket":
		if key := extractTicketID(value); key != "" {
			fields.TicketID = key
		} else {
			fields.TicketID = value
		}
	}
}

// extractOwner recognizes explicit ownership statements. Assignment phrases
// attribute the first mentioned user, falling back to the sender for
// first-person statements ("I'll handle this").
func (e *Extractor) extractOwner(line, sender string) string {
	lowered := strings.ToLower(line)

	for _, phrase := range e.vocab.OwnerAssignmentPhrases {
		if strings.Contains(lowered, phrase) {
			if mentions := mentionRegex.FindStringSubmatch(line); mentions != nil {
				return "<@" + mentions[1] + ">"
			}
			return sender
		}
	}

	if strings.Contains(lowered, "owner") {
		if mentions := mentionRegex.FindStringSubmatch(line); mentions != nil {
			return "<@" + mentions[1] + ">"
		}
	}
	return ""
}

func (e *Extractor) detectOwnerQuestion(line string) bool {
	lowered := strings.ToLower(line)
	for _, phrase := range e.vocab.OwnerQuestionPhrases {
		if strings.Contains(lowered, phrase) {
			return true
		}
	}
	return false
}

// extractStatus matches status phrases and returns the normalized
// title-cased status, or "" if no phrase matches. Statuses are checked in
// sorted key order so extraction stays deterministic.
func (e *Extractor) extractStatus(line string) string {
	lowered := strings.ToLower(line)
	for _, status := range sortedKeys(e.vocab.StatusPhrases) {
		for _, phrase := range e.vocab.StatusPhrases[status] {
			if strings.Contains(lowered, phrase) {
				return titleCase(status)
			}
		}
	}
	return ""
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// extractETA handles the two supported shapes: EOD keywords, and an explicit
// date following one of the ETA phrases ("complete by 3rd March").
func (e *Extractor) extractETA(line string) string {
	lowered := strings.ToLower(line)

	for _, eod := range e.vocab.EODKeywords {
		if strings.Contains(lowered, eod) {
			return "EOD (" + e.now().Format("02 Jan 2006") + ")"
		}
	}

	for _, phrase := range e.vocab.ETAPhrases {
		if strings.Contains(lowered, phrase) {
			if match := dateRegex.FindString(line); match != "" {
				return match
			}
			break
		}
	}
	return ""
}

// extractAction detects strong "do this" / "I'm on it" statements. Hedged
// lines are skipped entirely, and leading first-person forms are rewritten
// to attribute the sender so the summary reads naturally.
func (e *Extractor) extractAction(line, sender string) string {
	// Slack sometimes delivers curly apostrophes
	normalized := strings.ReplaceAll(line, "’", "'")
	lowered := strings.ToLower(normalized)

	for _, soft := range e.vocab.SoftPhrases {
		if strings.Contains(lowered, soft) {
			return ""
		}
	}

	for _, phrase := range e.vocab.StrongActionPhrases {
		if strings.Contains(lowered, phrase) {
			if leadingIllRegex.MatchString(normalized) {
				return leadingIllRegex.ReplaceAllString(normalized, sender+" will")
			}
			if leadingIRegex.MatchString(normalized) {
				return leadingIRegex.ReplaceAllString(normalized, sender)
			}
			return normalized
		}
	}
	return ""
}

// extractTicketID detects issue-tracker keys (ABC-123), preferring the key
// inside a /browse/ URL when one is present on the line.
func extractTicketID(line string) string {
	if match := ticketURLRegex.FindStringSubmatch(line); match != nil {
		return match[1]
	}
	return ticketRegex.FindString(line)
}

func extractLinks(line string) []string {
	return linkRegex.FindAllString(line, -1)
}

// extractAbstract infers a short one-line label for the incident, shown at
// the top of the pinned summary. Returns "" when nothing confident matches.
func extractAbstract(line string) string {
	lowered := strings.ToLower(line)

	for _, k := range []string{"webui", "web ui", "frontend", "front-end", "dashboard", "console"} {
		if strings.Contains(lowered, k) {
			return "WebUI Bug"
		}
	}
	if wordUIRegex.MatchString(lowered) {
		return "WebUI Bug"
	}
	for _, k := range []string{"outage", "downtime", "prod down", "service down"} {
		if strings.Contains(lowered, k) {
			return "Service Outage"
		}
	}
	for _, k := range []string{"login", "sso", "auth", "authentication", "authorization", "token expired"} {
		if strings.Contains(lowered, k) {
			return "Auth/Login Issue"
		}
	}
	for _, k := range []string{"bug", "issue", "defect", "regression", "failure", "error"} {
		if strings.Contains(lowered, k) {
			return "Software Bug"
		}
	}
	return ""
}

// titleCase capitalizes each space-separated word ("rca done" -> "Rca Done").
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
