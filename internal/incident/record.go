package incident

import (
	"time"
)

// Incident status values shown in the pinned summary.
const (
	StatusInvestigating = "Investigating"
	StatusResolved      = "Resolved"
)

// DefaultSeverity is assigned to every tracked incident. Severity refinement
// beyond the classifier's HIGH/MEDIUM gate is not attempted.
const DefaultSeverity = "P1"

// Record is the tracked state of one channel's active incident. At most one
// Record exists per channel at a time; the Store owns every Record and hands
// out snapshots only.
type Record struct {
	ID             string    `json:"id"` // UUID assigned at creation
	ConversationID string    `json:"conversation_id"`
	Severity       string    `json:"severity"`
	Status         string    `json:"status"`
	Abstract       string    `json:"abstract"`
	Owner          string    `json:"owner"`
	ETA            string    `json:"eta"`
	TicketID       string    `json:"ticket_id"`
	Actions        []string  `json:"actions"`
	Links          []string  `json:"links"`
	Timeline       []string  `json:"timeline"`
	SummaryHandle  string    `json:"summary_handle"` // message ts of the pinned summary, set once
	PendingOwner   string    `json:"pending_owner"`  // user ID asked to take ownership, awaiting affirmation
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// clone returns a deep copy so callers never share slices with the store.
func (r *Record) clone() *Record {
	c := *r
	c.Actions = append([]string(nil), r.Actions...)
	c.Links = append([]string(nil), r.Links...)
	c.Timeline = append([]string(nil), r.Timeline...)
	return &c
}

func (r *Record) addTimelineEvent(now time.Time, message string) {
	r.Timeline = append(r.Timeline, now.Format("02 Jan 2006, 03:04 PM")+" – "+message)
}
