package incident

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirenbot/sirenbot/internal/extraction"
)

// Store is the in-memory map of active incidents, keyed by conversation
// (channel) ID. All read-modify-write sequences are serialized per key, so
// rapid successive messages in one channel cannot interleave, while
// unrelated channels proceed without contention.
//
// State is volatile and scoped to process lifetime; there is no persistence.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*entry
	now     func() time.Time
}

// entry persists per conversation so the per-key lock survives resolution;
// rec == nil means no active incident.
type entry struct {
	mu  sync.Mutex
	rec *Record
}

// NewStore creates an empty incident store.
func NewStore() *Store {
	return &Store{
		entries: make(map[string]*entry),
		now:     time.Now,
	}
}

// NewStoreWithClock creates a store with a fixed clock for tests.
func NewStoreWithClock(now func() time.Time) *Store {
	s := NewStore()
	s.now = now
	return s
}

func (s *Store) entryFor(conversationID string) *entry {
	s.mu.RLock()
	e, ok := s.entries[conversationID]
	s.mu.RUnlock()
	if ok {
		return e
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok = s.entries[conversationID]; !ok {
		e = &entry{}
		s.entries[conversationID] = e
	}
	return e
}

// GetActive returns a snapshot of the active record for the conversation,
// or nil if none exists.
func (s *Store) GetActive(conversationID string) *Record {
	e := s.entryFor(conversationID)
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.rec == nil {
		return nil
	}
	return e.rec.clone()
}

// Active returns snapshots of every active incident, for the read-only API.
func (s *Store) Active() []*Record {
	s.mu.RLock()
	entries := make([]*entry, 0, len(s.entries))
	for _, e := range s.entries {
		entries = append(entries, e)
	}
	s.mu.RUnlock()

	var records []*Record
	for _, e := range entries {
		e.mu.Lock()
		if e.rec != nil {
			records = append(records, e.rec.clone())
		}
		e.mu.Unlock()
	}
	return records
}

// CreateOrMerge applies extracted fields to the conversation's incident,
// creating a fresh record first if none is active. Returns a snapshot of the
// record after the merge and whether it was newly created.
//
// A resolved record is never reopened by passive message traffic; if the
// record is already resolved the merge is a no-op and the resolved snapshot
// is returned unchanged.
func (s *Store) CreateOrMerge(conversationID string, fields extraction.Fields) (*Record, bool) {
	e := s.entryFor(conversationID)
	e.mu.Lock()
	defer e.mu.Unlock()

	now := s.now()
	created := false

	if e.rec == nil {
		e.rec = &Record{
			ID:             uuid.New().String(),
			ConversationID: conversationID,
			Severity:       DefaultSeverity,
			Status:         StatusInvestigating,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		e.rec.addTimelineEvent(now, "Incident detected")
		created = true
	}

	if e.rec.Status == StatusResolved {
		return e.rec.clone(), false
	}

	if s.merge(e.rec, fields, now) || created {
		e.rec.UpdatedAt = now
	}
	return e.rec.clone(), created
}

// merge applies the spec'd per-field rules and records a timeline event for
// every change. Reports whether anything changed.
func (s *Store) merge(rec *Record, fields extraction.Fields, now time.Time) bool {
	changed := false

	if fields.Abstract != "" && rec.Abstract == "" {
		rec.Abstract = fields.Abstract
		rec.addTimelineEvent(now, "Abstract set to "+fields.Abstract)
		changed = true
	}

	// Resolution is only reachable via Resolve; text that happens to say
	// "resolved" must not close the incident.
	if fields.Status != "" && fields.Status != StatusResolved && fields.Status != rec.Status {
		rec.Status = fields.Status
		rec.addTimelineEvent(now, "Status updated to "+fields.Status)
		changed = true
	}

	if fields.TicketID != "" && fields.TicketID != rec.TicketID {
		rec.TicketID = fields.TicketID
		rec.addTimelineEvent(now, "Ticket linked: "+fields.TicketID)
		changed = true
	}

	for _, link := range fields.Links {
		if !contains(rec.Links, link) {
			rec.Links = append(rec.Links, link)
			rec.addTimelineEvent(now, "Reference added: "+link)
			changed = true
		}
	}

	if fields.Owner != "" && fields.Owner != rec.Owner {
		rec.Owner = fields.Owner
		rec.PendingOwner = ""
		rec.addTimelineEvent(now, "Owner assigned to "+fields.Owner)
		changed = true
	}

	if fields.PendingOwner != "" && rec.Owner == "" {
		rec.PendingOwner = fields.PendingOwner
		changed = true
	}

	if fields.ETA != "" && fields.ETA != rec.ETA {
		rec.ETA = fields.ETA
		rec.addTimelineEvent(now, "ETA set to "+fields.ETA)
		changed = true
	}

	for _, action := range fields.Actions {
		if !contains(rec.Actions, action) {
			rec.Actions = append(rec.Actions, action)
			rec.addTimelineEvent(now, "Action added: "+action)
			changed = true
		}
	}

	return changed
}

// ConfirmPendingOwner assigns ownership to userID if they are the user a
// previous message asked to take the incident. Returns the updated snapshot
// and whether the assignment happened.
func (s *Store) ConfirmPendingOwner(conversationID, userID string) (*Record, bool) {
	e := s.entryFor(conversationID)
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.rec == nil || e.rec.Status == StatusResolved || e.rec.PendingOwner != userID {
		return nil, false
	}

	now := s.now()
	e.rec.Owner = "<@" + userID + ">"
	e.rec.PendingOwner = ""
	e.rec.addTimelineEvent(now, "Owner assigned to "+e.rec.Owner)
	e.rec.UpdatedAt = now
	return e.rec.clone(), true
}

// Resolve marks the conversation's incident resolved and removes it from the
// store, returning the final snapshot for the unpin/cleanup sequence. If no
// incident is active it returns nil; resolving twice is a benign no-op.
func (s *Store) Resolve(conversationID string) *Record {
	e := s.entryFor(conversationID)
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.rec == nil {
		return nil
	}

	now := s.now()
	e.rec.Status = StatusResolved
	e.rec.addTimelineEvent(now, "Incident resolved")
	e.rec.UpdatedAt = now

	final := e.rec.clone()
	e.rec = nil
	return final
}

// BindSummaryHandle records the message handle of the pinned summary,
// first writer wins. When two concurrent first detections both post a
// summary, only one handle becomes canonical; the call reports whether this
// writer won so the loser can clean up its orphaned post.
func (s *Store) BindSummaryHandle(conversationID, handle string) bool {
	e := s.entryFor(conversationID)
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.rec == nil || e.rec.SummaryHandle != "" {
		return false
	}
	e.rec.SummaryHandle = handle
	e.rec.UpdatedAt = s.now()
	return true
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
