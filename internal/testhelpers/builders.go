// Package testhelpers provides data builders shared by the package tests.
package testhelpers

import (
	"time"

	"github.com/sirenbot/sirenbot/internal/incident"
)

// FixedTime is the reference clock used by tests that need deterministic
// timestamps in timeline events and ETAs.
var FixedTime = time.Date(2025, time.March, 3, 14, 30, 0, 0, time.UTC)

// ========================================
// Record Builder
// ========================================

// RecordBuilder builds incident records for testing
type RecordBuilder struct {
	rec incident.Record
}

// NewRecordBuilder creates a record builder with sensible defaults
func NewRecordBuilder() *RecordBuilder {
	return &RecordBuilder{
		rec: incident.Record{
			ID:             "test-incident-id",
			ConversationID: "C0000000001",
			Severity:       incident.DefaultSeverity,
			Status:         incident.StatusInvestigating,
			CreatedAt:      FixedTime,
			UpdatedAt:      FixedTime,
		},
	}
}

// WithConversation sets the conversation (channel) ID
func (b *RecordBuilder) WithConversation(id string) *RecordBuilder {
	b.rec.ConversationID = id
	return b
}

// WithStatus sets the status
func (b *RecordBuilder) WithStatus(status string) *RecordBuilder {
	b.rec.Status = status
	return b
}

// WithAbstract sets the abstract
func (b *RecordBuilder) WithAbstract(abstract string) *RecordBuilder {
	b.rec.Abstract = abstract
	return b
}

// WithOwner sets the owner
func (b *RecordBuilder) WithOwner(owner string) *RecordBuilder {
	b.rec.Owner = owner
	return b
}

// WithETA sets the ETA
func (b *RecordBuilder) WithETA(eta string) *RecordBuilder {
	b.rec.ETA = eta
	return b
}

// WithTicket sets the ticket ID
func (b *RecordBuilder) WithTicket(ticketID string) *RecordBuilder {
	b.rec.TicketID = ticketID
	return b
}

// WithActions sets the action list
func (b *RecordBuilder) WithActions(actions ...string) *RecordBuilder {
	b.rec.Actions = actions
	return b
}

// WithLinks sets the link list
func (b *RecordBuilder) WithLinks(links ...string) *RecordBuilder {
	b.rec.Links = links
	return b
}

// WithTimeline sets the timeline events
func (b *RecordBuilder) WithTimeline(events ...string) *RecordBuilder {
	b.rec.Timeline = events
	return b
}

// WithSummaryHandle sets the pinned summary handle
func (b *RecordBuilder) WithSummaryHandle(handle string) *RecordBuilder {
	b.rec.SummaryHandle = handle
	return b
}

// Build returns the record
func (b *RecordBuilder) Build() *incident.Record {
	rec := b.rec
	return &rec
}
