package extraction

import (
	"reflect"
	"testing"
	"time"

	"github.com/sirenbot/sirenbot/internal/vocabulary"
)

const sender = "<@U111SENDER>"

var fixedTime = time.Date(2025, time.March, 3, 14, 30, 0, 0, time.UTC)

func testExtractor() *Extractor {
	return NewWithClock(vocabulary.Default(), func() time.Time { return fixedTime })
}

func TestExtract_LabeledFields(t *testing.T) {
	e := testExtractor()

	fields := e.Extract("Owner: <@U222ALICE> owns this\nETA: complete by 3rd March\nJIRA-123", sender)

	if fields.Owner != "<@U222ALICE>" {
		t.Errorf("Owner = %q, want <@U222ALICE>", fields.Owner)
	}
	if fields.ETA != "3rd March" {
		t.Errorf("ETA = %q, want %q", fields.ETA, "3rd March")
	}
	if fields.TicketID != "JIRA-123" {
		t.Errorf("TicketID = %q, want JIRA-123", fields.TicketID)
	}
}

func TestExtract_PlainLabelPrefixes(t *testing.T) {
	e := testExtractor()

	fields := e.Extract("Owner: alice\nETA: 2pm\nJIRA-123", sender)

	if fields.Owner != "alice" {
		t.Errorf("Owner = %q, want alice", fields.Owner)
	}
	if fields.ETA != "2pm" {
		t.Errorf("ETA = %q, want 2pm", fields.ETA)
	}
	if fields.TicketID != "JIRA-123" {
		t.Errorf("TicketID = %q, want JIRA-123", fields.TicketID)
	}
}

func TestExtract_LabeledStatusAndTicket(t *testing.T) {
	e := testExtractor()

	fields := e.Extract("Status - mitigated\nTicket: see OPS-12 in the tracker", sender)

	if fields.Status != "Mitigated" {
		t.Errorf("Status = %q, want Mitigated", fields.Status)
	}
	if fields.TicketID != "OPS-12" {
		t.Errorf("TicketID = %q, want the issue key OPS-12", fields.TicketID)
	}
}

func TestExtract_LastLabeledLineWins(t *testing.T) {
	e := testExtractor()

	fields := e.Extract("ETA: 2pm\nETA: 5pm", sender)
	if fields.ETA != "5pm" {
		t.Errorf("ETA = %q, want last match 5pm", fields.ETA)
	}
}

func TestExtract_EmptyAndMalformedInput(t *testing.T) {
	e := testExtractor()

	for _, text := range []string{"", "   ", "\n\n\n", "good morning team", "::::----::::"} {
		fields := e.Extract(text, sender)
		if !reflect.DeepEqual(fields, Fields{}) {
			t.Errorf("Extract(%q) = %+v, want zero fields", text, fields)
		}
	}
}

func TestExtract_OwnerAssignmentPhrase(t *testing.T) {
	e := testExtractor()

	// Mention present: the mentioned user is the owner
	fields := e.Extract("<@U333BOB> will handle the rollback", sender)
	if fields.Owner != "<@U333BOB>" {
		t.Errorf("Owner = %q, want <@U333BOB>", fields.Owner)
	}

	// No mention: the sender claims ownership
	fields = e.Extract("I will handle the rollback", sender)
	if fields.Owner != sender {
		t.Errorf("Owner = %q, want sender %q", fields.Owner, sender)
	}
}

func TestExtract_OwnerQuestionBecomesPending(t *testing.T) {
	e := testExtractor()

	fields := e.Extract("<@U333BOB> can you take this up?", sender)
	if fields.PendingOwner != "U333BOB" {
		t.Errorf("PendingOwner = %q, want U333BOB", fields.PendingOwner)
	}
	if fields.Owner != "" {
		t.Errorf("Owner = %q, want empty (question is not an assignment)", fields.Owner)
	}
}

func TestExtract_Status(t *testing.T) {
	e := testExtractor()

	cases := []struct {
		text string
		want string
	}{
		{"we are investigating the spike", "Investigating"},
		{"root cause identified, patch coming", "Rca Done"},
		{"fix in progress", "Working On Fix"},
		{"pr raised for the regression", "Pr Raised"},
		{"monitoring the dashboards now", "Monitoring"},
		{"this is fixed now", "Resolved"},
	}

	for _, tc := range cases {
		fields := e.Extract(tc.text, sender)
		if fields.Status != tc.want {
			t.Errorf("Extract(%q).Status = %q, want %q", tc.text, fields.Status, tc.want)
		}
	}
}

func TestExtract_LastStatusWins(t *testing.T) {
	e := testExtractor()

	fields := e.Extract("investigating the issue\nfix in progress now", sender)
	if fields.Status != "Working On Fix" {
		t.Errorf("Status = %q, want last match %q", fields.Status, "Working On Fix")
	}
}

func TestExtract_ETA(t *testing.T) {
	e := testExtractor()

	fields := e.Extract("will complete by 21st June", sender)
	if fields.ETA != "21st June" {
		t.Errorf("ETA = %q, want %q", fields.ETA, "21st June")
	}

	fields = e.Extract("should be done by eod", sender)
	if fields.ETA != "EOD (03 Mar 2025)" {
		t.Errorf("ETA = %q, want %q", fields.ETA, "EOD (03 Mar 2025)")
	}
}

func TestExtract_TicketID(t *testing.T) {
	e := testExtractor()

	cases := []struct {
		text string
		want string
	}{
		{"tracked in PAY-4521", "PAY-4521"},
		{"see https://tracker.example.com/browse/OPS-77 for details", "OPS-77"},
		{"no ticket here", ""},
		{"lowercase abc-123 is not a key", ""},
	}

	for _, tc := range cases {
		fields := e.Extract(tc.text, sender)
		if fields.TicketID != tc.want {
			t.Errorf("Extract(%q).TicketID = %q, want %q", tc.text, fields.TicketID, tc.want)
		}
	}
}

func TestExtract_Links(t *testing.T) {
	e := testExtractor()

	fields := e.Extract("graphs: https://grafana.example.com/d/abc and https://logs.example.com/q/1", sender)
	want := []string{"https://grafana.example.com/d/abc", "https://logs.example.com/q/1"}
	if !reflect.DeepEqual(fields.Links, want) {
		t.Errorf("Links = %v, want %v", fields.Links, want)
	}
}

func TestExtract_Actions(t *testing.T) {
	e := testExtractor()

	fields := e.Extract("I'll restart the payment workers", sender)
	if len(fields.Actions) != 1 {
		t.Fatalf("expected 1 action, got %d: %v", len(fields.Actions), fields.Actions)
	}
	want := sender + " will restart the payment workers"
	if fields.Actions[0] != want {
		t.Errorf("Action = %q, want %q", fields.Actions[0], want)
	}
}

func TestExtract_ActionFirstPersonRewrite(t *testing.T) {
	e := testExtractor()

	fields := e.Extract("I am taking ownership of the rollback", sender)
	if len(fields.Actions) != 1 {
		t.Fatalf("expected 1 action, got %d", len(fields.Actions))
	}
	want := sender + " am taking ownership of the rollback"
	if fields.Actions[0] != want {
		t.Errorf("Action = %q, want %q", fields.Actions[0], want)
	}
}

func TestExtract_SoftPhraseVetoesAction(t *testing.T) {
	e := testExtractor()

	fields := e.Extract("maybe we should restart the workers", sender)
	if len(fields.Actions) != 0 {
		t.Errorf("hedged line produced actions: %v", fields.Actions)
	}
}

func TestExtract_CurlyApostrophe(t *testing.T) {
	e := testExtractor()

	fields := e.Extract("I’ll deploy the hotfix", sender)
	if len(fields.Actions) != 1 {
		t.Fatalf("expected 1 action, got %d", len(fields.Actions))
	}
	want := sender + " will deploy the hotfix"
	if fields.Actions[0] != want {
		t.Errorf("Action = %q, want %q", fields.Actions[0], want)
	}
}

func TestExtract_ActionsPreserveMessageOrder(t *testing.T) {
	e := testExtractor()

	fields := e.Extract("please check the error rate\nplease verify the failover", sender)
	want := []string{"please check the error rate", "please verify the failover"}
	if !reflect.DeepEqual(fields.Actions, want) {
		t.Errorf("Actions = %v, want %v", fields.Actions, want)
	}
}

func TestExtract_Abstract(t *testing.T) {
	e := testExtractor()

	cases := []struct {
		text string
		want string
	}{
		{"the dashboard is broken", "WebUI Bug"},
		{"we have a prod outage", "Service Outage"},
		{"sso tokens are rejected", "Auth/Login Issue"},
		{"weird regression in exports", "Software Bug"},
		{"lunch plans anyone", ""},
	}

	for _, tc := range cases {
		fields := e.Extract(tc.text, sender)
		if fields.Abstract != tc.want {
			t.Errorf("Extract(%q).Abstract = %q, want %q", tc.text, fields.Abstract, tc.want)
		}
	}
}
