package vocabulary

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Vocabulary holds the keyword and phrase tables used by the rule-based
// detectors (incident intent, urgency, status, ownership, action items, ETA).
// A Vocabulary is immutable after load; request handling never mutates it.
type Vocabulary struct {
	// IncidentKeywords signal that a message is talking about an incident
	IncidentKeywords []string `yaml:"incident_keywords"`

	// UrgencyKeywords escalate an incident mention to auto-tracking
	UrgencyKeywords []string `yaml:"urgency_keywords"`

	// StrongActionPhrases mark a line as an actionable commitment or request
	StrongActionPhrases []string `yaml:"strong_action_phrases"`

	// SoftPhrases veto action detection on hedged lines ("maybe", "i think")
	SoftPhrases []string `yaml:"soft_phrases"`

	// OwnerAssignmentPhrases signal someone taking or being given ownership
	OwnerAssignmentPhrases []string `yaml:"owner_assignment_phrases"`

	// OwnerQuestionPhrases ask someone to take ownership
	OwnerQuestionPhrases []string `yaml:"owner_question_phrases"`

	// ETAPhrases introduce an explicit date ("complete by 3rd March")
	ETAPhrases []string `yaml:"eta_phrases"`

	// EODKeywords mark an end-of-day ETA
	EODKeywords []string `yaml:"eod_keywords"`

	// StatusPhrases maps a normalized status to the phrases that imply it
	StatusPhrases map[string][]string `yaml:"status_phrases"`
}

// Default returns the built-in vocabulary.
func Default() *Vocabulary {
	return &Vocabulary{
		IncidentKeywords: []string{
			"bug", "issue", "defect", "regression",
			"escalation", "problem", "failure",
		},
		UrgencyKeywords: []string{
			"p0", "p1", "sev0", "sev1",
			"critical", "urgent", "immediately", "asap",
			"high priority", "impacting customers", "prod down", "blocker",
		},
		StrongActionPhrases: []string{
			// First-person commitments / ownership
			"i will", "i'll", "i will take", "i'll take", "i can take",
			"i will handle", "i'll handle", "i can handle",
			"i will own", "i'll own", "i can own",
			"i am taking", "i'm taking", "taking this", "taking it",
			"taking ownership", "owning this",
			"on it", "i am on it", "i'm on it",
			"i am looking into", "i'm looking into",
			"looking into this", "looking into it", "i will look into", "i'll look into",
			"taking a look", "i will take a look", "i'll take a look", "i can take a look",
			"investigating", "triaging", "debugging", "root causing", "rca in progress",

			// Fix / mitigation actions
			"working on", "working on it", "working on fix",
			"fix in progress", "fix underway",
			"building a fix", "coding a fix", "preparing a fix",
			"will fix", "i will fix", "i'll fix", "fixing",
			"pushing a fix", "deploying a fix", "hotfix", "patch",
			"deploying", "rolling out", "rollout",
			"rolling back", "rollback", "reverting", "revert",
			"mitigating", "mitigation",
			"applying workaround", "workaround in place",
			"restarting", "restart",

			// Direct requests that usually imply an action item
			"please check", "pls check", "please review", "pls review",
			"please investigate", "pls investigate",
			"please look into", "pls look into",
			"please verify", "pls verify", "please confirm", "pls confirm",
			"please share", "pls share", "please send", "pls send",
			"please update", "pls update",
			"please take a look", "pls take a look",
			"could you please", "can you please", "can you", "could you",

			// Assignment language
			"assigned to", "assigning to", "assign to",
			"owner:", "action:", "todo:", "next step:",

			// Priority nudges
			"expedite",
		},
		SoftPhrases: []string{
			"maybe", "i think", "looks like",
			"we should", "let's see", "can we", "could we",
			"might be", "probably", "it seems",
		},
		OwnerAssignmentPhrases: []string{
			"will work on", "is taking", "assigned to",
			"will handle", "owns this", "looking into this", "have a look",
		},
		OwnerQuestionPhrases: []string{
			"can you take this",
			"can you handle this",
			"can you look into this",
			"can you take this up",
		},
		ETAPhrases: []string{
			"by", "complete by", "will complete by",
			"target to complete by", "expected by", "finish it by",
		},
		EODKeywords: []string{
			"eod", "end of day",
		},
		StatusPhrases: map[string][]string{
			"investigating":  {"investigating", "looking into", "analyzing"},
			"rca done":       {"rca done", "root cause identified", "root cause found"},
			"working on fix": {"working on fix", "fix in progress", "fix underway"},
			"pr raised":      {"pr raised", "pull request raised", "pr created"},
			"monitoring":     {"monitoring", "observing"},
			"resolved":       {"resolved", "fixed", "issue closed"},
		},
	}
}

// LoadFile reads a YAML vocabulary override from path. Any list or map left
// empty in the file keeps its built-in default, so operators only need to
// override the tables they care about.
func LoadFile(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read vocabulary file: %w", err)
	}

	var override Vocabulary
	if err := yaml.Unmarshal(data, &override); err != nil {
		return nil, fmt.Errorf("failed to parse vocabulary file %s: %w", path, err)
	}

	v := Default()
	if len(override.IncidentKeywords) > 0 {
		v.IncidentKeywords = override.IncidentKeywords
	}
	if len(override.UrgencyKeywords) > 0 {
		v.UrgencyKeywords = override.UrgencyKeywords
	}
	if len(override.StrongActionPhrases) > 0 {
		v.StrongActionPhrases = override.StrongActionPhrases
	}
	if len(override.SoftPhrases) > 0 {
		v.SoftPhrases = override.SoftPhrases
	}
	if len(override.OwnerAssignmentPhrases) > 0 {
		v.OwnerAssignmentPhrases = override.OwnerAssignmentPhrases
	}
	if len(override.OwnerQuestionPhrases) > 0 {
		v.OwnerQuestionPhrases = override.OwnerQuestionPhrases
	}
	if len(override.ETAPhrases) > 0 {
		v.ETAPhrases = override.ETAPhrases
	}
	if len(override.EODKeywords) > 0 {
		v.EODKeywords = override.EODKeywords
	}
	if len(override.StatusPhrases) > 0 {
		v.StatusPhrases = override.StatusPhrases
	}
	return v, nil
}
