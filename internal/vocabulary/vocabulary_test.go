package vocabulary

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault_TablesPopulated(t *testing.T) {
	v := Default()

	if len(v.IncidentKeywords) == 0 {
		t.Error("IncidentKeywords is empty")
	}
	if len(v.UrgencyKeywords) == 0 {
		t.Error("UrgencyKeywords is empty")
	}
	if len(v.StrongActionPhrases) == 0 {
		t.Error("StrongActionPhrases is empty")
	}
	if len(v.StatusPhrases) == 0 {
		t.Error("StatusPhrases is empty")
	}

	// Keywords are stored normalized so detectors can match case-folded text
	for _, k := range v.IncidentKeywords {
		if k != "" && k[0] >= 'A' && k[0] <= 'Z' {
			t.Errorf("incident keyword %q is not lowercase", k)
		}
	}
}

func TestLoadFile_OverridesOnlyProvidedTables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocab.yaml")
	content := `incident_keywords:
  - outage
  - meltdown
urgency_keywords:
  - всё пропало
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	v, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile returned error: %v", err)
	}

	if len(v.IncidentKeywords) != 2 || v.IncidentKeywords[0] != "outage" {
		t.Errorf("IncidentKeywords = %v, want override", v.IncidentKeywords)
	}
	if len(v.UrgencyKeywords) != 1 {
		t.Errorf("UrgencyKeywords = %v, want override", v.UrgencyKeywords)
	}

	// Tables absent from the file keep their defaults
	if len(v.StrongActionPhrases) == 0 {
		t.Error("StrongActionPhrases lost its default")
	}
	if len(v.StatusPhrases) == 0 {
		t.Error("StatusPhrases lost its default")
	}
}

func TestLoadFile_MissingFile(t *testing.T) {
	if _, err := LoadFile("/nonexistent/vocab.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadFile_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocab.yaml")
	if err := os.WriteFile(path, []byte("{{{not yaml"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFile(path); err == nil {
		t.Error("expected error for invalid YAML")
	}
}
