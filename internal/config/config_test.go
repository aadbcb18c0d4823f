package config

import "testing"

func TestLoad_RequiresSlackTokens(t *testing.T) {
	t.Setenv("SLACK_BOT_TOKEN", "")
	t.Setenv("SLACK_APP_TOKEN", "")

	if _, err := Load(); err == nil {
		t.Error("expected error when SLACK_BOT_TOKEN is missing")
	}

	t.Setenv("SLACK_BOT_TOKEN", "xoxb-test")
	if _, err := Load(); err == nil {
		t.Error("expected error when SLACK_APP_TOKEN is missing")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SLACK_BOT_TOKEN", "xoxb-test")
	t.Setenv("SLACK_APP_TOKEN", "xapp-test")
	t.Setenv("HTTP_PORT", "")
	t.Setenv("VOCABULARY_PATH", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.HTTPPort != 3000 {
		t.Errorf("HTTPPort = %d, want default 3000", cfg.HTTPPort)
	}
	if cfg.VocabularyPath != "" {
		t.Errorf("VocabularyPath = %q, want empty", cfg.VocabularyPath)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SLACK_BOT_TOKEN", "xoxb-test")
	t.Setenv("SLACK_APP_TOKEN", "xapp-test")
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("VOCABULARY_PATH", "/etc/sirenbot/vocab.yaml")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.HTTPPort != 8080 {
		t.Errorf("HTTPPort = %d, want 8080", cfg.HTTPPort)
	}
	if cfg.VocabularyPath != "/etc/sirenbot/vocab.yaml" {
		t.Errorf("VocabularyPath = %q", cfg.VocabularyPath)
	}
}

func TestLoad_InvalidPortFallsBack(t *testing.T) {
	t.Setenv("SLACK_BOT_TOKEN", "xoxb-test")
	t.Setenv("SLACK_APP_TOKEN", "xapp-test")
	t.Setenv("HTTP_PORT", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.HTTPPort != 3000 {
		t.Errorf("HTTPPort = %d, want default 3000", cfg.HTTPPort)
	}
}
