package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromYAML(t *testing.T) {
	tmp := t.TempDir()
	orig, _ := os.Getwd()
	defer func() { _ = os.Chdir(orig) }()
	_ = os.Chdir(tmp)

	yaml := `
minimax:
  voice_id: test-voice
llm:
  provider: groq
  model: llama-3.3-70b-versatile
timing:
  max_chars: 24
video:
  output_dir: ./out
  fps: 30
`
	_ = os.WriteFile(filepath.Join(tmp, "config.yaml"), []byte(yaml), 0644)

	cfg := Load()

	if cfg.Minimax.VoiceID != "test-voice" {
		t.Errorf("Minimax.VoiceID = %q, want test-voice", cfg.Minimax.VoiceID)
	}
	if cfg.LLM.Provider != "groq" {
		t.Errorf("LLM.Provider = %q, want groq", cfg.LLM.Provider)
	}
	if cfg.LLM.Model != "llama-3.3-70b-versatile" {
		t.Errorf("LLM.Model = %q, want llama-3.3-70b-versatile", cfg.LLM.Model)
	}
	if cfg.Timing.MaxChars != 24 {
		t.Errorf("Timing.MaxChars = %d, want 24", cfg.Timing.MaxChars)
	}
	if cfg.Video.OutputDir != "./out" {
		t.Errorf("Video.OutputDir = %q, want ./out", cfg.Video.OutputDir)
	}
	if cfg.Video.FPS != 30 {
		t.Errorf("Video.FPS = %d, want 30", cfg.Video.FPS)
	}
}

func TestLoadFromEnv(t *testing.T) {
	tmp := t.TempDir()
	orig, _ := os.Getwd()
	defer func() { _ = os.Chdir(orig) }()
	_ = os.Chdir(tmp)

	t.Setenv("MINIMAX_API_KEY", "test-minimax")
	t.Setenv("LLM_API_KEY", "test-llm")
	t.Setenv("GCP_PROJECT", "test-project")

	cfg := Load()

	if cfg.MinimaxAPIKey != "test-minimax" {
		t.Errorf("MinimaxAPIKey = %q, want test-minimax", cfg.MinimaxAPIKey)
	}
	if cfg.LLMAPIKey != "test-llm" {
		t.Errorf("LLMAPIKey = %q, want test-llm", cfg.LLMAPIKey)
	}
	if cfg.GCPProject != "test-project" {
		t.Errorf("GCPProject = %q, want test-project", cfg.GCPProject)
	}
}

func TestLoadDefaults(t *testing.T) {
	tmp := t.TempDir()
	orig, _ := os.Getwd()
	defer func() { _ = os.Chdir(orig) }()
	_ = os.Chdir(tmp)

	cfg := Load()

	if cfg.Minimax.Model != "speech-02-hd" {
		t.Errorf("Minimax.Model = %q, want speech-02-hd", cfg.Minimax.Model)
	}
	if cfg.Minimax.VoiceID != "female-shaonv" {
		t.Errorf("Minimax.VoiceID = %q, want female-shaonv", cfg.Minimax.VoiceID)
	}
	if cfg.LLM.BaseURL != "https://api.deepseek.com" {
		t.Errorf("LLM.BaseURL = %q, want deepseek endpoint", cfg.LLM.BaseURL)
	}
	if cfg.Timing.MaxChars != 30 {
		t.Errorf("Timing.MaxChars = %d, want 30", cfg.Timing.MaxChars)
	}
	if cfg.Timing.CharsPerSecond != 4.5 {
		t.Errorf("Timing.CharsPerSecond = %v, want 4.5", cfg.Timing.CharsPerSecond)
	}
	if cfg.Timing.SilenceMs != 1000 {
		t.Errorf("Timing.SilenceMs = %d, want 1000", cfg.Timing.SilenceMs)
	}
	if cfg.Video.Resolution != "1920x1080" {
		t.Errorf("Video.Resolution = %q, want 1920x1080", cfg.Video.Resolution)
	}
if cfg.YouTube.PrivacyStatus != "unlisted" {
		t.Errorf("YouTube.PrivacyStatus = %q, want unlisted", cfg.YouTube.PrivacyStatus)
	}
	if len(cfg.YouTube.DefaultTags) == 0 {
		t.Error("YouTube.DefaultTags is empty, want defaults")
	}
}

func TestLLMBaseURLOnlyDefaultsForDeepSeek(t *testing.T) {
	tmp := t.TempDir()
	orig, _ := os.Getwd()
	defer func() { _ = os.Chdir(orig) }()
	_ = os.Chdir(tmp)

	_ = os.WriteFile(filepath.Join(tmp, "config.yaml"), []byte("llm:\n  provider: groq\n"), 0644)

	cfg := Load()

	if cfg.LLM.BaseURL != "" {
		t.Errorf("LLM.BaseURL = %q, want empty for groq provider", cfg.LLM.BaseURL)
	}
}

func TestResolveSecretsNoProject(t *testing.T) {
	cfg := &Config{MinimaxAPIKey: ""}
	if err := cfg.ResolveSecrets(context.Background()); err != nil {
		t.Errorf("ResolveSecrets() error without project: %v", err)
	}
}
