package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultConfigPath    = "config.yaml"
	defaultOutputDir     = "./output"
	defaultResolution    = "1920x1080"
	defaultFPS           = 24
	defaultSubtitleSize  = 18
	defaultMinimaxModel  = "speech-02-hd"
	defaultMinimaxVoice  = "female-shaonv"
	defaultLLMProvider   = "deepseek"
	defaultLLMModel      = "deepseek-chat"
	defaultLLMBaseURL    = "https://api.deepseek.com"
	defaultMaxChars      = 30
	defaultCharsPerSec   = 4.5
	defaultMinSeconds    = 0.5
	defaultSilenceMs     = 1000
	defaultPrivacyStatus = "unlisted"
	defaultTokenPath     = "./youtube_token.json"
	defaultGCSPrefix     = "newsreel"
)

type Config struct {
	MinimaxAPIKey       string
	LLMAPIKey           string
	YouTubeClientID     string
	YouTubeClientSecret string
	YouTubeTokenPath    string
	GCSBucket           string
	GCPProject          string

	Minimax   MinimaxConfig   `yaml:"minimax"`
	LLM       LLMConfig       `yaml:"llm"`
	Timing    TimingConfig    `yaml:"timing"`
	Video     VideoConfig     `yaml:"video"`
	YouTube   YouTubeConfig   `yaml:"youtube"`
	GCS       GCSConfig       `yaml:"gcs"`
	Templates TemplatesConfig `yaml:"templates"`
}

type MinimaxConfig struct {
	Model   string `yaml:"model"`
	VoiceID string `yaml:"voice_id"`
}

type LLMConfig struct {
	Provider string `yaml:"provider"` // "deepseek", "openai" or "groq"
	Model    string `yaml:"model"`
	BaseURL  string `yaml:"base_url"`
}

type TimingConfig struct {
	MaxChars       int     `yaml:"max_chars"`
	CharsPerSecond float64 `yaml:"chars_per_second"`
	MinSeconds     float64 `yaml:"min_seconds"`
	SilenceMs      int64   `yaml:"silence_ms"`
}

type VideoConfig struct {
	OutputDir  string `yaml:"output_dir"`
	Resolution string `yaml:"resolution"`
	FPS        int    `yaml:"fps"`
	FontSize   int    `yaml:"font_size"`
}

type YouTubeConfig struct {
	DefaultTags   []string `yaml:"default_tags"`
	PrivacyStatus string   `yaml:"privacy_status"`
}

type GCSConfig struct {
	Enabled bool   `yaml:"enabled"`
	Prefix  string `yaml:"prefix"`
}

type TemplatesConfig struct {
	DetailPath string `yaml:"detail_path"`
	IndexPath  string `yaml:"index_path"`
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Warn("No .env file found, relying on environment variables")
	}

	cfg := &Config{
		MinimaxAPIKey:       os.Getenv("MINIMAX_API_KEY"),
		LLMAPIKey:           os.Getenv("LLM_API_KEY"),
		YouTubeClientID:     os.Getenv("YOUTUBE_CLIENT_ID"),
		YouTubeClientSecret: os.Getenv("YOUTUBE_CLIENT_SECRET"),
		YouTubeTokenPath:    getEnvOrDefault("YOUTUBE_TOKEN_PATH", defaultTokenPath),
		GCSBucket:           os.Getenv("GCS_BUCKET"),
		GCPProject:          os.Getenv("GCP_PROJECT"),
	}

	loadYAMLConfig(cfg)
	applyDefaults(cfg)

	return cfg
}

func loadYAMLConfig(cfg *Config) {
	data, err := os.ReadFile(defaultConfigPath)
	if err != nil {
		slog.Warn("No config.yaml found, using defaults")
		return
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		slog.Error("Failed to parse config.yaml", "error", err)
	}
}

func applyDefaults(cfg *Config) {
	applyMinimaxDefaults(cfg)
	applyLLMDefaults(cfg)
	applyTimingDefaults(cfg)
	applyVideoDefaults(cfg)
	applyYouTubeDefaults(cfg)
	applyGCSDefaults(cfg)
}

func applyMinimaxDefaults(cfg *Config) {
	if cfg.Minimax.Model == "" {
		cfg.Minimax.Model = defaultMinimaxModel
	}
	if cfg.Minimax.VoiceID == "" {
		cfg.Minimax.VoiceID = defaultMinimaxVoice
	}
}

func applyLLMDefaults(cfg *Config) {
	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = defaultLLMProvider
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = defaultLLMModel
	}
	if cfg.LLM.BaseURL == "" && cfg.LLM.Provider == "deepseek" {
		cfg.LLM.BaseURL = defaultLLMBaseURL
	}
}

func applyTimingDefaults(cfg *Config) {
	if cfg.Timing.MaxChars == 0 {
		cfg.Timing.MaxChars = defaultMaxChars
	}
	if cfg.Timing.CharsPerSecond == 0 {
		cfg.Timing.CharsPerSecond = defaultCharsPerSec
	}
	if cfg.Timing.MinSeconds == 0 {
		cfg.Timing.MinSeconds = defaultMinSeconds
	}
	if cfg.Timing.SilenceMs == 0 {
		cfg.Timing.SilenceMs = defaultSilenceMs
	}
}

func applyVideoDefaults(cfg *Config) {
	if cfg.Video.OutputDir == "" {
		cfg.Video.OutputDir = defaultOutputDir
	}
	if cfg.Video.Resolution == "" {
		cfg.Video.Resolution = defaultResolution
	}
	if cfg.Video.FPS == 0 {
		cfg.Video.FPS = defaultFPS
	}
if cfg.Video.FontSize == 0 {
		cfg.Video.FontSize = defaultSubtitleSize
	}
}

func applyYouTubeDefaults(cfg *Config) {
	if len(cfg.YouTube.DefaultTags) == 0 {
		cfg.YouTube.DefaultTags = []string{"单机游戏", "游戏新闻", "游戏日报"}
	}
	if cfg.YouTube.PrivacyStatus == "" {
		cfg.YouTube.PrivacyStatus = defaultPrivacyStatus
	}
}

func applyGCSDefaults(cfg *Config) {
	if cfg.GCS.Prefix == "" {
		cfg.GCS.Prefix = defaultGCSPrefix
	}
}

// ResolveSecrets fills missing API keys from Secret Manager when a GCP
// project is configured. Environment variables always win.
func (c *Config) ResolveSecrets(ctx context.Context) error {
	if c.GCPProject == "" {
		return nil
	}
	if c.MinimaxAPIKey != "" && c.LLMAPIKey != "" {
		return nil
	}

	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create secret manager client: %w", err)
	}
	defer func() { _ = client.Close() }()

	if c.MinimaxAPIKey == "" {
		c.MinimaxAPIKey, err = accessSecret(ctx, client, c.GCPProject, "minimax-api-key")
		if err != nil {
			return err
		}
	}
	if c.LLMAPIKey == "" {
		c.LLMAPIKey, err = accessSecret(ctx, client, c.GCPProject, "llm-api-key")
		if err != nil {
			return err
		}
	}
	return nil
}

func accessSecret(ctx context.Context, client *secretmanager.Client, project, name string) (string, error) {
	resp, err := client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: fmt.Sprintf("projects/%s/secrets/%s/versions/latest", project, name),
	})
	if err != nil {
		return "", fmt.Errorf("failed to access secret %s: %w", name, err)
	}
	return string(resp.Payload.Data), nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
