package app

import (
	"context"
	"strconv"
	"strings"

	"newsreel/internal/llm"
	"newsreel/internal/minimax"
	"newsreel/internal/render"
	"newsreel/internal/storage"
	"newsreel/internal/uploader"
	"newsreel/internal/video"
	"newsreel/pkg/config"
	"newsreel/pkg/prompts"
)

// BuildService wires every pipeline stage from configuration. Optional
// stages (upload, archive) stay nil when their credentials are absent.
func BuildService(ctx context.Context, cfg *config.Config) (*Service, error) {
	if err := cfg.ResolveSecrets(ctx); err != nil {
		return nil, err
	}

	p, err := prompts.Load()
	if err != nil {
		return nil, err
	}

	var llmClient llm.Client
	if cfg.LLMAPIKey != "" {
		llmClient, err = llm.New(cfg.LLM.Provider, cfg.LLMAPIKey, cfg.LLM.Model, cfg.LLM.BaseURL)
		if err != nil {
			return nil, err
		}
	}

	var speech Speech
	if cfg.MinimaxAPIKey != "" {
		speech = minimax.NewClient(cfg.MinimaxAPIKey, minimax.Options{
			Model:   cfg.Minimax.Model,
			VoiceID: cfg.Minimax.VoiceID,
		})
	}

	pages := render.NewPageBuilder(render.PageBuilderOptions{
		Model:          llmClient,
		Prompts:        p,
		DetailTemplate: render.LoadTemplate(cfg.Templates.DetailPath, ""),
		IndexTemplate:  render.LoadTemplate(cfg.Templates.IndexPath, ""),
	})

	width, height := parseResolution(cfg.Video.Resolution)
	compositor := video.NewCompositor(video.CompositorOptions{
		Width:    width,
		Height:   height,
		FPS:      cfg.Video.FPS,
		FontSize: cfg.Video.FontSize,
	})

	var ytUploader uploader.Uploader
	if cfg.YouTubeClientID != "" && cfg.YouTubeClientSecret != "" {
		auth := uploader.NewYouTubeAuth(cfg.YouTubeClientID, cfg.YouTubeClientSecret, cfg.YouTubeTokenPath)
		ytUploader = uploader.NewYouTubeUploader(auth)
	}

	var archive storage.Archive
	if cfg.GCS.Enabled && cfg.GCSBucket != "" {
		gcs, err := storage.NewGCSArchive(ctx, cfg.GCSBucket, cfg.GCS.Prefix)
		if err != nil {
			return nil, err
		}
		archive = gcs
	}

	return NewService(ServiceOptions{
		Config:     cfg,
		LLM:        llmClient,
		Speech:     speech,
		Pages:      pages,
		Compositor: compositor,
		Uploader:   ytUploader,
		Archive:    archive,
		Prompts:    p,
	}), nil
}

func parseResolution(resolution string) (width, height int) {
	parts := strings.SplitN(resolution, "x", 2)
	if len(parts) != 2 {
		return 0, 0
	}
	width, _ = strconv.Atoi(parts[0])
	height, _ = strconv.Atoi(parts[1])
	return width, height
}
