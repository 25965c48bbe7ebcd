package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"newsreel/internal/audio"
	"newsreel/internal/markdown"
	"newsreel/internal/render"
	"newsreel/internal/storage"
	"newsreel/internal/subtitle"
	"newsreel/internal/timing"
	"newsreel/internal/uploader"
	"newsreel/internal/video"
	"newsreel/pkg/prompts"
)

type Pipeline struct {
	service *Service
}

// RunResult collects the artifact paths of a finished batch.
type RunResult struct {
	Date         string
	DigestPath   string
	AudioPath    string
	SubtitlePath string
	TimelinePath string
	VideoPath    string
	Skipped      int
}

// NarrateResult reports what the narration stage produced. Skipped counts
// sections whose synthesis failed and which therefore occupy no time.
type NarrateResult struct {
	AudioPath    string
	SubtitlePath string
	TimelinePath string
	Sections     int
	Skipped      int
}

func NewPipeline(service *Service) *Pipeline {
	return &Pipeline{service: service}
}

// Run executes the whole batch: digest, narration, page rendering, video
// composition, and the optional upload and archive stages.
func (p *Pipeline) Run(ctx context.Context, news string) (*RunResult, error) {
	batch, err := p.GenerateDigest(ctx, news)
	if err != nil {
		return nil, err
	}

	slog.Info("Narrating digest...", "date", batch.Date())
	narration, err := p.Narrate(ctx, batch)
	if err != nil {
		return nil, err
	}

	slog.Info("Rendering news pages...")
	if err := p.RenderPages(ctx, batch); err != nil {
		return nil, err
	}

	slog.Info("Composing video...")
	if err := p.ComposeVideo(ctx, batch); err != nil {
		return nil, err
	}

	if p.service.Uploader() != nil {
		slog.Info("Uploading to YouTube...")
		if _, err := p.Upload(ctx, batch); err != nil {
			return nil, err
		}
	}

	if p.service.Archive() != nil {
		slog.Info("Archiving batch...")
		if err := p.ArchiveBatch(ctx, batch); err != nil {
			return nil, err
		}
	}

	batch.RemoveScratch()

	return &RunResult{
		Date:         batch.Date(),
		DigestPath:   batch.DigestPath(),
		AudioPath:    narration.AudioPath,
		SubtitlePath: narration.SubtitlePath,
		TimelinePath: narration.TimelinePath,
		VideoPath:    batch.VideoPath(),
		Skipped:      narration.Skipped,
	}, nil
}

// GenerateDigest asks the model to write today's digest from the raw news
// notes and stores it as the batch's source markdown.
func (p *Pipeline) GenerateDigest(ctx context.Context, news string) (*storage.Batch, error) {
	cfg := p.service.Config()
	batch := storage.NewBatch(cfg.Video.OutputDir, "")
	if err := batch.EnsureDirectories(); err != nil {
		return nil, err
	}

	model := p.service.LLM()
	if model == nil {
		return nil, fmt.Errorf("no LLM configured, set LLM_API_KEY")
	}

	day, err := time.Parse("20060102", batch.Date())
	if err != nil {
		return nil, fmt.Errorf("bad batch date %q: %w", batch.Date(), err)
	}

	userPrompt, err := p.service.Prompts().RenderDigest(prompts.DigestParams{
		News: news,
		Date: day.Format("2006年01月02日"),
	})
	if err != nil {
		return nil, err
	}

	digest, err := model.Complete(ctx, p.service.Prompts().System.Digest, userPrompt)
	if err != nil {
		return nil, fmt.Errorf("generate digest: %w", err)
	}

	if err := os.WriteFile(batch.DigestPath(), []byte(digest), 0644); err != nil {
		return nil, fmt.Errorf("save digest: %w", err)
	}
	return batch, nil
}

// Narrate synthesizes each digest section, measures the real audio, and
// calibrates captions against it on one global clock. A section whose
// synthesis fails is skipped whole: it contributes no audio, no captions,
// and no time, so everything after it shifts earlier and stays in sync.
func (p *Pipeline) Narrate(ctx context.Context, batch *storage.Batch) (*NarrateResult, error) {
	speech := p.service.Speech()
	if speech == nil {
		return nil, fmt.Errorf("no speech backend configured, set MINIMAX_API_KEY")
	}

	data, err := os.ReadFile(batch.DigestPath())
	if err != nil {
		return nil, fmt.Errorf("read digest: %w", err)
	}
	sections := markdown.ParseSections(string(data))
	if len(sections) == 0 {
		return nil, fmt.Errorf("digest has no sections")
	}

	cfg := p.service.Config()
	track := audio.NewTrackBuilder(batch.ScratchDir(), cfg.Timing.SilenceMs)
	defer track.Cleanup()

	clock := timing.NewClock(cfg.Timing.SilenceMs)
	splitter := timing.NewSplitter(cfg.Timing.MaxChars)
	estimator := timing.NewEstimator(cfg.Timing.CharsPerSecond, cfg.Timing.MinSeconds)

	var captions []timing.Caption
	skipped := 0

	for i, section := range sections {
		text := markdown.Preprocess(section.Content)
		if text == "" {
			slog.Warn("Section has no narratable text, skipping", "title", section.Title)
			skipped++
			continue
		}

		name := fmt.Sprintf("%s_%02d_%s.txt", batch.Date(), i+1, markdown.SanitizeFilename(section.Title))
		clip, err := speech.Synthesize(ctx, name, text)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			slog.Warn("Synthesis failed, skipping section", "title", section.Title, "error", err)
			skipped++
			continue
		}

		clipMs, err := audio.BytesDurationMs(ctx, batch.ScratchDir(), clip)
		if err != nil {
			slog.Warn("Could not measure clip, skipping section", "title", section.Title, "error", err)
			skipped++
			continue
		}

		units := estimator.BuildTimeline(splitter.Split(text))
		calibrated := timing.Calibrate(units, clipMs, clock.NowMs())

		if err := track.AppendClip(clip); err != nil {
			return nil, err
		}
		addSilence := i < len(sections)-1
		if addSilence {
			if err := track.AppendSilence(ctx); err != nil {
				return nil, err
			}
		}

		captions = append(captions, calibrated...)
		clock.Commit(section.Title, clipMs, addSilence, section.Indexable)
		slog.Info("Section narrated", "title", section.Title, "duration_ms", clipMs, "indexed", section.Indexable)
	}

	if track.Len() == 0 {
		return nil, fmt.Errorf("no section produced audio")
	}

	if err := track.Export(ctx, batch.AudioPath()); err != nil {
		return nil, err
	}
	if err := subtitle.SaveSRT(batch.SubtitlePath(), captions); err != nil {
		return nil, err
	}
	timeline := subtitle.NewTimeline(clock.Entries())
	if err := timeline.Save(batch.TimelinePath()); err != nil {
		return nil, err
	}

	return &NarrateResult{
		AudioPath:    batch.AudioPath(),
		SubtitlePath: batch.SubtitlePath(),
		TimelinePath: batch.TimelinePath(),
		Sections:     len(sections),
		Skipped:      skipped,
	}, nil
}

// RenderPages builds one HTML detail page per indexed story plus the cover
// index page, and captures each as a PNG slide.
func (p *Pipeline) RenderPages(ctx context.Context, batch *storage.Batch) error {
	data, err := os.ReadFile(batch.DigestPath())
	if err != nil {
		return fmt.Errorf("read digest: %w", err)
	}

	var indexed []markdown.Section
	for _, section := range markdown.ParseSections(string(data)) {
		if section.Indexable {
			indexed = append(indexed, section)
		}
	}
	if len(indexed) == 0 {
		return fmt.Errorf("digest has no indexed stories")
	}

	capturer, err := render.NewCapturer()
	if err != nil {
		return err
	}
	defer capturer.Close()

	pages := p.service.Pages()
	titles := make([]string, 0, len(indexed))
	summaries := make([]string, 0, len(indexed))

	for n, section := range indexed {
		html, summary, err := pages.BuildNewsPage(ctx, n+1, section)
		if err != nil {
			return fmt.Errorf("build page for %q: %w", section.Title, err)
		}
		htmlPath := batch.NewsHTMLPath(n + 1)
		if err := os.WriteFile(htmlPath, []byte(html), 0644); err != nil {
			return fmt.Errorf("save page for %q: %w", section.Title, err)
		}
		if err := capturer.Capture(htmlPath, batch.NewsImagePath(n+1)); err != nil {
			return fmt.Errorf("capture page for %q: %w", section.Title, err)
		}
		titles = append(titles, section.Title)
		summaries = append(summaries, summary)
	}

	indexHTML := pages.BuildIndexPage(titles, summaries)
	if err := os.WriteFile(batch.IndexHTMLPath(), []byte(indexHTML), 0644); err != nil {
		return fmt.Errorf("save index page: %w", err)
	}
	if err := capturer.Capture(batch.IndexHTMLPath(), batch.IndexImagePath()); err != nil {
		return fmt.Errorf("capture index page: %w", err)
	}
	return nil
}

// ComposeVideo plans slides from the saved timeline, reconciles them
// against the measured audio, and renders the final mp4.
func (p *Pipeline) ComposeVideo(ctx context.Context, batch *storage.Batch) error {
	timeline, err := subtitle.LoadTimeline(batch.TimelinePath())
	if err != nil {
		return err
	}

	plan, err := video.PlanSlides(timeline, batch.ImagesDir())
	if err != nil {
		return err
	}

	audioMs, err := audio.DurationMs(ctx, batch.AudioPath())
	if err != nil {
		return err
	}
	plan.Reconcile(audioMs)

	return p.service.Compositor().Compose(ctx, video.ComposeRequest{
		Plan:         plan,
		AudioPath:    batch.AudioPath(),
		SubtitlePath: batch.SubtitlePath(),
		OutputPath:   batch.VideoPath(),
	})
}

// Upload publishes the batch video with a chapter list built from its
// timeline.
func (p *Pipeline) Upload(ctx context.Context, batch *storage.Batch) (*uploader.UploadResponse, error) {
	if p.service.Uploader() == nil {
		return nil, fmt.Errorf("no uploader configured, set YOUTUBE_CLIENT_ID and YOUTUBE_CLIENT_SECRET")
	}

	timeline, err := subtitle.LoadTimeline(batch.TimelinePath())
	if err != nil {
		return nil, err
	}

	cfg := p.service.Config()
	request, err := uploader.DailyUploadRequest(batch.VideoPath(), batch.Date(), timeline, cfg.YouTube.PrivacyStatus)
	if err != nil {
		return nil, err
	}
	if len(cfg.YouTube.DefaultTags) > 0 {
		request.Tags = cfg.YouTube.DefaultTags
	}

	response, err := p.service.Uploader().Upload(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("upload video: %w", err)
	}
	slog.Info("Video uploaded", "id", response.ID, "url", response.URL)
	return response, nil
}

// ArchiveBatch mirrors the batch's artifacts to the configured archive.
func (p *Pipeline) ArchiveBatch(ctx context.Context, batch *storage.Batch) error {
	if p.service.Archive() == nil {
		return fmt.Errorf("no archive configured, set GCS_BUCKET and enable gcs in config.yaml")
	}
	objects, err := p.service.Archive().UploadBatch(ctx, batch)
	if err != nil {
		return fmt.Errorf("archive batch: %w", err)
	}
	slog.Info("Batch archived", "objects", len(objects))
	return nil
}
