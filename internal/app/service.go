package app

import (
	"context"

	"newsreel/internal/llm"
	"newsreel/internal/render"
	"newsreel/internal/storage"
	"newsreel/internal/uploader"
	"newsreel/internal/video"
	"newsreel/pkg/config"
	"newsreel/pkg/prompts"
)

// Speech is the narration backend. Synthesize turns one section's text
// into an encoded audio clip.
type Speech interface {
	Synthesize(ctx context.Context, name, text string) ([]byte, error)
}

type Service struct {
	cfg        *config.Config
	llm        llm.Client
	speech     Speech
	pages      *render.PageBuilder
	compositor *video.Compositor
	uploader   uploader.Uploader
	archive    storage.Archive
	prompts    *prompts.Prompts
}

type ServiceOptions struct {
	Config     *config.Config
	LLM        llm.Client
	Speech     Speech
	Pages      *render.PageBuilder
	Compositor *video.Compositor
	Uploader   uploader.Uploader
	Archive    storage.Archive
	Prompts    *prompts.Prompts
}

func NewService(opts ServiceOptions) *Service {
	return &Service{
		cfg:        opts.Config,
		llm:        opts.LLM,
		speech:     opts.Speech,
		pages:      opts.Pages,
		compositor: opts.Compositor,
		uploader:   opts.Uploader,
		archive:    opts.Archive,
		prompts:    opts.Prompts,
	}
}

func (s *Service) Config() *config.Config        { return s.cfg }
func (s *Service) LLM() llm.Client               { return s.llm }
func (s *Service) Speech() Speech                { return s.speech }
func (s *Service) Pages() *render.PageBuilder    { return s.pages }
func (s *Service) Compositor() *video.Compositor { return s.compositor }
func (s *Service) Uploader() uploader.Uploader   { return s.uploader }
func (s *Service) Archive() storage.Archive      { return s.archive }
func (s *Service) Prompts() *prompts.Prompts     { return s.prompts }

// Close releases clients that hold network connections.
func (s *Service) Close() {
	if closer, ok := s.archive.(interface{ Close() error }); ok {
		_ = closer.Close()
	}
}
