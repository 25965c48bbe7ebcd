// Package video plans and renders the batch slideshow: one still per
// indexed section, an optional cover frame, the pre-mixed narration
// track, and burned-in subtitles.
package video

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"newsreel/internal/subtitle"
)

// DefaultCoverMs is how long the cover frame holds before narration
// starts.
const DefaultCoverMs int64 = 2000

// Slide pairs an image with its display time.
type Slide struct {
	ImagePath  string
	DurationMs int64
}

// Plan is the ordered slideshow for one batch. CoverMs is zero when no
// cover frame exists.
type Plan struct {
	Slides  []Slide
	CoverMs int64
}

// TotalMs returns the planned screen time across all slides.
func (p *Plan) TotalMs() int64 {
	var total int64
	for _, s := range p.Slides {
		total += s.DurationMs
	}
	return total
}

// PlanSlides builds the slideshow from the timeline artifact. Each
// indexed section maps to images/news_<n>.png by position. A missing
// image gets a generated placeholder of identical duration so the
// sections that follow stay aligned with the audio.
func PlanSlides(tl *subtitle.Timeline, imagesDir string) (*Plan, error) {
	plan := &Plan{}

	coverPath := filepath.Join(imagesDir, "index.png")
	if _, err := os.Stat(coverPath); err == nil {
		plan.CoverMs = DefaultCoverMs
		plan.Slides = append(plan.Slides, Slide{ImagePath: coverPath, DurationMs: DefaultCoverMs})
	}

	durations, err := tl.Durations()
	if err != nil {
		return nil, fmt.Errorf("bad timeline: %w", err)
	}

	for i, durationMs := range durations {
		imagePath := filepath.Join(imagesDir, fmt.Sprintf("news_%d.png", i+1))
		if _, err := os.Stat(imagePath); err != nil {
			slog.Warn("Slide image missing, using placeholder",
				"image", fmt.Sprintf("news_%d.png", i+1), "title", tl.Entries[i].Title)
			placeholder := filepath.Join(imagesDir, fmt.Sprintf("placeholder_%d.png", i+1))
			if err := WritePlaceholderPNG(placeholder, defaultWidth, defaultHeight); err != nil {
				return nil, fmt.Errorf("failed to write placeholder for section %d: %w", i+1, err)
			}
			imagePath = placeholder
		}
		plan.Slides = append(plan.Slides, Slide{ImagePath: imagePath, DurationMs: durationMs})
	}

	if len(plan.Slides) == 0 {
		return nil, fmt.Errorf("no slides to render")
	}
	return plan, nil
}

// Reconcile guarantees the slideshow is at least as long as the cover
// plus the full audio track by extending the last slide. Slides are
// never shortened; audio drives the video's length, not the reverse.
func (p *Plan) Reconcile(audioTotalMs int64) {
	required := p.CoverMs + audioTotalMs
	total := p.TotalMs()
	if total >= required || len(p.Slides) == 0 {
		return
	}
	p.Slides[len(p.Slides)-1].DurationMs += required - total
}
