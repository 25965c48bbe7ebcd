package video

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"newsreel/internal/subtitle"
)

const (
	defaultFFmpegPath = "ffmpeg"
	defaultFPS        = 24
)

type Compositor struct {
	ffmpegPath string
	width      int
	height     int
	fps        int
	fontSize   int
}

type CompositorOptions struct {
	Width    int
	Height   int
	FPS      int
	FontSize int
}

type ComposeRequest struct {
	Plan         *Plan
	AudioPath    string
	SubtitlePath string
	OutputPath   string
}

func NewCompositor(opts CompositorOptions) *Compositor {
	width := opts.Width
	if width == 0 {
		width = defaultWidth
	}
	height := opts.Height
	if height == 0 {
		height = defaultHeight
	}
	fps := opts.FPS
	if fps == 0 {
		fps = defaultFPS
	}
	fontSize := opts.FontSize
	if fontSize == 0 {
		fontSize = 18
	}
	return &Compositor{
		ffmpegPath: defaultFFmpegPath,
		width:      width,
		height:     height,
		fps:        fps,
		fontSize:   fontSize,
	}
}

// Compose renders the slideshow with the narration track and burned-in
// subtitles. The plan must already be reconciled against the audio
// length; composition assumes video >= cover + audio.
func (c *Compositor) Compose(ctx context.Context, req ComposeRequest) error {
	if req.Plan == nil || len(req.Plan.Slides) == 0 {
		return fmt.Errorf("no slides to render")
	}

	subtitlePath := req.SubtitlePath
	if subtitlePath != "" && req.Plan.CoverMs > 0 {
		// Captions are calibrated against the audio track's own zero
		// point. The cover frame plays before narration starts, so the
		// overlay shifts with it.
		shifted, err := c.shiftSubtitles(subtitlePath, req.Plan.CoverMs, filepath.Dir(req.OutputPath))
		if err != nil {
			return err
		}
		defer func() { _ = os.Remove(shifted) }()
		subtitlePath = shifted
	}

	args := c.buildFFmpegArgs(req.Plan, req.AudioPath, subtitlePath, req.OutputPath)
	cmd := exec.CommandContext(ctx, c.ffmpegPath, args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg compose failed: %w, output: %s", err, string(output))
	}
	return nil
}

func (c *Compositor) buildFFmpegArgs(plan *Plan, audioPath, subtitlePath, outputPath string) []string {
	args := []string{"-y"}
	for _, slide := range plan.Slides {
		args = append(args,
			"-loop", "1",
			"-t", fmt.Sprintf("%.3f", float64(slide.DurationMs)/1000),
			"-i", slide.ImagePath,
		)
	}
	args = append(args, "-i", audioPath)

	args = append(args,
		"-filter_complex", c.buildFilterComplex(plan, subtitlePath),
		"-map", "[v]",
		"-map", "[a]",
		"-r", fmt.Sprintf("%d", c.fps),
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		"-c:a", "aac",
		"-ar", "44100",
		"-preset", "medium",
		outputPath,
	)
	return args
}

func (c *Compositor) buildFilterComplex(plan *Plan, subtitlePath string) string {
	var filters []string
	var labels []string

	for i := range plan.Slides {
		label := fmt.Sprintf("s%d", i)
		filters = append(filters, fmt.Sprintf(
			"[%d:v]scale=%d:%d:force_original_aspect_ratio=decrease,pad=%d:%d:(ow-iw)/2:(oh-ih)/2,setsar=1[%s]",
			i, c.width, c.height, c.width, c.height, label,
		))
		labels = append(labels, "["+label+"]")
	}

	filters = append(filters, fmt.Sprintf(
		"%sconcat=n=%d:v=1:a=0[slides]",
		strings.Join(labels, ""), len(plan.Slides),
	))

	if subtitlePath != "" {
		filters = append(filters, fmt.Sprintf(
			"[slides]subtitles=%s:force_style='FontSize=%d,Alignment=2,MarginV=40,Outline=2'[v]",
			escapeFilterPath(subtitlePath), c.fontSize,
		))
	} else {
		filters = append(filters, "[slides]null[v]")
	}

	audioInput := len(plan.Slides)
	if plan.CoverMs > 0 {
		filters = append(filters, fmt.Sprintf(
			"[%d:a]adelay=%d|%d[a]", audioInput, plan.CoverMs, plan.CoverMs,
		))
	} else {
		filters = append(filters, fmt.Sprintf("[%d:a]anull[a]", audioInput))
	}

	return strings.Join(filters, ";")
}

// shiftSubtitles writes a copy of the SRT with every caption delayed
// by the cover duration.
func (c *Compositor) shiftSubtitles(path string, deltaMs int64, scratchDir string) (string, error) {
	captions, err := subtitle.LoadSRT(path)
	if err != nil {
		return "", fmt.Errorf("failed to load subtitles: %w", err)
	}
	for i := range captions {
		captions[i].StartMs += deltaMs
		captions[i].EndMs += deltaMs
	}

	shifted := filepath.Join(scratchDir, fmt.Sprintf("subs_%d.srt", time.Now().UnixNano()))
	if err := subtitle.SaveSRT(shifted, captions); err != nil {
		return "", err
	}
	return shifted, nil
}

// escapeFilterPath quotes a path for use inside an ffmpeg filter
// expression, where ':' is a separator.
func escapeFilterPath(path string) string {
	path = strings.ReplaceAll(path, `\`, `/`)
	path = strings.ReplaceAll(path, `:`, `\:`)
	return "'" + path + "'"
}
