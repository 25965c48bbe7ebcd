// Package audio assembles the batch narration track: one mp3 per
// section, joined with fixed inter-section silence, exported as a
// single pre-mixed file.
package audio

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// TrackBuilder accumulates section clips in playback order. Clips are
// appended only after a section fully succeeds, so a failed section
// leaves the track untouched.
type TrackBuilder struct {
	ffmpegPath  string
	tempDir     string
	silenceMs   int64
	silencePath string
	clips       []string
	nextClip    int
}

func NewTrackBuilder(tempDir string, silenceMs int64) *TrackBuilder {
	if silenceMs <= 0 {
		silenceMs = 1000
	}
	return &TrackBuilder{
		ffmpegPath: "ffmpeg",
		tempDir:    tempDir,
		silenceMs:  silenceMs,
	}
}

// AppendClip stages section audio bytes as the next clip on the track.
func (b *TrackBuilder) AppendClip(audio []byte) error {
	path := filepath.Join(b.tempDir, fmt.Sprintf("clip_%03d.mp3", b.nextClip))
	if err := os.WriteFile(path, audio, 0644); err != nil {
		return fmt.Errorf("failed to write clip: %w", err)
	}
	b.clips = append(b.clips, path)
	b.nextClip++
	return nil
}

// AppendSilence adds the inter-section pause. The silence clip is
// rendered once and reused.
func (b *TrackBuilder) AppendSilence(ctx context.Context) error {
	if b.silencePath == "" {
		path := filepath.Join(b.tempDir, "silence.mp3")
		args := []string{
			"-y",
			"-f", "lavfi",
			"-i", "anullsrc=r=44100:cl=stereo",
			"-t", fmt.Sprintf("%.3f", time.Duration(b.silenceMs*int64(time.Millisecond)).Seconds()),
			"-acodec", "libmp3lame",
			"-q:a", "2",
			path,
		}
		cmd := exec.CommandContext(ctx, b.ffmpegPath, args...)
		if output, err := cmd.CombinedOutput(); err != nil {
			return fmt.Errorf("ffmpeg silence failed: %w, output: %s", err, string(output))
		}
		b.silencePath = path
	}
	b.clips = append(b.clips, b.silencePath)
	return nil
}

// Len reports how many clips are staged, silence included.
func (b *TrackBuilder) Len() int {
	return len(b.clips)
}

// Export concatenates the staged clips into one mp3 at outputPath.
func (b *TrackBuilder) Export(ctx context.Context, outputPath string) error {
	if len(b.clips) == 0 {
		return fmt.Errorf("no clips to export")
	}

	listPath := filepath.Join(b.tempDir, "concat_list.txt")
	listContent := ""
	for _, clip := range b.clips {
		absPath, err := filepath.Abs(clip)
		if err != nil {
			return fmt.Errorf("failed to get absolute path: %w", err)
		}
		listContent += fmt.Sprintf("file '%s'\n", absPath)
	}
	if err := os.WriteFile(listPath, []byte(listContent), 0644); err != nil {
		return fmt.Errorf("failed to write concat list: %w", err)
	}
	defer func() { _ = os.Remove(listPath) }()

	args := []string{
		"-y",
		"-f", "concat",
		"-safe", "0",
		"-i", listPath,
		"-acodec", "libmp3lame",
		"-q:a", "2",
		outputPath,
	}
	cmd := exec.CommandContext(ctx, b.ffmpegPath, args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg concat failed: %w, output: %s", err, string(output))
	}
	return nil
}

// Cleanup removes the staged clip files.
func (b *TrackBuilder) Cleanup() {
	for _, clip := range b.clips {
		_ = os.Remove(clip)
	}
	b.clips = nil
}
