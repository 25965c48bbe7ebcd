package audio

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"os/exec"
	"strconv"
)

// DurationMs measures a media file with ffprobe and returns its length
// in milliseconds. This is the measured truth the caption timeline is
// calibrated against.
func DurationMs(ctx context.Context, path string) (int64, error) {
	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		path,
	)
	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe failed for %s: %w", path, err)
	}

	var result struct {
		Format struct {
			Duration string `json:"duration"`
		} `json:"format"`
	}
	if err := json.Unmarshal(output, &result); err != nil {
		return 0, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}
	if result.Format.Duration == "" {
		return 0, fmt.Errorf("ffprobe reported no duration for %s", path)
	}

	seconds, err := strconv.ParseFloat(result.Format.Duration, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse duration %q: %w", result.Format.Duration, err)
	}
	return int64(math.Round(seconds * 1000)), nil
}

// BytesDurationMs writes audio bytes to a scratch file and probes it.
// Used for section clips that exist only in memory.
func BytesDurationMs(ctx context.Context, tempDir string, audio []byte) (int64, error) {
	f, err := os.CreateTemp(tempDir, "probe_*.mp3")
	if err != nil {
		return 0, fmt.Errorf("failed to create probe file: %w", err)
	}
	path := f.Name()
	defer func() { _ = os.Remove(path) }()

	if _, err := f.Write(audio); err != nil {
		_ = f.Close()
		return 0, fmt.Errorf("failed to write probe file: %w", err)
	}
	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("failed to close probe file: %w", err)
	}

	return DurationMs(ctx, path)
}
