package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// Batch is one day's production directory: output/<YYYYMMDD>/ with the
// digest, audio, subtitles, timeline, page images, and final video.
type Batch struct {
	root string
	date string
}

func NewBatch(outputRoot, date string) *Batch {
	if date == "" {
		date = time.Now().Format("20060102")
	}
	return &Batch{root: outputRoot, date: date}
}

// LatestBatch finds the most recent date directory under outputRoot.
func LatestBatch(outputRoot string) (*Batch, error) {
	entries, err := os.ReadDir(outputRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to read output directory: %w", err)
	}

	var dates []string
	for _, entry := range entries {
		if entry.IsDir() && isDateName(entry.Name()) {
			dates = append(dates, entry.Name())
		}
	}
	if len(dates) == 0 {
		return nil, fmt.Errorf("no batch directories in %s", outputRoot)
	}

	sort.Strings(dates)
	return NewBatch(outputRoot, dates[len(dates)-1]), nil
}

func isDateName(name string) bool {
	if len(name) != 8 {
		return false
	}
	for _, r := range name {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (b *Batch) Date() string { return b.date }
func (b *Batch) Dir() string  { return filepath.Join(b.root, b.date) }

func (b *Batch) DigestPath() string {
	return filepath.Join(b.Dir(), fmt.Sprintf("news_%s.md", b.date))
}

func (b *Batch) AudioPath() string {
	return filepath.Join(b.Dir(), fmt.Sprintf("audio_%s.mp3", b.date))
}

func (b *Batch) SubtitlePath() string {
	return filepath.Join(b.Dir(), fmt.Sprintf("subtitle_%s.srt", b.date))
}

func (b *Batch) TimelinePath() string {
	return filepath.Join(b.Dir(), fmt.Sprintf("timeline_%s.json", b.date))
}

func (b *Batch) VideoPath() string {
	return filepath.Join(b.Dir(), fmt.Sprintf("video_%s.mp4", b.date))
}

func (b *Batch) ImagesDir() string { return filepath.Join(b.Dir(), "images") }
func (b *Batch) HTMLDir() string   { return filepath.Join(b.Dir(), "html") }
func (b *Batch) ScratchDir() string {
	return filepath.Join(b.Dir(), "tmp")
}

func (b *Batch) NewsImagePath(n int) string {
	return filepath.Join(b.ImagesDir(), fmt.Sprintf("news_%d.png", n))
}

func (b *Batch) IndexImagePath() string {
	return filepath.Join(b.ImagesDir(), "index.png")
}

func (b *Batch) NewsHTMLPath(n int) string {
	return filepath.Join(b.HTMLDir(), fmt.Sprintf("news_%d.html", n))
}

func (b *Batch) IndexHTMLPath() string {
	return filepath.Join(b.HTMLDir(), "index.html")
}

// EnsureDirectories creates the batch tree.
func (b *Batch) EnsureDirectories() error {
	for _, dir := range []string{b.Dir(), b.ImagesDir(), b.HTMLDir(), b.ScratchDir()} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	return nil
}

// RemoveScratch drops the temp directory once the batch is complete.
func (b *Batch) RemoveScratch() {
	_ = os.RemoveAll(b.ScratchDir())
}

// ArtifactPaths lists the files worth archiving, in a stable order.
// Missing files are skipped; a batch may be archived before the video
// stage runs.
func (b *Batch) ArtifactPaths() []string {
	candidates := []string{
		b.DigestPath(),
		b.AudioPath(),
		b.SubtitlePath(),
		b.TimelinePath(),
		b.VideoPath(),
	}

	images, _ := filepath.Glob(filepath.Join(b.ImagesDir(), "*.png"))
	sort.Strings(images)
	candidates = append(candidates, images...)

	var existing []string
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			existing = append(existing, path)
		}
	}
	return existing
}
