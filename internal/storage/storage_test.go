package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestBatchLayout(t *testing.T) {
	b := NewBatch("output", "20260102")

	tests := []struct {
		got  string
		want string
	}{
		{b.Dir(), filepath.Join("output", "20260102")},
		{b.DigestPath(), filepath.Join("output", "20260102", "news_20260102.md")},
		{b.AudioPath(), filepath.Join("output", "20260102", "audio_20260102.mp3")},
		{b.SubtitlePath(), filepath.Join("output", "20260102", "subtitle_20260102.srt")},
		{b.TimelinePath(), filepath.Join("output", "20260102", "timeline_20260102.json")},
		{b.VideoPath(), filepath.Join("output", "20260102", "video_20260102.mp4")},
		{b.NewsImagePath(3), filepath.Join("output", "20260102", "images", "news_3.png")},
		{b.IndexImagePath(), filepath.Join("output", "20260102", "images", "index.png")},
		{b.NewsHTMLPath(1), filepath.Join("output", "20260102", "html", "news_1.html")},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("got %s, want %s", tt.got, tt.want)
		}
	}
}

func TestEnsureDirectories(t *testing.T) {
	root := t.TempDir()
	b := NewBatch(root, "20260102")

	if err := b.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	for _, dir := range []string{b.Dir(), b.ImagesDir(), b.HTMLDir(), b.ScratchDir()} {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			t.Errorf("missing directory %s", dir)
		}
	}
}

func TestLatestBatch(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"20260101", "20260103", "20260102", "html", "notadate"} {
		if err := os.MkdirAll(filepath.Join(root, name), 0755); err != nil {
			t.Fatal(err)
		}
	}

	b, err := LatestBatch(root)
	if err != nil {
		t.Fatalf("LatestBatch: %v", err)
	}
	if b.Date() != "20260103" {
		t.Errorf("Date = %s, want 20260103", b.Date())
	}
}

func TestLatestBatchEmpty(t *testing.T) {
	if _, err := LatestBatch(t.TempDir()); err == nil {
		t.Fatal("want error with no batch directories")
	}
}

func TestArtifactPaths(t *testing.T) {
	root := t.TempDir()
	b := NewBatch(root, "20260102")
	if err := b.EnsureDirectories(); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{b.AudioPath(), b.TimelinePath(), b.NewsImagePath(1)} {
		if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	paths := b.ArtifactPaths()
	if len(paths) != 3 {
		t.Fatalf("got %d artifacts, want 3: %v", len(paths), paths)
	}
	for _, path := range paths {
		if strings.Contains(path, "video_") {
			t.Errorf("missing file listed: %s", path)
		}
	}
}
