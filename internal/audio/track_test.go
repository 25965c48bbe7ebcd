package audio

import (
	"context"
	"os"
	"testing"
)

func TestAppendClip(t *testing.T) {
	b := NewTrackBuilder(t.TempDir(), 1000)

	if err := b.AppendClip([]byte("first")); err != nil {
		t.Fatalf("AppendClip: %v", err)
	}
	if err := b.AppendClip([]byte("second")); err != nil {
		t.Fatalf("AppendClip: %v", err)
	}

	if b.Len() != 2 {
		t.Errorf("Len = %d, want 2", b.Len())
	}
	for _, clip := range b.clips {
		if _, err := os.Stat(clip); err != nil {
			t.Errorf("clip %s not staged: %v", clip, err)
		}
	}
}

func TestExportEmpty(t *testing.T) {
	b := NewTrackBuilder(t.TempDir(), 1000)
	if err := b.Export(context.Background(), "out.mp3"); err == nil {
		t.Fatal("want error for empty track")
	}
}

func TestCleanup(t *testing.T) {
	b := NewTrackBuilder(t.TempDir(), 1000)
	if err := b.AppendClip([]byte("clip")); err != nil {
		t.Fatalf("AppendClip: %v", err)
	}
	staged := b.clips[0]

	b.Cleanup()

	if b.Len() != 0 {
		t.Errorf("Len after cleanup = %d, want 0", b.Len())
	}
	if _, err := os.Stat(staged); !os.IsNotExist(err) {
		t.Errorf("clip %s survived cleanup", staged)
	}
}
