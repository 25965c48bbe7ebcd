package video

import (
	"strings"
	"testing"
)

func TestBuildFilterComplex(t *testing.T) {
	c := NewCompositor(CompositorOptions{})
	plan := &Plan{
		CoverMs: 2000,
		Slides: []Slide{
			{ImagePath: "index.png", DurationMs: 2000},
			{ImagePath: "news_1.png", DurationMs: 10000},
		},
	}

	filter := c.buildFilterComplex(plan, "subs.srt")

	for _, want := range []string{
		"concat=n=2:v=1:a=0[slides]",
		"scale=1920:1080",
		"subtitles='subs.srt'",
		"[2:a]adelay=2000|2000[a]",
	} {
		if !strings.Contains(filter, want) {
			t.Errorf("filter missing %q:\n%s", want, filter)
		}
	}
}

func TestBuildFilterComplexNoCoverNoSubs(t *testing.T) {
	c := NewCompositor(CompositorOptions{})
	plan := &Plan{
		Slides: []Slide{{ImagePath: "news_1.png", DurationMs: 10000}},
	}

	filter := c.buildFilterComplex(plan, "")

	if !strings.Contains(filter, "[slides]null[v]") {
		t.Errorf("expected passthrough overlay:\n%s", filter)
	}
	if !strings.Contains(filter, "[1:a]anull[a]") {
		t.Errorf("expected undelayed audio:\n%s", filter)
	}
	if strings.Contains(filter, "adelay") {
		t.Errorf("unexpected delay without cover:\n%s", filter)
	}
}

func TestBuildFFmpegArgs(t *testing.T) {
	c := NewCompositor(CompositorOptions{FPS: 24})
	plan := &Plan{
		Slides: []Slide{
			{ImagePath: "a.png", DurationMs: 1500},
			{ImagePath: "b.png", DurationMs: 3000},
		},
	}

	args := c.buildFFmpegArgs(plan, "audio.mp3", "", "out.mp4")
	joined := strings.Join(args, " ")

	for _, want := range []string{
		"-loop 1 -t 1.500 -i a.png",
		"-loop 1 -t 3.000 -i b.png",
		"-i audio.mp3",
		"-r 24",
		"-c:v libx264",
		"-c:a aac",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("args missing %q:\n%s", want, joined)
		}
	}
	if args[len(args)-1] != "out.mp4" {
		t.Errorf("output not last arg: %v", args)
	}
}

func TestEscapeFilterPath(t *testing.T) {
	got := escapeFilterPath(`C:\media\subs.srt`)
	if got != `'C\:/media/subs.srt'` {
		t.Errorf("got %s", got)
	}
}
