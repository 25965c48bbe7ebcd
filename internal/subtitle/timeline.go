package subtitle

import (
	"encoding/json"
	"fmt"
	"os"

	"newsreel/internal/timing"
)

// TimelineEntry is one indexed section in the serialized timeline.
// Times are SRT-formatted strings, matching the artifact consumed by
// the video stage.
type TimelineEntry struct {
	Title string `json:"title"`
	Start string `json:"start_seconds"`
	End   string `json:"end_seconds"`
}

// Timeline is the synchronization artifact shared between the audio
// and video stages. The video stage never re-derives timing from text;
// this file is its only source of section boundaries.
type Timeline struct {
	Entries []TimelineEntry `json:"timeline"`
}

// NewTimeline converts clock entries into their serialized form.
func NewTimeline(entries []timing.Entry) *Timeline {
	tl := &Timeline{Entries: make([]TimelineEntry, 0, len(entries))}
	for _, e := range entries {
		tl.Entries = append(tl.Entries, TimelineEntry{
			Title: e.Title,
			Start: FormatTime(e.StartMs),
			End:   FormatTime(e.EndMs),
		})
	}
	return tl
}

// Durations returns each entry's span in milliseconds, in order.
func (t *Timeline) Durations() ([]int64, error) {
	durations := make([]int64, 0, len(t.Entries))
	for _, e := range t.Entries {
		start, err := ParseTime(e.Start)
		if err != nil {
			return nil, fmt.Errorf("entry %q: %w", e.Title, err)
		}
		end, err := ParseTime(e.End)
		if err != nil {
			return nil, fmt.Errorf("entry %q: %w", e.Title, err)
		}
		if end < start {
			return nil, fmt.Errorf("entry %q ends before it starts", e.Title)
		}
		durations = append(durations, end-start)
	}
	return durations, nil
}

// TotalMs returns the end of the last entry in milliseconds.
func (t *Timeline) TotalMs() (int64, error) {
	if len(t.Entries) == 0 {
		return 0, nil
	}
	return ParseTime(t.Entries[len(t.Entries)-1].End)
}

// Save writes the timeline artifact as indented JSON.
func (t *Timeline) Save(path string) error {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal timeline: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write timeline file: %w", err)
	}
	return nil
}

// LoadTimeline reads a timeline artifact from path.
func LoadTimeline(path string) (*Timeline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read timeline file: %w", err)
	}
	var tl Timeline
	if err := json.Unmarshal(data, &tl); err != nil {
		return nil, fmt.Errorf("parse timeline file: %w", err)
	}
	return &tl, nil
}
